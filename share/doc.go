// Package share publishes profiles at stable public URLs.
//
// A published profile gets a slug derived from its display name plus a
// random fragment; the slug never changes once minted, and unpublishing
// keeps it reserved. The public view exposes skills with evidence redacted
// to snippet counts, since evidence text quotes private source documents.
package share
