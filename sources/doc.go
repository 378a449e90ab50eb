// Package sources provides the evidence adapters that feed skill extraction.
//
// Each adapter implements the Adapter interface: it owns one kind of input
// (an uploaded document, pasted text, or a GitHub username), converts it to
// plain text, and hands the text to the oracle's skill extractor. Adapters
// are stateless with respect to each other and safe to run concurrently,
// which is how the extraction orchestrator invokes them.
//
// The GitHub adapter shares a GitHubClient across runs so its rate limiter
// and per-user digest cache outlive individual extractions.
package sources
