// Package recluster reassigns cluster labels across a profile's stored
// skills in batches, for taxonomy migrations.
//
// A Reclusterer iterates the profile's skills (SkillIterator), sends each
// batch of names to the classifier with exponential-backoff retries
// (RetryWithBackoff), and persists only the skills whose cluster actually
// changed. Confidence, evidence, and unlock state are never touched.
// Progress is reported to a writer at a configurable interval.
package recluster
