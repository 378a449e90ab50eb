// Package extraction coordinates multi-source skill extraction runs.
//
// The Orchestrator fans one goroutine out per source adapter, joins on all
// of them, and unions their candidates in adapter supply order. Failures
// are isolated per source: a failed adapter contributes zero candidates and
// an error status, and its siblings run to completion.
//
// The Service wraps the orchestrator into profile-scoped runs: candidates
// are merged into skills, persisted as one batch, and the profile's quests
// resynced. Runs execute asynchronously on a bounded worker pool and their
// state is retained in memory (bounded, oldest evicted) for polling.
package extraction
