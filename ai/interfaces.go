package ai

import (
	"context"

	"github.com/veyra/skillmap/core"
)

// SkillExtractor extracts skill candidates from free-form text.
// A single call covers both explicitly stated skills and hidden skills
// inferred from surrounding signals; the oracle reports the kind per skill.
// Implementations must be thread-safe for concurrent use.
type SkillExtractor interface {
	// ExtractSkills analyzes text and returns normalized skill candidates.
	// The source label is stamped onto every returned candidate for
	// provenance and merge reporting.
	// Returns an empty slice if no skills are found.
	// Returns an error if extraction fails.
	ExtractSkills(ctx context.Context, text string, source string) ([]core.Candidate, error)
}

// GapAnalyst compares a profile's skill set against a target role.
// Implementations must be thread-safe for concurrent use.
type GapAnalyst interface {
	// AnalyzeGap returns a normalized report of matching skills, missing
	// skills with priorities, and an overall match score in [0,100].
	AnalyzeGap(ctx context.Context, skills []*core.Skill, targetRole string) (*GapReport, error)
}

// StoryWriter produces CV bullet rewrites grounded in a profile's skills.
// Implementations must be thread-safe for concurrent use.
type StoryWriter interface {
	// SuggestRewrites returns rewrite suggestions for the given target role.
	SuggestRewrites(ctx context.Context, skills []*core.Skill, targetRole string) ([]Suggestion, error)
}

// Classifier assigns cluster labels to skill names in batch.
// Used by taxonomy migrations; implementations must be thread-safe.
type Classifier interface {
	// ClusterSkills returns a map from skill name to cluster label.
	// Names absent from the result keep their current cluster.
	ClusterSkills(ctx context.Context, names []string) (map[string]string, error)
}

// Provider aggregates oracle services for convenient initialization and
// lifecycle management. A provider creates and manages the extractor,
// analyst, writer, and classifier, ensuring they share configuration.
type Provider interface {
	// SkillExtractor returns the skill extraction service.
	SkillExtractor() SkillExtractor

	// GapAnalyst returns the gap analysis service.
	GapAnalyst() GapAnalyst

	// StoryWriter returns the CV rewrite service.
	StoryWriter() StoryWriter

	// Classifier returns the batch clustering service.
	Classifier() Classifier

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}
