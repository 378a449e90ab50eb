package openai

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/veyra/skillmap/ai"
	"github.com/veyra/skillmap/core"
)

// StoryWriter implements ai.StoryWriter using OpenAI-compatible chat APIs.
type StoryWriter struct {
	client llms.Model
	logger *slog.Logger
}

// wireSuggestion mirrors one rewrite entry in the model's JSON.
type wireSuggestion struct {
	SkillName string `json:"skill_name"`
	Original  string `json:"original"`
	Rewrite   string `json:"rewrite"`
	Rationale string `json:"rationale"`
}

type wireRewrites struct {
	Suggestions []wireSuggestion `json:"suggestions"`
}

func newStoryWriter(config *ai.Config) (*StoryWriter, error) {
	client, err := newClient(config)
	if err != nil {
		return nil, err
	}

	return &StoryWriter{
		client: client,
		logger: slog.Default().With("component", "openai-writer"),
	}, nil
}

// NewStoryWriter creates a new story writer using the provided configuration.
//
// Returns ai.StoryWriter interface to enforce abstraction.
func NewStoryWriter(config *ai.Config) (ai.StoryWriter, error) {
	return newStoryWriter(config)
}

// SuggestRewrites proposes CV bullet rewrites for the target role.
// Entries with an empty rewrite or an empty skill name are dropped;
// matching suggestions to skills the profile actually holds is the
// caller's concern.
func (w *StoryWriter) SuggestRewrites(ctx context.Context, skills []*core.Skill, targetRole string) ([]ai.Suggestion, error) {
	var result wireRewrites
	err := generateJSON(ctx, w.client, w.logger, "rewrite",
		buildRewritePrompt(), rewriteUserPrompt(skills, targetRole), &result)
	if err != nil {
		return nil, err
	}

	suggestions := make([]ai.Suggestion, 0, len(result.Suggestions))
	for _, s := range result.Suggestions {
		name := strings.TrimSpace(s.SkillName)
		rewrite := strings.TrimSpace(s.Rewrite)
		if name == "" || rewrite == "" {
			continue
		}
		suggestions = append(suggestions, ai.Suggestion{
			SkillName: name,
			Original:  strings.TrimSpace(s.Original),
			Rewrite:   rewrite,
			Rationale: strings.TrimSpace(s.Rationale),
		})
	}

	w.logger.Debug("rewrite suggestions complete",
		"role", targetRole,
		"returned", len(result.Suggestions),
		"kept", len(suggestions))

	return suggestions, nil
}

// rewriteUserPrompt renders the inventory with evidence into the user message.
func rewriteUserPrompt(skills []*core.Skill, targetRole string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Target role: %s\n\nSkill inventory with evidence:\n", scrubString(targetRole))
	for _, s := range skills {
		fmt.Fprintf(&b, "- %s (confidence: %.2f)\n", s.Name, s.Confidence)
		for _, e := range s.Evidence {
			fmt.Fprintf(&b, "    evidence: %s\n", e)
		}
	}
	return b.String()
}
