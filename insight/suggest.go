package insight

import (
	"context"
	"log/slog"
	"strings"

	"github.com/veyra/skillmap/ai"
	"github.com/veyra/skillmap/core"
	"github.com/veyra/skillmap/storage"
)

// SuggestService produces CV bullet rewrites angled at a target role.
type SuggestService struct {
	writer ai.StoryWriter
	skills storage.SkillRepository
	logger *slog.Logger
}

// NewSuggestService creates a rewrite suggestion service.
func NewSuggestService(writer ai.StoryWriter, skills storage.SkillRepository) *SuggestService {
	return &SuggestService{
		writer: writer,
		skills: skills,
		logger: slog.Default().With("component", "suggest-service"),
	}
}

// Rewrites asks the oracle to rewrite the profile's evidence lines for the
// target role. Suggestions naming skills the profile doesn't hold are
// dropped: the oracle is never trusted to invent inventory.
func (s *SuggestService) Rewrites(ctx context.Context, profileID, targetRole string) ([]ai.Suggestion, error) {
	targetRole = strings.TrimSpace(targetRole)
	if targetRole == "" {
		return nil, ErrEmptyRole
	}

	skills, err := s.skills.ListSkills(ctx, profileID)
	if err != nil {
		return nil, err
	}
	if len(skills) == 0 {
		return nil, ErrNoSkills
	}

	suggestions, err := s.writer.SuggestRewrites(ctx, skills, targetRole)
	if err != nil {
		return nil, err
	}

	known := make(map[string]bool, len(skills))
	for _, skill := range skills {
		known[core.MergeKey(skill.Name)] = true
	}

	kept := suggestions[:0]
	for _, suggestion := range suggestions {
		if !known[core.MergeKey(suggestion.SkillName)] {
			s.logger.Debug("dropping suggestion for unknown skill",
				"skill", suggestion.SkillName)
			continue
		}
		kept = append(kept, suggestion)
	}

	return kept, nil
}
