package mock

import (
	"context"
	"strings"
	"sync"

	"github.com/veyra/skillmap/ai"
	"github.com/veyra/skillmap/core"
)

var _ ai.SkillExtractor = (*SkillExtractor)(nil)

// SkillExtractor is a test double for ai.SkillExtractor.
// It allows custom behavior injection via function fields.
type SkillExtractor struct {
	// ExtractSkillsFunc is called by ExtractSkills if set.
	// If nil, uses default word-based candidate generation.
	ExtractSkillsFunc func(ctx context.Context, text string, source string) ([]core.Candidate, error)

	mu        sync.Mutex
	callCount int
}

// NewSkillExtractor creates a mock skill extractor with default behavior.
// Note: returns the concrete type to allow test assertions and injection.
func NewSkillExtractor() *SkillExtractor {
	return &SkillExtractor{}
}

// ExtractSkills produces simple mock candidates from text.
// Default behavior: each whitespace-separated word becomes one explicit
// candidate with decreasing confidence, capped at five.
func (m *SkillExtractor) ExtractSkills(ctx context.Context, text string, source string) ([]core.Candidate, error) {
	m.mu.Lock()
	m.callCount++
	m.mu.Unlock()

	if m.ExtractSkillsFunc != nil {
		return m.ExtractSkillsFunc(ctx, text, source)
	}

	words := strings.Fields(text)
	candidates := make([]core.Candidate, 0, len(words))
	confidence := 0.9
	for i, word := range words {
		if i >= 5 {
			break
		}

		word = strings.Trim(word, ".,!?;:\"'()[]{}")
		if word == "" {
			continue
		}

		unlock := core.UnlockLocked
		if confidence >= 0.7 {
			unlock = core.UnlockUnlocked
		}

		candidates = append(candidates, core.Candidate{
			Name:       word,
			Kind:       core.KindExplicit,
			Confidence: confidence,
			Evidence:   []string{text},
			Cluster:    core.DefaultCluster,
			Unlock:     unlock,
			Source:     source,
		})

		if confidence > 0.2 {
			confidence -= 0.1
		}
	}

	return candidates, nil
}

// CallCount returns the number of times ExtractSkills was called.
func (m *SkillExtractor) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callCount
}

// Reset clears the call count and custom functions.
func (m *SkillExtractor) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callCount = 0
	m.ExtractSkillsFunc = nil
}
