// Package mock provides test double implementations of oracle service interfaces.
//
// This package contains mock implementations of ai.SkillExtractor and
// ai.Provider for use in unit tests. The mocks allow tests to run without
// an external model service and enable controlled, deterministic behavior.
//
// # Usage in Tests
//
//	// Basic usage with default behavior
//	provider := mock.NewProvider()
//	candidates, err := provider.SkillExtractor().ExtractSkills(ctx, "Go Kubernetes", "Text")
//
//	// Custom behavior injection
//	provider.GetMockExtractor().ExtractSkillsFunc = func(ctx context.Context, text, source string) ([]core.Candidate, error) {
//	    return []core.Candidate{{Name: "Go", Kind: core.KindExplicit, Confidence: 0.9, Source: source}}, nil
//	}
//
//	// Check call counts
//	count := provider.GetMockExtractor().CallCount()
//
// # Default Behavior
//
//   - SkillExtractor: turns the first five words of the input into explicit
//     candidates with decreasing confidence
//   - GapAnalyst: reports every held skill as matching at score 50
//   - StoryWriter: suggests one rewrite per skill with evidence
//   - Classifier: maps every name to the default cluster
package mock
