// Copyright 2025 Veyra Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package mock

import (
	"context"

	"github.com/veyra/skillmap/ai"
	"github.com/veyra/skillmap/core"
)

// Provider is a test double for ai.Provider.
// It aggregates mock oracle services, each injectable via function fields.
type Provider struct {
	extractor *SkillExtractor

	// AnalyzeGapFunc overrides the gap analyst. If nil, a minimal
	// deterministic report is returned.
	AnalyzeGapFunc func(ctx context.Context, skills []*core.Skill, targetRole string) (*ai.GapReport, error)

	// SuggestRewritesFunc overrides the story writer. If nil, one
	// suggestion per skill with evidence is returned.
	SuggestRewritesFunc func(ctx context.Context, skills []*core.Skill, targetRole string) ([]ai.Suggestion, error)

	// ClusterSkillsFunc overrides the classifier. If nil, every name maps
	// to the default cluster.
	ClusterSkillsFunc func(ctx context.Context, names []string) (map[string]string, error)
}

// NewProvider creates a new mock provider with default mock services.
//
// Returns the concrete type so tests can reach the function fields and
// the underlying mock extractor.
func NewProvider() *Provider {
	return &Provider{
		extractor: NewSkillExtractor(),
	}
}

// SkillExtractor returns the mock skill extractor.
func (p *Provider) SkillExtractor() ai.SkillExtractor {
	return p.extractor
}

// GapAnalyst returns the mock gap analyst.
func (p *Provider) GapAnalyst() ai.GapAnalyst {
	return gapAnalystFunc(func(ctx context.Context, skills []*core.Skill, targetRole string) (*ai.GapReport, error) {
		if p.AnalyzeGapFunc != nil {
			return p.AnalyzeGapFunc(ctx, skills, targetRole)
		}
		report := &ai.GapReport{
			TargetRole: targetRole,
			MatchScore: 50,
			Summary:    "mock analysis",
		}
		for _, s := range skills {
			report.MatchingSkills = append(report.MatchingSkills, s.Name)
		}
		return report, nil
	})
}

// StoryWriter returns the mock story writer.
func (p *Provider) StoryWriter() ai.StoryWriter {
	return storyWriterFunc(func(ctx context.Context, skills []*core.Skill, targetRole string) ([]ai.Suggestion, error) {
		if p.SuggestRewritesFunc != nil {
			return p.SuggestRewritesFunc(ctx, skills, targetRole)
		}
		var suggestions []ai.Suggestion
		for _, s := range skills {
			if len(s.Evidence) == 0 {
				continue
			}
			suggestions = append(suggestions, ai.Suggestion{
				SkillName: s.Name,
				Original:  s.Evidence[0],
				Rewrite:   "Improved: " + s.Evidence[0],
				Rationale: "mock rationale",
			})
		}
		return suggestions, nil
	})
}

// Classifier returns the mock classifier.
func (p *Provider) Classifier() ai.Classifier {
	return classifierFunc(func(ctx context.Context, names []string) (map[string]string, error) {
		if p.ClusterSkillsFunc != nil {
			return p.ClusterSkillsFunc(ctx, names)
		}
		clusters := make(map[string]string, len(names))
		for _, name := range names {
			clusters[name] = core.DefaultCluster
		}
		return clusters, nil
	})
}

// Close is a no-op for the mock provider.
func (p *Provider) Close() error {
	return nil
}

// GetMockExtractor returns the underlying mock extractor for test assertions.
// This allows tests to check call counts and inject custom behavior.
func (p *Provider) GetMockExtractor() *SkillExtractor {
	return p.extractor
}

// Function adapters so the injectable fields satisfy the ai interfaces.

type gapAnalystFunc func(ctx context.Context, skills []*core.Skill, targetRole string) (*ai.GapReport, error)

func (f gapAnalystFunc) AnalyzeGap(ctx context.Context, skills []*core.Skill, targetRole string) (*ai.GapReport, error) {
	return f(ctx, skills, targetRole)
}

type storyWriterFunc func(ctx context.Context, skills []*core.Skill, targetRole string) ([]ai.Suggestion, error)

func (f storyWriterFunc) SuggestRewrites(ctx context.Context, skills []*core.Skill, targetRole string) ([]ai.Suggestion, error) {
	return f(ctx, skills, targetRole)
}

type classifierFunc func(ctx context.Context, names []string) (map[string]string, error)

func (f classifierFunc) ClusterSkills(ctx context.Context, names []string) (map[string]string, error) {
	return f(ctx, names)
}
