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


package openai

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/veyra/skillmap/ai"
	"github.com/veyra/skillmap/core"
)

// GapAnalyst implements ai.GapAnalyst using OpenAI-compatible chat APIs.
type GapAnalyst struct {
	client llms.Model
	logger *slog.Logger
}

// wireGap mirrors the model's gap report JSON.
type wireGap struct {
	MatchScore     int              `json:"match_score"`
	MatchingSkills []string         `json:"matching_skills"`
	MissingSkills  []wireGapMissing `json:"missing_skills"`
	Summary        string           `json:"summary"`
}

type wireGapMissing struct {
	Name       string `json:"name"`
	Cluster    string `json:"cluster"`
	Priority   string `json:"priority"`
	Suggestion string `json:"suggestion"`
}

func newGapAnalyst(config *ai.Config) (*GapAnalyst, error) {
	client, err := newClient(config)
	if err != nil {
		return nil, err
	}

	return &GapAnalyst{
		client: client,
		logger: slog.Default().With("component", "openai-analyst"),
	}, nil
}

// NewGapAnalyst creates a new gap analyst using the provided configuration.
//
// Returns ai.GapAnalyst interface to enforce abstraction.
func NewGapAnalyst(config *ai.Config) (ai.GapAnalyst, error) {
	return newGapAnalyst(config)
}

// AnalyzeGap compares the skill inventory against a target role.
// Matching skill names are recomputed locally against the inventory
// rather than trusted from the model, the score is clamped to [0,100],
// and invalid priorities fall back to the default.
func (a *GapAnalyst) AnalyzeGap(ctx context.Context, skills []*core.Skill, targetRole string) (*ai.GapReport, error) {
	var result wireGap
	err := generateJSON(ctx, a.client, a.logger, "gap",
		buildGapPrompt(), gapUserPrompt(skills, targetRole), &result)
	if err != nil {
		return nil, err
	}

	known := make(map[string]string, len(skills)) // merge key -> canonical name
	for _, s := range skills {
		known[core.MergeKey(s.Name)] = s.Name
	}

	report := &ai.GapReport{
		TargetRole: targetRole,
		MatchScore: result.MatchScore,
		Summary:    strings.TrimSpace(result.Summary),
	}
	if report.MatchScore < 0 {
		report.MatchScore = 0
	}
	if report.MatchScore > 100 {
		report.MatchScore = 100
	}

	// Echo only names the profile actually holds, in canonical spelling.
	seen := make(map[string]bool, len(result.MatchingSkills))
	for _, name := range result.MatchingSkills {
		key := core.MergeKey(name)
		canonical, ok := known[key]
		if !ok || seen[key] {
			continue
		}
		seen[key] = true
		report.MatchingSkills = append(report.MatchingSkills, canonical)
	}

	for _, m := range result.MissingSkills {
		name := strings.TrimSpace(m.Name)
		if name == "" {
			continue
		}
		// A skill the profile already has is not missing, whatever the
		// model says.
		if _, ok := known[core.MergeKey(name)]; ok {
			continue
		}

		cluster := strings.TrimSpace(m.Cluster)
		if cluster == "" {
			cluster = core.DefaultCluster
		}
		priority := strings.ToLower(strings.TrimSpace(m.Priority))
		if !slices.Contains(ai.Priorities, priority) {
			priority = ai.DefaultPriority
		}

		report.MissingSkills = append(report.MissingSkills, ai.MissingSkill{
			Name:       name,
			Cluster:    cluster,
			Priority:   priority,
			Suggestion: strings.TrimSpace(m.Suggestion),
		})
	}

	a.logger.Debug("gap analysis complete",
		"role", targetRole,
		"score", report.MatchScore,
		"matching", len(report.MatchingSkills),
		"missing", len(report.MissingSkills))

	return report, nil
}

// gapUserPrompt renders the skill inventory and role into the user message.
func gapUserPrompt(skills []*core.Skill, targetRole string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Target role: %s\n\nSkill inventory:\n", scrubString(targetRole))
	for _, s := range skills {
		fmt.Fprintf(&b, "- %s (%s, cluster: %s, confidence: %.2f)\n",
			s.Name, s.Kind, s.Cluster, s.Confidence)
	}
	return b.String()
}
