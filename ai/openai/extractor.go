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
	"log/slog"
	"slices"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/veyra/skillmap/ai"
	"github.com/veyra/skillmap/core"
)

// SkillExtractor implements ai.SkillExtractor using OpenAI-compatible chat APIs.
type SkillExtractor struct {
	client          llms.Model
	minConfidence   float64
	maxEvidence     int
	unlockThreshold float64
	logger          *slog.Logger
}

// wireSkill is an internal type used for JSON unmarshaling.
// It matches the structure expected from the model.
type wireSkill struct {
	Name       string   `json:"name"`
	Kind       string   `json:"kind"`
	Confidence float64  `json:"confidence"`
	Evidence   []string `json:"evidence"`
	Cluster    string   `json:"cluster"`
	Narrative  string   `json:"narrative"`
	State      string   `json:"state"`
}

// extraction is the wrapper structure for the model's JSON response.
type extraction struct {
	Skills []wireSkill `json:"skills"`
}

// newSkillExtractor is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newSkillExtractor(config *ai.Config) (*SkillExtractor, error) {
	client, err := newClient(config)
	if err != nil {
		return nil, err
	}

	return &SkillExtractor{
		client:          client,
		minConfidence:   config.MinConfidence,
		maxEvidence:     config.MaxEvidence,
		unlockThreshold: config.UnlockThreshold,
		logger:          slog.Default().With("component", "openai-extractor"),
	}, nil
}

// NewSkillExtractor creates a new skill extractor using the provided configuration.
//
// Returns ai.SkillExtractor interface to enforce abstraction.
func NewSkillExtractor(config *ai.Config) (ai.SkillExtractor, error) {
	return newSkillExtractor(config)
}

// ExtractSkills extracts skill candidates from text using the oracle.
// The raw response is validated and normalized before it leaves this
// boundary: blank names are dropped, confidence is clamped, missing
// clusters and kinds receive defaults, the unlock state is derived from
// confidence when absent, and evidence is capped.
func (e *SkillExtractor) ExtractSkills(ctx context.Context, text string, source string) ([]core.Candidate, error) {
	text = scrubString(text)

	var result extraction
	err := generateJSON(ctx, e.client, e.logger, "extract",
		buildExtractionPrompt(e.maxEvidence), text, &result)
	if err != nil {
		return nil, err
	}

	candidates := make([]core.Candidate, 0, len(result.Skills))
	for _, s := range result.Skills {
		c, ok := e.normalize(s, source)
		if !ok {
			continue
		}
		candidates = append(candidates, c)
	}

	// Sort by confidence (descending) so callers see the strongest claims first.
	slices.SortStableFunc(candidates, func(a, b core.Candidate) int {
		if a.Confidence > b.Confidence {
			return -1
		}
		if a.Confidence < b.Confidence {
			return 1
		}
		return 0
	})

	e.logger.Debug("extracted skills",
		"source", source,
		"total", len(result.Skills),
		"kept", len(candidates))

	return candidates, nil
}

// normalize coerces one wire skill into a valid candidate. Returns false
// when the entry must be dropped entirely.
func (e *SkillExtractor) normalize(s wireSkill, source string) (core.Candidate, bool) {
	name := strings.TrimSpace(s.Name)
	if name == "" {
		return core.Candidate{}, false
	}

	confidence := clamp01(s.Confidence)
	if confidence < e.minConfidence {
		return core.Candidate{}, false
	}

	kind, ok := core.ParseKind(s.Kind)
	if !ok {
		kind = core.KindExplicit
	}

	cluster := strings.TrimSpace(s.Cluster)
	if cluster == "" {
		cluster = core.DefaultCluster
	}

	unlock, ok := core.ParseUnlockState(s.State)
	if !ok {
		if confidence >= e.unlockThreshold {
			unlock = core.UnlockUnlocked
		} else {
			unlock = core.UnlockLocked
		}
	}

	evidence := make([]string, 0, len(s.Evidence))
	for _, snippet := range s.Evidence {
		snippet = strings.TrimSpace(snippet)
		if snippet == "" {
			continue
		}
		evidence = append(evidence, snippet)
		if len(evidence) == e.maxEvidence {
			break
		}
	}

	return core.Candidate{
		Name:       name,
		Kind:       kind,
		Confidence: confidence,
		Evidence:   evidence,
		Cluster:    cluster,
		Narrative:  strings.TrimSpace(s.Narrative),
		Unlock:     unlock,
		Source:     source,
	}, true
}
