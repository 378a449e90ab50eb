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


package merge

import (
	"strings"

	"github.com/veyra/skillmap/core"
)

// accumulator carries the merge state for one key between occurrences.
type accumulator struct {
	skill        *core.Skill
	seenEvidence map[string]bool
	seenSources  map[string]bool
	sources      []string
}

// Merge deduplicates candidates into skills, keyed by case-folded trimmed
// name. It is a pure function: same ordered input, same output. No I/O, no
// randomness.
//
// The first candidate for a key is copied verbatim. Each later candidate
// for the same key updates the accumulator:
//   - confidence becomes the pairwise mean of the current value and the new
//     candidate's confidence. With three or more contributors this is NOT
//     the true arithmetic mean; the running formula ((a+b)/2+c)/2 is the
//     contract, so merge order matters for the exact value.
//   - evidence becomes the set union, deduplicated by exact string match,
//     in first-appearance order.
//   - the source label becomes the ", "-joined list of distinct
//     contributing labels in first-contribution order.
//   - every other field keeps the first-seen value.
//
// Output order is first-seen-key order. Empty input returns an empty slice.
func Merge(candidates []core.Candidate) []core.Skill {
	accs := make(map[string]*accumulator, len(candidates))
	order := make([]string, 0, len(candidates))

	for i := range candidates {
		c := &candidates[i]
		key := core.MergeKey(c.Name)
		if key == "" {
			continue
		}

		acc, ok := accs[key]
		if !ok {
			acc = newAccumulator(c)
			accs[key] = acc
			order = append(order, key)
			continue
		}

		acc.absorb(c)
	}

	skills := make([]core.Skill, 0, len(order))
	for _, key := range order {
		acc := accs[key]
		acc.skill.Source = strings.Join(acc.sources, ", ")
		skills = append(skills, *acc.skill)
	}
	return skills
}

// newAccumulator seeds the merge state from the first candidate for a key.
func newAccumulator(c *core.Candidate) *accumulator {
	evidence := make([]string, 0, len(c.Evidence))
	seenEvidence := make(map[string]bool, len(c.Evidence))
	for _, e := range c.Evidence {
		if seenEvidence[e] {
			continue
		}
		seenEvidence[e] = true
		evidence = append(evidence, e)
	}

	acc := &accumulator{
		skill: &core.Skill{
			Name:       c.Name,
			Kind:       c.Kind,
			Confidence: c.Confidence,
			Evidence:   evidence,
			Cluster:    c.Cluster,
			Narrative:  c.Narrative,
			Unlock:     c.Unlock,
		},
		seenEvidence: seenEvidence,
		seenSources:  make(map[string]bool, 2),
	}
	if c.Source != "" {
		acc.seenSources[c.Source] = true
		acc.sources = append(acc.sources, c.Source)
	}
	return acc
}

// absorb folds a duplicate candidate into the accumulator. Scalar fields
// other than confidence are first-writer-wins and stay untouched.
func (acc *accumulator) absorb(c *core.Candidate) {
	acc.skill.Confidence = (acc.skill.Confidence + c.Confidence) / 2

	for _, e := range c.Evidence {
		if acc.seenEvidence[e] {
			continue
		}
		acc.seenEvidence[e] = true
		acc.skill.Evidence = append(acc.skill.Evidence, e)
	}

	if c.Source != "" && !acc.seenSources[c.Source] {
		acc.seenSources[c.Source] = true
		acc.sources = append(acc.sources, c.Source)
	}
}
