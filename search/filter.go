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


package search

import (
	"slices"
	"strings"

	"github.com/veyra/skillmap/core"
)

// Query narrows a profile's skills. Zero-value fields match everything.
type Query struct {
	// Text matches tokenized words against skill name and narrative.
	Text string

	// Cluster requires an exact cluster label match.
	Cluster string

	// State filters by unlock state ("locked" or "unlocked").
	State string
}

// Filter returns the skills matching the query, ordered by confidence
// descending then name. The input is not modified.
func Filter(skills []*core.Skill, query Query) []*core.Skill {
	var state core.UnlockState
	if query.State != "" {
		// Unknown state strings match nothing rather than everything
		parsed, ok := core.ParseUnlockState(query.State)
		if !ok {
			return nil
		}
		state = parsed
	}

	results := make([]*core.Skill, 0, len(skills))
	for _, skill := range skills {
		if query.Cluster != "" && skill.Cluster != query.Cluster {
			continue
		}
		if state != 0 && skill.Unlock != state {
			continue
		}
		if query.Text != "" && !matchesText(skill, query.Text) {
			continue
		}
		results = append(results, skill)
	}

	slices.SortStableFunc(results, func(a, b *core.Skill) int {
		if a.Confidence != b.Confidence {
			if a.Confidence > b.Confidence {
				return -1
			}
			return 1
		}
		return strings.Compare(a.Name, b.Name)
	})
	return results
}

// matchesText checks the query words against the skill's name and narrative.
func matchesText(skill *core.Skill, text string) bool {
	document := skill.Name + " " + skill.Narrative
	return containsAllQueryWords(document, text)
}
