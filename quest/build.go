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


package quest

import (
	"math"

	"github.com/veyra/skillmap/core"
)

// XP bounds for generated quests.
const (
	minXP = 50
	maxXP = 650
)

// Build generates one quest per locked skill. Unlocked skills never get
// quests. The output is deterministic: quest IDs derive from the profile and
// skill name, and XP derives from how far the skill's confidence sits below
// threshold.
func Build(profileID string, skills []*core.Skill, threshold float64) []*core.Quest {
	var quests []*core.Quest
	for _, skill := range skills {
		if skill.Unlock != core.UnlockLocked {
			continue
		}

		quests = append(quests, &core.Quest{
			Id:          core.QuestID(profileID, skill.Name),
			ProfileID:   profileID,
			SkillId:     skill.Id,
			SkillName:   skill.Name,
			Title:       "Prove your " + skill.Name,
			Description: describe(skill),
			XP:          xpFor(skill.Confidence, threshold),
		})
	}
	return quests
}

// describe builds the quest description from the skill's cluster and first
// evidence snippet.
func describe(skill *core.Skill) string {
	desc := skill.Cluster
	if len(skill.Evidence) > 0 {
		if desc != "" {
			desc += ": "
		}
		desc += skill.Evidence[0]
	}
	return desc
}

// xpFor scales XP with the confidence shortfall: the further below the
// unlock threshold, the more the quest is worth.
func xpFor(confidence, threshold float64) int {
	xp := int(math.Round((threshold - confidence) * 1000))
	if xp < minXP {
		xp = minXP
	}
	if xp > maxXP {
		xp = maxXP
	}
	return xp
}
