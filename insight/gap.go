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


package insight

import (
	"context"
	"log/slog"
	"strings"

	"github.com/veyra/skillmap/ai"
	"github.com/veyra/skillmap/storage"
)

// GapService compares a profile's skill inventory against a target role.
type GapService struct {
	analyst ai.GapAnalyst
	skills  storage.SkillRepository
	logger  *slog.Logger
}

// NewGapService creates a gap analysis service.
func NewGapService(analyst ai.GapAnalyst, skills storage.SkillRepository) *GapService {
	return &GapService{
		analyst: analyst,
		skills:  skills,
		logger:  slog.Default().With("component", "gap-service"),
	}
}

// Analyze loads the profile's skills and asks the oracle how they match the
// target role. The oracle's report is normalized before return; skill names
// it echoes back are validated against the local inventory.
func (s *GapService) Analyze(ctx context.Context, profileID, targetRole string) (*ai.GapReport, error) {
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

	report, err := s.analyst.AnalyzeGap(ctx, skills, targetRole)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("gap analysis complete",
		"profile_id", profileID, "role", targetRole, "score", report.MatchScore)
	return report, nil
}
