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


package share

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/veyra/skillmap/storage"
)

// PublicSkill is the redacted public serialization of a skill. Evidence
// contents quote private source documents, so only the snippet count is
// exposed.
type PublicSkill struct {
	SkillName       string  `json:"skill_name"`
	SkillType       string  `json:"skill_type"`
	ConfidenceScore float64 `json:"confidence_score"`
	EvidenceCount   int     `json:"evidence_count"`
	Cluster         string  `json:"cluster"`
	Microstory      string  `json:"microstory,omitempty"`
	State           string  `json:"state"`
}

// PublicProfile is the public view of a shared profile.
type PublicProfile struct {
	DisplayName string        `json:"display_name"`
	Headline    string        `json:"headline,omitempty"`
	Slug        string        `json:"slug"`
	Skills      []PublicSkill `json:"skills"`
}

// Service manages public profile sharing.
type Service struct {
	profiles storage.ProfileRepository
	skills   storage.SkillRepository
	logger   *slog.Logger
}

// NewService creates a sharing service.
func NewService(profiles storage.ProfileRepository, skills storage.SkillRepository) *Service {
	return &Service{
		profiles: profiles,
		skills:   skills,
		logger:   slog.Default().With("component", "share-service"),
	}
}

// Publish marks the profile shared and returns its slug. The slug is minted
// once (slugified display name plus a uuid fragment) and stable across
// republishing.
func (s *Service) Publish(ctx context.Context, profileID string) (string, error) {
	profile, err := s.profiles.GetProfile(ctx, profileID)
	if err != nil {
		return "", err
	}

	if profile.ShareSlug == "" {
		profile.ShareSlug = slugify(profile.DisplayName) + "-" + uuid.NewString()[:8]
	}
	profile.Shared = true
	if _, err := s.profiles.UpdateProfile(ctx, profile); err != nil {
		return "", err
	}

	s.logger.Info("profile published", "profile_id", profileID, "slug", profile.ShareSlug)
	return profile.ShareSlug, nil
}

// Unpublish clears the shared flag. The slug stays reserved so republishing
// restores the same URL.
func (s *Service) Unpublish(ctx context.Context, profileID string) error {
	profile, err := s.profiles.GetProfile(ctx, profileID)
	if err != nil {
		return err
	}
	if !profile.Shared {
		return nil
	}

	profile.Shared = false
	_, err = s.profiles.UpdateProfile(ctx, profile)
	return err
}

// View assembles the public profile behind a slug. Unknown slugs return
// storage.ErrNotFound; known slugs of unshared profiles return ErrNotShared.
func (s *Service) View(ctx context.Context, slug string) (*PublicProfile, error) {
	profile, err := s.profiles.GetProfileBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if !profile.Shared {
		return nil, ErrNotShared
	}

	skills, err := s.skills.ListSkills(ctx, profile.ID)
	if err != nil {
		return nil, err
	}

	public := &PublicProfile{
		DisplayName: profile.DisplayName,
		Headline:    profile.Headline,
		Slug:        profile.ShareSlug,
		Skills:      make([]PublicSkill, 0, len(skills)),
	}
	for _, skill := range skills {
		public.Skills = append(public.Skills, PublicSkill{
			SkillName:       skill.Name,
			SkillType:       skill.Kind.String(),
			ConfidenceScore: skill.Confidence,
			EvidenceCount:   len(skill.Evidence),
			Cluster:         skill.Cluster,
			Microstory:      skill.Narrative,
			State:           skill.Unlock.String(),
		})
	}
	return public, nil
}

// slugify lowercases the name and collapses runs of non-alphanumerics into
// single hyphens.
func slugify(name string) string {
	var buf strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			buf.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				buf.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	slug := strings.TrimSuffix(buf.String(), "-")
	if slug == "" {
		slug = "profile"
	}
	return slug
}
