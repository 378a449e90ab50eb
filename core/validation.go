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


package core

import "fmt"

// ValidateCandidate validates a Candidate according to domain rules.
//
// Validation rules:
//   - Name must not be empty (after trimming)
//   - Confidence must be in [0,1]
//   - Kind and Unlock must hold valid values
//
// NOT validated (defaulted at the oracle boundary):
//   - Cluster (may be empty until the adapter applies the fallback)
//   - Source (set by the adapter, not the oracle)
func ValidateCandidate(candidate *Candidate) error {
	if candidate == nil {
		return fmt.Errorf("%w: candidate is nil", ErrInvalidCandidate)
	}

	if MergeKey(candidate.Name) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidCandidate, ErrEmptyName)
	}

	if candidate.Confidence < 0 || candidate.Confidence > 1 {
		return fmt.Errorf("%w: %w (%g)", ErrInvalidCandidate, ErrConfidenceOutOfRange, candidate.Confidence)
	}

	if err := ValidateKind(candidate.Kind); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidCandidate, err)
	}

	if err := ValidateUnlockState(candidate.Unlock); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidCandidate, err)
	}

	return nil
}

// ValidateSkill validates a merged Skill before persistence.
func ValidateSkill(skill *Skill) error {
	if skill == nil {
		return fmt.Errorf("%w: skill is nil", ErrInvalidSkill)
	}

	if MergeKey(skill.Name) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidSkill, ErrEmptyName)
	}

	if skill.Confidence < 0 || skill.Confidence > 1 {
		return fmt.Errorf("%w: %w (%g)", ErrInvalidSkill, ErrConfidenceOutOfRange, skill.Confidence)
	}

	if err := ValidateKind(skill.Kind); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSkill, err)
	}

	if err := ValidateUnlockState(skill.Unlock); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSkill, err)
	}

	return nil
}

// ValidateProfile validates a Profile according to domain rules.
func ValidateProfile(profile *Profile) error {
	if profile == nil {
		return fmt.Errorf("%w: profile is nil", ErrInvalidProfile)
	}

	if profile.DisplayName == "" {
		return fmt.Errorf("%w: %w", ErrInvalidProfile, ErrEmptyDisplayName)
	}

	return nil
}

// ValidateKind validates that a Kind has a valid value.
func ValidateKind(kind Kind) error {
	if kind != KindExplicit && kind != KindImplicit {
		return fmt.Errorf("%w: value %d", ErrInvalidKind, kind)
	}
	return nil
}

// ValidateUnlockState validates that an UnlockState has a valid value.
func ValidateUnlockState(state UnlockState) error {
	if state != UnlockLocked && state != UnlockUnlocked {
		return fmt.Errorf("%w: value %d", ErrInvalidUnlockState, state)
	}
	return nil
}
