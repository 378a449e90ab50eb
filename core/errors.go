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

import "errors"

// Domain validation errors
var (
	// ErrInvalidCandidate indicates a Candidate failed validation.
	ErrInvalidCandidate = errors.New("invalid candidate")

	// ErrInvalidSkill indicates a Skill failed validation.
	ErrInvalidSkill = errors.New("invalid skill")

	// ErrInvalidProfile indicates a Profile failed validation.
	ErrInvalidProfile = errors.New("invalid profile")

	// ErrEmptyName indicates the Name field is empty.
	ErrEmptyName = errors.New("name cannot be empty")

	// ErrConfidenceOutOfRange indicates a confidence outside [0,1].
	ErrConfidenceOutOfRange = errors.New("confidence must be between 0 and 1")

	// ErrInvalidKind indicates an invalid Kind value.
	ErrInvalidKind = errors.New("invalid skill kind")

	// ErrInvalidUnlockState indicates an invalid UnlockState value.
	ErrInvalidUnlockState = errors.New("invalid unlock state")

	// ErrEmptyDisplayName indicates the profile DisplayName field is empty.
	ErrEmptyDisplayName = errors.New("display name cannot be empty")
)
