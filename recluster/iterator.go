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


package recluster

import (
	"context"

	"github.com/veyra/skillmap/core"
	"github.com/veyra/skillmap/storage"
)

const (
	// DefaultBatchSize is the default number of skills to process in each batch
	DefaultBatchSize = 50
)

// SkillIterator iterates over a profile's skills in batches.
type SkillIterator struct {
	skills    storage.SkillRepository
	batchSize int
}

// NewSkillIterator creates a new skill iterator.
// batchSize: number of skills to hand to fn in each batch (must be > 0)
func NewSkillIterator(skills storage.SkillRepository, batchSize int) *SkillIterator {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	return &SkillIterator{
		skills:    skills,
		batchSize: batchSize,
	}
}

// ForEach iterates over a profile's skills, calling fn for each batch.
// Iteration stops on first error from fn or when all skills are processed.
// Context cancellation is checked between batches.
func (it *SkillIterator) ForEach(ctx context.Context, profileID string, fn func([]*core.Skill) error) error {
	// Check context before starting
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	skills, err := it.skills.ListSkills(ctx, profileID)
	if err != nil {
		return err
	}

	if len(skills) == 0 {
		// No skills to process
		return nil
	}

	// Process skills in batches of batchSize
	for i := 0; i < len(skills); i += it.batchSize {
		end := i + it.batchSize
		if end > len(skills) {
			end = len(skills)
		}

		batch := skills[i:end]

		// Call user function with batch
		if err := fn(batch); err != nil {
			return err
		}

		// Check context after each batch
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
	}

	return nil
}
