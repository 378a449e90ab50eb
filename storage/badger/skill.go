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


package badger

import (
	"context"
	"errors"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/veyra/skillmap/core"
	"github.com/veyra/skillmap/storage"
)

// SkillRepository implements storage.SkillRepository for BadgerDB.
type SkillRepository struct {
	backend *Backend
}

var _ storage.SkillRepository = (*SkillRepository)(nil)

// NewSkillRepository creates a new SkillRepository.
func NewSkillRepository(backend *Backend) *SkillRepository {
	return &SkillRepository{backend: backend}
}

// Close is a no-op; the backend owns the database handle.
func (r *SkillRepository) Close() error {
	return nil
}

// WithTransaction delegates to the backend.
func (r *SkillRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// ReplaceSkills atomically replaces the profile's entire skill set.
// Existing skills are removed and the new batch written in one transaction,
// so a failure leaves the previous set intact.
func (r *SkillRepository) ReplaceSkills(ctx context.Context, profileID string, skills []*core.Skill) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		if err := deletePrefix(tx, makeSkillPrefix(profileID)); err != nil {
			return err
		}

		now := time.Now().UTC()
		for _, skill := range skills {
			skill.ProfileID = profileID
			if skill.Id == 0 {
				skill.Id = core.SkillID(profileID, skill.Name)
			}
			if skill.InsertedAt.IsZero() {
				skill.InsertedAt = now
			}
			skill.UpdatedAt = now

			key := makeSkillKey(profileID, skill.Id)
			if err := tx.Set(key, storage.MarshalSkill(skill)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// ListSkills retrieves all skills of a profile in key order.
func (r *SkillRepository) ListSkills(ctx context.Context, profileID string) ([]*core.Skill, error) {
	var results []*core.Skill
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makeSkillPrefix(profileID)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var skill *core.Skill
			err := iter.Item().Value(func(val []byte) error {
				var err error
				skill, err = storage.UnmarshalSkill(val)
				return err
			})
			if err != nil {
				return err
			}
			results = append(results, skill)
		}
		return nil
	}, false)
	return results, err
}

// GetSkill retrieves a single skill by profile and skill ID.
func (r *SkillRepository) GetSkill(ctx context.Context, profileID string, id core.ID) (*core.Skill, error) {
	var result *core.Skill
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeSkillKey(profileID, id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return storage.ErrNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			result, err = storage.UnmarshalSkill(val)
			return err
		})
	}, false)
	return result, err
}

// UpdateSkill updates an existing skill.
func (r *SkillRepository) UpdateSkill(ctx context.Context, skill *core.Skill) (*core.Skill, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeSkillKey(skill.ProfileID, skill.Id)

		item, err := tx.Get(key)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return storage.ErrNotFound
		}
		if err != nil {
			return err
		}

		var old *core.Skill
		if err := item.Value(func(val []byte) error {
			old, err = storage.UnmarshalSkill(val)
			return err
		}); err != nil {
			return err
		}

		skill.InsertedAt = old.InsertedAt
		skill.UpdatedAt = time.Now().UTC()

		if err := tx.Set(key, storage.MarshalSkill(skill)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)

	if err != nil {
		return nil, err
	}
	return skill, nil
}

// CountByProfile returns the number of skills stored for a profile.
func (r *SkillRepository) CountByProfile(ctx context.Context, profileID string) (int, error) {
	count := 0
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makeSkillPrefix(profileID)
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			count++
		}
		return nil
	}, false)
	return count, err
}
