package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/veyra/skillmap/core"
	"github.com/veyra/skillmap/storage"
)

// SkillRepository implements storage.SkillRepository for PostgreSQL.
type SkillRepository struct {
	backend *Backend
}

var _ storage.SkillRepository = (*SkillRepository)(nil)

// NewSkillRepository creates a new SkillRepository.
func NewSkillRepository(backend *Backend) *SkillRepository {
	return &SkillRepository{backend: backend}
}

// Close is a no-op; the backend owns the pool.
func (r *SkillRepository) Close() error {
	return nil
}

// WithTransaction delegates to the backend.
func (r *SkillRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

const skillColumns = "id, profile_id, name, kind, confidence, evidence, cluster, narrative, unlock_state, source, inserted_at, updated_at"

func scanSkill(row pgx.Row) (*core.Skill, error) {
	var (
		skill    core.Skill
		id       int64
		kind     int16
		unlock   int16
		evidence []byte
	)
	err := row.Scan(&id, &skill.ProfileID, &skill.Name, &kind, &skill.Confidence,
		&evidence, &skill.Cluster, &skill.Narrative, &unlock, &skill.Source,
		&skill.InsertedAt, &skill.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	// BIGINT carries the uint64 bits of the content-derived ID
	skill.Id = core.ID(uint64(id))
	skill.Kind = core.Kind(kind)
	skill.Unlock = core.UnlockState(unlock)

	if len(evidence) > 0 {
		if err := json.Unmarshal(evidence, &skill.Evidence); err != nil {
			return nil, fmt.Errorf("%w: evidence: %w", storage.ErrSerializationFailed, err)
		}
	}
	return &skill, nil
}

// ReplaceSkills atomically replaces the profile's entire skill set.
func (r *SkillRepository) ReplaceSkills(ctx context.Context, profileID string, skills []*core.Skill) error {
	tx, err := r.backend.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%w: %w", storage.ErrTransactionFailed, err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, "DELETE FROM skills WHERE profile_id = $1", profileID); err != nil {
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

		evidence, err := json.Marshal(skill.Evidence)
		if err != nil {
			return fmt.Errorf("%w: evidence: %w", storage.ErrSerializationFailed, err)
		}

		_, err = tx.Exec(ctx,
			`INSERT INTO skills (id, profile_id, merge_key, name, kind, confidence,
			                     evidence, cluster, narrative, unlock_state, source,
			                     inserted_at, updated_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
			int64(uint64(skill.Id)), profileID, core.MergeKey(skill.Name), skill.Name,
			int16(skill.Kind), skill.Confidence, evidence, skill.Cluster,
			skill.Narrative, int16(skill.Unlock), skill.Source,
			skill.InsertedAt, skill.UpdatedAt)
		if err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

// ListSkills retrieves all skills of a profile.
func (r *SkillRepository) ListSkills(ctx context.Context, profileID string) ([]*core.Skill, error) {
	rows, err := r.backend.pool.Query(ctx,
		"SELECT "+skillColumns+" FROM skills WHERE profile_id = $1 ORDER BY merge_key", profileID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []*core.Skill
	for rows.Next() {
		skill, err := scanSkill(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, skill)
	}
	return results, rows.Err()
}

// GetSkill retrieves a single skill by profile and skill ID.
func (r *SkillRepository) GetSkill(ctx context.Context, profileID string, id core.ID) (*core.Skill, error) {
	row := r.backend.pool.QueryRow(ctx,
		"SELECT "+skillColumns+" FROM skills WHERE profile_id = $1 AND id = $2",
		profileID, int64(uint64(id)))
	return scanSkill(row)
}

// UpdateSkill updates an existing skill.
func (r *SkillRepository) UpdateSkill(ctx context.Context, skill *core.Skill) (*core.Skill, error) {
	skill.UpdatedAt = time.Now().UTC()

	evidence, err := json.Marshal(skill.Evidence)
	if err != nil {
		return nil, fmt.Errorf("%w: evidence: %w", storage.ErrSerializationFailed, err)
	}

	tag, err := r.backend.pool.Exec(ctx,
		`UPDATE skills
		 SET name = $3, kind = $4, confidence = $5, evidence = $6, cluster = $7,
		     narrative = $8, unlock_state = $9, source = $10, updated_at = $11
		 WHERE profile_id = $1 AND id = $2`,
		skill.ProfileID, int64(uint64(skill.Id)), skill.Name, int16(skill.Kind),
		skill.Confidence, evidence, skill.Cluster, skill.Narrative,
		int16(skill.Unlock), skill.Source, skill.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, storage.ErrNotFound
	}
	return skill, nil
}

// CountByProfile returns the number of skills stored for a profile.
func (r *SkillRepository) CountByProfile(ctx context.Context, profileID string) (int, error) {
	var count int
	err := r.backend.pool.QueryRow(ctx,
		"SELECT COUNT(*) FROM skills WHERE profile_id = $1", profileID).Scan(&count)
	return count, err
}
