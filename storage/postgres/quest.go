package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/veyra/skillmap/core"
	"github.com/veyra/skillmap/storage"
)

// QuestRepository implements storage.QuestRepository for PostgreSQL.
type QuestRepository struct {
	backend *Backend
}

var _ storage.QuestRepository = (*QuestRepository)(nil)

// NewQuestRepository creates a new QuestRepository.
func NewQuestRepository(backend *Backend) *QuestRepository {
	return &QuestRepository{backend: backend}
}

// Close is a no-op; the backend owns the pool.
func (r *QuestRepository) Close() error {
	return nil
}

// WithTransaction delegates to the backend.
func (r *QuestRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

const questColumns = "id, profile_id, skill_id, skill_name, title, description, xp, done, inserted_at, updated_at"

func scanQuest(row pgx.Row) (*core.Quest, error) {
	var (
		quest   core.Quest
		id      int64
		skillID int64
	)
	err := row.Scan(&id, &quest.ProfileID, &skillID, &quest.SkillName, &quest.Title,
		&quest.Description, &quest.XP, &quest.Done, &quest.InsertedAt, &quest.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	quest.Id = core.ID(uint64(id))
	quest.SkillId = core.ID(uint64(skillID))
	return &quest, nil
}

// SyncQuests reconciles stored quests with the desired set in one
// transaction: missing quests are inserted, pending orphans removed, and
// done quests kept as they are.
func (r *QuestRepository) SyncQuests(ctx context.Context, profileID string, quests []*core.Quest) ([]*core.Quest, error) {
	tx, err := r.backend.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", storage.ErrTransactionFailed, err)
	}
	defer tx.Rollback(ctx)

	now := time.Now().UTC()
	desired := make([]int64, 0, len(quests))

	for _, quest := range quests {
		quest.ProfileID = profileID
		if quest.Id == 0 {
			quest.Id = core.QuestID(profileID, quest.SkillName)
		}
		desired = append(desired, int64(uint64(quest.Id)))

		_, err := tx.Exec(ctx,
			`INSERT INTO quests (id, profile_id, skill_id, skill_name, title,
			                     description, xp, done, inserted_at, updated_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, FALSE, $8, $8)
			 ON CONFLICT (profile_id, id) DO NOTHING`,
			int64(uint64(quest.Id)), profileID, int64(uint64(quest.SkillId)),
			quest.SkillName, quest.Title, quest.Description, quest.XP, now)
		if err != nil {
			return nil, err
		}
	}

	_, err = tx.Exec(ctx,
		`DELETE FROM quests
		 WHERE profile_id = $1 AND done = FALSE AND NOT (id = ANY($2))`,
		profileID, desired)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return r.ListQuests(ctx, profileID)
}

// ListQuests retrieves all quests of a profile.
func (r *QuestRepository) ListQuests(ctx context.Context, profileID string) ([]*core.Quest, error) {
	rows, err := r.backend.pool.Query(ctx,
		"SELECT "+questColumns+" FROM quests WHERE profile_id = $1 ORDER BY inserted_at", profileID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []*core.Quest
	for rows.Next() {
		quest, err := scanQuest(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, quest)
	}
	return results, rows.Err()
}

// GetQuest retrieves a single quest by profile and quest ID.
func (r *QuestRepository) GetQuest(ctx context.Context, profileID string, id core.ID) (*core.Quest, error) {
	row := r.backend.pool.QueryRow(ctx,
		"SELECT "+questColumns+" FROM quests WHERE profile_id = $1 AND id = $2",
		profileID, int64(uint64(id)))
	return scanQuest(row)
}

// UpdateQuest updates an existing quest.
func (r *QuestRepository) UpdateQuest(ctx context.Context, quest *core.Quest) (*core.Quest, error) {
	quest.UpdatedAt = time.Now().UTC()

	tag, err := r.backend.pool.Exec(ctx,
		`UPDATE quests
		 SET skill_name = $3, title = $4, description = $5, xp = $6, done = $7,
		     updated_at = $8
		 WHERE profile_id = $1 AND id = $2`,
		quest.ProfileID, int64(uint64(quest.Id)), quest.SkillName, quest.Title,
		quest.Description, quest.XP, quest.Done, quest.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, storage.ErrNotFound
	}
	return quest, nil
}
