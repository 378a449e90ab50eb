package badger

import (
	"context"
	"errors"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/veyra/skillmap/core"
	"github.com/veyra/skillmap/storage"
)

// QuestRepository implements storage.QuestRepository for BadgerDB.
type QuestRepository struct {
	backend *Backend
}

var _ storage.QuestRepository = (*QuestRepository)(nil)

// NewQuestRepository creates a new QuestRepository.
func NewQuestRepository(backend *Backend) *QuestRepository {
	return &QuestRepository{backend: backend}
}

// Close is a no-op; the backend owns the database handle.
func (r *QuestRepository) Close() error {
	return nil
}

// WithTransaction delegates to the backend.
func (r *QuestRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// SyncQuests reconciles stored quests with the desired set.
// Quests already stored keep their state (a done quest stays done), missing
// quests are inserted, and pending quests whose skill no longer needs them
// are removed. Done quests are never removed: they record earned XP.
func (r *QuestRepository) SyncQuests(ctx context.Context, profileID string, quests []*core.Quest) ([]*core.Quest, error) {
	var results []*core.Quest

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		stored, err := readQuests(tx, profileID)
		if err != nil {
			return err
		}

		storedByID := make(map[core.ID]*core.Quest, len(stored))
		for _, quest := range stored {
			storedByID[quest.Id] = quest
		}

		desired := make(map[core.ID]bool, len(quests))
		now := time.Now().UTC()

		for _, quest := range quests {
			quest.ProfileID = profileID
			if quest.Id == 0 {
				quest.Id = core.QuestID(profileID, quest.SkillName)
			}
			desired[quest.Id] = true

			if existing, ok := storedByID[quest.Id]; ok {
				results = append(results, existing)
				continue
			}

			quest.InsertedAt = now
			quest.UpdatedAt = now
			if err := tx.Set(makeQuestKey(profileID, quest.Id), storage.MarshalQuest(quest)); err != nil {
				return err
			}
			results = append(results, quest)
		}

		for _, quest := range stored {
			if desired[quest.Id] {
				continue
			}
			if quest.Done {
				results = append(results, quest)
				continue
			}
			if err := tx.Delete(makeQuestKey(profileID, quest.Id)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	if err != nil {
		return nil, err
	}
	return results, nil
}

// ListQuests retrieves all quests of a profile in key order.
func (r *QuestRepository) ListQuests(ctx context.Context, profileID string) ([]*core.Quest, error) {
	var results []*core.Quest
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		results, err = readQuests(tx, profileID)
		return err
	}, false)
	return results, err
}

// GetQuest retrieves a single quest by profile and quest ID.
func (r *QuestRepository) GetQuest(ctx context.Context, profileID string, id core.ID) (*core.Quest, error) {
	var result *core.Quest
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeQuestKey(profileID, id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return storage.ErrNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			result, err = storage.UnmarshalQuest(val)
			return err
		})
	}, false)
	return result, err
}

// UpdateQuest updates an existing quest.
func (r *QuestRepository) UpdateQuest(ctx context.Context, quest *core.Quest) (*core.Quest, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeQuestKey(quest.ProfileID, quest.Id)

		item, err := tx.Get(key)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return storage.ErrNotFound
		}
		if err != nil {
			return err
		}

		var old *core.Quest
		if err := item.Value(func(val []byte) error {
			old, err = storage.UnmarshalQuest(val)
			return err
		}); err != nil {
			return err
		}

		quest.InsertedAt = old.InsertedAt
		quest.UpdatedAt = time.Now().UTC()

		if err := tx.Set(key, storage.MarshalQuest(quest)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)

	if err != nil {
		return nil, err
	}
	return quest, nil
}

// readQuests collects all quests of a profile within the transaction.
func readQuests(tx *badger.Txn, profileID string) ([]*core.Quest, error) {
	var results []*core.Quest

	opts := badger.DefaultIteratorOptions
	opts.Prefix = makeQuestPrefix(profileID)
	iter := tx.NewIterator(opts)
	defer iter.Close()

	for iter.Rewind(); iter.Valid(); iter.Next() {
		var quest *core.Quest
		err := iter.Item().Value(func(val []byte) error {
			var err error
			quest, err = storage.UnmarshalQuest(val)
			return err
		})
		if err != nil {
			return nil, err
		}
		results = append(results, quest)
	}
	return results, nil
}
