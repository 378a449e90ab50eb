package badger

import (
	"context"
	"errors"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/veyra/skillmap/core"
	"github.com/veyra/skillmap/storage"
)

// ProfileRepository implements storage.ProfileRepository for BadgerDB.
type ProfileRepository struct {
	backend *Backend
}

var _ storage.ProfileRepository = (*ProfileRepository)(nil)

// NewProfileRepository creates a new ProfileRepository.
func NewProfileRepository(backend *Backend) *ProfileRepository {
	return &ProfileRepository{backend: backend}
}

// Close is a no-op; the backend owns the database handle.
func (r *ProfileRepository) Close() error {
	return nil
}

// WithTransaction delegates to the backend.
func (r *ProfileRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// AddProfile adds a profile to storage.
func (r *ProfileRepository) AddProfile(ctx context.Context, profile *core.Profile) (*core.Profile, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeProfileKey(profile.ID)

		existing, err := readProfile(tx, key)
		if err != nil {
			return err
		}
		if existing != nil {
			return storage.ErrDuplicateKey
		}

		if profile.InsertedAt.IsZero() {
			profile.InsertedAt = time.Now().UTC()
		}
		profile.UpdatedAt = profile.InsertedAt

		if err := tx.Set(key, storage.MarshalProfile(profile)); err != nil {
			return err
		}

		if profile.ShareSlug != "" {
			if err := tx.Set(makeProfileSlugKey(profile.ShareSlug), []byte(profile.ID)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	if err != nil {
		return nil, err
	}
	return profile, nil
}

// GetProfile retrieves a profile by ID.
func (r *ProfileRepository) GetProfile(ctx context.Context, id string) (*core.Profile, error) {
	var result *core.Profile
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, err = readProfile(tx, makeProfileKey(id))
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// GetProfileBySlug retrieves a profile by its share slug.
func (r *ProfileRepository) GetProfileBySlug(ctx context.Context, slug string) (*core.Profile, error) {
	var result *core.Profile
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeProfileSlugKey(slug))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return storage.ErrNotFound
		}
		if err != nil {
			return err
		}

		var profileID string
		if err := item.Value(func(val []byte) error {
			profileID = string(val)
			return nil
		}); err != nil {
			return err
		}

		result, err = readProfile(tx, makeProfileKey(profileID))
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// UpdateProfile updates an existing profile.
func (r *ProfileRepository) UpdateProfile(ctx context.Context, profile *core.Profile) (*core.Profile, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeProfileKey(profile.ID)

		old, err := readProfile(tx, key)
		if err != nil {
			return err
		}
		if old == nil {
			return storage.ErrNotFound
		}

		profile.InsertedAt = old.InsertedAt
		profile.UpdatedAt = time.Now().UTC()

		if err := tx.Set(key, storage.MarshalProfile(profile)); err != nil {
			return err
		}

		// Maintain the slug index on change
		if old.ShareSlug != profile.ShareSlug {
			if old.ShareSlug != "" {
				if err := tx.Delete(makeProfileSlugKey(old.ShareSlug)); err != nil {
					return err
				}
			}
			if profile.ShareSlug != "" {
				if err := tx.Set(makeProfileSlugKey(profile.ShareSlug), []byte(profile.ID)); err != nil {
					return err
				}
			}
		}
		return tx.Commit()
	}, true)

	if err != nil {
		return nil, err
	}
	return profile, nil
}

// ListProfiles retrieves all profiles.
func (r *ProfileRepository) ListProfiles(ctx context.Context) ([]*core.Profile, error) {
	var results []*core.Profile
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(profileRecordPrefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var profile *core.Profile
			err := iter.Item().Value(func(val []byte) error {
				var err error
				profile, err = storage.UnmarshalProfile(val)
				return err
			})
			if err != nil {
				return err
			}
			results = append(results, profile)
		}
		return nil
	}, false)
	return results, err
}

// DeleteProfile removes a profile along with its skills and quests.
func (r *ProfileRepository) DeleteProfile(ctx context.Context, id string) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeProfileKey(id)

		profile, err := readProfile(tx, key)
		if err != nil {
			return err
		}
		if profile == nil {
			return storage.ErrNotFound
		}

		if profile.ShareSlug != "" {
			if err := tx.Delete(makeProfileSlugKey(profile.ShareSlug)); err != nil {
				return err
			}
		}

		for _, prefix := range [][]byte{makeSkillPrefix(id), makeQuestPrefix(id)} {
			if err := deletePrefix(tx, prefix); err != nil {
				return err
			}
		}

		if err := tx.Delete(key); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// readProfile reads and unmarshals a profile, returning nil when absent.
func readProfile(tx *badger.Txn, key []byte) (*core.Profile, error) {
	item, err := tx.Get(key)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var profile *core.Profile
	err = item.Value(func(val []byte) error {
		var err error
		profile, err = storage.UnmarshalProfile(val)
		return err
	})
	return profile, err
}

// deletePrefix removes every key under prefix within the transaction.
func deletePrefix(tx *badger.Txn, prefix []byte) error {
	opts := badger.DefaultIteratorOptions
	opts.Prefix = prefix
	opts.PrefetchValues = false
	iter := tx.NewIterator(opts)
	defer iter.Close()

	var keys [][]byte
	for iter.Rewind(); iter.Valid(); iter.Next() {
		keys = append(keys, iter.Item().KeyCopy(nil))
	}
	for _, key := range keys {
		if err := tx.Delete(key); err != nil {
			return err
		}
	}
	return nil
}
