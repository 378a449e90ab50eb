package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/veyra/skillmap/core"
	"github.com/veyra/skillmap/storage"
)

// ProfileRepository implements storage.ProfileRepository for PostgreSQL.
type ProfileRepository struct {
	backend *Backend
}

var _ storage.ProfileRepository = (*ProfileRepository)(nil)

// NewProfileRepository creates a new ProfileRepository.
func NewProfileRepository(backend *Backend) *ProfileRepository {
	return &ProfileRepository{backend: backend}
}

// Close is a no-op; the backend owns the pool.
func (r *ProfileRepository) Close() error {
	return nil
}

// WithTransaction delegates to the backend.
func (r *ProfileRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// isUniqueViolation reports whether err is a unique constraint violation.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

const profileColumns = "id, display_name, headline, COALESCE(share_slug, ''), shared, inserted_at, updated_at"

func scanProfile(row pgx.Row) (*core.Profile, error) {
	var profile core.Profile
	err := row.Scan(&profile.ID, &profile.DisplayName, &profile.Headline,
		&profile.ShareSlug, &profile.Shared, &profile.InsertedAt, &profile.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// AddProfile adds a profile to storage.
func (r *ProfileRepository) AddProfile(ctx context.Context, profile *core.Profile) (*core.Profile, error) {
	if profile.InsertedAt.IsZero() {
		profile.InsertedAt = time.Now().UTC()
	}
	profile.UpdatedAt = profile.InsertedAt

	_, err := r.backend.pool.Exec(ctx,
		`INSERT INTO profiles (id, display_name, headline, share_slug, shared, inserted_at, updated_at)
		 VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6, $7)`,
		profile.ID, profile.DisplayName, profile.Headline, profile.ShareSlug,
		profile.Shared, profile.InsertedAt, profile.UpdatedAt)
	if isUniqueViolation(err) {
		return nil, storage.ErrDuplicateKey
	}
	if err != nil {
		return nil, err
	}
	return profile, nil
}

// GetProfile retrieves a profile by ID.
func (r *ProfileRepository) GetProfile(ctx context.Context, id string) (*core.Profile, error) {
	row := r.backend.pool.QueryRow(ctx,
		"SELECT "+profileColumns+" FROM profiles WHERE id = $1", id)
	return scanProfile(row)
}

// GetProfileBySlug retrieves a profile by its share slug.
func (r *ProfileRepository) GetProfileBySlug(ctx context.Context, slug string) (*core.Profile, error) {
	row := r.backend.pool.QueryRow(ctx,
		"SELECT "+profileColumns+" FROM profiles WHERE share_slug = $1", slug)
	return scanProfile(row)
}

// UpdateProfile updates an existing profile.
func (r *ProfileRepository) UpdateProfile(ctx context.Context, profile *core.Profile) (*core.Profile, error) {
	profile.UpdatedAt = time.Now().UTC()

	tag, err := r.backend.pool.Exec(ctx,
		`UPDATE profiles
		 SET display_name = $2, headline = $3, share_slug = NULLIF($4, ''),
		     shared = $5, updated_at = $6
		 WHERE id = $1`,
		profile.ID, profile.DisplayName, profile.Headline, profile.ShareSlug,
		profile.Shared, profile.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, storage.ErrNotFound
	}
	return profile, nil
}

// ListProfiles retrieves all profiles ordered by creation time.
func (r *ProfileRepository) ListProfiles(ctx context.Context) ([]*core.Profile, error) {
	rows, err := r.backend.pool.Query(ctx,
		"SELECT "+profileColumns+" FROM profiles ORDER BY inserted_at")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []*core.Profile
	for rows.Next() {
		profile, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, profile)
	}
	return results, rows.Err()
}

// DeleteProfile removes a profile; skills and quests cascade.
func (r *ProfileRepository) DeleteProfile(ctx context.Context, id string) error {
	tag, err := r.backend.pool.Exec(ctx, "DELETE FROM profiles WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}
