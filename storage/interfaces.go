package storage

import (
	"context"

	"github.com/veyra/skillmap/core"
)

// Repository provides common storage operations shared across all repositories.
// Implementations must be thread-safe and support concurrent access.
type Repository interface {
	// WithTransaction executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	// The context passed to fn may contain transaction state.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Close closes the storage backend and releases resources.
	Close() error
}

// ProfileRepository provides operations for managing profiles.
type ProfileRepository interface {
	Repository
	// AddProfile adds a profile to storage.
	// Sets InsertedAt if not already set.
	// Returns ErrDuplicateKey if the profile ID already exists.
	AddProfile(ctx context.Context, profile *core.Profile) (*core.Profile, error)

	// GetProfile retrieves a profile by ID.
	// Returns ErrNotFound if the profile doesn't exist.
	GetProfile(ctx context.Context, id string) (*core.Profile, error)

	// GetProfileBySlug retrieves a profile by its share slug.
	// Returns ErrNotFound if no profile carries the slug.
	GetProfileBySlug(ctx context.Context, slug string) (*core.Profile, error)

	// UpdateProfile updates an existing profile.
	// Updates the UpdatedAt timestamp automatically.
	// Returns ErrNotFound if the profile doesn't exist.
	UpdateProfile(ctx context.Context, profile *core.Profile) (*core.Profile, error)

	// ListProfiles retrieves all profiles.
	ListProfiles(ctx context.Context) ([]*core.Profile, error)

	// DeleteProfile removes a profile and its skills and quests.
	// Returns ErrNotFound if the profile doesn't exist.
	DeleteProfile(ctx context.Context, id string) error
}

// SkillRepository provides operations for managing a profile's skills.
type SkillRepository interface {
	Repository
	// ReplaceSkills atomically replaces the profile's entire skill set.
	// This is the write path of an extraction run: either every skill in
	// the batch lands or none does. Sets timestamps on the way in.
	ReplaceSkills(ctx context.Context, profileID string, skills []*core.Skill) error

	// ListSkills retrieves all skills of a profile.
	ListSkills(ctx context.Context, profileID string) ([]*core.Skill, error)

	// GetSkill retrieves a single skill by profile and skill ID.
	// Returns ErrNotFound if the skill doesn't exist.
	GetSkill(ctx context.Context, profileID string, id core.ID) (*core.Skill, error)

	// UpdateSkill updates an existing skill (unlock state changes and the
	// like). Updates the UpdatedAt timestamp automatically.
	// Returns ErrNotFound if the skill doesn't exist.
	UpdateSkill(ctx context.Context, skill *core.Skill) (*core.Skill, error)

	// CountByProfile returns the number of skills stored for a profile.
	CountByProfile(ctx context.Context, profileID string) (int, error)
}

// QuestRepository provides operations for managing a profile's quests.
type QuestRepository interface {
	Repository
	// SyncQuests reconciles stored quests with the desired set: quests not
	// yet stored are inserted, stored quests absent from the desired set
	// are removed, and quests already marked done are kept untouched.
	// Returns the stored quests after reconciliation.
	SyncQuests(ctx context.Context, profileID string, quests []*core.Quest) ([]*core.Quest, error)

	// ListQuests retrieves all quests of a profile.
	ListQuests(ctx context.Context, profileID string) ([]*core.Quest, error)

	// GetQuest retrieves a single quest by profile and quest ID.
	// Returns ErrNotFound if the quest doesn't exist.
	GetQuest(ctx context.Context, profileID string, id core.ID) (*core.Quest, error)

	// UpdateQuest updates an existing quest.
	// Updates the UpdatedAt timestamp automatically.
	// Returns ErrNotFound if the quest doesn't exist.
	UpdateQuest(ctx context.Context, quest *core.Quest) (*core.Quest, error)
}
