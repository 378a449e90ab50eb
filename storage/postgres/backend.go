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


package postgres

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/veyra/skillmap/storage"
)

//go:embed schema/*.sql
var schemaFS embed.FS

// Backend holds the pgx connection pool shared by the repositories.
type Backend struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// Connect creates a pgx pool, pings the server, and runs schema migrations.
func Connect(ctx context.Context, databaseURL string) (*Backend, error) {
	if databaseURL == "" {
		return nil, errors.New("database URL is required")
	}

	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}
	config.MaxConns = 10
	config.MinConns = 1

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("create pgx pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	backend := &Backend{
		pool:   pool,
		logger: slog.Default().With("component", "postgres-backend"),
	}
	if err := backend.runMigrations(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	backend.logger.Info("postgres connected", "host", config.ConnConfig.Host)
	return backend, nil
}

// Close closes the connection pool.
func (b *Backend) Close() error {
	b.pool.Close()
	return nil
}

// WithTransaction executes a function within a database transaction.
func (b *Backend) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	tx, err := b.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%w: %w", storage.ErrTransactionFailed, err)
	}
	defer tx.Rollback(ctx)

	if err := fn(ctx); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// runMigrations applies the embedded schema files sorted by name.
func (b *Backend) runMigrations(ctx context.Context) error {
	entries, err := schemaFS.ReadDir("schema")
	if err != nil {
		return fmt.Errorf("read schema dir: %w", err)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})

	conn, err := b.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire migration connection: %w", err)
	}
	defer conn.Release()

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}
		data, err := schemaFS.ReadFile("schema/" + entry.Name())
		if err != nil {
			return fmt.Errorf("read %s: %w", entry.Name(), err)
		}
		if _, err := conn.Exec(ctx, string(data)); err != nil {
			return fmt.Errorf("execute %s: %w", entry.Name(), err)
		}
		b.logger.Info("migration applied", "file", entry.Name())
	}
	return nil
}

// Repositories bundles profile, skill, and quest repositories over a single
// backend.
type Repositories struct {
	Profiles storage.ProfileRepository
	Skills   storage.SkillRepository
	Quests   storage.QuestRepository

	backend *Backend
}

// NewRepositories connects to PostgreSQL and returns repositories over it.
// Caller must Close when done.
func NewRepositories(ctx context.Context, databaseURL string) (*Repositories, error) {
	backend, err := Connect(ctx, databaseURL)
	if err != nil {
		return nil, err
	}
	return &Repositories{
		Profiles: NewProfileRepository(backend),
		Skills:   NewSkillRepository(backend),
		Quests:   NewQuestRepository(backend),
		backend:  backend,
	}, nil
}

// Close closes the underlying pool.
func (r *Repositories) Close() error {
	return r.backend.Close()
}
