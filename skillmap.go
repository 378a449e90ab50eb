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


// Package skillmap assembles the skill-tracking application: storage
// backend, oracle provider, extraction pipeline, and the profile-facing
// services, behind one Open call.
package skillmap

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/veyra/skillmap/ai"
	"github.com/veyra/skillmap/ai/openai"
	"github.com/veyra/skillmap/config"
	"github.com/veyra/skillmap/extraction"
	"github.com/veyra/skillmap/insight"
	"github.com/veyra/skillmap/quest"
	"github.com/veyra/skillmap/recluster"
	"github.com/veyra/skillmap/share"
	"github.com/veyra/skillmap/sources"
	"github.com/veyra/skillmap/storage"
	"github.com/veyra/skillmap/storage/badger"
	"github.com/veyra/skillmap/storage/postgres"
)

// App wires storage, the oracle provider, and the domain services into one
// process-wide bundle. It satisfies api.Dependencies.
type App struct {
	profiles   storage.ProfileRepository
	skills     storage.SkillRepository
	questsRepo storage.QuestRepository
	repoCloser io.Closer

	provider    ai.Provider
	github      *sources.GitHubClient
	extractions *extraction.Service
	quests      *quest.Service
	gap         *insight.GapService
	suggestions *insight.SuggestService
	sharing     *share.Service

	logger *slog.Logger
}

// Option configures an App.
type Option func(*appOptions)

type appOptions struct {
	provider ai.Provider
}

// WithProvider substitutes the oracle provider. Tests use this to wire the
// mock provider instead of a live endpoint.
func WithProvider(provider ai.Provider) Option {
	return func(o *appOptions) {
		o.provider = provider
	}
}

// Open builds an App from configuration: storage backend, oracle provider,
// and all domain services. Caller must Close when done.
func Open(ctx context.Context, cfg *config.Config, opts ...Option) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	options := &appOptions{}
	for _, opt := range opts {
		opt(options)
	}

	var (
		profiles   storage.ProfileRepository
		skills     storage.SkillRepository
		questsRepo storage.QuestRepository
		closer     io.Closer
	)
	switch cfg.DBBackend {
	case "postgres":
		repos, err := postgres.NewRepositories(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("open postgres backend: %w", err)
		}
		profiles, skills, questsRepo, closer = repos.Profiles, repos.Skills, repos.Quests, repos
	default:
		repos, err := badger.NewRepositories(cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("open badger backend: %w", err)
		}
		profiles, skills, questsRepo, closer = repos.Profiles, repos.Skills, repos.Quests, repos
	}

	provider := options.provider
	if provider == nil {
		var err error
		provider, err = openai.NewProvider(ai.NewConfig(
			ai.WithHost(cfg.Oracle.Host),
			ai.WithModel(cfg.Oracle.Model),
			ai.WithAPIKey(cfg.Oracle.APIKey),
			ai.WithMinConfidence(cfg.Oracle.MinConfidence),
			ai.WithUnlockThreshold(cfg.Oracle.UnlockThreshold),
		))
		if err != nil {
			closer.Close()
			return nil, fmt.Errorf("create oracle provider: %w", err)
		}
	}

	github := sources.NewGitHubClient(
		sources.WithRateLimit(cfg.GitHub.RequestsPerSecond, cfg.GitHub.Burst),
		sources.WithCacheTTL(time.Duration(cfg.GitHub.CacheTTLSeconds)*time.Second),
	)

	quests := quest.NewService(skills, questsRepo, cfg.Oracle.UnlockThreshold)

	extractions, err := extraction.NewService(provider.SkillExtractor(), skills, quests,
		extraction.WithPoolSize(cfg.PoolSize),
		extraction.WithGitHubClient(github),
	)
	if err != nil {
		provider.Close()
		closer.Close()
		return nil, fmt.Errorf("create extraction service: %w", err)
	}

	return &App{
		profiles:    profiles,
		skills:      skills,
		questsRepo:  questsRepo,
		repoCloser:  closer,
		provider:    provider,
		github:      github,
		extractions: extractions,
		quests:      quests,
		gap:         insight.NewGapService(provider.GapAnalyst(), skills),
		suggestions: insight.NewSuggestService(provider.StoryWriter(), skills),
		sharing:     share.NewService(profiles, skills),
		logger:      slog.Default().With("component", "skillmap"),
	}, nil
}

// Close releases the worker pool, the oracle provider, and storage.
func (a *App) Close() error {
	a.extractions.Release()

	if err := a.provider.Close(); err != nil {
		a.logger.Error("error closing oracle provider", "err", err)
	}
	if err := a.repoCloser.Close(); err != nil {
		a.logger.Error("error closing storage backend", "err", err)
		return err
	}
	return nil
}

// Profiles returns the profile repository.
func (a *App) Profiles() storage.ProfileRepository {
	return a.profiles
}

// Skills returns the skill repository.
func (a *App) Skills() storage.SkillRepository {
	return a.skills
}

// Extractions returns the extraction service.
func (a *App) Extractions() *extraction.Service {
	return a.extractions
}

// Quests returns the quest service.
func (a *App) Quests() *quest.Service {
	return a.quests
}

// GapAnalysis returns the gap analysis service.
func (a *App) GapAnalysis() *insight.GapService {
	return a.gap
}

// Suggestions returns the CV rewrite service.
func (a *App) Suggestions() *insight.SuggestService {
	return a.suggestions
}

// Sharing returns the public sharing service.
func (a *App) Sharing() *share.Service {
	return a.sharing
}

// NewReclusterer builds a reclustering runner over the app's skill store and
// classifier, writing progress to w.
func (a *App) NewReclusterer(cfg *recluster.Config, w io.Writer) *recluster.Reclusterer {
	return recluster.NewReclusterer(a.skills, a.provider.Classifier(), cfg, w)
}
