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


package extraction

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/panjf2000/ants/v2"

	"github.com/veyra/skillmap/ai"
	"github.com/veyra/skillmap/core"
	"github.com/veyra/skillmap/merge"
	"github.com/veyra/skillmap/metrics"
	"github.com/veyra/skillmap/quest"
	"github.com/veyra/skillmap/sources"
	"github.com/veyra/skillmap/storage"
)

// maxRetainedRuns bounds the in-memory run registry. The oldest run is
// evicted first; there is no durable run history.
const maxRetainedRuns = 256

// RunState describes the lifecycle of an extraction run.
type RunState int

const (
	RunPending RunState = iota + 1
	RunRunning
	RunCompleted
	RunFailed
)

// String returns the string representation of the run state.
func (s RunState) String() string {
	switch s {
	case RunPending:
		return "pending"
	case RunRunning:
		return "running"
	case RunCompleted:
		return "completed"
	case RunFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// DocumentInput is an uploaded document submitted for extraction.
type DocumentInput struct {
	Name string
	Data []byte
}

// GitHubInput is a GitHub username (plus optional token) submitted for
// extraction.
type GitHubInput struct {
	Username string
	Token    string
}

// Request bundles the sources of one extraction run. Every field is
// optional, but at least one must be present.
type Request struct {
	Document *DocumentInput
	Text     string
	GitHub   *GitHubInput
}

// Run is the queryable state of one extraction run.
type Run struct {
	ID         string
	ProfileID  string
	State      RunState
	Sources    map[string]core.SourceStatus
	Summary    string
	Total      int // Merged skill count, set on completion
	Err        string
	StartedAt  time.Time
	FinishedAt time.Time

	// sourceOrder preserves adapter supply order for the summary.
	sourceOrder []string
}

// Service executes profile-scoped extraction runs on a bounded worker pool
// and retains their state in memory for polling.
type Service struct {
	orchestrator *Orchestrator
	extractor    ai.SkillExtractor
	github       *sources.GitHubClient
	skills       storage.SkillRepository
	quests       *quest.Service
	pool         *ants.Pool
	logger       *slog.Logger

	mu    sync.Mutex
	runs  map[string]*Run
	order []string
}

// Option configures a Service.
type Option func(*Service) error

// WithPoolSize sets the worker pool size for concurrent runs.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(s *Service) error {
		if size < 1 {
			size = 1
		}
		if s.pool != nil {
			s.pool.Release()
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		s.pool = pool
		return nil
	}
}

// WithGitHubClient sets the GitHub client shared by runs.
func WithGitHubClient(client *sources.GitHubClient) Option {
	return func(s *Service) error {
		s.github = client
		return nil
	}
}

// NewService creates an extraction service.
func NewService(extractor ai.SkillExtractor, skills storage.SkillRepository, quests *quest.Service, opts ...Option) (*Service, error) {
	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	s := &Service{
		orchestrator: NewOrchestrator(),
		extractor:    extractor,
		github:       sources.NewGitHubClient(),
		skills:       skills,
		quests:       quests,
		pool:         pool,
		logger:       slog.Default().With("component", "extraction-service"),
		runs:         make(map[string]*Run),
	}

	for _, opt := range opts {
		if optErr := opt(s); optErr != nil {
			s.Release()
			return nil, optErr
		}
	}
	return s, nil
}

// buildAdapters assembles adapters in fixed order: Document, Text, GitHub.
func (s *Service) buildAdapters(req Request) []sources.Adapter {
	var adapters []sources.Adapter
	if req.Document != nil {
		adapters = append(adapters, sources.NewDocumentAdapter(s.extractor, req.Document.Name, req.Document.Data))
	}
	if strings.TrimSpace(req.Text) != "" {
		adapters = append(adapters, sources.NewTextAdapter(s.extractor, req.Text))
	}
	if req.GitHub != nil {
		adapters = append(adapters, sources.NewGitHubAdapter(s.extractor, s.github, req.GitHub.Username, req.GitHub.Token))
	}
	return adapters
}

// Submit starts an asynchronous extraction run and returns its ID.
// Run state is queryable via Run while the extraction executes on the pool.
func (s *Service) Submit(ctx context.Context, profileID string, req Request) (string, error) {
	adapters := s.buildAdapters(req)
	if len(adapters) == 0 {
		return "", ErrNoSources
	}

	run := &Run{
		ID:        uuid.NewString(),
		ProfileID: profileID,
		State:     RunPending,
		Sources:   make(map[string]core.SourceStatus, len(adapters)),
		StartedAt: time.Now().UTC(),
	}
	for _, adapter := range adapters {
		run.Sources[adapter.Label()] = core.SourceStatus{State: core.StatePending}
		run.sourceOrder = append(run.sourceOrder, adapter.Label())
	}
	s.register(run)

	err := s.pool.Submit(func() {
		s.execute(context.Background(), run, adapters)
	})
	if err != nil {
		s.fail(run, err)
		return "", fmt.Errorf("%w: %w", ErrServiceClosed, err)
	}
	return run.ID, nil
}

// Extract runs an extraction synchronously and returns the finished run.
// This is the CLI path; the web API uses Submit and polls.
func (s *Service) Extract(ctx context.Context, profileID string, req Request) (*Run, error) {
	adapters := s.buildAdapters(req)
	if len(adapters) == 0 {
		return nil, ErrNoSources
	}

	run := &Run{
		ID:        uuid.NewString(),
		ProfileID: profileID,
		State:     RunPending,
		Sources:   make(map[string]core.SourceStatus, len(adapters)),
		StartedAt: time.Now().UTC(),
	}
	for _, adapter := range adapters {
		run.Sources[adapter.Label()] = core.SourceStatus{State: core.StatePending}
		run.sourceOrder = append(run.sourceOrder, adapter.Label())
	}
	s.register(run)

	s.execute(ctx, run, adapters)
	return s.Run(run.ID)
}

// Run returns a snapshot of the run with the given ID.
func (s *Service) Run(id string) (*Run, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	run, ok := s.runs[id]
	if !ok {
		return nil, ErrRunNotFound
	}
	return snapshot(run), nil
}

// execute performs orchestration, merge, persistence, and quest sync for a
// single run.
func (s *Service) execute(ctx context.Context, run *Run, adapters []sources.Adapter) {
	s.update(run, func(r *Run) {
		r.State = RunRunning
		for label := range r.Sources {
			r.Sources[label] = core.SourceStatus{State: core.StateProcessing}
		}
	})

	candidates, statuses, err := s.orchestrator.Run(ctx, adapters)
	if err != nil {
		s.fail(run, err)
		return
	}

	skills := merge.Merge(candidates)
	metrics.RecordMergedSkills(len(skills))

	if err := s.skills.ReplaceSkills(ctx, run.ProfileID, toPointers(skills)); err != nil {
		// Extraction succeeded but the batch never landed; callers must be
		// able to tell this apart from an empty extraction.
		s.update(run, func(r *Run) {
			r.State = RunFailed
			r.Sources = statuses
			r.Err = fmt.Sprintf("skills extracted but not saved: %v", err)
			r.FinishedAt = time.Now().UTC()
		})
		metrics.RecordRun("failed")
		return
	}

	if _, err := s.quests.Sync(ctx, run.ProfileID); err != nil {
		s.logger.Warn("quest sync failed after extraction",
			"profile_id", run.ProfileID, "err", err)
	}

	s.update(run, func(r *Run) {
		r.State = RunCompleted
		r.Sources = statuses
		r.Summary = summarize(len(skills), r.sourceOrder, statuses)
		r.Total = len(skills)
		r.FinishedAt = time.Now().UTC()
	})
	metrics.RecordRun("completed")

	s.logger.Info("extraction run completed",
		"run_id", run.ID, "profile_id", run.ProfileID, "skills", len(skills))
}

// summarize renders the merged total plus a per-source breakdown in adapter
// supply order, e.g. "7 skills (Document: 4 skills, GitHub: 3 skills)".
func summarize(total int, order []string, statuses map[string]core.SourceStatus) string {
	var parts []string
	for _, label := range order {
		status := statuses[label]
		if status.State == core.StateError {
			parts = append(parts, fmt.Sprintf("%s: failed", label))
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %d skills", label, status.Count))
	}
	return fmt.Sprintf("%d skills (%s)", total, strings.Join(parts, ", "))
}

func toPointers(skills []core.Skill) []*core.Skill {
	out := make([]*core.Skill, len(skills))
	for i := range skills {
		out[i] = &skills[i]
	}
	return out
}

func (s *Service) register(run *Run) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.runs[run.ID] = run
	s.order = append(s.order, run.ID)
	for len(s.order) > maxRetainedRuns {
		evicted := s.order[0]
		s.order = s.order[1:]
		delete(s.runs, evicted)
	}
}

func (s *Service) update(run *Run, fn func(*Run)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(run)
}

func (s *Service) fail(run *Run, err error) {
	s.update(run, func(r *Run) {
		r.State = RunFailed
		r.Err = err.Error()
		r.FinishedAt = time.Now().UTC()
	})
	metrics.RecordRun("failed")
}

func snapshot(run *Run) *Run {
	copied := *run
	copied.Sources = make(map[string]core.SourceStatus, len(run.Sources))
	for label, status := range run.Sources {
		copied.Sources[label] = status
	}
	return &copied
}

// Release shuts down the worker pool. In-flight runs finish; new submissions
// fail. The service should not be used after Release.
func (s *Service) Release() {
	if s.pool != nil {
		s.pool.Release()
	}
}
