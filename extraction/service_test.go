package extraction

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veyra/skillmap/ai/mock"
	"github.com/veyra/skillmap/core"
	"github.com/veyra/skillmap/quest"
	"github.com/veyra/skillmap/storage/badger"
)

func newTestService(t *testing.T) (*Service, *mock.SkillExtractor, *badger.Repositories) {
	t.Helper()

	repos, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() { repos.Close() })

	extractor := mock.NewSkillExtractor()
	quests := quest.NewService(repos.Skills, repos.Quests, 0.7)

	service, err := NewService(extractor, repos.Skills, quests, WithPoolSize(2))
	require.NoError(t, err)
	t.Cleanup(service.Release)

	return service, extractor, repos
}

func waitForRun(t *testing.T, service *Service, id string) *Run {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		run, err := service.Run(id)
		require.NoError(t, err)
		if run.State == RunCompleted || run.State == RunFailed {
			return run
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("run did not settle in time")
	return nil
}

func TestService_SubmitRequiresSource(t *testing.T) {
	service, _, _ := newTestService(t)

	_, err := service.Submit(context.Background(), "p1", Request{})
	require.ErrorIs(t, err, ErrNoSources)

	_, err = service.Submit(context.Background(), "p1", Request{Text: "   "})
	require.ErrorIs(t, err, ErrNoSources)
}

func TestService_SubmitAndPoll(t *testing.T) {
	service, extractor, repos := newTestService(t)
	ctx := context.Background()

	extractor.ExtractSkillsFunc = func(ctx context.Context, text, source string) ([]core.Candidate, error) {
		return []core.Candidate{
			{Name: "Go", Kind: core.KindExplicit, Confidence: 0.9,
				Cluster: "Backend", Unlock: core.UnlockUnlocked, Source: source},
			{Name: "Rust", Kind: core.KindImplicit, Confidence: 0.4,
				Cluster: "Backend", Unlock: core.UnlockLocked, Source: source},
		}, nil
	}

	id, err := service.Submit(ctx, "p1", Request{Text: "shipped Go services"})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	run := waitForRun(t, service, id)
	require.Equal(t, RunCompleted, run.State)
	assert.Equal(t, core.StateCompleted, run.Sources["Text"].State)
	assert.Equal(t, 2, run.Sources["Text"].Count)
	assert.Contains(t, run.Summary, "2 skills")
	assert.False(t, run.FinishedAt.IsZero())

	// Skills persisted
	skills, err := repos.Skills.ListSkills(ctx, "p1")
	require.NoError(t, err)
	assert.Len(t, skills, 2)

	// Locked skill got a quest
	quests, err := repos.Quests.ListQuests(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, quests, 1)
	assert.Equal(t, "Rust", quests[0].SkillName)
}

func TestService_ExtractSynchronous(t *testing.T) {
	service, _, repos := newTestService(t)
	ctx := context.Background()

	run, err := service.Extract(ctx, "p1", Request{Text: "Go Kubernetes Terraform"})
	require.NoError(t, err)
	require.Equal(t, RunCompleted, run.State)

	skills, err := repos.Skills.ListSkills(ctx, "p1")
	require.NoError(t, err)
	assert.NotEmpty(t, skills)
}

func TestService_MergeAcrossSources(t *testing.T) {
	service, extractor, repos := newTestService(t)
	ctx := context.Background()

	extractor.ExtractSkillsFunc = func(ctx context.Context, text, source string) ([]core.Candidate, error) {
		return []core.Candidate{
			{Name: "Python", Kind: core.KindExplicit, Confidence: 0.8,
				Cluster: "Backend", Unlock: core.UnlockUnlocked, Source: source},
		}, nil
	}

	run, err := service.Extract(ctx, "p1", Request{
		Text:     "wrote Python",
		Document: &DocumentInput{Name: "cv.txt", Data: []byte("Python everywhere")},
	})
	require.NoError(t, err)
	require.Equal(t, RunCompleted, run.State)

	// Both sources reported Python; one merged skill with both provenances
	skills, err := repos.Skills.ListSkills(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, skills, 1)
	assert.Equal(t, "Python", skills[0].Name)
	assert.Contains(t, skills[0].Source, "Document")
	assert.Contains(t, skills[0].Source, "Text")
	assert.InDelta(t, 0.8, skills[0].Confidence, 1e-9)
}

func TestService_SourceFailureIsolated(t *testing.T) {
	service, extractor, repos := newTestService(t)
	ctx := context.Background()

	extractor.ExtractSkillsFunc = func(ctx context.Context, text, source string) ([]core.Candidate, error) {
		if source == "Document" {
			return nil, errors.New("oracle unavailable")
		}
		return []core.Candidate{
			{Name: "Go", Kind: core.KindExplicit, Confidence: 0.9,
				Cluster: "Backend", Unlock: core.UnlockUnlocked, Source: source},
		}, nil
	}

	run, err := service.Extract(ctx, "p1", Request{
		Text:     "Go services",
		Document: &DocumentInput{Name: "cv.txt", Data: []byte("stuff")},
	})
	require.NoError(t, err)
	require.Equal(t, RunCompleted, run.State, "a failed source must not fail the run")

	assert.Equal(t, core.StateError, run.Sources["Document"].State)
	assert.Equal(t, core.StateCompleted, run.Sources["Text"].State)
	assert.Contains(t, run.Summary, "Document: failed")

	skills, err := repos.Skills.ListSkills(ctx, "p1")
	require.NoError(t, err)
	assert.Len(t, skills, 1)
}

func TestService_RunNotFound(t *testing.T) {
	service, _, _ := newTestService(t)

	_, err := service.Run("no-such-run")
	require.ErrorIs(t, err, ErrRunNotFound)
}

func TestService_RunRegistryEviction(t *testing.T) {
	service, _, _ := newTestService(t)
	ctx := context.Background()

	var first string
	for i := 0; i < maxRetainedRuns+1; i++ {
		run, err := service.Extract(ctx, "p1", Request{Text: "Go"})
		require.NoError(t, err)
		if i == 0 {
			first = run.ID
		}
	}

	_, err := service.Run(first)
	assert.ErrorIs(t, err, ErrRunNotFound, "oldest run must be evicted")
}
