package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veyra/skillmap/ai/mock"
	"github.com/veyra/skillmap/core"
	"github.com/veyra/skillmap/extraction"
	"github.com/veyra/skillmap/insight"
	"github.com/veyra/skillmap/quest"
	"github.com/veyra/skillmap/share"
	"github.com/veyra/skillmap/storage"
	"github.com/veyra/skillmap/storage/badger"
)

type testDeps struct {
	repos       *badger.Repositories
	extractions *extraction.Service
	quests      *quest.Service
	gap         *insight.GapService
	suggestions *insight.SuggestService
	sharing     *share.Service
}

func (d *testDeps) Profiles() storage.ProfileRepository  { return d.repos.Profiles }
func (d *testDeps) Skills() storage.SkillRepository      { return d.repos.Skills }
func (d *testDeps) Extractions() *extraction.Service     { return d.extractions }
func (d *testDeps) Quests() *quest.Service               { return d.quests }
func (d *testDeps) GapAnalysis() *insight.GapService     { return d.gap }
func (d *testDeps) Suggestions() *insight.SuggestService { return d.suggestions }
func (d *testDeps) Sharing() *share.Service              { return d.sharing }

func newTestServer(t *testing.T) (*httptest.Server, *mock.Provider, *testDeps) {
	t.Helper()

	repos, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() { repos.Close() })

	provider := mock.NewProvider()

	quests := quest.NewService(repos.Skills, repos.Quests, 0.7)
	extractions, err := extraction.NewService(provider.SkillExtractor(), repos.Skills, quests,
		extraction.WithPoolSize(2))
	require.NoError(t, err)
	t.Cleanup(extractions.Release)

	deps := &testDeps{
		repos:       repos,
		extractions: extractions,
		quests:      quests,
		gap:         insight.NewGapService(provider.GapAnalyst(), repos.Skills),
		suggestions: insight.NewSuggestService(provider.StoryWriter(), repos.Skills),
		sharing:     share.NewService(repos.Profiles, repos.Skills),
	}

	ts := httptest.NewServer(NewServer(deps, WithMaxDocumentBytes(1024)).Handler())
	t.Cleanup(ts.Close)
	return ts, provider, deps
}

func doJSON(t *testing.T, method, url string, body any, out any) *http.Response {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

func createProfile(t *testing.T, baseURL, name string) string {
	t.Helper()

	var created map[string]any
	resp := doJSON(t, http.MethodPost, baseURL+"/v1/profiles",
		map[string]string{"display_name": name}, &created)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return created["id"].(string)
}

func waitForRun(t *testing.T, baseURL, runID string) runResponse {
	t.Helper()

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		var run runResponse
		resp := doJSON(t, http.MethodGet, baseURL+"/v1/extractions/"+runID, nil, &run)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		if run.State == "completed" || run.State == "failed" {
			return run
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("run %s did not finish", runID)
	return runResponse{}
}

func TestProfileLifecycle(t *testing.T) {
	ts, _, _ := newTestServer(t)

	var created profileResponse
	resp := doJSON(t, http.MethodPost, ts.URL+"/v1/profiles",
		map[string]string{"display_name": "Ada Lovelace", "headline": "Engineer"}, &created)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Ada Lovelace", created.DisplayName)
	assert.False(t, created.Shared)

	var fetched profileResponse
	resp = doJSON(t, http.MethodGet, ts.URL+"/v1/profiles/"+created.ID, nil, &fetched)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, created, fetched)

	var envelope errorResponse
	resp = doJSON(t, http.MethodGet, ts.URL+"/v1/profiles/ghost", nil, &envelope)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "not_found", envelope.Code)
}

func TestCreateProfile_Validation(t *testing.T) {
	ts, _, _ := newTestServer(t)

	var envelope errorResponse
	resp := doJSON(t, http.MethodPost, ts.URL+"/v1/profiles",
		map[string]string{"headline": "no name"}, &envelope)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "missing_display_name", envelope.Code)

	req, err := http.NewRequest(http.MethodPost, ts.URL+"/v1/profiles",
		bytes.NewReader([]byte("{not json")))
	require.NoError(t, err)
	raw, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer raw.Body.Close()
	assert.Equal(t, http.StatusBadRequest, raw.StatusCode)
}

func TestExtractionFlow(t *testing.T) {
	ts, _, _ := newTestServer(t)
	profileID := createProfile(t, ts.URL, "Ada")

	var accepted map[string]string
	resp := doJSON(t, http.MethodPost, ts.URL+"/v1/profiles/"+profileID+"/extractions",
		map[string]any{"text": "Go Rust"}, &accepted)
	require.Equal(t, http.StatusAccepted, resp.StatusCode)
	require.NotEmpty(t, accepted["run_id"])

	run := waitForRun(t, ts.URL, accepted["run_id"])
	require.Equal(t, "completed", run.State)
	assert.Equal(t, 2, run.Total)
	require.Contains(t, run.Sources, "Text")
	assert.Equal(t, "completed", run.Sources["Text"].State)
	assert.Equal(t, 2, run.Sources["Text"].Count)

	var listing struct {
		Skills []skillResponse `json:"skills"`
		Total  int             `json:"total"`
	}
	resp = doJSON(t, http.MethodGet, ts.URL+"/v1/profiles/"+profileID+"/skills", nil, &listing)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, 2, listing.Total)

	first := listing.Skills[0]
	assert.Equal(t, "Go", first.SkillName, "highest confidence first")
	assert.Equal(t, "explicit", first.SkillType)
	assert.Equal(t, "unlocked", first.State)
	assert.InDelta(t, 0.9, first.ConfidenceScore, 0.001)
	assert.NotEmpty(t, first.Evidence)
}

func TestSubmitExtraction_Errors(t *testing.T) {
	ts, _, _ := newTestServer(t)
	profileID := createProfile(t, ts.URL, "Ada")

	var envelope errorResponse
	resp := doJSON(t, http.MethodPost, ts.URL+"/v1/profiles/"+profileID+"/extractions",
		map[string]any{}, &envelope)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "no_sources", envelope.Code)

	resp = doJSON(t, http.MethodPost, ts.URL+"/v1/profiles/ghost/extractions",
		map[string]any{"text": "Go"}, &envelope)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	big := make([]byte, 2048)
	resp = doJSON(t, http.MethodPost, ts.URL+"/v1/profiles/"+profileID+"/extractions",
		map[string]any{"document": map[string]any{"name": "cv.txt", "content": big}}, &envelope)
	require.Equal(t, http.StatusRequestEntityTooLarge, resp.StatusCode)
	assert.Equal(t, "document_too_large", envelope.Code)

	resp = doJSON(t, http.MethodGet, ts.URL+"/v1/extractions/missing-run", nil, &envelope)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "run_not_found", envelope.Code)
}

func TestListSkills_Filters(t *testing.T) {
	ts, _, deps := newTestServer(t)
	profileID := createProfile(t, ts.URL, "Ada")

	err := deps.repos.Skills.ReplaceSkills(context.Background(), profileID, []*core.Skill{
		{Name: "Go", Kind: core.KindExplicit, Confidence: 0.9, Cluster: "Backend", Unlock: core.UnlockUnlocked},
		{Name: "Kubernetes", Kind: core.KindImplicit, Confidence: 0.5, Cluster: "Infra", Unlock: core.UnlockLocked},
	})
	require.NoError(t, err)

	var listing struct {
		Skills []skillResponse `json:"skills"`
		Total  int             `json:"total"`
	}
	resp := doJSON(t, http.MethodGet,
		ts.URL+"/v1/profiles/"+profileID+"/skills?state=locked", nil, &listing)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, 1, listing.Total)
	assert.Equal(t, "Kubernetes", listing.Skills[0].SkillName)

	resp = doJSON(t, http.MethodGet,
		ts.URL+"/v1/profiles/"+profileID+"/skills?q=go", nil, &listing)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, 1, listing.Total)
	assert.Equal(t, "Go", listing.Skills[0].SkillName)
}

func TestGapAndSuggestions(t *testing.T) {
	ts, _, deps := newTestServer(t)
	profileID := createProfile(t, ts.URL, "Ada")

	err := deps.repos.Skills.ReplaceSkills(context.Background(), profileID, []*core.Skill{
		{Name: "Go", Kind: core.KindExplicit, Confidence: 0.9, Cluster: "Backend",
			Unlock: core.UnlockUnlocked, Evidence: []string{"wrote services"}},
	})
	require.NoError(t, err)

	var gap gapResponse
	resp := doJSON(t, http.MethodPost, ts.URL+"/v1/profiles/"+profileID+"/gap",
		map[string]string{"target_role": "SRE"}, &gap)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "SRE", gap.TargetRole)
	assert.Equal(t, 50, gap.MatchScore)
	assert.Contains(t, gap.MatchingSkills, "Go")

	var envelope errorResponse
	resp = doJSON(t, http.MethodPost, ts.URL+"/v1/profiles/"+profileID+"/gap",
		map[string]string{}, &envelope)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "missing_target_role", envelope.Code)

	var suggestions struct {
		Suggestions []suggestionResponse `json:"suggestions"`
	}
	resp = doJSON(t, http.MethodPost, ts.URL+"/v1/profiles/"+profileID+"/suggestions",
		map[string]string{"target_role": "SRE"}, &suggestions)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, suggestions.Suggestions, 1)
	assert.Equal(t, "Go", suggestions.Suggestions[0].SkillName)
	assert.Equal(t, "Improved: wrote services", suggestions.Suggestions[0].Rewrite)
}

func TestQuestFlow(t *testing.T) {
	ts, _, deps := newTestServer(t)
	profileID := createProfile(t, ts.URL, "Ada")
	ctx := context.Background()

	err := deps.repos.Skills.ReplaceSkills(ctx, profileID, []*core.Skill{
		{Name: "Rust", Kind: core.KindExplicit, Confidence: 0.4, Cluster: "Backend",
			Unlock: core.UnlockLocked, Evidence: []string{"read the book"}},
	})
	require.NoError(t, err)
	_, err = deps.quests.Sync(ctx, profileID)
	require.NoError(t, err)

	var listing struct {
		Quests []questResponse `json:"quests"`
	}
	resp := doJSON(t, http.MethodGet, ts.URL+"/v1/profiles/"+profileID+"/quests", nil, &listing)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, listing.Quests, 1)

	q := listing.Quests[0]
	assert.Equal(t, "Rust", q.SkillName)
	assert.False(t, q.Done)
	assert.Equal(t, 300, q.XP)

	completeURL := fmt.Sprintf("%s/v1/profiles/%s/quests/%s/complete", ts.URL, profileID, q.ID)

	var completed questResponse
	resp = doJSON(t, http.MethodPost, completeURL, nil, &completed)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, completed.Done)

	// Completing the quest unlocks the skill
	var skills struct {
		Skills []skillResponse `json:"skills"`
	}
	resp = doJSON(t, http.MethodGet, ts.URL+"/v1/profiles/"+profileID+"/skills", nil, &skills)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, skills.Skills, 1)
	assert.Equal(t, "unlocked", skills.Skills[0].State)

	var envelope errorResponse
	resp = doJSON(t, http.MethodPost, completeURL, nil, &envelope)
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "quest_done", envelope.Code)

	resp = doJSON(t, http.MethodPost,
		ts.URL+"/v1/profiles/"+profileID+"/quests/notanumber/complete", nil, &envelope)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "invalid_quest_id", envelope.Code)
}

func TestShareFlow(t *testing.T) {
	ts, _, deps := newTestServer(t)
	profileID := createProfile(t, ts.URL, "Ada Lovelace")

	err := deps.repos.Skills.ReplaceSkills(context.Background(), profileID, []*core.Skill{
		{Name: "Go", Kind: core.KindExplicit, Confidence: 0.9, Cluster: "Backend",
			Unlock: core.UnlockUnlocked, Evidence: []string{"a", "b", "c"}},
	})
	require.NoError(t, err)

	var published map[string]string
	resp := doJSON(t, http.MethodPost, ts.URL+"/v1/profiles/"+profileID+"/share", nil, &published)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotEmpty(t, published["slug"])
	assert.Equal(t, "/v1/public/"+published["slug"], published["url"])

	var public share.PublicProfile
	resp = doJSON(t, http.MethodGet, ts.URL+published["url"], nil, &public)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Ada Lovelace", public.DisplayName)
	require.Len(t, public.Skills, 1)
	assert.Equal(t, 3, public.Skills[0].EvidenceCount, "evidence is redacted to a count")

	req, err := http.NewRequest(http.MethodDelete, ts.URL+"/v1/profiles/"+profileID+"/share", nil)
	require.NoError(t, err)
	raw, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer raw.Body.Close()
	require.Equal(t, http.StatusNoContent, raw.StatusCode)

	var envelope errorResponse
	resp = doJSON(t, http.MethodGet, ts.URL+published["url"], nil, &envelope)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "not_shared", envelope.Code)
}

func TestHealthAndMetrics(t *testing.T) {
	ts, _, _ := newTestServer(t)

	var health map[string]string
	resp := doJSON(t, http.MethodGet, ts.URL+"/healthz", nil, &health)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", health["status"])

	raw, err := http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	defer raw.Body.Close()
	assert.Equal(t, http.StatusOK, raw.StatusCode)
}

func TestMethodNotAllowed(t *testing.T) {
	ts, _, _ := newTestServer(t)
	profileID := createProfile(t, ts.URL, "Ada")

	req, err := http.NewRequest(http.MethodDelete, ts.URL+"/v1/profiles/"+profileID+"/skills", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}
