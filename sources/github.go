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


package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"github.com/veyra/skillmap/ai"
	"github.com/veyra/skillmap/core"
)

const (
	defaultGitHubAPIBase = "https://api.github.com"
	defaultGitHubRPS     = 1.0
	defaultGitHubBurst   = 3
	defaultDigestTTL     = 10 * time.Minute

	// maxDigestRepos caps how many repositories contribute to the digest.
	maxDigestRepos = 30
)

// GitHubClient fetches public repository activity and builds per-user
// digests. One client is shared across adapters so the rate limiter and
// digest cache span extraction runs.
type GitHubClient struct {
	apiBase    string
	httpClient *http.Client
	limiter    *rate.Limiter
	cache      *gocache.Cache
	logger     *slog.Logger
}

// GitHubOption configures a GitHubClient.
type GitHubOption func(*GitHubClient)

// WithAPIBase overrides the GitHub API base URL. Used by tests to point
// the client at a local server.
func WithAPIBase(base string) GitHubOption {
	return func(c *GitHubClient) {
		c.apiBase = strings.TrimRight(base, "/")
	}
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(client *http.Client) GitHubOption {
	return func(c *GitHubClient) {
		c.httpClient = client
	}
}

// WithRateLimit sets the outbound request rate and burst.
func WithRateLimit(rps float64, burst int) GitHubOption {
	return func(c *GitHubClient) {
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// WithCacheTTL sets how long per-user digests are cached.
func WithCacheTTL(ttl time.Duration) GitHubOption {
	return func(c *GitHubClient) {
		c.cache = gocache.New(ttl, 2*ttl)
	}
}

// NewGitHubClient creates a GitHub client with default rate limiting and
// digest caching.
func NewGitHubClient(options ...GitHubOption) *GitHubClient {
	client := &GitHubClient{
		apiBase:    defaultGitHubAPIBase,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		limiter:    rate.NewLimiter(rate.Limit(defaultGitHubRPS), defaultGitHubBurst),
		cache:      gocache.New(defaultDigestTTL, 2*defaultDigestTTL),
		logger:     slog.Default().With("component", "github-client"),
	}

	for _, option := range options {
		option(client)
	}

	return client
}

type githubRepo struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Language    string   `json:"language"`
	Topics      []string `json:"topics"`
	Stars       int      `json:"stargazers_count"`
	Fork        bool     `json:"fork"`
}

// Digest returns a text summary of the user's recently pushed repositories.
// Results are cached per username for the configured TTL.
func (c *GitHubClient) Digest(ctx context.Context, username, token string) (string, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return "", ErrEmptyUsername
	}

	if cached, found := c.cache.Get(username); found {
		c.logger.Debug("digest cache hit", "username", username)
		return cached.(string), nil
	}

	repos, err := c.fetchRepos(ctx, username, token)
	if err != nil {
		return "", err
	}

	digest := buildDigest(username, repos)
	c.cache.Set(username, digest, gocache.DefaultExpiration)

	c.logger.Debug("digest built", "username", username, "repos", len(repos))
	return digest, nil
}

func (c *GitHubClient) fetchRepos(ctx context.Context, username, token string) ([]githubRepo, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	url := fmt.Sprintf("%s/users/%s/repos?sort=pushed&per_page=%d", c.apiBase, username, maxDigestRepos)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/vnd.github+json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGitHubAPI, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", ErrUserNotFound, username)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("%w: status %d", ErrGitHubAPI, resp.StatusCode)
	}

	var repos []githubRepo
	if err := json.NewDecoder(resp.Body).Decode(&repos); err != nil {
		return nil, fmt.Errorf("decode repos: %w", err)
	}

	return repos, nil
}

// buildDigest renders repositories into the text the oracle reads. Language
// and topic lines cite repo names so extracted evidence stays traceable.
func buildDigest(username string, repos []githubRepo) string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "GitHub activity for user %s.\nRecently pushed repositories:\n", username)

	count := 0
	for _, repo := range repos {
		if repo.Fork {
			continue
		}
		if count >= maxDigestRepos {
			break
		}
		count++

		fmt.Fprintf(&buf, "- repo %s", repo.Name)
		if repo.Language != "" {
			fmt.Fprintf(&buf, " (primary language: %s)", repo.Language)
		}
		if repo.Stars > 0 {
			fmt.Fprintf(&buf, ", %d stars", repo.Stars)
		}
		if repo.Description != "" {
			fmt.Fprintf(&buf, ": %s", repo.Description)
		}
		if len(repo.Topics) > 0 {
			fmt.Fprintf(&buf, " [topics: %s]", strings.Join(repo.Topics, ", "))
		}
		buf.WriteString("\n")
	}

	if count == 0 {
		fmt.Fprintf(&buf, "(no original repositories found)\n")
	}

	return buf.String()
}

// GitHubAdapter extracts skills from a user's public GitHub activity.
type GitHubAdapter struct {
	extractor ai.SkillExtractor
	client    *GitHubClient
	username  string
	token     string
}

// NewGitHubAdapter creates an adapter for the given username. The optional
// token raises GitHub API rate limits and grants no extra scope here.
func NewGitHubAdapter(extractor ai.SkillExtractor, client *GitHubClient, username, token string) *GitHubAdapter {
	return &GitHubAdapter{
		extractor: extractor,
		client:    client,
		username:  username,
		token:     token,
	}
}

// Label returns the source label for GitHub activity.
func (a *GitHubAdapter) Label() string {
	return LabelGitHub
}

// Extract builds the activity digest and sends it to the oracle.
func (a *GitHubAdapter) Extract(ctx context.Context) ([]core.Candidate, error) {
	digest, err := a.client.Digest(ctx, a.username, a.token)
	if err != nil {
		return nil, err
	}
	return a.extractor.ExtractSkills(ctx, digest, a.Label())
}

var _ Adapter = (*GitHubAdapter)(nil)
