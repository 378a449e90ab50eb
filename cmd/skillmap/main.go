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


package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/urfave/cli/v2"

	"github.com/veyra/skillmap"
	"github.com/veyra/skillmap/ai"
	"github.com/veyra/skillmap/ai/openai"
	"github.com/veyra/skillmap/api"
	"github.com/veyra/skillmap/config"
	"github.com/veyra/skillmap/core"
	"github.com/veyra/skillmap/extraction"
	"github.com/veyra/skillmap/quest"
	"github.com/veyra/skillmap/recluster"
	"github.com/veyra/skillmap/search"
	"github.com/veyra/skillmap/share"
	"github.com/veyra/skillmap/storage/badger"
)

func main() {
	oracleFlags := []cli.Flag{
		&cli.StringFlag{
			Name:  "oracle-host",
			Usage: "Oracle service host URL (OpenAI-compatible)",
			Value: "http://localhost:11434/v1",
		},
		&cli.StringFlag{
			Name:     "oracle-model",
			Usage:    "Oracle model name",
			Required: true,
		},
		&cli.StringFlag{
			Name:  "api-key",
			Usage: "API key for hosted oracle endpoints",
			Value: "unused",
		},
	}

	app := &cli.App{
		Name:  "skillmap",
		Usage: "Career skill tracker: extract, merge, and share skill profiles",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Run the HTTP API server",
				Action: serveCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "addr",
						Usage: "Listen address (overrides configuration)",
					},
				},
			},
			{
				Name:  "profile",
				Usage: "Manage profiles",
				Subcommands: []*cli.Command{
					{
						Name:   "create",
						Usage:  "Create a new profile",
						Action: profileCreateCommand,
						Flags: []cli.Flag{
							dbFlag(),
							&cli.StringFlag{
								Name:     "name",
								Usage:    "Display name",
								Required: true,
							},
							&cli.StringFlag{
								Name:  "headline",
								Usage: "Short headline shown on the profile",
							},
						},
					},
					{
						Name:   "list",
						Usage:  "List profiles",
						Action: profileListCommand,
						Flags:  []cli.Flag{dbFlag()},
					},
				},
			},
			{
				Name:   "extract",
				Usage:  "Run a skill extraction for a profile",
				Action: extractCommand,
				Flags: append([]cli.Flag{
					dbFlag(),
					profileFlag(),
					&cli.StringFlag{
						Name:  "text",
						Usage: "Free text to extract skills from",
					},
					&cli.StringFlag{
						Name:  "file",
						Usage: "Document to extract skills from (.txt, .md, .html)",
					},
					&cli.StringFlag{
						Name:  "github",
						Usage: "GitHub username to extract skills from",
					},
					&cli.StringFlag{
						Name:    "github-token",
						Usage:   "GitHub API token (raises the rate limit)",
						EnvVars: []string{"GITHUB_TOKEN"},
					},
					&cli.Float64Flag{
						Name:  "unlock-threshold",
						Usage: "Confidence at which a skill counts as unlocked",
						Value: 0.7,
					},
				}, oracleFlags...),
			},
			{
				Name:   "skills",
				Usage:  "List a profile's merged skills",
				Action: skillsCommand,
				Flags: []cli.Flag{
					dbFlag(),
					profileFlag(),
					&cli.StringFlag{
						Name:  "q",
						Usage: "Filter by words in name or narrative",
					},
					&cli.StringFlag{
						Name:  "cluster",
						Usage: "Filter by exact cluster label",
					},
					&cli.StringFlag{
						Name:  "state",
						Usage: "Filter by unlock state (locked, unlocked)",
					},
				},
			},
			{
				Name:   "recluster",
				Usage:  "Reassign cluster labels for a profile's skills",
				Action: reclusterCommand,
				Flags: append([]cli.Flag{
					dbFlag(),
					profileFlag(),
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of skills to classify in each batch",
						Value: 50,
					},
					&cli.IntFlag{
						Name:  "report-interval",
						Usage: "Report progress every N skills",
						Value: 50,
					},
					&cli.IntFlag{
						Name:  "max-retries",
						Usage: "Maximum retry attempts for failed operations",
						Value: 3,
					},
					&cli.DurationFlag{
						Name:  "retry-delay",
						Usage: "Base delay for exponential backoff",
						Value: 1 * time.Second,
					},
				}, oracleFlags...),
			},
			{
				Name:  "share",
				Usage: "Manage public profile sharing",
				Subcommands: []*cli.Command{
					{
						Name:   "publish",
						Usage:  "Publish a profile at a stable public slug",
						Action: sharePublishCommand,
						Flags:  []cli.Flag{dbFlag(), profileFlag()},
					},
					{
						Name:   "unpublish",
						Usage:  "Take a profile offline (the slug stays reserved)",
						Action: shareUnpublishCommand,
						Flags:  []cli.Flag{dbFlag(), profileFlag()},
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func dbFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     "db",
		Aliases:  []string{"d"},
		Usage:    "Path to BadgerDB database directory",
		Required: true,
	}
}

func profileFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     "profile",
		Aliases:  []string{"p"},
		Usage:    "Profile ID",
		Required: true,
	}
}

func serveCommand(c *cli.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if addr := c.String("addr"); addr != "" {
		cfg.Addr = addr
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := skillmap.Open(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to open application: %w", err)
	}
	defer app.Close()

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           api.NewServer(app, api.WithMaxDocumentBytes(cfg.MaxDocumentBytes)).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("http server listening", "addr", cfg.Addr, "backend", cfg.DBBackend)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
	case <-ctx.Done():
		slog.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown failed: %w", err)
		}
	}
	return nil
}

func profileCreateCommand(c *cli.Context) error {
	repos, err := badger.NewRepositories(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer repos.Close()

	profile, err := repos.Profiles.AddProfile(context.Background(), &core.Profile{
		ID:          uuid.NewString(),
		DisplayName: c.String("name"),
		Headline:    c.String("headline"),
	})
	if err != nil {
		return fmt.Errorf("failed to create profile: %w", err)
	}

	fmt.Printf("%s\t%s\n", profile.ID, profile.DisplayName)
	return nil
}

func profileListCommand(c *cli.Context) error {
	repos, err := badger.NewRepositories(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer repos.Close()

	profiles, err := repos.Profiles.ListProfiles(context.Background())
	if err != nil {
		return fmt.Errorf("failed to list profiles: %w", err)
	}

	for _, profile := range profiles {
		shared := ""
		if profile.Shared {
			shared = "\t[shared: " + profile.ShareSlug + "]"
		}
		fmt.Printf("%s\t%s%s\n", profile.ID, profile.DisplayName, shared)
	}
	return nil
}

func extractCommand(c *cli.Context) error {
	ctx := context.Background()

	req := extraction.Request{Text: c.String("text")}
	if path := c.String("file"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read document: %w", err)
		}
		req.Document = &extraction.DocumentInput{Name: filepath.Base(path), Data: data}
	}
	if username := c.String("github"); username != "" {
		req.GitHub = &extraction.GitHubInput{
			Username: username,
			Token:    c.String("github-token"),
		}
	}

	repos, err := badger.NewRepositories(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer repos.Close()

	// Fail fast on an unknown profile before the oracle gets involved
	profileID := c.String("profile")
	if _, err := repos.Profiles.GetProfile(ctx, profileID); err != nil {
		return fmt.Errorf("failed to load profile %s: %w", profileID, err)
	}

	provider, err := openai.NewProvider(oracleConfig(c))
	if err != nil {
		return fmt.Errorf("failed to create oracle provider: %w", err)
	}
	defer provider.Close()

	quests := quest.NewService(repos.Skills, repos.Quests, c.Float64("unlock-threshold"))
	service, err := extraction.NewService(provider.SkillExtractor(), repos.Skills, quests)
	if err != nil {
		return fmt.Errorf("failed to create extraction service: %w", err)
	}
	defer service.Release()

	run, err := service.Extract(ctx, profileID, req)
	if err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}

	fmt.Printf("run %s: %s\n", run.ID, run.State)
	for label, status := range run.Sources {
		if status.Err != "" {
			fmt.Printf("  %s: %s (%s)\n", label, status.State, status.Err)
			continue
		}
		fmt.Printf("  %s: %s, %d candidates\n", label, status.State, status.Count)
	}
	if run.Summary != "" {
		fmt.Println(run.Summary)
	}
	if run.Err != "" {
		return errors.New(run.Err)
	}
	return nil
}

func skillsCommand(c *cli.Context) error {
	repos, err := badger.NewRepositories(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer repos.Close()

	skills, err := repos.Skills.ListSkills(context.Background(), c.String("profile"))
	if err != nil {
		return fmt.Errorf("failed to list skills: %w", err)
	}

	filtered := search.Filter(skills, search.Query{
		Text:    c.String("q"),
		Cluster: c.String("cluster"),
		State:   c.String("state"),
	})

	for _, skill := range filtered {
		fmt.Printf("%-30s %4.0f%%  %-10s %-24s %s\n",
			skill.Name, skill.Confidence*100, skill.Unlock, skill.Cluster, skill.Source)
	}
	fmt.Printf("%d skills\n", len(filtered))
	return nil
}

func reclusterCommand(c *cli.Context) error {
	repos, err := badger.NewRepositories(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer repos.Close()

	classifier, err := openai.NewClassifier(oracleConfig(c))
	if err != nil {
		return fmt.Errorf("failed to create classifier: %w", err)
	}

	reclusterConfig := &recluster.Config{
		BatchSize:      c.Int("batch-size"),
		ReportInterval: c.Int("report-interval"),
		MaxRetries:     c.Int("max-retries"),
		RetryDelay:     c.Duration("retry-delay"),
	}
	if reclusterConfig.BatchSize <= 0 {
		return fmt.Errorf("batch-size must be greater than 0")
	}
	if reclusterConfig.ReportInterval <= 0 {
		return fmt.Errorf("report-interval must be greater than 0")
	}
	if reclusterConfig.MaxRetries <= 0 {
		return fmt.Errorf("max-retries must be greater than 0")
	}

	reclusterer := recluster.NewReclusterer(repos.Skills, classifier, reclusterConfig, os.Stderr)

	fmt.Fprintf(os.Stderr, "Database: %s\n", c.String("db"))
	fmt.Fprintf(os.Stderr, "Oracle host: %s\n", c.String("oracle-host"))
	fmt.Fprintf(os.Stderr, "Oracle model: %s\n", c.String("oracle-model"))
	fmt.Fprintln(os.Stderr)

	if err := reclusterer.Run(context.Background(), c.String("profile")); err != nil {
		return fmt.Errorf("reclustering failed: %w", err)
	}
	return nil
}

func sharePublishCommand(c *cli.Context) error {
	repos, err := badger.NewRepositories(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer repos.Close()

	slug, err := share.NewService(repos.Profiles, repos.Skills).Publish(context.Background(), c.String("profile"))
	if err != nil {
		return fmt.Errorf("failed to publish profile: %w", err)
	}

	fmt.Printf("/v1/public/%s\n", slug)
	return nil
}

func shareUnpublishCommand(c *cli.Context) error {
	repos, err := badger.NewRepositories(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer repos.Close()

	if err := share.NewService(repos.Profiles, repos.Skills).Unpublish(context.Background(), c.String("profile")); err != nil {
		return fmt.Errorf("failed to unpublish profile: %w", err)
	}

	fmt.Println("unpublished")
	return nil
}

func oracleConfig(c *cli.Context) *ai.Config {
	return ai.NewConfig(
		ai.WithHost(c.String("oracle-host")),
		ai.WithModel(c.String("oracle-model")),
		ai.WithAPIKey(c.String("api-key")),
	)
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	// Map string to slog.Level
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	// Configure slog with the specified level
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
