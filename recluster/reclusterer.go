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


package recluster

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/veyra/skillmap/ai"
	"github.com/veyra/skillmap/core"
	"github.com/veyra/skillmap/storage"
)

// Config holds configuration for the reclustering operation.
type Config struct {
	// BatchSize is the number of skills to classify in each batch
	BatchSize int

	// ReportInterval is how often to report progress (number of skills)
	ReportInterval int

	// MaxRetries is the maximum number of retry attempts for failed operations
	MaxRetries int

	// RetryDelay is the base delay for exponential backoff
	RetryDelay time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		BatchSize:      50,
		ReportInterval: 50,
		MaxRetries:     3,
		RetryDelay:     1 * time.Second,
	}
}

// Reclusterer orchestrates the reclustering of a profile's skills.
type Reclusterer struct {
	skills     storage.SkillRepository
	classifier ai.Classifier
	config     *Config
	progress   io.Writer
	processor  *BatchProcessor
	iterator   *SkillIterator
}

// NewReclusterer creates a new reclusterer.
// progress: where to write progress output (typically os.Stderr)
func NewReclusterer(skills storage.SkillRepository, classifier ai.Classifier, config *Config, progress io.Writer) *Reclusterer {
	if config == nil {
		config = DefaultConfig()
	}

	processor := NewBatchProcessor(skills, classifier, config.MaxRetries, config.RetryDelay)
	iterator := NewSkillIterator(skills, config.BatchSize)

	return &Reclusterer{
		skills:     skills,
		classifier: classifier,
		config:     config,
		progress:   progress,
		processor:  processor,
		iterator:   iterator,
	}
}

// Run executes the reclustering operation for one profile.
// Every skill of the profile is reclassified with the configured classifier;
// only cluster labels change. Progress is reported to the configured writer.
func (r *Reclusterer) Run(ctx context.Context, profileID string) error {
	total, err := r.skills.CountByProfile(ctx, profileID)
	if err != nil {
		return fmt.Errorf("failed to count skills: %w", err)
	}

	if total == 0 {
		fmt.Fprintf(r.progress, "No skills found for profile %s (0 skills)\n", profileID)
		return nil
	}

	fmt.Fprintf(r.progress, "Starting reclustering of %d skills (batch size: %d)\n",
		total, r.config.BatchSize)

	tracker := NewProgressTracker(r.progress, total, r.config.ReportInterval)
	tracker.Start()

	processed := 0
	changed := 0

	err = r.iterator.ForEach(ctx, profileID, func(skills []*core.Skill) error {
		n, err := r.processor.Process(ctx, skills)
		if err != nil {
			return fmt.Errorf("failed to process batch: %w", err)
		}

		changed += n
		processed += len(skills)
		tracker.Update(processed)

		return nil
	})

	if err != nil {
		return err
	}

	tracker.Finish()

	elapsed := tracker.Elapsed()
	fmt.Fprintf(r.progress, "Reclustering complete. Processed %d skills, %d reassigned, in %v (%.1f skills/sec)\n",
		total, changed, elapsed.Round(time.Second), float64(total)/elapsed.Seconds())

	return nil
}
