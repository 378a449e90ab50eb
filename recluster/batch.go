package recluster

import (
	"context"
	"fmt"
	"time"

	"github.com/veyra/skillmap/ai"
	"github.com/veyra/skillmap/core"
	"github.com/veyra/skillmap/storage"
)

// BatchProcessor reassigns cluster labels for batches of skills.
type BatchProcessor struct {
	skills         storage.SkillRepository
	classifier     ai.Classifier
	maxRetries     int
	retryBaseDelay time.Duration
}

// NewBatchProcessor creates a new batch processor.
// maxRetries: maximum number of retry attempts for classifier calls
// retryBaseDelay: base delay for exponential backoff
func NewBatchProcessor(skills storage.SkillRepository, classifier ai.Classifier, maxRetries int, retryBaseDelay time.Duration) *BatchProcessor {
	return &BatchProcessor{
		skills:         skills,
		classifier:     classifier,
		maxRetries:     maxRetries,
		retryBaseDelay: retryBaseDelay,
	}
}

// Process classifies a batch of skills and persists changed cluster labels.
// Only the cluster field is rewritten; confidence, evidence, and unlock state
// are untouched. Skills the classifier drops keep their current cluster.
// Returns the number of skills whose cluster changed.
func (bp *BatchProcessor) Process(ctx context.Context, skills []*core.Skill) (int, error) {
	if len(skills) == 0 {
		return 0, nil
	}

	names := make([]string, len(skills))
	for i, skill := range skills {
		names[i] = skill.Name
	}

	// Classify with retry
	var clusters map[string]string
	err := RetryWithBackoff(ctx, func() error {
		var err error
		clusters, err = bp.classifier.ClusterSkills(ctx, names)
		return err
	}, bp.maxRetries, bp.retryBaseDelay)

	if err != nil {
		return 0, fmt.Errorf("classify batch: %w", err)
	}

	changed := 0
	for _, skill := range skills {
		cluster, ok := clusters[skill.Name]
		if !ok || cluster == skill.Cluster {
			continue
		}

		skill.Cluster = cluster
		if _, err := bp.skills.UpdateSkill(ctx, skill); err != nil {
			return changed, fmt.Errorf("failed to update skill %q: %w", skill.Name, err)
		}
		changed++
	}

	return changed, nil
}
