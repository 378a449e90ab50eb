package openai

import (
	"context"
	"log/slog"
	"slices"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/veyra/skillmap/ai"
	"github.com/veyra/skillmap/core"
)

// Classifier implements ai.Classifier using OpenAI-compatible chat APIs.
type Classifier struct {
	client llms.Model
	logger *slog.Logger
}

// wireClusters mirrors the model's clustering JSON.
type wireClusters struct {
	Clusters map[string]string `json:"clusters"`
}

func newClassifier(config *ai.Config) (*Classifier, error) {
	client, err := newClient(config)
	if err != nil {
		return nil, err
	}

	return &Classifier{
		client: client,
		logger: slog.Default().With("component", "openai-classifier"),
	}, nil
}

// NewClassifier creates a new batch classifier using the provided configuration.
//
// Returns ai.Classifier interface to enforce abstraction.
func NewClassifier(config *ai.Config) (ai.Classifier, error) {
	return newClassifier(config)
}

// ClusterSkills maps skill names to cluster labels. Labels outside the
// known set collapse to the default cluster; names the model drops are
// simply absent from the result.
func (c *Classifier) ClusterSkills(ctx context.Context, names []string) (map[string]string, error) {
	if len(names) == 0 {
		return map[string]string{}, nil
	}

	var result wireClusters
	err := generateJSON(ctx, c.client, c.logger, "cluster",
		buildClusterPrompt(), strings.Join(names, "\n"), &result)
	if err != nil {
		return nil, err
	}

	clusters := make(map[string]string, len(result.Clusters))
	for name, cluster := range result.Clusters {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		cluster = strings.TrimSpace(cluster)
		if !slices.Contains(ai.Clusters, cluster) {
			cluster = core.DefaultCluster
		}
		clusters[name] = cluster
	}

	c.logger.Debug("clustering complete", "requested", len(names), "mapped", len(clusters))
	return clusters, nil
}
