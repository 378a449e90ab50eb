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


package openai

import (
	"log/slog"

	"github.com/veyra/skillmap/ai"
)

// Provider implements ai.Provider using OpenAI-compatible services.
// It manages extractor, analyst, writer, and classifier instances.
type Provider struct {
	config     *ai.Config
	extractor  *SkillExtractor
	analyst    *GapAnalyst
	writer     *StoryWriter
	classifier *Classifier
	logger     *slog.Logger
}

// NewProvider creates a new oracle provider with OpenAI-compatible services.
// The config is validated and normalized before use.
//
// Returns ai.Provider interface (not *Provider) to enforce abstraction
// and prevent coupling to OpenAI-specific implementation details.
func NewProvider(config *ai.Config) (ai.Provider, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	extractor, err := newSkillExtractor(config)
	if err != nil {
		return nil, err
	}

	analyst, err := newGapAnalyst(config)
	if err != nil {
		return nil, err
	}

	writer, err := newStoryWriter(config)
	if err != nil {
		return nil, err
	}

	classifier, err := newClassifier(config)
	if err != nil {
		return nil, err
	}

	return &Provider{
		config:     config,
		extractor:  extractor,
		analyst:    analyst,
		writer:     writer,
		classifier: classifier,
		logger:     slog.Default().With("component", "openai-provider"),
	}, nil
}

// SkillExtractor returns the skill extraction service.
func (p *Provider) SkillExtractor() ai.SkillExtractor {
	return p.extractor
}

// GapAnalyst returns the gap analysis service.
func (p *Provider) GapAnalyst() ai.GapAnalyst {
	return p.analyst
}

// StoryWriter returns the CV rewrite service.
func (p *Provider) StoryWriter() ai.StoryWriter {
	return p.writer
}

// Classifier returns the batch clustering service.
func (p *Provider) Classifier() ai.Classifier {
	return p.classifier
}

// Close releases resources held by the provider.
// Currently a no-op as the underlying clients don't require explicit cleanup.
func (p *Provider) Close() error {
	p.logger.Debug("closing oracle provider")
	return nil
}
