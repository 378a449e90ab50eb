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


package ai

import (
	"errors"
	"strings"
)

// Config holds configuration for oracle service providers.
type Config struct {
	// Host is the base URL for the OpenAI-compatible chat API.
	// Example: "http://localhost:11434/v1" for a local server
	Host string

	// Model is the model identifier to use for all oracle calls.
	// Example: "qwen2.5:3b", "gpt-4o-mini"
	Model string

	// APIKey authenticates against hosted endpoints. Local
	// OpenAI-compatible services usually accept any value.
	APIKey string

	// MinConfidence drops extracted candidates whose confidence falls
	// below this threshold. Default: 0.05
	MinConfidence float64

	// MaxEvidence caps the number of evidence snippets kept per candidate.
	// Default: 5
	MaxEvidence int

	// UnlockThreshold derives the unlock state when the oracle omits it:
	// confidence >= threshold means unlocked. Default: 0.7
	UnlockThreshold float64
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithHost sets the oracle service host URL.
func WithHost(host string) ConfigOption {
	return func(c *Config) {
		c.Host = host
	}
}

// WithModel sets the model identifier.
func WithModel(model string) ConfigOption {
	return func(c *Config) {
		c.Model = model
	}
}

// WithAPIKey sets the API key for hosted endpoints.
func WithAPIKey(key string) ConfigOption {
	return func(c *Config) {
		c.APIKey = key
	}
}

// WithMinConfidence sets the minimum confidence threshold for candidates.
func WithMinConfidence(min float64) ConfigOption {
	return func(c *Config) {
		c.MinConfidence = min
	}
}

// WithMaxEvidence sets the evidence snippet cap per candidate.
func WithMaxEvidence(max int) ConfigOption {
	return func(c *Config) {
		c.MaxEvidence = max
	}
}

// WithUnlockThreshold sets the confidence threshold for deriving unlock state.
func WithUnlockThreshold(threshold float64) ConfigOption {
	return func(c *Config) {
		c.UnlockThreshold = threshold
	}
}

// DefaultConfig returns a Config with sensible defaults for local
// OpenAI-compatible services.
func DefaultConfig() *Config {
	return &Config{
		Host:            "http://localhost:11434/v1",
		Model:           "qwen2.5:3b",
		APIKey:          "none",
		MinConfidence:   0.05,
		MaxEvidence:     5,
		UnlockThreshold: 0.7,
	}
}

// NewConfig creates a Config with the default values and applies the provided options.
// This is the recommended way to create a Config with custom settings.
//
// Example:
//   cfg := NewConfig(
//       WithHost("http://localhost:11434/v1"),
//       WithModel("qwen2.5:3b"),
//   )
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Normalize ensures the configuration is in a canonical form.
// It automatically adds the /v1 suffix to the host if missing, which is
// required by most OpenAI-compatible APIs (Ollama, LocalAI, vLLM, etc).
func (c *Config) Normalize() {
	if c.Host != "" && !strings.HasSuffix(c.Host, "/v1") {
		c.Host = strings.TrimSuffix(c.Host, "/")
		c.Host = c.Host + "/v1"
	}
	if c.APIKey == "" {
		c.APIKey = "none"
	}
}

// Validate checks that the configuration is valid and complete.
// It automatically normalizes the configuration before validation.
func (c *Config) Validate() error {
	c.Normalize()

	if c.Host == "" {
		return errors.New("ai config: Host is required")
	}
	if c.Model == "" {
		return errors.New("ai config: Model is required")
	}
	if c.MinConfidence < 0 || c.MinConfidence > 1 {
		return errors.New("ai config: MinConfidence must be between 0 and 1")
	}
	if c.MaxEvidence < 1 {
		return errors.New("ai config: MaxEvidence must be at least 1")
	}
	if c.UnlockThreshold < 0 || c.UnlockThreshold > 1 {
		return errors.New("ai config: UnlockThreshold must be between 0 and 1")
	}
	return nil
}
