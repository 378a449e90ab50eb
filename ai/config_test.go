package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.NotNil(t, cfg)
	assert.Equal(t, "http://localhost:11434/v1", cfg.Host)
	assert.Equal(t, "qwen2.5:3b", cfg.Model)
	assert.Equal(t, 0.05, cfg.MinConfidence)
	assert.Equal(t, 5, cfg.MaxEvidence)
	assert.Equal(t, 0.7, cfg.UnlockThreshold)
}

func TestNewConfig(t *testing.T) {
	t.Run("with no options", func(t *testing.T) {
		cfg := NewConfig()

		assert.NotNil(t, cfg)
		// Should have default values
		assert.Equal(t, "http://localhost:11434/v1", cfg.Host)
		assert.Equal(t, 0.7, cfg.UnlockThreshold)
	})

	t.Run("with custom host", func(t *testing.T) {
		cfg := NewConfig(WithHost("http://custom:8080/v1"))

		assert.Equal(t, "http://custom:8080/v1", cfg.Host)
	})

	t.Run("with custom model", func(t *testing.T) {
		cfg := NewConfig(WithModel("gpt-4o-mini"))

		assert.Equal(t, "gpt-4o-mini", cfg.Model)
	})

	t.Run("with api key", func(t *testing.T) {
		cfg := NewConfig(WithAPIKey("sk-test"))

		assert.Equal(t, "sk-test", cfg.APIKey)
	})

	t.Run("with thresholds", func(t *testing.T) {
		cfg := NewConfig(
			WithMinConfidence(0.2),
			WithMaxEvidence(3),
			WithUnlockThreshold(0.8),
		)

		assert.Equal(t, 0.2, cfg.MinConfidence)
		assert.Equal(t, 3, cfg.MaxEvidence)
		assert.Equal(t, 0.8, cfg.UnlockThreshold)
	})
}

func TestConfigNormalize(t *testing.T) {
	t.Run("adds /v1 suffix", func(t *testing.T) {
		cfg := NewConfig(WithHost("http://localhost:11434"))
		cfg.Normalize()

		assert.Equal(t, "http://localhost:11434/v1", cfg.Host)
	})

	t.Run("trims trailing slash before adding /v1", func(t *testing.T) {
		cfg := NewConfig(WithHost("http://localhost:11434/"))
		cfg.Normalize()

		assert.Equal(t, "http://localhost:11434/v1", cfg.Host)
	})

	t.Run("leaves /v1 suffix alone", func(t *testing.T) {
		cfg := NewConfig(WithHost("http://localhost:11434/v1"))
		cfg.Normalize()

		assert.Equal(t, "http://localhost:11434/v1", cfg.Host)
	})

	t.Run("defaults empty api key", func(t *testing.T) {
		cfg := NewConfig(WithAPIKey(""))
		cfg.Normalize()

		assert.Equal(t, "none", cfg.APIKey)
	})
}

func TestConfigValidate(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		cfg := NewConfig()
		require.NoError(t, cfg.Validate())
	})

	t.Run("missing host", func(t *testing.T) {
		cfg := NewConfig(WithHost(""))
		assert.Error(t, cfg.Validate())
	})

	t.Run("missing model", func(t *testing.T) {
		cfg := NewConfig(WithModel(""))
		assert.Error(t, cfg.Validate())
	})

	t.Run("min confidence out of range", func(t *testing.T) {
		cfg := NewConfig(WithMinConfidence(1.5))
		assert.Error(t, cfg.Validate())
	})

	t.Run("max evidence below one", func(t *testing.T) {
		cfg := NewConfig(WithMaxEvidence(0))
		assert.Error(t, cfg.Validate())
	})

	t.Run("unlock threshold out of range", func(t *testing.T) {
		cfg := NewConfig(WithUnlockThreshold(-0.2))
		assert.Error(t, cfg.Validate())
	})

	t.Run("validate normalizes host", func(t *testing.T) {
		cfg := NewConfig(WithHost("http://localhost:9100"))
		require.NoError(t, cfg.Validate())
		assert.Equal(t, "http://localhost:9100/v1", cfg.Host)
	})
}
