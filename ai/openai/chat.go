package openai

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"github.com/veyra/skillmap/ai"
	"github.com/veyra/skillmap/metrics"
)

// parseAttempts is how many times a malformed JSON response is retried
// before giving up.
const parseAttempts = 3

// newClient creates a langchaingo client for the configured
// OpenAI-compatible endpoint.
func newClient(config *ai.Config) (llms.Model, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return openai.New(
		openai.WithBaseURL(config.Host),
		openai.WithToken(config.APIKey),
		openai.WithModel(config.Model),
	)
}

// generateJSON runs one oracle chat call with JSON mode at temperature 0
// and unmarshals the response into out, retrying the call on malformed
// JSON. Markdown fences are stripped and common JSON defects repaired
// before each parse attempt. op labels the call in logs and metrics.
func generateJSON(ctx context.Context, client llms.Model, logger *slog.Logger, op, systemPrompt, userPrompt string, out any) error {
	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart(systemPrompt),
			},
		},
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(userPrompt),
			},
		},
	}

	var lastErr error
	for attempt := 0; attempt < parseAttempts; attempt++ {
		start := time.Now()
		response, err := client.GenerateContent(ctx, content, llms.WithTemperature(0.0), llms.WithJSONMode())
		metrics.RecordOracleCall(op, time.Since(start))
		if err != nil {
			metrics.RecordOracleError(op)
			logger.Error("failed to generate content", "op", op, "attempt", attempt+1, "err", err)
			return err
		}

		if len(response.Choices) < 1 {
			logger.Debug("no choices returned from model", "op", op)
			return ErrEmptyResponse
		}

		responseText := stripFences(response.Choices[0].Content)
		responseText = repairJSON(responseText)

		if err := json.Unmarshal([]byte(responseText), out); err != nil {
			lastErr = err
			logger.Warn("error parsing oracle response",
				"op", op,
				"attempt", attempt+1,
				"response", responseText,
				"err", err)
			continue
		}

		return nil
	}

	metrics.RecordOracleError(op)
	logger.Error("failed to parse oracle response after retries", "op", op, "err", lastErr)
	return lastErr
}
