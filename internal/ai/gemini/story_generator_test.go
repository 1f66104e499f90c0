package gemini

import (
	"context"
	"errors"
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/googleapi"

	"github.com/thomas-vilte/matestory/internal/config"
	domainErrors "github.com/thomas-vilte/matestory/internal/errors"
)

func TestNewStoryGeneratorService(t *testing.T) {
	t.Run("should fail when the API key is missing", func(t *testing.T) {
		cfg := &config.Config{
			Language:    "en",
			AIProviders: map[string]config.AIProviderConfig{},
		}

		_, err := NewStoryGeneratorService(context.Background(), cfg, nil)

		require.Error(t, err)
		var appErr *domainErrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, domainErrors.TypeConfiguration, appErr.Type)
	})

	t.Run("should fail when the provider key is empty", func(t *testing.T) {
		cfg := &config.Config{
			Language: "en",
			AIProviders: map[string]config.AIProviderConfig{
				"gemini": {APIKey: ""},
			},
		}

		_, err := NewStoryGeneratorService(context.Background(), cfg, nil)

		assert.Error(t, err)
	})
}

func TestFormatResponse(t *testing.T) {
	t.Run("should join all candidate parts", func(t *testing.T) {
		resp := &genai.GenerateContentResponse{
			Candidates: []*genai.Candidate{
				{
					Content: &genai.Content{
						Parts: []genai.Part{genai.Text("# A Title\n"), genai.Text("body text")},
					},
				},
			},
		}

		assert.Equal(t, "# A Title\nbody text", formatResponse(resp))
	})

	t.Run("should return empty for nil or empty responses", func(t *testing.T) {
		assert.Equal(t, "", formatResponse(nil))
		assert.Equal(t, "", formatResponse(&genai.GenerateContentResponse{}))
		assert.Equal(t, "", formatResponse(&genai.GenerateContentResponse{
			Candidates: []*genai.Candidate{{Content: nil}},
		}))
	})
}

func TestExtractUsage(t *testing.T) {
	t.Run("should map usage metadata", func(t *testing.T) {
		resp := &genai.GenerateContentResponse{
			UsageMetadata: &genai.UsageMetadata{
				PromptTokenCount:     120,
				CandidatesTokenCount: 430,
				TotalTokenCount:      550,
			},
		}

		usage := extractUsage(resp)

		assert.Equal(t, 120, usage.InputTokens)
		assert.Equal(t, 430, usage.OutputTokens)
		assert.Equal(t, 550, usage.TotalTokens)
	})

	t.Run("should return zero usage without metadata", func(t *testing.T) {
		usage := extractUsage(&genai.GenerateContentResponse{})
		assert.Equal(t, 0, usage.TotalTokens)
	})
}

func TestMapGenerateError(t *testing.T) {
	t.Run("should map HTTP 429 to quota exceeded", func(t *testing.T) {
		err := mapGenerateError(&googleapi.Error{Code: 429, Message: "rate limited"})
		assert.ErrorIs(t, err, domainErrors.ErrQuotaExceeded)
	})

	t.Run("should map quota wording to quota exceeded", func(t *testing.T) {
		err := mapGenerateError(errors.New("resource exhausted: try again later"))
		assert.ErrorIs(t, err, domainErrors.ErrQuotaExceeded)
	})

	t.Run("should map anything else to a generation error", func(t *testing.T) {
		err := mapGenerateError(errors.New("connection reset"))
		assert.ErrorIs(t, err, domainErrors.ErrAIGeneration)
	})
}
