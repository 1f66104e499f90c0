package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/thomas-vilte/matestory/internal/ai"
	"github.com/thomas-vilte/matestory/internal/config"
	domainErrors "github.com/thomas-vilte/matestory/internal/errors"
	"github.com/thomas-vilte/matestory/internal/i18n"
	"github.com/thomas-vilte/matestory/internal/logger"
	"github.com/thomas-vilte/matestory/internal/models"
)

// StoryGeneratorService generates user stories through the Gemini API.
// The few-shot exchange (structure prompt plus a golden sample answer)
// is replayed as chat history on every request so the model answers in
// the expected markdown shape.
type StoryGeneratorService struct {
	client    *genai.Client
	model     *genai.GenerativeModel
	modelName string
	config    *config.Config
	trans     *i18n.Translations
}

var _ ai.StoryGenerator = (*StoryGeneratorService)(nil)

func NewStoryGeneratorService(ctx context.Context, cfg *config.Config, trans *i18n.Translations) (*StoryGeneratorService, error) {
	providerCfg, exists := cfg.AIProviders[string(config.AIGemini)]
	if !exists || providerCfg.APIKey == "" {
		return nil, domainErrors.ErrAPIKeyMissing.WithContext("provider", "gemini")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(providerCfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	modelName := string(cfg.AIConfig.Models[config.AIGemini])
	if modelName == "" {
		modelName = string(config.DefaultModelForAI(config.AIGemini))
	}

	model := client.GenerativeModel(modelName)
	model.SetTemperature(float32(cfg.AIConfig.Temperature))
	model.SetMaxOutputTokens(int32(cfg.AIConfig.MaxOutputTokens))
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(ai.SystemInstruction)},
	}

	return &StoryGeneratorService{
		client:    client,
		model:     model,
		modelName: modelName,
		config:    cfg,
		trans:     trans,
	}, nil
}

func (s *StoryGeneratorService) GenerateUserStory(ctx context.Context, params models.StoryParams) (*models.StoryCompletion, error) {
	log := logger.FromContext(ctx)

	prompt, err := ai.BuildCompletionPrompt(params)
	if err != nil {
		return nil, domainErrors.ErrAIGeneration.WithError(err)
	}

	lang := params.Language
	if lang == "" {
		lang = s.config.Language
	}

	chat := s.model.StartChat()
	chat.History = []*genai.Content{
		{
			Role:  "user",
			Parts: []genai.Part{genai.Text(ai.StructurePrompt(lang))},
		},
		{
			Role:  "model",
			Parts: []genai.Part{genai.Text(ai.SampleResponse(lang))},
		},
	}

	start := time.Now()
	resp, err := chat.SendMessage(ctx, genai.Text(prompt))
	if err != nil {
		log.Error("gemini API call failed",
			"error", err,
			"model", s.modelName)
		return nil, mapGenerateError(err)
	}

	text := formatResponse(resp)
	if text == "" {
		return nil, domainErrors.ErrEmptyCompletion.WithContext("model", s.modelName)
	}

	usage := extractUsage(resp)
	usage.Model = s.modelName
	usage.DurationMs = time.Since(start).Milliseconds()

	log.Debug("story completion received",
		"model", usage.Model,
		"total_tokens", usage.TotalTokens)

	return &models.StoryCompletion{
		Text:  text,
		Usage: usage,
	}, nil
}

func (s *StoryGeneratorService) Close() error {
	return s.client.Close()
}

func mapGenerateError(err error) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) && apiErr.Code == 429 {
		return domainErrors.ErrQuotaExceeded.WithError(err)
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "quota") ||
		strings.Contains(errMsg, "rate limit") ||
		strings.Contains(errMsg, "resource exhausted") {
		return domainErrors.ErrQuotaExceeded.WithError(err)
	}

	return domainErrors.ErrAIGeneration.WithError(err)
}

func formatResponse(resp *genai.GenerateContentResponse) string {
	if resp == nil || resp.Candidates == nil {
		return ""
	}

	var formattedContent strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content != nil {
			for _, part := range cand.Content.Parts {
				formattedContent.WriteString(fmt.Sprintf("%v", part))
			}
		}
	}
	return strings.TrimSpace(formattedContent.String())
}

func extractUsage(resp *genai.GenerateContentResponse) *models.TokenUsage {
	usage := &models.TokenUsage{}
	if resp == nil || resp.UsageMetadata == nil {
		return usage
	}

	usage.InputTokens = int(resp.UsageMetadata.PromptTokenCount)
	usage.OutputTokens = int(resp.UsageMetadata.CandidatesTokenCount)
	usage.TotalTokens = int(resp.UsageMetadata.TotalTokenCount)
	return usage
}
