package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"google.golang.org/genai"

	"github.com/phrazzld/wordwise/internal/config"
	"github.com/phrazzld/wordwise/internal/domain"
	"github.com/phrazzld/wordwise/internal/generation"
)

// contentGenerator is the subset of *genai.Models the generator uses.
type contentGenerator interface {
	GenerateContent(
		ctx context.Context,
		model string,
		contents []*genai.Content,
		config *genai.GenerateContentConfig,
	) (*genai.GenerateContentResponse, error)
}

// GeminiGenerator implements the generation.Generator interface using
// Google's Gemini API.
type GeminiGenerator struct {
	logger      *slog.Logger
	prompt      *generation.Prompt
	models      contentGenerator
	model       string
	temperature float32
}

var (
	_ generation.Generator = (*GeminiGenerator)(nil)
	_ generation.Verifier  = (*GeminiGenerator)(nil)
)

// NewGeminiGenerator creates a generator calling Gemini with apiKey.
func NewGeminiGenerator(
	ctx context.Context,
	logger *slog.Logger,
	cfg config.LLMConfig,
	apiKey string,
) (*GeminiGenerator, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("%w: gemini API key is empty", generation.ErrNotConfigured)
	}
	if cfg.ModelName == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", generation.ErrInvalidConfig)
	}

	prompt, err := generation.NewPrompt(cfg.PromptTemplatePath)
	if err != nil {
		return nil, err
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v", generation.ErrInvalidConfig, err)
	}

	return newGenerator(logger, cfg, prompt, client.Models), nil
}

func newGenerator(
	logger *slog.Logger,
	cfg config.LLMConfig,
	prompt *generation.Prompt,
	models contentGenerator,
) *GeminiGenerator {
	return &GeminiGenerator{
		logger:      logger.With(slog.String("component", "gemini_generator")),
		prompt:      prompt,
		models:      models,
		model:       cfg.ModelName,
		temperature: cfg.Temperature,
	}
}

// NewFactory returns a generation.Factory producing Gemini generators.
func NewFactory(logger *slog.Logger, cfg config.LLMConfig) generation.Factory {
	return func(ctx context.Context, apiKey string) (generation.Generator, error) {
		return NewGeminiGenerator(ctx, logger, cfg, apiKey)
	}
}

// GenerateWord asks Gemini for one vocabulary item matching req.
func (g *GeminiGenerator) GenerateWord(ctx context.Context, req generation.Request) (domain.VocabularyItem, error) {
	prompt, err := g.prompt.Render(req)
	if err != nil {
		return domain.VocabularyItem{}, fmt.Errorf("%w: %v", generation.ErrGenerationFailed, err)
	}

	g.logger.DebugContext(ctx, "requesting word from Gemini",
		"language", req.Language,
		"level", req.Level,
		"excluded", len(req.Exclude),
		"prompt_length", len(prompt))

	temperature := g.temperature
	resp, err := g.models.GenerateContent(ctx, g.model, userContent(prompt), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   wordSchema(req),
		Temperature:      &temperature,
	})
	if err != nil {
		return domain.VocabularyItem{}, classifyError(ctx, err)
	}

	text, err := responseText(resp)
	if err != nil {
		g.logger.WarnContext(ctx, "unusable Gemini response", "error", err)
		return domain.VocabularyItem{}, err
	}

	var item domain.VocabularyItem
	if err := json.Unmarshal([]byte(text), &item); err != nil {
		return domain.VocabularyItem{}, fmt.Errorf("%w: failed to parse JSON response: %v", generation.ErrInvalidResponse, err)
	}
	if err := item.Validate(); err != nil {
		return domain.VocabularyItem{}, fmt.Errorf("%w: %v", generation.ErrInvalidResponse, err)
	}

	g.logger.InfoContext(ctx, "word generated",
		"language", req.Language,
		"level", req.Level)

	return item, nil
}

// Verify sends a minimal request to check that the API key is accepted.
func (g *GeminiGenerator) Verify(ctx context.Context) error {
	_, err := g.models.GenerateContent(ctx, g.model, userContent("hello"), nil)
	if err != nil {
		return fmt.Errorf("%w: %v", generation.ErrInvalidConfig, err)
	}
	return nil
}

func userContent(text string) []*genai.Content {
	return []*genai.Content{{
		Role:  "user",
		Parts: []*genai.Part{{Text: text}},
	}}
}

func wordSchema(req generation.Request) *genai.Schema {
	descriptions := generation.FieldDescriptions(req)
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"word":            {Type: genai.TypeString, Description: descriptions["word"]},
			"translation":     {Type: genai.TypeString, Description: descriptions["translation"]},
			"exampleSentence": {Type: genai.TypeString, Description: descriptions["exampleSentence"]},
		},
		Required: []string{"word", "translation", "exampleSentence"},
	}
}

// responseText concatenates the text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil {
		return "", fmt.Errorf("%w: nil response", generation.ErrInvalidResponse)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0] == nil {
		return "", fmt.Errorf("%w: no content generated", generation.ErrInvalidResponse)
	}

	candidate := resp.Candidates[0]
	if candidate.FinishReason == genai.FinishReasonSafety {
		return "", fmt.Errorf("%w: content blocked by safety filters", generation.ErrContentBlocked)
	}
	if candidate.Content == nil {
		return "", fmt.Errorf("%w: empty content in response", generation.ErrInvalidResponse)
	}

	var sb strings.Builder
	for _, part := range candidate.Content.Parts {
		if part != nil {
			sb.WriteString(part.Text)
		}
	}

	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", fmt.Errorf("%w: empty text in response", generation.ErrInvalidResponse)
	}
	return text, nil
}

func classifyError(ctx context.Context, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) || ctx.Err() != nil {
		return fmt.Errorf("%w: %v", generation.ErrTransientFailure, err)
	}
	return fmt.Errorf("%w: %v", generation.ErrGenerationFailed, err)
}
