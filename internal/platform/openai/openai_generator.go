// Package openai provides a generation.Generator backed by any
// OpenAI-compatible chat completion endpoint.
package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	goopenai "github.com/sashabaranov/go-openai"

	"github.com/phrazzld/wordwise/internal/config"
	"github.com/phrazzld/wordwise/internal/domain"
	"github.com/phrazzld/wordwise/internal/generation"
)

const systemPrompt = "You reply with a single JSON object with the string fields " +
	`"word", "translation" and "exampleSentence" and nothing else.`

// chatClient is the subset of *goopenai.Client the generator uses.
type chatClient interface {
	CreateChatCompletion(ctx context.Context, req goopenai.ChatCompletionRequest) (goopenai.ChatCompletionResponse, error)
	ListModels(ctx context.Context) (goopenai.ModelsList, error)
}

// Generator implements generation.Generator with chat completions in JSON mode.
type Generator struct {
	logger      *slog.Logger
	prompt      *generation.Prompt
	client      chatClient
	model       string
	temperature float32
}

var (
	_ generation.Generator = (*Generator)(nil)
	_ generation.Verifier  = (*Generator)(nil)
)

// NewGenerator creates a generator calling the configured endpoint with apiKey.
func NewGenerator(logger *slog.Logger, cfg config.LLMConfig, apiKey string) (*Generator, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("%w: openai API key is empty", generation.ErrNotConfigured)
	}
	if cfg.ModelName == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", generation.ErrInvalidConfig)
	}

	prompt, err := generation.NewPrompt(cfg.PromptTemplatePath)
	if err != nil {
		return nil, err
	}

	clientConfig := goopenai.DefaultConfig(apiKey)
	if cfg.OpenAIBaseURL != "" {
		clientConfig.BaseURL = cfg.OpenAIBaseURL
	}

	return newGenerator(logger, cfg, prompt, goopenai.NewClientWithConfig(clientConfig)), nil
}

func newGenerator(logger *slog.Logger, cfg config.LLMConfig, prompt *generation.Prompt, client chatClient) *Generator {
	return &Generator{
		logger:      logger.With(slog.String("component", "openai_generator")),
		prompt:      prompt,
		client:      client,
		model:       cfg.ModelName,
		temperature: cfg.Temperature,
	}
}

// NewFactory returns a generation.Factory producing OpenAI-compatible generators.
func NewFactory(logger *slog.Logger, cfg config.LLMConfig) generation.Factory {
	return func(_ context.Context, apiKey string) (generation.Generator, error) {
		return NewGenerator(logger, cfg, apiKey)
	}
}

// GenerateWord asks the model for one vocabulary item matching req.
func (g *Generator) GenerateWord(ctx context.Context, req generation.Request) (domain.VocabularyItem, error) {
	prompt, err := g.prompt.Render(req)
	if err != nil {
		return domain.VocabularyItem{}, fmt.Errorf("%w: %v", generation.ErrGenerationFailed, err)
	}

	resp, err := g.client.CreateChatCompletion(ctx, goopenai.ChatCompletionRequest{
		Model: g.model,
		Messages: []goopenai.ChatCompletionMessage{
			{Role: goopenai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: goopenai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: g.temperature,
		ResponseFormat: &goopenai.ChatCompletionResponseFormat{
			Type: goopenai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return domain.VocabularyItem{}, classifyError(err)
	}
	if len(resp.Choices) == 0 {
		return domain.VocabularyItem{}, fmt.Errorf("%w: empty chat response", generation.ErrInvalidResponse)
	}

	choice := resp.Choices[0]
	if choice.FinishReason == goopenai.FinishReasonContentFilter {
		return domain.VocabularyItem{}, fmt.Errorf("%w: content filtered", generation.ErrContentBlocked)
	}

	var item domain.VocabularyItem
	content := strings.TrimSpace(choice.Message.Content)
	if err := json.Unmarshal([]byte(content), &item); err != nil {
		return domain.VocabularyItem{}, fmt.Errorf("%w: failed to parse JSON response: %v", generation.ErrInvalidResponse, err)
	}
	if err := item.Validate(); err != nil {
		return domain.VocabularyItem{}, fmt.Errorf("%w: %v", generation.ErrInvalidResponse, err)
	}

	g.logger.InfoContext(ctx, "word generated",
		"language", req.Language,
		"level", req.Level,
		"model", g.model)
	return item, nil
}

// Verify lists models to check that the API key is accepted.
func (g *Generator) Verify(ctx context.Context) error {
	if _, err := g.client.ListModels(ctx); err != nil {
		return fmt.Errorf("%w: %v", generation.ErrInvalidConfig, err)
	}
	return nil
}

func classifyError(err error) error {
	var apiErr *goopenai.APIError
	if errors.As(err, &apiErr) {
		if apiErr.HTTPStatusCode == http.StatusTooManyRequests || apiErr.HTTPStatusCode >= http.StatusInternalServerError {
			return fmt.Errorf("%w: %v", generation.ErrTransientFailure, err)
		}
		return fmt.Errorf("%w: %v", generation.ErrGenerationFailed, err)
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: %v", generation.ErrTransientFailure, err)
	}
	return fmt.Errorf("%w: %v", generation.ErrGenerationFailed, err)
}
