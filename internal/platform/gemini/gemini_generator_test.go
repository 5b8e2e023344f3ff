package gemini

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/phrazzld/wordwise/internal/config"
	"github.com/phrazzld/wordwise/internal/domain"
	"github.com/phrazzld/wordwise/internal/generation"
)

// fakeModels records the last request and replays a canned response.
type fakeModels struct {
	resp *genai.GenerateContentResponse
	err  error

	model    string
	contents []*genai.Content
	config   *genai.GenerateContentConfig
}

func (f *fakeModels) GenerateContent(
	_ context.Context,
	model string,
	contents []*genai.Content,
	config *genai.GenerateContentConfig,
) (*genai.GenerateContentResponse, error) {
	f.model = model
	f.contents = contents
	f.config = config
	return f.resp, f.err
}

func textResponse(text string, reason genai.FinishReason) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content:      &genai.Content{Role: "model", Parts: []*genai.Part{{Text: text}}},
			FinishReason: reason,
		}},
	}
}

func newTestGenerator(t *testing.T, models contentGenerator) *GeminiGenerator {
	t.Helper()
	prompt, err := generation.NewPrompt("")
	require.NoError(t, err)
	cfg := config.LLMConfig{ModelName: "gemini-2.5-flash", Temperature: 1.2}
	return newGenerator(slog.New(slog.NewTextHandler(io.Discard, nil)), cfg, prompt, models)
}

var testRequest = generation.Request{
	Language: domain.LanguageFrench,
	Level:    domain.CEFRB1,
	Exclude:  []string{"maison"},
}

func TestGenerateWordSuccess(t *testing.T) {
	t.Parallel()

	models := &fakeModels{resp: textResponse(
		`{"word":"bibliothèque","translation":"library","exampleSentence":"Je vais à la bibliothèque."}`,
		genai.FinishReasonStop,
	)}
	generator := newTestGenerator(t, models)

	item, err := generator.GenerateWord(context.Background(), testRequest)
	require.NoError(t, err)
	assert.Equal(t, "bibliothèque", item.Word)
	assert.Equal(t, "library", item.Translation)

	assert.Equal(t, "gemini-2.5-flash", models.model)
	require.Len(t, models.contents, 1)
	assert.Contains(t, models.contents[0].Parts[0].Text, "Do not generate any of the following words: maison.")
	require.NotNil(t, models.config)
	assert.Equal(t, "application/json", models.config.ResponseMIMEType)
	assert.Equal(t, []string{"word", "translation", "exampleSentence"}, models.config.ResponseSchema.Required)
	require.NotNil(t, models.config.Temperature)
	assert.InDelta(t, 1.2, *models.config.Temperature, 0.0001)
}

func TestGenerateWordFailures(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		models  *fakeModels
		wantErr error
	}{
		{
			name:    "api error",
			models:  &fakeModels{err: errors.New("403 permission denied")},
			wantErr: generation.ErrGenerationFailed,
		},
		{
			name:    "deadline",
			models:  &fakeModels{err: context.DeadlineExceeded},
			wantErr: generation.ErrTransientFailure,
		},
		{
			name:    "no candidates",
			models:  &fakeModels{resp: &genai.GenerateContentResponse{}},
			wantErr: generation.ErrInvalidResponse,
		},
		{
			name:    "safety block",
			models:  &fakeModels{resp: textResponse("", genai.FinishReasonSafety)},
			wantErr: generation.ErrContentBlocked,
		},
		{
			name:    "not json",
			models:  &fakeModels{resp: textResponse("bibliothèque", genai.FinishReasonStop)},
			wantErr: generation.ErrInvalidResponse,
		},
		{
			name:    "missing field",
			models:  &fakeModels{resp: textResponse(`{"word":"chat","translation":"cat"}`, genai.FinishReasonStop)},
			wantErr: generation.ErrInvalidResponse,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			generator := newTestGenerator(t, tc.models)
			_, err := generator.GenerateWord(context.Background(), testRequest)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestVerify(t *testing.T) {
	t.Parallel()

	ok := newTestGenerator(t, &fakeModels{resp: textResponse("hi", genai.FinishReasonStop)})
	assert.NoError(t, ok.Verify(context.Background()))

	denied := newTestGenerator(t, &fakeModels{err: errors.New("API key not valid")})
	assert.ErrorIs(t, denied.Verify(context.Background()), generation.ErrInvalidConfig)
}

func TestNewGeminiGeneratorRequiresKey(t *testing.T) {
	t.Parallel()

	_, err := NewGeminiGenerator(context.Background(), slog.Default(), config.LLMConfig{ModelName: "m"}, "")
	assert.ErrorIs(t, err, generation.ErrNotConfigured)

	_, err = NewGeminiGenerator(context.Background(), slog.Default(), config.LLMConfig{}, "key")
	assert.ErrorIs(t, err, generation.ErrInvalidConfig)
}
