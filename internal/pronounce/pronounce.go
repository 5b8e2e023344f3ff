// Package pronounce vocalizes words in the learner's target language. Audio
// is fetched from Google Translate's text-to-speech endpoint and cached as
// MP3 files that the presentation layer serves to the learner.
package pronounce

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/phrazzld/wordwise/internal/domain"
)

// DefaultBaseURL is the Google Translate text-to-speech endpoint.
const DefaultBaseURL = "https://translate.google.com/translate_tts"

const defaultTimeout = 10 * time.Second

// Speaker vocalizes text. Speak is best-effort and returns immediately; a
// new call cancels the utterance in progress.
type Speaker interface {
	Speak(text string, language domain.Language)
}

// Nop is a Speaker that does nothing.
type Nop struct{}

// Speak does nothing.
func (Nop) Speak(string, domain.Language) {}

// TTSService provides text-to-speech functionality
type TTSService struct {
	audioDir string
	baseURL  string
	client   *http.Client
	logger   *slog.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

var _ Speaker = (*TTSService)(nil)

// NewTTSService creates a TTS service caching audio in audioDir. An empty
// baseURL uses DefaultBaseURL; a non-positive timeout uses ten seconds.
func NewTTSService(audioDir, baseURL string, timeout time.Duration, logger *slog.Logger) (*TTSService, error) {
	if audioDir == "" {
		return nil, errors.New("audio directory cannot be empty")
	}
	if err := os.MkdirAll(audioDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create audio directory: %w", err)
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &TTSService{
		audioDir: audioDir,
		baseURL:  baseURL,
		client:   &http.Client{Timeout: timeout},
		logger:   logger.With(slog.String("component", "tts")),
	}, nil
}

// Dir returns the audio cache directory.
func (s *TTSService) Dir() string {
	return s.audioDir
}

// Speak cancels the utterance in progress and prepares audio for text in the
// background.
func (s *TTSService) Speak(text string, language domain.Language) {
	ctx, cancel := context.WithCancel(context.Background())

	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	s.cancel = cancel
	s.mu.Unlock()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer cancel()

		if _, err := s.GenerateAudioFile(ctx, text, language); err != nil && !errors.Is(err, context.Canceled) {
			s.logger.Warn("failed to prepare pronunciation",
				"language", language,
				"error", err)
		}
	}()
}

// Wait blocks until every started utterance has finished or been cancelled.
func (s *TTSService) Wait() {
	s.wg.Wait()
}

// GenerateAudioFile converts text to speech and saves it as MP3.
// Returns the filename (not full path) on success.
func (s *TTSService) GenerateAudioFile(ctx context.Context, text string, language domain.Language) (string, error) {
	filename := FileName(text, language)
	path := filepath.Join(s.audioDir, filename)

	if _, err := os.Stat(path); err == nil {
		return filename, nil
	}

	if err := s.fetch(ctx, text, language, path); err != nil {
		return "", fmt.Errorf("failed to generate audio: %w", err)
	}
	return filename, nil
}

func (s *TTSService) fetch(ctx context.Context, text string, language domain.Language, outputPath string) error {
	params := url.Values{}
	params.Set("ie", "UTF-8")
	params.Set("q", text)
	params.Set("tl", languageCode(language))
	params.Set("client", "tw-ob")
	params.Set("textlen", fmt.Sprintf("%d", len(text)))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	// Google rejects requests without a browser user agent
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch audio: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	// Write to a temp file so a cancelled download never leaves a partial clip
	tmp, err := os.CreateTemp(s.audioDir, "tts-*.part")
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write audio file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write audio file: %w", err)
	}
	return os.Rename(tmp.Name(), outputPath)
}

// FileName returns the cache file name of text spoken in language.
func FileName(text string, language domain.Language) string {
	sanitized := strings.Map(func(r rune) rune {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r):
			return unicode.ToLower(r)
		case unicode.IsSpace(r), r == '-':
			return '_'
		default:
			return -1
		}
	}, strings.TrimSpace(text))
	return fmt.Sprintf("%s_%s.mp3", languageCode(language), sanitized)
}

func languageCode(language domain.Language) string {
	locale := language.Locale()
	if locale == "" {
		return "en"
	}
	code, _, _ := strings.Cut(locale, "-")
	return code
}
