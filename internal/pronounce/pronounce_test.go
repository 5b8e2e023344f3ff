package pronounce

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/wordwise/internal/domain"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestFileName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "nl_goede_morgen.mp3", FileName(" Goede Morgen ", domain.LanguageDutch))
	assert.Equal(t, "de_straße.mp3", FileName("Straße!", domain.LanguageGerman))
	assert.Equal(t, "fr_etc.mp3", FileName("../etc", domain.LanguageFrench))
}

func TestGenerateAudioFile(t *testing.T) {
	t.Parallel()

	var requests int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		assert.Equal(t, "it", r.URL.Query().Get("tl"))
		assert.Equal(t, "gatto", r.URL.Query().Get("q"))
		assert.NotEmpty(t, r.Header.Get("User-Agent"))
		_, _ = w.Write([]byte("mp3-bytes"))
	}))
	defer server.Close()

	dir := t.TempDir()
	service, err := NewTTSService(dir, server.URL, time.Second, discardLogger())
	require.NoError(t, err)

	name, err := service.GenerateAudioFile(context.Background(), "gatto", domain.LanguageItalian)
	require.NoError(t, err)
	assert.Equal(t, "it_gatto.mp3", name)

	data, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	assert.Equal(t, "mp3-bytes", string(data))

	_, err = service.GenerateAudioFile(context.Background(), "gatto", domain.LanguageItalian)
	require.NoError(t, err)
	assert.Equal(t, 1, requests, "cached clip is reused")
}

func TestGenerateAudioFileUpstreamError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	dir := t.TempDir()
	service, err := NewTTSService(dir, server.URL, time.Second, discardLogger())
	require.NoError(t, err)

	_, err = service.GenerateAudioFile(context.Background(), "perro", domain.LanguageSpanish)
	assert.Error(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "no partial files are left behind")
}

func TestSpeakCancelsPriorUtterance(t *testing.T) {
	t.Parallel()

	slowStarted := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("q") == "langzaam" {
			close(slowStarted)
			<-r.Context().Done()
			return
		}
		_, _ = w.Write([]byte("audio"))
	}))
	defer server.Close()

	dir := t.TempDir()
	service, err := NewTTSService(dir, server.URL, 5*time.Second, discardLogger())
	require.NoError(t, err)

	service.Speak("langzaam", domain.LanguageDutch)
	<-slowStarted
	service.Speak("snel", domain.LanguageDutch)
	service.Wait()

	_, err = os.Stat(filepath.Join(dir, FileName("snel", domain.LanguageDutch)))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, FileName("langzaam", domain.LanguageDutch)))
	assert.True(t, os.IsNotExist(err), "cancelled utterance leaves no clip")
}

func TestNewTTSServiceRequiresDir(t *testing.T) {
	t.Parallel()

	_, err := NewTTSService("", "", 0, discardLogger())
	assert.Error(t, err)
}
