package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/wordwise/internal/domain"
	"github.com/phrazzld/wordwise/internal/domain/srs"
	"github.com/phrazzld/wordwise/internal/generation"
	"github.com/phrazzld/wordwise/internal/store"
)

type verifyingGenerator struct {
	*fakeGenerator
	key string
}

func (g *verifyingGenerator) Verify(context.Context) error {
	if g.key == "rejected" {
		return errors.New("401 unauthorized")
	}
	return nil
}

type keyRecorder struct {
	mu   sync.Mutex
	keys []string
}

func (r *keyRecorder) factory(_ context.Context, key string) (generation.Generator, error) {
	if key == "" {
		return nil, generation.ErrNotConfigured
	}
	r.mu.Lock()
	r.keys = append(r.keys, key)
	r.mu.Unlock()
	return &verifyingGenerator{fakeGenerator: &fakeGenerator{}, key: key}, nil
}

func newTestManager(t *testing.T, kv store.KV, defaultKey string) (*Manager, *keyRecorder) {
	t.Helper()
	rec := &keyRecorder{}
	clock := newFakeClock()
	m, err := NewManager(ManagerOptions{
		Session:       Config{NewWordsPerSession: 5, NewStreakLimit: 3},
		Store:         kv,
		Persister:     newFakePersister(),
		Scheduler:     srs.NewDefaultService(),
		Factory:       rec.factory,
		DefaultAPIKey: defaultKey,
		Logger:        testLogger(),
		Clock:         clock.Now,
	})
	require.NoError(t, err)
	return m, rec
}

func TestNewManager_RequiresCollaborators(t *testing.T) {
	t.Parallel()
	_, err := NewManager(ManagerOptions{})
	assert.Error(t, err)
}

func TestManager_LoadsStoredScope(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	kv := store.NewMemoryKV()
	keys := store.KeysFor(testScope)

	due := dueWord("huis", "house", 3, time.Hour)
	invalid := dueWord("kapot", "broken", 0, time.Hour)
	require.NoError(t, store.Save(ctx, kv, keys.WordBank, []domain.Word{due, invalid}))
	require.NoError(t, store.Save(ctx, kv, keys.CEFRLevel, domain.CEFRB2))
	stat := domain.RevisionStat{
		LastRevised:    testStart.Add(-24 * time.Hour),
		RevisionLength: "4m 10s",
		TotalWords:     7,
		NewWords:       5,
		EndCEFRLevel:   domain.CEFRB2,
	}
	require.NoError(t, store.Save(ctx, kv, keys.RevisionStats, stat))

	m, _ := newTestManager(t, kv, "")
	ctrl, err := m.Controller(ctx, testScope)
	require.NoError(t, err)

	assert.Equal(t, domain.CEFRB2, ctrl.Level())
	require.Len(t, ctrl.Words(), 1, "invalid records are skipped")
	assert.Equal(t, due.ID, ctrl.Words()[0].ID)
	latest, ok := ctrl.LatestStat()
	require.True(t, ok)
	assert.Equal(t, stat.RevisionLength, latest.RevisionLength)
	assert.True(t, stat.LastRevised.Equal(latest.LastRevised))

	card, err := ctrl.NextCard(ctx)
	require.NoError(t, err)
	assert.True(t, card.IsReview)

	_, err = ctrl.Respond(ctx, domain.VerdictKnown)
	require.NoError(t, err)
	_, err = ctrl.NextCard(ctx)
	assert.ErrorIs(t, err, ErrConfigurationMissing)
}

func TestManager_DefaultsForEmptyScope(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	kv := store.NewMemoryKV()
	require.NoError(t, kv.Put(ctx, store.KeysFor(testScope).WordBank, []byte("{not json")))

	m, rec := newTestManager(t, kv, "server-key")
	ctrl, err := m.Controller(ctx, testScope)
	require.NoError(t, err)

	assert.Equal(t, domain.DefaultCEFRLevel, ctrl.Level())
	assert.Empty(t, ctrl.Words())
	_, ok := ctrl.LatestStat()
	assert.False(t, ok)
	assert.Equal(t, []string{"server-key"}, rec.keys)

	_, err = kv.Get(ctx, store.KeysFor(testScope).WordBank)
	assert.ErrorIs(t, err, store.ErrNotFound, "corrupt entry is deleted")

	card, err := ctrl.NextCard(ctx)
	require.NoError(t, err)
	assert.False(t, card.IsReview)
}

func TestManager_ControllerIsCachedPerScope(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	m, _ := newTestManager(t, store.NewMemoryKV(), "")

	var wg sync.WaitGroup
	ctrls := make([]*Controller, 8)
	for i := range ctrls {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			c, err := m.Controller(ctx, testScope)
			assert.NoError(t, err)
			ctrls[i] = c
		}(i)
	}
	wg.Wait()

	for _, c := range ctrls {
		assert.Same(t, ctrls[0], c)
	}

	italian, err := m.Controller(ctx, domain.Scope{UserID: "42", Language: domain.LanguageItalian})
	require.NoError(t, err)
	assert.NotSame(t, ctrls[0], italian)

	_, err = m.Controller(ctx, domain.Scope{UserID: "42", Language: "Klingon"})
	assert.ErrorIs(t, err, domain.ErrUnsupportedLanguage)
}

func TestManager_APIKeyLifecycle(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	kv := store.NewMemoryKV()
	m, rec := newTestManager(t, kv, "")

	ctrl, err := m.Controller(ctx, testScope)
	require.NoError(t, err)
	_, err = ctrl.NextCard(ctx)
	require.ErrorIs(t, err, ErrConfigurationMissing)

	err = m.SetAPIKey(ctx, "42", "rejected")
	assert.ErrorIs(t, err, ErrInvalidAPIKey)
	_, err = kv.Get(ctx, store.UserKey("42", store.UserDatumAPIKey))
	assert.ErrorIs(t, err, store.ErrNotFound)

	err = m.SetAPIKey(ctx, "42", "  ")
	assert.ErrorIs(t, err, domain.ErrValidation)

	require.NoError(t, m.SetAPIKey(ctx, "42", " learner-key "))
	stored, err := store.Load(ctx, kv, store.UserKey("42", store.UserDatumAPIKey), "")
	require.NoError(t, err)
	assert.Equal(t, "learner-key", stored)
	assert.Contains(t, rec.keys, "learner-key")

	card, err := ctrl.NextCard(ctx)
	require.NoError(t, err)
	assert.False(t, card.IsReview)
	_, err = ctrl.Respond(ctx, domain.VerdictNew)
	require.NoError(t, err)

	// A controller loaded later picks up the stored key.
	german, err := m.Controller(ctx, domain.Scope{UserID: "42", Language: domain.LanguageGerman})
	require.NoError(t, err)
	_, err = german.NextCard(ctx)
	require.NoError(t, err)

	require.NoError(t, m.ClearAPIKey(ctx, "42"))
	_, err = ctrl.NextCard(ctx)
	assert.ErrorIs(t, err, ErrConfigurationMissing)
	assert.True(t, ctrl.View().ConfigurationMissing)
}

func TestManager_Language(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	kv := store.NewMemoryKV()
	m, _ := newTestManager(t, kv, "")

	lang, err := m.Language(ctx, "7")
	require.NoError(t, err)
	assert.Equal(t, domain.LanguageDutch, lang)

	require.NoError(t, m.SetLanguage(ctx, "7", domain.LanguageSpanish))
	lang, err = m.Language(ctx, "7")
	require.NoError(t, err)
	assert.Equal(t, domain.LanguageSpanish, lang)

	assert.ErrorIs(t, m.SetLanguage(ctx, "7", "Latin"), domain.ErrUnsupportedLanguage)
	assert.ErrorIs(t, m.SetLanguage(ctx, "", domain.LanguageDutch), domain.ErrEmptyUserID)

	require.NoError(t, kv.Put(ctx, store.UserKey("8", store.UserDatumLanguage), []byte(`"Latin"`)))
	lang, err = m.Language(ctx, "8")
	require.NoError(t, err)
	assert.Equal(t, domain.LanguageDutch, lang)
}

func TestManager_ResolveScope(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	m, _ := newTestManager(t, store.NewMemoryKV(), "")
	require.NoError(t, m.SetLanguage(ctx, "9", domain.LanguageFrench))

	tests := []struct {
		name     string
		userID   string
		language string
		want     domain.Scope
		wantErr  error
	}{
		{"stored language", "9", "", domain.Scope{UserID: "9", Language: domain.LanguageFrench}, nil},
		{"explicit language", "9", "german", domain.Scope{UserID: "9", Language: domain.LanguageGerman}, nil},
		{"default language", "10", "", domain.Scope{UserID: "10", Language: domain.LanguageDutch}, nil},
		{"missing user", " ", "", domain.Scope{}, domain.ErrEmptyUserID},
		{"unsupported language", "9", "Esperanto", domain.Scope{}, domain.ErrUnsupportedLanguage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := m.ResolveScope(ctx, tt.userID, tt.language)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
