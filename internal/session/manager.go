package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/phrazzld/wordwise/internal/domain"
	"github.com/phrazzld/wordwise/internal/domain/srs"
	"github.com/phrazzld/wordwise/internal/generation"
	"github.com/phrazzld/wordwise/internal/pronounce"
	"github.com/phrazzld/wordwise/internal/store"
	"github.com/phrazzld/wordwise/internal/wordbank"
)

// ErrInvalidAPIKey is returned when the word source rejects a key being stored.
var ErrInvalidAPIKey = errors.New("api key was rejected by the word source")

// ManagerOptions configures a Manager.
type ManagerOptions struct {
	Session Config

	Store     store.KV
	Persister Persister
	Scheduler srs.Service

	// Factory builds word sources from API keys. DefaultAPIKey is used for
	// learners who have not stored a key of their own.
	Factory       generation.Factory
	DefaultAPIKey string

	Speaker pronounce.Speaker
	Logger  *slog.Logger
	Clock   func() time.Time
}

// Manager owns one Controller per scope and the per-user settings that
// shape them.
type Manager struct {
	opts   ManagerOptions
	logger *slog.Logger

	mu          sync.RWMutex
	controllers map[domain.Scope]*Controller
	loads       singleflight.Group
}

// NewManager creates a manager. Store, Persister and Scheduler are required.
func NewManager(opts ManagerOptions) (*Manager, error) {
	if opts.Store == nil || opts.Persister == nil || opts.Scheduler == nil {
		return nil, errors.New("session: store, persister and scheduler are required")
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Manager{
		opts:        opts,
		logger:      opts.Logger.With(slog.String("component", "session_manager")),
		controllers: make(map[domain.Scope]*Controller),
	}, nil
}

// Controller returns the controller of scope, loading the scope's stored
// state on first use.
func (m *Manager) Controller(ctx context.Context, scope domain.Scope) (*Controller, error) {
	if err := scope.Validate(); err != nil {
		return nil, err
	}

	if c, ok := m.cached(scope); ok {
		return c, nil
	}

	v, err, _ := m.loads.Do(scope.String(), func() (any, error) {
		if c, ok := m.cached(scope); ok {
			return c, nil
		}
		c, err := m.load(ctx, scope)
		if err != nil {
			return nil, err
		}
		m.mu.Lock()
		m.controllers[scope] = c
		m.mu.Unlock()
		return c, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Controller), nil
}

func (m *Manager) cached(scope domain.Scope) (*Controller, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.controllers[scope]
	return c, ok
}

func (m *Manager) load(ctx context.Context, scope domain.Scope) (*Controller, error) {
	keys := store.KeysFor(scope)

	var (
		words []domain.Word
		level domain.CEFRLevel
		stat  *domain.RevisionStat
		gen   generation.Generator
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		words, err = store.Load(gctx, m.opts.Store, keys.WordBank, []domain.Word(nil))
		return err
	})
	g.Go(func() error {
		var err error
		level, err = store.Load(gctx, m.opts.Store, keys.CEFRLevel, domain.DefaultCEFRLevel)
		return err
	})
	g.Go(func() error {
		var err error
		stat, err = store.Load[*domain.RevisionStat](gctx, m.opts.Store, keys.RevisionStats, nil)
		return err
	})
	g.Go(func() error {
		var err error
		gen, err = m.generatorFor(gctx, scope.UserID)
		if err != nil {
			m.logger.WarnContext(gctx, "word source unavailable, serving reviews only",
				"user_id", scope.UserID,
				"error", err)
			gen = nil
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load scope %s: %w", scope, err)
	}

	valid := words[:0]
	for _, w := range words {
		if err := w.Validate(); err != nil {
			m.logger.WarnContext(ctx, "skipping invalid stored word",
				"scope", scope.String(),
				"word_id", w.ID,
				"error", err)
			continue
		}
		valid = append(valid, w)
	}

	m.logger.InfoContext(ctx, "scope loaded",
		"scope", scope.String(),
		"words", len(valid),
		"level", level,
		"word_source", gen != nil)

	return NewController(m.opts.Session, Dependencies{
		Scope:     scope,
		Scheduler: m.opts.Scheduler,
		Bank:      wordbank.New(valid),
		Level:     level,
		LastStat:  stat,
		Generator: gen,
		Speaker:   m.opts.Speaker,
		Persister: m.opts.Persister,
		Logger:    m.opts.Logger,
		Clock:     m.opts.Clock,
	})
}

// generatorFor builds the word source of userID from the stored key or the
// default key. It returns nil when neither is set.
func (m *Manager) generatorFor(ctx context.Context, userID string) (generation.Generator, error) {
	key, err := store.Load(ctx, m.opts.Store, store.UserKey(userID, store.UserDatumAPIKey), "")
	if err != nil {
		return nil, err
	}
	if key == "" {
		key = m.opts.DefaultAPIKey
	}
	return m.buildGenerator(ctx, key)
}

func (m *Manager) buildGenerator(ctx context.Context, key string) (generation.Generator, error) {
	if key == "" || m.opts.Factory == nil {
		return nil, nil
	}
	g, err := m.opts.Factory(ctx, key)
	if errors.Is(err, generation.ErrNotConfigured) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return generation.NewGuard(g, m.opts.Logger), nil
}

// SetAPIKey verifies key against the word source, stores it for userID and
// hands the new word source to every loaded controller of the user.
func (m *Manager) SetAPIKey(ctx context.Context, userID, key string) error {
	if strings.TrimSpace(userID) == "" {
		return domain.ErrEmptyUserID
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return fmt.Errorf("%w: api key is empty", domain.ErrValidation)
	}

	gen, err := m.buildGenerator(ctx, key)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidAPIKey, err)
	}
	if gen == nil {
		return ErrConfigurationMissing
	}
	if v, ok := gen.(generation.Verifier); ok {
		if err := v.Verify(ctx); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidAPIKey, err)
		}
	}

	if err := store.Save(ctx, m.opts.Store, store.UserKey(userID, store.UserDatumAPIKey), key); err != nil {
		return err
	}
	m.updateGenerators(userID, gen)

	m.logger.InfoContext(ctx, "api key stored", "user_id", userID)
	return nil
}

// ClearAPIKey removes the stored key of userID. The learner falls back to
// the default key, or to configuration-missing mode without one.
func (m *Manager) ClearAPIKey(ctx context.Context, userID string) error {
	if strings.TrimSpace(userID) == "" {
		return domain.ErrEmptyUserID
	}
	err := m.opts.Store.Delete(ctx, store.UserKey(userID, store.UserDatumAPIKey))
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return err
	}

	gen, err := m.buildGenerator(ctx, m.opts.DefaultAPIKey)
	if err != nil {
		m.logger.WarnContext(ctx, "default word source unavailable", "error", err)
		gen = nil
	}
	m.updateGenerators(userID, gen)

	m.logger.InfoContext(ctx, "api key cleared", "user_id", userID)
	return nil
}

func (m *Manager) updateGenerators(userID string, gen generation.Generator) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for scope, c := range m.controllers {
		if scope.UserID == userID {
			c.SetGenerator(gen)
		}
	}
}

// Language returns the stored language of userID, or the default language.
func (m *Manager) Language(ctx context.Context, userID string) (domain.Language, error) {
	stored, err := store.Load(ctx, m.opts.Store, store.UserKey(userID, store.UserDatumLanguage), "")
	if err != nil {
		return "", err
	}
	if stored == "" {
		return domain.DefaultLanguage, nil
	}
	lang, err := domain.ParseLanguage(stored)
	if err != nil {
		m.logger.WarnContext(ctx, "ignoring unsupported stored language",
			"user_id", userID,
			"language", stored)
		return domain.DefaultLanguage, nil
	}
	return lang, nil
}

// SetLanguage stores the preferred language of userID.
func (m *Manager) SetLanguage(ctx context.Context, userID string, lang domain.Language) error {
	if strings.TrimSpace(userID) == "" {
		return domain.ErrEmptyUserID
	}
	if _, ok := lang.Info(); !ok {
		return domain.ErrUnsupportedLanguage
	}
	return store.Save(ctx, m.opts.Store, store.UserKey(userID, store.UserDatumLanguage), string(lang))
}

// ResolveScope builds the scope of userID. An empty language selects the
// user's stored language.
func (m *Manager) ResolveScope(ctx context.Context, userID, language string) (domain.Scope, error) {
	scope := domain.Scope{UserID: strings.TrimSpace(userID)}
	if scope.UserID == "" {
		return domain.Scope{}, domain.ErrEmptyUserID
	}

	if strings.TrimSpace(language) == "" {
		lang, err := m.Language(ctx, scope.UserID)
		if err != nil {
			return domain.Scope{}, err
		}
		scope.Language = lang
		return scope, nil
	}

	lang, err := domain.ParseLanguage(language)
	if err != nil {
		return domain.Scope{}, err
	}
	scope.Language = lang
	return scope, nil
}
