package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/phrazzld/wordwise/internal/domain"
	"github.com/phrazzld/wordwise/internal/domain/difficulty"
	"github.com/phrazzld/wordwise/internal/domain/srs"
	"github.com/phrazzld/wordwise/internal/generation"
	"github.com/phrazzld/wordwise/internal/pronounce"
	"github.com/phrazzld/wordwise/internal/stats"
	"github.com/phrazzld/wordwise/internal/store"
	"github.com/phrazzld/wordwise/internal/wordbank"
)

// DefaultNewWordsPerSession is the number of "new" verdicts that ends a session.
const DefaultNewWordsPerSession = 5

// State is the phase of a session.
type State int

// Session states.
const (
	StatePracticing State = iota
	StateSummary
)

// String returns the state name used in views.
func (s State) String() string {
	switch s {
	case StatePracticing:
		return "practicing"
	case StateSummary:
		return "summary"
	default:
		return "unknown"
	}
}

// Persister schedules a write of value under key without waiting for it.
type Persister interface {
	Persist(key string, value any)
}

// Config holds the tunables of a controller.
type Config struct {
	NewWordsPerSession int
	NewStreakLimit     int

	// GenerationTimeout bounds one word request; zero means no bound
	// beyond the caller's context.
	GenerationTimeout time.Duration
}

// Dependencies are the collaborators of a controller. Generator may be nil,
// in which case new words are unavailable until SetGenerator is called.
type Dependencies struct {
	Scope     domain.Scope
	Scheduler srs.Service
	Bank      *wordbank.Bank
	Level     domain.CEFRLevel
	LastStat  *domain.RevisionStat
	Generator generation.Generator
	Speaker   pronounce.Speaker
	Persister Persister
	Logger    *slog.Logger

	// Clock defaults to time.Now.
	Clock func() time.Time
}

// Summary lists the records touched during a session.
type Summary struct {
	New      []domain.Word `json:"new"`
	Repeated []domain.Word `json:"repeated"`
}

// Outcome describes the effect of one verdict.
type Outcome struct {
	Verdict     domain.Verdict
	Record      *domain.Word
	LevelChange difficulty.Change

	// Stat is set when the verdict ended the session.
	Stat *domain.RevisionStat
}

// SessionEnded reports whether the verdict moved the session to its summary.
func (o Outcome) SessionEnded() bool {
	return o.Stat != nil
}

// Controller runs the practice sessions of one scope. All methods are safe
// for concurrent use; word generation runs without holding the lock.
type Controller struct {
	mu sync.Mutex

	cfg       Config
	scope     domain.Scope
	keys      store.ScopeKeys
	scheduler srs.Service
	bank      *wordbank.Bank
	adjuster  *difficulty.Adjuster
	stats     *stats.Aggregator
	generator generation.Generator
	speaker   pronounce.Speaker
	persister Persister
	logger    *slog.Logger
	clock     func() time.Time

	state     State
	sessionID uuid.UUID
	epoch     uint64
	card      *domain.Card
	inFlight  bool
	newCount  int
	startedAt time.Time
	summary   Summary
	lastErr   error
}

// NewController creates a controller for deps.Scope and starts its first session.
func NewController(cfg Config, deps Dependencies) (*Controller, error) {
	if err := deps.Scope.Validate(); err != nil {
		return nil, err
	}
	if deps.Scheduler == nil || deps.Bank == nil || deps.Persister == nil {
		return nil, errors.New("session: scheduler, bank and persister are required")
	}
	if cfg.NewWordsPerSession <= 0 {
		cfg.NewWordsPerSession = DefaultNewWordsPerSession
	}
	if deps.Speaker == nil {
		deps.Speaker = pronounce.Nop{}
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.Clock == nil {
		deps.Clock = time.Now
	}

	adjuster := difficulty.NewAdjuster(deps.Level, cfg.NewStreakLimit)
	c := &Controller{
		cfg:       cfg,
		scope:     deps.Scope,
		keys:      store.KeysFor(deps.Scope),
		scheduler: deps.Scheduler,
		bank:      deps.Bank,
		adjuster:  adjuster,
		stats:     stats.NewAggregator(adjuster, deps.LastStat),
		generator: deps.Generator,
		speaker:   deps.Speaker,
		persister: deps.Persister,
		logger: deps.Logger.With(
			slog.String("component", "session"),
			slog.String("scope", deps.Scope.String()),
		),
		clock: deps.Clock,
	}
	c.Start()
	return c, nil
}

// Scope returns the scope the controller serves.
func (c *Controller) Scope() domain.Scope {
	return c.scope
}

// Start begins a new session: counters, timer, summary and the presented
// card are reset and any word request still in flight is orphaned.
func (c *Controller) Start() View {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.epoch++
	c.sessionID = uuid.New()
	c.state = StatePracticing
	c.card = nil
	c.inFlight = false
	c.newCount = 0
	c.startedAt = c.clock()
	c.summary = Summary{}
	c.lastErr = nil
	c.adjuster.ResetStreak()

	c.logger.Debug("session started", "session_id", c.sessionID, "level", c.adjuster.Level())
	return c.viewLocked()
}

// SetGenerator replaces the word source. A nil generator puts the
// controller in configuration-missing mode for new words.
func (c *Controller) SetGenerator(g generation.Generator) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.generator = g
	if g != nil && errors.Is(c.lastErr, ErrConfigurationMissing) {
		c.lastErr = nil
	}
}

// NextCard returns the presented card, presenting one first if needed. A due
// review is preferred; otherwise a new word is requested from the word
// source with every known word excluded.
func (c *Controller) NextCard(ctx context.Context) (domain.Card, error) {
	c.mu.Lock()
	if c.state != StatePracticing {
		c.mu.Unlock()
		return domain.Card{}, ErrSessionEnded
	}
	if c.card != nil {
		card := *c.card
		c.mu.Unlock()
		return card, nil
	}
	if c.inFlight {
		c.mu.Unlock()
		return domain.Card{}, ErrRequestInFlight
	}

	if due, ok := c.scheduler.SelectDue(c.bank.Words(), c.clock()); ok {
		card := domain.NewReviewCard(due)
		c.presentLocked(card)
		c.mu.Unlock()
		return card, nil
	}

	if c.generator == nil {
		c.lastErr = ErrConfigurationMissing
		c.mu.Unlock()
		return domain.Card{}, ErrConfigurationMissing
	}

	epoch := c.epoch
	gen := c.generator
	req := generation.Request{
		Language: c.scope.Language,
		Level:    c.adjuster.Level(),
		Exclude:  c.bank.Texts(),
	}
	c.inFlight = true
	c.lastErr = nil
	c.mu.Unlock()

	item, err := c.generate(ctx, gen, req)

	c.mu.Lock()
	defer c.mu.Unlock()

	if epoch != c.epoch {
		c.logger.DebugContext(ctx, "dropping word generated for a previous session",
			"request_epoch", epoch,
			"current_epoch", c.epoch)
		return domain.Card{}, ErrStaleResult
	}
	c.inFlight = false

	if err != nil {
		if errors.Is(err, generation.ErrNotConfigured) {
			c.lastErr = ErrConfigurationMissing
			return domain.Card{}, ErrConfigurationMissing
		}
		genErr := newGenerationError(err)
		c.lastErr = genErr
		c.logger.WarnContext(ctx, "word generation failed",
			"reason", genErr.Reason,
			"level", req.Level,
			"error", err)
		return domain.Card{}, genErr
	}

	card := domain.NewFreshCard(item, req.Level)
	c.presentLocked(card)
	return card, nil
}

func (c *Controller) generate(ctx context.Context, gen generation.Generator, req generation.Request) (domain.VocabularyItem, error) {
	if c.cfg.GenerationTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.GenerationTimeout)
		defer cancel()
	}
	return gen.GenerateWord(ctx, req)
}

func (c *Controller) presentLocked(card domain.Card) {
	c.card = &card
	c.speaker.Speak(card.Item.Word, c.scope.Language)
}

// Respond applies verdict to the presented card. Nothing changes when the
// verdict is rejected.
func (c *Controller) Respond(ctx context.Context, verdict domain.Verdict) (Outcome, error) {
	if !verdict.Valid() {
		return Outcome{}, fmt.Errorf("%w: %q", domain.ErrInvalidVerdict, verdict)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StatePracticing {
		return Outcome{}, ErrSessionEnded
	}
	if c.card == nil {
		return Outcome{}, ErrNoCard
	}
	card := *c.card
	if !card.Allows(verdict) {
		return Outcome{}, ErrVerdictNotAllowed
	}

	now := c.clock()
	record, err := c.recordFor(card, verdict, now)
	if err != nil {
		return Outcome{}, fmt.Errorf("failed to apply %s verdict to %q: %w", verdict, card.ID(), err)
	}

	switch verdict {
	case domain.VerdictEasy, domain.VerdictKnown:
		if record != nil {
			c.summary.Repeated = append(c.summary.Repeated, *record)
		}
	case domain.VerdictNew:
		c.summary.New = append(c.summary.New, *record)
		c.newCount++
	}

	change := c.adjuster.Apply(verdict, card.IsReview)
	if record != nil {
		c.bank.Upsert(*record)
		c.persister.Persist(c.keys.WordBank, c.bank.Words())
	}
	if change.LevelChanged() {
		c.persister.Persist(c.keys.CEFRLevel, change.To)
		c.logger.InfoContext(ctx, "CEFR level changed",
			"from", change.From,
			"to", change.To)
	}
	c.card = nil
	c.lastErr = nil

	outcome := Outcome{Verdict: verdict, Record: record, LevelChange: change}
	if c.newCount >= c.cfg.NewWordsPerSession {
		stat := c.endLocked(now)
		outcome.Stat = &stat
		c.logger.InfoContext(ctx, "session completed",
			"session_id", c.sessionID,
			"total_words", stat.TotalWords,
			"new_words", stat.NewWords,
			"length", stat.RevisionLength)
	}
	return outcome, nil
}

// recordFor computes the record written for verdict, or nil when the verdict
// writes none ("easy" on a fresh card).
func (c *Controller) recordFor(card domain.Card, verdict domain.Verdict, now time.Time) (*domain.Word, error) {
	var (
		w   domain.Word
		err error
	)
	switch verdict {
	case domain.VerdictEasy:
		if !card.IsReview {
			return nil, nil
		}
		w, err = c.scheduler.AdvanceOnEasy(card, now)
	case domain.VerdictKnown:
		w, err = c.scheduler.AdvanceOnKnown(card, now)
	case domain.VerdictNew:
		w, err = c.scheduler.CreateOnNew(card, now)
	default:
		return nil, domain.ErrInvalidVerdict
	}
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func (c *Controller) endLocked(now time.Time) domain.RevisionStat {
	c.state = StateSummary
	stat := c.stats.Record(stats.Partial{
		LastRevised: now,
		Duration:    now.Sub(c.startedAt),
		TotalWords:  len(c.summary.New) + len(c.summary.Repeated),
		NewWords:    len(c.summary.New),
	})
	c.persister.Persist(c.keys.RevisionStats, stat)
	return stat
}

// Level returns the learner's current CEFR level.
func (c *Controller) Level() domain.CEFRLevel {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.adjuster.Level()
}

// Words returns a snapshot of the scope's word bank.
func (c *Controller) Words() []domain.Word {
	return c.bank.Words()
}

// LatestStat returns the statistic of the last completed session, if any.
func (c *Controller) LatestStat() (domain.RevisionStat, bool) {
	return c.stats.Latest()
}
