package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/phrazzld/wordwise/internal/api"
	"github.com/phrazzld/wordwise/internal/config"
	"github.com/phrazzld/wordwise/internal/domain/srs"
	"github.com/phrazzld/wordwise/internal/generation"
	"github.com/phrazzld/wordwise/internal/platform/gemini"
	"github.com/phrazzld/wordwise/internal/platform/openai"
	"github.com/phrazzld/wordwise/internal/platform/postgres"
	"github.com/phrazzld/wordwise/internal/pronounce"
	"github.com/phrazzld/wordwise/internal/redact"
	"github.com/phrazzld/wordwise/internal/session"
	"github.com/phrazzld/wordwise/internal/store"
	"github.com/phrazzld/wordwise/internal/task"
)

const shutdownTimeout = 10 * time.Second

// application holds the wired components of a running server.
type application struct {
	config *config.Config
	logger *slog.Logger

	kv         store.KV
	closeStore func() error
	pool       *task.WorkerPool
	tts        *pronounce.TTSService
	handler    http.Handler
}

// newApplication opens the store and wires every component from cfg.
func newApplication(ctx context.Context, cfg *config.Config) (*application, error) {
	logger := slog.Default()
	logger.Info("configuration loaded",
		"port", cfg.Server.Port,
		"store_driver", cfg.Store.Driver,
		"store_url", postgres.MaskURL(cfg.Store.URL),
		"llm_provider", cfg.LLM.Provider,
		"llm_model", cfg.LLM.ModelName,
		"llm_api_key", redact.Secret(cfg.LLM.APIKey()),
		"speech_enabled", cfg.Speech.Enabled)

	kv, closeStore, err := openStore(ctx, cfg.Store, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	app := &application{
		config:     cfg,
		logger:     logger,
		kv:         kv,
		closeStore: closeStore,
	}
	if err := app.wire(); err != nil {
		_ = closeStore()
		return nil, err
	}
	return app, nil
}

func (app *application) wire() error {
	cfg := app.config

	queue := task.NewTaskQueue(app.logger)
	app.pool = task.NewWorkerPool(queue, task.WorkerPoolConfig{WorkerCount: cfg.Persist.Workers}, app.logger)
	writer := task.NewWriter(app.kv, queue, app.logger)

	var speaker pronounce.Speaker = pronounce.Nop{}
	audioDir := ""
	if cfg.Speech.Enabled {
		tts, err := pronounce.NewTTSService(cfg.Speech.AudioDir, cfg.Speech.BaseURL, cfg.Speech.Timeout, app.logger)
		if err != nil {
			return fmt.Errorf("failed to set up pronunciation: %w", err)
		}
		app.tts = tts
		speaker = tts
		audioDir = tts.Dir()
	}

	manager, err := session.NewManager(session.ManagerOptions{
		Session: session.Config{
			NewWordsPerSession: cfg.Session.NewWordsPerSession,
			NewStreakLimit:     cfg.Session.NewStreakLimit,
			GenerationTimeout:  cfg.LLM.Timeout,
		},
		Store:         app.kv,
		Persister:     writer,
		Scheduler:     srs.NewServiceWithParams(srs.NewParams(srs.ParamsConfig{IntervalHours: cfg.SRS.IntervalHours})),
		Factory:       wordSourceFactory(cfg.LLM, app.logger),
		DefaultAPIKey: cfg.LLM.APIKey(),
		Speaker:       speaker,
		Logger:        app.logger,
	})
	if err != nil {
		return fmt.Errorf("failed to create session manager: %w", err)
	}

	app.handler = api.NewRouter(api.RouterConfig{
		Sessions:  manager,
		Logger:    app.logger,
		RateLimit: cfg.Server.RateLimit,
		RateBurst: cfg.Server.RateBurst,
		AudioDir:  audioDir,
	})
	return nil
}

// wordSourceFactory returns the generator factory of the configured provider.
func wordSourceFactory(cfg config.LLMConfig, logger *slog.Logger) generation.Factory {
	if cfg.Provider == "openai" {
		return openai.NewFactory(logger, cfg)
	}
	return gemini.NewFactory(logger, cfg)
}

// run serves HTTP until ctx is cancelled, then shuts down gracefully and
// flushes pending writes.
func (app *application) run(ctx context.Context) error {
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", app.config.Server.Port),
		Handler:           app.handler,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	app.pool.Start()

	serveErr := make(chan error, 1)
	go func() {
		app.logger.Info("starting server", "port", app.config.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	var runErr error
	select {
	case <-ctx.Done():
		app.logger.Info("shutting down server")
	case err := <-serveErr:
		app.logger.Error("server failed", "error", err)
		runErr = fmt.Errorf("server failed: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		app.logger.Error("server shutdown failed", "error", err)
		runErr = errors.Join(runErr, fmt.Errorf("server shutdown failed: %w", err))
	}
	runErr = errors.Join(runErr, app.cleanup(shutdownCtx))

	app.logger.Info("server shutdown completed")
	return runErr
}

// cleanup drains pending writes and releases the store.
func (app *application) cleanup(ctx context.Context) error {
	var errs []error
	if err := app.pool.Stop(ctx); err != nil {
		errs = append(errs, fmt.Errorf("failed to flush pending writes: %w", err))
	}
	if app.tts != nil {
		app.tts.Wait()
	}
	if err := app.closeStore(); err != nil {
		errs = append(errs, fmt.Errorf("failed to close store: %w", err))
	}
	return errors.Join(errs...)
}
