package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"assistant/internal/config"
	"assistant/internal/interaction"
	"assistant/internal/logx"
	"assistant/internal/orchestrator"
	"assistant/internal/provider"
	"assistant/internal/server"
	"assistant/internal/session"
	"assistant/internal/store"
	"assistant/internal/tools"
)

func main() {
	// .env is optional; absence is the normal production case.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logx.Fatal().Err(err).Msg("invalid configuration")
	}
	logx.Init(cfg.Environment)

	if err := run(cfg); err != nil {
		logx.Fatal().Err(err).Msg("server exited")
	}
}

func run(cfg config.Config) error {
	db, err := store.NewSQLiteStore(filepath.Join(cfg.DataDir, "assistant.db"))
	if err != nil {
		return err
	}
	defer db.Close()

	log, err := interaction.NewLog(cfg.DataDir)
	if err != nil {
		return err
	}

	sessions, err := newSessionStore(cfg)
	if err != nil {
		return err
	}

	gateway := newGateway(cfg)
	dispatcher := tools.NewDispatcher(
		tools.NewReadFileTool(),
		tools.NewFetchURLTool(cfg.TorProxy),
		tools.NewProjectMemoryTool(db),
		tools.NewHandsTool(db),
		tools.NewEchoTool(),
	)
	orch := orchestrator.New(gateway, dispatcher, sessions, log, cfg.MaxToolDepth)

	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           server.New(orch, log).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logx.Info().
			Str("addr", cfg.Addr).
			Str("provider", gateway.Name()).
			Str("model", cfg.DefaultModel).
			Strs("tools", dispatcher.Names()).
			Msg("assistant listening")
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logx.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return nil
}

func newSessionStore(cfg config.Config) (session.Store, error) {
	if cfg.SessionBackend == "redis" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, err
		}
		rdb := redis.NewClient(opts)
		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			return nil, err
		}
		logx.Info().Str("backend", "redis").Msg("session store ready")
		return session.NewRedisStore(rdb, cfg.MaxHistory, cfg.SessionTTLDuration()), nil
	}
	return session.NewMemoryStore(cfg.MaxHistory), nil
}

func newGateway(cfg config.Config) provider.Provider {
	if cfg.ModelProvider == "openai" {
		return provider.NewOpenAICompat(provider.OpenAIConfig{
			BaseURL:      cfg.OpenAIBaseURL,
			APIKey:       cfg.OpenAIAPIKey,
			DefaultModel: cfg.DefaultModel,
			Timeout:      cfg.ModelTimeout(),
		})
	}
	return provider.NewOllamaCLI(cfg.DefaultModel, cfg.ModelTimeout())
}
