package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/veritasnetwork/veritas-core/internal/api"
	"github.com/veritasnetwork/veritas-core/internal/config"
	"github.com/veritasnetwork/veritas-core/internal/genesis"
	"github.com/veritasnetwork/veritas-core/internal/store"
)

func main() {
	if err := config.Load(); err != nil {
		panic(err)
	}

	logger := newLogger(config.LogLevel())
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()

	// The archive is optional: without DATABASE_URL the node runs with
	// in-memory consensus state only.
	var pool *pgxpool.Pool
	if dbURL := config.DatabaseURL(); dbURL != "" {
		var err error
		pool, err = pgxpool.New(ctx, dbURL)
		if err != nil {
			logger.Fatal("failed to connect to archive database", zap.Error(err))
		}
		defer pool.Close()

		if err := pool.Ping(ctx); err != nil {
			logger.Fatal("failed to ping archive database", zap.Error(err))
		}
		if err := store.NewArchive(pool).EnsureSchema(ctx); err != nil {
			logger.Fatal("failed to create archive schema", zap.Error(err))
		}
		logger.Info("connected to archive database")
	}

	app := api.NewApp(pool, logger)

	if path := config.GenesisPath(); path != "" {
		cfg, err := genesis.Load(path)
		if err != nil {
			logger.Fatal("failed to load genesis", zap.Error(err))
		}
		if err := genesis.Apply(app.Executor, app.Registry, app.Beliefs, cfg); err != nil {
			logger.Fatal("failed to apply genesis", zap.Error(err))
		}
		logger.Info("genesis applied",
			zap.Int("agents", len(cfg.Agents)),
			zap.Int("beliefs", len(cfg.Beliefs)),
		)
	}

	if app.Archiver != nil {
		app.Archiver.Start()
	}

	addr := config.ServerAddr()
	srv := &http.Server{
		Addr:    addr,
		Handler: app.Router,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Info("server starting", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("shutting down server")

	if app.Archiver != nil {
		app.Archiver.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server stopped")
}

func newLogger(level string) *zap.Logger {
	cfg := zap.NewProductionConfig()
	if lvl, err := zapcore.ParseLevel(level); err == nil {
		cfg.Level = zap.NewAtomicLevelAt(lvl)
	}
	logger, err := cfg.Build()
	if err != nil {
		panic(err)
	}
	return logger
}
