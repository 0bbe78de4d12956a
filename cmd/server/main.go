package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/admindesk/directory-system/internal/api"
	"github.com/admindesk/directory-system/internal/core/ports"
	"github.com/admindesk/directory-system/internal/core/service"
	"github.com/admindesk/directory-system/internal/directory"
	"github.com/admindesk/directory-system/internal/infrastructure/db/memory"
	mongodb "github.com/admindesk/directory-system/internal/infrastructure/db/mongo"
	redisdb "github.com/admindesk/directory-system/internal/infrastructure/db/redis"
	"github.com/admindesk/directory-system/internal/pkg/config"
	"github.com/admindesk/directory-system/pkg/logger"
)

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, cleanup, err := buildStore(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to set up snapshot store")
	}
	defer cleanup()

	dir, err := directory.New(ctx, store, log, directory.Options{
		DelayMin:    cfg.Simulator.DelayMin,
		DelayMax:    cfg.Simulator.DelayMax,
		FailureRate: cfg.Simulator.FailureRate,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize directory")
	}

	sessions, err := service.NewSessionService(ctx, dir, store, cfg.JWTSecret, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize session manager")
	}

	gate := service.NewConfirmationGate(log)
	coordinator := service.NewDirectoryService(dir, sessions, gate, log)

	e := api.NewRouter(api.Deps{
		Directory: coordinator,
		Sessions:  sessions,
		Gate:      gate,
		Store:     store,
		JWTSecret: cfg.JWTSecret,
		Logger:    log,
	})

	go func() {
		addr := ":" + cfg.Port
		log.Info().Str("addr", addr).Str("store", cfg.SnapshotStore).Msg("server starting")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

// buildStore selects the durable snapshot backend. The returned cleanup
// closes any external connection; for the in-process store it is a no-op.
func buildStore(ctx context.Context, cfg *config.Config) (ports.SnapshotStore, func(), error) {
	switch cfg.SnapshotStore {
	case "memory", "":
		return memory.NewStore(), func() {}, nil

	case "redis":
		client, err := redisdb.Connect(ctx, redisdb.Config{
			Addr: cfg.Redis.Addr,
			DB:   cfg.Redis.DB,
		})
		if err != nil {
			return nil, nil, err
		}
		return redisdb.NewSnapshotStore(client), func() { _ = client.Close() }, nil

	case "mongo":
		client, db, err := mongodb.Connect(ctx, mongodb.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
		})
		if err != nil {
			return nil, nil, err
		}
		cleanup := func() {
			disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = client.Disconnect(disconnectCtx)
		}
		return mongodb.NewSnapshotStore(db), cleanup, nil

	default:
		return nil, nil, fmt.Errorf("unknown snapshot store %q", cfg.SnapshotStore)
	}
}
