package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/kaffehuset/coffeeshop-api/internal/api"
	"github.com/kaffehuset/coffeeshop-api/internal/infrastructure/config"
	mongodb "github.com/kaffehuset/coffeeshop-api/internal/infrastructure/db/mongo"
	redisdb "github.com/kaffehuset/coffeeshop-api/internal/infrastructure/db/redis"
	"github.com/kaffehuset/coffeeshop-api/internal/infrastructure/seed"
	"github.com/kaffehuset/coffeeshop-api/pkg/logger"
)

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- MongoDB ---
	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongodb")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Disconnect(disconnectCtx)
	}()

	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("failed to create indexes")
	}

	// --- Redis ---
	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer rdb.Close()

	// --- Development fixtures ---
	if cfg.Seed {
		userRepo := mongodb.NewUserRepository(db)
		productRepo := mongodb.NewProductRepository(db)
		if err := seed.Run(ctx, userRepo, productRepo, log); err != nil {
			log.Fatal().Err(err).Msg("failed to seed database")
		}
	}

	// --- HTTP server + event workers ---
	e, dispatcher := api.NewRouter(db, rdb, api.Options{
		JWTSecret:    cfg.JWTSecret,
		TokenTTL:     cfg.TokenTTL,
		EventWorkers: cfg.EventWorkers,
		Logger:       log,
	})
	dispatcher.Start(ctx)

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("coffeeshop api started")

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
