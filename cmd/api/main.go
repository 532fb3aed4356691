// Command api runs the identity HTTP server.
package main

import (
	"context"
	stdlog "log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/velora/identity-api/internal/api"
	"github.com/velora/identity-api/internal/core/password"
	"github.com/velora/identity-api/internal/core/token"
	"github.com/velora/identity-api/internal/infrastructure/config"
	mongodb "github.com/velora/identity-api/internal/infrastructure/db/mongo"
	redisdb "github.com/velora/identity-api/internal/infrastructure/db/redis"
	"github.com/velora/identity-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// @title        Identity API
// @version      1.0
// @description  User account and authentication service.
//
// @securityDefinitions.apikey BearerAuth
// @in   header
// @name Authorization
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		// Logger not initialised yet; configuration failures are fatal.
		stdlog.Fatalf("identity-api: %v", err)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	codec, err := token.NewCodec(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid token configuration")
	}
	hasher := password.NewHasher(cfg.BcryptCost, cfg.HashConcurrency)

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	userRepo := mongodb.NewUserRepository(db)
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("index creation failed")
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() { _ = rdb.Close() }()

	e := api.NewRouter(db, rdb, codec, hasher, cfg, log)

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
