// Command api serves the Bagibarang ITS inventory-sharing API.
//
// @title                       Bagibarang ITS API
// @version                     1.0
// @description                 Inventory sharing between student organizations.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	_ "github.com/bagibarang-its/inventory-api/docs"
	"github.com/bagibarang-its/inventory-api/internal/api"
	"github.com/bagibarang-its/inventory-api/internal/api/handler"
	"github.com/bagibarang-its/inventory-api/internal/core/ports"
	"github.com/bagibarang-its/inventory-api/internal/core/service"
	"github.com/bagibarang-its/inventory-api/internal/infrastructure/config"
	mongodb "github.com/bagibarang-its/inventory-api/internal/infrastructure/db/mongo"
	redisdb "github.com/bagibarang-its/inventory-api/internal/infrastructure/db/redis"
	"github.com/bagibarang-its/inventory-api/internal/infrastructure/storage"
	"github.com/bagibarang-its/inventory-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		// The logger is not configured yet.
		boot := zerolog.New(os.Stderr)
		boot.Fatal().Err(err).Msg("load config")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "inventory-api",
		Env:     cfg.Env,
	})

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	client, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return err
	}
	defer func() {
		dctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = client.Disconnect(dctx)
	}()

	orgRepo := mongodb.NewOrganizationRepository(db)
	itemRepo := mongodb.NewItemRepository(db)
	if err := mongodb.EnsureIndexes(ctx, orgRepo, itemRepo); err != nil {
		return err
	}

	// Redis only backs idempotent creates; the API runs without it.
	var idempotency ports.IdempotencyStore
	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Warn().Err(err).Msg("redis unavailable, idempotency keys disabled")
	} else {
		defer rdb.Close()
		idempotency = redisdb.NewIdempotencyStore(rdb)
	}

	tokens, err := service.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	if err != nil {
		return err
	}
	authService := service.NewAuthService(orgRepo, tokens, cfg.Auth.EmailDomain, log)
	itemService := service.NewItemService(itemRepo, idempotency, log)

	photos, err := storage.NewLocalStore(cfg.Upload.Dir, api.UploadsPath)
	if err != nil {
		return err
	}

	e := api.NewRouter(api.Deps{
		Logger:         log,
		AuthService:    authService,
		ItemService:    itemService,
		Photos:         photos,
		UploadDir:      photos.Dir(),
		MaxUploadBytes: cfg.Upload.MaxBytes,
		ClientURL:      cfg.ClientURL,
		HealthChecks: map[string]handler.DependencyCheck{
			"mongodb": func(ctx context.Context) error { return client.Ping(ctx, nil) },
			"redis":   redisCheck(rdb),
		},
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Msg("listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(sctx)
}

func redisCheck(rdb *goredis.Client) handler.DependencyCheck {
	return func(ctx context.Context) error {
		if rdb == nil {
			return errors.New("not connected")
		}
		return rdb.Ping(ctx).Err()
	}
}
