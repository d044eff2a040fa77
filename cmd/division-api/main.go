package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/division-gg/division-api/config"
	"github.com/division-gg/division-api/internal/bootstrap"
)

func main() {
	ctx := context.Background()
	logger := bootstrap.InitLogger()
	if err := run(ctx, logger); err != nil {
		logger.ErrorContext(ctx, "fatal error", "error", err)
		os.Exit(1) //nolint:forbidigo // Main entrypoint should exit with non-zero status on fatal errors.
	}
}

func run(ctx context.Context, logger *slog.Logger) error {
	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		return err
	}

	logStartupInfo(ctx, logger, &cfg)

	db, redisClient, err := initInfrastructure(ctx, &cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			logger.ErrorContext(ctx, "close database failed", "error", cerr)
		}
	}()
	defer func() {
		if cerr := redisClient.Close(); cerr != nil {
			logger.ErrorContext(ctx, "close redis failed", "error", cerr)
		}
	}()

	if cfg.Postgres.RunMigrationsOnStart {
		if err = bootstrap.RunMigrations(ctx, db, logger); err != nil {
			return err
		}
	} else {
		logger.InfoContext(ctx, "skipping database migrations on startup", "reason", "disabled via config")
	}

	services, err := bootstrap.BuildServices(bootstrap.BuildServicesConfig{
		Config:      &cfg,
		DB:          db,
		RedisClient: redisClient,
		Logger:      logger,
	})
	if err != nil {
		return err
	}

	return serve(ctx, serveDeps{Config: &cfg, Services: services, Logger: logger})
}

type serveDeps struct {
	Config   *config.AppConfig
	Services bootstrap.ServiceContainer
	Logger   *slog.Logger
}

// serve runs the HTTP server until SIGINT/SIGTERM, then shuts down gracefully.
func serve(ctx context.Context, deps serveDeps) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	server := bootstrap.StartHTTPServer(&bootstrap.HTTPServerConfig{
		Config:   deps.Config,
		Services: deps.Services,
		Logger:   deps.Logger,
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		<-gctx.Done()
		return bootstrap.ShutdownHTTPServer(bootstrap.ShutdownConfig{
			Context: context.Background(),
			Server:  server,
			Metrics: deps.Services.Metrics,
			Logger:  deps.Logger,
		})
	})

	return g.Wait()
}

func logStartupInfo(ctx context.Context, logger *slog.Logger, cfg *config.AppConfig) {
	logger.InfoContext(ctx, "starting division api",
		"addr", cfg.HTTP.Addr,
		"auth_mode", cfg.Auth.Mode,
		"db_host", cfg.Postgres.Host,
		"db_port", cfg.Postgres.Port,
		"db_name", cfg.Postgres.Name,
		"dev_mode", cfg.IsDev)
}

// initInfrastructure connects shared dependencies used by the service runtime.
//
//nolint:ireturn // returning redis.UniversalClient keeps sentinel/cluster support flexible.
func initInfrastructure(
	ctx context.Context,
	cfg *config.AppConfig,
	logger *slog.Logger,
) (*sql.DB, redis.UniversalClient, error) {
	db, err := bootstrap.ConnectDB(bootstrap.DatabaseConfig{
		DBConfig:    cfg.Postgres,
		RedisConfig: cfg.Redis,
		Logger:      logger,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("connect db: %w", err)
	}

	redisClient, err := bootstrap.ConnectRedis(bootstrap.DatabaseConfig{
		DBConfig:    cfg.Postgres,
		RedisConfig: cfg.Redis,
		Logger:      logger,
	})
	if err != nil {
		if cerr := db.Close(); cerr != nil {
			logger.ErrorContext(ctx, "close database after redis connect failure", "error", cerr)
			return nil, nil, errors.Join(fmt.Errorf("connect redis: %w", err), fmt.Errorf("close database: %w", cerr))
		}
		return nil, nil, fmt.Errorf("connect redis: %w", err)
	}

	return db, redisClient, nil
}
