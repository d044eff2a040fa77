package bootstrap

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/division-gg/division-api/config"
	redisadapter "github.com/division-gg/division-api/internal/adapters/redis"
	"github.com/division-gg/division-api/internal/data"
	"github.com/division-gg/division-api/internal/observability/statsd"
	"github.com/division-gg/division-api/internal/service"
	"github.com/redis/go-redis/v9"
)

// ServiceContainer holds the wired application services.
type ServiceContainer struct {
	Auth          *service.AuthService
	Guilds        *service.GuildService
	Email         *service.EmailService
	Verifications *service.VerificationService
	Metrics       *statsd.Client
}

// BuildServicesConfig groups inputs for BuildServices.
type BuildServicesConfig struct {
	Config      *config.AppConfig
	DB          *sql.DB
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

// BuildServices wires repositories, adapters, and services together.
func BuildServices(cfg BuildServicesConfig) (ServiceContainer, error) {
	if cfg.Config == nil {
		return ServiceContainer{}, fmt.Errorf("app config is required")
	}

	metrics, err := statsd.NewClient(statsd.Config{
		Enabled: cfg.Config.Observability.Metrics.IsEnabled(),
		Address: cfg.Config.Observability.Metrics.StatsdAddress,
		Prefix:  "division",
		Logger:  cfg.Logger,
	})
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("create statsd client: %w", err)
	}

	backend, err := buildAuthBackend(cfg.Config.Auth, cfg.Logger, metrics)
	if err != nil {
		return ServiceContainer{}, err
	}

	sessionStore := redisadapter.NewSessionStoreWithPrefix(cfg.RedisClient, "session:")
	challengeStore := redisadapter.NewChallengeStore(cfg.RedisClient)

	emailRepo := data.NewEmailRepo(cfg.DB)
	verificationRepo := data.NewVerificationRepo(cfg.DB)

	return ServiceContainer{
		Auth: service.NewAuthService(service.AuthServiceOptions{
			Provider:   backend.Provider,
			Sessions:   sessionStore,
			SessionTTL: cfg.Config.Auth.SessionTTL,
		}),
		Guilds: service.NewGuildService(service.GuildServiceOptions{
			Lister: backend.Guilds,
		}),
		Email: service.NewEmailService(service.EmailServiceOptions{
			Repo: emailRepo,
		}),
		Verifications: service.NewVerificationService(service.VerificationServiceOptions{
			Repo:       verificationRepo,
			Challenges: challengeStore,
		}),
		Metrics: metrics,
	}, nil
}
