package bootstrap

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/division-gg/division-api/config"
	httpx "github.com/division-gg/division-api/internal/http"
	"github.com/division-gg/division-api/internal/observability/statsd"
)

// HTTPServerConfig contains configuration for HTTP server.
type HTTPServerConfig struct {
	Config   *config.AppConfig
	Services ServiceContainer
	Logger   *slog.Logger
}

// StartHTTPServer creates and starts the HTTP server.
// Returns the server instance for graceful shutdown.
func StartHTTPServer(cfg *HTTPServerConfig) *http.Server {
	if cfg == nil {
		return nil
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	appCfg := cfg.Config
	if appCfg == nil {
		appCfg = &config.AppConfig{}
	}

	services := httpx.RouterServices{
		Auth:          cfg.Services.Auth,
		Guilds:        cfg.Services.Guilds,
		Email:         cfg.Services.Email,
		Verifications: cfg.Services.Verifications,
		RedirectURI:   appCfg.Auth.Discord.RedirectURL,
		CookieDomain:  appCfg.HTTP.CookieDomain,
		IsDev:         appCfg.IsDev,
		Logger:        logger,
	}

	handler := buildHTTPHandler(httpHandlerConfig{
		Logger:   logger,
		Services: services,
		Metrics:  cfg.Services.Metrics,
	})

	// Start server (logs "starting HTTP server" internally)
	server := startServer(logger, handler, appCfg.HTTP.Addr)

	return server
}

type httpHandlerConfig struct {
	Logger   *slog.Logger
	Services httpx.RouterServices
	Metrics  *statsd.Client
}

func buildHTTPHandler(cfg httpHandlerConfig) http.Handler {
	router := httpx.NewRouter(cfg.Services)

	// Order: Recover -> Logging -> Metrics -> Router
	h := router
	if cfg.Metrics != nil && cfg.Metrics.Enabled() {
		h = httpx.Metrics(cfg.Metrics)(h)
	}
	h = httpx.Logging(cfg.Logger)(h)
	h = httpx.Recover(cfg.Logger)(h)

	return h
}

func startServer(logger *slog.Logger, handler http.Handler, addr string) *http.Server {
	// Guard against empty addr to avoid listening on Go default
	if addr == "" {
		addr = ":8080"
	}

	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info("starting HTTP server", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server failed", "error", err)
		}
	}()

	return server
}

// ShutdownConfig contains dependencies for HTTP server shutdown.
type ShutdownConfig struct {
	Context context.Context
	Server  *http.Server
	Metrics *statsd.Client
	Logger  *slog.Logger
}

// ShutdownHTTPServer gracefully shuts down the HTTP server.
func ShutdownHTTPServer(cfg ShutdownConfig) error {
	if cfg.Server == nil {
		return nil
	}

	if cfg.Logger != nil {
		cfg.Logger.Info("shutting down HTTP server")
	}

	shutdownCtx, cancel := context.WithTimeout(cfg.Context, 10*time.Second)
	defer cancel()

	if err := cfg.Server.Shutdown(shutdownCtx); err != nil {
		return err
	}

	if cfg.Metrics != nil {
		if err := cfg.Metrics.Close(); err != nil && cfg.Logger != nil {
			cfg.Logger.Warn("close statsd client", "error", err)
		}
	}

	if cfg.Logger != nil {
		cfg.Logger.Info("HTTP server stopped")
	}

	return nil
}
