package config

import "strings"

// HTTPConfig contains HTTP server configuration.
type HTTPConfig struct {
	// Addr is the address to bind the HTTP server to.
	Addr string `env:"HTTP_ADDR" envDefault:":8080"`

	// BaseURL is the base URL of the application (e.g., "https://division.gg").
	// Used for generating absolute URLs in outbound contexts.
	BaseURL string `env:"APP_BASE_URL" envDefault:"http://localhost:8080"`

	// CookieDomain is the domain for session cookies.
	// Leave empty to use the request domain.
	CookieDomain string `env:"APP_COOKIE_DOMAIN" envDefault:""`
}

// Sanitize applies guardrails to HTTP configuration values.
func (h *HTTPConfig) Sanitize() {
	h.BaseURL = strings.TrimSuffix(strings.TrimSpace(h.BaseURL), "/")
	if h.Addr == "" {
		h.Addr = ":8080"
	}
}
