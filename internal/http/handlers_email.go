package httpx

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/division-gg/division-api/internal/domain/model"
)

// EmailServiceInterface defines the interface for email capture operations.
type EmailServiceInterface interface {
	Capture(ctx context.Context, req model.CaptureEmailRequest) error
	List(ctx context.Context, limit, offset int) ([]*model.CapturedEmail, int64, error)
}

// EmailHandlers provides HTTP handlers for landing-page email capture.
type EmailHandlers struct {
	Svc    EmailServiceInterface
	Logger *slog.Logger
}

func (h *EmailHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// SaveEmail stores a visitor's email address.
// POST /api/save-email with body {"email": "<address>"}.
// Resubmitting a known address reports success rather than a conflict so the
// landing page never tells a visitor their address is already on the list.
func (h *EmailHandlers) SaveEmail(w http.ResponseWriter, r *http.Request) {
	var req model.CaptureEmailRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	if err := h.Svc.Capture(r.Context(), req); err != nil {
		h.logger().ErrorContext(r.Context(), "email capture failed", "error", err)
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
	})
}

// ListEmails returns captured emails, newest first.
// GET /api/save-email?limit=<n>&offset=<n>. Registered only in dev mode.
func (h *EmailHandlers) ListEmails(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 100)
	offset := queryInt(r, "offset", 0)

	emails, total, err := h.Svc.List(r.Context(), limit, offset)
	if err != nil {
		h.logger().ErrorContext(r.Context(), "email listing failed", "error", err)
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"emails": emails,
		"total":  total,
	})
}

// queryInt parses an integer query parameter, falling back on absence or junk.
func queryInt(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return fallback
	}
	return n
}
