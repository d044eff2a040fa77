package httpx

import (
	"errors"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strconv"
	"time"

	domainauth "github.com/division-gg/division-api/internal/domain/auth"
	"github.com/division-gg/division-api/internal/observability/statsd"
)

// Logging returns a middleware that logs HTTP requests and responses.
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			const defaultHTTPStatus = 200
			ww := &respWriter{ResponseWriter: w, status: defaultHTTPStatus}
			next.ServeHTTP(ww, r)
			logger.Info("http",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.status),
				slog.Duration("duration", time.Since(start)),
			)
		})
	}
}

type respWriter struct {
	http.ResponseWriter
	status int
}

func (w *respWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// Recover returns a middleware that recovers from panics and logs them.
func Recover(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error("panic",
						slog.Any("error", err),
						slog.String("path", r.URL.Path),
						slog.String("method", r.Method),
						slog.String("stack", string(debug.Stack())))
					http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// Metrics returns a middleware that emits per-request counters and timings.
// A nil or disabled sink passes requests straight through.
func Metrics(sink statsd.Sink) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if sink == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := &respWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(ww, r)

			tags := map[string]string{
				"method": r.Method,
				"status": strconv.Itoa(ww.status),
			}
			sink.Count("http.requests", 1, tags)
			sink.Timing("http.request_duration", time.Since(start), tags)
		})
	}
}

// RequireAuth returns a middleware that requires authentication.
// If the user is not authenticated, it returns a 401 Unauthorized response.
func RequireAuth(authSvc AuthServiceInterface) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session := getSessionFromRequest(r, authSvc)
			if session == nil {
				WriteError(w, ErrorParams{
					Code:    http.StatusUnauthorized,
					ErrCode: "authentication_required",
					Err:     errors.New("authentication required"),
				})
				return
			}

			// Add session to request context
			ctx := SetSessionInContext(r.Context(), session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// getSessionFromRequest retrieves and validates a session from the request.
func getSessionFromRequest(r *http.Request, authSvc AuthServiceInterface) *domainauth.Session {
	sessionCookie, err := r.Cookie(sessionCookieName)
	if err != nil {
		return nil
	}

	session, err := authSvc.GetSession(r.Context(), sessionCookie.Value)
	if err != nil {
		return nil
	}

	return session
}
