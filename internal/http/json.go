package httpx

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"

	apperrors "github.com/division-gg/division-api/internal/errors"
)

// DecodeJSON decodes JSON from the request body into the destination and handles errors.
// Returns true if successful, false if there was an error (error response already written).
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_json", Err: err})
		return false
	}

	return true
}

// WriteJSON writes a JSON response with the given status code and data.
func WriteJSON(w http.ResponseWriter, code int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err := buf.WriteTo(w); err != nil {
		// Response writer errors (e.g., client disconnect) can't be recovered from here.
		return
	}
}

// ErrorParams groups the parameters for WriteError.
type ErrorParams struct {
	Code    int
	ErrCode string
	Err     error
}

// WriteError writes a JSON error response using ErrorParams.
func WriteError(w http.ResponseWriter, p ErrorParams) {
	WriteJSON(w, p.Code, map[string]string{"error": p.ErrCode, "message": p.Err.Error()})
}

// WriteAppError maps a service error onto the HTTP error contract:
// validation → 400, unauthorized → 401, not_found → 404, conflict → 409,
// upstream → the mirrored provider status, everything else → 500 with a
// generic body so internals never leak to the client.
func WriteAppError(w http.ResponseWriter, err error) {
	switch {
	case apperrors.IsValidation(err):
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "validation_failed", Err: err})
	case apperrors.IsUnauthorized(err):
		WriteError(w, ErrorParams{Code: http.StatusUnauthorized, ErrCode: "authentication_required", Err: err})
	case apperrors.IsNotFound(err):
		WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "not_found", Err: err})
	case apperrors.IsConflict(err):
		WriteError(w, ErrorParams{Code: http.StatusConflict, ErrCode: "conflict", Err: err})
	case apperrors.IsUpstream(err):
		status := apperrors.UpstreamStatusOf(err)
		if status == 0 {
			status = http.StatusBadGateway
		}
		WriteError(w, ErrorParams{
			Code:    status,
			ErrCode: "upstream_error",
			Err:     errors.New("provider request failed"),
		})
	default:
		WriteError(w, ErrorParams{
			Code:    http.StatusInternalServerError,
			ErrCode: "internal_error",
			Err:     errors.New("internal server error"),
		})
	}
}
