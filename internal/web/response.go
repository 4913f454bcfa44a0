package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/vbonduro/gardenlog/internal/store"
	"github.com/vbonduro/gardenlog/internal/validation"
)

const maxBodyBytes = 1 << 20

type errorBody struct {
	Error   string            `json:"error"`
	Details map[string]string `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, data any, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode JSON response", "error", err)
	}
}

func writeSuccess(w http.ResponseWriter, logger *slog.Logger) {
	writeJSON(w, http.StatusOK, map[string]bool{"success": true}, logger)
}

func writeError(w http.ResponseWriter, status int, message string, details map[string]string, logger *slog.Logger) {
	writeJSON(w, status, errorBody{Error: message, Details: details}, logger)
}

// handleError maps err to a response: validation failures are 400, a missing
// document is 404 and anything else is a 500 carrying the error text.
func handleError(w http.ResponseWriter, r *http.Request, err error, logger *slog.Logger) {
	switch {
	case validation.IsValidationError(err):
		var ve *validation.Error
		errors.As(err, &ve)
		writeError(w, http.StatusBadRequest, ve.Message, ve.Fields, logger)
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found", nil, logger)
	default:
		logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		writeError(w, http.StatusInternalServerError, err.Error(), nil, logger)
	}
}

// decodeJSON reads a JSON request body into dst. Malformed bodies come back
// as a *validation.Error.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return &validation.Error{
			Message: "invalid request body",
			Fields:  map[string]string{"body": fmt.Sprintf("is not valid JSON: %v", err)},
		}
	}
	return nil
}
