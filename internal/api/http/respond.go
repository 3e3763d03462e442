package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"fleetrental-backend/internal/apperr"
	"fleetrental-backend/internal/logger"
)

type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error("Failed to encode response", "error", err)
	}
}

// writeError maps domain error kinds to HTTP statuses. Anything that is
// not an apperr is treated as an internal failure and its detail is kept
// out of the response body.
func writeError(w http.ResponseWriter, err error) {
	kind := apperr.KindOf(err)
	status := http.StatusInternalServerError

	switch kind {
	case apperr.KindValidation:
		status = http.StatusBadRequest
	case apperr.KindAuthorization:
		status = http.StatusForbidden
	case apperr.KindNotFound:
		status = http.StatusNotFound
	case apperr.KindInvalidState:
		status = http.StatusConflict
	case apperr.KindConflict:
		status = http.StatusConflict
	case apperr.KindUnavailable:
		status = http.StatusServiceUnavailable
	}

	if status >= 500 {
		logger.Error("Request failed", "error", err)
		msg := "internal server error"
		if kind == apperr.KindUnavailable {
			msg = "storage unavailable, try again"
		}
		writeJSON(w, status, errorResponse{Error: msg, Kind: string(kind)})
		return
	}
	msg := err.Error()
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		msg = appErr.Message
	}
	writeJSON(w, status, errorResponse{Error: msg, Kind: string(kind)})
}
