package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"habits/internal/core"
	"habits/internal/log"
)

// apiResponse is the acknowledgement body for whole-document writes and errors.
type apiResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// writeJSON encodes v with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func writeSuccess(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusOK, apiResponse{Success: true, Message: message})
}

// writeError maps err to a status and writes {success:false, message}.
// Server-side failures are logged and answered with fallback instead of the
// error text.
func writeError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	status := statusFor(err)
	message := err.Error()
	if status >= http.StatusInternalServerError {
		events(r).LogError(r.Context(), "Request failed", err, errorType(err),
			log.NewFields().WithRequest(r.Method, r.URL.Path))
		message = fallback
	}
	writeJSON(w, status, apiResponse{Success: false, Message: message})
}

// statusFor classifies validation failures as 400 and everything else,
// persistence and malformed documents included, as 500.
func statusFor(err error) int {
	var verr *validationError
	var maxBytes *http.MaxBytesError
	switch {
	case errors.As(err, &verr),
		errors.Is(err, errBadRequest),
		errors.Is(err, core.ErrInvalidMonthID),
		errors.Is(err, core.ErrInvalidDay),
		errors.Is(err, core.ErrInvalidReflectionField),
		errors.Is(err, core.ErrHabitNameRequired),
		errors.Is(err, core.ErrHabitNameTooLong),
		errors.Is(err, core.ErrIndexOutOfRange):
		return http.StatusBadRequest
	case errors.As(err, &maxBytes):
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}

func errorType(err error) string {
	var malformed *core.MalformedRecordError
	var persistence *core.PersistenceError
	switch {
	case errors.As(err, &malformed):
		return log.ErrorTypeMalformed
	case errors.As(err, &persistence):
		return log.ErrorTypePersistence
	default:
		return log.ErrorTypeInternal
	}
}
