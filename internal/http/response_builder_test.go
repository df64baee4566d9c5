package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"habits/internal/core"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid month id", fmt.Errorf("get: %w", core.ErrInvalidMonthID), http.StatusBadRequest},
		{"invalid day", fmt.Errorf("%w: 30", core.ErrInvalidDay), http.StatusBadRequest},
		{"invalid reflection field", core.ErrInvalidReflectionField, http.StatusBadRequest},
		{"name required", fmt.Errorf("default 0: %w", core.ErrHabitNameRequired), http.StatusBadRequest},
		{"name too long", core.ErrHabitNameTooLong, http.StatusBadRequest},
		{"index out of range", core.ErrIndexOutOfRange, http.StatusBadRequest},
		{"bad request", fmt.Errorf("%w: empty body", errBadRequest), http.StatusBadRequest},
		{"validation", &validationError{msg: "day is required"}, http.StatusBadRequest},
		{"persistence", &core.PersistenceError{Op: "write", Key: "2024-05", Err: errors.New("disk full")}, http.StatusInternalServerError},
		{"malformed", &core.MalformedRecordError{Key: "2024-05", Err: errors.New("bad json")}, http.StatusInternalServerError},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, statusFor(tt.err))
		})
	}
}

func TestWriteError(t *testing.T) {
	t.Run("client error keeps message", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/api/data/2024-05/toggle", nil)

		writeError(w, r, fmt.Errorf("%w: 30", core.ErrInvalidDay), "Failed to save data")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		var body apiResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.False(t, body.Success)
		assert.Equal(t, "invalid day: 30", body.Message)
	})

	t.Run("server error hides details", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/api/data/2024-05", nil)

		err := &core.PersistenceError{Op: "write", Key: "2024-05", Err: errors.New("/secret/path: permission denied")}
		writeError(w, r, err, "Failed to save data")

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		var body apiResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, apiResponse{Success: false, Message: "Failed to save data"}, body)
	})
}

func TestWriteSuccess(t *testing.T) {
	w := httptest.NewRecorder()
	writeSuccess(w, "Defaults saved")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"success":true,"message":"Defaults saved"}`, w.Body.String())
}
