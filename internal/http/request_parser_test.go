package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"habits/internal/core"
)

func withURLParams(r *http.Request, kv ...string) *http.Request {
	rctx := chi.NewRouteContext()
	for i := 0; i+1 < len(kv); i += 2 {
		rctx.URLParams.Add(kv[i], kv[i+1])
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestDecodeJSON(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{name: "valid object", body: `{"name":"Walk"}`},
		{name: "empty body", body: "", wantErr: true},
		{name: "broken json", body: `{"name":`, wantErr: true},
		{name: "wrong type", body: `{"name":5}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))

			var req habitRequest
			err := decodeJSON(w, r, &req)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, errBadRequest)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "Walk", req.Name)
		})
	}
}

func TestDecodeJSON_TooLarge(t *testing.T) {
	body := `{"name":"` + strings.Repeat("a", maxBodyBytes) + `"}`
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))

	var req habitRequest
	err := decodeJSON(w, r, &req)
	require.Error(t, err)
	assert.Equal(t, http.StatusRequestEntityTooLarge, statusFor(err))
}

func TestValidator(t *testing.T) {
	v := newValidator()

	tests := []struct {
		name    string
		value   any
		wantErr string
	}{
		{name: "habit ok", value: habitRequest{Name: "Read", Color: "#aecbfa"}},
		{name: "habit missing name", value: habitRequest{}, wantErr: "name is required"},
		{name: "habit name too long", value: habitRequest{Name: strings.Repeat("x", 101)}, wantErr: "name must be at most 100"},
		{name: "toggle ok", value: toggleRequest{Day: 31, HabitID: "h1"}},
		{name: "toggle day zero", value: toggleRequest{Day: 0, HabitID: "h1"}, wantErr: "day is required"},
		{name: "toggle day 32", value: toggleRequest{Day: 32, HabitID: "h1"}, wantErr: "day must be at most 31"},
		{name: "toggle missing habit", value: toggleRequest{Day: 3}, wantErr: "habitId is required"},
		{name: "reflection ok", value: reflectionRequest{Field: "mood", Value: "calm"}},
		{name: "reflection bad field", value: reflectionRequest{Field: "weather"}, wantErr: "field must be one of: summary mood"},
		{name: "record without month id", value: monthRecordRequest{}},
		{name: "record with month id", value: monthRecordRequest{MonthID: "2024-05"}},
		{name: "record bad month id", value: monthRecordRequest{MonthID: "2024-13"}, wantErr: "monthId must be YYYY-MM"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(tt.value)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			formatted := formatValidationError(err)
			assert.Contains(t, formatted.Error(), tt.wantErr)
			assert.Equal(t, http.StatusBadRequest, statusFor(formatted))
		})
	}
}

func TestParseMonthID(t *testing.T) {
	tests := []struct {
		param   string
		want    core.MonthID
		wantErr bool
	}{
		{param: "2024-05", want: "2024-05"},
		{param: "2024-5", wantErr: true},
		{param: "..", wantErr: true},
		{param: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.param, func(t *testing.T) {
			r := withURLParams(httptest.NewRequest(http.MethodGet, "/", nil), "monthId", tt.param)
			got, err := parseMonthID(r)
			if tt.wantErr {
				assert.ErrorIs(t, err, core.ErrInvalidMonthID)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseIndex(t *testing.T) {
	r := withURLParams(httptest.NewRequest(http.MethodDelete, "/", nil), "index", "2")
	n, err := parseIndex(r, "index")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	for _, raw := range []string{"-1", "abc", ""} {
		r := withURLParams(httptest.NewRequest(http.MethodDelete, "/", nil), "index", raw)
		_, err := parseIndex(r, "index")
		assert.ErrorIs(t, err, errBadRequest, raw)
	}
}

func TestSanitizeInput(t *testing.T) {
	tests := []struct {
		input, want string
	}{
		{"  Walk  ", "Walk"},
		{"Read\x00 books", "Read books"},
		{"line\nbreak", "line\nbreak"},
		{"tab\there", "tab\there"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, sanitizeInput(tt.input), "input %q", tt.input)
	}
}

func TestMonthRecordRequest_ToRecord(t *testing.T) {
	req := monthRecordRequest{MonthID: "2020-01"}
	r := req.toRecord("2024-05")

	assert.Equal(t, core.MonthID("2024-05"), r.MonthID)
	assert.NotNil(t, r.Habits)
	assert.NotNil(t, r.DailyLogs)
}
