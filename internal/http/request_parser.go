// Package http exposes the habit engine as a JSON API.
//
// This file holds request decoding and validation shared by the handlers.

package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"habits/internal/core"
)

// maxBodyBytes caps request bodies; a month document with 31 full days stays
// far below it.
const maxBodyBytes = 1 << 20

// errBadRequest marks malformed request bodies and parameters.
var errBadRequest = errors.New("bad request")

// habitRequest is the body of POST /api/defaults/entries and
// POST /api/data/{monthId}/habits.
type habitRequest struct {
	Name  string `json:"name" validate:"required,max=100"`
	Color string `json:"color" validate:"omitempty,max=32"`
}

type toggleRequest struct {
	Day     int    `json:"day" validate:"required,min=1,max=31"`
	HabitID string `json:"habitId" validate:"required,max=64"`
}

type reflectionRequest struct {
	Field string `json:"field" validate:"required,oneof=summary mood"`
	Value string `json:"value" validate:"max=10000"`
}

// monthRecordRequest is the full document posted to /api/data/{monthId}.
// The monthId in the body, when present, must be well formed; the path wins.
type monthRecordRequest struct {
	MonthID    string          `json:"monthId" validate:"omitempty,monthid"`
	Habits     []core.Habit    `json:"habits"`
	DailyLogs  core.DailyLogs  `json:"dailyLogs"`
	Reflection core.Reflection `json:"reflection"`
}

func (m monthRecordRequest) toRecord(id core.MonthID) core.MonthRecord {
	r := core.MonthRecord{
		MonthID:    id,
		Habits:     m.Habits,
		DailyLogs:  m.DailyLogs,
		Reflection: m.Reflection,
	}
	r.Normalize()
	return r
}

// newValidator returns a validator with the project's custom tags registered.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("monthid", func(fl validator.FieldLevel) bool {
		return core.IsMonthID(fl.Field().String())
	})
	return v
}

// decodeJSON reads a size-limited JSON body into dst.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return fmt.Errorf("request body too large: %w", err)
		}
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: empty body", errBadRequest)
		}
		return fmt.Errorf("%w: invalid JSON: %v", errBadRequest, err)
	}
	return nil
}

// decodeAndValidate decodes the body and runs struct validation on it.
func (s *Server) decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) error {
	if err := decodeJSON(w, r, dst); err != nil {
		return err
	}
	if err := s.validate.Struct(dst); err != nil {
		return formatValidationError(err)
	}
	return nil
}

// parseMonthID validates the {monthId} path parameter.
func parseMonthID(r *http.Request) (core.MonthID, error) {
	return core.ParseMonthID(chi.URLParam(r, "monthId"))
}

// parseIndex reads a non-negative integer path parameter.
func parseIndex(r *http.Request, name string) (int, error) {
	raw := strings.TrimSpace(chi.URLParam(r, name))
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: %s must be a non-negative integer", errBadRequest, name)
	}
	return n, nil
}

// sanitizeInput drops control characters other than tab and newlines and
// trims surrounding whitespace.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}

// validationError carries readable validator messages.
type validationError struct {
	msg string
}

func (e *validationError) Error() string { return e.msg }

func formatValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", errBadRequest, err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		msgs = append(msgs, formatFieldError(e))
	}
	return &validationError{msg: strings.Join(msgs, "; ")}
}

func formatFieldError(e validator.FieldError) string {
	field := e.Field()
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, e.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, e.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, e.Param())
	case "monthid":
		return fmt.Sprintf("%s must be YYYY-MM", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
