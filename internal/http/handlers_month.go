package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"habits/internal/log"
)

// handleGetMonth returns the stored month or a seeded one for months not yet
// written.
func (s *Server) handleGetMonth(w http.ResponseWriter, r *http.Request) {
	id, err := parseMonthID(r)
	if err != nil {
		writeError(w, r, err, "Failed to load data")
		return
	}
	record, err := s.engine.GetMonth(r.Context(), id)
	if err != nil {
		writeError(w, r, err, "Failed to load data")
		return
	}
	writeJSON(w, http.StatusOK, record)
}

// handleSetMonth overwrites the whole month document.
func (s *Server) handleSetMonth(w http.ResponseWriter, r *http.Request) {
	id, err := parseMonthID(r)
	if err != nil {
		writeError(w, r, err, "Failed to save data")
		return
	}
	var req monthRecordRequest
	if err := s.decodeAndValidate(w, r, &req); err != nil {
		writeError(w, r, err, "Failed to save data")
		return
	}
	record := req.toRecord(id)
	if err := s.engine.SetMonth(r.Context(), id, record); err != nil {
		writeError(w, r, err, "Failed to save data")
		return
	}
	events(r).LogMonthWritten(r.Context(), id.String(), log.OpWrite, len(record.Habits))
	writeSuccess(w, "Data saved successfully")
}

func (s *Server) handleAddHabit(w http.ResponseWriter, r *http.Request) {
	id, err := parseMonthID(r)
	if err != nil {
		writeError(w, r, err, "Failed to save data")
		return
	}
	var req habitRequest
	if err := s.decodeAndValidate(w, r, &req); err != nil {
		writeError(w, r, err, "Failed to save data")
		return
	}
	record, err := s.engine.AddHabit(r.Context(), id, sanitizeInput(req.Name), sanitizeInput(req.Color))
	if err != nil {
		writeError(w, r, err, "Failed to save data")
		return
	}
	events(r).LogMonthWritten(r.Context(), id.String(), log.OpAddHabit, len(record.Habits))
	writeJSON(w, http.StatusOK, record)
}

func (s *Server) handleDeleteHabit(w http.ResponseWriter, r *http.Request) {
	id, err := parseMonthID(r)
	if err != nil {
		writeError(w, r, err, "Failed to save data")
		return
	}
	record, err := s.engine.DeleteHabit(r.Context(), id, chi.URLParam(r, "habitId"))
	if err != nil {
		writeError(w, r, err, "Failed to save data")
		return
	}
	events(r).LogMonthWritten(r.Context(), id.String(), log.OpDelete, len(record.Habits))
	writeJSON(w, http.StatusOK, record)
}

func (s *Server) handleToggleHabit(w http.ResponseWriter, r *http.Request) {
	id, err := parseMonthID(r)
	if err != nil {
		writeError(w, r, err, "Failed to save data")
		return
	}
	var req toggleRequest
	if err := s.decodeAndValidate(w, r, &req); err != nil {
		writeError(w, r, err, "Failed to save data")
		return
	}
	record, err := s.engine.ToggleHabit(r.Context(), id, req.Day, req.HabitID)
	if err != nil {
		writeError(w, r, err, "Failed to save data")
		return
	}
	events(r).LogMonthWritten(r.Context(), id.String(), log.OpToggle, len(record.Habits))
	writeJSON(w, http.StatusOK, record)
}

func (s *Server) handleUpdateReflection(w http.ResponseWriter, r *http.Request) {
	id, err := parseMonthID(r)
	if err != nil {
		writeError(w, r, err, "Failed to save data")
		return
	}
	var req reflectionRequest
	if err := s.decodeAndValidate(w, r, &req); err != nil {
		writeError(w, r, err, "Failed to save data")
		return
	}
	record, err := s.engine.UpdateReflection(r.Context(), id, req.Field, req.Value)
	if err != nil {
		writeError(w, r, err, "Failed to save data")
		return
	}
	events(r).LogMonthWritten(r.Context(), id.String(), log.OpReflect, len(record.Habits))
	writeJSON(w, http.StatusOK, record)
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	id, err := parseMonthID(r)
	if err != nil {
		writeError(w, r, err, "Failed to load data")
		return
	}
	summary, err := s.engine.Summary(r.Context(), id)
	if err != nil {
		writeError(w, r, err, "Failed to load data")
		return
	}
	writeJSON(w, http.StatusOK, summary)
}
