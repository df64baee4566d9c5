package http

import (
	"context"
	"net/http"
	"time"

	"habits/internal/core"
	"habits/internal/log"
)

// handleHealth performs basic liveness check
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"uptime":    time.Since(s.startedAt).Round(time.Second).String(),
	})
}

// handleReady reports ready once the template document can be read.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	checks := map[string]string{"storage": "ok"}
	status, httpStatus := "ready", http.StatusOK
	if _, err := s.engine.GetDefaults(ctx); err != nil {
		checks["storage"] = "failed: " + err.Error()
		status, httpStatus = "not_ready", http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, map[string]any{
		"status": status,
		"checks": checks,
	})
}

func (s *Server) handleGetDefaults(w http.ResponseWriter, r *http.Request) {
	defaults, err := s.engine.GetDefaults(r.Context())
	if err != nil {
		writeError(w, r, err, "Failed to load defaults")
		return
	}
	writeJSON(w, http.StatusOK, defaults)
}

// handleSetDefaults replaces the template list with the posted array.
func (s *Server) handleSetDefaults(w http.ResponseWriter, r *http.Request) {
	var defaults []core.DefaultHabitEntry
	if err := decodeJSON(w, r, &defaults); err != nil {
		writeError(w, r, err, "Failed to save defaults")
		return
	}
	for i := range defaults {
		defaults[i].Name = sanitizeInput(defaults[i].Name)
	}
	if err := s.engine.SetDefaults(r.Context(), defaults); err != nil {
		writeError(w, r, err, "Failed to save defaults")
		return
	}
	writeSuccess(w, "Defaults saved")
}

func (s *Server) handleAddDefault(w http.ResponseWriter, r *http.Request) {
	var req habitRequest
	if err := s.decodeAndValidate(w, r, &req); err != nil {
		writeError(w, r, err, "Failed to save defaults")
		return
	}
	defaults, err := s.engine.AddDefault(r.Context(), core.DefaultHabitEntry{
		Name:  sanitizeInput(req.Name),
		Color: sanitizeInput(req.Color),
	})
	if err != nil {
		writeError(w, r, err, "Failed to save defaults")
		return
	}
	writeJSON(w, http.StatusOK, defaults)
}

func (s *Server) handleDeleteDefault(w http.ResponseWriter, r *http.Request) {
	index, err := parseIndex(r, "index")
	if err != nil {
		writeError(w, r, err, "Failed to save defaults")
		return
	}
	defaults, err := s.engine.DeleteDefault(r.Context(), index)
	if err != nil {
		writeError(w, r, err, "Failed to save defaults")
		return
	}
	log.FromContext(r.Context()).InfoContext(r.Context(), "Default removed",
		log.FieldOperation, log.OpWrite,
		"index", index,
		"remaining", len(defaults))
	writeJSON(w, http.StatusOK, defaults)
}

// handleRecommendations never fails; an unreadable store yields [].
func (s *Server) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.engine.Recommendations(r.Context()))
}
