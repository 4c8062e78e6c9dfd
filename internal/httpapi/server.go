// Package httpapi exposes read-only introspection of running and
// checkpointed search sessions (SPEC_FULL.md §3.3), grounded on the
// teacher's internal/adapters/http and pkg/adapters/http but hand-written
// rather than generated from an OpenAPI document — the pretty/generated
// server surface the teacher builds via oapi-codegen is explicitly out of
// scope for this inspection-only API (see DESIGN.md on the dropped
// oapi-codegen dependency).
package httpapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/aretw0/pocl/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server serves introspection routes backed by a store.PlanStore.
type Server struct {
	Store  store.PlanStore
	Logger *slog.Logger
}

// NewHandler builds the chi router exposing /sessions/{id},
// /sessions/{id}/frontier, and /sessions/{id}/plan/{planID}, the way the
// teacher's NewHandler builds its engine-backed router.
func NewHandler(s store.PlanStore, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	srv := &Server{Store: s, Logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/health", srv.getHealth)
	r.Route("/sessions", func(r chi.Router) {
		r.Get("/", srv.listSessions)
		r.Get("/{id}", srv.getSession)
		r.Get("/{id}/frontier", srv.getFrontier)
		r.Get("/{id}/plan/{planID}", srv.getPlan)
	})
	return r
}

func (s *Server) getHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) listSessions(w http.ResponseWriter, r *http.Request) {
	ids, err := s.Store.List(r.Context())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "list sessions", err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"sessions": ids})
}

func (s *Server) getSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	cp, err := s.Store.Load(r.Context(), id)
	if err != nil {
		s.respondLoadErr(w, id, err)
		return
	}
	s.writeJSON(w, http.StatusOK, cp)
}

func (s *Server) getFrontier(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	cp, err := s.Store.Load(r.Context(), id)
	if err != nil {
		s.respondLoadErr(w, id, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{
		"current_idx":  cp.CurrentIdx,
		"cycle_length": cp.CycleLength,
		"f_limit":      cp.FLimit,
		"next_f_limit": cp.NextFLimit,
		"queues":       cp.Queues,
	})
}

func (s *Server) getPlan(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	planID := chi.URLParam(r, "planID")
	cp, err := s.Store.Load(r.Context(), id)
	if err != nil {
		s.respondLoadErr(w, id, err)
		return
	}
	if cp.Result != nil && strconv.FormatInt(cp.Result.ID, 10) == planID {
		s.writeJSON(w, http.StatusOK, cp.Result)
		return
	}
	// Interim frontier plans are retained only as id+rank (see
	// search.Checkpoint's doc comment); their step content isn't
	// available until they're accepted as the session's Result.
	for _, q := range cp.Queues {
		for _, pid := range q.PlanIDs {
			if strconv.FormatInt(pid, 10) == planID {
				s.writeJSON(w, http.StatusOK, map[string]any{
					"id":    pid,
					"queue": q.Name,
					"note":  "plan still in frontier; full step content available once accepted",
				})
				return
			}
		}
	}
	s.writeError(w, http.StatusNotFound, "plan not found in session", nil)
}

func (s *Server) respondLoadErr(w http.ResponseWriter, id string, err error) {
	if errors.Is(err, store.ErrSessionNotFound) {
		s.writeError(w, http.StatusNotFound, "session not found: "+id, nil)
		return
	}
	s.writeError(w, http.StatusInternalServerError, "load session", err)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.Logger.Error("httpapi: encode response failed", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string, err error) {
	if err != nil {
		s.Logger.Error("httpapi: "+msg, "error", err)
	}
	s.writeJSON(w, status, map[string]string{"error": msg})
}
