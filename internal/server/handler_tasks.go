package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/me/optrack/internal/tracker"
)

func (s *Server) handleListFutureTasks(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())

	tasks, err := s.tracker.FutureTasks(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respondOK(w, reqID, tasks)
}

func (s *Server) handleAddFutureTask(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())

	var req tracker.NewFutureTask
	if err := decodeJSON(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	task, err := s.tracker.AddFutureTask(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respondCreated(w, reqID, task)
}

func (s *Server) handleRemoveFutureTask(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())
	tid := chi.URLParam(r, "tid")

	if err := s.tracker.RemoveFutureTask(r.Context(), tid); err != nil {
		s.fail(w, r, err)
		return
	}
	respondOK(w, reqID, map[string]any{"id": tid, "deleted": true})
}
