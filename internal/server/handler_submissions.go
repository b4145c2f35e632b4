package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/me/optrack/internal/tracker"
	"github.com/me/optrack/pkg/model"
)

// listDataset serves a filtered, sorted, paginated flat list of one dataset.
func (s *Server) listDataset(w http.ResponseWriter, r *http.Request, dataset model.Dataset) {
	reqID := RequestIDFromContext(r.Context())

	view, err := viewOf(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	opts, err := listOptionsOf(r.URL.Query())
	if err != nil {
		s.fail(w, r, err)
		return
	}

	subs, err := s.tracker.Submissions(r.Context(), dataset, view)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	page, pg := model.Page(subs, opts)
	respondList(w, reqID, page, pg)
}

func (s *Server) handleListSubmissions(w http.ResponseWriter, r *http.Request) {
	dataset, err := datasetOf(r.URL.Query())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.listDataset(w, r, dataset)
}

func (s *Server) handleListArchived(w http.ResponseWriter, r *http.Request) {
	s.listDataset(w, r, model.DatasetArchived)
}

func (s *Server) handleCreateEntry(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())

	var req tracker.NewEntry
	if err := decodeJSON(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	created, err := s.tracker.CreateEntry(r.Context(), req)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respondCreated(w, reqID, created)
}

func (s *Server) handleGetSubmission(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())

	sub, err := s.tracker.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respondOK(w, reqID, sub)
}

// handleUpdateSubmission merges the body over the current values, so absent
// fields keep their value.
func (s *Server) handleUpdateSubmission(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())
	id := chi.URLParam(r, "id")

	current, err := s.tracker.Get(r.Context(), id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	edit := tracker.EditOf(current)
	if err := decodeJSON(r, &edit); err != nil {
		s.fail(w, r, err)
		return
	}
	sub, err := s.tracker.UpdateSubmission(r.Context(), id, edit)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respondOK(w, reqID, sub)
}

func (s *Server) handleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())

	var req tracker.StatusChange
	if err := decodeJSON(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	sub, err := s.tracker.UpdateStatus(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respondOK(w, reqID, sub)
}

func (s *Server) handleAddComment(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())

	var req tracker.NewComment
	if err := decodeJSON(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	sub, err := s.tracker.AddComment(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respondCreated(w, reqID, sub)
}
