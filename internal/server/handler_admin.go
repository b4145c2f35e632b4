package server

import (
	"net/http"

	"github.com/me/optrack/pkg/model"
)

// handleDirectoryRefresh runs the directory job immediately.
// POST /api/v1/admin/directory-refresh
func (s *Server) handleDirectoryRefresh(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())

	if s.directory == nil {
		respondError(w, reqID, http.StatusNotImplemented, &model.APIError{
			Code:    model.ErrInternal,
			Message: "directory refresh is not configured",
		})
		return
	}
	n, err := s.directory.RunOnce(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respondOK(w, reqID, map[string]any{"updated": n})
}
