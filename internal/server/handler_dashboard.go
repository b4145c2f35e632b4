package server

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/me/optrack/internal/export"
	"github.com/me/optrack/internal/query"
	"github.com/me/optrack/pkg/model"
)

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())

	dataset, err := datasetOf(r.URL.Query())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	view, err := viewOf(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	dash, err := s.tracker.Dashboard(r.Context(), dataset, view)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respondOK(w, reqID, dash)
}

// stats serves the stat cards of one dataset. The status filter never
// narrows the counts.
func (s *Server) stats(w http.ResponseWriter, r *http.Request, dataset model.Dataset) {
	reqID := RequestIDFromContext(r.Context())

	c, errs := query.ParseCriteria(r.URL.Query())
	if len(errs) > 0 {
		s.fail(w, r, model.NewValidationError("invalid query parameters", errs...))
		return
	}
	st, err := s.tracker.Stats(r.Context(), dataset, c)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respondOK(w, reqID, st)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	dataset, err := datasetOf(r.URL.Query())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.stats(w, r, dataset)
}

func (s *Server) handleArchivedStats(w http.ResponseWriter, r *http.Request) {
	s.stats(w, r, model.DatasetArchived)
}

func (s *Server) handleColumnValues(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())

	dataset, err := datasetOf(r.URL.Query())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	column := query.Column(chi.URLParam(r, "column"))
	values, err := s.tracker.ColumnValues(r.Context(), dataset, column)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respondOK(w, reqID, map[string]any{"column": column, "values": values})
}

// handleExport streams the current view as an XLSX workbook.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	dataset, err := datasetOf(r.URL.Query())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	view, err := viewOf(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	rows, err := s.tracker.Submissions(r.Context(), dataset, view)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	st, err := s.tracker.Stats(r.Context(), dataset, view.Criteria)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	// Render fully before writing headers so a failure still gets an envelope.
	var buf bytes.Buffer
	if err := export.Write(&buf, rows, st); err != nil {
		s.fail(w, r, fmt.Errorf("export: %w", err))
		return
	}
	name := fmt.Sprintf("optrack-%s-%s.xlsx", dataset, s.tracker.Now().Format("20060102"))
	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", "attachment; filename="+strconv.Quote(name))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	buf.WriteTo(w)
	s.logger.Info("export written", "dataset", dataset, "rows", len(rows), "bytes", buf.Len())
}
