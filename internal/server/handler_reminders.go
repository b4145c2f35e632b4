package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/me/optrack/internal/jobs"
	"github.com/me/optrack/pkg/model"
)

const defaultActivityLimit = 20

func (s *Server) handleListReminders(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())

	rems, err := s.tracker.Reminders(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respondOK(w, reqID, rems)
}

type activeReminders struct {
	Reminders []*model.Reminder `json:"reminders"`
	CheckedAt time.Time         `json:"checked_at"`
}

// handleActiveReminders serves the last published check, or checks now when
// no reminder job is wired.
func (s *Server) handleActiveReminders(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())

	if s.feed != nil {
		active, at := s.feed.Active()
		respondOK(w, reqID, activeReminders{Reminders: active, CheckedAt: at})
		return
	}
	all, err := s.tracker.Reminders(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	now := s.tracker.Now()
	respondOK(w, reqID, activeReminders{Reminders: jobs.CheckReminders(all, now), CheckedAt: now})
}

func (s *Server) handleActivity(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())

	limit := defaultActivityLimit
	if raw := r.URL.Query().Get(paramLimit); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			s.fail(w, r, model.NewValidationError("invalid query parameters",
				model.FieldError{Field: paramLimit, Message: "limit must be a positive integer"}))
			return
		}
		limit = min(n, 500)
	}
	items, err := s.tracker.Activity(r.Context(), limit)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respondOK(w, reqID, items)
}
