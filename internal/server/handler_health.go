package server

import (
	"net/http"
	"runtime"
	"time"
)

// Version is the API server version.
const Version = "0.1.0"

type healthResponse struct {
	Status    string `json:"status"`
	Version   string `json:"version"`
	GoVersion string `json:"go_version"`
	Uptime    string `json:"uptime"`
	Store     string `json:"store"`
	Reminders string `json:"reminders"`
	Directory string `json:"directory"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())

	reminders := "on_request"
	if s.feed != nil {
		reminders = "not_checked"
		if _, at := s.feed.Active(); !at.IsZero() {
			reminders = "checked " + at.UTC().Format(time.RFC3339)
		}
	}
	directory := "disabled"
	if s.directory != nil {
		directory = "enabled"
	}
	respondOK(w, reqID, healthResponse{
		Status:    "healthy",
		Version:   Version,
		GoVersion: runtime.Version(),
		Uptime:    time.Since(s.startTime).Round(time.Second).String(),
		Store:     "sqlite (in-memory)",
		Reminders: reminders,
		Directory: directory,
	})
}
