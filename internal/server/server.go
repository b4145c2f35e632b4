package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/me/optrack/internal/config"
	"github.com/me/optrack/internal/jobs"
	"github.com/me/optrack/internal/tracker"
	"github.com/me/optrack/internal/ui"
)

// Server is the optrack REST API and dashboard server.
type Server struct {
	router    chi.Router
	logger    *slog.Logger
	config    config.ServerConfig
	startTime time.Time
	tracker   *tracker.Service
	feed      *jobs.Feed         // optional; reminders are checked on request when nil
	directory *jobs.DirectoryJob // optional; directory refresh is unavailable when nil
	ui        *ui.UI             // UI handler for web interface
}

// Option configures optional Server dependencies.
type Option func(*Server)

// WithReminderFeed sets the feed the reminder job publishes to.
func WithReminderFeed(feed *jobs.Feed) Option {
	return func(s *Server) {
		s.feed = feed
	}
}

// WithDirectoryJob enables POST /api/v1/admin/directory-refresh.
func WithDirectoryJob(job *jobs.DirectoryJob) Option {
	return func(s *Server) {
		s.directory = job
	}
}

// New creates a new Server with all routes registered.
func New(cfg config.ServerConfig, svc *tracker.Service, logger *slog.Logger, opts ...Option) *Server {
	s := &Server{
		router:    chi.NewRouter(),
		logger:    logger.With("component", "server"),
		config:    cfg,
		startTime: time.Now(),
		tracker:   svc,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.ui = ui.New(svc, logger, ui.Config{Feed: s.feed})

	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Handler returns the http.Handler for this server.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() {
	r := s.router

	// Global middleware
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(requestIDMiddleware)
	r.Use(loggingMiddleware(s.logger))

	// UI routes (HTML)
	s.ui.RegisterRoutes(r)

	// API routes (JSON)
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/", s.handleDiscovery)
		r.Get("/health", s.handleHealth)

		r.Get("/dashboard", s.handleDashboard)
		r.Get("/stats", s.handleStats)
		r.Get("/columns/{column}", s.handleColumnValues)
		r.Get("/export.xlsx", s.handleExport)

		r.Route("/submissions", func(r chi.Router) {
			r.Get("/", s.handleListSubmissions)
			r.Post("/", s.handleCreateEntry)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleGetSubmission)
				r.Patch("/", s.handleUpdateSubmission)
				r.Put("/status", s.handleUpdateStatus)
				r.Post("/comments", s.handleAddComment)
				r.Route("/future-tasks", func(r chi.Router) {
					r.Get("/", s.handleListFutureTasks)
					r.Post("/", s.handleAddFutureTask)
				})
			})
		})
		r.Delete("/future-tasks/{tid}", s.handleRemoveFutureTask)

		r.Route("/archived", func(r chi.Router) {
			r.Get("/", s.handleListArchived)
			r.Get("/stats", s.handleArchivedStats)
		})

		r.Route("/reminders", func(r chi.Router) {
			r.Get("/", s.handleListReminders)
			r.Get("/active", s.handleActiveReminders)
		})
		r.Get("/activity", s.handleActivity)

		r.Post("/admin/directory-refresh", s.handleDirectoryRefresh)
	})
}
