package ui

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all UI routes on the given router.
func (ui *UI) RegisterRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(ui.ReminderMiddleware)

		// Dashboards
		r.Get("/", ui.HandleDashboard)
		r.Get("/archived", ui.HandleArchived)

		// Submissions
		r.Route("/submissions/{id}", func(r chi.Router) {
			r.Get("/", ui.HandleSubmissionDetail)
			r.Post("/status", ui.HandleStatusPost)
			r.Post("/comments", ui.HandleCommentPost)
			r.Post("/edit", ui.HandleEditPost)
			r.Post("/future-tasks", ui.HandleFutureTaskPost)
			r.Post("/future-tasks/{tid}/delete", ui.HandleFutureTaskDelete)
		})

		// New entries
		r.Get("/entries/new", ui.HandleEntryForm)
		r.Post("/entries", ui.HandleEntryPost)
	})
}
