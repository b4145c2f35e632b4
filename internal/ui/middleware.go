package ui

import (
	"context"
	"net/http"

	"github.com/me/optrack/internal/jobs"
	"github.com/me/optrack/pkg/model"
)

// Context keys for per-request page data.
type contextKey string

const (
	remindersContextKey contextKey = "reminders"
)

// RemindersFromContext retrieves the active reminders from the request context.
func RemindersFromContext(ctx context.Context) []*model.Reminder {
	rems, _ := ctx.Value(remindersContextKey).([]*model.Reminder)
	return rems
}

// ReminderMiddleware loads the active reminders for the banner and marks
// pages as uncacheable, since they reflect the live dataset.
func (ui *UI) ReminderMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var active []*model.Reminder
		if ui.feed != nil {
			active, _ = ui.feed.Active()
		} else {
			all, err := ui.tracker.Reminders(r.Context())
			if err != nil {
				ui.logger.Warn("reminder lookup failed", "error", err)
			}
			active = jobs.CheckReminders(all, ui.tracker.Now())
		}

		w.Header().Set("Cache-Control", "no-store")
		ctx := context.WithValue(r.Context(), remindersContextKey, active)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
