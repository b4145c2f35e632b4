package jobs

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/me/optrack/internal/dates"
	"github.com/me/optrack/pkg/model"
)

// ReminderWindow is how far ahead a reminder starts firing.
const ReminderWindow = 7 * 24 * time.Hour

// CheckReminders returns the active reminders due no later than now plus
// ReminderWindow, in input order. Past-due reminders keep firing until deactivated.
func CheckReminders(reminders []*model.Reminder, now time.Time) []*model.Reminder {
	horizon := now.Add(ReminderWindow)
	var out []*model.Reminder
	for _, r := range reminders {
		if !r.IsActive {
			continue
		}
		due, ok := dates.Parse(r.DueDate)
		if !ok || due.After(horizon) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// Feed holds the reminders found by the most recent check.
type Feed struct {
	mu      sync.RWMutex
	active  []*model.Reminder
	checked time.Time
}

// NewFeed returns an empty feed.
func NewFeed() *Feed {
	return &Feed{}
}

// Publish replaces the feed contents.
func (f *Feed) Publish(active []*model.Reminder, at time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.active = active
	f.checked = at
}

// Active returns a copy of the current reminders and when they were checked.
func (f *Feed) Active() ([]*model.Reminder, time.Time) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]*model.Reminder, len(f.active))
	copy(out, f.active)
	return out, f.checked
}

// ReminderSource lists configured reminders.
type ReminderSource interface {
	Reminders(ctx context.Context) ([]*model.Reminder, error)
	Now() time.Time
}

// ReminderJob publishes the reminders that are coming due.
type ReminderJob struct {
	source ReminderSource
	feed   *Feed
	logger *slog.Logger
}

// NewReminderJob creates a ReminderJob.
func NewReminderJob(src ReminderSource, feed *Feed, logger *slog.Logger) *ReminderJob {
	return &ReminderJob{source: src, feed: feed, logger: logger.With("component", "reminders")}
}

func (j *ReminderJob) Name() string { return "reminders" }

func (j *ReminderJob) Run(ctx context.Context) error {
	all, err := j.source.Reminders(ctx)
	if err != nil {
		return err
	}
	now := j.source.Now()
	active := CheckReminders(all, now)
	for _, r := range active {
		j.logger.Warn("reminder due",
			"reminder_id", r.ID,
			"type", r.Type,
			"recipient", r.Recipient,
			"recipient_role", r.RecipientRole,
			"due_date", r.DueDate,
			"message", r.Message,
		)
	}
	j.feed.Publish(active, now)
	return nil
}
