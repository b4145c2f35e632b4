package store

import (
	"context"

	"github.com/me/optrack/pkg/model"
)

// Store defines the repository the tracker reads and mutates. Lookups of
// unknown ids return (nil, nil).
type Store interface {
	// Submissions
	CreateSubmission(ctx context.Context, dataset model.Dataset, sub *model.Submission) error
	CreateSubmissions(ctx context.Context, dataset model.Dataset, subs []*model.Submission) error
	GetSubmission(ctx context.Context, id string) (*model.Submission, error)
	ListSubmissions(ctx context.Context, dataset model.Dataset) ([]*model.Submission, error)
	UpdateSubmission(ctx context.Context, sub *model.Submission) error
	NextSubmissionIDs(ctx context.Context, n int) ([]string, error)

	// Future tasks
	CreateFutureTask(ctx context.Context, task *model.FutureTask) error
	ListFutureTasks(ctx context.Context, submissionID string) ([]*model.FutureTask, error)
	DeleteFutureTask(ctx context.Context, id string) (bool, error)

	// Reminders
	CreateReminder(ctx context.Context, r *model.Reminder) error
	ListReminders(ctx context.Context) ([]*model.Reminder, error)

	// Activity feed
	AppendActivity(ctx context.Context, item *model.ActivityItem) error
	ListActivity(ctx context.Context, limit int) ([]*model.ActivityItem, error)

	// Lifecycle
	Close() error
	Migrate(ctx context.Context) error
}
