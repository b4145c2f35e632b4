// Package tracker owns every read and mutation of workflow submissions.
package tracker

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/me/optrack/internal/dates"
	"github.com/me/optrack/internal/query"
	"github.com/me/optrack/internal/seed"
	"github.com/me/optrack/internal/store"
	"github.com/me/optrack/pkg/model"
)

// DefaultAuthor is recorded when a request does not name who made a change.
const DefaultAuthor = "Operations"

// Service serialises read-modify-write cycles on the store. Concurrent edits
// to the same submission resolve as last write wins.
type Service struct {
	mu       sync.Mutex
	store    store.Store
	catalog  *seed.Catalog
	validate *validator.Validate
	logger   *slog.Logger
	now      func() time.Time
}

// New creates a Service.
func New(st store.Store, catalog *seed.Catalog, logger *slog.Logger) *Service {
	return &Service{
		store:    st,
		catalog:  catalog,
		validate: newValidator(),
		logger:   logger.With("component", "tracker"),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// WithClock replaces the wall clock, for tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Now returns the service clock.
func (s *Service) Now() time.Time {
	return s.now()
}

// Catalog returns the new-entry reference data.
func (s *Service) Catalog() *seed.Catalog {
	return s.catalog
}

// Dashboard is everything the dashboard page shows for one view.
type Dashboard struct {
	Dataset     model.Dataset  `json:"dataset"`
	Stats       query.Stats    `json:"stats"`
	Table       query.Table    `json:"table"`
	ReportTypes []query.Option `json:"report_types"`
}

func (s *Service) list(ctx context.Context, dataset model.Dataset) ([]*model.Submission, error) {
	subs, err := s.store.ListSubmissions(ctx, dataset)
	if err != nil {
		return nil, fmt.Errorf("list %s submissions: %w", dataset, err)
	}
	now := s.now()
	for _, sub := range subs {
		sub.DaysOverdue = dates.DaysOverdue(sub.DueDate, now)
	}
	return subs, nil
}

// withClock fills the reference time of a date-range filter.
func (s *Service) withClock(c query.Criteria) query.Criteria {
	if c.Now.IsZero() {
		c.Now = s.now()
	}
	return c
}

// Dashboard computes stats, the grouped table and the report-type options.
func (s *Service) Dashboard(ctx context.Context, dataset model.Dataset, v query.View) (*Dashboard, error) {
	subs, err := s.list(ctx, dataset)
	if err != nil {
		return nil, err
	}
	v.Criteria = s.withClock(v.Criteria)
	return &Dashboard{
		Dataset:     dataset,
		Stats:       query.CalculateStats(subs, v.Criteria),
		Table:       query.Build(subs, v),
		ReportTypes: query.ReportTypeOptions(subs),
	}, nil
}

// Submissions returns the filtered, sorted rows of a view without grouping.
func (s *Service) Submissions(ctx context.Context, dataset model.Dataset, v query.View) ([]*model.Submission, error) {
	subs, err := s.list(ctx, dataset)
	if err != nil {
		return nil, err
	}
	v.Criteria = s.withClock(v.Criteria)
	return query.Build(subs, v).Rows, nil
}

// Stats counts the dataset under c, ignoring c.Status.
func (s *Service) Stats(ctx context.Context, dataset model.Dataset, c query.Criteria) (query.Stats, error) {
	subs, err := s.list(ctx, dataset)
	if err != nil {
		return query.Stats{}, err
	}
	return query.CalculateStats(subs, s.withClock(c)), nil
}

// ColumnValues lists the distinct values available to a column filter.
func (s *Service) ColumnValues(ctx context.Context, dataset model.Dataset, col query.Column) ([]string, error) {
	if !col.Filterable() {
		return nil, model.NewValidationError("invalid column", model.FieldError{Field: "column", Message: fmt.Sprintf("column %q has no filter", col)})
	}
	subs, err := s.list(ctx, dataset)
	if err != nil {
		return nil, err
	}
	return query.ColumnOptions(subs, col), nil
}

// Get returns one submission.
func (s *Service) Get(ctx context.Context, id string) (*model.Submission, error) {
	sub, err := s.store.GetSubmission(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get submission %s: %w", id, err)
	}
	if sub == nil {
		return nil, model.NewNotFoundError("submission", id)
	}
	sub.DaysOverdue = dates.DaysOverdue(sub.DueDate, s.now())
	return sub, nil
}

// Activity returns the most recent feed items, newest first.
func (s *Service) Activity(ctx context.Context, limit int) ([]*model.ActivityItem, error) {
	items, err := s.store.ListActivity(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list activity: %w", err)
	}
	return items, nil
}

// Reminders returns every configured reminder.
func (s *Service) Reminders(ctx context.Context) ([]*model.Reminder, error) {
	rems, err := s.store.ListReminders(ctx)
	if err != nil {
		return nil, fmt.Errorf("list reminders: %w", err)
	}
	return rems, nil
}

// Apply runs fn over the dataset under the service lock and writes back every
// submission fn returns. It returns how many were written.
func (s *Service) Apply(ctx context.Context, dataset model.Dataset, fn func([]*model.Submission) []*model.Submission) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	subs, err := s.store.ListSubmissions(ctx, dataset)
	if err != nil {
		return 0, fmt.Errorf("list %s submissions: %w", dataset, err)
	}
	changed := fn(subs)
	for _, sub := range changed {
		if err := s.store.UpdateSubmission(ctx, sub); err != nil {
			return 0, fmt.Errorf("update %s: %w", sub.ID, err)
		}
	}
	return len(changed), nil
}

// loadLive fetches a submission for mutation. Callers hold s.mu.
func (s *Service) loadLive(ctx context.Context, id string) (*model.Submission, error) {
	sub, err := s.store.GetSubmission(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get submission %s: %w", id, err)
	}
	if sub == nil {
		return nil, model.NewNotFoundError("submission", id)
	}
	if sub.Dataset == model.DatasetArchived {
		return nil, &model.APIError{Code: model.ErrConflict, Message: fmt.Sprintf("submission '%s' is archived and read-only", id)}
	}
	return sub, nil
}

func (s *Service) record(ctx context.Context, typ model.ActivityType, title, desc, user, submissionID string) {
	item := &model.ActivityItem{
		ID:           uuid.New().String(),
		Type:         typ,
		Title:        title,
		Description:  desc,
		User:         user,
		SubmissionID: submissionID,
		CreatedAt:    s.now(),
	}
	if err := s.store.AppendActivity(ctx, item); err != nil {
		s.logger.Warn("activity not recorded", "submission_id", submissionID, "error", err)
	}
}

func author(a string) string {
	if a = strings.TrimSpace(a); a != "" {
		return a
	}
	return DefaultAuthor
}
