package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/me/optrack/pkg/model"

	_ "modernc.org/sqlite"
)

// memoryDSN keeps the whole database inside the process. Nothing survives a restart.
const memoryDSN = ":memory:"

var _ Store = (*SQLiteStore)(nil)

// SQLiteStore implements Store using an in-memory SQLite database.
type SQLiteStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewSQLiteStore opens a fresh in-memory database and returns a Store.
func NewSQLiteStore(logger *slog.Logger) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", memoryDSN)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// Every connection to ":memory:" is a separate database.
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)

	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("pragma fk: %w", err)
	}

	return &SQLiteStore{
		db:     db,
		logger: logger.With("component", "store"),
	}, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Migrate creates all required tables and indexes.
func (s *SQLiteStore) Migrate(ctx context.Context) error {
	s.logger.Debug("sql", "op", "migrate")
	return migrate(ctx, s.db)
}

// --- Submissions ---

const submissionColumns = `id, dataset, operator, category, report_type, report_party, frequency, period,
	lease_name, properties, due_date, received_date, status, reviewer_approver,
	asset_manager, inv_manager, lease_admin, inv_associate, days_under_status, comments`

func (s *SQLiteStore) CreateSubmission(ctx context.Context, dataset model.Dataset, sub *model.Submission) error {
	s.logger.Debug("sql", "op", "insert", "table", "submissions", "id", sub.ID, "dataset", dataset)
	if err := insertSubmission(ctx, s.db, dataset, sub); err != nil {
		return err
	}
	sub.Dataset = dataset
	return nil
}

// CreateSubmissions inserts subs in one transaction. Either every row is
// stored or none is.
func (s *SQLiteStore) CreateSubmissions(ctx context.Context, dataset model.Dataset, subs []*model.Submission) error {
	s.logger.Debug("sql", "op", "insert_batch", "table", "submissions", "count", len(subs), "dataset", dataset)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	for _, sub := range subs {
		if err := insertSubmission(ctx, tx, dataset, sub); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	for _, sub := range subs {
		sub.Dataset = dataset
	}
	return nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func insertSubmission(ctx context.Context, q execer, dataset model.Dataset, sub *model.Submission) error {
	commentsJSON, err := marshalComments(sub.Comments)
	if err != nil {
		return err
	}

	_, err = q.ExecContext(ctx,
		`INSERT INTO submissions (`+submissionColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sub.ID, string(dataset), sub.Operator, sub.Category, sub.ReportType, sub.ReportParty,
		sub.Frequency, sub.Period, sub.LeaseName, sub.Properties, sub.DueDate, sub.ReceivedDate,
		string(sub.Status), sub.ReviewerApprover, sub.AssetManager, sub.InvManager,
		sub.LeaseAdmin, sub.InvAssociate, sub.DaysUnderStatus, commentsJSON,
	)
	if err != nil {
		return fmt.Errorf("insert submission %s: %w", sub.ID, err)
	}
	return nil
}

func (s *SQLiteStore) GetSubmission(ctx context.Context, id string) (*model.Submission, error) {
	s.logger.Debug("sql", "op", "select", "table", "submissions", "id", id)

	row := s.db.QueryRowContext(ctx,
		`SELECT `+submissionColumns+` FROM submissions WHERE id = ?`, id)
	sub, err := scanSubmission(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return sub, err
}

// ListSubmissions returns every submission of dataset in insertion order.
func (s *SQLiteStore) ListSubmissions(ctx context.Context, dataset model.Dataset) ([]*model.Submission, error) {
	s.logger.Debug("sql", "op", "list", "table", "submissions", "dataset", dataset)

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+submissionColumns+` FROM submissions WHERE dataset = ? ORDER BY rowid`, string(dataset))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subs []*model.Submission
	for rows.Next() {
		sub, err := scanSubmission(rows)
		if err != nil {
			return nil, err
		}
		subs = append(subs, sub)
	}
	return subs, rows.Err()
}

// UpdateSubmission overwrites every mutable field. The id and dataset never change.
func (s *SQLiteStore) UpdateSubmission(ctx context.Context, sub *model.Submission) error {
	s.logger.Debug("sql", "op", "update", "table", "submissions", "id", sub.ID)

	commentsJSON, err := marshalComments(sub.Comments)
	if err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx,
		`UPDATE submissions SET operator=?, category=?, report_type=?, report_party=?, frequency=?, period=?,
			lease_name=?, properties=?, due_date=?, received_date=?, status=?, reviewer_approver=?,
			asset_manager=?, inv_manager=?, lease_admin=?, inv_associate=?, days_under_status=?, comments=?
		 WHERE id=?`,
		sub.Operator, sub.Category, sub.ReportType, sub.ReportParty, sub.Frequency, sub.Period,
		sub.LeaseName, sub.Properties, sub.DueDate, sub.ReceivedDate, string(sub.Status), sub.ReviewerApprover,
		sub.AssetManager, sub.InvManager, sub.LeaseAdmin, sub.InvAssociate, sub.DaysUnderStatus, commentsJSON,
		sub.ID,
	)
	if err != nil {
		return err
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return fmt.Errorf("submission %s not found", sub.ID)
	}
	return nil
}

// NextSubmissionIDs returns n consecutive SUB-NNN ids starting one past the
// highest numbered submission.
func (s *SQLiteStore) NextSubmissionIDs(ctx context.Context, n int) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id FROM submissions WHERE id LIKE 'SUB-%'`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	highest := 0
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		if num, err := strconv.Atoi(strings.TrimPrefix(id, "SUB-")); err == nil && num > highest {
			highest = num
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	ids := make([]string, n)
	for i := range ids {
		ids[i] = fmt.Sprintf("SUB-%03d", highest+1+i)
	}
	return ids, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSubmission(row scanner) (*model.Submission, error) {
	var sub model.Submission
	var dataset, status, commentsJSON string

	err := row.Scan(
		&sub.ID, &dataset, &sub.Operator, &sub.Category, &sub.ReportType, &sub.ReportParty,
		&sub.Frequency, &sub.Period, &sub.LeaseName, &sub.Properties, &sub.DueDate, &sub.ReceivedDate,
		&status, &sub.ReviewerApprover, &sub.AssetManager, &sub.InvManager,
		&sub.LeaseAdmin, &sub.InvAssociate, &sub.DaysUnderStatus, &commentsJSON,
	)
	if err != nil {
		return nil, err
	}
	sub.Dataset = model.Dataset(dataset)
	sub.Status = model.Status(status)
	if err := json.Unmarshal([]byte(commentsJSON), &sub.Comments); err != nil {
		return nil, fmt.Errorf("unmarshal comments of %s: %w", sub.ID, err)
	}
	return &sub, nil
}

func marshalComments(comments []model.Comment) (string, error) {
	if comments == nil {
		comments = []model.Comment{}
	}
	b, err := json.Marshal(comments)
	if err != nil {
		return "", fmt.Errorf("marshal comments: %w", err)
	}
	return string(b), nil
}

// --- Future tasks ---

func (s *SQLiteStore) CreateFutureTask(ctx context.Context, task *model.FutureTask) error {
	s.logger.Debug("sql", "op", "insert", "table", "future_tasks", "id", task.ID)

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO future_tasks (id, submission_id, task, assignee, due_date, priority, status, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		task.ID, task.SubmissionID, task.Task, task.Assignee, task.DueDate,
		string(task.Priority), string(task.Status), task.CreatedAt.Format(time.RFC3339Nano),
	)
	return err
}

// ListFutureTasks returns the tasks of one submission, oldest first.
func (s *SQLiteStore) ListFutureTasks(ctx context.Context, submissionID string) ([]*model.FutureTask, error) {
	s.logger.Debug("sql", "op", "list", "table", "future_tasks", "submission_id", submissionID)

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, submission_id, task, assignee, due_date, priority, status, created_at
		 FROM future_tasks WHERE submission_id = ? ORDER BY rowid`, submissionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []*model.FutureTask
	for rows.Next() {
		var t model.FutureTask
		var priority, status, createdAt string
		if err := rows.Scan(&t.ID, &t.SubmissionID, &t.Task, &t.Assignee, &t.DueDate,
			&priority, &status, &createdAt); err != nil {
			return nil, err
		}
		t.Priority = model.Priority(priority)
		t.Status = model.TaskStatus(status)
		t.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
		tasks = append(tasks, &t)
	}
	return tasks, rows.Err()
}

// DeleteFutureTask removes a task and reports whether it existed.
func (s *SQLiteStore) DeleteFutureTask(ctx context.Context, id string) (bool, error) {
	s.logger.Debug("sql", "op", "delete", "table", "future_tasks", "id", id)

	result, err := s.db.ExecContext(ctx, `DELETE FROM future_tasks WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	n, _ := result.RowsAffected()
	return n > 0, nil
}

// --- Reminders ---

func (s *SQLiteStore) CreateReminder(ctx context.Context, r *model.Reminder) error {
	s.logger.Debug("sql", "op", "insert", "table", "reminders", "id", r.ID)

	active := 0
	if r.IsActive {
		active = 1
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO reminders (id, type, recipient_role, recipient, message, due_date, is_active, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Type, r.RecipientRole, r.Recipient, r.Message, r.DueDate, active, r.CreatedAt,
	)
	return err
}

func (s *SQLiteStore) ListReminders(ctx context.Context) ([]*model.Reminder, error) {
	s.logger.Debug("sql", "op", "list", "table", "reminders")

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, type, recipient_role, recipient, message, due_date, is_active, created_at
		 FROM reminders ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Reminder
	for rows.Next() {
		var r model.Reminder
		var active int
		if err := rows.Scan(&r.ID, &r.Type, &r.RecipientRole, &r.Recipient, &r.Message,
			&r.DueDate, &active, &r.CreatedAt); err != nil {
			return nil, err
		}
		r.IsActive = active != 0
		out = append(out, &r)
	}
	return out, rows.Err()
}

// --- Activity ---

func (s *SQLiteStore) AppendActivity(ctx context.Context, item *model.ActivityItem) error {
	s.logger.Debug("sql", "op", "insert", "table", "activity", "id", item.ID)

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO activity (id, type, title, description, actor, submission_id, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		item.ID, string(item.Type), item.Title, item.Description, item.User, item.SubmissionID,
		item.CreatedAt.Format(time.RFC3339Nano),
	)
	return err
}

// ListActivity returns up to limit items, newest first. A limit <= 0 returns everything.
func (s *SQLiteStore) ListActivity(ctx context.Context, limit int) ([]*model.ActivityItem, error) {
	s.logger.Debug("sql", "op", "list", "table", "activity", "limit", limit)

	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, type, title, description, actor, submission_id, created_at
		 FROM activity ORDER BY seq DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*model.ActivityItem
	for rows.Next() {
		var it model.ActivityItem
		var typ, createdAt string
		if err := rows.Scan(&it.ID, &typ, &it.Title, &it.Description, &it.User, &it.SubmissionID, &createdAt); err != nil {
			return nil, err
		}
		it.Type = model.ActivityType(typ)
		it.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
		items = append(items, &it)
	}
	return items, rows.Err()
}
