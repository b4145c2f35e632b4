package store

import (
	"context"
	"database/sql"
	"fmt"
)

// schema contains the DDL for all tracker tables.
// Each statement uses IF NOT EXISTS for idempotency.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS submissions (
		id                TEXT PRIMARY KEY,
		dataset           TEXT NOT NULL DEFAULT 'live',
		operator          TEXT NOT NULL,
		category          TEXT NOT NULL DEFAULT '',
		report_type       TEXT NOT NULL DEFAULT '',
		report_party      TEXT NOT NULL DEFAULT '',
		frequency         TEXT NOT NULL DEFAULT '',
		period            TEXT NOT NULL DEFAULT '',
		lease_name        TEXT NOT NULL DEFAULT '',
		properties        TEXT NOT NULL DEFAULT '',
		due_date          TEXT NOT NULL DEFAULT '',
		received_date     TEXT NOT NULL DEFAULT '',
		status            TEXT NOT NULL,
		reviewer_approver TEXT NOT NULL DEFAULT '',
		asset_manager     TEXT NOT NULL DEFAULT '',
		inv_manager       TEXT NOT NULL DEFAULT '',
		lease_admin       TEXT NOT NULL DEFAULT '',
		inv_associate     TEXT NOT NULL DEFAULT '',
		days_under_status INTEGER NOT NULL DEFAULT 0,
		comments          TEXT NOT NULL DEFAULT '[]'
	)`,
	`CREATE INDEX IF NOT EXISTS idx_submissions_dataset ON submissions(dataset)`,

	`CREATE TABLE IF NOT EXISTS future_tasks (
		id            TEXT PRIMARY KEY,
		submission_id TEXT NOT NULL REFERENCES submissions(id),
		task          TEXT NOT NULL,
		assignee      TEXT NOT NULL,
		due_date      TEXT NOT NULL,
		priority      TEXT NOT NULL DEFAULT 'medium',
		status        TEXT NOT NULL DEFAULT 'pending',
		created_at    TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_future_tasks_submission_id ON future_tasks(submission_id)`,

	`CREATE TABLE IF NOT EXISTS reminders (
		id             TEXT PRIMARY KEY,
		type           TEXT NOT NULL,
		recipient_role TEXT NOT NULL DEFAULT '',
		recipient      TEXT NOT NULL DEFAULT '',
		message        TEXT NOT NULL,
		due_date       TEXT NOT NULL,
		is_active      INTEGER NOT NULL DEFAULT 1,
		created_at     TEXT NOT NULL DEFAULT ''
	)`,

	`CREATE TABLE IF NOT EXISTS activity (
		seq           INTEGER PRIMARY KEY AUTOINCREMENT,
		id            TEXT NOT NULL UNIQUE,
		type          TEXT NOT NULL,
		title         TEXT NOT NULL,
		description   TEXT NOT NULL DEFAULT '',
		actor         TEXT NOT NULL DEFAULT '',
		submission_id TEXT NOT NULL DEFAULT '',
		created_at    TEXT NOT NULL
	)`,
}

// migrate executes all schema DDL statements.
func migrate(ctx context.Context, db *sql.DB) error {
	for i, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("schema statement %d: %w", i, err)
		}
	}
	return nil
}
