package model

import "time"

// Priority ranks a FutureTask.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// TaskStatus is the lifecycle state of a FutureTask.
type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in-progress"
	TaskStatusCompleted  TaskStatus = "completed"
)

// FutureTask is a follow-up item scheduled against a Submission.
type FutureTask struct {
	ID           string     `json:"id"`
	SubmissionID string     `json:"submission_id"`
	Task         string     `json:"task"`
	Assignee     string     `json:"assignee"`
	DueDate      string     `json:"due_date"`
	Priority     Priority   `json:"priority"`
	Status       TaskStatus `json:"status"`
	CreatedAt    time.Time  `json:"created_at"`
}

// Reminder tells a role-holder that a recurring upload is coming due.
type Reminder struct {
	ID            string `json:"id" yaml:"id"`
	Type          string `json:"type" yaml:"type"`
	RecipientRole string `json:"recipient_role" yaml:"recipient_role"`
	Recipient     string `json:"recipient" yaml:"recipient"`
	Message       string `json:"message" yaml:"message"`
	DueDate       string `json:"due_date" yaml:"due_date"` // ISO date
	IsActive      bool   `json:"is_active" yaml:"is_active"`
	CreatedAt     string `json:"created_at" yaml:"created_at"`
}

// ActivityType classifies an ActivityItem.
type ActivityType string

const (
	ActivitySubmission ActivityType = "submission"
	ActivityApproval   ActivityType = "approval"
	ActivityComment    ActivityType = "comment"
	ActivityOverdue    ActivityType = "overdue"
	ActivityStatus     ActivityType = "status"
	ActivityUpdate     ActivityType = "update"
)

// ActivityItem is one entry of the recent-activity feed.
type ActivityItem struct {
	ID           string       `json:"id"`
	Type         ActivityType `json:"type"`
	Title        string       `json:"title"`
	Description  string       `json:"description"`
	User         string       `json:"user"`
	SubmissionID string       `json:"submission_id,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
}
