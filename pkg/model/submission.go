package model

import (
	"fmt"
	"strings"
	"time"
)

// Submission is one trackable workflow task tied to an operator, report type and period.
type Submission struct {
	ID               string    `json:"id" yaml:"id"`
	Operator         string    `json:"operator" yaml:"operator"`
	Category         string    `json:"category" yaml:"category"`
	ReportType       string    `json:"report_type" yaml:"report_type"`
	ReportParty      string    `json:"report_party" yaml:"report_party"`
	Frequency        string    `json:"frequency" yaml:"frequency"`
	Period           string    `json:"period" yaml:"period"`
	LeaseName        string    `json:"lease_name" yaml:"lease_name"`
	Properties       string    `json:"properties" yaml:"properties"`
	DueDate          string    `json:"due_date" yaml:"due_date"`
	ReceivedDate     string    `json:"received_date,omitempty" yaml:"received_date"`
	Status           Status    `json:"status" yaml:"status"`
	ReviewerApprover string    `json:"reviewer_approver" yaml:"reviewer_approver"`
	AssetManager     string    `json:"asset_manager" yaml:"asset_manager"`
	InvManager       string    `json:"inv_manager" yaml:"inv_manager"`
	LeaseAdmin       string    `json:"lease_admin" yaml:"lease_admin"`
	InvAssociate     string    `json:"inv_associate" yaml:"inv_associate"`
	DaysUnderStatus  int       `json:"days_under_status" yaml:"days_under_status"`
	Comments         []Comment `json:"comments" yaml:"-"`
	Dataset          Dataset   `json:"dataset,omitempty" yaml:"-"`
	DaysOverdue      int       `json:"days_overdue" yaml:"-"` // Computed field, not stored
}

// Received reports whether the submission has a received date.
func (s *Submission) Received() bool {
	return strings.TrimSpace(s.ReceivedDate) != ""
}

// CommentsText renders the comment history the way the comments column shows it:
// one line per comment, separated by a blank line, in append order.
func (s *Submission) CommentsText() string {
	if len(s.Comments) == 0 {
		return ""
	}
	lines := make([]string, 0, len(s.Comments))
	for _, c := range s.Comments {
		lines = append(lines, c.Line())
	}
	return strings.Join(lines, "\n\n")
}

// Clone returns a deep copy safe to mutate.
func (s *Submission) Clone() *Submission {
	c := *s
	if s.Comments != nil {
		c.Comments = append([]Comment(nil), s.Comments...)
	}
	return &c
}

// CommentType classifies a Comment.
type CommentType string

const (
	CommentGeneral      CommentType = "general"
	CommentFeedback     CommentType = "feedback"
	CommentCorrection   CommentType = "correction"
	CommentApproval     CommentType = "approval"
	CommentFollowUp     CommentType = "follow-up"
	CommentStatusChange CommentType = "status-change"
	CommentNote         CommentType = "note"
)

// UserCommentTypes are the types a person may pick when adding a comment.
func UserCommentTypes() []CommentType {
	return []CommentType{CommentGeneral, CommentFeedback, CommentCorrection, CommentApproval, CommentFollowUp}
}

// IsUserType reports whether t may be chosen when adding a comment.
func (t CommentType) IsUserType() bool {
	for _, u := range UserCommentTypes() {
		if t == u {
			return true
		}
	}
	return false
}

// Comment is one entry in a submission's comment history.
type Comment struct {
	ID        string      `json:"id"`
	Type      CommentType `json:"type"`
	Author    string      `json:"author,omitempty"`
	Text      string      `json:"text"`
	Status    Status      `json:"status,omitempty"` // set for status-change comments
	CreatedAt time.Time   `json:"created_at"`
}

// Line renders the comment as a single history line.
func (c Comment) Line() string {
	switch c.Type {
	case CommentStatusChange:
		return fmt.Sprintf("Status changed to %s: %s", c.Status, c.Text)
	case CommentNote:
		return c.Text
	default:
		return fmt.Sprintf("[%s] %s", c.Type, c.Text)
	}
}
