package model

import "fmt"

// Status is the lifecycle label of a Submission.
type Status string

const (
	StatusApproved     Status = "approved"
	StatusPending      Status = "pending"
	StatusNonCompliant Status = "non-compliant"
	StatusOverdue      Status = "overdue"
	StatusInReview     Status = "in-review"
	StatusSubmitted    Status = "submitted"
)

// AllStatuses returns every status in the order the status picker lists them.
func AllStatuses() []Status {
	return []Status{
		StatusSubmitted,
		StatusInReview,
		StatusApproved,
		StatusNonCompliant,
		StatusPending,
		StatusOverdue,
	}
}

var statusLabels = map[Status]string{
	StatusApproved:     "Approved",
	StatusPending:      "Pending",
	StatusNonCompliant: "Non-Compliant",
	StatusOverdue:      "Overdue",
	StatusInReview:     "In Review",
	StatusSubmitted:    "Submitted",
}

// String returns the string representation of the status.
func (s Status) String() string {
	return string(s)
}

// Valid reports whether s is one of the fixed statuses.
func (s Status) Valid() bool {
	_, ok := statusLabels[s]
	return ok
}

// Label returns the human-readable badge label, or the raw value for unknown statuses.
func (s Status) Label() string {
	if l, ok := statusLabels[s]; ok {
		return l
	}
	return string(s)
}

// IsClosed reports whether reviewer reassignment no longer applies.
func (s Status) IsClosed() bool {
	return s == StatusApproved || s == StatusNonCompliant
}

// ParseStatus converts s into a Status, rejecting values outside the fixed set.
func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if !st.Valid() {
		return "", fmt.Errorf("unknown status %q", s)
	}
	return st, nil
}

// Dataset names one of the two independent submission collections.
type Dataset string

const (
	DatasetLive     Dataset = "live"
	DatasetArchived Dataset = "archived"
)
