package query

import "github.com/me/optrack/pkg/model"

// Stats holds the per-status counts shown on the summary cards.
type Stats struct {
	Total        int `json:"total"`
	Approved     int `json:"approved"`
	Pending      int `json:"pending"`
	InReview     int `json:"in_review"`
	Submitted    int `json:"submitted"`
	NonCompliant int `json:"non_compliant"`
	Overdue      int `json:"overdue"`
	Operators    int `json:"operators"` // distinct operators among the counted records
}

// CalculateStats counts the submissions matching c. The status criterion is
// ignored so the cards always reflect every status.
func CalculateStats(subs []*model.Submission, c Criteria) Stats {
	c.Status = ""
	matched := Filter(subs, c)

	st := Stats{Total: len(matched)}
	operators := make(map[string]struct{})
	for _, s := range matched {
		operators[s.Operator] = struct{}{}
		switch s.Status {
		case model.StatusApproved:
			st.Approved++
		case model.StatusPending:
			st.Pending++
		case model.StatusInReview:
			st.InReview++
		case model.StatusSubmitted:
			st.Submitted++
		case model.StatusNonCompliant:
			st.NonCompliant++
		case model.StatusOverdue:
			st.Overdue++
		}
	}
	st.Operators = len(operators)
	return st
}

// Count returns the bucket for one status.
func (s Stats) Count(st model.Status) int {
	switch st {
	case model.StatusApproved:
		return s.Approved
	case model.StatusPending:
		return s.Pending
	case model.StatusInReview:
		return s.InReview
	case model.StatusSubmitted:
		return s.Submitted
	case model.StatusNonCompliant:
		return s.NonCompliant
	case model.StatusOverdue:
		return s.Overdue
	}
	return 0
}
