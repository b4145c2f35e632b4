package query

import (
	"fmt"
	"slices"
	"sort"
	"strconv"
	"strings"

	"github.com/me/optrack/internal/dates"
	"github.com/me/optrack/pkg/model"
)

// Column names a displayed submission attribute.
type Column string

const (
	ColOperator         Column = "operator"
	ColCategory         Column = "category"
	ColReportType       Column = "report_type"
	ColReportParty      Column = "report_party"
	ColFrequency        Column = "frequency"
	ColPeriod           Column = "period"
	ColLeaseName        Column = "lease_name"
	ColProperties       Column = "properties"
	ColDueDate          Column = "due_date"
	ColReceivedDate     Column = "received_date"
	ColStatus           Column = "status"
	ColReviewerApprover Column = "reviewer_approver"
	ColDaysUnderStatus  Column = "days_under_status"
	ColAssetManager     Column = "asset_manager"
	ColInvManager       Column = "inv_manager"
	ColLeaseAdmin       Column = "lease_admin"
	ColInvAssociate     Column = "inv_associate"
	ColComments         Column = "comments"
)

var columnLabels = map[Column]string{
	ColOperator:         "Operator",
	ColCategory:         "Category",
	ColReportType:       "Report Type",
	ColReportParty:      "Report Party",
	ColFrequency:        "Frequency",
	ColPeriod:           "Period",
	ColLeaseName:        "Lease Name",
	ColProperties:       "Properties",
	ColDueDate:          "Due Date",
	ColReceivedDate:     "Received Date",
	ColStatus:           "Status",
	ColReviewerApprover: "Reviewer/Approver",
	ColDaysUnderStatus:  "Days Under Status",
	ColAssetManager:     "Asset Manager",
	ColInvManager:       "Inv Manager",
	ColLeaseAdmin:       "Lease Admin",
	ColInvAssociate:     "Inv Associate",
	ColComments:         "Comments",
}

// Label returns the column heading.
func (c Column) Label() string {
	if l, ok := columnLabels[c]; ok {
		return l
	}
	return string(c)
}

// FilterableColumns are the columns with a per-column equality filter, in table order.
var FilterableColumns = []Column{
	ColOperator,
	ColCategory,
	ColReportType,
	ColFrequency,
	ColPeriod,
	ColLeaseName,
	ColProperties,
	ColStatus,
	ColReviewerApprover,
}

// SortableColumns are the columns the table can be ordered by.
var SortableColumns = []Column{
	ColOperator, ColCategory, ColReportType, ColReportParty, ColFrequency,
	ColPeriod, ColLeaseName, ColProperties, ColDueDate, ColReceivedDate,
	ColStatus, ColReviewerApprover, ColDaysUnderStatus,
	ColAssetManager, ColInvManager, ColLeaseAdmin, ColInvAssociate, ColComments,
}

// ParseColumn validates a column name against the sortable set.
func ParseColumn(s string) (Column, error) {
	c := Column(s)
	if slices.Contains(SortableColumns, c) {
		return c, nil
	}
	return "", fmt.Errorf("unknown column %q", s)
}

// Filterable reports whether c has a column filter.
func (c Column) Filterable() bool {
	return slices.Contains(FilterableColumns, c)
}

// Value returns the display value of column c on s.
func (c Column) Value(s *model.Submission) string {
	switch c {
	case ColOperator:
		return s.Operator
	case ColCategory:
		return s.Category
	case ColReportType:
		return s.ReportType
	case ColReportParty:
		return s.ReportParty
	case ColFrequency:
		return s.Frequency
	case ColPeriod:
		return s.Period
	case ColLeaseName:
		return s.LeaseName
	case ColProperties:
		return s.Properties
	case ColDueDate:
		return s.DueDate
	case ColReceivedDate:
		return s.ReceivedDate
	case ColStatus:
		return string(s.Status)
	case ColReviewerApprover:
		return s.ReviewerApprover
	case ColDaysUnderStatus:
		return strconv.Itoa(s.DaysUnderStatus)
	case ColAssetManager:
		return s.AssetManager
	case ColInvManager:
		return s.InvManager
	case ColLeaseAdmin:
		return s.LeaseAdmin
	case ColInvAssociate:
		return s.InvAssociate
	case ColComments:
		return s.CommentsText()
	}
	return ""
}

// ColumnFilters maps a column to the exact value it must equal. Missing,
// empty and "all" entries are inactive.
type ColumnFilters map[Column]string

// Set records a filter value, rejecting columns without a filter.
func (f ColumnFilters) Set(col Column, value string) error {
	if !col.Filterable() {
		return fmt.Errorf("column %q has no filter", col)
	}
	f[col] = value
	return nil
}

// Active returns the filters that restrict anything.
func (f ColumnFilters) Active() ColumnFilters {
	active := ColumnFilters{}
	for col, v := range f {
		if v != "" && v != FilterAll {
			active[col] = v
		}
	}
	return active
}

// Match reports whether s satisfies every active column filter.
func (f ColumnFilters) Match(s *model.Submission) bool {
	for col, v := range f {
		if v == "" || v == FilterAll {
			continue
		}
		if col.Value(s) != v {
			return false
		}
	}
	return true
}

// Apply returns the submissions passing every column filter, in input order.
func (f ColumnFilters) Apply(subs []*model.Submission) []*model.Submission {
	out := make([]*model.Submission, 0, len(subs))
	for _, s := range subs {
		if f.Match(s) {
			out = append(out, s)
		}
	}
	return out
}

// ColumnOptions returns the sorted distinct non-blank values of col across subs.
func ColumnOptions(subs []*model.Submission, col Column) []string {
	seen := make(map[string]bool)
	var vals []string
	for _, s := range subs {
		v := col.Value(s)
		if strings.TrimSpace(v) == "" || seen[v] {
			continue
		}
		seen[v] = true
		vals = append(vals, v)
	}
	sort.Strings(vals)
	return vals
}

// Direction is a sort order.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// Sort is the single-column ordering of the table. An empty Key keeps input order.
type Sort struct {
	Key       Column    `json:"key,omitempty"`
	Direction Direction `json:"direction"`
}

// Toggle returns the ordering after the user selects key: the same ascending
// column flips to descending, anything else becomes ascending.
func (s Sort) Toggle(key Column) Sort {
	if s.Key == key && s.Direction == Asc {
		return Sort{Key: key, Direction: Desc}
	}
	return Sort{Key: key, Direction: Asc}
}

// compare orders a and b by the sort column, ascending.
func (s Sort) compare(a, b *model.Submission) int {
	switch s.Key {
	case ColDueDate, ColReceivedDate:
		ta, _ := dates.Parse(s.Key.Value(a))
		tb, _ := dates.Parse(s.Key.Value(b))
		return ta.Compare(tb)
	case ColDaysUnderStatus:
		return a.DaysUnderStatus - b.DaysUnderStatus
	}
	return strings.Compare(strings.ToLower(s.Key.Value(a)), strings.ToLower(s.Key.Value(b)))
}

// Apply returns a stably sorted copy of subs.
func (s Sort) Apply(subs []*model.Submission) []*model.Submission {
	out := slices.Clone(subs)
	if s.Key == "" {
		return out
	}
	slices.SortStableFunc(out, func(a, b *model.Submission) int {
		c := s.compare(a, b)
		if s.Direction == Desc {
			return -c
		}
		return c
	})
	return out
}
