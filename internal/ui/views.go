package ui

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/me/optrack/internal/query"
	"github.com/me/optrack/internal/seed"
	"github.com/me/optrack/internal/tracker"
	"github.com/me/optrack/pkg/model"
)

// tableColumns are the dashboard table columns after the id, in display order.
var tableColumns = []query.Column{
	query.ColReportType,
	query.ColReportParty,
	query.ColFrequency,
	query.ColPeriod,
	query.ColLeaseName,
	query.ColProperties,
	query.ColDueDate,
	query.ColReceivedDate,
	query.ColStatus,
	query.ColReviewerApprover,
	query.ColDaysUnderStatus,
	query.ColAssetManager,
	query.ColInvManager,
	query.ColLeaseAdmin,
	query.ColInvAssociate,
	query.ColComments,
}

// href links to base with the view encoded in the query.
func href(base string, v query.View) string {
	q := v.Values().Encode()
	if q == "" {
		return base
	}
	return base + "?" + q
}

func withGroups(v query.View, g query.GroupState) query.View {
	v.Groups = g
	return v
}

type statCard struct {
	Label  string
	Count  int
	Href   string
	Active bool
	Color  string
}

// statCards links each card to the view filtered by its status. Total and
// Operators clear the status filter.
func statCards(base string, v query.View, st query.Stats) []statCard {
	card := func(label string, count int, status model.Status, color string) statCard {
		next := v
		next.Criteria.Status = status
		return statCard{
			Label:  label,
			Count:  count,
			Href:   href(base, next),
			Active: status != "" && v.Criteria.Status == status,
			Color:  color,
		}
	}
	cards := []statCard{card("Total", st.Total, "", "gray")}
	for _, b := range statBuckets {
		cards = append(cards, card(b.status.Label(), st.Count(b.status), b.status, b.color))
	}
	return append(cards, card("Operators", st.Operators, "", "gray"))
}

var statBuckets = []struct {
	status model.Status
	color  string
}{
	{model.StatusApproved, "green"},
	{model.StatusPending, "yellow"},
	{model.StatusInReview, "blue"},
	{model.StatusSubmitted, "indigo"},
	{model.StatusNonCompliant, "red"},
	{model.StatusOverdue, "orange"},
}

type header struct {
	Label string
	Href  string
	Arrow string
}

// headers links each column heading to the view with that column's sort toggled.
func headers(base string, v query.View) []header {
	out := make([]header, 0, len(tableColumns))
	for _, col := range tableColumns {
		next := v
		next.Sort = v.Sort.Toggle(col)
		h := header{Label: col.Label(), Href: href(base, next)}
		if v.Sort.Key == col {
			h.Arrow = "▲"
			if v.Sort.Direction == query.Desc {
				h.Arrow = "▼"
			}
		}
		out = append(out, h)
	}
	return out
}

type groupView struct {
	query.Group
	ToggleHref string
}

func groupViews(base string, v query.View, groups []query.Group) []groupView {
	out := make([]groupView, 0, len(groups))
	for _, g := range groups {
		out = append(out, groupView{Group: g, ToggleHref: href(base, withGroups(v, v.Groups.Toggle(g.Operator)))})
	}
	return out
}

type columnFilter struct {
	Name     string
	Label    string
	Selected string
	Options  []string
}

// columnFilters lists every filterable column with its distinct values.
func (ui *UI) columnFilters(r *http.Request, dataset model.Dataset, v query.View) ([]columnFilter, error) {
	out := make([]columnFilter, 0, len(query.FilterableColumns))
	for _, col := range query.FilterableColumns {
		vals, err := ui.tracker.ColumnValues(r.Context(), dataset, col)
		if err != nil {
			return nil, err
		}
		out = append(out, columnFilter{
			Name:     "col." + string(col),
			Label:    col.Label(),
			Selected: v.Columns[col],
			Options:  vals,
		})
	}
	return out, nil
}

type editField struct {
	Name  string
	Label string
	Value string
}

func editFields(e tracker.SubmissionEdit) []editField {
	return []editField{
		{"operator", "Operator", e.Operator},
		{"category", "Category", e.Category},
		{"report_type", "Report Type", e.ReportType},
		{"report_party", "Report Party", e.ReportParty},
		{"frequency", "Frequency", e.Frequency},
		{"period", "Period", e.Period},
		{"lease_name", "Lease Name", e.LeaseName},
		{"properties", "Properties", e.Properties},
		{"due_date", "Due Date", e.DueDate},
		{"received_date", "Received Date", e.ReceivedDate},
		{"reviewer_approver", "Reviewer/Approver", e.ReviewerApprover},
		{"asset_manager", "Asset Manager", e.AssetManager},
		{"inv_manager", "Inv Manager", e.InvManager},
		{"lease_admin", "Lease Admin", e.LeaseAdmin},
		{"inv_associate", "Inv Associate", e.InvAssociate},
		{"days_under_status", "Days Under Status", strconv.Itoa(e.DaysUnderStatus)},
	}
}

// editFromForm overlays the posted edit fields on base. Fields absent from
// the form keep their base value.
func editFromForm(f url.Values, base tracker.SubmissionEdit) tracker.SubmissionEdit {
	e := base
	set := func(key string, dst *string) {
		if f.Has(key) {
			*dst = f.Get(key)
		}
	}
	set("operator", &e.Operator)
	set("category", &e.Category)
	set("report_type", &e.ReportType)
	set("report_party", &e.ReportParty)
	set("frequency", &e.Frequency)
	set("period", &e.Period)
	set("lease_name", &e.LeaseName)
	set("properties", &e.Properties)
	set("due_date", &e.DueDate)
	set("received_date", &e.ReceivedDate)
	set("reviewer_approver", &e.ReviewerApprover)
	set("asset_manager", &e.AssetManager)
	set("inv_manager", &e.InvManager)
	set("lease_admin", &e.LeaseAdmin)
	set("inv_associate", &e.InvAssociate)
	set("author", &e.Author)
	if f.Has("status") {
		e.Status = model.Status(f.Get("status"))
	}
	if n, err := strconv.Atoi(strings.TrimSpace(f.Get("days_under_status"))); err == nil {
		e.DaysUnderStatus = n
	}
	return e
}

type entryTaskView struct {
	Index    int
	Type     seed.ReportType
	Selected bool
	Party    string
	Freq     string
	DueDate  string
	Notes    string
}

func taskKey(i int, field string) string {
	return "task." + strconv.Itoa(i) + "." + field
}

// entryTaskViews lays out one row per catalogue report type, refilled from posted.
func entryTaskViews(c *seed.Catalog, posted url.Values) []entryTaskView {
	out := make([]entryTaskView, 0, len(c.ReportTypes))
	for i, rt := range c.ReportTypes {
		out = append(out, entryTaskView{
			Index:    i,
			Type:     rt,
			Selected: posted.Get(taskKey(i, "selected")) != "",
			Party:    posted.Get(taskKey(i, "report_party")),
			Freq:     posted.Get(taskKey(i, "frequency")),
			DueDate:  posted.Get(taskKey(i, "due_date")),
			Notes:    posted.Get(taskKey(i, "notes")),
		})
	}
	return out
}

// entryFromForm reads the new-entry form. Each ticked report type becomes one task.
func entryFromForm(f url.Values, c *seed.Catalog) tracker.NewEntry {
	e := tracker.NewEntry{
		Operator:   f.Get("operator"),
		Lease:      f.Get("lease"),
		Properties: f["properties"],
		Notes:      f.Get("notes"),
		Author:     f.Get("author"),
	}
	for i, rt := range c.ReportTypes {
		if f.Get(taskKey(i, "selected")) == "" {
			continue
		}
		e.Tasks = append(e.Tasks, tracker.EntryTask{
			ReportType:  rt.Name,
			ReportParty: f.Get(taskKey(i, "report_party")),
			Frequency:   f.Get(taskKey(i, "frequency")),
			DueDate:     f.Get(taskKey(i, "due_date")),
			Notes:       f.Get(taskKey(i, "notes")),
		})
	}
	return e
}
