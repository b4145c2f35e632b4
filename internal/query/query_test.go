package query

import (
	"net/url"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/me/optrack/pkg/model"
)

func fixture() []*model.Submission {
	return []*model.Submission{
		{ID: "SUB-001", Operator: "ADVANCED RECOVERY SYSTEMS", Category: "Budgets", ReportType: "Operating & Capital Budgets",
			Frequency: "Annual", Period: "2024", LeaseName: "METRO HEALTH", Properties: "All", DueDate: "12/01/2024",
			Status: model.StatusSubmitted, ReviewerApprover: "Melissa Johnson", DaysUnderStatus: 12},
		{ID: "SUB-002", Operator: "AGEWELL SOLVERE", Category: "Financials", ReportType: "Annual & Qtrly Financials",
			Frequency: "Quarterly", Period: "Q2 2024", LeaseName: "Metro Care", Properties: "Oakwood", DueDate: "6/15/24",
			Status: model.StatusInReview, ReviewerApprover: "Yvonne Smith", DaysUnderStatus: 3},
		{ID: "SUB-003", Operator: "ADVANCED RECOVERY SYSTEMS", Category: "Compliance", ReportType: "Operating Licenses",
			Frequency: "Upon Expiration", Period: "2024", LeaseName: "Lakeside", Properties: "Lakeside", DueDate: "2024-03-10",
			Status: model.StatusApproved, ReviewerApprover: "Yvonne Smith", DaysUnderStatus: 40},
		{ID: "SUB-004", Operator: "ANDREW RESIDENCE", Category: "Budgets", ReportType: "operating-&-capital-budgets",
			Frequency: "Annual", Period: "2025", LeaseName: "Andrew House", Properties: "All", DueDate: "",
			Status: model.StatusOverdue, ReviewerApprover: "melissa johnson", DaysUnderStatus: 7,
			Comments: []model.Comment{{Type: model.CommentNote, Text: "7/20/2023: Not approved - outstanding questions"}}},
	}
}

func ids(subs []*model.Submission) []string {
	out := make([]string, 0, len(subs))
	for _, s := range subs {
		out = append(out, s.ID)
	}
	return out
}

func TestFilterIdentity(t *testing.T) {
	subs := fixture()
	got := Filter(subs, Criteria{})
	if diff := cmp.Diff(ids(subs), ids(got)); diff != "" {
		t.Errorf("zero criteria changed result (-want +got):\n%s", diff)
	}
	got = Filter(subs, Criteria{Search: "   ", ReportType: FilterAll, DateRange: RangeAll})
	if len(got) != len(subs) {
		t.Errorf("inactive criteria returned %d, want %d", len(got), len(subs))
	}
}

func TestFilterCriteria(t *testing.T) {
	now := time.Date(2024, time.June, 12, 10, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		c    Criteria
		want []string
	}{
		{"search lower", Criteria{Search: "metro"}, []string{"SUB-001", "SUB-002"}},
		{"search upper", Criteria{Search: "METRO"}, []string{"SUB-001", "SUB-002"}},
		{"search comments", Criteria{Search: "outstanding questions"}, []string{"SUB-004"}},
		{"search reviewer", Criteria{Search: "yvonne"}, []string{"SUB-002", "SUB-003"}},
		{"search status", Criteria{Search: "in-review"}, []string{"SUB-002"}},
		{"search leading space", Criteria{Search: " metro"}, []string{"SUB-001", "SUB-002"}},
		{"search leading space not trimmed", Criteria{Search: " etro"}, []string{}},
		{"status", Criteria{Status: model.StatusApproved}, []string{"SUB-003"}},
		{"report type slug", Criteria{ReportType: "operating-capital-budgets"}, []string{"SUB-001", "SUB-004"}},
		{"report type legacy slug", Criteria{ReportType: "operating-&-capital-budgets"}, []string{"SUB-001", "SUB-004"}},
		{"report type label", Criteria{ReportType: "Operating Licenses"}, []string{"SUB-003"}},
		{"and", Criteria{Search: "metro", Status: model.StatusInReview}, []string{"SUB-002"}},
		{"month window", Criteria{DateRange: RangeMonth, Now: now}, []string{"SUB-002"}},
		{"week window", Criteria{DateRange: RangeWeek, Now: now}, []string{"SUB-002"}},
		{"year window", Criteria{DateRange: RangeYear, Now: now}, []string{"SUB-001", "SUB-002", "SUB-003"}},
		{"today window", Criteria{DateRange: RangeToday, Now: now}, []string{}},
		{"no match", Criteria{Search: "zzz"}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(Filter(fixture(), tt.c))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Filter (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFilterIsSubset(t *testing.T) {
	subs := fixture()
	in := make(map[*model.Submission]bool)
	for _, s := range subs {
		in[s] = true
	}
	for _, c := range []Criteria{{Search: "a"}, {Status: model.StatusOverdue}, {ReportType: "operating-licenses"}} {
		for _, s := range Filter(subs, c) {
			if !in[s] {
				t.Errorf("Filter(%+v) returned a record not in the input", c)
			}
		}
	}
}

func TestSlugify(t *testing.T) {
	tests := map[string]string{
		"Operating & Capital Budgets": "operating-capital-budgets",
		"operating-&-capital-budgets": "operating-capital-budgets",
		"Annual & Qtrly Financials":   "annual-qtrly-financials",
		"  Cash Flow  ":               "cash-flow",
		"":                            "",
	}
	for in, want := range tests {
		if got := Slugify(in); got != want {
			t.Errorf("Slugify(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestReportTypeOptions(t *testing.T) {
	got := ReportTypeOptions(fixture())
	want := []Option{
		{Value: "annual-qtrly-financials", Label: "Annual & Qtrly Financials"},
		{Value: "operating-capital-budgets", Label: "Operating & Capital Budgets"},
		{Value: "operating-licenses", Label: "Operating Licenses"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ReportTypeOptions (-want +got):\n%s", diff)
	}
}

func TestParseStatusFilter(t *testing.T) {
	for _, v := range []string{"", "all", "operators"} {
		st, err := ParseStatusFilter(v)
		if err != nil || st != "" {
			t.Errorf("ParseStatusFilter(%q) = %q, %v", v, st, err)
		}
	}
	if st, err := ParseStatusFilter("approved"); err != nil || st != model.StatusApproved {
		t.Errorf("ParseStatusFilter(approved) = %q, %v", st, err)
	}
	if _, err := ParseStatusFilter("done"); err == nil {
		t.Error("expected error for unknown status")
	}
}

func TestCalculateStats(t *testing.T) {
	subs := fixture()
	got := CalculateStats(subs, Criteria{Status: model.StatusApproved})
	want := Stats{Total: 4, Approved: 1, InReview: 1, Submitted: 1, Overdue: 1, Operators: 3}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("stats ignore status filter (-want +got):\n%s", diff)
	}

	c := Criteria{Search: "metro"}
	st := CalculateStats(subs, c)
	if st.Total != len(Filter(subs, c)) {
		t.Errorf("Total = %d, want %d", st.Total, len(Filter(subs, c)))
	}
	sum := st.Approved + st.Pending + st.InReview + st.Submitted + st.NonCompliant + st.Overdue
	if sum > st.Total {
		t.Errorf("bucket sum %d exceeds total %d", sum, st.Total)
	}
	if st.Count(model.StatusInReview) != 1 {
		t.Errorf("Count(in-review) = %d", st.Count(model.StatusInReview))
	}
}

func TestParseDateRange(t *testing.T) {
	if r, err := ParseDateRange(""); err != nil || r != RangeAll {
		t.Errorf("empty = %q, %v", r, err)
	}
	if r, err := ParseDateRange("Quarter"); err != nil || r != RangeQuarter {
		t.Errorf("Quarter = %q, %v", r, err)
	}
	if _, err := ParseDateRange("fortnight"); err == nil {
		t.Error("expected error for unknown range")
	}
}

func TestDateRangeBounds(t *testing.T) {
	// Wednesday.
	now := time.Date(2024, time.May, 15, 18, 30, 0, 0, time.UTC)
	tests := []struct {
		r          DateRange
		start, end string
	}{
		{RangeToday, "2024-05-15", "2024-05-16"},
		{RangeWeek, "2024-05-13", "2024-05-20"},
		{RangeMonth, "2024-05-01", "2024-06-01"},
		{RangeQuarter, "2024-04-01", "2024-07-01"},
		{RangeYear, "2024-01-01", "2025-01-01"},
	}
	for _, tt := range tests {
		s, e := tt.r.Bounds(now)
		if s.Format("2006-01-02") != tt.start || e.Format("2006-01-02") != tt.end {
			t.Errorf("%s bounds = [%s, %s), want [%s, %s)", tt.r, s.Format("2006-01-02"), e.Format("2006-01-02"), tt.start, tt.end)
		}
	}
	if RangeMonth.Contains("not a date", now) {
		t.Error("unparseable date inside active window")
	}
	if !RangeAll.Contains("not a date", now) {
		t.Error("inactive window must contain everything")
	}
}

func TestColumnFilters(t *testing.T) {
	subs := fixture()
	f := ColumnFilters{}
	if err := f.Set(ColReviewerApprover, "Yvonne Smith"); err != nil {
		t.Fatal(err)
	}
	if err := f.Set(ColCategory, FilterAll); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"SUB-002", "SUB-003"}, ids(f.Apply(subs))); diff != "" {
		t.Errorf("Apply (-want +got):\n%s", diff)
	}
	if len(f.Active()) != 1 {
		t.Errorf("Active = %v", f.Active())
	}
	if err := f.Set(ColDueDate, "x"); err == nil {
		t.Error("expected error setting a non-filterable column")
	}
	if _, err := ParseColumn("nope"); err == nil {
		t.Error("expected error for unknown column")
	}
}

func TestColumnOptions(t *testing.T) {
	got := ColumnOptions(fixture(), ColReviewerApprover)
	want := []string{"Melissa Johnson", "Yvonne Smith", "melissa johnson"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ColumnOptions (-want +got):\n%s", diff)
	}
}

func TestColumnLabel(t *testing.T) {
	for _, col := range SortableColumns {
		if col.Label() == "" || col.Label() == string(col) {
			t.Errorf("%s has no label", col)
		}
	}
	if got := ColReviewerApprover.Label(); got != "Reviewer/Approver" {
		t.Errorf("Label = %q", got)
	}
	if got := Column("unknown").Label(); got != "unknown" {
		t.Errorf("unknown column Label = %q, want raw name", got)
	}
}

func TestSortToggle(t *testing.T) {
	var s Sort
	s = s.Toggle(ColOperator)
	if s != (Sort{Key: ColOperator, Direction: Asc}) {
		t.Fatalf("first toggle = %+v", s)
	}
	s = s.Toggle(ColOperator)
	if s.Direction != Desc {
		t.Fatalf("second toggle = %+v", s)
	}
	s = s.Toggle(ColOperator)
	if s.Direction != Asc {
		t.Fatalf("third toggle = %+v", s)
	}
	s = Sort{Key: ColOperator, Direction: Desc}.Toggle(ColStatus)
	if s != (Sort{Key: ColStatus, Direction: Asc}) {
		t.Fatalf("new key toggle = %+v", s)
	}
}

func TestSortApply(t *testing.T) {
	tests := []struct {
		sort Sort
		want []string
	}{
		{Sort{}, []string{"SUB-001", "SUB-002", "SUB-003", "SUB-004"}},
		{Sort{Key: ColDueDate, Direction: Asc}, []string{"SUB-004", "SUB-003", "SUB-002", "SUB-001"}},
		{Sort{Key: ColDaysUnderStatus, Direction: Desc}, []string{"SUB-003", "SUB-001", "SUB-004", "SUB-002"}},
		// Case-insensitive and stable: SUB-001 and SUB-004 tie.
		{Sort{Key: ColReviewerApprover, Direction: Asc}, []string{"SUB-001", "SUB-004", "SUB-002", "SUB-003"}},
		{Sort{Key: ColOperator, Direction: Asc}, []string{"SUB-001", "SUB-003", "SUB-002", "SUB-004"}},
	}
	for _, tt := range tests {
		subs := fixture()
		got := ids(tt.sort.Apply(subs))
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("Apply(%+v) (-want +got):\n%s", tt.sort, diff)
		}
		if subs[0].ID != "SUB-001" {
			t.Errorf("Apply modified its input")
		}
	}
}

func TestGroupState(t *testing.T) {
	var g GroupState
	if !g.Expanded("X") {
		t.Error("groups start expanded")
	}
	g = g.Toggle("X")
	if g.Expanded("X") || !g.Expanded("Y") {
		t.Error("toggle should collapse only X")
	}
	if !g.Toggle("X").Expanded("X") {
		t.Error("second toggle should reopen X")
	}
	c := g.CollapseAll()
	if c.Expanded("X") || c.Expanded("Y") {
		t.Error("CollapseAll left a group open")
	}
	if !c.Toggle("Y").Expanded("Y") {
		t.Error("toggle after collapse all should open Y")
	}
	if !c.ExpandAll().Expanded("X") {
		t.Error("ExpandAll left a group closed")
	}
}

func TestGroupStateEncoding(t *testing.T) {
	states := []GroupState{
		{},
		GroupState{}.Toggle("ADVANCED RECOVERY SYSTEMS").Toggle("AGEWELL SOLVERE"),
		GroupState{}.CollapseAll(),
		GroupState{}.CollapseAll().Toggle("ANDREW RESIDENCE"),
	}
	ops := []string{"ADVANCED RECOVERY SYSTEMS", "AGEWELL SOLVERE", "ANDREW RESIDENCE"}
	for i, g := range states {
		v := url.Values{}
		g.Encode(v)
		back := ParseGroupState(v)
		for _, op := range ops {
			if back.Expanded(op) != g.Expanded(op) {
				t.Errorf("state %d (%s): %s expanded = %v, want %v", i, v.Encode(), op, back.Expanded(op), g.Expanded(op))
			}
		}
	}
	v := url.Values{}
	GroupState{}.CollapseAll().Encode(v)
	if v.Get("groups") != "none" {
		t.Errorf("collapse all encoded as %q", v.Encode())
	}
}

func TestGroupStateEncoding_OperatorWithComma(t *testing.T) {
	tests := []struct {
		name  string
		state GroupState
		open  bool
	}{
		{"collapsed", GroupState{}.Toggle("ACME, LLC"), false},
		{"expanded", GroupState{}.CollapseAll().Toggle("ACME, LLC"), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := url.Values{}
			tt.state.Encode(v)
			back := ParseGroupState(v)
			if got := back.Expanded("ACME, LLC"); got != tt.open {
				t.Errorf("%s: Expanded(ACME, LLC) = %v, want %v", v.Encode(), got, tt.open)
			}
			if got := back.Expanded("ACME"); got == tt.open {
				t.Errorf("%s: ACME picked up the state of ACME, LLC", v.Encode())
			}
			if got := back.Expanded("LLC"); got == tt.open {
				t.Errorf("%s: LLC picked up the state of ACME, LLC", v.Encode())
			}
		})
	}

	v := url.Values{}
	GroupState{}.Toggle("ACME, LLC").Toggle("AGEWELL SOLVERE").Encode(v)
	if diff := cmp.Diff([]string{"ACME, LLC", "AGEWELL SOLVERE"}, v["collapsed"]); diff != "" {
		t.Errorf("collapsed params (-want +got):\n%s", diff)
	}
}

func groupOperators(groups []Group) []string {
	ops := make([]string, 0, len(groups))
	for _, g := range groups {
		ops = append(ops, g.Operator)
	}
	return ops
}

func TestGroupByOperator(t *testing.T) {
	subs := fixture()
	groups := GroupByOperator(subs, GroupState{}.Toggle("AGEWELL SOLVERE"))
	if diff := cmp.Diff([]string{"ADVANCED RECOVERY SYSTEMS", "AGEWELL SOLVERE", "ANDREW RESIDENCE"}, groupOperators(groups)); diff != "" {
		t.Errorf("group order (-want +got):\n%s", diff)
	}
	total := 0
	for _, g := range groups {
		if g.Count != len(g.Submissions) {
			t.Errorf("group %s count %d != %d rows", g.Operator, g.Count, len(g.Submissions))
		}
		total += g.Count
	}
	if total != len(subs) {
		t.Errorf("group counts sum to %d, want %d", total, len(subs))
	}
	if groups[1].Expanded || !groups[0].Expanded {
		t.Error("expanded flags do not follow the group state")
	}
	if diff := cmp.Diff([]string{"SUB-001", "SUB-003"}, ids(groups[0].Submissions)); diff != "" {
		t.Errorf("rows in group (-want +got):\n%s", diff)
	}
}

func TestBuild(t *testing.T) {
	v := View{
		Criteria: Criteria{Search: "o"},
		Columns:  ColumnFilters{ColCategory: "Budgets"},
		Sort:     Sort{Key: ColDaysUnderStatus, Direction: Asc},
	}
	table := Build(fixture(), v)
	if diff := cmp.Diff([]string{"SUB-004", "SUB-001"}, ids(table.Rows)); diff != "" {
		t.Errorf("rows (-want +got):\n%s", diff)
	}
	if len(table.Groups) != 2 || table.Groups[0].Operator != "ANDREW RESIDENCE" {
		t.Errorf("groups = %v", groupOperators(table.Groups))
	}
}
