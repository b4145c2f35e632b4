// Package query implements the submission filtering, aggregation, sorting and
// grouping pipeline behind the dashboard table and stat cards.
package query

import (
	"sort"
	"strings"
	"time"
	"unicode"

	"github.com/me/optrack/pkg/model"
)

// FilterAll disables a filter axis.
const FilterAll = "all"

// Criteria is the set of dashboard-level filters. The zero value matches everything.
type Criteria struct {
	Search     string
	Status     model.Status // empty disables
	ReportType string       // slug or label; empty or "all" disables
	DateRange  DateRange    // empty or "all" disables
	Now        time.Time    // reference clock for DateRange; zero means time.Now()
}

// Slugify is the canonical report-type key: lower-cased, every run of
// characters other than letters and digits collapsed to one hyphen, with no
// leading or trailing hyphen. Both dropdown values and row values go through it.
func Slugify(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	pendingDash := false
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingDash = false
			b.WriteRune(r)
			continue
		}
		pendingDash = true
	}
	return b.String()
}

// searchText is the haystack the free-text search runs against.
func searchText(s *model.Submission) string {
	return strings.ToLower(strings.Join([]string{
		s.Operator,
		s.Category,
		s.ReportType,
		s.ReportParty,
		s.Frequency,
		s.Period,
		s.LeaseName,
		s.Properties,
		s.ReviewerApprover,
		string(s.Status),
		s.CommentsText(),
	}, " "))
}

// Match reports whether s satisfies every active criterion.
func (c Criteria) Match(s *model.Submission) bool {
	// Whitespace only decides whether the search is active; the query is
	// matched as typed, surrounding spaces included.
	if strings.TrimSpace(c.Search) != "" {
		if !strings.Contains(searchText(s), strings.ToLower(c.Search)) {
			return false
		}
	}

	if c.Status != "" && s.Status != c.Status {
		return false
	}

	if rt := strings.TrimSpace(c.ReportType); rt != "" && rt != FilterAll {
		if Slugify(s.ReportType) != Slugify(rt) {
			return false
		}
	}

	if c.DateRange.Active() {
		now := c.Now
		if now.IsZero() {
			now = time.Now()
		}
		if !c.DateRange.Contains(s.DueDate, now) {
			return false
		}
	}

	return true
}

// Filter returns the submissions matching c, in input order. The input slice is not modified.
func Filter(subs []*model.Submission, c Criteria) []*model.Submission {
	out := make([]*model.Submission, 0, len(subs))
	for _, s := range subs {
		if c.Match(s) {
			out = append(out, s)
		}
	}
	return out
}

// Option is one entry of a dropdown.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// ReportTypeOptions lists the distinct report types of subs as slug/label pairs, sorted by label.
func ReportTypeOptions(subs []*model.Submission) []Option {
	seen := make(map[string]bool)
	var opts []Option
	for _, s := range subs {
		slug := Slugify(s.ReportType)
		if slug == "" || seen[slug] {
			continue
		}
		seen[slug] = true
		opts = append(opts, Option{Value: slug, Label: s.ReportType})
	}
	sort.Slice(opts, func(i, j int) bool { return opts[i].Label < opts[j].Label })
	return opts
}

// ParseStatusFilter converts a status-filter value from a request. "all", ""
// and the stat-card value "operators" select every status.
func ParseStatusFilter(v string) (model.Status, error) {
	switch v = strings.TrimSpace(v); v {
	case "", FilterAll, "operators":
		return "", nil
	}
	return model.ParseStatus(v)
}
