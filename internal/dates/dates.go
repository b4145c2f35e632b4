// Package dates parses the loosely formatted date strings carried by submissions.
//
// Seed records mix MM/DD/YYYY, M/D/YY and ISO dates, so every consumer goes
// through Parse rather than a single layout.
package dates

import (
	"math"
	"strings"
	"time"
)

// layouts are tried in order; four-digit years first so "12/01/2024" never
// matches the two-digit layout.
var layouts = []string{
	"1/2/2006",
	"1/2/06",
	"2006-01-02",
	time.RFC3339,
	time.RFC3339Nano,
}

// Parse returns the calendar date encoded in s, in UTC.
func Parse(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// FormatUS renders t as MM/DD/YYYY.
func FormatUS(t time.Time) string {
	return t.Format("01/02/2006")
}

// Year renders the four-digit year of t.
func Year(t time.Time) string {
	return t.Format("2006")
}

// Display renders s as "Jan 2, 2006", or returns s unchanged when it cannot be parsed.
func Display(s string) string {
	t, ok := Parse(s)
	if !ok {
		return s
	}
	return t.Format("Jan 2, 2006")
}

// DaysOverdue returns how many whole days (rounded up) now is past due, or 0.
func DaysOverdue(due string, now time.Time) int {
	t, ok := Parse(due)
	if !ok {
		return 0
	}
	diff := now.Sub(t)
	if diff <= 0 {
		return 0
	}
	return int(math.Ceil(diff.Hours() / 24))
}

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
