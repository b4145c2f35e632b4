package query

import (
	"fmt"
	"strings"
	"time"

	"github.com/me/optrack/internal/dates"
)

// DateRange is a calendar window applied to a submission's due date.
type DateRange string

const (
	RangeAll     DateRange = "all"
	RangeToday   DateRange = "today"
	RangeWeek    DateRange = "week"
	RangeMonth   DateRange = "month"
	RangeQuarter DateRange = "quarter"
	RangeYear    DateRange = "year"
)

// DateRanges lists the selectable windows in picker order.
func DateRanges() []DateRange {
	return []DateRange{RangeAll, RangeToday, RangeWeek, RangeMonth, RangeQuarter, RangeYear}
}

// ParseDateRange validates a window name. Empty means RangeAll.
func ParseDateRange(s string) (DateRange, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return RangeAll, nil
	}
	for _, r := range DateRanges() {
		if DateRange(s) == r {
			return r, nil
		}
	}
	return "", fmt.Errorf("unknown date range %q", s)
}

// Active reports whether the window restricts anything.
func (r DateRange) Active() bool {
	return r != "" && r != RangeAll
}

// Bounds returns the half-open interval [start, end) of the window containing now.
func (r DateRange) Bounds(now time.Time) (start, end time.Time) {
	now = now.UTC()
	day := dates.StartOfDay(now)
	switch r {
	case RangeToday:
		return day, day.AddDate(0, 0, 1)
	case RangeWeek:
		// ISO weeks start on Monday.
		offset := (int(day.Weekday()) + 6) % 7
		start = day.AddDate(0, 0, -offset)
		return start, start.AddDate(0, 0, 7)
	case RangeMonth:
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
		return start, start.AddDate(0, 1, 0)
	case RangeQuarter:
		q := (int(now.Month()) - 1) / 3
		start = time.Date(now.Year(), time.Month(q*3+1), 1, 0, 0, 0, 0, time.UTC)
		return start, start.AddDate(0, 3, 0)
	case RangeYear:
		start = time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
		return start, start.AddDate(1, 0, 0)
	}
	return time.Time{}, time.Time{}
}

// Contains reports whether the due date falls inside the window around now.
// An inactive window contains everything; an unparseable date is never inside an active one.
func (r DateRange) Contains(due string, now time.Time) bool {
	if !r.Active() {
		return true
	}
	t, ok := dates.Parse(due)
	if !ok {
		return false
	}
	start, end := r.Bounds(now)
	return !t.Before(start) && t.Before(end)
}
