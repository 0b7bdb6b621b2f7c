package ledger

import (
	"time"

	"expensetracker/internal/models"
)

// TimeRange is a dashboard reporting window that ends at the reference time.
type TimeRange string

const (
	RangeWeek  TimeRange = "week"
	RangeMonth TimeRange = "month"
	RangeYear  TimeRange = "year"
	RangeAll   TimeRange = "all"
)

// DefaultTimeRange is the dashboard's initial window.
const DefaultTimeRange = RangeMonth

// ParseTimeRange reports whether s names a known range.
func ParseTimeRange(s string) (TimeRange, bool) {
	switch r := TimeRange(s); r {
	case RangeWeek, RangeMonth, RangeYear, RangeAll:
		return r, true
	}
	return "", false
}

// Start returns the first instant of the window containing now, in now's
// location. Weeks begin on Monday. RangeAll returns the zero time.
func (r TimeRange) Start(now time.Time) time.Time {
	y, m, d := now.Date()
	loc := now.Location()
	switch r {
	case RangeWeek:
		offset := (int(now.Weekday()) + 6) % 7
		return time.Date(y, m, d-offset, 0, 0, 0, 0, loc)
	case RangeMonth:
		return time.Date(y, m, 1, 0, 0, 0, 0, loc)
	case RangeYear:
		return time.Date(y, time.January, 1, 0, 0, 0, 0, loc)
	}
	return time.Time{}
}

// DateRange converts the window into a filter range starting at the window
// start. The range has no upper bound, so later-dated expenses are kept.
func (r TimeRange) DateRange(now time.Time) DateRange {
	if r == RangeAll {
		return DateRange{}
	}
	return DateRange{Active: true, Start: r.Start(now)}
}

// InRange returns the expenses dated inside r as of now, in input order.
func InRange(expenses []models.Expense, r TimeRange, now time.Time) []models.Expense {
	spec := NewFilterSpec()
	spec.Date = r.DateRange(now)
	return Apply(expenses, spec)
}
