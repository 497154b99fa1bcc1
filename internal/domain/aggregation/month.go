// Package aggregation derives read-only views (summary, category spend, trend and
// budget utilization) from a user's transaction log. Every function is pure: it
// groups and sums in memory and never touches a store.
package aggregation

import (
	"time"

	domainerror "github.com/budget-tracker/backend/internal/domain/error"
)

// MonthLayout is the wire format of a calendar month.
const MonthLayout = "2006-01"

// Month is a calendar month anchored to a location.
type Month struct {
	start time.Time
}

// MonthOf returns the month containing t, in t's location.
func MonthOf(t time.Time) Month {
	return Month{start: time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())}
}

// ParseMonth parses a "YYYY-MM" string in the given location.
func ParseMonth(value string, loc *time.Location) (Month, error) {
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation(MonthLayout, value, loc)
	if err != nil {
		return Month{}, domainerror.NewDashboardError(
			domainerror.ErrCodeInvalidMonth,
			"Month must be in YYYY-MM format",
			domainerror.ErrInvalidMonth,
		)
	}
	return MonthOf(t), nil
}

// Window returns the first and last instants of the month, both inclusive.
func (m Month) Window() (start, end time.Time) {
	return m.start, m.start.AddDate(0, 1, 0).Add(-time.Nanosecond)
}

// Contains reports whether t falls inside the month window.
func (m Month) Contains(t time.Time) bool {
	start, end := m.Window()
	return !t.Before(start) && !t.After(end)
}

// String returns the month in YYYY-MM form.
func (m Month) String() string {
	return m.start.Format(MonthLayout)
}

// IsZero reports whether the month was never set.
func (m Month) IsZero() bool {
	return m.start.IsZero()
}

// MonthOrCurrent returns *m, or the month containing now when m is nil or zero.
func MonthOrCurrent(m *Month, now time.Time) Month {
	if m == nil || m.IsZero() {
		return MonthOf(now)
	}
	return *m
}
