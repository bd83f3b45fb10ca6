package papers

import (
	"time"

	tracker "github.com/BHUPESH003/research-paper-tracker"
)

// windowLowerBound maps a date range to the inclusive lower bound on
// dateAdded, evaluated against now. The second return value is false when
// the range imposes no bound (ALL_TIME or anything unrecognized): the
// dateAdded constraint is then omitted entirely, not set to a sentinel.
// There is never an upper bound.
func windowLowerBound(r tracker.DateRange, now time.Time) (time.Time, bool) {
	switch r {
	case tracker.RangeThisWeek:
		// Weeks start on Monday. Sunday counts as the end of the week,
		// 6 days after its Monday.
		back := (int(now.Weekday()) + 6) % 7
		return midnight(now.AddDate(0, 0, -back)), true
	case tracker.RangeThisMonth:
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()), true
	case tracker.RangeLast3Months:
		return midnight(now.AddDate(0, -3, 0)), true
	}
	return time.Time{}, false
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
