package srs

import (
	"time"

	"github.com/abhisek/glossa/internal/dateutil"
)

// IsDue reports whether a unit with the given schedule state should be
// reviewed. Comparison is at calendar-day granularity: anything due earlier
// today is due, regardless of the hour. A unit with no state, or a state
// without a usable due date, is never due.
func IsDue(state *State, now time.Time) bool {
	if state == nil || state.Due.IsZero() {
		return false
	}
	return dateutil.OnOrBeforeDay(state.Due.Time, now)
}
