package schema

import "time"

// Window selects records for aggregation. It is either a closed date
// interval [Start, End] or an explicit set of period keys; Periods takes
// precedence when non-empty (used for month-based baselines).
type Window struct {
	Start   time.Time
	End     time.Time
	Periods []time.Time
}

// Interval returns a closed-interval window.
func Interval(start, end time.Time) Window {
	return Window{Start: start, End: end}
}

// SinglePeriod returns a window matching exactly one period.
func SinglePeriod(p time.Time) Window {
	return Window{Start: p, End: p}
}

// PeriodSet returns a window matching an explicit set of period keys.
func PeriodSet(periods ...time.Time) Window {
	return Window{Periods: periods}
}

// Contains reports whether the given period falls inside the window.
func (w Window) Contains(p time.Time) bool {
	if len(w.Periods) > 0 {
		for _, key := range w.Periods {
			if p.Equal(key) {
				return true
			}
		}
		return false
	}
	return !p.Before(w.Start) && !p.After(w.End)
}
