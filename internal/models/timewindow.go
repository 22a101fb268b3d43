package models

import "time"

const MinutesPerDay = 1440

// Default window applied when a stored plan is absent or unreadable: 21:00-07:00.
const (
	DefaultWindowStart = 21 * 60
	DefaultWindowEnd   = 7 * 60
)

// TimeWindow is a minute-of-day range during which blocking applies.
// A window whose start is greater than its end wraps past midnight.
type TimeWindow struct {
	StartMinutes int `json:"start_minutes"`
	EndMinutes   int `json:"end_minutes"`
}

// Contains reports whether the given minute-of-day falls inside the window.
// A window with start == end is degenerate and never active.
func (w TimeWindow) Contains(minuteOfDay int) bool {
	if w.StartMinutes == w.EndMinutes {
		return false
	}
	if w.StartMinutes < w.EndMinutes {
		return minuteOfDay >= w.StartMinutes && minuteOfDay < w.EndMinutes
	}
	return minuteOfDay >= w.StartMinutes || minuteOfDay < w.EndMinutes
}

func (w TimeWindow) inBounds() bool {
	return w.StartMinutes >= 0 && w.StartMinutes < MinutesPerDay &&
		w.EndMinutes >= 0 && w.EndMinutes < MinutesPerDay
}

// Valid reports whether both bounds are inside [0,1440) and the window is
// not degenerate.
func (w TimeWindow) Valid() bool {
	return w.inBounds() && w.StartMinutes != w.EndMinutes
}

// MinuteOfDay returns the minute-of-day of t in t's location.
func MinuteOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}
