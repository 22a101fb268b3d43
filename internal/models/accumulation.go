package models

import (
	"fmt"
	"math"
	"time"
)

// DayAccumulation maps a day-key (YYYY-MM-DD) to the number of seconds the
// shield was active during that calendar day. Committed totals only ever
// grow; the currently open shield interval is projected on top at read time
// and never written here until it is finalized.
type DayAccumulation struct {
	Days map[string]float64 `json:"days"`
}

func NewDayAccumulation() *DayAccumulation {
	return &DayAccumulation{Days: make(map[string]float64)}
}

// Accumulate adds seconds to the given day's bucket. Negative or NaN input
// is clamped to zero, a total never decreases.
func (a *DayAccumulation) Accumulate(day string, seconds float64) {
	if a.Days == nil {
		a.Days = make(map[string]float64)
	}
	if seconds < 0 || math.IsNaN(seconds) {
		seconds = 0
	}
	a.Days[day] += seconds
}

// Seconds returns the committed total for the given day, zero if absent.
func (a *DayAccumulation) Seconds(day string) float64 {
	return a.Days[day]
}

// DayKey returns the zero-padded YYYY-MM-DD key for t's calendar day.
// Keys compare chronologically as strings.
func DayKey(t time.Time) string {
	return fmt.Sprintf("%04d-%02d-%02d", t.Year(), int(t.Month()), t.Day())
}

// StartOfDay returns midnight of t's calendar day in t's location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
