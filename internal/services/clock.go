package services

import "time"

// Clock supplies "now". It is injected everywhere a decision depends on the
// current time, so tests run against a fixed instant and nothing in the
// engine ever schedules its own timer.
type Clock func() time.Time

func NewSystemClock() Clock {
	return time.Now
}
