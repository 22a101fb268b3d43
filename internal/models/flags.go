package models

import "time"

// ScheduleFlags are the manual overrides layered on top of the weekly plan.
// PauseUntil is an epoch-seconds deadline; expiry is evaluated lazily against
// "now", nothing fires when it passes.
type ScheduleFlags struct {
	ScheduleEnabled   bool   `json:"schedule_enabled"`
	ManualBlockActive bool   `json:"manual_block_active"`
	PauseUntil        *int64 `json:"pause_until,omitempty"`
}

// PauseActive reports whether a pause deadline is set and still ahead of now.
func (f *ScheduleFlags) PauseActive(now time.Time) bool {
	return f.PauseUntil != nil && now.Unix() < *f.PauseUntil
}

// SetPause sets the pause deadline.
func (f *ScheduleFlags) SetPause(until time.Time) {
	ts := until.Unix()
	f.PauseUntil = &ts
}

// ClearPause removes the pause deadline.
func (f *ScheduleFlags) ClearPause() {
	f.PauseUntil = nil
}
