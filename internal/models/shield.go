package models

import "time"

// ShieldMarker records that the enforcement mechanism is currently active.
// The marker is present in the store if and only if the shield is on; its
// absence is represented by a missing key, not a zero value.
type ShieldMarker struct {
	CurrentBlockStart int64 `json:"current_block_start"`
}

// Start returns the marker's start instant in the given location.
func (m *ShieldMarker) Start(loc *time.Location) time.Time {
	return time.Unix(m.CurrentBlockStart, 0).In(loc)
}
