package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestScheduleFlags_PauseActive(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	f := &ScheduleFlags{}

	assert.False(t, f.PauseActive(now))

	f.SetPause(now.Add(10 * time.Minute))
	assert.True(t, f.PauseActive(now))

	// lazy expiry: nothing fires, the deadline simply passes
	assert.False(t, f.PauseActive(now.Add(11*time.Minute)))
	assert.False(t, f.PauseActive(now.Add(10*time.Minute)))
}

func TestScheduleFlags_ClearPause(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	f := &ScheduleFlags{}
	f.SetPause(now.Add(time.Hour))

	f.ClearPause()

	assert.Nil(t, f.PauseUntil)
	assert.False(t, f.PauseActive(now))
}
