package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func attemptAt(ts time.Time, kind AttemptKind, id string) AttemptEvent {
	return AttemptEvent{Timestamp: ts.Unix(), Kind: kind, Identifier: id}
}

func TestAttemptLog_Today(t *testing.T) {
	now := time.Date(2025, 3, 11, 12, 0, 0, 0, time.UTC)
	l := NewAttemptLog()
	l.Append(attemptAt(now.Add(-1*time.Hour), AttemptApp, "a"))
	l.Append(attemptAt(now.Add(-13*time.Hour), AttemptApp, "b")) // yesterday 23:00
	l.Append(attemptAt(StartOfDay(now), AttemptCategory, "c"))   // exactly midnight

	today := l.Today(now)

	require.Len(t, today, 2)
	assert.Equal(t, "a", today[0].Identifier)
	assert.Equal(t, "c", today[1].Identifier)
}

func TestAttemptLog_TodayBoundary(t *testing.T) {
	dayD := time.Date(2025, 3, 10, 23, 59, 59, 0, time.UTC)
	l := NewAttemptLog()
	l.Append(attemptAt(dayD, AttemptApp, "late"))

	assert.Len(t, l.Today(dayD), 1)

	// once now crosses into D+1 the event is excluded
	nextDay := dayD.Add(2 * time.Second)
	assert.Len(t, l.Today(nextDay), 0)
}

func TestAttemptLog_TopCulprits(t *testing.T) {
	now := time.Date(2025, 3, 11, 12, 0, 0, 0, time.UTC)
	l := NewAttemptLog()
	for i := 0; i < 3; i++ {
		l.Append(attemptAt(now, AttemptApp, "appA"))
	}
	for i := 0; i < 3; i++ {
		l.Append(attemptAt(now, AttemptApp, "appB"))
	}
	l.Append(attemptAt(now, AttemptCategory, "catC"))

	top := l.TopCulprits(2, now)

	require.Len(t, top, 2)
	assert.Equal(t, "appA", top[0].Identifier) // tie broken by first-seen order
	assert.Equal(t, 3, top[0].Count)
	assert.Equal(t, "appB", top[1].Identifier)
	assert.Equal(t, 3, top[1].Count)

	// reproducible on repeated calls
	assert.Equal(t, top, l.TopCulprits(2, now))
}

func TestAttemptLog_TopCulpritsSeparatesKinds(t *testing.T) {
	now := time.Date(2025, 3, 11, 12, 0, 0, 0, time.UTC)
	l := NewAttemptLog()
	l.Append(attemptAt(now, AttemptApp, "x"))
	l.Append(attemptAt(now, AttemptCategory, "x"))
	l.Append(attemptAt(now, AttemptCategory, "x"))

	top := l.TopCulprits(10, now)

	require.Len(t, top, 2)
	assert.Equal(t, AttemptCategory, top[0].Kind)
	assert.Equal(t, 2, top[0].Count)
	assert.Equal(t, AttemptApp, top[1].Kind)
	assert.Equal(t, 1, top[1].Count)
}

func TestAttemptLog_TopCulpritsIgnoresYesterday(t *testing.T) {
	now := time.Date(2025, 3, 11, 12, 0, 0, 0, time.UTC)
	l := NewAttemptLog()
	l.Append(attemptAt(now.Add(-24*time.Hour), AttemptApp, "old"))
	l.Append(attemptAt(now, AttemptApp, "fresh"))

	top := l.TopCulprits(5, now)

	require.Len(t, top, 1)
	assert.Equal(t, "fresh", top[0].Identifier)
}

func TestAttemptLog_TopCulpritsZeroLimit(t *testing.T) {
	now := time.Date(2025, 3, 11, 12, 0, 0, 0, time.UTC)
	l := NewAttemptLog()
	l.Append(attemptAt(now, AttemptApp, "x"))

	assert.Empty(t, l.TopCulprits(0, now))
}
