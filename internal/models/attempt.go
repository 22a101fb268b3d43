package models

import (
	"sort"
	"time"
)

type AttemptKind string

const (
	AttemptApp      AttemptKind = "app"
	AttemptCategory AttemptKind = "category"
)

// AttemptEvent is one blocked-access attempt. Immutable once appended.
type AttemptEvent struct {
	ID         string      `json:"id"`
	Timestamp  int64       `json:"timestamp"`
	Kind       AttemptKind `json:"kind"`
	Identifier string      `json:"identifier"`
}

// AttemptLog is the append-only sequence of attempts, persisted wholesale as
// a single blob. Entries are never removed here, retention is an external
// housekeeping concern.
type AttemptLog struct {
	Events []AttemptEvent `json:"events"`
}

func NewAttemptLog() *AttemptLog {
	return &AttemptLog{Events: make([]AttemptEvent, 0)}
}

func (l *AttemptLog) Append(e AttemptEvent) {
	l.Events = append(l.Events, e)
}

// Today returns the events whose timestamp is at or after the start of now's
// calendar day.
func (l *AttemptLog) Today(now time.Time) []AttemptEvent {
	cutoff := StartOfDay(now).Unix()
	out := make([]AttemptEvent, 0)
	for _, e := range l.Events {
		if e.Timestamp >= cutoff {
			out = append(out, e)
		}
	}
	return out
}

// Culprit is one aggregated (kind, identifier) group from today's attempts.
type Culprit struct {
	Identifier string      `json:"identifier"`
	Kind       AttemptKind `json:"kind"`
	Count      int         `json:"count"`
}

// TopCulprits groups today's events by (kind, identifier), counts them and
// returns at most limit groups ordered by descending count. Ties keep
// first-seen order, so repeated calls on the same log are reproducible.
func (l *AttemptLog) TopCulprits(limit int, now time.Time) []Culprit {
	if limit <= 0 {
		return []Culprit{}
	}

	type groupKey struct {
		kind       AttemptKind
		identifier string
	}
	counts := make(map[groupKey]int)
	order := make([]groupKey, 0)
	for _, e := range l.Today(now) {
		k := groupKey{kind: e.Kind, identifier: e.Identifier}
		if _, seen := counts[k]; !seen {
			order = append(order, k)
		}
		counts[k]++
	}

	culprits := make([]Culprit, 0, len(order))
	for _, k := range order {
		culprits = append(culprits, Culprit{
			Identifier: k.identifier,
			Kind:       k.kind,
			Count:      counts[k],
		})
	}
	sort.SliceStable(culprits, func(i, j int) bool {
		return culprits[i].Count > culprits[j].Count
	})

	if len(culprits) > limit {
		culprits = culprits[:limit]
	}
	return culprits
}
