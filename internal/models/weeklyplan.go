package models

import "time"

// WeeklyDay holds one weekday's schedule: an on/off switch plus the windows
// during which blocking applies. Window order is display order only, all
// windows are OR-ed for containment.
type WeeklyDay struct {
	Weekday time.Weekday `json:"weekday"`
	Enabled bool         `json:"enabled"`
	Ranges  []TimeWindow `json:"ranges"`
}

// Active reports whether any of the day's windows contains the given
// minute-of-day. The enabled flag is not consulted here, callers combine it
// with the schedule-level decision.
func (d *WeeklyDay) Active(minuteOfDay int) bool {
	for _, w := range d.Ranges {
		if w.Contains(minuteOfDay) {
			return true
		}
	}
	return false
}

// WeeklyPlan is the full recurring schedule, exactly one WeeklyDay per
// weekday in Sunday..Saturday order. Persisted wholesale as a single blob.
type WeeklyPlan struct {
	Days []WeeklyDay `json:"days"`
}

// NewWeeklyPlan returns the default plan: every day disabled, each carrying
// one 21:00-07:00 window ready to be switched on.
func NewWeeklyPlan() *WeeklyPlan {
	p := &WeeklyPlan{Days: make([]WeeklyDay, 7)}
	for i := range p.Days {
		p.Days[i] = WeeklyDay{
			Weekday: time.Weekday(i),
			Enabled: false,
			Ranges: []TimeWindow{
				{StartMinutes: DefaultWindowStart, EndMinutes: DefaultWindowEnd},
			},
		}
	}
	return p
}

// Day returns the entry for the given weekday.
func (p *WeeklyPlan) Day(wd time.Weekday) *WeeklyDay {
	for i := range p.Days {
		if p.Days[i].Weekday == wd {
			return &p.Days[i]
		}
	}
	return nil
}

// Normalize rebuilds the plan so it holds exactly one entry per weekday in
// Sunday..Saturday order. Duplicates keep the first occurrence, missing days
// are filled from the defaults, out-of-range windows are dropped. Degenerate
// windows (start == end) are kept: they are inert for containment but remain
// user-visible configuration.
func (p *WeeklyPlan) Normalize() {
	def := NewWeeklyPlan()
	days := make([]WeeklyDay, 7)
	seen := [7]bool{}
	copy(days, def.Days)
	for _, d := range p.Days {
		idx := int(d.Weekday)
		if idx < 0 || idx > 6 || seen[idx] {
			continue
		}
		seen[idx] = true
		ranges := make([]TimeWindow, 0, len(d.Ranges))
		for _, w := range d.Ranges {
			if !w.inBounds() {
				continue
			}
			ranges = append(ranges, w)
		}
		days[idx] = WeeklyDay{Weekday: d.Weekday, Enabled: d.Enabled, Ranges: ranges}
	}
	p.Days = days
}
