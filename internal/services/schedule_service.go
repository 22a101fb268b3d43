package services

import (
	"blockd/internal/models"
	"blockd/internal/providers"
	"blockd/internal/store"
	"sync"
	"time"

	json "github.com/goccy/go-json"
)

type ScheduleServiceInterface interface {
	ShouldBlock() bool
	GetPlan() *models.WeeklyPlan
	PutPlan(plan *models.WeeklyPlan) error
	GetFlags() *models.ScheduleFlags
	SetScheduleEnabled(enabled bool) error
	SetManualBlock(active bool) error
	SetPause(d time.Duration) (time.Time, error)
	ClearPause() error
	GetSelection() *models.Selection
	PutSelection(sel *models.Selection) error
	GetPairing() *models.Pairing
}

// Decide is the should-block decision. Precedence, first match wins: an
// active pause suppresses everything; an empty selection never blocks; a
// manual block always blocks; otherwise the weekly plan decides for the
// current weekday and minute-of-day. Pure and total, re-evaluated on demand.
//
// A window that wraps past midnight is evaluated against the weekday it is
// configured on: its morning portion runs under the defining day's enabled
// flag, not the next day's. See the tests for the pinned behavior.
func Decide(plan *models.WeeklyPlan, flags *models.ScheduleFlags, selectionEmpty bool, now time.Time) bool {
	if flags.PauseActive(now) {
		return false
	}
	if selectionEmpty {
		return false
	}
	if flags.ManualBlockActive {
		return true
	}
	if !flags.ScheduleEnabled {
		return false
	}
	day := plan.Day(now.Weekday())
	if day == nil || !day.Enabled {
		return false
	}
	return day.Active(models.MinuteOfDay(now))
}

type ScheduleService struct {
	mu        sync.Mutex
	store     store.StoreInterface
	broadcast providers.BroadcastProviderInterface
	logger    providers.Logger
	metrics   providers.MetricsProviderInterface
	clock     Clock
}

func NewScheduleService(st store.StoreInterface, broadcast providers.BroadcastProviderInterface, logger providers.Logger, metrics providers.MetricsProviderInterface, clock Clock) ScheduleServiceInterface {
	return &ScheduleService{
		store:     st,
		broadcast: broadcast,
		logger:    logger,
		metrics:   metrics,
		clock:     clock,
	}
}

func (ss *ScheduleService) ShouldBlock() bool {
	plan := ss.loadPlan()
	flags := ss.loadFlags()
	selection := ss.loadSelection()

	blocking := Decide(plan, flags, selection.Empty(), ss.clock())
	ss.metrics.IncDecisions(blocking)
	return blocking
}

func (ss *ScheduleService) GetPlan() *models.WeeklyPlan {
	return ss.loadPlan()
}

func (ss *ScheduleService) PutPlan(plan *models.WeeklyPlan) error {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	plan.Normalize()
	return ss.putBlob(store.KeyWeeklyPlan, plan)
}

func (ss *ScheduleService) GetFlags() *models.ScheduleFlags {
	return ss.loadFlags()
}

func (ss *ScheduleService) SetScheduleEnabled(enabled bool) error {
	return ss.updateFlags(func(f *models.ScheduleFlags) {
		f.ScheduleEnabled = enabled
	})
}

func (ss *ScheduleService) SetManualBlock(active bool) error {
	return ss.updateFlags(func(f *models.ScheduleFlags) {
		f.ManualBlockActive = active
	})
}

func (ss *ScheduleService) SetPause(d time.Duration) (time.Time, error) {
	until := ss.clock().Add(d)
	err := ss.updateFlags(func(f *models.ScheduleFlags) {
		f.SetPause(until)
	})
	return until, err
}

func (ss *ScheduleService) ClearPause() error {
	return ss.updateFlags(func(f *models.ScheduleFlags) {
		f.ClearPause()
	})
}

func (ss *ScheduleService) GetSelection() *models.Selection {
	return ss.loadSelection()
}

func (ss *ScheduleService) PutSelection(sel *models.Selection) error {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	if sel.Items == nil {
		sel.Items = []string{}
	}
	return ss.putBlob(store.KeySelection, sel)
}

func (ss *ScheduleService) GetPairing() *models.Pairing {
	var pairing models.Pairing
	if !ss.loadBlob(store.KeyPairing, &pairing) {
		return &models.Pairing{}
	}
	return &pairing
}

// updateFlags is a read-modify-write of the whole flags blob under the
// service lock. Cross-process writers are tolerated: each field's invariant
// is self-contained, there is no atomicity across blobs.
func (ss *ScheduleService) updateFlags(mutate func(*models.ScheduleFlags)) error {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	flags := ss.loadFlags()
	mutate(flags)
	return ss.putBlob(store.KeyScheduleFlags, flags)
}

func (ss *ScheduleService) putBlob(key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if err := ss.store.Set(key, data); err != nil {
		return err
	}
	ss.broadcast.NotifyChanged()
	return nil
}

// loadBlob reads and decodes one entity. Absence and corruption both report
// false so callers fall back to defaults; a schedule must never brick the
// decision engine over a bad blob.
func (ss *ScheduleService) loadBlob(key string, v interface{}) bool {
	data, found, err := ss.store.Get(key)
	if err != nil {
		ss.logger.Errorf(providers.TypeApp, "Store read failed for %s: %s", key, err)
		return false
	}
	if !found {
		return false
	}
	if err := json.Unmarshal(data, v); err != nil {
		ss.logger.Warnf(providers.TypeApp, "Corrupt blob for %s, using defaults: %s", key, err)
		return false
	}
	return true
}

func (ss *ScheduleService) loadPlan() *models.WeeklyPlan {
	var plan models.WeeklyPlan
	if !ss.loadBlob(store.KeyWeeklyPlan, &plan) {
		return models.NewWeeklyPlan()
	}
	plan.Normalize()
	return &plan
}

func (ss *ScheduleService) loadFlags() *models.ScheduleFlags {
	var flags models.ScheduleFlags
	if !ss.loadBlob(store.KeyScheduleFlags, &flags) {
		return &models.ScheduleFlags{}
	}
	return &flags
}

func (ss *ScheduleService) loadSelection() *models.Selection {
	var sel models.Selection
	if !ss.loadBlob(store.KeySelection, &sel) {
		return &models.Selection{}
	}
	return &sel
}
