package services

import (
	"blockd/internal/models"
	"blockd/internal/providers"
	"blockd/internal/store"
	"sync"
	"time"

	json "github.com/goccy/go-json"
)

type ShieldServiceInterface interface {
	Activate() error
	Deactivate() error
	FinalizeIfDayRolledOver() error
	BlockedSecondsToday() (day string, seconds float64)
	Active() bool
}

// ShieldService tracks whether the enforcement mechanism is currently on and
// turns its activation intervals into durable per-day second counters. All
// operations are idempotent: two processes observing the same transition and
// both reporting it leave the same end state.
type ShieldService struct {
	mu        sync.Mutex
	store     store.StoreInterface
	broadcast providers.BroadcastProviderInterface
	logger    providers.Logger
	metrics   providers.MetricsProviderInterface
	clock     Clock
}

func NewShieldService(st store.StoreInterface, broadcast providers.BroadcastProviderInterface, logger providers.Logger, metrics providers.MetricsProviderInterface, clock Clock) ShieldServiceInterface {
	return &ShieldService{
		store:     st,
		broadcast: broadcast,
		logger:    logger,
		metrics:   metrics,
		clock:     clock,
	}
}

// Activate records that enforcement turned on. A second activation while the
// marker is already set is a no-op and keeps the original start instant.
func (s *ShieldService) Activate() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	marker, err := s.loadMarker()
	if err != nil {
		return err
	}
	if marker != nil {
		return nil
	}

	marker = &models.ShieldMarker{CurrentBlockStart: s.clock().Unix()}
	if err := s.saveMarker(marker); err != nil {
		return err
	}
	s.metrics.IncShieldActivations()
	s.broadcast.NotifyChanged()
	return nil
}

// Deactivate records that enforcement turned off and banks the elapsed
// interval. Any pending midnight rollovers are finalized first, so after the
// split the remaining interval starts and ends on the same calendar day and
// is attributed to that day.
func (s *ShieldService) Deactivate() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	marker, err := s.loadMarker()
	if err != nil {
		return err
	}
	if marker == nil {
		return nil
	}

	now := s.clock()
	acc := s.loadAccumulation()
	s.splitRolledDays(marker, acc, now)

	start := marker.Start(now.Location())
	elapsed := now.Sub(start).Seconds()
	acc.Accumulate(models.DayKey(start), elapsed)

	// The accumulation is persisted before the marker is cleared so a failed
	// clear can be retried; an interrupted deactivate never loses seconds.
	if err := s.saveAccumulation(acc); err != nil {
		return err
	}
	if err := s.store.Remove(store.KeyShieldMarker); err != nil {
		return err
	}
	s.metrics.IncShieldDeactivations()
	s.broadcast.NotifyChanged()
	return nil
}

// FinalizeIfDayRolledOver splits a shield interval that crossed one or more
// midnights into whole-day buckets and re-anchors the still-open marker at
// the start of the current day. Calling it again in the same day is a no-op.
func (s *ShieldService) FinalizeIfDayRolledOver() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	marker, err := s.loadMarker()
	if err != nil {
		return err
	}
	if marker == nil {
		return nil
	}

	now := s.clock()
	acc := s.loadAccumulation()
	if !s.splitRolledDays(marker, acc, now) {
		return nil
	}

	if err := s.saveAccumulation(acc); err != nil {
		return err
	}
	if err := s.saveMarker(marker); err != nil {
		return err
	}
	s.broadcast.NotifyChanged()
	return nil
}

// BlockedSecondsToday returns the current day-key and the blocked seconds
// committed for it, plus the live open interval's contribution since the
// later of the marker start and today's midnight. The live part is a pure
// projection on top of the committed totals.
func (s *ShieldService) BlockedSecondsToday() (string, float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock()
	today := models.DayKey(now)

	marker, err := s.loadMarker()
	if err != nil {
		s.logger.Errorf(providers.TypeApp, "Marker read failed, reporting committed seconds only: %s", err)
		marker = nil
	}

	acc := s.loadAccumulation()
	if marker != nil && s.splitRolledDays(marker, acc, now) {
		if err := s.saveAccumulation(acc); err == nil {
			if err := s.saveMarker(marker); err != nil {
				s.logger.Errorf(providers.TypeApp, "Marker write failed after rollover: %s", err)
			} else {
				s.broadcast.NotifyChanged()
			}
		} else {
			s.logger.Errorf(providers.TypeApp, "Accumulation write failed after rollover: %s", err)
		}
	}

	total := acc.Seconds(today)
	if marker != nil {
		liveStart := marker.Start(now.Location())
		if startOfToday := models.StartOfDay(now); liveStart.Before(startOfToday) {
			liveStart = startOfToday
		}
		if live := now.Sub(liveStart).Seconds(); live > 0 {
			total += live
		}
	}
	return today, total
}

func (s *ShieldService) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	marker, err := s.loadMarker()
	return err == nil && marker != nil
}

// splitRolledDays moves every completed calendar day of the open interval
// into the accumulation and advances the marker to the following midnight,
// until the marker's day equals now's day. Returns whether anything moved.
// The per-day pieces always sum to the exact interval duration.
func (s *ShieldService) splitRolledDays(marker *models.ShieldMarker, acc *models.DayAccumulation, now time.Time) bool {
	rolled := false
	today := models.DayKey(now)
	for {
		start := marker.Start(now.Location())
		if models.DayKey(start) >= today {
			return rolled
		}
		nextMidnight := models.StartOfDay(start).AddDate(0, 0, 1)
		acc.Accumulate(models.DayKey(start), nextMidnight.Sub(start).Seconds())
		marker.CurrentBlockStart = nextMidnight.Unix()
		s.metrics.IncDayRollovers()
		rolled = true
	}
}

// loadMarker returns nil with no error when the marker is absent, and treats
// a corrupt blob as absent.
func (s *ShieldService) loadMarker() (*models.ShieldMarker, error) {
	data, found, err := s.store.Get(store.KeyShieldMarker)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	var marker models.ShieldMarker
	if err := json.Unmarshal(data, &marker); err != nil {
		s.logger.Warnf(providers.TypeApp, "Corrupt shield marker, treating as inactive: %s", err)
		return nil, nil
	}
	return &marker, nil
}

func (s *ShieldService) saveMarker(marker *models.ShieldMarker) error {
	data, err := json.Marshal(marker)
	if err != nil {
		return err
	}
	return s.store.Set(store.KeyShieldMarker, data)
}

func (s *ShieldService) loadAccumulation() *models.DayAccumulation {
	data, found, err := s.store.Get(store.KeyDayAccumulation)
	if err != nil {
		s.logger.Errorf(providers.TypeApp, "Accumulation read failed, starting empty: %s", err)
		return models.NewDayAccumulation()
	}
	if !found {
		return models.NewDayAccumulation()
	}
	var acc models.DayAccumulation
	if err := json.Unmarshal(data, &acc); err != nil {
		s.logger.Warnf(providers.TypeApp, "Corrupt accumulation blob, starting empty: %s", err)
		return models.NewDayAccumulation()
	}
	if acc.Days == nil {
		acc.Days = make(map[string]float64)
	}
	return &acc
}

func (s *ShieldService) saveAccumulation(acc *models.DayAccumulation) error {
	data, err := json.Marshal(acc)
	if err != nil {
		return err
	}
	return s.store.Set(store.KeyDayAccumulation, data)
}
