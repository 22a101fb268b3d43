package services

import (
	"blockd/internal/models"
	"blockd/internal/providers"
	"blockd/internal/store"
	"sync"

	json "github.com/goccy/go-json"

	"github.com/google/uuid"
)

type AttemptServiceInterface interface {
	LogAttempt(kind models.AttemptKind, identifier string) (*models.AttemptEvent, error)
	AttemptsToday() []models.AttemptEvent
	TopCulpritsToday(limit int) []models.Culprit
}

// AttemptService appends blocked-access attempts to the persisted log and
// serves the "today" views over it. The log only ever grows here; retention
// is external housekeeping.
type AttemptService struct {
	mu        sync.Mutex
	store     store.StoreInterface
	broadcast providers.BroadcastProviderInterface
	logger    providers.Logger
	metrics   providers.MetricsProviderInterface
	clock     Clock
}

func NewAttemptService(st store.StoreInterface, broadcast providers.BroadcastProviderInterface, logger providers.Logger, metrics providers.MetricsProviderInterface, clock Clock) AttemptServiceInterface {
	return &AttemptService{
		store:     st,
		broadcast: broadcast,
		logger:    logger,
		metrics:   metrics,
		clock:     clock,
	}
}

func (as *AttemptService) LogAttempt(kind models.AttemptKind, identifier string) (*models.AttemptEvent, error) {
	as.mu.Lock()
	defer as.mu.Unlock()

	event := models.AttemptEvent{
		ID:         uuid.New().String(),
		Timestamp:  as.clock().Unix(),
		Kind:       kind,
		Identifier: identifier,
	}

	log := as.loadLog()
	log.Append(event)

	data, err := json.Marshal(log)
	if err != nil {
		return nil, err
	}
	if err := as.store.Set(store.KeyAttemptLog, data); err != nil {
		return nil, err
	}
	as.metrics.IncAttemptsLogged(string(kind))
	as.broadcast.NotifyChanged()
	return &event, nil
}

func (as *AttemptService) AttemptsToday() []models.AttemptEvent {
	return as.loadLog().Today(as.clock())
}

func (as *AttemptService) TopCulpritsToday(limit int) []models.Culprit {
	return as.loadLog().TopCulprits(limit, as.clock())
}

func (as *AttemptService) loadLog() *models.AttemptLog {
	data, found, err := as.store.Get(store.KeyAttemptLog)
	if err != nil {
		as.logger.Errorf(providers.TypeApp, "Attempt log read failed, starting empty: %s", err)
		return models.NewAttemptLog()
	}
	if !found {
		return models.NewAttemptLog()
	}
	var log models.AttemptLog
	if err := json.Unmarshal(data, &log); err != nil {
		as.logger.Warnf(providers.TypeApp, "Corrupt attempt log, starting empty: %s", err)
		return models.NewAttemptLog()
	}
	return &log
}
