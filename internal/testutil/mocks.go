package testutil

import (
	"blockd/internal/providers"
	"errors"
	"net/http"
	"sync"
	"time"
)

// MockLogger implements providers.Logger and records calls.
type MockLogger struct {
	mu   sync.Mutex
	Logs []LogEntry
}

type LogEntry struct {
	Level  string
	Type   providers.TypeEnum
	Format string
	Args   []interface{}
}

func (m *MockLogger) record(level string, t providers.TypeEnum, format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logs = append(m.Logs, LogEntry{Level: level, Type: t, Format: format, Args: args})
}

func (m *MockLogger) Errorf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("error", t, format, args...)
}
func (m *MockLogger) Warnf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("warn", t, format, args...)
}
func (m *MockLogger) Debugf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("debug", t, format, args...)
}
func (m *MockLogger) Infof(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("info", t, format, args...)
}
func (m *MockLogger) Fatalf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("fatal", t, format, args...)
}
func (m *MockLogger) Close() {}

// MemStore implements store.StoreInterface in memory. FailReads/FailWrites
// force errors to exercise the fail-closed paths.
type MemStore struct {
	mu         sync.Mutex
	Data       map[string][]byte
	FailReads  bool
	FailWrites bool
}

func NewMemStore() *MemStore {
	return &MemStore{Data: make(map[string][]byte)}
}

func (m *MemStore) Get(key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailReads {
		return nil, false, errors.New("simulated read failure")
	}
	val, ok := m.Data[key]
	return val, ok, nil
}

func (m *MemStore) Set(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWrites {
		return errors.New("simulated write failure")
	}
	cp := make([]byte, len(value))
	copy(cp, value)
	m.Data[key] = cp
	return nil
}

func (m *MemStore) Remove(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWrites {
		return errors.New("simulated write failure")
	}
	delete(m.Data, key)
	return nil
}

// MockBroadcast implements providers.BroadcastProviderInterface and counts
// notifications.
type MockBroadcast struct {
	mu            sync.Mutex
	Notifications int
}

func (m *MockBroadcast) NotifyChanged() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Notifications++
}

func (m *MockBroadcast) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Notifications
}

func (m *MockBroadcast) Subscribers() int { return 0 }
func (m *MockBroadcast) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotImplemented)
	})
}
func (m *MockBroadcast) Close() {}

// MockMetrics implements providers.MetricsProviderInterface and counts the
// domain signals the tests care about.
type MockMetrics struct {
	mu            sync.Mutex
	Activations   int
	Deactivations int
	Rollovers     int
	Decisions     map[bool]int
	Attempts      map[string]int
}

func NewMockMetrics() *MockMetrics {
	return &MockMetrics{
		Decisions: make(map[bool]int),
		Attempts:  make(map[string]int),
	}
}

func (m *MockMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (m *MockMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (m *MockMetrics) IncCacheHits()                                    {}
func (m *MockMetrics) IncCacheMisses()                                  {}

func (m *MockMetrics) IncShieldActivations() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Activations++
}

func (m *MockMetrics) IncShieldDeactivations() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Deactivations++
}

func (m *MockMetrics) IncDayRollovers() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Rollovers++
}

func (m *MockMetrics) IncDecisions(blocking bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Decisions[blocking]++
}

func (m *MockMetrics) IncAttemptsLogged(kind string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Attempts[kind]++
}

func (m *MockMetrics) IncBroadcasts()                                          {}
func (m *MockMetrics) ObserveStoreDuration(_ string, _ time.Duration)          {}
func (m *MockMetrics) RegisterShieldGauges(_ func() float64, _ func() float64) {}

// FixedClock returns a clock function pinned to t. The pointer lets tests
// advance time between calls; the result is assignable to services.Clock.
func FixedClock(t *time.Time) func() time.Time {
	return func() time.Time { return *t }
}
