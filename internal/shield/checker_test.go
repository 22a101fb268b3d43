package shield

import (
	"errors"
	"testing"
	"time"

	"blockd/internal/structures"
	"blockd/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeShield struct {
	active    bool
	day       string
	seconds   float64
	finalizes int
	failNext  bool
}

func (f *fakeShield) Activate() error   { return nil }
func (f *fakeShield) Deactivate() error { return nil }
func (f *fakeShield) FinalizeIfDayRolledOver() error {
	f.finalizes++
	if f.failNext {
		f.failNext = false
		return errors.New("store unavailable")
	}
	return nil
}
func (f *fakeShield) BlockedSecondsToday() (string, float64) { return f.day, f.seconds }
func (f *fakeShield) Active() bool                           { return f.active }

type gaugeMetrics struct {
	*testutil.MockMetrics
	activeGauge  func() float64
	secondsGauge func() float64
}

func (g *gaugeMetrics) RegisterShieldGauges(active func() float64, seconds func() float64) {
	g.activeGauge = active
	g.secondsGauge = seconds
}

func checkerConfig() *structures.Config {
	return &structures.Config{Shield: structures.ShieldConfig{CheckInterval: time.Hour}}
}

func TestChecker_RestoreRunsRolloverPass(t *testing.T) {
	shield := &fakeShield{}
	checker := NewChecker(checkerConfig(), &testutil.MockLogger{}, shield, testutil.NewMockMetrics())

	require.NoError(t, checker.Restore())
	assert.Equal(t, 1, shield.finalizes)
}

func TestChecker_RestorePropagatesError(t *testing.T) {
	shield := &fakeShield{failNext: true}
	checker := NewChecker(checkerConfig(), &testutil.MockLogger{}, shield, testutil.NewMockMetrics())

	assert.Error(t, checker.Restore())
}

func TestChecker_PersistRunsFinalPass(t *testing.T) {
	shield := &fakeShield{}
	logger := &testutil.MockLogger{}
	checker := NewChecker(checkerConfig(), logger, shield, testutil.NewMockMetrics())

	require.NoError(t, checker.Persist())
	assert.Equal(t, 1, shield.finalizes)
	assert.Empty(t, logger.Logs)
}

func TestChecker_PersistLogsAndReturnsError(t *testing.T) {
	shield := &fakeShield{failNext: true}
	logger := &testutil.MockLogger{}
	checker := NewChecker(checkerConfig(), logger, shield, testutil.NewMockMetrics())

	assert.Error(t, checker.Persist())
	require.Len(t, logger.Logs, 1)
	assert.Equal(t, "error", logger.Logs[0].Level)
}

func TestChecker_InitRegistersGauges(t *testing.T) {
	shield := &fakeShield{active: true, day: "2026-09-01", seconds: 5400}
	metrics := &gaugeMetrics{MockMetrics: testutil.NewMockMetrics()}
	checker := NewChecker(checkerConfig(), &testutil.MockLogger{}, shield, metrics)

	checker.Init()
	defer checker.Stop()

	require.NotNil(t, metrics.activeGauge)
	require.NotNil(t, metrics.secondsGauge)
	assert.Equal(t, float64(1), metrics.activeGauge())
	assert.Equal(t, float64(5400), metrics.secondsGauge())

	shield.active = false
	assert.Equal(t, float64(0), metrics.activeGauge())
}

func TestChecker_StopWithoutInit(t *testing.T) {
	checker := NewChecker(checkerConfig(), &testutil.MockLogger{}, &fakeShield{}, testutil.NewMockMetrics())
	checker.Stop()
}
