package shield

import (
	"blockd/internal/providers"
	"blockd/internal/services"
	"blockd/internal/shield/interfaces"
	"blockd/internal/structures"
	"sync"

	"github.com/roylee0704/gron"
)

// Checker is the periodic caller the engine itself never spawns: on every
// tick it finalizes any pending midnight rollover so per-day totals stay
// split correctly even while the shield stays on for days. The engine's
// operations remain pure functions of an externally supplied "now".
type Checker struct {
	config  *structures.Config
	logger  providers.Logger
	shield  services.ShieldServiceInterface
	metrics providers.MetricsProviderInterface
	cron    *gron.Cron
	opsMu   sync.Mutex
}

func (c *Checker) Init() {
	c.metrics.RegisterShieldGauges(
		func() float64 {
			if c.shield.Active() {
				return 1
			}
			return 0
		},
		func() float64 {
			_, seconds := c.shield.BlockedSecondsToday()
			return seconds
		},
	)

	c.cron = gron.New()
	c.cron.AddFunc(gron.Every(c.config.Shield.CheckInterval), func() {
		c.opsMu.Lock()
		defer c.opsMu.Unlock()

		if err := c.shield.FinalizeIfDayRolledOver(); err != nil {
			c.logger.Errorf(providers.TypeApp, "Rollover check failed: %s", err)
		}
	})
	c.cron.Start()
}

func (c *Checker) Stop() {
	if c.cron != nil {
		c.cron.Stop()
	}
}

// Restore runs one rollover pass at boot so a shield left active across a
// process death is split before the first read.
func (c *Checker) Restore() error {
	c.opsMu.Lock()
	defer c.opsMu.Unlock()

	return c.shield.FinalizeIfDayRolledOver()
}

// Persist runs a final rollover pass at shutdown. The store writes through
// on every mutation, so there is nothing else to flush.
func (c *Checker) Persist() error {
	c.opsMu.Lock()
	defer c.opsMu.Unlock()

	if err := c.shield.FinalizeIfDayRolledOver(); err != nil {
		c.logger.Errorf(providers.TypeApp, "Final rollover check failed: %s", err)
		return err
	}
	return nil
}

func NewChecker(config *structures.Config, logger providers.Logger, shield services.ShieldServiceInterface, metrics providers.MetricsProviderInterface) interfaces.CheckerInterface {
	return &Checker{
		config:  config,
		logger:  logger,
		shield:  shield,
		metrics: metrics,
	}
}
