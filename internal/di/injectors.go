//go:build wireinject
// +build wireinject

package di

import (
	"blockd/internal"
	"blockd/internal/controllers"
	"blockd/internal/providers"
	"blockd/internal/services"
	"blockd/internal/shield"
	"blockd/internal/store"
	"blockd/internal/structures"

	wire "github.com/google/wire"
)

func InitApp(cfg *structures.CliFlags) (*internal.App, error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		providers.NewMetricsProvider,
		providers.NewInstrumentedCacheProvider,
		providers.NewBroadcastHub,

		store.NewZstdCompressor,
		store.NewFileStore,

		services.NewSystemClock,
		services.NewScheduleService,
		services.NewShieldService,
		services.NewAttemptService,

		shield.NewChecker,
		controllers.NewApiController,
		controllers.NewHealthController,
		internal.InitRoutes,
		internal.NewApp,
	)

	return nil, nil
}
