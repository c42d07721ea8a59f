//go:build wireinject

package di

import (
	"github.com/google/wire"

	"github.com/Kandulanaveennaidu/CampusIQ-ERP-sub001/internal/config"
)

// Initialize wires the application components together.
func Initialize(cfg *config.Config) (*App, func(), error) {
	wire.Build(
		provideStore,
		provideCache,
		provideChannel,
		provideQueue,
		provideHub,
		provideBroker,
		provideRouter,
		provideTwilio,
		provideTransports,
		provideDispatcher,
		provideThrottler,
		provideCatalog,
		provideService,
		provideWriter,
		provideEmitter,
		provideWorker,
		provideHandlers,
		provideServer,
		newApp,
	)
	return nil, nil, nil
}
