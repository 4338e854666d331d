//go:build wireinject
// +build wireinject

package di

import (
	"FXLens/pkg/config"
	"FXLens/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Ambient
		ProvideLogger,
		ProvideMetrics,

		// Infrastructure clients
		ProvideClickHouseClient,
		ProvideKafkaProducer,
		ProvideCache,

		// Providers
		ProvidePolicyProvider,
		ProvideSpotProvider,

		// Repositories
		ProvideSnapshotStore,
		ProvideSnapshotPublisher,

		// Use cases
		ProvideAssembler,
		ProvideHub,
		ProvideRefresher,

		// HTTP surface
		ProvideHTTPHandler,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
