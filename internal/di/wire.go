//go:build wireinject
// +build wireinject

package di

import (
	"github.com/mandarab76/ATS-NSE-Stock-Suite/pkg/config"
	"github.com/mandarab76/ATS-NSE-Stock-Suite/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Observability
		ProvideLogger,
		ProvideMetrics,

		// Data source and infrastructure
		ProvideMarketSource,
		ProvideRedisClient,
		ProvideCache,
		ProvideSnapshotStore,

		// Use cases
		ProvideMarketUseCase,
		ProvideSnapshotsUseCase,

		// HTTP surface
		ProvideMarketHandler,
		ProvideRateLimiter,

		// Background capture
		ProvideSnapshotJob,
		ProvideQueue,
		ProvidePublisher,
		ProvideScheduler,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
