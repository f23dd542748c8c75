//go:build wireinject
// +build wireinject

package di

import (
	"covidash/pkg/config"
	"covidash/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Observability
		ProvideErrorCollector,
		ProvideLogger,
		ProvideMetrics,

		// Infrastructure
		ProvideCache,
		ProvideStatsSource,
		ProvideRateLimiter,

		// Use cases
		ProvideDashboard,

		// Transport
		ProvideLiveHub,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
