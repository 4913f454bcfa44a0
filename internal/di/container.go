// Package di wires the application together with samber/do.
package di

import (
	"github.com/samber/do/v2"

	"github.com/vbonduro/gardenlog/internal/config"
)

// NewContainer creates the DI container around an already loaded config.
func NewContainer(cfg *config.Config) *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.ProvideValue(injector, cfg)
	do.Provide(injector, ProvideLogger)
	do.Provide(injector, ProvideSlogLogger)
	do.Provide(injector, ProvideValidator)

	// Storage
	do.Provide(injector, ProvideStore)

	// Services
	do.Provide(injector, ProvideCultureService)
	do.Provide(injector, ProvideJournalService)
	do.Provide(injector, ProvideStatisticsService)

	// Server
	do.Provide(injector, ProvideHTTPServer)

	return injector
}
