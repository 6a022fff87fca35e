//go:build wireinject
// +build wireinject

package di

import (
	wire "github.com/google/wire"

	"tcncore/internal"
	"tcncore/internal/batch"
	"tcncore/internal/controllers"
	"tcncore/internal/keys"
	"tcncore/internal/match"
	"tcncore/internal/prefs"
	"tcncore/internal/providers"
	"tcncore/internal/reports"
	"tcncore/internal/services"
	"tcncore/internal/storage"
	"tcncore/internal/structures"
)

func InitApp(cfg *structures.CliFlags) (*internal.App, error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		providers.NewMetricsProvider,
		providers.NewInstrumentedCacheProvider,

		prefs.NewZstdCompressor,
		prefs.NewFilePreferences,
		storage.NewPostgresDB,
		storage.NewPostgresTcnStore,
		keys.NewTcnKeys,
		batch.NewTcnBatchManager,
		batch.NewScheduler,
		match.NewReportMatcher,
		reports.NewClient,
		reports.NewReportsUpdater,
		services.NewTracingService,
		controllers.NewApiController,
		controllers.NewHealthController,
		internal.InitRoutes,
		internal.NewApp,

		wire.Bind(new(providers.BatchSizer), new(*batch.TcnBatchManager)),
	)

	return nil, nil
}
