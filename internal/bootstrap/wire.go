//go:build wireinject

package bootstrap

import (
	"context"

	"shiftserve/internal/infrastructure/grpc/geoserver"
	"shiftserve/internal/infrastructure/worker"

	"github.com/google/wire"
)

var infraSet = wire.NewSet(
	ProvideLogger,
	ProvideConfig,
	ProvideStorage,
	ProvideRedisClient,
	ProvideGeocoder,
)

// InitAPI builds the HTTP process.
func InitAPI(ctx context.Context) (*API, func(), error) {
	wire.Build(
		infraSet,
		ProvideIdempotency,
		ProvideCatalog,
		ProvideHub,
		ProvideEvents,
		ProvideMarketplaceService,
		ProvideHTTPServer,
		ProvideAPI,
	)
	return nil, nil, nil
}

// InitDBWorker builds the worker draining geocode_jobs.
func InitDBWorker(ctx context.Context) (*worker.DbWorker, func(), error) {
	wire.Build(
		infraSet,
		ProvideJobService,
		ProvideDBWorker,
	)
	return nil, nil, nil
}

// InitGeoServer builds the gRPC geocoding server.
func InitGeoServer(ctx context.Context) (*geoserver.Server, func(), error) {
	wire.Build(
		ProvideLogger,
		ProvideConfig,
		ProvideRedisClient,
		ProvideGeoServer,
	)
	return nil, nil, nil
}
