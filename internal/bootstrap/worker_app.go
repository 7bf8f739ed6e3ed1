package bootstrap

import (
	"context"
	"fmt"

	"shiftserve/internal/config"
	"shiftserve/internal/infrastructure/grpc/geoserver"
)

type WorkerApp func(ctx context.Context) error

// InitWorkerApp picks the worker flavour from WORKER_TYPE: "db" drains
// geocode jobs from Postgres, "grpc" serves geocoding to API replicas.
func InitWorkerApp(ctx context.Context, cfg config.Config) (WorkerApp, func(), error) {
	switch cfg.WorkerType {
	case "grpc":
		srv, cleanup, err := InitGeoServer(ctx)
		if err != nil {
			return nil, nil, fmt.Errorf("init geocode server: %w", err)
		}
		run := func(ctx context.Context) error {
			return geoserver.RunServer(ctx, cfg.GRPCAddr, srv, srv.Log)
		}
		return run, cleanup, nil

	case "", "db":
		w, cleanup, err := InitDBWorker(ctx)
		if err != nil {
			return nil, nil, fmt.Errorf("init db worker: %w", err)
		}
		run := func(ctx context.Context) error {
			w.Start(ctx)
			return nil
		}
		return run, cleanup, nil

	default:
		return nil, nil, fmt.Errorf("unsupported WORKER_TYPE=%q", cfg.WorkerType)
	}
}
