package bootstrap

import (
	"context"
	"errors"
	"net/http"

	"shiftserve/internal/application"
	infraconfig "shiftserve/internal/infrastructure/config"
	"shiftserve/internal/infrastructure/realtime"
	redisstore "shiftserve/internal/infrastructure/redis"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// API is the HTTP process with the background loops it owns.
type API struct {
	HTTP *http.Server

	hub    *realtime.Hub
	relay  *redisstore.Relay
	worker application.Worker
	log    *zap.Logger
}

// Run serves until ctx is cancelled or one of the loops fails.
func (a *API) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.log.Info("server_started", zap.String("addr", a.HTTP.Addr))
		if err := a.HTTP.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shCtx, cancel := context.WithTimeout(context.Background(), infraconfig.DefaultShutdownTimeout)
		defer cancel()
		err := a.HTTP.Shutdown(shCtx)
		a.log.Info("server_stopped")
		return err
	})
	if a.relay != nil {
		g.Go(func() error { return a.relay.Run(ctx, a.hub.Broadcast) })
	}
	if a.worker != nil {
		g.Go(func() error {
			a.worker.Start(ctx)
			return nil
		})
	}
	return g.Wait()
}
