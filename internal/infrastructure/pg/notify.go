package pg

import (
	"context"
	"time"

	infraconfig "shiftserve/internal/infrastructure/config"
	"shiftserve/internal/infrastructure/logx"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

// GeocodeJobsChannel is the NOTIFY channel fired by the geocode_jobs insert trigger.
const GeocodeJobsChannel = "geocode_jobs"

// Listen forwards notifications on channel to the returned wake channel
// until ctx is done. Bursts collapse into a single pending wake-up.
func Listen(ctx context.Context, dsn, channel string) (<-chan struct{}, error) {
	log := logx.L().With(zap.String("channel", channel))
	l := pq.NewListener(dsn, infraconfig.DefaultListenerMinWait, infraconfig.DefaultListenerMaxWait,
		func(ev pq.ListenerEventType, err error) {
			if err != nil {
				log.Warn("pg_listener_event", zap.Int("event", int(ev)), zap.Error(err))
			}
		})
	if err := l.Listen(channel); err != nil {
		_ = l.Close()
		return nil, err
	}
	wake := make(chan struct{}, 1)
	go func() {
		defer l.Close()
		ping := time.NewTicker(90 * time.Second)
		defer ping.Stop()
		log.Info("pg_listener_started")
		for {
			select {
			case <-ctx.Done():
				log.Info("pg_listener_stopped")
				return
			case n := <-l.Notify:
				// nil after a reconnect; wake anyway so nothing queued meanwhile is missed
				if n != nil {
					log.Debug("pg_notify", zap.String("payload", n.Extra))
				}
				select {
				case wake <- struct{}{}:
				default:
				}
			case <-ping.C:
				if err := l.Ping(); err != nil {
					log.Warn("pg_listener_ping_failed", zap.Error(err))
				}
			}
		}
	}()
	return wake, nil
}
