package worker

import (
	"context"
	"time"

	"shiftserve/internal/application"
	infraconfig "shiftserve/internal/infrastructure/config"

	"go.uber.org/zap"
)

var _ application.Worker = (*DbWorker)(nil)

// DbWorker claims queued geocode jobs on every tick and whenever Wake fires.
type DbWorker struct {
	Jobs      application.GeocodeJobRepo
	Processor application.GeocodeProcessor
	// Wake is optional; a Postgres LISTEN feeds it so new jobs skip the poll delay.
	Wake <-chan struct{}

	PollEvery  time.Duration
	BatchLimit int
	JobTimeout time.Duration
	// StaleAfter requeues processing jobs a crashed worker left behind. It is
	// kept above JobTimeout so a live job is never handed out twice.
	StaleAfter time.Duration
	Log        *zap.Logger
}

func (w *DbWorker) Start(ctx context.Context) {
	log := w.Log
	if log == nil {
		log = zap.NewNop()
	}
	if w.PollEvery <= 0 {
		w.PollEvery = infraconfig.DefaultWorkerPoll
	}
	if w.BatchLimit <= 0 {
		w.BatchLimit = infraconfig.DefaultWorkerBatch
	}
	if w.JobTimeout <= 0 {
		w.JobTimeout = infraconfig.DefaultJobTimeout
	}
	w.StaleAfter = staleAfter(w.StaleAfter, w.JobTimeout)

	t := time.NewTicker(w.PollEvery)
	defer t.Stop()

	log.Info("db_worker_started", zap.Duration("poll_every", w.PollEvery), zap.Int("batch_limit", w.BatchLimit))
	for {
		select {
		case <-ctx.Done():
			log.Info("db_worker_stopped")
			return
		case <-t.C:
			requeueStale(ctx, log, w.Jobs, w.StaleAfter)
			w.drain(ctx, log)
		case <-w.Wake:
			w.drain(ctx, log)
		}
	}
}

// drain keeps claiming until a batch comes back short.
func (w *DbWorker) drain(ctx context.Context, log *zap.Logger) {
	for ctx.Err() == nil {
		jobs, err := w.Jobs.ClaimQueued(ctx, w.BatchLimit)
		if err != nil {
			log.Warn("claim_failed", zap.Error(err))
			return
		}
		for _, j := range jobs {
			c, cancel := context.WithTimeout(ctx, w.JobTimeout)
			if err := w.Processor.ProcessGeocodeJob(c, j); err != nil {
				log.Warn("geocode_failed", zap.String("id", j.ID), zap.String("target", string(j.TargetKind)), zap.Error(err))
			} else {
				log.Info("geocode_done", zap.String("id", j.ID), zap.String("target", string(j.TargetKind)))
			}
			cancel()
		}
		if len(jobs) < w.BatchLimit {
			return
		}
	}
}

func staleAfter(d, jobTimeout time.Duration) time.Duration {
	if d <= 0 {
		d = infraconfig.DefaultStaleAfter
	}
	if floor := 2 * jobTimeout; d < floor {
		d = floor
	}
	return d
}

func requeueStale(ctx context.Context, log *zap.Logger, jobs application.GeocodeJobRepo, olderThan time.Duration) {
	n, err := jobs.RequeueStale(ctx, olderThan)
	if err != nil {
		log.Warn("requeue_stale_failed", zap.Error(err))
		return
	}
	if n > 0 {
		log.Info("requeued_stale", zap.Int("jobs", n))
	}
}
