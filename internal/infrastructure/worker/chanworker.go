package worker

import (
	"context"
	"fmt"
	"time"

	"shiftserve/internal/application"
	"shiftserve/internal/domain"
	infraconfig "shiftserve/internal/infrastructure/config"
	"shiftserve/internal/infrastructure/logx"

	"go.uber.org/zap"
)

var _ application.Worker = (*ChanWorker)(nil)

// ChanWorker processes jobs handed over in-process, as the memory store does.
// A periodic sweep claims jobs the queue could not take and requeues stale ones.
type ChanWorker struct {
	jobs      application.GeocodeJobRepo
	processor application.GeocodeProcessor
	queue     <-chan domain.GeocodeJob

	Timeout    time.Duration
	PollEvery  time.Duration
	BatchLimit int
	StaleAfter time.Duration
}

func NewChanWorker(jobs application.GeocodeJobRepo, processor application.GeocodeProcessor, queue <-chan domain.GeocodeJob) *ChanWorker {
	return &ChanWorker{
		jobs:       jobs,
		processor:  processor,
		queue:      queue,
		Timeout:    infraconfig.DefaultJobTimeout,
		PollEvery:  infraconfig.DefaultWorkerPoll,
		BatchLimit: infraconfig.DefaultWorkerBatch,
	}
}

func (w *ChanWorker) Start(ctx context.Context) {
	log := logx.L().With(zap.String("worker", "chan"))
	if w.Timeout <= 0 {
		w.Timeout = infraconfig.DefaultJobTimeout
	}
	if w.PollEvery <= 0 {
		w.PollEvery = infraconfig.DefaultWorkerPoll
	}
	if w.BatchLimit <= 0 {
		w.BatchLimit = infraconfig.DefaultWorkerBatch
	}
	w.StaleAfter = staleAfter(w.StaleAfter, w.Timeout)

	t := time.NewTicker(w.PollEvery)
	defer t.Stop()

	log.Info("chan_worker.start")
	for {
		select {
		case <-ctx.Done():
			log.Info("chan_worker.stop")
			return
		case <-t.C:
			w.sweep(ctx, log)
		case j, ok := <-w.queue:
			if !ok {
				log.Info("chan_worker.closed")
				return
			}
			w.take(ctx, log, j)
		}
	}
}

// take claims a job received on the queue unless a sweep got to it first.
func (w *ChanWorker) take(ctx context.Context, log *zap.Logger, j domain.GeocodeJob) {
	cur, err := w.jobs.GetByID(ctx, j.ID)
	if err != nil {
		log.Warn("chan_worker.lookup_failed", zap.String("id", j.ID), zap.Error(err))
		return
	}
	if cur.Status != domain.GeocodeJobStatusQueued {
		return
	}
	if err := w.jobs.UpdateStatus(ctx, j.ID, domain.GeocodeJobStatusProcessing, nil); err != nil {
		log.Warn("chan_worker.claim_failed", zap.String("id", j.ID), zap.Error(err))
		return
	}
	w.processOne(ctx, log, j)
}

func (w *ChanWorker) sweep(ctx context.Context, log *zap.Logger) {
	requeueStale(ctx, log, w.jobs, w.StaleAfter)
	for ctx.Err() == nil {
		jobs, err := w.jobs.ClaimQueued(ctx, w.BatchLimit)
		if err != nil {
			log.Warn("chan_worker.sweep_failed", zap.Error(err))
			return
		}
		for _, j := range jobs {
			w.processOne(ctx, log, j)
		}
		if len(jobs) < w.BatchLimit {
			return
		}
	}
}

func (w *ChanWorker) processOne(ctx context.Context, log *zap.Logger, j domain.GeocodeJob) {
	defer func() {
		if r := recover(); r != nil {
			log.Warn("chan_worker.panic", zap.String("id", j.ID), zap.Any("r", r))
			msg := fmt.Sprintf("panic: %v", r)
			_ = w.jobs.UpdateStatus(context.WithoutCancel(ctx), j.ID, domain.GeocodeJobStatusFailed, &msg)
		}
	}()
	c, cancel := context.WithTimeout(ctx, w.Timeout)
	defer cancel()
	if err := w.processor.ProcessGeocodeJob(c, j); err != nil {
		log.Warn("chan_worker.failed", zap.String("id", j.ID), zap.Error(err))
		return
	}
	log.Info("chan_worker.done", zap.String("id", j.ID))
}
