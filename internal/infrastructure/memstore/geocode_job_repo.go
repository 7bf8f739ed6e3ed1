package memstore

import (
	"context"
	"time"

	"shiftserve/internal/application"
	"shiftserve/internal/domain"
	"shiftserve/internal/infrastructure/logx"

	"go.uber.org/zap"
)

var _ application.GeocodeJobRepo = (*GeocodeJobRepo)(nil)

type GeocodeJobRepo struct{ s *Store }

// CreateQueued stores the job and offers it on the in-process queue. When the
// queue is full the job stays queued until a worker sweep claims it.
func (r *GeocodeJobRepo) CreateQueued(ctx context.Context, job domain.GeocodeJob) error {
	defer r.s.exclusive(ctx)()
	r.s.mu.Lock()
	if _, ok := r.s.jobs[job.ID]; ok {
		r.s.mu.Unlock()
		return application.ErrConflict
	}
	job.Status = domain.GeocodeJobStatusQueued
	r.s.jobs[job.ID] = job
	r.s.jobOrder = append(r.s.jobOrder, job.ID)
	r.s.mu.Unlock()

	select {
	case r.s.queue <- job:
	default:
		logx.L().Warn("memstore.queue_full", zap.String("job_id", job.ID))
	}
	return nil
}

// Queue streams newly created jobs.
func (r *GeocodeJobRepo) Queue() <-chan domain.GeocodeJob { return r.s.queue }

func (r *GeocodeJobRepo) GetByID(_ context.Context, id string) (domain.GeocodeJob, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	j, ok := r.s.jobs[id]
	if !ok {
		return domain.GeocodeJob{}, application.ErrNotFound
	}
	return j, nil
}

func (r *GeocodeJobRepo) UpdateStatus(ctx context.Context, id string, st domain.GeocodeJobStatus, errMsg *string) error {
	defer r.s.exclusive(ctx)()
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	j, ok := r.s.jobs[id]
	if !ok {
		return application.ErrNotFound
	}
	if st == domain.GeocodeJobStatusProcessing {
		j.Attempts++
	}
	j.Status, j.Error, j.UpdatedAt = st, errMsg, time.Now().UTC()
	r.s.jobs[id] = j
	return nil
}

// ClaimQueued hands out queued jobs oldest first and marks them processing.
func (r *GeocodeJobRepo) ClaimQueued(ctx context.Context, limit int) ([]domain.GeocodeJob, error) {
	defer r.s.exclusive(ctx)()
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []domain.GeocodeJob
	for _, id := range r.s.jobOrder {
		j := r.s.jobs[id]
		if j.Status != domain.GeocodeJobStatusQueued {
			continue
		}
		j.Status = domain.GeocodeJobStatusProcessing
		j.Attempts++
		j.UpdatedAt = time.Now().UTC()
		r.s.jobs[id] = j
		out = append(out, j)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

func (r *GeocodeJobRepo) RequeueStale(ctx context.Context, olderThan time.Duration) (int, error) {
	defer r.s.exclusive(ctx)()
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cutoff := time.Now().UTC().Add(-olderThan)
	n := 0
	for id, j := range r.s.jobs {
		if j.Status == domain.GeocodeJobStatusProcessing && j.UpdatedAt.Before(cutoff) {
			j.Status, j.UpdatedAt = domain.GeocodeJobStatusQueued, time.Now().UTC()
			r.s.jobs[id] = j
			n++
		}
	}
	return n, nil
}
