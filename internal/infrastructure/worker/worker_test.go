package worker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"shiftserve/internal/domain"
	infraconfig "shiftserve/internal/infrastructure/config"
	"shiftserve/internal/infrastructure/memstore"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type recordingProcessor struct {
	mu    sync.Mutex
	jobs  *memstore.GeocodeJobRepo
	seen  []string
	fail  map[string]bool
	panic map[string]bool
}

func (p *recordingProcessor) ProcessGeocodeJob(ctx context.Context, j domain.GeocodeJob) error {
	p.mu.Lock()
	p.seen = append(p.seen, j.ID)
	fail, boom := p.fail[j.ID], p.panic[j.ID]
	p.mu.Unlock()
	if boom {
		panic("boom")
	}
	if fail {
		msg := "no match"
		_ = p.jobs.UpdateStatus(ctx, j.ID, domain.GeocodeJobStatusFailed, &msg)
		return errors.New(msg)
	}
	return p.jobs.UpdateStatus(ctx, j.ID, domain.GeocodeJobStatusDone, nil)
}

func (p *recordingProcessor) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.seen)
}

func queue(t *testing.T, repo *memstore.GeocodeJobRepo, ids ...string) {
	t.Helper()
	for _, id := range ids {
		require.NoError(t, repo.CreateQueued(context.Background(), domain.GeocodeJob{
			ID: id, TargetKind: domain.GeocodeTargetShift, TargetID: "s-" + id, Address: "1 Main St",
		}))
	}
}

func status(t *testing.T, repo *memstore.GeocodeJobRepo, id string) domain.GeocodeJobStatus {
	t.Helper()
	j, err := repo.GetByID(context.Background(), id)
	require.NoError(t, err)
	return j.Status
}

func TestDbWorker_ProcessesQueuedJobs(t *testing.T) {
	repo := memstore.New().GeocodeJobs()
	queue(t, repo, "j1", "j2", "j3")
	p := &recordingProcessor{jobs: repo, fail: map[string]bool{"j2": true}}

	wake := make(chan struct{}, 1)
	w := &DbWorker{Jobs: repo, Processor: p, Wake: wake, PollEvery: time.Hour, BatchLimit: 2}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() { w.Start(ctx); close(done) }()

	wake <- struct{}{}
	require.Eventually(t, func() bool { return p.count() == 3 }, time.Second, 5*time.Millisecond)
	cancel()
	<-done

	require.Equal(t, domain.GeocodeJobStatusDone, status(t, repo, "j1"))
	require.Equal(t, domain.GeocodeJobStatusFailed, status(t, repo, "j2"))
	require.Equal(t, domain.GeocodeJobStatusDone, status(t, repo, "j3"))
}

func TestDbWorker_PollsOnTicker(t *testing.T) {
	repo := memstore.New().GeocodeJobs()
	p := &recordingProcessor{jobs: repo}
	w := &DbWorker{Jobs: repo, Processor: p, PollEvery: 5 * time.Millisecond}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() { w.Start(ctx); close(done) }()

	queue(t, repo, "late")
	require.Eventually(t, func() bool { return p.count() == 1 }, time.Second, 5*time.Millisecond)
	cancel()
	<-done
}

func TestChanWorker_RecoversFromPanic(t *testing.T) {
	store := memstore.New()
	repo := store.GeocodeJobs()
	p := &recordingProcessor{jobs: repo, panic: map[string]bool{"bad": true}}
	w := NewChanWorker(repo, p, repo.Queue())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() { w.Start(ctx); close(done) }()

	queue(t, repo, "bad", "good")
	require.Eventually(t, func() bool {
		return status(t, repo, "good") == domain.GeocodeJobStatusDone
	}, time.Second, 5*time.Millisecond)
	cancel()
	<-done

	j, err := repo.GetByID(context.Background(), "bad")
	require.NoError(t, err)
	require.Equal(t, domain.GeocodeJobStatusFailed, j.Status)
	require.Contains(t, *j.Error, "panic")
	require.Equal(t, 1, j.Attempts)
}

func TestChanWorker_SweepsUndeliveredJobs(t *testing.T) {
	repo := memstore.New().GeocodeJobs()
	queue(t, repo, "a", "b", "c")
	p := &recordingProcessor{jobs: repo}
	// Nothing arrives on this queue; only the sweep can find the jobs.
	w := NewChanWorker(repo, p, make(chan domain.GeocodeJob))
	w.PollEvery = 5 * time.Millisecond
	w.BatchLimit = 2

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() { w.Start(ctx); close(done) }()

	require.Eventually(t, func() bool { return p.count() == 3 }, time.Second, 5*time.Millisecond)
	cancel()
	<-done
	for _, id := range []string{"a", "b", "c"} {
		require.Equal(t, domain.GeocodeJobStatusDone, status(t, repo, id))
	}
}

func TestChanWorker_SkipsJobsAlreadyClaimed(t *testing.T) {
	repo := memstore.New().GeocodeJobs()
	queue(t, repo, "x")
	_, err := repo.ClaimQueued(context.Background(), 1)
	require.NoError(t, err)

	p := &recordingProcessor{jobs: repo}
	w := NewChanWorker(repo, p, repo.Queue())
	w.PollEvery = time.Hour
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() { w.Start(ctx); close(done) }()

	require.Eventually(t, func() bool { return len(repo.Queue()) == 0 }, time.Second, 5*time.Millisecond)
	cancel()
	<-done
	require.Zero(t, p.count())
}

func TestDbWorker_RequeuesStaleJobs(t *testing.T) {
	repo := memstore.New().GeocodeJobs()
	queue(t, repo, "stuck")
	// A crashed worker claimed it and never finished.
	_, err := repo.ClaimQueued(context.Background(), 1)
	require.NoError(t, err)

	p := &recordingProcessor{jobs: repo}
	w := &DbWorker{Jobs: repo, Processor: p, PollEvery: 5 * time.Millisecond, JobTimeout: time.Millisecond, StaleAfter: time.Millisecond}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() { w.Start(ctx); close(done) }()

	require.Eventually(t, func() bool {
		return status(t, repo, "stuck") == domain.GeocodeJobStatusDone
	}, time.Second, 5*time.Millisecond)
	cancel()
	<-done

	j, err := repo.GetByID(context.Background(), "stuck")
	require.NoError(t, err)
	require.Equal(t, 2, j.Attempts)
}

func TestStaleAfter_StaysAboveJobTimeout(t *testing.T) {
	require.Equal(t, infraconfig.DefaultStaleAfter, staleAfter(0, time.Second))
	require.Equal(t, 20*time.Second, staleAfter(time.Second, 10*time.Second))
	require.Equal(t, time.Hour, staleAfter(time.Hour, 10*time.Second))
}
