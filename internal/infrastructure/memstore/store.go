// Package memstore keeps marketplace state in process memory. It backs
// STORAGE=memory and the service tests.
package memstore

import (
	"context"
	"sync"

	"shiftserve/internal/application"
	"shiftserve/internal/domain"
)

type Store struct {
	mu          sync.RWMutex
	shifts      map[string]domain.Shift
	messages    map[string][]domain.ChatMessage
	accounts    map[string]domain.Account
	workers     map[string]domain.WorkerProfile
	restaurants map[string]domain.RestaurantProfile
	jobs        map[string]domain.GeocodeJob
	jobOrder    []string

	txMu  sync.Mutex
	queue chan domain.GeocodeJob
}

func New() *Store {
	return &Store{
		shifts:      map[string]domain.Shift{},
		messages:    map[string][]domain.ChatMessage{},
		accounts:    map[string]domain.Account{},
		workers:     map[string]domain.WorkerProfile{},
		restaurants: map[string]domain.RestaurantProfile{},
		jobs:        map[string]domain.GeocodeJob{},
		queue:       make(chan domain.GeocodeJob, 128),
	}
}

func (s *Store) Shifts() *ShiftRepo           { return &ShiftRepo{s: s} }
func (s *Store) Profiles() *ProfileRepo       { return &ProfileRepo{s: s} }
func (s *Store) GeocodeJobs() *GeocodeJobRepo { return &GeocodeJobRepo{s: s} }
func (s *Store) UnitOfWork() *UnitOfWork      { return &UnitOfWork{s: s} }

// Ping satisfies the readiness check.
func (s *Store) Ping(context.Context) error { return nil }

var _ application.UnitOfWork = (*UnitOfWork)(nil)

// UnitOfWork serialises read-modify-write sequences and rolls the store back
// when fn fails. Nested calls run inline.
type UnitOfWork struct{ s *Store }

type txKey struct{}

func (u *UnitOfWork) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(txKey{}) != nil {
		return fn(ctx)
	}
	u.s.txMu.Lock()
	defer u.s.txMu.Unlock()
	snap := u.s.snapshot()
	if err := fn(context.WithValue(ctx, txKey{}, struct{}{})); err != nil {
		u.s.restore(snap)
		return err
	}
	return nil
}

// exclusive takes the unit-of-work lock for a write made outside one, so it
// cannot land between another unit's read and its commit.
func (s *Store) exclusive(ctx context.Context) func() {
	if ctx.Value(txKey{}) != nil {
		return func() {}
	}
	s.txMu.Lock()
	return s.txMu.Unlock
}

type snapshot struct {
	shifts      map[string]domain.Shift
	messages    map[string][]domain.ChatMessage
	accounts    map[string]domain.Account
	workers     map[string]domain.WorkerProfile
	restaurants map[string]domain.RestaurantProfile
	jobs        map[string]domain.GeocodeJob
	jobOrder    []string
}

// Stored values are cloned on write and never mutated in place, so copying
// the maps is enough.
func (s *Store) snapshot() snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := snapshot{
		shifts:      make(map[string]domain.Shift, len(s.shifts)),
		messages:    make(map[string][]domain.ChatMessage, len(s.messages)),
		accounts:    make(map[string]domain.Account, len(s.accounts)),
		workers:     make(map[string]domain.WorkerProfile, len(s.workers)),
		restaurants: make(map[string]domain.RestaurantProfile, len(s.restaurants)),
		jobs:        make(map[string]domain.GeocodeJob, len(s.jobs)),
		jobOrder:    append([]string(nil), s.jobOrder...),
	}
	for k, v := range s.shifts {
		snap.shifts[k] = v
	}
	for k, v := range s.messages {
		snap.messages[k] = v[:len(v):len(v)]
	}
	for k, v := range s.accounts {
		snap.accounts[k] = v
	}
	for k, v := range s.workers {
		snap.workers[k] = v
	}
	for k, v := range s.restaurants {
		snap.restaurants[k] = v
	}
	for k, v := range s.jobs {
		snap.jobs[k] = v
	}
	return snap
}

func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shifts, s.messages, s.accounts = snap.shifts, snap.messages, snap.accounts
	s.workers, s.restaurants = snap.workers, snap.restaurants
	s.jobs, s.jobOrder = snap.jobs, snap.jobOrder
}
