package memstore

import (
	"context"
	"sort"

	"shiftserve/internal/application"
	"shiftserve/internal/domain"
)

var _ application.ProfileRepo = (*ProfileRepo)(nil)

type ProfileRepo struct{ s *Store }

func (r *ProfileRepo) GetAccount(_ context.Context, id string) (domain.Account, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	a, ok := r.s.accounts[id]
	if !ok {
		return domain.Account{}, application.ErrNotFound
	}
	return a, nil
}

func (r *ProfileRepo) CreateAccount(ctx context.Context, a domain.Account) error {
	defer r.s.exclusive(ctx)()
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.accounts[a.ID]; ok {
		return application.ErrConflict
	}
	r.s.accounts[a.ID] = a
	return nil
}

func (r *ProfileRepo) GetWorkerProfile(_ context.Context, userID string) (domain.WorkerProfile, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.workers[userID]
	if !ok {
		return domain.WorkerProfile{}, application.ErrNotFound
	}
	return cloneWorker(p), nil
}

func (r *ProfileRepo) UpsertWorkerProfile(ctx context.Context, p domain.WorkerProfile) error {
	defer r.s.exclusive(ctx)()
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.workers[p.UserID] = cloneWorker(p)
	return nil
}

func (r *ProfileRepo) GetRestaurantProfile(_ context.Context, userID string) (domain.RestaurantProfile, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.restaurants[userID]
	if !ok {
		return domain.RestaurantProfile{}, application.ErrNotFound
	}
	return cloneRestaurant(p), nil
}

func (r *ProfileRepo) UpsertRestaurantProfile(ctx context.Context, p domain.RestaurantProfile) error {
	defer r.s.exclusive(ctx)()
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.restaurants[p.UserID] = cloneRestaurant(p)
	return nil
}

func (r *ProfileRepo) SetRestaurantLocation(ctx context.Context, userID string, loc domain.Location) error {
	defer r.s.exclusive(ctx)()
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.restaurants[userID]
	if !ok {
		return application.ErrNotFound
	}
	p.Location = &loc
	r.s.restaurants[userID] = p
	return nil
}

func (r *ProfileRepo) ListRestaurantsWithLocation(context.Context) ([]domain.RestaurantProfile, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]domain.RestaurantProfile, 0)
	for _, p := range r.s.restaurants {
		if p.Location != nil {
			out = append(out, cloneRestaurant(p))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RestaurantName < out[j].RestaurantName })
	return out, nil
}
