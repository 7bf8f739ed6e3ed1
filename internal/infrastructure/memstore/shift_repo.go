package memstore

import (
	"context"
	"fmt"
	"sort"

	"shiftserve/internal/application"
	"shiftserve/internal/domain"
)

var _ application.ShiftRepo = (*ShiftRepo)(nil)

type ShiftRepo struct{ s *Store }

func (r *ShiftRepo) Create(ctx context.Context, sh domain.Shift) error {
	defer r.s.exclusive(ctx)()
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.shifts[sh.ID]; ok {
		return fmt.Errorf("%w: shift %s exists", application.ErrConflict, sh.ID)
	}
	r.s.shifts[sh.ID] = cloneShift(sh)
	return nil
}

func (r *ShiftRepo) Get(_ context.Context, id string) (domain.Shift, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	sh, ok := r.s.shifts[id]
	if !ok {
		return domain.Shift{}, application.ErrNotFound
	}
	return cloneShift(sh), nil
}

func (r *ShiftRepo) GetForUpdate(ctx context.Context, id string) (domain.Shift, error) {
	return r.Get(ctx, id)
}

func (r *ShiftRepo) Update(ctx context.Context, sh domain.Shift) error {
	defer r.s.exclusive(ctx)()
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.shifts[sh.ID]; !ok {
		return application.ErrNotFound
	}
	r.s.shifts[sh.ID] = cloneShift(sh)
	return nil
}

func (r *ShiftRepo) Delete(ctx context.Context, id string) error {
	defer r.s.exclusive(ctx)()
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.shifts[id]; !ok {
		return application.ErrNotFound
	}
	delete(r.s.shifts, id)
	delete(r.s.messages, id)
	return nil
}

func (r *ShiftRepo) List(_ context.Context, q application.ShiftQuery) ([]domain.Shift, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]domain.Shift, 0)
	for _, sh := range r.s.shifts {
		if matches(sh, q) {
			out = append(out, cloneShift(sh))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func matches(sh domain.Shift, q application.ShiftQuery) bool {
	if q.RestaurantID != "" && sh.RestaurantID != q.RestaurantID {
		return false
	}
	if q.WorkerID != "" && !sh.InvolvesWorker(q.WorkerID) {
		return false
	}
	if len(q.Statuses) == 0 {
		return true
	}
	for _, st := range q.Statuses {
		if sh.Status == st {
			return true
		}
	}
	return false
}

func (r *ShiftRepo) SetLocation(ctx context.Context, id string, loc domain.Location) error {
	defer r.s.exclusive(ctx)()
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sh, ok := r.s.shifts[id]
	if !ok {
		return application.ErrNotFound
	}
	sh.Location = &loc
	r.s.shifts[id] = sh
	return nil
}

func (r *ShiftRepo) DeleteGenerated(ctx context.Context) (int, error) {
	defer r.s.exclusive(ctx)()
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n := 0
	for id, sh := range r.s.shifts {
		if sh.Generated {
			delete(r.s.shifts, id)
			delete(r.s.messages, id)
			n++
		}
	}
	return n, nil
}

func (r *ShiftRepo) AddMessage(ctx context.Context, m domain.ChatMessage) error {
	defer r.s.exclusive(ctx)()
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.shifts[m.ShiftID]; !ok {
		return application.ErrNotFound
	}
	r.s.messages[m.ShiftID] = append(r.s.messages[m.ShiftID], m)
	return nil
}

func (r *ShiftRepo) ListMessages(_ context.Context, shiftID string) ([]domain.ChatMessage, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return append([]domain.ChatMessage{}, r.s.messages[shiftID]...), nil
}
