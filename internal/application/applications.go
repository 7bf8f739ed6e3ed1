package application

import (
	"context"
	"errors"
	"fmt"

	"shiftserve/internal/domain"
)

// Apply records the worker's application on a published shift. The
// worker's profile name, experience and average rating are copied onto it
// so the restaurant can compare applicants.
func (s *MarketplaceService) Apply(ctx context.Context, actor Actor, shiftID string, idem *string) (_ domain.Shift, err error) {
	if actor.Type != domain.UserTypeWorker {
		return domain.Shift{}, fmt.Errorf("%w: only workers apply to shifts", ErrForbidden)
	}
	app := domain.Application{WorkerID: actor.ID, AppliedAt: s.clock.Now()}
	wp, err := s.profiles.GetWorkerProfile(ctx, actor.ID)
	switch {
	case err == nil:
		app.WorkerName = wp.Name
		exp := string(wp.Experience)
		app.WorkerExperience = &exp
	case !errors.Is(err, ErrNotFound):
		return domain.Shift{}, err
	}
	if summary, err := s.RatingSummary(ctx, actor.ID); err == nil && summary.TotalRatings > 0 {
		avg := summary.AverageRating
		app.WorkerRating = &avg
	}
	held, err := s.reserve(ctx, "shift:apply:"+shiftID+":"+actor.ID, idem)
	if err != nil {
		return domain.Shift{}, err
	}
	defer s.releaseOnError(ctx, held, &err)

	sh, err := s.mutateShift(ctx, shiftID, func(sh *domain.Shift) error {
		if sh.RestaurantID == actor.ID {
			return fmt.Errorf("%w: cannot apply to your own shift", ErrForbidden)
		}
		return sh.Apply(app)
	})
	if err != nil {
		return domain.Shift{}, err
	}
	s.emit(ctx, domain.EventApplicationCreated, sh.ID, actor.ID, map[string]any{
		"worker_id":     actor.ID,
		"worker_name":   app.WorkerName,
		"restaurant_id": sh.RestaurantID,
	})
	return sh, nil
}

// Accept assigns the worker to the shift and declines the other applicants.
func (s *MarketplaceService) Accept(ctx context.Context, actor Actor, shiftID, workerID string) (domain.Shift, error) {
	sh, err := s.mutateShift(ctx, shiftID, func(sh *domain.Shift) error {
		if err := ownShift(actor, sh); err != nil {
			return err
		}
		return sh.Accept(workerID, s.clock.Now())
	})
	if err != nil {
		return domain.Shift{}, err
	}
	s.emit(ctx, domain.EventApplicationAccepted, sh.ID, actor.ID, map[string]any{"worker_id": workerID})
	return sh, nil
}

func (s *MarketplaceService) Decline(ctx context.Context, actor Actor, shiftID, workerID string) (domain.Shift, error) {
	sh, err := s.mutateShift(ctx, shiftID, func(sh *domain.Shift) error {
		if err := ownShift(actor, sh); err != nil {
			return err
		}
		return sh.Decline(workerID, s.clock.Now())
	})
	if err != nil {
		return domain.Shift{}, err
	}
	s.emit(ctx, domain.EventApplicationDeclined, sh.ID, actor.ID, map[string]any{"worker_id": workerID})
	return sh, nil
}
