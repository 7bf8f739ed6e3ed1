package application

import (
	"context"
	"fmt"

	"shiftserve/internal/domain"
)

func (s *MarketplaceService) CompleteShift(ctx context.Context, actor Actor, id string) (domain.Shift, error) {
	sh, err := s.mutateShift(ctx, id, func(sh *domain.Shift) error {
		if err := ownShift(actor, sh); err != nil {
			return err
		}
		return sh.Complete(s.clock.Now())
	})
	if err != nil {
		return domain.Shift{}, err
	}
	s.emit(ctx, domain.EventShiftCompleted, sh.ID, actor.ID, map[string]any{"worker_id": sh.Assignment.WorkerID})
	return sh, nil
}

// Rate stores the caller's rating of the other side of a completed shift.
func (s *MarketplaceService) Rate(ctx context.Context, actor Actor, id string, rating int, comment *string) (domain.Shift, error) {
	var side domain.UserType
	sh, err := s.mutateShift(ctx, id, func(sh *domain.Shift) error {
		var ok bool
		side, ok = sh.ChatSide(actor.ID)
		if !ok || side != actor.Type {
			return fmt.Errorf("%w: only shift participants can rate", ErrForbidden)
		}
		return sh.Rate(side, rating, comment, s.clock.Now())
	})
	if err != nil {
		return domain.Shift{}, err
	}
	s.emit(ctx, domain.EventShiftRated, sh.ID, actor.ID, map[string]any{"side": string(side), "rating": rating})
	return sh, nil
}
