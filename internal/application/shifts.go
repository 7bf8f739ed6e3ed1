package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"shiftserve/internal/domain"
)

type ShiftInput struct {
	Role            string
	Date            time.Time
	StartTime       string
	EndTime         string
	HourlyRate      float64
	UrgencyLevel    domain.UrgencyLevel
	BonusPercentage *int
	Description     string
	Requirements    []string
	Lat             *float64
	Lng             *float64
	Address         string
	Publish         bool
}

// ShiftPatch carries the fields an update changes. Nil means unchanged.
type ShiftPatch struct {
	Role            *string
	Date            *time.Time
	StartTime       *string
	EndTime         *string
	HourlyRate      *float64
	UrgencyLevel    *domain.UrgencyLevel
	BonusPercentage *int
	Description     *string
	Requirements    *[]string
	Lat             *float64
	Lng             *float64
	Address         *string
}

func (s *MarketplaceService) CreateShift(ctx context.Context, actor Actor, in ShiftInput, idem *string) (_ domain.Shift, err error) {
	if actor.Type != domain.UserTypeRestaurant {
		return domain.Shift{}, fmt.Errorf("%w: only restaurants post shifts", ErrForbidden)
	}
	rp, err := s.profiles.GetRestaurantProfile(ctx, actor.ID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return domain.Shift{}, fmt.Errorf("%w: complete the restaurant profile first", ErrBadRequest)
		}
		return domain.Shift{}, err
	}
	now := s.clock.Now()
	sh := domain.Shift{
		ID:             s.idgen.New(),
		RestaurantID:   actor.ID,
		RestaurantName: rp.RestaurantName,
		Role:           strings.TrimSpace(in.Role),
		Date:           in.Date,
		StartTime:      in.StartTime,
		EndTime:        in.EndTime,
		HourlyRate:     in.HourlyRate,
		UrgencyLevel:   in.UrgencyLevel,
		Description:    in.Description,
		Requirements:   in.Requirements,
		Status:         domain.ShiftStatusDraft,
		Address:        strings.TrimSpace(in.Address),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if sh.UrgencyLevel == "" {
		sh.UrgencyLevel = domain.UrgencyLow
	}
	if in.BonusPercentage != nil {
		sh.BonusPercentage = *in.BonusPercentage
	} else {
		sh.BonusPercentage = sh.UrgencyLevel.DefaultBonus()
	}
	needsGeocode, err := resolveShiftLocation(&sh, in.Lat, in.Lng, rp.Location)
	if err != nil {
		return domain.Shift{}, err
	}
	if err := sh.Validate(); err != nil {
		return domain.Shift{}, translate(err)
	}
	if err := s.catalog.CheckRoles(sh.Role); err != nil {
		return domain.Shift{}, translate(err)
	}
	if in.Publish {
		sh.Status = domain.ShiftStatusPublished
	}

	held, err := s.reserve(ctx, "shift:create:"+actor.ID, idem)
	if err != nil {
		return domain.Shift{}, err
	}
	defer s.releaseOnError(ctx, held, &err)

	err = s.uow.Do(ctx, func(ctx context.Context) error {
		if err := s.shifts.Create(ctx, sh); err != nil {
			return err
		}
		if needsGeocode {
			_, err := s.enqueueGeocode(ctx, domain.GeocodeTargetShift, sh.ID, sh.Address)
			return err
		}
		return nil
	})
	if err != nil {
		return domain.Shift{}, err
	}
	s.emit(ctx, domain.EventShiftCreated, sh.ID, actor.ID, map[string]any{"status": string(sh.Status), "role": sh.Role})
	if sh.Published() {
		s.emit(ctx, domain.EventShiftPublished, sh.ID, actor.ID, nil)
	}
	return sh, nil
}

// resolveShiftLocation applies the location precedence: explicit
// coordinates, then a background geocode of the address, then the
// restaurant's own location. It reports whether a geocode job is needed.
func resolveShiftLocation(sh *domain.Shift, lat, lng *float64, fallback *domain.Location) (bool, error) {
	if (lat == nil) != (lng == nil) {
		return false, fmt.Errorf("%w: lat and lng must be given together", ErrBadRequest)
	}
	switch {
	case lat != nil:
		if err := domain.ValidateCoordinates(*lat, *lng); err != nil {
			return false, translate(err)
		}
		sh.Location = &domain.Location{Lat: *lat, Lng: *lng, Address: sh.Address}
		return false, nil
	case sh.Address != "":
		sh.Location = nil
		return true, nil
	case fallback != nil:
		loc := *fallback
		sh.Location = &loc
		sh.Address = loc.Address
	}
	return false, nil
}

func (s *MarketplaceService) GetShift(ctx context.Context, id string) (domain.Shift, error) {
	sh, err := s.shifts.Get(ctx, id)
	if err != nil {
		return domain.Shift{}, err
	}
	msgs, err := s.shifts.ListMessages(ctx, id)
	if err != nil {
		return domain.Shift{}, err
	}
	sh.ChatMessages = msgs
	return sh, nil
}

func ownShift(actor Actor, sh *domain.Shift) error {
	if actor.Type != domain.UserTypeRestaurant || sh.RestaurantID != actor.ID {
		return fmt.Errorf("%w: shift belongs to another restaurant", ErrForbidden)
	}
	return nil
}

func (s *MarketplaceService) UpdateShift(ctx context.Context, actor Actor, id string, p ShiftPatch) (domain.Shift, error) {
	var (
		needsGeocode bool
		sh           domain.Shift
	)
	err := s.uow.Do(ctx, func(ctx context.Context) error {
		var err error
		sh, err = s.mutateShift(ctx, id, func(sh *domain.Shift) error {
			if err := ownShift(actor, sh); err != nil {
				return err
			}
			if !sh.Editable() {
				return fmt.Errorf("%w: %s shifts cannot be edited", ErrConflict, sh.Status)
			}
			if p.Role != nil {
				sh.Role = strings.TrimSpace(*p.Role)
			}
			if p.Date != nil {
				sh.Date = *p.Date
			}
			if p.StartTime != nil {
				sh.StartTime = *p.StartTime
			}
			if p.EndTime != nil {
				sh.EndTime = *p.EndTime
			}
			if p.HourlyRate != nil {
				sh.HourlyRate = *p.HourlyRate
			}
			if p.UrgencyLevel != nil {
				sh.UrgencyLevel = *p.UrgencyLevel
			}
			if p.BonusPercentage != nil {
				sh.BonusPercentage = *p.BonusPercentage
			}
			if p.Description != nil {
				sh.Description = *p.Description
			}
			if p.Requirements != nil {
				sh.Requirements = *p.Requirements
			}
			addressChanged := p.Address != nil && strings.TrimSpace(*p.Address) != sh.Address
			if p.Address != nil {
				sh.Address = strings.TrimSpace(*p.Address)
			}
			if p.Lat != nil || p.Lng != nil || addressChanged {
				var err error
				needsGeocode, err = resolveShiftLocation(sh, p.Lat, p.Lng, nil)
				if err != nil {
					return err
				}
				if sh.Address == "" && p.Lat == nil {
					sh.Location = nil
				}
			}
			if err := sh.Validate(); err != nil {
				return err
			}
			if p.Role != nil {
				if err := s.catalog.CheckRoles(sh.Role); err != nil {
					return err
				}
			}
			sh.UpdatedAt = s.clock.Now()
			return nil
		})
		if err != nil || !needsGeocode {
			return err
		}
		_, err = s.enqueueGeocode(ctx, domain.GeocodeTargetShift, sh.ID, sh.Address)
		return err
	})
	if err != nil {
		return domain.Shift{}, err
	}
	s.emit(ctx, domain.EventShiftUpdated, sh.ID, actor.ID, nil)
	return sh, nil
}

func (s *MarketplaceService) DeleteShift(ctx context.Context, actor Actor, id string) error {
	err := s.uow.Do(ctx, func(ctx context.Context) error {
		sh, err := s.shifts.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if err := ownShift(actor, &sh); err != nil {
			return err
		}
		if !sh.Deletable() {
			return fmt.Errorf("%w: %s shifts cannot be deleted", ErrConflict, sh.Status)
		}
		return s.shifts.Delete(ctx, id)
	})
	if err != nil {
		return translate(err)
	}
	s.emit(ctx, domain.EventShiftDeleted, id, actor.ID, nil)
	return nil
}

func (s *MarketplaceService) PublishShift(ctx context.Context, actor Actor, id string) (domain.Shift, error) {
	sh, err := s.mutateShift(ctx, id, func(sh *domain.Shift) error {
		if err := ownShift(actor, sh); err != nil {
			return err
		}
		return sh.Publish(s.clock.Now())
	})
	if err != nil {
		return domain.Shift{}, err
	}
	s.emit(ctx, domain.EventShiftPublished, sh.ID, actor.ID, nil)
	return sh, nil
}

func (s *MarketplaceService) CancelShift(ctx context.Context, actor Actor, id string) (domain.Shift, error) {
	sh, err := s.mutateShift(ctx, id, func(sh *domain.Shift) error {
		if err := ownShift(actor, sh); err != nil {
			return err
		}
		return sh.Cancel(s.clock.Now())
	})
	if err != nil {
		return domain.Shift{}, err
	}
	s.emit(ctx, domain.EventShiftCancelled, sh.ID, actor.ID, map[string]any{"worker_ids": sh.WaitingWorkers()})
	return sh, nil
}

// ListRestaurantShifts returns the restaurant's own shifts, newest first.
func (s *MarketplaceService) ListRestaurantShifts(ctx context.Context, actor Actor, status *domain.ShiftStatus) ([]domain.Shift, error) {
	if actor.Type != domain.UserTypeRestaurant {
		return nil, fmt.Errorf("%w: restaurant dashboard", ErrForbidden)
	}
	q := ShiftQuery{RestaurantID: actor.ID}
	if status != nil {
		if !status.Valid() {
			return nil, fmt.Errorf("%w: unknown status %q", ErrBadRequest, *status)
		}
		q.Statuses = []domain.ShiftStatus{*status}
	}
	return s.shifts.List(ctx, q)
}

func (s *MarketplaceService) ListPublishedShifts(ctx context.Context) ([]domain.Shift, error) {
	return s.shifts.List(ctx, ShiftQuery{Statuses: []domain.ShiftStatus{domain.ShiftStatusPublished}})
}

// ListWorkerShifts returns every shift the worker applied to or holds.
func (s *MarketplaceService) ListWorkerShifts(ctx context.Context, actor Actor) ([]domain.Shift, error) {
	if actor.Type != domain.UserTypeWorker {
		return nil, fmt.Errorf("%w: worker dashboard", ErrForbidden)
	}
	return s.shifts.List(ctx, ShiftQuery{WorkerID: actor.ID})
}
