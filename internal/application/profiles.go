package application

import (
	"context"
	"errors"
	"fmt"

	"shiftserve/internal/domain"
)

// Me is the caller's account with whichever profile they have filled in.
type Me struct {
	Account    domain.Account
	Worker     *domain.WorkerProfile
	Restaurant *domain.RestaurantProfile
}

func (s *MarketplaceService) GetAccount(ctx context.Context, userID string) (domain.Account, error) {
	return s.profiles.GetAccount(ctx, userID)
}

// SetAccountType records the side a user signed up for. The type is fixed
// once chosen; repeating the same choice is a no-op.
func (s *MarketplaceService) SetAccountType(ctx context.Context, userID string, t domain.UserType) (domain.Account, error) {
	if userID == "" {
		return domain.Account{}, fmt.Errorf("%w: missing user id", ErrBadRequest)
	}
	if !t.Valid() {
		return domain.Account{}, fmt.Errorf("%w: unknown user type %q", ErrBadRequest, t)
	}
	acc, err := s.profiles.GetAccount(ctx, userID)
	switch {
	case err == nil:
		if acc.UserType != t {
			return domain.Account{}, fmt.Errorf("%w: account is already a %s", ErrConflict, acc.UserType)
		}
		return acc, nil
	case !errors.Is(err, ErrNotFound):
		return domain.Account{}, err
	}
	acc = domain.Account{ID: userID, UserType: t, CreatedAt: s.clock.Now()}
	if err := s.profiles.CreateAccount(ctx, acc); err != nil {
		return domain.Account{}, err
	}
	return acc, nil
}

func (s *MarketplaceService) Me(ctx context.Context, userID string) (Me, error) {
	acc, err := s.profiles.GetAccount(ctx, userID)
	if err != nil {
		return Me{}, err
	}
	out := Me{Account: acc}
	switch acc.UserType {
	case domain.UserTypeWorker:
		p, err := s.profiles.GetWorkerProfile(ctx, userID)
		if err == nil {
			out.Worker = &p
		} else if !errors.Is(err, ErrNotFound) {
			return Me{}, err
		}
	case domain.UserTypeRestaurant:
		p, err := s.profiles.GetRestaurantProfile(ctx, userID)
		if err == nil {
			out.Restaurant = &p
		} else if !errors.Is(err, ErrNotFound) {
			return Me{}, err
		}
	}
	return out, nil
}

func (s *MarketplaceService) UpsertWorkerProfile(ctx context.Context, actor Actor, p domain.WorkerProfile) (domain.WorkerProfile, error) {
	if actor.Type != domain.UserTypeWorker {
		return domain.WorkerProfile{}, fmt.Errorf("%w: worker profile requires a worker account", ErrForbidden)
	}
	p.UserID = actor.ID
	if err := p.Normalize(); err != nil {
		return domain.WorkerProfile{}, translate(err)
	}
	if err := s.catalog.CheckRoles(p.Roles...); err != nil {
		return domain.WorkerProfile{}, translate(err)
	}
	now := s.clock.Now()
	p.CreatedAt, p.UpdatedAt = now, now
	prev, err := s.profiles.GetWorkerProfile(ctx, actor.ID)
	switch {
	case err == nil:
		p.CreatedAt = prev.CreatedAt
	case !errors.Is(err, ErrNotFound):
		return domain.WorkerProfile{}, err
	}
	if err := s.profiles.UpsertWorkerProfile(ctx, p); err != nil {
		return domain.WorkerProfile{}, err
	}
	return p, nil
}

func (s *MarketplaceService) GetWorkerProfile(ctx context.Context, userID string) (domain.WorkerProfile, error) {
	return s.profiles.GetWorkerProfile(ctx, userID)
}

// UpsertRestaurantProfile saves the profile. An explicit location wins; a
// changed address without one is geocoded in the background.
func (s *MarketplaceService) UpsertRestaurantProfile(ctx context.Context, actor Actor, p domain.RestaurantProfile) (domain.RestaurantProfile, error) {
	if actor.Type != domain.UserTypeRestaurant {
		return domain.RestaurantProfile{}, fmt.Errorf("%w: restaurant profile requires a restaurant account", ErrForbidden)
	}
	p.UserID = actor.ID
	if err := p.Normalize(); err != nil {
		return domain.RestaurantProfile{}, translate(err)
	}
	if err := s.catalog.CheckRoles(p.CommonRoles...); err != nil {
		return domain.RestaurantProfile{}, translate(err)
	}
	if p.Location != nil {
		if err := domain.ValidateCoordinates(p.Location.Lat, p.Location.Lng); err != nil {
			return domain.RestaurantProfile{}, translate(err)
		}
		if p.Location.Address == "" {
			p.Location.Address = p.Address
		}
	}

	now := s.clock.Now()
	p.CreatedAt, p.UpdatedAt = now, now
	needsGeocode := p.Location == nil && p.Address != ""
	prev, err := s.profiles.GetRestaurantProfile(ctx, actor.ID)
	switch {
	case err == nil:
		p.CreatedAt = prev.CreatedAt
		if p.Location == nil && prev.Address == p.Address && prev.Location != nil {
			p.Location = prev.Location
			needsGeocode = false
		}
	case !errors.Is(err, ErrNotFound):
		return domain.RestaurantProfile{}, err
	}

	err = s.uow.Do(ctx, func(ctx context.Context) error {
		if err := s.profiles.UpsertRestaurantProfile(ctx, p); err != nil {
			return err
		}
		if needsGeocode {
			_, err := s.enqueueGeocode(ctx, domain.GeocodeTargetRestaurant, p.UserID, p.Address)
			return err
		}
		return nil
	})
	if err != nil {
		return domain.RestaurantProfile{}, err
	}
	return p, nil
}

func (s *MarketplaceService) GetRestaurantProfile(ctx context.Context, userID string) (domain.RestaurantProfile, error) {
	return s.profiles.GetRestaurantProfile(ctx, userID)
}

// ListRestaurants returns the restaurants that can be placed on a map.
func (s *MarketplaceService) ListRestaurants(ctx context.Context) ([]domain.RestaurantProfile, error) {
	return s.profiles.ListRestaurantsWithLocation(ctx)
}

func (s *MarketplaceService) RatingSummary(ctx context.Context, profileID string) (domain.RatingSummary, error) {
	acc, err := s.profiles.GetAccount(ctx, profileID)
	if err != nil {
		return domain.RatingSummary{}, err
	}
	q := ShiftQuery{Statuses: []domain.ShiftStatus{domain.ShiftStatusCompleted}}
	if acc.UserType == domain.UserTypeRestaurant {
		q.RestaurantID = profileID
	} else {
		q.WorkerID = profileID
	}
	shifts, err := s.shifts.List(ctx, q)
	if err != nil {
		return domain.RatingSummary{}, err
	}
	return domain.SummarizeRatings(profileID, acc.UserType, shifts), nil
}
