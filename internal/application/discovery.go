package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"shiftserve/internal/domain"
)

// DiscoverQuery is the worker-facing search. The origin comes from Lat/Lng
// or, failing that, from geocoding Address.
type DiscoverQuery struct {
	Lat         *float64
	Lng         *float64
	Address     string
	MaxDistance *float64
	MinRate     *float64
	MaxRate     *float64
	Role        string
	UrgentOnly  bool
}

func (s *MarketplaceService) Discover(ctx context.Context, actor Actor, q DiscoverQuery) ([]domain.DiscoveredShift, error) {
	f := domain.ShiftFilter{
		MaxDistance: q.MaxDistance,
		MinRate:     q.MinRate,
		MaxRate:     q.MaxRate,
		Role:        q.Role,
		UrgentOnly:  q.UrgentOnly,
	}
	if q.MinRate != nil && q.MaxRate != nil && *q.MinRate > *q.MaxRate {
		return nil, fmt.Errorf("%w: min_rate exceeds max_rate", ErrBadRequest)
	}
	origin, err := s.origin(ctx, q)
	if err != nil {
		return nil, err
	}
	f.Origin = origin

	if f.Origin != nil && f.MaxDistance == nil && actor.Type == domain.UserTypeWorker {
		wp, err := s.profiles.GetWorkerProfile(ctx, actor.ID)
		switch {
		case err == nil:
			r := float64(wp.ServiceRadius)
			f.MaxDistance = &r
		case !errors.Is(err, ErrNotFound):
			return nil, err
		}
	}

	shifts, err := s.ListPublishedShifts(ctx)
	if err != nil {
		return nil, err
	}
	return f.Apply(shifts), nil
}

func (s *MarketplaceService) origin(ctx context.Context, q DiscoverQuery) (*domain.Point, error) {
	if (q.Lat == nil) != (q.Lng == nil) {
		return nil, fmt.Errorf("%w: lat and lng must be given together", ErrBadRequest)
	}
	if q.Lat != nil {
		if err := domain.ValidateCoordinates(*q.Lat, *q.Lng); err != nil {
			return nil, translate(err)
		}
		return &domain.Point{Lat: *q.Lat, Lng: *q.Lng}, nil
	}
	if strings.TrimSpace(q.Address) == "" {
		return nil, nil
	}
	res, err := s.Geocode(ctx, q.Address)
	if err != nil {
		return nil, err
	}
	return &domain.Point{Lat: res.Lat, Lng: res.Lng}, nil
}
