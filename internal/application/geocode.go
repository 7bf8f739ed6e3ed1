package application

import (
	"context"
	"fmt"
	"strings"
	"time"

	"shiftserve/internal/domain"

	"go.uber.org/zap"
)

var _ GeocodeProcessor = (*MarketplaceService)(nil)

// finalizeTimeout bounds bookkeeping writes that must land after the
// request or job context has run out.
const finalizeTimeout = 5 * time.Second

func (s *MarketplaceService) Geocode(ctx context.Context, address string) (domain.GeocodeResult, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return domain.GeocodeResult{}, fmt.Errorf("%w: address is required", ErrBadRequest)
	}
	if s.geocoder == nil {
		return domain.GeocodeResult{}, fmt.Errorf("%w: geocoding is disabled", ErrBadRequest)
	}
	return s.geocoder.Geocode(ctx, address)
}

func (s *MarketplaceService) enqueueGeocode(ctx context.Context, kind domain.GeocodeTarget, targetID, address string) (string, error) {
	if s.jobs == nil {
		return "", nil
	}
	now := s.clock.Now()
	job := domain.GeocodeJob{
		ID:         s.idgen.New(),
		TargetKind: kind,
		TargetID:   targetID,
		Address:    address,
		Status:     domain.GeocodeJobStatusQueued,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.jobs.CreateQueued(ctx, job); err != nil {
		return "", err
	}
	return job.ID, nil
}

func (s *MarketplaceService) GetGeocodeJob(ctx context.Context, id string) (domain.GeocodeJob, error) {
	return s.jobs.GetByID(ctx, id)
}

// ProcessGeocodeJob resolves a claimed job and writes the location back to
// its target. The job ends done or failed even when ctx expired while
// geocoding; the returned error is the geocoding or write-back failure.
func (s *MarketplaceService) ProcessGeocodeJob(ctx context.Context, job domain.GeocodeJob) error {
	res, err := s.Geocode(ctx, job.Address)
	if err == nil {
		loc := domain.Location{Lat: res.Lat, Lng: res.Lng, Address: job.Address}
		switch job.TargetKind {
		case domain.GeocodeTargetRestaurant:
			err = s.profiles.SetRestaurantLocation(ctx, job.TargetID, loc)
		case domain.GeocodeTargetShift:
			err = s.shifts.SetLocation(ctx, job.TargetID, loc)
		default:
			err = fmt.Errorf("%w: unknown geocode target %q", ErrBadRequest, job.TargetKind)
		}
	}

	fctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), finalizeTimeout)
	defer cancel()
	if err != nil {
		msg := err.Error()
		if uerr := s.jobs.UpdateStatus(fctx, job.ID, domain.GeocodeJobStatusFailed, &msg); uerr != nil {
			s.log.Warn("geocode_job_status_failed", zap.String("id", job.ID), zap.Error(uerr))
		}
		return err
	}
	return s.jobs.UpdateStatus(fctx, job.ID, domain.GeocodeJobStatusDone, nil)
}
