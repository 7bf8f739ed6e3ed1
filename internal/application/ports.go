package application

import (
	"context"
	"time"

	"shiftserve/internal/domain"
)

// ShiftQuery narrows List. Empty fields match everything.
type ShiftQuery struct {
	RestaurantID string
	// WorkerID matches shifts the worker applied to or is assigned to.
	WorkerID string
	Statuses []domain.ShiftStatus
}

type ShiftRepo interface {
	Create(ctx context.Context, s domain.Shift) error
	Get(ctx context.Context, id string) (domain.Shift, error)
	// GetForUpdate locks the shift for the surrounding unit of work.
	GetForUpdate(ctx context.Context, id string) (domain.Shift, error)
	// Update persists the shift together with its applications and assignment.
	Update(ctx context.Context, s domain.Shift) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, q ShiftQuery) ([]domain.Shift, error)
	SetLocation(ctx context.Context, id string, loc domain.Location) error
	DeleteGenerated(ctx context.Context) (int, error)

	AddMessage(ctx context.Context, m domain.ChatMessage) error
	ListMessages(ctx context.Context, shiftID string) ([]domain.ChatMessage, error)
}

type ProfileRepo interface {
	GetAccount(ctx context.Context, id string) (domain.Account, error)
	// CreateAccount fails with ErrConflict when the account already exists.
	CreateAccount(ctx context.Context, a domain.Account) error

	GetWorkerProfile(ctx context.Context, userID string) (domain.WorkerProfile, error)
	UpsertWorkerProfile(ctx context.Context, p domain.WorkerProfile) error

	GetRestaurantProfile(ctx context.Context, userID string) (domain.RestaurantProfile, error)
	UpsertRestaurantProfile(ctx context.Context, p domain.RestaurantProfile) error
	SetRestaurantLocation(ctx context.Context, userID string, loc domain.Location) error
	ListRestaurantsWithLocation(ctx context.Context) ([]domain.RestaurantProfile, error)
}

type GeocodeJobRepo interface {
	CreateQueued(ctx context.Context, job domain.GeocodeJob) error
	GetByID(ctx context.Context, id string) (domain.GeocodeJob, error)
	UpdateStatus(ctx context.Context, id string, status domain.GeocodeJobStatus, errMsg *string) error
	// ClaimQueued moves up to limit queued jobs to processing and returns them.
	ClaimQueued(ctx context.Context, limit int) ([]domain.GeocodeJob, error)
	// RequeueStale puts processing jobs untouched for olderThan back in the
	// queue and reports how many it moved.
	RequeueStale(ctx context.Context, olderThan time.Duration) (int, error)
}

type Geocoder interface {
	Geocode(ctx context.Context, address string) (domain.GeocodeResult, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, e domain.Event) error
}

// GeocodeProcessor is what background workers drive.
type GeocodeProcessor interface {
	ProcessGeocodeJob(ctx context.Context, job domain.GeocodeJob) error
}
