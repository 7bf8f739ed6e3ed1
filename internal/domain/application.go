package domain

import "time"

type ApplicationStatus string

const (
	ApplicationStatusPending  ApplicationStatus = "pending"
	ApplicationStatusAccepted ApplicationStatus = "accepted"
	ApplicationStatusDeclined ApplicationStatus = "declined"
)

// Application is a worker's request to fill a shift.
type Application struct {
	WorkerID         string
	WorkerName       string
	AppliedAt        time.Time
	Status           ApplicationStatus
	WorkerRating     *float64
	WorkerExperience *string
}

// Assignment is the accepted worker-shift pairing.
type Assignment struct {
	WorkerID          string
	WorkerName        string
	AssignedAt        time.Time
	Completed         bool
	CompletedAt       *time.Time
	RestaurantRating  *int
	RestaurantComment *string
	WorkerRating      *int
	WorkerComment     *string
}

// RatedBy reports whether the given side already left a rating.
func (a *Assignment) RatedBy(side UserType) bool {
	if side == UserTypeRestaurant {
		return a.RestaurantRating != nil
	}
	return a.WorkerRating != nil
}
