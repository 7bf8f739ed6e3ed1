package domain

import "time"

type GeocodeTarget string

const (
	GeocodeTargetRestaurant GeocodeTarget = "restaurant"
	GeocodeTargetShift      GeocodeTarget = "shift"
)

type GeocodeJobStatus string

const (
	GeocodeJobStatusQueued     GeocodeJobStatus = "queued"
	GeocodeJobStatusProcessing GeocodeJobStatus = "processing"
	GeocodeJobStatusDone       GeocodeJobStatus = "done"
	GeocodeJobStatusFailed     GeocodeJobStatus = "failed"
)

// GeocodeJob resolves an address to coordinates in the background and
// writes the result back to its target.
type GeocodeJob struct {
	ID         string
	TargetKind GeocodeTarget
	TargetID   string
	Address    string
	Status     GeocodeJobStatus
	Error      *string
	Attempts   int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type GeocodeResult struct {
	Lat         float64
	Lng         float64
	DisplayName string
}
