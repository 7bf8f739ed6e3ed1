package application

import "context"

// Worker drains geocode jobs until ctx is cancelled.
type Worker interface {
	Start(ctx context.Context)
}
