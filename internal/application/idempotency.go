package application

import "context"

// IdempotencyStore remembers X-Idempotency-Key values for a while so that a
// retried shift creation or application is rejected instead of duplicated.
type IdempotencyStore interface {
	// TryReserve reports whether key was free and is now taken.
	TryReserve(ctx context.Context, key string) (bool, error)
	// Release frees a key whose request did not take effect.
	Release(ctx context.Context, key string) error
}

// NoopIdempotency accepts every key. Used when IDEMPOTENCY_BACKEND=none.
type NoopIdempotency struct{}

func (NoopIdempotency) TryReserve(context.Context, string) (bool, error) { return true, nil }
func (NoopIdempotency) Release(context.Context, string) error            { return nil }
