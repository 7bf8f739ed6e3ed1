package application

import "context"

// UnitOfWork runs fn so that the shift reads and writes inside it commit
// together. Implementations carry the transaction in ctx.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// NoopUoW runs fn directly.
type NoopUoW struct{}

func (NoopUoW) Do(ctx context.Context, fn func(ctx context.Context) error) error { return fn(ctx) }
