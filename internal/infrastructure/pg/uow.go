package pg

import (
	"context"

	"shiftserve/internal/application"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

var _ application.UnitOfWork = (*UnitOfWork)(nil)

type txKey struct{}

func txFromCtx(ctx context.Context) pgx.Tx {
	if v := ctx.Value(txKey{}); v != nil {
		if tx, ok := v.(pgx.Tx); ok {
			return tx
		}
	}
	return nil
}

// UnitOfWork wraps the shift mutations of one request in a transaction.
// Repositories pick the transaction up from the context.
type UnitOfWork struct {
	Pool *pgxpool.Pool
}

func NewUnitOfWork(db *DB) *UnitOfWork { return &UnitOfWork{Pool: db.Pool} }

// Do runs fn in a transaction. A nested call joins the outer transaction.
func (u *UnitOfWork) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	if txFromCtx(ctx) != nil {
		return fn(ctx)
	}
	tx, err := u.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			opLog(ctx, "uow", "rollback", "").Warn("sql.rollback_failed", zap.Error(rbErr))
		}
		return err
	}
	return tx.Commit(ctx)
}
