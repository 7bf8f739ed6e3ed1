package pg

import (
	"context"
	"errors"
	"time"

	"shiftserve/internal/application"
	"shiftserve/internal/domain"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

var _ application.GeocodeJobRepo = (*GeocodeJobRepo)(nil)

type GeocodeJobRepo struct{ db *DB }

func NewGeocodeJobRepo(db *DB) *GeocodeJobRepo { return &GeocodeJobRepo{db: db} }

const jobCols = `id, target_kind, target_id, address, status, error, attempts, created_at, updated_at`

func scanJob(row pgx.Row) (domain.GeocodeJob, error) {
	var (
		j            domain.GeocodeJob
		kind, status string
	)
	if err := row.Scan(&j.ID, &kind, &j.TargetID, &j.Address, &status, &j.Error, &j.Attempts, &j.CreatedAt, &j.UpdatedAt); err != nil {
		return domain.GeocodeJob{}, err
	}
	j.TargetKind = domain.GeocodeTarget(kind)
	j.Status = domain.GeocodeJobStatus(status)
	return j, nil
}

// CreateQueued inserts the job; the insert trigger notifies listening workers.
func (r *GeocodeJobRepo) CreateQueued(ctx context.Context, job domain.GeocodeJob) error {
	const ins = `
        INSERT INTO geocode_jobs(id, target_kind, target_id, address, status, created_at, updated_at)
        VALUES ($1, $2, $3, $4, 'queued', $5, $5)`
	log := opLog(ctx, "geocode_job", "CreateQueued", ins).With(
		zap.String("id", job.ID),
		zap.String("target_kind", string(job.TargetKind)),
		zap.String("target_id", job.TargetID),
	)
	log.Info("sql.exec_start")
	tag, err := r.db.q(ctx).Exec(ctx, ins, job.ID, string(job.TargetKind), job.TargetID, job.Address, job.CreatedAt)
	if err != nil {
		log.Error("sql.exec_failed", zap.Error(err))
		return translate(err)
	}
	log.Info("sql.exec_success", zap.Int64("rows_affected", tag.RowsAffected()))
	return nil
}

func (r *GeocodeJobRepo) GetByID(ctx context.Context, id string) (domain.GeocodeJob, error) {
	const q = `SELECT ` + jobCols + ` FROM geocode_jobs WHERE id = $1`
	log := opLog(ctx, "geocode_job", "GetByID", q).With(zap.String("id", id))
	log.Info("sql.query_start")
	j, err := scanJob(r.db.q(ctx).QueryRow(ctx, q, id))
	if errors.Is(err, pgx.ErrNoRows) {
		log.Info("sql.query_no_rows")
		return domain.GeocodeJob{}, application.ErrNotFound
	}
	if err != nil {
		log.Error("sql.query_failed", zap.Error(err))
		return domain.GeocodeJob{}, err
	}
	log.Info("sql.query_success", zap.String("status", string(j.Status)))
	return j, nil
}

func (r *GeocodeJobRepo) UpdateStatus(ctx context.Context, id string, st domain.GeocodeJobStatus, errMsg *string) error {
	const up = `
        UPDATE geocode_jobs
        SET status = $2::text,
            error = $3,
            attempts = CASE WHEN $2::text = 'processing' THEN attempts + 1 ELSE attempts END,
            updated_at = NOW()
        WHERE id = $1`
	log := opLog(ctx, "geocode_job", "UpdateStatus", up).With(zap.String("id", id), zap.String("status", string(st)))
	if errMsg != nil {
		log = log.With(zap.String("error", *errMsg))
	}
	log.Info("sql.exec_start")
	tag, err := r.db.q(ctx).Exec(ctx, up, id, string(st), errMsg)
	if err != nil {
		log.Error("sql.exec_failed", zap.Error(err))
		return err
	}
	if tag.RowsAffected() == 0 {
		log.Warn("sql.exec_no_rows")
		return application.ErrNotFound
	}
	log.Info("sql.exec_success", zap.Int64("rows_affected", tag.RowsAffected()))
	return nil
}

func (r *GeocodeJobRepo) ClaimQueued(ctx context.Context, limit int) ([]domain.GeocodeJob, error) {
	const q = `
      WITH cte AS (
        SELECT id
        FROM geocode_jobs
        WHERE status = 'queued'
        ORDER BY created_at
        LIMIT $1
        FOR UPDATE SKIP LOCKED
      )
      UPDATE geocode_jobs j
      SET status = 'processing', attempts = j.attempts + 1, updated_at = NOW()
      FROM cte
      WHERE j.id = cte.id
      RETURNING j.id, j.target_kind, j.target_id, j.address, j.status, j.error, j.attempts, j.created_at, j.updated_at`
	rows, err := r.db.q(ctx).Query(ctx, q, limit)
	if err != nil {
		opLog(ctx, "geocode_job", "ClaimQueued", q).Error("sql.query_failed", zap.Error(err))
		return nil, err
	}
	defer rows.Close()
	var out []domain.GeocodeJob
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, j)
	}
	return out, rows.Err()
}

func (r *GeocodeJobRepo) RequeueStale(ctx context.Context, olderThan time.Duration) (int, error) {
	const up = `
        UPDATE geocode_jobs
        SET status = 'queued', updated_at = NOW()
        WHERE status = 'processing' AND updated_at < NOW() - make_interval(secs => $1)`
	log := opLog(ctx, "geocode_job", "RequeueStale", up)
	tag, err := r.db.q(ctx).Exec(ctx, up, olderThan.Seconds())
	if err != nil {
		log.Error("sql.exec_failed", zap.Error(err))
		return 0, err
	}
	if n := tag.RowsAffected(); n > 0 {
		log.Info("sql.exec_success", zap.Int64("rows_affected", n))
	}
	return int(tag.RowsAffected()), nil
}
