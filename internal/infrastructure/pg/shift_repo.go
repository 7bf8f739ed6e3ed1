package pg

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"shiftserve/internal/application"
	"shiftserve/internal/domain"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

var _ application.ShiftRepo = (*ShiftRepo)(nil)

type ShiftRepo struct{ db *DB }

func NewShiftRepo(db *DB) *ShiftRepo { return &ShiftRepo{db: db} }

const shiftCols = `s.id, s.restaurant_id, s.restaurant_name, s.role, s.shift_date, s.start_time, s.end_time,
    s.hourly_rate::float8, s.urgency_level, s.bonus_percentage, s.description, s.requirements, s.status,
    s.lat, s.lng, s.location_address, s.address, s.generated, s.created_at, s.updated_at`

func scanShift(row pgx.Row) (domain.Shift, error) {
	var (
		s               domain.Shift
		urgency, status string
		lat, lng        *float64
		locAddr         *string
	)
	err := row.Scan(&s.ID, &s.RestaurantID, &s.RestaurantName, &s.Role, &s.Date, &s.StartTime, &s.EndTime,
		&s.HourlyRate, &urgency, &s.BonusPercentage, &s.Description, &s.Requirements, &status,
		&lat, &lng, &locAddr, &s.Address, &s.Generated, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return domain.Shift{}, err
	}
	s.UrgencyLevel = domain.UrgencyLevel(urgency)
	s.Status = domain.ShiftStatus(status)
	if lat != nil && lng != nil {
		s.Location = &domain.Location{Lat: *lat, Lng: *lng}
		if locAddr != nil {
			s.Location.Address = *locAddr
		}
	}
	return s, nil
}

func locationArgs(loc *domain.Location) (lat, lng *float64, addr *string) {
	if loc == nil {
		return nil, nil, nil
	}
	la, ln, a := loc.Lat, loc.Lng, loc.Address
	return &la, &ln, &a
}

func (r *ShiftRepo) Create(ctx context.Context, s domain.Shift) error {
	const ins = `
        INSERT INTO shifts(id, restaurant_id, restaurant_name, role, shift_date, start_time, end_time,
            hourly_rate, urgency_level, bonus_percentage, description, requirements, status,
            lat, lng, location_address, address, generated, created_at, updated_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20)`
	log := opLog(ctx, "shift", "Create", ins).With(zap.String("id", s.ID))
	log.Info("sql.exec_start")
	lat, lng, locAddr := locationArgs(s.Location)
	_, err := r.db.q(ctx).Exec(ctx, ins, s.ID, s.RestaurantID, s.RestaurantName, s.Role, s.Date, s.StartTime, s.EndTime,
		s.HourlyRate, string(s.UrgencyLevel), s.BonusPercentage, s.Description, nonNil(s.Requirements), string(s.Status),
		lat, lng, locAddr, s.Address, s.Generated, s.CreatedAt, s.UpdatedAt)
	if err != nil {
		log.Error("sql.exec_failed", zap.Error(err))
		return translate(err)
	}
	if err := r.writeChildren(ctx, s); err != nil {
		return err
	}
	log.Info("sql.exec_success")
	return nil
}

func (r *ShiftRepo) Get(ctx context.Context, id string) (domain.Shift, error) {
	return r.get(ctx, id, false)
}

func (r *ShiftRepo) GetForUpdate(ctx context.Context, id string) (domain.Shift, error) {
	return r.get(ctx, id, true)
}

func (r *ShiftRepo) get(ctx context.Context, id string, lock bool) (domain.Shift, error) {
	q := `SELECT ` + shiftCols + ` FROM shifts s WHERE s.id = $1`
	if lock {
		q += ` FOR UPDATE`
	}
	log := opLog(ctx, "shift", "Get", q).With(zap.String("id", id), zap.Bool("lock", lock))
	log.Info("sql.query_start")
	s, err := scanShift(r.db.q(ctx).QueryRow(ctx, q, id))
	if err != nil {
		err = translate(err)
		if errors.Is(err, application.ErrNotFound) {
			log.Info("sql.query_no_rows")
		} else {
			log.Error("sql.query_failed", zap.Error(err))
		}
		return domain.Shift{}, err
	}
	out := []domain.Shift{s}
	if err := r.loadChildren(ctx, out); err != nil {
		return domain.Shift{}, err
	}
	log.Info("sql.query_success", zap.String("status", string(s.Status)))
	return out[0], nil
}

func (r *ShiftRepo) Update(ctx context.Context, s domain.Shift) error {
	const up = `
        UPDATE shifts SET role=$2, shift_date=$3, start_time=$4, end_time=$5, hourly_rate=$6,
            urgency_level=$7, bonus_percentage=$8, description=$9, requirements=$10, status=$11,
            lat=$12, lng=$13, location_address=$14, address=$15, updated_at=$16
        WHERE id=$1`
	log := opLog(ctx, "shift", "Update", up).With(zap.String("id", s.ID), zap.String("status", string(s.Status)))
	log.Info("sql.exec_start")
	lat, lng, locAddr := locationArgs(s.Location)
	tag, err := r.db.q(ctx).Exec(ctx, up, s.ID, s.Role, s.Date, s.StartTime, s.EndTime, s.HourlyRate,
		string(s.UrgencyLevel), s.BonusPercentage, s.Description, nonNil(s.Requirements), string(s.Status),
		lat, lng, locAddr, s.Address, s.UpdatedAt)
	if err != nil {
		log.Error("sql.exec_failed", zap.Error(err))
		return translate(err)
	}
	if tag.RowsAffected() == 0 {
		log.Warn("sql.exec_no_rows")
		return application.ErrNotFound
	}
	if err := r.writeChildren(ctx, s); err != nil {
		return err
	}
	log.Info("sql.exec_success")
	return nil
}

// writeChildren upserts applications and the assignment of s.
func (r *ShiftRepo) writeChildren(ctx context.Context, s domain.Shift) error {
	const upApp = `
        INSERT INTO shift_applications(shift_id, worker_id, worker_name, applied_at, status, worker_rating, worker_experience)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        ON CONFLICT (shift_id, worker_id) DO UPDATE SET status = EXCLUDED.status`
	q := r.db.q(ctx)
	for _, a := range s.Applications {
		if _, err := q.Exec(ctx, upApp, s.ID, a.WorkerID, a.WorkerName, a.AppliedAt, string(a.Status), a.WorkerRating, a.WorkerExperience); err != nil {
			opLog(ctx, "shift", "UpsertApplication", upApp).Error("sql.exec_failed", zap.String("id", s.ID), zap.Error(err))
			return translate(err)
		}
	}
	if s.Assignment == nil {
		const del = `DELETE FROM shift_assignments WHERE shift_id = $1`
		_, err := q.Exec(ctx, del, s.ID)
		return translate(err)
	}
	const upAsg = `
        INSERT INTO shift_assignments(shift_id, worker_id, worker_name, assigned_at, completed, completed_at,
            restaurant_rating, restaurant_comment, worker_rating, worker_comment)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
        ON CONFLICT (shift_id) DO UPDATE SET
            worker_id = EXCLUDED.worker_id, worker_name = EXCLUDED.worker_name, assigned_at = EXCLUDED.assigned_at,
            completed = EXCLUDED.completed, completed_at = EXCLUDED.completed_at,
            restaurant_rating = EXCLUDED.restaurant_rating, restaurant_comment = EXCLUDED.restaurant_comment,
            worker_rating = EXCLUDED.worker_rating, worker_comment = EXCLUDED.worker_comment`
	a := s.Assignment
	if _, err := q.Exec(ctx, upAsg, s.ID, a.WorkerID, a.WorkerName, a.AssignedAt, a.Completed, a.CompletedAt,
		a.RestaurantRating, a.RestaurantComment, a.WorkerRating, a.WorkerComment); err != nil {
		opLog(ctx, "shift", "UpsertAssignment", upAsg).Error("sql.exec_failed", zap.String("id", s.ID), zap.Error(err))
		return translate(err)
	}
	return nil
}

// loadChildren fills applications and assignments for the given shifts.
func (r *ShiftRepo) loadChildren(ctx context.Context, shifts []domain.Shift) error {
	if len(shifts) == 0 {
		return nil
	}
	ids := make([]string, len(shifts))
	idx := make(map[string]int, len(shifts))
	for i, s := range shifts {
		ids[i] = s.ID
		idx[s.ID] = i
	}
	q := r.db.q(ctx)

	const selApps = `
        SELECT shift_id, worker_id, worker_name, applied_at, status, worker_rating, worker_experience
        FROM shift_applications WHERE shift_id = ANY($1)
        ORDER BY applied_at, worker_id`
	rows, err := q.Query(ctx, selApps, ids)
	if err != nil {
		return translate(err)
	}
	for rows.Next() {
		var (
			shiftID, status string
			a               domain.Application
		)
		if err := rows.Scan(&shiftID, &a.WorkerID, &a.WorkerName, &a.AppliedAt, &status, &a.WorkerRating, &a.WorkerExperience); err != nil {
			rows.Close()
			return err
		}
		a.Status = domain.ApplicationStatus(status)
		i := idx[shiftID]
		shifts[i].Applications = append(shifts[i].Applications, a)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	const selAsg = `
        SELECT shift_id, worker_id, worker_name, assigned_at, completed, completed_at,
            restaurant_rating, restaurant_comment, worker_rating, worker_comment
        FROM shift_assignments WHERE shift_id = ANY($1)`
	rows, err = q.Query(ctx, selAsg, ids)
	if err != nil {
		return translate(err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			shiftID string
			a       domain.Assignment
		)
		if err := rows.Scan(&shiftID, &a.WorkerID, &a.WorkerName, &a.AssignedAt, &a.Completed, &a.CompletedAt,
			&a.RestaurantRating, &a.RestaurantComment, &a.WorkerRating, &a.WorkerComment); err != nil {
			return err
		}
		asg := a
		shifts[idx[shiftID]].Assignment = &asg
	}
	return rows.Err()
}

func (r *ShiftRepo) Delete(ctx context.Context, id string) error {
	const del = `DELETE FROM shifts WHERE id = $1`
	log := opLog(ctx, "shift", "Delete", del).With(zap.String("id", id))
	log.Info("sql.exec_start")
	tag, err := r.db.q(ctx).Exec(ctx, del, id)
	if err != nil {
		log.Error("sql.exec_failed", zap.Error(err))
		return translate(err)
	}
	if tag.RowsAffected() == 0 {
		log.Warn("sql.exec_no_rows")
		return application.ErrNotFound
	}
	log.Info("sql.exec_success")
	return nil
}

func (r *ShiftRepo) List(ctx context.Context, sq application.ShiftQuery) ([]domain.Shift, error) {
	var (
		where []string
		args  []any
	)
	if sq.RestaurantID != "" {
		args = append(args, sq.RestaurantID)
		where = append(where, fmt.Sprintf("s.restaurant_id = $%d", len(args)))
	}
	if sq.WorkerID != "" {
		args = append(args, sq.WorkerID)
		n := len(args)
		where = append(where, fmt.Sprintf(`(EXISTS (SELECT 1 FROM shift_applications a WHERE a.shift_id = s.id AND a.worker_id = $%d)
            OR EXISTS (SELECT 1 FROM shift_assignments x WHERE x.shift_id = s.id AND x.worker_id = $%d))`, n, n))
	}
	if len(sq.Statuses) > 0 {
		st := make([]string, len(sq.Statuses))
		for i, s := range sq.Statuses {
			st[i] = string(s)
		}
		args = append(args, st)
		where = append(where, fmt.Sprintf("s.status = ANY($%d)", len(args)))
	}
	q := `SELECT ` + shiftCols + ` FROM shifts s`
	if len(where) > 0 {
		q += ` WHERE ` + strings.Join(where, " AND ")
	}
	q += ` ORDER BY s.created_at DESC, s.id`

	log := opLog(ctx, "shift", "List", q)
	log.Info("sql.query_start")
	rows, err := r.db.q(ctx).Query(ctx, q, args...)
	if err != nil {
		log.Error("sql.query_failed", zap.Error(err))
		return nil, translate(err)
	}
	out := make([]domain.Shift, 0)
	for rows.Next() {
		s, err := scanShift(rows)
		if err != nil {
			rows.Close()
			log.Error("sql.scan_failed", zap.Error(err))
			return nil, err
		}
		out = append(out, s)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.loadChildren(ctx, out); err != nil {
		return nil, err
	}
	log.Info("sql.query_success", zap.Int("rows", len(out)))
	return out, nil
}

func (r *ShiftRepo) SetLocation(ctx context.Context, id string, loc domain.Location) error {
	const up = `UPDATE shifts SET lat=$2, lng=$3, location_address=$4, updated_at=NOW() WHERE id=$1`
	log := opLog(ctx, "shift", "SetLocation", up).With(zap.String("id", id))
	log.Info("sql.exec_start")
	tag, err := r.db.q(ctx).Exec(ctx, up, id, loc.Lat, loc.Lng, loc.Address)
	if err != nil {
		log.Error("sql.exec_failed", zap.Error(err))
		return translate(err)
	}
	if tag.RowsAffected() == 0 {
		log.Warn("sql.exec_no_rows")
		return application.ErrNotFound
	}
	log.Info("sql.exec_success")
	return nil
}

func (r *ShiftRepo) DeleteGenerated(ctx context.Context) (int, error) {
	const del = `DELETE FROM shifts WHERE generated`
	log := opLog(ctx, "shift", "DeleteGenerated", del)
	tag, err := r.db.q(ctx).Exec(ctx, del)
	if err != nil {
		log.Error("sql.exec_failed", zap.Error(err))
		return 0, translate(err)
	}
	log.Info("sql.exec_success", zap.Int64("rows_affected", tag.RowsAffected()))
	return int(tag.RowsAffected()), nil
}

func (r *ShiftRepo) AddMessage(ctx context.Context, m domain.ChatMessage) error {
	const ins = `
        INSERT INTO chat_messages(id, shift_id, sender_id, sender_type, message, created_at)
        VALUES ($1,$2,$3,$4,$5,$6)`
	log := opLog(ctx, "shift", "AddMessage", ins).With(zap.String("shift_id", m.ShiftID))
	if _, err := r.db.q(ctx).Exec(ctx, ins, m.ID, m.ShiftID, m.SenderID, string(m.SenderType), m.Message, m.Timestamp); err != nil {
		log.Error("sql.exec_failed", zap.Error(err))
		return translate(err)
	}
	log.Info("sql.exec_success")
	return nil
}

func (r *ShiftRepo) ListMessages(ctx context.Context, shiftID string) ([]domain.ChatMessage, error) {
	const q = `
        SELECT id, shift_id, sender_id, sender_type, message, created_at
        FROM chat_messages WHERE shift_id = $1 ORDER BY created_at, id`
	rows, err := r.db.q(ctx).Query(ctx, q, shiftID)
	if err != nil {
		opLog(ctx, "shift", "ListMessages", q).Error("sql.query_failed", zap.Error(err))
		return nil, translate(err)
	}
	defer rows.Close()
	out := make([]domain.ChatMessage, 0)
	for rows.Next() {
		var (
			m          domain.ChatMessage
			senderType string
		)
		if err := rows.Scan(&m.ID, &m.ShiftID, &m.SenderID, &senderType, &m.Message, &m.Timestamp); err != nil {
			return nil, err
		}
		m.SenderType = domain.UserType(senderType)
		out = append(out, m)
	}
	return out, rows.Err()
}

func nonNil(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}
