package pg

import (
	"context"
	"encoding/json"
	"errors"

	"shiftserve/internal/application"
	"shiftserve/internal/domain"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

var _ application.ProfileRepo = (*ProfileRepo)(nil)

type ProfileRepo struct{ db *DB }

func NewProfileRepo(db *DB) *ProfileRepo { return &ProfileRepo{db: db} }

type managerRow struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Position string `json:"position"`
}

type dayHoursRow struct {
	Open   string `json:"open,omitempty"`
	Close  string `json:"close,omitempty"`
	Closed bool   `json:"closed"`
}

func (r *ProfileRepo) GetAccount(ctx context.Context, id string) (domain.Account, error) {
	const q = `SELECT id, user_type, created_at FROM accounts WHERE id = $1`
	var (
		a  domain.Account
		ut string
	)
	err := r.db.q(ctx).QueryRow(ctx, q, id).Scan(&a.ID, &ut, &a.CreatedAt)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			opLog(ctx, "profile", "GetAccount", q).Error("sql.query_failed", zap.Error(err))
		}
		return domain.Account{}, translate(err)
	}
	a.UserType = domain.UserType(ut)
	return a, nil
}

func (r *ProfileRepo) CreateAccount(ctx context.Context, a domain.Account) error {
	const ins = `INSERT INTO accounts(id, user_type, created_at) VALUES ($1, $2, $3)`
	log := opLog(ctx, "profile", "CreateAccount", ins).With(zap.String("id", a.ID), zap.String("user_type", string(a.UserType)))
	log.Info("sql.exec_start")
	if _, err := r.db.q(ctx).Exec(ctx, ins, a.ID, string(a.UserType), a.CreatedAt); err != nil {
		log.Error("sql.exec_failed", zap.Error(err))
		return translate(err)
	}
	log.Info("sql.exec_success")
	return nil
}

func (r *ProfileRepo) GetWorkerProfile(ctx context.Context, userID string) (domain.WorkerProfile, error) {
	const q = `
        SELECT user_id, name, email, phone, certifications, skills, roles, service_radius,
            experience, availability, created_at, updated_at
        FROM worker_profiles WHERE user_id = $1`
	var (
		p     domain.WorkerProfile
		exp   string
		avail []byte
	)
	err := r.db.q(ctx).QueryRow(ctx, q, userID).Scan(&p.UserID, &p.Name, &p.Email, &p.Phone, &p.Certifications,
		&p.Skills, &p.Roles, &p.ServiceRadius, &exp, &avail, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			opLog(ctx, "profile", "GetWorkerProfile", q).Error("sql.query_failed", zap.Error(err))
		}
		return domain.WorkerProfile{}, translate(err)
	}
	p.Experience = domain.Experience(exp)
	if err := json.Unmarshal(avail, &p.Availability); err != nil {
		return domain.WorkerProfile{}, err
	}
	return p, nil
}

func (r *ProfileRepo) UpsertWorkerProfile(ctx context.Context, p domain.WorkerProfile) error {
	const up = `
        INSERT INTO worker_profiles(user_id, name, email, phone, certifications, skills, roles,
            service_radius, experience, availability, created_at, updated_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10::jsonb,$11,$12)
        ON CONFLICT (user_id) DO UPDATE SET
            name = EXCLUDED.name, email = EXCLUDED.email, phone = EXCLUDED.phone,
            certifications = EXCLUDED.certifications, skills = EXCLUDED.skills, roles = EXCLUDED.roles,
            service_radius = EXCLUDED.service_radius, experience = EXCLUDED.experience,
            availability = EXCLUDED.availability, updated_at = EXCLUDED.updated_at`
	avail, err := json.Marshal(p.Availability)
	if err != nil {
		return err
	}
	log := opLog(ctx, "profile", "UpsertWorkerProfile", up).With(zap.String("user_id", p.UserID))
	log.Info("sql.exec_start")
	if _, err := r.db.q(ctx).Exec(ctx, up, p.UserID, p.Name, p.Email, p.Phone, nonNil(p.Certifications),
		nonNil(p.Skills), nonNil(p.Roles), p.ServiceRadius, string(p.Experience), string(avail), p.CreatedAt, p.UpdatedAt); err != nil {
		log.Error("sql.exec_failed", zap.Error(err))
		return translate(err)
	}
	log.Info("sql.exec_success")
	return nil
}

const restaurantCols = `user_id, restaurant_name, email, phone, website, description, cuisine_type, restaurant_type,
    address, lat, lng, location_address, manager, operating_hours, team_size, avg_shifts_per_week,
    pay_min::float8, pay_max::float8, preferred_experience, common_roles, benefits, created_at, updated_at`

func scanRestaurant(row pgx.Row) (domain.RestaurantProfile, error) {
	var (
		p              domain.RestaurantProfile
		lat, lng       *float64
		locAddr        *string
		manager, hours []byte
	)
	err := row.Scan(&p.UserID, &p.RestaurantName, &p.Email, &p.Phone, &p.Website, &p.Description, &p.CuisineType,
		&p.RestaurantType, &p.Address, &lat, &lng, &locAddr, &manager, &hours, &p.TeamSize, &p.AverageShiftsPerWeek,
		&p.PayRange.Min, &p.PayRange.Max, &p.PreferredExperience, &p.CommonRoles, &p.Benefits, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return domain.RestaurantProfile{}, err
	}
	if lat != nil && lng != nil {
		p.Location = &domain.Location{Lat: *lat, Lng: *lng}
		if locAddr != nil {
			p.Location.Address = *locAddr
		}
	}
	var m managerRow
	if err := json.Unmarshal(manager, &m); err != nil {
		return domain.RestaurantProfile{}, err
	}
	p.Manager = domain.Manager(m)
	var h map[string]dayHoursRow
	if err := json.Unmarshal(hours, &h); err != nil {
		return domain.RestaurantProfile{}, err
	}
	p.OperatingHours = make(map[string]domain.DayHours, len(h))
	for d, v := range h {
		p.OperatingHours[d] = domain.DayHours(v)
	}
	return p, nil
}

func (r *ProfileRepo) GetRestaurantProfile(ctx context.Context, userID string) (domain.RestaurantProfile, error) {
	q := `SELECT ` + restaurantCols + ` FROM restaurant_profiles WHERE user_id = $1`
	p, err := scanRestaurant(r.db.q(ctx).QueryRow(ctx, q, userID))
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			opLog(ctx, "profile", "GetRestaurantProfile", q).Error("sql.query_failed", zap.Error(err))
		}
		return domain.RestaurantProfile{}, translate(err)
	}
	return p, nil
}

func (r *ProfileRepo) UpsertRestaurantProfile(ctx context.Context, p domain.RestaurantProfile) error {
	const up = `
        INSERT INTO restaurant_profiles(user_id, restaurant_name, email, phone, website, description, cuisine_type,
            restaurant_type, address, lat, lng, location_address, manager, operating_hours, team_size,
            avg_shifts_per_week, pay_min, pay_max, preferred_experience, common_roles, benefits, created_at, updated_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13::jsonb,$14::jsonb,$15,$16,$17,$18,$19,$20,$21,$22,$23)
        ON CONFLICT (user_id) DO UPDATE SET
            restaurant_name = EXCLUDED.restaurant_name, email = EXCLUDED.email, phone = EXCLUDED.phone,
            website = EXCLUDED.website, description = EXCLUDED.description, cuisine_type = EXCLUDED.cuisine_type,
            restaurant_type = EXCLUDED.restaurant_type, address = EXCLUDED.address, lat = EXCLUDED.lat,
            lng = EXCLUDED.lng, location_address = EXCLUDED.location_address, manager = EXCLUDED.manager,
            operating_hours = EXCLUDED.operating_hours, team_size = EXCLUDED.team_size,
            avg_shifts_per_week = EXCLUDED.avg_shifts_per_week, pay_min = EXCLUDED.pay_min,
            pay_max = EXCLUDED.pay_max, preferred_experience = EXCLUDED.preferred_experience,
            common_roles = EXCLUDED.common_roles, benefits = EXCLUDED.benefits, updated_at = EXCLUDED.updated_at`
	manager, err := json.Marshal(managerRow(p.Manager))
	if err != nil {
		return err
	}
	h := make(map[string]dayHoursRow, len(p.OperatingHours))
	for d, v := range p.OperatingHours {
		h[d] = dayHoursRow(v)
	}
	hours, err := json.Marshal(h)
	if err != nil {
		return err
	}
	lat, lng, locAddr := locationArgs(p.Location)
	log := opLog(ctx, "profile", "UpsertRestaurantProfile", up).With(zap.String("user_id", p.UserID))
	log.Info("sql.exec_start")
	if _, err := r.db.q(ctx).Exec(ctx, up, p.UserID, p.RestaurantName, p.Email, p.Phone, p.Website, p.Description,
		p.CuisineType, p.RestaurantType, p.Address, lat, lng, locAddr, string(manager), string(hours), p.TeamSize,
		p.AverageShiftsPerWeek, p.PayRange.Min, p.PayRange.Max, nonNil(p.PreferredExperience), nonNil(p.CommonRoles),
		nonNil(p.Benefits), p.CreatedAt, p.UpdatedAt); err != nil {
		log.Error("sql.exec_failed", zap.Error(err))
		return translate(err)
	}
	log.Info("sql.exec_success")
	return nil
}

func (r *ProfileRepo) SetRestaurantLocation(ctx context.Context, userID string, loc domain.Location) error {
	const up = `UPDATE restaurant_profiles SET lat=$2, lng=$3, location_address=$4, updated_at=NOW() WHERE user_id=$1`
	log := opLog(ctx, "profile", "SetRestaurantLocation", up).With(zap.String("user_id", userID))
	tag, err := r.db.q(ctx).Exec(ctx, up, userID, loc.Lat, loc.Lng, loc.Address)
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

func (r *ProfileRepo) ListRestaurantsWithLocation(ctx context.Context) ([]domain.RestaurantProfile, error) {
	q := `SELECT ` + restaurantCols + ` FROM restaurant_profiles
        WHERE lat IS NOT NULL AND lng IS NOT NULL ORDER BY restaurant_name`
	rows, err := r.db.q(ctx).Query(ctx, q)
	if err != nil {
		opLog(ctx, "profile", "ListRestaurantsWithLocation", q).Error("sql.query_failed", zap.Error(err))
		return nil, translate(err)
	}
	defer rows.Close()
	out := make([]domain.RestaurantProfile, 0)
	for rows.Next() {
		p, err := scanRestaurant(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
