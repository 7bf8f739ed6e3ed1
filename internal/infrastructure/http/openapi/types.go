package openapi

import (
	"time"

	"github.com/oapi-codegen/runtime/types"
)

// Error is the envelope every failed request returns.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type Location struct {
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	Address string  `json:"address,omitempty"`
}

type Application struct {
	WorkerId         string    `json:"worker_id"`
	WorkerName       string    `json:"worker_name"`
	AppliedAt        time.Time `json:"applied_at"`
	Status           string    `json:"status"`
	WorkerRating     *float64  `json:"worker_rating,omitempty"`
	WorkerExperience *string   `json:"worker_experience,omitempty"`
}

type Assignment struct {
	WorkerId          string     `json:"worker_id"`
	WorkerName        string     `json:"worker_name"`
	AssignedAt        time.Time  `json:"assigned_at"`
	Completed         bool       `json:"completed"`
	CompletedAt       *time.Time `json:"completed_at,omitempty"`
	RestaurantRating  *int       `json:"restaurant_rating,omitempty"`
	RestaurantComment *string    `json:"restaurant_comment,omitempty"`
	WorkerRating      *int       `json:"worker_rating,omitempty"`
	WorkerComment     *string    `json:"worker_comment,omitempty"`
}

type ChatMessage struct {
	Id         string    `json:"id"`
	ShiftId    string    `json:"shift_id"`
	SenderId   string    `json:"sender_id"`
	SenderType string    `json:"sender_type"`
	Message    string    `json:"message"`
	Timestamp  time.Time `json:"timestamp"`
}

type Shift struct {
	Id              string        `json:"id"`
	RestaurantId    string        `json:"restaurant_id"`
	RestaurantName  string        `json:"restaurant_name"`
	Role            string        `json:"role"`
	Date            types.Date    `json:"date"`
	StartTime       string        `json:"start_time"`
	EndTime         string        `json:"end_time"`
	Duration        string        `json:"duration"`
	HourlyRate      float64       `json:"hourly_rate"`
	UrgencyLevel    string        `json:"urgency_level"`
	Urgent          bool          `json:"urgent"`
	BonusPercentage int           `json:"bonus_percentage"`
	Description     string        `json:"description,omitempty"`
	Requirements    []string      `json:"requirements"`
	Status          string        `json:"status"`
	Published       bool          `json:"published"`
	Applicants      int           `json:"applicants"`
	Location        *Location     `json:"location,omitempty"`
	Address         string        `json:"address,omitempty"`
	Applications    []Application `json:"applications"`
	Assignment      *Assignment   `json:"assignment,omitempty"`
	ChatMessages    []ChatMessage `json:"chat_messages,omitempty"`
	Generated       bool          `json:"generated,omitempty"`
	Distance        *float64      `json:"distance,omitempty"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

type ShiftCreate struct {
	Role            string     `json:"role"`
	Date            types.Date `json:"date"`
	StartTime       string     `json:"start_time"`
	EndTime         string     `json:"end_time"`
	HourlyRate      float64    `json:"hourly_rate"`
	UrgencyLevel    *string    `json:"urgency_level,omitempty"`
	BonusPercentage *int       `json:"bonus_percentage,omitempty"`
	Description     *string    `json:"description,omitempty"`
	Requirements    []string   `json:"requirements,omitempty"`
	Lat             *float64   `json:"lat,omitempty"`
	Lng             *float64   `json:"lng,omitempty"`
	Address         *string    `json:"address,omitempty"`
	Publish         *bool      `json:"publish,omitempty"`
}

type ShiftPatch struct {
	Role            *string     `json:"role,omitempty"`
	Date            *types.Date `json:"date,omitempty"`
	StartTime       *string     `json:"start_time,omitempty"`
	EndTime         *string     `json:"end_time,omitempty"`
	HourlyRate      *float64    `json:"hourly_rate,omitempty"`
	UrgencyLevel    *string     `json:"urgency_level,omitempty"`
	BonusPercentage *int        `json:"bonus_percentage,omitempty"`
	Description     *string     `json:"description,omitempty"`
	Requirements    *[]string   `json:"requirements,omitempty"`
	Lat             *float64    `json:"lat,omitempty"`
	Lng             *float64    `json:"lng,omitempty"`
	Address         *string     `json:"address,omitempty"`
}

type Account struct {
	Id        string    `json:"id"`
	UserType  string    `json:"user_type"`
	CreatedAt time.Time `json:"created_at"`
}

type AccountTypeRequest struct {
	UserType string `json:"user_type"`
}

type Me struct {
	Account           Account            `json:"account"`
	WorkerProfile     *WorkerProfile     `json:"worker_profile,omitempty"`
	RestaurantProfile *RestaurantProfile `json:"restaurant_profile,omitempty"`
}

type WorkerProfile struct {
	UserId         string          `json:"user_id"`
	Name           string          `json:"name"`
	Email          string          `json:"email,omitempty"`
	Phone          string          `json:"phone,omitempty"`
	Certifications []string        `json:"certifications"`
	Skills         []string        `json:"skills"`
	Roles          []string        `json:"roles"`
	ServiceRadius  int             `json:"service_radius"`
	Experience     string          `json:"experience"`
	Availability   map[string]bool `json:"availability"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

type DayHours struct {
	Open   string `json:"open,omitempty"`
	Close  string `json:"close,omitempty"`
	Closed bool   `json:"closed"`
}

type PayRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

type Manager struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Position string `json:"position,omitempty"`
}

type RestaurantProfile struct {
	UserId               string              `json:"user_id"`
	RestaurantName       string              `json:"restaurant_name"`
	Email                string              `json:"email,omitempty"`
	Phone                string              `json:"phone,omitempty"`
	Website              string              `json:"website,omitempty"`
	Description          string              `json:"description,omitempty"`
	CuisineType          string              `json:"cuisine_type,omitempty"`
	RestaurantType       string              `json:"restaurant_type,omitempty"`
	Address              string              `json:"address,omitempty"`
	Location             *Location           `json:"location,omitempty"`
	Manager              Manager             `json:"manager"`
	OperatingHours       map[string]DayHours `json:"operating_hours"`
	TeamSize             string              `json:"team_size,omitempty"`
	AverageShiftsPerWeek string              `json:"average_shifts_per_week,omitempty"`
	PayRange             PayRange            `json:"pay_range"`
	PreferredExperience  []string            `json:"preferred_experience"`
	CommonRoles          []string            `json:"common_roles"`
	Benefits             []string            `json:"benefits"`
	CreatedAt            time.Time           `json:"created_at"`
	UpdatedAt            time.Time           `json:"updated_at"`
}

type ReceivedRating struct {
	Rating   int       `json:"rating"`
	Comment  *string   `json:"comment,omitempty"`
	FromId   string    `json:"from_id"`
	FromName string    `json:"from_name"`
	ShiftId  string    `json:"shift_id"`
	Date     time.Time `json:"date"`
}

type RatingSummary struct {
	ProfileId     string           `json:"profile_id"`
	UserType      string           `json:"user_type"`
	AverageRating float64          `json:"average_rating"`
	TotalRatings  int              `json:"total_ratings"`
	Ratings       []ReceivedRating `json:"ratings"`
}

type RatingRequest struct {
	Rating  int     `json:"rating"`
	Comment *string `json:"comment,omitempty"`
}

type MessageRequest struct {
	Message string `json:"message"`
}

type DemoRequest struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type GeocodeResult struct {
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
	DisplayName string  `json:"display_name"`
}

type GeocodeJob struct {
	Id         string    `json:"id"`
	TargetKind string    `json:"target_kind"`
	TargetId   string    `json:"target_id"`
	Address    string    `json:"address"`
	Status     string    `json:"status"`
	Error      *string   `json:"error,omitempty"`
	Attempts   int       `json:"attempts"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type CreateShiftParams struct {
	XIdempotencyKey *string `json:"X-Idempotency-Key,omitempty"`
}

type ApplyToShiftParams struct {
	XIdempotencyKey *string `json:"X-Idempotency-Key,omitempty"`
}

type ListRestaurantShiftsParams struct {
	Status *string `form:"status,omitempty" json:"status,omitempty"`
}

type DiscoverShiftsParams struct {
	Lat         *float64 `form:"lat,omitempty" json:"lat,omitempty"`
	Lng         *float64 `form:"lng,omitempty" json:"lng,omitempty"`
	Address     *string  `form:"address,omitempty" json:"address,omitempty"`
	MaxDistance *float64 `form:"max_distance,omitempty" json:"max_distance,omitempty"`
	MinRate     *float64 `form:"min_rate,omitempty" json:"min_rate,omitempty"`
	MaxRate     *float64 `form:"max_rate,omitempty" json:"max_rate,omitempty"`
	Role        *string  `form:"role,omitempty" json:"role,omitempty"`
	UrgentOnly  *bool    `form:"urgent_only,omitempty" json:"urgent_only,omitempty"`
}

type GeocodeParams struct {
	Q string `form:"q" json:"q"`
}
