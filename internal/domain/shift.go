package domain

import (
	"fmt"
	"math"
	"strings"
	"time"
)

const clockLayout = "15:04"

// Location is a geocoded point with the address it was derived from.
type Location struct {
	Lat     float64
	Lng     float64
	Address string
}

type Shift struct {
	ID              string
	RestaurantID    string
	RestaurantName  string
	Role            string
	Date            time.Time
	StartTime       string
	EndTime         string
	HourlyRate      float64
	UrgencyLevel    UrgencyLevel
	BonusPercentage int
	Description     string
	Requirements    []string
	Status          ShiftStatus
	Location        *Location
	Address         string
	Applications    []Application
	Assignment      *Assignment
	ChatMessages    []ChatMessage
	Generated       bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (s *Shift) Urgent() bool    { return s.UrgencyLevel.Urgent() }
func (s *Shift) Published() bool { return s.Status == ShiftStatusPublished }
func (s *Shift) Applicants() int { return len(s.Applications) }

// Duration renders the shift length in whole hours. An end time before the
// start time wraps past midnight.
func (s *Shift) Duration() string {
	h, err := ShiftHours(s.StartTime, s.EndTime)
	if err != nil {
		return ""
	}
	return fmt.Sprintf("%d hours", h)
}

// ShiftHours returns the rounded number of hours between two HH:MM clock times.
func ShiftHours(start, end string) (int, error) {
	st, err := time.Parse(clockLayout, start)
	if err != nil {
		return 0, fmt.Errorf("%w: start time %q", ErrValidation, start)
	}
	et, err := time.Parse(clockLayout, end)
	if err != nil {
		return 0, fmt.Errorf("%w: end time %q", ErrValidation, end)
	}
	if et.Before(st) {
		et = et.Add(24 * time.Hour)
	}
	return int(math.Round(et.Sub(st).Hours())), nil
}

// Validate checks the fields a restaurant controls.
func (s *Shift) Validate() error {
	var problems []string
	if strings.TrimSpace(s.Role) == "" {
		problems = append(problems, "role is required")
	}
	if s.Date.IsZero() {
		problems = append(problems, "date is required")
	}
	if _, err := ShiftHours(s.StartTime, s.EndTime); err != nil {
		problems = append(problems, "start and end time must be HH:MM")
	}
	if s.HourlyRate <= 0 {
		problems = append(problems, "hourly rate must be positive")
	}
	if !s.UrgencyLevel.Valid() {
		problems = append(problems, "unknown urgency level")
	}
	if s.BonusPercentage < 0 || s.BonusPercentage > 100 {
		problems = append(problems, "bonus percentage must be within 0..100")
	}
	if s.Location != nil {
		if err := ValidateCoordinates(s.Location.Lat, s.Location.Lng); err != nil {
			problems = append(problems, err.Error())
		}
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrValidation, strings.Join(problems, "; "))
	}
	return nil
}

// Editable reports whether the restaurant may still change the shift details.
func (s *Shift) Editable() bool {
	return s.Status == ShiftStatusDraft || s.Status == ShiftStatusPublished
}

// Deletable reports whether the shift may be removed. Filled and completed
// shifts carry an assignment and stay.
func (s *Shift) Deletable() bool {
	switch s.Status {
	case ShiftStatusDraft, ShiftStatusPublished, ShiftStatusCancelled:
		return true
	}
	return false
}

func (s *Shift) Publish(now time.Time) error {
	if s.Status != ShiftStatusDraft {
		return transitionErr(s.Status, ShiftStatusPublished)
	}
	s.Status = ShiftStatusPublished
	s.UpdatedAt = now
	return nil
}

func (s *Shift) Cancel(now time.Time) error {
	switch s.Status {
	case ShiftStatusDraft, ShiftStatusPublished, ShiftStatusFilled:
	default:
		return transitionErr(s.Status, ShiftStatusCancelled)
	}
	s.Status = ShiftStatusCancelled
	s.UpdatedAt = now
	return nil
}

// Application returns the worker's application on this shift, if any.
func (s *Shift) Application(workerID string) (*Application, bool) {
	for i := range s.Applications {
		if s.Applications[i].WorkerID == workerID {
			return &s.Applications[i], true
		}
	}
	return nil, false
}

// Apply records a pending application. Only published shifts accept
// applications and each worker applies once.
func (s *Shift) Apply(app Application) error {
	if s.Status != ShiftStatusPublished {
		return fmt.Errorf("%w: shift is %s", ErrInvalidTransition, s.Status)
	}
	if _, ok := s.Application(app.WorkerID); ok {
		return fmt.Errorf("%w: worker already applied", ErrInvalidTransition)
	}
	app.Status = ApplicationStatusPending
	s.Applications = append(s.Applications, app)
	s.UpdatedAt = app.AppliedAt
	return nil
}

// Accept fills the shift with the worker and declines every other applicant.
func (s *Shift) Accept(workerID string, now time.Time) error {
	if s.Status != ShiftStatusPublished {
		return transitionErr(s.Status, ShiftStatusFilled)
	}
	app, ok := s.Application(workerID)
	if !ok {
		return fmt.Errorf("%w: application", ErrNotFound)
	}
	if app.Status != ApplicationStatusPending {
		return fmt.Errorf("%w: application is %s", ErrInvalidTransition, app.Status)
	}
	name := app.WorkerName
	for i := range s.Applications {
		if s.Applications[i].WorkerID == workerID {
			s.Applications[i].Status = ApplicationStatusAccepted
		} else {
			s.Applications[i].Status = ApplicationStatusDeclined
		}
	}
	if name == "" {
		name = "Unknown"
	}
	s.Assignment = &Assignment{WorkerID: workerID, WorkerName: name, AssignedAt: now}
	s.Status = ShiftStatusFilled
	s.UpdatedAt = now
	return nil
}

func (s *Shift) Decline(workerID string, now time.Time) error {
	app, ok := s.Application(workerID)
	if !ok {
		return fmt.Errorf("%w: application", ErrNotFound)
	}
	if app.Status != ApplicationStatusPending {
		return fmt.Errorf("%w: application is %s", ErrInvalidTransition, app.Status)
	}
	app.Status = ApplicationStatusDeclined
	s.UpdatedAt = now
	return nil
}

func (s *Shift) Complete(now time.Time) error {
	if s.Status != ShiftStatusFilled || s.Assignment == nil || s.Assignment.Completed {
		return transitionErr(s.Status, ShiftStatusCompleted)
	}
	s.Status = ShiftStatusCompleted
	s.Assignment.Completed = true
	s.Assignment.CompletedAt = &now
	s.UpdatedAt = now
	return nil
}

// Rate stores the rating left by one side of a completed shift. The
// restaurant rates the worker and the worker rates the restaurant.
func (s *Shift) Rate(side UserType, rating int, comment *string, now time.Time) error {
	if s.Status != ShiftStatusCompleted || s.Assignment == nil {
		return fmt.Errorf("%w: only completed shifts can be rated", ErrInvalidTransition)
	}
	if rating < 1 || rating > 5 {
		return fmt.Errorf("%w: rating must be within 1..5", ErrValidation)
	}
	if s.Assignment.RatedBy(side) {
		return fmt.Errorf("%w: %s already rated this shift", ErrInvalidTransition, side)
	}
	r := rating
	switch side {
	case UserTypeRestaurant:
		s.Assignment.RestaurantRating = &r
		s.Assignment.RestaurantComment = comment
	case UserTypeWorker:
		s.Assignment.WorkerRating = &r
		s.Assignment.WorkerComment = comment
	default:
		return fmt.Errorf("%w: unknown rater", ErrValidation)
	}
	s.UpdatedAt = now
	return nil
}

// ChatSide returns the side the user speaks for in the shift's chat. Only
// the owning restaurant and the assigned worker take part.
func (s *Shift) ChatSide(userID string) (UserType, bool) {
	if s.Assignment == nil {
		return "", false
	}
	switch userID {
	case s.RestaurantID:
		return UserTypeRestaurant, true
	case s.Assignment.WorkerID:
		return UserTypeWorker, true
	}
	return "", false
}

// ChatPeer returns the other participant of a chat the user takes part in.
func (s *Shift) ChatPeer(userID string) (string, bool) {
	side, ok := s.ChatSide(userID)
	if !ok {
		return "", false
	}
	if side == UserTypeRestaurant {
		return s.Assignment.WorkerID, true
	}
	return s.RestaurantID, true
}

// WaitingWorkers lists the assigned worker and the pending applicants.
func (s *Shift) WaitingWorkers() []string {
	var out []string
	if s.Assignment != nil {
		out = append(out, s.Assignment.WorkerID)
	}
	for _, a := range s.Applications {
		if a.Status == ApplicationStatusPending && (s.Assignment == nil || a.WorkerID != s.Assignment.WorkerID) {
			out = append(out, a.WorkerID)
		}
	}
	return out
}

// InvolvesWorker reports whether the worker applied to or holds the shift.
func (s *Shift) InvolvesWorker(workerID string) bool {
	if s.Assignment != nil && s.Assignment.WorkerID == workerID {
		return true
	}
	_, ok := s.Application(workerID)
	return ok
}

func transitionErr(from, to ShiftStatus) error {
	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
}
