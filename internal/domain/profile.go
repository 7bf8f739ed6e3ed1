package domain

import (
	"fmt"
	"strings"
	"time"
)

const (
	DefaultServiceRadius = 25
	MinServiceRadius     = 1
	MaxServiceRadius     = 100
)

type Experience string

const (
	ExperienceEntry        Experience = "entry"
	ExperienceIntermediate Experience = "intermediate"
	ExperienceExperienced  Experience = "experienced"
	ExperienceExpert       Experience = "expert"
)

func (e Experience) Valid() bool {
	switch e {
	case ExperienceEntry, ExperienceIntermediate, ExperienceExperienced, ExperienceExpert:
		return true
	}
	return false
}

// Weekdays lists the keys used by availability and operating hours.
var Weekdays = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

func isWeekday(d string) bool {
	for _, w := range Weekdays {
		if w == d {
			return true
		}
	}
	return false
}

type WorkerProfile struct {
	UserID         string
	Name           string
	Email          string
	Phone          string
	Certifications []string
	Skills         []string
	Roles          []string
	ServiceRadius  int
	Experience     Experience
	Availability   map[string]bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Normalize fills defaults and rejects out-of-range values.
func (p *WorkerProfile) Normalize() error {
	var problems []string
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		problems = append(problems, "name is required")
	}
	if p.ServiceRadius == 0 {
		p.ServiceRadius = DefaultServiceRadius
	}
	if p.ServiceRadius < MinServiceRadius || p.ServiceRadius > MaxServiceRadius {
		problems = append(problems, fmt.Sprintf("service radius must be within %d..%d", MinServiceRadius, MaxServiceRadius))
	}
	if p.Experience == "" {
		p.Experience = ExperienceEntry
	}
	if !p.Experience.Valid() {
		problems = append(problems, "unknown experience level")
	}
	if p.Availability == nil {
		p.Availability = map[string]bool{}
	}
	for d := range p.Availability {
		if !isWeekday(d) {
			problems = append(problems, "unknown availability day "+d)
		}
	}
	for _, d := range Weekdays {
		if _, ok := p.Availability[d]; !ok {
			p.Availability[d] = false
		}
	}
	p.Certifications = dedupe(p.Certifications)
	p.Skills = dedupe(p.Skills)
	p.Roles = dedupe(p.Roles)
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrValidation, strings.Join(problems, "; "))
	}
	return nil
}

type DayHours struct {
	Open   string
	Close  string
	Closed bool
}

type PayRange struct {
	Min float64
	Max float64
}

type Manager struct {
	Name     string
	Email    string
	Phone    string
	Position string
}

type RestaurantProfile struct {
	UserID               string
	RestaurantName       string
	Email                string
	Phone                string
	Website              string
	Description          string
	CuisineType          string
	RestaurantType       string
	Address              string
	Location             *Location
	Manager              Manager
	OperatingHours       map[string]DayHours
	TeamSize             string
	AverageShiftsPerWeek string
	PayRange             PayRange
	PreferredExperience  []string
	CommonRoles          []string
	Benefits             []string
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

func (p *RestaurantProfile) Normalize() error {
	var problems []string
	p.RestaurantName = strings.TrimSpace(p.RestaurantName)
	p.Address = strings.TrimSpace(p.Address)
	if p.RestaurantName == "" {
		problems = append(problems, "restaurant name is required")
	}
	if p.PayRange.Min < 0 || p.PayRange.Max < 0 || p.PayRange.Min > p.PayRange.Max {
		problems = append(problems, "pay range must satisfy 0 <= min <= max")
	}
	if p.OperatingHours == nil {
		p.OperatingHours = map[string]DayHours{}
	}
	for d, h := range p.OperatingHours {
		if !isWeekday(d) {
			problems = append(problems, "unknown operating day "+d)
			continue
		}
		if h.Closed {
			continue
		}
		if _, err := ShiftHours(h.Open, h.Close); err != nil {
			problems = append(problems, "operating hours for "+d+" must be HH:MM")
		}
	}
	p.PreferredExperience = dedupe(p.PreferredExperience)
	p.CommonRoles = dedupe(p.CommonRoles)
	p.Benefits = dedupe(p.Benefits)
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrValidation, strings.Join(problems, "; "))
	}
	return nil
}

func dedupe(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, v := range in {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
