package application

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"shiftserve/internal/domain"
)

// DemoDistances are the distances, in miles, of the generated demo shifts.
var DemoDistances = []float64{10, 20, 30}

const demoRestaurantID = "demo-restaurant"

// GenerateDemoShifts replaces earlier generated shifts with a fresh set
// placed around the given point.
func (s *MarketplaceService) GenerateDemoShifts(ctx context.Context, lat, lng float64) ([]domain.Shift, error) {
	if err := domain.ValidateCoordinates(lat, lng); err != nil {
		return nil, translate(err)
	}
	origin := domain.Point{Lat: lat, Lng: lng}
	now := s.clock.Now()
	y, m, d := now.AddDate(0, 0, 1).Date()
	tomorrow := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)

	out := make([]domain.Shift, 0, len(DemoDistances))
	err := s.uow.Do(ctx, func(ctx context.Context) error {
		if _, err := s.shifts.DeleteGenerated(ctx); err != nil {
			return err
		}
		for i, dist := range DemoDistances {
			p := domain.Destination(origin, dist, s.float()*2*math.Pi)
			urgency := domain.UrgencyLevels[s.intn(len(domain.UrgencyLevels))]
			role := pick(s, s.catalog.Roles, "Server")
			addr := fmt.Sprintf("%d %s", 1000+s.intn(9000), pick(s, s.catalog.StreetNames, "Main St"))
			sh := domain.Shift{
				ID:              s.idgen.New(),
				RestaurantID:    fmt.Sprintf("%s-%d", demoRestaurantID, i+1),
				RestaurantName:  pick(s, s.catalog.DemoRestaurants, "Demo Kitchen"),
				Role:            role,
				Date:            tomorrow,
				StartTime:       "17:00",
				EndTime:         "23:00",
				HourlyRate:      float64(15 + s.intn(10)),
				UrgencyLevel:    urgency,
				BonusPercentage: urgency.DefaultBonus(),
				Description:     demoDescription(role, urgency),
				Requirements:    s.demoRequirements(),
				Status:          domain.ShiftStatusPublished,
				Location:        &domain.Location{Lat: p.Lat, Lng: p.Lng, Address: addr},
				Address:         addr,
				Generated:       true,
				CreatedAt:       now,
				UpdatedAt:       now,
			}
			if err := s.shifts.Create(ctx, sh); err != nil {
				return err
			}
			out = append(out, sh)
		}
		return nil
	})
	if err != nil {
		return nil, translate(err)
	}
	return out, nil
}

func demoDescription(role string, urgency domain.UrgencyLevel) string {
	prefix := ""
	if urgency.Urgent() {
		prefix = "Urgent! "
	}
	return fmt.Sprintf("%sWe need a %s for tomorrow's dinner service.", prefix, strings.ToLower(role))
}

func (s *MarketplaceService) demoRequirements() []string {
	sets := s.catalog.DemoRequirements
	if len(sets) == 0 {
		return nil
	}
	return append([]string(nil), sets[s.intn(len(sets))]...)
}

func pick(s *MarketplaceService, list []string, fallback string) string {
	if len(list) == 0 {
		return fallback
	}
	return list[s.intn(len(list))]
}
