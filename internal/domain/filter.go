package domain

import (
	"sort"
	"strings"
)

// ShiftFilter holds the discovery predicates. Nil fields are not applied.
type ShiftFilter struct {
	Origin      *Point
	MaxDistance *float64
	MinRate     *float64
	MaxRate     *float64
	Role        string
	UrgentOnly  bool
}

// DiscoveredShift pairs a shift with its distance from the search origin.
type DiscoveredShift struct {
	Shift    Shift
	Distance *float64
}

// Apply filters published shifts. With an origin, shifts without a location
// are dropped and the rest are ordered nearest first; otherwise newest first.
func (f ShiftFilter) Apply(shifts []Shift) []DiscoveredShift {
	out := make([]DiscoveredShift, 0, len(shifts))
	for _, s := range shifts {
		if s.Status != ShiftStatusPublished {
			continue
		}
		if f.MinRate != nil && s.HourlyRate < *f.MinRate {
			continue
		}
		if f.MaxRate != nil && s.HourlyRate > *f.MaxRate {
			continue
		}
		if f.Role != "" && !strings.EqualFold(f.Role, "all") && !strings.EqualFold(f.Role, s.Role) {
			continue
		}
		if f.UrgentOnly && !s.Urgent() {
			continue
		}
		d := DiscoveredShift{Shift: s}
		if f.Origin != nil {
			if s.Location == nil {
				continue
			}
			dist := RoundTenth(Haversine(*f.Origin, Point{Lat: s.Location.Lat, Lng: s.Location.Lng}))
			if f.MaxDistance != nil && dist > *f.MaxDistance {
				continue
			}
			d.Distance = &dist
		}
		out = append(out, d)
	}
	if f.Origin != nil {
		sort.SliceStable(out, func(i, j int) bool {
			if *out[i].Distance != *out[j].Distance {
				return *out[i].Distance < *out[j].Distance
			}
			return out[i].Shift.CreatedAt.Before(out[j].Shift.CreatedAt)
		})
	} else {
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Shift.CreatedAt.After(out[j].Shift.CreatedAt)
		})
	}
	return out
}
