package geocoder

import (
	"context"
	"fmt"
	"hash/fnv"
	"strings"

	"shiftserve/internal/application"
	"shiftserve/internal/domain"
)

var _ application.Geocoder = (*Fake)(nil)

// Fake answers from a fixed table. Unknown addresses resolve to a stable
// point near Base unless Strict is set, in which case they are not found.
type Fake struct {
	Known  map[string]domain.GeocodeResult
	Base   domain.Point
	Strict bool
}

func NewFake() *Fake {
	return &Fake{
		Known: map[string]domain.GeocodeResult{
			"new york, ny":    {Lat: 40.7128, Lng: -74.0060, DisplayName: "New York, NY, USA"},
			"times square":    {Lat: 40.7580, Lng: -73.9855, DisplayName: "Times Square, Manhattan, NY, USA"},
			"los angeles, ca": {Lat: 34.0522, Lng: -118.2437, DisplayName: "Los Angeles, CA, USA"},
		},
		Base: domain.Point{Lat: 40.7128, Lng: -74.0060},
	}
}

func (f *Fake) Geocode(_ context.Context, address string) (domain.GeocodeResult, error) {
	key := Normalize(address)
	if key == "" {
		return domain.GeocodeResult{}, fmt.Errorf("%w: address is required", application.ErrBadRequest)
	}
	if r, ok := f.Known[key]; ok {
		return r, nil
	}
	if f.Strict {
		return domain.GeocodeResult{}, fmt.Errorf("%w: no match for %q", application.ErrNotFound, address)
	}
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	sum := h.Sum32()
	miles := float64(sum%2000) / 100
	bearing := float64(sum>>11%6283) / 1000
	p := domain.Destination(f.Base, miles, bearing)
	return domain.GeocodeResult{Lat: p.Lat, Lng: p.Lng, DisplayName: strings.TrimSpace(address)}, nil
}

// Normalize lower-cases an address and collapses whitespace. It doubles as
// the cache key.
func Normalize(address string) string {
	return strings.Join(strings.Fields(strings.ToLower(address)), " ")
}
