package domain

import (
	"fmt"
	"math"
)

// EarthRadiusMiles is the mean Earth radius used for all distance math.
const EarthRadiusMiles = 3959.0

type Point struct {
	Lat float64
	Lng float64
}

func ValidateCoordinates(lat, lng float64) error {
	if math.IsNaN(lat) || math.IsNaN(lng) || lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return fmt.Errorf("%w: coordinates out of range (%f, %f)", ErrValidation, lat, lng)
	}
	return nil
}

func rad(deg float64) float64 { return deg * math.Pi / 180 }
func deg(r float64) float64   { return r * 180 / math.Pi }

// Haversine returns the great-circle distance between two points in miles.
func Haversine(a, b Point) float64 {
	dLat := rad(b.Lat - a.Lat)
	dLng := rad(b.Lng - a.Lng)
	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(rad(a.Lat))*math.Cos(rad(b.Lat))*math.Sin(dLng/2)*math.Sin(dLng/2)
	return EarthRadiusMiles * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// Destination returns the point distanceMiles away from origin along the
// bearing (radians, clockwise from north). Longitude is wrapped into
// [-180, 180) so points across the antimeridian stay valid.
func Destination(origin Point, distanceMiles, bearing float64) Point {
	d := distanceMiles / EarthRadiusMiles
	lat1 := rad(origin.Lat)
	lng1 := rad(origin.Lng)
	lat2 := math.Asin(math.Sin(lat1)*math.Cos(d) + math.Cos(lat1)*math.Sin(d)*math.Cos(bearing))
	lng2 := lng1 + math.Atan2(
		math.Sin(bearing)*math.Sin(d)*math.Cos(lat1),
		math.Cos(d)-math.Sin(lat1)*math.Sin(lat2),
	)
	return Point{Lat: deg(lat2), Lng: math.Mod(deg(lng2)+540, 360) - 180}
}

// RoundTenth rounds to one decimal place.
func RoundTenth(v float64) float64 { return math.Round(v*10) / 10 }
