package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHaversine(t *testing.T) {
	nyc := Point{Lat: 40.7128, Lng: -74.0060}
	la := Point{Lat: 34.0522, Lng: -118.2437}
	require.InDelta(t, 2445, Haversine(nyc, la), 5)
	require.InDelta(t, 0, Haversine(nyc, nyc), 1e-9)
}

func TestDestination_RoundTrip(t *testing.T) {
	origin := Point{Lat: 40.7128, Lng: -74.0060}
	for _, dist := range []float64{10, 20, 30} {
		for _, bearing := range []float64{0, math.Pi / 3, math.Pi, 5} {
			p := Destination(origin, dist, bearing)
			require.InDelta(t, dist, Haversine(origin, p), 0.01)
		}
	}
}

func TestDestination_WrapsAntimeridian(t *testing.T) {
	east := Point{Lat: 10, Lng: 179.9}
	p := Destination(east, 30, math.Pi/2)
	require.Less(t, p.Lng, -179.0)
	require.NoError(t, ValidateCoordinates(p.Lat, p.Lng))
	require.InDelta(t, 30, Haversine(east, p), 0.01)

	west := Point{Lat: -10, Lng: -179.9}
	p = Destination(west, 30, 3*math.Pi/2)
	require.Greater(t, p.Lng, 179.0)
	require.NoError(t, ValidateCoordinates(p.Lat, p.Lng))
}

func TestValidateCoordinates(t *testing.T) {
	require.NoError(t, ValidateCoordinates(40, -74))
	require.ErrorIs(t, ValidateCoordinates(91, 0), ErrValidation)
	require.ErrorIs(t, ValidateCoordinates(0, -181), ErrValidation)
}

func TestRoundTenth(t *testing.T) {
	require.Equal(t, 2.3, RoundTenth(2.34))
	require.Equal(t, 2.4, RoundTenth(2.35))
}
