package geocoder_test

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"shiftserve/internal/application"
	"shiftserve/internal/infrastructure/geocoder"
	"shiftserve/internal/infrastructure/httpx"

	"github.com/stretchr/testify/require"
)

type roundTripFunc func(*http.Request) *http.Response

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r), nil }

func client(resBody string, code int, seen **http.Request) *httpx.Client {
	return &httpx.Client{
		MaxElapsed: 500 * time.Millisecond,
		HTTP: &http.Client{
			Timeout: 2 * time.Second,
			Transport: roundTripFunc(func(r *http.Request) *http.Response {
				if seen != nil {
					*seen = r
				}
				return &http.Response{
					StatusCode: code,
					Body:       io.NopCloser(strings.NewReader(resBody)),
					Header:     make(http.Header),
				}
			}),
		},
	}
}

const sampleOK = `[{"lat":"40.7580","lon":"-73.9855","display_name":"Times Square, Manhattan"}]`

func TestNominatim_Geocode(t *testing.T) {
	var req *http.Request
	n := &geocoder.Nominatim{
		BaseURL:   "https://nominatim.example.org",
		UserAgent: "shiftserve-test",
		Client:    client(sampleOK, 200, &req),
	}
	res, err := n.Geocode(context.Background(), "Times Square")
	require.NoError(t, err)
	require.InDelta(t, 40.758, res.Lat, 1e-6)
	require.InDelta(t, -73.9855, res.Lng, 1e-6)
	require.Equal(t, "Times Square, Manhattan", res.DisplayName)

	require.Equal(t, "/search", req.URL.Path)
	require.Equal(t, "json", req.URL.Query().Get("format"))
	require.Equal(t, "1", req.URL.Query().Get("limit"))
	require.Equal(t, "Times Square", req.URL.Query().Get("q"))
	require.Equal(t, "shiftserve-test", req.Header.Get("User-Agent"))
}

func TestNominatim_NoMatch(t *testing.T) {
	n := &geocoder.Nominatim{BaseURL: "https://nominatim.example.org", Client: client(`[]`, 200, nil)}
	_, err := n.Geocode(context.Background(), "Atlantis")
	require.ErrorIs(t, err, application.ErrNotFound)
}

func TestNominatim_BadRequest(t *testing.T) {
	n := &geocoder.Nominatim{BaseURL: "https://nominatim.example.org", Client: client(sampleOK, 200, nil)}
	_, err := n.Geocode(context.Background(), "   ")
	require.ErrorIs(t, err, application.ErrBadRequest)
}

func TestNominatim_UpstreamError(t *testing.T) {
	n := &geocoder.Nominatim{BaseURL: "https://nominatim.example.org", Client: client(`denied`, 403, nil)}
	_, err := n.Geocode(context.Background(), "Times Square")
	require.Error(t, err)
	require.Contains(t, err.Error(), "status 403")
}

func TestFake_Geocode(t *testing.T) {
	f := geocoder.NewFake()
	res, err := f.Geocode(context.Background(), "  New   York, NY ")
	require.NoError(t, err)
	require.InDelta(t, 40.7128, res.Lat, 1e-9)

	a, err := f.Geocode(context.Background(), "12 Elm Street")
	require.NoError(t, err)
	b, err := f.Geocode(context.Background(), "12 elm street")
	require.NoError(t, err)
	require.Equal(t, a.Lat, b.Lat)

	f.Strict = true
	_, err = f.Geocode(context.Background(), "12 Elm Street")
	require.ErrorIs(t, err, application.ErrNotFound)
}
