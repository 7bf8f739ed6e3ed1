package geocoder

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"shiftserve/internal/application"
	"shiftserve/internal/domain"
	"shiftserve/internal/infrastructure/httpx"
)

const nominatimSearchPath = "/search"

// Nominatim resolves addresses through an OpenStreetMap Nominatim instance.
type Nominatim struct {
	BaseURL   string
	UserAgent string
	Client    *httpx.Client
	Log       httpx.Logger
}

var _ application.Geocoder = (*Nominatim)(nil)

type nominatimPlace struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

func (n *Nominatim) Geocode(ctx context.Context, address string) (domain.GeocodeResult, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return domain.GeocodeResult{}, fmt.Errorf("%w: address is required", application.ErrBadRequest)
	}
	if n.BaseURL == "" {
		return domain.GeocodeResult{}, errors.New("nominatim: missing base url")
	}
	u, err := url.Parse(n.BaseURL)
	if err != nil {
		return domain.GeocodeResult{}, fmt.Errorf("nominatim: invalid base url: %w", err)
	}
	u.Path = strings.TrimRight(u.Path, "/") + nominatimSearchPath
	q := u.Query()
	q.Set("format", "json")
	q.Set("q", address)
	q.Set("limit", "1")
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return domain.GeocodeResult{}, fmt.Errorf("nominatim: create request: %w", err)
	}
	var client httpx.Client
	if n.Client != nil {
		client = *n.Client
	}
	if client.UserAgent == "" {
		client.UserAgent = n.UserAgent
	}

	var places []nominatimPlace
	if err := client.DoJSON(ctx, req, &places, n.Log); err != nil {
		return domain.GeocodeResult{}, fmt.Errorf("nominatim: %w", err)
	}
	if len(places) == 0 {
		return domain.GeocodeResult{}, fmt.Errorf("%w: no match for %q", application.ErrNotFound, address)
	}
	lat, err := strconv.ParseFloat(places[0].Lat, 64)
	if err != nil {
		return domain.GeocodeResult{}, fmt.Errorf("nominatim: bad lat %q", places[0].Lat)
	}
	lng, err := strconv.ParseFloat(places[0].Lon, 64)
	if err != nil {
		return domain.GeocodeResult{}, fmt.Errorf("nominatim: bad lon %q", places[0].Lon)
	}
	return domain.GeocodeResult{Lat: lat, Lng: lng, DisplayName: places[0].DisplayName}, nil
}
