package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"shiftserve/internal/application"
	"shiftserve/internal/domain"
	"shiftserve/internal/infrastructure/geocoder"
	"shiftserve/internal/infrastructure/logx"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const geocodePrefix = "geocode:"

var _ application.Geocoder = (*GeocodeCache)(nil)

// GeocodeCache memoises a Geocoder in Redis. Cache failures fall through to
// the wrapped geocoder; misses are not cached.
type GeocodeCache struct {
	Next   application.Geocoder
	Client *redis.Client
	TTL    time.Duration
}

type cachedResult struct {
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
	DisplayName string  `json:"display_name"`
}

func NewGeocodeCache(next application.Geocoder, client *redis.Client, ttl time.Duration) *GeocodeCache {
	return &GeocodeCache{Next: next, Client: client, TTL: ttl}
}

func (c *GeocodeCache) Geocode(ctx context.Context, address string) (domain.GeocodeResult, error) {
	key := geocodePrefix + geocoder.Normalize(address)
	raw, err := c.Client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var cr cachedResult
		if jerr := json.Unmarshal(raw, &cr); jerr == nil {
			return domain.GeocodeResult{Lat: cr.Lat, Lng: cr.Lng, DisplayName: cr.DisplayName}, nil
		}
	case !errors.Is(err, redis.Nil):
		logx.WithFields(ctx).Warn("geocode_cache.get_failed", zap.String("key", key), zap.Error(err))
	}

	res, err := c.Next.Geocode(ctx, address)
	if err != nil {
		return domain.GeocodeResult{}, err
	}
	b, _ := json.Marshal(cachedResult{Lat: res.Lat, Lng: res.Lng, DisplayName: res.DisplayName})
	if err := c.Client.Set(ctx, key, b, c.TTL).Err(); err != nil {
		logx.WithFields(ctx).Warn("geocode_cache.set_failed", zap.String("key", key), zap.Error(err))
	}
	return res, nil
}
