package bootstrap

import (
	"context"
	"testing"
	"time"

	"shiftserve/internal/application"
	"shiftserve/internal/config"
	"shiftserve/internal/infrastructure/geocoder"
	redisstore "shiftserve/internal/infrastructure/redis"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func memoryConfig() config.Config {
	return config.Config{
		Port:               "0",
		Storage:            "memory",
		JWTSecret:          "test-secret",
		Geocoder:           "fake",
		IdempotencyBackend: "none",
		EventsBackend:      "none",
		RealtimeBackend:    "local",
	}
}

func TestProvideStorage_Memory(t *testing.T) {
	st, cleanup, err := ProvideStorage(context.Background(), zap.NewNop(), memoryConfig())
	require.NoError(t, err)
	defer cleanup()
	require.NotNil(t, st.Queue)
	require.Nil(t, st.DB)
	require.NoError(t, st.Ping(context.Background()))
}

func TestProvideStorage_Errors(t *testing.T) {
	cfg := memoryConfig()
	cfg.Storage = "pg"
	_, _, err := ProvideStorage(context.Background(), zap.NewNop(), cfg)
	require.ErrorIs(t, err, ErrMissingDBURL)

	cfg.Storage = "sqlite"
	_, _, err = ProvideStorage(context.Background(), zap.NewNop(), cfg)
	require.Error(t, err)
}

func TestProvideRedisClient_OnlyWhenNeeded(t *testing.T) {
	c, cleanup, err := ProvideRedisClient(memoryConfig())
	require.NoError(t, err)
	cleanup()
	require.Nil(t, c)

	cfg := memoryConfig()
	cfg.RealtimeBackend = "redis"
	c, cleanup, err = ProvideRedisClient(cfg)
	require.NoError(t, err)
	defer cleanup()
	require.NotNil(t, c)
}

func TestProvideIdempotency(t *testing.T) {
	store, err := ProvideIdempotency(nil, memoryConfig())
	require.NoError(t, err)
	require.IsType(t, application.NoopIdempotency{}, store)

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()
	cfg := memoryConfig()
	cfg.IdempotencyBackend = "redis"
	cfg.RedisTTL = time.Minute
	store, err = ProvideIdempotency(rdb, cfg)
	require.NoError(t, err)
	require.IsType(t, &redisstore.Store{}, store)

	cfg.IdempotencyBackend = "memcached"
	_, err = ProvideIdempotency(rdb, cfg)
	require.Error(t, err)
}

func TestLocalGeocoder(t *testing.T) {
	g, err := localGeocoder(memoryConfig(), nil, zap.NewNop())
	require.NoError(t, err)
	require.IsType(t, &geocoder.Fake{}, g)

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()
	cfg := memoryConfig()
	cfg.Geocoder = "nominatim"
	cfg.GeocodeCacheTTL = time.Hour
	g, err = localGeocoder(cfg, rdb, zap.NewNop())
	require.NoError(t, err)
	require.IsType(t, &redisstore.GeocodeCache{}, g)

	cfg.Geocoder = "google"
	_, err = localGeocoder(cfg, rdb, zap.NewNop())
	require.Error(t, err)
}

func TestProvideEvents(t *testing.T) {
	hub := ProvideHub()
	ev, cleanup, err := ProvideEvents(memoryConfig(), hub, nil)
	require.NoError(t, err)
	defer cleanup()
	require.Nil(t, ev.Relay)
	require.Len(t, ev.Publisher, 1)

	cfg := memoryConfig()
	cfg.EventsBackend = "kafka"
	_, _, err = ProvideEvents(cfg, hub, nil)
	require.Error(t, err)
}

func TestAPI_RunStopsOnCancel(t *testing.T) {
	ctx := context.Background()
	cfg := memoryConfig()
	log := zap.NewNop()
	st, cleanup, err := ProvideStorage(ctx, log, cfg)
	require.NoError(t, err)
	defer cleanup()
	g, _, err := ProvideGeocoder(ctx, cfg, nil, log)
	require.NoError(t, err)
	idem, err := ProvideIdempotency(nil, cfg)
	require.NoError(t, err)
	cat, err := ProvideCatalog(cfg)
	require.NoError(t, err)
	hub := ProvideHub()
	ev, _, err := ProvideEvents(cfg, hub, nil)
	require.NoError(t, err)
	svc := ProvideMarketplaceService(st, g, idem, ev, cat, log)
	api := ProvideAPI(cfg, ProvideHTTPServer(svc, cfg, hub, st), hub, ev, st, svc, log)
	api.HTTP.Addr = "127.0.0.1:0"
	require.NotNil(t, api.worker)

	runCtx, cancel := context.WithCancel(ctx)
	done := make(chan error, 1)
	go func() { done <- api.Run(runCtx) }()
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("api did not stop")
	}
}
