package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"shiftserve/internal/application"
	"shiftserve/internal/config"
	"shiftserve/internal/domain"
	"shiftserve/internal/infrastructure/authx"
	"shiftserve/internal/infrastructure/catalog"
	infraconfig "shiftserve/internal/infrastructure/config"
	"shiftserve/internal/infrastructure/geocoder"
	"shiftserve/internal/infrastructure/grpc/geoclient"
	"shiftserve/internal/infrastructure/grpc/geoserver"
	httpserver "shiftserve/internal/infrastructure/http"
	"shiftserve/internal/infrastructure/httpx"
	"shiftserve/internal/infrastructure/logx"
	"shiftserve/internal/infrastructure/memstore"
	"shiftserve/internal/infrastructure/pg"
	"shiftserve/internal/infrastructure/rabbitmq"
	"shiftserve/internal/infrastructure/realtime"
	redisstore "shiftserve/internal/infrastructure/redis"
	"shiftserve/internal/infrastructure/worker"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

var ErrMissingDBURL = errors.New("DATABASE_URL is required for STORAGE=pg")

// Storage bundles the repositories of the configured backend.
type Storage struct {
	Shifts   application.ShiftRepo
	Profiles application.ProfileRepo
	Jobs     application.GeocodeJobRepo
	UoW      application.UnitOfWork
	Ping     func(ctx context.Context) error
	// Queue is only set for the memory backend, whose jobs are processed in-process.
	Queue <-chan domain.GeocodeJob
	DB    *pg.DB
}

// Events is the publisher handed to the service plus the optional relay
// feeding events from other API replicas into the local hub.
type Events struct {
	Publisher application.EventPublisher
	Relay     *redisstore.Relay
}

func ProvideLogger() *zap.Logger { return logx.L() }

func ProvideConfig() config.Config { return config.Load() }

func ProvideStorage(ctx context.Context, log *zap.Logger, cfg config.Config) (Storage, func(), error) {
	switch cfg.Storage {
	case "memory":
		m := memstore.New()
		jobs := m.GeocodeJobs()
		return Storage{
			Shifts:   m.Shifts(),
			Profiles: m.Profiles(),
			Jobs:     jobs,
			UoW:      m.UnitOfWork(),
			Ping:     m.Ping,
			Queue:    jobs.Queue(),
		}, func() {}, nil
	case "pg":
		if cfg.DatabaseURL == "" {
			return Storage{}, func() {}, ErrMissingDBURL
		}
		db, err := pg.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return Storage{}, func() {}, err
		}
		if err := pg.RunMigrations(ctx, db); err != nil {
			db.Close()
			return Storage{}, func() {}, err
		}
		cleanup := func() {
			log.Info("closing pg")
			db.Close()
		}
		return Storage{
			Shifts:   pg.NewShiftRepo(db),
			Profiles: pg.NewProfileRepo(db),
			Jobs:     pg.NewGeocodeJobRepo(db),
			UoW:      pg.NewUnitOfWork(db),
			Ping:     db.Ping,
			DB:       db,
		}, cleanup, nil
	default:
		return Storage{}, func() {}, fmt.Errorf("unsupported STORAGE=%q", cfg.Storage)
	}
}

func needsRedis(cfg config.Config) bool {
	return cfg.IdempotencyBackend == "redis" ||
		cfg.RealtimeBackend == "redis" ||
		(cfg.Geocoder == "nominatim" && cfg.GeocodeCacheTTL > 0)
}

// ProvideRedisClient returns a nil client when no configured backend uses Redis.
func ProvideRedisClient(cfg config.Config) (*redis.Client, func(), error) {
	if !needsRedis(cfg) {
		return nil, func() {}, nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	return client, func() { _ = client.Close() }, nil
}

func ProvideIdempotency(client *redis.Client, cfg config.Config) (application.IdempotencyStore, error) {
	switch cfg.IdempotencyBackend {
	case "", "none":
		return application.NoopIdempotency{}, nil
	case "redis":
		return redisstore.New(client, cfg.RedisTTL), nil
	default:
		return nil, fmt.Errorf("unsupported IDEMPOTENCY_BACKEND=%q", cfg.IdempotencyBackend)
	}
}

func localGeocoder(cfg config.Config, client *redis.Client, log *zap.Logger) (application.Geocoder, error) {
	var g application.Geocoder
	switch cfg.Geocoder {
	case "", "fake":
		return geocoder.NewFake(), nil
	case "nominatim":
		g = &geocoder.Nominatim{
			BaseURL:   cfg.GeocoderBaseURL,
			UserAgent: cfg.GeocoderUserAgent,
			Client: &httpx.Client{
				HTTP:       &http.Client{Timeout: cfg.RequestTimeout},
				UserAgent:  cfg.GeocoderUserAgent,
				MaxElapsed: cfg.RequestTimeout,
			},
			Log: httpx.Zap(log),
		}
	default:
		return nil, fmt.Errorf("unsupported GEOCODER=%q", cfg.Geocoder)
	}
	if client != nil && cfg.GeocodeCacheTTL > 0 {
		g = redisstore.NewGeocodeCache(g, client, cfg.GeocodeCacheTTL)
	}
	return g, nil
}

// ProvideGeocoder dials the worker's gRPC geocoder when GRPC_TARGET is set and
// resolves in-process otherwise.
func ProvideGeocoder(ctx context.Context, cfg config.Config, client *redis.Client, log *zap.Logger) (application.Geocoder, func(), error) {
	if cfg.GRPCTarget != "" {
		c, cleanup, err := geoclient.New(ctx, cfg.GRPCTarget, cfg.RequestTimeout)
		if err != nil {
			return nil, func() {}, fmt.Errorf("dial geocoder %s: %w", cfg.GRPCTarget, err)
		}
		return c, cleanup, nil
	}
	g, err := localGeocoder(cfg, client, log)
	return g, func() {}, err
}

func ProvideGeoServer(cfg config.Config, client *redis.Client, log *zap.Logger) (*geoserver.Server, error) {
	g, err := localGeocoder(cfg, client, log)
	if err != nil {
		return nil, err
	}
	return geoserver.NewServer(g, log), nil
}

func ProvideCatalog(cfg config.Config) (domain.Catalog, error) {
	return catalog.Load(cfg.CatalogFile)
}

func ProvideHub() *realtime.Hub { return realtime.NewHub() }

func ProvideEvents(cfg config.Config, hub *realtime.Hub, client *redis.Client) (Events, func(), error) {
	var ev Events
	var pubs application.MultiPublisher
	cleanup := func() {}

	switch cfg.RealtimeBackend {
	case "", "local":
		pubs = append(pubs, hub)
	case "redis":
		ev.Relay = redisstore.NewRelay(client)
		pubs = append(pubs, ev.Relay)
	default:
		return Events{}, cleanup, fmt.Errorf("unsupported REALTIME_BACKEND=%q", cfg.RealtimeBackend)
	}

	switch cfg.EventsBackend {
	case "", "none":
	case "rabbitmq":
		b, err := rabbitmq.Dial(cfg.RabbitMQURL)
		if err != nil {
			return Events{}, cleanup, fmt.Errorf("dial rabbitmq: %w", err)
		}
		pubs = append(pubs, b)
		cleanup = b.Close
	default:
		return Events{}, cleanup, fmt.Errorf("unsupported EVENTS_BACKEND=%q", cfg.EventsBackend)
	}

	ev.Publisher = pubs
	return ev, cleanup, nil
}

func ProvideMarketplaceService(st Storage, g application.Geocoder, idem application.IdempotencyStore, ev Events, cat domain.Catalog, log *zap.Logger) *application.MarketplaceService {
	return application.NewMarketplaceService(st.Shifts, st.Profiles, st.Jobs, g, idem,
		application.WithUnitOfWork(st.UoW),
		application.WithEvents(ev.Publisher),
		application.WithCatalog(cat),
		application.WithLogger(log),
	)
}

// ProvideJobService builds the service the geocode worker drives. Job
// processing publishes no events and takes no idempotency keys.
func ProvideJobService(st Storage, g application.Geocoder, log *zap.Logger) *application.MarketplaceService {
	return application.NewMarketplaceService(st.Shifts, st.Profiles, st.Jobs, g, nil,
		application.WithUnitOfWork(st.UoW),
		application.WithLogger(log),
	)
}

func ProvideHTTPServer(svc *application.MarketplaceService, cfg config.Config, hub *realtime.Hub, st Storage) *httpserver.Server {
	srv := httpserver.NewServer(svc, authx.NewVerifier(cfg.JWTSecret),
		httpserver.WithHub(hub),
		httpserver.WithDemo(cfg.DemoShifts),
	)
	srv.SetReadyCheck(st.Ping)
	return srv
}

func ProvideAPI(cfg config.Config, srv *httpserver.Server, hub *realtime.Hub, ev Events, st Storage, svc *application.MarketplaceService, log *zap.Logger) *API {
	a := &API{
		HTTP: &http.Server{
			Addr:    ":" + cfg.Port,
			Handler: httpserver.NewRouter(srv),
		},
		hub:   hub,
		relay: ev.Relay,
		log:   log,
	}
	if st.Queue != nil {
		w := worker.NewChanWorker(st.Jobs, svc, st.Queue)
		w.Timeout = jobTimeout(cfg)
		w.PollEvery = cfg.WorkerPoll
		w.BatchLimit = cfg.WorkerBatchSize
		a.worker = w
	}
	return a
}

// jobTimeout leaves room for the geocoder's whole retry window plus a final
// attempt that starts just before the window closes.
func jobTimeout(cfg config.Config) time.Duration {
	return 2*cfg.RequestTimeout + infraconfig.DefaultJobMargin
}

func ProvideDBWorker(ctx context.Context, cfg config.Config, st Storage, svc *application.MarketplaceService, log *zap.Logger) (*worker.DbWorker, error) {
	if st.DB == nil {
		return nil, fmt.Errorf("db worker needs STORAGE=pg, got %q", cfg.Storage)
	}
	wake, err := pg.Listen(ctx, cfg.DatabaseURL, pg.GeocodeJobsChannel)
	if err != nil {
		// Polling still drains the queue.
		log.Warn("listen_failed", zap.String("channel", pg.GeocodeJobsChannel), zap.Error(err))
	}
	return &worker.DbWorker{
		Jobs:       st.Jobs,
		Processor:  svc,
		Wake:       wake,
		PollEvery:  cfg.WorkerPoll,
		BatchLimit: cfg.WorkerBatchSize,
		JobTimeout: jobTimeout(cfg),
		Log:        log,
	}, nil
}
