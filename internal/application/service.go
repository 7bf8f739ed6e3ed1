package application

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"shiftserve/internal/domain"

	"go.uber.org/zap"
)

// Actor is the authenticated caller together with the side of the
// marketplace they signed up for.
type Actor struct {
	ID   string
	Type domain.UserType
}

type MarketplaceService struct {
	shifts   ShiftRepo
	profiles ProfileRepo
	jobs     GeocodeJobRepo
	geocoder Geocoder
	idem     IdempotencyStore

	uow     UnitOfWork
	events  EventPublisher
	catalog domain.Catalog
	clock   Clock
	idgen   IDGen
	log     *zap.Logger

	rndMu sync.Mutex
	rnd   *rand.Rand
}

type Option func(*MarketplaceService)

func WithClock(c Clock) Option            { return func(s *MarketplaceService) { s.clock = c } }
func WithIDGen(g IDGen) Option            { return func(s *MarketplaceService) { s.idgen = g } }
func WithUnitOfWork(u UnitOfWork) Option  { return func(s *MarketplaceService) { s.uow = u } }
func WithEvents(p EventPublisher) Option  { return func(s *MarketplaceService) { s.events = p } }
func WithCatalog(c domain.Catalog) Option { return func(s *MarketplaceService) { s.catalog = c } }
func WithLogger(l *zap.Logger) Option     { return func(s *MarketplaceService) { s.log = l } }
func WithRand(r *rand.Rand) Option        { return func(s *MarketplaceService) { s.rnd = r } }

func NewMarketplaceService(shifts ShiftRepo, profiles ProfileRepo, jobs GeocodeJobRepo, geocoder Geocoder, idem IdempotencyStore, opts ...Option) *MarketplaceService {
	s := &MarketplaceService{
		shifts:   shifts,
		profiles: profiles,
		jobs:     jobs,
		geocoder: geocoder,
		idem:     idem,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.idem == nil {
		s.idem = NoopIdempotency{}
	}
	if s.uow == nil {
		s.uow = NoopUoW{}
	}
	if s.events == nil {
		s.events = NoopPublisher{}
	}
	if s.clock == nil {
		s.clock = realClock{}
	}
	if s.idgen == nil {
		s.idgen = defaultIDGen{}
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}
	if s.rnd == nil {
		s.rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return s
}

func (s *MarketplaceService) Catalog() domain.Catalog { return s.catalog }

// mutateShift loads the shift under lock, applies fn and writes it back in
// one unit of work.
func (s *MarketplaceService) mutateShift(ctx context.Context, id string, fn func(sh *domain.Shift) error) (domain.Shift, error) {
	var out domain.Shift
	err := s.uow.Do(ctx, func(ctx context.Context) error {
		sh, err := s.shifts.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if err := fn(&sh); err != nil {
			return err
		}
		if err := s.shifts.Update(ctx, sh); err != nil {
			return err
		}
		out = sh
		return nil
	})
	if err != nil {
		return domain.Shift{}, translate(err)
	}
	return out, nil
}

// reserve guards a create-style operation with an idempotency key and
// returns the key it took. A nil or empty key skips the check.
func (s *MarketplaceService) reserve(ctx context.Context, scope string, key *string) (string, error) {
	if key == nil || *key == "" {
		return "", nil
	}
	full := scope + ":" + *key
	ok, err := s.idem.TryReserve(ctx, full)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", ErrConflict
	}
	return full, nil
}

// releaseOnError frees a reserved key when the guarded operation failed, so
// a corrected retry with the same key goes through.
func (s *MarketplaceService) releaseOnError(ctx context.Context, key string, errp *error) {
	if key == "" || *errp == nil {
		return
	}
	rctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), finalizeTimeout)
	defer cancel()
	if err := s.idem.Release(rctx, key); err != nil {
		s.log.Warn("idempotency_release_failed", zap.String("key", key), zap.Error(err))
	}
}

func (s *MarketplaceService) emit(ctx context.Context, typ domain.EventType, shiftID, actorID string, payload map[string]any) {
	e := domain.Event{
		ID:         s.idgen.New(),
		Type:       typ,
		ShiftID:    shiftID,
		ActorID:    actorID,
		Payload:    payload,
		OccurredAt: s.clock.Now(),
	}
	if err := s.events.Publish(ctx, e); err != nil {
		s.log.Warn("event_publish_failed",
			zap.String("type", string(typ)),
			zap.String("shift_id", shiftID),
			zap.Error(err),
		)
	}
}

func (s *MarketplaceService) intn(n int) int {
	s.rndMu.Lock()
	defer s.rndMu.Unlock()
	return s.rnd.Intn(n)
}

func (s *MarketplaceService) float() float64 {
	s.rndMu.Lock()
	defer s.rndMu.Unlock()
	return s.rnd.Float64()
}
