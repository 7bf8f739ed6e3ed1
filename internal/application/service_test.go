package application_test

import (
	"context"
	"errors"
	"math/rand"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"shiftserve/internal/application"
	"shiftserve/internal/domain"
	"shiftserve/internal/infrastructure/geocoder"
	"shiftserve/internal/infrastructure/memstore"

	"github.com/stretchr/testify/require"
)

type fakeClock struct{ t time.Time }

func (f fakeClock) Now() time.Time { return f.t }

type seqIDs struct {
	mu sync.Mutex
	n  int
}

func (s *seqIDs) New() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.n++
	return "id-" + strconv.Itoa(s.n)
}

type fakeIdem struct{ seen map[string]bool }

func (f *fakeIdem) TryReserve(_ context.Context, k string) (bool, error) {
	if f.seen == nil {
		f.seen = map[string]bool{}
	}
	if f.seen[k] {
		return false, nil
	}
	f.seen[k] = true
	return true, nil
}

func (f *fakeIdem) Release(_ context.Context, k string) error {
	delete(f.seen, k)
	return nil
}

// flakyShifts fails the next fails calls to Create.
type flakyShifts struct {
	*memstore.ShiftRepo
	fails int
}

func (r *flakyShifts) Create(ctx context.Context, sh domain.Shift) error {
	if r.fails > 0 {
		r.fails--
		return errors.New("disk full")
	}
	return r.ShiftRepo.Create(ctx, sh)
}

// deadlineJobs refuses writes once ctx is done, as a database driver does.
type deadlineJobs struct{ *memstore.GeocodeJobRepo }

func (r deadlineJobs) UpdateStatus(ctx context.Context, id string, st domain.GeocodeJobStatus, msg *string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return r.GeocodeJobRepo.UpdateStatus(ctx, id, st, msg)
}

type stallingGeocoder struct{}

func (stallingGeocoder) Geocode(ctx context.Context, _ string) (domain.GeocodeResult, error) {
	<-ctx.Done()
	return domain.GeocodeResult{}, ctx.Err()
}

type recordingEvents struct {
	mu     sync.Mutex
	events []domain.Event
	err    error
}

func (r *recordingEvents) Publish(_ context.Context, e domain.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return r.err
}

func (r *recordingEvents) last(typ domain.EventType) domain.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.events) - 1; i >= 0; i-- {
		if r.events[i].Type == typ {
			return r.events[i]
		}
	}
	return domain.Event{}
}

func (r *recordingEvents) types() []domain.EventType {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.EventType, len(r.events))
	for i, e := range r.events {
		out[i] = e.Type
	}
	return out
}

var now = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

type fixture struct {
	svc    *application.MarketplaceService
	store  *memstore.Store
	events *recordingEvents
	geo    *geocoder.Fake
	idem   *fakeIdem
	rest   application.Actor
	ann    application.Actor
	bob    application.Actor
}

func newFixture(t *testing.T) *fixture {
	return newFixtureWithShifts(t, nil)
}

// newFixtureWithShifts lets a test wrap the shift repository.
func newFixtureWithShifts(t *testing.T, wrap func(*memstore.ShiftRepo) application.ShiftRepo) *fixture {
	t.Helper()
	store := memstore.New()
	events := &recordingEvents{}
	geo := geocoder.NewFake()
	geo.Strict = true
	idem := &fakeIdem{}
	var shifts application.ShiftRepo = store.Shifts()
	if wrap != nil {
		shifts = wrap(store.Shifts())
	}
	svc := application.NewMarketplaceService(
		shifts, store.Profiles(), store.GeocodeJobs(), geo, idem,
		application.WithClock(fakeClock{t: now}),
		application.WithIDGen(&seqIDs{}),
		application.WithUnitOfWork(store.UnitOfWork()),
		application.WithEvents(events),
		application.WithRand(rand.New(rand.NewSource(7))),
		application.WithCatalog(domain.Catalog{
			Roles:       []string{"Server", "Bartender", "Line Cook"},
			StreetNames: []string{"Main St", "Oak Ave"},
			DemoRequirements: [][]string{
				{"Customer Service", "POS Systems"},
				{"Cocktail Making", "Wine Knowledge"},
			},
		}),
	)
	f := &fixture{
		svc: svc, store: store, events: events, geo: geo, idem: idem,
		rest: application.Actor{ID: "r1", Type: domain.UserTypeRestaurant},
		ann:  application.Actor{ID: "w1", Type: domain.UserTypeWorker},
		bob:  application.Actor{ID: "w2", Type: domain.UserTypeWorker},
	}
	ctx := context.Background()
	for _, a := range []application.Actor{f.rest, f.ann, f.bob} {
		_, err := svc.SetAccountType(ctx, a.ID, a.Type)
		require.NoError(t, err)
	}
	_, err := svc.UpsertRestaurantProfile(ctx, f.rest, domain.RestaurantProfile{
		RestaurantName: "Bistro",
		Location:       &domain.Location{Lat: 40.7128, Lng: -74.0060, Address: "1 Main St"},
		Address:        "1 Main St",
	})
	require.NoError(t, err)
	_, err = svc.UpsertWorkerProfile(ctx, f.ann, domain.WorkerProfile{Name: "Ann", Experience: domain.ExperienceExpert, ServiceRadius: 5})
	require.NoError(t, err)
	_, err = svc.UpsertWorkerProfile(ctx, f.bob, domain.WorkerProfile{Name: "Bob"})
	require.NoError(t, err)
	return f
}

func shiftInput() application.ShiftInput {
	return application.ShiftInput{
		Role:         "Server",
		Date:         time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC),
		StartTime:    "17:00",
		EndTime:      "23:00",
		HourlyRate:   18,
		UrgencyLevel: domain.UrgencyHigh,
		Publish:      true,
	}
}

func TestSetAccountType_Immutable(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	acc, err := f.svc.SetAccountType(ctx, "w1", domain.UserTypeWorker)
	require.NoError(t, err)
	require.Equal(t, domain.UserTypeWorker, acc.UserType)

	_, err = f.svc.SetAccountType(ctx, "w1", domain.UserTypeRestaurant)
	require.ErrorIs(t, err, application.ErrConflict)
	_, err = f.svc.SetAccountType(ctx, "x", "chef")
	require.ErrorIs(t, err, application.ErrBadRequest)
}

func TestCreateShift_Defaults(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	sh, err := f.svc.CreateShift(ctx, f.rest, shiftInput(), nil)
	require.NoError(t, err)
	require.Equal(t, "id-1", sh.ID)
	require.Equal(t, "Bistro", sh.RestaurantName)
	require.Equal(t, 15, sh.BonusPercentage)
	require.Equal(t, domain.ShiftStatusPublished, sh.Status)
	require.NotNil(t, sh.Location, "falls back to the restaurant location")
	require.Equal(t, "1 Main St", sh.Location.Address)
	require.Equal(t, []domain.EventType{domain.EventShiftCreated, domain.EventShiftPublished}, f.events.types())

	_, err = f.svc.CreateShift(ctx, f.ann, shiftInput(), nil)
	require.ErrorIs(t, err, application.ErrForbidden)

	in := shiftInput()
	in.Role = "Astronaut"
	_, err = f.svc.CreateShift(ctx, f.rest, in, nil)
	require.ErrorIs(t, err, application.ErrBadRequest)

	in = shiftInput()
	in.HourlyRate = 0
	_, err = f.svc.CreateShift(ctx, f.rest, in, nil)
	require.ErrorIs(t, err, application.ErrBadRequest)
}

func TestCreateShift_Idempotency(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	key := "ik-1"
	_, err := f.svc.CreateShift(ctx, f.rest, shiftInput(), &key)
	require.NoError(t, err)
	_, err = f.svc.CreateShift(ctx, f.rest, shiftInput(), &key)
	require.ErrorIs(t, err, application.ErrConflict)
}

func TestCreateShift_KeyReleasedOnFailure(t *testing.T) {
	flaky := &flakyShifts{fails: 1}
	f := newFixtureWithShifts(t, func(r *memstore.ShiftRepo) application.ShiftRepo {
		flaky.ShiftRepo = r
		return flaky
	})
	ctx := context.Background()
	key := "ik-1"

	_, err := f.svc.CreateShift(ctx, f.rest, shiftInput(), &key)
	require.Error(t, err)
	require.Empty(t, f.idem.seen)
	all, err := f.svc.ListRestaurantShifts(ctx, f.rest, nil)
	require.NoError(t, err)
	require.Empty(t, all)

	sh, err := f.svc.CreateShift(ctx, f.rest, shiftInput(), &key)
	require.NoError(t, err)
	require.NotEmpty(t, sh.ID)
	_, err = f.svc.CreateShift(ctx, f.rest, shiftInput(), &key)
	require.ErrorIs(t, err, application.ErrConflict)
}

func TestCreateShift_FailedEnqueueLeavesNoShift(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	// The shift takes id-1 and its geocode job id-2; holding id-2 already
	// makes the enqueue collide.
	require.NoError(t, f.store.GeocodeJobs().CreateQueued(ctx, domain.GeocodeJob{ID: "id-2", TargetKind: domain.GeocodeTargetShift}))

	in := shiftInput()
	in.Address = "Times Square"
	_, err := f.svc.CreateShift(ctx, f.rest, in, nil)
	require.ErrorIs(t, err, application.ErrConflict)

	all, err := f.svc.ListRestaurantShifts(ctx, f.rest, nil)
	require.NoError(t, err)
	require.Empty(t, all)
}

func TestCreateShift_Location(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	in := shiftInput()
	lat, lng := 40.75, -73.99
	in.Lat, in.Lng = &lat, &lng
	sh, err := f.svc.CreateShift(ctx, f.rest, in, nil)
	require.NoError(t, err)
	require.Equal(t, 40.75, sh.Location.Lat)

	in = shiftInput()
	in.Address = "Times Square"
	sh, err = f.svc.CreateShift(ctx, f.rest, in, nil)
	require.NoError(t, err)
	require.Nil(t, sh.Location)

	claimed, err := f.store.GeocodeJobs().ClaimQueued(ctx, 10)
	require.NoError(t, err)
	require.Len(t, claimed, 1)
	require.Equal(t, domain.GeocodeTargetShift, claimed[0].TargetKind)
	require.NoError(t, f.svc.ProcessGeocodeJob(ctx, claimed[0]))

	got, err := f.svc.GetShift(ctx, sh.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Location)
	require.InDelta(t, 40.758, got.Location.Lat, 1e-6)
	job, err := f.svc.GetGeocodeJob(ctx, claimed[0].ID)
	require.NoError(t, err)
	require.Equal(t, domain.GeocodeJobStatusDone, job.Status)
}

func TestProcessGeocodeJob_Failure(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.svc.UpsertRestaurantProfile(ctx, f.rest, domain.RestaurantProfile{RestaurantName: "Bistro", Address: "Atlantis"})
	require.NoError(t, err)

	claimed, err := f.store.GeocodeJobs().ClaimQueued(ctx, 10)
	require.NoError(t, err)
	require.Len(t, claimed, 1)
	err = f.svc.ProcessGeocodeJob(ctx, claimed[0])
	require.ErrorIs(t, err, application.ErrNotFound)

	job, err := f.svc.GetGeocodeJob(ctx, claimed[0].ID)
	require.NoError(t, err)
	require.Equal(t, domain.GeocodeJobStatusFailed, job.Status)
	require.NotNil(t, job.Error)
}

func TestProcessGeocodeJob_DeadlineStillFinalizes(t *testing.T) {
	store := memstore.New()
	svc := application.NewMarketplaceService(
		store.Shifts(), store.Profiles(), deadlineJobs{store.GeocodeJobs()}, stallingGeocoder{}, &fakeIdem{},
		application.WithUnitOfWork(store.UnitOfWork()),
	)
	bg := context.Background()
	require.NoError(t, store.GeocodeJobs().CreateQueued(bg, domain.GeocodeJob{
		ID: "j1", TargetKind: domain.GeocodeTargetShift, TargetID: "s1", Address: "1 Main St",
	}))
	claimed, err := store.GeocodeJobs().ClaimQueued(bg, 1)
	require.NoError(t, err)
	require.Len(t, claimed, 1)

	ctx, cancel := context.WithTimeout(bg, 20*time.Millisecond)
	defer cancel()
	err = svc.ProcessGeocodeJob(ctx, claimed[0])
	require.ErrorIs(t, err, context.DeadlineExceeded)

	job, err := store.GeocodeJobs().GetByID(bg, "j1")
	require.NoError(t, err)
	require.Equal(t, domain.GeocodeJobStatusFailed, job.Status)
	require.Contains(t, *job.Error, "deadline")
}

func TestApply_KeyReleasedOnFailure(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	in := shiftInput()
	in.Publish = false
	sh, err := f.svc.CreateShift(ctx, f.rest, in, nil)
	require.NoError(t, err)
	key := "ik-apply"

	_, err = f.svc.Apply(ctx, f.ann, sh.ID, &key)
	require.Error(t, err)

	_, err = f.svc.PublishShift(ctx, f.rest, sh.ID)
	require.NoError(t, err)
	got, err := f.svc.Apply(ctx, f.ann, sh.ID, &key)
	require.NoError(t, err)
	require.Equal(t, 1, got.Applicants())
	_, err = f.svc.Apply(ctx, f.ann, sh.ID, &key)
	require.ErrorIs(t, err, application.ErrConflict)
}

func TestApplyAcceptCompleteRate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	sh, err := f.svc.CreateShift(ctx, f.rest, shiftInput(), nil)
	require.NoError(t, err)

	_, err = f.svc.Apply(ctx, f.ann, sh.ID, nil)
	require.NoError(t, err)
	_, err = f.svc.Apply(ctx, f.ann, sh.ID, nil)
	require.ErrorIs(t, err, application.ErrConflict)
	got, err := f.svc.Apply(ctx, f.bob, sh.ID, nil)
	require.NoError(t, err)
	require.Equal(t, 2, got.Applicants())
	require.Equal(t, "expert", *got.Applications[0].WorkerExperience)

	_, err = f.svc.Apply(ctx, f.rest, sh.ID, nil)
	require.ErrorIs(t, err, application.ErrForbidden)
	_, err = f.svc.Accept(ctx, f.ann, sh.ID, "w1")
	require.ErrorIs(t, err, application.ErrForbidden)
	_, err = f.svc.Accept(ctx, f.rest, sh.ID, "w9")
	require.ErrorIs(t, err, application.ErrNotFound)

	got, err = f.svc.Accept(ctx, f.rest, sh.ID, "w1")
	require.NoError(t, err)
	require.Equal(t, domain.ShiftStatusFilled, got.Status)
	require.Equal(t, "Ann", got.Assignment.WorkerName)
	_, err = f.svc.Accept(ctx, f.rest, sh.ID, "w2")
	require.ErrorIs(t, err, application.ErrConflict)

	_, err = f.svc.Rate(ctx, f.ann, sh.ID, 5, nil)
	require.ErrorIs(t, err, application.ErrConflict, "not completed yet")

	_, err = f.svc.CompleteShift(ctx, f.rest, sh.ID)
	require.NoError(t, err)

	_, err = f.svc.Rate(ctx, f.bob, sh.ID, 5, nil)
	require.ErrorIs(t, err, application.ErrForbidden)
	_, err = f.svc.Rate(ctx, f.ann, sh.ID, 9, nil)
	require.ErrorIs(t, err, application.ErrBadRequest)
	comment := "lovely team"
	_, err = f.svc.Rate(ctx, f.ann, sh.ID, 5, &comment)
	require.NoError(t, err)
	_, err = f.svc.Rate(ctx, f.ann, sh.ID, 4, nil)
	require.ErrorIs(t, err, application.ErrConflict)
	_, err = f.svc.Rate(ctx, f.rest, sh.ID, 4, nil)
	require.NoError(t, err)

	rs, err := f.svc.RatingSummary(ctx, "r1")
	require.NoError(t, err)
	require.Equal(t, 1, rs.TotalRatings)
	require.Equal(t, 5.0, rs.AverageRating)
	require.Equal(t, "lovely team", *rs.Ratings[0].Comment)

	ws, err := f.svc.RatingSummary(ctx, "w1")
	require.NoError(t, err)
	require.Equal(t, 4.0, ws.AverageRating)

	mine, err := f.svc.ListWorkerShifts(ctx, f.bob)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	require.Equal(t, domain.ApplicationStatusDeclined, mine[0].Applications[1].Status)
}

func TestDecline(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	sh, err := f.svc.CreateShift(ctx, f.rest, shiftInput(), nil)
	require.NoError(t, err)
	_, err = f.svc.Apply(ctx, f.ann, sh.ID, nil)
	require.NoError(t, err)

	got, err := f.svc.Decline(ctx, f.rest, sh.ID, "w1")
	require.NoError(t, err)
	require.Equal(t, domain.ShiftStatusPublished, got.Status)
	_, err = f.svc.Decline(ctx, f.rest, sh.ID, "w1")
	require.ErrorIs(t, err, application.ErrConflict)
}

func TestUpdateAndDelete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	in := shiftInput()
	in.Publish = false
	sh, err := f.svc.CreateShift(ctx, f.rest, in, nil)
	require.NoError(t, err)
	require.Equal(t, domain.ShiftStatusDraft, sh.Status)

	rate := 22.5
	urg := domain.UrgencyCritical
	got, err := f.svc.UpdateShift(ctx, f.rest, sh.ID, application.ShiftPatch{HourlyRate: &rate, UrgencyLevel: &urg})
	require.NoError(t, err)
	require.Equal(t, 22.5, got.HourlyRate)
	require.True(t, got.Urgent())

	other := application.Actor{ID: "r2", Type: domain.UserTypeRestaurant}
	_, err = f.svc.UpdateShift(ctx, other, sh.ID, application.ShiftPatch{HourlyRate: &rate})
	require.ErrorIs(t, err, application.ErrForbidden)

	_, err = f.svc.PublishShift(ctx, f.rest, sh.ID)
	require.NoError(t, err)
	_, err = f.svc.Apply(ctx, f.ann, sh.ID, nil)
	require.NoError(t, err)
	_, err = f.svc.Accept(ctx, f.rest, sh.ID, "w1")
	require.NoError(t, err)

	_, err = f.svc.UpdateShift(ctx, f.rest, sh.ID, application.ShiftPatch{HourlyRate: &rate})
	require.ErrorIs(t, err, application.ErrConflict)
	require.ErrorIs(t, f.svc.DeleteShift(ctx, f.rest, sh.ID), application.ErrConflict)

	_, err = f.svc.CancelShift(ctx, f.rest, sh.ID)
	require.NoError(t, err)
	require.NoError(t, f.svc.DeleteShift(ctx, f.rest, sh.ID))
	_, err = f.svc.GetShift(ctx, sh.ID)
	require.ErrorIs(t, err, application.ErrNotFound)
}

func TestChat(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	sh, err := f.svc.CreateShift(ctx, f.rest, shiftInput(), nil)
	require.NoError(t, err)

	_, err = f.svc.PostMessage(ctx, f.rest, sh.ID, "hello")
	require.ErrorIs(t, err, application.ErrForbidden, "no assignment yet")

	_, err = f.svc.Apply(ctx, f.ann, sh.ID, nil)
	require.NoError(t, err)
	_, err = f.svc.Accept(ctx, f.rest, sh.ID, "w1")
	require.NoError(t, err)

	m, err := f.svc.PostMessage(ctx, f.ann, sh.ID, "  running 5 min late ")
	require.NoError(t, err)
	require.Equal(t, "running 5 min late", m.Message)
	require.Equal(t, domain.UserTypeWorker, m.SenderType)

	_, err = f.svc.PostMessage(ctx, f.rest, sh.ID, "   ")
	require.ErrorIs(t, err, application.ErrBadRequest)
	_, err = f.svc.PostMessage(ctx, f.bob, sh.ID, "hi")
	require.ErrorIs(t, err, application.ErrForbidden)

	msgs, err := f.svc.ListMessages(ctx, f.rest, sh.ID)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	require.NoError(t, f.svc.CanWatch(ctx, f.ann, sh.ID))

	got, err := f.svc.GetShift(ctx, sh.ID)
	require.NoError(t, err)
	require.Len(t, got.ChatMessages, 1)
	require.Contains(t, f.events.types(), domain.EventChatMessage)
}

func TestEvents_NameTheirRecipients(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	sh, err := f.svc.CreateShift(ctx, f.rest, shiftInput(), nil)
	require.NoError(t, err)

	_, err = f.svc.Apply(ctx, f.ann, sh.ID, nil)
	require.NoError(t, err)
	_, err = f.svc.Apply(ctx, f.bob, sh.ID, nil)
	require.NoError(t, err)
	applied := application.NotificationsFor(f.events.last(domain.EventApplicationCreated))
	require.Len(t, applied, 1)
	require.Equal(t, "r1", applied[0].RecipientID)

	_, err = f.svc.Accept(ctx, f.rest, sh.ID, "w1")
	require.NoError(t, err)
	_, err = f.svc.PostMessage(ctx, f.rest, sh.ID, "see you at five")
	require.NoError(t, err)
	chat := application.NotificationsFor(f.events.last(domain.EventChatMessage))
	require.Len(t, chat, 1)
	require.Equal(t, "w1", chat[0].RecipientID)

	_, err = f.svc.CancelShift(ctx, f.rest, sh.ID)
	require.NoError(t, err)
	cancelled := application.NotificationsFor(f.events.last(domain.EventShiftCancelled))
	require.Len(t, cancelled, 1, "bob was declined on accept")
	require.Equal(t, "w1", cancelled[0].RecipientID)
}

func TestDiscover(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	near := shiftInput()
	lat, lng := 40.7505, -73.9934
	near.Lat, near.Lng = &lat, &lng
	_, err := f.svc.CreateShift(ctx, f.rest, near, nil)
	require.NoError(t, err)

	far := shiftInput()
	flat, flng := 40.7282, -73.7949
	far.Lat, far.Lng = &flat, &flng
	_, err = f.svc.CreateShift(ctx, f.rest, far, nil)
	require.NoError(t, err)

	olat, olng := 40.7128, -74.0060
	got, err := f.svc.Discover(ctx, f.ann, application.DiscoverQuery{Lat: &olat, Lng: &olng})
	require.NoError(t, err)
	require.Len(t, got, 1, "Ann's 5 mile radius excludes the far shift")

	got, err = f.svc.Discover(ctx, f.bob, application.DiscoverQuery{Lat: &olat, Lng: &olng})
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Less(t, *got[0].Distance, *got[1].Distance)

	got, err = f.svc.Discover(ctx, f.bob, application.DiscoverQuery{Address: "New York, NY"})
	require.NoError(t, err)
	require.Len(t, got, 2)

	_, err = f.svc.Discover(ctx, f.bob, application.DiscoverQuery{Address: "Atlantis"})
	require.ErrorIs(t, err, application.ErrNotFound)
	_, err = f.svc.Discover(ctx, f.bob, application.DiscoverQuery{Lat: &olat})
	require.ErrorIs(t, err, application.ErrBadRequest)
}

func TestGenerateDemoShifts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	lat, lng := 40.7128, -74.0060

	first, err := f.svc.GenerateDemoShifts(ctx, lat, lng)
	require.NoError(t, err)
	require.Len(t, first, 3)
	for i, sh := range first {
		d := domain.Haversine(domain.Point{Lat: lat, Lng: lng}, domain.Point{Lat: sh.Location.Lat, Lng: sh.Location.Lng})
		require.InDelta(t, application.DemoDistances[i], d, 0.05)
		require.GreaterOrEqual(t, sh.HourlyRate, 15.0)
		require.LessOrEqual(t, sh.HourlyRate, 24.0)
		require.Equal(t, sh.UrgencyLevel.DefaultBonus(), sh.BonusPercentage)
		require.Equal(t, "17:00", sh.StartTime)
		require.Equal(t, time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC), sh.Date)
		require.True(t, sh.Generated)
		want := "We need a " + strings.ToLower(sh.Role) + " for tomorrow's dinner service."
		if sh.Urgent() {
			want = "Urgent! " + want
		}
		require.Equal(t, want, sh.Description)
		require.Len(t, sh.Requirements, 2)
		require.Regexp(t, `^\d{4} (Main St|Oak Ave)$`, sh.Address)
	}

	_, err = f.svc.GenerateDemoShifts(ctx, lat, lng)
	require.NoError(t, err)
	all, err := f.svc.ListPublishedShifts(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3, "earlier demo shifts are replaced")

	_, err = f.svc.GenerateDemoShifts(ctx, 123, lng)
	require.ErrorIs(t, err, application.ErrBadRequest)
}

func TestEventPublishFailureIsNotFatal(t *testing.T) {
	f := newFixture(t)
	f.events.err = errors.New("broker down")
	_, err := f.svc.CreateShift(context.Background(), f.rest, shiftInput(), nil)
	require.NoError(t, err)
}

func TestMe(t *testing.T) {
	f := newFixture(t)
	me, err := f.svc.Me(context.Background(), "w1")
	require.NoError(t, err)
	require.NotNil(t, me.Worker)
	require.Nil(t, me.Restaurant)
	require.Len(t, me.Worker.Availability, 7)

	_, err = f.svc.UpsertWorkerProfile(context.Background(), f.rest, domain.WorkerProfile{Name: "X"})
	require.ErrorIs(t, err, application.ErrForbidden)
}
