//go:build e2e
// +build e2e

package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"os"
	"testing"
	"time"

	"shiftserve/internal/bootstrap"
	"shiftserve/internal/config"
	"shiftserve/internal/infrastructure/authx"
	"shiftserve/internal/infrastructure/http/openapi"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

const (
	jwtSecret          = "e2e-secret"
	readyTimeout       = 30 * time.Second
	readyPollInterval  = 250 * time.Millisecond
	statusPollTimeout  = 30 * time.Second
	statusPollInterval = 250 * time.Millisecond
	idempotencyHeader  = "X-Idempotency-Key"
)

type harness struct {
	t       *testing.T
	baseURL string
	minter  *authx.Minter
	client  *http.Client
}

func TestE2E_MemoryProfile(t *testing.T) {
	if os.Getenv("E2E_PROFILES") != "1" {
		t.Skip("E2E_PROFILES not enabled")
	}
	t.Setenv("STORAGE", "memory")
	t.Setenv("IDEMPOTENCY_BACKEND", "none")
	t.Setenv("REALTIME_BACKEND", "local")

	h := startAPI(t)
	runMarketplaceFlow(h, false)
}

func TestE2E_PostgresProfile(t *testing.T) {
	if os.Getenv("E2E_PROFILES") != "1" || os.Getenv("TESTCONTAINERS") == "" {
		t.Skip("E2E_PROFILES and TESTCONTAINERS not enabled")
	}
	mr := miniredis.RunT(t)
	t.Setenv("STORAGE", "pg")
	t.Setenv("DATABASE_URL", startPostgres(t))
	t.Setenv("REDIS_ADDR", mr.Addr())
	t.Setenv("IDEMPOTENCY_BACKEND", "redis")
	t.Setenv("REALTIME_BACKEND", "redis")
	t.Setenv("WORKER_TYPE", "db")

	h := startAPI(t)
	startWorker(t)
	runMarketplaceFlow(h, true)
}

// runMarketplaceFlow drives one shift from creation to a rating.
func runMarketplaceFlow(h *harness, idempotent bool) {
	t := h.t

	h.mustDo(http.MethodPut, "/v1/me/account", "r1", openapi.AccountTypeRequest{UserType: "restaurant"}, http.StatusOK, nil)
	h.mustDo(http.MethodPut, "/v1/me/restaurant-profile", "r1", openapi.RestaurantProfile{
		RestaurantName: "Harbor Grill",
		Address:        "Times Square",
		PayRange:       openapi.PayRange{Min: 15, Max: 25},
	}, http.StatusOK, nil)
	waitForRestaurantLocation(h, "r1")

	h.mustDo(http.MethodPut, "/v1/me/account", "w1", openapi.AccountTypeRequest{UserType: "worker"}, http.StatusOK, nil)
	h.mustDo(http.MethodPut, "/v1/me/worker-profile", "w1", openapi.WorkerProfile{
		Name: "Ann", Roles: []string{"Server"}, Experience: "experienced",
	}, http.StatusOK, nil)

	var sh openapi.Shift
	body := map[string]any{
		"role": "Server", "date": "2025-03-02", "start_time": "17:00", "end_time": "23:00",
		"hourly_rate": 20, "urgency_level": "high", "publish": true,
	}
	h.mustDo(http.MethodPost, "/v1/shifts", "r1", body, http.StatusCreated, &sh, idempotencyHeader, "e2e-create")
	require.Equal(t, "published", sh.Status)
	require.NotNil(t, sh.Location)

	if idempotent {
		h.mustDo(http.MethodPost, "/v1/shifts", "r1", body, http.StatusConflict, nil, idempotencyHeader, "e2e-create")
	}

	h.mustDo(http.MethodPost, "/v1/shifts/"+sh.Id+"/applications", "w1", nil, http.StatusCreated, nil)
	h.mustDo(http.MethodPost, "/v1/shifts/"+sh.Id+"/applications/w1/accept", "r1", nil, http.StatusOK, nil)
	h.mustDo(http.MethodPost, "/v1/shifts/"+sh.Id+"/messages", "w1", openapi.MessageRequest{Message: "On my way"}, http.StatusCreated, nil)
	h.mustDo(http.MethodPost, "/v1/shifts/"+sh.Id+"/complete", "r1", nil, http.StatusOK, nil)
	h.mustDo(http.MethodPost, "/v1/shifts/"+sh.Id+"/ratings", "w1", openapi.RatingRequest{Rating: 4}, http.StatusOK, nil)

	var sum openapi.RatingSummary
	h.mustDo(http.MethodGet, "/v1/profiles/r1/ratings", "w1", nil, http.StatusOK, &sum)
	require.Equal(t, 1, sum.TotalRatings)
	require.InDelta(t, 4.0, sum.AverageRating, 1e-9)
}

func startAPI(t *testing.T) *harness {
	t.Helper()
	port := freePort(t)
	t.Setenv("PORT", port)
	t.Setenv("AUTH_JWT_SECRET", jwtSecret)
	t.Setenv("GEOCODER", "fake")
	t.Setenv("EVENTS_BACKEND", "none")

	ctx, cancel := context.WithCancel(context.Background())
	api, cleanup, err := bootstrap.InitAPI(ctx)
	require.NoError(t, err)
	done := make(chan error, 1)
	go func() { done <- api.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		require.NoError(t, <-done)
		cleanup()
	})

	h := &harness{
		t:       t,
		baseURL: "http://127.0.0.1:" + port,
		minter:  authx.NewMinter(jwtSecret),
		client:  &http.Client{Timeout: 5 * time.Second},
	}
	waitForReady(h)
	return h
}

func startWorker(t *testing.T) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	run, cleanup, err := bootstrap.InitWorkerApp(ctx, config.Load())
	require.NoError(t, err)
	done := make(chan error, 1)
	go func() { done <- run(ctx) }()
	t.Cleanup(func() {
		cancel()
		<-done
		cleanup()
	})
}

func startPostgres(t *testing.T) string {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	t.Cleanup(cancel)
	container, err := postgres.RunContainer(ctx,
		postgres.WithDatabase("shiftserve"),
		postgres.WithUsername("postgres"),
		postgres.WithPassword("postgres"),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })
	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)
	return dsn
}

func freePort(t *testing.T) string {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer l.Close()
	return fmt.Sprint(l.Addr().(*net.TCPAddr).Port)
}

func (h *harness) do(method, path, user string, body any, headers ...string) (*http.Response, error) {
	var rdr *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		rdr = bytes.NewReader(b)
	} else {
		rdr = bytes.NewReader(nil)
	}
	req, err := http.NewRequest(method, h.baseURL+path, rdr)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if user != "" {
		tok, err := h.minter.Mint(user, time.Hour)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	return h.client.Do(req)
}

func (h *harness) mustDo(method, path, user string, body any, want int, out any, headers ...string) {
	h.t.Helper()
	resp, err := h.do(method, path, user, body, headers...)
	require.NoError(h.t, err, "%s %s", method, path)
	defer resp.Body.Close()
	require.Equal(h.t, want, resp.StatusCode, "%s %s", method, path)
	if out != nil {
		require.NoError(h.t, json.NewDecoder(resp.Body).Decode(out))
	}
}

func waitForReady(h *harness) {
	h.t.Helper()
	deadline := time.Now().Add(readyTimeout)
	for time.Now().Before(deadline) {
		resp, err := h.do(http.MethodGet, "/readyz", "", nil)
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(readyPollInterval)
	}
	h.t.Fatalf("API did not become ready within %s", readyTimeout)
}

func waitForRestaurantLocation(h *harness, user string) {
	h.t.Helper()
	deadline := time.Now().Add(statusPollTimeout)
	for time.Now().Before(deadline) {
		var p openapi.RestaurantProfile
		h.mustDo(http.MethodGet, "/v1/me/restaurant-profile", user, nil, http.StatusOK, &p)
		if p.Location != nil {
			return
		}
		time.Sleep(statusPollInterval)
	}
	h.t.Fatalf("restaurant %s was not geocoded within %s", user, statusPollTimeout)
}
