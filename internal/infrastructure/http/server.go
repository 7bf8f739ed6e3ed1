package httpserver

import (
	"context"
	"net/http"

	"shiftserve/internal/application"
	"shiftserve/internal/domain"
	"shiftserve/internal/infrastructure/http/openapi"
	"shiftserve/internal/infrastructure/realtime"

	"github.com/go-chi/jwtauth/v5"
)

var _ openapi.ServerInterface = (*Server)(nil)

// Server implements openapi.ServerInterface on top of the marketplace
// service.
type Server struct {
	svc      *application.MarketplaceService
	hub      *realtime.Hub
	verifier *jwtauth.JWTAuth
	ping     func(ctx context.Context) error
	demo     bool
}

type Option func(*Server)

// WithHub enables the websocket event stream.
func WithHub(h *realtime.Hub) Option { return func(s *Server) { s.hub = h } }

// WithDemo enables POST /v1/shifts/demo.
func WithDemo(enabled bool) Option { return func(s *Server) { s.demo = enabled } }

func NewServer(svc *application.MarketplaceService, verifier *jwtauth.JWTAuth, opts ...Option) *Server {
	s := &Server{svc: svc, verifier: verifier}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetReadyCheck installs the storage ping used by /readyz.
func (s *Server) SetReadyCheck(fn func(ctx context.Context) error) { s.ping = fn }

type actorKey struct{}

func withActor(ctx context.Context, a application.Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, a)
}

func actorFrom(ctx context.Context) application.Actor {
	a, _ := ctx.Value(actorKey{}).(application.Actor)
	return a
}

// as returns the caller when their account is of type t and answers 403
// otherwise.
func as(w http.ResponseWriter, r *http.Request, t domain.UserType) (application.Actor, bool) {
	a := actorFrom(r.Context())
	if a.Type != t {
		writeError(w, http.StatusForbidden, string(t)+" account required")
		return a, false
	}
	return a, true
}

// onboarded requires the caller to have picked an account type.
func onboarded(w http.ResponseWriter, r *http.Request) (application.Actor, bool) {
	a := actorFrom(r.Context())
	if !a.Type.Valid() {
		writeError(w, http.StatusForbidden, "complete onboarding first")
		return a, false
	}
	return a, true
}
