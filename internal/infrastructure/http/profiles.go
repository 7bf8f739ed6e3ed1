package httpserver

import (
	"net/http"

	"shiftserve/internal/domain"
	"shiftserve/internal/infrastructure/http/openapi"
)

func (s *Server) GetMe(w http.ResponseWriter, r *http.Request) {
	a := actorFrom(r.Context())
	me, err := s.svc.Me(r.Context(), a.ID)
	if err != nil {
		fail(w, r, err)
		return
	}
	out := openapi.Me{Account: toAccount(me.Account)}
	if me.Worker != nil {
		p := toWorkerProfile(*me.Worker)
		out.WorkerProfile = &p
	}
	if me.Restaurant != nil {
		p := toRestaurantProfile(*me.Restaurant)
		out.RestaurantProfile = &p
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) SetAccountType(w http.ResponseWriter, r *http.Request) {
	var body openapi.AccountTypeRequest
	if !decode(w, r, &body) {
		return
	}
	acc, err := s.svc.SetAccountType(r.Context(), actorFrom(r.Context()).ID, domain.UserType(body.UserType))
	if err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toAccount(acc))
}

func (s *Server) GetWorkerProfile(w http.ResponseWriter, r *http.Request) {
	a, ok := as(w, r, domain.UserTypeWorker)
	if !ok {
		return
	}
	p, err := s.svc.GetWorkerProfile(r.Context(), a.ID)
	if err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toWorkerProfile(p))
}

func (s *Server) PutWorkerProfile(w http.ResponseWriter, r *http.Request) {
	a, ok := as(w, r, domain.UserTypeWorker)
	if !ok {
		return
	}
	var body openapi.WorkerProfile
	if !decode(w, r, &body) {
		return
	}
	p, err := s.svc.UpsertWorkerProfile(r.Context(), a, fromWorkerProfile(body))
	if err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toWorkerProfile(p))
}

func (s *Server) GetRestaurantProfile(w http.ResponseWriter, r *http.Request) {
	a, ok := as(w, r, domain.UserTypeRestaurant)
	if !ok {
		return
	}
	p, err := s.svc.GetRestaurantProfile(r.Context(), a.ID)
	if err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toRestaurantProfile(p))
}

func (s *Server) PutRestaurantProfile(w http.ResponseWriter, r *http.Request) {
	a, ok := as(w, r, domain.UserTypeRestaurant)
	if !ok {
		return
	}
	var body openapi.RestaurantProfile
	if !decode(w, r, &body) {
		return
	}
	p, err := s.svc.UpsertRestaurantProfile(r.Context(), a, fromRestaurantProfile(body))
	if err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toRestaurantProfile(p))
}

func (s *Server) GetProfileRatings(w http.ResponseWriter, r *http.Request, id string) {
	if _, ok := onboarded(w, r); !ok {
		return
	}
	sum, err := s.svc.RatingSummary(r.Context(), id)
	if err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toRatingSummary(sum))
}

func (s *Server) ListRestaurants(w http.ResponseWriter, r *http.Request) {
	if _, ok := onboarded(w, r); !ok {
		return
	}
	list, err := s.svc.ListRestaurants(r.Context())
	if err != nil {
		fail(w, r, err)
		return
	}
	out := make([]openapi.RestaurantProfile, 0, len(list))
	for _, p := range list {
		out = append(out, toRestaurantProfile(p))
	}
	writeJSON(w, http.StatusOK, out)
}
