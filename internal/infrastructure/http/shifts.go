package httpserver

import (
	"bytes"
	"net/http"

	"shiftserve/internal/application"
	"shiftserve/internal/domain"
	"shiftserve/internal/infrastructure/export"
	"shiftserve/internal/infrastructure/http/openapi"
)

func (s *Server) ListShifts(w http.ResponseWriter, r *http.Request) {
	if _, ok := onboarded(w, r); !ok {
		return
	}
	list, err := s.svc.ListPublishedShifts(r.Context())
	if err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toShifts(list))
}

func (s *Server) CreateShift(w http.ResponseWriter, r *http.Request, params openapi.CreateShiftParams) {
	a, ok := as(w, r, domain.UserTypeRestaurant)
	if !ok {
		return
	}
	var body openapi.ShiftCreate
	if !decode(w, r, &body) {
		return
	}
	sh, err := s.svc.CreateShift(r.Context(), a, fromShiftCreate(body), params.XIdempotencyKey)
	if err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toShift(sh))
}

func (s *Server) DiscoverShifts(w http.ResponseWriter, r *http.Request, params openapi.DiscoverShiftsParams) {
	a, ok := onboarded(w, r)
	if !ok {
		return
	}
	q := application.DiscoverQuery{
		Lat:         params.Lat,
		Lng:         params.Lng,
		MaxDistance: params.MaxDistance,
		MinRate:     params.MinRate,
		MaxRate:     params.MaxRate,
	}
	if params.Address != nil {
		q.Address = *params.Address
	}
	if params.Role != nil {
		q.Role = *params.Role
	}
	if params.UrgentOnly != nil {
		q.UrgentOnly = *params.UrgentOnly
	}
	found, err := s.svc.Discover(r.Context(), a, q)
	if err != nil {
		fail(w, r, err)
		return
	}
	out := make([]openapi.Shift, 0, len(found))
	for _, d := range found {
		sh := toShift(d.Shift)
		sh.Distance = d.Distance
		out = append(out, sh)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) GenerateDemoShifts(w http.ResponseWriter, r *http.Request) {
	if !s.demo {
		writeError(w, http.StatusNotFound, "demo shifts are disabled")
		return
	}
	if _, ok := onboarded(w, r); !ok {
		return
	}
	var body openapi.DemoRequest
	if !decode(w, r, &body) {
		return
	}
	list, err := s.svc.GenerateDemoShifts(r.Context(), body.Lat, body.Lng)
	if err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toShifts(list))
}

func (s *Server) GetShift(w http.ResponseWriter, r *http.Request, id string) {
	if _, ok := onboarded(w, r); !ok {
		return
	}
	sh, err := s.svc.GetShift(r.Context(), id)
	if err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toShift(sh))
}

func (s *Server) UpdateShift(w http.ResponseWriter, r *http.Request, id string) {
	a, ok := as(w, r, domain.UserTypeRestaurant)
	if !ok {
		return
	}
	var body openapi.ShiftPatch
	if !decode(w, r, &body) {
		return
	}
	sh, err := s.svc.UpdateShift(r.Context(), a, id, fromShiftPatch(body))
	if err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toShift(sh))
}

func (s *Server) DeleteShift(w http.ResponseWriter, r *http.Request, id string) {
	a, ok := as(w, r, domain.UserTypeRestaurant)
	if !ok {
		return
	}
	if err := s.svc.DeleteShift(r.Context(), a, id); err != nil {
		fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type shiftAction func(s *application.MarketplaceService, r *http.Request, a application.Actor, id string) (domain.Shift, error)

func (s *Server) restaurantAction(w http.ResponseWriter, r *http.Request, id string, act shiftAction) {
	a, ok := as(w, r, domain.UserTypeRestaurant)
	if !ok {
		return
	}
	sh, err := act(s.svc, r, a, id)
	if err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toShift(sh))
}

func (s *Server) PublishShift(w http.ResponseWriter, r *http.Request, id string) {
	s.restaurantAction(w, r, id, func(svc *application.MarketplaceService, r *http.Request, a application.Actor, id string) (domain.Shift, error) {
		return svc.PublishShift(r.Context(), a, id)
	})
}

func (s *Server) CancelShift(w http.ResponseWriter, r *http.Request, id string) {
	s.restaurantAction(w, r, id, func(svc *application.MarketplaceService, r *http.Request, a application.Actor, id string) (domain.Shift, error) {
		return svc.CancelShift(r.Context(), a, id)
	})
}

func (s *Server) CompleteShift(w http.ResponseWriter, r *http.Request, id string) {
	s.restaurantAction(w, r, id, func(svc *application.MarketplaceService, r *http.Request, a application.Actor, id string) (domain.Shift, error) {
		return svc.CompleteShift(r.Context(), a, id)
	})
}

func (s *Server) ApplyToShift(w http.ResponseWriter, r *http.Request, id string, params openapi.ApplyToShiftParams) {
	a, ok := as(w, r, domain.UserTypeWorker)
	if !ok {
		return
	}
	sh, err := s.svc.Apply(r.Context(), a, id, params.XIdempotencyKey)
	if err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toShift(sh))
}

func (s *Server) AcceptApplication(w http.ResponseWriter, r *http.Request, id string, workerId string) {
	s.restaurantAction(w, r, id, func(svc *application.MarketplaceService, r *http.Request, a application.Actor, id string) (domain.Shift, error) {
		return svc.Accept(r.Context(), a, id, workerId)
	})
}

func (s *Server) DeclineApplication(w http.ResponseWriter, r *http.Request, id string, workerId string) {
	s.restaurantAction(w, r, id, func(svc *application.MarketplaceService, r *http.Request, a application.Actor, id string) (domain.Shift, error) {
		return svc.Decline(r.Context(), a, id, workerId)
	})
}

func (s *Server) RateShift(w http.ResponseWriter, r *http.Request, id string) {
	a, ok := onboarded(w, r)
	if !ok {
		return
	}
	var body openapi.RatingRequest
	if !decode(w, r, &body) {
		return
	}
	sh, err := s.svc.Rate(r.Context(), a, id, body.Rating, body.Comment)
	if err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toShift(sh))
}

func statusFilter(w http.ResponseWriter, params openapi.ListRestaurantShiftsParams) (*domain.ShiftStatus, bool) {
	if params.Status == nil || *params.Status == "" {
		return nil, true
	}
	st := domain.ShiftStatus(*params.Status)
	if !st.Valid() {
		writeError(w, http.StatusBadRequest, "unknown status "+*params.Status)
		return nil, false
	}
	return &st, true
}

func (s *Server) ListRestaurantShifts(w http.ResponseWriter, r *http.Request, params openapi.ListRestaurantShiftsParams) {
	a, ok := as(w, r, domain.UserTypeRestaurant)
	if !ok {
		return
	}
	st, ok := statusFilter(w, params)
	if !ok {
		return
	}
	list, err := s.svc.ListRestaurantShifts(r.Context(), a, st)
	if err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toShifts(list))
}

func (s *Server) ExportRestaurantShifts(w http.ResponseWriter, r *http.Request, params openapi.ListRestaurantShiftsParams) {
	a, ok := as(w, r, domain.UserTypeRestaurant)
	if !ok {
		return
	}
	st, ok := statusFilter(w, params)
	if !ok {
		return
	}
	list, err := s.svc.ListRestaurantShifts(r.Context(), a, st)
	if err != nil {
		fail(w, r, err)
		return
	}
	var buf bytes.Buffer
	if err := export.WriteShifts(&buf, list); err != nil {
		fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="shifts.xlsx"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) ListWorkerShifts(w http.ResponseWriter, r *http.Request) {
	a, ok := as(w, r, domain.UserTypeWorker)
	if !ok {
		return
	}
	list, err := s.svc.ListWorkerShifts(r.Context(), a)
	if err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toShifts(list))
}
