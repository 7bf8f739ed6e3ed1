package httpserver

import (
	"net/http"

	"shiftserve/internal/infrastructure/http/openapi"
)

func (s *Server) Geocode(w http.ResponseWriter, r *http.Request, params openapi.GeocodeParams) {
	if _, ok := onboarded(w, r); !ok {
		return
	}
	res, err := s.svc.Geocode(r.Context(), params.Q)
	if err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, openapi.GeocodeResult{Lat: res.Lat, Lng: res.Lng, DisplayName: res.DisplayName})
}

func (s *Server) GetGeocodeJob(w http.ResponseWriter, r *http.Request, id string) {
	if _, ok := onboarded(w, r); !ok {
		return
	}
	job, err := s.svc.GetGeocodeJob(r.Context(), id)
	if err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toGeocodeJob(job))
}
