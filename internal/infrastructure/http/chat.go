package httpserver

import (
	"net/http"

	"shiftserve/internal/infrastructure/http/openapi"
	"shiftserve/internal/infrastructure/logx"

	"go.uber.org/zap"
)

func (s *Server) ListMessages(w http.ResponseWriter, r *http.Request, id string) {
	a, ok := onboarded(w, r)
	if !ok {
		return
	}
	msgs, err := s.svc.ListMessages(r.Context(), a, id)
	if err != nil {
		fail(w, r, err)
		return
	}
	out := make([]openapi.ChatMessage, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, toMessage(m))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) PostMessage(w http.ResponseWriter, r *http.Request, id string) {
	a, ok := onboarded(w, r)
	if !ok {
		return
	}
	var body openapi.MessageRequest
	if !decode(w, r, &body) {
		return
	}
	m, err := s.svc.PostMessage(r.Context(), a, id, body.Message)
	if err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toMessage(m))
}

// WatchShift upgrades to a websocket carrying the shift's events.
func (s *Server) WatchShift(w http.ResponseWriter, r *http.Request, id string) {
	a, ok := onboarded(w, r)
	if !ok {
		return
	}
	if s.hub == nil {
		writeError(w, http.StatusNotImplemented, "realtime is disabled")
		return
	}
	if err := s.svc.CanWatch(r.Context(), a, id); err != nil {
		fail(w, r, err)
		return
	}
	if err := s.hub.Serve(w, r, id, a.ID); err != nil {
		logx.WithFields(r.Context()).Warn("ws_upgrade_failed", zap.Error(err))
	}
}
