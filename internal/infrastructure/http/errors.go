package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"shiftserve/internal/application"
	"shiftserve/internal/infrastructure/http/openapi"
	"shiftserve/internal/infrastructure/logx"

	"go.uber.org/zap"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, openapi.Error{Code: code, Message: msg})
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, application.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, application.ErrBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, application.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, application.ErrForbidden):
		return http.StatusForbidden
	}
	return http.StatusInternalServerError
}

// fail writes the envelope for a service error. Internal failures are
// logged and their text is not exposed.
func fail(w http.ResponseWriter, r *http.Request, err error) {
	code := statusOf(err)
	if code == http.StatusInternalServerError {
		logx.WithFields(r.Context()).Error("request_failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		writeError(w, code, "internal error")
		return
	}
	writeError(w, code, err.Error())
}

func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}
