package authx

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/require"
)

func protected(secret string) http.Handler {
	r := chi.NewRouter()
	r.Use(jwtauth.Verifier(NewVerifier(secret)))
	r.Use(jwtauth.Authenticator(NewVerifier(secret)))
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		sub, ok := Subject(r.Context())
		if !ok {
			w.WriteHeader(http.StatusTeapot)
			return
		}
		_, _ = w.Write([]byte(sub))
	})
	return r
}

func call(h http.Handler, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestMintAndVerify(t *testing.T) {
	tok, err := NewMinter("s3cret").Mint("user-1", time.Hour)
	require.NoError(t, err)

	rec := call(protected("s3cret"), tok)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "user-1", rec.Body.String())
}

func TestVerify_Rejects(t *testing.T) {
	h := protected("s3cret")
	require.Equal(t, http.StatusUnauthorized, call(h, "").Code)

	wrong, err := NewMinter("other").Mint("user-1", time.Hour)
	require.NoError(t, err)
	require.Equal(t, http.StatusUnauthorized, call(h, wrong).Code)

	m := NewMinter("s3cret")
	m.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expired, err := m.Mint("user-1", time.Hour)
	require.NoError(t, err)
	require.Equal(t, http.StatusUnauthorized, call(h, expired).Code)
}

func TestMint_EmptySubject(t *testing.T) {
	_, err := NewMinter("s3cret").Mint("", time.Hour)
	require.Error(t, err)
}
