package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNovoAutenticadorExigeSegredo(t *testing.T) {
	_, err := NovoAutenticador("", time.Hour)
	assert.Error(t, err)
}

func TestGerarEValidarToken(t *testing.T) {
	a, err := NovoAutenticador("segredo-de-teste", time.Hour)
	require.NoError(t, err)

	tok, err := a.GerarToken(7)
	require.NoError(t, err)

	claims, err := a.ValidarToken(tok)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.ConsultorID)
	assert.Equal(t, "7", claims.Subject)
}

func TestTokenExpirado(t *testing.T) {
	a, err := NovoAutenticador("segredo-de-teste", time.Minute)
	require.NoError(t, err)
	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	a.agora = func() time.Time { return base }

	tok, err := a.GerarToken(1)
	require.NoError(t, err)

	a.agora = func() time.Time { return base.Add(2 * time.Minute) }
	_, err = a.ValidarToken(tok)
	assert.Error(t, err)
}

func TestTokenDeOutroSegredo(t *testing.T) {
	a, _ := NovoAutenticador("um", time.Hour)
	b, _ := NovoAutenticador("outro", time.Hour)

	tok, err := a.GerarToken(1)
	require.NoError(t, err)
	_, err = b.ValidarToken(tok)
	assert.Error(t, err)
}

func TestTokenComAlgoritmoNone(t *testing.T) {
	a, _ := NovoAutenticador("segredo", time.Hour)
	claims := &Claims{ConsultorID: 1, RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))}}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = a.ValidarToken(tok)
	assert.Error(t, err)
}

func TestMiddleware(t *testing.T) {
	a, _ := NovoAutenticador("segredo", time.Hour)
	var visto uint
	h := a.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		visto, _ = ConsultorID(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/me", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	r := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	r.Header.Set("Authorization", "Bearer lixo")
	w = httptest.NewRecorder()
	h.ServeHTTP(w, r)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	tok, _ := a.GerarToken(42)
	r = httptest.NewRequest(http.MethodGet, "/api/me", nil)
	r.Header.Set("Authorization", "Bearer "+tok)
	w = httptest.NewRecorder()
	h.ServeHTTP(w, r)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, uint(42), visto)
}
