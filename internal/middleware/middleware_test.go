package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/KromaEnergia/api-apontamentos/internal/httpx"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestIDGeraERepassa(t *testing.T) {
	var visto string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		visto = httpx.RequestID(r.Context())
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, visto)
	assert.Equal(t, visto, w.Header().Get(HeaderXRequestID))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderXRequestID, "abc-123")
	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", visto)
}

func TestRecoveryDevolve500(t *testing.T) {
	h := Recovery(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))
	w := httptest.NewRecorder()
	require.NotPanics(t, func() {
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"message":"Internal server error"}`, w.Body.String())
}

func TestLoggerPreservaStatus(t *testing.T) {
	h := Logger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x?y=1", nil))
	assert.Equal(t, http.StatusTeapot, w.Code)
}

func TestStatusWriterPadrao200(t *testing.T) {
	sw := &statusWriter{ResponseWriter: httptest.NewRecorder()}
	assert.Equal(t, http.StatusOK, sw.Status())
	_, _ = sw.Write([]byte("ok"))
	sw.WriteHeader(http.StatusNotFound)
	assert.Equal(t, http.StatusOK, sw.Status())
}

func TestMetricasUsamTemplateDaRota(t *testing.T) {
	m := NovasMetricas()
	r := mux.NewRouter()
	r.Use(m.Middleware)
	r.HandleFunc("/api/clients/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	for _, id := range []string{"1", "2", "3"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/clients/"+id, nil))
	}

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	corpo := w.Body.String()
	assert.Contains(t, corpo, `http_requests_total{method="GET",path="/api/clients/{id}",status="404"} 3`)
	assert.Contains(t, corpo, `http_errors_total{method="GET",path="/api/clients/{id}",status="404"} 3`)
	assert.False(t, strings.Contains(corpo, `path="/api/clients/1"`))
}

func TestLimitePorIP(t *testing.T) {
	l := NovoLimitePorMinuto(2)
	h := l.Limitar(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	fazer := func(ip string) int {
		req := httptest.NewRequest(http.MethodPost, "/api/login", nil)
		req.RemoteAddr = ip + ":5555"
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, fazer("10.0.0.1"))
	assert.Equal(t, http.StatusOK, fazer("10.0.0.1"))
	assert.Equal(t, http.StatusTooManyRequests, fazer("10.0.0.1"))
	assert.Equal(t, http.StatusOK, fazer("10.0.0.2"))
}

func TestLimiteDesligado(t *testing.T) {
	h := NovoLimitePorMinuto(0).Limitar(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	for i := 0; i < 100; i++ {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", nil))
		require.Equal(t, http.StatusOK, w.Code)
	}
}
