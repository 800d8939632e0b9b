package middleware

import (
	"net/http"
	"time"

	"github.com/KromaEnergia/api-apontamentos/internal/httpx"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// statusWriter guarda o status escrito pelo handler
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	if w.status == 0 {
		w.status = code
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	return w.ResponseWriter.Write(b)
}

func (w *statusWriter) Status() int {
	if w.status == 0 {
		return http.StatusOK
	}
	return w.status
}

// Logger registra uma linha por requisição; 4xx em warn e 5xx em error
func Logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w}
		next.ServeHTTP(sw, r)

		status := sw.Status()
		var ev *zerolog.Event
		switch {
		case status >= http.StatusInternalServerError:
			ev = log.Error()
		case status >= http.StatusBadRequest:
			ev = log.Warn()
		default:
			ev = log.Info()
		}

		path := r.URL.Path
		if r.URL.RawQuery != "" {
			path += "?" + r.URL.RawQuery
		}
		ev.Str("request_id", httpx.RequestID(r.Context())).
			Str("method", r.Method).
			Str("path", path).
			Str("client_ip", r.RemoteAddr).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("user_agent", r.UserAgent()).
			Msg("request")
	})
}
