package middleware

import (
	"net/http"

	"github.com/KromaEnergia/api-apontamentos/internal/httpx"
	"github.com/google/uuid"
)

const HeaderXRequestID = "X-Request-ID"

// RequestID reaproveita o X-Request-ID recebido ou gera um novo
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rid := r.Header.Get(HeaderXRequestID)
		if rid == "" {
			rid = uuid.New().String()
		}
		w.Header().Set(HeaderXRequestID, rid)
		next.ServeHTTP(w, r.WithContext(httpx.ComRequestID(r.Context(), rid)))
	})
}
