package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/KromaEnergia/api-apontamentos/internal/httpx"
	"github.com/rs/zerolog/log"
)

// Recovery transforma panic em 500 com a mensagem genérica
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				log.Error().
					Interface("panic", rec).
					Str("stack", string(debug.Stack())).
					Str("method", r.Method).
					Str("path", r.URL.Path).
					Str("request_id", httpx.RequestID(r.Context())).
					Msg("panic recuperado")
				httpx.JSON(w, http.StatusInternalServerError, map[string]string{"message": "Internal server error"})
			}
		}()
		next.ServeHTTP(w, r)
	})
}
