package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/KromaEnergia/api-apontamentos/internal/apperr"
	"github.com/KromaEnergia/api-apontamentos/internal/httpx"
)

type ctxKey string

const ctxConsultorID ctxKey = "consultorID"

// ConsultorID devolve o consultor autenticado pelo middleware
func ConsultorID(ctx context.Context) (uint, bool) {
	id, ok := ctx.Value(ctxConsultorID).(uint)
	return id, ok
}

func ComConsultorID(ctx context.Context, id uint) context.Context {
	return context.WithValue(ctx, ctxConsultorID, id)
}

// Middleware exige "Authorization: Bearer <token>" válido
func (a *Autenticador) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}
		h := r.Header.Get("Authorization")
		if h == "" || !strings.HasPrefix(h, "Bearer ") {
			httpx.Erro(w, r, apperr.NaoAutorizado("Token ausente"))
			return
		}
		claims, err := a.ValidarToken(strings.TrimPrefix(h, "Bearer "))
		if err != nil {
			httpx.Erro(w, r, apperr.NaoAutorizado("Token inválido"))
			return
		}
		next.ServeHTTP(w, r.WithContext(ComConsultorID(r.Context(), claims.ConsultorID)))
	})
}
