package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/KromaEnergia/api-apontamentos/internal/apperr"
	"github.com/KromaEnergia/api-apontamentos/internal/httpx"
	"golang.org/x/time/rate"
)

// LimitePorIP mantém um token bucket por endereço de origem
type LimitePorIP struct {
	mu      sync.Mutex
	limites map[string]*rate.Limiter
	taxa    rate.Limit
	rajada  int
}

// NovoLimitePorMinuto libera porMinuto requisições por IP; 0 desliga o limite
func NovoLimitePorMinuto(porMinuto int) *LimitePorIP {
	l := &LimitePorIP{limites: map[string]*rate.Limiter{}, rajada: porMinuto}
	if porMinuto <= 0 {
		l.taxa = rate.Inf
	} else {
		l.taxa = rate.Every(time.Minute / time.Duration(porMinuto))
	}
	return l
}

func (l *LimitePorIP) limitador(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()
	lim, ok := l.limites[ip]
	if !ok {
		lim = rate.NewLimiter(l.taxa, l.rajada)
		l.limites[ip] = lim
	}
	return lim
}

func (l *LimitePorIP) Limitar(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !l.limitador(ipDe(r)).Allow() {
			httpx.Erro(w, r, apperr.MuitasRequisicoes())
			return
		}
		next.ServeHTTP(w, r)
	})
}

func ipDe(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
