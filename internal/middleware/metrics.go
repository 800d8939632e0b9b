package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metricas mantém um registry próprio, sem depender do global do prometheus
type Metricas struct {
	registry *prometheus.Registry
	duracao  *prometheus.HistogramVec
	total    *prometheus.CounterVec
	erros    *prometheus.CounterVec
}

func NovasMetricas() *Metricas {
	m := &Metricas{
		registry: prometheus.NewRegistry(),
		duracao: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		),
		total: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		erros: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_errors_total",
				Help: "Total number of HTTP errors",
			},
			[]string{"method", "path", "status"},
		),
	}
	m.registry.MustRegister(
		m.duracao,
		m.total,
		m.erros,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Middleware rotula pelo template da rota (/api/clients/{id}) para não explodir cardinalidade
func (m *Metricas) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w}
		next.ServeHTTP(sw, r)

		path := r.URL.Path
		if rota := mux.CurrentRoute(r); rota != nil {
			if tpl, err := rota.GetPathTemplate(); err == nil {
				path = tpl
			}
		}
		status := strconv.Itoa(sw.Status())
		m.duracao.WithLabelValues(r.Method, path, status).Observe(time.Since(start).Seconds())
		m.total.WithLabelValues(r.Method, path, status).Inc()
		if sw.Status() >= http.StatusBadRequest {
			m.erros.WithLabelValues(r.Method, path, status).Inc()
		}
	})
}

// Handler expõe o registry em /metrics
func (m *Metricas) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
