// Package metrics expone los colectores Prometheus de la API.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry propio para no mezclar con colectores globales de librerías.
var Registry = prometheus.NewRegistry()

var (
	httpRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "finans",
		Name:      "http_requests_total",
		Help:      "Peticiones HTTP por método, ruta y código.",
	}, []string{"method", "route", "status"})

	httpDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "finans",
		Name:      "http_request_duration_seconds",
		Help:      "Latencia de las peticiones HTTP.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	cacheLookups = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "finans",
		Name:      "query_cache_lookups_total",
		Help:      "Consultas a la caché de listados (hit/miss).",
	}, []string{"result"})
)

func init() {
	Registry.MustRegister(
		httpRequests,
		httpDuration,
		cacheLookups,
		prometheus.NewGoCollector(),
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
	)
}

// ObserveRequest registra una petición terminada.
func ObserveRequest(method, route string, status int, elapsed time.Duration) {
	httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// CacheHit / CacheMiss contadores de la caché de consultas.
func CacheHit()  { cacheLookups.WithLabelValues("hit").Inc() }
func CacheMiss() { cacheLookups.WithLabelValues("miss").Inc() }

// Handler devuelve el handler HTTP de /metrics.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}
