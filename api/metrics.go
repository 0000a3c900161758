/*
metrics.go - Prometheus instrumentation for the HTTP API

PURPOSE:
  Counts requests and measures latency per route, labeled by method,
  path pattern and status class. Exposed on /metrics for scraping.

METRICS:
  hotel_http_requests_total{method, route, status}
  hotel_http_request_duration_seconds{method, route}

ROUTE LABEL:
  Uses the chi route pattern (e.g. /api/reservations/{locator}/cancel)
  rather than the raw URL, so the label set stays bounded.

SEE ALSO:
  - server.go: Wires the middleware and the /metrics handler
*/
package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors for the API.
type Metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetrics registers the collectors on the default registry.
func NewMetrics(service string) *Metrics {
	labels := prometheus.Labels{"service": service}
	return &Metrics{
		requests: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "hotel_http_requests_total",
			Help:        "Total HTTP requests processed.",
			ConstLabels: labels,
		}, []string{"method", "route", "status"}),
		duration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "hotel_http_request_duration_seconds",
			Help:        "HTTP request latency.",
			ConstLabels: labels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
}

// Middleware instruments each request.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := chi.RouteContext(r.Context()).RoutePattern()
		if route == "" {
			route = "unmatched"
		}
		m.requests.WithLabelValues(r.Method, route, strconv.Itoa(ww.Status())).Inc()
		m.duration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}
