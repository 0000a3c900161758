/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

ROUTER: chi
  Chi was chosen for:
  - Lightweight and fast
  - Context-based
  - Middleware support
  - RESTful route patterns

MIDDLEWARE STACK:
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. CORS:       Cross-origin requests for front-desk clients
  5. Metrics:    Prometheus request counters (optional)

ROUTE GROUPS:
  /api/quotes, /api/availability, /api/rates/*   Pricing
  /api/reservations/*                             Booking lifecycle
  /api/reports/*                                  Reporting
  /api/admin/*                                    Operations
  /metrics                                        Prometheus scrape

SECURITY NOTE:
  No authentication middleware currently. All endpoints are public.

SEE ALSO:
  - handlers.go: Handler implementations
  - metrics.go: Prometheus instrumentation
  - cmd/server/main.go: Server startup
*/
package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RouterOptions tunes the router wiring.
type RouterOptions struct {
	// Metrics enables request instrumentation and the /metrics endpoint.
	Metrics *Metrics
	// MetricsPath defaults to /metrics.
	MetricsPath string
}

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler, opts RouterOptions) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))
	if opts.Metrics != nil {
		r.Use(opts.Metrics.Middleware)
	}

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Pricing routes
		r.Post("/quotes", h.CreateQuote)
		r.Get("/availability", h.GetAvailability)
		r.Route("/rates", func(r chi.Router) {
			r.Get("/", h.ListRates)
			r.Put("/{date}", h.SetRate)
			r.Delete("/{date}", h.RemoveRate)
		})

		// Reservation routes
		r.Route("/reservations", func(r chi.Router) {
			r.Get("/", h.ListReservations)
			r.Post("/", h.CreateReservation)
			r.Route("/{locator}", func(r chi.Router) {
				r.Get("/", h.GetReservation)
				r.Post("/room", h.AssignRoom)
				r.Post("/check-in", h.CheckIn)
				r.Post("/check-out", h.CheckOut)
				r.Post("/cancel", h.Cancel)
				r.Post("/no-show", h.MarkNoShow)
				r.Post("/dates", h.ChangeDates)
				r.Post("/payments", h.RecordPayment)
				r.Get("/receipt", h.GetReceipt)
			})
		})

		// Report routes
		r.Get("/reports/{kind}", h.GetReport)

		// Admin routes
		r.Route("/admin", func(r chi.Router) {
			r.Post("/daily-tasks", h.RunDailyTasks)
		})
	})

	if opts.Metrics != nil {
		path := opts.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		r.Handle(path, promhttp.Handler())
	}

	return r
}
