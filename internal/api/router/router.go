package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/farmvet/herdsafe/internal/api/handlers"
	"github.com/farmvet/herdsafe/internal/api/middleware"
	"github.com/farmvet/herdsafe/internal/config"
	"github.com/farmvet/herdsafe/internal/pkg/logger"
	"github.com/farmvet/herdsafe/internal/pkg/metrics"
)

type Handlers struct {
	Health     *handlers.HealthHandler
	Drug       *handlers.DrugHandler
	Animal     *handlers.AnimalHandler
	Treatment  *handlers.TreatmentHandler
	Alert      *handlers.AlertHandler
	Compliance *handlers.ComplianceHandler
}

func New(cfg *config.Config, log *logger.Logger, h *Handlers) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(log))
	r.Use(middleware.Recovery(log))
	r.Use(middleware.DefaultCORS(cfg.Server.FrontendURL))
	r.Use(metrics.Middleware)

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	// Health checks
	r.Get("/health", h.Health.Healthz)
	r.Get("/healthz", h.Health.Healthz)
	r.Get("/readyz", h.Health.Readyz)

	// Prometheus metrics
	r.Handle("/metrics", metrics.Handler())

	// Drugs
	r.Route("/api/v1/drugs", func(r chi.Router) {
		r.Get("/", h.Drug.List)
		r.Post("/", h.Drug.Create)
		r.Get("/{id}", h.Drug.Get)
	})

	// Animals
	r.Route("/api/v1/animals", func(r chi.Router) {
		r.Get("/", h.Animal.List)
		r.Post("/", h.Animal.Create)
		r.Get("/{id}", h.Animal.Get)
	})

	// Treatments
	r.Route("/api/v1/treatments", func(r chi.Router) {
		r.Get("/", h.Treatment.List)
		r.Post("/", h.Treatment.Create)
		r.Get("/{id}", h.Treatment.Get)
		r.Put("/{id}", h.Treatment.Update)
	})

	// Alerts
	r.Route("/api/v1/alerts", func(r chi.Router) {
		r.Get("/", h.Alert.List)
		r.Get("/summary", h.Alert.Summary)
		r.Get("/{id}", h.Alert.Get)
		r.Post("/{id}/resolve", h.Alert.Resolve)
	})

	// Compliance
	r.Route("/api/v1/compliance", func(r chi.Router) {
		r.Post("/run", h.Compliance.Run)
		r.Get("/summary", h.Compliance.Summary)
	})

	return r
}
