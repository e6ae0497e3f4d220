package routers

import (
	"github.com/go-chi/chi/v5"

	"interviewlens/internal/handlers"
	"interviewlens/internal/metrics"
)

func RegisterHealthRoutes(router chi.Router) {
	router.Get("/healthz", handlers.Healthz)
	router.Get("/readyz", handlers.Readyz)
	router.Method("GET", "/metrics", metrics.Handler())
}
