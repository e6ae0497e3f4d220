package routers

import (
	"github.com/go-chi/chi/v5"

	"interviewlens/internal/handlers"
)

func RegisterInterviewRoutes(router chi.Router, h *handlers.InterviewHandler) {
	router.Route("/interviews", func(r chi.Router) {
		r.Post("/", h.Upload)
		r.Get("/", h.List)
		r.Get("/{id}", h.Get)
		r.Get("/{id}/report", h.GetReport)
		r.Patch("/{id}/pin", h.Pin)
		r.Delete("/{id}", h.Delete)
	})
}
