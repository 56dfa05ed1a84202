package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/api/auth/register", h.register)
		r.Post("/api/auth/login", h.login)
		r.Get("/api/auth/salt", h.accountSalt)
	})

	// routes requiring a valid bearer token
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Get("/api/vault/salt", h.vaultSalt)

		r.Route("/api/drafts", func(r chi.Router) {
			r.Post("/", h.createDraft)
			r.Get("/", h.listDrafts)
			r.Get("/{id}", h.getDraft)
			r.Put("/{id}", h.updateDraft)
			r.Delete("/{id}", h.deleteDraft)
		})
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
