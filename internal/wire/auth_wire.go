package wire

import (
	"storefront/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireAuth(r chi.Router, authHandler *adaptor.AuthHandler, deps routeDeps) {
	r.Route("/api/auth", func(r chi.Router) {
		// ==================== PUBLIC ROUTES ====================
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)

		// ==================== PROTECTED ROUTES ====================
		r.With(deps.auth()).Post("/logout", authHandler.Logout)
		r.With(deps.auth()).Get("/me", authHandler.Me)
	})
}
