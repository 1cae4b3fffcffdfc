package wire

import (
	"storefront/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireAccount(r chi.Router, accountHandler *adaptor.AccountHandler, deps routeDeps) {
	// ==================== PROTECTED ROUTES (require auth) ====================
	r.Route("/api/account", func(r chi.Router) {
		r.Use(deps.auth())

		r.Get("/orders", accountHandler.Orders)
		r.Get("/profile", accountHandler.Profile)
		r.Put("/profile", accountHandler.UpdateProfile)
	})
}
