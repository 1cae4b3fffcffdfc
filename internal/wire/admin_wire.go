package wire

import (
	"storefront/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireAdmin(r chi.Router, adminHandler *adaptor.AdminHandler, deps routeDeps) {
	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin", func(r chi.Router) {
		// Require both authentication AND admin role
		r.Use(deps.auth())
		r.Use(deps.admin())

		r.Get("/dashboard", adminHandler.Dashboard)

		r.Get("/products", adminHandler.ListProducts)
		r.Post("/products", adminHandler.CreateProduct)
		r.Put("/products/{id}", adminHandler.UpdateProduct)
		r.Delete("/products/{id}", adminHandler.DeleteProduct)

		r.Get("/orders", adminHandler.ListOrders)
		r.Put("/orders/{id}/status", adminHandler.UpdateOrderStatus)
	})
}
