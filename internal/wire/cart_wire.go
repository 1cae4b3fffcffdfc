package wire

import (
	"storefront/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireCart(r chi.Router, cartHandler *adaptor.CartHandler, orderHandler *adaptor.OrderHandler, deps routeDeps) {
	// ==================== PROTECTED ROUTES (require auth) ====================
	r.Group(func(r chi.Router) {
		r.Use(deps.auth())

		r.Get("/api/cart", cartHandler.GetCart)
		r.Delete("/api/cart", cartHandler.Clear)
		r.Post("/api/cart/items", cartHandler.AddItem)
		r.Put("/api/cart/items/{id}", cartHandler.UpdateItem)
		r.Delete("/api/cart/items/{id}", cartHandler.RemoveItem)

		// POST /api/checkout - place an order from the current cart
		r.Post("/api/checkout", orderHandler.Checkout)
	})
}
