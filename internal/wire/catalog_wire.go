package wire

import (
	"storefront/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireCatalog(r chi.Router, catalogHandler *adaptor.CatalogHandler) {
	// ==================== PUBLIC ROUTES ====================
	r.Get("/api/products", catalogHandler.ListProducts)
	r.Get("/api/products/featured", catalogHandler.FeaturedProducts)
	r.Get("/api/products/{id}", catalogHandler.GetProduct)
	r.Get("/api/categories", catalogHandler.ListCategories)
}
