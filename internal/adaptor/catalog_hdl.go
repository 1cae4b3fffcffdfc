package adaptor

import (
	"errors"
	"net/http"
	"strings"

	"storefront/internal/usecase"
	"storefront/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type CatalogHandler struct {
	service usecase.CatalogService
	log     *zap.Logger
}

func NewCatalogHandler(service usecase.CatalogService, log *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		service: service,
		log:     log.With(zap.String("handler", "catalog")),
	}
}

// ListProducts handles GET /api/products?category=
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.ListProducts(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		h.handleServiceError(w, err, "list products")
		return
	}

	utils.ResponseSuccess(w, "Products retrieved", products)
}

// FeaturedProducts handles GET /api/products/featured
func (h *CatalogHandler) FeaturedProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.FeaturedProducts(r.Context())
	if err != nil {
		h.handleServiceError(w, err, "list featured products")
		return
	}

	utils.ResponseSuccess(w, "Featured products retrieved", products)
}

// GetProduct handles GET /api/products/{id}
func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.service.GetProduct(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.handleServiceError(w, err, "get product")
		return
	}

	utils.ResponseSuccess(w, "Product retrieved", product)
}

// ListCategories handles GET /api/categories
func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.ListCategories(r.Context())
	if err != nil {
		h.handleServiceError(w, err, "list categories")
		return
	}

	utils.ResponseSuccess(w, "Categories retrieved", categories)
}

func (h *CatalogHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	switch {
	case errors.Is(err, usecase.ErrInvalidID):
		utils.ResponseBadRequest(w, err.Error(), nil)

	case strings.Contains(err.Error(), "not found"):
		h.log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, err.Error())

	default:
		h.log.Error("Failed to "+operation, zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
