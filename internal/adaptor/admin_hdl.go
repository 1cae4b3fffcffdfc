package adaptor

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"storefront/internal/dto/request"
	"storefront/internal/usecase"
	"storefront/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type AdminHandler struct {
	service usecase.AdminService
	log     *zap.Logger
}

func NewAdminHandler(service usecase.AdminService, log *zap.Logger) *AdminHandler {
	return &AdminHandler{
		service: service,
		log:     log.With(zap.String("handler", "admin")),
	}
}

// Dashboard handles GET /api/admin/dashboard
func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.DashboardStats(r.Context())
	if err != nil {
		h.handleServiceError(w, err, "get dashboard stats")
		return
	}

	utils.ResponseSuccess(w, "Dashboard stats retrieved", stats)
}

// ListProducts handles GET /api/admin/products?page=&per_page=&q=
func (h *AdminHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.ListProducts(r.Context(), request.PaginationFromQuery(r.URL.Query()))
	if err != nil {
		h.handleServiceError(w, err, "list products")
		return
	}

	utils.ResponseSuccess(w, "Products retrieved", products)
}

// CreateProduct handles POST /api/admin/products
func (h *AdminHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var form request.ProductFormRequest
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	product, err := h.service.CreateProduct(r.Context(), &form)
	if err != nil {
		h.handleServiceError(w, err, "create product")
		return
	}

	utils.ResponseCreated(w, "Product created", product)
}

// UpdateProduct handles PUT /api/admin/products/{id}
func (h *AdminHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	var form request.ProductFormRequest
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	product, err := h.service.UpdateProduct(r.Context(), chi.URLParam(r, "id"), &form)
	if err != nil {
		h.handleServiceError(w, err, "update product")
		return
	}

	utils.ResponseSuccess(w, "Product updated", product)
}

// DeleteProduct handles DELETE /api/admin/products/{id}
func (h *AdminHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteProduct(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.handleServiceError(w, err, "delete product")
		return
	}

	utils.ResponseSuccess(w, "Product deleted", nil)
}

// ListOrders handles GET /api/admin/orders?page=&per_page=
func (h *AdminHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.service.ListOrders(r.Context(), request.PaginationFromQuery(r.URL.Query()))
	if err != nil {
		h.handleServiceError(w, err, "list orders")
		return
	}

	utils.ResponseSuccess(w, "Orders retrieved", orders)
}

// UpdateOrderStatus handles PUT /api/admin/orders/{id}/status
func (h *AdminHandler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	var req request.UpdateOrderStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseValidation(w, validationErrors)
		return
	}

	if err := h.service.UpdateOrderStatus(r.Context(), chi.URLParam(r, "id"), req.Status); err != nil {
		h.handleServiceError(w, err, "update order status")
		return
	}

	utils.ResponseSuccess(w, "Order status updated", nil)
}

func (h *AdminHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	errMsg := err.Error()

	switch {
	case errors.Is(err, usecase.ErrInvalidID):
		utils.ResponseBadRequest(w, errMsg, nil)

	case strings.Contains(errMsg, "validation failed"):
		h.log.Warn(operation+" validation failed", zap.Error(err))
		utils.ResponseBadRequest(w, errMsg, nil)

	case strings.Contains(errMsg, "not found"):
		h.log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, errMsg)

	default:
		h.log.Error("Failed to "+operation, zap.Error(err))
		utils.ResponseInternalError(w, "Failed to "+operation)
	}
}
