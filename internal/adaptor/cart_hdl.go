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

type CartHandler struct {
	service usecase.CartService
	log     *zap.Logger
}

func NewCartHandler(service usecase.CartService, log *zap.Logger) *CartHandler {
	return &CartHandler{
		service: service,
		log:     log.With(zap.String("handler", "cart")),
	}
}

// GetCart handles GET /api/cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	cart, err := h.service.GetCart(r.Context(), userID)
	if err != nil {
		h.handleServiceError(w, err, "get cart")
		return
	}

	utils.ResponseSuccess(w, "Cart retrieved", cart)
}

// AddItem handles POST /api/cart/items
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	var req request.AddToCartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseValidation(w, validationErrors)
		return
	}

	cart, err := h.service.AddToCart(r.Context(), userID, req.ProductID)
	if err != nil {
		h.handleServiceError(w, err, "add to cart")
		return
	}

	utils.ResponseSuccess(w, "Added to cart", cart)
}

// UpdateItem handles PUT /api/cart/items/{id}
func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	var req request.UpdateCartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseValidation(w, validationErrors)
		return
	}

	cart, err := h.service.UpdateQuantity(r.Context(), userID, chi.URLParam(r, "id"), *req.Quantity)
	if err != nil {
		h.handleServiceError(w, err, "update cart item")
		return
	}

	utils.ResponseSuccess(w, "Cart updated", cart)
}

// RemoveItem handles DELETE /api/cart/items/{id}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	cart, err := h.service.RemoveFromCart(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		h.handleServiceError(w, err, "remove cart item")
		return
	}

	utils.ResponseSuccess(w, "Item removed", cart)
}

// Clear handles DELETE /api/cart
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	if err := h.service.ClearCart(r.Context(), userID); err != nil {
		h.handleServiceError(w, err, "clear cart")
		return
	}

	utils.ResponseSuccess(w, "Cart cleared", nil)
}

func (h *CartHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	switch {
	case errors.Is(err, usecase.ErrAuthRequired):
		utils.ResponseUnauthorized(w, "Please sign in to use the cart")

	case errors.Is(err, usecase.ErrInvalidID):
		utils.ResponseBadRequest(w, err.Error(), nil)

	case strings.Contains(err.Error(), "not found"):
		h.log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, "cart item not found")

	default:
		h.log.Error("Failed to "+operation, zap.Error(err))
		utils.ResponseInternalError(w, "Failed to "+operation)
	}
}
