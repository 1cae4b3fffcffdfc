package adaptor

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"storefront/internal/dto/request"
	"storefront/internal/usecase"
	"storefront/pkg/utils"

	"go.uber.org/zap"
)

// IdempotencyKeyHeader lets a client retry a checkout without placing a second order.
const IdempotencyKeyHeader = "Idempotency-Key"

type OrderHandler struct {
	service usecase.OrderService
	log     *zap.Logger
}

func NewOrderHandler(service usecase.OrderService, log *zap.Logger) *OrderHandler {
	return &OrderHandler{
		service: service,
		log:     log.With(zap.String("handler", "order")),
	}
}

// Checkout handles POST /api/checkout
func (h *OrderHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	var req request.CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}
	req.Normalize()

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseValidation(w, validationErrors)
		return
	}

	placed, err := h.service.PlaceOrder(r.Context(), userID, &req, r.Header.Get(IdempotencyKeyHeader))
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	utils.ResponseCreated(w, "Order "+placed.Reference+" has been placed successfully.", placed)
}

func (h *OrderHandler) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, usecase.ErrNothingToCheckout):
		utils.ResponseBadRequest(w, err.Error(), nil)

	case strings.Contains(err.Error(), "validation failed"):
		utils.ResponseBadRequest(w, err.Error(), nil)

	default:
		// store failures carry their own user-facing message
		h.log.Error("Checkout failed", zap.Error(err))
		utils.ResponseInternalError(w, err.Error())
	}
}
