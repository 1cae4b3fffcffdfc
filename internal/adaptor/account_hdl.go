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

type AccountHandler struct {
	service usecase.AccountService
	log     *zap.Logger
}

func NewAccountHandler(service usecase.AccountService, log *zap.Logger) *AccountHandler {
	return &AccountHandler{
		service: service,
		log:     log.With(zap.String("handler", "account")),
	}
}

// Orders handles GET /api/account/orders
func (h *AccountHandler) Orders(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	orders, err := h.service.ListOrders(r.Context(), userID)
	if err != nil {
		h.handleServiceError(w, err, "list orders")
		return
	}

	utils.ResponseSuccess(w, "Orders retrieved", orders)
}

// Profile handles GET /api/account/profile
func (h *AccountHandler) Profile(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	profile, err := h.service.GetProfile(r.Context(), userID)
	if err != nil {
		h.handleServiceError(w, err, "get profile")
		return
	}

	utils.ResponseSuccess(w, "Profile retrieved", profile)
}

// UpdateProfile handles PUT /api/account/profile
func (h *AccountHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	var req request.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseValidation(w, validationErrors)
		return
	}

	profile, err := h.service.UpdateProfile(r.Context(), userID, &req)
	if err != nil {
		h.handleServiceError(w, err, "update profile")
		return
	}

	utils.ResponseSuccess(w, "Profile updated", profile)
}

func (h *AccountHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	errMsg := err.Error()

	switch {
	case errors.Is(err, usecase.ErrAuthRequired):
		utils.ResponseUnauthorized(w, errMsg)

	case strings.Contains(errMsg, "not found"):
		h.log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, errMsg)

	case strings.Contains(errMsg, "validation failed"):
		utils.ResponseBadRequest(w, errMsg, nil)

	default:
		h.log.Error("Failed to "+operation, zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
