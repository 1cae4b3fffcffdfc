package adaptor

import (
	"encoding/json"
	"net/http"

	"storefront/internal/dto/request"
	"storefront/internal/usecase"
	"storefront/pkg/utils"

	"go.uber.org/zap"
)

type ContactHandler struct {
	service usecase.ContactService
	log     *zap.Logger
}

func NewContactHandler(service usecase.ContactService, log *zap.Logger) *ContactHandler {
	return &ContactHandler{
		service: service,
		log:     log.With(zap.String("handler", "contact")),
	}
}

// Submit handles POST /api/contact
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req request.ContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseValidation(w, validationErrors)
		return
	}

	if err := h.service.Submit(r.Context(), &req); err != nil {
		h.log.Warn("Contact submission rejected", zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)
		return
	}

	utils.ResponseSuccess(w, "Message sent! We'll get back to you soon.", nil)
}
