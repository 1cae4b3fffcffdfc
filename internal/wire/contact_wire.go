package wire

import (
	"storefront/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireContact(r chi.Router, contactHandler *adaptor.ContactHandler) {
	// ==================== PUBLIC ROUTES ====================
	r.Post("/api/contact", contactHandler.Submit)
}
