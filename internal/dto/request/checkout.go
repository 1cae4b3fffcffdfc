package request

import "strings"

type CheckoutRequest struct {
	ShippingAddress string `json:"shipping_address" validate:"required,max=500"`
}

// Normalize trims the address so a whitespace-only value fails "required".
func (r *CheckoutRequest) Normalize() {
	r.ShippingAddress = strings.TrimSpace(r.ShippingAddress)
}
