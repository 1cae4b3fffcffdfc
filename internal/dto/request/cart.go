package request

type AddToCartRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
}

// UpdateCartItemRequest carries the new quantity. Anything below 1 removes the line.
type UpdateCartItemRequest struct {
	Quantity *int `json:"quantity" validate:"required"`
}
