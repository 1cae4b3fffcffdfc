package response

type CartItemResponse struct {
	ID        string  `json:"id"`
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Image     *string `json:"image"`
	Quantity  int     `json:"quantity"`
}

// CartResponse is the cart as the drawer shows it. Open is set after an add.
type CartResponse struct {
	Items      []CartItemResponse `json:"items"`
	TotalItems int                `json:"total_items"`
	TotalPrice float64            `json:"total_price"`
	Open       bool               `json:"open"`
}
