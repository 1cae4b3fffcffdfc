package entity

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CartItem struct {
	Base
	UserID    uuid.UUID `db:"user_id"`
	ProductID uuid.UUID `db:"product_id"`
	Quantity  int       `db:"quantity"`
}

// CartLine is a cart row joined with the product fields the cart needs.
type CartLine struct {
	ID        uuid.UUID
	ProductID uuid.UUID
	Quantity  int
	Name      string
	Price     decimal.Decimal
	Image     *string
}
