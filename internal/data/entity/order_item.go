package entity

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderItem struct {
	BaseSimple
	OrderID         uuid.UUID       `db:"order_id"`
	ProductID       uuid.UUID       `db:"product_id"`
	Quantity        int             `db:"quantity"`
	PriceAtPurchase decimal.Decimal `db:"price_at_purchase"`
}
