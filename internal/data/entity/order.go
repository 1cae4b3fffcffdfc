package entity

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped, OrderStatusDelivered:
		return true
	}
	return false
}

type Order struct {
	Base
	UserID          uuid.UUID       `db:"user_id"`
	TotalAmount     decimal.Decimal `db:"total_amount"`
	ShippingAddress string          `db:"shipping_address"`
	Status          OrderStatus     `db:"status"`
	IdempotencyKey  *string         `db:"idempotency_key"`

	// filled by list queries only
	ItemCount int `db:"-"`
}
