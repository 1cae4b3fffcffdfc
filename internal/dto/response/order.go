package response

import (
	"time"

	"storefront/internal/data/entity"
	"storefront/pkg/utils"
)

type OrderResponse struct {
	ID              string             `json:"id"`
	Reference       string             `json:"reference"`
	UserID          string             `json:"user_id"`
	TotalAmount     float64            `json:"total_amount"`
	ShippingAddress string             `json:"shipping_address"`
	Status          entity.OrderStatus `json:"status"`
	ItemCount       int                `json:"item_count"`
	CreatedAt       time.Time          `json:"created_at"`
}

type PlaceOrderResponse struct {
	OrderID     string  `json:"order_id"`
	Reference   string  `json:"reference"`
	TotalAmount float64 `json:"total_amount"`
}

type DashboardStatsResponse struct {
	TotalRevenue  float64 `json:"total_revenue"`
	TotalOrders   int64   `json:"total_orders"`
	TotalProducts int64   `json:"total_products"`
	PendingOrders int64   `json:"pending_orders"`
}

func OrderToResponse(o *entity.Order, refLength int) OrderResponse {
	return OrderResponse{
		ID:              o.ID.String(),
		Reference:       utils.ShortRef(o.ID.String(), refLength),
		UserID:          o.UserID.String(),
		TotalAmount:     utils.AmountJSON(o.TotalAmount),
		ShippingAddress: o.ShippingAddress,
		Status:          o.Status,
		ItemCount:       o.ItemCount,
		CreatedAt:       o.CreatedAt,
	}
}

func OrdersToResponse(orders []*entity.Order, refLength int) []OrderResponse {
	out := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, OrderToResponse(o, refLength))
	}
	return out
}
