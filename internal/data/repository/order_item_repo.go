package repository

import (
	"context"
	"fmt"
	"strings"

	"storefront/internal/data/entity"
	"storefront/pkg/database"

	"go.uber.org/zap"
)

type OrderItemRepository interface {
	CreateBatch(ctx context.Context, items []*entity.OrderItem) error
}

type orderItemRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewOrderItemRepository(db database.Querier, log *zap.Logger) OrderItemRepository {
	return &orderItemRepository{
		db:  db,
		log: log.With(zap.String("repository", "order_item")),
	}
}

// CreateBatch inserts all items with one multi-row INSERT, so either every row
// lands or none does.
func (r *orderItemRepository) CreateBatch(ctx context.Context, items []*entity.OrderItem) error {
	if len(items) == 0 {
		return nil
	}

	var qb strings.Builder
	qb.WriteString(`INSERT INTO order_items (id, order_id, product_id, quantity, price_at_purchase, created_at) VALUES `)

	const cols = 6
	args := make([]any, 0, len(items)*cols)
	for i, it := range items {
		if i > 0 {
			qb.WriteString(", ")
		}
		n := i * cols
		qb.WriteString(fmt.Sprintf("($%d, $%d, $%d, $%d, $%d, $%d)", n+1, n+2, n+3, n+4, n+5, n+6))
		args = append(args, it.ID, it.OrderID, it.ProductID, it.Quantity, it.PriceAtPurchase, it.CreatedAt)
	}

	if _, err := r.db.Exec(ctx, qb.String(), args...); err != nil {
		r.log.Error("Failed to create order items",
			zap.Error(err),
			zap.String("order_id", items[0].OrderID.String()),
			zap.Int("count", len(items)),
		)
		return fmt.Errorf("create %d order items for order %s: %w", len(items), items[0].OrderID.String(), err)
	}

	return nil
}

