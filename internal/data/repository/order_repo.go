package repository

import (
	"context"
	"errors"
	"fmt"

	"storefront/internal/data/entity"
	"storefront/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// OrderStats backs the admin dashboard cards.
type OrderStats struct {
	TotalRevenue  decimal.Decimal
	TotalOrders   int64
	PendingOrders int64
}

type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	FindByIdempotencyKey(ctx context.Context, userID uuid.UUID, key string) (*entity.Order, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Order, error)
	FindAll(ctx context.Context, limit, offset int) ([]*entity.Order, error)
	CountAll(ctx context.Context) (int64, error)
	UpdateStatus(ctx context.Context, orderID uuid.UUID, status entity.OrderStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
	Stats(ctx context.Context) (*OrderStats, error)
}

type orderRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewOrderRepository(db database.Querier, log *zap.Logger) OrderRepository {
	return &orderRepository{
		db:  db,
		log: log.With(zap.String("repository", "order")),
	}
}

const orderColumns = `o.id, o.user_id, o.total_amount, o.shipping_address, o.status, o.idempotency_key, o.created_at, o.updated_at`

func scanOrder(row pgx.Row, extra ...any) (*entity.Order, error) {
	var o entity.Order
	dest := []any{
		&o.ID,
		&o.UserID,
		&o.TotalAmount,
		&o.ShippingAddress,
		&o.Status,
		&o.IdempotencyKey,
		&o.CreatedAt,
		&o.UpdatedAt,
	}
	if len(extra) > 0 {
		dest = append(dest, &o.ItemCount)
	}
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *orderRepository) Create(ctx context.Context, order *entity.Order) error {
	query := `
		INSERT INTO orders (id, user_id, total_amount, shipping_address, status,
		                    idempotency_key, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.Exec(ctx, query,
		order.ID,
		order.UserID,
		order.TotalAmount,
		order.ShippingAddress,
		order.Status,
		order.IdempotencyKey,
		order.CreatedAt,
		order.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create order",
			zap.Error(err),
			zap.String("user_id", order.UserID.String()),
			zap.String("total_amount", order.TotalAmount.String()),
		)
		return fmt.Errorf("create order for %s: %w", order.UserID.String(), err)
	}

	return nil
}

func (r *orderRepository) FindByIdempotencyKey(ctx context.Context, userID uuid.UUID, key string) (*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders o WHERE o.user_id = $1 AND o.idempotency_key = $2`

	order, err := scanOrder(r.db.QueryRow(ctx, query, userID, key))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find order by idempotency key", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("find order by idempotency key: %w", err)
	}

	return order, nil
}

func (r *orderRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Order, error) {
	query := `
		SELECT ` + orderColumns + `, COUNT(oi.id)
		FROM orders o
		LEFT JOIN order_items oi ON oi.order_id = o.id
		WHERE o.user_id = $1
		GROUP BY o.id
		ORDER BY o.created_at DESC
	`

	return r.list(ctx, query, userID)
}

func (r *orderRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.Order, error) {
	query := `
		SELECT ` + orderColumns + `, COUNT(oi.id)
		FROM orders o
		LEFT JOIN order_items oi ON oi.order_id = o.id
		GROUP BY o.id
		ORDER BY o.created_at DESC
		LIMIT $1 OFFSET $2
	`

	return r.list(ctx, query, limit, offset)
}

func (r *orderRepository) list(ctx context.Context, query string, args ...any) ([]*entity.Order, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to list orders", zap.Error(err))
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	orders := []*entity.Order{}
	for rows.Next() {
		order, err := scanOrder(rows, true)
		if err != nil {
			r.log.Error("Failed to scan order row", zap.Error(err))
			return nil, fmt.Errorf("scan order row: %w", err)
		}
		orders = append(orders, order)
	}

	return orders, rows.Err()
}

func (r *orderRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM orders`).Scan(&count); err != nil {
		r.log.Error("Failed to count orders", zap.Error(err))
		return 0, fmt.Errorf("count orders: %w", err)
	}
	return count, nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, orderID uuid.UUID, status entity.OrderStatus) error {
	query := `UPDATE orders SET status = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, orderID, status)
	if err != nil {
		r.log.Error("Failed to update order status",
			zap.Error(err),
			zap.String("order_id", orderID.String()),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("update order %s status to %s: %w", orderID.String(), status, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("order %s not found", orderID.String())
	}

	return nil
}

func (r *orderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete order", zap.Error(err), zap.String("order_id", id.String()))
		return fmt.Errorf("delete order %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("order %s not found", id.String())
	}

	r.log.Info("Order deleted", zap.String("order_id", id.String()))
	return nil
}

func (r *orderRepository) Stats(ctx context.Context) (*OrderStats, error) {
	query := `
		SELECT COALESCE(SUM(total_amount), 0),
		       COUNT(*),
		       COUNT(*) FILTER (WHERE status = 'pending')
		FROM orders
	`

	var stats OrderStats
	if err := r.db.QueryRow(ctx, query).Scan(&stats.TotalRevenue, &stats.TotalOrders, &stats.PendingOrders); err != nil {
		r.log.Error("Failed to compute order stats", zap.Error(err))
		return nil, fmt.Errorf("order stats: %w", err)
	}

	return &stats, nil
}
