package repository

import (
	"context"
	"errors"
	"fmt"

	"storefront/internal/data/entity"
	"storefront/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// CartRepository scopes every statement by user id so one customer can never
// touch another customer's lines.
type CartRepository interface {
	FindLinesByUserID(ctx context.Context, userID uuid.UUID) ([]entity.CartLine, error)
	FindByUserAndProduct(ctx context.Context, userID, productID uuid.UUID) (*entity.CartItem, error)
	Create(ctx context.Context, item *entity.CartItem) error
	UpdateQuantity(ctx context.Context, userID, itemID uuid.UUID, quantity int) error
	Delete(ctx context.Context, userID, itemID uuid.UUID) error
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error
}

type cartRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewCartRepository(db database.Querier, log *zap.Logger) CartRepository {
	return &cartRepository{
		db:  db,
		log: log.With(zap.String("repository", "cart_item")),
	}
}

func (r *cartRepository) FindLinesByUserID(ctx context.Context, userID uuid.UUID) ([]entity.CartLine, error) {
	query := `
		SELECT ci.id, ci.product_id, ci.quantity, p.name, p.price, p.image
		FROM cart_items ci
		JOIN products p ON p.id = ci.product_id
		WHERE ci.user_id = $1
		ORDER BY ci.created_at
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		r.log.Error("Failed to find cart lines", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("find cart lines for %s: %w", userID.String(), err)
	}
	defer rows.Close()

	lines := []entity.CartLine{}
	for rows.Next() {
		var l entity.CartLine
		if err := rows.Scan(&l.ID, &l.ProductID, &l.Quantity, &l.Name, &l.Price, &l.Image); err != nil {
			r.log.Error("Failed to scan cart line", zap.Error(err))
			return nil, fmt.Errorf("scan cart line: %w", err)
		}
		lines = append(lines, l)
	}

	return lines, rows.Err()
}

func (r *cartRepository) FindByUserAndProduct(ctx context.Context, userID, productID uuid.UUID) (*entity.CartItem, error) {
	query := `
		SELECT id, user_id, product_id, quantity, created_at, updated_at
		FROM cart_items
		WHERE user_id = $1 AND product_id = $2
		ORDER BY created_at
		LIMIT 1
	`

	var item entity.CartItem
	err := r.db.QueryRow(ctx, query, userID, productID).Scan(
		&item.ID,
		&item.UserID,
		&item.ProductID,
		&item.Quantity,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find cart item",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.String("product_id", productID.String()),
		)
		return nil, fmt.Errorf("find cart item for product %s: %w", productID.String(), err)
	}

	return &item, nil
}

func (r *cartRepository) Create(ctx context.Context, item *entity.CartItem) error {
	query := `
		INSERT INTO cart_items (id, user_id, product_id, quantity, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Exec(ctx, query,
		item.ID,
		item.UserID,
		item.ProductID,
		item.Quantity,
		item.CreatedAt,
		item.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create cart item",
			zap.Error(err),
			zap.String("user_id", item.UserID.String()),
			zap.String("product_id", item.ProductID.String()),
		)
		return fmt.Errorf("create cart item: %w", err)
	}

	return nil
}

func (r *cartRepository) UpdateQuantity(ctx context.Context, userID, itemID uuid.UUID, quantity int) error {
	query := `UPDATE cart_items SET quantity = $3, updated_at = NOW() WHERE id = $1 AND user_id = $2`

	result, err := r.db.Exec(ctx, query, itemID, userID, quantity)
	if err != nil {
		r.log.Error("Failed to update cart item quantity",
			zap.Error(err),
			zap.String("item_id", itemID.String()),
			zap.Int("quantity", quantity),
		)
		return fmt.Errorf("update cart item %s: %w", itemID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("cart item %s not found", itemID.String())
	}

	return nil
}

func (r *cartRepository) Delete(ctx context.Context, userID, itemID uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM cart_items WHERE id = $1 AND user_id = $2`, itemID, userID)
	if err != nil {
		r.log.Error("Failed to delete cart item", zap.Error(err), zap.String("item_id", itemID.String()))
		return fmt.Errorf("delete cart item %s: %w", itemID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("cart item %s not found", itemID.String())
	}

	return nil
}

func (r *cartRepository) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM cart_items WHERE user_id = $1`, userID); err != nil {
		r.log.Error("Failed to clear cart", zap.Error(err), zap.String("user_id", userID.String()))
		return fmt.Errorf("clear cart for %s: %w", userID.String(), err)
	}
	return nil
}
