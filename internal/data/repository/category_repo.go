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

type CategoryRepository interface {
	FindAll(ctx context.Context) ([]*entity.Category, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error)
}

type categoryRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewCategoryRepository(db database.Querier, log *zap.Logger) CategoryRepository {
	return &categoryRepository{
		db:  db,
		log: log.With(zap.String("repository", "category")),
	}
}

func (r *categoryRepository) FindAll(ctx context.Context) ([]*entity.Category, error) {
	query := `
		SELECT id, name, description, image, created_at
		FROM categories
		ORDER BY name
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to find categories", zap.Error(err))
		return nil, fmt.Errorf("find categories: %w", err)
	}
	defer rows.Close()

	var categories []*entity.Category
	for rows.Next() {
		var c entity.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.Image, &c.CreatedAt); err != nil {
			r.log.Error("Failed to scan category row", zap.Error(err))
			return nil, fmt.Errorf("scan category row: %w", err)
		}
		categories = append(categories, &c)
	}

	return categories, rows.Err()
}

func (r *categoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	query := `
		SELECT id, name, description, image, created_at
		FROM categories
		WHERE id = $1
	`

	var c entity.Category
	err := r.db.QueryRow(ctx, query, id).Scan(&c.ID, &c.Name, &c.Description, &c.Image, &c.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find category", zap.Error(err), zap.String("category_id", id.String()))
		return nil, fmt.Errorf("find category %s: %w", id.String(), err)
	}

	return &c, nil
}
