package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"storefront/internal/data/entity"
	"storefront/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// ProductFilter holds the equality filters the storefront issues. Zero values mean "any".
type ProductFilter struct {
	CategoryName string
	FeaturedOnly bool
	NameQuery    string
	Limit        int
	Offset       int
}

type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	FindAll(ctx context.Context, filter ProductFilter) ([]*entity.Product, error)
	Count(ctx context.Context, filter ProductFilter) (int64, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type productRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewProductRepository(db database.Querier, log *zap.Logger) ProductRepository {
	return &productRepository{
		db:  db,
		log: log.With(zap.String("repository", "product")),
	}
}

const productColumns = `
	p.id, p.name, p.description, p.price, p.original_price, p.image, p.stock,
	p.is_new, p.is_featured, p.category_id, COALESCE(c.name, ''), p.created_at, p.updated_at
`

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.Price,
		&p.OriginalPrice,
		&p.Image,
		&p.Stock,
		&p.IsNew,
		&p.IsFeatured,
		&p.CategoryID,
		&p.CategoryName,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productRepository) Create(ctx context.Context, product *entity.Product) error {
	query := `
		INSERT INTO products (id, name, description, price, original_price, image, stock,
		                      is_new, is_featured, category_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := r.db.Exec(ctx, query,
		product.ID,
		product.Name,
		product.Description,
		product.Price,
		product.OriginalPrice,
		product.Image,
		product.Stock,
		product.IsNew,
		product.IsFeatured,
		product.CategoryID,
		product.CreatedAt,
		product.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create product", zap.Error(err), zap.String("name", product.Name))
		return fmt.Errorf("create product %s: %w", product.Name, err)
	}

	return nil
}

func (r *productRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	query := `SELECT ` + productColumns + `
		FROM products p
		LEFT JOIN categories c ON c.id = p.category_id
		WHERE p.id = $1
	`

	product, err := scanProduct(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find product by ID", zap.Error(err), zap.String("product_id", id.String()))
		return nil, fmt.Errorf("find product %s: %w", id.String(), err)
	}

	return product, nil
}

// buildWhere appends the filter predicates and returns the next placeholder index.
func buildWhere(qb *strings.Builder, filter ProductFilter, args *[]any) int {
	argCount := 1
	qb.WriteString(" WHERE 1=1")

	if filter.CategoryName != "" {
		if filter.CategoryName == entity.UncategorizedName {
			qb.WriteString(" AND c.id IS NULL")
		} else {
			qb.WriteString(fmt.Sprintf(" AND c.name = $%d", argCount))
			*args = append(*args, filter.CategoryName)
			argCount++
		}
	}

	if filter.FeaturedOnly {
		qb.WriteString(" AND p.is_featured = TRUE")
	}

	if filter.NameQuery != "" {
		qb.WriteString(fmt.Sprintf(` AND p.name ILIKE $%d ESCAPE '\'`, argCount))
		*args = append(*args, "%"+escapeLike(filter.NameQuery)+"%")
		argCount++
	}

	return argCount
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes a search term match literally inside a LIKE pattern.
func escapeLike(term string) string {
	return likeEscaper.Replace(term)
}

func (r *productRepository) FindAll(ctx context.Context, filter ProductFilter) ([]*entity.Product, error) {
	var qb strings.Builder
	qb.WriteString(`SELECT ` + productColumns + `
		FROM products p
		LEFT JOIN categories c ON c.id = p.category_id`)

	args := []any{}
	argCount := buildWhere(&qb, filter, &args)

	qb.WriteString(" ORDER BY p.created_at DESC")

	if filter.Limit > 0 {
		qb.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", argCount, argCount+1))
		args = append(args, filter.Limit, filter.Offset)
	}

	rows, err := r.db.Query(ctx, qb.String(), args...)
	if err != nil {
		r.log.Error("Failed to find products",
			zap.Error(err),
			zap.String("category", filter.CategoryName),
			zap.Bool("featured_only", filter.FeaturedOnly),
		)
		return nil, fmt.Errorf("find products: %w", err)
	}
	defer rows.Close()

	var products []*entity.Product
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			r.log.Error("Failed to scan product row", zap.Error(err))
			return nil, fmt.Errorf("scan product row: %w", err)
		}
		products = append(products, product)
	}

	return products, rows.Err()
}

func (r *productRepository) Count(ctx context.Context, filter ProductFilter) (int64, error) {
	var qb strings.Builder
	qb.WriteString(`SELECT COUNT(*) FROM products p LEFT JOIN categories c ON c.id = p.category_id`)

	args := []any{}
	buildWhere(&qb, filter, &args)

	var count int64
	if err := r.db.QueryRow(ctx, qb.String(), args...).Scan(&count); err != nil {
		r.log.Error("Failed to count products", zap.Error(err))
		return 0, fmt.Errorf("count products: %w", err)
	}

	return count, nil
}

func (r *productRepository) Update(ctx context.Context, product *entity.Product) error {
	query := `
		UPDATE products
		SET name = $2, description = $3, price = $4, original_price = $5, image = $6,
		    stock = $7, is_new = $8, is_featured = $9, category_id = $10, updated_at = $11
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		product.ID,
		product.Name,
		product.Description,
		product.Price,
		product.OriginalPrice,
		product.Image,
		product.Stock,
		product.IsNew,
		product.IsFeatured,
		product.CategoryID,
		product.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to update product", zap.Error(err), zap.String("product_id", product.ID.String()))
		return fmt.Errorf("update product %s: %w", product.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("product %s not found", product.ID.String())
	}

	return nil
}

func (r *productRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete product", zap.Error(err), zap.String("product_id", id.String()))
		return fmt.Errorf("delete product %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("product %s not found", id.String())
	}

	r.log.Info("Product deleted", zap.String("product_id", id.String()))
	return nil
}
