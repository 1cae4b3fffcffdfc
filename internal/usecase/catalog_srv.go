package usecase

import (
	"context"
	"fmt"
	"strings"

	"storefront/internal/data/repository"
	"storefront/internal/dto/response"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AllCategories is the filter value that disables category filtering.
const AllCategories = "All"

type CatalogService interface {
	ListProducts(ctx context.Context, category string) ([]response.ProductResponse, error)
	FeaturedProducts(ctx context.Context) ([]response.ProductResponse, error)
	GetProduct(ctx context.Context, id string) (*response.ProductResponse, error)
	ListCategories(ctx context.Context) ([]response.CategoryResponse, error)
}

type catalogService struct {
	repo          *repository.Repository
	featuredLimit int
	log           *zap.Logger
}

func NewCatalogService(repo *repository.Repository, featuredLimit int, log *zap.Logger) CatalogService {
	if featuredLimit < 1 {
		featuredLimit = 4
	}
	return &catalogService{
		repo:          repo,
		featuredLimit: featuredLimit,
		log:           log.With(zap.String("service", "catalog")),
	}
}

func (s *catalogService) ListProducts(ctx context.Context, category string) ([]response.ProductResponse, error) {
	filter := repository.ProductFilter{}
	if c := strings.TrimSpace(category); c != "" && c != AllCategories {
		filter.CategoryName = c
	}

	products, err := s.repo.Product.FindAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to get products")
	}

	return response.ProductsToResponse(products), nil
}

func (s *catalogService) FeaturedProducts(ctx context.Context) ([]response.ProductResponse, error) {
	products, err := s.repo.Product.FindAll(ctx, repository.ProductFilter{
		FeaturedOnly: true,
		Limit:        s.featuredLimit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get featured products")
	}

	return response.ProductsToResponse(products), nil
}

func (s *catalogService) GetProduct(ctx context.Context, id string) (*response.ProductResponse, error) {
	productID, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	product, err := s.repo.Product.FindByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to get product")
	}
	if product == nil {
		return nil, fmt.Errorf("product not found")
	}

	resp := response.ProductToResponse(product)
	return &resp, nil
}

func (s *catalogService) ListCategories(ctx context.Context) ([]response.CategoryResponse, error) {
	categories, err := s.repo.Category.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get categories")
	}

	out := make([]response.CategoryResponse, 0, len(categories))
	for _, c := range categories {
		out = append(out, response.CategoryToResponse(c))
	}
	return out, nil
}
