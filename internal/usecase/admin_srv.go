package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"storefront/internal/data/entity"
	"storefront/internal/data/repository"
	"storefront/internal/dto/request"
	"storefront/internal/dto/response"
	"storefront/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AdminService interface {
	DashboardStats(ctx context.Context) (*response.DashboardStatsResponse, error)

	ListProducts(ctx context.Context, req request.PaginatedRequest) (*response.PaginatedResponse[response.ProductResponse], error)
	CreateProduct(ctx context.Context, form *request.ProductFormRequest) (*response.ProductResponse, error)
	UpdateProduct(ctx context.Context, id string, form *request.ProductFormRequest) (*response.ProductResponse, error)
	DeleteProduct(ctx context.Context, id string) error

	ListOrders(ctx context.Context, req request.PaginatedRequest) (*response.PaginatedResponse[response.OrderResponse], error)
	UpdateOrderStatus(ctx context.Context, id string, status string) error
}

type adminService struct {
	repo      *repository.Repository
	refLength int
	log       *zap.Logger
}

func NewAdminService(repo *repository.Repository, config *utils.Config, log *zap.Logger) AdminService {
	return &adminService{
		repo:      repo,
		refLength: config.Checkout.ShortRefLength,
		log:       log.With(zap.String("service", "admin")),
	}
}

func (s *adminService) DashboardStats(ctx context.Context) (*response.DashboardStatsResponse, error) {
	stats, err := s.repo.Order.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get dashboard stats")
	}

	productCount, err := s.repo.Product.Count(ctx, repository.ProductFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to get dashboard stats")
	}

	return &response.DashboardStatsResponse{
		TotalRevenue:  utils.AmountJSON(stats.TotalRevenue),
		TotalOrders:   stats.TotalOrders,
		TotalProducts: productCount,
		PendingOrders: stats.PendingOrders,
	}, nil
}

func (s *adminService) ListProducts(ctx context.Context, req request.PaginatedRequest) (*response.PaginatedResponse[response.ProductResponse], error) {
	filter := repository.ProductFilter{
		NameQuery: req.Query,
		Limit:     req.Limit(),
		Offset:    req.Offset(),
	}

	products, err := s.repo.Product.FindAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to get products")
	}

	total, err := s.repo.Product.Count(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to count products")
	}

	return response.NewPaginatedResponse(response.ProductsToResponse(products), req.Page, req.Limit(), total), nil
}

func (s *adminService) CreateProduct(ctx context.Context, form *request.ProductFormRequest) (*response.ProductResponse, error) {
	product := &entity.Product{}
	if err := s.applyForm(ctx, product, form); err != nil {
		return nil, err
	}

	product.Base = entity.NewBase(time.Now())

	if err := s.repo.Product.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to save product")
	}

	s.log.Info("Product created", zap.String("product_id", product.ID.String()), zap.String("name", product.Name))

	resp := response.ProductToResponse(product)
	return &resp, nil
}

func (s *adminService) UpdateProduct(ctx context.Context, id string, form *request.ProductFormRequest) (*response.ProductResponse, error) {
	productID, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	// form is checked before the product is looked up so bad input never reaches storage
	next := &entity.Product{}
	if err := s.applyForm(ctx, next, form); err != nil {
		return nil, err
	}

	current, err := s.repo.Product.FindByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to save product")
	}
	if current == nil {
		return nil, fmt.Errorf("product %s not found", id)
	}

	next.Base = current.Base
	next.Touch(time.Now())

	if err := s.repo.Product.Update(ctx, next); err != nil {
		return nil, err
	}

	s.log.Info("Product updated", zap.String("product_id", id))

	resp := response.ProductToResponse(next)
	return &resp, nil
}

func (s *adminService) DeleteProduct(ctx context.Context, id string) error {
	productID, err := uuid.Parse(id)
	if err != nil {
		return ErrInvalidID
	}

	if err := s.repo.Product.Delete(ctx, productID); err != nil {
		return err
	}

	s.log.Info("Product deleted", zap.String("product_id", id))
	return nil
}

func (s *adminService) ListOrders(ctx context.Context, req request.PaginatedRequest) (*response.PaginatedResponse[response.OrderResponse], error) {
	orders, err := s.repo.Order.FindAll(ctx, req.Limit(), req.Offset())
	if err != nil {
		return nil, fmt.Errorf("failed to get orders")
	}

	total, err := s.repo.Order.CountAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count orders")
	}

	return response.NewPaginatedResponse(response.OrdersToResponse(orders, s.refLength), req.Page, req.Limit(), total), nil
}

// UpdateOrderStatus sets any of the known statuses. Transitions are not ordered.
func (s *adminService) UpdateOrderStatus(ctx context.Context, id string, status string) error {
	orderID, err := uuid.Parse(id)
	if err != nil {
		return ErrInvalidID
	}

	next := entity.OrderStatus(strings.TrimSpace(status))
	if !next.Valid() {
		return ErrInvalidStatus
	}

	if err := s.repo.Order.UpdateStatus(ctx, orderID, next); err != nil {
		return err
	}

	s.log.Info("Order status updated", zap.String("order_id", id), zap.String("status", string(next)))
	return nil
}

// applyForm parses the admin form into p. Nothing is written when it fails.
func (s *adminService) applyForm(ctx context.Context, p *entity.Product, form *request.ProductFormRequest) error {
	if form == nil {
		return fmt.Errorf("validation failed: empty form")
	}

	name := strings.TrimSpace(form.Name)
	if name == "" {
		return fmt.Errorf("validation failed: name is required")
	}
	if strings.TrimSpace(form.Price) == "" {
		return fmt.Errorf("validation failed: price is required")
	}

	price, err := utils.ParseAmount(form.Price)
	if err != nil {
		return ErrInvalidPrice
	}

	original, err := utils.ParseAmount(form.OriginalPrice)
	if err != nil {
		return ErrInvalidOrigPrice
	}

	p.Name = name
	p.Price = utils.ToCents(*price)
	p.OriginalPrice = nil
	if original != nil {
		v := utils.ToCents(*original)
		p.OriginalPrice = &v
	}

	// unparseable stock counts as zero
	p.Stock = 0
	if n, err := strconv.Atoi(strings.TrimSpace(form.Stock)); err == nil {
		p.Stock = n
	}

	p.Description = utils.NilIfBlank(form.Description)
	p.Image = utils.NilIfBlank(form.Image)
	p.IsNew = form.IsNew
	p.IsFeatured = form.IsFeatured

	p.CategoryID = nil
	p.CategoryName = ""
	if raw := utils.NilIfBlank(form.CategoryID); raw != nil {
		categoryID, err := uuid.Parse(*raw)
		if err != nil {
			return fmt.Errorf("validation failed: invalid category id")
		}
		category, err := s.repo.Category.FindByID(ctx, categoryID)
		if err != nil {
			return fmt.Errorf("failed to save product")
		}
		if category == nil {
			return fmt.Errorf("category %s not found", *raw)
		}
		p.CategoryID = &categoryID
		p.CategoryName = category.Name
	}

	return nil
}
