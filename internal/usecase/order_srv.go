package usecase

import (
	"context"
	"fmt"
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

type OrderService interface {
	// PlaceOrder turns the user's cart into a pending order. idempotencyKey is optional.
	PlaceOrder(ctx context.Context, userID uuid.UUID, req *request.CheckoutRequest, idempotencyKey string) (*response.PlaceOrderResponse, error)
}

type orderService struct {
	repo     *repository.Repository
	cart     CartService
	notifier Notifier
	config   utils.CheckoutConfig
	log      *zap.Logger
}

func NewOrderService(
	repo *repository.Repository,
	cart CartService,
	notifier Notifier,
	config utils.CheckoutConfig,
	log *zap.Logger,
) OrderService {
	return &orderService{
		repo:     repo,
		cart:     cart,
		notifier: notifier,
		config:   config,
		log:      log.With(zap.String("service", "order")),
	}
}

func (s *orderService) PlaceOrder(ctx context.Context, userID uuid.UUID, req *request.CheckoutRequest, idempotencyKey string) (*response.PlaceOrderResponse, error) {
	if userID == uuid.Nil {
		return nil, ErrNothingToCheckout
	}

	req.Normalize()
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Checkout validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	// a replayed request returns the order it already produced
	idempotencyKey = strings.TrimSpace(idempotencyKey)
	if idempotencyKey != "" {
		existing, err := s.repo.Order.FindByIdempotencyKey(ctx, userID, idempotencyKey)
		if err != nil {
			return nil, fmt.Errorf("failed to create order")
		}
		if existing != nil {
			s.log.Info("Checkout replayed",
				zap.String("order_id", existing.ID.String()),
				zap.String("user_id", userID.String()),
			)
			return s.placed(existing), nil
		}
	}

	lines, err := s.cart.Refetch(ctx, userID)
	if err != nil {
		s.log.Error("Failed to load cart for checkout", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("failed to load cart")
	}
	if len(lines) == 0 {
		return nil, ErrNothingToCheckout
	}

	// 1. Calculate total
	total := TotalPrice(lines)

	// 2. Create order
	now := time.Now()
	order := &entity.Order{
		Base:            entity.NewBase(now),
		UserID:          userID,
		TotalAmount:     utils.ToCents(total),
		ShippingAddress: req.ShippingAddress,
		Status:          entity.OrderStatusPending,
	}
	if idempotencyKey != "" {
		order.IdempotencyKey = &idempotencyKey
	}

	if err := s.repo.Order.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to create order")
	}

	// 3. Snapshot prices into order items
	items := make([]*entity.OrderItem, len(lines))
	for i, line := range lines {
		items[i] = &entity.OrderItem{
			BaseSimple:      entity.NewBaseSimple(now),
			OrderID:         order.ID,
			ProductID:       line.ProductID,
			Quantity:        line.Quantity,
			PriceAtPurchase: line.Price,
		}
	}

	if err := s.repo.OrderItem.CreateBatch(ctx, items); err != nil {
		if s.config.CompensateOrphans {
			if delErr := s.repo.Order.Delete(ctx, order.ID); delErr != nil {
				s.log.Error("Failed to remove order without items",
					zap.Error(delErr),
					zap.String("order_id", order.ID.String()),
				)
			}
		} else {
			s.log.Warn("Order left without items",
				zap.String("order_id", order.ID.String()),
				zap.String("user_id", userID.String()),
			)
		}
		return nil, fmt.Errorf("failed to create order items")
	}

	// 4. Clear cart
	if err := s.cart.ClearCart(ctx, userID); err != nil {
		s.log.Warn("Failed to clear cart after checkout",
			zap.Error(err),
			zap.String("order_id", order.ID.String()),
		)
	}

	s.log.Info("Order placed",
		zap.String("order_id", order.ID.String()),
		zap.String("user_id", userID.String()),
		zap.Int("item_count", len(items)),
		zap.String("total_amount", order.TotalAmount.String()),
	)

	s.sendConfirmation(ctx, order, len(items))

	return s.placed(order), nil
}

func (s *orderService) placed(order *entity.Order) *response.PlaceOrderResponse {
	return &response.PlaceOrderResponse{
		OrderID:     order.ID.String(),
		Reference:   utils.ShortRef(order.ID.String(), s.config.ShortRefLength),
		TotalAmount: utils.AmountJSON(order.TotalAmount),
	}
}

func (s *orderService) sendConfirmation(ctx context.Context, order *entity.Order, itemCount int) {
	if s.notifier == nil {
		return
	}

	user, err := s.repo.User.FindByID(ctx, order.UserID)
	if err != nil || user == nil {
		s.log.Warn("Skipping order confirmation, user not loaded", zap.String("order_id", order.ID.String()))
		return
	}

	ref := utils.ShortRef(order.ID.String(), s.config.ShortRefLength)
	body := fmt.Sprintf("Order %s has been placed successfully.\n\nItems: %d\nTotal: %s\nShip to: %s\n",
		ref, itemCount, order.TotalAmount.StringFixed(2), order.ShippingAddress)

	if err := s.notifier.Send(user.Email, "Order "+ref+" placed", body); err != nil {
		s.log.Warn("Failed to send order confirmation", zap.Error(err), zap.String("order_id", order.ID.String()))
	}
}
