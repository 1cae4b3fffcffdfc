package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"storefront/internal/data/entity"
	"storefront/internal/data/repository"
	"storefront/internal/dto/response"
	"storefront/pkg/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type CartService interface {
	GetCart(ctx context.Context, userID uuid.UUID) (*response.CartResponse, error)
	AddToCart(ctx context.Context, userID uuid.UUID, productID string) (*response.CartResponse, error)
	UpdateQuantity(ctx context.Context, userID uuid.UUID, itemID string, quantity int) (*response.CartResponse, error)
	RemoveFromCart(ctx context.Context, userID uuid.UUID, itemID string) (*response.CartResponse, error)
	ClearCart(ctx context.Context, userID uuid.UUID) error

	// Refetch replaces the mirror for userID with the stored lines.
	Refetch(ctx context.Context, userID uuid.UUID) ([]entity.CartLine, error)
	// Snapshot returns the mirrored lines without touching storage.
	Snapshot(userID uuid.UUID) []entity.CartLine
}

type cartService struct {
	repo *repository.Repository
	log  *zap.Logger

	mu     sync.RWMutex
	mirror map[uuid.UUID][]entity.CartLine
}

// NewCartService builds the cart and, when sessions is non-nil, clears a
// user's mirror whenever one of their sessions signs out.
func NewCartService(repo *repository.Repository, sessions *SessionStore, log *zap.Logger) CartService {
	s := &cartService{
		repo:   repo,
		log:    log.With(zap.String("service", "cart")),
		mirror: make(map[uuid.UUID][]entity.CartLine),
	}

	if sessions != nil {
		sessions.Subscribe(func(ev SessionEvent) {
			if ev.Type == EventSignedOut {
				s.setMirror(ev.UserID, nil)
			}
		})
	}

	return s
}

func (s *cartService) GetCart(ctx context.Context, userID uuid.UUID) (*response.CartResponse, error) {
	if userID == uuid.Nil {
		return nil, ErrAuthRequired
	}

	lines, err := s.Refetch(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart")
	}

	return cartView(lines, false), nil
}

func (s *cartService) AddToCart(ctx context.Context, userID uuid.UUID, productID string) (*response.CartResponse, error) {
	if userID == uuid.Nil {
		s.log.Warn("Add to cart without identity", zap.String("product_id", productID))
		return nil, ErrAuthRequired
	}

	pid, err := uuid.Parse(productID)
	if err != nil {
		return nil, ErrInvalidID
	}

	// 1. one line per product: bump the existing line instead of inserting
	existing, err := s.repo.Cart.FindByUserAndProduct(ctx, userID, pid)
	if err != nil {
		return nil, fmt.Errorf("failed to add item to cart")
	}
	if existing != nil {
		view, err := s.UpdateQuantity(ctx, userID, existing.ID.String(), existing.Quantity+1)
		if err != nil {
			return nil, err
		}
		view.Open = true
		return view, nil
	}

	// 2. insert a new line with quantity 1
	now := time.Now()
	item := &entity.CartItem{
		Base:      entity.NewBase(now),
		UserID:    userID,
		ProductID: pid,
		Quantity:  1,
	}

	if err := s.repo.Cart.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to add item to cart")
	}

	s.log.Info("Item added to cart",
		zap.String("user_id", userID.String()),
		zap.String("product_id", productID),
	)

	// 3. refetch and open the drawer
	lines, err := s.Refetch(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart")
	}

	return cartView(lines, true), nil
}

func (s *cartService) UpdateQuantity(ctx context.Context, userID uuid.UUID, itemID string, quantity int) (*response.CartResponse, error) {
	if userID == uuid.Nil {
		return nil, ErrAuthRequired
	}
	if quantity < 1 {
		return s.RemoveFromCart(ctx, userID, itemID)
	}

	id, err := uuid.Parse(itemID)
	if err != nil {
		return nil, ErrInvalidID
	}

	if err := s.repo.Cart.UpdateQuantity(ctx, userID, id, quantity); err != nil {
		return nil, err
	}

	lines, err := s.Refetch(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart")
	}

	return cartView(lines, false), nil
}

func (s *cartService) RemoveFromCart(ctx context.Context, userID uuid.UUID, itemID string) (*response.CartResponse, error) {
	if userID == uuid.Nil {
		return nil, ErrAuthRequired
	}

	id, err := uuid.Parse(itemID)
	if err != nil {
		return nil, ErrInvalidID
	}

	if err := s.repo.Cart.Delete(ctx, userID, id); err != nil {
		return nil, err
	}

	lines, err := s.Refetch(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart")
	}

	return cartView(lines, false), nil
}

// ClearCart deletes every stored line and empties the mirror without a
// refetch. The mirror is emptied even when the delete fails.
func (s *cartService) ClearCart(ctx context.Context, userID uuid.UUID) error {
	if userID == uuid.Nil {
		return ErrAuthRequired
	}

	err := s.repo.Cart.DeleteByUserID(ctx, userID)
	s.setMirror(userID, []entity.CartLine{})
	if err != nil {
		return fmt.Errorf("failed to clear cart")
	}
	return nil
}

func (s *cartService) Refetch(ctx context.Context, userID uuid.UUID) ([]entity.CartLine, error) {
	lines, err := s.repo.Cart.FindLinesByUserID(ctx, userID)
	if err != nil {
		// keep the previous mirror
		return nil, err
	}

	s.setMirror(userID, lines)
	return s.Snapshot(userID), nil
}

func (s *cartService) Snapshot(userID uuid.UUID) []entity.CartLine {
	s.mu.RLock()
	defer s.mu.RUnlock()

	lines := s.mirror[userID]
	out := make([]entity.CartLine, len(lines))
	copy(out, lines)
	return out
}

func (s *cartService) setMirror(userID uuid.UUID, lines []entity.CartLine) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if lines == nil {
		delete(s.mirror, userID)
		return
	}
	s.mirror[userID] = lines
}

// TotalItems is the sum of quantities over lines.
func TotalItems(lines []entity.CartLine) int {
	total := 0
	for _, l := range lines {
		total += l.Quantity
	}
	return total
}

// TotalPrice is Σ price × quantity over lines.
func TotalPrice(lines []entity.CartLine) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(utils.LineTotal(l.Price, l.Quantity))
	}
	return total.Round(2)
}

func cartView(lines []entity.CartLine, open bool) *response.CartResponse {
	items := make([]response.CartItemResponse, 0, len(lines))
	for _, l := range lines {
		items = append(items, response.CartItemResponse{
			ID:        l.ID.String(),
			ProductID: l.ProductID.String(),
			Name:      l.Name,
			Price:     utils.AmountJSON(l.Price),
			Image:     l.Image,
			Quantity:  l.Quantity,
		})
	}

	return &response.CartResponse{
		Items:      items,
		TotalItems: TotalItems(lines),
		TotalPrice: utils.AmountJSON(TotalPrice(lines)),
		Open:       open,
	}
}
