package usecase

import (
	"context"
	"fmt"
	"time"

	"storefront/internal/data/repository"
	"storefront/internal/dto/request"
	"storefront/internal/dto/response"
	"storefront/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AccountService interface {
	ListOrders(ctx context.Context, userID uuid.UUID) ([]response.OrderResponse, error)
	GetProfile(ctx context.Context, userID uuid.UUID) (*response.ProfileResponse, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req *request.UpdateProfileRequest) (*response.ProfileResponse, error)
}

type accountService struct {
	repo      *repository.Repository
	sessions  *SessionStore
	refLength int
	log       *zap.Logger
}

func NewAccountService(repo *repository.Repository, sessions *SessionStore, config *utils.Config, log *zap.Logger) AccountService {
	return &accountService{
		repo:      repo,
		sessions:  sessions,
		refLength: config.Checkout.ShortRefLength,
		log:       log.With(zap.String("service", "account")),
	}
}

func (s *accountService) ListOrders(ctx context.Context, userID uuid.UUID) ([]response.OrderResponse, error) {
	if userID == uuid.Nil {
		return nil, ErrAuthRequired
	}

	orders, err := s.repo.Order.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get orders")
	}

	return response.OrdersToResponse(orders, s.refLength), nil
}

func (s *accountService) GetProfile(ctx context.Context, userID uuid.UUID) (*response.ProfileResponse, error) {
	if userID == uuid.Nil {
		return nil, ErrAuthRequired
	}

	profile, err := s.repo.Profile.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get profile")
	}
	if profile == nil {
		return nil, fmt.Errorf("profile not found")
	}

	return response.ProfileToResponse(profile), nil
}

// UpdateProfile changes only the fields present in req and refreshes the
// cached identity of every session the user holds.
func (s *accountService) UpdateProfile(ctx context.Context, userID uuid.UUID, req *request.UpdateProfileRequest) (*response.ProfileResponse, error) {
	if userID == uuid.Nil {
		return nil, ErrAuthRequired
	}

	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	profile, err := s.repo.Profile.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get profile")
	}
	if profile == nil {
		return nil, fmt.Errorf("profile not found")
	}

	if req.FirstName != nil {
		profile.FirstName = utils.NilIfBlank(*req.FirstName)
	}
	if req.LastName != nil {
		profile.LastName = utils.NilIfBlank(*req.LastName)
	}
	if req.Phone != nil {
		profile.Phone = utils.NilIfBlank(*req.Phone)
	}
	profile.UpdatedAt = time.Now()

	if err := s.repo.Profile.Update(ctx, profile); err != nil {
		return nil, err
	}

	if err := s.sessions.RefreshProfile(ctx, userID); err != nil {
		s.log.Warn("Failed to refresh cached profile", zap.Error(err), zap.String("user_id", userID.String()))
	}

	return response.ProfileToResponse(profile), nil
}
