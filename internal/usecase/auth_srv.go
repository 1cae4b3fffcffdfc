package usecase

import (
	"context"
	"fmt"
	"time"

	"storefront/internal/data/entity"
	"storefront/internal/data/repository"
	"storefront/internal/dto/request"
	"storefront/internal/dto/response"
	"storefront/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ClientMeta is recorded on the session row.
type ClientMeta struct {
	UserAgent string
	IPAddress string
}

type AuthService interface {
	Register(ctx context.Context, req *request.RegisterRequest, meta ClientMeta) (*response.AuthResponse, error)
	Login(ctx context.Context, req *request.LoginRequest, meta ClientMeta) (*response.AuthResponse, error)
	Logout(ctx context.Context, userID uuid.UUID, sessionToken string) error
	Me(ctx context.Context, sessionToken string) (*response.IdentityResponse, error)
	PurgeExpiredSessions(ctx context.Context) (int64, error)
}

type authService struct {
	repo     *repository.Repository
	sessions *SessionStore
	config   utils.JWTConfig
	log      *zap.Logger
}

func NewAuthService(
	repo *repository.Repository,
	sessions *SessionStore,
	config utils.JWTConfig,
	log *zap.Logger,
) AuthService {
	return &authService{
		repo:     repo,
		sessions: sessions,
		config:   config,
		log:      log.With(zap.String("service", "auth")),
	}
}

func (s *authService) Register(ctx context.Context, req *request.RegisterRequest, meta ClientMeta) (*response.AuthResponse, error) {
	// 1. Validate input
	req.Normalize()
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Register validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	email := req.Email

	// 2. Email must be unused
	existing, err := s.repo.User.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email")
	}
	if existing != nil {
		return nil, fmt.Errorf("email already registered")
	}

	// 3. Hash password
	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("failed to process password")
	}

	// 4. User, profile and default role land together or not at all
	now := time.Now()
	user := &entity.User{
		Base:         entity.NewBase(now),
		Email:        email,
		PasswordHash: hashed,
	}
	profile := &entity.Profile{
		ID:        user.ID,
		FirstName: utils.NilIfBlank(req.FirstName),
		LastName:  utils.NilIfBlank(req.LastName),
		CreatedAt: now,
		UpdatedAt: now,
	}
	role := &entity.RoleAssignment{
		BaseSimple: entity.NewBaseSimple(now),
		UserID:     user.ID,
		Role:       entity.RoleCustomer,
	}

	err = s.repo.Tx.WithinTx(ctx, func(tx *repository.Repository) error {
		if err := tx.User.Create(ctx, user); err != nil {
			return err
		}
		if err := tx.Profile.Create(ctx, profile); err != nil {
			return err
		}
		return tx.Role.Assign(ctx, role)
	})
	if err != nil {
		s.log.Error("Failed to create account", zap.Error(err), zap.String("email", email))
		return nil, fmt.Errorf("failed to create account")
	}

	s.log.Info("User registered", zap.String("user_id", user.ID.String()), zap.String("email", user.Email))

	// 5. Sign the new user in
	return s.signIn(ctx, user.ID, meta)
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest, meta ClientMeta) (*response.AuthResponse, error) {
	req.Normalize()
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Login validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	user, err := s.repo.User.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to find user")
	}
	if user == nil {
		s.log.Warn("Login for unknown email")
		return nil, fmt.Errorf("invalid credentials")
	}

	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		s.log.Warn("Invalid password", zap.String("user_id", user.ID.String()))
		return nil, fmt.Errorf("invalid credentials")
	}

	resp, err := s.signIn(ctx, user.ID, meta)
	if err != nil {
		return nil, err
	}

	s.log.Info("User logged in", zap.String("user_id", user.ID.String()))
	return resp, nil
}

func (s *authService) Logout(ctx context.Context, userID uuid.UUID, sessionToken string) error {
	if _, err := uuid.Parse(sessionToken); err != nil {
		return fmt.Errorf("invalid token format")
	}

	if err := s.repo.Session.Revoke(ctx, sessionToken); err != nil {
		return err
	}

	s.sessions.SignOut(sessionToken, userID)

	s.log.Info("User logged out", zap.String("user_id", userID.String()))
	return nil
}

func (s *authService) Me(ctx context.Context, sessionToken string) (*response.IdentityResponse, error) {
	identity, err := s.sessions.Resolve(ctx, sessionToken)
	if err != nil {
		return nil, fmt.Errorf("failed to load identity")
	}
	if identity == nil {
		return nil, fmt.Errorf("session not found")
	}

	resp := IdentityToResponse(identity)
	return &resp, nil
}

func (s *authService) PurgeExpiredSessions(ctx context.Context) (int64, error) {
	n, err := s.repo.Session.CleanExpiredSessions(ctx)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.log.Info("Expired sessions removed", zap.Int64("count", n))
	}
	return n, nil
}

func (s *authService) signIn(ctx context.Context, userID uuid.UUID, meta ClientMeta) (*response.AuthResponse, error) {
	hours := s.config.ExpiryHours
	if hours < 1 {
		hours = 24
	}

	now := time.Now()
	session := &entity.Session{
		BaseSimple: entity.NewBaseSimple(now),
		UserID:    userID,
		Token:     uuid.New(),
		UserAgent: utils.NilIfBlank(meta.UserAgent),
		IPAddress: utils.NilIfBlank(meta.IPAddress),
		ExpiresAt: now.Add(time.Duration(hours) * time.Hour),
	}

	if err := s.repo.Session.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session")
	}

	token, err := utils.IssueAccessToken(s.config.Secret, userID, session.Token, session.ExpiresAt)
	if err != nil {
		s.log.Error("Failed to issue access token", zap.Error(err))
		return nil, fmt.Errorf("failed to create session")
	}

	identity, err := s.sessions.SignIn(ctx, session)
	if err != nil {
		s.log.Error("Failed to load identity", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("failed to create session")
	}

	return &response.AuthResponse{
		Token:     token,
		ExpiresAt: session.ExpiresAt,
		Identity:  IdentityToResponse(identity),
	}, nil
}

func IdentityToResponse(identity *Identity) response.IdentityResponse {
	return response.IdentityResponse{
		UserID:  identity.UserID.String(),
		Email:   identity.Email,
		Role:    identity.Role,
		IsAdmin: identity.IsAdmin(),
		Profile: response.ProfileToResponse(identity.Profile),
	}
}
