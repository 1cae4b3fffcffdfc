package usecase

import (
	"storefront/internal/data/repository"
	"storefront/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Sessions *SessionStore
	Auth     AuthService
	Catalog  CatalogService
	Cart     CartService
	Order    OrderService
	Account  AccountService
	Admin    AdminService
	Contact  ContactService
}

func NewService(repo *repository.Repository, config *utils.Config, log *zap.Logger) *Service {
	sessions := NewSessionStore(repo, log)
	notifier := NewNotifier(config.Email, log)
	cart := NewCartService(repo, sessions, log)

	return &Service{
		Sessions: sessions,
		Auth:     NewAuthService(repo, sessions, config.JWT, log),
		Catalog:  NewCatalogService(repo, config.Catalog.FeaturedLimit, log),
		Cart:     cart,
		Order:    NewOrderService(repo, cart, notifier, config.Checkout, log),
		Account:  NewAccountService(repo, sessions, config, log),
		Admin:    NewAdminService(repo, config, log),
		Contact:  NewContactService(notifier, config.Email.Support, log),
	}
}
