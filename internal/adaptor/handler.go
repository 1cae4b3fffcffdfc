package adaptor

import (
	"storefront/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	Auth    *AuthHandler
	Catalog *CatalogHandler
	Cart    *CartHandler
	Order   *OrderHandler
	Account *AccountHandler
	Admin   *AdminHandler
	Contact *ContactHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:    NewAuthHandler(service.Auth, log),
		Catalog: NewCatalogHandler(service.Catalog, log),
		Cart:    NewCartHandler(service.Cart, log),
		Order:   NewOrderHandler(service.Order, log),
		Account: NewAccountHandler(service.Account, log),
		Admin:   NewAdminHandler(service.Admin, log),
		Contact: NewContactHandler(service.Contact, log),
	}
}
