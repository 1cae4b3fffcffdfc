package repository

import (
	"storefront/pkg/database"

	"go.uber.org/zap"
)

// Repository groups every collection the storefront reads or writes.
type Repository struct {
	User      UserRepository
	Profile   ProfileRepository
	Role      RoleRepository
	Session   SessionRepository
	Category  CategoryRepository
	Product   ProductRepository
	Cart      CartRepository
	Order     OrderRepository
	OrderItem OrderItemRepository

	Tx TxManager
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	repo := newRepository(db, log)
	repo.Tx = &pgxTxManager{
		db:   db,
		base: log,
		log:  log.With(zap.String("repository", "tx")),
	}
	return repo
}

func newRepository(db database.Querier, log *zap.Logger) *Repository {
	return &Repository{
		User:      NewUserRepository(db, log),
		Profile:   NewProfileRepository(db, log),
		Role:      NewRoleRepository(db, log),
		Session:   NewSessionRepository(db, log),
		Category:  NewCategoryRepository(db, log),
		Product:   NewProductRepository(db, log),
		Cart:      NewCartRepository(db, log),
		Order:     NewOrderRepository(db, log),
		OrderItem: NewOrderItemRepository(db, log),
	}
}
