package entity

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const UncategorizedName = "Uncategorized"

type Product struct {
	Base
	Name          string           `db:"name"`
	Description   *string          `db:"description"`
	Price         decimal.Decimal  `db:"price"`
	OriginalPrice *decimal.Decimal `db:"original_price"`
	Image         *string          `db:"image"`
	Stock         int              `db:"stock"`
	IsNew         bool             `db:"is_new"`
	IsFeatured    bool             `db:"is_featured"`
	CategoryID    *uuid.UUID       `db:"category_id"`

	// joined from categories, empty when the product has none
	CategoryName string `db:"-"`
}

func (p *Product) OnSale() bool {
	return p.OriginalPrice != nil
}

func (p *Product) Category() string {
	if p.CategoryName == "" {
		return UncategorizedName
	}
	return p.CategoryName
}
