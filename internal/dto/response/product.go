package response

import (
	"time"

	"storefront/internal/data/entity"
	"storefront/pkg/utils"
)

type ProductResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Description   *string   `json:"description"`
	Price         float64   `json:"price"`
	OriginalPrice *float64  `json:"original_price"`
	OnSale        bool      `json:"on_sale"`
	Image         *string   `json:"image"`
	Stock         int       `json:"stock"`
	IsNew         bool      `json:"is_new"`
	IsFeatured    bool      `json:"is_featured"`
	CategoryID    *string   `json:"category_id"`
	Category      string    `json:"category"`
	CreatedAt     time.Time `json:"created_at"`
}

type CategoryResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Image       *string `json:"image"`
}

func ProductToResponse(p *entity.Product) ProductResponse {
	resp := ProductResponse{
		ID:            p.ID.String(),
		Name:          p.Name,
		Description:   p.Description,
		Price:         utils.AmountJSON(p.Price),
		OriginalPrice: utils.AmountJSONPtr(p.OriginalPrice),
		OnSale:        p.OnSale(),
		Image:         p.Image,
		Stock:         p.Stock,
		IsNew:         p.IsNew,
		IsFeatured:    p.IsFeatured,
		Category:      p.Category(),
		CreatedAt:     p.CreatedAt,
	}
	if p.CategoryID != nil {
		id := p.CategoryID.String()
		resp.CategoryID = &id
	}
	return resp
}

func ProductsToResponse(products []*entity.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, ProductToResponse(p))
	}
	return out
}

func CategoryToResponse(c *entity.Category) CategoryResponse {
	return CategoryResponse{
		ID:          c.ID.String(),
		Name:        c.Name,
		Description: c.Description,
		Image:       c.Image,
	}
}
