package request

// ProductFormRequest mirrors the admin product form: every field arrives as
// the string the admin typed and is parsed by the service.
type ProductFormRequest struct {
	Name          string `json:"name"`
	Description   string `json:"description"`
	Price         string `json:"price"`
	OriginalPrice string `json:"original_price"`
	Image         string `json:"image"`
	Stock         string `json:"stock"`
	CategoryID    string `json:"category_id"`
	IsNew         bool   `json:"is_new"`
	IsFeatured    bool   `json:"is_featured"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending processing shipped delivered"`
}
