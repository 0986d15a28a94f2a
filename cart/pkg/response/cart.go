package response

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Cart struct {
	Items      []CartItem      `json:"items"`
	Count      int32           `json:"count"`
	Total      decimal.Decimal `json:"total"`
	DrawerOpen bool            `json:"drawer_open"`
}

type CartItem struct {
	ProductID uuid.UUID       `json:"product_id"`
	Name      string          `json:"name"`
	ImageUrl  string          `json:"image_url"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int32           `json:"quantity"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}
