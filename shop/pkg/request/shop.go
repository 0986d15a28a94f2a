package request

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type RegisterShop struct {
	Name string `validate:"required" json:"name"`
}

type UpsertProduct struct {
	CategoryID  *uuid.UUID      `json:"category_id"`
	Name        string          `validate:"required" json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `validate:"required" json:"price"`
	ImageUrl    string          `json:"image_url"`
}
