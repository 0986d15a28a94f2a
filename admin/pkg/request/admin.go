package request

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type UpsertProduct struct {
	ShopID      uuid.UUID       `validate:"required" json:"shop_id"`
	CategoryID  *uuid.UUID      `json:"category_id"`
	Name        string          `validate:"required" json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `validate:"required" json:"price"`
	ImageUrl    string          `json:"image_url"`
}

type UpsertCategory struct {
	Name string `validate:"required" json:"name"`
}

type UpsertFaq struct {
	Question string `validate:"required" json:"question"`
	Answer   string `validate:"required" json:"answer"`
	Position int32  `json:"position"`
}

// InsertNotification targets a single user when UserID is set, otherwise the
// notification is broadcast to everyone.
type InsertNotification struct {
	UserID  *uuid.UUID `json:"user_id"`
	Title   string     `validate:"required" json:"title"`
	Message string     `validate:"required" json:"message"`
}

type VerifyShop struct {
	Status string `validate:"required,oneof=approved rejected" json:"status"`
}

type UpdateOrderStatus struct {
	Status string `validate:"required,oneof=pending completed cancelled" json:"status"`
}
