package response

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Checkout struct {
	OrderID     uuid.UUID       `json:"order_id"`
	ShortID     string          `json:"short_id"`
	Total       decimal.Decimal `json:"total"`
	WhatsappUrl string          `json:"whatsapp_url"`
	Message     string          `json:"message"`
}

type Order struct {
	ID           uuid.UUID       `json:"id"`
	CustomerName string          `json:"customer_name"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	Status       string          `json:"status"`
	Items        []OrderItem     `json:"items"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

type OrderItem struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int32           `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
}
