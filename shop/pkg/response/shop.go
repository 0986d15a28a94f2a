package response

import (
	"time"

	"github.com/google/uuid"
)

type Shop struct {
	ID        uuid.UUID `json:"id"`
	OwnerID   uuid.UUID `json:"owner_id"`
	Name      string    `json:"name"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Dashboard struct {
	Shop         Shop  `json:"shop"`
	ProductCount int64 `json:"product_count"`
	SoldItems    int64 `json:"sold_items"`
}
