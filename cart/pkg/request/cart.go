package request

import "github.com/google/uuid"

type AddCartItem struct {
	ProductId uuid.UUID `validate:"required,uuid" json:"product_id"`
	Quantity  int32     `validate:"gte=0"         json:"quantity"`
}

type UpdateCartItem struct {
	Quantity int32 `validate:"gte=0" json:"quantity"`
}

type MergeCart struct {
	Items []MergeCartItem `validate:"required" json:"items"`
}

type MergeCartItem struct {
	ProductId uuid.UUID `validate:"required,uuid" json:"product_id"`
	Quantity  int32     `validate:"gte=1"         json:"quantity"`
}
