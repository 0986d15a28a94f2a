package repository

import (
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type Profile struct {
	ID        uuid.UUID
	Username  string
	Email     string
	Password  string
	Role      string
	CreatedAt pgtype.Timestamptz
	UpdatedAt pgtype.Timestamptz
}

type Category struct {
	ID        uuid.UUID
	Name      string
	CreatedAt pgtype.Timestamptz
	UpdatedAt pgtype.Timestamptz
}

type Product struct {
	ID          uuid.UUID
	ShopID      uuid.UUID
	CategoryID  uuid.NullUUID
	Name        string
	Description string
	Price       pgtype.Numeric
	ImageUrl    string
	CreatedAt   pgtype.Timestamptz
	UpdatedAt   pgtype.Timestamptz
}

type Shop struct {
	ID        uuid.UUID
	OwnerID   uuid.UUID
	Name      string
	Status    string
	CreatedAt pgtype.Timestamptz
	UpdatedAt pgtype.Timestamptz
}

type Order struct {
	ID           uuid.UUID
	CustomerName string
	TotalAmount  pgtype.Numeric
	Status       string
	CreatedAt    pgtype.Timestamptz
	UpdatedAt    pgtype.Timestamptz
}

type OrderItem struct {
	ID          uuid.UUID
	OrderID     uuid.UUID
	ProductID   uuid.UUID
	ProductName string
	Quantity    int32
	Price       pgtype.Numeric
	CreatedAt   pgtype.Timestamptz
}

type Notification struct {
	ID        uuid.UUID
	UserID    uuid.NullUUID
	Title     string
	Message   string
	IsRead    bool
	CreatedAt pgtype.Timestamptz
}

type Faq struct {
	ID        uuid.UUID
	Question  string
	Answer    string
	Position  int32
	CreatedAt pgtype.Timestamptz
	UpdatedAt pgtype.Timestamptz
}
