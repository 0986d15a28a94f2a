package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const insertOrder = `
INSERT INTO orders (customer_name, total_amount, status)
VALUES ($1, $2, $3)
RETURNING id, customer_name, total_amount, status, created_at, updated_at
`

type InsertOrderParams struct {
	CustomerName string
	TotalAmount  pgtype.Numeric
	Status       string
}

func (q *Queries) InsertOrder(c context.Context, arg InsertOrderParams) (Order, error) {
	row := q.db.QueryRow(c, insertOrder, arg.CustomerName, arg.TotalAmount, arg.Status)
	var o Order
	err := row.Scan(
		&o.ID,
		&o.CustomerName,
		&o.TotalAmount,
		&o.Status,
		&o.CreatedAt,
		&o.UpdatedAt,
	)
	return o, err
}

type InsertOrderItemsParams struct {
	ID          uuid.UUID
	OrderID     uuid.UUID
	ProductID   uuid.UUID
	ProductName string
	Quantity    int32
	Price       pgtype.Numeric
}

func (q *Queries) InsertOrderItems(c context.Context, arg []InsertOrderItemsParams) (int64, error) {
	return q.db.CopyFrom(
		c,
		pgx.Identifier{"order_items"},
		[]string{"id", "order_id", "product_id", "product_name", "quantity", "price"},
		pgx.CopyFromSlice(len(arg), func(i int) ([]interface{}, error) {
			return []interface{}{
				arg[i].ID,
				arg[i].OrderID,
				arg[i].ProductID,
				arg[i].ProductName,
				arg[i].Quantity,
				arg[i].Price,
			}, nil
		}),
	)
}

const findOrderById = `
SELECT id, customer_name, total_amount, status, created_at, updated_at
FROM orders
WHERE id = $1
`

func (q *Queries) FindOrderById(c context.Context, id uuid.UUID) (Order, error) {
	row := q.db.QueryRow(c, findOrderById, id)
	var o Order
	err := row.Scan(
		&o.ID,
		&o.CustomerName,
		&o.TotalAmount,
		&o.Status,
		&o.CreatedAt,
		&o.UpdatedAt,
	)
	return o, err
}

const findOrders = `
SELECT id, customer_name, total_amount, status, created_at, updated_at
FROM orders
ORDER BY created_at DESC
`

func (q *Queries) FindOrders(c context.Context) ([]Order, error) {
	rows, err := q.db.Query(c, findOrders)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Order{}
	for rows.Next() {
		var o Order
		if err := rows.Scan(
			&o.ID,
			&o.CustomerName,
			&o.TotalAmount,
			&o.Status,
			&o.CreatedAt,
			&o.UpdatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, o)
	}
	return items, rows.Err()
}

const findOrderItemsByOrderId = `
SELECT id, order_id, product_id, product_name, quantity, price, created_at
FROM order_items
WHERE order_id = $1
ORDER BY created_at
`

func (q *Queries) FindOrderItemsByOrderId(c context.Context, orderId uuid.UUID) ([]OrderItem, error) {
	rows, err := q.db.Query(c, findOrderItemsByOrderId, orderId)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []OrderItem{}
	for rows.Next() {
		var i OrderItem
		if err := rows.Scan(
			&i.ID,
			&i.OrderID,
			&i.ProductID,
			&i.ProductName,
			&i.Quantity,
			&i.Price,
			&i.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const updateOrderStatus = `
UPDATE orders
SET status = $2, updated_at = now()
WHERE id = $1
RETURNING id, customer_name, total_amount, status, created_at, updated_at
`

func (q *Queries) UpdateOrderStatus(c context.Context, id uuid.UUID, status string) (Order, error) {
	row := q.db.QueryRow(c, updateOrderStatus, id, status)
	var o Order
	err := row.Scan(
		&o.ID,
		&o.CustomerName,
		&o.TotalAmount,
		&o.Status,
		&o.CreatedAt,
		&o.UpdatedAt,
	)
	return o, err
}
