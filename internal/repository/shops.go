package repository

import (
	"context"

	"github.com/google/uuid"
)

const insertShop = `
INSERT INTO shops (owner_id, name, status)
VALUES ($1, $2, 'pending')
RETURNING id, owner_id, name, status, created_at, updated_at
`

type InsertShopParams struct {
	OwnerID uuid.UUID
	Name    string
}

func (q *Queries) InsertShop(c context.Context, arg InsertShopParams) (Shop, error) {
	row := q.db.QueryRow(c, insertShop, arg.OwnerID, arg.Name)
	var s Shop
	err := row.Scan(&s.ID, &s.OwnerID, &s.Name, &s.Status, &s.CreatedAt, &s.UpdatedAt)
	return s, err
}

const findShopById = `
SELECT id, owner_id, name, status, created_at, updated_at
FROM shops
WHERE id = $1
`

func (q *Queries) FindShopById(c context.Context, id uuid.UUID) (Shop, error) {
	row := q.db.QueryRow(c, findShopById, id)
	var s Shop
	err := row.Scan(&s.ID, &s.OwnerID, &s.Name, &s.Status, &s.CreatedAt, &s.UpdatedAt)
	return s, err
}

const findShopByOwnerId = `
SELECT id, owner_id, name, status, created_at, updated_at
FROM shops
WHERE owner_id = $1
`

func (q *Queries) FindShopByOwnerId(c context.Context, ownerId uuid.UUID) (Shop, error) {
	row := q.db.QueryRow(c, findShopByOwnerId, ownerId)
	var s Shop
	err := row.Scan(&s.ID, &s.OwnerID, &s.Name, &s.Status, &s.CreatedAt, &s.UpdatedAt)
	return s, err
}

const findShops = `
SELECT id, owner_id, name, status, created_at, updated_at
FROM shops
WHERE ($1::text = '' OR status = $1)
ORDER BY created_at DESC
`

func (q *Queries) FindShops(c context.Context, status string) ([]Shop, error) {
	rows, err := q.db.Query(c, findShops, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Shop{}
	for rows.Next() {
		var s Shop
		if err := rows.Scan(
			&s.ID,
			&s.OwnerID,
			&s.Name,
			&s.Status,
			&s.CreatedAt,
			&s.UpdatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, s)
	}
	return items, rows.Err()
}

const updateShopStatus = `
UPDATE shops
SET status = $2, updated_at = now()
WHERE id = $1
RETURNING id, owner_id, name, status, created_at, updated_at
`

func (q *Queries) UpdateShopStatus(c context.Context, id uuid.UUID, status string) (Shop, error) {
	row := q.db.QueryRow(c, updateShopStatus, id, status)
	var s Shop
	err := row.Scan(&s.ID, &s.OwnerID, &s.Name, &s.Status, &s.CreatedAt, &s.UpdatedAt)
	return s, err
}
