package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const findProducts = `
SELECT id, shop_id, category_id, name, description, price, image_url, created_at, updated_at
FROM products
WHERE ($1::uuid IS NULL OR category_id = $1)
  AND ($2::text = '' OR name ILIKE '%' || $2 || '%')
`

type FindProductsParams struct {
	CategoryID uuid.NullUUID
	Search     string
	Sort       string
}

// FindProducts filters by optional category and name substring. Sort accepts
// price_asc, price_desc or newest; anything else falls back to newest.
func (q *Queries) FindProducts(c context.Context, arg FindProductsParams) ([]Product, error) {
	query := findProducts
	switch arg.Sort {
	case "price_asc":
		query += " ORDER BY price ASC"
	case "price_desc":
		query += " ORDER BY price DESC"
	default:
		query += " ORDER BY created_at DESC"
	}
	rows, err := q.db.Query(c, query, arg.CategoryID, arg.Search)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanProducts(rows)
}

const findProductById = `
SELECT id, shop_id, category_id, name, description, price, image_url, created_at, updated_at
FROM products
WHERE id = $1
`

func (q *Queries) FindProductById(c context.Context, id uuid.UUID) (Product, error) {
	row := q.db.QueryRow(c, findProductById, id)
	var p Product
	err := row.Scan(
		&p.ID,
		&p.ShopID,
		&p.CategoryID,
		&p.Name,
		&p.Description,
		&p.Price,
		&p.ImageUrl,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	return p, err
}

const findProductsByShopId = `
SELECT id, shop_id, category_id, name, description, price, image_url, created_at, updated_at
FROM products
WHERE shop_id = $1
ORDER BY created_at DESC
`

func (q *Queries) FindProductsByShopId(c context.Context, shopId uuid.UUID) ([]Product, error) {
	rows, err := q.db.Query(c, findProductsByShopId, shopId)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanProducts(rows)
}

const insertProduct = `
INSERT INTO products (shop_id, category_id, name, description, price, image_url)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id, shop_id, category_id, name, description, price, image_url, created_at, updated_at
`

type InsertProductParams struct {
	ShopID      uuid.UUID
	CategoryID  uuid.NullUUID
	Name        string
	Description string
	Price       pgtype.Numeric
	ImageUrl    string
}

func (q *Queries) InsertProduct(c context.Context, arg InsertProductParams) (Product, error) {
	row := q.db.QueryRow(
		c,
		insertProduct,
		arg.ShopID,
		arg.CategoryID,
		arg.Name,
		arg.Description,
		arg.Price,
		arg.ImageUrl,
	)
	var p Product
	err := row.Scan(
		&p.ID,
		&p.ShopID,
		&p.CategoryID,
		&p.Name,
		&p.Description,
		&p.Price,
		&p.ImageUrl,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	return p, err
}

const updateProduct = `
UPDATE products
SET category_id = $2,
    name        = $3,
    description = $4,
    price       = $5,
    image_url   = $6,
    updated_at  = now()
WHERE id = $1
RETURNING id, shop_id, category_id, name, description, price, image_url, created_at, updated_at
`

type UpdateProductParams struct {
	ID          uuid.UUID
	CategoryID  uuid.NullUUID
	Name        string
	Description string
	Price       pgtype.Numeric
	ImageUrl    string
}

func (q *Queries) UpdateProduct(c context.Context, arg UpdateProductParams) (Product, error) {
	row := q.db.QueryRow(
		c,
		updateProduct,
		arg.ID,
		arg.CategoryID,
		arg.Name,
		arg.Description,
		arg.Price,
		arg.ImageUrl,
	)
	var p Product
	err := row.Scan(
		&p.ID,
		&p.ShopID,
		&p.CategoryID,
		&p.Name,
		&p.Description,
		&p.Price,
		&p.ImageUrl,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	return p, err
}

const deleteProduct = `
DELETE FROM products
WHERE id = $1
`

func (q *Queries) DeleteProduct(c context.Context, id uuid.UUID) error {
	_, err := q.db.Exec(c, deleteProduct, id)
	return err
}

const countProductsByShopId = `
SELECT count(*)
FROM products
WHERE shop_id = $1
`

func (q *Queries) CountProductsByShopId(c context.Context, shopId uuid.UUID) (int64, error) {
	row := q.db.QueryRow(c, countProductsByShopId, shopId)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const countSoldItemsByShopId = `
SELECT coalesce(sum(oi.quantity), 0)
FROM order_items oi
JOIN products p ON p.id = oi.product_id
WHERE p.shop_id = $1
`

func (q *Queries) CountSoldItemsByShopId(c context.Context, shopId uuid.UUID) (int64, error) {
	row := q.db.QueryRow(c, countSoldItemsByShopId, shopId)
	var count int64
	err := row.Scan(&count)
	return count, err
}

type productRows interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
}

func scanProducts(rows productRows) ([]Product, error) {
	items := []Product{}
	for rows.Next() {
		var p Product
		if err := rows.Scan(
			&p.ID,
			&p.ShopID,
			&p.CategoryID,
			&p.Name,
			&p.Description,
			&p.Price,
			&p.ImageUrl,
			&p.CreatedAt,
			&p.UpdatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	return items, rows.Err()
}
