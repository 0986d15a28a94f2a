package repository

import (
	"context"

	"github.com/google/uuid"
)

const findCategories = `
SELECT id, name, created_at, updated_at
FROM categories
ORDER BY name
`

func (q *Queries) FindCategories(c context.Context) ([]Category, error) {
	rows, err := q.db.Query(c, findCategories)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Category{}
	for rows.Next() {
		var i Category
		if err := rows.Scan(&i.ID, &i.Name, &i.CreatedAt, &i.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const insertCategory = `
INSERT INTO categories (name)
VALUES ($1)
RETURNING id, name, created_at, updated_at
`

func (q *Queries) InsertCategory(c context.Context, name string) (Category, error) {
	row := q.db.QueryRow(c, insertCategory, name)
	var i Category
	err := row.Scan(&i.ID, &i.Name, &i.CreatedAt, &i.UpdatedAt)
	return i, err
}

const updateCategory = `
UPDATE categories
SET name = $2, updated_at = now()
WHERE id = $1
RETURNING id, name, created_at, updated_at
`

func (q *Queries) UpdateCategory(c context.Context, id uuid.UUID, name string) (Category, error) {
	row := q.db.QueryRow(c, updateCategory, id, name)
	var i Category
	err := row.Scan(&i.ID, &i.Name, &i.CreatedAt, &i.UpdatedAt)
	return i, err
}

const deleteCategory = `
DELETE FROM categories
WHERE id = $1
`

func (q *Queries) DeleteCategory(c context.Context, id uuid.UUID) error {
	_, err := q.db.Exec(c, deleteCategory, id)
	return err
}
