package repository

import (
	"context"

	"github.com/google/uuid"
)

const findFaqs = `
SELECT id, question, answer, position, created_at, updated_at
FROM faqs
ORDER BY position, created_at
`

func (q *Queries) FindFaqs(c context.Context) ([]Faq, error) {
	rows, err := q.db.Query(c, findFaqs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Faq{}
	for rows.Next() {
		var i Faq
		if err := rows.Scan(
			&i.ID,
			&i.Question,
			&i.Answer,
			&i.Position,
			&i.CreatedAt,
			&i.UpdatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const insertFaq = `
INSERT INTO faqs (question, answer, position)
VALUES ($1, $2, $3)
RETURNING id, question, answer, position, created_at, updated_at
`

type InsertFaqParams struct {
	Question string
	Answer   string
	Position int32
}

func (q *Queries) InsertFaq(c context.Context, arg InsertFaqParams) (Faq, error) {
	row := q.db.QueryRow(c, insertFaq, arg.Question, arg.Answer, arg.Position)
	var i Faq
	err := row.Scan(&i.ID, &i.Question, &i.Answer, &i.Position, &i.CreatedAt, &i.UpdatedAt)
	return i, err
}

const updateFaq = `
UPDATE faqs
SET question = $2, answer = $3, position = $4, updated_at = now()
WHERE id = $1
RETURNING id, question, answer, position, created_at, updated_at
`

type UpdateFaqParams struct {
	ID       uuid.UUID
	Question string
	Answer   string
	Position int32
}

func (q *Queries) UpdateFaq(c context.Context, arg UpdateFaqParams) (Faq, error) {
	row := q.db.QueryRow(c, updateFaq, arg.ID, arg.Question, arg.Answer, arg.Position)
	var i Faq
	err := row.Scan(&i.ID, &i.Question, &i.Answer, &i.Position, &i.CreatedAt, &i.UpdatedAt)
	return i, err
}

const deleteFaq = `
DELETE FROM faqs
WHERE id = $1
`

func (q *Queries) DeleteFaq(c context.Context, id uuid.UUID) error {
	_, err := q.db.Exec(c, deleteFaq, id)
	return err
}
