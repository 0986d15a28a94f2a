package repository

import (
	"context"

	"github.com/google/uuid"
)

const findNotificationsForUser = `
SELECT id, user_id, title, message, is_read, created_at
FROM notifications
WHERE user_id = $1 OR user_id IS NULL
ORDER BY created_at DESC
LIMIT 10
`

// FindNotificationsForUser returns the ten newest notifications addressed to
// the user or broadcast to everyone.
func (q *Queries) FindNotificationsForUser(c context.Context, userId uuid.UUID) ([]Notification, error) {
	rows, err := q.db.Query(c, findNotificationsForUser, userId)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Notification{}
	for rows.Next() {
		var n Notification
		if err := rows.Scan(
			&n.ID,
			&n.UserID,
			&n.Title,
			&n.Message,
			&n.IsRead,
			&n.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, n)
	}
	return items, rows.Err()
}

const insertNotification = `
INSERT INTO notifications (user_id, title, message)
VALUES ($1, $2, $3)
RETURNING id, user_id, title, message, is_read, created_at
`

type InsertNotificationParams struct {
	UserID  uuid.NullUUID
	Title   string
	Message string
}

func (q *Queries) InsertNotification(c context.Context, arg InsertNotificationParams) (Notification, error) {
	row := q.db.QueryRow(c, insertNotification, arg.UserID, arg.Title, arg.Message)
	var n Notification
	err := row.Scan(&n.ID, &n.UserID, &n.Title, &n.Message, &n.IsRead, &n.CreatedAt)
	return n, err
}

const updateNotificationRead = `
UPDATE notifications
SET is_read = $2
WHERE id = $1
RETURNING id, user_id, title, message, is_read, created_at
`

func (q *Queries) UpdateNotificationRead(c context.Context, id uuid.UUID, isRead bool) (Notification, error) {
	row := q.db.QueryRow(c, updateNotificationRead, id, isRead)
	var n Notification
	err := row.Scan(&n.ID, &n.UserID, &n.Title, &n.Message, &n.IsRead, &n.CreatedAt)
	return n, err
}
