package response

import (
	"time"

	"github.com/google/uuid"

	"github.com/raditia/gerai/internal/notification/feed"
)

type Feed struct {
	Notifications []feed.Entry `json:"notifications"`
	UnreadCount   int          `json:"unread_count"`
}

// Notification is the stored record, including its optional target user.
type Notification struct {
	ID        uuid.UUID  `json:"id"`
	UserID    *uuid.UUID `json:"user_id,omitempty"`
	Title     string     `json:"title"`
	Message   string     `json:"message"`
	IsRead    bool       `json:"is_read"`
	CreatedAt time.Time  `json:"created_at"`
}
