package event

import (
	"time"

	"github.com/google/uuid"
)

// Channel is the pub/sub channel notification inserts are announced on.
const Channel = "notifications"

// Notification is the payload published for every inserted notification.
// A nil UserID means the notification is a broadcast visible to everyone.
type Notification struct {
	ID        uuid.UUID  `json:"id"`
	UserID    *uuid.UUID `json:"user_id,omitempty"`
	Title     string     `json:"title"`
	Message   string     `json:"message"`
	CreatedAt time.Time  `json:"created_at"`
}
