package feed

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/raditia/gerai/notification/pkg/event"
)

// Entry is one notification as held by a user's feed, newest first.
type Entry struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

// Feed is the in-memory notification state for one user. Live events are
// prepended as unread; the server remains the source of truth, so a reload
// through Replace always wins over local optimistic edits.
type Feed struct {
	mu      sync.Mutex
	userId  uuid.UUID
	entries []Entry
}

func New(userId uuid.UUID, initial []Entry) *Feed {
	entries := make([]Entry, len(initial))
	copy(entries, initial)
	return &Feed{userId: userId, entries: entries}
}

// Apply merges a live event into the feed when it targets this user, either
// directly or as a broadcast. Events already present are ignored.
func (f *Feed) Apply(notification event.Notification) bool {
	if notification.UserID != nil && *notification.UserID != f.userId {
		return false
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, entry := range f.entries {
		if entry.ID == notification.ID {
			return false
		}
	}
	f.entries = append([]Entry{{
		ID:        notification.ID,
		Title:     notification.Title,
		Message:   notification.Message,
		IsRead:    false,
		CreatedAt: notification.CreatedAt,
	}}, f.entries...)
	return true
}

// MarkRead flips an entry to read and reports whether anything changed.
func (f *Feed) MarkRead(notificationId uuid.UUID) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, entry := range f.entries {
		if entry.ID == notificationId {
			if entry.IsRead {
				return false
			}
			f.entries[i].IsRead = true
			return true
		}
	}
	return false
}

// Replace swaps the whole feed for the server's state.
func (f *Feed) Replace(entries []Entry) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries = make([]Entry, len(entries))
	copy(f.entries, entries)
}

// Entries returns a copy of the feed, newest first.
func (f *Feed) Entries() []Entry {
	f.mu.Lock()
	defer f.mu.Unlock()
	entries := make([]Entry, len(f.entries))
	copy(entries, f.entries)
	return entries
}

// UnreadCount never goes negative; marking an already-read entry is a no-op.
func (f *Feed) UnreadCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	count := 0
	for _, entry := range f.entries {
		if !entry.IsRead {
			count++
		}
	}
	return count
}
