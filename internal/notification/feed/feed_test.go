package feed

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raditia/gerai/notification/pkg/event"
)

func entry(title string, isRead bool) Entry {
	return Entry{ID: uuid.New(), Title: title, IsRead: isRead, CreatedAt: time.Now()}
}

func TestApplyPrependsUnreadEntry(t *testing.T) {
	t.Parallel()
	userId := uuid.New()
	f := New(userId, []Entry{entry("older", true)})

	applied := f.Apply(event.Notification{
		ID:        uuid.New(),
		UserID:    &userId,
		Title:     "Pesanan dikonfirmasi",
		CreatedAt: time.Now(),
	})

	require.True(t, applied)
	entries := f.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "Pesanan dikonfirmasi", entries[0].Title)
	assert.False(t, entries[0].IsRead)
	assert.Equal(t, 1, f.UnreadCount())
}

func TestApplyBroadcastReachesEveryUser(t *testing.T) {
	t.Parallel()
	f := New(uuid.New(), nil)

	applied := f.Apply(event.Notification{
		ID:        uuid.New(),
		Title:     "Promo akhir pekan",
		CreatedAt: time.Now(),
	})

	require.True(t, applied)
	assert.Equal(t, 1, f.UnreadCount())
}

func TestApplyIgnoresOtherUsersAndDuplicates(t *testing.T) {
	t.Parallel()
	userId := uuid.New()
	otherId := uuid.New()
	f := New(userId, nil)

	assert.False(t, f.Apply(event.Notification{ID: uuid.New(), UserID: &otherId}))
	assert.Empty(t, f.Entries())

	notificationId := uuid.New()
	assert.True(t, f.Apply(event.Notification{ID: notificationId, UserID: &userId}))
	assert.False(t, f.Apply(event.Notification{ID: notificationId, UserID: &userId}))
	assert.Len(t, f.Entries(), 1)
}

func TestMarkRead(t *testing.T) {
	t.Parallel()
	first := entry("first", false)
	second := entry("second", false)
	f := New(uuid.New(), []Entry{first, second})

	assert.True(t, f.MarkRead(first.ID))
	assert.Equal(t, 1, f.UnreadCount())

	assert.False(t, f.MarkRead(first.ID))
	assert.Equal(t, 1, f.UnreadCount())

	assert.False(t, f.MarkRead(uuid.New()))

	assert.True(t, f.MarkRead(second.ID))
	assert.Equal(t, 0, f.UnreadCount())
}

func TestReplaceIsLastServerStateWins(t *testing.T) {
	t.Parallel()
	stale := entry("stale", false)
	f := New(uuid.New(), []Entry{stale})
	require.True(t, f.MarkRead(stale.ID))

	fresh := entry("fresh", false)
	f.Replace([]Entry{fresh})

	entries := f.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, fresh.ID, entries[0].ID)
	assert.Equal(t, 1, f.UnreadCount())
}
