package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	commonErrors "github.com/raditia/gerai/internal/errors"
	"github.com/raditia/gerai/internal/log"
	"github.com/raditia/gerai/internal/repository"
	"github.com/raditia/gerai/internal/notification/feed"
	"github.com/raditia/gerai/internal/notification/otel"
	"github.com/raditia/gerai/notification/pkg/event"
	"github.com/raditia/gerai/notification/pkg/response"
)

// NotificationService serves each signed-in user a live notification feed:
// the ten newest rows on first access, then inserts announced over pub/sub.
type NotificationService struct {
	queries *repository.Queries
	cache   *redis.Client
	mu      sync.Mutex
	feeds   map[uuid.UUID]*feed.Feed
	pubsub  *redis.PubSub
}

func NewNotificationService(
	queries *repository.Queries,
	cache *redis.Client,
) *NotificationService {
	return &NotificationService{
		queries: queries,
		cache:   cache,
		feeds:   map[uuid.UUID]*feed.Feed{},
	}
}

// StartSubscriber begins draining the notification channel into the loaded
// feeds. It returns once the subscription is established.
func (svc *NotificationService) StartSubscriber(c context.Context) {
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "NotificationService StartSubscriber").
		Logger()

	svc.pubsub = svc.cache.Subscribe(c, event.Channel)
	messages := svc.pubsub.Channel()
	go func() {
		for message := range messages {
			notification := event.Notification{}
			if err := json.Unmarshal([]byte(message.Payload), &notification); err != nil {
				logger.Warn().Err(err).Msg("discarding notification event that no longer unmarshals")
				continue
			}
			logger.Info().
				Str(log.KeyNotificationID, notification.ID.String()).
				Msg("applying notification event")
			svc.mu.Lock()
			for _, f := range svc.feeds {
				f.Apply(notification)
			}
			svc.mu.Unlock()
		}
	}()
	logger.Info().Msgf("subscribed to channel=%s", event.Channel)
}

// Close stops the pub/sub subscription.
func (svc *NotificationService) Close() error {
	if svc.pubsub == nil {
		return nil
	}
	return svc.pubsub.Close()
}

func (svc *NotificationService) loadEntries(
	c context.Context,
	userId uuid.UUID,
) ([]feed.Entry, error) {
	rows, err := svc.queries.FindNotificationsForUser(c, userId)
	if err != nil {
		return nil, fmt.Errorf(
			"failed finding notifications for userId=%s with error=%w",
			userId.String(),
			err,
		)
	}
	entries := make([]feed.Entry, len(rows))
	for i, row := range rows {
		entries[i] = feed.Entry{
			ID:        row.ID,
			Title:     row.Title,
			Message:   row.Message,
			IsRead:    row.IsRead,
			CreatedAt: row.CreatedAt.Time,
		}
	}
	return entries, nil
}

func (svc *NotificationService) feedFor(
	c context.Context,
	userId uuid.UUID,
) (*feed.Feed, error) {
	svc.mu.Lock()
	if f, ok := svc.feeds[userId]; ok {
		svc.mu.Unlock()
		return f, nil
	}
	svc.mu.Unlock()

	entries, err := svc.loadEntries(c, userId)
	if err != nil {
		return nil, err
	}

	svc.mu.Lock()
	defer svc.mu.Unlock()
	if f, ok := svc.feeds[userId]; ok {
		return f, nil
	}
	f := feed.New(userId, entries)
	svc.feeds[userId] = f
	return f, nil
}

func (svc *NotificationService) Feed(
	c context.Context,
	userId uuid.UUID,
) (response.Feed, error) {
	c, span := otel.Tracer.Start(c, "NotificationService Feed")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "NotificationService Feed").
		Str(log.KeyUserID, userId.String()).
		Logger()

	f, err := svc.feedFor(c, userId)
	if err != nil {
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Feed{}, err
	}
	return response.Feed{Notifications: f.Entries(), UnreadCount: f.UnreadCount()}, nil
}

// MarkAsRead flips the entry locally first, then persists. When the write
// fails the feed is reloaded so the server's state wins.
func (svc *NotificationService) MarkAsRead(
	c context.Context,
	userId uuid.UUID,
	notificationId uuid.UUID,
) (response.Feed, error) {
	c, span := otel.Tracer.Start(c, "NotificationService MarkAsRead")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "NotificationService MarkAsRead").
		Str(log.KeyUserID, userId.String()).
		Str(log.KeyNotificationID, notificationId.String()).
		Logger()

	f, err := svc.feedFor(c, userId)
	if err != nil {
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Feed{}, err
	}

	if !f.MarkRead(notificationId) {
		err := commonErrors.ErrNotificationTarget
		commonErrors.HandleError(err, span)
		logger.Warn().Err(err).Msg(err.Error())
		return response.Feed{Notifications: f.Entries(), UnreadCount: f.UnreadCount()}, err
	}

	logger = logger.With().Str(log.KeyProcess, "persisting read flag").Logger()
	logger.Info().Msg("persisting read flag")
	if _, err := svc.queries.UpdateNotificationRead(c, notificationId, true); err != nil {
		err = fmt.Errorf(
			"failed marking notificationId=%s as read with error=%w",
			notificationId.String(),
			err,
		)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		if entries, reloadErr := svc.loadEntries(c, userId); reloadErr == nil {
			f.Replace(entries)
		}
		return response.Feed{Notifications: f.Entries(), UnreadCount: f.UnreadCount()}, err
	}
	logger.Info().Msg("persisted read flag")

	return response.Feed{Notifications: f.Entries(), UnreadCount: f.UnreadCount()}, nil
}

// Refresh discards local state in favor of the server's newest ten rows.
func (svc *NotificationService) Refresh(
	c context.Context,
	userId uuid.UUID,
) (response.Feed, error) {
	c, span := otel.Tracer.Start(c, "NotificationService Refresh")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "NotificationService Refresh").
		Str(log.KeyUserID, userId.String()).
		Logger()

	f, err := svc.feedFor(c, userId)
	if err != nil {
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Feed{}, err
	}
	entries, err := svc.loadEntries(c, userId)
	if err != nil {
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Feed{}, err
	}
	f.Replace(entries)
	return response.Feed{Notifications: f.Entries(), UnreadCount: f.UnreadCount()}, nil
}
