package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/raditia/gerai/internal/admin/otel"
	"github.com/raditia/gerai/admin/pkg/request"
	commonErrors "github.com/raditia/gerai/internal/errors"
	"github.com/raditia/gerai/internal/log"
	"github.com/raditia/gerai/internal/repository"
	"github.com/raditia/gerai/notification/pkg/event"
	"github.com/raditia/gerai/notification/pkg/response"
)

// InsertNotification stores the notification and announces it to live feeds.
// A nil UserID makes it a broadcast.
func (svc *AdminService) InsertNotification(
	c context.Context,
	params request.InsertNotification,
) (response.Notification, error) {
	c, span := otel.Tracer.Start(c, "AdminService InsertNotification")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "AdminService InsertNotification").
		Logger()
	if params.UserID != nil {
		logger = logger.With().Str(log.KeyUserID, params.UserID.String()).Logger()
	}

	logger = logger.With().Str(log.KeyProcess, "inserting notification").Logger()
	logger.Info().Msg("inserting notification")
	userId := uuid.NullUUID{}
	if params.UserID != nil {
		userId = uuid.NullUUID{UUID: *params.UserID, Valid: true}
	}
	inserted, err := svc.queries.InsertNotification(c, repository.InsertNotificationParams{
		UserID:  userId,
		Title:   params.Title,
		Message: params.Message,
	})
	if err != nil {
		err = fmt.Errorf("failed inserting notification with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Notification{}, err
	}
	logger = logger.With().Str(log.KeyNotificationID, inserted.ID.String()).Logger()
	logger.Info().Msg("inserted notification")

	logger = logger.With().Str(log.KeyProcess, "publishing notification").Logger()
	logger.Info().Msg("publishing notification")
	err = event.Publish(c, svc.cache, event.Notification{
		ID:        inserted.ID,
		UserID:    params.UserID,
		Title:     inserted.Title,
		Message:   inserted.Message,
		CreatedAt: inserted.CreatedAt.Time,
	})
	if err != nil {
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Notification{}, err
	}
	logger.Info().Msg("published notification")

	return response.Notification{
		ID:        inserted.ID,
		UserID:    params.UserID,
		Title:     inserted.Title,
		Message:   inserted.Message,
		IsRead:    inserted.IsRead,
		CreatedAt: inserted.CreatedAt.Time,
	}, nil
}
