package controller

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	commonErrors "github.com/raditia/gerai/internal/errors"
	commonHttp "github.com/raditia/gerai/internal/http"
	"github.com/raditia/gerai/internal/log"
	"github.com/raditia/gerai/internal/token"
	"github.com/raditia/gerai/internal/notification/otel"
	"github.com/raditia/gerai/internal/notification/service"
)

type NotificationController struct {
	service *service.NotificationService
}

func AttachNotificationController(
	router *mux.Router,
	service *service.NotificationService,
) {
	controller := NotificationController{service: service}

	sub := router.PathPrefix("/notifications").Subrouter()
	sub.HandleFunc("", controller.Feed).Methods(http.MethodGet)
	sub.HandleFunc("/refresh", controller.Refresh).Methods(http.MethodPost)
	sub.HandleFunc("/{notificationId}/read", controller.MarkAsRead).Methods(http.MethodPatch)
}

func (t NotificationController) Feed(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "NotificationController Feed")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "NotificationController Feed").
		Logger()

	userId, err := token.UserIdFromContext(c)
	if err != nil {
		err = fmt.Errorf("failed getting userId from token with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusUnauthorized,
			"message":    err.Error(),
		})
		return
	}
	logger = logger.With().Str(log.KeyUserID, userId.String()).Logger()

	logger = logger.With().Str(log.KeyProcess, "loading feed").Logger()
	logger.Info().Msg("loading feed")
	c = logger.WithContext(c)
	feed, err := t.service.Feed(c, userId)
	if err != nil {
		err = fmt.Errorf("failed loading feed with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusInternalServerError,
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msg("loaded feed")

	commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "loaded notifications",
		"data": map[string]interface{}{
			"feed": feed,
		},
	})
}

func (t NotificationController) MarkAsRead(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "NotificationController MarkAsRead")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "NotificationController MarkAsRead").
		Logger()

	userId, err := token.UserIdFromContext(c)
	if err != nil {
		err = fmt.Errorf("failed getting userId from token with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusUnauthorized,
			"message":    err.Error(),
		})
		return
	}
	logger = logger.With().Str(log.KeyUserID, userId.String()).Logger()

	logger = logger.With().Str(log.KeyProcess, "validating notificationId").Logger()
	logger.Info().Msg("validating notificationId")
	notificationId, err := uuid.Parse(mux.Vars(r)["notificationId"])
	if err != nil {
		err = fmt.Errorf("failed validating notificationId with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusBadRequest,
			"message":    err.Error(),
		})
		return
	}
	logger = logger.With().Str(log.KeyNotificationID, notificationId.String()).Logger()
	logger.Info().Msgf("validated notificationId=%s", notificationId.String())

	logger = logger.With().Str(log.KeyProcess, "marking notification as read").Logger()
	logger.Info().Msg("marking notification as read")
	c = logger.WithContext(c)
	feed, err := t.service.MarkAsRead(c, userId, notificationId)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, commonErrors.ErrNotificationTarget) {
			statusCode = http.StatusNotFound
		}
		err = fmt.Errorf("failed marking notification as read with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": statusCode,
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msg("marked notification as read")

	commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "marked notification as read",
		"data": map[string]interface{}{
			"feed": feed,
		},
	})
}

func (t NotificationController) Refresh(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "NotificationController Refresh")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "NotificationController Refresh").
		Logger()

	userId, err := token.UserIdFromContext(c)
	if err != nil {
		err = fmt.Errorf("failed getting userId from token with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusUnauthorized,
			"message":    err.Error(),
		})
		return
	}
	logger = logger.With().Str(log.KeyUserID, userId.String()).Logger()

	logger = logger.With().Str(log.KeyProcess, "refreshing feed").Logger()
	logger.Info().Msg("refreshing feed")
	c = logger.WithContext(c)
	feed, err := t.service.Refresh(c, userId)
	if err != nil {
		err = fmt.Errorf("failed refreshing feed with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusInternalServerError,
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msg("refreshed feed")

	commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "refreshed notifications",
		"data": map[string]interface{}{
			"feed": feed,
		},
	})
}
