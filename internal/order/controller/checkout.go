package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	commonErrors "github.com/raditia/gerai/internal/errors"
	commonHttp "github.com/raditia/gerai/internal/http"
	"github.com/raditia/gerai/internal/log"
	"github.com/raditia/gerai/internal/order/otel"
	"github.com/raditia/gerai/internal/order/service"
	"github.com/raditia/gerai/order/pkg/request"
)

const headerSessionId = "X-Session-Id"

type CheckoutController struct {
	service *service.CheckoutService
}

func AttachCheckoutController(router *mux.Router, service *service.CheckoutService) {
	controller := CheckoutController{service: service}

	router.HandleFunc("/checkout", controller.Checkout).Methods(http.MethodPost)
	router.HandleFunc("/orders/{orderId}", controller.FindOrderById).Methods(http.MethodGet)
}

func (t CheckoutController) Checkout(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CheckoutController Checkout")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CheckoutController Checkout").
		Logger()

	sessionId := r.Header.Get(headerSessionId)
	if sessionId == "" {
		err := fmt.Errorf("header %s is required", headerSessionId)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusBadRequest,
			"message":    err.Error(),
		})
		return
	}
	logger = logger.With().Str(log.KeySessionID, sessionId).Logger()

	logger = logger.With().Str(log.KeyProcess, "decoding requestbody").Logger()
	logger.Info().Msg("decoding requestbody")
	reqBody := request.Checkout{}
	if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil && !errors.Is(err, io.EOF) {
		err = fmt.Errorf("failed decoding request body with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusBadRequest,
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msg("decoded request body")

	logger = logger.With().Str(log.KeyProcess, "checking out").Logger()
	logger.Info().Msg("checking out")
	c = logger.WithContext(c)
	result, err := t.service.Checkout(c, sessionId, reqBody)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, commonErrors.ErrCheckoutInFlight) {
			statusCode = http.StatusConflict
		} else if errors.Is(err, commonErrors.ErrEmptyCart) {
			statusCode = http.StatusBadRequest
		}
		err = fmt.Errorf("failed checking out with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": statusCode,
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msg("checked out")

	commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    fmt.Sprintf("created order %s", result.ShortID),
		"data": map[string]interface{}{
			"checkout": result,
		},
	})
}

func (t CheckoutController) FindOrderById(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CheckoutController FindOrderById")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CheckoutController FindOrderById").
		Logger()

	logger = logger.With().Str(log.KeyProcess, "validating orderId").Logger()
	logger.Info().Msg("validating orderId")
	orderId, err := uuid.Parse(mux.Vars(r)["orderId"])
	if err != nil {
		err = fmt.Errorf("failed validating orderId with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusBadRequest,
			"message":    err.Error(),
		})
		return
	}
	logger = logger.With().Str(log.KeyOrderID, orderId.String()).Logger()
	logger.Info().Msgf("validated orderId=%s", orderId.String())

	logger = logger.With().Str(log.KeyProcess, "finding order").Logger()
	logger.Info().Msg("finding order")
	c = logger.WithContext(c)
	order, err := t.service.FindOrderById(c, orderId)
	if err != nil {
		err = fmt.Errorf("failed finding orderId=%s with error=%w", orderId.String(), err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusNotFound,
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msg("found order")

	commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    fmt.Sprintf("found orderId=%s", orderId.String()),
		"data": map[string]interface{}{
			"order": order,
		},
	})
}
