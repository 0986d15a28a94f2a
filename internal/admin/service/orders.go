package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/raditia/gerai/internal/admin/otel"
	commonErrors "github.com/raditia/gerai/internal/errors"
	"github.com/raditia/gerai/internal/log"
	"github.com/raditia/gerai/internal/repository"
	"github.com/raditia/gerai/order/pkg/response"
)

func orderResponse(order repository.Order) response.Order {
	return response.Order{
		ID:           order.ID,
		CustomerName: order.CustomerName,
		TotalAmount:  decimal.NewFromBigInt(order.TotalAmount.Int, order.TotalAmount.Exp),
		Status:       order.Status,
		Items:        []response.OrderItem{},
		CreatedAt:    order.CreatedAt.Time,
		UpdatedAt:    order.UpdatedAt.Time,
	}
}

func (svc *AdminService) FindOrders(c context.Context) ([]response.Order, error) {
	c, span := otel.Tracer.Start(c, "AdminService FindOrders")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "AdminService FindOrders").
		Str(log.KeyProcess, "finding orders").
		Logger()

	logger.Info().Msg("finding orders")
	orders, err := svc.queries.FindOrders(c)
	if err != nil {
		err = fmt.Errorf("failed finding orders with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	logger.Info().Msgf("found %d orders", len(orders))

	result := make([]response.Order, len(orders))
	for i, order := range orders {
		result[i] = orderResponse(order)
	}
	return result, nil
}

func (svc *AdminService) UpdateOrderStatus(
	c context.Context,
	orderId uuid.UUID,
	newStatus string,
) (response.Order, error) {
	c, span := otel.Tracer.Start(c, "AdminService UpdateOrderStatus")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "AdminService UpdateOrderStatus").
		Str(log.KeyOrderID, orderId.String()).
		Str(log.KeyProcess, "updating order status").
		Logger()

	logger.Info().Msgf("updating order status to=%s", newStatus)
	order, err := svc.queries.UpdateOrderStatus(c, orderId, newStatus)
	if err != nil {
		err = fmt.Errorf("failed updating order status with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}
	logger.Info().Msg("updated order status")

	return orderResponse(order), nil
}
