package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/raditia/gerai/cart/pkg/store"
	"github.com/raditia/gerai/internal/config"
	commonErrors "github.com/raditia/gerai/internal/errors"
	"github.com/raditia/gerai/internal/log"
	"github.com/raditia/gerai/internal/repository"
	"github.com/raditia/gerai/internal/order/otel"
	"github.com/raditia/gerai/internal/order/whatsapp"
	"github.com/raditia/gerai/order/pkg/request"
	"github.com/raditia/gerai/order/pkg/response"
)

const placeholderCustomerName = "Pelanggan"

// OrderRepository is the slice of the query layer checkout depends on.
type OrderRepository interface {
	InsertOrder(c context.Context, arg repository.InsertOrderParams) (repository.Order, error)
	InsertOrderItems(c context.Context, arg []repository.InsertOrderItemsParams) (int64, error)
	FindOrderById(c context.Context, id uuid.UUID) (repository.Order, error)
	FindOrderItemsByOrderId(c context.Context, orderId uuid.UUID) ([]repository.OrderItem, error)
}

// CheckoutService turns a session's cart into an order plus its items and a
// wa.me hand-off link. The two inserts are deliberately not wrapped in one
// transaction; when the item insert fails the order stays behind without
// items, the cart is kept and a retry creates a fresh order.
type CheckoutService struct {
	orders   OrderRepository
	carts    *store.Manager
	cfg      config.Whatsapp
	mu       sync.Mutex
	inFlight map[string]bool
}

func NewCheckoutService(
	orders OrderRepository,
	carts *store.Manager,
	cfg config.Whatsapp,
) *CheckoutService {
	return &CheckoutService{
		orders:   orders,
		carts:    carts,
		cfg:      cfg,
		inFlight: map[string]bool{},
	}
}

func (svc *CheckoutService) acquire(sessionId string) bool {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	if svc.inFlight[sessionId] {
		return false
	}
	svc.inFlight[sessionId] = true
	return true
}

func (svc *CheckoutService) release(sessionId string) {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	delete(svc.inFlight, sessionId)
}

func (svc *CheckoutService) Checkout(
	c context.Context,
	sessionId string,
	param request.Checkout,
) (response.Checkout, error) {
	c, span := otel.Tracer.Start(c, "CheckoutService Checkout")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CheckoutService Checkout").
		Str(log.KeySessionID, sessionId).
		Logger()

	if !svc.acquire(sessionId) {
		err := commonErrors.ErrCheckoutInFlight
		commonErrors.HandleError(err, span)
		logger.Warn().Err(err).Msg(err.Error())
		return response.Checkout{}, err
	}
	defer svc.release(sessionId)

	cart := svc.carts.Session(sessionId)
	snapshot := cart.Snapshot(c)
	if len(snapshot.Items) == 0 {
		err := commonErrors.ErrEmptyCart
		commonErrors.HandleError(err, span)
		logger.Warn().Err(err).Msg(err.Error())
		return response.Checkout{}, err
	}

	customerName := param.CustomerName
	if customerName == "" {
		customerName = placeholderCustomerName
	}

	logger = logger.With().Str(log.KeyProcess, "inserting order").Logger()
	logger.Info().Msg("inserting order")
	order, err := svc.orders.InsertOrder(c, repository.InsertOrderParams{
		CustomerName: customerName,
		TotalAmount: pgtype.Numeric{
			Int:   snapshot.Total.Coefficient(),
			Exp:   snapshot.Total.Exponent(),
			Valid: true,
		},
		Status: "pending",
	})
	if err != nil {
		err = fmt.Errorf("failed inserting order with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Checkout{}, err
	}
	logger = logger.With().Str(log.KeyOrderID, order.ID.String()).Logger()
	logger.Info().Msg("inserted order")

	logger = logger.With().Str(log.KeyProcess, "inserting order items").Logger()
	logger.Info().Msgf("inserting %d order items", len(snapshot.Items))
	items := make([]repository.InsertOrderItemsParams, len(snapshot.Items))
	for i, line := range snapshot.Items {
		price := line.Price.Decimal()
		items[i] = repository.InsertOrderItemsParams{
			ID:          uuid.New(),
			OrderID:     order.ID,
			ProductID:   line.ProductID,
			ProductName: line.Name,
			Quantity:    line.Quantity,
			Price: pgtype.Numeric{
				Int:   price.Coefficient(),
				Exp:   price.Exponent(),
				Valid: true,
			},
		}
	}
	if _, err := svc.orders.InsertOrderItems(c, items); err != nil {
		// The order row already exists without items. The cart is kept so the
		// user can retry, which creates a second order.
		err = fmt.Errorf(
			"failed inserting order items for orderId=%s with error=%w",
			order.ID.String(),
			err,
		)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Checkout{}, err
	}
	logger.Info().Msg("inserted order items")

	logger = logger.With().Str(log.KeyProcess, "building whatsapp link").Logger()
	logger.Info().Msg("building whatsapp link")
	summaryItems := make([]whatsapp.Item, len(snapshot.Items))
	for i, line := range snapshot.Items {
		summaryItems[i] = whatsapp.Item{
			Name:     line.Name,
			Quantity: line.Quantity,
			Price:    line.Price.Decimal(),
		}
	}
	message := whatsapp.Summary(order.ID, summaryItems, snapshot.Total, svc.cfg.Currency)
	link := whatsapp.Link(svc.cfg.Number, message)
	logger.Info().Msg("built whatsapp link")

	logger = logger.With().Str(log.KeyProcess, "clearing cart").Logger()
	logger.Info().Msg("clearing cart")
	cart.Clear(c)
	logger.Info().Msg("cleared cart")

	return response.Checkout{
		OrderID:     order.ID,
		ShortID:     whatsapp.ShortOrderId(order.ID),
		Total:       snapshot.Total,
		WhatsappUrl: link,
		Message:     message,
	}, nil
}

func (svc *CheckoutService) FindOrderById(
	c context.Context,
	orderId uuid.UUID,
) (response.Order, error) {
	c, span := otel.Tracer.Start(c, "CheckoutService FindOrderById")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CheckoutService FindOrderById").
		Str(log.KeyOrderID, orderId.String()).
		Logger()

	order, err := svc.orders.FindOrderById(c, orderId)
	if err != nil {
		err = fmt.Errorf("failed finding orderId=%s with error=%w", orderId.String(), err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}

	items, err := svc.orders.FindOrderItemsByOrderId(c, orderId)
	if err != nil {
		err = fmt.Errorf(
			"failed finding order items for orderId=%s with error=%w",
			orderId.String(),
			err,
		)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}

	responseItems := make([]response.OrderItem, len(items))
	for i, item := range items {
		responseItems[i] = response.OrderItem{
			ID:          item.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			Price:       decimal.NewFromBigInt(item.Price.Int, item.Price.Exp),
		}
	}
	return response.Order{
		ID:           order.ID,
		CustomerName: order.CustomerName,
		TotalAmount:  decimal.NewFromBigInt(order.TotalAmount.Int, order.TotalAmount.Exp),
		Status:       order.Status,
		Items:        responseItems,
		CreatedAt:    order.CreatedAt.Time,
		UpdatedAt:    order.UpdatedAt.Time,
	}, nil
}
