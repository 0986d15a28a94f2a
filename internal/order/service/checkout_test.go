package service

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raditia/gerai/cart/pkg/store"
	"github.com/raditia/gerai/internal/config"
	commonErrors "github.com/raditia/gerai/internal/errors"
	"github.com/raditia/gerai/internal/pricing"
	"github.com/raditia/gerai/internal/repository"
	"github.com/raditia/gerai/order/pkg/request"
)

type stubOrders struct {
	mu        sync.Mutex
	insertErr error
	itemsErr  error
	orders    []repository.InsertOrderParams
	items     [][]repository.InsertOrderItemsParams
	started   chan struct{}
	release   chan struct{}
}

func (s *stubOrders) InsertOrder(
	_ context.Context,
	arg repository.InsertOrderParams,
) (repository.Order, error) {
	s.mu.Lock()
	started := s.started
	s.started = nil
	release := s.release
	s.mu.Unlock()
	if started != nil {
		close(started)
	}
	if release != nil {
		<-release
	}
	if s.insertErr != nil {
		return repository.Order{}, s.insertErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders = append(s.orders, arg)
	return repository.Order{
		ID:           uuid.New(),
		CustomerName: arg.CustomerName,
		TotalAmount:  arg.TotalAmount,
		Status:       arg.Status,
	}, nil
}

func (s *stubOrders) InsertOrderItems(
	_ context.Context,
	arg []repository.InsertOrderItemsParams,
) (int64, error) {
	if s.itemsErr != nil {
		return 0, s.itemsErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, arg)
	return int64(len(arg)), nil
}

func (s *stubOrders) FindOrderById(
	_ context.Context,
	id uuid.UUID,
) (repository.Order, error) {
	return repository.Order{ID: id, TotalAmount: pgtype.Numeric{Valid: true}}, nil
}

func (s *stubOrders) FindOrderItemsByOrderId(
	_ context.Context,
	_ uuid.UUID,
) ([]repository.OrderItem, error) {
	return []repository.OrderItem{}, nil
}

func seededCarts(t *testing.T, sessionId string) *store.Manager {
	t.Helper()
	carts := store.NewManager(nil)
	cart := carts.Session(sessionId)
	cart.Add(context.Background(), store.Line{
		ProductID: uuid.New(),
		Name:      "Kopi Susu",
		Price:     pricing.NewPrice(decimal.RequireFromString("18000")),
		Quantity:  2,
	})
	cart.Add(context.Background(), store.Line{
		ProductID: uuid.New(),
		Name:      "Roti Bakar",
		Price:     pricing.NewPrice(decimal.RequireFromString("12500")),
		Quantity:  1,
	})
	return carts
}

func whatsappConfig() config.Whatsapp {
	return config.Whatsapp{Number: "6281234567890", Currency: "Rp"}
}

func TestCheckoutCreatesOrderAndClearsCart(t *testing.T) {
	t.Parallel()
	c := context.Background()
	carts := seededCarts(t, "session-a")
	stub := &stubOrders{}
	svc := NewCheckoutService(stub, carts, whatsappConfig())

	result, err := svc.Checkout(c, "session-a", request.Checkout{CustomerName: "Raka"})

	require.NoError(t, err)
	require.Len(t, stub.orders, 1)
	assert.Equal(t, "Raka", stub.orders[0].CustomerName)
	assert.Equal(t, "pending", stub.orders[0].Status)

	require.Len(t, stub.items, 1)
	require.Len(t, stub.items[0], 2)
	for _, item := range stub.items[0] {
		assert.NotEqual(t, uuid.Nil, item.ID)
	}

	assert.True(t, decimal.RequireFromString("48500").Equal(result.Total))
	require.True(t, strings.HasPrefix(result.WhatsappUrl, "https://wa.me/6281234567890?"))
	parsed, err := url.Parse(result.WhatsappUrl)
	require.NoError(t, err)
	assert.Contains(t, parsed.Query().Get("text"), "Kopi Susu (x2)")

	snapshot := carts.Session("session-a").Snapshot(c)
	assert.Empty(t, snapshot.Items)
	assert.False(t, snapshot.DrawerOpen)
}

func TestCheckoutUsesPlaceholderCustomerName(t *testing.T) {
	t.Parallel()
	c := context.Background()
	carts := seededCarts(t, "session-a")
	stub := &stubOrders{}
	svc := NewCheckoutService(stub, carts, whatsappConfig())

	_, err := svc.Checkout(c, "session-a", request.Checkout{})

	require.NoError(t, err)
	require.Len(t, stub.orders, 1)
	assert.Equal(t, placeholderCustomerName, stub.orders[0].CustomerName)
}

func TestCheckoutEmptyCart(t *testing.T) {
	t.Parallel()
	c := context.Background()
	carts := store.NewManager(nil)
	stub := &stubOrders{}
	svc := NewCheckoutService(stub, carts, whatsappConfig())

	_, err := svc.Checkout(c, "session-a", request.Checkout{})

	assert.ErrorIs(t, err, commonErrors.ErrEmptyCart)
	assert.Empty(t, stub.orders)
	assert.Empty(t, stub.items)
}

func TestCheckoutRejectsConcurrentInvocation(t *testing.T) {
	t.Parallel()
	c := context.Background()
	carts := seededCarts(t, "session-a")
	started := make(chan struct{})
	release := make(chan struct{})
	stub := &stubOrders{started: started, release: release}
	svc := NewCheckoutService(stub, carts, whatsappConfig())

	firstDone := make(chan error, 1)
	go func() {
		_, err := svc.Checkout(c, "session-a", request.Checkout{})
		firstDone <- err
	}()

	select {
	case <-started:
	case <-time.After(5 * time.Second):
		t.Fatal("first checkout never reached the order insert")
	}

	_, err := svc.Checkout(c, "session-a", request.Checkout{})
	assert.ErrorIs(t, err, commonErrors.ErrCheckoutInFlight)

	close(release)
	require.NoError(t, <-firstDone)
	assert.Len(t, stub.orders, 1)
}

func TestCheckoutOrderInsertFailureKeepsCart(t *testing.T) {
	t.Parallel()
	c := context.Background()
	carts := seededCarts(t, "session-a")
	stub := &stubOrders{insertErr: errors.New("connection reset")}
	svc := NewCheckoutService(stub, carts, whatsappConfig())

	_, err := svc.Checkout(c, "session-a", request.Checkout{})

	require.Error(t, err)
	assert.Empty(t, stub.items)
	assert.Len(t, carts.Session("session-a").Snapshot(c).Items, 2)
}

func TestCheckoutItemInsertFailureKeepsCartAndRetryCreatesSecondOrder(t *testing.T) {
	t.Parallel()
	c := context.Background()
	carts := seededCarts(t, "session-a")
	stub := &stubOrders{itemsErr: errors.New("connection reset")}
	svc := NewCheckoutService(stub, carts, whatsappConfig())

	_, err := svc.Checkout(c, "session-a", request.Checkout{})
	require.Error(t, err)
	assert.Len(t, stub.orders, 1)
	assert.Len(t, carts.Session("session-a").Snapshot(c).Items, 2)

	stub.itemsErr = nil
	_, err = svc.Checkout(c, "session-a", request.Checkout{})
	require.NoError(t, err)
	assert.Len(t, stub.orders, 2)
	assert.Empty(t, carts.Session("session-a").Snapshot(c).Items)
}
