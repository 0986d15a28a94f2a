package store

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raditia/gerai/internal/pricing"
)

type fakePersister struct {
	saved   map[string][]Line
	saveErr error
	loadErr error
	loads   int
	saves   int
}

func newFakePersister() *fakePersister {
	return &fakePersister{saved: map[string][]Line{}}
}

func (p *fakePersister) Save(_ context.Context, sessionId string, lines []Line) error {
	p.saves++
	if p.saveErr != nil {
		return p.saveErr
	}
	copied := make([]Line, len(lines))
	copy(copied, lines)
	p.saved[sessionId] = copied
	return nil
}

func (p *fakePersister) Load(_ context.Context, sessionId string) ([]Line, error) {
	p.loads++
	if p.loadErr != nil {
		return nil, p.loadErr
	}
	return p.saved[sessionId], nil
}

func line(name string, price string, quantity int32) Line {
	return Line{
		ProductID: uuid.New(),
		Name:      name,
		Price:     pricing.NewPrice(decimal.RequireFromString(price)),
		Quantity:  quantity,
	}
}

func TestAddNewLineOpensDrawer(t *testing.T) {
	t.Parallel()
	c := context.Background()
	s := NewManager(newFakePersister()).Session("session-a")

	snapshot := s.Add(c, line("Kopi Susu", "18000", 2))

	require.Len(t, snapshot.Items, 1)
	assert.Equal(t, int32(2), snapshot.Count)
	assert.True(t, decimal.RequireFromString("36000").Equal(snapshot.Total))
	assert.True(t, snapshot.DrawerOpen)
}

func TestAddSameProductIncrementsQuantity(t *testing.T) {
	t.Parallel()
	c := context.Background()
	s := NewManager(newFakePersister()).Session("session-a")
	item := line("Kopi Susu", "18000", 1)

	s.Add(c, item)
	item.Quantity = 3
	snapshot := s.Add(c, item)

	require.Len(t, snapshot.Items, 1)
	assert.Equal(t, int32(4), snapshot.Items[0].Quantity)
	assert.Equal(t, int32(4), snapshot.Count)
}

func TestSetQuantity(t *testing.T) {
	t.Parallel()
	c := context.Background()
	s := NewManager(newFakePersister()).Session("session-a")
	roti := line("Roti Bakar", "10", 2)
	teh := line("Es Teh", "5", 1)
	s.Add(c, roti)
	s.Add(c, teh)
	require.True(t, decimal.RequireFromString("25").Equal(s.Snapshot(c).Total))

	tests := []struct {
		name          string
		productId     uuid.UUID
		quantity      int32
		expectedItems int
		expectedCount int32
		expectedTotal string
	}{
		{
			name:          "replaces quantity",
			productId:     roti.ProductID,
			quantity:      5,
			expectedItems: 2,
			expectedCount: 6,
			expectedTotal: "55",
		},
		{
			name:          "unknown product is a no-op",
			productId:     uuid.New(),
			quantity:      9,
			expectedItems: 2,
			expectedCount: 6,
			expectedTotal: "55",
		},
		{
			name:          "zero removes the line",
			productId:     roti.ProductID,
			quantity:      0,
			expectedItems: 1,
			expectedCount: 1,
			expectedTotal: "5",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snapshot := s.SetQuantity(c, tt.productId, tt.quantity)
			assert.Len(t, snapshot.Items, tt.expectedItems)
			assert.Equal(t, tt.expectedCount, snapshot.Count)
			assert.True(
				t,
				decimal.RequireFromString(tt.expectedTotal).Equal(snapshot.Total),
				"expected total=%s got=%s", tt.expectedTotal, snapshot.Total,
			)
		})
	}
}

func TestTotalUnchangedByAddOrder(t *testing.T) {
	t.Parallel()
	c := context.Background()
	manager := NewManager(newFakePersister())
	teh := line("Es Teh", "5000", 1)
	nasi := line("Nasi Goreng", "25000", 1)
	sate := line("Sate Ayam", "30000", 3)

	forward := manager.Session("session-a")
	forward.Add(c, teh)
	forward.Add(c, teh)
	forward.Add(c, nasi)
	forward.Add(c, sate)

	// Same multiset, reversed and with the duplicate add interleaved.
	reversed := manager.Session("session-b")
	reversed.Add(c, sate)
	reversed.Add(c, teh)
	reversed.Add(c, nasi)
	reversed.Add(c, teh)

	forwardTotal := forward.Snapshot(c).Total
	reversedTotal := reversed.Snapshot(c).Total
	assert.True(t, forwardTotal.Equal(reversedTotal))
	assert.True(t, decimal.RequireFromString("125000").Equal(forwardTotal))
}

func TestRemoveKeepsInsertionOrder(t *testing.T) {
	t.Parallel()
	c := context.Background()
	s := NewManager(newFakePersister()).Session("session-a")
	first := line("Es Teh", "5000", 1)
	second := line("Nasi Goreng", "25000", 1)
	third := line("Sate Ayam", "30000", 1)
	s.Add(c, first)
	s.Add(c, second)
	s.Add(c, third)

	snapshot := s.Remove(c, second.ProductID)

	require.Len(t, snapshot.Items, 2)
	assert.Equal(t, first.ProductID, snapshot.Items[0].ProductID)
	assert.Equal(t, third.ProductID, snapshot.Items[1].ProductID)
}

func TestClearEmptiesCartAndClosesDrawer(t *testing.T) {
	t.Parallel()
	c := context.Background()
	s := NewManager(newFakePersister()).Session("session-a")
	s.Add(c, line("Es Teh", "5000", 2))
	require.True(t, s.Snapshot(c).DrawerOpen)

	snapshot := s.Clear(c)

	assert.Empty(t, snapshot.Items)
	assert.Equal(t, int32(0), snapshot.Count)
	assert.True(t, decimal.Zero.Equal(snapshot.Total))
	assert.False(t, snapshot.DrawerOpen)
}

func TestMergeSumsQuantities(t *testing.T) {
	t.Parallel()
	c := context.Background()
	s := NewManager(newFakePersister()).Session("session-a")
	existing := line("Es Teh", "5000", 2)
	s.Add(c, existing)

	incomingSame := existing
	incomingSame.Quantity = 3
	incomingNew := line("Nasi Goreng", "25000", 1)
	snapshot := s.Merge(c, []Line{incomingSame, incomingNew})

	require.Len(t, snapshot.Items, 2)
	assert.Equal(t, int32(5), snapshot.Items[0].Quantity)
	assert.Equal(t, incomingNew.ProductID, snapshot.Items[1].ProductID)
	assert.Equal(t, int32(6), snapshot.Count)
}

func TestTotalTreatsInvalidPriceAsZero(t *testing.T) {
	t.Parallel()
	c := context.Background()
	s := NewManager(newFakePersister()).Session("session-a")
	s.Add(c, line("Es Teh", "5000", 2))
	s.Add(c, Line{ProductID: uuid.New(), Name: "Misconfigured", Quantity: 3})

	snapshot := s.Snapshot(c)

	assert.Equal(t, int32(5), snapshot.Count)
	assert.True(t, decimal.RequireFromString("10000").Equal(snapshot.Total))
}

func TestSubscribeAndUnsubscribe(t *testing.T) {
	t.Parallel()
	c := context.Background()
	s := NewManager(newFakePersister()).Session("session-a")

	received := []Snapshot{}
	unsubscribe := s.Subscribe(func(snapshot Snapshot) {
		received = append(received, snapshot)
	})

	s.Add(c, line("Es Teh", "5000", 1))
	require.Len(t, received, 1)
	assert.Equal(t, int32(1), received[0].Count)

	unsubscribe()
	s.Add(c, line("Nasi Goreng", "25000", 1))
	assert.Len(t, received, 1)
}

func TestLoadsSavedCartOnFirstAccess(t *testing.T) {
	t.Parallel()
	c := context.Background()
	persister := newFakePersister()
	saved := line("Es Teh", "5000", 2)
	persister.saved["session-a"] = []Line{saved}

	s := NewManager(persister).Session("session-a")
	snapshot := s.Snapshot(c)

	require.Len(t, snapshot.Items, 1)
	assert.Equal(t, saved.ProductID, snapshot.Items[0].ProductID)
	assert.Equal(t, 1, persister.loads)

	s.Snapshot(c)
	assert.Equal(t, 1, persister.loads)
}

func TestMutationsPersistThroughPersister(t *testing.T) {
	t.Parallel()
	c := context.Background()
	persister := newFakePersister()
	s := NewManager(persister).Session("session-a")

	item := line("Es Teh", "5000", 2)
	s.Add(c, item)

	require.Len(t, persister.saved["session-a"], 1)
	assert.Equal(t, item.ProductID, persister.saved["session-a"][0].ProductID)

	s.Remove(c, item.ProductID)
	assert.Empty(t, persister.saved["session-a"])
}

func TestSaveErrorKeepsInMemoryState(t *testing.T) {
	t.Parallel()
	c := context.Background()
	persister := newFakePersister()
	persister.saveErr = errors.New("cache unavailable")

	manager := NewManager(persister)
	failures := 0
	manager.OnSaveError = func(string, error) { failures++ }
	s := manager.Session("session-a")

	snapshot := s.Add(c, line("Es Teh", "5000", 1))

	assert.Equal(t, int32(1), snapshot.Count)
	assert.Equal(t, 1, failures)
}

func TestManagerReturnsSameStorePerSession(t *testing.T) {
	t.Parallel()
	manager := NewManager(newFakePersister())
	assert.Same(t, manager.Session("session-a"), manager.Session("session-a"))
	assert.NotSame(t, manager.Session("session-a"), manager.Session("session-b"))
}
