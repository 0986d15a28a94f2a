package store

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/raditia/gerai/internal/pricing"
)

// Line is a single cart entry. Lines are keyed by product id; adding the same
// product again raises the quantity instead of appending a duplicate line.
type Line struct {
	ProductID uuid.UUID     `json:"product_id"`
	Name      string        `json:"name"`
	ImageUrl  string        `json:"image_url"`
	Price     pricing.Price `json:"price"`
	Quantity  int32         `json:"quantity"`
}

// Snapshot is an immutable view of a cart handed to listeners and controllers.
// Count is the summed quantity across lines, Total the summed price*quantity
// where an unparsable price contributes zero.
type Snapshot struct {
	Items      []Line          `json:"items"`
	Count      int32           `json:"count"`
	Total      decimal.Decimal `json:"total"`
	DrawerOpen bool            `json:"drawer_open"`
}

// Persister saves and loads a session's lines. Load returning no lines and no
// error means the session has no saved cart; a corrupt payload is reported the
// same way so a broken save can never brick a session.
type Persister interface {
	Save(c context.Context, sessionId string, lines []Line) error
	Load(c context.Context, sessionId string) ([]Line, error)
}

// Listener receives a snapshot after every mutation.
type Listener func(Snapshot)

// Store holds one session's cart. All mutations persist best-effort through
// the Persister: a failed save keeps the in-memory state authoritative and is
// surfaced through OnSaveError rather than failing the mutation.
type Store struct {
	mu          sync.Mutex
	sessionId   string
	order       []uuid.UUID
	lines       map[uuid.UUID]Line
	drawerOpen  bool
	loaded      bool
	persister   Persister
	listeners   map[int]Listener
	nextId      int
	OnSaveError func(sessionId string, err error)
}

func newStore(sessionId string, persister Persister) *Store {
	return &Store{
		sessionId: sessionId,
		lines:     map[uuid.UUID]Line{},
		persister: persister,
		listeners: map[int]Listener{},
	}
}

// load pulls the saved lines once per store lifetime.
func (s *Store) load(c context.Context) {
	if s.loaded {
		return
	}
	s.loaded = true
	if s.persister == nil {
		return
	}
	lines, err := s.persister.Load(c, s.sessionId)
	if err != nil {
		if s.OnSaveError != nil {
			s.OnSaveError(s.sessionId, err)
		}
		return
	}
	for _, line := range lines {
		if line.Quantity <= 0 {
			continue
		}
		if _, ok := s.lines[line.ProductID]; !ok {
			s.order = append(s.order, line.ProductID)
		}
		s.lines[line.ProductID] = line
	}
}

func (s *Store) persist(c context.Context) {
	if s.persister == nil {
		return
	}
	if err := s.persister.Save(c, s.sessionId, s.snapshotLocked().Items); err != nil {
		if s.OnSaveError != nil {
			s.OnSaveError(s.sessionId, err)
		}
	}
}

func (s *Store) snapshotLocked() Snapshot {
	items := make([]Line, 0, len(s.order))
	count := int32(0)
	total := decimal.Zero
	for _, id := range s.order {
		line := s.lines[id]
		items = append(items, line)
		count += line.Quantity
		total = total.Add(line.Price.Decimal().Mul(decimal.NewFromInt32(line.Quantity)))
	}
	return Snapshot{Items: items, Count: count, Total: total, DrawerOpen: s.drawerOpen}
}

func (s *Store) notifyLocked() Snapshot {
	snapshot := s.snapshotLocked()
	for _, listener := range s.listeners {
		listener(snapshot)
	}
	return snapshot
}

// Add raises the quantity for an existing product or appends a new line, then
// opens the drawer.
func (s *Store) Add(c context.Context, line Line) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.load(c)
	if line.Quantity <= 0 {
		line.Quantity = 1
	}
	if existing, ok := s.lines[line.ProductID]; ok {
		existing.Quantity += line.Quantity
		s.lines[line.ProductID] = existing
	} else {
		s.order = append(s.order, line.ProductID)
		s.lines[line.ProductID] = line
	}
	s.drawerOpen = true
	s.persist(c)
	return s.notifyLocked()
}

// SetQuantity replaces a line's quantity. Zero or negative removes the line.
// Unknown products are a no-op.
func (s *Store) SetQuantity(c context.Context, productId uuid.UUID, quantity int32) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.load(c)
	line, ok := s.lines[productId]
	if !ok {
		return s.snapshotLocked()
	}
	if quantity <= 0 {
		s.removeLocked(productId)
	} else {
		line.Quantity = quantity
		s.lines[productId] = line
	}
	s.persist(c)
	return s.notifyLocked()
}

// Remove drops a line entirely. Unknown products are a no-op.
func (s *Store) Remove(c context.Context, productId uuid.UUID) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.load(c)
	if _, ok := s.lines[productId]; !ok {
		return s.snapshotLocked()
	}
	s.removeLocked(productId)
	s.persist(c)
	return s.notifyLocked()
}

func (s *Store) removeLocked(productId uuid.UUID) {
	delete(s.lines, productId)
	for i, id := range s.order {
		if id == productId {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// Clear empties the cart and closes the drawer.
func (s *Store) Clear(c context.Context) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.load(c)
	s.order = nil
	s.lines = map[uuid.UUID]Line{}
	s.drawerOpen = false
	s.persist(c)
	return s.notifyLocked()
}

// Merge folds another set of lines into the cart, summing quantities for
// products already present. Incoming lines keep their relative order after the
// existing ones.
func (s *Store) Merge(c context.Context, lines []Line) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.load(c)
	for _, line := range lines {
		if line.Quantity <= 0 {
			continue
		}
		if existing, ok := s.lines[line.ProductID]; ok {
			existing.Quantity += line.Quantity
			s.lines[line.ProductID] = existing
			continue
		}
		s.order = append(s.order, line.ProductID)
		s.lines[line.ProductID] = line
	}
	s.persist(c)
	return s.notifyLocked()
}

// OpenDrawer and CloseDrawer flip the drawer flag without touching lines.
func (s *Store) OpenDrawer() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drawerOpen = true
	return s.notifyLocked()
}

func (s *Store) CloseDrawer() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drawerOpen = false
	return s.notifyLocked()
}

// Snapshot returns the current view, loading the saved cart on first access.
func (s *Store) Snapshot(c context.Context) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.load(c)
	return s.snapshotLocked()
}

// Subscribe registers a listener for subsequent mutations and returns its
// unsubscribe func. Listeners are invoked under the store lock, so they must
// not call back into the store.
func (s *Store) Subscribe(listener Listener) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextId
	s.nextId++
	s.listeners[id] = listener
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}

// Manager hands out one Store per session id.
type Manager struct {
	mu          sync.Mutex
	stores      map[string]*Store
	persister   Persister
	OnSaveError func(sessionId string, err error)
}

func NewManager(persister Persister) *Manager {
	return &Manager{stores: map[string]*Store{}, persister: persister}
}

func (m *Manager) Session(sessionId string) *Store {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.stores[sessionId]; ok {
		return s
	}
	s := newStore(sessionId, m.persister)
	s.OnSaveError = m.OnSaveError
	m.stores[sessionId] = s
	return s
}
