package items

import (
	"context"
	"sync"

	"github.com/jonboulle/clockwork"
)

// MemoryStore keeps items in process memory. Ids are sequential.
type MemoryStore struct {
	mu     sync.RWMutex
	clock  clockwork.Clock
	items  []Item
	nextID int64
}

// MemoryOption configures a MemoryStore.
type MemoryOption func(*MemoryStore)

// WithClock sets the clock used for created_at.
func WithClock(clock clockwork.Clock) MemoryOption {
	return func(s *MemoryStore) { s.clock = clock }
}

// NewMemoryStore returns a store holding Seed.
func NewMemoryStore(opts ...MemoryOption) *MemoryStore {
	s := &MemoryStore{
		clock: clockwork.NewRealClock(),
		items: Seed(),
	}
	for _, it := range s.items {
		if it.ID >= s.nextID {
			s.nextID = it.ID + 1
		}
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *MemoryStore) List(ctx context.Context) ([]Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Item(nil), s.items...), nil
}

func (s *MemoryStore) Get(ctx context.Context, id int64) (Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, it := range s.items {
		if it.ID == id {
			return it, nil
		}
	}
	return Item{}, notFound(id)
}

func (s *MemoryStore) Create(ctx context.Context, in NewItem) (Item, error) {
	if err := in.Validate(); err != nil {
		return Item{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	it := Item{
		ID:          s.nextID,
		Name:        in.Name,
		Description: in.Description,
		CreatedAt:   formatTime(s.clock.Now()),
	}
	s.items = append(s.items, it)
	s.nextID++
	return it, nil
}

func (s *MemoryStore) Ping(ctx context.Context) error {
	return nil
}
