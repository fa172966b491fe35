package memory

import (
	"context"
	"sync"

	id "benefitscout/pkg/domain"
	audit "benefitscout/pkg/platform/audit"
)

// DefaultCapacity bounds the store when no capacity option is given.
const DefaultCapacity = 10000

// InMemoryStore keeps the newest events up to its capacity. Once full, each
// append evicts the oldest event.
type InMemoryStore struct {
	mu       sync.RWMutex
	capacity int
	events   map[id.UserID][]audit.Event
	order    []audit.Event
}

type Option func(*InMemoryStore)

// WithCapacity sets how many events are retained. Non-positive values keep the default.
func WithCapacity(n int) Option {
	return func(s *InMemoryStore) {
		if n > 0 {
			s.capacity = n
		}
	}
}

func NewInMemoryStore(opts ...Option) *InMemoryStore {
	s := &InMemoryStore{
		capacity: DefaultCapacity,
		events:   make(map[id.UserID][]audit.Event),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *InMemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = make(map[id.UserID][]audit.Event)
	s.order = nil
}

func (s *InMemoryStore) Append(_ context.Context, event audit.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events[event.UserID] = append(s.events[event.UserID], event)
	s.order = append(s.order, event)
	for len(s.order) > s.capacity {
		s.evictOldest()
	}
	return nil
}

// evictOldest drops the head of the global order. Per-user slices are in
// append order too, so the same event is the head of its user's slice.
func (s *InMemoryStore) evictOldest() {
	oldest := s.order[0]
	s.order[0] = audit.Event{}
	s.order = s.order[1:]

	userEvents := s.events[oldest.UserID]
	if len(userEvents) <= 1 {
		delete(s.events, oldest.UserID)
		return
	}
	userEvents[0] = audit.Event{}
	s.events[oldest.UserID] = userEvents[1:]
}

func (s *InMemoryStore) ListByUser(_ context.Context, userID id.UserID) ([]audit.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]audit.Event{}, s.events[userID]...), nil
}

// ListRecent returns up to limit events in append order, oldest first.
func (s *InMemoryStore) ListRecent(_ context.Context, limit int) ([]audit.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	start := len(s.order) - limit
	if start < 0 || limit <= 0 {
		start = 0
	}
	return append([]audit.Event{}, s.order[start:]...), nil
}
