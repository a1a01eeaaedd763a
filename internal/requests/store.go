package requests

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// Mutator applies a partial update to a record inside the store's critical
// section. Returning an error aborts the update and leaves the record
// untouched; no intermediate state is observable to any reader.
type Mutator func(req *TradeRequest) error

// Store is the authoritative holder of trade request records. It performs no
// business validation; that is the lifecycle service's responsibility.
type Store interface {
	Get(ctx context.Context, id uuid.UUID) (*TradeRequest, error)
	List(ctx context.Context) ([]*TradeRequest, error)
	Insert(ctx context.Context, req *TradeRequest) error
	Update(ctx context.Context, id uuid.UUID, mutate Mutator) (*TradeRequest, error)
	Remove(ctx context.Context, id uuid.UUID) error
}

// MemoryStore is a mutex-guarded in-memory Store preserving insertion order.
// It backs tests and development mode.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[uuid.UUID]*TradeRequest
	order   []uuid.UUID
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records: make(map[uuid.UUID]*TradeRequest),
	}
}

func (s *MemoryStore) Get(ctx context.Context, id uuid.UUID) (*TradeRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	req, ok := s.records[id]
	if !ok {
		return nil, &NotFoundError{ID: id}
	}
	cp := *req
	return &cp, nil
}

func (s *MemoryStore) List(ctx context.Context) ([]*TradeRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*TradeRequest, 0, len(s.order))
	for _, id := range s.order {
		if req, ok := s.records[id]; ok {
			cp := *req
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (s *MemoryStore) Insert(ctx context.Context, req *TradeRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *req
	s.records[cp.ID] = &cp
	s.order = append(s.order, cp.ID)
	return nil
}

// Update applies the mutator atomically under the store lock. Concurrent
// updates against the same id cannot interleave; a mutator error leaves the
// stored record unchanged.
func (s *MemoryStore) Update(ctx context.Context, id uuid.UUID, mutate Mutator) (*TradeRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	req, ok := s.records[id]
	if !ok {
		return nil, &NotFoundError{ID: id}
	}

	// Mutate a scratch copy so a failed mutator observes no partial write.
	scratch := *req
	if err := mutate(&scratch); err != nil {
		return nil, err
	}
	s.records[id] = &scratch

	cp := scratch
	return &cp, nil
}

func (s *MemoryStore) Remove(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[id]; !ok {
		return &NotFoundError{ID: id}
	}
	delete(s.records, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}
