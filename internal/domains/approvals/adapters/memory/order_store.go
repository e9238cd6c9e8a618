package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/ordermesh/approval-api/internal/domains/approvals/domain"
	"github.com/ordermesh/approval-api/internal/domains/approvals/ports"
)

var _ ports.OrderStore = (*OrderStore)(nil)

// OrderStore keeps orders in memory for tests and credential-less dev runs.
type OrderStore struct {
	mu          sync.RWMutex
	orders      map[int64]*domain.Order
	annotations map[int64][]domain.Annotation

	// UpdateErr, when set, is returned by UpdateOrder to simulate a
	// partial-write failure on the source platform.
	UpdateErr error
}

// NewOrderStore constructs an empty store.
func NewOrderStore() *OrderStore {
	return &OrderStore{
		orders:      map[int64]*domain.Order{},
		annotations: map[int64][]domain.Annotation{},
	}
}

// Seed inserts or replaces an order.
func (s *OrderStore) Seed(order *domain.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders[order.ID] = cloneOrder(order)
}

// GetOrder returns a copy of the stored order or ports.ErrNotFound.
func (s *OrderStore) GetOrder(_ context.Context, id int64) (*domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	order, ok := s.orders[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return cloneOrder(order), nil
}

// ListRecent returns up to limit orders, most recently created first.
func (s *OrderStore) ListRecent(_ context.Context, limit int) ([]*domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	orders := make([]*domain.Order, 0, len(s.orders))
	for _, order := range s.orders {
		orders = append(orders, cloneOrder(order))
	}
	sort.Slice(orders, func(i, j int) bool {
		if orders[i].CreatedAt.Equal(orders[j].CreatedAt) {
			return orders[i].ID > orders[j].ID
		}
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
	if limit > 0 && len(orders) > limit {
		orders = orders[:limit]
	}
	return orders, nil
}

// UpdateOrder applies a tag/annotation update to the stored order.
func (s *OrderStore) UpdateOrder(_ context.Context, update ports.OrderUpdate) error {
	if s.UpdateErr != nil {
		return s.UpdateErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	order, ok := s.orders[update.ID]
	if !ok {
		return ports.ErrNotFound
	}
	order.Tags = append([]string(nil), update.Tags...)
	s.annotations[update.ID] = append(s.annotations[update.ID], update.Annotations...)
	return nil
}

// Annotations returns the notes written to the order so far.
func (s *OrderStore) Annotations(id int64) []domain.Annotation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Annotation(nil), s.annotations[id]...)
}

func cloneOrder(order *domain.Order) *domain.Order {
	copy := *order
	copy.Tags = append([]string(nil), order.Tags...)
	copy.LineItems = append([]domain.LineItem(nil), order.LineItems...)
	if order.ShippingAddress != nil {
		addr := *order.ShippingAddress
		copy.ShippingAddress = &addr
	}
	return &copy
}
