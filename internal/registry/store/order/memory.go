package order

import (
	"context"
	"sync"

	"waybill/internal/registry/models"
)

// InMemory stores orders in insertion order. Orders carry no unique key
// (duplicate order numbers are accepted), so there is no existence index
// here; referential checks against customers happen in the service.
type InMemory struct {
	mu     sync.RWMutex
	orders []*models.Order
}

func NewInMemory() *InMemory {
	return &InMemory{}
}

// Append adds the order at the end of the collection.
func (s *InMemory) Append(_ context.Context, o *models.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders = append(s.orders, o)
	return nil
}

// List returns the orders in insertion order.
func (s *InMemory) List(_ context.Context) ([]*models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]*models.Order{}, s.orders...), nil
}
