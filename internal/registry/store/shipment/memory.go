package shipment

import (
	"context"
	"sync"

	"waybill/internal/registry/models"
)

// InMemory stores shipments in insertion order. Shipment numbers carry no
// uniqueness constraint; referential checks against drivers and customers
// happen in the service.
type InMemory struct {
	mu        sync.RWMutex
	shipments []*models.Shipment
}

func NewInMemory() *InMemory {
	return &InMemory{}
}

// Append adds the shipment at the end of the collection.
func (s *InMemory) Append(_ context.Context, sh *models.Shipment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shipments = append(s.shipments, sh)
	return nil
}

// List returns the shipments in insertion order.
func (s *InMemory) List(_ context.Context) ([]*models.Shipment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]*models.Shipment{}, s.shipments...), nil
}
