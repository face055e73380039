package customer

import (
	"context"
	"sync"

	"waybill/internal/registry/models"
	"waybill/pkg/platform/sentinel"
)

// InMemory stores customers in insertion order with a name set as the
// existence index.
type InMemory struct {
	mu        sync.RWMutex
	customers []*models.Customer
	byName    map[string]struct{}
}

func NewInMemory() *InMemory {
	return &InMemory{byName: make(map[string]struct{})}
}

// CreateIfNameAvailable appends the customer unless the name is already
// registered. On conflict it returns sentinel.ErrAlreadyUsed without
// mutating anything.
func (s *InMemory) CreateIfNameAvailable(_ context.Context, c *models.Customer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byName[c.Name]; exists {
		return sentinel.ErrAlreadyUsed
	}
	s.customers = append(s.customers, c)
	s.byName[c.Name] = struct{}{}
	return nil
}

// Exists reports whether a customer with the given name is registered.
func (s *InMemory) Exists(_ context.Context, name string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.byName[name]
	return ok, nil
}

// List returns the customers in insertion order.
func (s *InMemory) List(_ context.Context) ([]*models.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]*models.Customer{}, s.customers...), nil
}
