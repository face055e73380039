package driver

import (
	"context"
	"sync"

	"waybill/internal/registry/models"
	"waybill/pkg/platform/sentinel"
)

// InMemory stores drivers in insertion order with a name set as the
// existence index. Reads and writes are serialized by the mutex, so a
// creation is atomic: the existence check and the append happen under one
// lock.
type InMemory struct {
	mu      sync.RWMutex
	drivers []*models.Driver
	byName  map[string]struct{}
}

func NewInMemory() *InMemory {
	return &InMemory{byName: make(map[string]struct{})}
}

// CreateIfNameAvailable appends the driver unless the name is already
// registered, in which case it returns sentinel.ErrAlreadyUsed and leaves
// the collection untouched.
func (s *InMemory) CreateIfNameAvailable(_ context.Context, d *models.Driver) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byName[d.Name]; exists {
		return sentinel.ErrAlreadyUsed
	}
	s.drivers = append(s.drivers, d)
	s.byName[d.Name] = struct{}{}
	return nil
}

// Exists reports whether a driver with the given name is registered.
func (s *InMemory) Exists(_ context.Context, name string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.byName[name]
	return ok, nil
}

// List returns the drivers in insertion order. The returned slice is a
// copy; record pointers are shared but records are never mutated.
func (s *InMemory) List(_ context.Context) ([]*models.Driver, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]*models.Driver{}, s.drivers...), nil
}
