package driver

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"waybill/internal/registry/models"
	"waybill/pkg/platform/sentinel"
)

type DriverStoreSuite struct {
	suite.Suite
	store *InMemory
	ctx   context.Context
}

func (s *DriverStoreSuite) SetupTest() {
	s.store = NewInMemory()
	s.ctx = context.Background()
}

// Each s.Run subtest gets a fresh store.
func (s *DriverStoreSuite) SetupSubTest() {
	s.SetupTest()
}

func TestDriverStoreSuite(t *testing.T) {
	suite.Run(t, new(DriverStoreSuite))
}

func (s *DriverStoreSuite) newDriver(name string) *models.Driver {
	return &models.Driver{
		ID:        uuid.New(),
		Name:      name,
		CarID:     "CAR-1",
		CreatedAt: time.Now(),
	}
}

func (s *DriverStoreSuite) TestCreationAndExistence() {
	s.Run("creates and indexes by name", func() {
		s.Require().NoError(s.store.CreateIfNameAvailable(s.ctx, s.newDriver("Alice")))

		exists, err := s.store.Exists(s.ctx, "Alice")
		s.Require().NoError(err)
		s.True(exists)
	})

	s.Run("unknown name does not exist", func() {
		exists, err := s.store.Exists(s.ctx, "Nobody")
		s.Require().NoError(err)
		s.False(exists)
	})

	s.Run("name matching is exact", func() {
		s.Require().NoError(s.store.CreateIfNameAvailable(s.ctx, s.newDriver("Alice")))

		exists, err := s.store.Exists(s.ctx, "alice")
		s.Require().NoError(err)
		s.False(exists)
	})
}

func (s *DriverStoreSuite) TestNameUniqueness() {
	s.Run("rejects duplicate name without mutating", func() {
		s.Require().NoError(s.store.CreateIfNameAvailable(s.ctx, s.newDriver("Alice")))

		err := s.store.CreateIfNameAvailable(s.ctx, s.newDriver("Alice"))
		s.Require().ErrorIs(err, sentinel.ErrAlreadyUsed)

		drivers, err := s.store.List(s.ctx)
		s.Require().NoError(err)
		s.Len(drivers, 1)
	})
}

func (s *DriverStoreSuite) TestListOrder() {
	names := []string{"Carol", "Alice", "Bob"}
	for _, name := range names {
		s.Require().NoError(s.store.CreateIfNameAvailable(s.ctx, s.newDriver(name)))
	}

	drivers, err := s.store.List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(drivers, 3)
	for i, name := range names {
		s.Equal(name, drivers[i].Name, "insertion order must be preserved")
	}
}
