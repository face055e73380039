package models

import (
	"time"

	"github.com/google/uuid"

	dErrors "waybill/pkg/domain-errors"
)

// Driver is a registered vehicle operator. Name is the unique key; records
// are append-only and never mutated after creation.
type Driver struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CarID     string    `json:"car_id"`
	CreatedAt time.Time `json:"created_at"`
}

// NewDriver validates invariants and constructs a Driver. CarID is
// unrestricted; uniqueness of Name is enforced by the store, not here.
func NewDriver(id uuid.UUID, name, carID string, now time.Time) (*Driver, error) {
	if name == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "driver name cannot be empty")
	}
	return &Driver{
		ID:        id,
		Name:      name,
		CarID:     carID,
		CreatedAt: now,
	}, nil
}
