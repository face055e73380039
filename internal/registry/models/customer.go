package models

import (
	"time"

	"github.com/google/uuid"

	dErrors "waybill/pkg/domain-errors"
)

// Customer is a registered order/shipment recipient.
//
// Invariants:
//   - Name, Address, and PhoneNumber are non-empty
//   - Name is unique for the lifetime of the system (store-enforced)
//   - Records are append-only; no field changes after creation
type Customer struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Address     string    `json:"address"`
	PhoneNumber string    `json:"phone_number"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewCustomer validates invariants and constructs a Customer. The error
// message names the offending field so transports can surface it directly.
func NewCustomer(id uuid.UUID, name, address, phoneNumber string, now time.Time) (*Customer, error) {
	if name == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "customer name cannot be empty")
	}
	if address == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "customer address cannot be empty")
	}
	if phoneNumber == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "customer phone_number cannot be empty")
	}
	return &Customer{
		ID:          id,
		Name:        name,
		Address:     address,
		PhoneNumber: phoneNumber,
		CreatedAt:   now,
	}, nil
}
