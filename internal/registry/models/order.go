package models

import (
	"strings"
	"time"

	"github.com/google/uuid"

	dErrors "waybill/pkg/domain-errors"
)

// Order is a registered customer order.
//
// OrderNumber is caller-supplied and deliberately not uniqueness-checked:
// duplicate order numbers are accepted. CustomerAddress is an informational
// copy taken at creation time and is not cross-checked against the
// customer's registered address.
type Order struct {
	ID              uuid.UUID `json:"id"`
	OrderNumber     int64     `json:"order_number"`
	OrderDate       time.Time `json:"order_date"`
	Priority        string    `json:"priority"`
	CustomerName    string    `json:"customer_name"`
	CustomerAddress string    `json:"customer_address"`
	CreatedAt       time.Time `json:"created_at"`
}

// CreateOrderRequest carries caller input for order registration.
type CreateOrderRequest struct {
	OrderNumber     int64     `json:"order_number"`
	OrderDate       time.Time `json:"order_date"`
	Priority        string    `json:"priority"`
	CustomerName    string    `json:"customer_name"`
	CustomerAddress string    `json:"customer_address"`
}

// Normalize trims whitespace from string fields.
func (r *CreateOrderRequest) Normalize() {
	r.Priority = strings.TrimSpace(r.Priority)
	r.CustomerName = strings.TrimSpace(r.CustomerName)
	r.CustomerAddress = strings.TrimSpace(r.CustomerAddress)
}

// Validate rejects input that can never pass the existence check. Whether
// the customer actually exists is the service's job.
func (r *CreateOrderRequest) Validate() error {
	if r.CustomerName == "" {
		return dErrors.New(dErrors.CodeValidation, "customer_name is required")
	}
	return nil
}

// NewOrder constructs an Order from a validated request.
func NewOrder(id uuid.UUID, req *CreateOrderRequest, now time.Time) *Order {
	return &Order{
		ID:              id,
		OrderNumber:     req.OrderNumber,
		OrderDate:       req.OrderDate,
		Priority:        req.Priority,
		CustomerName:    req.CustomerName,
		CustomerAddress: req.CustomerAddress,
		CreatedAt:       now,
	}
}
