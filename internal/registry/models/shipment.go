package models

import (
	"strings"
	"time"

	"github.com/google/uuid"

	dErrors "waybill/pkg/domain-errors"
)

// ShipmentStatus is a closed enumeration of shipment lifecycle states.
type ShipmentStatus string

const (
	StatusPending   ShipmentStatus = "Pending"
	StatusInTransit ShipmentStatus = "InTransit"
	StatusDelivered ShipmentStatus = "Delivered"
	StatusReturned  ShipmentStatus = "Returned"
)

// IsValid reports whether s is one of the four known states.
func (s ShipmentStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusInTransit, StatusDelivered, StatusReturned:
		return true
	}
	return false
}

// Shipment is a registered shipment handed to a driver for a set of
// customer receivers.
//
// Invariants:
//   - DriverName references a registered driver
//   - Every entry in Receivers references a registered customer
//   - Weight is non-negative
//   - Status is StatusPending at creation; the registry defines no
//     transition operations, so it never advances here. Lifecycle
//     management is a separate component.
//   - CreatedAt and UpdatedAt are both set to creation time and never
//     touched again by the registry
//
// ShipmentNumber is caller-supplied and not uniqueness-checked, matching
// the order-number behavior.
type Shipment struct {
	ID             uuid.UUID      `json:"id"`
	ShipmentNumber int64          `json:"shipment_number"`
	DriverName     string         `json:"driver_name"`
	Receivers      []string       `json:"receivers"`
	Origins        string         `json:"origins"`
	Destinations   string         `json:"destinations"`
	TrackingNumber string         `json:"tracking_number"`
	Weight         int64          `json:"weight"`
	Status         ShipmentStatus `json:"status"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

// CreateShipmentRequest carries caller input for shipment registration.
type CreateShipmentRequest struct {
	ShipmentNumber int64    `json:"shipment_number"`
	DriverName     string   `json:"driver_name"`
	Receivers      []string `json:"receivers"`
	Origins        string   `json:"origins"`
	Destinations   string   `json:"destinations"`
	TrackingNumber string   `json:"tracking_number"`
	Weight         int64    `json:"weight"`
}

// Normalize trims whitespace from the driver name and each receiver.
func (r *CreateShipmentRequest) Normalize() {
	r.DriverName = strings.TrimSpace(r.DriverName)
	for i, name := range r.Receivers {
		r.Receivers[i] = strings.TrimSpace(name)
	}
	r.TrackingNumber = strings.TrimSpace(r.TrackingNumber)
}

// Validate rejects input that can never pass the existence checks.
func (r *CreateShipmentRequest) Validate() error {
	if r.DriverName == "" {
		return dErrors.New(dErrors.CodeValidation, "driver_name is required")
	}
	if r.Weight < 0 {
		return dErrors.New(dErrors.CodeValidation, "weight cannot be negative")
	}
	return nil
}

// NewShipment constructs a Shipment from a validated request. Receivers are
// copied so later caller mutation cannot reach the stored record. Status
// starts at StatusPending, the only constructor-reachable state.
func NewShipment(id uuid.UUID, req *CreateShipmentRequest, now time.Time) *Shipment {
	receivers := make([]string, len(req.Receivers))
	copy(receivers, req.Receivers)

	return &Shipment{
		ID:             id,
		ShipmentNumber: req.ShipmentNumber,
		DriverName:     req.DriverName,
		Receivers:      receivers,
		Origins:        req.Origins,
		Destinations:   req.Destinations,
		TrackingNumber: req.TrackingNumber,
		Weight:         req.Weight,
		Status:         StatusPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}
