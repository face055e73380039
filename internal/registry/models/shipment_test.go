package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestShipmentStatusIsValid(t *testing.T) {
	for _, status := range []ShipmentStatus{StatusPending, StatusInTransit, StatusDelivered, StatusReturned} {
		assert.True(t, status.IsValid(), status)
	}
	assert.False(t, ShipmentStatus("Lost").IsValid())
	assert.False(t, ShipmentStatus("").IsValid())
}

func TestNewShipment(t *testing.T) {
	req := &CreateShipmentRequest{
		ShipmentNumber: 100,
		DriverName:     "Dan",
		Receivers:      []string{"Eve", "Bob"},
		Weight:         50,
	}
	sh := NewShipment(uuid.New(), req, now)

	assert.Equal(t, StatusPending, sh.Status, "Pending is the only constructor-reachable state")
	assert.Equal(t, now, sh.CreatedAt)
	assert.Equal(t, now, sh.UpdatedAt)

	// The stored receivers must be insulated from caller mutation.
	req.Receivers[0] = "Mallory"
	assert.Equal(t, []string{"Eve", "Bob"}, sh.Receivers)
}
