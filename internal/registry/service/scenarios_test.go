package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"waybill/internal/registry/models"
	"waybill/internal/registry/service"
	customerstore "waybill/internal/registry/store/customer"
	driverstore "waybill/internal/registry/store/driver"
	orderstore "waybill/internal/registry/store/order"
	shipmentstore "waybill/internal/registry/store/shipment"
	dErrors "waybill/pkg/domain-errors"
	"waybill/pkg/requestcontext"
	"waybill/pkg/testutil"
)

// TestDispatchDay walks a registry through a typical dispatch day end to
// end: drivers and customers first, then orders and a shipment referencing
// them, with bad requests interleaved.
func TestDispatchDay(t *testing.T) {
	svc := service.New(
		driverstore.NewInMemory(),
		customerstore.NewInMemory(),
		orderstore.NewInMemory(),
		shipmentstore.NewInMemory(),
	)
	now := time.Date(2026, 8, 29, 8, 30, 0, 0, time.UTC)
	ctx := requestcontext.WithTime(context.Background(), now)

	testutil.Given(t, "a registered driver and customer", func(t *testing.T) {
		_, err := svc.CreateDriver(ctx, "Dan", "CAR-9")
		require.NoError(t, err)
		_, err = svc.CreateCustomer(ctx, "Eve", "1 Rd", "555-0200")
		require.NoError(t, err)
	})

	testutil.When(t, "an order and a shipment reference them", func(t *testing.T) {
		_, err := svc.CreateOrder(ctx, &models.CreateOrderRequest{
			OrderNumber: 1, OrderDate: now, Priority: "high",
			CustomerName: "Eve", CustomerAddress: "1 Rd",
		})
		require.NoError(t, err)

		sh, err := svc.CreateShipment(ctx, &models.CreateShipmentRequest{
			ShipmentNumber: 100, DriverName: "Dan", Receivers: []string{"Eve"},
			Origins: "X", Destinations: "Y", TrackingNumber: "TRK1", Weight: 50,
		})
		require.NoError(t, err)
		require.Equal(t, models.StatusPending, sh.Status)
	})

	testutil.Then(t, "dangling references and duplicates are rejected without side effects", func(t *testing.T) {
		_, err := svc.CreateOrder(ctx, &models.CreateOrderRequest{
			OrderNumber: 2, OrderDate: now, Priority: "low",
			CustomerName: "Carol", CustomerAddress: "9 Ave",
		})
		require.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))

		_, err = svc.CreateShipment(ctx, &models.CreateShipmentRequest{
			ShipmentNumber: 101, DriverName: "Dan",
			Receivers: []string{"Eve", "Frank"}, TrackingNumber: "TRK2", Weight: 10,
		})
		require.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))

		_, err = svc.CreateDriver(ctx, "Dan", "CAR-2")
		require.True(t, dErrors.HasCode(err, dErrors.CodeConflict))

		orders, err := svc.ListOrders(ctx)
		require.NoError(t, err)
		require.Len(t, orders, 1)

		shipments, err := svc.ListShipments(ctx)
		require.NoError(t, err)
		require.Len(t, shipments, 1)
	})
}
