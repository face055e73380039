package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"waybill/internal/registry/models"
	"waybill/internal/notify"
	dErrors "waybill/pkg/domain-errors"
	"waybill/pkg/requestcontext"
)

// CreateShipment registers a shipment. The driver existence check runs
// before any receiver check; receivers are validated in input order and the
// first unknown name rejects the whole request. Nothing is appended unless
// every check passes, so a rejection never leaves a partial shipment.
func (s *Service) CreateShipment(ctx context.Context, req *models.CreateShipmentRequest) (*models.Shipment, error) {
	ctx, span := s.tracer.Start(ctx, "registry.CreateShipment")
	defer span.End()
	start := time.Now()
	defer s.observe(start)

	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, s.reject("shipment", err)
	}

	exists, err := s.drivers.Exists(ctx, req.DriverName)
	if err != nil {
		return nil, s.reject("shipment",
			dErrors.Wrap(err, dErrors.CodeInternal, "failed to check driver existence"))
	}
	if !exists {
		return nil, s.reject("shipment",
			dErrors.Newf(dErrors.CodeNotFound, "unknown driver %q", req.DriverName))
	}

	for _, receiver := range req.Receivers {
		exists, err := s.customers.Exists(ctx, receiver)
		if err != nil {
			return nil, s.reject("shipment",
				dErrors.Wrap(err, dErrors.CodeInternal, "failed to check receiver existence"))
		}
		if !exists {
			return nil, s.reject("shipment",
				dErrors.Newf(dErrors.CodeNotFound, "unknown receiver %q", receiver))
		}
	}

	sh := models.NewShipment(uuid.New(), req, requestcontext.Now(ctx))
	if err := s.shipments.Append(ctx, sh); err != nil {
		return nil, s.reject("shipment",
			dErrors.Wrap(err, dErrors.CodeInternal, "failed to create shipment"))
	}

	s.created("shipment")
	s.emit(ctx, notify.KindShipmentCreated, map[string]string{
		"shipment_number": fmt.Sprintf("%d", sh.ShipmentNumber),
		"driver_name":     sh.DriverName,
		"receivers":       strings.Join(sh.Receivers, ","),
		"tracking_number": sh.TrackingNumber,
		"status":          string(sh.Status),
	})
	return sh, nil
}

// ListShipments returns all shipments in registration order.
func (s *Service) ListShipments(ctx context.Context) ([]*models.Shipment, error) {
	shipments, err := s.shipments.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list shipments")
	}
	return shipments, nil
}
