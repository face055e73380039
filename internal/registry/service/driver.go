package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"waybill/internal/registry/models"
	"waybill/internal/notify"
	dErrors "waybill/pkg/domain-errors"
	"waybill/pkg/platform/sentinel"
	"waybill/pkg/requestcontext"
)

// CreateDriver registers a driver. The name must be non-empty and not yet
// registered; on success the record is appended and the name becomes part
// of the driver existence index.
func (s *Service) CreateDriver(ctx context.Context, name, carID string) (*models.Driver, error) {
	ctx, span := s.tracer.Start(ctx, "registry.CreateDriver")
	defer span.End()
	start := time.Now()
	defer s.observe(start)

	name = strings.TrimSpace(name)

	d, err := models.NewDriver(uuid.New(), name, carID, requestcontext.Now(ctx))
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeInvariantViolation) {
			return nil, s.reject("driver", dErrors.New(dErrors.CodeValidation, "name is required"))
		}
		return nil, s.reject("driver", err)
	}

	if err := s.drivers.CreateIfNameAvailable(ctx, d); err != nil {
		if errors.Is(err, sentinel.ErrAlreadyUsed) {
			return nil, s.reject("driver",
				dErrors.Newf(dErrors.CodeConflict, "driver %q is already registered", name))
		}
		return nil, s.reject("driver",
			dErrors.Wrap(err, dErrors.CodeInternal, "failed to create driver"))
	}

	s.created("driver")
	s.emit(ctx, notify.KindDriverCreated, map[string]string{
		"name":   d.Name,
		"car_id": d.CarID,
	})
	return d, nil
}

// ListDrivers returns all drivers in registration order.
func (s *Service) ListDrivers(ctx context.Context) ([]*models.Driver, error) {
	drivers, err := s.drivers.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list drivers")
	}
	return drivers, nil
}
