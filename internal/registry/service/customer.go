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

// CreateCustomer registers a customer. All three fields must be non-empty
// and the name must not already be registered.
func (s *Service) CreateCustomer(ctx context.Context, name, address, phoneNumber string) (*models.Customer, error) {
	ctx, span := s.tracer.Start(ctx, "registry.CreateCustomer")
	defer span.End()
	start := time.Now()
	defer s.observe(start)

	name = strings.TrimSpace(name)
	address = strings.TrimSpace(address)
	phoneNumber = strings.TrimSpace(phoneNumber)

	c, err := models.NewCustomer(uuid.New(), name, address, phoneNumber, requestcontext.Now(ctx))
	if err != nil {
		// The constructor message names the offending field.
		if dErrors.HasCode(err, dErrors.CodeInvariantViolation) {
			return nil, s.reject("customer", dErrors.New(dErrors.CodeValidation, err.Error()))
		}
		return nil, s.reject("customer", err)
	}

	if err := s.customers.CreateIfNameAvailable(ctx, c); err != nil {
		if errors.Is(err, sentinel.ErrAlreadyUsed) {
			return nil, s.reject("customer",
				dErrors.Newf(dErrors.CodeConflict, "customer %q is already registered", name))
		}
		return nil, s.reject("customer",
			dErrors.Wrap(err, dErrors.CodeInternal, "failed to create customer"))
	}

	s.created("customer")
	s.emit(ctx, notify.KindCustomerCreated, map[string]string{
		"name":         c.Name,
		"address":      c.Address,
		"phone_number": c.PhoneNumber,
	})
	return c, nil
}

// ListCustomers returns all customers in registration order.
func (s *Service) ListCustomers(ctx context.Context) ([]*models.Customer, error) {
	customers, err := s.customers.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list customers")
	}
	return customers, nil
}
