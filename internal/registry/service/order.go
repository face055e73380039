package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"waybill/internal/registry/models"
	"waybill/internal/notify"
	dErrors "waybill/pkg/domain-errors"
	"waybill/pkg/requestcontext"
)

// CreateOrder registers an order for an existing customer. Order numbers
// are not uniqueness-checked; duplicates are accepted.
func (s *Service) CreateOrder(ctx context.Context, req *models.CreateOrderRequest) (*models.Order, error) {
	ctx, span := s.tracer.Start(ctx, "registry.CreateOrder")
	defer span.End()
	start := time.Now()
	defer s.observe(start)

	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, s.reject("order", err)
	}

	exists, err := s.customers.Exists(ctx, req.CustomerName)
	if err != nil {
		return nil, s.reject("order",
			dErrors.Wrap(err, dErrors.CodeInternal, "failed to check customer existence"))
	}
	if !exists {
		return nil, s.reject("order",
			dErrors.Newf(dErrors.CodeNotFound, "unknown customer %q", req.CustomerName))
	}

	o := models.NewOrder(uuid.New(), req, requestcontext.Now(ctx))
	if err := s.orders.Append(ctx, o); err != nil {
		return nil, s.reject("order",
			dErrors.Wrap(err, dErrors.CodeInternal, "failed to create order"))
	}

	s.created("order")
	s.emit(ctx, notify.KindOrderCreated, map[string]string{
		"order_number":  fmt.Sprintf("%d", o.OrderNumber),
		"customer_name": o.CustomerName,
		"priority":      o.Priority,
	})
	return o, nil
}

// ListOrders returns all orders in registration order.
func (s *Service) ListOrders(ctx context.Context) ([]*models.Order, error) {
	orders, err := s.orders.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list orders")
	}
	return orders, nil
}
