package registry

import (
	"log/slog"

	"waybill/internal/registry/handler"
	"waybill/internal/registry/service"
)

// Service exposes the four sub-registries behind one validation discipline.
type Service = service.Service

// Handler wires HTTP endpoints to the registry service.
type Handler = handler.Handler

// NewService constructs the registry service with required stores.
func NewService(drivers service.DriverStore, customers service.CustomerStore,
	orders service.OrderStore, shipments service.ShipmentStore, opts ...service.Option) *Service {
	return service.New(drivers, customers, orders, shipments, opts...)
}

// NewHandler constructs an HTTP handler for registry routes.
func NewHandler(s *Service, logger *slog.Logger) *Handler {
	return handler.New(s, logger)
}
