// Package service implements the registry's validation and storage engine:
// the rules governing when a record may be created, existence tracking
// across entity kinds, and the append-only lifecycle of the four
// collections.
package service

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	regmetrics "waybill/internal/registry/metrics"
	"waybill/internal/registry/models"
	"waybill/internal/notify"
	dErrors "waybill/pkg/domain-errors"
	"waybill/pkg/requestcontext"
)

// DriverStore owns the driver collection and its name existence index.
type DriverStore interface {
	CreateIfNameAvailable(ctx context.Context, d *models.Driver) error
	Exists(ctx context.Context, name string) (bool, error)
	List(ctx context.Context) ([]*models.Driver, error)
}

// CustomerStore owns the customer collection and its name existence index.
type CustomerStore interface {
	CreateIfNameAvailable(ctx context.Context, c *models.Customer) error
	Exists(ctx context.Context, name string) (bool, error)
	List(ctx context.Context) ([]*models.Customer, error)
}

// OrderStore owns the order collection.
type OrderStore interface {
	Append(ctx context.Context, o *models.Order) error
	List(ctx context.Context) ([]*models.Order, error)
}

// ShipmentStore owns the shipment collection.
type ShipmentStore interface {
	Append(ctx context.Context, s *models.Shipment) error
	List(ctx context.Context) ([]*models.Shipment, error)
}

// Service orchestrates the four sub-registries. The access-control gate is
// a collaborator wrapping the transport: by the time any Create* method
// runs, authorization has already passed.
type Service struct {
	drivers   DriverStore
	customers CustomerStore
	orders    OrderStore
	shipments ShipmentStore

	logger   *slog.Logger
	notifier notify.Notifier
	metrics  *regmetrics.Metrics
	tracer   trace.Tracer
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithNotifier(notifier notify.Notifier) Option {
	return func(s *Service) { s.notifier = notifier }
}

func WithMetrics(m *regmetrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func WithTracer(tracer trace.Tracer) Option {
	return func(s *Service) { s.tracer = tracer }
}

// New constructs a Service. All four stores are required; observability and
// notification collaborators are optional.
func New(drivers DriverStore, customers CustomerStore, orders OrderStore, shipments ShipmentStore, opts ...Option) *Service {
	s := &Service{
		drivers:   drivers,
		customers: customers,
		orders:    orders,
		shipments: shipments,
		logger:    slog.Default(),
		tracer:    noop.NewTracerProvider().Tracer("registry"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Tracer returns the default tracer for the registry when callers want the
// globally configured provider.
func Tracer() trace.Tracer {
	return otel.Tracer("waybill/registry")
}

func (s *Service) emit(ctx context.Context, kind notify.Kind, fields map[string]string) {
	if s.notifier == nil {
		return
	}
	event := notify.Event{
		Kind:      kind,
		Timestamp: requestcontext.Now(ctx),
		RequestID: requestcontext.RequestID(ctx),
		Fields:    fields,
	}
	// Sink consumption is out of scope for the registry: a delivery failure
	// must not fail a creation that already committed.
	if err := s.notifier.Notify(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "failed to notify",
			"kind", string(kind), "error", err)
	}
}

func (s *Service) reject(kind string, err error) error {
	if s.metrics != nil {
		s.metrics.IncrementRejected(kind, string(dErrors.CodeOf(err)))
	}
	return err
}

func (s *Service) created(kind string) {
	if s.metrics != nil {
		s.metrics.IncrementCreated(kind)
	}
}

func (s *Service) observe(start time.Time) {
	if s.metrics != nil {
		s.metrics.ObserveCreate(start)
	}
}
