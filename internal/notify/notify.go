// Package notify defines the structured records the registry emits after
// each successful creation, and the sinks that consume them. Sinks are
// external collaborators: a failed emit is logged, never propagated into
// the creation result.
package notify

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

// Kind identifies the entity kind a notification describes.
type Kind string

const (
	KindDriverCreated   Kind = "driver_created"
	KindCustomerCreated Kind = "customer_created"
	KindOrderCreated    Kind = "order_created"
	KindShipmentCreated Kind = "shipment_created"
)

// Event is emitted after a successful registry creation. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	Kind      Kind              `json:"kind"`
	Timestamp time.Time         `json:"timestamp"`
	RequestID string            `json:"request_id,omitempty"`
	Fields    map[string]string `json:"fields"`
}

// Notifier consumes registry events.
type Notifier interface {
	Notify(ctx context.Context, event Event) error
}

// LogSink writes events to the structured logger. Always available; the
// default sink when no broker is configured.
type LogSink struct {
	logger *slog.Logger
}

func NewLogSink(logger *slog.Logger) *LogSink {
	return &LogSink{logger: logger}
}

func (s *LogSink) Notify(ctx context.Context, event Event) error {
	args := []any{"kind", string(event.Kind), "request_id", event.RequestID}
	for k, v := range event.Fields {
		args = append(args, k, v)
	}
	s.logger.InfoContext(ctx, "registry event", args...)
	return nil
}

// Fanout delivers each event to every sink. All sinks are attempted even
// when one fails; errors are joined.
type Fanout []Notifier

func (f Fanout) Notify(ctx context.Context, event Event) error {
	var errs []error
	for _, n := range f {
		if err := n.Notify(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
