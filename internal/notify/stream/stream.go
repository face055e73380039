// Package stream appends registry events to a Redis Stream, for deployments
// that index events with consumer groups instead of Kafka.
package stream

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"waybill/internal/notify"
)

// Sink writes each event as one XADD entry.
type Sink struct {
	client *redis.Client
	stream string
}

func New(client *redis.Client, stream string) *Sink {
	return &Sink{client: client, stream: stream}
}

func (s *Sink) Notify(ctx context.Context, event notify.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	err = s.client.XAdd(ctx, &redis.XAddArgs{
		Stream: s.stream,
		Values: map[string]any{
			"kind":    string(event.Kind),
			"payload": payload,
		},
	}).Err()
	if err != nil {
		return fmt.Errorf("xadd event: %w", err)
	}
	return nil
}
