package outbox

import (
	"context"
	"log/slog"
	"time"

	"waybill/internal/notify"
)

// Source yields unpublished events. *Store implements it; tests use fakes.
type Source interface {
	NextBatch(ctx context.Context, limit int) ([]notify.Event, []int64, error)
	MarkPublished(ctx context.Context, seqs []int64) error
}

// Worker polls the outbox and relays pending events to a downstream sink.
// Rows are marked published only after the sink accepts them, so a crashed
// relay re-delivers rather than loses events (at-least-once).
type Worker struct {
	source   Source
	sink     notify.Notifier
	logger   *slog.Logger
	interval time.Duration
	batch    int
}

func NewWorker(source Source, sink notify.Notifier, logger *slog.Logger) *Worker {
	return &Worker{
		source:   source,
		sink:     sink,
		logger:   logger,
		interval: time.Second,
		batch:    100,
	}
}

// Run polls until the context is cancelled.
func (w *Worker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := w.relayOnce(ctx); err != nil {
				w.logger.WarnContext(ctx, "outbox relay pass failed", "error", err)
			}
		}
	}
}

func (w *Worker) relayOnce(ctx context.Context) error {
	events, seqs, err := w.source.NextBatch(ctx, w.batch)
	if err != nil {
		return err
	}

	var published []int64
	for i, event := range events {
		if err := w.sink.Notify(ctx, event); err != nil {
			// Stop at the first failure to keep delivery in order; the
			// remainder is retried next tick.
			if markErr := w.source.MarkPublished(ctx, published); markErr != nil {
				return markErr
			}
			return err
		}
		published = append(published, seqs[i])
	}
	return w.source.MarkPublished(ctx, published)
}
