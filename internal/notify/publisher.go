package notify

import (
	"context"
	"log/slog"
	"sync"
)

// Publisher wraps a sink with optional asynchronous buffering. In sync mode
// Notify delivers inline. With an async buffer, events are queued to a
// worker goroutine and a full buffer drops the event rather than blocking a
// registry creation. Close drains the buffer before returning.
type Publisher struct {
	sink   Notifier
	logger *slog.Logger

	inbox  chan Event
	done   chan struct{}
	closed sync.Once
}

type PublisherOption func(*Publisher)

// WithAsyncBuffer enables asynchronous delivery with the given buffer size.
func WithAsyncBuffer(size int) PublisherOption {
	return func(p *Publisher) {
		p.inbox = make(chan Event, size)
	}
}

// WithLogger sets the logger used to report dropped or failed deliveries.
func WithLogger(logger *slog.Logger) PublisherOption {
	return func(p *Publisher) {
		p.logger = logger
	}
}

func NewPublisher(sink Notifier, opts ...PublisherOption) *Publisher {
	p := &Publisher{sink: sink, logger: slog.Default()}
	for _, opt := range opts {
		opt(p)
	}
	if p.inbox != nil {
		p.done = make(chan struct{})
		go p.run()
	}
	return p
}

func (p *Publisher) run() {
	defer close(p.done)
	for event := range p.inbox {
		// Deliveries outlive the originating request; use Background.
		if err := p.sink.Notify(context.Background(), event); err != nil {
			p.logger.Warn("notification delivery failed",
				"kind", string(event.Kind), "error", err)
		}
	}
}

// Notify delivers the event, inline or via the async buffer.
func (p *Publisher) Notify(ctx context.Context, event Event) error {
	if p.inbox == nil {
		return p.sink.Notify(ctx, event)
	}
	select {
	case p.inbox <- event:
		return nil
	default:
		p.logger.Warn("notification buffer full, dropping event",
			"kind", string(event.Kind))
		return nil
	}
}

// Close drains any buffered events and stops the worker. Safe to call more
// than once.
func (p *Publisher) Close() {
	p.closed.Do(func() {
		if p.inbox == nil {
			return
		}
		close(p.inbox)
		<-p.done
	})
}
