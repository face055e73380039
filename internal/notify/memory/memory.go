// Package memory provides an in-memory event recorder, used by tests and as
// a drain target for the outbox relay in single-process setups.
package memory

import (
	"context"
	"sync"

	"waybill/internal/notify"
)

type Recorder struct {
	mu     sync.RWMutex
	events []notify.Event
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Notify(_ context.Context, event notify.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return nil
}

// Events returns a copy of everything recorded so far, in emit order.
func (r *Recorder) Events() []notify.Event {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]notify.Event{}, r.events...)
}

// Clear drops all recorded events.
func (r *Recorder) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}
