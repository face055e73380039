package notify

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// blockingSink holds deliveries until released so tests can fill the buffer.
type blockingSink struct {
	mu      sync.Mutex
	events  []Event
	release chan struct{}
}

func newBlockingSink() *blockingSink {
	return &blockingSink{release: make(chan struct{})}
}

func (s *blockingSink) Notify(_ context.Context, event Event) error {
	<-s.release
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

func (s *blockingSink) delivered() []Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Event{}, s.events...)
}

type recordingSink struct {
	mu     sync.Mutex
	events []Event
}

func (s *recordingSink) Notify(_ context.Context, event Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

func (s *recordingSink) delivered() []Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Event{}, s.events...)
}

func TestPublisherSyncDelivery(t *testing.T) {
	sink := &recordingSink{}
	pub := NewPublisher(sink)

	err := pub.Notify(context.Background(), Event{Kind: KindDriverCreated})
	require.NoError(t, err)
	require.Len(t, sink.delivered(), 1)
	assert.Equal(t, KindDriverCreated, sink.delivered()[0].Kind)
}

func TestPublisherAsyncDrainsOnClose(t *testing.T) {
	sink := &recordingSink{}
	pub := NewPublisher(sink, WithAsyncBuffer(16))

	ctx := context.Background()
	kinds := []Kind{KindDriverCreated, KindCustomerCreated, KindOrderCreated, KindShipmentCreated}
	for _, kind := range kinds {
		require.NoError(t, pub.Notify(ctx, Event{Kind: kind}))
	}
	pub.Close()

	delivered := sink.delivered()
	require.Len(t, delivered, len(kinds))
	for i, kind := range kinds {
		assert.Equal(t, kind, delivered[i].Kind, "buffered events must drain in order")
	}
}

func TestPublisherFullBufferDropsWithoutBlocking(t *testing.T) {
	sink := newBlockingSink()
	pub := NewPublisher(sink, WithAsyncBuffer(1))

	ctx := context.Background()
	// The worker blocks in the sink on the first picked-up event, so at most
	// one more fits the buffer. The surplus must be dropped, not block the
	// caller.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 10; i++ {
			_ = pub.Notify(ctx, Event{Kind: KindOrderCreated})
		}
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Notify blocked on a full buffer")
	}

	close(sink.release)
	pub.Close()
	assert.LessOrEqual(t, len(sink.delivered()), 2)
}

func TestPublisherCloseIsIdempotent(t *testing.T) {
	pub := NewPublisher(&recordingSink{}, WithAsyncBuffer(4))
	pub.Close()
	pub.Close()
}

func TestFanout(t *testing.T) {
	first := &recordingSink{}
	second := &recordingSink{}
	failing := notifierFunc(func(context.Context, Event) error {
		return errors.New("broker down")
	})

	err := Fanout{first, failing, second}.Notify(context.Background(), Event{Kind: KindOrderCreated})
	require.Error(t, err)
	assert.Len(t, first.delivered(), 1)
	assert.Len(t, second.delivered(), 1, "later sinks still attempted after a failure")
}

type notifierFunc func(context.Context, Event) error

func (f notifierFunc) Notify(ctx context.Context, event Event) error { return f(ctx, event) }
