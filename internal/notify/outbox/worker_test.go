package outbox

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"waybill/internal/notify"
)

// fakeSource serves a fixed backlog and records which rows were marked.
type fakeSource struct {
	events []notify.Event
	seqs   []int64
	marked []int64
}

func (f *fakeSource) NextBatch(_ context.Context, limit int) ([]notify.Event, []int64, error) {
	if limit > len(f.events) {
		limit = len(f.events)
	}
	return f.events[:limit], f.seqs[:limit], nil
}

func (f *fakeSource) MarkPublished(_ context.Context, seqs []int64) error {
	f.marked = append(f.marked, seqs...)
	return nil
}

// flakySink fails on a chosen event kind.
type flakySink struct {
	failOn    notify.Kind
	delivered []notify.Kind
}

func (s *flakySink) Notify(_ context.Context, event notify.Event) error {
	if event.Kind == s.failOn {
		return errors.New("sink unavailable")
	}
	s.delivered = append(s.delivered, event.Kind)
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
}

func TestRelayOnceMarksAllOnSuccess(t *testing.T) {
	source := &fakeSource{
		events: []notify.Event{
			{Kind: notify.KindDriverCreated},
			{Kind: notify.KindOrderCreated},
		},
		seqs: []int64{1, 2},
	}
	sink := &flakySink{}
	worker := NewWorker(source, sink, testLogger())

	require.NoError(t, worker.relayOnce(context.Background()))
	assert.Equal(t, []notify.Kind{notify.KindDriverCreated, notify.KindOrderCreated}, sink.delivered)
	assert.Equal(t, []int64{1, 2}, source.marked)
}

func TestRelayOnceStopsAtFirstFailure(t *testing.T) {
	source := &fakeSource{
		events: []notify.Event{
			{Kind: notify.KindDriverCreated},
			{Kind: notify.KindCustomerCreated},
			{Kind: notify.KindOrderCreated},
		},
		seqs: []int64{1, 2, 3},
	}
	sink := &flakySink{failOn: notify.KindCustomerCreated}
	worker := NewWorker(source, sink, testLogger())

	err := worker.relayOnce(context.Background())
	require.Error(t, err)

	// Only the rows delivered before the failure are marked; the failed row
	// and everything after it stay pending for the next tick.
	assert.Equal(t, []notify.Kind{notify.KindDriverCreated}, sink.delivered)
	assert.Equal(t, []int64{1}, source.marked)
}

func TestRelayOnceEmptyBacklog(t *testing.T) {
	source := &fakeSource{}
	worker := NewWorker(source, &flakySink{}, testLogger())

	require.NoError(t, worker.relayOnce(context.Background()))
	assert.Empty(t, source.marked)
}
