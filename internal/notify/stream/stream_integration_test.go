//go:build integration

package stream

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"waybill/internal/notify"
	"waybill/pkg/testutil/containers"
)

func TestSinkAppendsToStream(t *testing.T) {
	rc := containers.NewRedisContainer(t)
	ctx := context.Background()

	sink := New(rc.Client, "registry-events")

	events := []notify.Event{
		{Kind: notify.KindDriverCreated, Timestamp: time.Now().UTC(), Fields: map[string]string{"name": "Dan"}},
		{Kind: notify.KindShipmentCreated, Timestamp: time.Now().UTC(), Fields: map[string]string{"driver_name": "Dan"}},
	}
	for _, event := range events {
		require.NoError(t, sink.Notify(ctx, event))
	}

	entries, err := rc.Client.XRange(ctx, "registry-events", "-", "+").Result()
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, string(notify.KindDriverCreated), entries[0].Values["kind"])
	assert.Equal(t, string(notify.KindShipmentCreated), entries[1].Values["kind"])

	var decoded notify.Event
	payload, ok := entries[0].Values["payload"].(string)
	require.True(t, ok)
	require.NoError(t, json.Unmarshal([]byte(payload), &decoded))
	assert.Equal(t, "Dan", decoded.Fields["name"])
}
