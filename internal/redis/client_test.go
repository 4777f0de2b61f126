package redis

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func syncMessage(t *testing.T, envelope SyncEnvelope) *redis.Message {
	t.Helper()
	data, err := json.Marshal(envelope)
	require.NoError(t, err)
	return &redis.Message{Channel: syncChannel(envelope.Type), Payload: string(data)}
}

func waitClosed(t *testing.T, out <-chan SyncEnvelope) {
	t.Helper()
	for {
		select {
		case _, ok := <-out:
			if !ok {
				return
			}
		case <-time.After(2 * time.Second):
			t.Fatal("forward did not exit")
		}
	}
}

func TestForwardDeliversEnvelopes(t *testing.T) {
	msgs := make(chan *redis.Message, 1)
	out := make(chan SyncEnvelope)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go forward(ctx, msgs, out)

	msgs <- syncMessage(t, SyncEnvelope{EventID: "ev-1", Type: "orders", Origin: "remote"})

	select {
	case envelope := <-out:
		assert.Equal(t, "ev-1", envelope.EventID)
		assert.Equal(t, "orders", envelope.Type)
	case <-time.After(2 * time.Second):
		t.Fatal("envelope was not forwarded")
	}
}

func TestForwardSkipsMalformedPayloads(t *testing.T) {
	msgs := make(chan *redis.Message, 2)
	out := make(chan SyncEnvelope)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go forward(ctx, msgs, out)

	msgs <- &redis.Message{Payload: "{not json"}
	msgs <- syncMessage(t, SyncEnvelope{EventID: "ev-2", Type: "messages"})

	select {
	case envelope := <-out:
		assert.Equal(t, "ev-2", envelope.EventID)
	case <-time.After(2 * time.Second):
		t.Fatal("envelope was not forwarded")
	}
}

func TestForwardExitsWhenConsumerStopsReceiving(t *testing.T) {
	msgs := make(chan *redis.Message, 2)
	out := make(chan SyncEnvelope)
	ctx, cancel := context.WithCancel(context.Background())

	go forward(ctx, msgs, out)

	msgs <- syncMessage(t, SyncEnvelope{EventID: "ev-1", Type: "orders"})
	msgs <- syncMessage(t, SyncEnvelope{EventID: "ev-2", Type: "orders"})

	// Consumer takes one envelope and walks away with a send still pending.
	select {
	case <-out:
	case <-time.After(2 * time.Second):
		t.Fatal("first envelope was not forwarded")
	}

	cancel()
	waitClosed(t, out)
}

func TestForwardExitsWhenSourceCloses(t *testing.T) {
	msgs := make(chan *redis.Message)
	out := make(chan SyncEnvelope)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go forward(ctx, msgs, out)
	close(msgs)
	waitClosed(t, out)
}
