package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

type Client struct {
	rdb *redis.Client
}

// SyncEnvelope is the unit published on a resource channel whenever a
// customer-facing write lands, so admin views on other origins can pick it
// up without polling.
type SyncEnvelope struct {
	EventID   string          `json:"event_id"`
	Type      string          `json:"type"` // order, message
	Payload   json.RawMessage `json:"payload"`
	Timestamp time.Time       `json:"timestamp"`
	Origin    string          `json:"origin"` // remote, local-fallback
}

func Initialize(redisURL string) (*Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	rdb := redis.NewClient(opt)

	// Test connection
	ctx := context.Background()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Client{rdb: rdb}, nil
}

func syncChannel(resource string) string {
	return "burgero:sync:" + resource
}

// PublishSync wraps payload in a SyncEnvelope and publishes it on the
// resource channel.
func (c *Client) PublishSync(ctx context.Context, resource, origin string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal sync payload: %w", err)
	}

	envelope := SyncEnvelope{
		EventID:   uuid.NewString(),
		Type:      resource,
		Payload:   body,
		Timestamp: time.Now().UTC(),
		Origin:    origin,
	}

	data, err := json.Marshal(envelope)
	if err != nil {
		return fmt.Errorf("failed to marshal sync envelope: %w", err)
	}

	return c.rdb.Publish(ctx, syncChannel(resource), data).Err()
}

// SubscribeSync delivers envelopes published for resource until ctx is done.
func (c *Client) SubscribeSync(ctx context.Context, resource string) (<-chan SyncEnvelope, error) {
	sub := c.rdb.Subscribe(ctx, syncChannel(resource))

	// Force the subscription to be established before returning.
	if _, err := sub.Receive(ctx); err != nil {
		sub.Close()
		return nil, fmt.Errorf("failed to subscribe to %s: %w", syncChannel(resource), err)
	}

	out := make(chan SyncEnvelope)
	go func() {
		defer sub.Close()
		forward(ctx, sub.Channel(), out)
	}()

	return out, nil
}

// forward decodes messages onto out until ctx is done or msgs closes. The
// send is guarded by ctx so an abandoned consumer cannot wedge the goroutine
// and hold the subscription open.
func forward(ctx context.Context, msgs <-chan *redis.Message, out chan<- SyncEnvelope) {
	defer close(out)
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-msgs:
			if !ok {
				return
			}
			var envelope SyncEnvelope
			if err := json.Unmarshal([]byte(msg.Payload), &envelope); err != nil {
				continue
			}
			select {
			case out <- envelope:
			case <-ctx.Done():
				return
			}
		}
	}
}

// Stats caching
func (c *Client) SetStats(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	jsonData, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal stats: %w", err)
	}

	return c.rdb.Set(ctx, "stats:"+key, jsonData, ttl).Err()
}

func (c *Client) GetStats(ctx context.Context, key string, dest interface{}) error {
	val, err := c.rdb.Get(ctx, "stats:"+key).Result()
	if err != nil {
		if err == redis.Nil {
			return fmt.Errorf("stats not found")
		}
		return fmt.Errorf("failed to get stats: %w", err)
	}

	return json.Unmarshal([]byte(val), dest)
}

func (c *Client) InvalidateStats(ctx context.Context, key string) error {
	return c.rdb.Del(ctx, "stats:"+key).Err()
}

// Close Redis connection
func (c *Client) Close() error {
	return c.rdb.Close()
}
