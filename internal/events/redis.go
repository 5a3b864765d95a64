package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-redis/redis/v8"
)

// RedisPublisher appends events as JSON to a Redis list.
type RedisPublisher struct {
	client redis.Cmdable
	list   string
}

func NewRedisPublisher(client redis.Cmdable, list string) *RedisPublisher {
	return &RedisPublisher{client: client, list: list}
}

func (p *RedisPublisher) Publish(ctx context.Context, event LedgerEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal ledger event: %w", err)
	}

	if err := p.client.RPush(ctx, p.list, string(data)).Err(); err != nil {
		return fmt.Errorf("failed to push ledger event to %s: %w", p.list, err)
	}
	return nil
}

// Close is a no-op, the client is owned by the caller.
func (p *RedisPublisher) Close() error {
	return nil
}
