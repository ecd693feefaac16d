package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Publisher is the single publish boundary: fire-and-forget, no
// acknowledgment required by callers.
type Publisher interface {
	Publish(ctx context.Context, channel, eventName string, payload any) error
}

type redisPublisher struct {
	client *redis.Client
}

// NewRedisPublisher creates a publisher over Redis pub/sub channels.
func NewRedisPublisher(addr, password string, db int) Publisher {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &redisPublisher{client: client}
}

// NewRedisPublisherWithClient wires an existing client, used in tests and
// when sharing the cache connection.
func NewRedisPublisherWithClient(client *redis.Client) Publisher {
	return &redisPublisher{client: client}
}

type envelope struct {
	Event     string    `json:"event"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
}

func (p *redisPublisher) Publish(ctx context.Context, channel, eventName string, payload any) error {
	body, err := json.Marshal(envelope{Event: eventName, Timestamp: time.Now().UTC(), Data: payload})
	if err != nil {
		return fmt.Errorf("marshal event %s: %w", eventName, err)
	}
	if err := p.client.Publish(ctx, channel, body).Err(); err != nil {
		return fmt.Errorf("publish %s to %s: %w", eventName, channel, err)
	}
	return nil
}
