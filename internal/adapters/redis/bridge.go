// Package redis
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"pulsehub/internal/domain"
	"pulsehub/internal/logger"

	"github.com/redis/go-redis/v9"
)

const clientPingTimeout = 5 * time.Second

func NewClient(redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), clientPingTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis not responding: %w", err)
	}

	return client, nil
}

// Bridge forwards dispatched envelopes to a redis channel so other
// processes can follow the stream. It consumes events like any other
// registry subscriber; the registry itself stays in-process.
type Bridge struct {
	redis   *redis.Client
	channel string
	log     logger.Logger
}

func NewBridge(client *redis.Client, channel string, log logger.Logger) *Bridge {
	return &Bridge{
		redis:   client,
		channel: channel,
		log:     log,
	}
}

func (b *Bridge) Handle(args ...any) {
	if len(args) == 0 {
		return
	}

	env, ok := args[0].(*domain.Envelope)
	if !ok {
		b.log.Error("redis bridge: unexpected event payload")
		return
	}

	data, err := json.Marshal(env)
	if err != nil {
		b.log.Error("redis bridge: marshal failed", "event", env.Name, "error", err)
		return
	}

	if err := b.redis.Publish(context.Background(), b.channel, data).Err(); err != nil {
		b.log.Error("redis bridge: publish failed", "event", env.Name, "error", err)
	}
}
