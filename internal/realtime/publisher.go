package realtime

import (
	"context"
	"encoding/json"
	"time"

	"backend-triage/internal/queue"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

const DefaultChannel = "queue:events"

type redisPublisher interface {
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
}

// Publisher forwards queue events to a Redis channel for external display boards.
type Publisher struct {
	client  redisPublisher
	channel string
	timeout time.Duration
}

func NewPublisher(client redisPublisher, channel string) *Publisher {
	if channel == "" {
		channel = DefaultChannel
	}
	return &Publisher{client: client, channel: channel, timeout: 2 * time.Second}
}

func (p *Publisher) Notify(ctx context.Context, ev queue.Event) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return errors.Wrap(err, "marshal queue event")
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.timeout)
	defer cancel()

	if err := p.client.Publish(ctx, p.channel, payload).Err(); err != nil {
		return errors.Wrapf(err, "publish %s to %s", ev.Type, p.channel)
	}
	return nil
}
