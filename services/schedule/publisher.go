// File: services/schedule/publisher.go
package schedule

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"
)

// reconcileChannelPrefix prefixes the per-reader pub/sub channels.
const reconcileChannelPrefix = "reconcile:"

// RedisPublisher fans reconcile events out through Redis pub/sub so every
// server instance can refresh its live viewers.
type RedisPublisher struct {
	Client *redis.Client
}

func (p *RedisPublisher) PublishReconcile(ctx context.Context, readerID string) error {
	if err := p.Client.Publish(ctx, reconcileChannelPrefix+readerID, readerID).Err(); err != nil {
		return fmt.Errorf("failed to publish reconcile event: %w", err)
	}
	return nil
}
