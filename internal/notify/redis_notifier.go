package notify

import (
	"context"
	"sync"

	redis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const channel = "stock.changed"

// RedisNotifier publishes change signals over Redis pub/sub so every
// server instance sees writes made through any of them. Local
// subscribers are fed from the same subscription, so a single instance
// behaves like Broadcast.
type RedisNotifier struct {
	client *redis.Client
	local  *Broadcast
	logger *zap.Logger

	closeOnce sync.Once
	done      chan struct{}
}

func NewRedis(addr string, password string, db int, logger *zap.Logger) *RedisNotifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	n := &RedisNotifier{
		client: client,
		local:  NewBroadcast(),
		logger: logger,
		done:   make(chan struct{}),
	}
	go n.relay()
	return n
}

func (n *RedisNotifier) Ping(ctx context.Context) error {
	return n.client.Ping(ctx).Err()
}

func (n *RedisNotifier) Close() error {
	n.closeOnce.Do(func() {
		close(n.done)
	})
	return n.client.Close()
}

// Publish is best-effort: a Redis outage must not fail the stock write
// that triggered it.
func (n *RedisNotifier) Publish(ctx context.Context) error {
	if err := n.client.Publish(ctx, channel, "1").Err(); err != nil {
		n.logger.Warn("publish change signal", zap.Error(err))
	}
	return nil
}

func (n *RedisNotifier) Subscribe() (<-chan struct{}, func()) {
	return n.local.Subscribe()
}

func (n *RedisNotifier) relay() {
	ctx := context.Background()
	sub := n.client.Subscribe(ctx, channel)
	defer func() { _ = sub.Close() }()

	msgs := sub.Channel()
	for {
		select {
		case <-n.done:
			return
		case _, ok := <-msgs:
			if !ok {
				return
			}
			_ = n.local.Publish(ctx)
		}
	}
}
