package queue

import (
	"context"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"docpod/internal/app/errors"
	"docpod/internal/config"
)

// Queue carries podcast job ids from the upload handler to the workers
type Queue interface {
	Enqueue(ctx context.Context, id int64) error
	// Dequeue blocks until an id is available, ctx is done or the queue is closed
	Dequeue(ctx context.Context) (int64, error)
	Len(ctx context.Context) (int, error)
	Close() error
}

// New builds the queue selected by cfg
func New(cfg config.QueueConfig, logger *zap.Logger) (Queue, error) {
	switch cfg.Backend {
	case config.QueueMemory, "":
		return NewMemoryQueue(cfg.Capacity), nil
	case config.QueueRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		return NewRedisQueue(client, cfg.Redis.Key, logger), nil
	default:
		return nil, errors.Wrapf(errors.ErrInvalidConfig, "unknown queue backend %q", cfg.Backend)
	}
}
