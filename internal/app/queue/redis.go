package queue

import (
	"context"
	stderrors "errors"
	"fmt"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"docpod/internal/app/errors"
)

// pollTimeout bounds each BRPOP so Close and ctx cancellation are noticed
const pollTimeout = time.Second

// RedisQueue is a FIFO on a Redis list: LPUSH to enqueue, BRPOP to dequeue
type RedisQueue struct {
	client *redis.Client
	key    string
	logger *zap.Logger
	closed atomic.Bool
}

// NewRedisQueue creates a queue on key
func NewRedisQueue(client *redis.Client, key string, logger *zap.Logger) *RedisQueue {
	return &RedisQueue{client: client, key: key, logger: logger}
}

// Enqueue pushes id to the head of the list
func (q *RedisQueue) Enqueue(ctx context.Context, id int64) error {
	if q.closed.Load() {
		return errors.ErrQueueClosed
	}
	if err := q.client.LPush(ctx, q.key, id).Err(); err != nil {
		return fmt.Errorf("redis lpush: %w", err)
	}
	return nil
}

// Dequeue pops from the tail of the list
func (q *RedisQueue) Dequeue(ctx context.Context) (int64, error) {
	for {
		if q.closed.Load() {
			return 0, errors.ErrQueueClosed
		}
		if err := ctx.Err(); err != nil {
			return 0, err
		}

		result, err := q.client.BRPop(ctx, pollTimeout, q.key).Result()
		if err != nil {
			if stderrors.Is(err, redis.Nil) {
				continue
			}
			if ctx.Err() != nil {
				return 0, ctx.Err()
			}
			if q.closed.Load() {
				return 0, errors.ErrQueueClosed
			}
			return 0, fmt.Errorf("redis brpop: %w", err)
		}

		// result is [key, value]
		id, err := strconv.ParseInt(result[1], 10, 64)
		if err != nil {
			q.logger.Warn("dropping malformed queue entry", zap.String("value", result[1]))
			continue
		}
		return id, nil
	}
}

// Len returns the list length
func (q *RedisQueue) Len(ctx context.Context) (int, error) {
	n, err := q.client.LLen(ctx, q.key).Result()
	if err != nil {
		return 0, fmt.Errorf("redis llen: %w", err)
	}
	return int(n), nil
}

// Ping checks the connection
func (q *RedisQueue) Ping(ctx context.Context) error {
	return q.client.Ping(ctx).Err()
}

// Close stops dequeuing and closes the client
func (q *RedisQueue) Close() error {
	if q.closed.Swap(true) {
		return nil
	}
	return q.client.Close()
}
