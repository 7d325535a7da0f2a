package queue

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	apperrors "promoreel/internal/pkg/errors"
)

// RedisQueue is the remote backend: a plain Redis list. Pop is destructive,
// so a popped id that is never acknowledged is gone. The worker persists
// PROCESSING before doing any real work.
type RedisQueue struct {
	rdb       *redis.Client
	queueName string
}

func NewRedisQueue(rdb *redis.Client, queueName string) *RedisQueue {
	return &RedisQueue{rdb: rdb, queueName: queueName}
}

func (q *RedisQueue) Backend() string { return "redis" }

// Interval is sub-second: el pop remoto es barato.
func (q *RedisQueue) Interval() time.Duration { return time.Second }

func (q *RedisQueue) Enqueue(ctx context.Context, jobID string) error {
	if err := q.rdb.LPush(ctx, q.queueName, jobID).Err(); err != nil {
		return apperrors.Queue("queue.enqueue", err)
	}
	return nil
}

func (q *RedisQueue) Poll(ctx context.Context) (string, error) {
	res, err := q.rdb.RPop(ctx, q.queueName).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", apperrors.Queue("queue.poll", err)
	}
	return res, nil
}
