package queue

import (
	"fmt"

	"github.com/redis/go-redis/v9"

	"promoreel/internal/ports"
)

// New selects the queue backend once at process start. Misconfiguration
// fails fast here, never mid-job.
func New(backend string, rdb *redis.Client, queueName string, jobs ports.JobStore) (Queue, error) {
	switch backend {
	case "redis":
		if rdb == nil {
			return nil, fmt.Errorf("redis queue backend requires a redis client")
		}
		return NewRedisQueue(rdb, queueName), nil

	case "db", "":
		return NewDBQueue(jobs), nil

	default:
		return nil, fmt.Errorf("unknown queue backend: %s", backend)
	}
}
