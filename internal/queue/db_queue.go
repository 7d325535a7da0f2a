package queue

import (
	"context"
	"time"

	apperrors "promoreel/internal/pkg/errors"
	"promoreel/internal/ports"
)

// DBQueue polls the job table directly: oldest QUEUED row, FIFO by creation
// time, flipped to PROCESSING in the same statement so a second poller can
// never return the same job.
type DBQueue struct {
	jobs ports.JobStore
}

func NewDBQueue(jobs ports.JobStore) *DBQueue {
	return &DBQueue{jobs: jobs}
}

func (q *DBQueue) Backend() string { return "db" }

// Interval is several seconds: each poll is a write query against the table.
func (q *DBQueue) Interval() time.Duration { return 5 * time.Second }

// Enqueue is a no-op beyond the row's own QUEUED status; visibility comes
// from the table itself.
func (q *DBQueue) Enqueue(ctx context.Context, jobID string) error {
	return nil
}

func (q *DBQueue) Poll(ctx context.Context) (string, error) {
	j, err := q.jobs.ClaimOldestQueued(ctx)
	if err != nil {
		return "", apperrors.Queue("queue.poll", err)
	}
	if j == nil {
		return "", nil
	}
	return j.ID, nil
}
