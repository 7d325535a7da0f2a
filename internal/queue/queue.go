// Package queue provides the job transport the worker polls. Two
// interchangeable backends exist: a Redis list (remote mode, destructive
// at-least-once pop) and a Postgres polling query against the job table.
// The orchestrator never branches on which one is active.
package queue

import (
	"context"
	"time"
)

type Queue interface {
	// Enqueue makes the job visible to Poll.
	Enqueue(ctx context.Context, jobID string) error

	// Poll returns one ready job id, or "" when nothing is ready.
	Poll(ctx context.Context) (string, error)

	// Interval is the poll cadence the worker should use for this backend.
	Interval() time.Duration

	Backend() string
}
