package ports

import (
	"context"
	"time"

	"promoreel/internal/models"
)

// OrderStore is the read/write contract the pipeline has against order rows.
// The pipeline only reads preference fields and writes status/output/error.
type OrderStore interface {
	CreateOrder(ctx context.Context, o *models.Order) error
	GetOrder(ctx context.Context, id string) (*models.Order, error)

	// UpdateOrderResult writes status, output list and error text atomically.
	UpdateOrderResult(ctx context.Context, id string, status models.Status, outputs []string, errText string) error
}

// JobStore owns job lifecycle rows. The worker is the sole writer to
// lifecycle fields while a job is PROCESSING.
type JobStore interface {
	CreateJob(ctx context.Context, j *models.Job) error
	GetJob(ctx context.Context, id string) (*models.Job, error)
	GetJobByOrder(ctx context.Context, orderID string) (*models.Job, error)

	// MarkProcessing flips QUEUED -> PROCESSING and clears any stale error.
	// It refuses to resurrect a terminal job; it is a no-op when the queue
	// backend already claimed the row as PROCESSING.
	MarkProcessing(ctx context.Context, id string) error

	// MarkDone persists script text and the output file list together with
	// the DONE status in one statement.
	MarkDone(ctx context.Context, id, script string, outputs []string) error

	// MarkFailed records the error verbatim, bumps the retry counter and
	// stamps the earliest time an automatic requeue may happen.
	MarkFailed(ctx context.Context, id, errText string, notBefore time.Time) error

	// ClaimOldestQueued selects the oldest QUEUED job (FIFO by creation
	// time, id as tiebreak) and flips it to PROCESSING before returning.
	// Returns nil when nothing is ready.
	ClaimOldestQueued(ctx context.Context) (*models.Job, error)

	// RequeueForRetry flips FAILED jobs below the retry limit whose
	// not_before has passed back to QUEUED, returning the affected ids.
	RequeueForRetry(ctx context.Context, maxRetries int, now time.Time) ([]string, error)

	// ResetForRetry is the administrative path: back to QUEUED with the
	// error cleared, regardless of the retry counter.
	ResetForRetry(ctx context.Context, id string) error
}
