package worker

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"promoreel/internal/pkg/logger"
	"promoreel/internal/worker/processor"
)

const defaultSweepInterval = 10 * time.Second

// jobProcessor is the slice of the processor the poll loop drives.
type jobProcessor interface {
	ProcessJob(ctx context.Context, jobID string) error
}

// Run drives the worker until ctx is canceled: one goroutine polls the
// queue and processes jobs strictly one at a time, another sweeps failed
// jobs back into the queue once their backoff window has passed.
func Run(ctx context.Context, d Deps) error {
	log := d.Log
	if log == nil {
		log = logger.NewDefault()
	}
	log = log.WithComponent("worker")

	maxRetries := d.MaxRetries
	if maxRetries <= 0 {
		maxRetries = processor.DefaultMaxRetries
	}

	p := processor.New(processor.Deps{
		Orders:       d.Orders,
		Jobs:         d.Jobs,
		Extractor:    d.Extractor,
		Scripts:      d.Scripts,
		Narration:    d.Narration,
		Engine:       d.Engine,
		SP:           d.SP,
		Notifier:     d.Notifier,
		OutputRoot:   d.OutputRoot,
		CleanupLocal: d.CleanupLocal,
		MaxRetries:   maxRetries,
		BaseDelay:    d.BaseDelay,
		Log:          log,
	})

	log.Info("worker starting",
		"queue_backend", d.Queue.Backend(),
		"poll_interval", d.Queue.Interval().String(),
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return pollLoop(ctx, d, p, log) })
	g.Go(func() error { return sweepLoop(ctx, d, maxRetries, log) })
	return g.Wait()
}

func pollLoop(ctx context.Context, d Deps, p jobProcessor, log *logger.Logger) error {
	ticker := time.NewTicker(d.Queue.Interval())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info("worker context canceled, stopping")
			return ctx.Err()
		case <-ticker.C:
		}

		pollCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		jobID, err := d.Queue.Poll(pollCtx)
		cancel()

		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			log.Warn("queue poll error, retrying", "error", err.Error())
			continue
		}
		if jobID == "" {
			continue
		}

		// Un job a la vez; el tick siguiente espera a que terminemos.
		jobCtx := logger.ContextWithJobID(ctx, jobID)
		jobLog := log.WithJobID(jobID)

		jobLog.Info("processing job")
		start := time.Now()

		if err := p.ProcessJob(jobCtx, jobID); err != nil {
			jobLog.Error("job failed",
				"error", err.Error(),
				"duration_ms", time.Since(start).Milliseconds(),
			)
		} else {
			jobLog.Info("job finished",
				"duration_ms", time.Since(start).Milliseconds(),
			)
		}
	}
}

// sweepLoop re-arma los jobs fallidos cuya ventana de backoff ya pasó.
func sweepLoop(ctx context.Context, d Deps, maxRetries int, log *logger.Logger) error {
	interval := d.SweepInterval
	if interval <= 0 {
		interval = defaultSweepInterval
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}

		ids, err := d.Jobs.RequeueForRetry(ctx, maxRetries, time.Now())
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			log.Warn("retry sweep failed", "error", err.Error())
			continue
		}

		for _, id := range ids {
			if err := d.Queue.Enqueue(ctx, id); err != nil {
				log.Warn("requeue enqueue failed", "job_id", id, "error", err.Error())
				continue
			}
			log.Info("job requeued for retry", "job_id", id)
		}
	}
}
