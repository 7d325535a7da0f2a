package worker

import (
	"time"

	"promoreel/internal/pkg/logger"
	"promoreel/internal/ports"
	"promoreel/internal/queue"
	"promoreel/internal/worker/processor"
)

type Deps struct {
	Queue     queue.Queue
	Orders    ports.OrderStore
	Jobs      ports.JobStore
	Extractor ports.Extractor
	Scripts   ports.ScriptProvider
	Narration ports.NarrationProvider
	Engine    processor.Renderer
	SP        ports.StorageProvider
	Notifier  ports.Notifier

	OutputRoot   string
	CleanupLocal bool

	MaxRetries int
	BaseDelay  time.Duration

	// SweepInterval controls how often failed jobs are checked for
	// automatic requeue. Zero means the default.
	SweepInterval time.Duration

	Log *logger.Logger
}
