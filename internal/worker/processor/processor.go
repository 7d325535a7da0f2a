// Package processor runs one paid order through the full pipeline:
// extract product data, generate the script, synthesize narration,
// render every template, deliver the files and notify the buyer.
package processor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"promoreel/internal/compose"
	"promoreel/internal/models"
	"promoreel/internal/pkg/errors"
	"promoreel/internal/pkg/logger"
	"promoreel/internal/ports"
	"promoreel/internal/templates"
)

// Renderer is the slice of the composition engine the processor needs.
type Renderer interface {
	Render(ctx context.Context, c *compose.Composition) (string, error)
}

type Deps struct {
	Orders    ports.OrderStore
	Jobs      ports.JobStore
	Extractor ports.Extractor
	Scripts   ports.ScriptProvider
	Narration ports.NarrationProvider
	Engine    Renderer
	SP        ports.StorageProvider
	Notifier  ports.Notifier

	// OutputRoot is the local scratch root where narration and renders
	// land before upload.
	OutputRoot   string
	CleanupLocal bool

	MaxRetries int
	BaseDelay  time.Duration

	Log *logger.Logger
	Now func() time.Time
}

type Processor struct {
	orders    ports.OrderStore
	jobs      ports.JobStore
	extractor ports.Extractor
	scripts   ports.ScriptProvider
	narration ports.NarrationProvider
	engine    Renderer
	sp        ports.StorageProvider
	notifier  ports.Notifier

	outputRoot   string
	cleanupLocal bool
	maxRetries   int
	baseDelay    time.Duration

	log *logger.Logger
	now func() time.Time

	uploader *Uploader
	cleanup  *Cleanup
}

const (
	DefaultMaxRetries = 3
	DefaultBaseDelay  = 5 * time.Second
)

func New(d Deps) *Processor {
	log := d.Log
	if log == nil {
		log = logger.NewDefault()
	}
	log = log.WithComponent("processor")

	if d.MaxRetries <= 0 {
		d.MaxRetries = DefaultMaxRetries
	}
	if d.BaseDelay <= 0 {
		d.BaseDelay = DefaultBaseDelay
	}
	if d.Now == nil {
		d.Now = time.Now
	}

	return &Processor{
		orders:       d.Orders,
		jobs:         d.Jobs,
		extractor:    d.Extractor,
		scripts:      d.Scripts,
		narration:    d.Narration,
		engine:       d.Engine,
		sp:           d.SP,
		notifier:     d.Notifier,
		outputRoot:   d.OutputRoot,
		cleanupLocal: d.CleanupLocal,
		maxRetries:   d.MaxRetries,
		baseDelay:    d.BaseDelay,
		log:          log,
		now:          d.Now,
		uploader:     NewUploader(d.SP),
		cleanup:      NewCleanup(d.OutputRoot, d.CleanupLocal, d.SP),
	}
}

// ProcessJob orquesta el flujo completo del job
func (p *Processor) ProcessJob(ctx context.Context, jobID string) error {
	log := p.log.FromContext(ctx).WithJobID(jobID)

	job, err := p.jobs.GetJob(ctx, jobID)
	if err != nil {
		log.Error("job lookup failed", "error", err.Error())
		return err
	}
	if job.Status == models.StatusDone {
		// Entrega at-least-once: un id puede llegar dos veces.
		log.Warn("job already done, skipping")
		return nil
	}

	if err := p.jobs.MarkProcessing(ctx, jobID); err != nil {
		return p.failJob(ctx, job, errors.Wrap(err, "processor.status", "failed to mark job as processing"))
	}

	order, err := p.orders.GetOrder(ctx, job.OrderID)
	if err != nil {
		return p.failJob(ctx, job, errors.Wrap(err, "processor.order", "failed to load order"))
	}

	// 1. Datos de producto
	log.Debug("extracting product data", "url", order.ProductURL)
	product, err := p.extractor.Extract(ctx, order.ProductURL)
	if err != nil {
		return p.failJob(ctx, job, err)
	}

	// 2. Guion a partir de la plantilla elegida
	log.Debug("generating script", "template", job.Template)
	script, err := p.scripts.GenerateScript(ctx, job.Template, product, order.Preferences)
	if err != nil {
		return p.failJob(ctx, job, err)
	}

	// 3. Narración
	voiceID, _ := order.Preferences.Addons["voice_id"].(string)
	audio, err := p.narration.Synthesize(ctx, script, voiceID)
	if err != nil {
		return p.failJob(ctx, job, err)
	}

	orderDir := filepath.Join(p.outputRoot, SanitizeFilename(order.ID))
	if err := os.MkdirAll(orderDir, 0o755); err != nil {
		return p.failJob(ctx, job, errors.Wrap(err, "processor.scratch", "failed to create order dir"))
	}
	narrationPath := filepath.Join(orderDir, fmt.Sprintf("narration-%s.%s", SanitizeFilename(job.ID), p.narration.FileExt()))
	if err := os.WriteFile(narrationPath, audio, 0o644); err != nil {
		return p.failJob(ctx, job, errors.Wrap(err, "processor.scratch", "failed to write narration"))
	}

	// 4. Render de las cuatro plantillas. La plantilla del pedido manda
	// sobre el guion, pero el cliente recibe todas las variantes.
	var rendered []string
	for _, tmpl := range templates.All() {
		c, err := templates.Build(tmpl, product, order.Preferences, script, orderDir)
		if err != nil {
			return p.failJob(ctx, job, errors.WrapWithCode(err, errors.CodeComposition, "processor.compose", "failed to build composition"))
		}
		c.NarrationPath = narrationPath
		if keep, ok := order.Preferences.Addons["caption_files"].(bool); ok {
			c.KeepCaptionFile = keep
		}

		log.Debug("rendering template", "template", tmpl)
		outPath, err := p.engine.Render(ctx, c)
		if err != nil {
			return p.failJob(ctx, job, err)
		}
		rendered = append(rendered, outPath)
	}

	// 5. Entrega
	delivered, err := p.uploader.UploadRenders(ctx, order.ID, rendered)
	if err != nil {
		return p.failJob(ctx, job, errors.Composition("processor.deliver", err))
	}

	// 6. Cierre del job y del pedido en ese orden; el pedido refleja
	// siempre el último estado terminal del job.
	if err := p.jobs.MarkDone(ctx, job.ID, script, delivered); err != nil {
		return p.failJob(ctx, job, errors.Wrap(err, "processor.done", "failed to mark job done"))
	}
	if err := p.orders.UpdateOrderResult(ctx, order.ID, models.StatusDone, delivered, ""); err != nil {
		log.Error("order update failed after job done", "error", err.Error())
	}

	p.cleanup.CleanupOrder(order.ID, narrationPath, rendered)

	// 7. Aviso al comprador, sin afectar el estado del job.
	if p.notifier != nil && order.Email != "" {
		if err := p.notifier.SendCompletion(ctx, order, delivered); err != nil {
			log.Warn("completion notification failed", "error", err.Error())
		}
	}

	log.Info("job completed", "outputs", len(delivered))
	return nil
}

// failJob records the failure, schedules the automatic retry window and
// mirrors a terminal failure onto the order.
func (p *Processor) failJob(ctx context.Context, job *models.Job, cause error) error {
	log := p.log.FromContext(ctx).WithJobID(job.ID)

	msg := ""
	if cause != nil {
		msg = cause.Error()
		if len(msg) > 2000 {
			msg = msg[:2000]
		}

		var perr *errors.Error
		if errors.As(cause, &perr) {
			log.Error("job failed",
				"code", string(perr.Code),
				"op", perr.Op,
				"retry_count", job.RetryCount,
			)
		} else {
			log.Error("job failed", "error", msg, "retry_count", job.RetryCount)
		}
	}

	// El exponente usa el contador ya incrementado por MarkFailed.
	notBefore := p.now().Add(BackoffDelay(p.baseDelay, job.RetryCount+1))
	if err := p.jobs.MarkFailed(ctx, job.ID, msg, notBefore); err != nil {
		log.Error("failed to record job failure", "error", err.Error())
	}

	if job.RetryCount+1 >= p.maxRetries {
		log.Warn("job exhausted retries", "max_retries", p.maxRetries)
		if err := p.orders.UpdateOrderResult(ctx, job.OrderID, models.StatusFailed, nil, msg); err != nil {
			log.Error("order update failed after terminal failure", "error", err.Error())
		}
	}

	return cause
}
