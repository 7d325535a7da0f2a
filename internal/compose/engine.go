package compose

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	apperrors "promoreel/internal/pkg/errors"
	"promoreel/internal/pkg/logger"
)

// Runner executes the external transcoder. Injected so tests never spawn
// processes.
type Runner func(ctx context.Context, name string, args []string) error

// ExecRunner runs the command and folds captured stderr into the error.
func ExecRunner(ctx context.Context, name string, args []string) error {
	cmd := exec.CommandContext(ctx, name, args...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s failed: %w, stderr: %s", name, err, tail(stderr.String(), 1000))
	}
	return nil
}

func tail(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}

type Config struct {
	// StockDir holds the stock video assets shots are cut from.
	StockDir string
	// FFmpegPath defaults to "ffmpeg" on PATH.
	FFmpegPath string
	Runner     Runner
	Log        *logger.Logger
}

// Engine turns Compositions into rendered video files. One transcoder
// invocation per composition; the call suspends until the process reports
// completion or failure and is never retried here. Failures propagate as
// the step's error.
type Engine struct {
	stockDir   string
	ffmpegPath string
	run        Runner
	log        *logger.Logger
}

func NewEngine(cfg Config) *Engine {
	log := cfg.Log
	if log == nil {
		log = logger.NewDefault()
	}
	ffmpegPath := cfg.FFmpegPath
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	run := cfg.Runner
	if run == nil {
		run = ExecRunner
	}

	return &Engine{
		stockDir:   cfg.StockDir,
		ffmpegPath: ffmpegPath,
		run:        run,
		log:        log.WithComponent("compose"),
	}
}

// Render produces one video file for the composition and returns its path.
// The output name carries a monotonic token, so repeated renders of the
// same composition never collide.
func (e *Engine) Render(ctx context.Context, c *Composition) (string, error) {
	if err := c.Validate(); err != nil {
		return "", apperrors.WrapWithCode(err, apperrors.CodeComposition, "compose.validate", "invalid render graph")
	}

	if err := os.MkdirAll(c.OutputDir, 0o755); err != nil {
		return "", apperrors.Composition("compose.outputdir", err)
	}

	token := time.Now().UnixNano()
	outPath := filepath.Join(c.OutputDir, fmt.Sprintf("%s-%d.mp4", c.Template, token))
	vttPath := filepath.Join(c.OutputDir, fmt.Sprintf("%s-%d.vtt", c.Template, token))

	if err := WriteVTT(vttPath, c.Captions); err != nil {
		return "", apperrors.Composition("compose.captions", err)
	}

	stock := ListStockAssets(e.stockDir)
	if len(stock) == 0 && len(c.Shots) > 0 {
		e.log.Warn("no stock assets available, rendering black base",
			"stock_dir", e.stockDir,
			"template", c.Template,
		)
	}

	args := buildArgs(c, stock, vttPath, outPath)

	e.log.Debug("invoking transcoder",
		"template", c.Template,
		"shots", len(c.Shots),
		"captions", len(c.Captions),
		"narration", c.NarrationPath != "",
		"output", outPath,
	)

	start := time.Now()
	if err := e.run(ctx, e.ffmpegPath, args); err != nil {
		_ = os.Remove(vttPath)
		return "", apperrors.Composition("compose.render", err)
	}

	e.log.Info("render complete",
		"template", c.Template,
		"output", outPath,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	if !c.KeepCaptionFile {
		// El .vtt es un artefacto intermedio salvo que el pedido lo pida.
		_ = os.Remove(vttPath)
	}

	return outPath, nil
}
