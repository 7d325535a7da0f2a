package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"promoreel/internal/compose"
	"promoreel/internal/notify"
	"promoreel/internal/pkg/logger"
	"promoreel/internal/providers/extract"
	"promoreel/internal/providers/narration"
	"promoreel/internal/providers/script"
	"promoreel/internal/queue"
	"promoreel/internal/repositories"
	"promoreel/internal/storage"
	"promoreel/internal/worker"
	"promoreel/internal/worker/util"
)

func main() {
	_ = godotenv.Load()

	log := logger.New(logger.Config{
		Level:       util.Env("LOG_LEVEL", "info"),
		Format:      util.Env("LOG_FORMAT", "json"),
		ServiceName: "promoreel-worker",
	})

	dbURL := util.MustEnv("DATABASE_URL")
	queueBackend := util.Env("QUEUE_BACKEND", "db")
	outputRoot := util.Env("OUTPUT_ROOT", "/data/out")
	stockDir := util.Env("STOCK_ASSETS_DIR", "/data/stock")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		log.LogFatal("failed to connect to PostgreSQL", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		log.LogFatal("failed to ping PostgreSQL", err)
	}

	var rdb *redis.Client
	if queueBackend == "redis" {
		rdb = redis.NewClient(&redis.Options{Addr: util.MustEnv("REDIS_ADDR")})
		defer rdb.Close()

		if err := rdb.Ping(ctx).Err(); err != nil {
			log.LogFatal("failed to ping Redis", err)
		}
	}

	orders := repositories.NewOrderRepository(pool)
	jobs := repositories.NewJobRepository(pool)

	q, err := queue.New(queueBackend, rdb, util.Env("JOB_QUEUE_NAME", "promoreel:jobs"), jobs)
	if err != nil {
		log.LogFatal("failed to initialize queue", err)
	}

	// Proveedores: cualquier valor desconocido tumba el proceso acá,
	// nunca a mitad de un job.
	ex, err := extract.New()
	if err != nil {
		log.LogFatal("failed to initialize extract provider", err)
	}
	sc, err := script.New()
	if err != nil {
		log.LogFatal("failed to initialize script provider", err)
	}
	np, err := narration.New()
	if err != nil {
		log.LogFatal("failed to initialize narration provider", err)
	}
	nf, err := notify.New(log)
	if err != nil {
		log.LogFatal("failed to initialize notifier", err)
	}
	sp, err := storage.NewProvider()
	if err != nil {
		log.LogFatal("failed to initialize storage provider", err)
	}

	engine := compose.NewEngine(compose.Config{
		StockDir:   stockDir,
		FFmpegPath: util.Env("FFMPEG_PATH", "ffmpeg"),
		Log:        log,
	})

	log.Info("promoreel worker started",
		"queue_backend", q.Backend(),
		"storage_provider", sp.Provider(),
		"output_root", outputRoot,
	)

	err = worker.Run(ctx, worker.Deps{
		Queue:        q,
		Orders:       orders,
		Jobs:         jobs,
		Extractor:    ex,
		Scripts:      sc,
		Narration:    np,
		Engine:       engine,
		SP:           sp,
		Notifier:     nf,
		OutputRoot:   outputRoot,
		CleanupLocal: util.BoolEnv("CLEANUP_LOCAL", true),
		BaseDelay:    5 * time.Second,
		Log:          log,
	})
	if err != nil && ctx.Err() == nil {
		log.LogFatal("worker stopped", err)
	}
	log.Info("worker stopped")
}
