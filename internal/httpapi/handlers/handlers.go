package handlers

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"promoreel/internal/pkg/logger"
	"promoreel/internal/ports"
	"promoreel/internal/queue"
)

type Deps struct {
	Orders    ports.OrderStore
	Jobs      ports.JobStore
	Queue     queue.Queue
	Narration ports.NarrationProvider
	SP        ports.StorageProvider

	// Pool and RDB are only used by the deep health check. RDB is nil
	// when the queue runs on the db backend.
	Pool *pgxpool.Pool
	RDB  *redis.Client

	Log *logger.Logger
}

type Handler struct {
	orders    ports.OrderStore
	jobs      ports.JobStore
	queue     queue.Queue
	narration ports.NarrationProvider
	sp        ports.StorageProvider

	pool *pgxpool.Pool
	rdb  *redis.Client

	log *logger.Logger
}

func New(d Deps) *Handler {
	log := d.Log
	if log == nil {
		log = logger.NewDefault()
	}
	return &Handler{
		orders:    d.Orders,
		jobs:      d.Jobs,
		queue:     d.Queue,
		narration: d.Narration,
		sp:        d.SP,
		pool:      d.Pool,
		rdb:       d.RDB,
		log:       log.WithComponent("http"),
	}
}
