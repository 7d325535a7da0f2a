package httpapi

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"promoreel/internal/httpapi/handlers"
	"promoreel/internal/httpkit"
	"promoreel/internal/pkg/logger"
	"promoreel/internal/pkg/middleware"
	"promoreel/internal/ports"
	"promoreel/internal/queue"
)

type Deps struct {
	Orders    ports.OrderStore
	Jobs      ports.JobStore
	Queue     queue.Queue
	Narration ports.NarrationProvider
	SP        ports.StorageProvider

	Pool *pgxpool.Pool
	RDB  *redis.Client

	Log *logger.Logger
}

func NewRouter(d Deps) http.Handler {
	log := d.Log
	if log == nil {
		log = logger.NewDefault()
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recovery(log))
	r.Use(middleware.Logging(log))
	r.Use(middleware.Timeout(60 * time.Second))

	// ---- CORS (checkout frontend) ----
	allowedOrigins := envCSV("CORS_ALLOWED_ORIGINS", []string{
		"http://localhost:8081",
		"http://localhost:5173",
	})
	r.Use(httpkit.CORS(httpkit.CORSOptions{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: false,
		MaxAgeSeconds:    600,
	}))

	h := handlers.New(handlers.Deps{
		Orders:    d.Orders,
		Jobs:      d.Jobs,
		Queue:     d.Queue,
		Narration: d.Narration,
		SP:        d.SP,
		Pool:      d.Pool,
		RDB:       d.RDB,
		Log:       log,
	})

	// ---- HEALTH ----
	r.Get("/health", h.Health)

	// ---- ORDERS ----
	r.Post("/orders", h.PostOrder)
	r.Get("/orders/{orderId}", h.GetOrder)

	// ---- JOBS ----
	r.Get("/jobs/{jobId}", h.GetJob)
	r.Post("/admin/jobs/{jobId}/retry", h.RetryJob)

	// ---- VOICES ----
	r.Get("/voices", h.GetVoices)

	return r
}

func envCSV(key string, def []string) []string {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
