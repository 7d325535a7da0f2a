package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"promoreel/internal/httpkit"
	"promoreel/internal/models"
	"promoreel/internal/repositories"
)

func (h *Handler) GetJob(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	jobID := chi.URLParam(r, "jobId")

	job, err := h.jobs.GetJob(ctx, jobID)
	if err != nil {
		if errors.Is(err, repositories.ErrJobNotFound) {
			httpkit.WriteErr(w, 404, "JOB_NOT_FOUND", "job not found", map[string]any{"job_id": jobID})
			return
		}
		h.log.FromContext(ctx).Error("job lookup failed", "error", err.Error())
		httpkit.WriteErr(w, 500, "INTERNAL_ERROR", "db query failed", nil)
		return
	}

	httpkit.WriteJSON(w, 200, map[string]any{"job": jobView(job)})
}

// RetryJob is the administrative escape hatch: back to the queue with a
// clean error slate, no matter how many times the job has failed.
func (h *Handler) RetryJob(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := h.log.FromContext(ctx)
	jobID := chi.URLParam(r, "jobId")

	job, err := h.jobs.GetJob(ctx, jobID)
	if err != nil {
		if errors.Is(err, repositories.ErrJobNotFound) {
			httpkit.WriteErr(w, 404, "JOB_NOT_FOUND", "job not found", map[string]any{"job_id": jobID})
			return
		}
		log.Error("job lookup failed", "error", err.Error())
		httpkit.WriteErr(w, 500, "INTERNAL_ERROR", "db query failed", nil)
		return
	}

	if job.Status == models.StatusProcessing {
		httpkit.WriteErr(w, 409, "CONFLICT", "job is currently processing", map[string]any{"job_id": jobID})
		return
	}

	if err := h.jobs.ResetForRetry(ctx, jobID); err != nil {
		log.Error("job reset failed", "error", err.Error())
		httpkit.WriteErr(w, 500, "INTERNAL_ERROR", "db update failed", nil)
		return
	}

	if err := h.queue.Enqueue(ctx, jobID); err != nil {
		log.Error("enqueue failed", "job_id", jobID, "error", err.Error())
		httpkit.WriteErr(w, 500, "INTERNAL_ERROR", "queue push failed", nil)
		return
	}

	log.Info("job reset for retry", "job_id", jobID)

	job.Status = models.StatusQueued
	job.Error = ""
	job.NotBefore = nil
	httpkit.WriteJSON(w, 200, map[string]any{"job": jobView(job)})
}

func jobView(j *models.Job) map[string]any {
	v := map[string]any{
		"id":          j.ID,
		"order_id":    j.OrderID,
		"status":      string(j.Status),
		"template":    j.Template,
		"retry_count": j.RetryCount,
		"created_at":  j.CreatedAt,
		"updated_at":  j.UpdatedAt,
	}
	if j.Error != "" {
		v["error"] = j.Error
	}
	if j.Script != "" {
		v["script"] = j.Script
	}
	if len(j.OutputFiles) > 0 {
		v["output_files"] = j.OutputFiles
	}
	if j.NotBefore != nil {
		v["not_before"] = j.NotBefore
	}
	return v
}
