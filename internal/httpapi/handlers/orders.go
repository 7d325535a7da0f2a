package handlers

import (
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"promoreel/internal/httpkit"
	"promoreel/internal/models"
	"promoreel/internal/repositories"
	"promoreel/internal/templates"
)

type CreateOrderRequest struct {
	Email       string             `json:"email"`
	ProductURL  string             `json:"product_url"`
	CheckoutRef string             `json:"checkout_ref"`
	PlanID      string             `json:"plan_id"`
	Template    string             `json:"template"`
	Preferences models.Preferences `json:"preferences"`
}

func (h *Handler) PostOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := h.log.FromContext(ctx)

	var req CreateOrderRequest
	if err := httpkit.DecodeJSON(r, &req); err != nil {
		httpkit.WriteErr(w, 400, "VALIDATION_ERROR", "invalid json body", nil)
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		httpkit.WriteErr(w, 400, "VALIDATION_ERROR", "a valid email is required", map[string]any{"field": "email"})
		return
	}

	u, err := url.Parse(strings.TrimSpace(req.ProductURL))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		httpkit.WriteErr(w, 400, "VALIDATION_ERROR", "product_url must be an http(s) url", map[string]any{"field": "product_url"})
		return
	}

	if req.Template == "" {
		req.Template = templates.Default()
	}
	if !templates.Valid(req.Template) {
		httpkit.WriteErr(w, 400, "VALIDATION_ERROR", "unknown template", map[string]any{
			"field":   "template",
			"allowed": templates.All(),
		})
		return
	}

	if req.Preferences.BrandVoice == "" {
		req.Preferences.BrandVoice = models.VoicePlayful
	}
	if !models.ValidBrandVoice(req.Preferences.BrandVoice) {
		httpkit.WriteErr(w, 400, "VALIDATION_ERROR", "unknown brand voice", map[string]any{"field": "preferences.brand_voice"})
		return
	}

	now := time.Now().UTC()
	order := &models.Order{
		ID:          uuid.NewString(),
		CheckoutRef: strings.TrimSpace(req.CheckoutRef),
		PlanID:      strings.TrimSpace(req.PlanID),
		Email:       req.Email,
		Status:      models.StatusQueued,
		ProductURL:  u.String(),
		Preferences: req.Preferences,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := h.orders.CreateOrder(ctx, order); err != nil {
		log.Error("order insert failed", "error", err.Error())
		httpkit.WriteErr(w, 500, "INTERNAL_ERROR", "db insert failed", nil)
		return
	}

	job := &models.Job{
		ID:        uuid.NewString(),
		OrderID:   order.ID,
		Status:    models.StatusQueued,
		Template:  req.Template,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := h.jobs.CreateJob(ctx, job); err != nil {
		log.Error("job insert failed", "error", err.Error())
		httpkit.WriteErr(w, 500, "INTERNAL_ERROR", "db insert failed", nil)
		return
	}

	if err := h.queue.Enqueue(ctx, job.ID); err != nil {
		log.Error("enqueue failed", "job_id", job.ID, "error", err.Error())
		httpkit.WriteErr(w, 500, "INTERNAL_ERROR", "queue push failed", nil)
		return
	}

	log.Info("order created", "order_id", order.ID, "job_id", job.ID, "template", job.Template)
	httpkit.WriteJSON(w, 201, map[string]any{
		"order": orderView(order),
		"job":   jobView(job),
	})
}

func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	orderID := chi.URLParam(r, "orderId")

	order, err := h.orders.GetOrder(ctx, orderID)
	if err != nil {
		if errors.Is(err, repositories.ErrOrderNotFound) {
			httpkit.WriteErr(w, 404, "ORDER_NOT_FOUND", "order not found", map[string]any{"order_id": orderID})
			return
		}
		h.log.FromContext(ctx).Error("order lookup failed", "error", err.Error())
		httpkit.WriteErr(w, 500, "INTERNAL_ERROR", "db query failed", nil)
		return
	}

	resp := map[string]any{"order": orderView(order)}
	if job, err := h.jobs.GetJobByOrder(ctx, orderID); err == nil {
		resp["job"] = jobView(job)
	}

	httpkit.WriteJSON(w, 200, resp)
}

func orderView(o *models.Order) map[string]any {
	v := map[string]any{
		"id":           o.ID,
		"email":        o.Email,
		"status":       string(o.Status),
		"product_url":  o.ProductURL,
		"preferences":  o.Preferences,
		"output_files": o.OutputFiles,
		"created_at":   o.CreatedAt,
		"updated_at":   o.UpdatedAt,
	}
	if o.CheckoutRef != "" {
		v["checkout_ref"] = o.CheckoutRef
	}
	if o.PlanID != "" {
		v["plan_id"] = o.PlanID
	}
	if o.Error != "" {
		v["error"] = o.Error
	}
	return v
}
