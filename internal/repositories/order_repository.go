package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"promoreel/internal/models"
)

var ErrOrderNotFound = errors.New("order not found")

// OrderRepository persists orders.
//
// Table: orders(id, checkout_ref, plan_id, email, status, product_url,
// brand_voice, target_audience, key_benefits text[], addons_json jsonb,
// output_files text[], error_text, created_at, updated_at)
type OrderRepository struct {
	db *pgxpool.Pool
}

func NewOrderRepository(db *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{db: db}
}

func (r *OrderRepository) CreateOrder(ctx context.Context, o *models.Order) error {
	addons, err := json.Marshal(o.Preferences.Addons)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	o.CreatedAt = now
	o.UpdatedAt = now

	_, err = r.db.Exec(ctx, `
		INSERT INTO orders (id, checkout_ref, plan_id, email, status, product_url,
		                    brand_voice, target_audience, key_benefits, addons_json,
		                    created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
	`,
		o.ID, nullIfEmpty(o.CheckoutRef), nullIfEmpty(o.PlanID), o.Email, o.Status,
		o.ProductURL, o.Preferences.BrandVoice, o.Preferences.TargetAudience,
		o.Preferences.KeyBenefits, addons, o.CreatedAt, o.UpdatedAt,
	)
	return err
}

func (r *OrderRepository) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	var (
		o      models.Order
		addons []byte
	)
	err := r.db.QueryRow(ctx, `
		SELECT id, COALESCE(checkout_ref,''), COALESCE(plan_id,''), email, status,
		       product_url, brand_voice, target_audience, key_benefits,
		       COALESCE(addons_json,'{}'::jsonb), COALESCE(output_files,'{}'),
		       COALESCE(error_text,''), created_at, updated_at
		FROM orders
		WHERE id=$1
	`, id).Scan(
		&o.ID, &o.CheckoutRef, &o.PlanID, &o.Email, &o.Status,
		&o.ProductURL, &o.Preferences.BrandVoice, &o.Preferences.TargetAudience,
		&o.Preferences.KeyBenefits, &addons, &o.OutputFiles,
		&o.Error, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	if len(addons) > 0 {
		_ = json.Unmarshal(addons, &o.Preferences.Addons)
	}
	return &o, nil
}

// UpdateOrderResult writes the order's final state in lock-step with the job.
func (r *OrderRepository) UpdateOrderResult(ctx context.Context, id string, status models.Status, outputs []string, errText string) error {
	cmd, err := r.db.Exec(ctx, `
		UPDATE orders
		SET status=$2, output_files=$3, error_text=$4, updated_at=NOW()
		WHERE id=$1
	`, id, status, outputs, nullIfEmpty(errText))
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrOrderNotFound
	}
	return nil
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
