package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"promoreel/internal/models"
)

var ErrJobNotFound = errors.New("job not found")

const jobColumns = `id, order_id, status, template, retry_count,
	COALESCE(error_text,''), COALESCE(script,''), COALESCE(output_files,'{}'),
	not_before, created_at, updated_at`

// JobRepository persists pipeline jobs.
//
// Table: jobs(id, order_id, status, template, retry_count, error_text,
// script, output_files text[], not_before timestamptz, created_at, updated_at)
type JobRepository struct {
	db *pgxpool.Pool
}

func NewJobRepository(db *pgxpool.Pool) *JobRepository {
	return &JobRepository{db: db}
}

func (r *JobRepository) CreateJob(ctx context.Context, j *models.Job) error {
	now := time.Now().UTC()
	j.CreatedAt = now
	j.UpdatedAt = now

	_, err := r.db.Exec(ctx, `
		INSERT INTO jobs (id, order_id, status, template, retry_count, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
	`, j.ID, j.OrderID, j.Status, j.Template, j.RetryCount, j.CreatedAt, j.UpdatedAt)
	return err
}

func (r *JobRepository) GetJob(ctx context.Context, id string) (*models.Job, error) {
	row := r.db.QueryRow(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id=$1`, id)
	return scanJob(row)
}

func (r *JobRepository) GetJobByOrder(ctx context.Context, orderID string) (*models.Job, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+jobColumns+` FROM jobs WHERE order_id=$1 ORDER BY created_at DESC LIMIT 1`,
		orderID,
	)
	return scanJob(row)
}

func (r *JobRepository) MarkProcessing(ctx context.Context, id string) error {
	// Idempotente si el claim de la cola ya lo dejó en PROCESSING; un job
	// terminal (DONE/FAILED) nunca vuelve a PROCESSING por aquí.
	cmd, err := r.db.Exec(ctx, `
		UPDATE jobs SET status='PROCESSING', error_text=NULL, updated_at=NOW()
		WHERE id=$1 AND status IN ('QUEUED','PROCESSING')
	`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrJobNotFound
	}
	return nil
}

func (r *JobRepository) MarkDone(ctx context.Context, id, script string, outputs []string) error {
	cmd, err := r.db.Exec(ctx, `
		UPDATE jobs
		SET status='DONE', script=$2, output_files=$3, error_text=NULL,
		    not_before=NULL, updated_at=NOW()
		WHERE id=$1
	`, id, script, outputs)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrJobNotFound
	}
	return nil
}

func (r *JobRepository) MarkFailed(ctx context.Context, id, errText string, notBefore time.Time) error {
	if len(errText) > 2000 {
		errText = errText[:2000]
	}
	cmd, err := r.db.Exec(ctx, `
		UPDATE jobs
		SET status='FAILED', error_text=$2, retry_count=retry_count+1,
		    not_before=$3, updated_at=NOW()
		WHERE id=$1
	`, id, errText, notBefore)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrJobNotFound
	}
	return nil
}

// ClaimOldestQueued picks the oldest QUEUED job and flips it to PROCESSING
// in a single statement. SKIP LOCKED keeps concurrent pollers from blocking
// on (or double-claiming) the same row.
func (r *JobRepository) ClaimOldestQueued(ctx context.Context) (*models.Job, error) {
	row := r.db.QueryRow(ctx, `
		UPDATE jobs SET status='PROCESSING', updated_at=NOW()
		WHERE id = (
			SELECT id FROM jobs
			WHERE status='QUEUED'
			ORDER BY created_at ASC, id ASC
			FOR UPDATE SKIP LOCKED
			LIMIT 1
		)
		RETURNING `+jobColumns,
	)
	j, err := scanJob(row)
	if errors.Is(err, ErrJobNotFound) {
		return nil, nil
	}
	return j, err
}

func (r *JobRepository) RequeueForRetry(ctx context.Context, maxRetries int, now time.Time) ([]string, error) {
	rows, err := r.db.Query(ctx, `
		UPDATE jobs
		SET status='QUEUED', not_before=NULL, updated_at=NOW()
		WHERE status='FAILED' AND retry_count < $1
		  AND not_before IS NOT NULL AND not_before <= $2
		RETURNING id
	`, maxRetries, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *JobRepository) ResetForRetry(ctx context.Context, id string) error {
	cmd, err := r.db.Exec(ctx, `
		UPDATE jobs
		SET status='QUEUED', error_text=NULL, not_before=NULL, updated_at=NOW()
		WHERE id=$1
	`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrJobNotFound
	}
	return nil
}

func scanJob(row pgx.Row) (*models.Job, error) {
	var j models.Job
	err := row.Scan(
		&j.ID, &j.OrderID, &j.Status, &j.Template, &j.RetryCount,
		&j.Error, &j.Script, &j.OutputFiles,
		&j.NotBefore, &j.CreatedAt, &j.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}
	return &j, nil
}
