package models

import "time"

// Job is the pipeline's unit of work for one order's generation run.
// Status transitions are monotonic except the administrative reset path,
// which returns the job to QUEUED and clears the error.
type Job struct {
	ID          string   `json:"id"`
	OrderID     string   `json:"order_id"`
	Status      Status   `json:"status"`
	Template    string   `json:"template"`
	RetryCount  int      `json:"retry_count"`
	Error       string   `json:"error,omitempty"`
	Script      string   `json:"script,omitempty"`
	OutputFiles []string `json:"output_files,omitempty"`

	// NotBefore gates automatic retry re-queueing. A FAILED job below the
	// retry limit becomes eligible for QUEUED again once this passes.
	// Persisted so pending backoffs survive a worker restart.
	NotBefore *time.Time `json:"not_before,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
