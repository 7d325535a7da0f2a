package models

import "time"

// Status is the shared lifecycle enum for orders and jobs.
type Status string

const (
	StatusQueued     Status = "QUEUED"
	StatusProcessing Status = "PROCESSING"
	StatusDone       Status = "DONE"
	StatusFailed     Status = "FAILED"
)

// BrandVoice is the tone the generated narration is written in.
type BrandVoice string

const (
	VoicePlayful  BrandVoice = "playful"
	VoiceMinimal  BrandVoice = "minimal"
	VoiceClinical BrandVoice = "clinical"
)

// ValidBrandVoice reports whether v is one of the supported voices.
func ValidBrandVoice(v BrandVoice) bool {
	switch v {
	case VoicePlayful, VoiceMinimal, VoiceClinical:
		return true
	}
	return false
}

// Preferences are the customer-supplied generation preferences carried on an
// order. Addons is an opaque add-on blob (narration voice id, caption file
// delivery, etc.); the pipeline only reads the keys it knows.
type Preferences struct {
	BrandVoice     BrandVoice     `json:"brand_voice"`
	TargetAudience string         `json:"target_audience"`
	KeyBenefits    []string       `json:"key_benefits"`
	Addons         map[string]any `json:"addons,omitempty"`
}

type Order struct {
	ID          string      `json:"id"`
	CheckoutRef string      `json:"checkout_ref,omitempty"`
	PlanID      string      `json:"plan_id,omitempty"`
	Email       string      `json:"email"`
	Status      Status      `json:"status"`
	ProductURL  string      `json:"product_url"`
	Preferences Preferences `json:"preferences"`
	OutputFiles []string    `json:"output_files,omitempty"`
	Error       string      `json:"error,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}
