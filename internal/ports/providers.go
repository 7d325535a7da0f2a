package ports

import (
	"context"

	"promoreel/internal/models"
)

// Extractor pulls structured product data out of a product reference URL.
type Extractor interface {
	Extract(ctx context.Context, url string) (*models.ProductData, error)
}

// ScriptProvider generates narration copy from product data + preferences.
type ScriptProvider interface {
	GenerateScript(ctx context.Context, template string, product *models.ProductData, prefs models.Preferences) (string, error)
	GenerateHook(ctx context.Context, product *models.ProductData, prefs models.Preferences) (string, error)
	GenerateCTA(ctx context.Context, product *models.ProductData, prefs models.Preferences) (string, error)
}

// NarrationProvider turns a script into a narration audio track.
type NarrationProvider interface {
	// Synthesize returns encoded audio bytes. voiceID may be empty, in which
	// case the provider's default voice is used.
	Synthesize(ctx context.Context, script, voiceID string) ([]byte, error)
	ListVoices(ctx context.Context) ([]models.VoiceOption, error)
	// FileExt names the container Synthesize encodes to ("wav", "mp3").
	FileExt() string
}

// Notifier delivers the completion message for a finished order.
// Implementations are fire-and-forget from the pipeline's perspective:
// an error here is logged, never rolled back into the job status.
type Notifier interface {
	SendCompletion(ctx context.Context, order *models.Order, files []string) error
}
