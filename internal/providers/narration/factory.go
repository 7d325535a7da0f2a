package narration

import (
	"fmt"
	"os"

	"promoreel/internal/ports"
)

// New selects the narration provider from NARRATION_PROVIDER.
func New() (ports.NarrationProvider, error) {
	provider := os.Getenv("NARRATION_PROVIDER")
	if provider == "" {
		provider = "tone"
	}

	switch provider {
	case "tone":
		return NewTone(), nil

	case "elevenlabs":
		apiKey := os.Getenv("ELEVENLABS_API_KEY")
		if apiKey == "" {
			return nil, fmt.Errorf("elevenlabs narration provider requires ELEVENLABS_API_KEY")
		}
		return NewElevenLabs(apiKey, os.Getenv("ELEVENLABS_BASE_URL")), nil

	default:
		return nil, fmt.Errorf("unknown narration provider: %s", provider)
	}
}
