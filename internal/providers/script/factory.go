package script

import (
	"fmt"
	"os"

	"promoreel/internal/ports"
)

// New selects the script provider from SCRIPT_PROVIDER.
func New() (ports.ScriptProvider, error) {
	provider := os.Getenv("SCRIPT_PROVIDER")
	if provider == "" {
		provider = "template"
	}

	switch provider {
	case "template":
		return NewTemplate(), nil

	case "openai":
		apiKey := os.Getenv("OPENAI_API_KEY")
		if apiKey == "" {
			return nil, fmt.Errorf("openai script provider requires OPENAI_API_KEY")
		}
		return NewOpenAI(apiKey, os.Getenv("OPENAI_MODEL"), os.Getenv("OPENAI_BASE_URL")), nil

	default:
		return nil, fmt.Errorf("unknown script provider: %s", provider)
	}
}
