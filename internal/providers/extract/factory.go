package extract

import (
	"fmt"
	"os"

	"promoreel/internal/ports"
)

// New selects the extractor from EXTRACT_PROVIDER. Unknown values fail
// fast at startup instead of surfacing mid-pipeline.
func New() (ports.Extractor, error) {
	provider := os.Getenv("EXTRACT_PROVIDER")
	if provider == "" {
		provider = "static"
	}

	switch provider {
	case "static":
		return NewStatic(), nil
	case "http":
		return NewHTTP(nil), nil
	default:
		return nil, fmt.Errorf("unknown extract provider: %s", provider)
	}
}
