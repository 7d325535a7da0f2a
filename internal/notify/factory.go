package notify

import (
	"fmt"
	"os"

	"promoreel/internal/pkg/logger"
	"promoreel/internal/ports"
)

// New selects the notifier from NOTIFY_PROVIDER.
func New(log *logger.Logger) (ports.Notifier, error) {
	provider := os.Getenv("NOTIFY_PROVIDER")
	if provider == "" {
		provider = "log"
	}

	switch provider {
	case "log":
		return NewLog(log), nil

	case "mailgun":
		domain := os.Getenv("MAILGUN_DOMAIN")
		apiKey := os.Getenv("MAILGUN_API_KEY")
		from := os.Getenv("MAILGUN_FROM")
		if domain == "" || apiKey == "" || from == "" {
			return nil, fmt.Errorf("mailgun notifier requires MAILGUN_DOMAIN, MAILGUN_API_KEY and MAILGUN_FROM")
		}
		return NewMailgun(domain, apiKey, from), nil

	default:
		return nil, fmt.Errorf("unknown notify provider: %s", provider)
	}
}
