// Package notify delivers the "your videos are ready" message once an
// order finishes. Delivery is best effort; the pipeline never fails a
// job because an email bounced.
package notify

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mailgun/mailgun-go/v4"

	"promoreel/internal/models"
)

const sendTimeout = 30 * time.Second

// MailgunNotifier sends the completion email through Mailgun.
type MailgunNotifier struct {
	mg   mailgun.Mailgun
	from string
}

func NewMailgun(domain, apiKey, from string) *MailgunNotifier {
	return &MailgunNotifier{
		mg:   mailgun.NewMailgun(domain, apiKey),
		from: from,
	}
}

func (n *MailgunNotifier) SendCompletion(ctx context.Context, order *models.Order, files []string) error {
	subject := "Your promo videos are ready"
	body := completionBody(order, files)

	m := n.mg.NewMessage(n.from, subject, body)
	if err := m.AddRecipient(order.Email); err != nil {
		return fmt.Errorf("mailgun recipient: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()

	_, _, err := n.mg.Send(ctx, m)
	if err != nil {
		return fmt.Errorf("mailgun send: %w", err)
	}
	return nil
}

func completionBody(order *models.Order, files []string) string {
	var b strings.Builder
	b.WriteString("Hi,\n\n")
	fmt.Fprintf(&b, "Your order %s is done. We rendered %d videos for %s:\n\n", order.ID, len(files), order.ProductURL)
	for _, f := range files {
		fmt.Fprintf(&b, "  - %s\n", f)
	}
	b.WriteString("\nThanks for using Promoreel.\n")
	return b.String()
}
