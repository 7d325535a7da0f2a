package notify

import (
	"context"

	"promoreel/internal/models"
	"promoreel/internal/pkg/logger"
)

// LogNotifier writes the completion message to the log instead of
// sending email. Used in development and tests.
type LogNotifier struct {
	log *logger.Logger
}

func NewLog(log *logger.Logger) *LogNotifier {
	if log == nil {
		log = logger.NewDefault()
	}
	return &LogNotifier{log: log.WithComponent("notify")}
}

func (n *LogNotifier) SendCompletion(ctx context.Context, order *models.Order, files []string) error {
	n.log.InfoContext(ctx, "order completion notification",
		"order_id", order.ID,
		"email", order.Email,
		"files", len(files),
	)
	return nil
}
