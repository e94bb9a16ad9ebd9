package notifier

import (
	"context"
	"log/slog"

	"github.com/portfoliopro/folio/internal/log"
)

// Data is one outbound message.
type Data struct {
	Recipients []string
	Subject    string
	Body       string
}

// Notifier delivers messages to tenants. Delivery transports are pluggable;
// the worker only sees this interface.
type Notifier interface {
	Send(ctx context.Context, data Data) error
}

// LogNotifier writes deliveries to the structured log instead of sending
// them. It is the default transport until a real one is configured.
type LogNotifier struct{}

func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

func (n *LogNotifier) Send(ctx context.Context, data Data) error {
	log.Info(ctx, "Delivering notification",
		slog.Int("recipients", len(data.Recipients)),
		slog.String("subject", data.Subject))

	return nil
}
