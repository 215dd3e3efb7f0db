package notifications

import (
	"github.com/rcarvalho-pb/billing_engine-go/internal/domain/event"
	"github.com/rcarvalho-pb/billing_engine-go/internal/infra/logging"
)

// LogHandler is the terminal notification consumer: it writes every
// delivered billing event to the structured log.
type LogHandler struct {
	Logger logging.Logger
}

func (h *LogHandler) Handle(evt event.Event) error {
	h.Logger.Info("billing notification", map[string]any{
		"event-type": string(evt.Type),
		"payload":    evt.Payload,
	})
	return nil
}
