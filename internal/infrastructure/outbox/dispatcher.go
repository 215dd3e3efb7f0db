package outbox

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rcarvalho-pb/billing_engine-go/internal/domain/event"
	"github.com/rcarvalho-pb/billing_engine-go/internal/infra/logging"
)

type Publisher interface {
	Publish(event.Event) error
}

// Dispatcher polls for undelivered notifications and pushes them onto
// the event bus. A failed delivery stays unpublished and is picked up
// again on the next poll.
type Dispatcher struct {
	Repo         Repository
	EventBus     Publisher
	Logger       logging.Logger
	PollInterval time.Duration
	BatchSize    int
}

func (d *Dispatcher) Run(ctx context.Context) {
	ticker := time.NewTicker(d.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			d.DispatchOnce()
		}
	}
}

func (d *Dispatcher) DispatchOnce() {
	events, err := d.Repo.FindUnpublished(d.BatchSize)
	if err != nil {
		d.Logger.Error("outbox poll failed", map[string]any{"error": err.Error()})
		return
	}

	for _, evt := range events {
		var payload any

		if err := json.Unmarshal(evt.Payload, &payload); err != nil {
			d.Logger.Error("dropping undecodable outbox event", map[string]any{
				"outbox-id": evt.ID,
				"error":     err.Error(),
			})
			continue
		}

		if err := d.EventBus.Publish(event.Event{Type: evt.Type, Payload: payload}); err != nil {
			continue
		}

		if err := d.Repo.MarkPublished(evt.ID); err != nil {
			d.Logger.Error("failed to mark outbox event published", map[string]any{
				"outbox-id": evt.ID,
				"error":     err.Error(),
			})
		}
	}
}
