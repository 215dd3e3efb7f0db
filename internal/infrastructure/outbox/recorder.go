package outbox

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/rcarvalho-pb/billing_engine-go/internal/domain/event"
)

// Recorder is the notification sink handed to the billing service: it
// persists each event instead of delivering it inline. Workers record
// concurrently, so IDs must not be timestamp-based.
type Recorder struct {
	Repo Repository
}

func (r *Recorder) Handle(evt event.Event) error {
	payload, err := json.Marshal(evt.Payload)
	if err != nil {
		return fmt.Errorf("marshal %s payload: %w", evt.Type, err)
	}

	return r.Repo.Save(OutboxEvent{
		ID:        uuid.NewString(),
		Type:      evt.Type,
		Payload:   payload,
		CreatedAt: time.Now(),
	})
}
