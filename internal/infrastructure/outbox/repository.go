package outbox

import (
	"time"

	"github.com/rcarvalho-pb/billing_engine-go/internal/domain/event"
)

// OutboxEvent is a billing notification persisted before delivery, so
// a crash between resolving an invoice and notifying cannot lose the
// notification. Delivery is at-least-once.
type OutboxEvent struct {
	ID        string
	Type      event.Type
	Payload   []byte
	Published bool
	CreatedAt time.Time
}

type Repository interface {
	Save(OutboxEvent) error
	FindUnpublished(int) ([]OutboxEvent, error)
	MarkPublished(string) error
}
