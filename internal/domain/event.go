package domain

import (
	"encoding/json"
	"time"
)

// PayPalEvent is the append-only audit log of webhook deliveries. EventID is
// the provider's unique event identifier and the deduplication key: a second
// delivery of the same id must be a no-op.
type PayPalEvent struct {
	ID          int64           `json:"id"`
	EventID     string          `json:"eventId"`
	EventType   string          `json:"eventType"`
	Payload     json.RawMessage `json:"payload"`
	ProcessedAt time.Time       `json:"processedAt"`
}
