package domain

import (
	"encoding/json"
	"time"
)

type PaymentProvider string

const ProviderPayPal PaymentProvider = "PAYPAL"

type PaymentStatus string

const (
	PaymentCreated   PaymentStatus = "CREATED"
	PaymentCompleted PaymentStatus = "COMPLETED"
	PaymentFailed    PaymentStatus = "FAILED"
	PaymentCancelled PaymentStatus = "CANCELLED"
)

// Payment records one attempt to collect an order's total through an external
// provider. An order may accumulate several attempts. RawResponse keeps the
// provider's last payload verbatim for audit and debugging.
type Payment struct {
	ID                int64           `json:"id"`
	OrderID           int64           `json:"orderId"`
	Provider          PaymentProvider `json:"provider"`
	ProviderPaymentID string          `json:"providerPaymentId"`
	Status            PaymentStatus   `json:"status"`
	RawResponse       json.RawMessage `json:"-"`
	CreatedAt         time.Time       `json:"createdAt"`
	UpdatedAt         time.Time       `json:"updatedAt"`
}
