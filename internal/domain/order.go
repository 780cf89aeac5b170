package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderPaid      OrderStatus = "paid"
	OrderCancelled OrderStatus = "cancelled"
	// OrderRefunded is part of the status taxonomy but no workflow assigns
	// it today; refund webhooks move orders to cancelled instead.
	OrderRefunded OrderStatus = "refunded"
)

// Order is an immutable-after-creation snapshot of cart contents. TotalAmount
// equals the sum of unit_price*quantity over its items, computed once at
// creation and never recomputed.
type Order struct {
	ID          int64           `json:"id"`
	UserID      int64           `json:"userId"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	Currency    string          `json:"currency"`
	Status      OrderStatus     `json:"status"`
	Items       []OrderItem     `json:"items,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

type OrderItem struct {
	ID        int64 `json:"id"`
	OrderID   int64 `json:"orderId"`
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
	// UnitPrice is the product price frozen at order time; it must not track
	// later catalog price changes.
	UnitPrice   decimal.Decimal   `json:"unitPrice"`
	VariantData map[string]string `json:"variantData,omitempty"`
}
