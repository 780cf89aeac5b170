package domain

import (
	"maps"
	"time"
)

// Cart holds not-yet-ordered selections. Exactly zero or one cart exists per
// user; it is created lazily on first access and survives order creation
// (only its items are deleted).
type Cart struct {
	ID        int64      `json:"id"`
	UserID    int64      `json:"userId"`
	Items     []CartItem `json:"items"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

type CartItem struct {
	ID          int64             `json:"id"`
	CartID      int64             `json:"cartId"`
	ProductID   int64             `json:"productId"`
	Quantity    int               `json:"quantity"`
	VariantData map[string]string `json:"variantData,omitempty"`
}

// SameVariant reports whether two variant selections are interchangeable.
// Repeat-adds with an equal variant merge quantities instead of creating a
// second line.
func SameVariant(a, b map[string]string) bool {
	return maps.Equal(a, b)
}
