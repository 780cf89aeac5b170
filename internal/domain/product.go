package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type ProductStatus string

const (
	ProductActive  ProductStatus = "active"
	ProductDraft   ProductStatus = "draft"
	ProductDeleted ProductStatus = "deleted"
)

type Product struct {
	ID           int64           `json:"id"`
	SellerID     int64           `json:"sellerId"`
	Name         string          `json:"name"`
	Description  string          `json:"description,omitempty"`
	Price        decimal.Decimal `json:"price"`
	Category     string          `json:"category,omitempty"`
	Gender       string          `json:"gender,omitempty"`
	SizeOptions  []string        `json:"sizeOptions,omitempty"`
	ColorOptions []string        `json:"colorOptions,omitempty"`
	Stock        int             `json:"stock"`
	Status       ProductStatus   `json:"status"`

	// Moderation fields, written only by admins.
	IsFlagged  bool   `json:"isFlagged"`
	FlagReason string `json:"flagReason,omitempty"`
	IsHidden   bool   `json:"isHidden"`

	Images    []ProductImage `json:"images,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

type ProductImage struct {
	ID              int64  `json:"id"`
	ProductID       int64  `json:"productId"`
	URL             string `json:"url"`
	IsAvatarPreview bool   `json:"isAvatarPreview"`
	SortOrder       int    `json:"sortOrder"`
}

// MainImageURL returns the first image url, or empty when the product has none.
func (p *Product) MainImageURL() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0].URL
}
