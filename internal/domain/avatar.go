package domain

import "time"

type AvatarPresetStatus string

const (
	PresetActive   AvatarPresetStatus = "ACTIVE"
	PresetInactive AvatarPresetStatus = "INACTIVE"
)

// AvatarPreset describes a reusable avatar configuration (body type, gender,
// skin tone, style keywords) maintained by admins.
type AvatarPreset struct {
	ID          int64              `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description,omitempty"`
	Status      AvatarPresetStatus `json:"status"`
	Parameters  map[string]string  `json:"parameters"`
	CreatedAt   time.Time          `json:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt"`
}

type AvatarRequestStatus string

const (
	AvatarRequestPending   AvatarRequestStatus = "PENDING"
	AvatarRequestCompleted AvatarRequestStatus = "COMPLETED"
	AvatarRequestFailed    AvatarRequestStatus = "FAILED"
)

// AvatarRequest records one avatar rendering request and its outcome.
type AvatarRequest struct {
	ID          int64               `json:"id"`
	RequestID   string              `json:"requestId"`
	UserID      int64               `json:"userId"`
	ProductID   *int64              `json:"productId,omitempty"`
	PresetID    int64               `json:"presetId"`
	StyleParams map[string]string   `json:"styleParams,omitempty"`
	ImageCount  int                 `json:"imageCount"`
	Status      AvatarRequestStatus `json:"status"`
	ImageURLs   []string            `json:"imageUrls,omitempty"`
	CreatedAt   time.Time           `json:"createdAt"`
	UpdatedAt   time.Time           `json:"updatedAt"`
}
