package usecase

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"stylemart-backend/internal/ai"
	"stylemart-backend/internal/domain"
)

// AvatarService records avatar rendering requests, drives the image chain and
// persists the outcome. Generated URLs for a product are also attached to the
// product as preview images.
type AvatarService struct {
	Stores Stores
	Chain  *ai.AvatarChain
	Log    *zap.Logger
}

type AvatarResult struct {
	RequestID string                     `json:"requestId"`
	Status    domain.AvatarRequestStatus `json:"status"`
	ImageURLs []string                   `json:"imageUrls,omitempty"`
}

func (s *AvatarService) ListPresets(ctx context.Context) ([]domain.AvatarPreset, error) {
	return s.Stores.ListActivePresets(ctx)
}

// UpsertPreset creates or updates a preset. Admin-only at the server layer.
func (s *AvatarService) UpsertPreset(ctx context.Context, preset *domain.AvatarPreset) (*domain.AvatarPreset, error) {
	if preset.Name == "" {
		return nil, ErrInvalidState("preset name must not be empty")
	}
	if preset.Status == "" {
		preset.Status = domain.PresetActive
	}
	if preset.ID == 0 {
		if err := s.Stores.CreatePreset(ctx, preset); err != nil {
			return nil, err
		}
		return preset, nil
	}
	if _, err := s.Stores.PresetByID(ctx, preset.ID); err != nil {
		if IsNotFound(err) {
			return nil, ErrNotFound("avatar preset")
		}
		return nil, err
	}
	if err := s.Stores.UpdatePreset(ctx, preset); err != nil {
		return nil, err
	}
	return preset, nil
}

// Render generates avatar images for the caller. The request row is written
// before the image call so failures leave an auditable FAILED record.
func (s *AvatarService) Render(ctx context.Context, userID, presetID int64, productID *int64, styleParams map[string]string, imageCount int) (*AvatarResult, error) {
	if imageCount <= 0 {
		imageCount = 1
	}
	if imageCount > 4 {
		imageCount = 4
	}

	preset, err := s.Stores.PresetByID(ctx, presetID)
	if err != nil || preset.Status != domain.PresetActive {
		if err != nil && !IsNotFound(err) {
			return nil, err
		}
		return nil, ErrInvalidState("avatar preset is not available")
	}

	var subject *ai.AvatarSubject
	var product *domain.Product
	if productID != nil {
		product, err = s.Stores.ProductByID(ctx, *productID)
		if err != nil || product.Status != domain.ProductActive {
			if err != nil && !IsNotFound(err) {
				return nil, err
			}
			return nil, ErrNotFound("product")
		}
		subject = &ai.AvatarSubject{
			ProductName:     product.Name,
			ProductCategory: product.Category,
		}
	}

	request := &domain.AvatarRequest{
		RequestID:   uuid.NewString(),
		UserID:      userID,
		ProductID:   productID,
		PresetID:    preset.ID,
		StyleParams: styleParams,
		ImageCount:  imageCount,
		Status:      domain.AvatarRequestPending,
	}
	if err := s.Stores.CreateAvatarRequest(ctx, request); err != nil {
		return nil, err
	}

	urls, err := s.Chain.Generate(ctx, subject, preset.Parameters, styleParams, imageCount)
	if err != nil {
		if uerr := s.Stores.UpdateAvatarRequestResult(ctx, request.ID, domain.AvatarRequestFailed, nil); uerr != nil {
			s.logger().Error("mark avatar request failed",
				zap.String("request_id", request.RequestID), zap.Error(uerr))
		}
		return nil, &ErrGateway{Reason: "avatar image generation", Err: err}
	}

	if err := s.Stores.UpdateAvatarRequestResult(ctx, request.ID, domain.AvatarRequestCompleted, urls); err != nil {
		return nil, err
	}

	if product != nil && len(urls) > 0 {
		images := make([]domain.ProductImage, 0, len(urls))
		for i, u := range urls {
			images = append(images, domain.ProductImage{
				ProductID:       product.ID,
				URL:             u,
				IsAvatarPreview: true,
				SortOrder:       len(product.Images) + i,
			})
		}
		if err := s.Stores.AddProductImages(ctx, images); err != nil {
			// The render succeeded; losing the preview attachment is logged,
			// not fatal.
			s.logger().Warn("attach avatar previews",
				zap.Int64("product_id", product.ID), zap.Error(err))
		}
	}

	s.logger().Info("avatar rendered",
		zap.String("request_id", request.RequestID),
		zap.Int("image_count", len(urls)))
	return &AvatarResult{
		RequestID: request.RequestID,
		Status:    domain.AvatarRequestCompleted,
		ImageURLs: urls,
	}, nil
}

func (s *AvatarService) logger() *zap.Logger {
	if s.Log != nil {
		return s.Log
	}
	return zap.NewNop()
}
