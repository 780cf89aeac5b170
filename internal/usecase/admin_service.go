package usecase

import (
	"context"

	"go.uber.org/zap"

	"stylemart-backend/internal/domain"
)

// AdminService exposes the moderation surface. Every caller has already been
// gated to the admin role by the server layer; methods here only validate
// the action itself.
type AdminService struct {
	Stores Stores
	Log    *zap.Logger
}

func (s *AdminService) ListUsers(ctx context.Context, f UserFilter) ([]domain.User, int, error) {
	f.Page = f.Page.Normalized()
	return s.Stores.ListUsers(ctx, f)
}

func (s *AdminService) ListProducts(ctx context.Context, f ProductFilter) ([]domain.Product, int, error) {
	f.Page = f.Page.Normalized()
	return s.Stores.ListProducts(ctx, f)
}

func (s *AdminService) ListOrders(ctx context.Context, f OrderFilter) ([]domain.Order, int, error) {
	f.Page = f.Page.Normalized()
	return s.Stores.ListOrders(ctx, f)
}

// ModerateProduct applies one moderation action. Approve clears both the flag
// and the hidden bit; hide and flag are independent toggles.
func (s *AdminService) ModerateProduct(ctx context.Context, productID int64, action, reason string) (*domain.Product, error) {
	product, err := s.Stores.ProductByID(ctx, productID)
	if err != nil {
		if IsNotFound(err) {
			return nil, ErrNotFound("product")
		}
		return nil, err
	}

	switch action {
	case "approve":
		product.IsFlagged = false
		product.FlagReason = ""
		product.IsHidden = false
	case "hide":
		product.IsHidden = true
	case "unhide":
		product.IsHidden = false
	case "flag":
		product.IsFlagged = true
		product.FlagReason = reason
	case "unflag":
		product.IsFlagged = false
		product.FlagReason = ""
	default:
		return nil, ErrInvalidState("unknown moderation action")
	}

	if err := s.Stores.UpdateProduct(ctx, product); err != nil {
		return nil, err
	}
	s.logger().Info("product moderated",
		zap.Int64("product_id", product.ID),
		zap.String("action", action))
	return product, nil
}

// SetUserStatus activates, deactivates or bans an account. A banned or
// deactivated user keeps their rows; only login and token validation refuse
// them.
func (s *AdminService) SetUserStatus(ctx context.Context, userID int64, status domain.UserStatus) (*domain.User, error) {
	switch status {
	case domain.UserActive, domain.UserDeactivated, domain.UserBanned:
	default:
		return nil, ErrInvalidState("unknown user status")
	}
	user, err := s.Stores.UserByID(ctx, userID)
	if err != nil {
		if IsNotFound(err) {
			return nil, ErrNotFound("user")
		}
		return nil, err
	}
	if user.Role == domain.RoleAdmin && status != domain.UserActive {
		return nil, ErrInvalidState("admin accounts cannot be deactivated")
	}
	user.Status = status
	if err := s.Stores.UpdateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *AdminService) logger() *zap.Logger {
	if s.Log != nil {
		return s.Log
	}
	return zap.NewNop()
}
