package usecase

import (
	"context"

	"stylemart-backend/internal/domain"
)

// CartService manages the single lazily-created cart each user owns.
type CartService struct {
	Stores Stores
}

// CartForUser returns the user's cart, creating an empty one on first
// access.
func (s *CartService) CartForUser(ctx context.Context, userID int64) (*domain.Cart, error) {
	cart, err := s.Stores.CartByUser(ctx, userID)
	if err == nil {
		return cart, nil
	}
	if !IsNotFound(err) {
		return nil, err
	}
	return s.Stores.CreateCart(ctx, userID)
}

// AddItem appends a line to the cart, merging quantities when the same
// product+variant is added again.
func (s *CartService) AddItem(ctx context.Context, userID, productID int64, quantity int, variant map[string]string) (*domain.Cart, error) {
	if quantity <= 0 {
		return nil, ErrInvalidState("quantity must be greater than zero")
	}
	product, err := s.Stores.ProductByID(ctx, productID)
	if err != nil || product.Status != domain.ProductActive {
		if err != nil && !IsNotFound(err) {
			return nil, err
		}
		return nil, ErrNotFound("product")
	}

	cart, err := s.CartForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, item := range cart.Items {
		if item.ProductID == productID && domain.SameVariant(item.VariantData, variant) {
			if err := s.Stores.UpdateCartItemQuantity(ctx, item.ID, item.Quantity+quantity); err != nil {
				return nil, err
			}
			return s.Stores.CartByUser(ctx, userID)
		}
	}
	if err := s.Stores.AddCartItem(ctx, &domain.CartItem{
		CartID:      cart.ID,
		ProductID:   productID,
		Quantity:    quantity,
		VariantData: variant,
	}); err != nil {
		return nil, err
	}
	return s.Stores.CartByUser(ctx, userID)
}

func (s *CartService) UpdateItemQuantity(ctx context.Context, userID, itemID int64, quantity int) (*domain.Cart, error) {
	if quantity <= 0 {
		return nil, ErrInvalidState("quantity must be greater than zero")
	}
	if _, err := s.ownedItem(ctx, userID, itemID); err != nil {
		return nil, err
	}
	if err := s.Stores.UpdateCartItemQuantity(ctx, itemID, quantity); err != nil {
		return nil, err
	}
	return s.Stores.CartByUser(ctx, userID)
}

func (s *CartService) RemoveItem(ctx context.Context, userID, itemID int64) (*domain.Cart, error) {
	if _, err := s.ownedItem(ctx, userID, itemID); err != nil {
		return nil, err
	}
	if err := s.Stores.DeleteCartItem(ctx, itemID); err != nil {
		return nil, err
	}
	return s.Stores.CartByUser(ctx, userID)
}

// ownedItem resolves the item and confirms the owning cart belongs to the
// caller; foreign items read as missing.
func (s *CartService) ownedItem(ctx context.Context, userID, itemID int64) (*domain.CartItem, error) {
	item, err := s.Stores.CartItemByID(ctx, itemID)
	if err != nil {
		if IsNotFound(err) {
			return nil, ErrNotFound("cart item")
		}
		return nil, err
	}
	cart, err := s.Stores.CartByID(ctx, item.CartID)
	if err != nil || cart.UserID != userID {
		if err != nil && !IsNotFound(err) {
			return nil, err
		}
		return nil, ErrNotFound("cart item")
	}
	return item, nil
}
