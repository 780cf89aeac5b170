package usecase

import (
	"context"

	"github.com/shopspring/decimal"

	"stylemart-backend/internal/domain"
)

type ProductService struct {
	Stores Stores
}

func (s *ProductService) List(ctx context.Context, f ProductFilter) ([]domain.Product, int, error) {
	f.Page = f.Page.Normalized()
	return s.Stores.ListProducts(ctx, f)
}

// Detail hides soft-deleted products from everyone.
func (s *ProductService) Detail(ctx context.Context, productID int64) (*domain.Product, error) {
	product, err := s.Stores.ProductByID(ctx, productID)
	if err != nil || product.Status == domain.ProductDeleted {
		if err != nil && !IsNotFound(err) {
			return nil, err
		}
		return nil, ErrNotFound("product")
	}
	return product, nil
}

func (s *ProductService) CreateForSeller(ctx context.Context, seller *domain.User, p *domain.Product) (*domain.Product, error) {
	if err := ensureSeller(seller); err != nil {
		return nil, err
	}
	p.SellerID = seller.ID
	if p.Status == "" {
		p.Status = domain.ProductActive
	}
	if err := s.Stores.CreateProduct(ctx, p); err != nil {
		return nil, err
	}
	return s.Stores.ProductByID(ctx, p.ID)
}

// ProductPatch carries partial updates; nil fields stay untouched.
type ProductPatch struct {
	Name         *string
	Description  *string
	Price        *decimal.Decimal
	Category     *string
	Gender       *string
	SizeOptions  *[]string
	ColorOptions *[]string
	Stock        *int
	Status       *domain.ProductStatus
}

func (s *ProductService) UpdateForSeller(ctx context.Context, seller *domain.User, productID int64, patch ProductPatch) (*domain.Product, error) {
	if err := ensureSeller(seller); err != nil {
		return nil, err
	}
	product, err := s.ownedProduct(ctx, seller, productID)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		product.Name = *patch.Name
	}
	if patch.Description != nil {
		product.Description = *patch.Description
	}
	if patch.Price != nil {
		product.Price = *patch.Price
	}
	if patch.Category != nil {
		product.Category = *patch.Category
	}
	if patch.Gender != nil {
		product.Gender = *patch.Gender
	}
	if patch.SizeOptions != nil {
		product.SizeOptions = *patch.SizeOptions
	}
	if patch.ColorOptions != nil {
		product.ColorOptions = *patch.ColorOptions
	}
	if patch.Stock != nil {
		if *patch.Stock < 0 {
			return nil, ErrInvalidState("stock must not be negative")
		}
		product.Stock = *patch.Stock
	}
	if patch.Status != nil {
		product.Status = *patch.Status
	}
	if err := s.Stores.UpdateProduct(ctx, product); err != nil {
		return nil, err
	}
	return s.Stores.ProductByID(ctx, product.ID)
}

// SoftDelete marks the product deleted; rows are never removed so order
// items keep a valid reference.
func (s *ProductService) SoftDelete(ctx context.Context, seller *domain.User, productID int64) error {
	if err := ensureSeller(seller); err != nil {
		return err
	}
	product, err := s.ownedProduct(ctx, seller, productID)
	if err != nil {
		return err
	}
	product.Status = domain.ProductDeleted
	return s.Stores.UpdateProduct(ctx, product)
}

func (s *ProductService) ownedProduct(ctx context.Context, seller *domain.User, productID int64) (*domain.Product, error) {
	product, err := s.Stores.ProductByID(ctx, productID)
	if err != nil {
		if IsNotFound(err) {
			return nil, ErrNotFound("product")
		}
		return nil, err
	}
	if seller.Role != domain.RoleAdmin && product.SellerID != seller.ID {
		return nil, ErrForbidden("not authorized to modify this product")
	}
	return product, nil
}

func ensureSeller(user *domain.User) error {
	if user.Role != domain.RoleSeller && user.Role != domain.RoleAdmin {
		return ErrForbidden("seller permissions required")
	}
	return nil
}
