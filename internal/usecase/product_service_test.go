package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"stylemart-backend/internal/domain"
	"stylemart-backend/internal/infrastructure/memory"
	"stylemart-backend/internal/usecase"
)

func TestProductSellerOwnership(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	svc := &usecase.ProductService{Stores: store}

	seller := seedUser(t, store, domain.RoleSeller)
	rival := seedUser(t, store, domain.RoleSeller)
	buyer := seedUser(t, store, domain.RoleBuyer)
	admin := seedUser(t, store, domain.RoleAdmin)

	product, err := svc.CreateForSeller(ctx, seller, &domain.Product{
		Name:  "Coat",
		Price: decimal.RequireFromString("40.00"),
		Stock: 2,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if product.Status != domain.ProductActive {
		t.Errorf("default status = %s, want active", product.Status)
	}

	if _, err := svc.CreateForSeller(ctx, buyer, &domain.Product{Name: "x"}); err == nil {
		t.Error("buyer allowed to create a product")
	}

	name := "Winter Coat"
	if _, err := svc.UpdateForSeller(ctx, rival, product.ID, usecase.ProductPatch{Name: &name}); err == nil {
		t.Error("rival seller allowed to update")
	}
	updated, err := svc.UpdateForSeller(ctx, admin, product.ID, usecase.ProductPatch{Name: &name})
	if err != nil {
		t.Fatalf("admin update: %v", err)
	}
	if updated.Name != "Winter Coat" {
		t.Errorf("name = %q", updated.Name)
	}
}

func TestProductSoftDelete(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	svc := &usecase.ProductService{Stores: store}

	seller := seedUser(t, store, domain.RoleSeller)
	product, err := svc.CreateForSeller(ctx, seller, &domain.Product{
		Name:  "Coat",
		Price: decimal.RequireFromString("40.00"),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := svc.SoftDelete(ctx, seller, product.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	// Gone from detail and listings, but the row survives for order history.
	if _, err := svc.Detail(ctx, product.ID); !usecase.IsNotFound(err) {
		t.Errorf("detail err = %v, want not found", err)
	}
	stored, err := store.ProductByID(ctx, product.ID)
	if err != nil {
		t.Fatalf("row deleted outright: %v", err)
	}
	if stored.Status != domain.ProductDeleted {
		t.Errorf("status = %s, want deleted", stored.Status)
	}
}

func TestProductSearchTool(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	tool := &usecase.ProductSearchTool{Stores: store}

	seller := seedUser(t, store, domain.RoleSeller)
	seedProduct(t, store, seller.ID, "Linen Shirt", "29.90", 3)
	hidden := seedProduct(t, store, seller.ID, "Hidden Linen Shirt", "19.90", 3)
	hidden.IsHidden = true
	if err := store.UpdateProduct(ctx, hidden); err != nil {
		t.Fatalf("hide: %v", err)
	}

	hits, err := tool.Search(ctx, "linen", 5)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(hits) != 1 {
		t.Fatalf("got %d hits, want 1 (hidden excluded)", len(hits))
	}
	if hits[0].Title != "Linen Shirt" || hits[0].Price.StringFixed(2) != "29.90" {
		t.Errorf("hit = %+v", hits[0])
	}
}
