package usecase_test

import (
	"context"
	"testing"

	"stylemart-backend/internal/domain"
	"stylemart-backend/internal/infrastructure/memory"
	"stylemart-backend/internal/usecase"
)

func TestCartAddItemMergesSameVariant(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	svc := &usecase.CartService{Stores: store}

	seller := seedUser(t, store, domain.RoleSeller)
	buyer := seedUser(t, store, domain.RoleBuyer)
	shirt := seedProduct(t, store, seller.ID, "Shirt", "10.00", 10)

	variant := map[string]string{"size": "M", "color": "blue"}
	if _, err := svc.AddItem(ctx, buyer.ID, shirt.ID, 1, variant); err != nil {
		t.Fatalf("first add: %v", err)
	}
	cart, err := svc.AddItem(ctx, buyer.ID, shirt.ID, 2, map[string]string{"color": "blue", "size": "M"})
	if err != nil {
		t.Fatalf("second add: %v", err)
	}
	if len(cart.Items) != 1 {
		t.Fatalf("cart has %d lines, want 1 (merged)", len(cart.Items))
	}
	if cart.Items[0].Quantity != 3 {
		t.Errorf("quantity = %d, want 3", cart.Items[0].Quantity)
	}

	// A different variant gets its own line.
	cart, err = svc.AddItem(ctx, buyer.ID, shirt.ID, 1, map[string]string{"size": "L"})
	if err != nil {
		t.Fatalf("third add: %v", err)
	}
	if len(cart.Items) != 2 {
		t.Fatalf("cart has %d lines, want 2", len(cart.Items))
	}
}

func TestCartAddItemValidation(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	svc := &usecase.CartService{Stores: store}

	seller := seedUser(t, store, domain.RoleSeller)
	buyer := seedUser(t, store, domain.RoleBuyer)
	shirt := seedProduct(t, store, seller.ID, "Shirt", "10.00", 10)

	if _, err := svc.AddItem(ctx, buyer.ID, shirt.ID, 0, nil); !usecase.IsInvalidState(err) {
		t.Errorf("zero quantity err = %v, want invalid state", err)
	}
	if _, err := svc.AddItem(ctx, buyer.ID, shirt.ID+99, 1, nil); !usecase.IsNotFound(err) {
		t.Errorf("missing product err = %v, want not found", err)
	}

	shirt.Status = domain.ProductDraft
	if err := store.UpdateProduct(ctx, shirt); err != nil {
		t.Fatalf("update product: %v", err)
	}
	if _, err := svc.AddItem(ctx, buyer.ID, shirt.ID, 1, nil); !usecase.IsNotFound(err) {
		t.Errorf("inactive product err = %v, want not found", err)
	}
}

func TestCartItemOwnership(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	svc := &usecase.CartService{Stores: store}

	seller := seedUser(t, store, domain.RoleSeller)
	buyer := seedUser(t, store, domain.RoleBuyer)
	other := seedUser(t, store, domain.RoleBuyer)
	shirt := seedProduct(t, store, seller.ID, "Shirt", "10.00", 10)

	cart, err := svc.AddItem(ctx, buyer.ID, shirt.ID, 1, nil)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	itemID := cart.Items[0].ID

	// Foreign item reads as missing, for update and remove alike.
	if _, err := svc.UpdateItemQuantity(ctx, other.ID, itemID, 5); !usecase.IsNotFound(err) {
		t.Errorf("foreign update err = %v, want not found", err)
	}
	if _, err := svc.RemoveItem(ctx, other.ID, itemID); !usecase.IsNotFound(err) {
		t.Errorf("foreign remove err = %v, want not found", err)
	}

	cart, err = svc.UpdateItemQuantity(ctx, buyer.ID, itemID, 5)
	if err != nil {
		t.Fatalf("owner update: %v", err)
	}
	if cart.Items[0].Quantity != 5 {
		t.Errorf("quantity = %d, want 5", cart.Items[0].Quantity)
	}
	cart, err = svc.RemoveItem(ctx, buyer.ID, itemID)
	if err != nil {
		t.Fatalf("owner remove: %v", err)
	}
	if len(cart.Items) != 0 {
		t.Errorf("cart has %d items, want 0", len(cart.Items))
	}
}
