package usecase_test

import (
	"context"
	"testing"

	"stylemart-backend/internal/domain"
	"stylemart-backend/internal/infrastructure/memory"
	"stylemart-backend/internal/usecase"
)

func TestModerateProduct(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	svc := &usecase.AdminService{Stores: store}

	seller := seedUser(t, store, domain.RoleSeller)
	product := seedProduct(t, store, seller.ID, "Coat", "40.00", 2)

	flagged, err := svc.ModerateProduct(ctx, product.ID, "flag", "counterfeit suspicion")
	if err != nil {
		t.Fatalf("flag: %v", err)
	}
	if !flagged.IsFlagged || flagged.FlagReason != "counterfeit suspicion" {
		t.Errorf("after flag: %+v", flagged)
	}

	hidden, err := svc.ModerateProduct(ctx, product.ID, "hide", "")
	if err != nil {
		t.Fatalf("hide: %v", err)
	}
	if !hidden.IsHidden {
		t.Error("product not hidden")
	}

	// Hidden products disappear from the public listing but stay for admins.
	public, _, err := store.ListProducts(ctx, usecase.ProductFilter{
		PublicOnly: true, Page: usecase.Page{Page: 1, PageSize: 20},
	})
	if err != nil || len(public) != 0 {
		t.Errorf("public listing = %d products, err = %v; want 0", len(public), err)
	}

	approved, err := svc.ModerateProduct(ctx, product.ID, "approve", "")
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if approved.IsFlagged || approved.IsHidden || approved.FlagReason != "" {
		t.Errorf("after approve: %+v", approved)
	}

	if _, err := svc.ModerateProduct(ctx, product.ID, "vaporize", ""); !usecase.IsInvalidState(err) {
		t.Errorf("unknown action err = %v, want invalid state", err)
	}
	if _, err := svc.ModerateProduct(ctx, product.ID+99, "hide", ""); !usecase.IsNotFound(err) {
		t.Errorf("missing product err = %v, want not found", err)
	}
}

func TestSetUserStatus(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	svc := &usecase.AdminService{Stores: store}

	buyer := seedUser(t, store, domain.RoleBuyer)
	admin := seedUser(t, store, domain.RoleAdmin)

	banned, err := svc.SetUserStatus(ctx, buyer.ID, domain.UserBanned)
	if err != nil {
		t.Fatalf("ban: %v", err)
	}
	if banned.Status != domain.UserBanned {
		t.Errorf("status = %s, want banned", banned.Status)
	}

	if _, err := svc.SetUserStatus(ctx, buyer.ID, "frozen"); !usecase.IsInvalidState(err) {
		t.Errorf("unknown status err = %v, want invalid state", err)
	}
	if _, err := svc.SetUserStatus(ctx, admin.ID, domain.UserBanned); !usecase.IsInvalidState(err) {
		t.Errorf("banning admin err = %v, want invalid state", err)
	}
}
