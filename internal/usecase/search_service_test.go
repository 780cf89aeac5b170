package usecase_test

import (
	"context"
	"testing"

	"stylemart-backend/internal/domain"
	"stylemart-backend/internal/infrastructure/memory"
	"stylemart-backend/internal/usecase"
)

func TestSuggestRanksKeywordsAboveProductNames(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	svc := &usecase.SearchService{Stores: store}

	seller := seedUser(t, store, domain.RoleSeller)
	seedProduct(t, store, seller.ID, "summer dress", "10.00", 1)
	if err := store.AddSearchHistory(ctx, &domain.SearchKeyword{Keyword: "summer jacket"}); err != nil {
		t.Fatalf("seed keyword: %v", err)
	}

	suggestions, err := svc.Suggest(ctx, "summer", 10)
	if err != nil {
		t.Fatalf("suggest: %v", err)
	}
	if len(suggestions) != 2 {
		t.Fatalf("got %d suggestions, want 2", len(suggestions))
	}
	// Both share the prefix and grams; the stored keyword's higher base score
	// must put it first.
	if suggestions[0].Keyword != "summer jacket" {
		t.Errorf("first suggestion = %q, want summer jacket", suggestions[0].Keyword)
	}
	if suggestions[0].Destination != "/products?query=summer jacket" {
		t.Errorf("destination = %q", suggestions[0].Destination)
	}
}

func TestSuggestEmptyQueryAndLimit(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	svc := &usecase.SearchService{Stores: store}

	seller := seedUser(t, store, domain.RoleSeller)
	seedProduct(t, store, seller.ID, "blue shirt", "10.00", 1)
	seedProduct(t, store, seller.ID, "blue jeans", "10.00", 1)
	seedProduct(t, store, seller.ID, "blue coat", "10.00", 1)

	if got, err := svc.Suggest(ctx, "   ", 10); err != nil || got != nil {
		t.Errorf("blank query = %v, %v; want nil, nil", got, err)
	}
	got, err := svc.Suggest(ctx, "blue", 2)
	if err != nil {
		t.Fatalf("suggest: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("got %d suggestions, want 2 (limit)", len(got))
	}
}

func TestSuggestTieBreaksLexicographically(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	svc := &usecase.SearchService{Stores: store}

	seller := seedUser(t, store, domain.RoleSeller)
	seedProduct(t, store, seller.ID, "wool scarf b", "10.00", 1)
	seedProduct(t, store, seller.ID, "wool scarf a", "10.00", 1)

	got, err := svc.Suggest(ctx, "wool", 10)
	if err != nil {
		t.Fatalf("suggest: %v", err)
	}
	if len(got) != 2 || got[0].Keyword != "wool scarf a" {
		t.Errorf("tie order = %+v, want wool scarf a first", got)
	}
}

func TestSearchHistoryScopedToUser(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	svc := &usecase.SearchService{Stores: store}

	buyer := seedUser(t, store, domain.RoleBuyer)
	entry, err := svc.AddHistory(ctx, &buyer.ID, "denim", "")
	if err != nil {
		t.Fatalf("add history: %v", err)
	}
	if entry.Destination != "/products?query=denim" {
		t.Errorf("default destination = %q", entry.Destination)
	}
	if _, err := svc.AddHistory(ctx, nil, "anon search", ""); err != nil {
		t.Fatalf("anonymous add: %v", err)
	}

	mine, err := svc.History(ctx, &buyer.ID)
	if err != nil || len(mine) != 1 || mine[0].Keyword != "denim" {
		t.Errorf("user history = %+v, err = %v", mine, err)
	}
	anon, err := svc.History(ctx, nil)
	if err != nil || len(anon) != 1 || anon[0].Keyword != "anon search" {
		t.Errorf("anon history = %+v, err = %v", anon, err)
	}

	// Deleting with the wrong scope is a silent no-op.
	if err := svc.DeleteHistory(ctx, nil, entry.ID); err != nil {
		t.Fatalf("delete wrong scope: %v", err)
	}
	mine, _ = svc.History(ctx, &buyer.ID)
	if len(mine) != 1 {
		t.Errorf("history deleted across scopes")
	}
	if err := svc.DeleteHistory(ctx, &buyer.ID, entry.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	mine, _ = svc.History(ctx, &buyer.ID)
	if len(mine) != 0 {
		t.Errorf("history = %+v, want empty", mine)
	}
}

func TestAddHistoryRejectsEmptyKeyword(t *testing.T) {
	svc := &usecase.SearchService{Stores: memory.New()}
	if _, err := svc.AddHistory(context.Background(), nil, "   ", ""); !usecase.IsInvalidState(err) {
		t.Errorf("err = %v, want invalid state", err)
	}
}
