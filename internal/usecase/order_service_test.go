package usecase_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"

	"stylemart-backend/internal/domain"
	"stylemart-backend/internal/infrastructure/memory"
	"stylemart-backend/internal/usecase"
)

var seedSeq int

func seedUser(t *testing.T, store *memory.Store, role domain.UserRole) *domain.User {
	t.Helper()
	seedSeq++
	u := &domain.User{
		Email:        fmt.Sprintf("%s%d@example.com", role, seedSeq),
		PasswordHash: "x",
		Role:         role,
		Status:       domain.UserActive,
	}
	if err := store.CreateUser(context.Background(), u); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

func seedProduct(t *testing.T, store *memory.Store, sellerID int64, name, price string, stock int) *domain.Product {
	t.Helper()
	d, err := decimal.NewFromString(price)
	if err != nil {
		t.Fatalf("bad price %q: %v", price, err)
	}
	p := &domain.Product{
		SellerID: sellerID,
		Name:     name,
		Price:    d,
		Stock:    stock,
		Status:   domain.ProductActive,
	}
	if err := store.CreateProduct(context.Background(), p); err != nil {
		t.Fatalf("seed product: %v", err)
	}
	return p
}

func addToCart(t *testing.T, store *memory.Store, userID, productID int64, qty int) {
	t.Helper()
	ctx := context.Background()
	cart, err := store.CartByUser(ctx, userID)
	if err != nil {
		cart, err = store.CreateCart(ctx, userID)
		if err != nil {
			t.Fatalf("create cart: %v", err)
		}
	}
	if err := store.AddCartItem(ctx, &domain.CartItem{
		CartID:    cart.ID,
		ProductID: productID,
		Quantity:  qty,
	}); err != nil {
		t.Fatalf("add cart item: %v", err)
	}
}

func TestCreateOrderFromCart(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	svc := &usecase.OrderService{Stores: store}

	seller := seedUser(t, store, domain.RoleSeller)
	buyer := seedUser(t, store, domain.RoleBuyer)
	shirt := seedProduct(t, store, seller.ID, "Shirt", "10.00", 3)
	jacket := seedProduct(t, store, seller.ID, "Jacket", "25.00", 1)

	addToCart(t, store, buyer.ID, shirt.ID, 2)
	addToCart(t, store, buyer.ID, jacket.ID, 1)

	result, err := svc.CreateOrderFromCart(ctx, buyer.ID, "")
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	if got := result.TotalAmount.StringFixed(2); got != "45.00" {
		t.Errorf("total = %s, want 45.00", got)
	}
	if result.Currency != "USD" {
		t.Errorf("currency = %s, want USD", result.Currency)
	}

	order, err := store.OrderByID(ctx, result.OrderID)
	if err != nil {
		t.Fatalf("load order: %v", err)
	}
	if order.Status != domain.OrderPending {
		t.Errorf("order status = %s, want pending", order.Status)
	}
	if len(order.Items) != 2 {
		t.Fatalf("order has %d items, want 2", len(order.Items))
	}
	for _, item := range order.Items {
		if item.ProductID == shirt.ID && item.UnitPrice.StringFixed(2) != "10.00" {
			t.Errorf("shirt unit price = %s, want 10.00", item.UnitPrice.StringFixed(2))
		}
	}

	after, _ := store.ProductByID(ctx, shirt.ID)
	if after.Stock != 1 {
		t.Errorf("shirt stock = %d, want 1", after.Stock)
	}
	after, _ = store.ProductByID(ctx, jacket.ID)
	if after.Stock != 0 {
		t.Errorf("jacket stock = %d, want 0", after.Stock)
	}

	cart, err := store.CartByUser(ctx, buyer.ID)
	if err != nil {
		t.Fatalf("load cart: %v", err)
	}
	if len(cart.Items) != 0 {
		t.Errorf("cart has %d items after order, want 0", len(cart.Items))
	}
}

func TestCreateOrderFrozenUnitPrice(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	svc := &usecase.OrderService{Stores: store}

	seller := seedUser(t, store, domain.RoleSeller)
	buyer := seedUser(t, store, domain.RoleBuyer)
	shirt := seedProduct(t, store, seller.ID, "Shirt", "10.00", 5)
	addToCart(t, store, buyer.ID, shirt.ID, 1)

	result, err := svc.CreateOrderFromCart(ctx, buyer.ID, "USD")
	if err != nil {
		t.Fatalf("create order: %v", err)
	}

	// Raise the catalog price after the order exists.
	shirt.Price = decimal.RequireFromString("99.00")
	if err := store.UpdateProduct(ctx, shirt); err != nil {
		t.Fatalf("update product: %v", err)
	}

	order, _ := store.OrderByID(ctx, result.OrderID)
	if got := order.Items[0].UnitPrice.StringFixed(2); got != "10.00" {
		t.Errorf("frozen unit price = %s, want 10.00", got)
	}
	if got := order.TotalAmount.StringFixed(2); got != "10.00" {
		t.Errorf("total = %s, want 10.00", got)
	}
}

func TestCreateOrderEmptyCart(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	svc := &usecase.OrderService{Stores: store}
	buyer := seedUser(t, store, domain.RoleBuyer)

	if _, err := svc.CreateOrderFromCart(ctx, buyer.ID, ""); !usecase.IsInvalidState(err) {
		t.Fatalf("err = %v, want invalid state", err)
	}

	// Same outcome with a cart that exists but has no items.
	if _, err := store.CreateCart(ctx, buyer.ID); err != nil {
		t.Fatalf("create cart: %v", err)
	}
	if _, err := svc.CreateOrderFromCart(ctx, buyer.ID, ""); !usecase.IsInvalidState(err) {
		t.Fatalf("err = %v, want invalid state", err)
	}
}

func TestCreateOrderInsufficientStockRollsBack(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	svc := &usecase.OrderService{Stores: store}

	seller := seedUser(t, store, domain.RoleSeller)
	buyer := seedUser(t, store, domain.RoleBuyer)
	shirt := seedProduct(t, store, seller.ID, "Shirt", "10.00", 5)
	jacket := seedProduct(t, store, seller.ID, "Jacket", "25.00", 1)

	addToCart(t, store, buyer.ID, shirt.ID, 2)
	addToCart(t, store, buyer.ID, jacket.ID, 3) // more than stock

	if _, err := svc.CreateOrderFromCart(ctx, buyer.ID, ""); !usecase.IsInvalidState(err) {
		t.Fatalf("err = %v, want invalid state", err)
	}

	// The shirt decrement from the first line must have rolled back.
	after, _ := store.ProductByID(ctx, shirt.ID)
	if after.Stock != 5 {
		t.Errorf("shirt stock = %d, want 5 (rolled back)", after.Stock)
	}
	cart, _ := store.CartByUser(ctx, buyer.ID)
	if len(cart.Items) != 2 {
		t.Errorf("cart has %d items, want 2 (untouched)", len(cart.Items))
	}
	orders, _ := store.ListOrdersByUser(ctx, buyer.ID)
	if len(orders) != 0 {
		t.Errorf("found %d orders, want 0", len(orders))
	}
}

func TestCreateOrderInactiveProduct(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	svc := &usecase.OrderService{Stores: store}

	seller := seedUser(t, store, domain.RoleSeller)
	buyer := seedUser(t, store, domain.RoleBuyer)
	shirt := seedProduct(t, store, seller.ID, "Shirt", "10.00", 5)
	addToCart(t, store, buyer.ID, shirt.ID, 1)

	shirt.Status = domain.ProductDeleted
	if err := store.UpdateProduct(ctx, shirt); err != nil {
		t.Fatalf("update product: %v", err)
	}

	if _, err := svc.CreateOrderFromCart(ctx, buyer.ID, ""); !usecase.IsInvalidState(err) {
		t.Fatalf("err = %v, want invalid state", err)
	}
}

func TestOrderDetailOwnership(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	svc := &usecase.OrderService{Stores: store}

	seller := seedUser(t, store, domain.RoleSeller)
	buyer := seedUser(t, store, domain.RoleBuyer)
	other := seedUser(t, store, domain.RoleBuyer)
	shirt := seedProduct(t, store, seller.ID, "Shirt", "10.00", 5)
	addToCart(t, store, buyer.ID, shirt.ID, 1)

	result, err := svc.CreateOrderFromCart(ctx, buyer.ID, "")
	if err != nil {
		t.Fatalf("create order: %v", err)
	}

	if _, err := svc.OrderDetailForUser(ctx, buyer.ID, result.OrderID); err != nil {
		t.Fatalf("owner detail: %v", err)
	}
	// Another user's lookup must be indistinguishable from a missing order.
	if _, err := svc.OrderDetailForUser(ctx, other.ID, result.OrderID); !usecase.IsNotFound(err) {
		t.Fatalf("foreign detail err = %v, want not found", err)
	}
	if _, err := svc.OrderDetailForUser(ctx, buyer.ID, result.OrderID+999); !usecase.IsNotFound(err) {
		t.Fatalf("missing detail err = %v, want not found", err)
	}
}
