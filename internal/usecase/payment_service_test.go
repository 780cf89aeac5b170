package usecase_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"

	"stylemart-backend/internal/domain"
	"stylemart-backend/internal/infrastructure/memory"
	"stylemart-backend/internal/usecase"
)

type fakeGateway struct {
	createErr     error
	captureErr    error
	captureStatus string
	orderID       string
	links         []usecase.GatewayLink
	captureCalls  int
}

func (f *fakeGateway) CreateOrder(ctx context.Context, orderID int64, total decimal.Decimal, currency string) (*usecase.GatewayOrder, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	id := f.orderID
	if id == "" {
		id = "PP-TEST-1"
	}
	return &usecase.GatewayOrder{
		ProviderPaymentID: id,
		Status:            "CREATED",
		Links:             f.links,
		Raw:               json.RawMessage(`{"id":"` + id + `"}`),
	}, nil
}

func (f *fakeGateway) CaptureOrder(ctx context.Context, providerPaymentID string) (*usecase.GatewayCapture, error) {
	f.captureCalls++
	if f.captureErr != nil {
		return nil, f.captureErr
	}
	status := f.captureStatus
	if status == "" {
		status = "COMPLETED"
	}
	return &usecase.GatewayCapture{Status: status, Raw: json.RawMessage(`{"status":"` + status + `"}`)}, nil
}

func paymentFixture(t *testing.T) (*memory.Store, *usecase.PaymentService, *fakeGateway, *domain.User, *usecase.OrderCreateResult) {
	t.Helper()
	ctx := context.Background()
	store := memory.New()
	gw := &fakeGateway{}
	svc := &usecase.PaymentService{Stores: store, Gateway: gw}
	orders := &usecase.OrderService{Stores: store}

	seller := seedUser(t, store, domain.RoleSeller)
	buyer := seedUser(t, store, domain.RoleBuyer)
	shirt := seedProduct(t, store, seller.ID, "Shirt", "20.00", 5)
	addToCart(t, store, buyer.ID, shirt.ID, 2)

	result, err := orders.CreateOrderFromCart(ctx, buyer.ID, "USD")
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	return store, svc, gw, buyer, result
}

func TestCreatePayPalOrder(t *testing.T) {
	ctx := context.Background()
	store, svc, gw, buyer, order := paymentFixture(t)
	gw.links = []usecase.GatewayLink{
		{Rel: "self", Href: "https://api.test/self"},
		{Rel: "approve", Href: "https://paypal.test/approve"},
	}

	res, err := svc.CreatePayPalOrder(ctx, buyer.ID, order.OrderID)
	if err != nil {
		t.Fatalf("create paypal order: %v", err)
	}
	if res.Status != domain.PaymentCreated {
		t.Errorf("status = %s, want CREATED", res.Status)
	}
	if res.ApprovalURL != "https://paypal.test/approve" {
		t.Errorf("approval url = %q", res.ApprovalURL)
	}

	payment, err := store.PaymentByProviderID(ctx, res.ProviderPaymentID)
	if err != nil {
		t.Fatalf("load payment: %v", err)
	}
	if payment.OrderID != order.OrderID {
		t.Errorf("payment order = %d, want %d", payment.OrderID, order.OrderID)
	}
	if len(payment.RawResponse) == 0 {
		t.Error("raw response not persisted")
	}
}

func TestCreatePayPalOrderNoApprovalLink(t *testing.T) {
	ctx := context.Background()
	_, svc, gw, buyer, order := paymentFixture(t)
	gw.links = []usecase.GatewayLink{{Rel: "self", Href: "https://api.test/self"}}

	res, err := svc.CreatePayPalOrder(ctx, buyer.ID, order.OrderID)
	if err != nil {
		t.Fatalf("create paypal order: %v", err)
	}
	if res.ApprovalURL != "" {
		t.Errorf("approval url = %q, want empty", res.ApprovalURL)
	}
}

func TestCreatePayPalOrderGuards(t *testing.T) {
	ctx := context.Background()
	store, svc, _, buyer, order := paymentFixture(t)
	other := seedUser(t, store, domain.RoleBuyer)

	// Foreign order reads as missing.
	if _, err := svc.CreatePayPalOrder(ctx, other.ID, order.OrderID); !usecase.IsNotFound(err) {
		t.Fatalf("foreign order err = %v, want not found", err)
	}

	// Paid order is not payable again.
	if err := store.UpdateOrderStatus(ctx, order.OrderID, domain.OrderPaid); err != nil {
		t.Fatalf("mark paid: %v", err)
	}
	if _, err := svc.CreatePayPalOrder(ctx, buyer.ID, order.OrderID); !usecase.IsInvalidState(err) {
		t.Fatalf("paid order err = %v, want invalid state", err)
	}
}

func TestCreatePayPalOrderGatewayDown(t *testing.T) {
	ctx := context.Background()
	store, svc, gw, buyer, order := paymentFixture(t)
	gw.createErr = errors.New("connection refused")

	_, err := svc.CreatePayPalOrder(ctx, buyer.ID, order.OrderID)
	if !usecase.IsGateway(err) {
		t.Fatalf("err = %v, want gateway error", err)
	}
	// No payment row for a create that never reached the provider.
	if _, err := store.PaymentByProviderID(ctx, "PP-TEST-1"); !usecase.IsNotFound(err) {
		t.Fatalf("payment lookup err = %v, want not found", err)
	}
}

func TestCapturePayPalOrderSuccess(t *testing.T) {
	ctx := context.Background()
	store, svc, _, buyer, order := paymentFixture(t)

	created, err := svc.CreatePayPalOrder(ctx, buyer.ID, order.OrderID)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	payment, capturedOrder, err := svc.CapturePayPalOrder(ctx, buyer.ID, created.ProviderPaymentID)
	if err != nil {
		t.Fatalf("capture: %v", err)
	}
	if payment.Status != domain.PaymentCompleted {
		t.Errorf("payment status = %s, want COMPLETED", payment.Status)
	}
	if capturedOrder.Status != domain.OrderPaid {
		t.Errorf("order status = %s, want paid", capturedOrder.Status)
	}

	stored, _ := store.OrderByID(ctx, order.OrderID)
	if stored.Status != domain.OrderPaid {
		t.Errorf("stored order status = %s, want paid", stored.Status)
	}
}

func TestCapturePayPalOrderDeclined(t *testing.T) {
	ctx := context.Background()
	store, svc, gw, buyer, order := paymentFixture(t)
	gw.captureStatus = "DECLINED"

	created, err := svc.CreatePayPalOrder(ctx, buyer.ID, order.OrderID)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	_, _, err = svc.CapturePayPalOrder(ctx, buyer.ID, created.ProviderPaymentID)
	if !usecase.IsInvalidState(err) {
		t.Fatalf("err = %v, want invalid state", err)
	}

	payment, _ := store.PaymentByProviderID(ctx, created.ProviderPaymentID)
	if payment.Status != domain.PaymentFailed {
		t.Errorf("payment status = %s, want FAILED", payment.Status)
	}
	stored, _ := store.OrderByID(ctx, order.OrderID)
	if stored.Status != domain.OrderPending {
		t.Errorf("order status = %s, want pending", stored.Status)
	}
}

func TestCapturePayPalOrderGatewayError(t *testing.T) {
	ctx := context.Background()
	store, svc, gw, buyer, order := paymentFixture(t)

	created, err := svc.CreatePayPalOrder(ctx, buyer.ID, order.OrderID)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	gw.captureErr = errors.New("upstream timeout")
	_, _, err = svc.CapturePayPalOrder(ctx, buyer.ID, created.ProviderPaymentID)
	if !usecase.IsGateway(err) {
		t.Fatalf("err = %v, want gateway error", err)
	}

	// Best-effort FAILED marking must have happened.
	payment, _ := store.PaymentByProviderID(ctx, created.ProviderPaymentID)
	if payment.Status != domain.PaymentFailed {
		t.Errorf("payment status = %s, want FAILED", payment.Status)
	}
}

func webhookEvent(id, eventType, providerOrderID string) usecase.WebhookEvent {
	resource := fmt.Sprintf(
		`{"id":"CAP-1","supplementary_data":{"related_ids":{"order_id":"%s"}}}`,
		providerOrderID)
	return usecase.WebhookEvent{
		ID:        id,
		EventType: eventType,
		Resource:  json.RawMessage(resource),
	}
}

func TestHandleWebhookCaptureCompleted(t *testing.T) {
	ctx := context.Background()
	store, svc, _, buyer, order := paymentFixture(t)

	created, err := svc.CreatePayPalOrder(ctx, buyer.ID, order.OrderID)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	event := webhookEvent("WH-1", "PAYMENT.CAPTURE.COMPLETED", created.ProviderPaymentID)
	if err := svc.HandleWebhook(ctx, event); err != nil {
		t.Fatalf("webhook: %v", err)
	}

	payment, _ := store.PaymentByProviderID(ctx, created.ProviderPaymentID)
	if payment.Status != domain.PaymentCompleted {
		t.Errorf("payment status = %s, want COMPLETED", payment.Status)
	}
	stored, _ := store.OrderByID(ctx, order.OrderID)
	if stored.Status != domain.OrderPaid {
		t.Errorf("order status = %s, want paid", stored.Status)
	}
}

func TestHandleWebhookIdempotent(t *testing.T) {
	ctx := context.Background()
	store, svc, _, buyer, order := paymentFixture(t)

	created, err := svc.CreatePayPalOrder(ctx, buyer.ID, order.OrderID)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	event := webhookEvent("WH-1", "PAYMENT.CAPTURE.COMPLETED", created.ProviderPaymentID)
	if err := svc.HandleWebhook(ctx, event); err != nil {
		t.Fatalf("first delivery: %v", err)
	}

	// Flip state around so a re-applied event would be visible.
	if err := store.UpdateOrderStatus(ctx, order.OrderID, domain.OrderCancelled); err != nil {
		t.Fatalf("flip status: %v", err)
	}
	if err := svc.HandleWebhook(ctx, event); err != nil {
		t.Fatalf("second delivery: %v", err)
	}
	stored, _ := store.OrderByID(ctx, order.OrderID)
	if stored.Status != domain.OrderCancelled {
		t.Errorf("order status = %s, want cancelled (duplicate must be a no-op)", stored.Status)
	}
}

func TestHandleWebhookRefund(t *testing.T) {
	ctx := context.Background()
	store, svc, _, buyer, order := paymentFixture(t)

	created, err := svc.CreatePayPalOrder(ctx, buyer.ID, order.OrderID)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, _, err := svc.CapturePayPalOrder(ctx, buyer.ID, created.ProviderPaymentID); err != nil {
		t.Fatalf("capture: %v", err)
	}

	event := webhookEvent("WH-2", "PAYMENT.CAPTURE.REFUNDED", created.ProviderPaymentID)
	if err := svc.HandleWebhook(ctx, event); err != nil {
		t.Fatalf("refund webhook: %v", err)
	}
	payment, _ := store.PaymentByProviderID(ctx, created.ProviderPaymentID)
	if payment.Status != domain.PaymentCancelled {
		t.Errorf("payment status = %s, want CANCELLED", payment.Status)
	}
	stored, _ := store.OrderByID(ctx, order.OrderID)
	if stored.Status != domain.OrderCancelled {
		t.Errorf("order status = %s, want cancelled", stored.Status)
	}
}

func TestHandleWebhookUnknownPayment(t *testing.T) {
	ctx := context.Background()
	store, svc, _, _, _ := paymentFixture(t)

	event := webhookEvent("WH-9", "PAYMENT.CAPTURE.COMPLETED", "PP-NEVER-SEEN")
	if err := svc.HandleWebhook(ctx, event); err != nil {
		t.Fatalf("webhook: %v", err)
	}
	// Recorded for audit even though no payment matched.
	seen, err := store.HasEvent(ctx, "WH-9")
	if err != nil || !seen {
		t.Errorf("event recorded = %v, err = %v, want recorded", seen, err)
	}
}

func TestHandleWebhookMissingID(t *testing.T) {
	ctx := context.Background()
	store, svc, _, _, _ := paymentFixture(t)

	if err := svc.HandleWebhook(ctx, usecase.WebhookEvent{EventType: "PAYMENT.CAPTURE.COMPLETED"}); err != nil {
		t.Fatalf("webhook: %v", err)
	}
	if seen, _ := store.HasEvent(ctx, ""); seen {
		t.Error("empty event id must not be recorded")
	}
}
