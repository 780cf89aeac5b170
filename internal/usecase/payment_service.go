package usecase

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"stylemart-backend/internal/domain"
)

// PaymentGateway is the contract with the external payment provider. Both
// calls are synchronous network round-trips with a bounded timeout; transport
// failures surface as plain errors that this service converts to ErrGateway.
type PaymentGateway interface {
	CreateOrder(ctx context.Context, orderID int64, total decimal.Decimal, currency string) (*GatewayOrder, error)
	CaptureOrder(ctx context.Context, providerPaymentID string) (*GatewayCapture, error)
}

type GatewayLink struct {
	Rel  string `json:"rel"`
	Href string `json:"href"`
}

type GatewayOrder struct {
	ProviderPaymentID string
	Status            string
	Links             []GatewayLink
	Raw               json.RawMessage
}

type GatewayCapture struct {
	Status string
	Raw    json.RawMessage
}

const (
	eventCaptureCompleted = "PAYMENT.CAPTURE.COMPLETED"
	eventCaptureRefunded  = "PAYMENT.CAPTURE.REFUNDED"
)

// PaymentService orchestrates payment creation, capture and webhook
// application. The synchronous capture path and the asynchronous webhook
// path funnel through the same status-transition writes.
type PaymentService struct {
	Stores  Stores
	Gateway PaymentGateway
	Log     *zap.Logger
}

type PaymentCreateResult struct {
	PaymentID         int64                `json:"paymentId"`
	ProviderPaymentID string               `json:"providerPaymentId"`
	Status            domain.PaymentStatus `json:"status"`
	ApprovalURL       string               `json:"approvalUrl"`
}

// CreatePayPalOrder registers a payment intent with the provider for a
// pending order and persists the attempt in CREATED status. The approval URL
// is empty when the provider response carries no approve/payer-action link.
func (s *PaymentService) CreatePayPalOrder(ctx context.Context, userID, orderID int64) (*PaymentCreateResult, error) {
	order, err := s.Stores.OrderByID(ctx, orderID)
	if err != nil || order.UserID != userID {
		if err != nil && !IsNotFound(err) {
			return nil, err
		}
		return nil, ErrNotFound("order")
	}
	if order.Status != domain.OrderPending {
		return nil, ErrInvalidState("order is not payable")
	}
	if !order.TotalAmount.IsPositive() {
		return nil, ErrInvalidState("order total must be greater than zero")
	}

	res, err := s.Gateway.CreateOrder(ctx, order.ID, order.TotalAmount, order.Currency)
	if err != nil {
		return nil, &ErrGateway{Reason: "create paypal order", Err: err}
	}
	if res.ProviderPaymentID == "" {
		return nil, &ErrGateway{Reason: "paypal response missing order id"}
	}

	payment := &domain.Payment{
		OrderID:           order.ID,
		Provider:          domain.ProviderPayPal,
		ProviderPaymentID: res.ProviderPaymentID,
		Status:            domain.PaymentCreated,
		RawResponse:       res.Raw,
	}
	if err := s.Stores.CreatePayment(ctx, payment); err != nil {
		return nil, fmt.Errorf("persist payment: %w", err)
	}

	s.logger().Info("paypal order created",
		zap.Int64("order_id", order.ID),
		zap.String("provider_payment_id", res.ProviderPaymentID))
	return &PaymentCreateResult{
		PaymentID:         payment.ID,
		ProviderPaymentID: payment.ProviderPaymentID,
		Status:            payment.Status,
		ApprovalURL:       approvalURL(res.Links),
	}, nil
}

// approvalURL scans the provider's link collection for the buyer-action
// link. An empty return means no action link was present, which the caller
// passes through as-is.
func approvalURL(links []GatewayLink) string {
	for _, l := range links {
		if l.Rel == "approve" || l.Rel == "payer-action" {
			return l.Href
		}
	}
	return ""
}

// CapturePayPalOrder finalizes a previously created payment. Gateway errors
// mark the payment FAILED before propagating so a caller retry observes
// consistent local state; a non-COMPLETED capture is terminal for this
// attempt.
func (s *PaymentService) CapturePayPalOrder(ctx context.Context, userID int64, providerPaymentID string) (*domain.Payment, *domain.Order, error) {
	payment, err := s.Stores.PaymentByProviderID(ctx, providerPaymentID)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil, ErrNotFound("payment")
		}
		return nil, nil, err
	}
	order, err := s.Stores.OrderByID(ctx, payment.OrderID)
	if err != nil || order.UserID != userID {
		if err != nil && !IsNotFound(err) {
			return nil, nil, err
		}
		return nil, nil, ErrNotFound("payment")
	}

	res, err := s.Gateway.CaptureOrder(ctx, providerPaymentID)
	if err != nil {
		raw, _ := json.Marshal(map[string]string{"error": err.Error()})
		if uerr := s.Stores.UpdatePaymentStatus(ctx, payment.ID, domain.PaymentFailed, raw); uerr != nil {
			s.logger().Error("mark payment failed", zap.Int64("payment_id", payment.ID), zap.Error(uerr))
		}
		return nil, nil, &ErrGateway{Reason: "capture paypal order", Err: err}
	}

	if res.Status != "COMPLETED" {
		if uerr := s.Stores.UpdatePaymentStatus(ctx, payment.ID, domain.PaymentFailed, res.Raw); uerr != nil {
			return nil, nil, uerr
		}
		return nil, nil, ErrInvalidState("paypal capture failed")
	}

	err = s.Stores.InTx(ctx, func(tx Stores) error {
		if err := tx.UpdatePaymentStatus(ctx, payment.ID, domain.PaymentCompleted, res.Raw); err != nil {
			return err
		}
		return tx.UpdateOrderStatus(ctx, order.ID, domain.OrderPaid)
	})
	if err != nil {
		return nil, nil, err
	}

	payment.Status = domain.PaymentCompleted
	payment.RawResponse = res.Raw
	order.Status = domain.OrderPaid
	s.logger().Info("paypal capture completed",
		zap.Int64("order_id", order.ID),
		zap.String("provider_payment_id", providerPaymentID))
	return payment, order, nil
}

// WebhookEvent is the provider-pushed notification shape accepted by the
// ingestor. Resource is kept opaque beyond the identifiers extracted below.
type WebhookEvent struct {
	ID        string          `json:"id"`
	EventType string          `json:"event_type"`
	Resource  json.RawMessage `json:"resource"`
}

type webhookResource struct {
	ID                string `json:"id"`
	SupplementaryData struct {
		RelatedIDs struct {
			OrderID string `json:"order_id"`
		} `json:"related_ids"`
	} `json:"supplementary_data"`
}

// HandleWebhook applies an at-least-once provider notification exactly once.
// The event id is the sole deduplication key; the event row is written even
// when no local payment matches, so the audit trail covers every unique
// delivery.
func (s *PaymentService) HandleWebhook(ctx context.Context, event WebhookEvent) error {
	if event.ID == "" {
		return nil
	}
	seen, err := s.Stores.HasEvent(ctx, event.ID)
	if err != nil {
		return err
	}
	if seen {
		return nil
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	if err := s.Stores.InsertEvent(ctx, &domain.PayPalEvent{
		EventID:   event.ID,
		EventType: event.EventType,
		Payload:   payload,
	}); err != nil {
		// A concurrent delivery may have won the insert race; the unique
		// constraint on event_id makes that loss equivalent to "seen".
		s.logger().Warn("webhook event insert", zap.String("event_id", event.ID), zap.Error(err))
		return nil
	}

	providerPaymentID := providerPaymentIDFromEvent(event)
	if providerPaymentID == "" {
		return nil
	}
	payment, err := s.Stores.PaymentByProviderID(ctx, providerPaymentID)
	if err != nil {
		if IsNotFound(err) {
			// Provider notified us about a payment this system never created.
			return nil
		}
		return err
	}

	switch event.EventType {
	case eventCaptureCompleted:
		return s.Stores.InTx(ctx, func(tx Stores) error {
			if err := tx.UpdatePaymentStatus(ctx, payment.ID, domain.PaymentCompleted, event.Resource); err != nil {
				return err
			}
			order, err := tx.OrderByID(ctx, payment.OrderID)
			if err != nil {
				return err
			}
			if order.Status != domain.OrderPaid {
				return tx.UpdateOrderStatus(ctx, order.ID, domain.OrderPaid)
			}
			return nil
		})
	case eventCaptureRefunded:
		return s.Stores.InTx(ctx, func(tx Stores) error {
			if err := tx.UpdatePaymentStatus(ctx, payment.ID, domain.PaymentCancelled, event.Resource); err != nil {
				return err
			}
			return tx.UpdateOrderStatus(ctx, payment.OrderID, domain.OrderCancelled)
		})
	default:
		// Recorded, not applied. Forward-compatible no-op.
		return nil
	}
}

func providerPaymentIDFromEvent(event WebhookEvent) string {
	var res webhookResource
	if len(event.Resource) > 0 {
		if err := json.Unmarshal(event.Resource, &res); err != nil {
			return ""
		}
	}
	if id := res.SupplementaryData.RelatedIDs.OrderID; id != "" {
		return id
	}
	return res.ID
}

func (s *PaymentService) logger() *zap.Logger {
	if s.Log != nil {
		return s.Log
	}
	return zap.NewNop()
}
