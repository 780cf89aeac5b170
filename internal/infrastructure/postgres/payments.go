package postgres

import (
	"context"
	"encoding/json"

	"stylemart-backend/internal/domain"
)

func (s *Store) CreatePayment(ctx context.Context, p *domain.Payment) error {
	return s.q.QueryRowContext(ctx,
		`INSERT INTO payments (order_id, provider, provider_payment_id, status, raw_response)
		 VALUES ($1,$2,$3,$4,$5) RETURNING id, created_at, updated_at`,
		p.OrderID, string(p.Provider), p.ProviderPaymentID, string(p.Status), []byte(p.RawResponse)).
		Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

func (s *Store) PaymentByProviderID(ctx context.Context, providerPaymentID string) (*domain.Payment, error) {
	var p domain.Payment
	var raw []byte
	err := s.q.QueryRowContext(ctx,
		`SELECT id, order_id, provider, provider_payment_id, status, raw_response, created_at, updated_at
		 FROM payments WHERE provider_payment_id=$1
		 ORDER BY id DESC LIMIT 1`, providerPaymentID).
		Scan(&p.ID, &p.OrderID, (*string)(&p.Provider), &p.ProviderPaymentID,
			(*string)(&p.Status), &raw, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, notFound(err, "payment")
	}
	p.RawResponse = json.RawMessage(raw)
	return &p, nil
}

func (s *Store) UpdatePaymentStatus(ctx context.Context, paymentID int64, st domain.PaymentStatus, raw json.RawMessage) error {
	_, err := s.q.ExecContext(ctx,
		`UPDATE payments SET status=$2, raw_response=COALESCE($3, raw_response), updated_at=now()
		 WHERE id=$1`, paymentID, string(st), []byte(raw))
	return err
}

func (s *Store) HasEvent(ctx context.Context, eventID string) (bool, error) {
	var seen bool
	err := s.q.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM paypal_events WHERE event_id=$1)`, eventID).Scan(&seen)
	return seen, err
}

// InsertEvent relies on the unique index on event_id: a duplicate delivery
// fails here and the caller treats that failure as already-seen.
func (s *Store) InsertEvent(ctx context.Context, e *domain.PayPalEvent) error {
	return s.q.QueryRowContext(ctx,
		`INSERT INTO paypal_events (event_id, event_type, payload)
		 VALUES ($1,$2,$3) RETURNING id, processed_at`,
		e.EventID, e.EventType, []byte(e.Payload)).
		Scan(&e.ID, &e.ProcessedAt)
}
