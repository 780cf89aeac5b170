package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/lib/pq"

	"stylemart-backend/internal/domain"
	"stylemart-backend/internal/usecase"
)

const orderColumns = `id, user_id, total_amount, currency, status, created_at, updated_at`

func scanOrder(row interface{ Scan(...any) error }) (*domain.Order, error) {
	var o domain.Order
	err := row.Scan(&o.ID, &o.UserID, &o.TotalAmount, &o.Currency,
		(*string)(&o.Status), &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (s *Store) CreateOrder(ctx context.Context, o *domain.Order) error {
	err := s.q.QueryRowContext(ctx,
		`INSERT INTO orders (user_id, total_amount, currency, status)
		 VALUES ($1,$2,$3,$4) RETURNING id, created_at, updated_at`,
		o.UserID, o.TotalAmount, o.Currency, string(o.Status)).
		Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return err
	}
	for i := range o.Items {
		item := &o.Items[i]
		item.OrderID = o.ID
		variant, _ := json.Marshal(item.VariantData)
		err := s.q.QueryRowContext(ctx,
			`INSERT INTO order_items (order_id, product_id, quantity, unit_price, variant_data)
			 VALUES ($1,$2,$3,$4,$5) RETURNING id`,
			item.OrderID, item.ProductID, item.Quantity, item.UnitPrice, variant).
			Scan(&item.ID)
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) OrderByID(ctx context.Context, id int64) (*domain.Order, error) {
	o, err := scanOrder(s.q.QueryRowContext(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE id=$1`, id))
	if err != nil {
		return nil, notFound(err, "order")
	}
	if err := s.attachOrderItems(ctx, []*domain.Order{o}); err != nil {
		return nil, err
	}
	return o, nil
}

func (s *Store) OrderByIDAndUser(ctx context.Context, id, userID int64) (*domain.Order, error) {
	o, err := scanOrder(s.q.QueryRowContext(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE id=$1 AND user_id=$2`, id, userID))
	if err != nil {
		return nil, notFound(err, "order")
	}
	if err := s.attachOrderItems(ctx, []*domain.Order{o}); err != nil {
		return nil, err
	}
	return o, nil
}

func (s *Store) ListOrdersByUser(ctx context.Context, userID int64) ([]domain.Order, error) {
	rows, err := s.q.QueryContext(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE user_id=$1 ORDER BY id DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	refs := make([]*domain.Order, 0, len(out))
	for i := range out {
		refs = append(refs, &out[i])
	}
	if err := s.attachOrderItems(ctx, refs); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) ListOrders(ctx context.Context, f usecase.OrderFilter) ([]domain.Order, int, error) {
	where := `WHERE 1=1`
	args := []any{}
	if f.UserID != nil {
		args = append(args, *f.UserID)
		where += fmt.Sprintf(` AND user_id=$%d`, len(args))
	}
	if f.Status != "" {
		args = append(args, string(f.Status))
		where += fmt.Sprintf(` AND status=$%d`, len(args))
	}

	var total int
	if err := s.q.QueryRowContext(ctx, `SELECT COUNT(1) FROM orders `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, f.PageSize, (f.Page.Page-1)*f.PageSize)
	rows, err := s.q.QueryContext(ctx,
		`SELECT `+orderColumns+` FROM orders `+where+
			fmt.Sprintf(` ORDER BY id DESC LIMIT $%d OFFSET $%d`, len(args)-1, len(args)),
		args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]domain.Order, 0, f.PageSize)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	refs := make([]*domain.Order, 0, len(out))
	for i := range out {
		refs = append(refs, &out[i])
	}
	if err := s.attachOrderItems(ctx, refs); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (s *Store) UpdateOrderStatus(ctx context.Context, id int64, st domain.OrderStatus) error {
	res, err := s.q.ExecContext(ctx,
		`UPDATE orders SET status=$2, updated_at=now() WHERE id=$1`, id, string(st))
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return usecase.ErrNotFound("order")
	}
	return nil
}

func (s *Store) attachOrderItems(ctx context.Context, orders []*domain.Order) error {
	if len(orders) == 0 {
		return nil
	}
	ids := make([]int64, 0, len(orders))
	byID := make(map[int64]*domain.Order, len(orders))
	for _, o := range orders {
		ids = append(ids, o.ID)
		byID[o.ID] = o
	}
	rows, err := s.q.QueryContext(ctx,
		`SELECT id, order_id, product_id, quantity, unit_price, variant_data
		 FROM order_items WHERE order_id = ANY($1) ORDER BY order_id, id`, pq.Array(ids))
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var item domain.OrderItem
		var variant []byte
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Quantity, &item.UnitPrice, &variant); err != nil {
			return err
		}
		_ = json.Unmarshal(variant, &item.VariantData)
		if o, ok := byID[item.OrderID]; ok {
			o.Items = append(o.Items, item)
		}
	}
	return rows.Err()
}
