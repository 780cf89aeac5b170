package postgres

import (
	"context"
	"encoding/json"

	"stylemart-backend/internal/domain"
)

func (s *Store) CartByUser(ctx context.Context, userID int64) (*domain.Cart, error) {
	var c domain.Cart
	err := s.q.QueryRowContext(ctx,
		`SELECT id, user_id, created_at, updated_at FROM carts WHERE user_id=$1`, userID).
		Scan(&c.ID, &c.UserID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, notFound(err, "cart")
	}
	if err := s.loadCartItems(ctx, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *Store) CreateCart(ctx context.Context, userID int64) (*domain.Cart, error) {
	c := &domain.Cart{UserID: userID, Items: []domain.CartItem{}}
	err := s.q.QueryRowContext(ctx,
		`INSERT INTO carts (user_id) VALUES ($1) RETURNING id, created_at, updated_at`, userID).
		Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Store) CartByID(ctx context.Context, id int64) (*domain.Cart, error) {
	var c domain.Cart
	err := s.q.QueryRowContext(ctx,
		`SELECT id, user_id, created_at, updated_at FROM carts WHERE id=$1`, id).
		Scan(&c.ID, &c.UserID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, notFound(err, "cart")
	}
	if err := s.loadCartItems(ctx, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *Store) CartItemByID(ctx context.Context, itemID int64) (*domain.CartItem, error) {
	var item domain.CartItem
	var variant []byte
	err := s.q.QueryRowContext(ctx,
		`SELECT id, cart_id, product_id, quantity, variant_data
		 FROM cart_items WHERE id=$1`, itemID).
		Scan(&item.ID, &item.CartID, &item.ProductID, &item.Quantity, &variant)
	if err != nil {
		return nil, notFound(err, "cart item")
	}
	_ = json.Unmarshal(variant, &item.VariantData)
	return &item, nil
}

func (s *Store) AddCartItem(ctx context.Context, item *domain.CartItem) error {
	variant, _ := json.Marshal(item.VariantData)
	return s.q.QueryRowContext(ctx,
		`INSERT INTO cart_items (cart_id, product_id, quantity, variant_data)
		 VALUES ($1,$2,$3,$4) RETURNING id`,
		item.CartID, item.ProductID, item.Quantity, variant).Scan(&item.ID)
}

func (s *Store) UpdateCartItemQuantity(ctx context.Context, itemID int64, quantity int) error {
	_, err := s.q.ExecContext(ctx,
		`UPDATE cart_items SET quantity=$2 WHERE id=$1`, itemID, quantity)
	return err
}

func (s *Store) DeleteCartItem(ctx context.Context, itemID int64) error {
	_, err := s.q.ExecContext(ctx, `DELETE FROM cart_items WHERE id=$1`, itemID)
	return err
}

func (s *Store) DeleteCartItems(ctx context.Context, cartID int64) error {
	_, err := s.q.ExecContext(ctx, `DELETE FROM cart_items WHERE cart_id=$1`, cartID)
	return err
}

func (s *Store) loadCartItems(ctx context.Context, c *domain.Cart) error {
	rows, err := s.q.QueryContext(ctx,
		`SELECT id, cart_id, product_id, quantity, variant_data
		 FROM cart_items WHERE cart_id=$1 ORDER BY id`, c.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	c.Items = []domain.CartItem{}
	for rows.Next() {
		var item domain.CartItem
		var variant []byte
		if err := rows.Scan(&item.ID, &item.CartID, &item.ProductID, &item.Quantity, &variant); err != nil {
			return err
		}
		_ = json.Unmarshal(variant, &item.VariantData)
		c.Items = append(c.Items, item)
	}
	return rows.Err()
}
