package usecase

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"stylemart-backend/internal/domain"
)

// OrderService turns cart contents into immutable order snapshots.
type OrderService struct {
	Stores Stores
	Log    *zap.Logger
}

type OrderCreateResult struct {
	OrderID     int64           `json:"orderId"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	Currency    string          `json:"currency"`
}

// CreateOrderFromCart validates every cart line against the live catalog,
// freezes unit prices, decrements stock, writes the order and clears the
// cart. The whole sequence runs in one transaction: a failure on line N must
// roll back the decrements already applied for lines 1..N-1.
func (s *OrderService) CreateOrderFromCart(ctx context.Context, userID int64, currency string) (*OrderCreateResult, error) {
	if currency == "" {
		currency = "USD"
	}

	var result *OrderCreateResult
	err := s.Stores.InTx(ctx, func(tx Stores) error {
		cart, err := tx.CartByUser(ctx, userID)
		if err != nil {
			if IsNotFound(err) {
				return ErrInvalidState("cart is empty")
			}
			return err
		}
		if len(cart.Items) == 0 {
			return ErrInvalidState("cart is empty")
		}

		total := decimal.Zero
		items := make([]domain.OrderItem, 0, len(cart.Items))
		for _, line := range cart.Items {
			product, err := tx.ProductForUpdate(ctx, line.ProductID)
			if err != nil {
				if IsNotFound(err) {
					return ErrInvalidState("product in cart is unavailable")
				}
				return err
			}
			if product.Status != domain.ProductActive {
				return ErrInvalidState("product in cart is unavailable")
			}
			if product.Stock < line.Quantity {
				return ErrInvalidState("insufficient stock for product")
			}

			total = total.Add(product.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
			items = append(items, domain.OrderItem{
				ProductID:   line.ProductID,
				Quantity:    line.Quantity,
				UnitPrice:   product.Price,
				VariantData: line.VariantData,
			})
			if err := tx.DecrementStock(ctx, product.ID, line.Quantity); err != nil {
				return err
			}
		}

		order := &domain.Order{
			UserID:      userID,
			TotalAmount: total,
			Currency:    currency,
			Status:      domain.OrderPending,
			Items:       items,
		}
		if err := tx.CreateOrder(ctx, order); err != nil {
			return fmt.Errorf("create order: %w", err)
		}
		if err := tx.DeleteCartItems(ctx, cart.ID); err != nil {
			return fmt.Errorf("clear cart: %w", err)
		}

		result = &OrderCreateResult{
			OrderID:     order.ID,
			TotalAmount: order.TotalAmount,
			Currency:    order.Currency,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger().Info("order created",
		zap.Int64("order_id", result.OrderID),
		zap.Int64("user_id", userID),
		zap.String("total", result.TotalAmount.StringFixed(2)),
		zap.String("currency", result.Currency))
	return result, nil
}

// OrderDetailForUser returns the order only when it belongs to the caller.
// A foreign order reads the same as a missing one.
func (s *OrderService) OrderDetailForUser(ctx context.Context, userID, orderID int64) (*domain.Order, error) {
	order, err := s.Stores.OrderByIDAndUser(ctx, orderID, userID)
	if err != nil {
		if IsNotFound(err) {
			return nil, ErrNotFound("order")
		}
		return nil, err
	}
	return order, nil
}

func (s *OrderService) ListOrdersForUser(ctx context.Context, userID int64) ([]domain.Order, error) {
	return s.Stores.ListOrdersByUser(ctx, userID)
}

func (s *OrderService) logger() *zap.Logger {
	if s.Log != nil {
		return s.Log
	}
	return zap.NewNop()
}
