package usecase

import (
	"context"
	"encoding/json"

	"github.com/shopspring/decimal"

	"stylemart-backend/internal/domain"
)

// Stores is the persistence contract shared by every service. The postgres
// implementation backs it with one database; the memory implementation backs
// tests. InTx runs fn against a view of the same interface bound to a single
// transaction: every multi-write workflow (stock decrement + order write +
// cart clear, payment status + order status) goes through it so a crash or a
// concurrent request never observes a partially-applied state.
type Stores interface {
	InTx(ctx context.Context, fn func(Stores) error) error

	// Users.
	CreateUser(ctx context.Context, u *domain.User) error
	UpdateUser(ctx context.Context, u *domain.User) error
	UserByEmail(ctx context.Context, email string) (*domain.User, error)
	UserByID(ctx context.Context, id int64) (*domain.User, error)
	ListUsers(ctx context.Context, f UserFilter) ([]domain.User, int, error)

	// Products. ProductForUpdate must lock the row for the duration of the
	// surrounding transaction so concurrent orders cannot both pass the
	// stock check on stale reads.
	CreateProduct(ctx context.Context, p *domain.Product) error
	UpdateProduct(ctx context.Context, p *domain.Product) error
	ProductByID(ctx context.Context, id int64) (*domain.Product, error)
	ProductForUpdate(ctx context.Context, id int64) (*domain.Product, error)
	DecrementStock(ctx context.Context, productID int64, qty int) error
	ListProducts(ctx context.Context, f ProductFilter) ([]domain.Product, int, error)
	SearchProducts(ctx context.Context, query string, limit int) ([]domain.Product, error)
	ProductNames(ctx context.Context, limit int) ([]string, error)
	AddProductImages(ctx context.Context, imgs []domain.ProductImage) error

	// Carts.
	CartByUser(ctx context.Context, userID int64) (*domain.Cart, error)
	CreateCart(ctx context.Context, userID int64) (*domain.Cart, error)
	CartByID(ctx context.Context, id int64) (*domain.Cart, error)
	CartItemByID(ctx context.Context, itemID int64) (*domain.CartItem, error)
	AddCartItem(ctx context.Context, item *domain.CartItem) error
	UpdateCartItemQuantity(ctx context.Context, itemID int64, quantity int) error
	DeleteCartItem(ctx context.Context, itemID int64) error
	DeleteCartItems(ctx context.Context, cartID int64) error

	// Orders.
	CreateOrder(ctx context.Context, o *domain.Order) error
	OrderByID(ctx context.Context, id int64) (*domain.Order, error)
	OrderByIDAndUser(ctx context.Context, id, userID int64) (*domain.Order, error)
	ListOrdersByUser(ctx context.Context, userID int64) ([]domain.Order, error)
	ListOrders(ctx context.Context, f OrderFilter) ([]domain.Order, int, error)
	UpdateOrderStatus(ctx context.Context, id int64, st domain.OrderStatus) error

	// Payments.
	CreatePayment(ctx context.Context, p *domain.Payment) error
	PaymentByProviderID(ctx context.Context, providerPaymentID string) (*domain.Payment, error)
	UpdatePaymentStatus(ctx context.Context, paymentID int64, st domain.PaymentStatus, raw json.RawMessage) error

	// Webhook event log. InsertEvent must fail on a duplicate event id (the
	// table carries a unique constraint); HasEvent is the fast path.
	HasEvent(ctx context.Context, eventID string) (bool, error)
	InsertEvent(ctx context.Context, e *domain.PayPalEvent) error

	// Assistant conversations.
	ConversationByID(ctx context.Context, conversationID string, typ domain.ConversationType, userID int64) (*domain.Conversation, error)
	CreateConversation(ctx context.Context, c *domain.Conversation) error
	UpdateConversationMessages(ctx context.Context, id int64, messages []domain.ChatMessage) error

	// Avatar presets and rendering requests.
	ListActivePresets(ctx context.Context) ([]domain.AvatarPreset, error)
	PresetByID(ctx context.Context, id int64) (*domain.AvatarPreset, error)
	CreatePreset(ctx context.Context, p *domain.AvatarPreset) error
	UpdatePreset(ctx context.Context, p *domain.AvatarPreset) error
	CreateAvatarRequest(ctx context.Context, r *domain.AvatarRequest) error
	UpdateAvatarRequestResult(ctx context.Context, id int64, st domain.AvatarRequestStatus, urls []string) error

	// Search history.
	RecentKeywords(ctx context.Context, limit int) ([]string, error)
	SearchHistory(ctx context.Context, userID *int64) ([]domain.SearchKeyword, error)
	AddSearchHistory(ctx context.Context, k *domain.SearchKeyword) error
	DeleteSearchHistory(ctx context.Context, id int64, userID *int64) error
}

type Page struct {
	Page     int
	PageSize int
}

func (p Page) Normalized() Page {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 || p.PageSize > 100 {
		p.PageSize = 20
	}
	return p
}

type UserFilter struct {
	Search string
	Role   domain.UserRole
	Status domain.UserStatus
	Page
}

type ProductFilter struct {
	Search   string
	SellerID *int64
	Status   domain.ProductStatus
	Flagged  *bool
	Hidden   *bool

	Category string
	Gender   string
	Size     string
	Color    string
	PriceMin *decimal.Decimal
	PriceMax *decimal.Decimal
	Sort     string // price_asc, price_desc, newest

	// PublicOnly restricts results to active, non-hidden products for the
	// storefront listing; admin listings leave it false.
	PublicOnly bool
	Page
}

type OrderFilter struct {
	UserID *int64
	Status domain.OrderStatus
	Page
}
