// Package memory implements the persistence contract with in-process maps.
// It backs the service tests and mirrors the transactional behavior of the
// postgres store: InTx snapshots the state and restores it when fn fails.
package memory

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"sync"
	"time"

	"stylemart-backend/internal/domain"
	"stylemart-backend/internal/usecase"
)

type Store struct {
	mu  sync.Mutex
	seq int64

	users          map[int64]*domain.User
	products       map[int64]*domain.Product
	carts          map[int64]*domain.Cart
	orders         map[int64]*domain.Order
	payments       map[int64]*domain.Payment
	events         map[string]*domain.PayPalEvent
	conversations  map[int64]*domain.Conversation
	presets        map[int64]*domain.AvatarPreset
	avatarRequests map[int64]*domain.AvatarRequest
	keywords       map[int64]*domain.SearchKeyword
}

var _ usecase.Stores = (*Store)(nil)

func New() *Store {
	return &Store{
		users:          map[int64]*domain.User{},
		products:       map[int64]*domain.Product{},
		carts:          map[int64]*domain.Cart{},
		orders:         map[int64]*domain.Order{},
		payments:       map[int64]*domain.Payment{},
		events:         map[string]*domain.PayPalEvent{},
		conversations:  map[int64]*domain.Conversation{},
		presets:        map[int64]*domain.AvatarPreset{},
		avatarRequests: map[int64]*domain.AvatarRequest{},
		keywords:       map[int64]*domain.SearchKeyword{},
	}
}

func (s *Store) nextID() int64 {
	s.seq++
	return s.seq
}

// InTx snapshots the whole store and restores it if fn returns an error.
// Good enough for single-request test scenarios; the postgres store provides
// real isolation.
func (s *Store) InTx(ctx context.Context, fn func(usecase.Stores) error) error {
	s.mu.Lock()
	snapshot := s.cloneState()
	s.mu.Unlock()

	if err := fn(s); err != nil {
		s.mu.Lock()
		s.restore(snapshot)
		s.mu.Unlock()
		return err
	}
	return nil
}

type state struct {
	seq            int64
	users          map[int64]*domain.User
	products       map[int64]*domain.Product
	carts          map[int64]*domain.Cart
	orders         map[int64]*domain.Order
	payments       map[int64]*domain.Payment
	events         map[string]*domain.PayPalEvent
	conversations  map[int64]*domain.Conversation
	presets        map[int64]*domain.AvatarPreset
	avatarRequests map[int64]*domain.AvatarRequest
	keywords       map[int64]*domain.SearchKeyword
}

func (s *Store) cloneState() *state {
	st := &state{
		seq:            s.seq,
		users:          map[int64]*domain.User{},
		products:       map[int64]*domain.Product{},
		carts:          map[int64]*domain.Cart{},
		orders:         map[int64]*domain.Order{},
		payments:       map[int64]*domain.Payment{},
		events:         map[string]*domain.PayPalEvent{},
		conversations:  map[int64]*domain.Conversation{},
		presets:        map[int64]*domain.AvatarPreset{},
		avatarRequests: map[int64]*domain.AvatarRequest{},
		keywords:       map[int64]*domain.SearchKeyword{},
	}
	for id, u := range s.users {
		st.users[id] = cloneUser(u)
	}
	for id, p := range s.products {
		st.products[id] = cloneProduct(p)
	}
	for id, c := range s.carts {
		st.carts[id] = cloneCart(c)
	}
	for id, o := range s.orders {
		st.orders[id] = cloneOrder(o)
	}
	for id, p := range s.payments {
		st.payments[id] = clonePayment(p)
	}
	for id, e := range s.events {
		cp := *e
		st.events[id] = &cp
	}
	for id, c := range s.conversations {
		st.conversations[id] = cloneConversation(c)
	}
	for id, p := range s.presets {
		st.presets[id] = clonePreset(p)
	}
	for id, r := range s.avatarRequests {
		st.avatarRequests[id] = cloneAvatarRequest(r)
	}
	for id, k := range s.keywords {
		cp := *k
		st.keywords[id] = &cp
	}
	return st
}

func (s *Store) restore(st *state) {
	s.seq = st.seq
	s.users = st.users
	s.products = st.products
	s.carts = st.carts
	s.orders = st.orders
	s.payments = st.payments
	s.events = st.events
	s.conversations = st.conversations
	s.presets = st.presets
	s.avatarRequests = st.avatarRequests
	s.keywords = st.keywords
}

// Users.

func (s *Store) CreateUser(ctx context.Context, u *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u.ID = s.nextID()
	u.CreatedAt = time.Now().UTC()
	u.UpdatedAt = u.CreatedAt
	s.users[u.ID] = cloneUser(u)
	return nil
}

func (s *Store) UpdateUser(ctx context.Context, u *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[u.ID]; !ok {
		return usecase.ErrNotFound("user")
	}
	u.UpdatedAt = time.Now().UTC()
	s.users[u.ID] = cloneUser(u)
	return nil
}

func (s *Store) UserByEmail(ctx context.Context, email string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			return cloneUser(u), nil
		}
	}
	return nil, usecase.ErrNotFound("user")
}

func (s *Store) UserByID(ctx context.Context, id int64) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, usecase.ErrNotFound("user")
	}
	return cloneUser(u), nil
}

func (s *Store) ListUsers(ctx context.Context, f usecase.UserFilter) ([]domain.User, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var all []domain.User
	for _, u := range s.users {
		if f.Search != "" && !strings.Contains(strings.ToLower(u.Email), strings.ToLower(f.Search)) {
			continue
		}
		if f.Role != "" && u.Role != f.Role {
			continue
		}
		if f.Status != "" && u.Status != f.Status {
			continue
		}
		all = append(all, *cloneUser(u))
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })
	page, total := paginate(len(all), f.Page)
	return all[page[0]:page[1]], total, nil
}

// Products.

func (s *Store) CreateProduct(ctx context.Context, p *domain.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p.ID = s.nextID()
	p.CreatedAt = time.Now().UTC()
	p.UpdatedAt = p.CreatedAt
	s.products[p.ID] = cloneProduct(p)
	return nil
}

func (s *Store) UpdateProduct(ctx context.Context, p *domain.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.products[p.ID]
	if !ok {
		return usecase.ErrNotFound("product")
	}
	cp := cloneProduct(p)
	cp.Images = existing.Images
	cp.UpdatedAt = time.Now().UTC()
	s.products[p.ID] = cp
	return nil
}

func (s *Store) ProductByID(ctx context.Context, id int64) (*domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[id]
	if !ok {
		return nil, usecase.ErrNotFound("product")
	}
	return cloneProduct(p), nil
}

func (s *Store) ProductForUpdate(ctx context.Context, id int64) (*domain.Product, error) {
	return s.ProductByID(ctx, id)
}

func (s *Store) DecrementStock(ctx context.Context, productID int64, qty int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[productID]
	if !ok {
		return usecase.ErrNotFound("product")
	}
	if p.Stock < qty {
		return usecase.ErrInvalidState("insufficient stock for product")
	}
	p.Stock -= qty
	p.UpdatedAt = time.Now().UTC()
	return nil
}

func (s *Store) ListProducts(ctx context.Context, f usecase.ProductFilter) ([]domain.Product, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var all []domain.Product
	for _, p := range s.products {
		if p.Status == domain.ProductDeleted {
			continue
		}
		if f.PublicOnly && (p.Status != domain.ProductActive || p.IsHidden) {
			continue
		}
		if f.Search != "" {
			q := strings.ToLower(f.Search)
			if !strings.Contains(strings.ToLower(p.Name), q) &&
				!strings.Contains(strings.ToLower(p.Description), q) {
				continue
			}
		}
		if f.SellerID != nil && p.SellerID != *f.SellerID {
			continue
		}
		if f.Status != "" && p.Status != f.Status {
			continue
		}
		if f.Flagged != nil && p.IsFlagged != *f.Flagged {
			continue
		}
		if f.Hidden != nil && p.IsHidden != *f.Hidden {
			continue
		}
		if f.Category != "" && p.Category != f.Category {
			continue
		}
		if f.Gender != "" && p.Gender != f.Gender {
			continue
		}
		if f.Size != "" && !contains(p.SizeOptions, f.Size) {
			continue
		}
		if f.Color != "" && !contains(p.ColorOptions, f.Color) {
			continue
		}
		if f.PriceMin != nil && p.Price.LessThan(*f.PriceMin) {
			continue
		}
		if f.PriceMax != nil && p.Price.GreaterThan(*f.PriceMax) {
			continue
		}
		all = append(all, *cloneProduct(p))
	}
	switch f.Sort {
	case "price_asc":
		sort.Slice(all, func(i, j int) bool { return all[i].Price.LessThan(all[j].Price) })
	case "price_desc":
		sort.Slice(all, func(i, j int) bool { return all[i].Price.GreaterThan(all[j].Price) })
	default:
		sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })
	}
	page, total := paginate(len(all), f.Page)
	return all[page[0]:page[1]], total, nil
}

func (s *Store) SearchProducts(ctx context.Context, query string, limit int) ([]domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	q := strings.ToLower(query)
	var out []domain.Product
	for _, p := range s.products {
		if p.Status != domain.ProductActive || p.IsHidden {
			continue
		}
		if strings.Contains(strings.ToLower(p.Name), q) ||
			strings.Contains(strings.ToLower(p.Description), q) ||
			strings.Contains(strings.ToLower(p.Category), q) {
			out = append(out, *cloneProduct(p))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *Store) ProductNames(ctx context.Context, limit int) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var products []*domain.Product
	for _, p := range s.products {
		if p.Status == domain.ProductActive && !p.IsHidden {
			products = append(products, p)
		}
	}
	sort.Slice(products, func(i, j int) bool { return products[i].ID > products[j].ID })
	if len(products) > limit {
		products = products[:limit]
	}
	names := make([]string, 0, len(products))
	for _, p := range products {
		names = append(names, p.Name)
	}
	return names, nil
}

func (s *Store) AddProductImages(ctx context.Context, imgs []domain.ProductImage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range imgs {
		img := imgs[i]
		p, ok := s.products[img.ProductID]
		if !ok {
			return usecase.ErrNotFound("product")
		}
		img.ID = s.nextID()
		imgs[i].ID = img.ID
		p.Images = append(p.Images, img)
	}
	return nil
}

// Carts.

func (s *Store) CartByUser(ctx context.Context, userID int64) (*domain.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.carts {
		if c.UserID == userID {
			return cloneCart(c), nil
		}
	}
	return nil, usecase.ErrNotFound("cart")
}

func (s *Store) CreateCart(ctx context.Context, userID int64) (*domain.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := &domain.Cart{
		ID:        s.nextID(),
		UserID:    userID,
		Items:     []domain.CartItem{},
		CreatedAt: time.Now().UTC(),
	}
	c.UpdatedAt = c.CreatedAt
	s.carts[c.ID] = c
	return cloneCart(c), nil
}

func (s *Store) CartByID(ctx context.Context, id int64) (*domain.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.carts[id]
	if !ok {
		return nil, usecase.ErrNotFound("cart")
	}
	return cloneCart(c), nil
}

func (s *Store) CartItemByID(ctx context.Context, itemID int64) (*domain.CartItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.carts {
		for i := range c.Items {
			if c.Items[i].ID == itemID {
				item := c.Items[i]
				return &item, nil
			}
		}
	}
	return nil, usecase.ErrNotFound("cart item")
}

func (s *Store) AddCartItem(ctx context.Context, item *domain.CartItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.carts[item.CartID]
	if !ok {
		return usecase.ErrNotFound("cart")
	}
	item.ID = s.nextID()
	c.Items = append(c.Items, *item)
	return nil
}

func (s *Store) UpdateCartItemQuantity(ctx context.Context, itemID int64, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.carts {
		for i := range c.Items {
			if c.Items[i].ID == itemID {
				c.Items[i].Quantity = quantity
				return nil
			}
		}
	}
	return usecase.ErrNotFound("cart item")
}

func (s *Store) DeleteCartItem(ctx context.Context, itemID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.carts {
		for i := range c.Items {
			if c.Items[i].ID == itemID {
				c.Items = append(c.Items[:i], c.Items[i+1:]...)
				return nil
			}
		}
	}
	return usecase.ErrNotFound("cart item")
}

func (s *Store) DeleteCartItems(ctx context.Context, cartID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.carts[cartID]
	if !ok {
		return usecase.ErrNotFound("cart")
	}
	c.Items = []domain.CartItem{}
	return nil
}

// Orders.

func (s *Store) CreateOrder(ctx context.Context, o *domain.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	o.ID = s.nextID()
	o.CreatedAt = time.Now().UTC()
	o.UpdatedAt = o.CreatedAt
	for i := range o.Items {
		o.Items[i].ID = s.nextID()
		o.Items[i].OrderID = o.ID
	}
	s.orders[o.ID] = cloneOrder(o)
	return nil
}

func (s *Store) OrderByID(ctx context.Context, id int64) (*domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok {
		return nil, usecase.ErrNotFound("order")
	}
	return cloneOrder(o), nil
}

func (s *Store) OrderByIDAndUser(ctx context.Context, id, userID int64) (*domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok || o.UserID != userID {
		return nil, usecase.ErrNotFound("order")
	}
	return cloneOrder(o), nil
}

func (s *Store) ListOrdersByUser(ctx context.Context, userID int64) ([]domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Order
	for _, o := range s.orders {
		if o.UserID == userID {
			out = append(out, *cloneOrder(o))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (s *Store) ListOrders(ctx context.Context, f usecase.OrderFilter) ([]domain.Order, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var all []domain.Order
	for _, o := range s.orders {
		if f.UserID != nil && o.UserID != *f.UserID {
			continue
		}
		if f.Status != "" && o.Status != f.Status {
			continue
		}
		all = append(all, *cloneOrder(o))
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })
	page, total := paginate(len(all), f.Page)
	return all[page[0]:page[1]], total, nil
}

func (s *Store) UpdateOrderStatus(ctx context.Context, id int64, st domain.OrderStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok {
		return usecase.ErrNotFound("order")
	}
	o.Status = st
	o.UpdatedAt = time.Now().UTC()
	return nil
}

// Payments and events.

func (s *Store) CreatePayment(ctx context.Context, p *domain.Payment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p.ID = s.nextID()
	p.CreatedAt = time.Now().UTC()
	p.UpdatedAt = p.CreatedAt
	s.payments[p.ID] = clonePayment(p)
	return nil
}

func (s *Store) PaymentByProviderID(ctx context.Context, providerPaymentID string) (*domain.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var latest *domain.Payment
	for _, p := range s.payments {
		if p.ProviderPaymentID == providerPaymentID {
			if latest == nil || p.ID > latest.ID {
				latest = p
			}
		}
	}
	if latest == nil {
		return nil, usecase.ErrNotFound("payment")
	}
	return clonePayment(latest), nil
}

func (s *Store) UpdatePaymentStatus(ctx context.Context, paymentID int64, st domain.PaymentStatus, raw json.RawMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.payments[paymentID]
	if !ok {
		return usecase.ErrNotFound("payment")
	}
	p.Status = st
	if raw != nil {
		p.RawResponse = append([]byte(nil), raw...)
	}
	p.UpdatedAt = time.Now().UTC()
	return nil
}

func (s *Store) HasEvent(ctx context.Context, eventID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.events[eventID]
	return ok, nil
}

func (s *Store) InsertEvent(ctx context.Context, e *domain.PayPalEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.events[e.EventID]; ok {
		return usecase.ErrInvalidState("duplicate event")
	}
	e.ID = s.nextID()
	e.ProcessedAt = time.Now().UTC()
	cp := *e
	s.events[e.EventID] = &cp
	return nil
}

// Conversations.

func (s *Store) ConversationByID(ctx context.Context, conversationID string, typ domain.ConversationType, userID int64) (*domain.Conversation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.conversations {
		if c.ConversationID == conversationID && c.Type == typ && c.UserID == userID {
			return cloneConversation(c), nil
		}
	}
	return nil, usecase.ErrNotFound("conversation")
}

func (s *Store) CreateConversation(ctx context.Context, c *domain.Conversation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.ID = s.nextID()
	c.CreatedAt = time.Now().UTC()
	c.UpdatedAt = c.CreatedAt
	s.conversations[c.ID] = cloneConversation(c)
	return nil
}

func (s *Store) UpdateConversationMessages(ctx context.Context, id int64, msgs []domain.ChatMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.conversations[id]
	if !ok {
		return usecase.ErrNotFound("conversation")
	}
	c.Messages = append([]domain.ChatMessage(nil), msgs...)
	c.UpdatedAt = time.Now().UTC()
	return nil
}

// Avatar presets and requests.

func (s *Store) ListActivePresets(ctx context.Context) ([]domain.AvatarPreset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.AvatarPreset
	for _, p := range s.presets {
		if p.Status == domain.PresetActive {
			out = append(out, *clonePreset(p))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) PresetByID(ctx context.Context, id int64) (*domain.AvatarPreset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.presets[id]
	if !ok {
		return nil, usecase.ErrNotFound("avatar preset")
	}
	return clonePreset(p), nil
}

func (s *Store) CreatePreset(ctx context.Context, p *domain.AvatarPreset) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p.ID = s.nextID()
	p.CreatedAt = time.Now().UTC()
	p.UpdatedAt = p.CreatedAt
	s.presets[p.ID] = clonePreset(p)
	return nil
}

func (s *Store) UpdatePreset(ctx context.Context, p *domain.AvatarPreset) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.presets[p.ID]; !ok {
		return usecase.ErrNotFound("avatar preset")
	}
	p.UpdatedAt = time.Now().UTC()
	s.presets[p.ID] = clonePreset(p)
	return nil
}

func (s *Store) CreateAvatarRequest(ctx context.Context, r *domain.AvatarRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r.ID = s.nextID()
	r.CreatedAt = time.Now().UTC()
	r.UpdatedAt = r.CreatedAt
	s.avatarRequests[r.ID] = cloneAvatarRequest(r)
	return nil
}

func (s *Store) UpdateAvatarRequestResult(ctx context.Context, id int64, st domain.AvatarRequestStatus, urls []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.avatarRequests[id]
	if !ok {
		return usecase.ErrNotFound("avatar request")
	}
	r.Status = st
	r.ImageURLs = append([]string(nil), urls...)
	r.UpdatedAt = time.Now().UTC()
	return nil
}

// Search history.

func (s *Store) RecentKeywords(ctx context.Context, limit int) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var rows []*domain.SearchKeyword
	for _, k := range s.keywords {
		rows = append(rows, k)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].ID > rows[j].ID })
	if len(rows) > limit {
		rows = rows[:limit]
	}
	out := make([]string, 0, len(rows))
	for _, k := range rows {
		out = append(out, k.Keyword)
	}
	return out, nil
}

func (s *Store) SearchHistory(ctx context.Context, userID *int64) ([]domain.SearchKeyword, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.SearchKeyword
	for _, k := range s.keywords {
		if sameUser(k.UserID, userID) {
			out = append(out, *k)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	if len(out) > 50 {
		out = out[:50]
	}
	return out, nil
}

func (s *Store) AddSearchHistory(ctx context.Context, k *domain.SearchKeyword) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	k.ID = s.nextID()
	k.CreatedAt = time.Now().UTC()
	cp := *k
	s.keywords[k.ID] = &cp
	return nil
}

func (s *Store) DeleteSearchHistory(ctx context.Context, id int64, userID *int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	k, ok := s.keywords[id]
	if ok && sameUser(k.UserID, userID) {
		delete(s.keywords, id)
	}
	return nil
}

// Helpers.

func sameUser(a, b *int64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if strings.EqualFold(s, v) {
			return true
		}
	}
	return false
}

func paginate(total int, p usecase.Page) ([2]int, int) {
	start := (p.Page - 1) * p.PageSize
	if start > total {
		start = total
	}
	end := start + p.PageSize
	if end > total {
		end = total
	}
	return [2]int{start, end}, total
}

func cloneUser(u *domain.User) *domain.User {
	cp := *u
	return &cp
}

func cloneProduct(p *domain.Product) *domain.Product {
	cp := *p
	cp.SizeOptions = append([]string(nil), p.SizeOptions...)
	cp.ColorOptions = append([]string(nil), p.ColorOptions...)
	cp.Images = append([]domain.ProductImage(nil), p.Images...)
	return &cp
}

func cloneCart(c *domain.Cart) *domain.Cart {
	cp := *c
	cp.Items = make([]domain.CartItem, len(c.Items))
	for i, item := range c.Items {
		cp.Items[i] = item
		cp.Items[i].VariantData = cloneParams(item.VariantData)
	}
	return &cp
}

func cloneOrder(o *domain.Order) *domain.Order {
	cp := *o
	cp.Items = make([]domain.OrderItem, len(o.Items))
	for i, item := range o.Items {
		cp.Items[i] = item
		cp.Items[i].VariantData = cloneParams(item.VariantData)
	}
	return &cp
}

func clonePayment(p *domain.Payment) *domain.Payment {
	cp := *p
	cp.RawResponse = append([]byte(nil), p.RawResponse...)
	return &cp
}

func cloneConversation(c *domain.Conversation) *domain.Conversation {
	cp := *c
	cp.Messages = append([]domain.ChatMessage(nil), c.Messages...)
	return &cp
}

func clonePreset(p *domain.AvatarPreset) *domain.AvatarPreset {
	cp := *p
	cp.Parameters = cloneParams(p.Parameters)
	return &cp
}

func cloneAvatarRequest(r *domain.AvatarRequest) *domain.AvatarRequest {
	cp := *r
	cp.StyleParams = cloneParams(r.StyleParams)
	cp.ImageURLs = append([]string(nil), r.ImageURLs...)
	return &cp
}

func cloneParams(m map[string]string) map[string]string {
	if m == nil {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
