package repository

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"storefront-api/internal/model"
)

// The Memory* stores mirror the PostgreSQL repositories closely enough for
// service and router tests. They are safe for concurrent use.

type MemoryUserStore struct {
	mu    sync.RWMutex
	users map[string]model.User
}

func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{users: make(map[string]model.User)}
}

func (s *MemoryUserStore) FindByID(_ context.Context, id string) (model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return model.User{}, model.ErrUserNotFound
	}
	return u, nil
}

func (s *MemoryUserStore) FindByEmail(_ context.Context, email string) (model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return model.User{}, model.ErrUserNotFound
}

func (s *MemoryUserStore) Create(_ context.Context, u model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.Email == u.Email {
			return model.ErrUserAlreadyExists
		}
	}
	s.users[u.ID] = u
	return nil
}

func (s *MemoryUserStore) UpdateProfile(_ context.Context, u model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.users[u.ID]
	if !ok {
		return model.ErrUserNotFound
	}
	existing.Name = u.Name
	existing.Addresses = u.Addresses
	existing.UpdatedAt = u.UpdatedAt
	s.users[u.ID] = existing
	return nil
}

// Delete removes a user outright. Only tests need it.
func (s *MemoryUserStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.users, id)
}

type MemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]model.Session
}

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{sessions: make(map[string]model.Session)}
}

func (s *MemorySessionStore) Get(_ context.Context, sid string) (model.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[sid]
	if !ok {
		return model.Session{}, model.ErrSessionNotFound
	}
	return session, nil
}

func (s *MemorySessionStore) Set(_ context.Context, session model.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = session
	return nil
}

func (s *MemorySessionStore) Destroy(_ context.Context, sid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sid)
	return nil
}

func (s *MemorySessionStore) CleanExpired(_ context.Context, now time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var removed int64
	for sid, session := range s.sessions {
		if session.Expired(now) {
			delete(s.sessions, sid)
			removed++
		}
	}
	return removed, nil
}

func (s *MemorySessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

type MemoryProductStore struct {
	mu       sync.RWMutex
	products map[string]model.Product
}

func NewMemoryProductStore() *MemoryProductStore {
	return &MemoryProductStore{products: make(map[string]model.Product)}
}

func (s *MemoryProductStore) List(_ context.Context, q model.ProductQuery) (model.ProductList, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]model.Product, 0, len(s.products))
	for _, p := range s.products {
		if !q.IncludeDeleted && p.Deleted {
			continue
		}
		if len(q.Categories) > 0 && !contains(q.Categories, p.Category) {
			continue
		}
		if len(q.Brands) > 0 && !contains(q.Brands, p.Brand) {
			continue
		}
		items = append(items, p)
	}

	desc := strings.EqualFold(strings.TrimSpace(q.Order), "desc")
	sort.Slice(items, func(i, j int) bool {
		c := compareProducts(items[i], items[j], strings.ToLower(strings.TrimSpace(q.Sort)))
		if c == 0 {
			return items[i].ID < items[j].ID
		}
		if desc {
			return c > 0
		}
		return c < 0
	})

	total := int64(len(items))
	return model.ProductList{Items: page(items, q.Page, q.Limit), Total: total}, nil
}

func (s *MemoryProductStore) FindByID(_ context.Context, id string) (model.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.products[id]
	if !ok {
		return model.Product{}, model.ErrProductNotFound
	}
	return p, nil
}

func (s *MemoryProductStore) FindByIDs(_ context.Context, ids []string) (map[string]model.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]model.Product, len(ids))
	for _, id := range ids {
		if p, ok := s.products[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}

func (s *MemoryProductStore) Create(_ context.Context, p model.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products[p.ID] = p
	return nil
}

func (s *MemoryProductStore) Update(_ context.Context, p model.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.products[p.ID]; !ok {
		return model.ErrProductNotFound
	}
	s.products[p.ID] = p
	return nil
}

// reserve takes quantity units of stock or fails without changing anything.
func (s *MemoryProductStore) reserve(items []model.OrderItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make(map[string]model.Product, len(items))
	for _, item := range items {
		p, ok := next[item.Product.ID]
		if !ok {
			p, ok = s.products[item.Product.ID]
		}
		if !ok || p.Deleted || p.Stock < item.Quantity {
			return fmt.Errorf("%w: %s", model.ErrOutOfStock, item.Product.Title)
		}
		p.Stock -= item.Quantity
		next[p.ID] = p
	}

	for id, p := range next {
		s.products[id] = p
	}
	return nil
}

type MemoryOptionStore struct {
	mu      sync.RWMutex
	options []model.Option
}

func NewMemoryOptionStore() *MemoryOptionStore {
	return &MemoryOptionStore{}
}

func (s *MemoryOptionStore) List(_ context.Context) ([]model.Option, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Option, len(s.options))
	copy(out, s.options)
	sort.Slice(out, func(i, j int) bool { return out[i].Label < out[j].Label })
	return out, nil
}

func (s *MemoryOptionStore) Create(_ context.Context, o model.Option) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.options {
		if existing.Value == o.Value {
			return fmt.Errorf("%w: option %q already exists", model.ErrInvalidInput, o.Value)
		}
	}
	s.options = append(s.options, o)
	return nil
}

type MemoryCartStore struct {
	mu    sync.RWMutex
	items map[string]model.CartItem
}

func NewMemoryCartStore() *MemoryCartStore {
	return &MemoryCartStore{items: make(map[string]model.CartItem)}
}

func (s *MemoryCartStore) ListByUser(_ context.Context, userID string) ([]model.CartItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]model.CartItem, 0)
	for _, item := range s.items {
		if item.UserID == userID {
			items = append(items, item)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].CreatedAt.Before(items[j].CreatedAt) })
	return items, nil
}

func (s *MemoryCartStore) FindByID(_ context.Context, id string, userID string) (model.CartItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, ok := s.items[id]
	if !ok || item.UserID != userID {
		return model.CartItem{}, model.ErrCartItemNotFound
	}
	return item, nil
}

func (s *MemoryCartStore) Create(_ context.Context, item model.CartItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	item.Product = nil
	s.items[item.ID] = item
	return nil
}

func (s *MemoryCartStore) Update(_ context.Context, item model.CartItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.items[item.ID]
	if !ok || existing.UserID != item.UserID {
		return model.ErrCartItemNotFound
	}
	item.Product = nil
	s.items[item.ID] = item
	return nil
}

func (s *MemoryCartStore) Delete(_ context.Context, id string, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.items[id]
	if !ok || item.UserID != userID {
		return model.ErrCartItemNotFound
	}
	delete(s.items, id)
	return nil
}

func (s *MemoryCartStore) clear(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, item := range s.items {
		if item.UserID == userID {
			delete(s.items, id)
		}
	}
}

// MemoryOrderStore reserves stock in products and empties the owner's cart on
// Create, like OrderRepository does inside its transaction.
type MemoryOrderStore struct {
	mu       sync.RWMutex
	orders   map[string]model.Order
	products *MemoryProductStore
	cart     *MemoryCartStore
}

func NewMemoryOrderStore(products *MemoryProductStore, cart *MemoryCartStore) *MemoryOrderStore {
	return &MemoryOrderStore{orders: make(map[string]model.Order), products: products, cart: cart}
}

func (s *MemoryOrderStore) Create(_ context.Context, o model.Order) error {
	if s.products != nil {
		if err := s.products.reserve(o.Items); err != nil {
			return err
		}
	}

	s.mu.Lock()
	s.orders[o.ID] = o
	s.mu.Unlock()

	if s.cart != nil {
		s.cart.clear(o.UserID)
	}
	return nil
}

func (s *MemoryOrderStore) FindByID(_ context.Context, id string) (model.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	o, ok := s.orders[id]
	if !ok {
		return model.Order{}, model.ErrOrderNotFound
	}
	return o, nil
}

func (s *MemoryOrderStore) ListByUser(_ context.Context, userID string) ([]model.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]model.Order, 0)
	for _, o := range s.orders {
		if o.UserID == userID {
			items = append(items, o)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].CreatedAt.After(items[j].CreatedAt) })
	return items, nil
}

func (s *MemoryOrderStore) List(_ context.Context, q model.OrderQuery) (model.OrderList, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]model.Order, 0, len(s.orders))
	for _, o := range s.orders {
		items = append(items, o)
	}

	desc := strings.EqualFold(strings.TrimSpace(q.Order), "desc")
	sort.Slice(items, func(i, j int) bool {
		var c int
		switch strings.ToLower(strings.TrimSpace(q.Sort)) {
		case "total_amount":
			c = cmpOrdered(items[i].TotalAmount, items[j].TotalAmount)
		default:
			c = items[i].CreatedAt.Compare(items[j].CreatedAt)
		}
		if c == 0 {
			return items[i].ID < items[j].ID
		}
		if desc {
			return c > 0
		}
		return c < 0
	})

	return model.OrderList{Items: page(items, q.Page, q.Limit), Total: int64(len(items))}, nil
}

func (s *MemoryOrderStore) UpdateStatus(_ context.Context, o model.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.orders[o.ID]
	if !ok {
		return model.ErrOrderNotFound
	}
	existing.Status = o.Status
	existing.PaymentStatus = o.PaymentStatus
	existing.UpdatedAt = o.UpdatedAt
	s.orders[o.ID] = existing
	return nil
}

func (s *MemoryOrderStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.orders[id]; !ok {
		return model.ErrOrderNotFound
	}
	delete(s.orders, id)
	return nil
}

func compareProducts(a model.Product, b model.Product, field string) int {
	switch productSortColumns[field] {
	case "discount_price":
		return cmpOrdered(a.DiscountPrice, b.DiscountPrice)
	case "rating":
		return cmpOrdered(a.Rating, b.Rating)
	case "title":
		return strings.Compare(a.Title, b.Title)
	case "stock":
		return cmpOrdered(a.Stock, b.Stock)
	default:
		return a.CreatedAt.Compare(b.CreatedAt)
	}
}

func cmpOrdered[T int | int64 | float64](a T, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func contains(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}

func page[T any](items []T, pageNumber int, limit int) []T {
	if limit <= 0 {
		return items
	}
	if pageNumber < 1 {
		pageNumber = 1
	}

	start := (pageNumber - 1) * limit
	if start >= len(items) {
		return []T{}
	}
	end := min(start+limit, len(items))
	return items[start:end]
}
