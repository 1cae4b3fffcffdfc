package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"storefront/internal/data/entity"
	"storefront/internal/data/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var errStoreDown = errors.New("store unavailable")

func money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// memStore is an in-memory stand-in for every repository. writes counts
// successful mutating calls so tests can assert that nothing was written.
type memStore struct {
	mu sync.Mutex

	users      map[uuid.UUID]entity.User
	profiles   map[uuid.UUID]entity.Profile
	roles      map[uuid.UUID][]entity.UserRole
	sessions   map[string]entity.Session
	categories map[uuid.UUID]entity.Category
	products   map[uuid.UUID]entity.Product
	cart       []entity.CartItem
	orders     []entity.Order
	orderItems []entity.OrderItem

	writes int

	failOrderCreate   bool
	failOrderItems    bool
	failCartRead      bool
	failCartClear     bool
	failProfileCreate bool
}

func newMemStore() *memStore {
	return &memStore{
		users:      map[uuid.UUID]entity.User{},
		profiles:   map[uuid.UUID]entity.Profile{},
		roles:      map[uuid.UUID][]entity.UserRole{},
		sessions:   map[string]entity.Session{},
		categories: map[uuid.UUID]entity.Category{},
		products:   map[uuid.UUID]entity.Product{},
	}
}

var (
	_ repository.SessionRepository   = memSessions{}
	_ repository.OrderRepository     = memOrders{}
	_ repository.OrderItemRepository = memOrderItems{}
	_ repository.TxManager           = memTx{}
)

func (m *memStore) repository() *repository.Repository {
	return &repository.Repository{
		User:      memUsers{m},
		Profile:   memProfiles{m},
		Role:      memRoles{m},
		Session:   memSessions{m},
		Category:  memCategories{m},
		Product:   memProducts{m},
		Cart:      memCart{m},
		Order:     memOrders{m},
		OrderItem: memOrderItems{m},
		Tx:        memTx{m},
	}
}

type memState struct {
	users      map[uuid.UUID]entity.User
	profiles   map[uuid.UUID]entity.Profile
	roles      map[uuid.UUID][]entity.UserRole
	sessions   map[string]entity.Session
	categories map[uuid.UUID]entity.Category
	products   map[uuid.UUID]entity.Product
	cart       []entity.CartItem
	orders     []entity.Order
	orderItems []entity.OrderItem
	writes     int
}

func cloneMap[K comparable, V any](in map[K]V) map[K]V {
	out := make(map[K]V, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func (m *memStore) snapshot() memState {
	m.mu.Lock()
	defer m.mu.Unlock()

	roles := make(map[uuid.UUID][]entity.UserRole, len(m.roles))
	for id, r := range m.roles {
		roles[id] = append([]entity.UserRole(nil), r...)
	}
	return memState{
		users:      cloneMap(m.users),
		profiles:   cloneMap(m.profiles),
		roles:      roles,
		sessions:   cloneMap(m.sessions),
		categories: cloneMap(m.categories),
		products:   cloneMap(m.products),
		cart:       append([]entity.CartItem(nil), m.cart...),
		orders:     append([]entity.Order(nil), m.orders...),
		orderItems: append([]entity.OrderItem(nil), m.orderItems...),
		writes:     m.writes,
	}
}

func (m *memStore) restore(st memState) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.users, m.profiles, m.roles = st.users, st.profiles, st.roles
	m.sessions, m.categories, m.products = st.sessions, st.categories, st.products
	m.cart, m.orders, m.orderItems = st.cart, st.orders, st.orderItems
	m.writes = st.writes
}

// memTx restores the pre-call state when fn fails.
type memTx struct{ m *memStore }

func (t memTx) WithinTx(ctx context.Context, fn func(tx *repository.Repository) error) error {
	before := t.m.snapshot()
	if err := fn(t.m.repository()); err != nil {
		t.m.restore(before)
		return err
	}
	return nil
}

func (m *memStore) writeCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}

func (m *memStore) addUser(email string, roles ...entity.UserRole) uuid.UUID {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := uuid.New()
	now := time.Now()
	m.users[id] = entity.User{Base: entity.Base{ID: id, CreatedAt: now, UpdatedAt: now}, Email: email}
	m.profiles[id] = entity.Profile{ID: id, CreatedAt: now, UpdatedAt: now}
	m.roles[id] = roles
	return id
}

func (m *memStore) addCategory(name string) uuid.UUID {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := uuid.New()
	m.categories[id] = entity.Category{BaseSimple: entity.BaseSimple{ID: id, CreatedAt: time.Now()}, Name: name}
	return id
}

func (m *memStore) addProduct(p entity.Product) uuid.UUID {
	m.mu.Lock()
	defer m.mu.Unlock()

	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().Add(time.Duration(len(m.products)) * time.Second)
	}
	m.products[p.ID] = p
	return p.ID
}

func (m *memStore) cartFor(userID uuid.UUID) []entity.CartItem {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []entity.CartItem
	for _, it := range m.cart {
		if it.UserID == userID {
			out = append(out, it)
		}
	}
	return out
}

func (m *memStore) itemsFor(orderID uuid.UUID) []entity.OrderItem {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []entity.OrderItem
	for _, it := range m.orderItems {
		if it.OrderID == orderID {
			out = append(out, it)
		}
	}
	return out
}

func (m *memStore) ordersFor(userID uuid.UUID) []entity.Order {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []entity.Order
	for _, o := range m.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out
}

func (m *memStore) withCategoryName(p entity.Product) *entity.Product {
	if p.CategoryID != nil {
		if c, ok := m.categories[*p.CategoryID]; ok {
			p.CategoryName = c.Name
		}
	}
	return &p
}

// ---- users ----

type memUsers struct{ m *memStore }

func (r memUsers) Create(ctx context.Context, user *entity.User) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	r.m.users[user.ID] = *user
	r.m.writes++
	return nil
}

func (r memUsers) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	u, ok := r.m.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r memUsers) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, u := range r.m.users {
		if strings.EqualFold(u.Email, email) {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

// ---- profiles ----

type memProfiles struct{ m *memStore }

func (r memProfiles) Create(ctx context.Context, p *entity.Profile) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if r.m.failProfileCreate {
		return errStoreDown
	}
	r.m.profiles[p.ID] = *p
	r.m.writes++
	return nil
}

func (r memProfiles) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Profile, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	p, ok := r.m.profiles[userID]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r memProfiles) Update(ctx context.Context, p *entity.Profile) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.profiles[p.ID]; !ok {
		return fmt.Errorf("profile %s not found", p.ID)
	}
	r.m.profiles[p.ID] = *p
	r.m.writes++
	return nil
}

// ---- roles ----

type memRoles struct{ m *memStore }

func (r memRoles) Assign(ctx context.Context, a *entity.RoleAssignment) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, existing := range r.m.roles[a.UserID] {
		if existing == a.Role {
			return nil
		}
	}
	r.m.roles[a.UserID] = append(r.m.roles[a.UserID], a.Role)
	r.m.writes++
	return nil
}

func (r memRoles) FindRolesByUserID(ctx context.Context, userID uuid.UUID) ([]entity.UserRole, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	return append([]entity.UserRole(nil), r.m.roles[userID]...), nil
}

// ---- sessions ----

type memSessions struct{ m *memStore }

func (r memSessions) Create(ctx context.Context, s *entity.Session) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	r.m.sessions[s.Token.String()] = *s
	r.m.writes++
	return nil
}

func (r memSessions) FindValidSession(ctx context.Context, token string) (*entity.Session, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	s, ok := r.m.sessions[token]
	if !ok || !s.Live(time.Now()) {
		return nil, nil
	}
	return &s, nil
}

func (r memSessions) Revoke(ctx context.Context, token string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	s, ok := r.m.sessions[token]
	if !ok || s.RevokedAt != nil {
		return fmt.Errorf("session not found or already revoked")
	}
	now := time.Now()
	s.RevokedAt = &now
	r.m.sessions[token] = s
	r.m.writes++
	return nil
}

func (r memSessions) CleanExpiredSessions(ctx context.Context) (int64, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var n int64
	for token, s := range r.m.sessions {
		if !time.Now().Before(s.ExpiresAt) {
			delete(r.m.sessions, token)
			n++
		}
	}
	return n, nil
}

// ---- categories ----

type memCategories struct{ m *memStore }

func (r memCategories) FindAll(ctx context.Context) ([]*entity.Category, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	out := []*entity.Category{}
	for _, c := range r.m.categories {
		c := c
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r memCategories) FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	c, ok := r.m.categories[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

// ---- products ----

type memProducts struct{ m *memStore }

func (r memProducts) Create(ctx context.Context, p *entity.Product) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	r.m.products[p.ID] = *p
	r.m.writes++
	return nil
}

func (r memProducts) FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	p, ok := r.m.products[id]
	if !ok {
		return nil, nil
	}
	return r.m.withCategoryName(p), nil
}

func (r memProducts) filtered(filter repository.ProductFilter) []*entity.Product {
	out := []*entity.Product{}
	for _, p := range r.m.products {
		p := r.m.withCategoryName(p)
		switch {
		case filter.CategoryName == entity.UncategorizedName && p.CategoryID != nil:
			continue
		case filter.CategoryName != "" && filter.CategoryName != entity.UncategorizedName && p.CategoryName != filter.CategoryName:
			continue
		case filter.FeaturedOnly && !p.IsFeatured:
			continue
		case filter.NameQuery != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(filter.NameQuery)):
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (r memProducts) FindAll(ctx context.Context, filter repository.ProductFilter) ([]*entity.Product, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	out := r.filtered(filter)
	if filter.Offset > 0 {
		if filter.Offset >= len(out) {
			return []*entity.Product{}, nil
		}
		out = out[filter.Offset:]
	}
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (r memProducts) Count(ctx context.Context, filter repository.ProductFilter) (int64, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	return int64(len(r.filtered(filter))), nil
}

func (r memProducts) Update(ctx context.Context, p *entity.Product) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.products[p.ID]; !ok {
		return fmt.Errorf("product %s not found", p.ID)
	}
	r.m.products[p.ID] = *p
	r.m.writes++
	return nil
}

func (r memProducts) Delete(ctx context.Context, id uuid.UUID) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.products[id]; !ok {
		return fmt.Errorf("product %s not found", id)
	}
	delete(r.m.products, id)
	r.m.writes++
	return nil
}

// ---- cart ----

type memCart struct{ m *memStore }

func (r memCart) FindLinesByUserID(ctx context.Context, userID uuid.UUID) ([]entity.CartLine, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if r.m.failCartRead {
		return nil, errStoreDown
	}
	lines := []entity.CartLine{}
	for _, it := range r.m.cart {
		if it.UserID != userID {
			continue
		}
		p := r.m.products[it.ProductID]
		lines = append(lines, entity.CartLine{
			ID:        it.ID,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Name:      p.Name,
			Price:     p.Price,
			Image:     p.Image,
		})
	}
	return lines, nil
}

func (r memCart) FindByUserAndProduct(ctx context.Context, userID, productID uuid.UUID) (*entity.CartItem, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, it := range r.m.cart {
		if it.UserID == userID && it.ProductID == productID {
			it := it
			return &it, nil
		}
	}
	return nil, nil
}

func (r memCart) Create(ctx context.Context, item *entity.CartItem) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	r.m.cart = append(r.m.cart, *item)
	r.m.writes++
	return nil
}

func (r memCart) UpdateQuantity(ctx context.Context, userID, itemID uuid.UUID, quantity int) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for i, it := range r.m.cart {
		if it.ID == itemID && it.UserID == userID {
			r.m.cart[i].Quantity = quantity
			r.m.writes++
			return nil
		}
	}
	return fmt.Errorf("cart item %s not found", itemID)
}

func (r memCart) Delete(ctx context.Context, userID, itemID uuid.UUID) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for i, it := range r.m.cart {
		if it.ID == itemID && it.UserID == userID {
			r.m.cart = append(r.m.cart[:i], r.m.cart[i+1:]...)
			r.m.writes++
			return nil
		}
	}
	return fmt.Errorf("cart item %s not found", itemID)
}

func (r memCart) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if r.m.failCartClear {
		return errStoreDown
	}
	kept := r.m.cart[:0]
	for _, it := range r.m.cart {
		if it.UserID != userID {
			kept = append(kept, it)
		}
	}
	r.m.cart = kept
	r.m.writes++
	return nil
}

// ---- orders ----

type memOrders struct{ m *memStore }

func (r memOrders) Create(ctx context.Context, o *entity.Order) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if r.m.failOrderCreate {
		return errStoreDown
	}
	r.m.orders = append(r.m.orders, *o)
	r.m.writes++
	return nil
}

func (r memOrders) find(match func(entity.Order) bool) *entity.Order {
	for _, o := range r.m.orders {
		if match(o) {
			o := o
			return &o
		}
	}
	return nil
}

func (r memOrders) FindByIdempotencyKey(ctx context.Context, userID uuid.UUID, key string) (*entity.Order, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	return r.find(func(o entity.Order) bool {
		return o.UserID == userID && o.IdempotencyKey != nil && *o.IdempotencyKey == key
	}), nil
}

func (r memOrders) withCounts(match func(entity.Order) bool) []*entity.Order {
	out := []*entity.Order{}
	for i := len(r.m.orders) - 1; i >= 0; i-- {
		o := r.m.orders[i]
		if !match(o) {
			continue
		}
		for _, it := range r.m.orderItems {
			if it.OrderID == o.ID {
				o.ItemCount++
			}
		}
		out = append(out, &o)
	}
	return out
}

func (r memOrders) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Order, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	return r.withCounts(func(o entity.Order) bool { return o.UserID == userID }), nil
}

func (r memOrders) FindAll(ctx context.Context, limit, offset int) ([]*entity.Order, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	out := r.withCounts(func(entity.Order) bool { return true })
	if offset >= len(out) {
		return []*entity.Order{}, nil
	}
	out = out[offset:]
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r memOrders) CountAll(ctx context.Context) (int64, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	return int64(len(r.m.orders)), nil
}

func (r memOrders) UpdateStatus(ctx context.Context, orderID uuid.UUID, status entity.OrderStatus) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for i, o := range r.m.orders {
		if o.ID == orderID {
			r.m.orders[i].Status = status
			r.m.writes++
			return nil
		}
	}
	return fmt.Errorf("order %s not found", orderID)
}

func (r memOrders) Delete(ctx context.Context, id uuid.UUID) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for i, o := range r.m.orders {
		if o.ID == id {
			r.m.orders = append(r.m.orders[:i], r.m.orders[i+1:]...)
			r.m.writes++
			return nil
		}
	}
	return fmt.Errorf("order %s not found", id)
}

func (r memOrders) Stats(ctx context.Context) (*repository.OrderStats, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	stats := &repository.OrderStats{}
	for _, o := range r.m.orders {
		stats.TotalRevenue = stats.TotalRevenue.Add(o.TotalAmount)
		stats.TotalOrders++
		if o.Status == entity.OrderStatusPending {
			stats.PendingOrders++
		}
	}
	return stats, nil
}

// ---- order items ----

type memOrderItems struct{ m *memStore }

func (r memOrderItems) CreateBatch(ctx context.Context, items []*entity.OrderItem) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if r.m.failOrderItems {
		return errStoreDown
	}
	for _, it := range items {
		r.m.orderItems = append(r.m.orderItems, *it)
	}
	r.m.writes++
	return nil
}

// ---- notifier ----

type sentMail struct {
	to, subject, body string
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent []sentMail
	err  error
}

func (n *recordingNotifier) Send(to, subject, body string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.err != nil {
		return n.err
	}
	n.sent = append(n.sent, sentMail{to: to, subject: subject, body: body})
	return nil
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.sent)
}
