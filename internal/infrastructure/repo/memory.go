package repo

import (
	"context"
	"sort"
	"strings"
	"sync"

	"atelier-backend/internal/domain"
	"atelier-backend/internal/usecase"
)

// memoryDB is the shared state behind the in-memory repos. One mutex and one
// id sequence across all tables, the way a single database would behave.
type memoryDB struct {
	mu            sync.RWMutex
	seq           int64
	users         map[int64]*domain.User
	verifications map[int64]*domain.Verification
	categories    map[int64]*domain.Category
	stores        map[int64]*domain.Store
	commissions   map[int64]*domain.Commission
	orders        map[int64]*domain.Order
	orderItems    map[int64]*domain.OrderItem
	payments      map[int64]*domain.Payment
	chatRooms     map[int64]*domain.ChatRoom
	chats         map[int64]*domain.Chat
	posts         map[int64]*domain.Post
}

func (db *memoryDB) nextID() int64 {
	db.seq++
	return db.seq
}

// Memory bundles in-memory implementations of every repo interface. Used by
// tests and dev mode when no database is configured.
type Memory struct {
	Users         *MemoryUserRepo
	Verifications *MemoryVerificationRepo
	Categories    *MemoryCategoryRepo
	Stores        *MemoryStoreRepo
	Commissions   *MemoryCommissionRepo
	Orders        *MemoryOrderRepo
	OrderItems    *MemoryOrderItemRepo
	Payments      *MemoryPaymentRepo
	ChatRooms     *MemoryChatRoomRepo
	Chats         *MemoryChatRepo
	Posts         *MemoryPostRepo
}

func NewMemory() *Memory {
	db := &memoryDB{
		users:         make(map[int64]*domain.User),
		verifications: make(map[int64]*domain.Verification),
		categories:    make(map[int64]*domain.Category),
		stores:        make(map[int64]*domain.Store),
		commissions:   make(map[int64]*domain.Commission),
		orders:        make(map[int64]*domain.Order),
		orderItems:    make(map[int64]*domain.OrderItem),
		payments:      make(map[int64]*domain.Payment),
		chatRooms:     make(map[int64]*domain.ChatRoom),
		chats:         make(map[int64]*domain.Chat),
		posts:         make(map[int64]*domain.Post),
	}
	return &Memory{
		Users:         &MemoryUserRepo{db: db},
		Verifications: &MemoryVerificationRepo{db: db},
		Categories:    &MemoryCategoryRepo{db: db},
		Stores:        &MemoryStoreRepo{db: db},
		Commissions:   &MemoryCommissionRepo{db: db},
		Orders:        &MemoryOrderRepo{db: db},
		OrderItems:    &MemoryOrderItemRepo{db: db},
		Payments:      &MemoryPaymentRepo{db: db},
		ChatRooms:     &MemoryChatRoomRepo{db: db},
		Chats:         &MemoryChatRepo{db: db},
		Posts:         &MemoryPostRepo{db: db},
	}
}

func page[T any](items []T, limit, offset int) []T {
	if offset > len(items) {
		offset = len(items)
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}

// --- users ------------------------------------------------------------------

type MemoryUserRepo struct{ db *memoryDB }

var _ usecase.UserRepo = (*MemoryUserRepo)(nil)

func (r *MemoryUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	u, ok := r.db.users[id]
	if !ok {
		return nil, usecase.ErrNoRows
	}
	cp := *u
	return &cp, nil
}

func (r *MemoryUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	for _, u := range r.db.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, usecase.ErrNoRows
}

func (r *MemoryUserRepo) CountByEmail(ctx context.Context, email string) (int, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	n := 0
	for _, u := range r.db.users {
		if u.Email == email {
			n++
		}
	}
	return n, nil
}

func (r *MemoryUserRepo) Save(ctx context.Context, u *domain.User) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if u.ID == 0 {
		u.ID = r.db.nextID()
	}
	cp := *u
	r.db.users[u.ID] = &cp
	return nil
}

// --- verifications ----------------------------------------------------------

type MemoryVerificationRepo struct{ db *memoryDB }

var _ usecase.VerificationRepo = (*MemoryVerificationRepo)(nil)

func (r *MemoryVerificationRepo) GetByCode(ctx context.Context, code string) (*domain.Verification, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	for _, v := range r.db.verifications {
		if v.Code == code {
			cp := *v
			return &cp, nil
		}
	}
	return nil, usecase.ErrNoRows
}

func (r *MemoryVerificationRepo) Save(ctx context.Context, v *domain.Verification) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if v.ID == 0 {
		v.ID = r.db.nextID()
	}
	cp := *v
	r.db.verifications[v.ID] = &cp
	return nil
}

func (r *MemoryVerificationRepo) DeleteByUser(ctx context.Context, userID int64) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for id, v := range r.db.verifications {
		if v.UserID == userID {
			delete(r.db.verifications, id)
		}
	}
	return nil
}

func (r *MemoryVerificationRepo) Delete(ctx context.Context, id int64) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	delete(r.db.verifications, id)
	return nil
}

// --- categories -------------------------------------------------------------

type MemoryCategoryRepo struct{ db *memoryDB }

var _ usecase.CategoryRepo = (*MemoryCategoryRepo)(nil)

func (r *MemoryCategoryRepo) GetBySlug(ctx context.Context, slug string) (*domain.Category, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	for _, c := range r.db.categories {
		if c.Slug == slug {
			cp := *c
			return &cp, nil
		}
	}
	return nil, usecase.ErrNoRows
}

func (r *MemoryCategoryRepo) List(ctx context.Context) ([]domain.Category, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	out := make([]domain.Category, 0, len(r.db.categories))
	for _, c := range r.db.categories {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *MemoryCategoryRepo) Save(ctx context.Context, c *domain.Category) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if c.ID == 0 {
		c.ID = r.db.nextID()
	}
	cp := *c
	r.db.categories[c.ID] = &cp
	return nil
}

// --- stores -----------------------------------------------------------------

type MemoryStoreRepo struct{ db *memoryDB }

var _ usecase.StoreRepo = (*MemoryStoreRepo)(nil)

func (db *memoryDB) storeCopy(st *domain.Store) domain.Store {
	cp := *st
	if c, ok := db.categories[st.CategoryID]; ok {
		cc := *c
		cp.Category = &cc
	}
	return cp
}

func (db *memoryDB) listStores(match func(*domain.Store) bool) []domain.Store {
	var out []domain.Store
	for _, st := range db.stores {
		if match(st) {
			out = append(out, db.storeCopy(st))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *MemoryStoreRepo) GetByID(ctx context.Context, id int64) (*domain.Store, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	st, ok := r.db.stores[id]
	if !ok {
		return nil, usecase.ErrNoRows
	}
	cp := r.db.storeCopy(st)
	return &cp, nil
}

func (r *MemoryStoreRepo) ListByCreator(ctx context.Context, creatorID int64) ([]domain.Store, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	return r.db.listStores(func(st *domain.Store) bool { return st.CreatorID == creatorID }), nil
}

func (r *MemoryStoreRepo) ListByCategory(ctx context.Context, categoryID int64, limit, offset int) ([]domain.Store, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	all := r.db.listStores(func(st *domain.Store) bool { return st.CategoryID == categoryID })
	return page(all, limit, offset), nil
}

func (r *MemoryStoreRepo) CountByCategory(ctx context.Context, categoryID int64) (int, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	n := 0
	for _, st := range r.db.stores {
		if st.CategoryID == categoryID {
			n++
		}
	}
	return n, nil
}

func (r *MemoryStoreRepo) ListAndCount(ctx context.Context, limit, offset int) ([]domain.Store, int, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	all := r.db.listStores(func(*domain.Store) bool { return true })
	return page(all, limit, offset), len(all), nil
}

func (r *MemoryStoreRepo) SearchByName(ctx context.Context, query string, limit, offset int) ([]domain.Store, int, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	q := strings.ToLower(query)
	all := r.db.listStores(func(st *domain.Store) bool {
		return strings.Contains(strings.ToLower(st.Name), q)
	})
	return page(all, limit, offset), len(all), nil
}

func (r *MemoryStoreRepo) Save(ctx context.Context, st *domain.Store) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if st.ID == 0 {
		st.ID = r.db.nextID()
	}
	cp := *st
	cp.Category = nil
	r.db.stores[st.ID] = &cp
	return nil
}

func (r *MemoryStoreRepo) Delete(ctx context.Context, id int64) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	delete(r.db.stores, id)
	for cid, c := range r.db.commissions {
		if c.StoreID == id {
			delete(r.db.commissions, cid)
		}
	}
	return nil
}

// --- commissions ------------------------------------------------------------

type MemoryCommissionRepo struct{ db *memoryDB }

var _ usecase.CommissionRepo = (*MemoryCommissionRepo)(nil)

func (r *MemoryCommissionRepo) GetByID(ctx context.Context, id int64) (*domain.Commission, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	c, ok := r.db.commissions[id]
	if !ok {
		return nil, usecase.ErrNoRows
	}
	cp := *c
	return &cp, nil
}

func (r *MemoryCommissionRepo) ListByStore(ctx context.Context, storeID int64) ([]domain.Commission, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	var out []domain.Commission
	for _, c := range r.db.commissions {
		if c.StoreID == storeID {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *MemoryCommissionRepo) Save(ctx context.Context, c *domain.Commission) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if c.ID == 0 {
		c.ID = r.db.nextID()
	}
	cp := *c
	r.db.commissions[c.ID] = &cp
	return nil
}

func (r *MemoryCommissionRepo) Delete(ctx context.Context, id int64) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	delete(r.db.commissions, id)
	return nil
}

// --- orders -----------------------------------------------------------------

type MemoryOrderRepo struct{ db *memoryDB }

var _ usecase.OrderRepo = (*MemoryOrderRepo)(nil)

func (db *memoryDB) orderCopy(o *domain.Order) domain.Order {
	cp := *o
	cp.Items = nil
	var ids []int64
	for id, it := range db.orderItems {
		if it.OrderID == o.ID {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		cp.Items = append(cp.Items, *db.orderItems[id])
	}
	return cp
}

func (r *MemoryOrderRepo) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	o, ok := r.db.orders[id]
	if !ok {
		return nil, usecase.ErrNoRows
	}
	cp := r.db.orderCopy(o)
	return &cp, nil
}

func (r *MemoryOrderRepo) ListByCustomer(ctx context.Context, customerID int64, status domain.OrderStatus, limit, offset int) ([]domain.Order, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	var out []domain.Order
	for _, o := range r.db.orders {
		if o.CustomerID != customerID {
			continue
		}
		if status != "" && o.Status != status {
			continue
		}
		out = append(out, r.db.orderCopy(o))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return page(out, limit, offset), nil
}

func (r *MemoryOrderRepo) ListByStore(ctx context.Context, storeID int64) ([]domain.Order, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	var out []domain.Order
	for _, o := range r.db.orders {
		if o.StoreID == storeID {
			out = append(out, r.db.orderCopy(o))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *MemoryOrderRepo) Save(ctx context.Context, o *domain.Order) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if o.ID == 0 {
		o.ID = r.db.nextID()
	}
	for i := range o.Items {
		o.Items[i].OrderID = o.ID
		if it, ok := r.db.orderItems[o.Items[i].ID]; ok {
			it.OrderID = o.ID
		}
	}
	cp := *o
	cp.Items = nil
	r.db.orders[o.ID] = &cp
	return nil
}

type MemoryOrderItemRepo struct{ db *memoryDB }

var _ usecase.OrderItemRepo = (*MemoryOrderItemRepo)(nil)

func (r *MemoryOrderItemRepo) Save(ctx context.Context, it *domain.OrderItem) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if it.ID == 0 {
		it.ID = r.db.nextID()
	}
	cp := *it
	r.db.orderItems[it.ID] = &cp
	return nil
}

// --- payments ---------------------------------------------------------------

type MemoryPaymentRepo struct{ db *memoryDB }

var _ usecase.PaymentRepo = (*MemoryPaymentRepo)(nil)

func (r *MemoryPaymentRepo) ListByUser(ctx context.Context, userID int64) ([]domain.Payment, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	var out []domain.Payment
	for _, p := range r.db.payments {
		if p.UserID == userID {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *MemoryPaymentRepo) Save(ctx context.Context, p *domain.Payment) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if p.ID == 0 {
		p.ID = r.db.nextID()
	}
	cp := *p
	r.db.payments[p.ID] = &cp
	return nil
}

// --- chat rooms -------------------------------------------------------------

type MemoryChatRoomRepo struct{ db *memoryDB }

var _ usecase.ChatRoomRepo = (*MemoryChatRoomRepo)(nil)

func (db *memoryDB) chatRoomCopy(room *domain.ChatRoom) domain.ChatRoom {
	cp := *room
	if u, ok := db.users[room.CreatorID]; ok {
		uc := *u
		cp.Creator = &uc
	}
	if u, ok := db.users[room.ClientID]; ok {
		uc := *u
		cp.Client = &uc
	}
	return cp
}

func (r *MemoryChatRoomRepo) GetByID(ctx context.Context, id int64) (*domain.ChatRoom, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	room, ok := r.db.chatRooms[id]
	if !ok {
		return nil, usecase.ErrNoRows
	}
	cp := r.db.chatRoomCopy(room)
	return &cp, nil
}

func (r *MemoryChatRoomRepo) ListByMember(ctx context.Context, userID int64) ([]domain.ChatRoom, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	var out []domain.ChatRoom
	for _, room := range r.db.chatRooms {
		if room.CreatorID == userID || room.ClientID == userID {
			out = append(out, r.db.chatRoomCopy(room))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *MemoryChatRoomRepo) Save(ctx context.Context, room *domain.ChatRoom) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if room.ID == 0 {
		room.ID = r.db.nextID()
	}
	cp := *room
	cp.Creator = nil
	cp.Client = nil
	r.db.chatRooms[room.ID] = &cp
	return nil
}

type MemoryChatRepo struct{ db *memoryDB }

var _ usecase.ChatRepo = (*MemoryChatRepo)(nil)

func (r *MemoryChatRepo) ListByRoom(ctx context.Context, roomID int64, limit, offset int) ([]domain.Chat, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	var out []domain.Chat
	for _, c := range r.db.chats {
		if c.ChatRoomID == roomID {
			out = append(out, *c)
		}
	}
	// newest first
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return page(out, limit, offset), nil
}

func (r *MemoryChatRepo) Save(ctx context.Context, c *domain.Chat) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if c.ID == 0 {
		c.ID = r.db.nextID()
	}
	cp := *c
	r.db.chats[c.ID] = &cp
	return nil
}

// --- posts ------------------------------------------------------------------

type MemoryPostRepo struct{ db *memoryDB }

var _ usecase.PostRepo = (*MemoryPostRepo)(nil)

func (r *MemoryPostRepo) GetByID(ctx context.Context, id int64) (*domain.Post, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	p, ok := r.db.posts[id]
	if !ok {
		return nil, usecase.ErrNoRows
	}
	cp := *p
	return &cp, nil
}

func (r *MemoryPostRepo) Save(ctx context.Context, p *domain.Post) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if p.ID == 0 {
		p.ID = r.db.nextID()
	}
	cp := *p
	r.db.posts[p.ID] = &cp
	return nil
}

func (r *MemoryPostRepo) Delete(ctx context.Context, id int64) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	delete(r.db.posts, id)
	return nil
}
