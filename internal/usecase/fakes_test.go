package usecase

import (
	"context"
	"sort"
	"strings"

	"atelier-backend/internal/domain"
)

type fakeUserRepo struct {
	m    map[int64]*domain.User
	next int64
}

func (r *fakeUserRepo) put(u *domain.User) *domain.User {
	if r.m == nil {
		r.m = map[int64]*domain.User{}
	}
	if u.ID == 0 {
		r.next++
		u.ID = r.next
	}
	cp := *u
	r.m[u.ID] = &cp
	return &cp
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	u, ok := r.m[id]
	if !ok {
		return nil, ErrNoRows
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, u := range r.m {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, ErrNoRows
}

func (r *fakeUserRepo) CountByEmail(ctx context.Context, email string) (int, error) {
	n := 0
	for _, u := range r.m {
		if u.Email == email {
			n++
		}
	}
	return n, nil
}

func (r *fakeUserRepo) Save(ctx context.Context, u *domain.User) error {
	saved := r.put(u)
	u.ID = saved.ID
	return nil
}

type fakeVerificationRepo struct {
	m    map[int64]*domain.Verification
	next int64
}

func (r *fakeVerificationRepo) GetByCode(ctx context.Context, code string) (*domain.Verification, error) {
	for _, v := range r.m {
		if v.Code == code {
			cp := *v
			return &cp, nil
		}
	}
	return nil, ErrNoRows
}

func (r *fakeVerificationRepo) Save(ctx context.Context, v *domain.Verification) error {
	if r.m == nil {
		r.m = map[int64]*domain.Verification{}
	}
	if v.ID == 0 {
		r.next++
		v.ID = r.next
	}
	cp := *v
	r.m[v.ID] = &cp
	return nil
}

func (r *fakeVerificationRepo) DeleteByUser(ctx context.Context, userID int64) error {
	for id, v := range r.m {
		if v.UserID == userID {
			delete(r.m, id)
		}
	}
	return nil
}

func (r *fakeVerificationRepo) Delete(ctx context.Context, id int64) error {
	delete(r.m, id)
	return nil
}

type fakeEmail struct {
	sent []string
}

func (e *fakeEmail) SendVerificationEmail(ctx context.Context, email, code string) bool {
	e.sent = append(e.sent, email)
	return true
}

type fakeCategoryRepo struct {
	m    map[int64]*domain.Category
	next int64
}

func (r *fakeCategoryRepo) GetBySlug(ctx context.Context, slug string) (*domain.Category, error) {
	for _, c := range r.m {
		if c.Slug == slug {
			cp := *c
			return &cp, nil
		}
	}
	return nil, ErrNoRows
}

func (r *fakeCategoryRepo) List(ctx context.Context) ([]domain.Category, error) {
	var out []domain.Category
	for _, c := range r.m {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeCategoryRepo) Save(ctx context.Context, c *domain.Category) error {
	if r.m == nil {
		r.m = map[int64]*domain.Category{}
	}
	if c.ID == 0 {
		r.next++
		c.ID = r.next
	}
	cp := *c
	r.m[c.ID] = &cp
	return nil
}

type fakeStoreRepo struct {
	m    map[int64]*domain.Store
	next int64
}

func (r *fakeStoreRepo) put(st *domain.Store) *domain.Store {
	if r.m == nil {
		r.m = map[int64]*domain.Store{}
	}
	if st.ID == 0 {
		r.next++
		st.ID = r.next
	}
	cp := *st
	r.m[st.ID] = &cp
	return &cp
}

func (r *fakeStoreRepo) all() []domain.Store {
	var out []domain.Store
	for _, st := range r.m {
		out = append(out, *st)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *fakeStoreRepo) GetByID(ctx context.Context, id int64) (*domain.Store, error) {
	st, ok := r.m[id]
	if !ok {
		return nil, ErrNoRows
	}
	cp := *st
	return &cp, nil
}

func (r *fakeStoreRepo) ListByCreator(ctx context.Context, creatorID int64) ([]domain.Store, error) {
	var out []domain.Store
	for _, st := range r.all() {
		if st.CreatorID == creatorID {
			out = append(out, st)
		}
	}
	return out, nil
}

func (r *fakeStoreRepo) ListByCategory(ctx context.Context, categoryID int64, limit, offset int) ([]domain.Store, error) {
	var out []domain.Store
	for _, st := range r.all() {
		if st.CategoryID == categoryID {
			out = append(out, st)
		}
	}
	return slice(out, limit, offset), nil
}

func (r *fakeStoreRepo) CountByCategory(ctx context.Context, categoryID int64) (int, error) {
	n := 0
	for _, st := range r.m {
		if st.CategoryID == categoryID {
			n++
		}
	}
	return n, nil
}

func (r *fakeStoreRepo) ListAndCount(ctx context.Context, limit, offset int) ([]domain.Store, int, error) {
	all := r.all()
	return slice(all, limit, offset), len(all), nil
}

func (r *fakeStoreRepo) SearchByName(ctx context.Context, query string, limit, offset int) ([]domain.Store, int, error) {
	var out []domain.Store
	for _, st := range r.all() {
		if strings.Contains(strings.ToLower(st.Name), strings.ToLower(query)) {
			out = append(out, st)
		}
	}
	return slice(out, limit, offset), len(out), nil
}

func (r *fakeStoreRepo) Save(ctx context.Context, st *domain.Store) error {
	saved := r.put(st)
	st.ID = saved.ID
	return nil
}

func (r *fakeStoreRepo) Delete(ctx context.Context, id int64) error {
	delete(r.m, id)
	return nil
}

type fakeCommissionRepo struct {
	m    map[int64]*domain.Commission
	next int64
}

func (r *fakeCommissionRepo) put(c *domain.Commission) *domain.Commission {
	if r.m == nil {
		r.m = map[int64]*domain.Commission{}
	}
	if c.ID == 0 {
		r.next++
		c.ID = r.next
	}
	cp := *c
	r.m[c.ID] = &cp
	return &cp
}

func (r *fakeCommissionRepo) GetByID(ctx context.Context, id int64) (*domain.Commission, error) {
	c, ok := r.m[id]
	if !ok {
		return nil, ErrNoRows
	}
	cp := *c
	return &cp, nil
}

func (r *fakeCommissionRepo) ListByStore(ctx context.Context, storeID int64) ([]domain.Commission, error) {
	var out []domain.Commission
	for _, c := range r.m {
		if c.StoreID == storeID {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeCommissionRepo) Save(ctx context.Context, c *domain.Commission) error {
	saved := r.put(c)
	c.ID = saved.ID
	return nil
}

func (r *fakeCommissionRepo) Delete(ctx context.Context, id int64) error {
	delete(r.m, id)
	return nil
}

type fakeOrderRepo struct {
	m    map[int64]*domain.Order
	next int64
}

func (r *fakeOrderRepo) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	o, ok := r.m[id]
	if !ok {
		return nil, ErrNoRows
	}
	cp := *o
	return &cp, nil
}

func (r *fakeOrderRepo) ListByCustomer(ctx context.Context, customerID int64, status domain.OrderStatus, limit, offset int) ([]domain.Order, error) {
	var out []domain.Order
	for _, o := range r.m {
		if o.CustomerID != customerID {
			continue
		}
		if status != "" && o.Status != status {
			continue
		}
		out = append(out, *o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return slice(out, limit, offset), nil
}

func (r *fakeOrderRepo) ListByStore(ctx context.Context, storeID int64) ([]domain.Order, error) {
	var out []domain.Order
	for _, o := range r.m {
		if o.StoreID == storeID {
			out = append(out, *o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeOrderRepo) Save(ctx context.Context, o *domain.Order) error {
	if r.m == nil {
		r.m = map[int64]*domain.Order{}
	}
	if o.ID == 0 {
		r.next++
		o.ID = r.next
	}
	cp := *o
	r.m[o.ID] = &cp
	return nil
}

type fakeOrderItemRepo struct {
	items []*domain.OrderItem
	next  int64
}

func (r *fakeOrderItemRepo) Save(ctx context.Context, it *domain.OrderItem) error {
	if it.ID == 0 {
		r.next++
		it.ID = r.next
	}
	cp := *it
	r.items = append(r.items, &cp)
	return nil
}

type fakePaymentRepo struct {
	m    map[int64]*domain.Payment
	next int64
}

func (r *fakePaymentRepo) ListByUser(ctx context.Context, userID int64) ([]domain.Payment, error) {
	var out []domain.Payment
	for _, p := range r.m {
		if p.UserID == userID {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakePaymentRepo) Save(ctx context.Context, p *domain.Payment) error {
	if r.m == nil {
		r.m = map[int64]*domain.Payment{}
	}
	if p.ID == 0 {
		r.next++
		p.ID = r.next
	}
	cp := *p
	r.m[p.ID] = &cp
	return nil
}

type fakeChatRoomRepo struct {
	m    map[int64]*domain.ChatRoom
	next int64
}

func (r *fakeChatRoomRepo) GetByID(ctx context.Context, id int64) (*domain.ChatRoom, error) {
	room, ok := r.m[id]
	if !ok {
		return nil, ErrNoRows
	}
	cp := *room
	return &cp, nil
}

func (r *fakeChatRoomRepo) ListByMember(ctx context.Context, userID int64) ([]domain.ChatRoom, error) {
	var out []domain.ChatRoom
	for _, room := range r.m {
		if room.CreatorID == userID || room.ClientID == userID {
			out = append(out, *room)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeChatRoomRepo) Save(ctx context.Context, room *domain.ChatRoom) error {
	if r.m == nil {
		r.m = map[int64]*domain.ChatRoom{}
	}
	if room.ID == 0 {
		r.next++
		room.ID = r.next
	}
	cp := *room
	r.m[room.ID] = &cp
	return nil
}

type fakeChatRepo struct {
	chats []*domain.Chat
	next  int64
}

func (r *fakeChatRepo) ListByRoom(ctx context.Context, roomID int64, limit, offset int) ([]domain.Chat, error) {
	var out []domain.Chat
	for _, c := range r.chats {
		if c.ChatRoomID == roomID {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return slice(out, limit, offset), nil
}

func (r *fakeChatRepo) Save(ctx context.Context, c *domain.Chat) error {
	if c.ID == 0 {
		r.next++
		c.ID = r.next
	}
	cp := *c
	r.chats = append(r.chats, &cp)
	return nil
}

type fakePostRepo struct {
	m    map[int64]*domain.Post
	next int64
}

func (r *fakePostRepo) GetByID(ctx context.Context, id int64) (*domain.Post, error) {
	p, ok := r.m[id]
	if !ok {
		return nil, ErrNoRows
	}
	cp := *p
	return &cp, nil
}

func (r *fakePostRepo) Save(ctx context.Context, p *domain.Post) error {
	if r.m == nil {
		r.m = map[int64]*domain.Post{}
	}
	if p.ID == 0 {
		r.next++
		p.ID = r.next
	}
	cp := *p
	r.m[p.ID] = &cp
	return nil
}

func (r *fakePostRepo) Delete(ctx context.Context, id int64) error {
	delete(r.m, id)
	return nil
}

func slice[T any](items []T, limit, offset int) []T {
	if offset > len(items) {
		offset = len(items)
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}
