package repo

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"atelier-backend/internal/domain"
	"atelier-backend/internal/usecase"

	_ "github.com/lib/pq"
)

// Postgres bundles the database-backed repos, all sharing one *sql.DB.
type Postgres struct {
	db *sql.DB

	Users         *PostgresUserRepo
	Verifications *PostgresVerificationRepo
	Categories    *PostgresCategoryRepo
	Stores        *PostgresStoreRepo
	Commissions   *PostgresCommissionRepo
	Orders        *PostgresOrderRepo
	OrderItems    *PostgresOrderItemRepo
	Payments      *PostgresPaymentRepo
	ChatRooms     *PostgresChatRoomRepo
	Chats         *PostgresChatRepo
	Posts         *PostgresPostRepo
}

func NewPostgres(dsn string) (*Postgres, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	p := &Postgres{db: db}
	if err := p.init(); err != nil {
		return nil, err
	}
	p.Users = &PostgresUserRepo{db: db}
	p.Verifications = &PostgresVerificationRepo{db: db}
	p.Categories = &PostgresCategoryRepo{db: db}
	p.Stores = &PostgresStoreRepo{db: db}
	p.Commissions = &PostgresCommissionRepo{db: db}
	p.Orders = &PostgresOrderRepo{db: db}
	p.OrderItems = &PostgresOrderItemRepo{db: db}
	p.Payments = &PostgresPaymentRepo{db: db}
	p.ChatRooms = &PostgresChatRoomRepo{db: db}
	p.Chats = &PostgresChatRepo{db: db}
	p.Posts = &PostgresPostRepo{db: db}
	return p, nil
}

func (p *Postgres) Close() error { return p.db.Close() }

func (p *Postgres) init() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id BIGSERIAL PRIMARY KEY,
			email TEXT NOT NULL,
			username TEXT,
			password TEXT NOT NULL,
			role TEXT NOT NULL,
			is_sponsor BOOLEAN NOT NULL DEFAULT FALSE,
			verified BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ,
			updated_at TIMESTAMPTZ
		);`,
		`CREATE TABLE IF NOT EXISTS verifications (
			id BIGSERIAL PRIMARY KEY,
			code TEXT NOT NULL,
			user_id BIGINT NOT NULL,
			created_at TIMESTAMPTZ
		);`,
		`CREATE TABLE IF NOT EXISTS categories (
			id BIGSERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			cover_img TEXT,
			slug TEXT NOT NULL UNIQUE,
			created_at TIMESTAMPTZ
		);`,
		`CREATE TABLE IF NOT EXISTS stores (
			id BIGSERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			cover_img TEXT,
			description TEXT,
			category_id BIGINT NOT NULL,
			creator_id BIGINT NOT NULL,
			created_at TIMESTAMPTZ,
			updated_at TIMESTAMPTZ
		);`,
		`CREATE TABLE IF NOT EXISTS commissions (
			id BIGSERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			price DOUBLE PRECISION NOT NULL,
			photo TEXT,
			description TEXT,
			options TEXT,
			store_id BIGINT NOT NULL,
			created_at TIMESTAMPTZ,
			updated_at TIMESTAMPTZ
		);`,
		`CREATE TABLE IF NOT EXISTS orders (
			id BIGSERIAL PRIMARY KEY,
			customer_id BIGINT NOT NULL,
			store_id BIGINT NOT NULL,
			total DOUBLE PRECISION NOT NULL,
			status TEXT NOT NULL,
			is_paid BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ,
			updated_at TIMESTAMPTZ
		);`,
		`CREATE TABLE IF NOT EXISTS order_items (
			id BIGSERIAL PRIMARY KEY,
			order_id BIGINT,
			commission_id BIGINT NOT NULL,
			options TEXT,
			created_at TIMESTAMPTZ
		);`,
		`CREATE TABLE IF NOT EXISTS payments (
			id BIGSERIAL PRIMARY KEY,
			transaction_id TEXT NOT NULL,
			user_id BIGINT NOT NULL,
			order_id BIGINT NOT NULL,
			price DOUBLE PRECISION NOT NULL,
			created_at TIMESTAMPTZ
		);`,
		`CREATE TABLE IF NOT EXISTS chat_rooms (
			id BIGSERIAL PRIMARY KEY,
			creator_id BIGINT NOT NULL,
			client_id BIGINT NOT NULL,
			created_at TIMESTAMPTZ,
			updated_at TIMESTAMPTZ
		);`,
		`CREATE TABLE IF NOT EXISTS chats (
			id BIGSERIAL PRIMARY KEY,
			content TEXT NOT NULL,
			sender_id BIGINT NOT NULL,
			chat_room_id BIGINT NOT NULL,
			client_message_status TEXT NOT NULL,
			creator_message_status TEXT NOT NULL,
			created_at TIMESTAMPTZ
		);`,
		`CREATE TABLE IF NOT EXISTS posts (
			id BIGSERIAL PRIMARY KEY,
			title TEXT NOT NULL,
			content TEXT,
			images TEXT,
			commission_id BIGINT NOT NULL,
			created_at TIMESTAMPTZ,
			updated_at TIMESTAMPTZ
		);`,
	}
	for _, q := range stmts {
		if _, err := p.db.Exec(q); err != nil {
			return err
		}
	}
	return nil
}

func mapNoRows(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return usecase.ErrNoRows
	}
	return err
}

// --- users ------------------------------------------------------------------

type PostgresUserRepo struct{ db *sql.DB }

var _ usecase.UserRepo = (*PostgresUserRepo)(nil)

const userCols = `id,email,username,password,role,is_sponsor,verified,created_at,updated_at`

func scanUser(row *sql.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.Email, &u.Username, &u.Password, (*string)(&u.Role),
		&u.IsSponsor, &u.Verified, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, mapNoRows(err)
	}
	return &u, nil
}

func (r *PostgresUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return scanUser(r.db.QueryRowContext(ctx, `SELECT `+userCols+` FROM users WHERE id=$1`, id))
}

func (r *PostgresUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return scanUser(r.db.QueryRowContext(ctx, `SELECT `+userCols+` FROM users WHERE email=$1`, email))
}

func (r *PostgresUserRepo) CountByEmail(ctx context.Context, email string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM users WHERE email=$1`, email).Scan(&n)
	return n, err
}

func (r *PostgresUserRepo) Save(ctx context.Context, u *domain.User) error {
	if u.ID == 0 {
		return r.db.QueryRowContext(ctx, `INSERT INTO users (email,username,password,role,is_sponsor,verified,created_at,updated_at)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8) RETURNING id`,
			u.Email, u.Username, u.Password, string(u.Role), u.IsSponsor, u.Verified, u.CreatedAt, u.UpdatedAt).Scan(&u.ID)
	}
	_, err := r.db.ExecContext(ctx, `UPDATE users SET email=$2,username=$3,password=$4,role=$5,is_sponsor=$6,verified=$7,updated_at=$8 WHERE id=$1`,
		u.ID, u.Email, u.Username, u.Password, string(u.Role), u.IsSponsor, u.Verified, u.UpdatedAt)
	return err
}

// --- verifications ----------------------------------------------------------

type PostgresVerificationRepo struct{ db *sql.DB }

var _ usecase.VerificationRepo = (*PostgresVerificationRepo)(nil)

func (r *PostgresVerificationRepo) GetByCode(ctx context.Context, code string) (*domain.Verification, error) {
	var v domain.Verification
	err := r.db.QueryRowContext(ctx, `SELECT id,code,user_id,created_at FROM verifications WHERE code=$1`, code).
		Scan(&v.ID, &v.Code, &v.UserID, &v.CreatedAt)
	if err != nil {
		return nil, mapNoRows(err)
	}
	return &v, nil
}

func (r *PostgresVerificationRepo) Save(ctx context.Context, v *domain.Verification) error {
	if v.ID == 0 {
		return r.db.QueryRowContext(ctx, `INSERT INTO verifications (code,user_id,created_at) VALUES ($1,$2,$3) RETURNING id`,
			v.Code, v.UserID, v.CreatedAt).Scan(&v.ID)
	}
	_, err := r.db.ExecContext(ctx, `UPDATE verifications SET code=$2,user_id=$3 WHERE id=$1`, v.ID, v.Code, v.UserID)
	return err
}

func (r *PostgresVerificationRepo) DeleteByUser(ctx context.Context, userID int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM verifications WHERE user_id=$1`, userID)
	return err
}

func (r *PostgresVerificationRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM verifications WHERE id=$1`, id)
	return err
}

// --- categories -------------------------------------------------------------

type PostgresCategoryRepo struct{ db *sql.DB }

var _ usecase.CategoryRepo = (*PostgresCategoryRepo)(nil)

func (r *PostgresCategoryRepo) GetBySlug(ctx context.Context, slug string) (*domain.Category, error) {
	var c domain.Category
	err := r.db.QueryRowContext(ctx, `SELECT id,name,cover_img,slug,created_at FROM categories WHERE slug=$1`, slug).
		Scan(&c.ID, &c.Name, &c.CoverImg, &c.Slug, &c.CreatedAt)
	if err != nil {
		return nil, mapNoRows(err)
	}
	return &c, nil
}

func (r *PostgresCategoryRepo) List(ctx context.Context) ([]domain.Category, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id,name,cover_img,slug,created_at FROM categories ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []domain.Category
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.CoverImg, &c.Slug, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *PostgresCategoryRepo) Save(ctx context.Context, c *domain.Category) error {
	if c.ID == 0 {
		return r.db.QueryRowContext(ctx, `INSERT INTO categories (name,cover_img,slug,created_at)
			VALUES ($1,$2,$3,$4)
			ON CONFLICT (slug) DO UPDATE SET name=$1,cover_img=$2
			RETURNING id`,
			c.Name, c.CoverImg, c.Slug, c.CreatedAt).Scan(&c.ID)
	}
	_, err := r.db.ExecContext(ctx, `UPDATE categories SET name=$2,cover_img=$3,slug=$4 WHERE id=$1`,
		c.ID, c.Name, c.CoverImg, c.Slug)
	return err
}

// --- stores -----------------------------------------------------------------

type PostgresStoreRepo struct{ db *sql.DB }

var _ usecase.StoreRepo = (*PostgresStoreRepo)(nil)

// Stores come back with their category joined in, matching what callers
// render.
const storeCols = `s.id,s.name,s.cover_img,s.description,s.category_id,s.creator_id,s.created_at,s.updated_at,
	c.id,c.name,c.cover_img,c.slug,c.created_at`

const storeFrom = ` FROM stores s LEFT JOIN categories c ON c.id = s.category_id`

func scanStoreRow(scan func(dest ...any) error) (domain.Store, error) {
	var st domain.Store
	var cID sql.NullInt64
	var cName, cImg, cSlug sql.NullString
	var cCreated sql.NullTime
	err := scan(&st.ID, &st.Name, &st.CoverImg, &st.Description, &st.CategoryID, &st.CreatorID,
		&st.CreatedAt, &st.UpdatedAt, &cID, &cName, &cImg, &cSlug, &cCreated)
	if err != nil {
		return st, err
	}
	if cID.Valid {
		st.Category = &domain.Category{
			ID:        cID.Int64,
			Name:      cName.String,
			CoverImg:  cImg.String,
			Slug:      cSlug.String,
			CreatedAt: cCreated.Time,
		}
	}
	return st, nil
}

func (r *PostgresStoreRepo) queryStores(ctx context.Context, where string, args ...any) ([]domain.Store, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+storeCols+storeFrom+where, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []domain.Store
	for rows.Next() {
		st, err := scanStoreRow(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, st)
	}
	return out, rows.Err()
}

func (r *PostgresStoreRepo) GetByID(ctx context.Context, id int64) (*domain.Store, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+storeCols+storeFrom+` WHERE s.id=$1`, id)
	st, err := scanStoreRow(row.Scan)
	if err != nil {
		return nil, mapNoRows(err)
	}
	return &st, nil
}

func (r *PostgresStoreRepo) ListByCreator(ctx context.Context, creatorID int64) ([]domain.Store, error) {
	return r.queryStores(ctx, ` WHERE s.creator_id=$1 ORDER BY s.id ASC`, creatorID)
}

func (r *PostgresStoreRepo) ListByCategory(ctx context.Context, categoryID int64, limit, offset int) ([]domain.Store, error) {
	return r.queryStores(ctx, ` WHERE s.category_id=$1 ORDER BY s.id ASC LIMIT $2 OFFSET $3`, categoryID, limit, offset)
}

func (r *PostgresStoreRepo) CountByCategory(ctx context.Context, categoryID int64) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM stores WHERE category_id=$1`, categoryID).Scan(&n)
	return n, err
}

func (r *PostgresStoreRepo) ListAndCount(ctx context.Context, limit, offset int) ([]domain.Store, int, error) {
	stores, err := r.queryStores(ctx, ` ORDER BY s.id ASC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM stores`).Scan(&total); err != nil {
		return nil, 0, err
	}
	return stores, total, nil
}

func (r *PostgresStoreRepo) SearchByName(ctx context.Context, query string, limit, offset int) ([]domain.Store, int, error) {
	pattern := "%" + query + "%"
	stores, err := r.queryStores(ctx, ` WHERE s.name ILIKE $1 ORDER BY s.id ASC LIMIT $2 OFFSET $3`, pattern, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM stores WHERE name ILIKE $1`, pattern).Scan(&total); err != nil {
		return nil, 0, err
	}
	return stores, total, nil
}

func (r *PostgresStoreRepo) Save(ctx context.Context, st *domain.Store) error {
	if st.ID == 0 {
		return r.db.QueryRowContext(ctx, `INSERT INTO stores (name,cover_img,description,category_id,creator_id,created_at,updated_at)
			VALUES ($1,$2,$3,$4,$5,$6,$7) RETURNING id`,
			st.Name, st.CoverImg, st.Description, st.CategoryID, st.CreatorID, st.CreatedAt, st.UpdatedAt).Scan(&st.ID)
	}
	_, err := r.db.ExecContext(ctx, `UPDATE stores SET name=$2,cover_img=$3,description=$4,category_id=$5,updated_at=$6 WHERE id=$1`,
		st.ID, st.Name, st.CoverImg, st.Description, st.CategoryID, st.UpdatedAt)
	return err
}

func (r *PostgresStoreRepo) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM commissions WHERE store_id=$1`, id); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx, `DELETE FROM stores WHERE id=$1`, id)
	return err
}

// --- commissions ------------------------------------------------------------

type PostgresCommissionRepo struct{ db *sql.DB }

var _ usecase.CommissionRepo = (*PostgresCommissionRepo)(nil)

func (r *PostgresCommissionRepo) GetByID(ctx context.Context, id int64) (*domain.Commission, error) {
	var c domain.Commission
	var options string
	err := r.db.QueryRowContext(ctx, `SELECT id,name,price,photo,description,options,store_id,created_at,updated_at FROM commissions WHERE id=$1`, id).
		Scan(&c.ID, &c.Name, &c.Price, &c.Photo, &c.Description, &options, &c.StoreID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, mapNoRows(err)
	}
	_ = json.Unmarshal([]byte(options), &c.Options)
	return &c, nil
}

func (r *PostgresCommissionRepo) ListByStore(ctx context.Context, storeID int64) ([]domain.Commission, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id,name,price,photo,description,options,store_id,created_at,updated_at FROM commissions WHERE store_id=$1 ORDER BY id ASC`, storeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []domain.Commission
	for rows.Next() {
		var c domain.Commission
		var options string
		if err := rows.Scan(&c.ID, &c.Name, &c.Price, &c.Photo, &c.Description, &options, &c.StoreID, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		_ = json.Unmarshal([]byte(options), &c.Options)
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *PostgresCommissionRepo) Save(ctx context.Context, c *domain.Commission) error {
	options, _ := json.Marshal(c.Options)
	if c.ID == 0 {
		return r.db.QueryRowContext(ctx, `INSERT INTO commissions (name,price,photo,description,options,store_id,created_at,updated_at)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8) RETURNING id`,
			c.Name, c.Price, c.Photo, c.Description, string(options), c.StoreID, c.CreatedAt, c.UpdatedAt).Scan(&c.ID)
	}
	_, err := r.db.ExecContext(ctx, `UPDATE commissions SET name=$2,price=$3,photo=$4,description=$5,options=$6,updated_at=$7 WHERE id=$1`,
		c.ID, c.Name, c.Price, c.Photo, c.Description, string(options), c.UpdatedAt)
	return err
}

func (r *PostgresCommissionRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM commissions WHERE id=$1`, id)
	return err
}

// --- orders -----------------------------------------------------------------

type PostgresOrderRepo struct{ db *sql.DB }

var _ usecase.OrderRepo = (*PostgresOrderRepo)(nil)

func (r *PostgresOrderRepo) loadItems(ctx context.Context, orderID int64) ([]domain.OrderItem, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id,order_id,commission_id,options,created_at FROM order_items WHERE order_id=$1 ORDER BY id ASC`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []domain.OrderItem
	for rows.Next() {
		var it domain.OrderItem
		var options string
		if err := rows.Scan(&it.ID, &it.OrderID, &it.CommissionID, &options, &it.CreatedAt); err != nil {
			return nil, err
		}
		_ = json.Unmarshal([]byte(options), &it.Options)
		out = append(out, it)
	}
	return out, rows.Err()
}

func (r *PostgresOrderRepo) queryOrders(ctx context.Context, where string, args ...any) ([]domain.Order, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id,customer_id,store_id,total,status,is_paid,created_at,updated_at FROM orders`+where, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []domain.Order
	for rows.Next() {
		var o domain.Order
		if err := rows.Scan(&o.ID, &o.CustomerID, &o.StoreID, &o.Total, (*string)(&o.Status), &o.IsPaid, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range out {
		items, err := r.loadItems(ctx, out[i].ID)
		if err != nil {
			return nil, err
		}
		out[i].Items = items
	}
	return out, nil
}

func (r *PostgresOrderRepo) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	var o domain.Order
	err := r.db.QueryRowContext(ctx, `SELECT id,customer_id,store_id,total,status,is_paid,created_at,updated_at FROM orders WHERE id=$1`, id).
		Scan(&o.ID, &o.CustomerID, &o.StoreID, &o.Total, (*string)(&o.Status), &o.IsPaid, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, mapNoRows(err)
	}
	o.Items, err = r.loadItems(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *PostgresOrderRepo) ListByCustomer(ctx context.Context, customerID int64, status domain.OrderStatus, limit, offset int) ([]domain.Order, error) {
	if status != "" {
		return r.queryOrders(ctx, ` WHERE customer_id=$1 AND status=$2 ORDER BY id ASC LIMIT $3 OFFSET $4`,
			customerID, string(status), limit, offset)
	}
	return r.queryOrders(ctx, ` WHERE customer_id=$1 ORDER BY id ASC LIMIT $2 OFFSET $3`, customerID, limit, offset)
}

func (r *PostgresOrderRepo) ListByStore(ctx context.Context, storeID int64) ([]domain.Order, error) {
	return r.queryOrders(ctx, ` WHERE store_id=$1 ORDER BY id ASC`, storeID)
}

func (r *PostgresOrderRepo) Save(ctx context.Context, o *domain.Order) error {
	if o.ID == 0 {
		err := r.db.QueryRowContext(ctx, `INSERT INTO orders (customer_id,store_id,total,status,is_paid,created_at,updated_at)
			VALUES ($1,$2,$3,$4,$5,$6,$7) RETURNING id`,
			o.CustomerID, o.StoreID, o.Total, string(o.Status), o.IsPaid, o.CreatedAt, o.UpdatedAt).Scan(&o.ID)
		if err != nil {
			return err
		}
		// Items created before the order exists get attached here.
		for i := range o.Items {
			o.Items[i].OrderID = o.ID
			if o.Items[i].ID != 0 {
				if _, err := r.db.ExecContext(ctx, `UPDATE order_items SET order_id=$2 WHERE id=$1`, o.Items[i].ID, o.ID); err != nil {
					return err
				}
			}
		}
		return nil
	}
	_, err := r.db.ExecContext(ctx, `UPDATE orders SET total=$2,status=$3,is_paid=$4,updated_at=$5 WHERE id=$1`,
		o.ID, o.Total, string(o.Status), o.IsPaid, o.UpdatedAt)
	return err
}

type PostgresOrderItemRepo struct{ db *sql.DB }

var _ usecase.OrderItemRepo = (*PostgresOrderItemRepo)(nil)

func (r *PostgresOrderItemRepo) Save(ctx context.Context, it *domain.OrderItem) error {
	options, _ := json.Marshal(it.Options)
	if it.ID == 0 {
		return r.db.QueryRowContext(ctx, `INSERT INTO order_items (order_id,commission_id,options,created_at)
			VALUES ($1,$2,$3,$4) RETURNING id`,
			it.OrderID, it.CommissionID, string(options), it.CreatedAt).Scan(&it.ID)
	}
	_, err := r.db.ExecContext(ctx, `UPDATE order_items SET order_id=$2,commission_id=$3,options=$4 WHERE id=$1`,
		it.ID, it.OrderID, it.CommissionID, string(options))
	return err
}

// --- payments ---------------------------------------------------------------

type PostgresPaymentRepo struct{ db *sql.DB }

var _ usecase.PaymentRepo = (*PostgresPaymentRepo)(nil)

func (r *PostgresPaymentRepo) ListByUser(ctx context.Context, userID int64) ([]domain.Payment, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id,transaction_id,user_id,order_id,price,created_at FROM payments WHERE user_id=$1 ORDER BY id ASC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []domain.Payment
	for rows.Next() {
		var p domain.Payment
		if err := rows.Scan(&p.ID, &p.TransactionID, &p.UserID, &p.OrderID, &p.Price, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PostgresPaymentRepo) Save(ctx context.Context, p *domain.Payment) error {
	if p.ID == 0 {
		return r.db.QueryRowContext(ctx, `INSERT INTO payments (transaction_id,user_id,order_id,price,created_at)
			VALUES ($1,$2,$3,$4,$5) RETURNING id`,
			p.TransactionID, p.UserID, p.OrderID, p.Price, p.CreatedAt).Scan(&p.ID)
	}
	_, err := r.db.ExecContext(ctx, `UPDATE payments SET transaction_id=$2,user_id=$3,order_id=$4,price=$5 WHERE id=$1`,
		p.ID, p.TransactionID, p.UserID, p.OrderID, p.Price)
	return err
}

// --- chat rooms -------------------------------------------------------------

type PostgresChatRoomRepo struct{ db *sql.DB }

var _ usecase.ChatRoomRepo = (*PostgresChatRoomRepo)(nil)

func (r *PostgresChatRoomRepo) loadMember(ctx context.Context, id int64) *domain.User {
	var u domain.User
	err := r.db.QueryRowContext(ctx, `SELECT `+userCols+` FROM users WHERE id=$1`, id).
		Scan(&u.ID, &u.Email, &u.Username, &u.Password, (*string)(&u.Role),
			&u.IsSponsor, &u.Verified, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil
	}
	return &u
}

func (r *PostgresChatRoomRepo) fill(ctx context.Context, room *domain.ChatRoom) {
	room.Creator = r.loadMember(ctx, room.CreatorID)
	room.Client = r.loadMember(ctx, room.ClientID)
}

func (r *PostgresChatRoomRepo) GetByID(ctx context.Context, id int64) (*domain.ChatRoom, error) {
	var room domain.ChatRoom
	err := r.db.QueryRowContext(ctx, `SELECT id,creator_id,client_id,created_at,updated_at FROM chat_rooms WHERE id=$1`, id).
		Scan(&room.ID, &room.CreatorID, &room.ClientID, &room.CreatedAt, &room.UpdatedAt)
	if err != nil {
		return nil, mapNoRows(err)
	}
	r.fill(ctx, &room)
	return &room, nil
}

func (r *PostgresChatRoomRepo) ListByMember(ctx context.Context, userID int64) ([]domain.ChatRoom, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id,creator_id,client_id,created_at,updated_at FROM chat_rooms WHERE creator_id=$1 OR client_id=$1 ORDER BY id ASC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []domain.ChatRoom
	for rows.Next() {
		var room domain.ChatRoom
		if err := rows.Scan(&room.ID, &room.CreatorID, &room.ClientID, &room.CreatedAt, &room.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, room)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range out {
		r.fill(ctx, &out[i])
	}
	return out, nil
}

func (r *PostgresChatRoomRepo) Save(ctx context.Context, room *domain.ChatRoom) error {
	if room.ID == 0 {
		return r.db.QueryRowContext(ctx, `INSERT INTO chat_rooms (creator_id,client_id,created_at,updated_at)
			VALUES ($1,$2,$3,$4) RETURNING id`,
			room.CreatorID, room.ClientID, room.CreatedAt, room.UpdatedAt).Scan(&room.ID)
	}
	_, err := r.db.ExecContext(ctx, `UPDATE chat_rooms SET updated_at=$2 WHERE id=$1`, room.ID, room.UpdatedAt)
	return err
}

type PostgresChatRepo struct{ db *sql.DB }

var _ usecase.ChatRepo = (*PostgresChatRepo)(nil)

func (r *PostgresChatRepo) ListByRoom(ctx context.Context, roomID int64, limit, offset int) ([]domain.Chat, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id,content,sender_id,chat_room_id,client_message_status,creator_message_status,created_at
		FROM chats WHERE chat_room_id=$1 ORDER BY id DESC LIMIT $2 OFFSET $3`, roomID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []domain.Chat
	for rows.Next() {
		var c domain.Chat
		if err := rows.Scan(&c.ID, &c.Content, &c.SenderID, &c.ChatRoomID,
			(*string)(&c.ClientMessageStatus), (*string)(&c.CreatorMessageStatus), &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *PostgresChatRepo) Save(ctx context.Context, c *domain.Chat) error {
	if c.ID == 0 {
		return r.db.QueryRowContext(ctx, `INSERT INTO chats (content,sender_id,chat_room_id,client_message_status,creator_message_status,created_at)
			VALUES ($1,$2,$3,$4,$5,$6) RETURNING id`,
			c.Content, c.SenderID, c.ChatRoomID, string(c.ClientMessageStatus), string(c.CreatorMessageStatus), c.CreatedAt).Scan(&c.ID)
	}
	_, err := r.db.ExecContext(ctx, `UPDATE chats SET client_message_status=$2,creator_message_status=$3 WHERE id=$1`,
		c.ID, string(c.ClientMessageStatus), string(c.CreatorMessageStatus))
	return err
}

// --- posts ------------------------------------------------------------------

type PostgresPostRepo struct{ db *sql.DB }

var _ usecase.PostRepo = (*PostgresPostRepo)(nil)

func (r *PostgresPostRepo) GetByID(ctx context.Context, id int64) (*domain.Post, error) {
	var p domain.Post
	var images string
	err := r.db.QueryRowContext(ctx, `SELECT id,title,content,images,commission_id,created_at,updated_at FROM posts WHERE id=$1`, id).
		Scan(&p.ID, &p.Title, &p.Content, &images, &p.CommissionID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, mapNoRows(err)
	}
	_ = json.Unmarshal([]byte(images), &p.Images)
	return &p, nil
}

func (r *PostgresPostRepo) Save(ctx context.Context, p *domain.Post) error {
	images, _ := json.Marshal(p.Images)
	if p.ID == 0 {
		return r.db.QueryRowContext(ctx, `INSERT INTO posts (title,content,images,commission_id,created_at,updated_at)
			VALUES ($1,$2,$3,$4,$5,$6) RETURNING id`,
			p.Title, p.Content, string(images), p.CommissionID, p.CreatedAt, p.UpdatedAt).Scan(&p.ID)
	}
	_, err := r.db.ExecContext(ctx, `UPDATE posts SET title=$2,content=$3,images=$4,updated_at=$5 WHERE id=$1`,
		p.ID, p.Title, p.Content, string(images), p.UpdatedAt)
	return err
}

func (r *PostgresPostRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM posts WHERE id=$1`, id)
	return err
}
