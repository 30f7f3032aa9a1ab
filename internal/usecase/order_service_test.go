package usecase

import (
	"context"
	"errors"
	"testing"

	"atelier-backend/internal/domain"

	"github.com/rs/zerolog"
)

func testCommission() *domain.Commission {
	return &domain.Commission{
		Name:  "chibi",
		Price: 10,
		Options: []domain.CommissionOption{
			{Name: "rush", Extra: 1},
			{Name: "background", Choices: []domain.CommissionChoice{
				{Name: "plain", Extra: 0},
				{Name: "detailed", Extra: 2},
			}},
		},
	}
}

func TestPriceItem(t *testing.T) {
	c := testCommission()

	price, err := priceItem(c, []domain.OrderItemOption{
		{Name: "rush"},
		{Name: "background", Choice: "detailed"},
	})
	if err != nil {
		t.Fatalf("priceItem: %v", err)
	}
	if price != 13 {
		t.Fatalf("price = %v, want 13", price)
	}
}

func TestPriceItemFlatExtraIgnoresChoice(t *testing.T) {
	c := testCommission()

	// A nonsense choice on a flat-extra option must not matter.
	price, err := priceItem(c, []domain.OrderItemOption{
		{Name: "rush", Choice: "does-not-exist"},
	})
	if err != nil {
		t.Fatalf("priceItem: %v", err)
	}
	if price != 11 {
		t.Fatalf("price = %v, want 11", price)
	}
}

func TestPriceItemUnknownOption(t *testing.T) {
	c := testCommission()

	_, err := priceItem(c, []domain.OrderItemOption{{Name: "frame"}})
	var nf ErrNotFound
	if !errors.As(err, &nf) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	if nf.Error() != "Commission option frame not found" {
		t.Fatalf("message = %q", nf.Error())
	}
}

func TestPriceItemUnknownChoice(t *testing.T) {
	c := testCommission()

	_, err := priceItem(c, []domain.OrderItemOption{{Name: "background", Choice: "neon"}})
	var nf ErrNotFound
	if !errors.As(err, &nf) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	if nf.Error() != "Commission option choice neon not found" {
		t.Fatalf("message = %q", nf.Error())
	}
}

func newOrderService() (*OrderService, *fakeOrderRepo, *fakeStoreRepo, *fakeCommissionRepo) {
	orders := &fakeOrderRepo{}
	items := &fakeOrderItemRepo{}
	stores := &fakeStoreRepo{}
	commissions := &fakeCommissionRepo{}
	svc := &OrderService{
		Orders:      orders,
		OrderItems:  items,
		Stores:      stores,
		Commissions: commissions,
		Log:         zerolog.Nop(),
	}
	return svc, orders, stores, commissions
}

func TestCreateOrder(t *testing.T) {
	svc, orders, stores, commissions := newOrderService()
	ctx := context.Background()

	st := &domain.Store{Name: "ink", CreatorID: 1}
	_ = stores.Save(ctx, st)
	c := testCommission()
	c.StoreID = st.ID
	_ = commissions.Save(ctx, c)

	client := &domain.User{ID: 2, Role: domain.RoleClient}
	err := svc.CreateOrder(ctx, client, CreateOrderInput{
		StoreID: st.ID,
		Items: []CreateOrderItemInput{
			{CommissionID: c.ID, Options: []domain.OrderItemOption{{Name: "rush"}}},
			{CommissionID: c.ID, Options: []domain.OrderItemOption{{Name: "background", Choice: "plain"}}},
		},
	})
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}

	o, err := orders.GetByID(ctx, 1)
	if err != nil {
		t.Fatalf("order not saved: %v", err)
	}
	if o.Total != 21 {
		t.Fatalf("total = %v, want 21", o.Total)
	}
	if o.Status != domain.OrderPending {
		t.Fatalf("status = %q, want %q", o.Status, domain.OrderPending)
	}
	if o.CustomerID != client.ID {
		t.Fatalf("customer = %d, want %d", o.CustomerID, client.ID)
	}
}

func TestCreateOrderUnknownCommission(t *testing.T) {
	svc, _, stores, _ := newOrderService()
	ctx := context.Background()

	st := &domain.Store{Name: "ink", CreatorID: 1}
	_ = stores.Save(ctx, st)

	client := &domain.User{ID: 2, Role: domain.RoleClient}
	err := svc.CreateOrder(ctx, client, CreateOrderInput{
		StoreID: st.ID,
		Items:   []CreateOrderItemInput{{CommissionID: 99}},
	})
	if err == nil || err.Error() != "Commission not found" {
		t.Fatalf("err = %v, want Commission not found", err)
	}
}

func seedOrder(t *testing.T, orders *fakeOrderRepo, stores *fakeStoreRepo, creatorID, customerID int64, status domain.OrderStatus) *domain.Order {
	t.Helper()
	ctx := context.Background()
	st := &domain.Store{Name: "ink", CreatorID: creatorID}
	if err := stores.Save(ctx, st); err != nil {
		t.Fatal(err)
	}
	o := &domain.Order{CustomerID: customerID, StoreID: st.ID, Status: status, Total: 10}
	if err := orders.Save(ctx, o); err != nil {
		t.Fatal(err)
	}
	return o
}

func TestGetOrderHidesOthersOrders(t *testing.T) {
	svc, orders, stores, _ := newOrderService()
	o := seedOrder(t, orders, stores, 1, 2, domain.OrderPending)

	stranger := &domain.User{ID: 3, Role: domain.RoleClient}
	_, err := svc.GetOrder(context.Background(), stranger, o.ID)
	var forbidden ErrForbidden
	if !errors.As(err, &forbidden) {
		t.Fatalf("err = %v, want ErrForbidden", err)
	}
	if forbidden.Error() != "You cant see other peoples' orders" {
		t.Fatalf("message = %q", forbidden.Error())
	}
}

func TestEditOrderStatusRoles(t *testing.T) {
	cases := []struct {
		name    string
		role    domain.UserRole
		status  domain.OrderStatus
		allowed bool
	}{
		{"client canceling", domain.RoleClient, domain.OrderCanceling, true},
		{"client completed", domain.RoleClient, domain.OrderCompleted, false},
		{"client accepted", domain.RoleClient, domain.OrderAccepted, false},
		{"creator accepted", domain.RoleCreator, domain.OrderAccepted, true},
		{"creator rejected", domain.RoleCreator, domain.OrderRejected, true},
		{"creator drawing", domain.RoleCreator, domain.OrderDrawing, true},
		{"creator completed", domain.RoleCreator, domain.OrderCompleted, true},
		{"creator canceled", domain.RoleCreator, domain.OrderCanceled, true},
		{"creator canceling", domain.RoleCreator, domain.OrderCanceling, false},
		{"creator pending", domain.RoleCreator, domain.OrderPending, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, orders, stores, _ := newOrderService()
			o := seedOrder(t, orders, stores, 1, 2, domain.OrderPending)

			user := &domain.User{Role: tc.role}
			if tc.role == domain.RoleCreator {
				user.ID = 1
			} else {
				user.ID = 2
			}

			err := svc.EditOrderStatus(context.Background(), user, o.ID, tc.status)
			if tc.allowed {
				if err != nil {
					t.Fatalf("EditOrderStatus: %v", err)
				}
				saved, _ := orders.GetByID(context.Background(), o.ID)
				if saved.Status != tc.status {
					t.Fatalf("status = %q, want %q", saved.Status, tc.status)
				}
				return
			}
			var forbidden ErrForbidden
			if !errors.As(err, &forbidden) {
				t.Fatalf("err = %v, want ErrForbidden", err)
			}
		})
	}
}

func TestGetOrdersCreatorAggregatesStores(t *testing.T) {
	svc, orders, stores, _ := newOrderService()
	ctx := context.Background()

	st1 := &domain.Store{Name: "a", CreatorID: 1}
	st2 := &domain.Store{Name: "b", CreatorID: 1}
	other := &domain.Store{Name: "c", CreatorID: 9}
	_ = stores.Save(ctx, st1)
	_ = stores.Save(ctx, st2)
	_ = stores.Save(ctx, other)

	_ = orders.Save(ctx, &domain.Order{CustomerID: 2, StoreID: st1.ID, Status: domain.OrderPending})
	_ = orders.Save(ctx, &domain.Order{CustomerID: 2, StoreID: st2.ID, Status: domain.OrderAccepted})
	_ = orders.Save(ctx, &domain.Order{CustomerID: 2, StoreID: other.ID, Status: domain.OrderPending})

	creator := &domain.User{ID: 1, Role: domain.RoleCreator}
	got, err := svc.GetOrders(ctx, creator, GetOrdersInput{Page: 1})
	if err != nil {
		t.Fatalf("GetOrders: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}

	got, err = svc.GetOrders(ctx, creator, GetOrdersInput{Page: 1, Status: domain.OrderAccepted})
	if err != nil {
		t.Fatalf("GetOrders filtered: %v", err)
	}
	if len(got) != 1 || got[0].StoreID != st2.ID {
		t.Fatalf("filtered orders = %+v", got)
	}
}
