package repo

import (
	"context"
	"errors"
	"testing"

	"atelier-backend/internal/domain"
	"atelier-backend/internal/usecase"
)

func TestMemoryStoreJoinsCategory(t *testing.T) {
	mem := NewMemory()
	ctx := context.Background()

	c := &domain.Category{Name: "digital art", Slug: "digital-art"}
	if err := mem.Categories.Save(ctx, c); err != nil {
		t.Fatal(err)
	}
	st := &domain.Store{Name: "ink", CategoryID: c.ID, CreatorID: 1}
	if err := mem.Stores.Save(ctx, st); err != nil {
		t.Fatal(err)
	}

	got, err := mem.Stores.GetByID(ctx, st.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Category == nil || got.Category.Slug != "digital-art" {
		t.Fatalf("category not joined: %+v", got)
	}
}

func TestMemoryOrderAttachesItems(t *testing.T) {
	mem := NewMemory()
	ctx := context.Background()

	it := &domain.OrderItem{CommissionID: 7}
	if err := mem.OrderItems.Save(ctx, it); err != nil {
		t.Fatal(err)
	}
	o := &domain.Order{CustomerID: 2, StoreID: 1, Total: 10, Status: domain.OrderPending,
		Items: []domain.OrderItem{*it}}
	if err := mem.Orders.Save(ctx, o); err != nil {
		t.Fatal(err)
	}

	got, err := mem.Orders.GetByID(ctx, o.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if len(got.Items) != 1 || got.Items[0].CommissionID != 7 || got.Items[0].OrderID != o.ID {
		t.Fatalf("items = %+v", got.Items)
	}
}

func TestMemoryChatsNewestFirst(t *testing.T) {
	mem := NewMemory()
	ctx := context.Background()

	for _, content := range []string{"one", "two", "three"} {
		if err := mem.Chats.Save(ctx, &domain.Chat{ChatRoomID: 1, Content: content}); err != nil {
			t.Fatal(err)
		}
	}
	got, err := mem.Chats.ListByRoom(ctx, 1, 2, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0].Content != "three" || got[1].Content != "two" {
		t.Fatalf("chats = %+v", got)
	}
}

func TestMemoryVerificationDeleteByUser(t *testing.T) {
	mem := NewMemory()
	ctx := context.Background()

	_ = mem.Verifications.Save(ctx, &domain.Verification{Code: "a", UserID: 1})
	_ = mem.Verifications.Save(ctx, &domain.Verification{Code: "b", UserID: 1})
	_ = mem.Verifications.Save(ctx, &domain.Verification{Code: "c", UserID: 2})

	if err := mem.Verifications.DeleteByUser(ctx, 1); err != nil {
		t.Fatal(err)
	}
	if _, err := mem.Verifications.GetByCode(ctx, "a"); !errors.Is(err, usecase.ErrNoRows) {
		t.Fatal("verification a not deleted")
	}
	if _, err := mem.Verifications.GetByCode(ctx, "c"); err != nil {
		t.Fatalf("verification c must survive: %v", err)
	}
}

func TestMemoryStoreDeleteCascadesCommissions(t *testing.T) {
	mem := NewMemory()
	ctx := context.Background()

	st := &domain.Store{Name: "ink", CreatorID: 1}
	_ = mem.Stores.Save(ctx, st)
	c := &domain.Commission{Name: "chibi", StoreID: st.ID}
	_ = mem.Commissions.Save(ctx, c)

	if err := mem.Stores.Delete(ctx, st.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := mem.Commissions.GetByID(ctx, c.ID); !errors.Is(err, usecase.ErrNoRows) {
		t.Fatal("commission must go with its store")
	}
}
