package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"atelier-backend/internal/domain"

	"github.com/rs/zerolog"
)

type OrderRepo interface {
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	ListByCustomer(ctx context.Context, customerID int64, status domain.OrderStatus, limit, offset int) ([]domain.Order, error)
	ListByStore(ctx context.Context, storeID int64) ([]domain.Order, error)
	Save(ctx context.Context, o *domain.Order) error
}

type OrderItemRepo interface {
	Save(ctx context.Context, it *domain.OrderItem) error
}

type OrderService struct {
	Orders      OrderRepo
	OrderItems  OrderItemRepo
	Stores      StoreRepo
	Commissions CommissionRepo
	Log         zerolog.Logger
}

type CreateOrderItemInput struct {
	CommissionID int64                    `json:"commissionId"`
	Options      []domain.OrderItemOption `json:"options"`
}

type CreateOrderInput struct {
	StoreID int64                  `json:"storeId"`
	Items   []CreateOrderItemInput `json:"items"`
}

func (s *OrderService) CreateOrder(ctx context.Context, customer *domain.User, in CreateOrderInput) error {
	st, err := s.Stores.GetByID(ctx, in.StoreID)
	if errors.Is(err, ErrNoRows) {
		return ErrNotFound("Store not found")
	}
	if err != nil {
		s.Log.Error().Err(err).Msg("create order: store lookup failed")
		return ErrInternal("Could not create order")
	}

	now := time.Now().UTC()
	var orderFinalPrice float64
	orderItems := make([]domain.OrderItem, 0, len(in.Items))

	for _, item := range in.Items {
		commission, err := s.Commissions.GetByID(ctx, item.CommissionID)
		if errors.Is(err, ErrNoRows) {
			return ErrNotFound("Commission not found")
		}
		if err != nil {
			s.Log.Error().Err(err).Msg("create order: commission lookup failed")
			return ErrInternal("Could not create order")
		}

		itemPrice, err := priceItem(commission, item.Options)
		if err != nil {
			return err
		}
		orderFinalPrice += itemPrice

		// Items are persisted as the loop goes; a failure on a later item
		// leaves the earlier rows behind.
		orderItem := &domain.OrderItem{
			CommissionID: commission.ID,
			Options:      item.Options,
			CreatedAt:    now,
		}
		if err := s.OrderItems.Save(ctx, orderItem); err != nil {
			s.Log.Error().Err(err).Msg("create order: item save failed")
			return ErrInternal("Could not create order")
		}
		orderItems = append(orderItems, *orderItem)
	}

	order := &domain.Order{
		CustomerID: customer.ID,
		StoreID:    st.ID,
		Items:      orderItems,
		Total:      orderFinalPrice,
		Status:     domain.OrderPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.Orders.Save(ctx, order); err != nil {
		s.Log.Error().Err(err).Msg("create order: save failed")
		return ErrInternal("Could not create order")
	}
	return nil
}

// priceItem computes one item's contribution: base price plus option
// surcharges. A flat-extra option never looks at the supplied choice.
func priceItem(commission *domain.Commission, selections []domain.OrderItemOption) (float64, error) {
	price := commission.Price
	for _, sel := range selections {
		var opt *domain.CommissionOption
		for i := range commission.Options {
			if commission.Options[i].Name == sel.Name {
				opt = &commission.Options[i]
				break
			}
		}
		if opt == nil {
			return 0, ErrNotFound(fmt.Sprintf("Commission option %s not found", sel.Name))
		}
		if opt.Extra != 0 {
			price += opt.Extra
			continue
		}
		var choice *domain.CommissionChoice
		for i := range opt.Choices {
			if opt.Choices[i].Name == sel.Choice {
				choice = &opt.Choices[i]
				break
			}
		}
		if choice == nil {
			return 0, ErrNotFound(fmt.Sprintf("Commission option choice %s not found", sel.Choice))
		}
		price += choice.Extra
	}
	return price, nil
}

// canSeeOrder is the single party-membership predicate: the client who placed
// the order, or the creator owning the store it was placed against.
func (s *OrderService) canSeeOrder(ctx context.Context, user *domain.User, order *domain.Order) (bool, error) {
	if user.Role == domain.RoleClient {
		return order.CustomerID == user.ID, nil
	}
	st, err := s.Stores.GetByID(ctx, order.StoreID)
	if err != nil {
		return false, err
	}
	return st.CreatorID == user.ID, nil
}

type GetOrdersInput struct {
	Status domain.OrderStatus `json:"status,omitempty"`
	Page   int                `json:"page"`
}

func (s *OrderService) GetOrders(ctx context.Context, user *domain.User, in GetOrdersInput) ([]domain.Order, error) {
	if user.Role == domain.RoleClient {
		orders, err := s.Orders.ListByCustomer(ctx, user.ID, in.Status, PageItems, Offset(in.Page))
		if err != nil {
			s.Log.Error().Err(err).Msg("get orders: list failed")
			return nil, ErrInternal("Could not get orders.")
		}
		return orders, nil
	}

	stores, err := s.Stores.ListByCreator(ctx, user.ID)
	if err != nil {
		s.Log.Error().Err(err).Msg("get orders: stores failed")
		return nil, ErrInternal("Could not get orders.")
	}
	var orders []domain.Order
	for _, st := range stores {
		list, err := s.Orders.ListByStore(ctx, st.ID)
		if err != nil {
			s.Log.Error().Err(err).Msg("get orders: store orders failed")
			return nil, ErrInternal("Could not get orders.")
		}
		orders = append(orders, list...)
	}
	if in.Status != "" {
		filtered := orders[:0]
		for _, o := range orders {
			if o.Status == in.Status {
				filtered = append(filtered, o)
			}
		}
		orders = filtered
	}
	return SlicePage(orders, in.Page), nil
}

func (s *OrderService) GetOrder(ctx context.Context, user *domain.User, orderID int64) (*domain.Order, error) {
	order, err := s.Orders.GetByID(ctx, orderID)
	if errors.Is(err, ErrNoRows) {
		return nil, ErrNotFound("Order not found")
	}
	if err != nil {
		s.Log.Error().Err(err).Msg("get order: lookup failed")
		return nil, ErrInternal("Could not load order")
	}
	ok, err := s.canSeeOrder(ctx, user, order)
	if err != nil {
		s.Log.Error().Err(err).Msg("get order: ownership check failed")
		return nil, ErrInternal("Could not load order")
	}
	if !ok {
		return nil, ErrForbidden("You cant see other peoples' orders")
	}
	return order, nil
}

func (s *OrderService) EditOrderStatus(ctx context.Context, user *domain.User, orderID int64, status domain.OrderStatus) error {
	order, err := s.Orders.GetByID(ctx, orderID)
	if errors.Is(err, ErrNoRows) {
		return ErrNotFound("Order not found")
	}
	if err != nil {
		s.Log.Error().Err(err).Msg("edit order: lookup failed")
		return ErrInternal("Could not edit order")
	}
	ok, err := s.canSeeOrder(ctx, user, order)
	if err != nil {
		s.Log.Error().Err(err).Msg("edit order: ownership check failed")
		return ErrInternal("Could not edit order")
	}
	if !ok {
		return ErrForbidden("You cant see other peoples' orders")
	}

	canEdit := true
	switch user.Role {
	case domain.RoleClient:
		// Clients may only ask for cancellation.
		if status != domain.OrderCanceling {
			canEdit = false
		}
	case domain.RoleCreator:
		switch status {
		case domain.OrderRejected, domain.OrderAccepted, domain.OrderDrawing,
			domain.OrderCompleted, domain.OrderCanceled:
		default:
			canEdit = false
		}
	}
	if !canEdit {
		return ErrForbidden(fmt.Sprintf("%s can't edit order status to %s", user.Role, status))
	}

	// TODO: the source state is never checked here, so e.g. Completed ->
	// Accepted goes through. Needs a transition table once product picks one.
	order.Status = status
	order.UpdatedAt = time.Now().UTC()
	if err := s.Orders.Save(ctx, order); err != nil {
		s.Log.Error().Err(err).Msg("edit order: save failed")
		return ErrInternal("Could not edit order")
	}
	return nil
}
