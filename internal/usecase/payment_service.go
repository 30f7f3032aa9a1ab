package usecase

import (
	"context"
	"errors"
	"time"

	"atelier-backend/internal/domain"

	"github.com/rs/zerolog"
)

type PaymentRepo interface {
	ListByUser(ctx context.Context, userID int64) ([]domain.Payment, error)
	Save(ctx context.Context, p *domain.Payment) error
}

type PaymentService struct {
	Payments PaymentRepo
	Orders   OrderRepo
	Log      zerolog.Logger
}

type CreatePaymentInput struct {
	TransactionID string  `json:"transactionId"`
	OrderID       int64   `json:"orderId"`
	Price         float64 `json:"price"`
}

func (s *PaymentService) CreatePayment(ctx context.Context, client *domain.User, in CreatePaymentInput) error {
	order, err := s.Orders.GetByID(ctx, in.OrderID)
	if errors.Is(err, ErrNoRows) {
		return ErrNotFound("Order not found")
	}
	if err != nil {
		s.Log.Error().Err(err).Msg("create payment: order lookup failed")
		return ErrInternal("Could not create payment")
	}
	if order.CustomerID != client.ID {
		return ErrForbidden("You are not allowed to pay for others' orders")
	}
	if order.Total != in.Price {
		return ErrBadRequest("Price does not match")
	}

	p := &domain.Payment{
		TransactionID: in.TransactionID,
		UserID:        client.ID,
		OrderID:       order.ID,
		Price:         in.Price,
		CreatedAt:     time.Now().UTC(),
	}
	if err := s.Payments.Save(ctx, p); err != nil {
		s.Log.Error().Err(err).Msg("create payment: save failed")
		return ErrInternal("Could not create payment")
	}

	order.IsPaid = true
	order.UpdatedAt = time.Now().UTC()
	if err := s.Orders.Save(ctx, order); err != nil {
		s.Log.Error().Err(err).Msg("create payment: order save failed")
		return ErrInternal("Could not create payment")
	}
	return nil
}

func (s *PaymentService) GetPayments(ctx context.Context, user *domain.User) ([]domain.Payment, error) {
	payments, err := s.Payments.ListByUser(ctx, user.ID)
	if err != nil {
		s.Log.Error().Err(err).Msg("get payments: list failed")
		return nil, ErrInternal("Could not get payments")
	}
	return payments, nil
}
