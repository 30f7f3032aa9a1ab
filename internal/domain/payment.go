package domain

import "time"

type Payment struct {
	ID            int64     `json:"id"`
	TransactionID string    `json:"transactionId"`
	UserID        int64     `json:"userId"`
	OrderID       int64     `json:"orderId"`
	Price         float64   `json:"price"`
	CreatedAt     time.Time `json:"createdAt"`
}
