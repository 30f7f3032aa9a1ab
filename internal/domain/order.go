package domain

import "time"

type OrderStatus string

const (
	OrderPending   OrderStatus = "Pending"
	OrderAccepted  OrderStatus = "Accepted"
	OrderRejected  OrderStatus = "Rejected"
	OrderDrawing   OrderStatus = "Drawing"
	OrderCompleted OrderStatus = "Completed"
	OrderCanceling OrderStatus = "Canceling"
	OrderCanceled  OrderStatus = "Canceled"
)

type OrderItemOption struct {
	Name   string `json:"name"`
	Choice string `json:"choice,omitempty"`
}

// OrderItem snapshots the commission reference and the option names picked at
// order time. The price contribution is folded into Order.Total only.
type OrderItem struct {
	ID           int64             `json:"id"`
	OrderID      int64             `json:"orderId"`
	CommissionID int64             `json:"commissionId"`
	Options      []OrderItemOption `json:"options,omitempty"`
	CreatedAt    time.Time         `json:"createdAt"`
}

type Order struct {
	ID         int64       `json:"id"`
	CustomerID int64       `json:"customerId"`
	StoreID    int64       `json:"storeId"`
	Items      []OrderItem `json:"items,omitempty"`
	Total      float64     `json:"total"`
	Status     OrderStatus `json:"status"`
	IsPaid     bool        `json:"isPaid"`
	CreatedAt  time.Time   `json:"createdAt"`
	UpdatedAt  time.Time   `json:"updatedAt"`
}
