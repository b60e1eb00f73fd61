package model

import "time"

const (
	OrderStatusPending    = "pending"
	OrderStatusDispatched = "dispatched"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"

	PaymentStatusPending  = "pending"
	PaymentStatusReceived = "received"

	PaymentMethodCash = "cash"
	PaymentMethodCard = "card"
)

// OrderItem snapshots the product at purchase time.
type OrderItem struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
	Size     string  `json:"size,omitempty"`
	Color    string  `json:"color,omitempty"`
}

type Order struct {
	ID              string      `json:"id"`
	UserID          string      `json:"user_id"`
	Items           []OrderItem `json:"items"`
	TotalAmount     float64     `json:"total_amount"`
	TotalItems      int         `json:"total_items"`
	PaymentMethod   string      `json:"payment_method"`
	PaymentStatus   string      `json:"payment_status"`
	Status          string      `json:"status"`
	SelectedAddress Address     `json:"selected_address"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

type OrderQuery struct {
	Sort  string
	Order string
	Page  int
	Limit int
}

type OrderList struct {
	Items []Order `json:"items"`
	Total int64   `json:"-"`
}
