package order

import "time"

type Order struct {
	ID              int
	UserID          int
	TotalAmount     float64
	Status          Status
	ShippingAddress string
	CreatedAt       time.Time
	Items           []OrderItem
}

// OrderItem is an immutable price/title snapshot taken at order creation;
// later catalog edits never touch it.
type OrderItem struct {
	ID        int
	OrderID   int
	ProductID int
	Quantity  int
	Price     float64
	Title     string
}

type CreateOrderParams struct {
	UserID          int
	TotalAmount     float64
	ShippingAddress string
	Items           []ItemSnapshot
}

type ItemSnapshot struct {
	ProductID int     `json:"product_id"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
	Title     string  `json:"title"`
}
