package types

import "time"

// OrderItem is one line of an order.
type OrderItem struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

// Order is created once by the public checkout flow and never mutated
// afterwards. Reconciliation may append orders but never edits them.
type Order struct {
	ID           string      `json:"id"`
	StoreID      string      `json:"storeId"`
	CustomerName string      `json:"customerName"`
	Items        []OrderItem `json:"items"`
	Subtotal     float64     `json:"subtotal"`
	DeliveryFee  float64     `json:"deliveryFee"`
	Discount     float64     `json:"discount"`
	Total        float64     `json:"total"`
	DeliveryMode string      `json:"deliveryType"`
	Address      string      `json:"address,omitempty"`
	CreatedAt    time.Time   `json:"createdAt"`
}
