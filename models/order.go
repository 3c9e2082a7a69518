package models

// OrderStatus tracks a locally recorded order through its lifecycle. New
// orders start as Processing; the remote order service owns later statuses.
type OrderStatus string

const (
	OrderStatusProcessing OrderStatus = "Processing"
	OrderStatusConfirmed  OrderStatus = "Confirmed"
	OrderStatusShipped    OrderStatus = "Shipped"
	OrderStatusDelivered  OrderStatus = "Delivered"
	OrderStatusCancelled  OrderStatus = "Cancelled"
)

// Order is the local order-history record created when a cart is checked out.
type Order struct {
	Ref    string      `json:"ref"`
	Date   string      `json:"date"`
	Items  []LineItem  `json:"items"`
	Total  float64     `json:"total"`
	Status OrderStatus `json:"status"`
}
