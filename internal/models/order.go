package models

import "time"

// Statuts de commande
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

// Statuts de paiement
const (
	PaymentStatusPending    = "pending"
	PaymentStatusProcessing = "processing"
	PaymentStatusCompleted  = "completed"
	PaymentStatusFailed     = "failed"
	PaymentStatusRefunded   = "refunded"
)

// Order est une commande figée : les items sont une copie du panier au
// moment de la création, les montants ne sont jamais recalculés ensuite.
// Invariant : Total == Subtotal + Tax + ShippingCost.
type Order struct {
	ID              string     `json:"id"`
	UserID          string     `json:"user_id"`
	Items           []CartItem `json:"items"`
	ShippingAddress *Address   `json:"shipping_address,omitempty"`
	ShippingMethod  string     `json:"shipping_method,omitempty"`
	PaymentMethod   string     `json:"payment_method,omitempty"`
	PaymentStatus   string     `json:"payment_status"`
	OrderStatus     string     `json:"order_status"`
	Subtotal        int64      `json:"subtotal"`
	Tax             int64      `json:"tax"`
	ShippingCost    int64      `json:"shipping_cost"`
	Total           int64      `json:"total"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}
