package models

import (
	"time"

	"github.com/gocql/gocql"
)

const (
	OrderProcessing = "processing"
	OrderShipped    = "shipped"
	OrderDelivered  = "delivered"
	OrderCancelled  = "cancelled"
)

type Order struct {
	ID            gocql.UUID `json:"id"`
	UserID        string     `json:"user_id"`
	Items         []CartItem `json:"items"`
	Subtotal      float64    `json:"subtotal"`
	Shipping      float64    `json:"shipping"`
	Tax           float64    `json:"tax"`
	Discount      float64    `json:"discount"`
	Total         float64    `json:"total"`
	VoucherCode   string     `json:"voucher_code,omitempty"`
	PaymentMethod string     `json:"payment_method"`
	PaymentRef    string     `json:"payment_ref,omitempty"`
	AddressID     gocql.UUID `json:"address_id"`
	Status        string     `json:"status"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// Transitions autorisées du cycle de vie d'une commande.
// "delivered" et "cancelled" sont des états terminaux.
var orderTransitions = map[string][]string{
	OrderProcessing: {OrderShipped, OrderCancelled},
	OrderShipped:    {OrderDelivered},
}

func IsOrderStatus(s string) bool {
	switch s {
	case OrderProcessing, OrderShipped, OrderDelivered, OrderCancelled:
		return true
	}
	return false
}

// CanTransition indique si une commande peut passer de l'état from à l'état to.
func CanTransition(from, to string) bool {
	for _, next := range orderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
