package models

import (
	"time"
)

type Order struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	CustomerName string    `json:"customer_name" gorm:"not null"`
	Phone        string    `json:"phone" gorm:"not null"`
	OrderDetails string    `json:"order_details" gorm:"not null"`
	OrderTime    string    `json:"order_time" gorm:"not null"`
	Status       string    `json:"status" gorm:"default:'pending'"` // pending, preparing, ready, cancelled
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderPreparing OrderStatus = "preparing"
	OrderReady     OrderStatus = "ready"
	OrderCancelled OrderStatus = "cancelled"
)

// ValidOrderStatus reports whether s is a member of the status enum.
func ValidOrderStatus(s string) bool {
	switch OrderStatus(s) {
	case OrderPending, OrderPreparing, OrderReady, OrderCancelled:
		return true
	}
	return false
}

// orderTransitions is the strict transition table. Ready and cancelled are
// terminal; cancellation is reachable from any non-terminal state.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderPending:   {OrderPreparing, OrderCancelled},
	OrderPreparing: {OrderReady, OrderCancelled},
	OrderReady:     {},
	OrderCancelled: {},
}

// CanTransition reports whether an order may move from one status to another
// under the strict table. A no-op transition (same status) is always allowed.
func CanTransition(from, to OrderStatus) bool {
	if from == to {
		return true
	}
	for _, next := range orderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
