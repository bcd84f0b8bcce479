package models

import (
	"time"

	"gorm.io/datatypes"
)

// OrderType is how the order is served
type OrderType string

const (
	OrderDineIn   OrderType = "dine-in"
	OrderTakeaway OrderType = "takeaway"
	OrderDelivery OrderType = "delivery"
)

// OrderStatus represents all possible states of a restaurant order
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusPreparing OrderStatus = "preparing"
	StatusCompleted OrderStatus = "completed"
	StatusCancelled OrderStatus = "cancelled"
)

type Order struct {
	ID              string               `json:"id" gorm:"primaryKey"`
	Type            OrderType            `json:"type" gorm:"not null"`
	Status          OrderStatus          `json:"status" gorm:"not null;default:'pending'"`
	Items           []OrderItem          `json:"items" gorm:"foreignKey:OrderID"`
	Total           float64              `json:"total"`
	CustomerName    string               `json:"customerName" gorm:"not null"`
	TableNumber     string               `json:"tableNumber,omitempty"`
	DeliveryAddress string               `json:"deliveryAddress,omitempty"`
	StatusHistory   []OrderStatusHistory `json:"statusHistory,omitempty" gorm:"foreignKey:OrderID"`
	CreatedAt       time.Time            `json:"timestamp"`
	UpdatedAt       time.Time            `json:"-"`
}

type OrderItem struct {
	ID         uint                       `json:"-" gorm:"primaryKey"`
	OrderID    string                     `json:"-" gorm:"not null;index"`
	MenuItemID string                     `json:"id" gorm:"not null"`
	Name       string                     `json:"name"`                  // snapshot name
	Quantity   int                        `json:"quantity" gorm:"not null"`
	Price      float64                    `json:"price" gorm:"not null"` // snapshot price at time of order
	Modifiers  datatypes.JSONSlice[string] `json:"modifiers,omitempty"`
}

// OrderStatusHistory tracks every status change
type OrderStatusHistory struct {
	ID         uint        `json:"id" gorm:"primaryKey"`
	OrderID    string      `json:"orderId" gorm:"not null;index"`
	FromStatus OrderStatus `json:"fromStatus"`
	ToStatus   OrderStatus `json:"toStatus" gorm:"not null"`
	ChangedBy  uint        `json:"changedBy"` // user ID who triggered the transition
	CreatedAt  time.Time   `json:"createdAt"`
}

// ComputeTotal sums price times quantity over the items.
func ComputeTotal(items []OrderItem) float64 {
	var total float64
	for _, it := range items {
		total += it.Price * float64(it.Quantity)
	}
	return total
}
