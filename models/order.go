package models

import (
	"time"
)

// Order status values. Bulk settlement only considers orders in
// "delivered" status.
const (
	OrderStatusOpen      = "open"
	OrderStatusDelivered = "delivered"
	OrderStatusClosed    = "closed"
)

type Order struct {
	ID             uint   `gorm:"primaryKey" json:"id"`
	OrderNumber    uint   `gorm:"index" json:"order_number"`
	Status         string `gorm:"type:varchar(20);not null;default:'open'" json:"status"`
	OrderType      string `gorm:"type:varchar(20)" json:"order_type"`
	DeliveryPerson string `gorm:"type:varchar(100);index" json:"delivery_person,omitempty"`
	// PaymentType holds the serialized payment ledger, e.g. "cash:10, card:5.5".
	// Empty string or "pending" means no payment recorded yet.
	PaymentType string      `gorm:"type:text;default:'pending'" json:"payment_type"`
	IsPaid      bool        `gorm:"not null;default:false" json:"is_paid"`
	TotalAmount float64     `gorm:"type:decimal(12,2);not null;default:0.00" json:"total_amount"`
	Items       []OrderItem `gorm:"foreignKey:OrderID" json:"items"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}
