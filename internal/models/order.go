package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus is the lifecycle state of an order as seen by the storefront.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusBooked    OrderStatus = "booked"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// OrderItem represents a single medicine within an order.
type OrderItem struct {
	MedicineID string          `json:"medicine_id"`
	Name       string          `json:"name"`
	Quantity   int             `json:"quantity"`
	Price      decimal.Decimal `json:"price"` // Price at the time of order
}

// Order represents a patient order created from a cart snapshot.
type Order struct {
	ID              string          `json:"id"`
	PatientID       string          `json:"patient_id"`
	PatientName     string          `json:"patient_name,omitempty"`
	PatientEmail    string          `json:"patient_email,omitempty"`
	Items           []OrderItem     `json:"items"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	Status          OrderStatus     `json:"status"`
	DeliveryAddress string          `json:"delivery_address"` // serialized Address
	PaymentMethod   PaymentMethod   `json:"payment_method"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// OrderUpdate carries the partial fields sent when updating an order.
type OrderUpdate struct {
	Status OrderStatus `json:"status,omitempty"`
}
