package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Order statuses, in lifecycle order.
const (
	OrderStatusPending    = "pending"
	OrderStatusConfirmed  = "confirmed"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

// OrderStatuses lists every valid order status.
var OrderStatuses = []string{
	OrderStatusPending,
	OrderStatusConfirmed,
	OrderStatusProcessing,
	OrderStatusShipped,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

// ValidOrderStatus reports whether s is a known order status.
func ValidOrderStatus(s string) bool {
	for _, status := range OrderStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// OrderItem is a line snapshot taken at placement time so the order stays
// self-describing even if the inventory item later changes.
type OrderItem struct {
	ItemID   string  `bson:"item_id" json:"item_id"`
	Name     string  `bson:"name" json:"name"`
	Price    float64 `bson:"price" json:"price"`
	Quantity int     `bson:"quantity" json:"quantity"`
	Unit     string  `bson:"unit" json:"unit"`
	Total    float64 `bson:"total" json:"total"`
	Supplier string  `bson:"supplier" json:"supplier"`
}

// Order is a placed ingredient order. OrderID is the short vendor-facing
// reference; the storage id stays internal.
type Order struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	OrderID           string             `bson:"order_id" json:"order_id"`
	VendorID          string             `bson:"vendor_id" json:"vendor_id"`
	VendorName        string             `bson:"vendor_name" json:"vendor_name"`
	VendorPhone       string             `bson:"vendor_phone" json:"vendor_phone"`
	Items             []OrderItem        `bson:"items" json:"items"`
	TotalAmount       float64            `bson:"total_amount" json:"total_amount"`
	Status            string             `bson:"status" json:"status"`
	DeliveryAddress   string             `bson:"delivery_address" json:"delivery_address"`
	Notes             string             `bson:"notes" json:"notes"`
	CreatedAt         time.Time          `bson:"created_at" json:"created_at"`
	EstimatedDelivery string             `bson:"estimated_delivery" json:"estimated_delivery"`
	UpdatedAt         time.Time          `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
}

// OrderLine is one requested item in an order request.
type OrderLine struct {
	ItemID   string `json:"item_id" validate:"required"`
	Quantity int    `json:"quantity" validate:"required"`
}

// OrderCreate is the order placement request body.
type OrderCreate struct {
	VendorID          string      `json:"vendor_id" validate:"required"`
	Items             []OrderLine `json:"items" validate:"required,min=1,dive"`
	DeliveryAddress   string      `json:"delivery_address" validate:"required"`
	Notes             string      `json:"notes"`
	EstimatedDelivery string      `json:"estimated_delivery"`
}

// OrderResponse is the placement acknowledgement.
type OrderResponse struct {
	OrderID           string  `json:"order_id"`
	VendorID          string  `json:"vendor_id"`
	TotalAmount       float64 `json:"total_amount"`
	Status            string  `json:"status"`
	Message           string  `json:"message"`
	EstimatedDelivery string  `json:"estimated_delivery"`
}

// OrderStatusUpdate carries a status transition.
type OrderStatusUpdate struct {
	Status string `json:"status" validate:"required"`
}
