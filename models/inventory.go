package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Defaults backfilled for optional inventory fields absent from stored
// documents.
const (
	DefaultMinOrderQuantity = 1
	DefaultDeliveryTime     = "2-3 days"
)

// InventoryItem is one purchasable ingredient.
type InventoryItem struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name             string             `bson:"name" json:"name"`
	Category         string             `bson:"category" json:"category"`
	Price            float64            `bson:"price" json:"price"`
	Stock            int                `bson:"stock" json:"stock"`
	Unit             string             `bson:"unit" json:"unit"` // kg, liters, pieces, ...
	Supplier         string             `bson:"supplier" json:"supplier"`
	Rating           float64            `bson:"rating,omitempty" json:"rating"`
	Description      string             `bson:"description,omitempty" json:"description"`
	ImageURL         string             `bson:"image_url,omitempty" json:"image_url"`
	MinOrderQuantity int                `bson:"min_order_quantity,omitempty" json:"min_order_quantity"`
	DeliveryTime     string             `bson:"delivery_time,omitempty" json:"delivery_time"`
	LastUpdated      time.Time          `bson:"last_updated,omitempty" json:"last_updated"`
}

// ApplyDefaults backfills optional fields missing from the stored document.
func (it *InventoryItem) ApplyDefaults() {
	if it.MinOrderQuantity == 0 {
		it.MinOrderQuantity = DefaultMinOrderQuantity
	}
	if it.DeliveryTime == "" {
		it.DeliveryTime = DefaultDeliveryTime
	}
	if it.LastUpdated.IsZero() {
		it.LastUpdated = time.Now().UTC()
	}
}

// LowStockItem is the reduced projection used by the low-stock report.
type LowStockItem struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Stock    int    `json:"stock"`
	Category string `json:"category"`
	Supplier string `json:"supplier"`
}
