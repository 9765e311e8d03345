package controllers

import (
	"context"
	"errors"
	"net/http"
	"regexp"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/rasoisetu/backend/models"
	"github.com/rasoisetu/backend/store"
)

// InventoryController serves the shared ingredient inventory.
type InventoryController struct {
	Items store.Collection
}

// NewInventoryController creates an InventoryController backed by the
// inventory collection.
func NewInventoryController(s store.Store) *InventoryController {
	return &InventoryController{Items: s.Collection("inventory")}
}

// GetItems lists in-stock items with optional category, stock, price and
// free-text filters. Only items with stock > 0 are returned; min_stock
// raises that floor.
func (ic *InventoryController) GetItems(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	stock := bson.M{"$gt": 0}
	if v := q.Get("min_stock"); v != "" {
		minStock, err := strconv.Atoi(v)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid min_stock")
			return
		}
		stock["$gte"] = minStock
	}
	query := bson.M{"stock": stock}

	if category := q.Get("category"); category != "" {
		query["category"] = bson.M{"$regex": regexp.QuoteMeta(category), "$options": "i"}
	}
	if v := q.Get("max_price"); v != "" {
		maxPrice, err := strconv.ParseFloat(v, 64)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid max_price")
			return
		}
		query["price"] = bson.M{"$lte": maxPrice}
	}
	if search := q.Get("search"); search != "" {
		pattern := bson.M{"$regex": regexp.QuoteMeta(search), "$options": "i"}
		query["$or"] = []bson.M{
			{"name": pattern},
			{"description": pattern},
			{"supplier": pattern},
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	var items []models.InventoryItem
	if err := ic.Items.Find(ctx, query, &items); err != nil {
		respondError(w, http.StatusInternalServerError, "Error fetching inventory: %v", err)
		return
	}
	if items == nil {
		items = []models.InventoryItem{}
	}
	for i := range items {
		items[i].ApplyDefaults()
	}
	respondJSON(w, http.StatusOK, items)
}

// GetCategories returns the distinct category values present in the
// inventory.
func (ic *InventoryController) GetCategories(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	values, err := ic.Items.Distinct(ctx, "category", bson.M{})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Error fetching categories: %v", err)
		return
	}
	categories := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok {
			categories = append(categories, s)
		}
	}
	respondJSON(w, http.StatusOK, map[string][]string{"categories": categories})
}

// GetItem returns a single item with defaults backfilled.
func (ic *InventoryController) GetItem(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid item ID")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var item models.InventoryItem
	err = ic.Items.FindOne(ctx, bson.M{"_id": id}, &item)
	if errors.Is(err, store.ErrNotFound) {
		respondError(w, http.StatusNotFound, "Item not found")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Error fetching item details: %v", err)
		return
	}

	item.ApplyDefaults()
	respondJSON(w, http.StatusOK, item)
}

// LowStock reports items at or below the threshold (default 20), for
// restocking.
func (ic *InventoryController) LowStock(w http.ResponseWriter, r *http.Request) {
	threshold := 20
	if v := r.URL.Query().Get("threshold"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid threshold")
			return
		}
		threshold = n
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var items []models.InventoryItem
	if err := ic.Items.Find(ctx, bson.M{"stock": bson.M{"$lte": threshold}}, &items); err != nil {
		respondError(w, http.StatusInternalServerError, "Error fetching low stock items: %v", err)
		return
	}

	result := make([]models.LowStockItem, 0, len(items))
	for _, item := range items {
		result = append(result, models.LowStockItem{
			ID:       item.ID.Hex(),
			Name:     item.Name,
			Stock:    item.Stock,
			Category: item.Category,
			Supplier: item.Supplier,
		})
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"low_stock_items": result,
		"count":           len(result),
	})
}
