package controllers_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rasoisetu/backend/models"
	"github.com/rasoisetu/backend/store"
)

func seedCatalogue(t *testing.T, mem *store.Memory) {
	t.Helper()
	seedItem(t, mem, models.InventoryItem{Name: "Tomato", Category: "Vegetable", Price: 25, Stock: 100, Unit: "kg", Supplier: "Fresh Farms", Description: "Ripe red tomatoes"})
	seedItem(t, mem, models.InventoryItem{Name: "Basmati Rice", Category: "Grain", Price: 60, Stock: 15, Unit: "kg", Supplier: "Annapurna Traders"})
	seedItem(t, mem, models.InventoryItem{Name: "Sunflower Oil", Category: "Oil", Price: 110, Stock: 40, Unit: "liter", Supplier: "Golden Drop"})
	seedItem(t, mem, models.InventoryItem{Name: "Green Chilli", Category: "Spice", Price: 40, Stock: 0, Unit: "kg", Supplier: "Spice Route"})
}

func listItems(t *testing.T, h http.Handler, query string) []models.InventoryItem {
	t.Helper()
	rr := doJSON(t, h, http.MethodGet, "/inventory/items"+query, nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var items []models.InventoryItem
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &items))
	return items
}

func itemNames(items []models.InventoryItem) []string {
	names := make([]string, 0, len(items))
	for _, it := range items {
		names = append(names, it.Name)
	}
	return names
}

func TestGetItemsFilters(t *testing.T) {
	mem, h := newTestServer(t)
	seedCatalogue(t, mem)

	// Base predicate: out-of-stock items never appear.
	assert.ElementsMatch(t, []string{"Tomato", "Basmati Rice", "Sunflower Oil"},
		itemNames(listItems(t, h, "")))

	// Category is a case-insensitive substring match.
	assert.ElementsMatch(t, []string{"Tomato"}, itemNames(listItems(t, h, "?category=veg")))

	// min_stock raises the stock floor.
	assert.ElementsMatch(t, []string{"Tomato", "Sunflower Oil"},
		itemNames(listItems(t, h, "?min_stock=20")))

	// max_price is an inclusive upper bound.
	assert.ElementsMatch(t, []string{"Tomato", "Basmati Rice"},
		itemNames(listItems(t, h, "?max_price=60")))

	// Search matches name OR description OR supplier, case-insensitively.
	assert.ElementsMatch(t, []string{"Basmati Rice"}, itemNames(listItems(t, h, "?search=rice")))
	assert.ElementsMatch(t, []string{"Tomato"}, itemNames(listItems(t, h, "?search=RIPE")))
	assert.ElementsMatch(t, []string{"Sunflower Oil"}, itemNames(listItems(t, h, "?search=golden")))

	// Filters combine.
	assert.ElementsMatch(t, []string{"Tomato"},
		itemNames(listItems(t, h, "?category=veg&max_price=30&min_stock=50")))
	assert.Empty(t, listItems(t, h, "?category=veg&max_price=10"))
}

func TestGetItemsBackfillsDefaults(t *testing.T) {
	mem, h := newTestServer(t)
	seedItem(t, mem, models.InventoryItem{Name: "Paneer", Category: "Dairy", Price: 280, Stock: 10, Unit: "kg", Supplier: "Amul Dairy Depot"})

	items := listItems(t, h, "")
	require.Len(t, items, 1)
	assert.Equal(t, float64(0), items[0].Rating)
	assert.Equal(t, "", items[0].Description)
	assert.Equal(t, 1, items[0].MinOrderQuantity)
	assert.Equal(t, "2-3 days", items[0].DeliveryTime)
}

func TestGetItem(t *testing.T) {
	mem, h := newTestServer(t)
	id := seedItem(t, mem, models.InventoryItem{Name: "Tomato", Category: "Vegetable", Price: 25, Stock: 100, Unit: "kg", Supplier: "Fresh Farms"})

	rr := doJSON(t, h, http.MethodGet, "/inventory/item/not-hex", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "Invalid item ID", decodeMap(t, rr)["detail"])

	rr = doJSON(t, h, http.MethodGet, "/inventory/item/000000000000000000000000", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = doJSON(t, h, http.MethodGet, "/inventory/item/"+id, nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var item models.InventoryItem
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &item))
	assert.Equal(t, "Tomato", item.Name)
	assert.Equal(t, 1, item.MinOrderQuantity)
	assert.Equal(t, "2-3 days", item.DeliveryTime)
}

func TestGetCategories(t *testing.T) {
	mem, h := newTestServer(t)
	seedCatalogue(t, mem)

	rr := doJSON(t, h, http.MethodGet, "/inventory/categories", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var body struct {
		Categories []string `json:"categories"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.ElementsMatch(t, []string{"Vegetable", "Grain", "Oil", "Spice"}, body.Categories)
}

func TestLowStock(t *testing.T) {
	mem, h := newTestServer(t)
	seedCatalogue(t, mem)

	// Default threshold of 20 catches the 15-stock and 0-stock items.
	rr := doJSON(t, h, http.MethodGet, "/inventory/low-stock", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	body := decodeMap(t, rr)
	assert.Equal(t, float64(2), body["count"])

	rr = doJSON(t, h, http.MethodGet, "/inventory/low-stock?threshold=50", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	body = decodeMap(t, rr)
	assert.Equal(t, float64(3), body["count"])
	first := body["low_stock_items"].([]interface{})[0].(map[string]interface{})
	assert.Contains(t, first, "supplier")
}
