package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/rasoisetu/backend/controllers"
	"github.com/rasoisetu/backend/models"
	"github.com/rasoisetu/backend/routes"
	"github.com/rasoisetu/backend/store"
	"github.com/rasoisetu/backend/utils"
)

// newTestServer wires the full route table over an in-memory store.
func newTestServer(t *testing.T) (*store.Memory, http.Handler) {
	t.Helper()
	mem := store.NewMemory()
	router := mux.NewRouter()
	routes.RegisterRoutes(router,
		controllers.NewVendorController(mem),
		controllers.NewSellerController(mem, utils.NewEmailService()),
		controllers.NewInventoryController(mem),
		controllers.NewOrderController(mem),
	)
	return mem, router
}

func doJSON(t *testing.T, h http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decodeMap(t *testing.T, rr *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var m map[string]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &m), "body: %s", rr.Body.String())
	return m
}

// registerVendor registers and logs in a vendor, returning its id.
func registerVendor(t *testing.T, h http.Handler, name, phone, password string) string {
	t.Helper()
	rr := doJSON(t, h, http.MethodPost, "/vendor/register", map[string]string{
		"full_name": name,
		"phone":     phone,
		"password":  password,
	})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	rr = doJSON(t, h, http.MethodPost, "/vendor/login", map[string]string{
		"phone":    phone,
		"password": password,
	})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	id, _ := decodeMap(t, rr)["vendor_id"].(string)
	require.NotEmpty(t, id)
	return id
}

// registerSeller registers a seller application, returning its id.
func registerSeller(t *testing.T, h http.Handler, name, email, phone string) string {
	t.Helper()
	rr := doJSON(t, h, http.MethodPost, "/seller/register", map[string]interface{}{
		"name":     name,
		"email":    email,
		"phone":    phone,
		"password": "secret123",
		"products": []string{"rice", "flour"},
	})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	id, _ := decodeMap(t, rr)["seller_id"].(string)
	require.NotEmpty(t, id)
	return id
}

// seedItem inserts an inventory item directly into the store and returns its
// hex id.
func seedItem(t *testing.T, mem *store.Memory, item models.InventoryItem) string {
	t.Helper()
	insertedID, err := mem.Collection("inventory").InsertOne(context.Background(), item)
	require.NoError(t, err)
	id, ok := insertedID.(primitive.ObjectID)
	require.True(t, ok)
	return id.Hex()
}

// itemStock reads an item's current stock straight from the store.
func itemStock(t *testing.T, mem *store.Memory, idHex string) int {
	t.Helper()
	id, err := primitive.ObjectIDFromHex(idHex)
	require.NoError(t, err)
	var item models.InventoryItem
	require.NoError(t, mem.Collection("inventory").FindOne(context.Background(),
		bson.M{"_id": id}, &item))
	return item.Stock
}
