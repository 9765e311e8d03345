package routes

import (
	"github.com/gorilla/mux"

	"github.com/rasoisetu/backend/controllers"
)

// RegisterRoutes sets up all the routes for the application.
func RegisterRoutes(router *mux.Router, vendorController *controllers.VendorController, sellerController *controllers.SellerController, inventoryController *controllers.InventoryController, orderController *controllers.OrderController) {
	// Health
	router.HandleFunc("/", controllers.Root).Methods("GET")
	router.HandleFunc("/health", controllers.Health).Methods("GET")

	// Vendor auth
	router.HandleFunc("/vendor/register", vendorController.Register).Methods("POST")
	router.HandleFunc("/vendor/login", vendorController.Login).Methods("POST")

	// Inventory
	router.HandleFunc("/inventory/items", inventoryController.GetItems).Methods("GET")
	router.HandleFunc("/inventory/categories", inventoryController.GetCategories).Methods("GET")
	router.HandleFunc("/inventory/low-stock", inventoryController.LowStock).Methods("GET")
	router.HandleFunc("/inventory/item/{id}", inventoryController.GetItem).Methods("GET")

	// Orders. The vendor listing is registered before the wildcard lookup so
	// /orders/vendor/... never matches {orderId}.
	router.HandleFunc("/orders/place", orderController.PlaceOrder).Methods("POST")
	router.HandleFunc("/orders/vendor/{vendorId}", orderController.GetVendorOrders).Methods("GET")
	router.HandleFunc("/orders/{orderId}", orderController.GetOrder).Methods("GET")
	router.HandleFunc("/orders/{orderId}/status", orderController.UpdateStatus).Methods("PUT")

	// Sellers
	router.HandleFunc("/seller/register", sellerController.Register).Methods("POST")
	router.HandleFunc("/seller/login", sellerController.Login).Methods("POST")
	router.HandleFunc("/seller/check-status", sellerController.CheckStatus).Methods("POST")
	router.HandleFunc("/seller/status/{email}", sellerController.GetStatusByEmail).Methods("GET")
	router.HandleFunc("/seller/all", sellerController.GetAll).Methods("GET")
	router.HandleFunc("/seller/approved", sellerController.GetApproved).Methods("GET")
	router.HandleFunc("/seller/rejected", sellerController.GetRejected).Methods("GET")
	router.HandleFunc("/seller/pending", sellerController.GetPending).Methods("GET")
	router.HandleFunc("/seller/stats", sellerController.GetStats).Methods("GET")
	router.HandleFunc("/seller/details/{id}", sellerController.GetDetails).Methods("GET")
	router.HandleFunc("/seller/{id}/status", sellerController.UpdateStatus).Methods("PATCH")

	// Legacy admin routes kept for the deployed frontend; both delegate to
	// the same status-update operation as PATCH /seller/{id}/status.
	router.HandleFunc("/api/seller/{id}/route", sellerController.UpdateStatusRoute).Methods("PATCH")
	router.HandleFunc("/api/seller/status/{id}", sellerController.UpdateStatusAlt).Methods("PATCH")
}
