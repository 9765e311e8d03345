package controllers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/rasoisetu/backend/models"
	"github.com/rasoisetu/backend/store"
)

// OrderController handles order placement and tracking.
type OrderController struct {
	Orders  store.Collection
	Items   store.Collection
	Vendors store.Collection
}

// NewOrderController creates an OrderController over the order, inventory
// and vendor collections.
func NewOrderController(s store.Store) *OrderController {
	return &OrderController{
		Orders:  s.Collection("orders"),
		Items:   s.Collection("inventory"),
		Vendors: s.Collection("vendor"),
	}
}

// newOrderID generates the short vendor-facing order reference.
func newOrderID() string {
	return strings.ToUpper(uuid.NewString()[:8])
}

// PlaceOrder validates the vendor and every requested line in input order,
// snapshots line details at current prices, persists the order and then
// decrements stock per line. Validation short-circuits on the first failing
// line, before anything is written. The insert and the decrements are
// separate writes with no transaction around them.
func (oc *OrderController) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	var req models.OrderCreate
	if !decodeBody(w, r, &req) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	vendorID, err := primitive.ObjectIDFromHex(req.VendorID)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid vendor ID")
		return
	}
	var vendor models.Vendor
	err = oc.Vendors.FindOne(ctx, bson.M{"_id": vendorID}, &vendor)
	if errors.Is(err, store.ErrNotFound) {
		respondError(w, http.StatusNotFound, "Vendor not found")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Error placing order: %v", err)
		return
	}

	var totalAmount float64
	orderItems := make([]models.OrderItem, 0, len(req.Items))
	for _, line := range req.Items {
		itemID, err := primitive.ObjectIDFromHex(line.ItemID)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid item ID: %s", line.ItemID)
			return
		}
		var item models.InventoryItem
		err = oc.Items.FindOne(ctx, bson.M{"_id": itemID}, &item)
		if errors.Is(err, store.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Item not found: %s", line.ItemID)
			return
		}
		if err != nil {
			respondError(w, http.StatusInternalServerError, "Error placing order: %v", err)
			return
		}
		item.ApplyDefaults()

		if item.Stock < line.Quantity {
			respondError(w, http.StatusBadRequest,
				"Insufficient stock for %s. Available: %d, Requested: %d",
				item.Name, item.Stock, line.Quantity)
			return
		}
		if line.Quantity < item.MinOrderQuantity {
			respondError(w, http.StatusBadRequest,
				"Minimum order quantity for %s is %d", item.Name, item.MinOrderQuantity)
			return
		}

		lineTotal := item.Price * float64(line.Quantity)
		totalAmount += lineTotal
		orderItems = append(orderItems, models.OrderItem{
			ItemID:   line.ItemID,
			Name:     item.Name,
			Price:    item.Price,
			Quantity: line.Quantity,
			Unit:     item.Unit,
			Total:    lineTotal,
			Supplier: item.Supplier,
		})
	}

	estimatedDelivery := req.EstimatedDelivery
	if estimatedDelivery == "" {
		estimatedDelivery = models.DefaultDeliveryTime
	}
	order := models.Order{
		OrderID:           newOrderID(),
		VendorID:          req.VendorID,
		VendorName:        vendor.FullName,
		VendorPhone:       vendor.Phone,
		Items:             orderItems,
		TotalAmount:       totalAmount,
		Status:            models.OrderStatusPending,
		DeliveryAddress:   req.DeliveryAddress,
		Notes:             req.Notes,
		CreatedAt:         time.Now().UTC(),
		EstimatedDelivery: estimatedDelivery,
	}
	if _, err := oc.Orders.InsertOne(ctx, order); err != nil {
		respondError(w, http.StatusInternalServerError, "Error placing order: %v", err)
		return
	}

	for _, line := range req.Items {
		itemID, _ := primitive.ObjectIDFromHex(line.ItemID)
		_, err := oc.Items.UpdateOne(ctx,
			bson.M{"_id": itemID},
			bson.M{"$inc": bson.M{"stock": -line.Quantity}})
		if err != nil {
			respondError(w, http.StatusInternalServerError, "Error placing order: %v", err)
			return
		}
	}

	respondJSON(w, http.StatusOK, models.OrderResponse{
		OrderID:           order.OrderID,
		VendorID:          order.VendorID,
		TotalAmount:       order.TotalAmount,
		Status:            order.Status,
		Message:           "Order placed successfully",
		EstimatedDelivery: order.EstimatedDelivery,
	})
}

// GetVendorOrders lists a vendor's orders, newest first, optionally filtered
// by status.
func (oc *OrderController) GetVendorOrders(w http.ResponseWriter, r *http.Request) {
	vendorID := mux.Vars(r)["vendorId"]
	if _, err := primitive.ObjectIDFromHex(vendorID); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid vendor ID")
		return
	}

	query := bson.M{"vendor_id": vendorID}
	if status := r.URL.Query().Get("status"); status != "" {
		query["status"] = status
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var orders []models.Order
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if err := oc.Orders.Find(ctx, query, &orders, opts); err != nil {
		respondError(w, http.StatusInternalServerError, "Error fetching orders: %v", err)
		return
	}
	if orders == nil {
		orders = []models.Order{}
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"orders": orders})
}

// GetOrder looks up an order by its short order id.
func (oc *OrderController) GetOrder(w http.ResponseWriter, r *http.Request) {
	orderID := mux.Vars(r)["orderId"]

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var order models.Order
	err := oc.Orders.FindOne(ctx, bson.M{"order_id": orderID}, &order)
	if errors.Is(err, store.ErrNotFound) {
		respondError(w, http.StatusNotFound, "Order not found")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Error fetching order details: %v", err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"order": order})
}

// UpdateStatus transitions an order to a new status.
func (oc *OrderController) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	orderID := mux.Vars(r)["orderId"]
	var req models.OrderStatusUpdate
	if !decodeBody(w, r, &req) {
		return
	}
	if !models.ValidOrderStatus(req.Status) {
		respondError(w, http.StatusBadRequest, "Invalid status. Must be one of: %s",
			strings.Join(models.OrderStatuses, ", "))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	matched, err := oc.Orders.UpdateOne(ctx,
		bson.M{"order_id": orderID},
		bson.M{"$set": bson.M{"status": req.Status, "updated_at": time.Now().UTC()}})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Error updating order status: %v", err)
		return
	}
	if matched == 0 {
		respondError(w, http.StatusNotFound, "Order not found")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Order status updated to %s", req.Status),
	})
}
