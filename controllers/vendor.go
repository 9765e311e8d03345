package controllers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/rasoisetu/backend/models"
	"github.com/rasoisetu/backend/store"
	"github.com/rasoisetu/backend/utils"
)

// VendorController handles vendor registration and login.
type VendorController struct {
	Vendors store.Collection
}

// NewVendorController creates a VendorController backed by the vendor
// collection.
func NewVendorController(s store.Store) *VendorController {
	return &VendorController{Vendors: s.Collection("vendor")}
}

// Register creates a vendor account. The phone number is the uniqueness key.
func (vc *VendorController) Register(w http.ResponseWriter, r *http.Request) {
	var req models.VendorCreate
	if !decodeBody(w, r, &req) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	count, err := vc.Vendors.CountDocuments(ctx, bson.M{"phone": req.Phone})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Database error: %v", err)
		return
	}
	if count > 0 {
		respondError(w, http.StatusBadRequest, "Phone number already exists")
		return
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Error hashing password")
		return
	}

	vendor := models.Vendor{
		FullName: req.FullName,
		Phone:    req.Phone,
		Password: hashed,
	}
	if _, err := vc.Vendors.InsertOne(ctx, vendor); err != nil {
		respondError(w, http.StatusInternalServerError, "Error creating vendor: %v", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"msg": "Vendor registered successfully"})
}

// Login authenticates a vendor by phone and password and returns the vendor
// id. No session token is issued; callers hold the id client-side.
func (vc *VendorController) Login(w http.ResponseWriter, r *http.Request) {
	var req models.VendorLogin
	if !decodeBody(w, r, &req) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var vendor models.Vendor
	err := vc.Vendors.FindOne(ctx, bson.M{"phone": req.Phone}, &vendor)
	if errors.Is(err, store.ErrNotFound) {
		respondError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Database error: %v", err)
		return
	}
	if !utils.CheckPassword(vendor.Password, req.Password) {
		respondError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"msg":       "Login successful",
		"vendor_id": vendor.ID.Hex(),
	})
}
