package controllers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/rasoisetu/backend/models"
	"github.com/rasoisetu/backend/store"
	"github.com/rasoisetu/backend/utils"
)

// SellerController handles seller applications, the approval workflow and
// admin listings.
type SellerController struct {
	Sellers store.Collection
	Email   *utils.EmailService
}

// NewSellerController creates a SellerController backed by the seller
// collection.
func NewSellerController(s store.Store, email *utils.EmailService) *SellerController {
	return &SellerController{Sellers: s.Collection("seller"), Email: email}
}

// Register files a new seller application. The phone number is the
// uniqueness key; status starts as pending.
func (sc *SellerController) Register(w http.ResponseWriter, r *http.Request) {
	var req models.SellerCreate
	if !decodeBody(w, r, &req) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	count, err := sc.Sellers.CountDocuments(ctx, bson.M{"phone": req.Phone})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Database error: %v", err)
		return
	}
	if count > 0 {
		respondError(w, http.StatusBadRequest, "Seller already exists")
		return
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Error hashing password")
		return
	}

	products := req.Products
	if products == nil {
		products = []string{}
	}
	seller := models.Seller{
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Password:  hashed,
		Products:  products,
		Documents: models.PlaceholderDocuments(),
		Status:    models.SellerStatusPending,
		Rating:    0,
	}
	insertedID, err := sc.Sellers.InsertOne(ctx, seller)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Error creating seller: %v", err)
		return
	}
	id, _ := insertedID.(primitive.ObjectID)

	respondJSON(w, http.StatusOK, map[string]string{
		"message":   "Seller registered successfully",
		"seller_id": id.Hex(),
	})
}

// Login authenticates a seller by email and password. Only approved sellers
// may log in; the response carries a reduced identity projection, no token.
func (sc *SellerController) Login(w http.ResponseWriter, r *http.Request) {
	var req models.SellerLogin
	if !decodeBody(w, r, &req) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var seller models.Seller
	err := sc.Sellers.FindOne(ctx, bson.M{"email": req.Email}, &seller)
	if errors.Is(err, store.ErrNotFound) {
		respondError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Database error: %v", err)
		return
	}
	if !utils.CheckPassword(seller.Password, req.Password) {
		respondError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	if seller.Status != models.SellerStatusApproved {
		respondError(w, http.StatusForbidden, "Account not approved yet")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Login successful",
		"seller": models.SellerIdentity{
			ID:    seller.ID.Hex(),
			Name:  seller.Name,
			Email: seller.Email,
			Phone: seller.Phone,
		},
	})
}

// findByEmail looks up a seller by email, case-insensitively.
func (sc *SellerController) findByEmail(ctx context.Context, email string) (*models.Seller, error) {
	filter := bson.M{"email": bson.M{
		"$regex":   "^" + regexp.QuoteMeta(email) + "$",
		"$options": "i",
	}}
	var seller models.Seller
	if err := sc.Sellers.FindOne(ctx, filter, &seller); err != nil {
		return nil, err
	}
	return &seller, nil
}

// CheckStatus looks up an application by email. An unknown email is not an
// error here; it answers 200 with success=false so the status page can show
// a friendly message.
func (sc *SellerController) CheckStatus(w http.ResponseWriter, r *http.Request) {
	var req models.StatusCheckRequest
	if !decodeBody(w, r, &req) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	seller, err := sc.findByEmail(ctx, req.Email)
	if errors.Is(err, store.ErrNotFound) {
		respondJSON(w, http.StatusOK, map[string]interface{}{
			"success": false,
			"message": fmt.Sprintf("No application found with email: %s", req.Email),
			"data":    nil,
		})
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Database error: %v", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": models.StatusMessage(seller.Status),
		"data":    seller.Profile(),
	})
}

// GetStatusByEmail is the GET variant of the status lookup; unlike
// CheckStatus an unknown email answers 404.
func (sc *SellerController) GetStatusByEmail(w http.ResponseWriter, r *http.Request) {
	email := mux.Vars(r)["email"]
	if !strings.Contains(email, "@") || !strings.Contains(email, ".") {
		respondError(w, http.StatusBadRequest, "Invalid email format")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	seller, err := sc.findByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		respondError(w, http.StatusNotFound, "No application found with email: %s", email)
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Database error: %v", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Seller status retrieved successfully",
		"data":    seller.Profile(),
	})
}

func (sc *SellerController) listByFilter(ctx context.Context, filter bson.M, withDocuments bool) ([]models.SellerProfile, error) {
	var sellers []models.Seller
	if err := sc.Sellers.Find(ctx, filter, &sellers); err != nil {
		return nil, err
	}
	profiles := make([]models.SellerProfile, 0, len(sellers))
	for i := range sellers {
		if withDocuments {
			profiles = append(profiles, sellers[i].Details())
		} else {
			profiles = append(profiles, sellers[i].Profile())
		}
	}
	return profiles, nil
}

// GetAll lists every seller for the admin panel, documents included.
func (sc *SellerController) GetAll(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	profiles, err := sc.listByFilter(ctx, bson.M{}, true)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Database error: %v", err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": fmt.Sprintf("Retrieved %d sellers", len(profiles)),
		"sellers": profiles,
		"count":   len(profiles),
	})
}

// GetApproved lists approved sellers.
func (sc *SellerController) GetApproved(w http.ResponseWriter, r *http.Request) {
	sc.listByStatus(w, r, models.SellerStatusApproved, "Retrieved %d approved sellers")
}

// GetRejected lists rejected applications.
func (sc *SellerController) GetRejected(w http.ResponseWriter, r *http.Request) {
	sc.listByStatus(w, r, models.SellerStatusRejected, "Retrieved %d rejected sellers")
}

func (sc *SellerController) listByStatus(w http.ResponseWriter, r *http.Request, status, messageFormat string) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	profiles, err := sc.listByFilter(ctx, bson.M{"status": status}, false)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Database error: %v", err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": fmt.Sprintf(messageFormat, len(profiles)),
		"data":    profiles,
		"count":   len(profiles),
	})
}

// GetPending lists pending applications. The envelope carries no message,
// matching the documented contract for this endpoint.
func (sc *SellerController) GetPending(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	profiles, err := sc.listByFilter(ctx, bson.M{"status": models.SellerStatusPending}, false)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Database error: %v", err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    profiles,
		"count":   len(profiles),
	})
}

// GetStats reports totals and the approval rate for the admin dashboard.
// The rate is approved/(approved+rejected) as a percentage with two
// decimals, 0 when no application has been decided.
func (sc *SellerController) GetStats(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	total, err := sc.Sellers.CountDocuments(ctx, bson.M{})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Database error: %v", err)
		return
	}
	counts := make(map[string]int64, 3)
	for _, status := range []string{models.SellerStatusPending, models.SellerStatusApproved, models.SellerStatusRejected} {
		n, err := sc.Sellers.CountDocuments(ctx, bson.M{"status": status})
		if err != nil {
			respondError(w, http.StatusInternalServerError, "Database error: %v", err)
			return
		}
		counts[status] = n
	}

	approved := counts[models.SellerStatusApproved]
	rejected := counts[models.SellerStatusRejected]
	approvalRate := 0.0
	if approved+rejected > 0 {
		approvalRate = math.Round(float64(approved)/float64(approved+rejected)*100*100) / 100
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Seller statistics retrieved successfully",
		"data": map[string]interface{}{
			"total_sellers":         total,
			"pending_applications":  counts[models.SellerStatusPending],
			"approved_sellers":      approved,
			"rejected_applications": rejected,
			"approval_rate":         approvalRate,
			"status_breakdown": map[string]int64{
				"pending":  counts[models.SellerStatusPending],
				"approved": approved,
				"rejected": rejected,
			},
		},
	})
}

// applyStatusUpdate is the single status-mutation operation behind all three
// status-update routes. It returns the refreshed seller, or a non-zero HTTP
// status with a message on failure.
func (sc *SellerController) applyStatusUpdate(ctx context.Context, idHex, status string) (*models.Seller, int, string) {
	if !models.ValidSellerStatus(status) {
		return nil, http.StatusBadRequest, "Invalid status. Must be one of: pending, approved, rejected"
	}
	id, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		return nil, http.StatusBadRequest, "Invalid seller ID format"
	}

	update := bson.M{"$set": bson.M{
		"status":     status,
		"updated_at": time.Now().UTC(),
	}}
	matched, err := sc.Sellers.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return nil, http.StatusInternalServerError, fmt.Sprintf("Database error: %v", err)
	}
	if matched == 0 {
		return nil, http.StatusNotFound, "Seller not found"
	}

	var seller models.Seller
	if err := sc.Sellers.FindOne(ctx, bson.M{"_id": id}, &seller); err != nil {
		return nil, http.StatusInternalServerError, fmt.Sprintf("Database error: %v", err)
	}

	if status == models.SellerStatusApproved || status == models.SellerStatusRejected {
		go func(email, name, status string) {
			if err := sc.Email.SendStatusDecisionEmail(email, name, status); err != nil {
				slog.Error("failed to send status decision email", "email", email, "error", err)
			}
		}(seller.Email, seller.Name, status)
	}
	return &seller, 0, ""
}

// UpdateStatus is the primary admin decision endpoint.
func (sc *SellerController) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req models.StatusUpdateRequest
	if !decodeBody(w, r, &req) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	seller, errStatus, errMsg := sc.applyStatusUpdate(ctx, mux.Vars(r)["id"], req.Status)
	if errStatus != 0 {
		respondError(w, errStatus, "%s", errMsg)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": fmt.Sprintf("Seller status updated to %s successfully", req.Status),
		"data": map[string]string{
			"id":     seller.ID.Hex(),
			"name":   seller.Name,
			"email":  seller.Email,
			"status": seller.Status,
		},
	})
}

// UpdateStatusRoute mirrors UpdateStatus under the legacy /api path kept for
// the deployed frontend.
func (sc *SellerController) UpdateStatusRoute(w http.ResponseWriter, r *http.Request) {
	var req models.StatusUpdateRequest
	if !decodeBody(w, r, &req) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	seller, errStatus, errMsg := sc.applyStatusUpdate(ctx, mux.Vars(r)["id"], req.Status)
	if errStatus != 0 {
		respondError(w, errStatus, "%s", errMsg)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": fmt.Sprintf("Seller status updated to %s", req.Status),
		"data": map[string]string{
			"id":     seller.ID.Hex(),
			"name":   seller.Name,
			"email":  seller.Email,
			"status": seller.Status,
		},
	})
}

// UpdateStatusAlt is the second legacy route; same operation, ack-style
// response.
func (sc *SellerController) UpdateStatusAlt(w http.ResponseWriter, r *http.Request) {
	var req models.StatusUpdateRequest
	if !decodeBody(w, r, &req) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	idHex := mux.Vars(r)["id"]
	_, errStatus, errMsg := sc.applyStatusUpdate(ctx, idHex, req.Status)
	if errStatus != 0 {
		respondError(w, errStatus, "%s", errMsg)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":    true,
		"message":    fmt.Sprintf("Seller status updated to %s", req.Status),
		"seller_id":  idHex,
		"new_status": req.Status,
	})
}

// GetDetails returns the full password-free projection, documents included.
func (sc *SellerController) GetDetails(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid seller ID format")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var seller models.Seller
	err = sc.Sellers.FindOne(ctx, bson.M{"_id": id}, &seller)
	if errors.Is(err, store.ErrNotFound) {
		respondError(w, http.StatusNotFound, "Seller not found")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Database error: %v", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Seller details retrieved successfully",
		"data":    seller.Details(),
	})
}
