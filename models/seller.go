package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Seller application statuses.
const (
	SellerStatusPending  = "pending"
	SellerStatusApproved = "approved"
	SellerStatusRejected = "rejected"
)

// ValidSellerStatus reports whether s is one of the three application states.
func ValidSellerStatus(s string) bool {
	return s == SellerStatusPending || s == SellerStatusApproved || s == SellerStatusRejected
}

// SellerDocuments holds the verification document references attached to an
// application. Uploads happen elsewhere; registration stores fixed
// placeholder filenames.
type SellerDocuments struct {
	Aadhar string `bson:"aadhar" json:"aadhar"`
	Pan    string `bson:"pan" json:"pan"`
	Bank   string `bson:"bank" json:"bank"`
}

// PlaceholderDocuments returns the document references attached to a new
// application.
func PlaceholderDocuments() SellerDocuments {
	return SellerDocuments{
		Aadhar: "aadhar_uploaded.pdf",
		Pan:    "pan_uploaded.pdf",
		Bank:   "bank_uploaded.pdf",
	}
}

// Seller is a supplier application and, once approved, an active supplier
// account.
type Seller struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"`
	Phone     string             `bson:"phone" json:"phone"`
	Password  string             `bson:"password" json:"-"`
	Products  []string           `bson:"products" json:"products"`
	Documents SellerDocuments    `bson:"documents" json:"documents"`
	Status    string             `bson:"status" json:"status"`
	Rating    float64            `bson:"rating" json:"rating"`
	UpdatedAt time.Time          `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
}

// SellerProfile is the password-free projection returned by lookups and
// listings. Documents are only attached where the endpoint includes them.
type SellerProfile struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	Email     string           `json:"email"`
	Phone     string           `json:"phone"`
	Products  []string         `json:"products"`
	Status    string           `json:"status"`
	Rating    float64          `json:"rating"`
	Documents *SellerDocuments `json:"documents,omitempty"`
}

// Profile projects the seller without its password.
func (s *Seller) Profile() SellerProfile {
	products := s.Products
	if products == nil {
		products = []string{}
	}
	return SellerProfile{
		ID:       s.ID.Hex(),
		Name:     s.Name,
		Email:    s.Email,
		Phone:    s.Phone,
		Products: products,
		Status:   s.Status,
		Rating:   s.Rating,
	}
}

// Details is Profile plus the documents sub-object.
func (s *Seller) Details() SellerProfile {
	p := s.Profile()
	docs := s.Documents
	p.Documents = &docs
	return p
}

// SellerIdentity is the reduced projection returned on login.
type SellerIdentity struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// SellerCreate is the registration request body.
type SellerCreate struct {
	Name     string   `json:"name" validate:"required"`
	Email    string   `json:"email" validate:"required,email"`
	Phone    string   `json:"phone" validate:"required"`
	Password string   `json:"password" validate:"required"`
	Products []string `json:"products"`
}

// SellerLogin is the login request body.
type SellerLogin struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// StatusCheckRequest asks for the application status tied to an email.
type StatusCheckRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// StatusUpdateRequest carries the new status for an admin decision.
type StatusUpdateRequest struct {
	Status string `json:"status" validate:"required"`
}

// StatusMessage maps an application status to the message shown to the
// applicant.
func StatusMessage(status string) string {
	switch status {
	case SellerStatusPending:
		return "Your application is under review. You'll receive an email within 2-3 business days."
	case SellerStatusApproved:
		return "Congratulations! Your application has been approved. You can now access your dashboard."
	case SellerStatusRejected:
		return "Your application has been rejected. Please contact support for more information."
	}
	return "Application status retrieved successfully."
}
