package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Vendor is a street-food vendor account. Vendors buy ingredients from the
// shared inventory; the phone number is the business key checked at
// registration.
type Vendor struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	FullName string             `bson:"full_name" json:"full_name"`
	Phone    string             `bson:"phone" json:"phone"`
	Password string             `bson:"password" json:"-"`
}

// VendorCreate is the registration request body.
type VendorCreate struct {
	FullName string `json:"full_name" validate:"required"`
	Phone    string `json:"phone" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// VendorLogin is the login request body.
type VendorLogin struct {
	Phone    string `json:"phone" validate:"required"`
	Password string `json:"password" validate:"required"`
}
