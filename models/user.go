package models

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role is the closed set of account roles. Handlers go through ParseRole
// instead of comparing raw strings.
type Role string

const (
	RoleVendor     Role = "vendor"
	RoleClient     Role = "client"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "super-admin"
)

func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleVendor, RoleClient, RoleAdmin, RoleSuperAdmin:
		return Role(s), nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

const (
	AccountActive = "active"
	AccountPaused = "paused"
)

type User struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name          string             `bson:"name" json:"name"`
	BusinessName  string             `bson:"business_name,omitempty" json:"business_name,omitempty"`
	Phone         string             `bson:"phone" json:"phone"`
	Email         string             `bson:"email" json:"email"`
	Address       string             `bson:"address,omitempty" json:"address,omitempty"`
	TaxID         string             `bson:"taxid,omitempty" json:"taxid,omitempty"`
	Role          Role               `bson:"role" json:"role"`
	Password      string             `bson:"password,omitempty" json:"-"`
	Status        string             `bson:"status" json:"status"` // "active" or "paused"
	StatusRemark  string             `bson:"statusremark,omitempty" json:"statusremark,omitempty"`
	InvoicePrefix string             `bson:"invoiceprefix,omitempty" json:"invoiceprefix,omitempty"` // default "INV-"
	VATRegistered bool               `bson:"vatregistered" json:"vatregistered"`
	LogoURL       string             `bson:"logourl,omitempty" json:"logourl,omitempty"`
	InvoiceFooter string             `bson:"invoicefooter,omitempty" json:"invoicefooter,omitempty"`
	CreatedAt     time.Time          `bson:"created_at,omitempty" json:"created_at,omitempty"`
	UpdatedAt     time.Time          `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
}

// VendorEntry is the public directory projection of a vendor account.
type VendorEntry struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	AccountID    string             `bson:"accountid" json:"accountid"`
	BusinessName string             `bson:"business_name" json:"business_name"`
	Phone        string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Address      string             `bson:"address,omitempty" json:"address,omitempty"`
}

// SignupToken gates vendor registration. Consumed on first use.
type SignupToken struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Token     string             `bson:"token" json:"token"`
	Used      bool               `bson:"used" json:"used"`
	UsedBy    string             `bson:"usedby,omitempty" json:"usedby,omitempty"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	ExpiresAt time.Time          `bson:"expires_at,omitempty" json:"expires_at,omitempty"`
}
