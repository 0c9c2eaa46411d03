package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Client is a vendor-scoped counterpart record. AccountID is set when the
// record corresponds to a registered user; ad hoc clients created during
// manual invoicing carry a synthetic id instead.
type Client struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	VendorID  string             `bson:"vendorid" json:"vendorid"`
	AccountID string             `bson:"accountid,omitempty" json:"accountid,omitempty"`
	Name      string             `bson:"name" json:"name" binding:"required"`
	Phone     string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Email     string             `bson:"email,omitempty" json:"email,omitempty"`
	Address   string             `bson:"address,omitempty" json:"address,omitempty"`
	TaxID     string             `bson:"taxid,omitempty" json:"taxid,omitempty"`
	CreatedAt time.Time          `bson:"created_at,omitempty" json:"created_at,omitempty"`
	UpdatedAt time.Time          `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
}
