package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Product struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	VendorID        string             `bson:"vendorid" json:"vendorid"`
	SKU             string             `bson:"sku" json:"sku"`
	Name            string             `bson:"name" json:"name" binding:"required"`
	Unit            string             `bson:"unit" json:"unit"`
	Price           float64            `bson:"price" json:"price"` // selling price
	CostPrice       float64            `bson:"costprice" json:"costprice"`
	Barcode         string             `bson:"barcode,omitempty" json:"barcode,omitempty"`
	ProductPhotoURL string             `bson:"productphotourl,omitempty" json:"productphotourl,omitempty"`
	CreatedAt       time.Time          `bson:"created_at,omitempty" json:"created_at,omitempty"`
	UpdatedAt       time.Time          `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
}

type UpdateProduct struct {
	SKU       string  `json:"sku,omitempty"`
	Name      string  `json:"name,omitempty"`
	Unit      string  `json:"unit,omitempty"`
	Price     float64 `json:"price,omitempty"`
	CostPrice float64 `json:"costprice,omitempty"`
	Barcode   string  `json:"barcode,omitempty"`
}
