package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BillItem struct {
	ItemName    string  `bson:"itemname" json:"itemname" binding:"required"`
	Quantity    float64 `bson:"quantity" json:"quantity"`
	Unit        string  `bson:"unit,omitempty" json:"unit,omitempty"`
	CostPerUnit float64 `bson:"costperunit" json:"costperunit"`
	TotalCost   float64 `bson:"totalcost" json:"totalcost"`
}

// PurchaseBill records cost-side line items from a supplier. Saving one also
// upserts the vendor's catalog (see services/billsync.go); that batch is not
// atomic with the bill write.
type PurchaseBill struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	VendorID     string             `bson:"vendorid" json:"vendorid"`
	SupplierName string             `bson:"supplier_name" json:"supplier_name"`
	BillDate     time.Time          `bson:"billdate" json:"billdate"`
	Items        []BillItem         `bson:"items" json:"items"`
	TotalAmount  float64            `bson:"total_amount" json:"total_amount"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
}
