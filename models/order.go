package models

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Fulfillment statuses. No transition graph is enforced: the vendor may move
// an order to any status at any time (manual operational override).
const (
	StatusAwaitingPricing = "Awaiting Pricing"
	StatusPriced          = "Priced"
	StatusPending         = "Pending"
	StatusAccepted        = "Accepted"
	StatusInTransit       = "In Transit"
	StatusDelivered       = "Delivered"
)

// Payment statuses.
const (
	PaymentUnpaid   = "Unpaid"
	PaymentInvoiced = "Invoiced"
	PaymentPaid     = "Paid"
	PaymentOverdue  = "Overdue"
)

// Invoice types. VAT is applied only on "VAT" invoices.
const (
	InvoiceNormal = "Normal"
	InvoiceVAT    = "VAT"
)

func ValidStatus(s string) bool {
	switch s {
	case StatusAwaitingPricing, StatusPriced, StatusPending,
		StatusAccepted, StatusInTransit, StatusDelivered:
		return true
	}
	return false
}

func ValidPaymentStatus(s string) bool {
	switch s {
	case PaymentUnpaid, PaymentInvoiced, PaymentPaid, PaymentOverdue:
		return true
	}
	return false
}

// LineItem is a snapshot taken at order time, not a live catalog reference,
// so historical invoices stay stable when catalog prices change.
type LineItem struct {
	ProductID  string  `bson:"productid,omitempty" json:"productid,omitempty"` // empty for ad hoc items
	Name       string  `bson:"name" json:"name"`
	Unit       string  `bson:"unit" json:"unit"`
	Quantity   float64 `bson:"quantity" json:"quantity"`
	UnitPrice  float64 `bson:"unit_price" json:"unit_price"`
	TotalPrice float64 `bson:"total_price" json:"total_price"`
}

// Order documents are written twice: the vendor-owned authoritative copy
// (ownerid == vendorid) and, for registered clients, a mirrored copy
// (ownerid == clientid). Both share OrderID.
type Order struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	OrderID       string             `bson:"orderid" json:"id"`
	OwnerID       string             `bson:"ownerid" json:"-"`
	InvoiceNo     string             `bson:"invoiceno,omitempty" json:"invoiceno,omitempty"`
	VendorID      string             `bson:"vendorid" json:"vendorid"`
	ClientID      string             `bson:"clientid" json:"clientid"`
	ClientName    string             `bson:"clientname" json:"clientname"`
	Items         []LineItem         `bson:"items" json:"items"`
	SubTotal      float64            `bson:"subtotal" json:"subtotal"`
	VATAmount     float64            `bson:"vatamount" json:"vatamount"`
	TotalAmount   float64            `bson:"total_amount" json:"total_amount"`
	Status        string             `bson:"status" json:"status"`
	PaymentStatus string             `bson:"paymentstatus" json:"paymentstatus"`
	InvoiceType   string             `bson:"invoicetype" json:"invoicetype"`
	PaymentMethod string             `bson:"paymentmethod,omitempty" json:"paymentmethod,omitempty"`
	OrderDate     time.Time          `bson:"orderdate" json:"orderdate"`
	DeliveryDate  *time.Time         `bson:"deliverydate,omitempty" json:"deliverydate,omitempty"`
	PricedAt      *time.Time         `bson:"pricedat,omitempty" json:"pricedat,omitempty"`
	CreatedAt     time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time          `bson:"updated_at" json:"updated_at"`
}

// CheckTotals verifies the pricing invariants on a stored order.
func (o *Order) CheckTotals() error {
	if o.InvoiceType != InvoiceVAT && o.VATAmount != 0 {
		return fmt.Errorf("order %s: non-VAT invoice carries VAT %.2f", o.OrderID, o.VATAmount)
	}
	if o.TotalAmount != o.SubTotal+o.VATAmount {
		return fmt.Errorf("order %s: total %.2f != subtotal %.2f + vat %.2f",
			o.OrderID, o.TotalAmount, o.SubTotal, o.VATAmount)
	}
	return nil
}
