package services

import (
	"errors"
	"time"

	"backend/models"
)

var (
	ErrEmptyCart = errors.New("cart is empty")
	ErrNoVendor  = errors.New("no vendor selected")
)

// Cart builds a pending order from one vendor's catalog. Quantities are
// clamped at zero: decrementing a line to zero removes it instead of keeping
// a zero-quantity row. Special items are free-text lines with quantity fixed
// at 1 and no unit price.
type Cart struct {
	VendorID string
	lines    []models.LineItem
	special  []models.LineItem
}

func NewCart(vendorID string) *Cart {
	return &Cart{VendorID: vendorID}
}

func (c *Cart) find(productID string) int {
	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			return i
		}
	}
	return -1
}

func (c *Cart) Increment(p models.Product) {
	if i := c.find(p.ID.Hex()); i >= 0 {
		c.lines[i].Quantity++
		return
	}
	c.lines = append(c.lines, models.LineItem{
		ProductID: p.ID.Hex(),
		Name:      p.Name,
		Unit:      p.Unit,
		Quantity:  1,
	})
}

func (c *Cart) Decrement(productID string) {
	i := c.find(productID)
	if i < 0 {
		return
	}
	c.lines[i].Quantity--
	if c.lines[i].Quantity <= 0 {
		c.lines = append(c.lines[:i], c.lines[i+1:]...)
	}
}

// SetQuantity clamps at zero: a non-positive quantity removes the line.
func (c *Cart) SetQuantity(p models.Product, qty float64) {
	i := c.find(p.ID.Hex())
	if qty <= 0 {
		if i >= 0 {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
		}
		return
	}
	if i >= 0 {
		c.lines[i].Quantity = qty
		return
	}
	c.lines = append(c.lines, models.LineItem{
		ProductID: p.ID.Hex(),
		Name:      p.Name,
		Unit:      p.Unit,
		Quantity:  qty,
	})
}

func (c *Cart) Quantity(productID string) float64 {
	if i := c.find(productID); i >= 0 {
		return c.lines[i].Quantity
	}
	return 0
}

func (c *Cart) AddSpecialItem(name string) {
	if name == "" {
		return
	}
	c.special = append(c.special, models.LineItem{Name: name, Unit: "PCS", Quantity: 1})
}

func (c *Cart) Items() []models.LineItem {
	items := make([]models.LineItem, 0, len(c.lines)+len(c.special))
	items = append(items, c.lines...)
	items = append(items, c.special...)
	return items
}

// Checkout produces the unpriced order. It refuses before any write is
// attempted when the cart is empty or no vendor is selected.
func (c *Cart) Checkout(clientID, clientName string, now time.Time) (*models.Order, error) {
	if c.VendorID == "" {
		return nil, ErrNoVendor
	}
	items := c.Items()
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}
	return &models.Order{
		VendorID:      c.VendorID,
		ClientID:      clientID,
		ClientName:    clientName,
		Items:         items,
		Status:        models.StatusAwaitingPricing,
		InvoiceType:   models.InvoiceNormal,
		OrderDate:     now,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}
