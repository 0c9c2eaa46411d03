package services

import (
	"testing"
	"time"

	"backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func testProduct(name string) models.Product {
	return models.Product{
		ID:   primitive.NewObjectID(),
		Name: name,
		Unit: "PCS",
	}
}

func TestCartIncrementDecrement(t *testing.T) {
	widget := testProduct("Widget")
	cart := NewCart("vendor-1")

	cart.Increment(widget)
	cart.Increment(widget)
	assert.Equal(t, 2.0, cart.Quantity(widget.ID.Hex()))

	cart.Decrement(widget.ID.Hex())
	assert.Equal(t, 1.0, cart.Quantity(widget.ID.Hex()))
}

func TestCartDecrementToZeroRemovesLine(t *testing.T) {
	widget := testProduct("Widget")
	cart := NewCart("vendor-1")

	cart.Increment(widget)
	cart.Decrement(widget.ID.Hex())
	assert.Empty(t, cart.Items())

	// decrementing an absent line stays at zero
	cart.Decrement(widget.ID.Hex())
	assert.Equal(t, 0.0, cart.Quantity(widget.ID.Hex()))
	assert.Empty(t, cart.Items())
}

func TestCartSetQuantityClamp(t *testing.T) {
	widget := testProduct("Widget")
	cart := NewCart("vendor-1")

	cart.SetQuantity(widget, 5)
	assert.Equal(t, 5.0, cart.Quantity(widget.ID.Hex()))

	cart.SetQuantity(widget, 0)
	assert.Empty(t, cart.Items())

	cart.SetQuantity(widget, -3)
	assert.Empty(t, cart.Items())
}

func TestCartSpecialItems(t *testing.T) {
	cart := NewCart("vendor-1")
	cart.AddSpecialItem("Gift wrapping")
	cart.AddSpecialItem("")

	items := cart.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "Gift wrapping", items[0].Name)
	assert.Equal(t, 1.0, items[0].Quantity)
	assert.Equal(t, 0.0, items[0].UnitPrice)
	assert.Empty(t, items[0].ProductID)
}

func TestCheckoutCreatesUnpricedOrder(t *testing.T) {
	widget := testProduct("Widget")
	cart := NewCart("vendor-1")
	cart.SetQuantity(widget, 3)
	cart.AddSpecialItem("Delivery note")

	order, err := cart.Checkout("client-1", "Acme Ltd", time.Now())
	require.NoError(t, err)

	assert.Equal(t, models.StatusAwaitingPricing, order.Status)
	assert.Empty(t, order.InvoiceNo)
	require.Len(t, order.Items, 2)
	for _, item := range order.Items {
		assert.Equal(t, 0.0, item.UnitPrice)
	}
}

func TestCheckoutRejectsEmptyCart(t *testing.T) {
	cart := NewCart("vendor-1")

	_, err := cart.Checkout("client-1", "Acme Ltd", time.Now())
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestCheckoutRejectsMissingVendor(t *testing.T) {
	cart := NewCart("")
	cart.AddSpecialItem("Anything")

	_, err := cart.Checkout("client-1", "Acme Ltd", time.Now())
	assert.ErrorIs(t, err, ErrNoVendor)
}
