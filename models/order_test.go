package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidStatus(t *testing.T) {
	for _, s := range []string{
		StatusAwaitingPricing, StatusPriced, StatusPending,
		StatusAccepted, StatusInTransit, StatusDelivered,
	} {
		assert.True(t, ValidStatus(s), s)
	}
	assert.False(t, ValidStatus("Shipped"))
	assert.False(t, ValidStatus(""))
	assert.False(t, ValidStatus("delivered")) // case matters
}

func TestValidPaymentStatus(t *testing.T) {
	for _, s := range []string{PaymentUnpaid, PaymentInvoiced, PaymentPaid, PaymentOverdue} {
		assert.True(t, ValidPaymentStatus(s), s)
	}
	assert.False(t, ValidPaymentStatus("Partial"))
	assert.False(t, ValidPaymentStatus(""))
}

func TestCheckTotals(t *testing.T) {
	ok := Order{OrderID: "o1", InvoiceType: InvoiceVAT, SubTotal: 100, VATAmount: 15, TotalAmount: 115}
	require.NoError(t, ok.CheckTotals())

	normal := Order{OrderID: "o2", InvoiceType: InvoiceNormal, SubTotal: 100, TotalAmount: 100}
	require.NoError(t, normal.CheckTotals())

	vatOnNormal := Order{OrderID: "o3", InvoiceType: InvoiceNormal, SubTotal: 100, VATAmount: 15, TotalAmount: 115}
	err := vatOnNormal.CheckTotals()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "non-VAT invoice carries VAT")

	mismatch := Order{OrderID: "o4", InvoiceType: InvoiceVAT, SubTotal: 100, VATAmount: 15, TotalAmount: 110}
	require.Error(t, mismatch.CheckTotals())
}
