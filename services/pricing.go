package services

import (
	"fmt"
	"math"

	"backend/models"
)

func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// PriceLines applies one unit price per existing line item. Names, units and
// quantities are read-only at pricing time; only prices are set.
func PriceLines(items []models.LineItem, prices []float64) ([]models.LineItem, error) {
	if len(prices) != len(items) {
		return nil, fmt.Errorf("got %d prices for %d line items", len(prices), len(items))
	}
	priced := make([]models.LineItem, len(items))
	for i, item := range items {
		if prices[i] < 0 {
			return nil, fmt.Errorf("negative unit price for %q", item.Name)
		}
		item.UnitPrice = prices[i]
		item.TotalPrice = Round2(item.Quantity * prices[i])
		priced[i] = item
	}
	return priced, nil
}

// Totals computes subtotal, VAT and total for a set of priced lines.
// VAT applies only on VAT-type invoices.
func Totals(items []models.LineItem, invoiceType string, vatRate float64) (subTotal, vat, total float64) {
	for _, item := range items {
		subTotal += item.Quantity * item.UnitPrice
	}
	subTotal = Round2(subTotal)
	if invoiceType == models.InvoiceVAT {
		vat = Round2(subTotal * vatRate)
	}
	total = Round2(subTotal + vat)
	return subTotal, vat, total
}
