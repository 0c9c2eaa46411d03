package services

import (
	"fmt"
	"strings"
	"unicode"

	"backend/models"
)

// DefaultMarkup estimates a selling price for products first seen on a
// purchase bill. It is a one-time estimate, never recalculated after the
// vendor edits the product.
const DefaultMarkup = 1.3

const DefaultUnit = "PCS"

// CatalogAction is one planned catalog mutation derived from a bill line.
type CatalogAction struct {
	// MatchedID is set when an existing product's cost price should be
	// updated (last write wins, no price history).
	MatchedID string
	CostPrice float64

	// NewProduct is set when no case-insensitive name match exists.
	NewProduct *models.Product
}

// SynthesizeSKU builds "SKU-<first 3 letters upper-cased>-<sequence>".
func SynthesizeSKU(itemName string, seq int) string {
	var letters []rune
	for _, r := range itemName {
		if unicode.IsLetter(r) {
			letters = append(letters, unicode.ToUpper(r))
		}
		if len(letters) == 3 {
			break
		}
	}
	code := string(letters)
	if code == "" {
		code = "GEN"
	}
	return fmt.Sprintf("SKU-%s-%d", code, seq)
}

// PlanCatalogSync resolves each bill line against the vendor's catalog:
// a case-insensitive exact name match updates that product's cost price;
// anything else becomes a new product with a synthesized SKU and a markup
// selling price. The caller applies the plan; it is independent of, and not
// atomic with, the bill write itself.
func PlanCatalogSync(vendorID string, items []models.BillItem, catalog []models.Product) []CatalogAction {
	byName := make(map[string]*models.Product, len(catalog))
	for i := range catalog {
		byName[strings.ToLower(catalog[i].Name)] = &catalog[i]
	}

	seq := len(catalog) + 1
	var actions []CatalogAction
	for _, item := range items {
		if item.ItemName == "" {
			continue
		}
		if existing, ok := byName[strings.ToLower(item.ItemName)]; ok {
			if existing.ID.IsZero() {
				// product planned earlier on this same bill; fold the
				// cost update into the pending insert
				existing.CostPrice = item.CostPerUnit
				continue
			}
			actions = append(actions, CatalogAction{
				MatchedID: existing.ID.Hex(),
				CostPrice: item.CostPerUnit,
			})
			continue
		}
		unit := item.Unit
		if unit == "" {
			unit = DefaultUnit
		}
		p := &models.Product{
			VendorID:  vendorID,
			SKU:       SynthesizeSKU(item.ItemName, seq),
			Name:      item.ItemName,
			Unit:      unit,
			CostPrice: item.CostPerUnit,
			Price:     Round2(item.CostPerUnit * DefaultMarkup),
		}
		seq++
		actions = append(actions, CatalogAction{NewProduct: p})
		// later lines on the same bill with the same name match the
		// product we just planned
		byName[strings.ToLower(item.ItemName)] = p
	}
	return actions
}
