package services

import (
	"testing"

	"backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestPlanCatalogSyncUpdatesMatch(t *testing.T) {
	existing := models.Product{
		ID:        primitive.NewObjectID(),
		Name:      "Sugar 1kg",
		CostPrice: 8,
	}
	items := []models.BillItem{{ItemName: "SUGAR 1KG", Quantity: 10, CostPerUnit: 9.5}}

	actions := PlanCatalogSync("vendor-1", items, []models.Product{existing})
	require.Len(t, actions, 1)

	// case-insensitive match updates cost, no duplicate product
	assert.Equal(t, existing.ID.Hex(), actions[0].MatchedID)
	assert.Equal(t, 9.5, actions[0].CostPrice)
	assert.Nil(t, actions[0].NewProduct)
}

func TestPlanCatalogSyncCreatesWithMarkup(t *testing.T) {
	items := []models.BillItem{{ItemName: "Flour 2kg", Quantity: 4, CostPerUnit: 10}}

	actions := PlanCatalogSync("vendor-1", items, nil)
	require.Len(t, actions, 1)
	p := actions[0].NewProduct
	require.NotNil(t, p)

	assert.Equal(t, "vendor-1", p.VendorID)
	assert.Equal(t, "Flour 2kg", p.Name)
	assert.Equal(t, 10.0, p.CostPrice)
	assert.Equal(t, 13.0, p.Price) // cost × 1.3
	assert.Equal(t, "PCS", p.Unit)
	assert.Equal(t, "SKU-FLO-1", p.SKU)
}

func TestPlanCatalogSyncKeepsProvidedUnit(t *testing.T) {
	items := []models.BillItem{{ItemName: "Oil", Unit: "LTR", CostPerUnit: 5}}

	actions := PlanCatalogSync("vendor-1", items, nil)
	require.Len(t, actions, 1)
	assert.Equal(t, "LTR", actions[0].NewProduct.Unit)
}

func TestPlanCatalogSyncSequenceContinuesFromCatalog(t *testing.T) {
	catalog := []models.Product{
		{ID: primitive.NewObjectID(), Name: "A"},
		{ID: primitive.NewObjectID(), Name: "B"},
	}
	items := []models.BillItem{
		{ItemName: "Candles", CostPerUnit: 1},
		{ItemName: "Matches", CostPerUnit: 2},
	}

	actions := PlanCatalogSync("vendor-1", items, catalog)
	require.Len(t, actions, 2)
	assert.Equal(t, "SKU-CAN-3", actions[0].NewProduct.SKU)
	assert.Equal(t, "SKU-MAT-4", actions[1].NewProduct.SKU)
}

func TestPlanCatalogSyncDuplicateLineFoldsIntoInsert(t *testing.T) {
	items := []models.BillItem{
		{ItemName: "Rice", CostPerUnit: 3},
		{ItemName: "rice", CostPerUnit: 3.5},
	}

	actions := PlanCatalogSync("vendor-1", items, nil)
	require.Len(t, actions, 1)
	assert.Equal(t, 3.5, actions[0].NewProduct.CostPrice)
}

func TestSynthesizeSKU(t *testing.T) {
	assert.Equal(t, "SKU-WID-7", SynthesizeSKU("widget", 7))
	assert.Equal(t, "SKU-AB-1", SynthesizeSKU("ab", 1))
	assert.Equal(t, "SKU-GEN-2", SynthesizeSKU("123", 2))
	// leading digits are skipped, letters are taken
	assert.Equal(t, "SKU-KGS-4", SynthesizeSKU("1kg Sugar", 4))
}
