package services

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSalesReportRows(t *testing.T) {
	orders := []models.Order{{
		InvoiceNo:     "INV-0007",
		OrderDate:     time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC),
		ClientName:    `Sharma & Sons, "Retail"`,
		Status:        models.StatusDelivered,
		PaymentStatus: models.PaymentPaid,
		SubTotal:      100,
		VATAmount:     15,
		TotalAmount:   115,
	}}

	rows := SalesReportRows(orders)
	require.Len(t, rows, 2)
	assert.Equal(t, "Invoice No", rows[0][0])
	assert.Equal(t, []string{
		"INV-0007", "2026-08-20", `Sharma & Sons, "Retail"`,
		models.StatusDelivered, models.PaymentPaid,
		"100.00", "15.00", "115.00",
	}, rows[1])
}

func TestWriteCSVEscapesCommasAndQuotes(t *testing.T) {
	var buf bytes.Buffer
	err := WriteCSV(&buf, [][]string{
		{"Client", "Total"},
		{`Sharma & Sons, "Retail"`, "115.00"},
	})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	// the comma inside the name must not split the field
	assert.Equal(t, `"Sharma & Sons, ""Retail""",115.00`, strings.TrimRight(lines[1], "\r"))
}

func TestPurchaseReportRows(t *testing.T) {
	bills := []models.PurchaseBill{{
		BillDate:     time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		SupplierName: "Metro Wholesale",
		Items:        []models.BillItem{{ItemName: "Sugar"}, {ItemName: "Flour"}},
		TotalAmount:  250,
	}}

	rows := PurchaseReportRows(bills)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"2026-08-01", "Metro Wholesale", "2", "250.00"}, rows[1])
}

func TestClientPnLRows(t *testing.T) {
	orders := []models.Order{
		{ClientID: "c1", ClientName: "Alpha Stores", TotalAmount: 100, PaymentStatus: models.PaymentPaid},
		{ClientID: "c2", ClientName: "Beta Mart", TotalAmount: 80, PaymentStatus: models.PaymentInvoiced},
		{ClientID: "c1", ClientName: "Alpha Stores", TotalAmount: 50, PaymentStatus: models.PaymentOverdue},
	}

	rows := ClientPnLRows(orders)
	require.Len(t, rows, 3)
	// first-seen order is preserved
	assert.Equal(t, []string{"Alpha Stores", "2", "150.00", "100.00", "50.00"}, rows[1])
	assert.Equal(t, []string{"Beta Mart", "1", "80.00", "0.00", "80.00"}, rows[2])
}

func TestClientPnLRowsEmpty(t *testing.T) {
	rows := ClientPnLRows(nil)
	require.Len(t, rows, 1)
	assert.Equal(t, "Client", rows[0][0])
}
