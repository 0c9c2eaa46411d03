package services

import (
	"encoding/csv"
	"fmt"
	"io"

	"backend/models"
)

// Report shapes are a convenience for spreadsheet import, not a stable API.
// encoding/csv handles the quoting of fields containing commas or quotes.

func money(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

func SalesReportRows(orders []models.Order) [][]string {
	rows := [][]string{{"Invoice No", "Date", "Client", "Status", "Payment", "Sub Total", "VAT", "Total"}}
	for _, o := range orders {
		rows = append(rows, []string{
			o.InvoiceNo,
			o.OrderDate.Format("2006-01-02"),
			o.ClientName,
			o.Status,
			o.PaymentStatus,
			money(o.SubTotal),
			money(o.VATAmount),
			money(o.TotalAmount),
		})
	}
	return rows
}

func PurchaseReportRows(bills []models.PurchaseBill) [][]string {
	rows := [][]string{{"Date", "Supplier", "Items", "Total"}}
	for _, b := range bills {
		rows = append(rows, []string{
			b.BillDate.Format("2006-01-02"),
			b.SupplierName,
			fmt.Sprintf("%d", len(b.Items)),
			money(b.TotalAmount),
		})
	}
	return rows
}

// ClientPnLRows aggregates each client's order book: revenue, what has been
// collected and what is still outstanding.
func ClientPnLRows(orders []models.Order) [][]string {
	type agg struct {
		name        string
		count       int
		revenue     float64
		paid        float64
		outstanding float64
	}
	byClient := map[string]*agg{}
	var keys []string
	for _, o := range orders {
		a, ok := byClient[o.ClientID]
		if !ok {
			a = &agg{name: o.ClientName}
			byClient[o.ClientID] = a
			keys = append(keys, o.ClientID)
		}
		a.count++
		a.revenue += o.TotalAmount
		if o.PaymentStatus == models.PaymentPaid {
			a.paid += o.TotalAmount
		} else {
			a.outstanding += o.TotalAmount
		}
	}

	rows := [][]string{{"Client", "Orders", "Revenue", "Paid", "Outstanding"}}
	for _, k := range keys {
		a := byClient[k]
		rows = append(rows, []string{
			a.name,
			fmt.Sprintf("%d", a.count),
			money(a.revenue),
			money(a.paid),
			money(a.outstanding),
		})
	}
	return rows
}

func WriteCSV(w io.Writer, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.WriteAll(rows); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}
