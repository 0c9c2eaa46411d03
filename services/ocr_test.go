package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanBill(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "secret", r.Header.Get("X-API-Key"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "data:image/jpeg;base64,AAAA", body["image"])

		json.NewEncoder(w).Encode(ScanResult{
			VendorName:  "Metro Wholesale",
			BillDate:    "2026-08-30",
			TotalAmount: 120,
			LineItems:   []ScanLineItem{{ItemName: "Sugar", Quantity: 10, CostPerUnit: 12}},
		})
	}))
	defer server.Close()

	client := NewScanClient(server.URL, "secret")
	result, err := client.ScanBill(context.Background(), "data:image/jpeg;base64,AAAA")
	require.NoError(t, err)

	assert.Equal(t, "Metro Wholesale", result.VendorName)
	assert.Equal(t, "2026-08-30", result.BillDate)
	require.Len(t, result.LineItems, 1)
	assert.Equal(t, "Sugar", result.LineItems[0].ItemName)
}

func TestScanBillServiceError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model overloaded", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewScanClient(server.URL, "")
	_, err := client.ScanBill(context.Background(), "data:image/png;base64,BBBB")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}

func TestScanBillBadJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer server.Close()

	client := NewScanClient(server.URL, "")
	_, err := client.ScanBill(context.Background(), "data:image/png;base64,BBBB")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode")
}

func TestNormalizeScanFallbacks(t *testing.T) {
	now := time.Date(2026, 8, 31, 15, 0, 0, 0, time.UTC)

	result := NormalizeScan(&ScanResult{
		VendorName:  "City Traders",
		BillDate:    "31/08/2026", // wrong format
		TotalAmount: 450,
	}, now)

	assert.Equal(t, "2026-08-31", result.BillDate)
	require.Len(t, result.LineItems, 1)
	assert.Equal(t, "City Traders items", result.LineItems[0].ItemName)
	assert.Equal(t, 1.0, result.LineItems[0].Quantity)
	assert.Equal(t, 450.0, result.LineItems[0].CostPerUnit)
}

func TestNormalizeScanNilAndEmpty(t *testing.T) {
	now := time.Date(2026, 8, 31, 15, 0, 0, 0, time.UTC)

	result := NormalizeScan(nil, now)
	assert.Equal(t, "2026-08-31", result.BillDate)
	require.Len(t, result.LineItems, 1)
	assert.Equal(t, "Scanned items", result.LineItems[0].ItemName)
	assert.Zero(t, result.LineItems[0].CostPerUnit)
}

func TestNormalizeScanKeepsGoodData(t *testing.T) {
	now := time.Date(2026, 8, 31, 15, 0, 0, 0, time.UTC)

	result := NormalizeScan(&ScanResult{
		BillDate:  "2026-08-01",
		LineItems: []ScanLineItem{{ItemName: "Tea", Quantity: 2, CostPerUnit: 30}},
	}, now)

	assert.Equal(t, "2026-08-01", result.BillDate)
	require.Len(t, result.LineItems, 1)
	assert.Equal(t, "Tea", result.LineItems[0].ItemName)
}
