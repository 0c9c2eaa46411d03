package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ScanResult is the contract of the bill-scan endpoint. Every field may be
// missing or malformed in the response; NormalizeScan fills the gaps so the
// bill-entry flow never fails on a bad scan.
type ScanResult struct {
	VendorName  string         `json:"vendorName"`
	BillDate    string         `json:"billDate"` // YYYY-MM-DD
	TotalAmount float64        `json:"totalAmount"`
	LineItems   []ScanLineItem `json:"lineItems"`
}

type ScanLineItem struct {
	ItemName    string  `json:"itemName"`
	Quantity    float64 `json:"quantity"`
	CostPerUnit float64 `json:"costPerUnit"`
}

// ScanClient calls the external bill-scan service with a base64 data-URI
// image and decodes its structured response.
type ScanClient struct {
	URL        string
	APIKey     string
	HTTPClient *http.Client
}

func NewScanClient(url, apiKey string) *ScanClient {
	return &ScanClient{
		URL:        url,
		APIKey:     apiKey,
		HTTPClient: &http.Client{Timeout: 60 * time.Second},
	}
}

func (s *ScanClient) ScanBill(ctx context.Context, imageDataURI string) (*ScanResult, error) {
	payload, _ := json.Marshal(map[string]string{"image": imageDataURI})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.URL, bytes.NewBuffer(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if s.APIKey != "" {
		req.Header.Set("X-API-Key", s.APIKey)
	}

	resp, err := s.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("scan request failed: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("scan service returned %d: %s", resp.StatusCode, body)
	}

	var result ScanResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("scan response decode: %w", err)
	}
	return &result, nil
}

// NormalizeScan applies the fallbacks the form relies on: an unparsable or
// absent date becomes today, and a bill with no recognized line items gets a
// single synthetic line built from the total.
func NormalizeScan(result *ScanResult, now time.Time) *ScanResult {
	if result == nil {
		result = &ScanResult{}
	}
	if _, err := time.Parse("2006-01-02", result.BillDate); err != nil {
		result.BillDate = now.Format("2006-01-02")
	}
	if len(result.LineItems) == 0 {
		name := "Scanned items"
		if result.VendorName != "" {
			name = result.VendorName + " items"
		}
		result.LineItems = []ScanLineItem{{
			ItemName:    name,
			Quantity:    1,
			CostPerUnit: result.TotalAmount,
		}}
	}
	return result
}
