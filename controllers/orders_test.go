package controllers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

// Validation failures must reject the request before any database access, so
// these run against a controller with no database at all.

func postJSON(t *testing.T, handler gin.HandlerFunc, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/orders/:id/price", handler)
	router.POST("/orders", handler)
	router.PATCH("/orders/:id/status", handler)
	router.PATCH("/orders/:id/payment", handler)

	method := http.MethodPost
	if strings.Contains(path, "/status") || strings.Contains(path, "/payment") {
		method = http.MethodPatch
	}
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestPriceOrderRejectsInvalidInvoiceType(t *testing.T) {
	oc := &OrderController{}
	w := postJSON(t, oc.PriceOrder, "/orders/abc/price",
		`{"prices":[10,20],"invoicetype":"Proforma"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid invoice type")
}

func TestPriceOrderRejectsMissingBody(t *testing.T) {
	oc := &OrderController{}
	w := postJSON(t, oc.PriceOrder, "/orders/abc/price", `{}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateManualInvoiceRejectsEmptyItems(t *testing.T) {
	oc := &OrderController{}
	w := postJSON(t, oc.CreateManualInvoice, "/orders",
		`{"clientname":"Walk-in","items":[]}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateManualInvoiceRejectsInvalidInvoiceType(t *testing.T) {
	oc := &OrderController{}
	w := postJSON(t, oc.CreateManualInvoice, "/orders",
		`{"clientname":"Walk-in","invoicetype":"Quote","items":[{"name":"Sugar","quantity":2}]}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid invoice type")
}

func TestUpdateOrderStatusRejectsUnknownStatus(t *testing.T) {
	oc := &OrderController{}
	w := postJSON(t, oc.UpdateOrderStatus, "/orders/abc/status",
		`{"status":"Shipped"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid status")
}

func TestUpdateOrderPaymentRejectsUnknownStatus(t *testing.T) {
	oc := &OrderController{}
	w := postJSON(t, oc.UpdateOrderPayment, "/orders/abc/payment",
		`{"paymentstatus":"Partial"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid payment status")
}
