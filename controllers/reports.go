package controllers

import (
	"bytes"
	"context"
	"net/http"
	"time"

	"backend/config"
	"backend/middleware"
	"backend/models"
	"backend/services"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ReportController struct {
	DB *config.Database
}

func (rc *ReportController) serveCSV(c *gin.Context, filename string, rows [][]string) {
	var buf bytes.Buffer
	if err := services.WriteCSV(&buf, rows); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build report"})
		return
	}
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, "text/csv", buf.Bytes())
}

func (rc *ReportController) vendorOrders(ctx context.Context, vendorID string) ([]models.Order, error) {
	cursor, err := rc.DB.OrderCollection.Find(ctx,
		bson.M{"vendorid": vendorID, "ownerid": vendorID},
		options.Find().SetSort(bson.M{"orderdate": 1}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var orders []models.Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (rc *ReportController) SalesCSV(c *gin.Context) {
	vendorID := middleware.AccountID(c)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	orders, err := rc.vendorOrders(ctx, vendorID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve orders"})
		return
	}

	rc.serveCSV(c, "sales.csv", services.SalesReportRows(orders))
}

func (rc *ReportController) PurchasesCSV(c *gin.Context) {
	vendorID := middleware.AccountID(c)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	cursor, err := rc.DB.PurchaseBillCollection.Find(ctx,
		bson.M{"vendorid": vendorID},
		options.Find().SetSort(bson.M{"billdate": 1}))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve purchase bills"})
		return
	}
	defer cursor.Close(ctx)

	var bills []models.PurchaseBill
	if err = cursor.All(ctx, &bills); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode purchase bills"})
		return
	}

	rc.serveCSV(c, "purchases.csv", services.PurchaseReportRows(bills))
}

func (rc *ReportController) ClientPnLCSV(c *gin.Context) {
	vendorID := middleware.AccountID(c)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	orders, err := rc.vendorOrders(ctx, vendorID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve orders"})
		return
	}

	rc.serveCSV(c, "clients.csv", services.ClientPnLRows(orders))
}
