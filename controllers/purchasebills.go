package controllers

import (
	"context"
	"log"
	"net/http"
	"time"

	"backend/config"
	"backend/middleware"
	"backend/models"
	"backend/services"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type PurchaseBillController struct {
	DB   *config.Database
	Scan *services.ScanClient
}

type createBillRequest struct {
	SupplierName string            `json:"supplier_name" binding:"required"`
	BillDate     string            `json:"billdate"` // YYYY-MM-DD
	Items        []models.BillItem `json:"items" binding:"required"`
	TotalAmount  float64           `json:"total_amount"`
}

// CreateBill saves the purchase bill, then syncs the vendor's catalog from
// its lines: a case-insensitive name match updates that product's cost
// price, anything else becomes a new product with a synthesized SKU and a
// markup selling price. The catalog batch is not atomic with the bill write;
// failures there leave the bill saved and are only logged.
func (bc *PurchaseBillController) CreateBill(c *gin.Context) {
	vendorID := middleware.AccountID(c)

	var req createBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(req.Items) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Bill needs at least one line item"})
		return
	}

	billDate := time.Now()
	if req.BillDate != "" {
		if parsed, err := time.Parse("2006-01-02", req.BillDate); err == nil {
			billDate = parsed
		}
	}

	total := req.TotalAmount
	for i := range req.Items {
		req.Items[i].TotalCost = services.Round2(req.Items[i].Quantity * req.Items[i].CostPerUnit)
		if req.TotalAmount == 0 {
			total += req.Items[i].TotalCost
		}
	}

	bill := models.PurchaseBill{
		VendorID:     vendorID,
		SupplierName: req.SupplierName,
		BillDate:     billDate,
		Items:        req.Items,
		TotalAmount:  services.Round2(total),
		CreatedAt:    time.Now(),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	result, err := bc.DB.PurchaseBillCollection.InsertOne(ctx, bill)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save purchase bill"})
		return
	}
	bill.ID = result.InsertedID.(primitive.ObjectID)

	bc.syncCatalog(ctx, vendorID, req.Items)

	c.JSON(http.StatusCreated, bill)
}

func (bc *PurchaseBillController) syncCatalog(ctx context.Context, vendorID string, items []models.BillItem) {
	cursor, err := bc.DB.ProductCollection.Find(ctx, bson.M{"vendorid": vendorID})
	if err != nil {
		log.Printf("catalog sync: load products: %v", err)
		return
	}
	var catalog []models.Product
	if err := cursor.All(ctx, &catalog); err != nil {
		log.Printf("catalog sync: decode products: %v", err)
		return
	}

	now := time.Now()
	for _, action := range services.PlanCatalogSync(vendorID, items, catalog) {
		if action.NewProduct != nil {
			action.NewProduct.CreatedAt = now
			action.NewProduct.UpdatedAt = now
			if _, err := bc.DB.ProductCollection.InsertOne(ctx, action.NewProduct); err != nil {
				log.Printf("catalog sync: insert %q: %v", action.NewProduct.Name, err)
			}
			continue
		}
		objID, err := primitive.ObjectIDFromHex(action.MatchedID)
		if err != nil {
			continue
		}
		_, err = bc.DB.ProductCollection.UpdateOne(ctx,
			bson.M{"_id": objID},
			bson.M{"$set": bson.M{"costprice": action.CostPrice, "updated_at": now}})
		if err != nil {
			log.Printf("catalog sync: update %s: %v", action.MatchedID, err)
		}
	}
}

func (bc *PurchaseBillController) ListBills(c *gin.Context) {
	vendorID := middleware.AccountID(c)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := bc.DB.PurchaseBillCollection.Find(ctx, bson.M{"vendorid": vendorID})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve purchase bills"})
		return
	}
	defer cursor.Close(ctx)

	bills := []models.PurchaseBill{}
	if err = cursor.All(ctx, &bills); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode purchase bills"})
		return
	}

	c.JSON(http.StatusOK, bills)
}

func (bc *PurchaseBillController) GetBill(c *gin.Context) {
	vendorID := middleware.AccountID(c)
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid bill ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var bill models.PurchaseBill
	err = bc.DB.PurchaseBillCollection.FindOne(ctx, bson.M{"_id": objID, "vendorid": vendorID}).Decode(&bill)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Purchase bill not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve purchase bill"})
		}
		return
	}

	c.JSON(http.StatusOK, bill)
}

func (bc *PurchaseBillController) DeleteBill(c *gin.Context) {
	vendorID := middleware.AccountID(c)
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid bill ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := bc.DB.PurchaseBillCollection.DeleteOne(ctx, bson.M{"_id": objID, "vendorid": vendorID})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete purchase bill"})
		return
	}
	if result.DeletedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Purchase bill not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": objID.Hex(), "deleted": true})
}

// ScanBill runs a bill photo through the scan service and returns the
// extracted fields with fallbacks applied, so the form can prefill. Scan
// failure never blocks manual entry; the handler reports it and the form
// keeps whatever the vendor already typed.
func (bc *PurchaseBillController) ScanBill(c *gin.Context) {
	var req struct {
		Image string `json:"image" binding:"required"` // base64 data URI
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if bc.Scan == nil || bc.Scan.URL == "" {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Bill scanning is not configured"})
		return
	}

	result, err := bc.Scan.ScanBill(c.Request.Context(), req.Image)
	if err != nil {
		log.Printf("bill scan: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Scan failed, please enter the bill manually"})
		return
	}

	c.JSON(http.StatusOK, services.NormalizeScan(result, time.Now()))
}
