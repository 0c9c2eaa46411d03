package controllers

import (
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"backend/config"
	"backend/middleware"
	"backend/models"

	"github.com/gin-gonic/gin"
	"github.com/nfnt/resize"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const maxPhotoSize = 5 * 1024 * 1024
const compressThreshold = 1 * 1024 * 1024

type ProductController struct {
	DB *config.Database
}

type createProductRequest struct {
	SKU       string  `json:"sku"`
	Name      string  `json:"name" binding:"required"`
	Unit      string  `json:"unit"`
	Price     float64 `json:"price" binding:"required"`
	CostPrice float64 `json:"costprice"`
	Barcode   string  `json:"barcode"`
}

func (pc *ProductController) CreateProduct(c *gin.Context) {
	vendorID := middleware.AccountID(c)

	var req createProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Unit == "" {
		req.Unit = "PCS"
	}

	now := time.Now()
	product := models.Product{
		VendorID:  vendorID,
		SKU:       req.SKU,
		Name:      req.Name,
		Unit:      req.Unit,
		Price:     req.Price,
		CostPrice: req.CostPrice,
		Barcode:   req.Barcode,
		CreatedAt: now,
		UpdatedAt: now,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := pc.DB.ProductCollection.InsertOne(ctx, product)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
		return
	}
	product.ID = result.InsertedID.(primitive.ObjectID)

	c.JSON(http.StatusCreated, product)
}

func (pc *ProductController) GetVendorProducts(c *gin.Context) {
	vendorID := middleware.AccountID(c)
	pc.listProducts(c, vendorID)
}

// GetCatalog serves a vendor's catalog to browsing clients.
func (pc *ProductController) GetCatalog(c *gin.Context) {
	pc.listProducts(c, c.Param("vendorid"))
}

func (pc *ProductController) listProducts(c *gin.Context, vendorID string) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := pc.DB.ProductCollection.Find(ctx, bson.M{"vendorid": vendorID})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve products"})
		return
	}
	defer cursor.Close(ctx)

	products := []models.Product{}
	if err = cursor.All(ctx, &products); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode products"})
		return
	}

	c.JSON(http.StatusOK, products)
}

func (pc *ProductController) GetProduct(c *gin.Context) {
	vendorID := middleware.AccountID(c)
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var product models.Product
	err = pc.DB.ProductCollection.FindOne(ctx, bson.M{"_id": objID, "vendorid": vendorID}).Decode(&product)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve product"})
		}
		return
	}

	c.JSON(http.StatusOK, product)
}

func (pc *ProductController) EditProduct(c *gin.Context) {
	vendorID := middleware.AccountID(c)
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	var req models.UpdateProduct
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	set := bson.M{"updated_at": time.Now()}
	if req.SKU != "" {
		set["sku"] = req.SKU
	}
	if req.Name != "" {
		set["name"] = req.Name
	}
	if req.Unit != "" {
		set["unit"] = req.Unit
	}
	if req.Price > 0 {
		set["price"] = req.Price
	}
	if req.CostPrice > 0 {
		set["costprice"] = req.CostPrice
	}
	if req.Barcode != "" {
		set["barcode"] = req.Barcode
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := pc.DB.ProductCollection.UpdateOne(ctx,
		bson.M{"_id": objID, "vendorid": vendorID}, bson.M{"$set": set})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": objID.Hex()})
}

func (pc *ProductController) DeleteProduct(c *gin.Context) {
	vendorID := middleware.AccountID(c)
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := pc.DB.ProductCollection.DeleteOne(ctx, bson.M{"_id": objID, "vendorid": vendorID})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
		return
	}
	if result.DeletedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": objID.Hex(), "deleted": true})
}

// UploadProductPhoto stores a product photo under ./uploads/products,
// compressing anything over 1MB to 800px-wide JPEG.
func (pc *ProductController) UploadProductPhoto(c *gin.Context) {
	vendorID := middleware.AccountID(c)
	productID := c.Param("id")
	objID, err := primitive.ObjectIDFromHex(productID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	file, err := c.FormFile("photo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Photo file is required"})
		return
	}
	if file.Size > maxPhotoSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File size exceeds the 5MB limit"})
		return
	}

	fileExt := strings.ToLower(filepath.Ext(file.Filename))
	if fileExt != ".jpg" && fileExt != ".jpeg" && fileExt != ".png" {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Unsupported file format: %s", fileExt)})
		return
	}

	productDir := "./uploads/products"
	if _, err := os.Stat(productDir); os.IsNotExist(err) {
		if err := os.MkdirAll(productDir, os.ModePerm); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create upload directory"})
			return
		}
	}

	filename := fmt.Sprintf("%s_%d%s", productID, time.Now().Unix(), fileExt)
	fullPath := filepath.Join(productDir, filename)

	if file.Size > compressThreshold {
		srcFile, err := file.Open()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to open uploaded file"})
			return
		}
		defer srcFile.Close()

		var img image.Image
		if fileExt == ".png" {
			img, err = png.Decode(srcFile)
		} else {
			img, err = jpeg.Decode(srcFile)
		}
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to decode image"})
			return
		}

		compressed := resize.Resize(800, 0, img, resize.Lanczos3)

		outFile, err := os.Create(fullPath)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save photo"})
			return
		}
		defer outFile.Close()

		if err := jpeg.Encode(outFile, compressed, &jpeg.Options{Quality: 80}); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save compressed photo"})
			return
		}
	} else {
		if err := c.SaveUploadedFile(file, fullPath); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save photo"})
			return
		}
	}

	photoURL := "/uploads/products/" + filename

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := pc.DB.ProductCollection.UpdateOne(ctx,
		bson.M{"_id": objID, "vendorid": vendorID},
		bson.M{"$set": bson.M{"productphotourl": photoURL, "updated_at": time.Now()}})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"productphotourl": photoURL})
}
