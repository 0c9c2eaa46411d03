package controllers

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"time"

	"backend/config"
	"backend/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type AdminController struct {
	DB *config.Database
}

// ListAccounts returns user profiles, optionally filtered by role.
func (ac *AdminController) ListAccounts(c *gin.Context) {
	filter := bson.M{}
	if roleParam := c.Query("role"); roleParam != "" {
		role, err := models.ParseRole(roleParam)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		filter["role"] = role
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := ac.DB.UserCollection.Find(ctx, filter,
		options.Find().SetProjection(bson.M{"password": 0}))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve accounts"})
		return
	}
	defer cursor.Close(ctx)

	accounts := []models.User{}
	if err = cursor.All(ctx, &accounts); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode accounts"})
		return
	}

	c.JSON(http.StatusOK, accounts)
}

type accountStatusRequest struct {
	Status string `json:"status" binding:"required"`
	Remark string `json:"remark"`
}

// SetAccountStatus pauses or reactivates an account. The remark is shown to
// the user on their next login attempt.
func (ac *AdminController) SetAccountStatus(c *gin.Context) {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid account ID"})
		return
	}

	var req accountStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Status != models.AccountActive && req.Status != models.AccountPaused {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Status must be active or paused"})
		return
	}

	set := bson.M{"status": req.Status, "updated_at": time.Now()}
	if req.Status == models.AccountPaused {
		set["statusremark"] = req.Remark
	} else {
		set["statusremark"] = ""
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := ac.DB.UserCollection.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$set": set})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update account"})
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": objID.Hex(), "status": req.Status})
}

// Dashboard summarizes per-vendor usage: document counts and revenue.
func (ac *AdminController) Dashboard(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cursor, err := ac.DB.VendorCollection.Find(ctx, bson.M{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve vendors"})
		return
	}
	defer cursor.Close(ctx)

	var vendors []models.VendorEntry
	if err = cursor.All(ctx, &vendors); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode vendors"})
		return
	}

	type vendorUsage struct {
		VendorID     string  `json:"vendorid"`
		BusinessName string  `json:"business_name"`
		Orders       int64   `json:"orders"`
		Products     int64   `json:"products"`
		Clients      int64   `json:"clients"`
		Bills        int64   `json:"bills"`
		Revenue      float64 `json:"revenue"`
	}

	usage := []vendorUsage{}
	for _, v := range vendors {
		u := vendorUsage{VendorID: v.AccountID, BusinessName: v.BusinessName}
		u.Orders, _ = ac.DB.OrderCollection.CountDocuments(ctx, bson.M{"vendorid": v.AccountID, "ownerid": v.AccountID})
		u.Products, _ = ac.DB.ProductCollection.CountDocuments(ctx, bson.M{"vendorid": v.AccountID})
		u.Clients, _ = ac.DB.ClientCollection.CountDocuments(ctx, bson.M{"vendorid": v.AccountID})
		u.Bills, _ = ac.DB.PurchaseBillCollection.CountDocuments(ctx, bson.M{"vendorid": v.AccountID})

		revCursor, err := ac.DB.OrderCollection.Aggregate(ctx, mongoRevenuePipeline(v.AccountID))
		if err == nil {
			var rows []struct {
				Total float64 `bson:"total"`
			}
			if err := revCursor.All(ctx, &rows); err == nil && len(rows) > 0 {
				u.Revenue = rows[0].Total
			}
		}

		usage = append(usage, u)
	}

	totalUsers, _ := ac.DB.UserCollection.CountDocuments(ctx, bson.M{})

	c.JSON(http.StatusOK, gin.H{
		"vendors":     usage,
		"vendorcount": len(vendors),
		"usercount":   totalUsers,
	})
}

func mongoRevenuePipeline(vendorID string) []bson.M {
	return []bson.M{
		{"$match": bson.M{"vendorid": vendorID, "ownerid": vendorID}},
		{"$group": bson.M{"_id": nil, "total": bson.M{"$sum": "$total_amount"}}},
	}
}

// CreateSignupToken mints a vendor invite.
func (ac *AdminController) CreateSignupToken(c *gin.Context) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	token := models.SignupToken{
		Token:     hex.EncodeToString(buf),
		Used:      false,
		CreatedAt: time.Now(),
		ExpiresAt: time.Now().AddDate(0, 1, 0),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := ac.DB.SignupTokenCollection.InsertOne(ctx, token); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save token"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"token": token.Token, "expires_at": token.ExpiresAt})
}

func (ac *AdminController) ListSignupTokens(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := ac.DB.SignupTokenCollection.Find(ctx, bson.M{},
		options.Find().SetSort(bson.M{"created_at": -1}))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve tokens"})
		return
	}
	defer cursor.Close(ctx)

	tokens := []models.SignupToken{}
	if err = cursor.All(ctx, &tokens); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode tokens"})
		return
	}

	c.JSON(http.StatusOK, tokens)
}
