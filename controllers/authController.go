package controllers

import (
	"context"
	"net/http"
	"time"

	"backend/config"
	"backend/middleware"
	"backend/models"
	"backend/services"
	"backend/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type AuthController struct {
	DB *config.Database
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login checks credentials and the account-status gate: a paused profile is
// rejected with its operator remark and no token is issued.
func (ac *AuthController) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var user models.User
	err := ac.DB.UserCollection.FindOne(ctx, bson.M{"email": req.Email}).Decode(&user)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	if err := utils.VerifyPassword(user.Password, req.Password); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	if user.Status == models.AccountPaused {
		remark := user.StatusRemark
		if remark == "" {
			remark = "Your account has been paused. Contact support."
		}
		c.JSON(http.StatusForbidden, gin.H{"error": "Account paused", "remark": remark})
		return
	}

	token, err := utils.GenerateToken(user.ID.Hex(), string(user.Role))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.SetCookie("token", token, 24*3600, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"id":    user.ID.Hex(),
		"role":  user.Role,
		"name":  user.Name,
	})
}

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	TaxID    string `json:"taxid"`
	Password string `json:"password" binding:"required,min=6"`
}

// RegisterClient creates a buyer account.
func (ac *AuthController) RegisterClient(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	count, err := ac.DB.UserCollection.CountDocuments(ctx, bson.M{"email": req.Email})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check existing accounts"})
		return
	}
	if count > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Email already registered"})
		return
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error hashing password"})
		return
	}

	now := time.Now()
	user := models.User{
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Address:   req.Address,
		TaxID:     req.TaxID,
		Role:      models.RoleClient,
		Password:  hashed,
		Status:    models.AccountActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	result, err := ac.DB.UserCollection.InsertOne(ctx, user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create account"})
		return
	}

	id := result.InsertedID.(primitive.ObjectID).Hex()
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

type vendorSignupRequest struct {
	registerRequest
	BusinessName string `json:"business_name" binding:"required"`
	SignupToken  string `json:"signup_token" binding:"required"`
}

// RegisterVendor is invite-gated: a valid unused signup token is required
// and consumed, and the new vendor is listed in the public directory.
func (ac *AuthController) RegisterVendor(c *gin.Context) {
	var req vendorSignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var token models.SignupToken
	err := ac.DB.SignupTokenCollection.FindOne(ctx, bson.M{"token": req.SignupToken, "used": false}).Decode(&token)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or used signup token"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error validating signup token"})
		}
		return
	}
	if !token.ExpiresAt.IsZero() && time.Now().After(token.ExpiresAt) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Signup token expired"})
		return
	}

	count, err := ac.DB.UserCollection.CountDocuments(ctx, bson.M{"email": req.Email})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check existing accounts"})
		return
	}
	if count > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Email already registered"})
		return
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error hashing password"})
		return
	}

	now := time.Now()
	user := models.User{
		Name:          req.Name,
		BusinessName:  req.BusinessName,
		Email:         req.Email,
		Phone:         req.Phone,
		Address:       req.Address,
		TaxID:         req.TaxID,
		Role:          models.RoleVendor,
		Password:      hashed,
		Status:        models.AccountActive,
		InvoicePrefix: services.DefaultInvoicePrefix,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	result, err := ac.DB.UserCollection.InsertOne(ctx, user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create account"})
		return
	}
	vendorID := result.InsertedID.(primitive.ObjectID).Hex()

	_, err = ac.DB.SignupTokenCollection.UpdateOne(ctx,
		bson.M{"_id": token.ID},
		bson.M{"$set": bson.M{"used": true, "usedby": vendorID}})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to consume signup token"})
		return
	}

	entry := models.VendorEntry{
		AccountID:    vendorID,
		BusinessName: req.BusinessName,
		Phone:        req.Phone,
		Address:      req.Address,
	}
	if _, err := ac.DB.VendorCollection.InsertOne(ctx, entry); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to publish vendor directory entry"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": vendorID})
}

// ListVendors serves the public vendor directory clients pick from.
func (ac *AuthController) ListVendors(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := ac.DB.VendorCollection.Find(ctx, bson.M{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve vendors"})
		return
	}
	defer cursor.Close(ctx)

	vendors := []models.VendorEntry{}
	if err = cursor.All(ctx, &vendors); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode vendors"})
		return
	}

	c.JSON(http.StatusOK, vendors)
}

type updateProfileRequest struct {
	Name          string `json:"name"`
	BusinessName  string `json:"business_name"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	TaxID         string `json:"taxid"`
	InvoicePrefix string `json:"invoiceprefix"`
	VATRegistered *bool  `json:"vatregistered"`
	LogoURL       string `json:"logourl"`
	InvoiceFooter string `json:"invoicefooter"`
}

// UpdateProfile edits the signed-in account's branding and invoice-layout
// preferences.
func (ac *AuthController) UpdateProfile(c *gin.Context) {
	accountID := middleware.AccountID(c)
	objID, err := primitive.ObjectIDFromHex(accountID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid account ID"})
		return
	}

	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	set := bson.M{"updated_at": time.Now()}
	if req.Name != "" {
		set["name"] = req.Name
	}
	if req.BusinessName != "" {
		set["business_name"] = req.BusinessName
	}
	if req.Phone != "" {
		set["phone"] = req.Phone
	}
	if req.Address != "" {
		set["address"] = req.Address
	}
	if req.TaxID != "" {
		set["taxid"] = req.TaxID
	}
	if req.InvoicePrefix != "" {
		set["invoiceprefix"] = req.InvoicePrefix
	}
	if req.VATRegistered != nil {
		set["vatregistered"] = *req.VATRegistered
	}
	if req.LogoURL != "" {
		set["logourl"] = req.LogoURL
	}
	if req.InvoiceFooter != "" {
		set["invoicefooter"] = req.InvoiceFooter
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err = ac.DB.UserCollection.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$set": set})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}

	// keep the public directory in step with the profile
	if req.BusinessName != "" || req.Phone != "" || req.Address != "" {
		dirSet := bson.M{}
		if req.BusinessName != "" {
			dirSet["business_name"] = req.BusinessName
		}
		if req.Phone != "" {
			dirSet["phone"] = req.Phone
		}
		if req.Address != "" {
			dirSet["address"] = req.Address
		}
		_, _ = ac.DB.VendorCollection.UpdateOne(ctx, bson.M{"accountid": accountID}, bson.M{"$set": dirSet})
	}

	c.JSON(http.StatusOK, gin.H{"id": accountID})
}

// GetProfile returns the signed-in account's profile.
func (ac *AuthController) GetProfile(c *gin.Context) {
	accountID := middleware.AccountID(c)
	objID, err := primitive.ObjectIDFromHex(accountID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid account ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var user models.User
	if err := ac.DB.UserCollection.FindOne(ctx, bson.M{"_id": objID}).Decode(&user); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
		return
	}
	user.Password = ""

	c.JSON(http.StatusOK, user)
}
