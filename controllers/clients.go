package controllers

import (
	"context"
	"net/http"
	"time"

	"backend/config"
	"backend/middleware"
	"backend/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type ClientController struct {
	DB *config.Database
}

func (cc *ClientController) ListClients(c *gin.Context) {
	vendorID := middleware.AccountID(c)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := cc.DB.ClientCollection.Find(ctx, bson.M{"vendorid": vendorID})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve clients"})
		return
	}
	defer cursor.Close(ctx)

	clients := []models.Client{}
	if err = cursor.All(ctx, &clients); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode clients"})
		return
	}

	c.JSON(http.StatusOK, clients)
}

func (cc *ClientController) AddClient(c *gin.Context) {
	vendorID := middleware.AccountID(c)

	var client models.Client
	if err := c.ShouldBindJSON(&client); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	client.ID = primitive.NilObjectID
	client.VendorID = vendorID
	client.CreatedAt = time.Now()
	client.UpdatedAt = client.CreatedAt

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := cc.DB.ClientCollection.InsertOne(ctx, client)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create client"})
		return
	}
	client.ID = result.InsertedID.(primitive.ObjectID)

	c.JSON(http.StatusCreated, client)
}

func (cc *ClientController) GetClient(c *gin.Context) {
	vendorID := middleware.AccountID(c)
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid client ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var client models.Client
	err = cc.DB.ClientCollection.FindOne(ctx, bson.M{"_id": objID, "vendorid": vendorID}).Decode(&client)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Client not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve client"})
		}
		return
	}

	c.JSON(http.StatusOK, client)
}

func (cc *ClientController) UpdateClient(c *gin.Context) {
	vendorID := middleware.AccountID(c)
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid client ID"})
		return
	}

	var req struct {
		Name    string `json:"name"`
		Phone   string `json:"phone"`
		Email   string `json:"email"`
		Address string `json:"address"`
		TaxID   string `json:"taxid"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	set := bson.M{"updated_at": time.Now()}
	if req.Name != "" {
		set["name"] = req.Name
	}
	if req.Phone != "" {
		set["phone"] = req.Phone
	}
	if req.Email != "" {
		set["email"] = req.Email
	}
	if req.Address != "" {
		set["address"] = req.Address
	}
	if req.TaxID != "" {
		set["taxid"] = req.TaxID
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := cc.DB.ClientCollection.UpdateOne(ctx,
		bson.M{"_id": objID, "vendorid": vendorID}, bson.M{"$set": set})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update client"})
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Client not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": objID.Hex()})
}

func (cc *ClientController) DeleteClient(c *gin.Context) {
	vendorID := middleware.AccountID(c)
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid client ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := cc.DB.ClientCollection.DeleteOne(ctx, bson.M{"_id": objID, "vendorid": vendorID})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete client"})
		return
	}
	if result.DeletedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Client not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": objID.Hex(), "deleted": true})
}
