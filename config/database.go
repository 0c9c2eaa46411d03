package config

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Database holds the Mongo client and every collection the app touches.
// It is constructed once in main and passed to the controllers; there are
// no package-level handles.
type Database struct {
	Client *mongo.Client

	UserCollection         *mongo.Collection
	VendorCollection       *mongo.Collection
	SignupTokenCollection  *mongo.Collection
	ClientCollection       *mongo.Collection
	ProductCollection      *mongo.Collection
	OrderCollection        *mongo.Collection
	PurchaseBillCollection *mongo.Collection
}

func ConnectDatabase(uri string) (*Database, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	name := os.Getenv("MONGO_DB")
	if name == "" {
		name = "bizbook"
	}
	db := client.Database(name)

	return &Database{
		Client:                 client,
		UserCollection:         db.Collection("users"),
		VendorCollection:       db.Collection("vendors"),
		SignupTokenCollection:  db.Collection("signup_tokens"),
		ClientCollection:       db.Collection("clients"),
		ProductCollection:      db.Collection("products"),
		OrderCollection:        db.Collection("orders"),
		PurchaseBillCollection: db.Collection("purchase_bills"),
	}, nil
}

// VATRate reads the configured tax rate, defaulting to 15%.
func VATRate() float64 {
	if v := os.Getenv("VAT_RATE"); v != "" {
		if rate, err := strconv.ParseFloat(v, 64); err == nil && rate >= 0 {
			return rate
		}
	}
	return 0.15
}
