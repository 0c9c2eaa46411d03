package controllers

import (
	"context"
	"log"
	"strings"
	"time"

	"backend/config"
	"backend/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// The vendor's order copy is authoritative; a registered client gets a
// mirrored copy under its own account id so each party queries only its own
// subtree. Mutations touch both copies in one unordered bulk write. This is
// deliberately best effort: there is no cross-copy transaction, partial
// success is possible and is not reconciled beyond a log line.

// IsRegisteredClient reports whether a client id denotes a real account.
// Registered accounts carry ObjectID hex ids; ad hoc counterparts created
// during manual invoicing get a synthetic "walkin-<unix>" id.
func IsRegisteredClient(clientID string) bool {
	if strings.HasPrefix(clientID, "walkin-") {
		return false
	}
	_, err := primitive.ObjectIDFromHex(clientID)
	return err == nil
}

func ledgerOwners(o *models.Order) []string {
	owners := []string{o.VendorID}
	if IsRegisteredClient(o.ClientID) {
		owners = append(owners, o.ClientID)
	}
	return owners
}

func logMirrorFailure(op, orderID string, err error) {
	if err != nil {
		log.Printf("dual-ledger %s for order %s: %v", op, orderID, err)
	}
}

func insertLedger(ctx context.Context, db *config.Database, o *models.Order) error {
	var writes []mongo.WriteModel
	for _, owner := range ledgerOwners(o) {
		copy := *o
		copy.ID = primitive.NewObjectID()
		copy.OwnerID = owner
		writes = append(writes, mongo.NewInsertOneModel().SetDocument(copy))
	}
	_, err := db.OrderCollection.BulkWrite(ctx, writes, options.BulkWrite().SetOrdered(false))
	logMirrorFailure("insert", o.OrderID, err)
	return err
}

func updateLedger(ctx context.Context, db *config.Database, o *models.Order, set bson.M) error {
	set["updated_at"] = time.Now()
	var writes []mongo.WriteModel
	for _, owner := range ledgerOwners(o) {
		writes = append(writes, mongo.NewUpdateOneModel().
			SetFilter(bson.M{"orderid": o.OrderID, "ownerid": owner}).
			SetUpdate(bson.M{"$set": set}))
	}
	_, err := db.OrderCollection.BulkWrite(ctx, writes, options.BulkWrite().SetOrdered(false))
	logMirrorFailure("update", o.OrderID, err)
	return err
}

func deleteLedger(ctx context.Context, db *config.Database, o *models.Order) error {
	var writes []mongo.WriteModel
	for _, owner := range ledgerOwners(o) {
		writes = append(writes, mongo.NewDeleteOneModel().
			SetFilter(bson.M{"orderid": o.OrderID, "ownerid": owner}))
	}
	_, err := db.OrderCollection.BulkWrite(ctx, writes, options.BulkWrite().SetOrdered(false))
	logMirrorFailure("delete", o.OrderID, err)
	return err
}
