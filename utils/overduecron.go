package utils

import (
	"context"
	"log"
	"time"

	"backend/config"
	"backend/models"

	"go.mongodb.org/mongo-driver/bson"
)

// OverdueAfterDays is how long an invoiced order may stay unpaid before the
// daily sweep flags it.
const OverdueAfterDays = 30

// CheckOverdueInvoices flips invoiced orders past the payment window to
// Overdue. Both ledger copies match the filter, so the vendor copy and any
// mirrored client copy are updated by the same pass.
func CheckOverdueInvoices(db *config.Database) {
	log.Println("Starting overdue invoice sweep")

	cutoff := time.Now().AddDate(0, 0, -OverdueAfterDays)
	filter := bson.M{
		"paymentstatus": models.PaymentInvoiced,
		"pricedat":      bson.M{"$lt": cutoff},
	}
	update := bson.M{"$set": bson.M{
		"paymentstatus": models.PaymentOverdue,
		"updated_at":    time.Now(),
	}}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	result, err := db.OrderCollection.UpdateMany(ctx, filter, update)
	if err != nil {
		log.Printf("Overdue sweep failed: %v", err)
		return
	}

	log.Printf("Overdue sweep completed: %d orders marked overdue", result.ModifiedCount)
}
