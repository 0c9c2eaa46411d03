package controllers

import (
	"testing"

	"backend/models"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestIsRegisteredClient(t *testing.T) {
	assert.True(t, IsRegisteredClient(primitive.NewObjectID().Hex()))

	assert.False(t, IsRegisteredClient("walkin-1756700000000000000"))
	assert.False(t, IsRegisteredClient("client-42"))
	assert.False(t, IsRegisteredClient(""))
	assert.False(t, IsRegisteredClient("not-hex-at-all"))
}

func TestLedgerOwners(t *testing.T) {
	registered := primitive.NewObjectID().Hex()
	o := &models.Order{VendorID: "vendor-1", ClientID: registered}
	assert.Equal(t, []string{"vendor-1", registered}, ledgerOwners(o))

	walkin := &models.Order{VendorID: "vendor-1", ClientID: "walkin-1756700000000000000"}
	assert.Equal(t, []string{"vendor-1"}, ledgerOwners(walkin))
}
