package controllers

import (
	"context"
	"fmt"
	"log"
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
	"go.mongodb.org/mongo-driver/mongo/options"
)

type OrderController struct {
	DB *config.Database
}

type cartLine struct {
	ProductID string  `json:"productid" binding:"required"`
	Quantity  float64 `json:"quantity"`
}

type createOrderRequest struct {
	VendorID      string     `json:"vendorid"`
	Items         []cartLine `json:"items"`
	SpecialItems  []string   `json:"specialitems"`
	PaymentMethod string     `json:"paymentmethod"`
	DeliveryDate  *time.Time `json:"deliverydate"`
}

// CreateCustomerOrder handles cart checkout. The order lands in
// "Awaiting Pricing" with no unit prices; the client's profile snapshot is
// upserted into the vendor's client book in the same request.
func (oc *OrderController) CreateCustomerOrder(c *gin.Context) {
	clientID := middleware.AccountID(c)

	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cart := services.NewCart(req.VendorID)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	for _, line := range req.Items {
		objID, err := primitive.ObjectIDFromHex(line.ProductID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
			return
		}
		var product models.Product
		err = oc.DB.ProductCollection.FindOne(ctx, bson.M{"_id": objID, "vendorid": req.VendorID}).Decode(&product)
		if err != nil {
			if err == mongo.ErrNoDocuments {
				c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("Product %s not found", line.ProductID)})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve product"})
			}
			return
		}
		cart.SetQuantity(product, line.Quantity)
	}
	for _, name := range req.SpecialItems {
		cart.AddSpecialItem(name)
	}

	var profile models.User
	if objID, err := primitive.ObjectIDFromHex(clientID); err == nil {
		_ = oc.DB.UserCollection.FindOne(ctx, bson.M{"_id": objID}).Decode(&profile)
	}

	order, err := cart.Checkout(clientID, profile.Name, time.Now())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	order.OrderID = primitive.NewObjectID().Hex()
	order.PaymentMethod = req.PaymentMethod
	order.DeliveryDate = req.DeliveryDate

	// keep the vendor's client book current without a separate sync step
	snapshot := bson.M{"$set": bson.M{
		"vendorid":   req.VendorID,
		"accountid":  clientID,
		"name":       profile.Name,
		"phone":      profile.Phone,
		"email":      profile.Email,
		"address":    profile.Address,
		"taxid":      profile.TaxID,
		"updated_at": time.Now(),
	}}
	_, err = oc.DB.ClientCollection.UpdateOne(ctx,
		bson.M{"vendorid": req.VendorID, "accountid": clientID},
		snapshot, options.Update().SetUpsert(true))
	if err != nil {
		log.Printf("client snapshot upsert for order %s: %v", order.OrderID, err)
	}

	if err := insertLedger(ctx, oc.DB, order); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order"})
		return
	}

	c.JSON(http.StatusCreated, order)
}

type manualInvoiceLine struct {
	Name      string  `json:"name" binding:"required"`
	Unit      string  `json:"unit"`
	Quantity  float64 `json:"quantity" binding:"required"`
	UnitPrice float64 `json:"unit_price"`
}

type manualInvoiceRequest struct {
	ClientID      string              `json:"clientid"`
	ClientName    string              `json:"clientname"`
	Items         []manualInvoiceLine `json:"items" binding:"required"`
	InvoiceType   string              `json:"invoicetype"`
	PaymentMethod string              `json:"paymentmethod"`
	OrderDate     *time.Time          `json:"orderdate"`
}

// CreateManualInvoice lets the vendor write an already-priced order, for a
// registered client or a free-text counterpart. The invoice code is assigned
// immediately.
func (oc *OrderController) CreateManualInvoice(c *gin.Context) {
	vendorID := middleware.AccountID(c)

	var req manualInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(req.Items) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invoice needs at least one line item"})
		return
	}
	if req.InvoiceType == "" {
		req.InvoiceType = models.InvoiceNormal
	}
	if req.InvoiceType != models.InvoiceNormal && req.InvoiceType != models.InvoiceVAT {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid invoice type"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	clientID := req.ClientID
	clientName := req.ClientName
	if clientID == "" {
		if clientName == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Client is required"})
			return
		}
		// unregistered counterpart; the synthetic id keeps it out of the
		// mirrored ledger
		clientID = fmt.Sprintf("walkin-%d", time.Now().UnixNano())
		client := models.Client{
			VendorID:  vendorID,
			AccountID: clientID,
			Name:      clientName,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}
		if _, err := oc.DB.ClientCollection.InsertOne(ctx, client); err != nil {
			log.Printf("ad hoc client insert: %v", err)
		}
	}

	items := make([]models.LineItem, len(req.Items))
	prices := make([]float64, len(req.Items))
	for i, line := range req.Items {
		unit := line.Unit
		if unit == "" {
			unit = services.DefaultUnit
		}
		items[i] = models.LineItem{Name: line.Name, Unit: unit, Quantity: line.Quantity}
		prices[i] = line.UnitPrice
	}
	priced, err := services.PriceLines(items, prices)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	subTotal, vat, total := services.Totals(priced, req.InvoiceType, config.VATRate())

	invoiceNo, err := oc.nextInvoiceNo(ctx, vendorID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to assign invoice number"})
		return
	}

	now := time.Now()
	orderDate := now
	if req.OrderDate != nil {
		orderDate = *req.OrderDate
	}
	order := &models.Order{
		OrderID:       primitive.NewObjectID().Hex(),
		InvoiceNo:     invoiceNo,
		VendorID:      vendorID,
		ClientID:      clientID,
		ClientName:    clientName,
		Items:         priced,
		SubTotal:      subTotal,
		VATAmount:     vat,
		TotalAmount:   total,
		Status:        models.StatusPriced,
		PaymentStatus: models.PaymentUnpaid,
		InvoiceType:   req.InvoiceType,
		PaymentMethod: req.PaymentMethod,
		OrderDate:     orderDate,
		PricedAt:      &now,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := insertLedger(ctx, oc.DB, order); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create invoice"})
		return
	}

	c.JSON(http.StatusCreated, order)
}

type priceOrderRequest struct {
	Prices      []float64 `json:"prices" binding:"required"`
	InvoiceType string    `json:"invoicetype" binding:"required"`
}

// PriceOrder converts an unpriced order into a priced, invoiced one. The
// invoice code is assigned exactly once; re-pricing keeps the existing code.
func (oc *OrderController) PriceOrder(c *gin.Context) {
	vendorID := middleware.AccountID(c)
	orderID := c.Param("id")

	var req priceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.InvoiceType != models.InvoiceNormal && req.InvoiceType != models.InvoiceVAT {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid invoice type"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var order models.Order
	err := oc.DB.OrderCollection.FindOne(ctx,
		bson.M{"orderid": orderID, "vendorid": vendorID, "ownerid": vendorID}).Decode(&order)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve order"})
		}
		return
	}

	priced, err := services.PriceLines(order.Items, req.Prices)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	subTotal, vat, total := services.Totals(priced, req.InvoiceType, config.VATRate())

	invoiceNo := order.InvoiceNo
	if invoiceNo == "" {
		invoiceNo, err = oc.nextInvoiceNo(ctx, vendorID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to assign invoice number"})
			return
		}
	}

	now := time.Now()
	set := bson.M{
		"items":         priced,
		"subtotal":      subTotal,
		"vatamount":     vat,
		"total_amount":  total,
		"invoicetype":   req.InvoiceType,
		"invoiceno":     invoiceNo,
		"status":        models.StatusPriced,
		"paymentstatus": models.PaymentUnpaid,
		"pricedat":      now,
	}
	if err := updateLedger(ctx, oc.DB, &order, set); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order"})
		return
	}

	oc.notifyClientPriced(&order, invoiceNo, total)

	c.JSON(http.StatusOK, gin.H{
		"id":            orderID,
		"invoiceno":     invoiceNo,
		"subtotal":      subTotal,
		"vatamount":     vat,
		"total_amount":  total,
		"status":        models.StatusPriced,
		"paymentstatus": models.PaymentUnpaid,
	})
}

// nextInvoiceNo scans this vendor's existing codes and returns max-plus-one.
// Two pricing actions racing on different orders can compute the same number;
// that matches the source behavior and is accepted (see DESIGN.md).
func (oc *OrderController) nextInvoiceNo(ctx context.Context, vendorID string) (string, error) {
	cursor, err := oc.DB.OrderCollection.Find(ctx,
		bson.M{"vendorid": vendorID, "ownerid": vendorID, "invoiceno": bson.M{"$ne": ""}},
		options.Find().SetProjection(bson.M{"invoiceno": 1}))
	if err != nil {
		return "", err
	}
	defer cursor.Close(ctx)

	var codes []string
	for cursor.Next(ctx) {
		var doc struct {
			InvoiceNo string `bson:"invoiceno"`
		}
		if err := cursor.Decode(&doc); err != nil {
			continue
		}
		codes = append(codes, doc.InvoiceNo)
	}
	if err := cursor.Err(); err != nil {
		return "", err
	}

	prefix := services.DefaultInvoicePrefix
	if objID, err := primitive.ObjectIDFromHex(vendorID); err == nil {
		var vendor models.User
		if err := oc.DB.UserCollection.FindOne(ctx, bson.M{"_id": objID}).Decode(&vendor); err == nil && vendor.InvoicePrefix != "" {
			prefix = vendor.InvoicePrefix
		}
	}
	return services.NextInvoiceCode(codes, prefix), nil
}

// notifyClientPriced emails the client that the invoice is ready. Best
// effort, off the request path.
func (oc *OrderController) notifyClientPriced(order *models.Order, invoiceNo string, total float64) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		var client models.Client
		err := oc.DB.ClientCollection.FindOne(ctx,
			bson.M{"vendorid": order.VendorID, "accountid": order.ClientID}).Decode(&client)
		if err != nil || client.Email == "" {
			return
		}
		body := fmt.Sprintf("Your order has been priced.\n\nInvoice: %s\nTotal: %.2f\n", invoiceNo, total)
		if err := utils.SendEmail(client.Email, "Invoice "+invoiceNo, body); err != nil {
			log.Printf("invoice email for %s: %v", invoiceNo, err)
		}
	}()
}

// UpdateOrderStatus moves an order to any fulfillment status. No transition
// graph is enforced.
func (oc *OrderController) UpdateOrderStatus(c *gin.Context) {
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !models.ValidStatus(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
		return
	}
	oc.updateOrderField(c, bson.M{"status": req.Status})
}

func (oc *OrderController) UpdateOrderPayment(c *gin.Context) {
	var req struct {
		PaymentStatus string `json:"paymentstatus" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !models.ValidPaymentStatus(req.PaymentStatus) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payment status"})
		return
	}
	oc.updateOrderField(c, bson.M{"paymentstatus": req.PaymentStatus})
}

func (oc *OrderController) updateOrderField(c *gin.Context, set bson.M) {
	vendorID := middleware.AccountID(c)
	orderID := c.Param("id")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var order models.Order
	err := oc.DB.OrderCollection.FindOne(ctx,
		bson.M{"orderid": orderID, "vendorid": vendorID, "ownerid": vendorID}).Decode(&order)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve order"})
		}
		return
	}

	if err := updateLedger(ctx, oc.DB, &order, set); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": orderID})
}

// DeleteOrder removes the order from the vendor's ledger and, for registered
// clients, from the mirrored copy as well.
func (oc *OrderController) DeleteOrder(c *gin.Context) {
	vendorID := middleware.AccountID(c)
	orderID := c.Param("id")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var order models.Order
	err := oc.DB.OrderCollection.FindOne(ctx,
		bson.M{"orderid": orderID, "vendorid": vendorID, "ownerid": vendorID}).Decode(&order)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve order"})
		}
		return
	}

	if err := deleteLedger(ctx, oc.DB, &order); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete order"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": orderID, "deleted": true})
}

func (oc *OrderController) GetVendorOrders(c *gin.Context) {
	vendorID := middleware.AccountID(c)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := oc.DB.OrderCollection.Find(ctx,
		bson.M{"vendorid": vendorID, "ownerid": vendorID},
		options.Find().SetSort(bson.M{"created_at": -1}))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve orders"})
		return
	}
	defer cursor.Close(ctx)

	orders := []models.Order{}
	if err = cursor.All(ctx, &orders); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode orders"})
		return
	}

	c.JSON(http.StatusOK, orders)
}

func (oc *OrderController) GetVendorOrderByID(c *gin.Context) {
	vendorID := middleware.AccountID(c)
	orderID := c.Param("id")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var order models.Order
	err := oc.DB.OrderCollection.FindOne(ctx,
		bson.M{"orderid": orderID, "vendorid": vendorID, "ownerid": vendorID}).Decode(&order)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve order"})
		}
		return
	}

	c.JSON(http.StatusOK, order)
}

// GetMyOrders returns the client's own ledger copies.
func (oc *OrderController) GetMyOrders(c *gin.Context) {
	clientID := middleware.AccountID(c)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := oc.DB.OrderCollection.Find(ctx,
		bson.M{"ownerid": clientID},
		options.Find().SetSort(bson.M{"created_at": -1}))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve orders"})
		return
	}
	defer cursor.Close(ctx)

	orders := []models.Order{}
	if err = cursor.All(ctx, &orders); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode orders"})
		return
	}

	c.JSON(http.StatusOK, orders)
}
