package routes

import (
	"backend/config"
	"backend/controllers"
	"backend/middleware"
	"backend/models"
	"backend/services"

	"github.com/gin-gonic/gin"
)

func InitializeRoutes(router *gin.Engine, db *config.Database, scan *services.ScanClient) {
	auth := &controllers.AuthController{DB: db}
	orders := &controllers.OrderController{DB: db}
	products := &controllers.ProductController{DB: db}
	clients := &controllers.ClientController{DB: db}
	bills := &controllers.PurchaseBillController{DB: db, Scan: scan}
	reports := &controllers.ReportController{DB: db}
	admin := &controllers.AdminController{DB: db}

	router.POST("/login", auth.Login)
	router.POST("/registration", auth.RegisterClient)
	router.POST("/vendor-signup", auth.RegisterVendor)
	router.GET("/vendors", auth.ListVendors)
	router.Static("/uploads", "./uploads")

	client := router.Group("/client")
	client.Use(middleware.AuthMiddleware(models.RoleClient))
	{
		client.GET("/profile", auth.GetProfile)
		client.PUT("/profile", auth.UpdateProfile)
		client.GET("/catalog/:vendorid", products.GetCatalog)
		client.POST("/order", orders.CreateCustomerOrder)
		client.GET("/orders", orders.GetMyOrders)
	}

	vendor := router.Group("/vendor")
	vendor.Use(middleware.AuthMiddleware(models.RoleVendor))
	{
		vendor.GET("/profile", auth.GetProfile)
		vendor.PUT("/profile", auth.UpdateProfile)

		vendor.GET("/clients", clients.ListClients)
		vendor.POST("/clients", clients.AddClient)
		vendor.GET("/clients/:id", clients.GetClient)
		vendor.PUT("/clients/:id", clients.UpdateClient)
		vendor.DELETE("/clients/:id", clients.DeleteClient)

		vendor.GET("/products", products.GetVendorProducts)
		vendor.POST("/products", products.CreateProduct)
		vendor.GET("/products/:id", products.GetProduct)
		vendor.PUT("/products/:id", products.EditProduct)
		vendor.DELETE("/products/:id", products.DeleteProduct)
		vendor.POST("/products/:id/photo", products.UploadProductPhoto)

		vendor.GET("/orders", orders.GetVendorOrders)
		vendor.POST("/orders", orders.CreateManualInvoice)
		vendor.GET("/orders/:id", orders.GetVendorOrderByID)
		vendor.PUT("/orders/:id/price", orders.PriceOrder)
		vendor.PUT("/orders/:id/status", orders.UpdateOrderStatus)
		vendor.PUT("/orders/:id/payment", orders.UpdateOrderPayment)
		vendor.DELETE("/orders/:id", orders.DeleteOrder)

		vendor.GET("/purchasebills", bills.ListBills)
		vendor.POST("/purchasebills", bills.CreateBill)
		vendor.GET("/purchasebills/:id", bills.GetBill)
		vendor.DELETE("/purchasebills/:id", bills.DeleteBill)
		vendor.POST("/purchasebills/scan", bills.ScanBill)

		vendor.GET("/reports/sales.csv", reports.SalesCSV)
		vendor.GET("/reports/purchases.csv", reports.PurchasesCSV)
		vendor.GET("/reports/clients.csv", reports.ClientPnLCSV)
	}

	adminGroup := router.Group("/admin")
	adminGroup.Use(middleware.AuthMiddleware(models.RoleAdmin))
	{
		adminGroup.GET("/accounts", admin.ListAccounts)
		adminGroup.PUT("/accounts/:id/status", admin.SetAccountStatus)
		adminGroup.GET("/dashboard", admin.Dashboard)
		adminGroup.POST("/signup-tokens", admin.CreateSignupToken)
		adminGroup.GET("/signup-tokens", admin.ListSignupTokens)
	}
}
