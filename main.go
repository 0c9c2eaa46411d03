package main

import (
	"log"
	"os"
	"strings"
	"time"

	"backend/config"
	"backend/middleware"
	"backend/routes"
	"backend/services"
	"backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-co-op/gocron"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}
	log.Printf("Running in %s mode", gin.Mode())

	r := gin.Default()

	middleware.InitMetrics()
	r.Use(middleware.PrometheusMiddleware())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	origins := []string{"http://localhost:5173"}
	if env := os.Getenv("CORS_ORIGINS"); env != "" {
		origins = strings.Split(env, ",")
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
	}))

	db, err := config.ConnectDatabase(os.Getenv("MONGO_URI"))
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}
	log.Println("Connected to MongoDB")

	scan := services.NewScanClient(os.Getenv("SCAN_API_URL"), os.Getenv("SCAN_API_KEY"))

	s := gocron.NewScheduler(time.UTC)
	s.Every(1).Day().At("01:01").Do(func() { utils.CheckOverdueInvoices(db) })
	s.StartAsync()

	routes.InitializeRoutes(r, db, scan)

	port := os.Getenv("PORT")
	if port == "" {
		port = "1414"
	}

	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Server exited: %v", err)
	}
}
