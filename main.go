package main

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/motoshop/motoshop-api/config"
	"github.com/motoshop/motoshop-api/controllers"
	"github.com/motoshop/motoshop-api/middleware"
	"github.com/motoshop/motoshop-api/models"
	"github.com/motoshop/motoshop-api/services"
)

func main() {
	log.Println("Starting MotoShop API server...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	if err := config.ConnectDatabase(cfg.DatabaseURL); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto-migrate database models
	db := config.GetDB()
	if err := db.AutoMigrate(&models.AdminUser{}, &models.Motorcycle{}, &models.Invoice{}); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed successfully")

	// Initialize the image store backend
	if cfg.ImageStoreBackend == "s3" {
		store, err := services.NewS3ImageStore(cfg)
		if err != nil {
			log.Fatalf("Failed to initialize S3 image store: %v", err)
		}
		services.InitImageStore(store)
		log.Printf("Using S3 image store (bucket %s)", cfg.AWSS3Bucket)
	} else {
		services.InitImageStore(services.NewLocalImageStore(cfg.UploadDir))
		log.Printf("Using local image store at %s", cfg.UploadDir)
	}

	// First-run provisioning and sample data
	setup := services.NewSetupService(db)
	if err := setup.EnsureAdminUser(cfg.AdminUsername, cfg.AdminPassword); err != nil {
		if errors.Is(err, services.ErrMissingAdminPassword) {
			log.Println("WARNING: no admin account exists and ADMIN_PASSWORD is not set; admin area will be inaccessible until one is provisioned")
		} else {
			log.Fatalf("Failed to provision admin user: %v", err)
		}
	}
	if err := setup.SeedCatalog(); err != nil {
		log.Fatalf("Failed to seed catalog: %v", err)
	}
	if err := setup.SeedInvoices(); err != nil {
		log.Fatalf("Failed to seed invoices: %v", err)
	}

	// Start server
	router := setupRouter()
	port := ":" + cfg.Port
	log.Printf("Server is running on http://localhost%s", port)
	if err := router.Run(port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// setupRouter builds the Gin engine with all application routes
func setupRouter() *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: true,
	}))

	v1 := router.Group("/api/v1")
	{
		// Health check endpoint
		v1.GET("/health", healthCheck)

		// Public catalog
		v1.GET("/catalog", controllers.ListCatalog)
		v1.GET("/catalog/featured", controllers.GetFeatured)
		v1.GET("/catalog/:id", controllers.GetMotorcycle)
		v1.GET("/uploads/:filename", controllers.GetUploadedImage)

		// Authentication
		v1.POST("/auth/login", controllers.Login)
		v1.POST("/auth/logout", controllers.Logout)

		// Admin area, gated by the session middleware
		admin := v1.Group("/admin", middleware.RequireAdmin())
		{
			admin.GET("/motorcycles", controllers.ListMotorcycles)
			admin.POST("/motorcycles", controllers.CreateMotorcycle)
			admin.PUT("/motorcycles/:id", controllers.UpdateMotorcycle)
			admin.DELETE("/motorcycles/:id", controllers.DeleteMotorcycle)
			admin.GET("/motorcycles/export/pdf", controllers.ExportCatalogPDF)

			admin.GET("/invoices", controllers.ListInvoices)
			admin.POST("/invoices", controllers.CreateInvoice)
			admin.GET("/invoices/:id", controllers.GetInvoice)
		}
	}

	return router
}

// healthCheck handles the health check endpoint
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "MotoShop API is running",
	})
}
