// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/anenterprise-lab/pet-food-backend/internal/config"
	"github.com/anenterprise-lab/pet-food-backend/internal/handlers"
	"github.com/anenterprise-lab/pet-food-backend/internal/middleware"
	"github.com/anenterprise-lab/pet-food-backend/internal/services"
	"github.com/anenterprise-lab/pet-food-backend/internal/utils"
)

func Initialize(db *gorm.DB, cfg *config.Config) *gin.Engine {
	// Initialize services
	storageService, err := services.NewStorageService(cfg)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to initialize storage service")
	}

	authService := services.NewAuthService(db, cfg)
	productService := services.NewProductService(db)
	orderService := services.NewOrderService(db)
	petService := services.NewPetService(db)
	memoryService := services.NewMemoryService(db)
	leadService := services.NewLeadService(db)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	productHandler := handlers.NewProductHandler(productService)
	orderHandler := handlers.NewOrderHandler(orderService)
	petHandler := handlers.NewPetHandler(petService)
	memoryHandler := handlers.NewMemoryHandler(memoryService)
	uploadHandler := handlers.NewUploadHandler(storageService)
	leadHandler := handlers.NewLeadHandler(leadService)

	// Set JWT secret
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS())
	r.Use(middleware.GeneralRateLimit())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		api.POST("/upload", middleware.UploadRateLimit(), uploadHandler.UploadImage)

		// Product routes
		products := api.Group("/products")
		{
			products.GET("", productHandler.GetProducts)
			products.POST("/add-stock", productHandler.AddStock)
			products.GET("/:id", productHandler.GetProduct)

			admin := products.Group("")
			admin.Use(middleware.AuthRequired(), middleware.AdminRequired())
			{
				admin.POST("", productHandler.CreateProduct)
				admin.PUT("/:id", productHandler.UpdateProduct)
				admin.DELETE("/:id", productHandler.DeleteProduct)
			}
		}

		// Order routes
		orders := api.Group("/orders")
		orders.Use(middleware.AuthRequired())
		{
			orders.POST("", orderHandler.PlaceOrder)
			orders.GET("/myorders", orderHandler.GetMyOrders)
			orders.GET("/:id", orderHandler.GetOrder)

			admin := orders.Group("")
			admin.Use(middleware.AdminRequired())
			{
				admin.GET("", orderHandler.GetAllOrders)
				admin.POST("/generate-picklist", orderHandler.GeneratePicklist)
				admin.POST("/scan-item", orderHandler.ScanItem)
			}
		}

		// User routes
		users := api.Group("/users")
		{
			users.POST("/register", middleware.AuthRateLimit(), authHandler.Register)
			users.POST("/login", middleware.AuthRateLimit(), authHandler.Login)
			users.GET("/profile", middleware.AuthRequired(), authHandler.GetProfile)
			users.GET("", middleware.AuthRequired(), middleware.AdminRequired(), authHandler.GetUsers)
		}

		// Pet & mood routes
		pets := api.Group("/pets")
		pets.Use(middleware.AuthRequired())
		{
			pets.POST("", petHandler.CreatePet)
			pets.GET("/mypets", petHandler.GetMyPets)
			pets.PUT("/:id/avatar", petHandler.UpdateAvatar)
		}

		moods := api.Group("/moods")
		moods.Use(middleware.AuthRequired())
		{
			moods.POST("/:petId", petHandler.LogMood)
			moods.GET("/:petId", petHandler.GetMoods)
		}

		// Memory wall routes
		memories := api.Group("/memories")
		{
			memories.GET("", memoryHandler.GetMemories)
			memories.POST("", middleware.AuthRequired(), memoryHandler.CreateMemory)
			memories.POST("/:id/light", middleware.AuthRequired(), memoryHandler.LightCandle)
		}

		// B2B lead capture
		api.POST("/leads", leadHandler.CreateLead)
	}

	// Uploaded images are served verbatim by path
	r.Static(cfg.Upload.PublicPath, cfg.Upload.Dir)

	return r
}
