package cmd

import (
	"log"
	"net/http"

	"nordlayer-server/config"
	"nordlayer-server/database"
	"nordlayer-server/handlers"
	"nordlayer-server/migrations"
	"nordlayer-server/services"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Run: func(cmd *cobra.Command, args []string) {
		runServer()
	},
}

func runServer() {
	// Load configuration
	if err := config.Load(); err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	// Connect to database
	db, err := database.Connect(config.AppConfig.DatabasePath)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	// Bring the schema up to date
	applied, err := migrations.Up(db.DB)
	if err != nil {
		log.Fatal("Failed to run migrations:", err)
	}
	if applied > 0 {
		log.Printf("Applied %d migration(s)", applied)
	}

	// Initialize Cloudinary for review image uploads
	if config.AppConfig.CloudinaryURL != "" {
		if err := services.InitializeCloudinary(config.AppConfig.CloudinaryURL); err != nil {
			log.Printf("WARNING: Failed to initialize Cloudinary: %v", err)
		}
	}

	// Initialize Telegram admin notifications
	services.InitializeTelegram(config.AppConfig.TelegramBotToken, config.AppConfig.TelegramChatIDs)

	// Set Gin mode
	if config.AppConfig.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create Gin router
	router := gin.Default()

	// Add CORS middleware
	corsHandler := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	})

	router.Use(func(c *gin.Context) {
		corsHandler.HandlerFunc(c.Writer, c.Request)

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"message": "nordlayer server is running",
		})
	})

	// Initialize handlers
	handlers.InitializeHandlers(db)

	// API routes
	api := router.Group("/api/v1")
	{
		// Authentication routes
		auth := api.Group("/auth")
		{
			auth.POST("/login", handlers.Login)
			auth.POST("/register", handlers.RegisterAdmin)
			auth.GET("/validate", handlers.AuthMiddleware(), handlers.ValidateToken)
		}

		// Color routes
		colors := api.Group("/colors")
		{
			colors.GET("/", handlers.GetColors)
			colors.GET("/types", handlers.GetColorTypes)
			colors.GET("/:id", handlers.GetColor)
			colors.POST("/", handlers.AuthMiddleware(), handlers.AdminMiddleware(), handlers.CreateColor)
			colors.PUT("/:id", handlers.AuthMiddleware(), handlers.AdminMiddleware(), handlers.UpdateColor)
			colors.DELETE("/:id", handlers.AuthMiddleware(), handlers.AdminMiddleware(), handlers.DeleteColor)
		}

		// Service routes
		servicesGroup := api.Group("/services")
		{
			servicesGroup.GET("/", handlers.GetServices)
			servicesGroup.GET("/:id", handlers.GetService)
			servicesGroup.POST("/", handlers.AuthMiddleware(), handlers.AdminMiddleware(), handlers.CreateService)
			servicesGroup.PUT("/:id", handlers.AuthMiddleware(), handlers.AdminMiddleware(), handlers.UpdateService)
			servicesGroup.DELETE("/:id", handlers.AuthMiddleware(), handlers.AdminMiddleware(), handlers.DeleteService)
		}

		// Order routes
		orders := api.Group("/orders")
		{
			orders.POST("/", handlers.CreateOrder)
			orders.GET("/", handlers.AuthMiddleware(), handlers.AdminMiddleware(), handlers.GetOrders)
			orders.GET("/:id", handlers.AuthMiddleware(), handlers.AdminMiddleware(), handlers.GetOrder)
			orders.PUT("/:id", handlers.AuthMiddleware(), handlers.AdminMiddleware(), handlers.UpdateOrder)
			orders.DELETE("/:id", handlers.AuthMiddleware(), handlers.AdminMiddleware(), handlers.DeleteOrder)
		}

		// Review routes
		reviews := api.Group("/reviews")
		{
			reviews.GET("/", handlers.GetReviews)
			reviews.GET("/stats", handlers.GetReviewStats)
			reviews.POST("/", handlers.CreateReview)
			reviews.PUT("/:id/moderate", handlers.AuthMiddleware(), handlers.AdminMiddleware(), handlers.ModerateReview)
			reviews.POST("/:id/images", handlers.AuthMiddleware(), handlers.AdminMiddleware(), handlers.UploadReviewImage)
			reviews.DELETE("/:id", handlers.AuthMiddleware(), handlers.AdminMiddleware(), handlers.DeleteReview)
		}

		// File routes
		files := api.Group("/files")
		{
			files.POST("/upload", handlers.UploadFile)
			files.GET("/download/:name", handlers.DownloadFile)
			files.GET("/proxy/s3/*path", handlers.ProxyS3File)
		}
	}

	// Start server
	port := config.AppConfig.ServerPort
	log.Printf("Server starting on port %s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
