package main

import (
	"log"
	"net/http"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"parish_app_echo/internal/handlers"
	authMiddleware "parish_app_echo/internal/middleware"
	"parish_app_echo/internal/models"
	"parish_app_echo/internal/services"
)

// RequestValidator wires go-playground/validator into echo so request DTOs
// are checked before handler logic runs
type RequestValidator struct {
	validator *validator.Validate
}

func (v *RequestValidator) Validate(i interface{}) error {
	if err := v.validator.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment")
	}

	// Initialize Firebase
	authClient, err := services.InitFirebase()
	if err != nil {
		log.Printf("Warning: Firebase initialization failed: %v", err)
		log.Println("Auth features will not work until valid credentials are provided")
	}

	// Initialize Database
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL not set")
	}
	db, err := services.InitDB(databaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := services.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run database migrations: %v", err)
	}

	// Initialize Redis (optional; previews fall back to direct lookups)
	var cache *services.RedisCache
	if redisURL := os.Getenv("REDIS_URL"); redisURL != "" {
		cache, err = services.NewRedisCache(redisURL)
		if err != nil {
			log.Printf("Warning: Redis initialization failed: %v", err)
			cache = nil
		}
	}

	// Initialize external services
	gateway := services.NewRazorpayService()
	mailer := services.NewEmailService()
	media, err := services.NewCloudinaryService()
	if err != nil {
		log.Fatalf("Failed to initialize media host client: %v", err)
	}

	donationService := services.NewDonationService(db, gateway, mailer)
	galleryService := services.NewGalleryService(db, media, cache)

	// Create Echo instance
	e := echo.New()
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.HTTPErrorHandler = authMiddleware.CustomErrorHandler
	e.Validator = &RequestValidator{validator: validator.New()}

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authClient, db)
	donationHandler := handlers.NewDonationHandler(donationService)
	galleryHandler := handlers.NewGalleryHandler(galleryService)
	parishonerHandler := handlers.NewParishonerHandler(db)
	familyHandler := handlers.NewFamilyHandler(db)
	wardHandler := handlers.NewWardHandler(db)
	miscHandler := handlers.NewMiscHandler(db)

	// Auth routes
	e.POST("/auth/login", authHandler.HandleLogin)
	e.POST("/auth/logout", authHandler.HandleLogout)

	// Public routes
	e.POST("/api/donations/orders", donationHandler.CreateOrder)
	e.POST("/api/donations/verify", donationHandler.VerifyPayment)
	e.GET("/api/gallery/folders", galleryHandler.ListFolders)
	e.GET("/api/events", miscHandler.ListEvents)
	e.GET("/api/bethkati", miscHandler.ListBethkati)

	// Public but personalized when a session is present
	e.GET("/api/gallery/:id/images", galleryHandler.ListImages,
		authMiddleware.OptionalAuth(authClient, db))

	// Protected routes
	protected := e.Group("/api")
	protected.Use(authMiddleware.RequireAuth(authClient, db))

	protected.GET("/me", authHandler.Me)

	protected.POST("/gallery", galleryHandler.UploadGallery)
	protected.POST("/gallery/images/:id/like", galleryHandler.ToggleLike)

	protected.GET("/parishoners", parishonerHandler.ListParishoners)
	protected.POST("/parishoners", parishonerHandler.AddParishoner)
	protected.PATCH("/parishoners/:id", parishonerHandler.UpdateParishoner)
	protected.POST("/parishoners/:id/family", parishonerHandler.AssignToFamily)
	protected.PATCH("/parishoners/:id/mobile", parishonerHandler.UpdateMobile)
	protected.POST("/parishoners/link", parishonerHandler.LinkParishoner)
	protected.GET("/parishoners/me", parishonerHandler.Me)

	protected.GET("/families", familyHandler.ListFamilies)
	protected.POST("/families", familyHandler.AddFamily)
	protected.GET("/families/:id/members", familyHandler.ListMembers)

	protected.POST("/events", miscHandler.CreateEvent)
	protected.POST("/bethkati", miscHandler.CreateBethkati)

	// Admin routes
	admin := protected.Group("")
	admin.Use(authMiddleware.RequireRole(models.RoleAdmin, models.RoleDeveloper))

	admin.GET("/donations", donationHandler.ListAll)
	admin.GET("/donations/inbox", donationHandler.ListInbox)
	admin.GET("/donations/history", donationHandler.ListHistory)
	admin.POST("/donations/:id/receipt", donationHandler.IssueReceipt)

	admin.GET("/wards", wardHandler.ListWards)
	admin.GET("/wards/:id", wardHandler.GetWard)
	admin.POST("/wards", wardHandler.AddWard)

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	e.Logger.Fatal(e.Start(":" + port))
}
