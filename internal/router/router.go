package router

import (
	"log"

	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/proconnect-app/backend/internal/handlers"
	"github.com/proconnect-app/backend/internal/middleware"
	"github.com/proconnect-app/backend/internal/models"
	"github.com/proconnect-app/backend/internal/repositories"
	"github.com/proconnect-app/backend/pkg/config"
	"github.com/proconnect-app/backend/pkg/mailer"
	"github.com/proconnect-app/backend/pkg/media"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Logger())
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	log.Println("Global middleware configured.")
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, pgdb *gorm.DB, mgClient *mongo.Client, cfg *config.Config) {
	// AutoMigrate PostgreSQL models
	if err := pgdb.AutoMigrate(&models.Notification{}); err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}
	log.Println("PostgreSQL auto-migrations completed.")

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Initialize repositories and collaborators ---
	mongoDB := mgClient.Database("proconnect")
	userRepo := repositories.NewMongoUserRepository(mongoDB)
	requestRepo := repositories.NewMongoConnectionRequestRepository(mongoDB)
	postRepo := repositories.NewMongoPostRepository(mongoDB)
	notificationRepo := repositories.NewPostgresNotificationRepository(pgdb)

	mail := mailer.NewClient(cfg.MailtrapEndpoint, cfg.MailtrapToken, cfg.EmailFrom, cfg.EmailFromName)

	mediaStore, err := media.NewCloudinaryStore(cfg.CloudinaryURL, "proconnect")
	if err != nil {
		log.Fatalf("Failed to initialize media store: %v", err)
	}

	secureCookies := cfg.Env == "production"

	// --- Unprotected routes for authentication ---
	authGroup := e.Group("/api/v1/auth")
	authHandler := handlers.NewAuthHandler(userRepo, mail, cfg.JWTSecret, cfg.ClientURL, secureCookies)
	authHandler.RegisterAuthRoutes(authGroup)
	log.Println("Auth routes configured.")

	// --- Protected routes (require a valid session) ---
	api := e.Group("/api/v1")
	api.Use(middleware.JWTAuthMiddleware())
	authHandler.RegisterProtectedAuthRoutes(api)

	// User profile routes
	userHandler := handlers.NewUserHandler(userRepo, mediaStore)
	userHandler.RegisterUserRoutes(api)
	log.Println("User profile routes configured.")

	// Connection routes
	connectionHandler := handlers.NewConnectionHandler(requestRepo, userRepo, notificationRepo, mail, cfg.ClientURL)
	connectionHandler.RegisterConnectionRoutes(api)
	log.Println("Connection routes configured.")

	// Post routes
	postHandler := handlers.NewPostHandler(postRepo, userRepo, notificationRepo, mediaStore, mail, cfg.ClientURL)
	postHandler.RegisterPostRoutes(api)
	log.Println("Post routes configured.")

	// Notification routes
	notificationHandler := handlers.NewNotificationHandler(notificationRepo, userRepo, postRepo)
	notificationHandler.RegisterNotificationRoutes(api)
	log.Println("Notification routes configured.")

	log.Println("All routes configured.")
}
