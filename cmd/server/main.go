package main

import (
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/clubworks/clubhub/internal/config"
	"github.com/clubworks/clubhub/internal/database"
	"github.com/clubworks/clubhub/internal/handlers"
	"github.com/clubworks/clubhub/internal/middleware"
	"github.com/clubworks/clubhub/internal/services"
	"github.com/clubworks/clubhub/internal/storage"
	"github.com/clubworks/clubhub/internal/types"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	swagger "github.com/gofiber/swagger"

	_ "github.com/clubworks/clubhub/docs/api" // Swagger docs
)

// @title ClubHub API
// @version 1.0.0
// @description Multi-tenant club portal: shortlinks, forms, events and link lists
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url https://github.com/clubworks/clubhub

// @host localhost:3000
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey CookieAuth
// @in cookie
// @name cookie_session

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Blob storage for club assets, form uploads and event documents
	store, err := storage.NewLocalStore(cfg.StorageRoot, "/files")
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: customErrorHandler,
		BodyLimit:    60 * 1024 * 1024,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())

	// Prometheus metrics
	prometheus := fiberprometheus.New("clubhub")
	prometheus.RegisterAt(app, "/metrics")
	app.Use(prometheus.Middleware)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// Uploaded assets are served straight from the storage root
	app.Static("/files", cfg.StorageRoot)

	// Create handlers
	authHandler := &handlers.AuthHandler{DB: db, Cfg: cfg}
	shortcutHandler := &handlers.ShortcutHandler{DB: db}
	formHandler := &handlers.FormHandler{DB: db, Store: store}
	eventHandler := &handlers.EventHandler{DB: db, Store: store}
	clubHandler := &handlers.ClubHandler{DB: db, Store: store}
	linkListHandler := &handlers.LinkListHandler{DB: db}
	adminHandler := &handlers.AdminHandler{DB: db, Store: store, Cfg: cfg}

	authClub := middleware.AuthClub(cfg, db)
	authAdmin := middleware.AuthAdmin(cfg, db)

	// API routes under /api
	api := app.Group("/api")
	api.Use(middleware.VersionMiddleware())

	// Health
	api.Get("/health", func(c *fiber.Ctx) error {
		result := services.HealthCheck(cfg, db)
		status := fiber.StatusOK
		if result.Status != "healthy" {
			status = fiber.StatusServiceUnavailable
		}
		return c.Status(status).JSON(result)
	})

	// Account routes
	api.Post("/auth/signup", authHandler.Signup)
	api.Post("/auth/login", authHandler.Login)
	api.Post("/auth/logout", authHandler.Logout)
	api.Get("/auth/me", authClub, authHandler.Me)

	// Shortlink management
	api.Post("/shortcuts", authClub, shortcutHandler.Create)
	api.Get("/shortcuts", authClub, shortcutHandler.List)
	api.Put("/shortcuts/:id", authClub, shortcutHandler.Update)
	api.Delete("/shortcuts/:id", authClub, shortcutHandler.Delete)

	// Forms. The public route goes first so "public" never matches :formId.
	api.Get("/forms/public/:formId", formHandler.GetPublic)
	api.Post("/forms", authClub, formHandler.Save)
	api.Get("/forms", authClub, formHandler.List)
	api.Get("/forms/:formId", authClub, formHandler.Get)
	api.Delete("/forms/:formId", authClub, formHandler.Delete)
	api.Get("/forms/:formId/responses", authClub, formHandler.Responses)
	api.Delete("/forms/:formId/responses/:responseId", authClub, formHandler.DeleteResponse)

	// Events
	api.Get("/events/approved", eventHandler.Approved)
	api.Post("/events", authClub, eventHandler.Create)
	api.Get("/events", authClub, eventHandler.Mine)
	api.Post("/events/:id/budget", authClub, eventHandler.UploadBudget)
	api.Post("/events/:id/receipts", authClub, eventHandler.UploadReceipts)

	// Club profiles
	api.Get("/club", authClub, clubHandler.Get)
	api.Put("/club", authClub, clubHandler.Update)
	api.Get("/clubs", clubHandler.Explore)
	api.Get("/clubs/:name", clubHandler.GetByName)

	// Link lists
	api.Get("/linklist/club/:clubName", linkListHandler.Public)
	api.Post("/linklist/reorder", authClub, linkListHandler.Reorder)
	api.Post("/linklist", authClub, linkListHandler.Add)
	api.Get("/linklist", authClub, linkListHandler.Mine)
	api.Put("/linklist/:id", authClub, linkListHandler.Edit)
	api.Delete("/linklist/:id", authClub, linkListHandler.Delete)

	// Announcements
	api.Get("/alerts", adminHandler.ListAlerts)

	// Admin surface
	admin := api.Group("/admin", authAdmin)
	admin.Post("/clubs", adminHandler.CreateClub)
	admin.Get("/clubs", adminHandler.ListClubs)
	admin.Put("/clubs/:id", adminHandler.UpdateClub)
	admin.Delete("/clubs/:id", adminHandler.DeleteClub)
	admin.Post("/clubs/:id/reset-password", adminHandler.ResetPassword)
	admin.Get("/events", adminHandler.ListEvents)
	admin.Post("/events/:id/approve", adminHandler.ApproveEvent)
	admin.Delete("/events/:id", adminHandler.DeleteEvent)
	admin.Post("/alerts", adminHandler.CreateAlert)
	admin.Delete("/alerts/:id", adminHandler.DeleteAlert)

	// Public form submission, outside /api so shared links stay short
	app.Post("/submit-form/:formId", formHandler.Submit)

	// Shortlink catch-all. Registered after every static and API route so a
	// shortlink id can never shadow a real route, and before the 404 handler
	// so unknown ids still fall through to it.
	app.Get("/:shortlink", shortcutHandler.Redirect)

	// 404 handler
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":    fiber.StatusNotFound,
			"message":   "[404] Resource Not Found",
			"ok":        false,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"url":       c.OriginalURL(),
		})
	})

	log.Printf("Authorizer will be initialized on first authenticated request")

	// Graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Println("Gracefully shutting down...")
		_ = app.Shutdown()
	}()

	// Start server
	port := cfg.Port
	log.Printf("Starting server on port %s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}

	log.Println("Server stopped")
}

// customErrorHandler handles errors globally
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := err.Error()
	errorType := "unknown"

	// Check if it's a Fiber error
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	// Check for application errors carrying their own status and type
	var customErr *types.CustomError
	if errors.As(err, &customErr) {
		code = customErr.Code
		message = customErr.Message
		errorType = customErr.Type
	}

	return c.Status(code).JSON(fiber.Map{
		"status":    code,
		"message":   message,
		"ok":        false,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"url":       c.OriginalURL(),
		"type":      errorType,
	})
}
