package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/sirupsen/logrus"

	"schoolgrid_go/config"
	"schoolgrid_go/database"
	"schoolgrid_go/database/seeders"
	"schoolgrid_go/middleware"
	"schoolgrid_go/routes"
	"schoolgrid_go/services"
	"schoolgrid_go/services/websocket"
)

func init() {
	// Load configuration
	config.LoadConfig()

	// Initialize logging
	setupLogging()

	// Connect to database
	database.Connect()

	if os.Getenv("SEED_DB") == "true" {
		seeders.SeedAll()
	}
}

func main() {
	// Create WebSocket hub first
	wsHub := websocket.NewHub()
	go wsHub.Run()

	// Grid and persistence services
	gridService := services.NewGridService()
	autosaveService := services.NewAutosaveService(config.AppConfig.AutosaveDebounce, services.DBDocumentWriter, wsHub)
	archiveService := services.NewArchiveService(gridService)

	// Background log cache flushing
	logFlushService := services.NewLogFlushService()
	logFlushService.StartScheduler()

	// Nightly archive export
	if config.AppConfig.EnableArchiveCron {
		if err := archiveService.StartNightly(""); err != nil {
			logrus.WithError(err).Warn("Could not start archive scheduler")
		}
	}

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: customErrorHandler,
		BodyLimit:    int(config.AppConfig.MaxFileSize),
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(helmet.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     "*",
		AllowMethods:     "GET,POST,HEAD,PUT,DELETE,PATCH,OPTIONS",
		AllowHeaders:     "Origin,Content-Type,Accept,Authorization",
		AllowCredentials: true,
	}))
	app.Use(middleware.LoggerMiddleware())

	// API routes
	routes.SetupRoutes(app, wsHub, gridService, autosaveService, archiveService)

	// 404 handler
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error":  "Route not found",
			"path":   c.Path(),
			"method": c.Method(),
		})
	})

	// Graceful shutdown: flush pending autosaves before exit
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit

		logrus.Info("Shutting down, flushing pending saves...")
		autosaveService.Flush()
		archiveService.Stop()
		if err := app.Shutdown(); err != nil {
			logrus.WithError(err).Error("Server shutdown error")
		}
	}()

	addr := ":" + config.AppConfig.Port
	logrus.Infof("SchoolGrid API starting on port %s (env: %s)", config.AppConfig.Port, config.AppConfig.AppEnv)

	if err := app.Listen(addr); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}

// setupLogging configures the logging system
func setupLogging() {
	logrus.SetFormatter(&logrus.JSONFormatter{})

	level, err := logrus.ParseLevel(config.AppConfig.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)

	if config.AppConfig.AppEnv == "development" || config.AppConfig.LogFile == "" {
		logrus.SetOutput(os.Stdout)
		return
	}

	if err := os.MkdirAll("logs", 0755); err != nil {
		log.Printf("Warning: Could not create logs directory: %v", err)
	}
	file, err := os.OpenFile(config.AppConfig.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err == nil {
		logrus.SetOutput(file)
	}
}

// customErrorHandler handles application errors
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	logrus.WithFields(logrus.Fields{
		"error":  err.Error(),
		"path":   c.Path(),
		"method": c.Method(),
		"ip":     c.IP(),
		"status": code,
	}).Error("Request error")

	return c.Status(code).JSON(fiber.Map{
		"error":  message,
		"code":   code,
		"path":   c.Path(),
		"method": c.Method(),
	})
}
