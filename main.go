package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	html "github.com/gofiber/template/html/v2"
	"github.com/streadway/amqp"
	"go.uber.org/zap"

	"userhub/internal/config"
	"userhub/internal/database"
	"userhub/internal/handlers"
	"userhub/internal/middleware"
	"userhub/internal/models"
	"userhub/internal/repositories"
	"userhub/internal/services"
	"userhub/pkg/rabbitmq"
)

func main() {
	cfg := config.Load()

	var logger *zap.Logger
	var err error
	switch cfg.LogLevel {
	case "debug":
		logger, err = zap.NewDevelopment()
	default:
		logger, err = zap.NewProduction()
	}
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	db, err := database.Open(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		logger.Fatal("Failed to open database", zap.Error(err))
	}

	// --- Optional RabbitMQ client for user lifecycle events ---
	var events services.EventPublisher
	if cfg.RabbitMQURL != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
		if err != nil {
			logger.Fatal("Failed to initialize RabbitMQ client", zap.Error(err))
		}
		defer mqClient.Close()
		events = mqClient

		if err := mqClient.ConsumeUserEvents(func(msg amqp.Delivery) error {
			logger.Info("user event", zap.ByteString("body", msg.Body))
			return nil
		}); err != nil {
			logger.Warn("Failed to start RabbitMQ consumer", zap.Error(err))
		}
	}

	// --- Repositories ---
	userRepo := repositories.NewGORMUserRepository(db)
	roleRepo := repositories.NewGORMRoleRepository(db)
	sessionRepo := repositories.NewGORMSessionRepository(db)

	// --- Services ---
	roleService := services.NewRoleService(roleRepo)
	userService := services.NewUserService(userRepo, roleService, events, logger)
	authService := services.NewAuthService(userRepo, roleService, sessionRepo, events, logger)

	if cfg.SeedAdmin {
		seedAdmin(userService, roleService, logger)
	}

	// --- Handlers ---
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService, roleService)
	roleHandler := handlers.NewRoleHandler(roleService)
	debugHandler := handlers.NewDebugHandler(userRepo)
	pageHandler := handlers.NewPageHandler(authService)

	// --- Fiber app ---
	engine := html.New(cfg.TemplatesDir, ".html")
	app := fiber.New(fiber.Config{
		Views: engine,
	})

	app.Use(fiberlogger.New())
	app.Use(middleware.LoadUser(authService))

	// --- API routes ---
	api := app.Group("/api")
	authHandler.RegisterRoutes(api)
	userHandler.RegisterRoutes(api)
	roleHandler.RegisterRoutes(api, middleware.RequireRole(models.RoleAdmin))
	debugHandler.RegisterRoutes(api)

	// --- Form-based surface ---
	pageHandler.RegisterRoutes(app)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// --- Start HTTP server ---
	logger.Info("Starting server", zap.String("port", cfg.AppPort))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(cfg.AppPort); err != nil {
			logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}
	logger.Info("Server gracefully stopped")
}

// seedAdmin ensures both roles exist and recreates the admin account with
// the well-known seed password so operators always have a working login.
func seedAdmin(userService *services.UserService, roleService *services.RoleService, logger *zap.Logger) {
	adminRole, err := roleService.EnsureRole(models.RoleAdmin)
	if err != nil {
		logger.Error("Failed to ensure admin role", zap.Error(err))
		return
	}
	userRole, err := roleService.EnsureRole(models.RoleUser)
	if err != nil {
		logger.Error("Failed to ensure user role", zap.Error(err))
		return
	}

	// Drop a stale admin so the seed password always applies.
	if existing, err := userService.GetUserByUsername("admin"); err == nil && existing != nil {
		if err := userService.DeleteUser(existing.ID); err != nil {
			logger.Error("Failed to remove stale admin", zap.Error(err))
			return
		}
	}

	admin := &models.User{
		Username: "admin",
		Password: "admin123",
		Name:     "Admin",
		LastName: "Adminov",
		Age:      30,
		Roles:    []models.Role{*adminRole, *userRole},
	}
	if err := userService.SaveUser(admin); err != nil {
		logger.Error("Failed to seed admin user", zap.Error(err))
		return
	}
	logger.Info("Seeded admin user", zap.Uint("user_id", admin.ID))
}
