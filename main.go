package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"styleshop/internal/config"
	"styleshop/internal/database"
	"styleshop/internal/handlers"
	"styleshop/internal/middleware"
	"styleshop/internal/repositories"
	"styleshop/internal/services"
	"styleshop/pkg/rabbitmq"
)

func main() {
	cfg := config.Load()
	log := config.NewLogger(cfg.Logger)

	// --- Database ---
	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	// --- RabbitMQ ---
	// The broker is optional in development: without it the API still runs,
	// it just emits no fulfillment events.
	var publisher services.EventPublisher
	mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL}, log)
	if err != nil {
		log.Warn().Err(err).Msg("RabbitMQ unavailable, order events disabled")
	} else {
		publisher = mqClient
		defer mqClient.Close()
	}

	// --- Repositories ---
	userRepo := repositories.NewGORMUserRepository(db)
	productRepo := repositories.NewGORMProductRepository(db)
	orderRepo := repositories.NewGORMOrderRepository(db)
	reviewRepo := repositories.NewGORMReviewRepository(db)

	// --- Services ---
	authService := services.NewAuthService(userRepo, cfg.JWTSecret)
	productService := services.NewProductService(productRepo)
	orderService := services.NewOrderService(orderRepo, publisher, log)
	reviewService := services.NewReviewService(reviewRepo)

	// --- Handlers ---
	authHandler := handlers.NewAuthHandler(authService, log)
	productHandler := handlers.NewProductHandler(productService, log)
	orderHandler := handlers.NewOrderHandler(orderService, log)
	reviewHandler := handlers.NewReviewHandler(reviewService, log)

	// --- Fiber App ---
	app := fiber.New()
	app.Use(recover.New())
	app.Use(cors.New())
	app.Use(logger.New())

	api := app.Group("/api")
	authHandler.RegisterRoutes(api)
	productHandler.RegisterRoutes(api)
	orderHandler.RegisterRoutes(api)
	reviewHandler.RegisterRoutes(api, middleware.AuthRequired(authService))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// --- Fulfillment consumer ---
	// The external fulfillment process owns order status; its updates come
	// in over the fulfillment queue and are applied to order rows here.
	if mqClient != nil {
		err := mqClient.ConsumeStatusUpdates(func(update rabbitmq.StatusUpdate) error {
			return orderService.ApplyStatusUpdate(update.OrderID, update.Status, update.TrackingNumber)
		})
		if err != nil {
			log.Error().Err(err).Msg("failed to start fulfillment consumer")
		}
	}

	// --- Start HTTP server ---
	log.Info().Str("port", cfg.AppPort).Msg("starting server")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(cfg.AppPort); err != nil {
			log.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	<-quit
	log.Info().Msg("shutting down server")

	if err := app.Shutdown(); err != nil {
		log.Error().Err(err).Msg("error during shutdown")
	}
	log.Info().Msg("server stopped")
}
