package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-redis/redis/v8"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"golang.org/x/time/rate"

	"github.com/adforge/adcopy/internal/api"
	"github.com/adforge/adcopy/internal/config"
	"github.com/adforge/adcopy/internal/database"
	"github.com/adforge/adcopy/internal/service/catalog"
	"github.com/adforge/adcopy/internal/service/enhancer"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	// Initialize configuration
	cfg := config.NewConfig()

	// Load the template catalog; missing category coverage fails startup.
	cat, err := catalog.Load(cfg.TemplatesDir)
	if err != nil {
		log.Fatalf("Failed to load template catalog: %v", err)
	}

	// Connect to Redis (optional; the service runs without caching)
	var redisClient *redis.Client
	if cfg.RedisURI != "" {
		redisClient, err = database.InitRedis(cfg.RedisURI)
		if err != nil {
			log.Printf("Warning: Redis unavailable, caching disabled: %v", err)
			redisClient = nil
		} else {
			defer redisClient.Close()
		}
	}

	// Initialize the copy enhancement service
	enhancerService := enhancer.NewService(enhancer.ServiceOptions{
		RedisClient: redisClient,
		RateLimit:   rate.Limit(cfg.EnhanceRateLimit),
		RateBurst:   cfg.EnhanceRateBurst,
		CacheTTL:    cfg.CacheTTL,
		MaxRetries:  cfg.EnhanceMaxRetries,
	})
	defer enhancerService.Close()

	if cfg.GeminiAPIKey != "" {
		provider, err := enhancer.NewGeminiProvider(cfg.GeminiAPIKey, cfg.GeminiModel, nil)
		if err != nil {
			log.Printf("Warning: Gemini provider unavailable: %v", err)
		} else {
			enhancerService.RegisterProvider(provider)
		}
	}

	// Initialize Fiber app
	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"success": false,
				"error":   err.Error(),
			})
		},
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET, POST, PUT, DELETE, PATCH",
	}))

	// Setup routes
	api.SetupRoutes(app, cat, redisClient, enhancerService, cfg)

	// Start server
	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}
}
