package api

import (
	"github.com/go-redis/redis/v8"
	"github.com/gofiber/fiber/v2"

	"github.com/adforge/adcopy/internal/api/handlers"
	"github.com/adforge/adcopy/internal/config"
	"github.com/adforge/adcopy/internal/repository/cache"
	"github.com/adforge/adcopy/internal/service/catalog"
	"github.com/adforge/adcopy/internal/service/enhancer"
)

// SetupRoutes configures all API routes
func SetupRoutes(app *fiber.App, cat *catalog.Catalog, redisClient *redis.Client, enh *enhancer.Service, cfg *config.Config) {
	// Initialize handlers
	cacheRepo := cache.NewRepository(redisClient, cfg.CacheTTL)
	campaignHandler := handlers.NewCampaignHandler(cat, enh, cacheRepo, cfg)
	assetHandler := handlers.NewAssetHandler(cat)

	// API group
	api := app.Group("/api")

	// Health check route
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
		})
	})

	// Campaign routes
	campaigns := api.Group("/campaigns")
	campaigns.Post("/generate", campaignHandler.GenerateCampaign)
	campaigns.Post("/enhance", campaignHandler.EnhanceCampaign)
	campaigns.Post("/export", campaignHandler.ExportCampaign)
	campaigns.Get("/export", campaignHandler.ExportCachedCampaign)

	// Asset routes
	assets := api.Group("/assets")
	assets.Post("/validate", assetHandler.ValidateAssets)

	// Locale routes
	api.Get("/locales", assetHandler.GetLocales)
}
