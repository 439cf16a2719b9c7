package handlers

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/adforge/adcopy/internal/config"
	"github.com/adforge/adcopy/internal/models"
	"github.com/adforge/adcopy/internal/repository/cache"
	"github.com/adforge/adcopy/internal/service/catalog"
	"github.com/adforge/adcopy/internal/service/enhancer"
	"github.com/adforge/adcopy/internal/service/export"
	"github.com/adforge/adcopy/internal/service/generator"
	"github.com/adforge/adcopy/internal/service/locale"
	"github.com/adforge/adcopy/internal/service/report"
	"github.com/adforge/adcopy/internal/service/validator"
)

// CampaignCache is the cache surface the handler needs; *cache.Repository
// implements it.
type CampaignCache interface {
	GetCampaign(key string) (*cache.CampaignRecord, error)
	CacheCampaign(key string, record *cache.CampaignRecord) error
}

// CampaignHandler handles asset generation, enhancement and export requests
type CampaignHandler struct {
	Generator *generator.Generator
	Validator *validator.Validator
	Resolver  *locale.Resolver
	Cache     CampaignCache
	Enhancer  *enhancer.Service
	Config    *config.Config
}

// NewCampaignHandler creates a new campaign handler
func NewCampaignHandler(cat *catalog.Catalog, enh *enhancer.Service, cacheRepo CampaignCache, cfg *config.Config) *CampaignHandler {
	return &CampaignHandler{
		Generator: generator.New(cat, nil),
		Validator: validator.New(models.DefaultCharacterLimits()),
		Resolver:  locale.NewResolver(),
		Cache:     cacheRepo,
		Enhancer:  enh,
		Config:    cfg,
	}
}

// @Summary Generate campaign assets
// @Description Generate and validate the full ad asset bundle for a product
// @Tags campaigns
// @Accept json
// @Produce json
// @Router /campaigns/generate [post]
func (h *CampaignHandler) GenerateCampaign(c *fiber.Ctx) error {
	req := new(models.AssetRequest)
	if err := c.BodyParser(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid request body: " + err.Error(),
		})
	}

	loc := h.Resolver.Resolve(req.CountryCode)

	cacheKey, keyErr := cache.RequestKey(req)
	if keyErr == nil {
		// Hits return the same response shape as fresh generations.
		if cached, err := h.Cache.GetCampaign(cacheKey); err == nil && cached != nil && cached.Validation != nil {
			return c.JSON(fiber.Map{
				"success": true,
				"data": fiber.Map{
					"campaign_id": uuid.New(),
					"locale":      loc,
					"bundle":      cached.Bundle,
					"validation":  cached.Validation,
					"report":      report.Format(cached.Validation),
					"cached":      true,
				},
			})
		}
	}

	bundle, err := h.Generator.Generate(req, loc)
	if err != nil {
		status := fiber.StatusInternalServerError
		if errors.Is(err, generator.ErrEmptyProductName) {
			status = fiber.StatusBadRequest
		}
		return c.Status(status).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	}

	result := h.Validator.ValidateAndCorrect(bundle)
	if loc.Fallback {
		result.Warnings = append([]string{fmt.Sprintf(
			"unknown country %q: fell back to default locale %s/%s",
			req.CountryCode, locale.DefaultLanguage, locale.DefaultCurrency)},
			result.Warnings...)
	}

	if keyErr == nil {
		record := &cache.CampaignRecord{Bundle: bundle, Validation: result}
		if err := h.Cache.CacheCampaign(cacheKey, record); err != nil {
			log.Printf("failed to cache campaign result: %v", err)
		}
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"campaign_id": uuid.New(),
			"locale":      loc,
			"bundle":      bundle,
			"validation":  result,
			"report":      report.Format(result),
			"cached":      false,
		},
	})
}

// EnhanceRequest asks for LLM rewrites of already-generated assets
type EnhanceRequest struct {
	AssetType   models.AssetType `json:"asset_type"`
	Language    string           `json:"language"`
	ProductName string           `json:"product_name"`
	Texts       []string         `json:"texts"`
	Provider    string           `json:"provider,omitempty"`
}

// EnhancedCandidate is a rewrite candidate after budget correction
type EnhancedCandidate struct {
	Text       string  `json:"text"`
	Corrected  string  `json:"corrected"`
	Confidence float64 `json:"confidence"`
}

// @Summary Enhance campaign assets
// @Description Rewrite asset texts with a generative model; candidates are re-validated against character limits
// @Tags campaigns
// @Accept json
// @Produce json
// @Router /campaigns/enhance [post]
func (h *CampaignHandler) EnhanceCampaign(c *fiber.Ctx) error {
	if h.Enhancer == nil || !h.Enhancer.HasProviders() {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"success": false,
			"error":   "No enhancement provider configured",
		})
	}

	req := new(EnhanceRequest)
	if err := c.BodyParser(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid request body: " + err.Error(),
		})
	}
	if len(req.Texts) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "No texts to enhance",
		})
	}

	limit := h.Validator.Limits().ForType(req.AssetType)
	if limit == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   fmt.Sprintf("Unsupported asset type %q", req.AssetType),
		})
	}

	ctx, cancel := context.WithTimeout(c.Context(), h.Config.EnhanceTimeout)
	defer cancel()

	resp, err := h.Enhancer.EnhanceCopy(ctx, &enhancer.Request{
		AssetType:      req.AssetType,
		Language:       req.Language,
		ProductName:    req.ProductName,
		Texts:          req.Texts,
		CharacterLimit: limit,
	}, req.Provider)
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	}

	// Enhanced copy re-enters the corrector so the budget contract holds.
	candidates := make([]EnhancedCandidate, 0, len(resp.Candidates))
	for _, cand := range resp.Candidates {
		var corrected string
		if req.AssetType == models.AssetTypeDescription {
			corrected = validator.TruncateSentences(cand.Text, limit)
		} else {
			corrected = validator.Truncate(cand.Text, limit)
		}
		candidates = append(candidates, EnhancedCandidate{
			Text:       cand.Text,
			Corrected:  corrected,
			Confidence: cand.Confidence,
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"candidates": candidates,
			"provider":   resp.ProviderUsed,
			"cached":     resp.CachedResult,
		},
	})
}

// ExportRequest carries the corrected content to serialize
type ExportRequest struct {
	Campaign string                  `json:"campaign"`
	Content  models.CorrectedContent `json:"content"`
}

// @Summary Export campaign assets
// @Description Serialize a corrected asset bundle as a CSV file for the ad editor
// @Tags campaigns
// @Accept json
// @Produce text/csv
// @Router /campaigns/export [post]
func (h *CampaignHandler) ExportCampaign(c *fiber.Ctx) error {
	req := new(ExportRequest)
	if err := c.BodyParser(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid request body: " + err.Error(),
		})
	}
	if req.Campaign == "" {
		req.Campaign = "campaign-" + uuid.New().String()[:8]
	}

	var buf bytes.Buffer
	if err := export.WriteCSV(&buf, req.Campaign, &req.Content); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to serialize assets: " + err.Error(),
		})
	}

	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", req.Campaign+".csv"))
	return c.Send(buf.Bytes())
}

// @Summary Export a cached campaign
// @Description Serialize the corrected content of a previously generated campaign, looked up by its cache key
// @Tags campaigns
// @Produce text/csv
// @Router /campaigns/export [get]
func (h *CampaignHandler) ExportCachedCampaign(c *fiber.Ctx) error {
	key := c.Query("key")
	if key == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Missing cache key",
		})
	}

	record, err := h.Cache.GetCampaign(key)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Cache lookup failed: " + err.Error(),
		})
	}
	if record == nil || record.Validation == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"error":   "No cached campaign for key",
		})
	}

	campaign := c.Query("campaign")
	if campaign == "" {
		campaign = key
	}

	var buf bytes.Buffer
	if err := export.WriteCSV(&buf, campaign, &record.Validation.CorrectedContent); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to serialize assets: " + err.Error(),
		})
	}

	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", campaign+".csv"))
	return c.Send(buf.Bytes())
}
