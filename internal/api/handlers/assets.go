package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/adforge/adcopy/internal/models"
	"github.com/adforge/adcopy/internal/service/catalog"
	"github.com/adforge/adcopy/internal/service/locale"
	"github.com/adforge/adcopy/internal/service/report"
	"github.com/adforge/adcopy/internal/service/validator"
)

// AssetHandler handles standalone validation and locale lookups
type AssetHandler struct {
	Validator *validator.Validator
	Resolver  *locale.Resolver
	Catalog   *catalog.Catalog
}

// NewAssetHandler creates a new asset handler
func NewAssetHandler(cat *catalog.Catalog) *AssetHandler {
	return &AssetHandler{
		Validator: validator.New(models.DefaultCharacterLimits()),
		Resolver:  locale.NewResolver(),
		Catalog:   cat,
	}
}

// ValidateRequest carries arbitrary asset texts to validate and correct
type ValidateRequest struct {
	Headlines    []string              `json:"headlines"`
	Descriptions []string              `json:"descriptions"`
	Sitelinks    []string              `json:"sitelinks"`
	Callouts     []string              `json:"callouts"`
	Snippets     []models.SnippetGroup `json:"snippets"`
	Paths        []string              `json:"paths"`
}

// @Summary Validate asset texts
// @Description Enforce character budgets on arbitrary asset texts and return corrected content with diagnostics
// @Tags assets
// @Accept json
// @Produce json
// @Router /assets/validate [post]
func (h *AssetHandler) ValidateAssets(c *fiber.Ctx) error {
	req := new(ValidateRequest)
	if err := c.BodyParser(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid request body: " + err.Error(),
		})
	}

	bundle := &models.AssetBundle{
		Headlines:    toAssets(req.Headlines, models.AssetTypeHeadline),
		Descriptions: toAssets(req.Descriptions, models.AssetTypeDescription),
		Sitelinks:    toAssets(req.Sitelinks, models.AssetTypeSitelink),
		Callouts:     toAssets(req.Callouts, models.AssetTypeCallout),
		Snippets:     req.Snippets,
		Paths:        toAssets(req.Paths, models.AssetTypePath),
	}

	result := h.Validator.ValidateAndCorrect(bundle)
	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"validation": result,
			"report":     report.Format(result),
		},
	})
}

// @Summary List supported locales
// @Tags locales
// @Produce json
// @Router /locales [get]
func (h *AssetHandler) GetLocales(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"countries":         h.Resolver.Countries(),
			"languages":         h.Resolver.Languages(),
			"catalog_languages": h.Catalog.Languages(),
			"default_language":  locale.DefaultLanguage,
			"default_currency":  locale.DefaultCurrency,
		},
	})
}

func toAssets(texts []string, t models.AssetType) []models.GeneratedAsset {
	out := make([]models.GeneratedAsset, 0, len(texts))
	for _, text := range texts {
		out = append(out, models.GeneratedAsset{Text: text, Type: t})
	}
	return out
}
