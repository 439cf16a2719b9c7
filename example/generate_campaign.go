package main

import (
	"log"
	"os"

	"github.com/adforge/adcopy/internal/models"
	"github.com/adforge/adcopy/internal/service/catalog"
	"github.com/adforge/adcopy/internal/service/export"
	"github.com/adforge/adcopy/internal/service/generator"
	"github.com/adforge/adcopy/internal/service/locale"
	"github.com/adforge/adcopy/internal/service/report"
	"github.com/adforge/adcopy/internal/service/validator"
)

// Standalone demo of the generation pipeline: builds a full campaign for a
// Polish market product, validates it, prints the report and writes the CSV
// export to stdout. No external services required.
func main() {
	cat, err := catalog.LoadEmbedded()
	if err != nil {
		log.Fatalf("Failed to load template catalog: %v", err)
	}

	pct := 50.0
	req := &models.AssetRequest{
		ProductName:        "Skinatrin",
		CountryCode:        "PL",
		DiscountPercentage: &pct,
		GuaranteePeriod:    "60 dni",
		DeliveryType:       "Darmowa dostawa",
	}

	loc := locale.NewResolver().Resolve(req.CountryCode)
	log.Printf("Resolved locale: %s / %s (%s)", loc.Language, loc.CurrencyCode, loc.CurrencySymbol)

	bundle, err := generator.New(cat, nil).Generate(req, loc)
	if err != nil {
		log.Fatalf("Generation failed: %v", err)
	}

	result := validator.New(models.DefaultCharacterLimits()).ValidateAndCorrect(bundle)
	os.Stdout.WriteString(report.Format(result))
	os.Stdout.WriteString("\n")

	if err := export.WriteCSV(os.Stdout, "skinatrin-pl", &result.CorrectedContent); err != nil {
		log.Fatalf("Export failed: %v", err)
	}
}
