// Package generator produces the raw, unvalidated asset bundle for a request
// by filling catalog templates according to which contextual facts are
// available. The pipeline is synchronous; the only shared-mutable state is the
// random source used for category sampling, which is injected so concurrent
// callers and tests control it explicitly.
package generator

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"time"

	"github.com/adforge/adcopy/internal/models"
	"github.com/adforge/adcopy/internal/service/catalog"
	"github.com/adforge/adcopy/internal/service/locale"
)

// Target cardinalities per asset type.
const (
	HeadlineCount    = 15
	MaxDescriptions  = 4
	MaxSitelinks     = 6
	MaxCallouts      = 10
	MaxSnippetGroups = 10
)

// ErrEmptyProductName is returned before any generation happens when the
// request has no product name. No partial bundle is ever produced.
var ErrEmptyProductName = errors.New("product name is required")

// Rand is the random source used for sampling template pools. *rand.Rand
// satisfies it; tests supply a fixed seed for reproducible output.
type Rand interface {
	Intn(n int) int
	Perm(n int) []int
}

// Generator builds asset bundles from a template catalog.
type Generator struct {
	catalog *catalog.Catalog
	rng     Rand
}

// New creates a generator over the given catalog. A nil rng falls back to a
// time-seeded source.
func New(cat *catalog.Catalog, rng Rand) *Generator {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Generator{catalog: cat, rng: rng}
}

// Generate produces the raw asset bundle for a request. The catalog is never
// mutated; every asset is built fresh per call.
func (g *Generator) Generate(req *models.AssetRequest, loc locale.Settings) (*models.AssetBundle, error) {
	if strings.TrimSpace(req.ProductName) == "" {
		return nil, ErrEmptyProductName
	}
	ls, ok := g.catalog.Language(loc.Language)
	if !ok {
		return nil, fmt.Errorf("no templates for language %q", loc.Language)
	}

	return &models.AssetBundle{
		Keywords:     buildKeywords(req.ProductName),
		Headlines:    g.buildHeadlines(ls, req, loc),
		Descriptions: g.buildDescriptions(ls, req, loc),
		Sitelinks:    g.sampleCategories(ls.Sitelinks, models.AssetTypeSitelink, MaxSitelinks, req, loc),
		Callouts:     g.sampleCategories(ls.Callouts, models.AssetTypeCallout, MaxCallouts, req, loc),
		Snippets:     g.buildSnippets(ls, req, loc),
		Paths:        g.buildPaths(ls, req, loc),
	}, nil
}

// buildKeywords returns exactly two broad-match keywords: the lowercase and
// uppercase forms of the product name.
func buildKeywords(productName string) []models.Keyword {
	return []models.Keyword{
		{Text: strings.ToLower(productName), MatchType: models.MatchTypeBroad},
		{Text: strings.ToUpper(productName), MatchType: models.MatchTypeBroad},
	}
}

// buildHeadlines fills all fifteen headline slots. Conditional slots fall back
// to generic templates when the triggering fact is absent, so the count never
// drops below fifteen.
func (g *Generator) buildHeadlines(ls *catalog.LanguageSet, req *models.AssetRequest, loc locale.Settings) []models.GeneratedAsset {
	h := ls.Headlines
	out := make([]models.GeneratedAsset, 0, HeadlineCount)
	add := func(category, template string) {
		out = append(out, models.GeneratedAsset{
			Text:     catalog.Substitute(template, req, loc),
			Type:     models.AssetTypeHeadline,
			Category: category,
		})
	}

	// Slot 0: keyword insertion combined with the localized store phrase.
	add(catalog.CategoryProduct, h.Product[0])

	// Slots 1-6: fixed templates, always included.
	for i := 0; i < 6; i++ {
		add(catalog.CategoryCTA, h.CTA[i])
	}

	// Slots 7-8: price pair when a price is known, scarcity fillers otherwise.
	if req.HasPrice() {
		add(catalog.CategoryPrice, h.Price[0])
		add(catalog.CategoryPrice, h.Price[1])
	} else {
		add(catalog.CategoryScarcity, h.Scarcity[0])
		add(catalog.CategoryScarcity, h.Scarcity[1])
	}

	// Slots 9-10: discount pair when a discount is known, gift fillers otherwise.
	switch {
	case req.DiscountPercentage != nil:
		add(catalog.CategorySavings, h.SavingsPercent[0])
		add(catalog.CategorySavings, h.SavingsPercent[1])
	case req.DiscountAmount != nil:
		add(catalog.CategorySavings, h.SavingsAmount[0])
		add(catalog.CategorySavings, h.SavingsAmount[1])
	default:
		add(catalog.CategoryGifts, h.Gifts[0])
		add(catalog.CategoryGifts, h.Gifts[1])
	}

	// Slot 11: guarantee line or the generic satisfaction filler.
	if req.GuaranteePeriod != "" {
		add(catalog.CategoryGuarantee, h.Guarantee[0])
	} else {
		add(catalog.CategoryGuarantee, h.GuaranteeGeneric[0])
	}

	// Slot 12: delivery line chosen by keyword matching on the delivery text.
	add(catalog.CategoryDelivery, deliveryTemplate(h, req.DeliveryType))

	// Slots 13-14: fixed credibility phrases.
	add(catalog.CategoryCredibility, h.Credibility[0])
	add(catalog.CategoryCredibility, h.Credibility[1])

	if len(out) > HeadlineCount {
		out = out[:HeadlineCount]
	}
	return out
}

// deliveryTemplate picks the delivery headline variant by keyword matching in
// the free-text delivery type.
func deliveryTemplate(h catalog.HeadlinePools, deliveryType string) string {
	d := strings.ToLower(strings.TrimSpace(deliveryType))
	switch {
	case d == "":
		return h.DeliveryGeneric[0]
	case containsAny(d, "grátis", "gratis", "free", "darmowa", "gratuito", "gratuita"):
		return h.DeliveryFree[0]
	case containsAny(d, "express", "expresso", "expressa", "ekspres", "24h", "rápida", "rapida"):
		return h.DeliveryExpress[0]
	default:
		return h.DeliverySecure[0]
	}
}

func containsAny(s string, needles ...string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}

// buildDescriptions samples one sentence template per descriptive theme.
func (g *Generator) buildDescriptions(ls *catalog.LanguageSet, req *models.AssetRequest, loc locale.Settings) []models.GeneratedAsset {
	d := ls.Descriptions
	themes := []struct {
		category string
		pool     []string
	}{
		{catalog.CategoryGuarantee, d.Guarantee},
		{catalog.CategoryPayment, d.Payment},
		{catalog.CategoryOffer, d.Offer},
		{catalog.CategoryResults, d.Results},
	}

	out := make([]models.GeneratedAsset, 0, MaxDescriptions)
	for _, theme := range themes {
		if len(theme.pool) == 0 {
			continue
		}
		tpl := theme.pool[g.rng.Intn(len(theme.pool))]
		out = append(out, models.GeneratedAsset{
			Text:     catalog.Substitute(tpl, req, loc),
			Type:     models.AssetTypeDescription,
			Category: theme.category,
		})
	}
	if len(out) > MaxDescriptions {
		out = out[:MaxDescriptions]
	}
	return out
}

// sampleCategories selects items from every category up to its quota, sampling
// without replacement, concatenated in catalog-declared order and truncated to
// the type's maximum count.
func (g *Generator) sampleCategories(cats []catalog.TemplateCategory, t models.AssetType, max int, req *models.AssetRequest, loc locale.Settings) []models.GeneratedAsset {
	out := make([]models.GeneratedAsset, 0, max)
	for _, c := range cats {
		quota := c.Quota
		if quota > len(c.Items) {
			quota = len(c.Items)
		}
		picked := g.rng.Perm(len(c.Items))[:quota]
		sort.Ints(picked)
		for _, i := range picked {
			out = append(out, models.GeneratedAsset{
				Text:     catalog.Substitute(c.Items[i], req, loc),
				Type:     t,
				Category: c.Name,
			})
		}
	}
	if len(out) > max {
		out = out[:max]
	}
	return out
}

// buildSnippets renders the structured-snippet groups, sampling each group's
// values up to its quota without replacement, capped at the platform maximum.
func (g *Generator) buildSnippets(ls *catalog.LanguageSet, req *models.AssetRequest, loc locale.Settings) []models.SnippetGroup {
	out := make([]models.SnippetGroup, 0, len(ls.Snippets))
	for _, sn := range ls.Snippets {
		if len(out) == MaxSnippetGroups {
			break
		}
		quota := sn.Quota
		if quota > len(sn.Values) {
			quota = len(sn.Values)
		}
		picked := g.rng.Perm(len(sn.Values))[:quota]
		sort.Ints(picked)
		values := make([]string, 0, quota)
		for _, i := range picked {
			values = append(values, catalog.Substitute(sn.Values[i], req, loc))
		}
		out = append(out, models.SnippetGroup{Header: sn.Header, Values: values})
	}
	return out
}

// buildPaths renders the display-path fragments as URL-safe slugs.
func (g *Generator) buildPaths(ls *catalog.LanguageSet, req *models.AssetRequest, loc locale.Settings) []models.GeneratedAsset {
	out := make([]models.GeneratedAsset, 0, len(ls.Paths))
	for _, tpl := range ls.Paths {
		out = append(out, models.GeneratedAsset{
			Text:     catalog.Slugify(catalog.Substitute(tpl, req, loc)),
			Type:     models.AssetTypePath,
			Category: catalog.CategoryProduct,
		})
	}
	return out
}
