// Package catalog stores the parametrized phrase templates used to build ad
// assets. Templates are organized per language and per category, loaded from
// YAML resources at startup and read-only afterwards, so a single catalog is
// safe for concurrent generation.
package catalog

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Category names used to tag generated assets for diagnostics.
const (
	CategoryProduct     = "PRODUCT"
	CategoryCTA         = "CTA"
	CategoryPrice       = "PRICE"
	CategoryScarcity    = "SCARCITY"
	CategorySavings     = "SAVINGS"
	CategoryGifts       = "GIFTS"
	CategoryGuarantee   = "GUARANTEE"
	CategoryDelivery    = "DELIVERY"
	CategoryCredibility = "CREDIBILITY"
	CategoryPayment     = "PAYMENT"
	CategoryOffer       = "OFFER"
	CategoryResults     = "RESULTS"
	CategoryCOD         = "COD"
)

//go:embed templates/*.yaml
var embeddedTemplates embed.FS

// HeadlinePools holds the headline template pools for one language.
type HeadlinePools struct {
	Product          []string `yaml:"product"`
	CTA              []string `yaml:"cta"`
	Price            []string `yaml:"price"`
	Scarcity         []string `yaml:"scarcity"`
	SavingsPercent   []string `yaml:"savings_percent"`
	SavingsAmount    []string `yaml:"savings_amount"`
	Gifts            []string `yaml:"gifts"`
	Guarantee        []string `yaml:"guarantee"`
	GuaranteeGeneric []string `yaml:"guarantee_generic"`
	DeliveryFree     []string `yaml:"delivery_free"`
	DeliveryExpress  []string `yaml:"delivery_express"`
	DeliverySecure   []string `yaml:"delivery_secure"`
	DeliveryGeneric  []string `yaml:"delivery_generic"`
	Credibility      []string `yaml:"credibility"`
}

// DescriptionPools holds one sentence pool per descriptive theme.
type DescriptionPools struct {
	Guarantee []string `yaml:"guarantee"`
	Payment   []string `yaml:"payment"`
	Offer     []string `yaml:"offer"`
	Results   []string `yaml:"results"`
}

// TemplateCategory is a named bucket of templates with a per-request quota.
// Used for sitelinks and callouts, where items are sampled per category.
type TemplateCategory struct {
	Name  string   `yaml:"name"`
	Quota int      `yaml:"quota"`
	Items []string `yaml:"items"`
}

// SnippetTemplate is one structured-snippet header with its candidate values.
// Quota values are sampled per request, like sitelink and callout categories.
type SnippetTemplate struct {
	Header string   `yaml:"header"`
	Quota  int      `yaml:"quota"`
	Values []string `yaml:"values"`
}

// LanguageSet is the full template collection for one language.
type LanguageSet struct {
	Language     string             `yaml:"language"`
	Headlines    HeadlinePools      `yaml:"headlines"`
	Descriptions DescriptionPools   `yaml:"descriptions"`
	Sitelinks    []TemplateCategory `yaml:"sitelinks"`
	Callouts     []TemplateCategory `yaml:"callouts"`
	Snippets     []SnippetTemplate  `yaml:"snippets"`
	Paths        []string           `yaml:"paths"`
}

// Catalog is the read-only set of language template collections.
type Catalog struct {
	languages map[string]*LanguageSet
}

// Language returns the template set for a language.
func (c *Catalog) Language(lang string) (*LanguageSet, bool) {
	ls, ok := c.languages[strings.ToLower(lang)]
	return ls, ok
}

// Languages lists the languages the catalog covers.
func (c *Catalog) Languages() []string {
	out := make([]string, 0, len(c.languages))
	for lang := range c.languages {
		out = append(out, lang)
	}
	return out
}

// LoadEmbedded loads the catalog from the templates compiled into the binary.
func LoadEmbedded() (*Catalog, error) {
	return loadFS(embeddedTemplates, "templates")
}

// LoadDir loads the catalog from an external directory of per-language YAML
// files, for deployments that override the built-in copy.
func LoadDir(dir string) (*Catalog, error) {
	return loadFS(os.DirFS(dir), ".")
}

// Load prefers an override directory when one is configured and falls back to
// the embedded templates otherwise.
func Load(dir string) (*Catalog, error) {
	if strings.TrimSpace(dir) == "" {
		return LoadEmbedded()
	}
	return LoadDir(dir)
}

func loadFS(fsys fs.FS, root string) (*Catalog, error) {
	entries, err := fs.ReadDir(fsys, root)
	if err != nil {
		return nil, fmt.Errorf("failed to read template directory: %w", err)
	}

	cat := &Catalog{languages: make(map[string]*LanguageSet)}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}
		raw, err := fs.ReadFile(fsys, filepath.Join(root, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read template file %s: %w", entry.Name(), err)
		}
		var ls LanguageSet
		if err := yaml.Unmarshal(raw, &ls); err != nil {
			return nil, fmt.Errorf("failed to parse template file %s: %w", entry.Name(), err)
		}
		if err := validateLanguageSet(&ls); err != nil {
			return nil, fmt.Errorf("template file %s: %w", entry.Name(), err)
		}
		cat.languages[strings.ToLower(ls.Language)] = &ls
	}

	if len(cat.languages) == 0 {
		return nil, fmt.Errorf("no template files found")
	}
	return cat, nil
}

// validateLanguageSet fails fast when a required category or asset type is
// missing, so coverage gaps surface at startup instead of mid-request.
func validateLanguageSet(ls *LanguageSet) error {
	if strings.TrimSpace(ls.Language) == "" {
		return fmt.Errorf("missing language key")
	}

	var missing []string
	requirePool := func(name string, pool []string, min int) {
		if len(pool) < min {
			missing = append(missing, fmt.Sprintf("%s (need %d, have %d)", name, min, len(pool)))
		}
	}

	requirePool("headlines.product", ls.Headlines.Product, 1)
	requirePool("headlines.cta", ls.Headlines.CTA, 6)
	requirePool("headlines.price", ls.Headlines.Price, 2)
	requirePool("headlines.scarcity", ls.Headlines.Scarcity, 2)
	requirePool("headlines.savings_percent", ls.Headlines.SavingsPercent, 2)
	requirePool("headlines.savings_amount", ls.Headlines.SavingsAmount, 2)
	requirePool("headlines.gifts", ls.Headlines.Gifts, 2)
	requirePool("headlines.guarantee", ls.Headlines.Guarantee, 1)
	requirePool("headlines.guarantee_generic", ls.Headlines.GuaranteeGeneric, 1)
	requirePool("headlines.delivery_free", ls.Headlines.DeliveryFree, 1)
	requirePool("headlines.delivery_express", ls.Headlines.DeliveryExpress, 1)
	requirePool("headlines.delivery_secure", ls.Headlines.DeliverySecure, 1)
	requirePool("headlines.delivery_generic", ls.Headlines.DeliveryGeneric, 1)
	requirePool("headlines.credibility", ls.Headlines.Credibility, 2)
	requirePool("descriptions.guarantee", ls.Descriptions.Guarantee, 1)
	requirePool("descriptions.payment", ls.Descriptions.Payment, 1)
	requirePool("descriptions.offer", ls.Descriptions.Offer, 1)
	requirePool("descriptions.results", ls.Descriptions.Results, 1)
	requirePool("paths", ls.Paths, 2)

	if len(ls.Sitelinks) == 0 {
		missing = append(missing, "sitelinks (no categories)")
	}
	if len(ls.Callouts) == 0 {
		missing = append(missing, "callouts (no categories)")
	}
	if len(ls.Snippets) == 0 {
		missing = append(missing, "snippets (no groups)")
	}
	for _, cat := range append(append([]TemplateCategory{}, ls.Sitelinks...), ls.Callouts...) {
		if cat.Name == "" || cat.Quota < 1 || len(cat.Items) == 0 {
			missing = append(missing, fmt.Sprintf("category %q (empty or zero quota)", cat.Name))
		}
	}
	for _, sn := range ls.Snippets {
		if sn.Header == "" || sn.Quota < 1 || len(sn.Values) == 0 {
			missing = append(missing, fmt.Sprintf("snippet group %q (empty or zero quota)", sn.Header))
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("language %s is missing required templates: %s",
			ls.Language, strings.Join(missing, "; "))
	}
	return nil
}
