package models

// AssetType identifies the kind of ad asset a piece of text belongs to.
type AssetType string

const (
	AssetTypeHeadline    AssetType = "headline"
	AssetTypeDescription AssetType = "description"
	AssetTypeSitelink    AssetType = "sitelink"
	AssetTypeCallout     AssetType = "callout"
	AssetTypeSnippet     AssetType = "snippet"
	AssetTypePath        AssetType = "path"
	AssetTypeKeyword     AssetType = "keyword"
)

// MatchType is the keyword match type submitted to the ad platform.
type MatchType string

const (
	MatchTypeBroad  MatchType = "BROAD"
	MatchTypePhrase MatchType = "PHRASE"
	MatchTypeExact  MatchType = "EXACT"
)

// AssetRequest carries everything known about the product being advertised.
// Optional numeric facts use pointers so that "not provided" is distinguishable
// from a literal zero. The request is consumed once per generation call and is
// never mutated by the pipeline.
type AssetRequest struct {
	ProductName        string   `json:"product_name"`
	CountryCode        string   `json:"country_code"`
	CurrencyCode       string   `json:"currency_code,omitempty"`
	DiscountPercentage *float64 `json:"discount_percentage,omitempty"`
	DiscountAmount     *float64 `json:"discount_amount,omitempty"`
	ProductPrice       *float64 `json:"product_price,omitempty"`
	GuaranteePeriod    string   `json:"guarantee_period,omitempty"`
	DeliveryType       string   `json:"delivery_type,omitempty"`
	PlatformName       string   `json:"platform_name,omitempty"`
	CommissionValue    *float64 `json:"commission_value,omitempty"`
}

// HasPrice reports whether the request carries a product price.
func (r *AssetRequest) HasPrice() bool {
	return r.ProductPrice != nil
}

// HasDiscount reports whether the request carries any discount fact.
func (r *AssetRequest) HasDiscount() bool {
	return r.DiscountPercentage != nil || r.DiscountAmount != nil
}

// GeneratedAsset is a single piece of generated ad copy, tagged with the
// catalog category it came from. The category is diagnostic metadata only;
// the externally visible asset is the text.
type GeneratedAsset struct {
	Text     string    `json:"text"`
	Type     AssetType `json:"type"`
	Category string    `json:"category"`
}

// Keyword is a single campaign keyword.
type Keyword struct {
	Text      string    `json:"text"`
	MatchType MatchType `json:"match_type"`
}

// SnippetGroup is one structured-snippet header with its value list.
type SnippetGroup struct {
	Header   string   `json:"header"`
	Values   []string `json:"values"`
	Category string   `json:"category,omitempty"`
}

// AssetBundle is the raw, unvalidated output of the content generator.
type AssetBundle struct {
	Keywords     []Keyword        `json:"keywords"`
	Headlines    []GeneratedAsset `json:"headlines"`
	Descriptions []GeneratedAsset `json:"descriptions"`
	Sitelinks    []GeneratedAsset `json:"sitelinks"`
	Callouts     []GeneratedAsset `json:"callouts"`
	Snippets     []SnippetGroup   `json:"snippets"`
	Paths        []GeneratedAsset `json:"paths"`
}

// CharacterLimits maps each asset type to its maximum length in characters.
// These are platform constants, not request data, but they are passed into the
// validator explicitly so differently configured instances can coexist.
type CharacterLimits struct {
	Headline    int `json:"headline"`
	Description int `json:"description"`
	Sitelink    int `json:"sitelink"`
	Callout     int `json:"callout"`
	Path        int `json:"path"`
}

// DefaultCharacterLimits returns the search-ads platform limits.
func DefaultCharacterLimits() CharacterLimits {
	return CharacterLimits{
		Headline:    30,
		Description: 90,
		Sitelink:    25,
		Callout:     25,
		Path:        15,
	}
}

// ForType returns the limit for the given asset type. Snippet values share the
// callout budget. Keywords have no platform length budget and return 0.
func (l CharacterLimits) ForType(t AssetType) int {
	switch t {
	case AssetTypeHeadline:
		return l.Headline
	case AssetTypeDescription:
		return l.Description
	case AssetTypeSitelink:
		return l.Sitelink
	case AssetTypeCallout, AssetTypeSnippet:
		return l.Callout
	case AssetTypePath:
		return l.Path
	default:
		return 0
	}
}

// CorrectedContent holds the budget-compliant asset texts after correction.
type CorrectedContent struct {
	Keywords     []Keyword      `json:"keywords"`
	Headlines    []string       `json:"headlines"`
	Descriptions []string       `json:"descriptions"`
	Sitelinks    []string       `json:"sitelinks"`
	Callouts     []string       `json:"callouts"`
	Snippets     []SnippetGroup `json:"snippets"`
	Paths        []string       `json:"paths"`
}

// ItemCheck records the per-item outcome of validation, for reporting.
type ItemCheck struct {
	Type      AssetType `json:"type"`
	Category  string    `json:"category,omitempty"`
	Original  string    `json:"original"`
	Corrected string    `json:"corrected"`
	Length    int       `json:"length"`
	Limit     int       `json:"limit"`
	Truncated bool      `json:"truncated"`
}

// ValidationResult is the outcome of validating and correcting a bundle.
type ValidationResult struct {
	IsValid          bool             `json:"is_valid"`
	Errors           []string         `json:"errors,omitempty"`
	Warnings         []string         `json:"warnings,omitempty"`
	CorrectedContent CorrectedContent `json:"corrected_content"`
	Items            []ItemCheck      `json:"items,omitempty"`
}
