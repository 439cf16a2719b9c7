package catalog

import (
	"strings"
	"unicode"

	"github.com/adforge/adcopy/internal/models"
	"github.com/adforge/adcopy/internal/service/locale"
)

// Placeholder tokens recognized by Substitute. Tokens whose context value is
// absent are left verbatim in the output; the validator later flags any
// residue as a warning.
const (
	TokenProduct       = "[PRODUCT]"
	TokenStore         = "[STORE]"
	TokenKeyword       = "[KEYWORD]"
	TokenLocation      = "[LOCATION]"
	TokenDiscountPct   = "[DISCOUNT%]"
	TokenValueDiscount = "[VALUE_DISCOUNT]"
	TokenPrice         = "[PRICE]"
	TokenGuarantee     = "[GUARANTEE]"
	TokenDelivery      = "[DELIVERY]"
	TokenPlatform      = "[PLATFORM]"
	TokenCommission    = "[COMMISSION]"
)

// Substitute resolves the placeholder tokens of a template against the
// request and locale. Numbers render as decimal strings, percentages carry a
// trailing %, money values use the locale's currency conventions.
func Substitute(template string, req *models.AssetRequest, loc locale.Settings) string {
	pairs := []string{
		TokenProduct, req.ProductName,
		TokenStore, loc.Phrases.OnlineStore,
		TokenKeyword, keywordInsertion(req.ProductName),
		TokenLocation, "{LOCATION(City)}",
	}
	if req.DiscountPercentage != nil {
		pairs = append(pairs, TokenDiscountPct, locale.FormatNumber(*req.DiscountPercentage)+"%")
	}
	if req.DiscountAmount != nil {
		pairs = append(pairs, TokenValueDiscount, loc.FormatMoney(*req.DiscountAmount))
	}
	if req.ProductPrice != nil {
		pairs = append(pairs, TokenPrice, loc.FormatMoney(*req.ProductPrice))
	}
	if req.GuaranteePeriod != "" {
		pairs = append(pairs, TokenGuarantee, req.GuaranteePeriod)
	}
	if req.DeliveryType != "" {
		pairs = append(pairs, TokenDelivery, req.DeliveryType)
	}
	if req.PlatformName != "" {
		pairs = append(pairs, TokenPlatform, req.PlatformName)
	}
	if req.CommissionValue != nil {
		pairs = append(pairs, TokenCommission, locale.FormatNumber(*req.CommissionValue))
	}
	return strings.NewReplacer(pairs...).Replace(template)
}

// keywordInsertion renders the platform's dynamic keyword insertion syntax
// with the product name as fallback text.
func keywordInsertion(productName string) string {
	return "{KeyWord:" + titleCase(productName) + "}"
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		runes := []rune(w)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}

// Slugify converts a text into an ad display-path fragment: lowercase, words
// joined by hyphens, punctuation dropped.
func Slugify(s string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastHyphen = false
		case !lastHyphen:
			b.WriteRune('-')
			lastHyphen = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
