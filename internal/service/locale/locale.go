// Package locale maps a target country to the language, currency and phrase
// conventions used when filling templates. Unknown countries resolve to a
// documented default instead of failing, with a flag the pipeline surfaces as
// a warning.
package locale

import (
	"strconv"
	"strings"
)

// DefaultLanguage and DefaultCurrency are used when a country is unknown.
const (
	DefaultLanguage = "en"
	DefaultCurrency = "USD"
)

// Phrases holds the localized fragments the generator splices into templates.
type Phrases struct {
	OnlineStore   string `yaml:"online_store"`
	OfficialSite  string `yaml:"official_site"`
	SpecialOffer  string `yaml:"special_offer"`
	FreeShipping  string `yaml:"free_shipping"`
	BuyNow        string `yaml:"buy_now"`
	OfferPathSlug string `yaml:"offer_path_slug"`
}

// Settings is the resolved locale for a request.
type Settings struct {
	CountryCode    string  `json:"country_code"`
	Language       string  `json:"language"`
	CurrencyCode   string  `json:"currency_code"`
	CurrencySymbol string  `json:"currency_symbol"`
	DecimalComma   bool    `json:"decimal_comma"`
	Phrases        Phrases `json:"-"`
	// Fallback is true when the country was not recognized and the default
	// locale was substituted.
	Fallback bool `json:"fallback"`
}

type countryEntry struct {
	language     string
	currency     string
	symbol       string
	decimalComma bool
}

var countries = map[string]countryEntry{
	"BR": {"pt", "BRL", "R$", true},
	"PT": {"pt", "EUR", "€", true},
	"PL": {"pl", "PLN", "zł", true},
	"ES": {"es", "EUR", "€", true},
	"MX": {"es", "MXN", "$", false},
	"CO": {"es", "COP", "$", true},
	"AR": {"es", "ARS", "$", true},
	"CL": {"es", "CLP", "$", true},
	"PE": {"es", "PEN", "S/", false},
	"US": {"en", "USD", "$", false},
	"GB": {"en", "GBP", "£", false},
	"CA": {"en", "CAD", "$", false},
	"AU": {"en", "AUD", "$", false},
	"IE": {"en", "EUR", "€", false},
}

var phrasesByLanguage = map[string]Phrases{
	"en": {
		OnlineStore:   "Online Store",
		OfficialSite:  "Official Site",
		SpecialOffer:  "Special Offer",
		FreeShipping:  "Free Shipping",
		BuyNow:        "Buy Now",
		OfferPathSlug: "offer",
	},
	"pt": {
		OnlineStore:   "Loja Online",
		OfficialSite:  "Site Oficial",
		SpecialOffer:  "Oferta Especial",
		FreeShipping:  "Frete Grátis",
		BuyNow:        "Compre Agora",
		OfferPathSlug: "oferta",
	},
	"es": {
		OnlineStore:   "Tienda Online",
		OfficialSite:  "Sitio Oficial",
		SpecialOffer:  "Oferta Especial",
		FreeShipping:  "Envío Gratis",
		BuyNow:        "Compra Ahora",
		OfferPathSlug: "oferta",
	},
	"pl": {
		OnlineStore:   "Sklep Online",
		OfficialSite:  "Oficjalna Strona",
		SpecialOffer:  "Oferta Specjalna",
		FreeShipping:  "Darmowa Dostawa",
		BuyNow:        "Kup Teraz",
		OfferPathSlug: "oferta",
	},
}

// Resolver resolves country codes to locale settings.
type Resolver struct{}

// NewResolver creates a locale resolver over the built-in country table.
func NewResolver() *Resolver {
	return &Resolver{}
}

// Resolve maps a country code to its locale settings. Unrecognized countries
// return the default locale with Fallback set; callers surface that as a
// warning, never as an error.
func (r *Resolver) Resolve(countryCode string) Settings {
	code := strings.ToUpper(strings.TrimSpace(countryCode))
	entry, ok := countries[code]
	if !ok {
		return Settings{
			CountryCode:    code,
			Language:       DefaultLanguage,
			CurrencyCode:   DefaultCurrency,
			CurrencySymbol: "$",
			Phrases:        phrasesByLanguage[DefaultLanguage],
			Fallback:       true,
		}
	}
	return Settings{
		CountryCode:    code,
		Language:       entry.language,
		CurrencyCode:   entry.currency,
		CurrencySymbol: entry.symbol,
		DecimalComma:   entry.decimalComma,
		Phrases:        phrasesByLanguage[entry.language],
	}
}

// Languages returns the set of languages the resolver can produce.
func (r *Resolver) Languages() []string {
	return []string{"en", "es", "pl", "pt"}
}

// Countries returns the supported country codes, for the locales endpoint.
func (r *Resolver) Countries() []string {
	out := make([]string, 0, len(countries))
	for code := range countries {
		out = append(out, code)
	}
	return out
}

// FormatMoney renders an amount with the locale's currency symbol and decimal
// separator. Whole amounts drop the fraction ("R$ 50", "€ 49,90").
func (s Settings) FormatMoney(amount float64) string {
	var text string
	if amount == float64(int64(amount)) {
		text = strconv.FormatInt(int64(amount), 10)
	} else {
		text = strconv.FormatFloat(amount, 'f', 2, 64)
		if s.DecimalComma {
			text = strings.Replace(text, ".", ",", 1)
		}
	}
	return s.CurrencySymbol + " " + text
}

// FormatNumber renders a plain number as a decimal string.
func FormatNumber(v float64) string {
	if v == float64(int64(v)) {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}
