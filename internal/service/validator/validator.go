// Package validator enforces the per-type character budgets on a generated
// bundle, correcting over-budget strings deterministically and collecting
// advisory warnings. Length violations are always recovered locally; they are
// never propagated as errors.
package validator

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/adforge/adcopy/internal/models"
)

// unresolvedTokenRe matches bracketed-uppercase residue left behind when a
// template token had no context value.
var unresolvedTokenRe = regexp.MustCompile(`\[[A-Z][A-Z0-9%_]*\]`)

// disallowedSymbols are scanned for advisory warnings: trademark and
// registration marks, currency glyphs, typographic quotes and ellipsis.
var disallowedSymbols = []rune{'™', '®', '©', '€', '£', '$', '¥', '…', '“', '”', '‘', '’'}

// Validator corrects asset bundles against a character-limit table. Separate
// instances can carry different limits.
type Validator struct {
	limits models.CharacterLimits
}

// New creates a validator with the given limits.
func New(limits models.CharacterLimits) *Validator {
	return &Validator{limits: limits}
}

// Limits returns the limit table this validator enforces.
func (v *Validator) Limits() models.CharacterLimits {
	return v.limits
}

// ValidateAndCorrect enforces every asset's character budget, truncating
// over-budget strings in the corrected content, and scans each asset for
// advisory problems. Errors are reserved for conditions the corrector cannot
// resolve; none exist in the current rule set, so IsValid reflects an empty
// error list.
func (v *Validator) ValidateAndCorrect(bundle *models.AssetBundle) *models.ValidationResult {
	res := &models.ValidationResult{}
	cc := &res.CorrectedContent

	cc.Keywords = append([]models.Keyword{}, bundle.Keywords...)
	cc.Headlines = v.correctAll(bundle.Headlines, res)
	cc.Descriptions = v.correctAll(bundle.Descriptions, res)
	cc.Sitelinks = v.correctAll(bundle.Sitelinks, res)
	cc.Callouts = v.correctAll(bundle.Callouts, res)
	cc.Paths = v.correctAll(bundle.Paths, res)

	cc.Snippets = make([]models.SnippetGroup, 0, len(bundle.Snippets))
	for _, group := range bundle.Snippets {
		corrected := models.SnippetGroup{Header: group.Header, Category: group.Category}
		for _, value := range group.Values {
			asset := models.GeneratedAsset{Text: value, Type: models.AssetTypeSnippet, Category: group.Header}
			corrected.Values = append(corrected.Values, v.correctItem(asset, res))
		}
		cc.Snippets = append(cc.Snippets, corrected)
	}

	res.IsValid = len(res.Errors) == 0
	return res
}

func (v *Validator) correctAll(assets []models.GeneratedAsset, res *models.ValidationResult) []string {
	out := make([]string, 0, len(assets))
	for _, a := range assets {
		out = append(out, v.correctItem(a, res))
	}
	return out
}

// correctItem truncates a single asset when over budget, records the item
// check and appends advisory warnings. The corrected text is always within
// the limit.
func (v *Validator) correctItem(a models.GeneratedAsset, res *models.ValidationResult) string {
	limit := v.limits.ForType(a.Type)
	corrected := a.Text
	truncated := false

	if limit > 0 && utf8.RuneCountInString(a.Text) > limit {
		if a.Type == models.AssetTypeDescription {
			corrected = TruncateSentences(a.Text, limit)
		} else {
			corrected = Truncate(a.Text, limit)
		}
		truncated = true
		res.Warnings = append(res.Warnings, fmt.Sprintf(
			"%s exceeds %d characters (%d): truncated to %q",
			a.Type, limit, utf8.RuneCountInString(a.Text), corrected))
	}

	v.scanAdvisories(a.Type, corrected, res)

	res.Items = append(res.Items, models.ItemCheck{
		Type:      a.Type,
		Category:  a.Category,
		Original:  a.Text,
		Corrected: corrected,
		Length:    utf8.RuneCountInString(corrected),
		Limit:     limit,
		Truncated: truncated,
	})
	return corrected
}

// scanAdvisories flags content problems that never trigger truncation:
// character runs, doubled punctuation, disallowed symbols and unresolved
// template tokens.
func (v *Validator) scanAdvisories(t models.AssetType, text string, res *models.ValidationResult) {
	if r, ok := repeatedRun(text, 3); ok {
		res.Warnings = append(res.Warnings, fmt.Sprintf(
			"%s %q contains a run of repeated character %q", t, text, r))
	}
	for _, mark := range []string{"!!", "??"} {
		if strings.Contains(text, mark) {
			res.Warnings = append(res.Warnings, fmt.Sprintf(
				"%s %q contains doubled punctuation %q", t, text, mark))
		}
	}
	for _, sym := range disallowedSymbols {
		if strings.ContainsRune(text, sym) {
			res.Warnings = append(res.Warnings, fmt.Sprintf(
				"%s %q contains disallowed symbol %q", t, text, sym))
		}
	}
	if token := unresolvedTokenRe.FindString(text); token != "" {
		res.Warnings = append(res.Warnings, fmt.Sprintf(
			"%s %q contains unresolved template token %s", t, text, token))
	}
}

// repeatedRun reports the first character repeated at least n times in a row.
func repeatedRun(text string, n int) (rune, bool) {
	var prev rune
	count := 0
	for _, r := range text {
		if r == prev {
			count++
			if count >= n {
				return r, true
			}
		} else {
			prev = r
			count = 1
		}
	}
	return 0, false
}
