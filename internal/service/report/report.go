// Package report renders a validation result as a human-readable summary.
// Pure presentation: it reads the lengths and flags already computed by the
// validator and never re-validates.
package report

import (
	"fmt"
	"strings"

	"github.com/adforge/adcopy/internal/models"
)

var sectionOrder = []struct {
	assetType models.AssetType
	title     string
}{
	{models.AssetTypeHeadline, "Headlines"},
	{models.AssetTypeDescription, "Descriptions"},
	{models.AssetTypeSitelink, "Sitelinks"},
	{models.AssetTypeCallout, "Callouts"},
	{models.AssetTypeSnippet, "Snippet values"},
	{models.AssetTypePath, "Paths"},
}

// Format renders the validation result: status, per-type counts with per-item
// length annotations, then warnings and errors.
func Format(result *models.ValidationResult) string {
	var b strings.Builder
	b.WriteString("Asset Validation Report\n")
	b.WriteString("=======================\n")
	if result.IsValid {
		b.WriteString("Status: PASS\n")
	} else {
		b.WriteString("Status: FAIL\n")
	}

	for _, section := range sectionOrder {
		items := itemsOfType(result.Items, section.assetType)
		if len(items) == 0 {
			continue
		}
		corrected := 0
		for _, it := range items {
			if it.Truncated {
				corrected++
			}
		}
		fmt.Fprintf(&b, "\n%s: %d total, %d ok, %d corrected\n",
			section.title, len(items), len(items)-corrected, corrected)
		for _, it := range items {
			marker := "OK   "
			if it.Truncated {
				marker = "FIXED"
			}
			fmt.Fprintf(&b, "  [%s] (%d/%d) %s\n", marker, it.Length, it.Limit, it.Corrected)
		}
	}

	if len(result.Warnings) > 0 {
		fmt.Fprintf(&b, "\nWarnings (%d):\n", len(result.Warnings))
		for _, w := range result.Warnings {
			fmt.Fprintf(&b, "  - %s\n", w)
		}
	}
	if len(result.Errors) > 0 {
		fmt.Fprintf(&b, "\nErrors (%d):\n", len(result.Errors))
		for _, e := range result.Errors {
			fmt.Fprintf(&b, "  - %s\n", e)
		}
	}
	return b.String()
}

func itemsOfType(items []models.ItemCheck, t models.AssetType) []models.ItemCheck {
	out := make([]models.ItemCheck, 0, len(items))
	for _, it := range items {
		if it.Type == t {
			out = append(out, it)
		}
	}
	return out
}
