// Package export serializes a corrected asset bundle into the CSV layout the
// ad-platform editor imports. Every string it receives has already passed the
// character validator; no further validation happens here.
package export

import (
	"encoding/csv"
	"io"
	"strings"

	"github.com/adforge/adcopy/internal/models"
)

var header = []string{"Campaign", "Asset Type", "Text", "Header", "Match Type"}

// WriteCSV writes the corrected bundle as CSV rows, one asset per row.
// Snippet groups emit one row per group with the values joined by "; ".
func WriteCSV(w io.Writer, campaign string, content *models.CorrectedContent) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}

	write := func(assetType models.AssetType, text, snippetHeader, matchType string) error {
		return cw.Write([]string{campaign, string(assetType), text, snippetHeader, matchType})
	}

	for _, kw := range content.Keywords {
		if err := write(models.AssetTypeKeyword, kw.Text, "", string(kw.MatchType)); err != nil {
			return err
		}
	}
	for _, h := range content.Headlines {
		if err := write(models.AssetTypeHeadline, h, "", ""); err != nil {
			return err
		}
	}
	for _, d := range content.Descriptions {
		if err := write(models.AssetTypeDescription, d, "", ""); err != nil {
			return err
		}
	}
	for _, s := range content.Sitelinks {
		if err := write(models.AssetTypeSitelink, s, "", ""); err != nil {
			return err
		}
	}
	for _, c := range content.Callouts {
		if err := write(models.AssetTypeCallout, c, "", ""); err != nil {
			return err
		}
	}
	for _, group := range content.Snippets {
		if err := write(models.AssetTypeSnippet, strings.Join(group.Values, "; "), group.Header, ""); err != nil {
			return err
		}
	}
	for _, p := range content.Paths {
		if err := write(models.AssetTypePath, p, "", ""); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
