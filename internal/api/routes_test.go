package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adforge/adcopy/internal/config"
	"github.com/adforge/adcopy/internal/service/catalog"
	"github.com/adforge/adcopy/internal/service/enhancer"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	cat, err := catalog.LoadEmbedded()
	require.NoError(t, err)

	app := fiber.New()
	enh := enhancer.NewService(enhancer.ServiceOptions{})
	SetupRoutes(app, cat, nil, enh, config.NewConfig())
	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, body any) *http.Response {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(fiber.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

func TestHealthRoute(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest(fiber.MethodGet, "/api/health", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", decodeBody(t, resp)["status"])
}

func TestGenerateCampaignRoute(t *testing.T) {
	app := newTestApp(t)

	resp := postJSON(t, app, "/api/campaigns/generate", map[string]any{
		"product_name":        "Skinatrin",
		"country_code":        "PL",
		"discount_percentage": 50,
		"guarantee_period":    "60 dias",
		"delivery_type":       "Frete Grátis",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, true, body["success"])

	data := body["data"].(map[string]any)
	assert.Equal(t, false, data["cached"])
	assert.NotEmpty(t, data["campaign_id"])
	assert.Contains(t, data["report"], "Status: PASS")

	loc := data["locale"].(map[string]any)
	assert.Equal(t, "pl", loc["language"])
	assert.Equal(t, "PLN", loc["currency_code"])

	bundle := data["bundle"].(map[string]any)
	assert.Len(t, bundle["headlines"].([]any), 15)
	assert.Len(t, bundle["keywords"].([]any), 2)

	validation := data["validation"].(map[string]any)
	assert.Equal(t, true, validation["is_valid"])
	corrected := validation["corrected_content"].(map[string]any)
	assert.Len(t, corrected["headlines"].([]any), 15)
}

func TestGenerateCampaignRejectsEmptyProductName(t *testing.T) {
	app := newTestApp(t)

	resp := postJSON(t, app, "/api/campaigns/generate", map[string]any{
		"product_name": "",
		"country_code": "US",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, false, body["success"])
	assert.Contains(t, body["error"], "product name")
}

func TestGenerateCampaignUnknownCountryWarns(t *testing.T) {
	app := newTestApp(t)

	resp := postJSON(t, app, "/api/campaigns/generate", map[string]any{
		"product_name": "Skinatrin",
		"country_code": "XX",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	data := body["data"].(map[string]any)
	validation := data["validation"].(map[string]any)
	warnings := validation["warnings"].([]any)
	require.NotEmpty(t, warnings)
	assert.Contains(t, warnings[0], "unknown country")
}

func TestEnhanceCampaignWithoutProviders(t *testing.T) {
	app := newTestApp(t)

	resp := postJSON(t, app, "/api/campaigns/enhance", map[string]any{
		"asset_type":   "headline",
		"language":     "en",
		"product_name": "Skinatrin",
		"texts":        []string{"Buy Skinatrin Now"},
	})
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, false, body["success"])
}

func TestValidateAssetsRoute(t *testing.T) {
	app := newTestApp(t)

	resp := postJSON(t, app, "/api/assets/validate", map[string]any{
		"headlines": []string{"Skinatrin The Official Online Store Deal"},
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	data := body["data"].(map[string]any)
	validation := data["validation"].(map[string]any)
	corrected := validation["corrected_content"].(map[string]any)
	headlines := corrected["headlines"].([]any)
	require.Len(t, headlines, 1)
	assert.Equal(t, "Skinatrin The Official Online", headlines[0])
	assert.Contains(t, data["report"], "[FIXED]")
}

func TestExportCampaignRoute(t *testing.T) {
	app := newTestApp(t)

	resp := postJSON(t, app, "/api/campaigns/export", map[string]any{
		"campaign": "Skinatrin PL",
		"content": map[string]any{
			"headlines": []string{"Skinatrin Best Price"},
			"keywords":  []map[string]any{{"text": "skinatrin", "match_type": "BROAD"}},
		},
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentType), "text/csv")
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "Skinatrin PL.csv")

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "Campaign,Asset Type,Text,Header,Match Type")
	assert.Contains(t, string(raw), "Skinatrin PL,keyword,skinatrin,,BROAD")
}

func TestGetLocalesRoute(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest(fiber.MethodGet, "/api/locales", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	data := body["data"].(map[string]any)
	assert.Contains(t, data["countries"], "BR")
	assert.Contains(t, data["languages"], "pl")
	assert.Equal(t, "en", data["default_language"])
}
