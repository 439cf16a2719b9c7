package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adforge/adcopy/internal/config"
	"github.com/adforge/adcopy/internal/models"
	"github.com/adforge/adcopy/internal/repository/cache"
	"github.com/adforge/adcopy/internal/service/catalog"
	"github.com/adforge/adcopy/internal/service/enhancer"
)

// fakeCache is an in-memory CampaignCache for handler tests.
type fakeCache struct {
	records map[string]*cache.CampaignRecord
}

func newFakeCache() *fakeCache {
	return &fakeCache{records: make(map[string]*cache.CampaignRecord)}
}

func (f *fakeCache) GetCampaign(key string) (*cache.CampaignRecord, error) {
	return f.records[key], nil
}

func (f *fakeCache) CacheCampaign(key string, record *cache.CampaignRecord) error {
	f.records[key] = record
	return nil
}

type stubProvider struct {
	text string
}

func (p *stubProvider) EnhanceCopy(ctx context.Context, request *enhancer.Request) (*enhancer.Response, error) {
	return &enhancer.Response{Candidates: []enhancer.Candidate{{Text: p.text, Confidence: 0.9}}}, nil
}

func (p *stubProvider) GetName() string { return "stub" }

func (p *stubProvider) Close() error { return nil }

func newCampaignHandler(t *testing.T, enh *enhancer.Service, cc CampaignCache) *CampaignHandler {
	t.Helper()
	cat, err := catalog.LoadEmbedded()
	require.NoError(t, err)
	return NewCampaignHandler(cat, enh, cc, config.NewConfig())
}

func newCampaignApp(h *CampaignHandler) *fiber.App {
	app := fiber.New()
	app.Post("/generate", h.GenerateCampaign)
	app.Post("/enhance", h.EnhanceCampaign)
	app.Get("/export", h.ExportCachedCampaign)
	return app
}

func postBody(t *testing.T, app *fiber.App, path string, body any) *http.Response {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(fiber.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

// Cached and fresh generations must return the same response shape, bundle
// included.
func TestGenerateCampaignCacheHitKeepsResponseShape(t *testing.T) {
	fc := newFakeCache()
	h := newCampaignHandler(t, enhancer.NewService(enhancer.ServiceOptions{}), fc)
	app := newCampaignApp(h)

	body := map[string]any{"product_name": "Skinatrin", "country_code": "US"}

	// First call populates the cache.
	resp := postBody(t, app, "/generate", body)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	first := decode(t, resp)["data"].(map[string]any)
	assert.Equal(t, false, first["cached"])
	require.Len(t, fc.records, 1)

	// Second call is served from the cache with the bundle intact.
	resp = postBody(t, app, "/generate", body)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	second := decode(t, resp)["data"].(map[string]any)
	assert.Equal(t, true, second["cached"])

	bundle := second["bundle"].(map[string]any)
	assert.Len(t, bundle["headlines"].([]any), 15)
	assert.Equal(t, first["bundle"], second["bundle"])
	assert.Equal(t, first["validation"], second["validation"])
	assert.Contains(t, second["report"], "Status: PASS")
}

func TestExportCachedCampaign(t *testing.T) {
	fc := newFakeCache()
	fc.records["campaign:abc123"] = &cache.CampaignRecord{
		Bundle: &models.AssetBundle{},
		Validation: &models.ValidationResult{
			IsValid: true,
			CorrectedContent: models.CorrectedContent{
				Keywords:  []models.Keyword{{Text: "skinatrin", MatchType: models.MatchTypeBroad}},
				Headlines: []string{"Skinatrin Best Price"},
			},
		},
	}
	h := newCampaignHandler(t, enhancer.NewService(enhancer.ServiceOptions{}), fc)
	app := newCampaignApp(h)

	req := httptest.NewRequest(fiber.MethodGet, "/export?key=campaign:abc123&campaign=Skinatrin+US", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentType), "text/csv")

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "Skinatrin US,keyword,skinatrin,,BROAD")
	assert.Contains(t, string(raw), "Skinatrin US,headline,Skinatrin Best Price,,")
}

func TestExportCachedCampaignMissingKey(t *testing.T) {
	h := newCampaignHandler(t, enhancer.NewService(enhancer.ServiceOptions{}), newFakeCache())
	app := newCampaignApp(h)

	req := httptest.NewRequest(fiber.MethodGet, "/export", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	req = httptest.NewRequest(fiber.MethodGet, "/export?key=campaign:unknown", nil)
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

// Description candidates are corrected sentence-wise, other types word-wise.
func TestEnhanceCampaignCorrectsCandidates(t *testing.T) {
	sentence := strings.Repeat("a", 28)
	long := sentence + ". " + sentence + ". " + sentence + ". " + strings.Repeat("b", 20) + "."

	newApp := func(text string) *fiber.App {
		svc := enhancer.NewService(enhancer.ServiceOptions{
			RateLimit:  1000,
			RetryDelay: time.Millisecond,
		})
		svc.RegisterProvider(&stubProvider{text: text})
		return newCampaignApp(newCampaignHandler(t, svc, newFakeCache()))
	}

	t.Run("description keeps whole sentences", func(t *testing.T) {
		resp := postBody(t, newApp(long), "/enhance", map[string]any{
			"asset_type":   "description",
			"language":     "en",
			"product_name": "Skinatrin",
			"texts":        []string{"Try Skinatrin risk free."},
		})
		require.Equal(t, fiber.StatusOK, resp.StatusCode)

		data := decode(t, resp)["data"].(map[string]any)
		candidates := data["candidates"].([]any)
		require.Len(t, candidates, 1)
		cand := candidates[0].(map[string]any)
		assert.Equal(t, sentence+". "+sentence+". "+sentence+".", cand["corrected"])
	})

	t.Run("headline keeps whole words", func(t *testing.T) {
		resp := postBody(t, newApp("Skinatrin The Official Online Store Deal"), "/enhance", map[string]any{
			"asset_type":   "headline",
			"language":     "en",
			"product_name": "Skinatrin",
			"texts":        []string{"Buy Skinatrin Now"},
		})
		require.Equal(t, fiber.StatusOK, resp.StatusCode)

		data := decode(t, resp)["data"].(map[string]any)
		candidates := data["candidates"].([]any)
		require.Len(t, candidates, 1)
		cand := candidates[0].(map[string]any)
		assert.Equal(t, "Skinatrin The Official Online", cand["corrected"])
	})
}
