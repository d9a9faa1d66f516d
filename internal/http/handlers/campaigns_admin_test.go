package handlers

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Decan209/easy-tick-bw/internal/http/middleware"
	"github.com/Decan209/easy-tick-bw/internal/modules/campaigns"
)

func adminRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewCampaignAdminHandler(nil)
	r := gin.New()
	r.Use(middleware.ErrorHandler(slog.Default()))
	r.POST("/api/campaigns", h.Create)
	r.POST("/api/campaigns/status", h.BulkStatus)
	return r
}

func postJSON(t *testing.T, r *gin.Engine, target, shop string, body any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, target, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	if shop != "" {
		req.Header.Set("X-Shop-Domain", shop)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestCampaignCreate_MissingShop(t *testing.T) {
	w := postJSON(t, adminRouter(), "/api/campaigns", "", gin.H{"title": "Gift wrap"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCampaignCreate_ValidationFields(t *testing.T) {
	w := postJSON(t, adminRouter(), "/api/campaigns", "demo.myshopify.com", gin.H{
		"title":           "",
		"status":          "archived",
		"backgroundColor": "not-a-color",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var body struct {
		Error  string            `json:"error"`
		Fields map[string]string `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Contains(t, body.Fields, "title")
	assert.Contains(t, body.Fields, "status")
	assert.Contains(t, body.Fields, "backgroundColor")
}

func TestBulkStatus_RejectsUnknownStatus(t *testing.T) {
	w := postJSON(t, adminRouter(), "/api/campaigns/status", "demo.myshopify.com",
		gin.H{"status": "paused"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCampaignPayloadDefaults(t *testing.T) {
	cmp := campaignPayload{Title: "Gift wrap"}.toModel("demo.myshopify.com")

	assert.Equal(t, campaigns.StatusDraft, cmp.Status)
	assert.Equal(t, campaigns.TargetAll, cmp.TargetType)
	assert.Equal(t, campaigns.PlacementProduct, cmp.Placement)
	assert.True(t, cmp.ShowImage)
	assert.True(t, cmp.ShowPrice)
	assert.False(t, cmp.PreCheck)
	assert.Equal(t, "#FFFFFF", cmp.BackgroundColor)
	assert.Equal(t, 16, cmp.Padding)
	assert.Equal(t, 8, cmp.BorderRadius)
}

func TestCampaignPayloadToFields_SkipsUnsetOptionals(t *testing.T) {
	fields := campaignPayload{Title: "Gift wrap"}.toFields()

	assert.Equal(t, "Gift wrap", fields["title"])
	for _, key := range []string{
		"status", "target_type", "placement",
		"show_image", "show_price", "pre_check",
		"background_color", "padding", "border_radius", "image_size",
	} {
		assert.NotContains(t, fields, key)
	}
}
