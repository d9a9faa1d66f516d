package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Decan209/easy-tick-bw/internal/modules/campaigns"
)

type stubSource struct {
	campaigns []campaigns.Campaign
	err       error
}

func (s *stubSource) ActiveByShop(ctx context.Context, shop string) ([]campaigns.Campaign, error) {
	return s.campaigns, s.err
}

func proxyRouter(src campaigns.Source) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewProxyCampaignsHandler(campaigns.NewResolver(src))
	r := gin.New()
	r.GET("/apps/easy-tick/campaigns", h.Get)
	r.POST("/apps/easy-tick/campaigns", h.Action)
	return r
}

func TestProxyCampaignsGet(t *testing.T) {
	src := &stubSource{campaigns: []campaigns.Campaign{{
		ID:         "c1",
		Shop:       "demo.myshopify.com",
		Status:     campaigns.StatusActive,
		TargetType: campaigns.TargetAll,
		Placement:  campaigns.PlacementProduct,
	}}}
	r := proxyRouter(src)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet,
		"/apps/easy-tick/campaigns?shop=demo.myshopify.com&page_type=product", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var res campaigns.Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	require.Len(t, res.Campaigns, 1)
	assert.Equal(t, "c1", res.Campaigns[0].ID)
	assert.Equal(t, "product", res.Debug.PageType)
	assert.Equal(t, 1, res.Debug.TotalCampaigns)
}

func TestProxyCampaignsGet_SourceFailure(t *testing.T) {
	r := proxyRouter(&stubSource{err: errors.New("db down")})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet,
		"/apps/easy-tick/campaigns?shop=demo.myshopify.com", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusInternalServerError, w.Code)

	var body struct {
		Error     string               `json:"error"`
		Campaigns []campaigns.Resolved `json:"campaigns"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Failed to fetch campaigns", body.Error)
	assert.NotNil(t, body.Campaigns)
	assert.Empty(t, body.Campaigns)
}

func TestProxyCampaignsAction(t *testing.T) {
	r := proxyRouter(&stubSource{})

	cases := []struct {
		action string
		code   int
	}{
		{"track_impression", http.StatusOK},
		{"track_conversion", http.StatusOK},
		{"delete_everything", http.StatusBadRequest},
		{"", http.StatusBadRequest},
	}
	for _, tc := range cases {
		form := url.Values{"_action": {tc.action}}
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost,
			"/apps/easy-tick/campaigns", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		r.ServeHTTP(w, req)

		assert.Equal(t, tc.code, w.Code, "action %q", tc.action)
	}
}
