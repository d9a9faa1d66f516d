package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Decan209/easy-tick-bw/internal/modules/campaigns"
)

// ProxyCampaignsHandler serves the storefront widget through the app
// proxy: campaign eligibility reads and fire-and-forget tracking actions.
type ProxyCampaignsHandler struct {
	Resolver *campaigns.Resolver
}

func NewProxyCampaignsHandler(resolver *campaigns.Resolver) *ProxyCampaignsHandler {
	return &ProxyCampaignsHandler{Resolver: resolver}
}

// Get handles GET /apps/easy-tick/campaigns. A data-layer failure answers
// 500 with an empty campaign list; the widget treats that as "show
// nothing", so the shape stays parseable either way.
func (h *ProxyCampaignsHandler) Get(c *gin.Context) {
	res, err := h.Resolver.Eligible(c.Request.Context(), campaigns.Query{
		Shop:         c.Query("shop"),
		PageType:     c.Query("page_type"),
		ProductID:    c.Query("product_id"),
		CollectionID: c.Query("collection_id"),
	})
	if err != nil {
		log.Printf("ProxyCampaignsGet: resolving campaigns: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Failed to fetch campaigns",
			"campaigns": []campaigns.Resolved{},
		})
		return
	}

	c.JSON(http.StatusOK, res)
}

// Action handles POST /apps/easy-tick/campaigns. Impression/conversion
// tracking is acknowledged and dropped; anything else is a bad request.
func (h *ProxyCampaignsHandler) Action(c *gin.Context) {
	switch c.PostForm("_action") {
	case "track_impression":
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Impression tracked"})
	case "track_conversion":
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Conversion tracked"})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid action"})
	}
}
