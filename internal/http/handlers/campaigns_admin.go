package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/Decan209/easy-tick-bw/internal/http/middleware"
	"github.com/Decan209/easy-tick-bw/internal/http/validation"
	"github.com/Decan209/easy-tick-bw/internal/modules/campaigns"
	"github.com/Decan209/easy-tick-bw/internal/shared/apperr"
)

// CampaignAdminHandler exposes the embedded admin's campaign CRUD as a
// JSON API. The shop is taken from the authenticated admin session header
// set by the platform.
type CampaignAdminHandler struct {
	Repo *campaigns.Repo
}

func NewCampaignAdminHandler(repo *campaigns.Repo) *CampaignAdminHandler {
	return &CampaignAdminHandler{Repo: repo}
}

type campaignPayload struct {
	Title      string `json:"title" binding:"required,max=255"`
	Status     string `json:"status" binding:"omitempty,oneof=active draft"`
	TargetType string `json:"targetType" binding:"omitempty,oneof=all product specific-products collection"`
	Placement  string `json:"placement" binding:"omitempty,oneof=product cart home"`

	SelectedCollectionID string   `json:"selectedCollectionId"`
	SelectedCollections  []string `json:"selectedCollections"`
	TargetProducts       []string `json:"targetProducts"`

	SelectedVariantID string `json:"selectedVariantId"`
	SelectedProductID string `json:"selectedProductId"`

	Heading     string `json:"heading" binding:"max=255"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl" binding:"omitempty,url"`
	ShowImage   *bool  `json:"showImage"`

	Price     string `json:"price" binding:"max=32"`
	ShowPrice *bool  `json:"showPrice"`
	PreCheck  *bool  `json:"preCheck"`

	BackgroundColor       string `json:"backgroundColor" binding:"omitempty,hexcolor"`
	BorderColor           string `json:"borderColor" binding:"omitempty,hexcolor"`
	BackgroundColorActive string `json:"backgroundColorActive" binding:"omitempty,hexcolor"`
	Padding               *int   `json:"padding" binding:"omitempty,min=0,max=100"`
	BorderRadius          *int   `json:"borderRadius" binding:"omitempty,min=0,max=100"`
	ImageSize             *int   `json:"imageSize" binding:"omitempty,min=20,max=100"`

	Metadata string `json:"metadata"`
}

func shopFrom(c *gin.Context) (string, bool) {
	shop := strings.TrimSpace(c.GetHeader("X-Shop-Domain"))
	if shop == "" {
		shop = strings.TrimSpace(c.Query("shop"))
	}
	return shop, shop != ""
}

// List handles GET /api/campaigns.
func (h *CampaignAdminHandler) List(c *gin.Context) {
	shop, ok := shopFrom(c)
	if !ok {
		middleware.Fail(c, apperr.InvalidErr("Missing shop.", nil))
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	items, total, err := h.Repo.ListByShop(c.Request.Context(), shop, page, limit)
	if err != nil {
		log.Printf("CampaignList: shop=%s: %v", shop, err)
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"campaigns": items, "total": total})
}

// Get handles GET /api/campaigns/:id.
func (h *CampaignAdminHandler) Get(c *gin.Context) {
	shop, ok := shopFrom(c)
	if !ok {
		middleware.Fail(c, apperr.InvalidErr("Missing shop.", nil))
		return
	}

	cmp, err := h.Repo.Get(c.Request.Context(), c.Param("id"), shop)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		middleware.Fail(c, apperr.NotFoundErr("Campaign not found."))
		return
	}
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	c.JSON(http.StatusOK, cmp)
}

// Create handles POST /api/campaigns.
func (h *CampaignAdminHandler) Create(c *gin.Context) {
	shop, ok := shopFrom(c)
	if !ok {
		middleware.Fail(c, apperr.InvalidErr("Missing shop.", nil))
		return
	}

	var in campaignPayload
	if err := c.ShouldBindJSON(&in); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Invalid campaign.", validation.FromBindError(err, &in)))
		return
	}

	cmp, err := h.Repo.Create(c.Request.Context(), in.toModel(shop))
	if err != nil {
		if campaigns.IsDuplicateKey(err) {
			middleware.Fail(c, apperr.ConflictErr("A campaign with this id already exists."))
			return
		}
		log.Printf("CampaignCreate: shop=%s: %v", shop, err)
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	c.JSON(http.StatusCreated, cmp)
}

// Update handles PUT /api/campaigns/:id.
func (h *CampaignAdminHandler) Update(c *gin.Context) {
	shop, ok := shopFrom(c)
	if !ok {
		middleware.Fail(c, apperr.InvalidErr("Missing shop.", nil))
		return
	}

	var in campaignPayload
	if err := c.ShouldBindJSON(&in); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Invalid campaign.", validation.FromBindError(err, &in)))
		return
	}

	err := h.Repo.Update(c.Request.Context(), c.Param("id"), shop, in.toFields())
	if errors.Is(err, gorm.ErrRecordNotFound) {
		middleware.Fail(c, apperr.NotFoundErr("Campaign not found."))
		return
	}
	if err != nil {
		log.Printf("CampaignUpdate: id=%s shop=%s: %v", c.Param("id"), shop, err)
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Delete handles DELETE /api/campaigns/:id.
func (h *CampaignAdminHandler) Delete(c *gin.Context) {
	shop, ok := shopFrom(c)
	if !ok {
		middleware.Fail(c, apperr.InvalidErr("Missing shop.", nil))
		return
	}

	if err := h.Repo.Delete(c.Request.Context(), c.Param("id"), shop); err != nil {
		log.Printf("CampaignDelete: id=%s shop=%s: %v", c.Param("id"), shop, err)
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// DeleteByShop handles DELETE /api/campaigns (app uninstall cleanup).
func (h *CampaignAdminHandler) DeleteByShop(c *gin.Context) {
	shop, ok := shopFrom(c)
	if !ok {
		middleware.Fail(c, apperr.InvalidErr("Missing shop.", nil))
		return
	}

	n, err := h.Repo.DeleteByShop(c.Request.Context(), shop)
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": n})
}

// BulkStatus handles POST /api/campaigns/status.
func (h *CampaignAdminHandler) BulkStatus(c *gin.Context) {
	shop, ok := shopFrom(c)
	if !ok {
		middleware.Fail(c, apperr.InvalidErr("Missing shop.", nil))
		return
	}

	var in struct {
		Status string `json:"status" binding:"required,oneof=active draft"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Invalid status.", validation.FromBindError(err, &in)))
		return
	}

	n, err := h.Repo.UpdateStatusByShop(c.Request.Context(), shop, in.Status)
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"updated": n})
}

func (p campaignPayload) toModel(shop string) campaigns.Campaign {
	cmp := campaigns.Campaign{
		Shop:                  shop,
		Title:                 p.Title,
		Status:                defaultStr(p.Status, campaigns.StatusDraft),
		TargetType:            defaultStr(p.TargetType, campaigns.TargetAll),
		Placement:             defaultStr(p.Placement, campaigns.PlacementProduct),
		SelectedCollectionID:  p.SelectedCollectionID,
		SelectedCollections:   datatypes.NewJSONSlice(p.SelectedCollections),
		TargetProducts:        datatypes.NewJSONSlice(p.TargetProducts),
		SelectedVariantID:     p.SelectedVariantID,
		SelectedProductID:     p.SelectedProductID,
		Heading:               p.Heading,
		Description:           p.Description,
		ImageURL:              p.ImageURL,
		ShowImage:             defaultBool(p.ShowImage, true),
		Price:                 p.Price,
		ShowPrice:             defaultBool(p.ShowPrice, true),
		PreCheck:              defaultBool(p.PreCheck, false),
		BackgroundColor:       defaultStr(p.BackgroundColor, "#FFFFFF"),
		BorderColor:           defaultStr(p.BorderColor, "#E1E3E5"),
		BackgroundColorActive: defaultStr(p.BackgroundColorActive, "#0066CC"),
		Padding:               defaultInt(p.Padding, 16),
		BorderRadius:          defaultInt(p.BorderRadius, 8),
		ImageSize:             defaultInt(p.ImageSize, 50),
		Metadata:              p.Metadata,
	}
	return cmp
}

func (p campaignPayload) toFields() map[string]any {
	fields := map[string]any{
		"title":                  p.Title,
		"selected_collection_id": p.SelectedCollectionID,
		"selected_collections":   datatypes.NewJSONSlice(p.SelectedCollections),
		"target_products":        datatypes.NewJSONSlice(p.TargetProducts),
		"selected_variant_id":    p.SelectedVariantID,
		"selected_product_id":    p.SelectedProductID,
		"heading":                p.Heading,
		"description":            p.Description,
		"image_url":              p.ImageURL,
		"price":                  p.Price,
		"metadata":               p.Metadata,
	}
	if p.Status != "" {
		fields["status"] = p.Status
	}
	if p.TargetType != "" {
		fields["target_type"] = p.TargetType
	}
	if p.Placement != "" {
		fields["placement"] = p.Placement
	}
	if p.ShowImage != nil {
		fields["show_image"] = *p.ShowImage
	}
	if p.ShowPrice != nil {
		fields["show_price"] = *p.ShowPrice
	}
	if p.PreCheck != nil {
		fields["pre_check"] = *p.PreCheck
	}
	if p.BackgroundColor != "" {
		fields["background_color"] = p.BackgroundColor
	}
	if p.BorderColor != "" {
		fields["border_color"] = p.BorderColor
	}
	if p.BackgroundColorActive != "" {
		fields["background_color_active"] = p.BackgroundColorActive
	}
	if p.Padding != nil {
		fields["padding"] = *p.Padding
	}
	if p.BorderRadius != nil {
		fields["border_radius"] = *p.BorderRadius
	}
	if p.ImageSize != nil {
		fields["image_size"] = *p.ImageSize
	}
	return fields
}

func defaultStr(v, def string) string {
	if v != "" {
		return v
	}
	return def
}

func defaultBool(v *bool, def bool) bool {
	if v != nil {
		return *v
	}
	return def
}

func defaultInt(v *int, def int) int {
	if v != nil {
		return *v
	}
	return def
}
