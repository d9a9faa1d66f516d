package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Decan209/easy-tick-bw/internal/modules/campaigns"
	"github.com/Decan209/easy-tick-bw/internal/modules/cart"
	"github.com/Decan209/easy-tick-bw/internal/modules/exclusion"
	"github.com/Decan209/easy-tick-bw/internal/modules/offers"
	"github.com/Decan209/easy-tick-bw/internal/shared/ids"
	"github.com/Decan209/easy-tick-bw/internal/widget"
)

// WidgetHandler renders the widget's initial state server-side. One
// controller is constructed per request (one page view) over the shopper's
// own cart session, forwarded via the request cookies.
type WidgetHandler struct {
	Resolver  *campaigns.Resolver
	Exclusion *exclusion.Codec
	Log       *slog.Logger

	// Redis, when set, backs the unchecked list for logged-in shoppers
	// instead of the signed cookie.
	Redis *exclusion.Redis

	// NewCartAPI builds the cart surface for a shop; overridable in tests.
	NewCartAPI func(c *gin.Context, shop string) cart.API
}

func NewWidgetHandler(resolver *campaigns.Resolver, excl *exclusion.Codec, log *slog.Logger) *WidgetHandler {
	return &WidgetHandler{
		Resolver:  resolver,
		Exclusion: excl,
		Log:       log,
		NewCartAPI: func(c *gin.Context, shop string) cart.API {
			client := cart.NewClient("https://"+shop, nil)
			client.Cookie = c.GetHeader("Cookie")
			return cart.NewCached(client)
		},
	}
}

type widgetResponse struct {
	Hidden     bool               `json:"hidden"`
	Offers     []offers.ViewModel `json:"offers"`
	TotalPrice int64              `json:"totalPrice"`
}

// State handles GET /apps/easy-tick/widget.
func (h *WidgetHandler) State(c *gin.Context) {
	shop := c.Query("shop")
	if shop == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing shop"})
		return
	}

	cfg := widget.Config{
		Shop:          shop,
		PageType:      c.Query("page_type"),
		ProductID:     c.Query("product_id"),
		CollectionID:  c.Query("collection_id"),
		VariantPrices: parseVariantPrices(c.QueryArray("variant_price")),
	}

	ctrl := widget.New(cfg, h.NewCartAPI(c, shop), h.Resolver, h.exclusionStore(c), h.Log)
	ctrl.Init(c.Request.Context())

	resp := widgetResponse{Hidden: ctrl.Hidden(), Offers: ctrl.ViewModels()}
	if resp.Offers == nil {
		resp.Offers = []offers.ViewModel{}
	}
	if !resp.Hidden {
		resp.TotalPrice = ctrl.Total()
	}
	c.JSON(http.StatusOK, resp)
}

// exclusionStore picks the backing store for the shopper's unchecked
// list. The app proxy forwards logged_in_customer_id for signed-in
// shoppers; anonymous ones fall back to the cookie.
func (h *WidgetHandler) exclusionStore(c *gin.Context) exclusion.Store {
	if h.Redis != nil {
		if customer := c.Query("logged_in_customer_id"); customer != "" {
			return h.Redis.ForShopper(customer)
		}
	}
	return h.Exclusion.Bind(c)
}

// parseVariantPrices decodes repeated "variant_price=<id>:<price>" params,
// the wire form of the page's scanned variant->price associations.
func parseVariantPrices(pairs []string) map[int64]string {
	if len(pairs) == 0 {
		return nil
	}
	out := make(map[int64]string, len(pairs))
	for _, p := range pairs {
		for i := 0; i < len(p); i++ {
			if p[i] == ':' {
				if id, ok := ids.Variant(p[:i]); ok && p[i+1:] != "" {
					out[id] = p[i+1:]
				}
				break
			}
		}
	}
	return out
}
