// Package offers turns eligible campaigns into concrete upsell offers for
// one page view. An offer only exists once its variant id resolved to a
// real number; anything else is dropped before it can reach the cart.
package offers

import (
	"github.com/Decan209/easy-tick-bw/internal/modules/campaigns"
	"github.com/Decan209/easy-tick-bw/internal/shared/ids"
)

type Offer struct {
	CampaignID string
	VariantID  int64
	Quantity   int

	Title       string
	Heading     string
	Description string
	ImageURL    string
	ShowImage   bool

	// Price is display text, not money math. Falls back from the page's
	// scanned variant prices to the campaign's own price field.
	Price     string
	ShowPrice bool

	PreCheck  bool
	Placement string

	Style    Style
	Metadata *campaigns.Metadata
}

type Style struct {
	BackgroundColor       string
	BorderColor           string
	BackgroundColorActive string
	Padding               int
	BorderRadius          int
	ImageSize             int
}

// Materialize maps resolved campaigns to offers. Campaigns whose variant id
// does not resolve to a number are silently skipped, per the widget
// contract: one broken record must not take down the rest.
func Materialize(resolved []campaigns.Resolved, pagePrices map[int64]string) []Offer {
	out := make([]Offer, 0, len(resolved))
	for _, c := range resolved {
		variantID, ok := ids.Variant(c.SelectedVariantID)
		if !ok {
			continue
		}

		price := pagePrices[variantID]
		if price == "" {
			price = c.Price
		}

		out = append(out, Offer{
			CampaignID:  c.ID,
			VariantID:   variantID,
			Quantity:    1,
			Title:       c.Title,
			Heading:     c.Heading,
			Description: c.Description,
			ImageURL:    c.ImageURL,
			ShowImage:   c.ShowImage,
			Price:       price,
			ShowPrice:   c.ShowPrice,
			PreCheck:    c.PreCheck,
			Placement:   c.Placement,
			Style: Style{
				BackgroundColor:       c.BackgroundColor,
				BorderColor:           c.BorderColor,
				BackgroundColorActive: c.BackgroundColorActive,
				Padding:               c.Padding,
				BorderRadius:          c.BorderRadius,
				ImageSize:             c.ImageSize,
			},
			Metadata: c.Metadata,
		})
	}
	return out
}

// Label returns the text shown on the offer card.
func (o Offer) Label() string {
	if o.Heading != "" {
		return o.Heading
	}
	return o.Title
}
