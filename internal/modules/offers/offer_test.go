package offers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Decan209/easy-tick-bw/internal/modules/campaigns"
)

func resolved(c campaigns.Campaign) campaigns.Resolved {
	return campaigns.Resolved{Campaign: c, Metadata: campaigns.ParseMetadata(c.Metadata)}
}

func TestMaterialize_DropsUnresolvableVariants(t *testing.T) {
	in := []campaigns.Resolved{
		resolved(campaigns.Campaign{ID: "ok", SelectedVariantID: "gid://shopify/ProductVariant/999"}),
		resolved(campaigns.Campaign{ID: "bare", SelectedVariantID: "1001"}),
		resolved(campaigns.Campaign{ID: "empty", SelectedVariantID: ""}),
		resolved(campaigns.Campaign{ID: "junk", SelectedVariantID: "no-digits"}),
	}

	out := Materialize(in, nil)
	require.Len(t, out, 2)
	assert.EqualValues(t, 999, out[0].VariantID)
	assert.EqualValues(t, 1001, out[1].VariantID)
	assert.Equal(t, 1, out[0].Quantity)
}

func TestMaterialize_PriceFallback(t *testing.T) {
	in := []campaigns.Resolved{
		resolved(campaigns.Campaign{ID: "scanned", SelectedVariantID: "10", Price: "9.99"}),
		resolved(campaigns.Campaign{ID: "own", SelectedVariantID: "11", Price: "4.50"}),
	}
	pagePrices := map[int64]string{10: "12.00"}

	out := Materialize(in, pagePrices)
	require.Len(t, out, 2)
	// page-scanned price wins over the campaign's stored price
	assert.Equal(t, "12.00", out[0].Price)
	assert.Equal(t, "4.50", out[1].Price)
}

func TestOffer_Label(t *testing.T) {
	assert.Equal(t, "Add warranty", Offer{Heading: "Add warranty", Title: "Warranty"}.Label())
	assert.Equal(t, "Warranty", Offer{Title: "Warranty"}.Label())
}

func TestView_Defaults(t *testing.T) {
	o := Offer{CampaignID: "c1", VariantID: 999, Title: "Warranty"}
	vm := o.View(true)

	assert.True(t, vm.Checked)
	assert.Equal(t, "#fff", vm.Card.Background)
	assert.Equal(t, 8, vm.Card.BorderRadius)
	assert.Equal(t, 16, vm.Card.Padding)
	assert.Equal(t, "#0066CC", vm.Checkbox.ActiveColor)
	assert.Equal(t, 20, vm.Checkbox.Size)
	assert.Equal(t, 14, vm.Font.Size)
	assert.Empty(t, vm.PriceLabel)
}

func TestView_MetadataOverridesAndPriceLabel(t *testing.T) {
	o := Offer{
		CampaignID: "c1",
		VariantID:  999,
		Title:      "Warranty",
		Price:      "3.00",
		ShowPrice:  true,
		Metadata: &campaigns.Metadata{
			CheckboxStyle: campaigns.CheckboxStyle{ActiveColor: "#FF0000", Size: 24},
			FontSettings:  campaigns.FontSettings{Size: 18, Weight: "bold"},
		},
	}
	vm := o.View(false)

	assert.False(t, vm.Checked)
	assert.Equal(t, "#FF0000", vm.Checkbox.ActiveColor)
	assert.Equal(t, 24, vm.Checkbox.Size)
	assert.Equal(t, 18, vm.Font.Size)
	assert.Equal(t, "bold", vm.Font.Weight)
	assert.Equal(t, "(+ $3.00)", vm.PriceLabel)
	assert.Equal(t, "#FF0000", vm.PriceColor)
}

func TestView_PriceHiddenWhenShowPriceOff(t *testing.T) {
	vm := Offer{VariantID: 1, Price: "3.00", ShowPrice: false}.View(false)
	assert.Empty(t, vm.PriceLabel)
}
