package offers

// Default presentation values, matching what the storefront widget renders
// when a campaign carries no explicit style.
const (
	defaultCardBackground = "#fff"
	defaultBorderColor    = "#E1E3E5"
	defaultActiveColor    = "#0066CC"
	defaultBorderRadius   = 8
	defaultPadding        = 16
	defaultImageSize      = 50
	defaultCheckboxBg     = "#FFFFFF"
	defaultCheckboxSize   = 20
	defaultFontSize       = 14
	defaultFontColor      = "#000000"
	defaultFontWeight     = "normal"
)

// ViewModel is the fully resolved render model for one offer card. The
// renderer consumes it verbatim; no styling decisions are made downstream.
type ViewModel struct {
	CampaignID string `json:"campaignId"`
	VariantID  int64  `json:"variantId"`

	Label       string `json:"label"`
	Description string `json:"description,omitempty"`
	ImageURL    string `json:"imageUrl,omitempty"`
	ShowImage   bool   `json:"showImage"`

	PriceLabel string `json:"priceLabel,omitempty"`
	PriceColor string `json:"priceColor,omitempty"`

	Checked bool `json:"checked"`

	Card     CardStyle     `json:"card"`
	Checkbox CheckboxStyle `json:"checkbox"`
	Font     FontStyle     `json:"font"`
}

type CardStyle struct {
	Background   string `json:"background"`
	BorderColor  string `json:"borderColor"`
	BorderRadius int    `json:"borderRadius"`
	Padding      int    `json:"padding"`
	ImageSize    int    `json:"imageSize"`
}

type CheckboxStyle struct {
	BackgroundColor string `json:"backgroundColor"`
	BorderColor     string `json:"borderColor"`
	ActiveColor     string `json:"activeColor"`
	Size            int    `json:"size"`
}

type FontStyle struct {
	Size   int    `json:"size"`
	Color  string `json:"color"`
	Weight string `json:"weight"`
}

// View resolves the offer into its render model. checked is decided by the
// widget controller (pre-check, cart presence and the exclusion list all
// factor in there, not here).
func (o Offer) View(checked bool) ViewModel {
	vm := ViewModel{
		CampaignID:  o.CampaignID,
		VariantID:   o.VariantID,
		Label:       o.Label(),
		Description: o.Description,
		ImageURL:    o.ImageURL,
		ShowImage:   o.ShowImage,
		Checked:     checked,
		Card: CardStyle{
			Background:   nonEmpty(o.Style.BackgroundColor, defaultCardBackground),
			BorderColor:  nonEmpty(o.Style.BorderColor, defaultBorderColor),
			BorderRadius: nonZero(o.Style.BorderRadius, defaultBorderRadius),
			Padding:      nonZero(o.Style.Padding, defaultPadding),
			ImageSize:    nonZero(o.Style.ImageSize, defaultImageSize),
		},
		Checkbox: CheckboxStyle{
			BackgroundColor: defaultCheckboxBg,
			BorderColor:     defaultBorderColor,
			ActiveColor:     defaultActiveColor,
			Size:            defaultCheckboxSize,
		},
		Font: FontStyle{
			Size:   defaultFontSize,
			Color:  defaultFontColor,
			Weight: defaultFontWeight,
		},
	}

	if md := o.Metadata; md != nil {
		vm.Checkbox.BackgroundColor = nonEmpty(md.CheckboxStyle.BackgroundColor, vm.Checkbox.BackgroundColor)
		vm.Checkbox.BorderColor = nonEmpty(md.CheckboxStyle.BorderColor, vm.Checkbox.BorderColor)
		vm.Checkbox.ActiveColor = nonEmpty(md.CheckboxStyle.ActiveColor, vm.Checkbox.ActiveColor)
		vm.Checkbox.Size = nonZero(md.CheckboxStyle.Size, vm.Checkbox.Size)
		vm.Font.Size = nonZero(md.FontSettings.Size, vm.Font.Size)
		vm.Font.Color = nonEmpty(md.FontSettings.Color, vm.Font.Color)
		vm.Font.Weight = nonEmpty(md.FontSettings.Weight, vm.Font.Weight)
	}

	if o.ShowPrice && o.Price != "" {
		vm.PriceLabel = "(+ $" + o.Price + ")"
		vm.PriceColor = vm.Checkbox.ActiveColor
	}

	return vm
}

func nonEmpty(v, def string) string {
	if v != "" {
		return v
	}
	return def
}

func nonZero(v, def int) int {
	if v != 0 {
		return v
	}
	return def
}
