package campaigns

import (
	"time"

	"gorm.io/datatypes"
)

const (
	StatusActive = "active"
	StatusDraft  = "draft"
)

const (
	TargetAll        = "all"
	TargetProduct    = "product"
	TargetSpecific   = "specific-products"
	TargetCollection = "collection"
)

const (
	PlacementProduct = "product"
	PlacementCart    = "cart"
	PlacementHome    = "home"
)

// Campaign is the merchant-configured upsell rule. Target id fields may hold
// either platform-qualified gids or bare numeric strings; nothing outside
// ids.Normalize may compare them directly.
type Campaign struct {
	ID     string `gorm:"type:char(36);primaryKey" json:"id"`
	Shop   string `gorm:"type:varchar(255);not null;index:ix_campaigns_shop_status,priority:1" json:"shop"`
	Title  string `gorm:"type:varchar(255);not null" json:"title"`
	Status string `gorm:"type:varchar(16);not null;default:draft;index:ix_campaigns_shop_status,priority:2" json:"status"`

	TargetType string `gorm:"type:varchar(32);not null;default:all" json:"targetType"`
	Placement  string `gorm:"type:varchar(16);not null;default:product" json:"placement"`

	SelectedCollectionID string                      `gorm:"type:varchar(128)" json:"selectedCollectionId"`
	SelectedCollections  datatypes.JSONSlice[string] `gorm:"type:json" json:"selectedCollections"`
	TargetProducts       datatypes.JSONSlice[string] `gorm:"type:json" json:"targetProducts"`

	SelectedVariantID string `gorm:"type:varchar(128)" json:"selectedVariantId"`
	SelectedProductID string `gorm:"type:varchar(128)" json:"selectedProductId"`

	Heading     string `gorm:"type:varchar(255)" json:"heading"`
	Description string `gorm:"type:text" json:"description"`
	ImageURL    string `gorm:"type:varchar(512)" json:"imageUrl"`
	ShowImage   bool   `gorm:"not null;default:true" json:"showImage"`

	Price     string `gorm:"type:varchar(32)" json:"price"`
	ShowPrice bool   `gorm:"not null;default:true" json:"showPrice"`
	PreCheck  bool   `gorm:"not null;default:false" json:"preCheck"`

	BackgroundColor       string `gorm:"type:varchar(16);default:#FFFFFF" json:"backgroundColor"`
	BorderColor           string `gorm:"type:varchar(16);default:#E1E3E5" json:"borderColor"`
	BackgroundColorActive string `gorm:"type:varchar(16);default:#0066CC" json:"backgroundColorActive"`
	Padding               int    `gorm:"not null;default:16" json:"padding"`
	BorderRadius          int    `gorm:"not null;default:8" json:"borderRadius"`
	ImageSize             int    `gorm:"not null;default:50" json:"imageSize"`

	// Metadata is a free-form JSON string written by the admin UI
	// (checkbox style, font settings). Parsed leniently at read time.
	Metadata string `gorm:"type:text" json:"-"`

	CreatedAt time.Time `gorm:"type:datetime(3);not null" json:"createdAt"`
	UpdatedAt time.Time `gorm:"type:datetime(3);not null" json:"updatedAt"`
}

func (Campaign) TableName() string { return "campaigns" }
