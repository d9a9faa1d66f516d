package campaigns

import (
	"context"
	"log"
	"strings"

	"github.com/Decan209/easy-tick-bw/internal/shared/ids"
)

// Source is the campaign lookup the resolver filters over. *Repo satisfies
// it; tests plug in a fixture.
type Source interface {
	ActiveByShop(ctx context.Context, shop string) ([]Campaign, error)
}

type Query struct {
	Shop         string
	PageType     string
	ProductID    string
	CollectionID string
}

// Resolved is a campaign materialized for one storefront response: the
// stored record plus its leniently parsed metadata.
type Resolved struct {
	Campaign
	Metadata *Metadata `json:"metadata"`
}

type Debug struct {
	ProductID         string `json:"productId,omitempty"`
	CollectionID      string `json:"collectionId,omitempty"`
	PageType          string `json:"pageType"`
	TotalCampaigns    int    `json:"totalCampaigns"`
	FilteredCampaigns int    `json:"filteredCampaigns"`
}

type Result struct {
	Campaigns []Resolved `json:"campaigns"`
	Debug     Debug      `json:"debug"`
}

type Resolver struct {
	src Source
}

func NewResolver(src Source) *Resolver { return &Resolver{src: src} }

// Eligible filters the shop's active campaigns down to the ones that may
// render in the given page context. A data-layer failure returns an empty
// set together with the error; it never panics past this boundary, and
// callers treat the empty set as "show nothing".
func (r *Resolver) Eligible(ctx context.Context, q Query) (Result, error) {
	pageType := strings.ToLower(q.PageType)
	if pageType == "" {
		pageType = PlacementProduct
	}

	out := Result{
		Campaigns: []Resolved{},
		Debug: Debug{
			ProductID:    normalizeOrEmpty(q.ProductID),
			CollectionID: normalizeOrEmpty(q.CollectionID),
			PageType:     pageType,
		},
	}

	all, err := r.src.ActiveByShop(ctx, q.Shop)
	if err != nil {
		log.Printf("Eligible: fetching campaigns for shop %s: %v", q.Shop, err)
		return out, err
	}
	out.Debug.TotalCampaigns = len(all)

	for _, c := range all {
		if !matches(c, pageType, q.ProductID, q.CollectionID) {
			continue
		}
		out.Campaigns = append(out.Campaigns, Resolved{
			Campaign: c,
			Metadata: ParseMetadata(c.Metadata),
		})
	}
	out.Debug.FilteredCampaigns = len(out.Campaigns)

	return out, nil
}

func matches(c Campaign, pageType, productID, collectionID string) bool {
	if c.Placement != pageType {
		return false
	}

	switch c.TargetType {
	case TargetAll:
		return true

	case TargetCollection:
		if collectionID == "" {
			return false
		}
		if c.SelectedCollectionID != "" {
			return ids.Equal(c.SelectedCollectionID, collectionID)
		}
		// legacy records kept the collection ids in the target list
		for _, t := range c.TargetProducts {
			if ids.Equal(t, collectionID) {
				return true
			}
		}
		return false

	case TargetProduct, TargetSpecific:
		if productID == "" {
			return false
		}
		for _, t := range c.TargetProducts {
			if ids.Equal(t, productID) {
				return true
			}
		}
		return false
	}

	return false
}

func normalizeOrEmpty(id string) string {
	if id == "" {
		return ""
	}
	return ids.Normalize(id)
}
