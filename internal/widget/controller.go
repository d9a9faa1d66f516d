// Package widget owns the runtime state of one upsell widget for one page
// view: the fetched offers, the shopper's checkbox state, the persisted
// opt-out list and the live cart snapshot. One Controller per page view;
// nothing here is shared across views except the exclusion store behind it.
package widget

import (
	"context"
	"log/slog"
	"slices"
	"sync"

	"github.com/Decan209/easy-tick-bw/internal/modules/campaigns"
	"github.com/Decan209/easy-tick-bw/internal/modules/cart"
	"github.com/Decan209/easy-tick-bw/internal/modules/exclusion"
	"github.com/Decan209/easy-tick-bw/internal/modules/offers"
)

// CampaignSource yields the campaigns eligible for the page context.
// *campaigns.Resolver satisfies it locally; a storefront deployment plugs
// in an HTTP client for the app proxy endpoint.
type CampaignSource interface {
	Eligible(ctx context.Context, q campaigns.Query) (campaigns.Result, error)
}

type Config struct {
	Shop         string
	PageType     string // product | cart | home
	ProductID    string
	CollectionID string

	// VariantPrices carries the variant->price associations scanned from
	// the page markup, used as a display-price fallback for campaigns
	// without one.
	VariantPrices map[int64]string
}

type Controller struct {
	cfg    Config
	cart   cart.API
	source CampaignSource
	excl   exclusion.Store
	log    *slog.Logger

	mu          sync.Mutex
	initialized bool
	hidden      bool
	offers      []offers.Offer
	unchecked   []int64
	checked     map[int64]bool
	total       int64

	variantMu map[int64]*sync.Mutex
}

func New(cfg Config, cartAPI cart.API, source CampaignSource, excl exclusion.Store, log *slog.Logger) *Controller {
	if cfg.PageType == "" {
		cfg.PageType = campaigns.PlacementProduct
	}
	if log == nil {
		log = slog.Default()
	}
	return &Controller{
		cfg:       cfg,
		cart:      cartAPI,
		source:    source,
		excl:      excl,
		log:       log,
		checked:   map[int64]bool{},
		variantMu: map[int64]*sync.Mutex{},
	}
}

// Init runs the once-per-page-view sequence: load the opt-out list, fetch
// eligible campaigns, reconcile the cart against them and settle the
// initial checkbox state. Re-invoking an initialized controller is a no-op.
// Nothing in here is fatal: any failure ends with the widget hidden or an
// offer skipped, never a panic or error reaching the page.
func (w *Controller) Init(ctx context.Context) {
	w.mu.Lock()
	if w.initialized {
		w.mu.Unlock()
		return
	}
	w.initialized = true
	w.mu.Unlock()

	unchecked, err := w.excl.Load(ctx)
	if err != nil {
		w.log.Warn("widget_exclusions_load_failed", "err", err)
		unchecked = []int64{}
	}
	w.mu.Lock()
	w.unchecked = unchecked
	w.mu.Unlock()

	res, err := w.source.Eligible(ctx, campaigns.Query{
		Shop:         w.cfg.Shop,
		PageType:     w.cfg.PageType,
		ProductID:    w.cfg.ProductID,
		CollectionID: w.cfg.CollectionID,
	})
	if err != nil || len(res.Campaigns) == 0 {
		if err != nil {
			w.log.Warn("widget_campaigns_load_failed", "err", err)
		}
		w.hide()
		return
	}

	offs := offers.Materialize(res.Campaigns, w.cfg.VariantPrices)
	if len(offs) == 0 {
		w.hide()
		return
	}
	w.mu.Lock()
	w.offers = offs
	w.mu.Unlock()

	snap := w.reconcile(ctx)

	// initial checkbox state: pre-checked or already in the cart, unless
	// the shopper opted the variant out earlier
	w.mu.Lock()
	for _, o := range w.offers {
		w.checked[o.VariantID] = (o.PreCheck || snap.Contains(o.VariantID)) &&
			!slices.Contains(w.unchecked, o.VariantID)
	}
	w.total = snap.TotalPrice
	w.mu.Unlock()
}

// reconcile brings the live cart in line with the offer set before the
// first render. Each pass runs in order and refetches the snapshot after
// mutating; the 1s read memo absorbs the redundant reads in between.
func (w *Controller) reconcile(ctx context.Context) cart.Snapshot {
	snap := w.snapshot(ctx)

	// an empty cart may still hold nothing visible but the platform can
	// carry stale upsell lines from a previous session; clear them out
	if snap.Empty() {
		w.removeAllOffers(ctx)
		snap = w.snapshot(ctx)
	}

	// a cart holding only upsell variants means the shopper removed their
	// real purchase: an upsell must never be purchasable standalone
	if !snap.Empty() && w.onlyOfferItems(snap) {
		w.removeAllOffers(ctx)
		snap = w.snapshot(ctx)
	}

	// general pre-check pass: sequential on purpose, each add re-reads the
	// cart so two adds for one variant cannot race the platform endpoint
	snap = w.addPreChecked(ctx, snap, w.offers)

	// second, narrower pass over cart-placement offers; layered on top of
	// the general pass, both run
	var cartPre []offers.Offer
	for _, o := range w.offers {
		if o.PreCheck && o.Placement == campaigns.PlacementCart {
			cartPre = append(cartPre, o)
		}
	}
	if len(cartPre) > 0 && !snap.Empty() {
		snap = w.addPreChecked(ctx, snap, cartPre)
	}

	return snap
}

func (w *Controller) addPreChecked(ctx context.Context, snap cart.Snapshot, offs []offers.Offer) cart.Snapshot {
	for _, o := range offs {
		if !o.PreCheck {
			continue
		}
		if slices.Contains(w.unchecked, o.VariantID) {
			continue
		}
		if snap.Contains(o.VariantID) {
			continue
		}
		if err := w.addToCart(ctx, o.VariantID); err != nil {
			w.log.Warn("widget_precheck_add_failed", "variant_id", o.VariantID, "err", err)
			continue
		}
		snap = w.snapshot(ctx)
	}
	return snap
}

func (w *Controller) removeAllOffers(ctx context.Context) {
	for _, o := range w.offers {
		if err := w.removeFromCart(ctx, o.VariantID); err != nil {
			w.log.Warn("widget_cleanup_remove_failed", "variant_id", o.VariantID, "err", err)
		}
	}
}

func (w *Controller) onlyOfferItems(snap cart.Snapshot) bool {
	for _, it := range snap.Items {
		found := false
		for _, o := range w.offers {
			if o.VariantID == it.VariantID {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// snapshot reads the cart, degrading to an empty snapshot on failure so a
// transport error cannot abort the reconciliation sequence.
func (w *Controller) snapshot(ctx context.Context) cart.Snapshot {
	snap, err := w.cart.Get(ctx)
	if err != nil {
		w.log.Warn("widget_cart_read_failed", "err", err)
		return cart.Snapshot{Items: []cart.LineItem{}}
	}
	return snap
}

// Toggle applies one checkbox change. The checkbox is applied
// optimistically; if the cart call fails the visual state rolls back to
// what it was before the click and the persisted opt-outs stay untouched.
// Concurrent toggles for the same variant are serialized.
func (w *Controller) Toggle(ctx context.Context, variantID int64, nowChecked bool) error {
	lock := w.variantLock(variantID)
	lock.Lock()
	defer lock.Unlock()

	w.mu.Lock()
	prev := w.checked[variantID]
	w.checked[variantID] = nowChecked
	w.mu.Unlock()

	var err error
	if nowChecked {
		err = w.addToCart(ctx, variantID)
	} else {
		err = w.removeFromCart(ctx, variantID)
	}
	if err != nil {
		w.log.Warn("widget_toggle_failed", "variant_id", variantID, "checked", nowChecked, "err", err)
		w.mu.Lock()
		w.checked[variantID] = prev
		w.mu.Unlock()
		return err
	}

	if nowChecked {
		w.forgetUnchecked(ctx, variantID)
	} else {
		w.rememberUnchecked(ctx, variantID)
	}
	return nil
}

// addToCart is idempotent by construction: a no-op when the variant is
// already present, and it never seeds an empty cart-page cart with only an
// upsell.
func (w *Controller) addToCart(ctx context.Context, variantID int64) error {
	snap, err := w.cart.Get(ctx)
	if err != nil {
		return err
	}
	if w.cfg.PageType == campaigns.PlacementCart && snap.Empty() {
		return nil
	}
	if snap.Contains(variantID) {
		return nil
	}
	if err := w.cart.Add(ctx, []cart.LineInput{{VariantID: variantID, Quantity: 1}}); err != nil {
		return err
	}
	w.refreshTotal(ctx)
	return nil
}

// removeFromCart sets the line quantity to zero unconditionally; removing
// an absent variant is already satisfied, not an error.
func (w *Controller) removeFromCart(ctx context.Context, variantID int64) error {
	if err := w.cart.SetQuantity(ctx, variantID, 0); err != nil {
		return err
	}
	w.refreshTotal(ctx)
	return nil
}

func (w *Controller) refreshTotal(ctx context.Context) {
	snap, err := w.cart.Get(ctx)
	if err != nil {
		w.log.Warn("widget_total_refresh_failed", "err", err)
		return
	}
	w.mu.Lock()
	w.total = snap.TotalPrice
	w.mu.Unlock()
}

func (w *Controller) rememberUnchecked(ctx context.Context, variantID int64) {
	w.mu.Lock()
	if !slices.Contains(w.unchecked, variantID) {
		w.unchecked = append(w.unchecked, variantID)
	}
	list := append([]int64(nil), w.unchecked...)
	w.mu.Unlock()

	if err := w.excl.Save(ctx, list); err != nil {
		w.log.Warn("widget_exclusions_save_failed", "err", err)
	}
}

func (w *Controller) forgetUnchecked(ctx context.Context, variantID int64) {
	w.mu.Lock()
	if i := slices.Index(w.unchecked, variantID); i >= 0 {
		w.unchecked = slices.Delete(w.unchecked, i, i+1)
	}
	list := append([]int64(nil), w.unchecked...)
	w.mu.Unlock()

	if err := w.excl.Save(ctx, list); err != nil {
		w.log.Warn("widget_exclusions_save_failed", "err", err)
	}
}

func (w *Controller) variantLock(variantID int64) *sync.Mutex {
	w.mu.Lock()
	defer w.mu.Unlock()
	m, ok := w.variantMu[variantID]
	if !ok {
		m = &sync.Mutex{}
		w.variantMu[variantID] = m
	}
	return m
}

func (w *Controller) hide() {
	w.mu.Lock()
	w.hidden = true
	w.offers = nil
	w.mu.Unlock()
}

// Hidden reports whether the widget cleared itself (no eligible offers, or
// loading failed). A hidden widget renders nothing, never a partial list.
func (w *Controller) Hidden() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.hidden
}

func (w *Controller) Checked(variantID int64) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.checked[variantID]
}

// Selected returns the offers whose checkbox is currently checked, in
// offer order.
func (w *Controller) Selected() []offers.Offer {
	w.mu.Lock()
	defer w.mu.Unlock()
	var out []offers.Offer
	for _, o := range w.offers {
		if w.checked[o.VariantID] {
			out = append(out, o)
		}
	}
	return out
}

// ViewModels resolves the render models for all offers. Empty when hidden.
func (w *Controller) ViewModels() []offers.ViewModel {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.hidden {
		return nil
	}
	out := make([]offers.ViewModel, 0, len(w.offers))
	for _, o := range w.offers {
		out = append(out, o.View(w.checked[o.VariantID]))
	}
	return out
}

// Total returns the last observed cart total in cents.
func (w *Controller) Total() int64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.total
}

// Unchecked exposes a copy of the persisted opt-out list.
func (w *Controller) Unchecked() []int64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]int64(nil), w.unchecked...)
}
