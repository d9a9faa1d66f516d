package widget

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// InterceptsAction reports whether a form submission targets a cart
// endpoint the widget must intercept.
func InterceptsAction(action string) bool {
	return strings.Contains(action, "/cart/add") || strings.Contains(action, "/cart/change")
}

// BuildSubmission augments an intercepted cart form with one line item per
// currently selected offer. The form's own line item is re-appended last,
// so the shopper's explicit action stays the final entry.
func (w *Controller) BuildSubmission(form url.Values) url.Values {
	out := url.Values{}
	for k, vs := range form {
		out[k] = append([]string(nil), vs...)
	}

	selected := w.Selected()
	for i, o := range selected {
		out.Set(fmt.Sprintf("items[%d][id]", i), strconv.FormatInt(o.VariantID, 10))
		out.Set(fmt.Sprintf("items[%d][quantity]", i), strconv.Itoa(o.Quantity))
	}

	mainID := form.Get("id")
	if mainID != "" {
		mainQty := form.Get("quantity")
		if mainQty == "" {
			mainQty = "1"
		}
		out.Set(fmt.Sprintf("items[%d][id]", len(selected)), mainID)
		out.Set(fmt.Sprintf("items[%d][quantity]", len(selected)), mainQty)
	}

	return out
}

// SubmitForm performs an intercepted cart form submission with the upsell
// line items batched in. The cart memo is only invalidated and the total
// only refreshed when the network call succeeds.
func (w *Controller) SubmitForm(ctx context.Context, action string, form url.Values) error {
	body := w.BuildSubmission(form)
	if err := w.cart.SubmitForm(ctx, action, body); err != nil {
		w.log.Warn("widget_form_submit_failed", "action", action, "err", err)
		return err
	}
	if w.cfg.PageType == "product" {
		w.refreshTotal(ctx)
	}
	return nil
}
