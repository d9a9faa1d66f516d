package widget

import (
	"context"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Decan209/easy-tick-bw/internal/modules/campaigns"
)

func TestInterceptsAction(t *testing.T) {
	assert.True(t, InterceptsAction("/cart/add"))
	assert.True(t, InterceptsAction("/cart/add.js"))
	assert.True(t, InterceptsAction("/cart/change"))
	assert.False(t, InterceptsAction("/cart"))
	assert.False(t, InterceptsAction("/checkout"))
}

func TestBuildSubmission_AppendsSelectionsThenMainItemLast(t *testing.T) {
	fc := newFakeCart(555)
	src := &fakeSource{result: campaigns.Result{Campaigns: []campaigns.Resolved{
		campaignFor("999", true, campaigns.PlacementProduct),
		campaignFor("1001", true, campaigns.PlacementProduct),
	}}}
	w := newController(Config{PageType: "product"}, fc, src, nil)
	w.Init(context.Background())
	require.Len(t, w.Selected(), 2)

	form := url.Values{}
	form.Set("id", "42")
	form.Set("quantity", "3")

	out := w.BuildSubmission(form)

	assert.Equal(t, "999", out.Get("items[0][id]"))
	assert.Equal(t, "1", out.Get("items[0][quantity]"))
	assert.Equal(t, "1001", out.Get("items[1][id]"))
	// the user's explicit line item stays the last appended entry
	assert.Equal(t, "42", out.Get("items[2][id]"))
	assert.Equal(t, "3", out.Get("items[2][quantity]"))
	// original fields survive untouched
	assert.Equal(t, "42", out.Get("id"))
}

func TestBuildSubmission_MainQuantityDefaultsToOne(t *testing.T) {
	fc := newFakeCart(555)
	src := &fakeSource{result: campaigns.Result{Campaigns: []campaigns.Resolved{
		campaignFor("999", true, campaigns.PlacementProduct),
	}}}
	w := newController(Config{PageType: "product"}, fc, src, nil)
	w.Init(context.Background())

	out := w.BuildSubmission(url.Values{"id": {"42"}})
	assert.Equal(t, "42", out.Get("items[1][id]"))
	assert.Equal(t, "1", out.Get("items[1][quantity]"))
}

func TestBuildSubmission_NoMainItem(t *testing.T) {
	fc := newFakeCart(555)
	src := &fakeSource{result: campaigns.Result{Campaigns: []campaigns.Resolved{
		campaignFor("999", true, campaigns.PlacementProduct),
	}}}
	w := newController(Config{PageType: "product"}, fc, src, nil)
	w.Init(context.Background())

	out := w.BuildSubmission(url.Values{})
	assert.Equal(t, "999", out.Get("items[0][id]"))
	assert.Empty(t, out.Get("items[1][id]"))
}

func TestSubmitForm_SendsBatchedBody(t *testing.T) {
	fc := newFakeCart(555)
	src := &fakeSource{result: campaigns.Result{Campaigns: []campaigns.Resolved{
		campaignFor("999", true, campaigns.PlacementProduct),
	}}}
	w := newController(Config{PageType: "product"}, fc, src, nil)
	ctx := context.Background()
	w.Init(ctx)

	form := url.Values{"id": {"42"}}
	require.NoError(t, w.SubmitForm(ctx, "/cart/add", form))

	require.Len(t, fc.submissions, 1)
	sent := url.Values(fc.submissions[0])
	assert.Equal(t, "999", sent.Get("items[0][id]"))
	assert.Equal(t, "42", sent.Get("items[1][id]"))
}
