package cart

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

const (
	pathCart   = "/cart.js"
	pathAdd    = "/cart/add"
	pathUpdate = "/cart/update.js"
)

// Client issues cart calls against the storefront the widget is embedded
// in. BaseURL is the storefront origin, e.g. https://demo.myshopify.com.
// Cookie, when set, is forwarded on every call so server-side rendering
// acts on the shopper's own cart session.
type Client struct {
	BaseURL string
	HTTP    *http.Client
	Cookie  string
}

func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{BaseURL: strings.TrimRight(baseURL, "/"), HTTP: httpClient}
}

func (c *Client) Get(ctx context.Context) (Snapshot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+pathCart, nil)
	if err != nil {
		return Snapshot{}, err
	}
	req.Header.Set("Accept", "application/json")
	c.forwardCookie(req)

	res, err := c.HTTP.Do(req)
	if err != nil {
		return Snapshot{}, err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return Snapshot{}, fmt.Errorf("cart read: unexpected status %d", res.StatusCode)
	}

	var snap Snapshot
	if err := json.NewDecoder(res.Body).Decode(&snap); err != nil {
		return Snapshot{}, fmt.Errorf("cart read: decoding body: %w", err)
	}
	if snap.Items == nil {
		snap.Items = []LineItem{}
	}
	return snap, nil
}

func (c *Client) Add(ctx context.Context, items []LineInput) error {
	form := url.Values{}
	for i, it := range items {
		qty := it.Quantity
		if qty <= 0 {
			qty = 1
		}
		form.Set(fmt.Sprintf("items[%d][id]", i), strconv.FormatInt(it.VariantID, 10))
		form.Set(fmt.Sprintf("items[%d][quantity]", i), strconv.Itoa(qty))
	}
	return c.postForm(ctx, pathAdd, form)
}

func (c *Client) SetQuantity(ctx context.Context, variantID int64, qty int) error {
	payload := map[string]map[string]int{
		"updates": {strconv.FormatInt(variantID, 10): qty},
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+pathUpdate, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	c.forwardCookie(req)

	res, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	io.Copy(io.Discard, res.Body)

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return fmt.Errorf("cart update: unexpected status %d", res.StatusCode)
	}
	return nil
}

func (c *Client) SubmitForm(ctx context.Context, action string, form map[string][]string) error {
	if !strings.HasPrefix(action, "/") {
		action = "/" + action
	}
	return c.postForm(ctx, action, url.Values(form))
}

// Invalidate is a no-op on the bare client; *Cached layers memoization,
// the client itself never holds state.
func (c *Client) Invalidate() {}

func (c *Client) forwardCookie(req *http.Request) {
	if c.Cookie != "" {
		req.Header.Set("Cookie", c.Cookie)
	}
}

func (c *Client) postForm(ctx context.Context, path string, form url.Values) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Requested-With", "XMLHttpRequest")
	c.forwardCookie(req)

	res, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	io.Copy(io.Discard, res.Body)

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return fmt.Errorf("cart post %s: unexpected status %d", path, res.StatusCode)
	}
	return nil
}
