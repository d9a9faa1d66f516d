package cart

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Get(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/cart.js", r.URL.Path)
		json.NewEncoder(w).Encode(Snapshot{
			Items:      []LineItem{{VariantID: 999, Quantity: 2}},
			TotalPrice: 12345,
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, nil)
	snap, err := c.Get(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 12345, snap.TotalPrice)
	require.Len(t, snap.Items, 1)
	assert.True(t, snap.Contains(999))
	assert.False(t, snap.Contains(1000))
}

func TestClient_GetErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, nil).Get(context.Background())
	assert.Error(t, err)
}

func TestClient_AddPostsIndexedItems(t *testing.T) {
	var got map[string][]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/cart/add", r.URL.Path)
		require.NoError(t, r.ParseForm())
		got = r.PostForm
		w.Write([]byte("{}"))
	}))
	defer srv.Close()

	err := NewClient(srv.URL, nil).Add(context.Background(), []LineInput{
		{VariantID: 999, Quantity: 1},
		{VariantID: 1001}, // quantity defaults to 1
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"999"}, got["items[0][id]"])
	assert.Equal(t, []string{"1"}, got["items[0][quantity]"])
	assert.Equal(t, []string{"1001"}, got["items[1][id]"])
	assert.Equal(t, []string{"1"}, got["items[1][quantity]"])
}

func TestClient_SetQuantityPostsUpdates(t *testing.T) {
	var body map[string]map[string]int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/cart/update.js", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.Write([]byte("{}"))
	}))
	defer srv.Close()

	err := NewClient(srv.URL, nil).SetQuantity(context.Background(), 999, 0)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"999": 0}, body["updates"])
}

func TestClient_SubmitFormHitsFormAction(t *testing.T) {
	var path string
	var form map[string][]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		require.NoError(t, r.ParseForm())
		form = r.PostForm
		w.Write([]byte("{}"))
	}))
	defer srv.Close()

	err := NewClient(srv.URL, nil).SubmitForm(context.Background(), "/cart/add", map[string][]string{
		"id":       {"42"},
		"quantity": {"1"},
	})
	require.NoError(t, err)
	assert.Equal(t, "/cart/add", path)
	assert.Equal(t, []string{"42"}, form["id"])
}
