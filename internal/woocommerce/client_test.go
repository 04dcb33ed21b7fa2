package woocommerce

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jafarshop/storemigrate/internal/config"
	"github.com/jafarshop/storemigrate/internal/connector"
	"github.com/jafarshop/storemigrate/internal/domain"
	"github.com/jafarshop/storemigrate/pkg/errors"
)

func newTestClient(t *testing.T, handler http.Handler, pageSize, maxPages int) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewClient(
		config.WooCommerceConfig{URL: srv.URL + "/", ConsumerKey: "ck", ConsumerSecret: "cs"},
		config.FetchConfig{PageSize: pageSize, MaxPages: maxPages, RateLimitPerSecond: 1000},
		zap.NewNop(),
	)
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func TestClient_FetchAll_Paginates(t *testing.T) {
	var pages []int
	mux := http.NewServeMux()
	mux.HandleFunc("/wp-json/wc/v3/coupons", func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "ck", user)
		assert.Equal(t, "cs", pass)
		assert.Equal(t, "2", r.URL.Query().Get("per_page"))

		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		pages = append(pages, page)
		switch page {
		case 1:
			writeJSON(w, []Coupon{{ID: 1, Code: "A"}, {ID: 2, Code: "B"}})
		default:
			writeJSON(w, []Coupon{{ID: 3, Code: "C"}})
		}
	})

	c := newTestClient(t, mux, 2, 10)
	records, err := c.FetchAll(context.Background(), domain.EntityCoupon)
	require.NoError(t, err)

	assert.Equal(t, []int{1, 2}, pages)
	require.Len(t, records, 3)
	assert.Equal(t, "3", records[2].NativeID())
	assert.Equal(t, domain.EntityCoupon, records[0].Entity())
}

func TestClient_FetchAll_PageCap(t *testing.T) {
	calls := 0
	mux := http.NewServeMux()
	mux.HandleFunc("/wp-json/wc/v3/orders", func(w http.ResponseWriter, r *http.Request) {
		calls++
		writeJSON(w, []Order{{ID: int64(calls)}})
	})

	c := newTestClient(t, mux, 1, 3)
	records, err := c.FetchAll(context.Background(), domain.EntityOrder)

	var truncated *errors.ErrTruncated
	require.ErrorAs(t, err, &truncated)
	assert.Equal(t, "woocommerce", truncated.Platform)
	assert.Equal(t, 3, truncated.Pages)
	assert.Equal(t, 3, truncated.Fetched)
	assert.Equal(t, 3, calls)
	assert.Len(t, records, 3)
}

func TestClient_FetchAll_LastPageAtCapIsComplete(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/wp-json/wc/v3/orders", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-WP-TotalPages", "2")
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		writeJSON(w, []Order{{ID: int64(page)}})
	})

	c := newTestClient(t, mux, 1, 2)
	records, err := c.FetchAll(context.Background(), domain.EntityOrder)
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestClient_FetchAll_TruncatedVariationsKeepProducts(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/wp-json/wc/v3/products", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-WP-TotalPages", "1")
		writeJSON(w, []Product{{ID: 2, Name: "Tee", Type: "variable", VariationIDs: []int64{20, 21, 22}}})
	})
	mux.HandleFunc("/wp-json/wc/v3/products/2/variations", func(w http.ResponseWriter, r *http.Request) {
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		writeJSON(w, []Variation{{ID: int64(19 + page), SKU: fmt.Sprintf("TEE-%d", page)}})
	})

	c := newTestClient(t, mux, 1, 2)
	records, err := c.FetchAll(context.Background(), domain.EntityProduct)

	_, truncated := errors.AsTruncated(err)
	require.True(t, truncated, "got %v", err)
	require.Len(t, records, 1)
	assert.Len(t, records[0].(Product).Variations, 2)
}

func TestClient_FetchAll_AttachesVariations(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/wp-json/wc/v3/products", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, []Product{
			{ID: 1, Name: "Plain", Type: "simple"},
			{ID: 2, Name: "Tee", Type: "variable", VariationIDs: []int64{20}},
		})
	})
	mux.HandleFunc("/wp-json/wc/v3/products/2/variations", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, []Variation{{ID: 20, SKU: "TEE-S"}})
	})

	c := newTestClient(t, mux, 10, 5)
	records, err := c.FetchAll(context.Background(), domain.EntityProduct)
	require.NoError(t, err)
	require.Len(t, records, 2)

	tee := records[1].(Product)
	require.Len(t, tee.Variations, 1)
	assert.Equal(t, "TEE-S", tee.Variations[0].SKU)
}

func TestClient_Fetch_NotFound(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/wp-json/wc/v3/customers/9", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"code":"woocommerce_rest_invalid_id"}`, http.StatusNotFound)
	})

	c := newTestClient(t, mux, 10, 5)
	_, err := c.Fetch(context.Background(), domain.EntityCustomer, "9")

	var notFound *errors.ErrNotFound
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "9", notFound.ID)
}

func TestClient_CreateProduct_ResolvesTermsAndVariations(t *testing.T) {
	var mu sync.Mutex
	var created []string

	mux := http.NewServeMux()
	mux.HandleFunc("/wp-json/wc/v3/products/categories", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			writeJSON(w, []Term{{ID: 7, Name: "Shirts"}})
			return
		}
		t.Errorf("unexpected category create")
	})
	mux.HandleFunc("/wp-json/wc/v3/products/tags", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			writeJSON(w, []Term{})
			return
		}
		writeJSON(w, Term{ID: 8, Name: "summer"})
	})
	mux.HandleFunc("/wp-json/wc/v3/products", func(w http.ResponseWriter, r *http.Request) {
		var p Product
		require.NoError(t, json.NewDecoder(r.Body).Decode(&p))
		assert.Equal(t, []Term{{ID: 7}}, p.Categories)
		assert.Equal(t, []Term{{ID: 8}}, p.Tags)
		assert.Empty(t, p.Variations)
		writeJSON(w, map[string]int64{"id": 55})
	})
	mux.HandleFunc("/wp-json/wc/v3/products/55/variations", func(w http.ResponseWriter, r *http.Request) {
		var v Variation
		require.NoError(t, json.NewDecoder(r.Body).Decode(&v))
		mu.Lock()
		created = append(created, v.SKU)
		mu.Unlock()
		writeJSON(w, map[string]int64{"id": 100 + int64(len(created))})
	})

	c := newTestClient(t, mux, 10, 5)
	id, err := c.Create(context.Background(), domain.EntityProduct, Product{
		Name:       "Tee",
		Type:       "variable",
		Categories: []Term{{Name: "Shirts"}},
		Tags:       []Term{{Name: "summer"}},
		Variations: []Variation{{SKU: "TEE-S"}, {SKU: "TEE-M"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "55", id)
	assert.Equal(t, []string{"TEE-S", "TEE-M"}, created)
}

func TestClient_UpdateInventory(t *testing.T) {
	var paths []string
	mux := http.NewServeMux()
	handler := func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, float64(4), body["stock_quantity"])
		paths = append(paths, r.URL.Path)
		writeJSON(w, map[string]int64{"id": 1})
	}
	mux.HandleFunc("/wp-json/wc/v3/products/5", handler)
	mux.HandleFunc("/wp-json/wc/v3/products/5/variations/6", handler)

	c := newTestClient(t, mux, 10, 5)
	patch := domain.Patch{connector.PatchProductID: "5", connector.PatchQuantity: 4}

	require.NoError(t, c.Update(context.Background(), domain.EntityInventory, "", patch))
	require.NoError(t, c.Update(context.Background(), domain.EntityInventory, "6", patch))
	assert.Equal(t, []string{"/wp-json/wc/v3/products/5", "/wp-json/wc/v3/products/5/variations/6"}, paths)

	err := c.Update(context.Background(), domain.EntityInventory, "6", domain.Patch{connector.PatchProductID: "5"})
	assert.Error(t, err)
}

func TestClient_UnsupportedEntity(t *testing.T) {
	c := newTestClient(t, http.NewServeMux(), 10, 5)
	_, err := c.FetchAll(context.Background(), domain.EntityInventory)

	var mismatch *errors.ErrCapabilityMismatch
	assert.ErrorAs(t, err, &mismatch)
}

func TestClient_ServerError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/wp-json/wp/v2/pages", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "edit", r.URL.Query().Get("context"))
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	c := newTestClient(t, mux, 10, 5)
	_, err := c.FetchAll(context.Background(), domain.EntityPage)
	require.Error(t, err)
	assert.Contains(t, err.Error(), fmt.Sprintf("status %d", http.StatusInternalServerError))
}
