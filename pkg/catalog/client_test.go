package catalog_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goodmarket/storefront-go/pkg/apiclient"
	"github.com/goodmarket/storefront-go/pkg/catalog"
	"github.com/goodmarket/storefront-go/pkg/tokenstore"
)

func setup(t *testing.T) (*chi.Mux, *catalog.Client) {
	router := chi.NewRouter()
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	api := apiclient.New(server.URL, tokenstore.NewMemoryStore())
	return router, catalog.New(api)
}

func product(id, name string) catalog.Product {
	return catalog.Product{ID: id, Name: name, Price: "19.90", Stock: 5, Status: catalog.StatusActive}
}

func TestClient_ListProducts(t *testing.T) {
	ctx := context.Background()

	t.Run("passes filters and decodes pagination", func(t *testing.T) {
		router, client := setup(t)
		router.Get("/api/products", func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "2", r.URL.Query().Get("page"))
			assert.Equal(t, "12", r.URL.Query().Get("per_page"))
			assert.Equal(t, "mug", r.URL.Query().Get("search"))
			assert.Equal(t, "cat-9", r.URL.Query().Get("category_id"))

			_ = json.NewEncoder(w).Encode(map[string]any{
				"data": []catalog.Product{product("p1", "Blue Mug")},
				"meta": map[string]int{"current_page": 2, "total_pages": 4, "total_count": 40},
			})
		})

		products, meta, err := client.ListProducts(ctx, catalog.ListParams{
			Page: 2, PerPage: 12, Search: "mug", CategoryID: "cat-9",
		})
		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, "Blue Mug", products[0].Name)
		require.NotNil(t, meta)
		assert.Equal(t, 40, meta.TotalCount)
	})

	t.Run("zero params sends no query", func(t *testing.T) {
		router, client := setup(t)
		router.Get("/api/products", func(w http.ResponseWriter, r *http.Request) {
			assert.Empty(t, r.URL.RawQuery)
			_ = json.NewEncoder(w).Encode(map[string]any{"data": []catalog.Product{}})
		})

		_, _, err := client.ListProducts(ctx, catalog.ListParams{})
		require.NoError(t, err)
	})
}

func TestClient_GetProduct(t *testing.T) {
	ctx := context.Background()

	t.Run("fetches then serves from cache", func(t *testing.T) {
		var calls atomic.Int32
		router, client := setup(t)
		router.Get("/api/products/p1", func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			_ = json.NewEncoder(w).Encode(map[string]any{"data": product("p1", "Blue Mug")})
		})

		first, err := client.GetProduct(ctx, "p1")
		require.NoError(t, err)
		assert.Equal(t, "Blue Mug", first.Name)

		second, err := client.GetProduct(ctx, "p1")
		require.NoError(t, err)
		assert.Equal(t, first, second)
		assert.Equal(t, int32(1), calls.Load(), "second lookup must be served from cache")
	})

	t.Run("listing warms the cache", func(t *testing.T) {
		router, client := setup(t)
		router.Get("/api/products", func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(map[string]any{"data": []catalog.Product{product("p2", "Teapot")}})
		})

		_, _, err := client.ListProducts(ctx, catalog.ListParams{})
		require.NoError(t, err)

		// No GET /api/products/p2 route registered: a cache miss would 404
		got, err := client.GetProduct(ctx, "p2")
		require.NoError(t, err)
		assert.Equal(t, "Teapot", got.Name)
	})

	t.Run("missing product surfaces not found", func(t *testing.T) {
		_, client := setup(t)
		_, err := client.GetProduct(ctx, "ghost")
		assert.ErrorIs(t, err, apiclient.ErrNotFound)
	})
}

func TestClient_ListCategories(t *testing.T) {
	ctx := context.Background()

	var calls atomic.Int32
	router, client := setup(t)
	router.Get("/api/categories", func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_ = json.NewEncoder(w).Encode(map[string]any{"data": []catalog.Category{{ID: "c1", Name: "Kitchen"}}})
	})

	first, err := client.ListCategories(ctx)
	require.NoError(t, err)
	require.Len(t, first, 1)

	_, err = client.ListCategories(ctx)
	require.NoError(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestClient_SellerManagement(t *testing.T) {
	ctx := context.Background()

	t.Run("create wraps payload and caches result", func(t *testing.T) {
		router, client := setup(t)
		router.Post("/api/products", func(w http.ResponseWriter, r *http.Request) {
			var payload struct {
				Product catalog.ProductInput `json:"product"`
			}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
			assert.Equal(t, "Teapot", payload.Product.Name)
			assert.Equal(t, "49.00", payload.Product.Price)

			_ = json.NewEncoder(w).Encode(map[string]any{"data": product("p3", "Teapot")})
		})

		created, err := client.CreateProduct(ctx, catalog.ProductInput{Name: "Teapot", Price: "49.00", Stock: 3})
		require.NoError(t, err)
		assert.Equal(t, "p3", created.ID)

		// Served from cache, no GET route registered
		got, err := client.GetProduct(ctx, "p3")
		require.NoError(t, err)
		assert.Equal(t, created, got)
	})

	t.Run("update rejected by validation", func(t *testing.T) {
		router, client := setup(t)
		router.Patch("/api/products/p1", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnprocessableEntity)
			_ = json.NewEncoder(w).Encode(map[string]string{"message": "price must be positive"})
		})

		_, err := client.UpdateProduct(ctx, "p1", catalog.ProductInput{Price: "-1"})
		assert.ErrorIs(t, err, apiclient.ErrValidationRejected)
	})

	t.Run("delete evicts from cache", func(t *testing.T) {
		var gets atomic.Int32
		router, client := setup(t)
		router.Get("/api/products/p4", func(w http.ResponseWriter, r *http.Request) {
			gets.Add(1)
			_ = json.NewEncoder(w).Encode(map[string]any{"data": product("p4", "Bowl")})
		})
		router.Delete("/api/products/p4", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		})

		_, err := client.GetProduct(ctx, "p4")
		require.NoError(t, err)
		require.NoError(t, client.DeleteProduct(ctx, "p4"))

		_, err = client.GetProduct(ctx, "p4")
		require.NoError(t, err)
		assert.Equal(t, int32(2), gets.Load(), "delete must evict the cached copy")
	})
}
