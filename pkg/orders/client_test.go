package orders_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goodmarket/storefront-go/pkg/apiclient"
	"github.com/goodmarket/storefront-go/pkg/orders"
	"github.com/goodmarket/storefront-go/pkg/tokenstore"
)

func newClient(t *testing.T, router *chi.Mux) *orders.Client {
	t.Helper()
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return orders.New(apiclient.New(server.URL, tokenstore.NewMemoryStore()))
}

func TestClient_List(t *testing.T) {
	ctx := context.Background()

	t.Run("passes filters through as query parameters", func(t *testing.T) {
		router := chi.NewRouter()
		router.Get("/api/orders", func(w http.ResponseWriter, r *http.Request) {
			q := r.URL.Query()
			assert.Equal(t, "2", q.Get("page"))
			assert.Equal(t, "10", q.Get("per_page"))
			assert.Equal(t, "shipped", q.Get("status"))

			_ = json.NewEncoder(w).Encode(map[string]any{
				"data": []map[string]any{
					{"id": "o1", "status": "shipped", "total": "42.00"},
				},
				"meta": map[string]any{"current_page": 2, "total_pages": 3, "total_count": 25},
			})
		})

		list, meta, err := newClient(t, router).List(ctx, orders.Filters{
			Page:    2,
			PerPage: 10,
			Status:  orders.StatusShipped,
		})
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, orders.StatusShipped, list[0].Status)
		assert.Equal(t, "42.00", list[0].Total)
		require.NotNil(t, meta)
		assert.Equal(t, 25, meta.TotalCount)
	})

	t.Run("omits zero-valued filters", func(t *testing.T) {
		router := chi.NewRouter()
		router.Get("/api/orders", func(w http.ResponseWriter, r *http.Request) {
			assert.Empty(t, r.URL.RawQuery)
			_ = json.NewEncoder(w).Encode(map[string]any{"data": []any{}})
		})

		list, _, err := newClient(t, router).List(ctx, orders.Filters{})
		require.NoError(t, err)
		assert.Empty(t, list)
	})
}

func TestClient_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the order with denormalized line items", func(t *testing.T) {
		router := chi.NewRouter()
		router.Get("/api/orders/o1", func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(map[string]any{
				"data": map[string]any{
					"id":     "o1",
					"status": "completed",
					"total":  "59.98",
					"order_items": []map[string]any{
						{
							"id":                "li1",
							"product_id":        "p1",
							"product_name":      "Walnut Desk Organizer",
							"quantity":          2,
							"price_at_purchase": "29.99",
							"subtotal":          "59.98",
						},
					},
				},
			})
		})

		order, err := newClient(t, router).Get(ctx, "o1")
		require.NoError(t, err)
		assert.Equal(t, orders.StatusCompleted, order.Status)
		require.Len(t, order.Items, 1)
		assert.Equal(t, "Walnut Desk Organizer", order.Items[0].ProductName)
		assert.Equal(t, "29.99", order.Items[0].PriceAtPurchase)
	})

	t.Run("maps a missing order to a not found error", func(t *testing.T) {
		router := chi.NewRouter()
		router.Get("/api/orders/missing", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		})

		_, err := newClient(t, router).Get(ctx, "missing")
		assert.ErrorIs(t, err, apiclient.ErrNotFound)
	})
}
