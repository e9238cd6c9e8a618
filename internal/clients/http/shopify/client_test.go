package shopify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetOrder_DecodesEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/orders/500.json", r.URL.Path)
		require.Equal(t, "shpat_token", r.Header.Get("X-Shopify-Access-Token"))
		_, _ = w.Write([]byte(`{"order":{"id":500,"name":"#1001","order_number":1001,"email":"buyer@example.com","currency":"EUR","tags":"MO:PENDING","line_items":[{"title":"Mug","sku":"ABC123-MID","quantity":2,"properties":[{"name":"mo_print","value":"true"}]}]}}`))
	}))
	defer server.Close()

	client, err := NewClientWithBaseURL(server.URL, "shpat_token", server.Client())
	require.NoError(t, err)

	order, err := client.GetOrder(context.Background(), 500)
	require.NoError(t, err)
	require.Equal(t, int64(500), order.ID)
	require.Equal(t, "#1001", order.Name)
	require.Equal(t, "MO:PENDING", order.Tags)
	require.Len(t, order.LineItems, 1)
	require.Equal(t, "true", order.LineItems[0].Properties[0].Value)
}

func TestGetOrder_SurfacesAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"errors":"Not Found"}`))
	}))
	defer server.Close()

	client, err := NewClientWithBaseURL(server.URL, "shpat_token", server.Client())
	require.NoError(t, err)

	_, err = client.GetOrder(context.Background(), 404)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	require.Contains(t, apiErr.Body, "Not Found")
}

func TestListOrders_RequestsRecentPage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/orders.json", r.URL.Path)
		query := r.URL.Query()
		require.Equal(t, "any", query.Get("status"))
		require.Equal(t, "25", query.Get("limit"))
		require.Equal(t, "created_at desc", query.Get("order"))
		_, _ = w.Write([]byte(`{"orders":[{"id":2,"tags":"MO:PENDING"},{"id":1,"tags":""}]}`))
	}))
	defer server.Close()

	client, err := NewClientWithBaseURL(server.URL, "shpat_token", server.Client())
	require.NoError(t, err)

	orders, err := client.ListOrders(context.Background(), 25)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	require.Equal(t, int64(2), orders[0].ID)
}

func TestUpdateOrder_SendsEnvelope(t *testing.T) {
	var captured map[string]OrderUpdate
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.Equal(t, "/orders/500.json", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		_, _ = w.Write([]byte(`{"order":{"id":500}}`))
	}))
	defer server.Close()

	client, err := NewClientWithBaseURL(server.URL, "shpat_token", server.Client())
	require.NoError(t, err)

	update := OrderUpdate{
		ID:             500,
		Tags:           "MO:SENT",
		NoteAttributes: []NoteAttribute{{Name: "midocean_order_number", Value: "MO-77"}},
	}
	require.NoError(t, client.UpdateOrder(context.Background(), update))
	require.Equal(t, update, captured["order"])
}
