package shopify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	shopifyclient "github.com/ordermesh/approval-api/internal/clients/http/shopify"
	"github.com/ordermesh/approval-api/internal/domains/approvals/domain"
	"github.com/ordermesh/approval-api/internal/domains/approvals/ports"
)

func newTestStore(t *testing.T, handler http.HandlerFunc) *Store {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client, err := shopifyclient.NewClientWithBaseURL(server.URL, "shpat_test", server.Client())
	require.NoError(t, err)
	return NewStore(client)
}

func TestStore_GetOrderMapsWireToDomain(t *testing.T) {
	store := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/orders/500.json", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"order":{
			"id": 500,
			"name": "#1042",
			"order_number": 1042,
			"tags": "MO:PENDING, vip",
			"line_items": [{"sku": "ABC123-MID", "quantity": 2, "properties": [{"name": "mo_print", "value": "true"}]}]
		}}`))
	})

	order, err := store.GetOrder(context.Background(), 500)

	require.NoError(t, err)
	require.Equal(t, int64(500), order.ID)
	require.Equal(t, []string{domain.TagPending, "vip"}, order.Tags)
	require.Equal(t, domain.StatePending, order.State())
	require.True(t, order.HasPrintJob())
}

func TestStore_GetOrderNotFound(t *testing.T) {
	store := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"errors":"Not Found"}`, http.StatusNotFound)
	})

	_, err := store.GetOrder(context.Background(), 999)

	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestStore_GetOrderUpstreamError(t *testing.T) {
	store := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"errors":"Too Many Requests"}`, http.StatusTooManyRequests)
	})

	_, err := store.GetOrder(context.Background(), 500)

	var upstreamErr *ports.UpstreamError
	require.ErrorAs(t, err, &upstreamErr)
	require.Equal(t, "shopify", upstreamErr.Service)
	require.Equal(t, http.StatusTooManyRequests, upstreamErr.StatusCode)
}

func TestStore_UpdateOrderWritesTagsAndNoteAttributes(t *testing.T) {
	var captured struct {
		Order shopifyclient.OrderUpdate `json:"order"`
	}
	store := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.Equal(t, "/orders/500.json", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"order":{"id":500}}`))
	})

	err := store.UpdateOrder(context.Background(), ports.OrderUpdate{
		ID:          500,
		Tags:        []string{"vip", domain.TagSent},
		Annotations: []domain.Annotation{{Name: "midocean_order_number", Value: "MO-77"}},
	})

	require.NoError(t, err)
	require.Equal(t, int64(500), captured.Order.ID)
	require.Equal(t, "vip, MO:SENT", captured.Order.Tags)
	require.Equal(t,
		[]shopifyclient.NoteAttribute{{Name: "midocean_order_number", Value: "MO-77"}},
		captured.Order.NoteAttributes)
}

func TestStore_UpdateOrderUpstreamError(t *testing.T) {
	store := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"errors":{"tags":"invalid"}}`, http.StatusUnprocessableEntity)
	})

	err := store.UpdateOrder(context.Background(), ports.OrderUpdate{ID: 500, Tags: []string{domain.TagSent}})

	var upstreamErr *ports.UpstreamError
	require.ErrorAs(t, err, &upstreamErr)
	require.Equal(t, http.StatusUnprocessableEntity, upstreamErr.StatusCode)
	require.Contains(t, upstreamErr.Body, "invalid")
}
