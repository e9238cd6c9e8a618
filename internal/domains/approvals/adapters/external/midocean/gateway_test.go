package midocean

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	midoceanclient "github.com/ordermesh/approval-api/internal/clients/http/midocean"
	"github.com/ordermesh/approval-api/internal/domains/approvals/domain"
	"github.com/ordermesh/approval-api/internal/domains/approvals/ports"
)

func newTestGateway(t *testing.T, handler http.HandlerFunc) *Gateway {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client, err := midoceanclient.NewClient(server.URL, "mo-key", server.Client())
	require.NoError(t, err)
	return NewGateway(client)
}

func TestGateway_SubmitOrderUsesInjectedClock(t *testing.T) {
	var captured midoceanclient.OrderPayload
	gateway := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/gateway/order/2.1/create", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"order_number":"MO-2026-77"}`))
	})
	gateway.WithClock(func() time.Time {
		return time.Date(2026, 9, 1, 12, 30, 45, 999000000, time.UTC)
	})

	receipt, err := gateway.SubmitOrder(context.Background(), &domain.Order{
		ID:          500,
		Name:        "#1042",
		OrderNumber: 1042,
		LineItems:   []domain.LineItem{{SKU: "ABC123-MID", Quantity: 2}},
	})

	require.NoError(t, err)
	require.Equal(t, "MO-2026-77", receipt.Reference)
	require.Equal(t, "2026-09-01T12:30:45", captured.OrderHeader.Timestamp)
	require.Equal(t, "1042", captured.OrderHeader.PONumber)
	require.Len(t, captured.OrderLines, 1)
	require.Equal(t, "321CBA", captured.OrderLines[0].SKU)
}

func TestGateway_SubmitOrderMapsRejectionToUpstreamError(t *testing.T) {
	gateway := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"unknown sku"}`, http.StatusUnprocessableEntity)
	})

	_, err := gateway.SubmitOrder(context.Background(), &domain.Order{
		ID:        500,
		LineItems: []domain.LineItem{{SKU: "NOPE", Quantity: 1}},
	})

	var upstreamErr *ports.UpstreamError
	require.ErrorAs(t, err, &upstreamErr)
	require.Equal(t, "midocean", upstreamErr.Service)
	require.Equal(t, http.StatusUnprocessableEntity, upstreamErr.StatusCode)
	require.Contains(t, upstreamErr.Body, "unknown sku")
}
