// Package midocean adapts the Midocean gateway client to the approvals
// outbound vendor port and owns the order schema transformation.
package midocean

import (
	"context"
	"errors"
	"time"

	midoceanclient "github.com/ordermesh/approval-api/internal/clients/http/midocean"
	"github.com/ordermesh/approval-api/internal/domains/approvals/domain"
	"github.com/ordermesh/approval-api/internal/domains/approvals/ports"
)

var _ ports.VendorGateway = (*Gateway)(nil)

// Gateway implements ports.VendorGateway on top of the Midocean client.
type Gateway struct {
	client *midoceanclient.Client
	now    func() time.Time
}

// NewGateway wires the Midocean client into the vendor-gateway adapter.
func NewGateway(client *midoceanclient.Client) *Gateway {
	return &Gateway{client: client, now: time.Now}
}

// WithClock overrides the time source used for the payload timestamp.
func (g *Gateway) WithClock(now func() time.Time) {
	if now != nil {
		g.now = now
	}
}

// SubmitOrder transforms the order and posts it to the gateway. A rejected
// submission surfaces the gateway's status and body verbatim.
func (g *Gateway) SubmitOrder(ctx context.Context, order *domain.Order) (ports.VendorReceipt, error) {
	payload := BuildOrderPayload(order, g.now())
	reference, err := g.client.CreateOrder(ctx, payload)
	if err != nil {
		var apiErr *midoceanclient.APIError
		if errors.As(err, &apiErr) {
			return ports.VendorReceipt{}, &ports.UpstreamError{Service: "midocean", StatusCode: apiErr.StatusCode, Body: apiErr.Body}
		}
		return ports.VendorReceipt{}, err
	}
	return ports.VendorReceipt{Reference: reference}, nil
}
