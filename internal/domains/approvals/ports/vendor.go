package ports

import (
	"context"
	"fmt"

	"github.com/ordermesh/approval-api/internal/domains/approvals/domain"
)

// VendorReceipt is the vendor's acknowledgement of a created order.
type VendorReceipt struct {
	Reference string
}

// VendorGateway is the outbound port to the fulfillment vendor's intake API.
// Implementations own the schema transformation from the source order shape.
type VendorGateway interface {
	SubmitOrder(ctx context.Context, order *domain.Order) (VendorReceipt, error)
}

// UpstreamError carries a non-success response from an external collaborator
// verbatim, so callers can surface the upstream status and body unchanged.
type UpstreamError struct {
	Service    string
	StatusCode int
	Body       string
}

// Error implements the error interface.
func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s returned status %d: %s", e.Service, e.StatusCode, e.Body)
}
