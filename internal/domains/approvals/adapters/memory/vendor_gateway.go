package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/ordermesh/approval-api/internal/domains/approvals/domain"
	"github.com/ordermesh/approval-api/internal/domains/approvals/ports"
)

var _ ports.VendorGateway = (*VendorGateway)(nil)

// VendorGateway records submitted orders instead of calling the vendor.
type VendorGateway struct {
	mu        sync.Mutex
	submitted []int64

	// SubmitErr, when set, is returned by SubmitOrder to simulate a vendor
	// rejection.
	SubmitErr error
}

// NewVendorGateway constructs an empty recorder.
func NewVendorGateway() *VendorGateway {
	return &VendorGateway{}
}

// SubmitOrder records the submission and returns a synthetic reference.
func (g *VendorGateway) SubmitOrder(_ context.Context, order *domain.Order) (ports.VendorReceipt, error) {
	if g.SubmitErr != nil {
		return ports.VendorReceipt{}, g.SubmitErr
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.submitted = append(g.submitted, order.ID)
	return ports.VendorReceipt{Reference: fmt.Sprintf("MO-%d-%d", order.ID, len(g.submitted))}, nil
}

// Submitted returns the order ids forwarded so far.
func (g *VendorGateway) Submitted() []int64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]int64(nil), g.submitted...)
}
