package application

import (
	"context"
	"fmt"
	"time"

	"github.com/ordermesh/approval-api/internal/domains/approvals/application/types"
	"github.com/ordermesh/approval-api/internal/domains/approvals/capability"
	"github.com/ordermesh/approval-api/internal/domains/approvals/domain"
	"github.com/ordermesh/approval-api/internal/domains/approvals/ports"
)

// DefaultTokenTTL is how long a freshly minted action link stays valid.
const DefaultTokenTTL = 2880 * time.Minute

// DefaultListLimit bounds the page of recent orders scanned for pending ones.
const DefaultListLimit = 100

// VendorReferenceAnnotation names the note carrying the vendor-assigned
// order number back on the source order.
const VendorReferenceAnnotation = "midocean_order_number"

// Service coordinates the approval workflow state machine. Each operation is
// stateless request-response; the only shared resource is the remote order
// store, so correctness under concurrent actions relies on the terminal-tag
// re-check before any vendor call rather than local locking.
type Service struct {
	orders    ports.OrderStore
	vendor    ports.VendorGateway
	tokens    *capability.Codec
	tokenTTL  time.Duration
	listLimit int
	now       func() time.Time
}

// Option configures the service.
type Option func(*Service)

// WithTokenTTL overrides the action-link lifetime.
func WithTokenTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.tokenTTL = ttl
		}
	}
}

// WithListLimit overrides the recent-orders page size used by ListPending.
func WithListLimit(limit int) Option {
	return func(s *Service) {
		if limit > 0 {
			s.listLimit = limit
		}
	}
}

// WithClock overrides the time source for deterministic testing.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService wires the coordinator with its outbound dependencies.
func NewService(orders ports.OrderStore, vendor ports.VendorGateway, tokens *capability.Codec, opts ...Option) *Service {
	s := &Service{
		orders:    orders,
		vendor:    vendor,
		tokens:    tokens,
		tokenTTL:  DefaultTokenTTL,
		listLimit: DefaultListLimit,
		now:       time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// IngestOrderCreated marks a verified inbound order as pending review. Orders
// already pending are left alone, and orders that reached a terminal state are
// not reopened; both cases report the current state without error so webhook
// redelivery stays harmless.
func (s *Service) IngestOrderCreated(ctx context.Context, input types.OrderCreatedInput) (types.IngestResult, error) {
	state := domain.DeriveState(input.Tags)
	if state != domain.StateNone {
		return types.IngestResult{OrderID: input.OrderID, State: state}, nil
	}
	next := domain.NextTags(input.Tags, domain.ActionMarkPending)
	if err := s.orders.UpdateOrder(ctx, ports.OrderUpdate{ID: input.OrderID, Tags: next}); err != nil {
		return types.IngestResult{}, fmt.Errorf("mark order %d pending: %w", input.OrderID, err)
	}
	return types.IngestResult{OrderID: input.OrderID, State: domain.StatePending, Marked: true}, nil
}

// ListPending returns the pending orders from the most recent page, each with
// a freshly signed capability token bound to its identifier.
func (s *Service) ListPending(ctx context.Context) ([]types.PendingOrder, error) {
	orders, err := s.orders.ListRecent(ctx, s.listLimit)
	if err != nil {
		return nil, fmt.Errorf("list recent orders: %w", err)
	}
	expires := s.now().Add(s.tokenTTL)
	expiresISO := capability.FormatExpiry(expires)
	pending := make([]types.PendingOrder, 0, len(orders))
	for _, order := range orders {
		if order.State() != domain.StatePending {
			continue
		}
		pending = append(pending, types.PendingOrder{
			Order:   order,
			Token:   s.tokens.Sign(order.ID, expires),
			Expires: expiresISO,
		})
	}
	return pending, nil
}

// Approve verifies the capability token, re-checks the order's terminal
// state, forwards the transformed order to the vendor, and records the
// outcome on the source order. A vendor failure leaves the order pending and
// safe to retry; a failure of the follow-up tag write after the vendor call
// succeeded does not fail the approval, since the vendor side effect must not
// be duplicated.
func (s *Service) Approve(ctx context.Context, input types.ActionInput) (types.ApproveResult, error) {
	if !s.tokens.Verify(input.OrderID, input.Expires, input.Token) {
		return types.ApproveResult{}, ErrInvalidToken
	}
	order, err := s.orders.GetOrder(ctx, input.OrderID)
	if err != nil {
		return types.ApproveResult{}, err
	}
	switch order.State() {
	case domain.StateSent:
		return types.ApproveResult{OrderName: order.Name, AlreadyProcessed: true, Recorded: true}, nil
	case domain.StateRejected:
		return types.ApproveResult{}, ErrAlreadyRejected
	}

	receipt, err := s.vendor.SubmitOrder(ctx, order)
	if err != nil {
		return types.ApproveResult{}, fmt.Errorf("submit order %d to vendor: %w", order.ID, err)
	}

	update := ports.OrderUpdate{
		ID:          order.ID,
		Tags:        domain.NextTags(order.Tags, domain.ActionApprove),
		Annotations: []domain.Annotation{{Name: VendorReferenceAnnotation, Value: receipt.Reference}},
	}
	result := types.ApproveResult{OrderName: order.Name, VendorReference: receipt.Reference, Recorded: true}
	if err := s.orders.UpdateOrder(ctx, update); err != nil {
		result.Recorded = false
	}
	return result, nil
}

// Reject verifies the capability token and marks the order rejected. The tag
// write is a hard failure here: no vendor side effect exists yet, so the
// caller may safely retry.
func (s *Service) Reject(ctx context.Context, input types.ActionInput) (types.RejectResult, error) {
	if !s.tokens.Verify(input.OrderID, input.Expires, input.Token) {
		return types.RejectResult{}, ErrInvalidToken
	}
	order, err := s.orders.GetOrder(ctx, input.OrderID)
	if err != nil {
		return types.RejectResult{}, err
	}
	switch order.State() {
	case domain.StateRejected:
		return types.RejectResult{OrderName: order.Name, AlreadyProcessed: true}, nil
	case domain.StateSent:
		return types.RejectResult{}, ErrAlreadySent
	}
	update := ports.OrderUpdate{ID: order.ID, Tags: domain.NextTags(order.Tags, domain.ActionReject)}
	if err := s.orders.UpdateOrder(ctx, update); err != nil {
		return types.RejectResult{}, fmt.Errorf("mark order %d rejected: %w", order.ID, err)
	}
	return types.RejectResult{OrderName: order.Name}, nil
}

var _ ports.Service = (*Service)(nil)
