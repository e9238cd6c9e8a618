// Package shopify adapts the Shopify Admin REST client to the approvals
// outbound order-store port.
package shopify

import (
	"context"
	"errors"
	"net/http"

	shopifyclient "github.com/ordermesh/approval-api/internal/clients/http/shopify"
	"github.com/ordermesh/approval-api/internal/domains/approvals/domain"
	"github.com/ordermesh/approval-api/internal/domains/approvals/ports"
)

var _ ports.OrderStore = (*Store)(nil)

// Store implements ports.OrderStore on top of the Shopify client.
type Store struct {
	client *shopifyclient.Client
}

// NewStore wires the Shopify client into the order-store adapter.
func NewStore(client *shopifyclient.Client) *Store {
	return &Store{client: client}
}

// GetOrder fetches and maps a single order.
func (s *Store) GetOrder(ctx context.Context, id int64) (*domain.Order, error) {
	order, err := s.client.GetOrder(ctx, id)
	if err != nil {
		return nil, mapReadError(err)
	}
	return ToDomainOrder(order), nil
}

// ListRecent fetches the most recent page of orders.
func (s *Store) ListRecent(ctx context.Context, limit int) ([]*domain.Order, error) {
	orders, err := s.client.ListOrders(ctx, limit)
	if err != nil {
		return nil, upstream(err)
	}
	mapped := make([]*domain.Order, 0, len(orders))
	for i := range orders {
		mapped = append(mapped, ToDomainOrder(&orders[i]))
	}
	return mapped, nil
}

// UpdateOrder writes the resulting tag set and annotations back to Shopify.
func (s *Store) UpdateOrder(ctx context.Context, update ports.OrderUpdate) error {
	wire := shopifyclient.OrderUpdate{
		ID:   update.ID,
		Tags: domain.JoinTags(update.Tags),
	}
	for _, annotation := range update.Annotations {
		wire.NoteAttributes = append(wire.NoteAttributes, shopifyclient.NoteAttribute{
			Name:  annotation.Name,
			Value: annotation.Value,
		})
	}
	if err := s.client.UpdateOrder(ctx, wire); err != nil {
		return upstream(err)
	}
	return nil
}

func mapReadError(err error) error {
	var apiErr *shopifyclient.APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
		return ports.ErrNotFound
	}
	return upstream(err)
}

func upstream(err error) error {
	var apiErr *shopifyclient.APIError
	if errors.As(err, &apiErr) {
		return &ports.UpstreamError{Service: "shopify", StatusCode: apiErr.StatusCode, Body: apiErr.Body}
	}
	return err
}
