package ports

import (
	"context"
	"errors"

	"github.com/ordermesh/approval-api/internal/domains/approvals/domain"
)

// ErrNotFound signals the order identifier could not be resolved upstream.
var ErrNotFound = errors.New("order not found")

// OrderUpdate is a partial write against a source order: the full resulting
// tag set plus optional annotations. Untouched fields are preserved upstream.
type OrderUpdate struct {
	ID          int64
	Tags        []string
	Annotations []domain.Annotation
}

// OrderStore is the outbound port to the source commerce platform's order
// API. Reads always hit the platform; no local copy exists.
type OrderStore interface {
	GetOrder(ctx context.Context, id int64) (*domain.Order, error)
	// ListRecent returns up to limit orders, most recent first.
	ListRecent(ctx context.Context, limit int) ([]*domain.Order, error)
	UpdateOrder(ctx context.Context, update OrderUpdate) error
}
