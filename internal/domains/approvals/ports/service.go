package ports

import (
	"context"

	approvaltypes "github.com/ordermesh/approval-api/internal/domains/approvals/application/types"
)

// Service defines the approvals use cases exposed to adapters (inbound port).
type Service interface {
	IngestOrderCreated(ctx context.Context, input approvaltypes.OrderCreatedInput) (approvaltypes.IngestResult, error)
	ListPending(ctx context.Context) ([]approvaltypes.PendingOrder, error)
	Approve(ctx context.Context, input approvaltypes.ActionInput) (approvaltypes.ApproveResult, error)
	Reject(ctx context.Context, input approvaltypes.ActionInput) (approvaltypes.RejectResult, error)
}
