// Package types holds the input and output shapes of the approvals use cases.
package types

import "github.com/ordermesh/approval-api/internal/domains/approvals/domain"

// OrderCreatedInput carries the already-authenticated webhook payload: the
// order identifier plus its current tag set. Nothing further is fetched.
type OrderCreatedInput struct {
	OrderID int64
	Tags    []string
}

// IngestResult reports what the webhook ingest did.
type IngestResult struct {
	OrderID int64
	// State is the workflow state after ingestion.
	State domain.State
	// Marked is true when the pending tag was newly added.
	Marked bool
}

// PendingOrder is one reviewable order with a freshly minted action token.
type PendingOrder struct {
	Order   *domain.Order
	Token   string
	Expires string
}

// ActionInput identifies an approve/reject request after parameter merging.
type ActionInput struct {
	OrderID int64
	Token   string
	Expires string
}

// ApproveResult reports the outcome of an approval.
type ApproveResult struct {
	OrderName       string
	VendorReference string
	// AlreadyProcessed is true when a prior approval had reached the vendor
	// and no second vendor order was created.
	AlreadyProcessed bool
	// Recorded is false when the vendor call succeeded but the follow-up
	// tag/annotation write to the source platform failed. The approval is
	// still a success; the vendor side effect must not be repeated.
	Recorded bool
}

// RejectResult reports the outcome of a rejection.
type RejectResult struct {
	OrderName        string
	AlreadyProcessed bool
}
