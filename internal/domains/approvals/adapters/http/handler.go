// Package http exposes the approval workflow over gin: the webhook intake,
// the pending-review listing, and the approve/reject action endpoints.
package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	shopifyclient "github.com/ordermesh/approval-api/internal/clients/http/shopify"
	shopifyadapter "github.com/ordermesh/approval-api/internal/domains/approvals/adapters/external/shopify"
	"github.com/ordermesh/approval-api/internal/domains/approvals/application"
	"github.com/ordermesh/approval-api/internal/domains/approvals/application/types"
	"github.com/ordermesh/approval-api/internal/domains/approvals/ports"
	apierrors "github.com/ordermesh/approval-api/internal/shared/errors"
	"github.com/ordermesh/approval-api/internal/shared/middleware"
)

// ApprovalAPI wires HTTP transport with the approvals service.
type ApprovalAPI struct {
	service   ports.Service
	webhooks  shopifyclient.WebhookVerifier
	devSecret string
	responder *apierrors.Responder
	logger    *slog.Logger
}

// Option configures the API.
type Option func(*ApprovalAPI)

// WithLogger injects a slog logger.
func WithLogger(logger *slog.Logger) Option {
	return func(api *ApprovalAPI) {
		if logger != nil {
			api.logger = logger
		}
	}
}

// WithDevBypassSecret enables the webhook dev bypass: a POST carrying
// ?dev=1&secret=<secret> skips signature verification. Empty disables it.
func WithDevBypassSecret(secret string) Option {
	return func(api *ApprovalAPI) {
		api.devSecret = secret
	}
}

// NewApprovalAPI creates the transport layer for the approvals service.
func NewApprovalAPI(service ports.Service, webhooks shopifyclient.WebhookVerifier, opts ...Option) *ApprovalAPI {
	api := &ApprovalAPI{
		service:   service,
		webhooks:  webhooks,
		responder: apierrors.NewResponder(mapServiceError),
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(api)
		}
	}
	return api
}

// Post /webhooks/orders-create
// Shopify order-created webhook intake.
func (api *ApprovalAPI) OrdersCreate(c *gin.Context) {
	if c.Request.Method == http.MethodGet {
		c.JSON(http.StatusOK, gin.H{"ok": true, "method": http.MethodGet})
		return
	}
	rawBody, err := c.GetRawData()
	if err != nil {
		api.responder.Respond(c, apierrors.ErrBadRequest.WithDetail("unreadable request body"))
		return
	}
	if !api.devBypassed(c) {
		if !api.webhooks.Verify(rawBody, c.GetHeader(shopifyclient.HeaderHMAC)) {
			api.logger.Warn("webhook signature rejected",
				slog.String("request.id", middleware.RequestIDFrom(c)),
				slog.Int("body.len", len(rawBody)))
			api.responder.Respond(c, apierrors.ErrUnauthorized.WithDetail("webhook signature mismatch"))
			return
		}
	}
	var order shopifyclient.Order
	if err := json.Unmarshal(rawBody, &order); err != nil || order.ID == 0 {
		api.responder.Respond(c, apierrors.ErrBadRequest.WithDetail("webhook body is not an order"))
		return
	}
	orderID, tags := shopifyadapter.ToDomainWebhookOrder(&order)
	result, err := api.service.IngestOrderCreated(c.Request.Context(), types.OrderCreatedInput{OrderID: orderID, Tags: tags})
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "state": result.State.String(), "marked": result.Marked})
}

// Get /admin/pending
// Pending-review listing with embedded action links.
func (api *ApprovalAPI) Pending(c *gin.Context) {
	pending, err := api.service.ListPending(c.Request.Context())
	if err != nil {
		api.renderActionError(c, "Pending review", err)
		return
	}
	renderPending(c, pending)
}

// Post /admin/approve
// Approves an order and forwards it to the vendor.
func (api *ApprovalAPI) Approve(c *gin.Context) {
	input, err := parseActionInput(c)
	if err != nil {
		renderResult(c, http.StatusBadRequest, resultPage{Heading: "Approve", Message: err.Error()})
		return
	}
	result, err := api.service.Approve(c.Request.Context(), input)
	if err != nil {
		api.renderActionError(c, "Approve", err)
		return
	}
	if result.AlreadyProcessed {
		renderResult(c, http.StatusOK, resultPage{
			Heading: result.OrderName,
			Message: "Already sent to the vendor; nothing was resubmitted.",
		})
		return
	}
	message := fmt.Sprintf("Sent to Midocean. Ref: %s", result.VendorReference)
	if !result.Recorded {
		message += " (recording the outcome on the source order failed; do not resubmit)"
	}
	renderResult(c, http.StatusOK, resultPage{Heading: result.OrderName, Message: message})
}

// Post /admin/reject
// Marks an order rejected; nothing is sent to the vendor.
func (api *ApprovalAPI) Reject(c *gin.Context) {
	input, err := parseActionInput(c)
	if err != nil {
		renderResult(c, http.StatusBadRequest, resultPage{Heading: "Reject", Message: err.Error()})
		return
	}
	result, err := api.service.Reject(c.Request.Context(), input)
	if err != nil {
		api.renderActionError(c, "Reject", err)
		return
	}
	if result.AlreadyProcessed {
		renderResult(c, http.StatusOK, resultPage{
			Heading: result.OrderName,
			Message: "Already rejected.",
		})
		return
	}
	renderResult(c, http.StatusOK, resultPage{
		Heading: result.OrderName,
		Message: "Marked as REJECTED. Nothing sent to the vendor.",
	})
}

func (api *ApprovalAPI) devBypassed(c *gin.Context) bool {
	if api.devSecret == "" {
		return false
	}
	return c.Query("dev") == "1" && c.Query("secret") == api.devSecret
}

// renderActionError maps service errors onto the HTML result surface using
// the same taxonomy the JSON responder applies.
func (api *ApprovalAPI) renderActionError(c *gin.Context, heading string, err error) {
	page := resultPage{Heading: heading}
	status := http.StatusInternalServerError
	var upstreamErr *ports.UpstreamError
	switch {
	case errors.Is(err, application.ErrInvalidToken):
		status = http.StatusUnauthorized
		page.Message = "Invalid or expired token"
	case errors.Is(err, ports.ErrNotFound):
		status = http.StatusNotFound
		page.Message = "Order not found"
	case errors.Is(err, application.ErrAlreadyRejected), errors.Is(err, application.ErrAlreadySent):
		status = http.StatusConflict
		page.Message = err.Error()
	case errors.As(err, &upstreamErr):
		status = http.StatusBadGateway
		page.Message = fmt.Sprintf("%s rejected (%d).", upstreamErr.Service, upstreamErr.StatusCode)
		page.Detail = upstreamErr.Body
	default:
		api.logger.Error("unexpected action failure",
			slog.String("request.id", middleware.RequestIDFrom(c)),
			slog.String("error", err.Error()))
		page.Message = "Unexpected error"
	}
	renderResult(c, status, page)
}

// mapServiceError translates application errors into Problem Details for the
// JSON surface.
func mapServiceError(err error) (apierrors.ProblemDetail, bool) {
	var upstreamErr *ports.UpstreamError
	switch {
	case errors.Is(err, application.ErrInvalidToken):
		return apierrors.ErrUnauthorized.WithDetail(err.Error()), true
	case errors.Is(err, ports.ErrNotFound):
		return apierrors.NewNotFoundProblem("order", "unknown"), true
	case errors.Is(err, application.ErrAlreadyRejected), errors.Is(err, application.ErrAlreadySent):
		return apierrors.ErrConflict.WithDetail(err.Error()), true
	case errors.As(err, &upstreamErr):
		return apierrors.NewUpstreamProblem(upstreamErr.Service, upstreamErr.StatusCode, upstreamErr.Body), true
	default:
		return apierrors.ProblemDetail{}, false
	}
}
