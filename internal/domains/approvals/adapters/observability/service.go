// Package observability decorates the approvals application port with
// tracing, logging, and metrics.
package observability

import (
	"context"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	"github.com/ordermesh/approval-api/internal/domains/approvals/application/types"
	"github.com/ordermesh/approval-api/internal/domains/approvals/ports"
)

const tracerName = "github.com/ordermesh/approval-api/internal/domains/approvals/adapters/observability/service"

// Service decorates an approvals service port.
type Service struct {
	inner   ports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

// WithLogger injects a slog logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithTracer injects a tracer implementation.
func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

// WithMeter injects the meter used to create service metrics instruments.
func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wires a decorator around the core service.
func New(inner ports.Service, opts ...Option) ports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		logger:  defaultLogger(),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	if s.logger == nil {
		s.logger = defaultLogger()
	}
	return s
}

// IngestOrderCreated records webhook ingestion with instrumentation.
func (s *Service) IngestOrderCreated(ctx context.Context, input types.OrderCreatedInput) (types.IngestResult, error) {
	ctx, span := s.startSpan(ctx, "Service.IngestOrderCreated", attribute.Int64("order.id", input.OrderID))
	defer span.End()

	result, err := s.inner.IngestOrderCreated(ctx, input)
	if err != nil {
		return types.IngestResult{}, s.handleError(ctx, span, err, "failed to ingest order webhook", slog.Int64("order.id", input.OrderID))
	}
	s.metrics.recordIngest(ctx, result.Marked)
	s.logInfo(ctx, "order webhook ingested",
		slog.Int64("order.id", result.OrderID),
		slog.String("state", result.State.String()),
		slog.Bool("marked", result.Marked))
	return result, nil
}

// ListPending lists reviewable orders with instrumentation.
func (s *Service) ListPending(ctx context.Context) ([]types.PendingOrder, error) {
	ctx, span := s.startSpan(ctx, "Service.ListPending")
	defer span.End()

	result, err := s.inner.ListPending(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list pending orders")
	}
	span.SetAttributes(attribute.Int("orders.pending", len(result)))
	s.logInfo(ctx, "pending orders listed", slog.Int("count", len(result)))
	return result, nil
}

// Approve forwards an order to the vendor with instrumentation.
func (s *Service) Approve(ctx context.Context, input types.ActionInput) (types.ApproveResult, error) {
	ctx, span := s.startSpan(ctx, "Service.Approve", attribute.Int64("order.id", input.OrderID))
	defer span.End()

	result, err := s.inner.Approve(ctx, input)
	if err != nil {
		s.metrics.recordApproval(ctx, "error")
		return types.ApproveResult{}, s.handleError(ctx, span, err, "failed to approve order", slog.Int64("order.id", input.OrderID))
	}
	outcome := "sent"
	if result.AlreadyProcessed {
		outcome = "already_processed"
	}
	s.metrics.recordApproval(ctx, outcome)
	if !result.Recorded {
		s.logWarn(ctx, "vendor order created but source order update failed; do not resubmit",
			slog.Int64("order.id", input.OrderID),
			slog.String("vendor.reference", result.VendorReference))
	}
	s.logInfo(ctx, "order approved",
		slog.Int64("order.id", input.OrderID),
		slog.String("outcome", outcome),
		slog.String("vendor.reference", result.VendorReference))
	return result, nil
}

// Reject marks an order rejected with instrumentation.
func (s *Service) Reject(ctx context.Context, input types.ActionInput) (types.RejectResult, error) {
	ctx, span := s.startSpan(ctx, "Service.Reject", attribute.Int64("order.id", input.OrderID))
	defer span.End()

	result, err := s.inner.Reject(ctx, input)
	if err != nil {
		s.metrics.recordRejection(ctx, "error")
		return types.RejectResult{}, s.handleError(ctx, span, err, "failed to reject order", slog.Int64("order.id", input.OrderID))
	}
	outcome := "rejected"
	if result.AlreadyProcessed {
		outcome = "already_processed"
	}
	s.metrics.recordRejection(ctx, outcome)
	s.logInfo(ctx, "order rejected", slog.Int64("order.id", input.OrderID), slog.String("outcome", outcome))
	return result, nil
}

func (s *Service) startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return s.tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	args := make([]any, 0, len(attrs)+1)
	for _, attr := range attrs {
		args = append(args, attr)
	}
	args = append(args, slog.String("error", err.Error()))
	s.logger.ErrorContext(ctx, msg, args...)
	return err
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	args := make([]any, 0, len(attrs))
	for _, attr := range attrs {
		args = append(args, attr)
	}
	s.logger.InfoContext(ctx, msg, args...)
}

func (s *Service) logWarn(ctx context.Context, msg string, attrs ...slog.Attr) {
	args := make([]any, 0, len(attrs))
	for _, attr := range attrs {
		args = append(args, attr)
	}
	s.logger.WarnContext(ctx, msg, args...)
}

func defaultLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var _ ports.Service = (*Service)(nil)
