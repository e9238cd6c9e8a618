package observability

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

type serviceMetrics struct {
	webhooksIngested metric.Int64Counter
	approvals        metric.Int64Counter
	rejections       metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	webhooksIngested, _ := m.Int64Counter("approvals.service.webhooks_ingested", metric.WithDescription("Number of order webhooks ingested"))
	approvals, _ := m.Int64Counter("approvals.service.approvals", metric.WithDescription("Number of approve actions by outcome"))
	rejections, _ := m.Int64Counter("approvals.service.rejections", metric.WithDescription("Number of reject actions by outcome"))
	return serviceMetrics{
		webhooksIngested: webhooksIngested,
		approvals:        approvals,
		rejections:       rejections,
	}
}

func (m serviceMetrics) recordIngest(ctx context.Context, marked bool) {
	addCounter(ctx, m.webhooksIngested, 1, attribute.Bool("marked", marked))
}

func (m serviceMetrics) recordApproval(ctx context.Context, outcome string) {
	addCounter(ctx, m.approvals, 1, attribute.String("outcome", outcome))
}

func (m serviceMetrics) recordRejection(ctx context.Context, outcome string) {
	addCounter(ctx, m.rejections, 1, attribute.String("outcome", outcome))
}

func addCounter(ctx context.Context, counter metric.Int64Counter, value int64, attrs ...attribute.KeyValue) {
	if counter == nil {
		return
	}
	counter.Add(ctx, value, metric.WithAttributes(attrs...))
}
