package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	otelmetric "go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/trace"
)

// Observability bundles the OTel meter instruments and tracer used by the chat handler.
type Observability struct {
	meterProvider *metric.MeterProvider
	tracer        trace.Tracer
	replyCounter  otelmetric.Int64Counter
	replyDuration otelmetric.Float64Histogram
}

// Logger is satisfied by logger.Logger.
type Logger interface {
	Warn(msg string, fields map[string]interface{})
}

// New registers a Prometheus-backed meter provider under serviceName. On exporter
// failure it returns an Observability whose recorders are no-ops.
func New(serviceName string, log Logger) *Observability {
	tracer := otel.Tracer(serviceName)

	exporter, err := prometheus.New()
	if err != nil {
		log.Warn("failed to create otel prometheus exporter", map[string]interface{}{
			"error": err.Error(),
		})
		return &Observability{tracer: tracer}
	}

	provider := metric.NewMeterProvider(metric.WithReader(exporter))
	otel.SetMeterProvider(provider)

	meter := provider.Meter(serviceName)

	replyCounter, _ := meter.Int64Counter(
		"chat.replies",
		otelmetric.WithDescription("Number of chat replies produced"),
	)

	replyDuration, _ := meter.Float64Histogram(
		"chat.reply.duration",
		otelmetric.WithDescription("Chat reply duration"),
		otelmetric.WithUnit("ms"),
	)

	return &Observability{
		meterProvider: provider,
		tracer:        tracer,
		replyCounter:  replyCounter,
		replyDuration: replyDuration,
	}
}

// NewNoop returns an Observability that records nothing.
func NewNoop() *Observability {
	return &Observability{tracer: otel.Tracer("noop")}
}

// StartSpan starts a span named name under ctx.
func (o *Observability) StartSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return o.tracer.Start(ctx, name)
}

func (o *Observability) RecordReply(ctx context.Context, rule string) {
	if o.replyCounter != nil {
		o.replyCounter.Add(ctx, 1, otelmetric.WithAttributes(
			attribute.String("rule", rule),
		))
	}
}

func (o *Observability) RecordReplyDuration(ctx context.Context, duration time.Duration, rule string) {
	if o.replyDuration != nil {
		o.replyDuration.Record(ctx, float64(duration.Microseconds())/1000, otelmetric.WithAttributes(
			attribute.String("rule", rule),
		))
	}
}

func (o *Observability) Shutdown() {
	if o.meterProvider != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = o.meterProvider.Shutdown(ctx)
	}
}
