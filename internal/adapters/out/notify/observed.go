package notify

import (
	"context"
	"log/slog"

	"orderlifecycle/internal/core/domain/model/order"
	"orderlifecycle/internal/core/ports"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"
)

const tracerName = "orderlifecycle/internal/adapters/out/notify"

// Observed decorates a notifier with a span, a log line on failure and
// delivery counters.
type Observed struct {
	inner   ports.Notifier
	sink    string
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics notifierMetrics
}

type Option func(*Observed)

func WithLogger(logger *slog.Logger) Option {
	return func(o *Observed) {
		o.logger = logger
	}
}

func WithTracer(tr trace.Tracer) Option {
	return func(o *Observed) {
		o.tracer = tr
	}
}

func WithMeter(m metric.Meter) Option {
	return func(o *Observed) {
		o.metrics = newNotifierMetrics(m)
	}
}

func NewObserved(sink string, inner ports.Notifier, opts ...Option) *Observed {
	o := &Observed{
		inner:  inner,
		sink:   sink,
		tracer: nooptrace.NewTracerProvider().Tracer(tracerName),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}
	if o.tracer == nil {
		o.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return o
}

func (o *Observed) Notify(ctx context.Context, ord *order.Order, e order.Event) error {
	attrs := []attribute.KeyValue{
		attribute.String("notify.sink", o.sink),
		attribute.String("order.id", e.OrderID.String()),
		attribute.String("order.event", string(e.Kind)),
		attribute.String("order.status", e.Current.String()),
	}
	ctx, span := o.tracer.Start(ctx, "Notifier.Notify", trace.WithAttributes(attrs...))
	defer span.End()

	err := o.inner.Notify(ctx, ord, e)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		if o.logger != nil {
			o.logger.LogAttrs(ctx, slog.LevelWarn, "notification failed",
				slog.String("sink", o.sink),
				slog.String("order_id", e.OrderID.String()),
				slog.String("error", err.Error()))
		}
	}
	o.metrics.record(ctx, o.sink, e.Kind, err)
	return err
}

type notifierMetrics struct {
	delivered metric.Int64Counter
	failed    metric.Int64Counter
}

func newNotifierMetrics(m metric.Meter) notifierMetrics {
	if m == nil {
		return notifierMetrics{}
	}
	delivered, _ := m.Int64Counter("notify.delivered", metric.WithDescription("Lifecycle notifications accepted by a sink"))
	failed, _ := m.Int64Counter("notify.failed", metric.WithDescription("Lifecycle notifications rejected by a sink"))
	return notifierMetrics{delivered: delivered, failed: failed}
}

func (m notifierMetrics) record(ctx context.Context, sink string, kind order.EventKind, err error) {
	opt := metric.WithAttributes(attribute.String("sink", sink), attribute.String("event", string(kind)))
	if err != nil {
		if m.failed != nil {
			m.failed.Add(ctx, 1, opt)
		}
		return
	}
	if m.delivered != nil {
		m.delivered.Add(ctx, 1, opt)
	}
}

var _ ports.Notifier = (*Observed)(nil)
