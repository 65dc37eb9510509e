// Package telemetry instruments the cross-fit driver with optional
// Prometheus metrics and OpenTelemetry tracing, grounded on the
// request-instrumentation pattern of services in the example pack rather
// than the encoder core's own dependency set (a zero-dependency core with
// no instrumentation of its own).
package telemetry

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Observer receives fit-lifecycle events. The zero value (NoopObserver)
// discards everything; callers wanting visibility into fit duration or
// per-unit tracing install Prometheus/OTel implementations instead.
type Observer interface {
	FitUnitStarted(ctx context.Context, origin, kind string) (context.Context, func())
	FitCompleted(rowCount, derivedColumnCount int)
}

// NoopObserver implements Observer with no side effects.
type NoopObserver struct{}

func (NoopObserver) FitUnitStarted(ctx context.Context, origin, kind string) (context.Context, func()) {
	return ctx, func() {}
}
func (NoopObserver) FitCompleted(rowCount, derivedColumnCount int) {}

// PrometheusObserver reports fit-unit counts and a fit-completed gauge
// pair via client_golang, the same metrics idiom the retrieval pack's
// service examples use for request instrumentation.
type PrometheusObserver struct {
	unitsStarted  *prometheus.CounterVec
	rowsFitted    prometheus.Gauge
	columnsFitted prometheus.Gauge
}

// NewPrometheusObserver registers its metrics against reg.
func NewPrometheusObserver(reg prometheus.Registerer) *PrometheusObserver {
	o := &PrometheusObserver{
		unitsStarted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "vtreat",
			Name:      "fit_units_started_total",
			Help:      "Cross-fit driver units (origin_column, kind) started.",
		}, []string{"kind"}),
		rowsFitted: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "vtreat", Name: "last_fit_row_count", Help: "Row count of the most recent fit.",
		}),
		columnsFitted: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "vtreat", Name: "last_fit_derived_column_count", Help: "Derived column count of the most recent fit.",
		}),
	}
	reg.MustRegister(o.unitsStarted, o.rowsFitted, o.columnsFitted)
	return o
}

func (o *PrometheusObserver) FitUnitStarted(ctx context.Context, origin, kind string) (context.Context, func()) {
	o.unitsStarted.WithLabelValues(kind).Inc()
	return ctx, func() {}
}

func (o *PrometheusObserver) FitCompleted(rowCount, derivedColumnCount int) {
	o.rowsFitted.Set(float64(rowCount))
	o.columnsFitted.Set(float64(derivedColumnCount))
}

// TracingObserver emits one OpenTelemetry span per (origin_column, kind)
// fit unit, the natural unit of parallel work in the cross-fit driver.
type TracingObserver struct {
	tracer trace.Tracer
}

// NewTracingObserver builds a TracingObserver from the global tracer
// provider under instrumentation name "vtreat".
func NewTracingObserver() *TracingObserver {
	return &TracingObserver{tracer: otel.Tracer("vtreat")}
}

func (o *TracingObserver) FitUnitStarted(ctx context.Context, origin, kind string) (context.Context, func()) {
	ctx, span := o.tracer.Start(ctx, "vtreat.fit_unit",
		trace.WithAttributes(attribute.String("origin", origin), attribute.String("kind", kind)))
	return ctx, func() { span.End() }
}

func (o *TracingObserver) FitCompleted(rowCount, derivedColumnCount int) {}
