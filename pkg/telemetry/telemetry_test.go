package telemetry

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestNoopObserverDoesNothing(t *testing.T) {
	var o NoopObserver
	ctx, done := o.FitUnitStarted(context.Background(), "tenure", "clean")
	assert.NotNil(t, ctx)
	done()
	o.FitCompleted(10, 3)
}

func TestPrometheusObserverRecordsFitUnitsAndGauges(t *testing.T) {
	reg := prometheus.NewRegistry()
	o := NewPrometheusObserver(reg)

	_, done := o.FitUnitStarted(context.Background(), "tenure", "clean")
	done()
	_, done = o.FitUnitStarted(context.Background(), "tenure", "clean")
	done()
	_, done = o.FitUnitStarted(context.Background(), "dept", "indicator")
	done()

	o.FitCompleted(120, 5)

	assert.Equal(t, float64(2), testutil.ToFloat64(o.unitsStarted.WithLabelValues("clean")))
	assert.Equal(t, float64(1), testutil.ToFloat64(o.unitsStarted.WithLabelValues("indicator")))
	assert.Equal(t, float64(120), testutil.ToFloat64(o.rowsFitted))
	assert.Equal(t, float64(5), testutil.ToFloat64(o.columnsFitted))
}

func TestTracingObserverEndsSpanOnDone(t *testing.T) {
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	o := &TracingObserver{tracer: tp.Tracer("vtreat-test")}

	_, done := o.FitUnitStarted(context.Background(), "tenure", "clean")
	require.Empty(t, sr.Ended())
	done()
	require.Len(t, sr.Ended(), 1)
	assert.Equal(t, "vtreat.fit_unit", sr.Ended()[0].Name())
}
