package telemetry_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
	"go.trai.ch/pagefresh/internal/adapters/telemetry"
	"go.trai.ch/pagefresh/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func newRecordingTracer(t *testing.T) (*telemetry.OTelTracer, *tracetest.SpanRecorder) {
	t.Helper()
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })
	return telemetry.NewOTelTracer(tp), sr
}

func attrMap(s sdktrace.ReadOnlySpan) map[attribute.Key]attribute.Value {
	m := make(map[attribute.Key]attribute.Value)
	for _, kv := range s.Attributes() {
		m[kv.Key] = kv.Value
	}
	return m
}

func TestOTelTracer_Attributes(t *testing.T) {
	tracer, sr := newRecordingTracer(t)

	ctx, parent := tracer.Start(context.Background(), "refresh run")
	_, span := tracer.Start(ctx, "seo:industry:plumbers")
	span.SetAttribute("s", "v")
	span.SetAttribute("i", 3)
	span.SetAttribute("i64", int64(4))
	span.SetAttribute("f", 1.5)
	span.SetAttribute("b", true)
	span.SetAttribute("ss", []string{"a", "b"})
	span.SetAttribute("d", time.Second)
	span.End()
	parent.End()

	ended := sr.Ended()
	require.Len(t, ended, 2)

	child := ended[0]
	assert.Equal(t, "seo:industry:plumbers", child.Name())
	assert.Equal(t, ended[1].SpanContext().SpanID(), child.Parent().SpanID())

	attrs := attrMap(child)
	assert.Equal(t, "v", attrs["s"].AsString())
	assert.Equal(t, int64(3), attrs["i"].AsInt64())
	assert.Equal(t, int64(4), attrs["i64"].AsInt64())
	assert.InDelta(t, 1.5, attrs["f"].AsFloat64(), 0)
	assert.True(t, attrs["b"].AsBool())
	assert.Equal(t, []string{"a", "b"}, attrs["ss"].AsStringSlice())
	assert.Equal(t, "1s", attrs["d"].AsString())
}

func TestOTelSpan_RecordError(t *testing.T) {
	tracer, sr := newRecordingTracer(t)

	_, span := tracer.Start(context.Background(), "task")
	span.RecordError(nil)
	span.RecordError(errors.New("provider returned an error status"))
	span.End()

	ended := sr.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, codes.Error, ended[0].Status().Code)
	assert.Equal(t, "provider returned an error status", ended[0].Status().Description)
	assert.Len(t, ended[0].Events(), 1)
}

func TestLogBridge(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)

	bridge := telemetry.NewLogBridge(mockLogger, time.Second)
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(bridge))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })
	tracer := tp.Tracer("test")

	t0 := time.Date(2026, 3, 1, 3, 0, 0, 0, time.UTC)
	taskAttr := trace.WithAttributes(attribute.String("pagefresh.task_key", "seo:industry:plumbers"))

	// Fast task span: nothing logged.
	_, fast := tracer.Start(context.Background(), "fast", trace.WithTimestamp(t0), taskAttr)
	fast.End(trace.WithTimestamp(t0.Add(100 * time.Millisecond)))

	// Slow task span: one warning.
	mockLogger.EXPECT().Warn("slow task seo:industry:plumbers took 1m0s").Times(1)
	_, slow := tracer.Start(context.Background(), "slow", trace.WithTimestamp(t0), taskAttr)
	slow.End(trace.WithTimestamp(t0.Add(time.Minute)))

	// Failed non-task span: one warning.
	mockLogger.EXPECT().Warn("refresh run ended with error: context canceled").Times(1)
	_, run := tracer.Start(context.Background(), "refresh run")
	run.SetStatus(codes.Error, "context canceled")
	run.End()
}

func TestLogBridge_NilLogger(t *testing.T) {
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(telemetry.NewLogBridge(nil, 0)))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	_, span := tp.Tracer("test").Start(context.Background(), "x")
	span.End()
}

func TestSetup_Shutdown(t *testing.T) {
	ctrl := gomock.NewController(t)
	tracer := telemetry.Setup(mocks.NewMockLogger(ctrl), 0)

	_, span := tracer.Start(context.Background(), "x")
	span.End()
	require.NoError(t, tracer.Shutdown(context.Background()))
}

func TestNoOpTracer(t *testing.T) {
	ctx := context.Background()
	got, span := telemetry.NewNoOpTracer().Start(ctx, "x")
	assert.Equal(t, ctx, got)
	span.SetAttribute("k", "v")
	span.RecordError(errors.New("ignored"))
	span.End()
}
