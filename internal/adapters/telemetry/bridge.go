package telemetry

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/pagefresh/internal/core/ports"
)

// DefaultSlowThreshold is the span duration above which the bridge warns.
const DefaultSlowThreshold = 30 * time.Second

// taskKeyAttr marks spans that belong to a single task.
const taskKeyAttr = attribute.Key("pagefresh.task_key")

// LogBridge implements sdktrace.SpanProcessor. It warns about task spans
// that ran longer than the threshold and about failed run spans.
type LogBridge struct {
	logger    ports.Logger
	threshold time.Duration
}

// NewLogBridge returns a LogBridge. A threshold of zero or less uses
// DefaultSlowThreshold.
func NewLogBridge(logger ports.Logger, threshold time.Duration) *LogBridge {
	if threshold <= 0 {
		threshold = DefaultSlowThreshold
	}
	return &LogBridge{logger: logger, threshold: threshold}
}

// OnStart does nothing.
func (b *LogBridge) OnStart(_ context.Context, _ sdktrace.ReadWriteSpan) {}

// OnEnd is called when a span ends.
func (b *LogBridge) OnEnd(s sdktrace.ReadOnlySpan) {
	if b.logger == nil || !s.SpanContext().IsValid() {
		return
	}

	key, isTask := taskKey(s)
	if !isTask {
		if s.Status().Code == codes.Error {
			b.logger.Warn(fmt.Sprintf("%s ended with error: %s", s.Name(), s.Status().Description))
		}
		return
	}

	if d := s.EndTime().Sub(s.StartTime()); d > b.threshold {
		b.logger.Warn(fmt.Sprintf("slow task %s took %s", key, d.Round(time.Millisecond)))
	}
}

// ForceFlush does nothing.
func (b *LogBridge) ForceFlush(_ context.Context) error {
	return nil
}

// Shutdown does nothing.
func (b *LogBridge) Shutdown(_ context.Context) error {
	return nil
}

func taskKey(s sdktrace.ReadOnlySpan) (string, bool) {
	for _, kv := range s.Attributes() {
		if kv.Key == taskKeyAttr {
			return kv.Value.AsString(), true
		}
	}
	return "", false
}
