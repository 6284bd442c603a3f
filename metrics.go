package rwset

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "github.com/llxisdsh/rwset"

// MetricsRecorder records lock activity.
// Use NewMetricsRecorder for OpenTelemetry metrics or NoopMetrics{} when disabled.
type MetricsRecorder interface {
	// RecordAcquire records a granted acquisition, how long the caller
	// waited and whether it had to park.
	RecordAcquire(ctx context.Context, lock string, mode Mode, wait time.Duration, contended bool)

	// RecordHold records how long a writer held the lock.
	RecordHold(ctx context.Context, lock string, mode Mode, held time.Duration)
}

// NoopMetrics discards everything.
type NoopMetrics struct{}

func (NoopMetrics) RecordAcquire(context.Context, string, Mode, time.Duration, bool) {}
func (NoopMetrics) RecordHold(context.Context, string, Mode, time.Duration)          {}

type otelMetrics struct {
	acquisitions metric.Int64Counter
	contentions  metric.Int64Counter
	waitLatency  metric.Float64Histogram
	holdLatency  metric.Float64Histogram
}

// NewMetricsRecorder creates the lock instruments from mp.
func NewMetricsRecorder(mp metric.MeterProvider) (MetricsRecorder, error) {
	meter := mp.Meter(meterName)

	acquisitions, err := meter.Int64Counter("rwset.lock.acquisitions",
		metric.WithDescription("Number of granted lock acquisitions"),
	)
	if err != nil {
		return nil, err
	}

	contentions, err := meter.Int64Counter("rwset.lock.contentions",
		metric.WithDescription("Number of acquisitions that had to wait"),
	)
	if err != nil {
		return nil, err
	}

	waitLatency, err := meter.Float64Histogram("rwset.lock.wait_ms",
		metric.WithDescription("Time spent waiting for the lock in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	holdLatency, err := meter.Float64Histogram("rwset.lock.hold_ms",
		metric.WithDescription("Time the write lock was held in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	return &otelMetrics{
		acquisitions: acquisitions,
		contentions:  contentions,
		waitLatency:  waitLatency,
		holdLatency:  holdLatency,
	}, nil
}

func (m *otelMetrics) RecordAcquire(ctx context.Context, lock string, mode Mode, wait time.Duration, contended bool) {
	attrs := metric.WithAttributes(
		attribute.String("lock", lock),
		attribute.String("mode", mode.String()),
	)
	m.acquisitions.Add(ctx, 1, attrs)
	m.waitLatency.Record(ctx, float64(wait)/float64(time.Millisecond), attrs)
	if contended {
		m.contentions.Add(ctx, 1, attrs)
	}
}

func (m *otelMetrics) RecordHold(ctx context.Context, lock string, mode Mode, held time.Duration) {
	m.holdLatency.Record(ctx, float64(held)/float64(time.Millisecond), metric.WithAttributes(
		attribute.String("lock", lock),
		attribute.String("mode", mode.String()),
	))
}
