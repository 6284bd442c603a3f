package rwset

import (
	"context"
	"log/slog"
	"time"
)

// instrument carries the optional observability of an RWMutex.
// Locks built without logger or meter provider have none.
type instrument struct {
	name    string
	logger  *slog.Logger
	slow    time.Duration
	metrics MetricsRecorder

	// writeSince is set by the writer while it holds the internal mutex,
	// and read back by the same writer in Unlock.
	writeSince time.Time
}

func newInstrument(cfg *Config) *instrument {
	if !cfg.instrumented() {
		return nil
	}
	in := &instrument{
		name:    cfg.name,
		logger:  cfg.logger,
		slow:    cfg.slowThreshold,
		metrics: NoopMetrics{},
	}
	if cfg.meterProvider != nil {
		m, err := NewMetricsRecorder(cfg.meterProvider)
		if err != nil {
			if in.logger != nil {
				in.logger.Warn("metrics initialization failed, using no-op recorder",
					slog.String("lock", in.name),
					slog.String("error", err.Error()))
			}
		} else {
			in.metrics = m
		}
	}
	return in
}

func (in *instrument) acquired(mode Mode, start time.Time, contended bool) {
	wait := time.Since(start)
	in.metrics.RecordAcquire(context.Background(), in.name, mode, wait, contended)
	if in.logger != nil && in.slow > 0 && wait > in.slow {
		in.logger.Warn("slow lock acquisition",
			slog.String("lock", in.name),
			slog.String("mode", mode.String()),
			slog.Duration("wait", wait),
		)
	}
}

func (in *instrument) released(held time.Duration) {
	in.metrics.RecordHold(context.Background(), in.name, WriteMode, held)
	if in.logger != nil && in.slow > 0 && held > in.slow {
		in.logger.Warn("lock held too long",
			slog.String("lock", in.name),
			slog.String("mode", WriteMode.String()),
			slog.Duration("held", held),
		)
	}
}
