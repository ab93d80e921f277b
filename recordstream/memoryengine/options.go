package memoryengine

import (
	"context"
	"time"

	"github.com/AntonStoeckl/recordstream-go/recordstream"
)

// Acknowledger receives the position of every appended record while auto-acknowledge is enabled.
// Calls are fire-and-forget; the store neither waits for nor inspects their outcome.
type Acknowledger interface {
	AcknowledgePosition(ctx context.Context, position int64)
}

// AcknowledgerFunc adapts a function to the Acknowledger interface.
type AcknowledgerFunc func(ctx context.Context, position int64)

// AcknowledgePosition calls f.
func (f AcknowledgerFunc) AcknowledgePosition(ctx context.Context, position int64) {
	f(ctx, position)
}

// Option defines a functional option for configuring Store.
type Option func(*Store) error

// WithMaxWaitTime sets how long a cursor waits for new records before it reports exhaustion.
// The value also becomes the default that Reset restores. Zero makes all reads non-blocking.
func WithMaxWaitTime(maxWaitTime time.Duration) Option {
	return func(s *Store) error {
		if maxWaitTime < 0 {
			return recordstream.ErrNegativeMaxWaitTime
		}

		s.defaultMaxWaitTime = maxWaitTime
		s.maxWaitTime = maxWaitTime

		return nil
	}
}

// WithAutoAcknowledge sets whether appended positions are reported to the Acknowledger.
// The value also becomes the default that Reset restores.
func WithAutoAcknowledge(autoAcknowledge bool) Option {
	return func(s *Store) error {
		s.defaultAutoAcknowledge = autoAcknowledge
		s.autoAcknowledge = autoAcknowledge

		return nil
	}
}

// WithAcknowledger sets the collaborator that is told about appended positions.
func WithAcknowledger(acknowledger Acknowledger) Option {
	return func(s *Store) error {
		s.acknowledger = acknowledger
		return nil
	}
}

// WithLogger sets the logger for the Store.
// The logger will receive messages at different levels based on the logger's configured level:
//
// Debug level: appended records, exhausted cursors (development use)
// Info level: resets and configuration changes (production-safe)
// Error level: failures that make an operation fail.
func WithLogger(logger recordstream.Logger) Option {
	return func(s *Store) error {
		s.logger = logger
		return nil
	}
}

// WithContextualLogger sets the contextual logger for the Store.
// It takes precedence over the logger set with WithLogger and receives the operation's context,
// which enables trace correlation when tracing is enabled.
func WithContextualLogger(logger recordstream.ContextualLogger) Option {
	return func(s *Store) error {
		s.contextualLogger = logger
		return nil
	}
}

// WithMetrics sets the metrics collector for the Store.
// The collector receives append durations, captured record counts, cursor wait durations,
// cursor exhaustion, resets and errors.
func WithMetrics(collector recordstream.MetricsCollector) Option {
	return func(s *Store) error {
		s.metricsCollector = collector
		return nil
	}
}

// WithTracing sets the tracing collector for the Store.
// The collector receives one span per append and per reset.
func WithTracing(collector recordstream.TracingCollector) Option {
	return func(s *Store) error {
		s.tracingCollector = collector
		return nil
	}
}
