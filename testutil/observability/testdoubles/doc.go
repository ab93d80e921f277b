// Package testdoubles provides test doubles (spies) for the observability and acknowledgement
// collaborators of record stores.
//
//   - LogHandlerSpy: a slog.Handler that captures log records and their attributes
//   - ContextualLoggerSpy: captures context-aware logging calls
//   - MetricsCollectorSpy: captures duration, counter and value metrics
//   - TracingCollectorSpy: captures spans with their start and end attributes
//   - AcknowledgerSpy: captures acknowledged record positions
//
// They allow testing the instrumentation without any telemetry backend.
package testdoubles
