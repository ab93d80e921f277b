// Package oteladapters provides OpenTelemetry implementations of the recordstream observability interfaces,
// for users who want to plug a record store into an existing OpenTelemetry setup.
//
//   - SlogBridgeLogger and OTelLogger implement recordstream.ContextualLogger
//   - MetricsCollector implements recordstream.ContextualMetricsCollector
//   - TracingCollector implements recordstream.TracingCollector
//
// Usage with a memoryengine.Store:
//
//	store, err := memoryengine.NewStore(
//		memoryengine.WithContextualLogger(oteladapters.NewSlogBridgeLogger("recordstream")),
//		memoryengine.WithMetrics(oteladapters.NewMetricsCollector(otel.Meter("recordstream"))),
//		memoryengine.WithTracing(oteladapters.NewTracingCollector(otel.Tracer("recordstream"))),
//	)
package oteladapters
