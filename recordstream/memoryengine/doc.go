// Package memoryengine provides the in-memory record store used to capture the records of an
// engine under test and to serve blocking cursors over them.
//
// The store is an append-only, process-lifetime sequence. Every appended record gets the next
// dense, zero-based store index, independent of its position or partition. Cursors advance over
// that index and, once they caught up, wait for new records up to the configured max wait time.
//
// Key features:
//   - Defensive copy of every payload at append time
//   - Any number of concurrent producers and independent cursors
//   - Bounded waiting: exhaustion is a normal result, never an error
//   - Reset that invalidates outstanding cursors without blocking or failing them
//   - Optional acknowledgement of appended positions to the producer
//   - Dual-logger, metrics and tracing support
//
// Usage examples:
//
//	// Basic usage
//	store, _ := memoryengine.NewStore()
//
//	// Configured for a test suite
//	store, _ := memoryengine.NewStore(
//		memoryengine.WithMaxWaitTime(2*time.Second),
//		memoryengine.WithAcknowledger(exporterController),
//		memoryengine.WithLogger(slog.Default()),
//	)
//
//	_ = store.Append(ctx, record)
//	cursor := store.Cursor(ctx, 0)
//	for cursor.HasNext() {
//		r := cursor.Next()
//	}
package memoryengine
