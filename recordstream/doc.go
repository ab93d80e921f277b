// Package recordstream provides the core types for capturing the records emitted by an
// event-sourced process engine and replaying them in tests.
//
// This package defines the record envelope, the enumerations used to classify records,
// the cursor contract shared by record sources and query views, a declarative record filter,
// and the observability interfaces used by the store implementations.
//
// Key types:
//   - Record: one immutable command, event or command rejection with its typed payload
//   - CapturedRecord: the heterogeneous form held by a record store
//   - Filter: declarative criteria on the record envelope
//   - Cursor / Source: per-consumer, possibly blocking iteration over captured records
//
// Common usage pattern:
//
//	store, _ := memoryengine.NewStore(memoryengine.WithMaxWaitTime(2 * time.Second))
//
//	// producer side
//	err := store.Append(ctx, record)
//
//	// consumer side
//	filter := recordstream.BuildRecordFilter().
//		Matching().
//		AnyValueTypeOf(recordstream.ValueTypeProcessInstance).
//		AndAnyIntentOf(recordstream.IntentElementCompleted).
//		Finalize()
//
//	completed, found := query.Records(ctx, store).WithFilter(filter).First()
package recordstream
