// Package query provides lazy, composable views over the records of a recordstream.Source.
//
// A Stream is backed by exactly one cursor. Composing filters and windows never reads a record;
// only the terminal operations (All, Collect, First, Last, Exists, Count) pull records, and those
// block at the same points a raw cursor would: when all captured records were consumed and the
// source's wait budget is not used up yet.
//
// Streams are single-pass. Once consumed, a Stream continues where the previous consumption
// stopped; create a new Stream to start over.
//
// Example:
//
//	completed := query.ProcessInstanceRecords(ctx, store).
//		OnlyEvents().
//		WithIntent(recordstream.IntentElementCompleted)
//	completed = query.WithElementID(completed, "task")
//
//	record, found := completed.First()
package query
