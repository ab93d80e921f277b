package query

import (
	"context"
	"iter"
	"slices"

	"github.com/AntonStoeckl/recordstream-go/recordstream"
)

// Stream is a lazy, single-pass view of records with payloads of type T.
type Stream[T recordstream.RecordValue] struct {
	seq iter.Seq[recordstream.Record[T]]
}

// Records returns a Stream of all records of the source, starting with the first captured one.
func Records(ctx context.Context, source recordstream.Source) Stream[recordstream.RecordValue] {
	return FromCursor(source.Cursor(ctx, 0))
}

// RecordsFromNow returns a Stream of the records the source captures after this call.
func RecordsFromNow(ctx context.Context, source recordstream.Source) Stream[recordstream.RecordValue] {
	return FromCursor(source.CursorFromNow(ctx))
}

// FromCursor returns a Stream that reads the given cursor.
func FromCursor(cursor recordstream.Cursor) Stream[recordstream.RecordValue] {
	return Stream[recordstream.RecordValue]{
		seq: func(yield func(recordstream.CapturedRecord) bool) {
			for cursor.HasNext() {
				if !yield(cursor.Next()) {
					return
				}
			}
		},
	}
}

// FromSlice returns a Stream over the given records that never waits, e.g. over a snapshot.
func FromSlice(records recordstream.CapturedRecords) Stream[recordstream.RecordValue] {
	cursor := &sliceCursor{records: records}

	return FromCursor(cursor)
}

type sliceCursor struct {
	records recordstream.CapturedRecords
	index   int
}

func (c *sliceCursor) HasNext() bool {
	return c.index < len(c.records)
}

func (c *sliceCursor) Next() recordstream.CapturedRecord {
	record := c.records[c.index]
	c.index++

	return record
}

// OfType narrows a Stream to the records whose payload is of type T, skipping all others.
func OfType[T recordstream.RecordValue, S recordstream.RecordValue](s Stream[S]) Stream[T] {
	return Stream[T]{
		seq: func(yield func(recordstream.Record[T]) bool) {
			for r := range s.seq {
				typed, ok := recordstream.Narrow[T](recordstream.CapturedRecord{Metadata: r.Metadata, Value: r.Value})
				if ok && !yield(typed) {
					return
				}
			}
		},
	}
}

// Filter returns a Stream of the records that match predicate. It panics with
// recordstream.ErrNilPredicate if predicate is nil.
func (s Stream[T]) Filter(predicate func(recordstream.Record[T]) bool) Stream[T] {
	if predicate == nil {
		panic(recordstream.ErrNilPredicate)
	}

	return Stream[T]{
		seq: func(yield func(recordstream.Record[T]) bool) {
			for r := range s.seq {
				if predicate(r) && !yield(r) {
					return
				}
			}
		},
	}
}

// ValueFilter returns a Stream of the records whose payload matches predicate.
func (s Stream[T]) ValueFilter(predicate func(T) bool) Stream[T] {
	if predicate == nil {
		panic(recordstream.ErrNilPredicate)
	}

	return s.Filter(func(r recordstream.Record[T]) bool {
		return predicate(r.Value)
	})
}

func (s Stream[T]) metadataFilter(predicate func(recordstream.Metadata) bool) Stream[T] {
	return s.Filter(func(r recordstream.Record[T]) bool {
		return predicate(r.Metadata)
	})
}

// All returns the records of the Stream as an iterator. Ranging over it drives the cursor.
func (s Stream[T]) All() iter.Seq[recordstream.Record[T]] {
	return s.seq
}

// Collect reads all records until the Stream is exhausted.
func (s Stream[T]) Collect() []recordstream.Record[T] {
	return slices.Collect(s.seq)
}

// First returns the first record of the Stream and stops reading after it.
// It reports false if the Stream is exhausted before any record arrives.
func (s Stream[T]) First() (recordstream.Record[T], bool) {
	for r := range s.seq {
		return r, true
	}

	return recordstream.Record[T]{}, false
}

// Last reads the Stream until it is exhausted and returns the last record.
func (s Stream[T]) Last() (recordstream.Record[T], bool) {
	var last recordstream.Record[T]
	found := false

	for r := range s.seq {
		last = r
		found = true
	}

	return last, found
}

// Exists reports whether the Stream has at least one record.
func (s Stream[T]) Exists() bool {
	_, found := s.First()
	return found
}

// Count reads the Stream until it is exhausted and returns the number of records.
func (s Stream[T]) Count() int {
	count := 0
	for range s.seq {
		count++
	}

	return count
}
