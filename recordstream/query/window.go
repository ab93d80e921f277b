package query

import (
	"github.com/AntonStoeckl/recordstream-go/recordstream"
)

// After drops records while their position is not greater than lowerBoundPosition.
// The bound is a threshold, the record at that position does not have to exist.
func (s Stream[T]) After(lowerBoundPosition int64) Stream[T] {
	return s.SkipUntil(func(r recordstream.Record[T]) bool {
		return r.Position > lowerBoundPosition
	})
}

// Between keeps the records after lowerBoundPosition up to and including the first record
// whose position is at least upperBoundPosition.
func (s Stream[T]) Between(lowerBoundPosition, upperBoundPosition int64) Stream[T] {
	return s.BetweenFunc(
		func(r recordstream.Record[T]) bool {
			return r.Position > lowerBoundPosition
		},
		func(r recordstream.Record[T]) bool {
			return r.Position >= upperBoundPosition
		},
	)
}

// BetweenFunc drops records until lowerBound matches and stops after the first following record,
// that one included, that matches upperBound. The record matching lowerBound is kept and is
// itself checked against upperBound.
func (s Stream[T]) BetweenFunc(lowerBound, upperBound func(recordstream.Record[T]) bool) Stream[T] {
	if lowerBound == nil || upperBound == nil {
		panic(recordstream.ErrNilPredicate)
	}

	return s.SkipUntil(lowerBound).Limit(upperBound)
}

// BetweenRecords keeps the records from lowerBound up to upperBound, both included.
// Records are identified by partition and position.
func (s Stream[T]) BetweenRecords(lowerBound, upperBound recordstream.Metadata) Stream[T] {
	return s.BetweenFunc(
		func(r recordstream.Record[T]) bool {
			return r.Is(lowerBound)
		},
		func(r recordstream.Record[T]) bool {
			return r.Is(upperBound)
		},
	)
}

// SkipUntil drops records until the first one that matches predicate and keeps all records from there on.
func (s Stream[T]) SkipUntil(predicate func(recordstream.Record[T]) bool) Stream[T] {
	if predicate == nil {
		panic(recordstream.ErrNilPredicate)
	}

	return Stream[T]{
		seq: func(yield func(recordstream.Record[T]) bool) {
			skipping := true

			for r := range s.seq {
				if skipping && !predicate(r) {
					continue
				}

				skipping = false

				if !yield(r) {
					return
				}
			}
		},
	}
}

// Limit keeps records up to and including the first one that matches stop.
// No record after it is read, so a Stream ending with Limit does not wait once stop matched.
func (s Stream[T]) Limit(stop func(recordstream.Record[T]) bool) Stream[T] {
	if stop == nil {
		panic(recordstream.ErrNilPredicate)
	}

	return Stream[T]{
		seq: func(yield func(recordstream.Record[T]) bool) {
			for r := range s.seq {
				if !yield(r) || stop(r) {
					return
				}
			}
		},
	}
}

// LimitN keeps at most the first n records. With n <= 0 no record is read.
func (s Stream[T]) LimitN(n int) Stream[T] {
	return Stream[T]{
		seq: func(yield func(recordstream.Record[T]) bool) {
			if n <= 0 {
				return
			}

			taken := 0
			for r := range s.seq {
				taken++
				if !yield(r) || taken >= n {
					return
				}
			}
		},
	}
}
