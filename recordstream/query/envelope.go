package query

import (
	"slices"
	"time"

	"github.com/AntonStoeckl/recordstream-go/recordstream"
)

// OnlyCommands keeps the commands.
func (s Stream[T]) OnlyCommands() Stream[T] {
	return s.WithRecordType(recordstream.Command)
}

// OnlyEvents keeps the events.
func (s Stream[T]) OnlyEvents() Stream[T] {
	return s.WithRecordType(recordstream.Event)
}

// OnlyCommandRejections keeps the command rejections.
func (s Stream[T]) OnlyCommandRejections() Stream[T] {
	return s.WithRecordType(recordstream.CommandRejection)
}

// WithRecordType keeps the records of the given record type.
func (s Stream[T]) WithRecordType(recordType recordstream.RecordType) Stream[T] {
	return s.metadataFilter(func(m recordstream.Metadata) bool {
		return m.RecordType == recordType
	})
}

// WithIntent keeps the records with the given intent.
func (s Stream[T]) WithIntent(intent recordstream.Intent) Stream[T] {
	return s.metadataFilter(func(m recordstream.Metadata) bool {
		return m.Intent == intent
	})
}

// WithIntents keeps the records with any of the given intents. No intents keep nothing.
func (s Stream[T]) WithIntents(intents ...recordstream.Intent) Stream[T] {
	intents = slices.Clone(intents)

	return s.metadataFilter(func(m recordstream.Metadata) bool {
		return slices.Contains(intents, m.Intent)
	})
}

// WithValueType keeps the records with the given value type.
func (s Stream[T]) WithValueType(valueType recordstream.ValueType) Stream[T] {
	return s.metadataFilter(func(m recordstream.Metadata) bool {
		return m.ValueType == valueType
	})
}

// WithValueTypes keeps the records with any of the given value types. No value types keep nothing.
func (s Stream[T]) WithValueTypes(valueTypes ...recordstream.ValueType) Stream[T] {
	valueTypes = slices.Clone(valueTypes)

	return s.metadataFilter(func(m recordstream.Metadata) bool {
		return slices.Contains(valueTypes, m.ValueType)
	})
}

// WithPartitionID keeps the records written on the given partition.
func (s Stream[T]) WithPartitionID(partitionID int32) Stream[T] {
	return s.metadataFilter(func(m recordstream.Metadata) bool {
		return m.PartitionID == partitionID
	})
}

// WithRecordKey keeps the records with the given key.
func (s Stream[T]) WithRecordKey(key int64) Stream[T] {
	return s.metadataFilter(func(m recordstream.Metadata) bool {
		return m.Key == key
	})
}

// WithPosition keeps the record at the given position, one per partition.
func (s Stream[T]) WithPosition(position int64) Stream[T] {
	return s.metadataFilter(func(m recordstream.Metadata) bool {
		return m.Position == position
	})
}

// WithSourceRecordPosition keeps the records caused by the record at the given position.
func (s Stream[T]) WithSourceRecordPosition(position int64) Stream[T] {
	return s.metadataFilter(func(m recordstream.Metadata) bool {
		return m.SourceRecordPosition == position
	})
}

// WithTimestamp keeps the records created at the given instant, regardless of location.
func (s Stream[T]) WithTimestamp(timestamp time.Time) Stream[T] {
	return s.metadataFilter(func(m recordstream.Metadata) bool {
		return m.Timestamp.Equal(timestamp)
	})
}

// WithRejectionType keeps the records with the given rejection type.
func (s Stream[T]) WithRejectionType(rejectionType recordstream.RejectionType) Stream[T] {
	return s.metadataFilter(func(m recordstream.Metadata) bool {
		return m.RejectionType == rejectionType
	})
}

// WithRejectionReason keeps the records with exactly the given rejection reason.
func (s Stream[T]) WithRejectionReason(reason string) Stream[T] {
	return s.metadataFilter(func(m recordstream.Metadata) bool {
		return m.RejectionReason == reason
	})
}

// WithFilter keeps the records matching a filter built with recordstream.BuildRecordFilter.
func (s Stream[T]) WithFilter(filter recordstream.Filter) Stream[T] {
	return s.metadataFilter(filter.Matches)
}
