package recordstream

import (
	"time"
)

// RecordValue is the payload of a record. Implementations live in the recordvalue package.
type RecordValue interface {
	ValueType() ValueType
}

// Metadata is the envelope of a record: every field except the payload.
type Metadata struct {
	Key                  int64
	Position             int64
	PartitionID          int32
	RecordType           RecordType
	ValueType            ValueType
	Intent               Intent
	Timestamp            time.Time
	SourceRecordPosition int64
	RejectionType        RejectionType
	RejectionReason      string
}

// Record is an immutable snapshot of one emitted command, event or command rejection.
//
// While its properties are exported, records should be built with the supplied factory methods:
//   - BuildRecord
//   - BuildRejection
type Record[T any] struct {
	Metadata
	Value T
}

// CapturedRecord is the heterogeneous form of a record as held by a record store.
type CapturedRecord = Record[RecordValue]

// CapturedRecords is an alias type for a slice of CapturedRecord.
type CapturedRecords = []CapturedRecord

// Identity identifies a record independent of its payload: positions are unique per partition.
type Identity struct {
	PartitionID int32
	Position    int64
}

// Identity returns the partition and position pair that identifies this record.
func (m Metadata) Identity() Identity {
	return Identity{PartitionID: m.PartitionID, Position: m.Position}
}

// IsCommand reports whether the record is a command.
func (m Metadata) IsCommand() bool {
	return m.RecordType == Command
}

// IsEvent reports whether the record is an event.
func (m Metadata) IsEvent() bool {
	return m.RecordType == Event
}

// IsRejection reports whether the record is a command rejection.
func (m Metadata) IsRejection() bool {
	return m.RecordType == CommandRejection
}

// HasSource reports whether the record was caused by another record.
func (m Metadata) HasSource() bool {
	return m.SourceRecordPosition != NoSourceRecordPosition
}

// BuildRecord is a factory method for CapturedRecord.
//
// The ValueType is taken from the payload, the timestamp is set to now and the record has no source.
// Returns ErrNilRecordValue if value is nil or a nil pointer.
func BuildRecord(
	partitionID int32,
	position int64,
	key int64,
	recordType RecordType,
	intent Intent,
	value RecordValue,
) (CapturedRecord, error) {

	if isNilValue(value) {
		return CapturedRecord{}, ErrNilRecordValue
	}

	return CapturedRecord{
		Metadata: Metadata{
			Key:                  key,
			Position:             position,
			PartitionID:          partitionID,
			RecordType:           recordType,
			ValueType:            value.ValueType(),
			Intent:               intent,
			Timestamp:            time.Now(),
			SourceRecordPosition: NoSourceRecordPosition,
		},
		Value: value,
	}, nil
}

// BuildRejection is a factory method for the rejection of a command.
//
// The rejection keeps key, intent and payload of the command and points back to it as its source.
func BuildRejection(
	command CapturedRecord,
	position int64,
	rejectionType RejectionType,
	reason string,
) CapturedRecord {

	rejection := command
	rejection.Position = position
	rejection.RecordType = CommandRejection
	rejection.Timestamp = time.Now()
	rejection.SourceRecordPosition = command.Position
	rejection.RejectionType = rejectionType
	rejection.RejectionReason = reason

	return rejection
}

// CausedBy returns a copy of the record with the source position set to the position of cause.
func (r Record[T]) CausedBy(cause Metadata) Record[T] {
	r.SourceRecordPosition = cause.Position
	return r
}

// Narrow re-types a captured record to its concrete payload type.
// It reports false if the payload is not of type T.
func Narrow[T RecordValue](r CapturedRecord) (Record[T], bool) {
	value, ok := r.Value.(T)
	if !ok {
		return Record[T]{}, false
	}

	return Record[T]{Metadata: r.Metadata, Value: value}, true
}

// Widen converts a typed record back to its captured form.
func Widen[T RecordValue](r Record[T]) CapturedRecord {
	return CapturedRecord{Metadata: r.Metadata, Value: r.Value}
}

// Is reports whether both records denote the same record, regardless of their payloads.
func (m Metadata) Is(other Metadata) bool {
	return m.Identity() == other.Identity()
}

// Copy returns the record with a payload that does not share mutable state with r.
// See CopyValue for how payloads are copied.
func (r Record[T]) Copy() (Record[T], error) {
	value, ok := any(r.Value).(RecordValue)
	if !ok {
		return Record[T]{}, ErrNilRecordValue
	}

	copied, copyErr := CopyValue(value)
	if copyErr != nil {
		return Record[T]{}, copyErr
	}

	typed, ok := copied.(T)
	if !ok {
		return Record[T]{}, ErrCopyingValueFailed
	}

	r.Value = typed

	return r, nil
}
