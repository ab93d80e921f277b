package recordstream

import (
	"encoding/json"
	"errors"
	"time"

	jsoniter "github.com/json-iterator/go"
)

var (
	// ErrInvalidValueJSON is returned when the serialized payload of an exported record is malformed.
	ErrInvalidValueJSON = errors.New("exported record value json is not valid")

	// ErrEncodingValueFailed is returned when a payload cannot be serialized for export.
	ErrEncodingValueFailed = errors.New("encoding record value failed")
)

// ExportedRecord is the serialized form of a captured record, handed to diagnostics collaborators
// that render or persist a store snapshot outside the process.
type ExportedRecord struct {
	Index                int             `json:"index"`
	Key                  int64           `json:"key"`
	Position             int64           `json:"position"`
	PartitionID          int32           `json:"partitionId"`
	RecordType           RecordType      `json:"recordType"`
	ValueType            ValueType       `json:"valueType"`
	Intent               Intent          `json:"intent"`
	Timestamp            time.Time       `json:"timestamp"`
	SourceRecordPosition int64           `json:"sourceRecordPosition"`
	RejectionType        RejectionType   `json:"rejectionType,omitempty"`
	RejectionReason      string          `json:"rejectionReason,omitempty"`
	Value                json.RawMessage `json:"value"`
}

// Validate ensures the exported record carries a valid JSON payload.
func (e ExportedRecord) Validate() error {
	if !jsoniter.ConfigFastest.Valid(e.Value) {
		return ErrInvalidValueJSON
	}

	return nil
}

// BuildExportedRecord serializes a captured record found at the given store index.
func BuildExportedRecord(index int, r CapturedRecord) (ExportedRecord, error) {
	value, encodeErr := jsonAPI.Marshal(r.Value)
	if encodeErr != nil {
		return ExportedRecord{}, errors.Join(ErrEncodingValueFailed, encodeErr)
	}

	exported := ExportedRecord{
		Index:                index,
		Key:                  r.Key,
		Position:             r.Position,
		PartitionID:          r.PartitionID,
		RecordType:           r.RecordType,
		ValueType:            r.ValueType,
		Intent:               r.Intent,
		Timestamp:            r.Timestamp,
		SourceRecordPosition: r.SourceRecordPosition,
		RejectionType:        r.RejectionType,
		RejectionReason:      r.RejectionReason,
		Value:                value,
	}

	if err := exported.Validate(); err != nil {
		return ExportedRecord{}, err
	}

	return exported, nil
}

// BuildExportedRecords serializes a snapshot, keeping its order.
func BuildExportedRecords(records CapturedRecords) ([]ExportedRecord, error) {
	exported := make([]ExportedRecord, 0, len(records))

	for i, r := range records {
		e, err := BuildExportedRecord(i, r)
		if err != nil {
			return nil, err
		}

		exported = append(exported, e)
	}

	return exported, nil
}
