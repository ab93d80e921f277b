package recordexport

import (
	"errors"
	"io"

	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/recordstream-go/recordstream"
)

var jsonAPI = jsoniter.ConfigCompatibleWithStandardLibrary

// Snapshotter is implemented by record stores that can hand out their captured records.
type Snapshotter interface {
	Snapshot() recordstream.CapturedRecords
}

// WriteJSONLines writes the records in order, one JSON document per line.
func WriteJSONLines(w io.Writer, records recordstream.CapturedRecords) error {
	exported, buildErr := recordstream.BuildExportedRecords(records)
	if buildErr != nil {
		return buildErr
	}

	encoder := jsonAPI.NewEncoder(w)
	for _, e := range exported {
		if err := encoder.Encode(e); err != nil {
			return errors.Join(recordstream.ErrExportingRecordsFailed, err)
		}
	}

	return nil
}

// WriteSnapshotJSONLines writes a snapshot of the store as JSON lines.
func WriteSnapshotJSONLines(w io.Writer, store Snapshotter) error {
	return WriteJSONLines(w, store.Snapshot())
}

// ReadJSONLines reads records written by WriteJSONLines.
func ReadJSONLines(r io.Reader) ([]recordstream.ExportedRecord, error) {
	decoder := jsonAPI.NewDecoder(r)

	var exported []recordstream.ExportedRecord
	for decoder.More() {
		var e recordstream.ExportedRecord
		if err := decoder.Decode(&e); err != nil {
			return nil, err
		}

		if err := e.Validate(); err != nil {
			return nil, err
		}

		exported = append(exported, e)
	}

	return exported, nil
}
