package recordstream

import (
	"errors"
	"reflect"

	jsoniter "github.com/json-iterator/go"
)

var jsonAPI = jsoniter.ConfigCompatibleWithStandardLibrary

// DeepCopier is implemented by payloads that know how to copy themselves.
// The returned value must not share mutable state with the receiver.
type DeepCopier interface {
	DeepCopy() RecordValue
}

// CopyValue returns a copy of value that does not share mutable state with it.
//
// Payloads implementing DeepCopier are copied with DeepCopy. All others are copied with a JSON
// round trip into a fresh value of the same concrete type, so their state must be fully
// represented by their exported fields.
func CopyValue(value RecordValue) (RecordValue, error) {
	if isNilValue(value) {
		return nil, ErrNilRecordValue
	}

	if copier, ok := value.(DeepCopier); ok {
		return copier.DeepCopy(), nil
	}

	raw, marshalErr := jsonAPI.Marshal(value)
	if marshalErr != nil {
		return nil, errors.Join(ErrCopyingValueFailed, marshalErr)
	}

	valueType := reflect.TypeOf(value)

	if valueType.Kind() == reflect.Pointer {
		target := reflect.New(valueType.Elem())
		if unmarshalErr := jsonAPI.Unmarshal(raw, target.Interface()); unmarshalErr != nil {
			return nil, errors.Join(ErrCopyingValueFailed, unmarshalErr)
		}

		return target.Interface().(RecordValue), nil //nolint:forcetypeassert
	}

	target := reflect.New(valueType)
	if unmarshalErr := jsonAPI.Unmarshal(raw, target.Interface()); unmarshalErr != nil {
		return nil, errors.Join(ErrCopyingValueFailed, unmarshalErr)
	}

	return target.Elem().Interface().(RecordValue), nil //nolint:forcetypeassert
}

// isNilValue reports whether value is nil or a nil pointer wrapped in the interface.
func isNilValue(value RecordValue) bool {
	if value == nil {
		return true
	}

	rv := reflect.ValueOf(value)

	return rv.Kind() == reflect.Pointer && rv.IsNil()
}

// CopyRecord returns a copy of the record whose payload does not share mutable state with the original.
func CopyRecord(r CapturedRecord) (CapturedRecord, error) {
	return r.Copy()
}
