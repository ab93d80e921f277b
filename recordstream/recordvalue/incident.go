package recordvalue

import (
	"github.com/AntonStoeckl/recordstream-go/recordstream"
)

// ErrorType classifies the cause of an incident.
type ErrorType string

const (
	ErrorTypeUnknown             ErrorType = "UNKNOWN"
	ErrorTypeIOMappingError      ErrorType = "IO_MAPPING_ERROR"
	ErrorTypeJobNoRetries        ErrorType = "JOB_NO_RETRIES"
	ErrorTypeConditionError      ErrorType = "CONDITION_ERROR"
	ErrorTypeExtractValueError   ErrorType = "EXTRACT_VALUE_ERROR"
	ErrorTypeCalledElementError  ErrorType = "CALLED_ELEMENT_ERROR"
	ErrorTypeUnhandledErrorEvent ErrorType = "UNHANDLED_ERROR_EVENT"
)

// Incident is the payload of records about a problem that blocks a process instance.
type Incident struct {
	ErrorType          ErrorType
	ErrorMessage       string
	BpmnProcessID      string
	ProcessInstanceKey int64
	ElementID          string
	ElementInstanceKey int64
	JobKey             int64
	VariableScopeKey   int64
}

func (Incident) ValueType() recordstream.ValueType {
	return recordstream.ValueTypeIncident
}

func (v Incident) DeepCopy() recordstream.RecordValue {
	return v
}

func (v Incident) GetProcessInstanceKey() int64 {
	return v.ProcessInstanceKey
}

func (v Incident) GetBpmnProcessID() string {
	return v.BpmnProcessID
}

func (v Incident) GetElementID() string {
	return v.ElementID
}

func (v Incident) GetElementInstanceKey() int64 {
	return v.ElementInstanceKey
}
