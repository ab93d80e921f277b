package recordvalue

import (
	"time"

	"github.com/AntonStoeckl/recordstream-go/recordstream"
)

// Job is the payload of records about a unit of work handed to a job worker.
//
// Variables holds a decoded JSON document; Job is copied with a JSON round trip.
type Job struct {
	Type                 string
	Worker               string
	Retries              int32
	Deadline             time.Time
	ErrorMessage         string
	ErrorCode            string
	CustomHeaders        map[string]string
	Variables            map[string]any
	BpmnProcessID        string
	ProcessDefinitionKey int64
	ProcessInstanceKey   int64
	ElementID            string
	ElementInstanceKey   int64
}

func (Job) ValueType() recordstream.ValueType {
	return recordstream.ValueTypeJob
}

func (v Job) GetProcessInstanceKey() int64 {
	return v.ProcessInstanceKey
}

func (v Job) GetBpmnProcessID() string {
	return v.BpmnProcessID
}

func (v Job) GetElementID() string {
	return v.ElementID
}

func (v Job) GetElementInstanceKey() int64 {
	return v.ElementInstanceKey
}
