package recordvalue

import (
	"time"

	"github.com/AntonStoeckl/recordstream-go/recordstream"
)

// Timer is the payload of records about a scheduled timer event.
type Timer struct {
	ProcessDefinitionKey int64
	ProcessInstanceKey   int64
	ElementInstanceKey   int64
	TargetElementID      string
	DueDate              time.Time
	Repetitions          int32
}

func (Timer) ValueType() recordstream.ValueType {
	return recordstream.ValueTypeTimer
}

func (v Timer) DeepCopy() recordstream.RecordValue {
	return v
}

func (v Timer) GetProcessInstanceKey() int64 {
	return v.ProcessInstanceKey
}

func (v Timer) GetElementInstanceKey() int64 {
	return v.ElementInstanceKey
}

// GetElementID returns the id of the element the timer belongs to.
func (v Timer) GetElementID() string {
	return v.TargetElementID
}
