package recordvalue

import (
	"github.com/AntonStoeckl/recordstream-go/recordstream"
)

// MessageSubscription is the payload of records about a process instance waiting for a message.
//
// Variables holds a decoded JSON document; MessageSubscription is copied with a JSON round trip.
type MessageSubscription struct {
	ProcessInstanceKey int64
	ElementInstanceKey int64
	BpmnProcessID      string
	MessageName        string
	CorrelationKey     string
	MessageKey         int64
	Interrupting       bool
	Variables          map[string]any
}

func (MessageSubscription) ValueType() recordstream.ValueType {
	return recordstream.ValueTypeMessageSubscription
}

func (v MessageSubscription) GetProcessInstanceKey() int64 {
	return v.ProcessInstanceKey
}

func (v MessageSubscription) GetBpmnProcessID() string {
	return v.BpmnProcessID
}

func (v MessageSubscription) GetElementInstanceKey() int64 {
	return v.ElementInstanceKey
}
