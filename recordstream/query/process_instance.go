package query

import (
	"github.com/AntonStoeckl/recordstream-go/recordstream"
	"github.com/AntonStoeckl/recordstream-go/recordstream/recordvalue"
)

// LimitToProcessInstance keeps records up to and including the one that completes or terminates
// the process instance with the given key.
func (s Stream[T]) LimitToProcessInstance(processInstanceKey int64) Stream[T] {
	return s.Limit(func(r recordstream.Record[T]) bool {
		return isProcessInstanceEnd(r.Metadata, processInstanceKey)
	})
}

// BetweenProcessInstance keeps the records from the activation of the process instance with the
// given key up to and including its completion or termination.
func (s Stream[T]) BetweenProcessInstance(processInstanceKey int64) Stream[T] {
	return s.BetweenFunc(
		func(r recordstream.Record[T]) bool {
			return isProcessInstanceRecord(r.Metadata, processInstanceKey) &&
				r.Intent == recordstream.IntentElementActivating
		},
		func(r recordstream.Record[T]) bool {
			return isProcessInstanceEnd(r.Metadata, processInstanceKey)
		},
	)
}

// LimitToProcessInstanceCompleted keeps records up to and including the first completion of a
// process element, i.e. of any process instance.
func (s Stream[T]) LimitToProcessInstanceCompleted() Stream[T] {
	return s.Limit(func(r recordstream.Record[T]) bool {
		value, ok := any(r.Value).(recordvalue.ProcessInstance)

		return ok && r.IsEvent() &&
			r.Intent == recordstream.IntentElementCompleted &&
			value.BpmnElementType == recordvalue.BpmnElementTypeProcess
	})
}

func isProcessInstanceRecord(m recordstream.Metadata, processInstanceKey int64) bool {
	return m.ValueType == recordstream.ValueTypeProcessInstance && m.Key == processInstanceKey
}

func isProcessInstanceEnd(m recordstream.Metadata, processInstanceKey int64) bool {
	return isProcessInstanceRecord(m, processInstanceKey) &&
		(m.Intent == recordstream.IntentElementCompleted || m.Intent == recordstream.IntentElementTerminated)
}
