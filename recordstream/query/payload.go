package query

import (
	"github.com/AntonStoeckl/recordstream-go/recordstream"
	"github.com/AntonStoeckl/recordstream-go/recordstream/recordvalue"
)

// ProcessInstanceRelated is implemented by payloads that belong to a process instance.
type ProcessInstanceRelated interface {
	recordstream.RecordValue
	GetProcessInstanceKey() int64
}

// ProcessRelated is implemented by payloads that belong to a process definition.
type ProcessRelated interface {
	recordstream.RecordValue
	GetBpmnProcessID() string
}

// ElementRelated is implemented by payloads that belong to a BPMN element.
type ElementRelated interface {
	recordstream.RecordValue
	GetElementID() string
}

// ElementInstanceRelated is implemented by payloads that belong to an element instance.
type ElementInstanceRelated interface {
	recordstream.RecordValue
	GetElementInstanceKey() int64
}

// WithProcessInstanceKey keeps the records that belong to the given process instance.
func WithProcessInstanceKey[T ProcessInstanceRelated](s Stream[T], processInstanceKey int64) Stream[T] {
	return s.ValueFilter(func(v T) bool {
		return v.GetProcessInstanceKey() == processInstanceKey
	})
}

// WithBpmnProcessID keeps the records that belong to the process with the given id.
func WithBpmnProcessID[T ProcessRelated](s Stream[T], bpmnProcessID string) Stream[T] {
	return s.ValueFilter(func(v T) bool {
		return v.GetBpmnProcessID() == bpmnProcessID
	})
}

// WithElementID keeps the records about the BPMN element with the given id.
func WithElementID[T ElementRelated](s Stream[T], elementID string) Stream[T] {
	return s.ValueFilter(func(v T) bool {
		return v.GetElementID() == elementID
	})
}

// WithElementInstanceKey keeps the records about the given element instance.
func WithElementInstanceKey[T ElementInstanceRelated](s Stream[T], elementInstanceKey int64) Stream[T] {
	return s.ValueFilter(func(v T) bool {
		return v.GetElementInstanceKey() == elementInstanceKey
	})
}

// WithElementType keeps the records about elements of the given BPMN element type.
func WithElementType(
	s Stream[recordvalue.ProcessInstance],
	elementType recordvalue.BpmnElementType,
) Stream[recordvalue.ProcessInstance] {

	return s.ValueFilter(func(v recordvalue.ProcessInstance) bool {
		return v.BpmnElementType == elementType
	})
}

// FilterRootScope keeps the records about the process element and the elements directly inside it.
func FilterRootScope(s Stream[recordvalue.ProcessInstance]) Stream[recordvalue.ProcessInstance] {
	return s.ValueFilter(recordvalue.ProcessInstance.IsRootScope)
}

// WithJobType keeps the jobs of the given type.
func WithJobType(s Stream[recordvalue.Job], jobType string) Stream[recordvalue.Job] {
	return s.ValueFilter(func(v recordvalue.Job) bool {
		return v.Type == jobType
	})
}

// WithVariableName keeps the variables with the given name.
func WithVariableName(s Stream[recordvalue.Variable], name string) Stream[recordvalue.Variable] {
	return s.ValueFilter(func(v recordvalue.Variable) bool {
		return v.Name == name
	})
}

// WithScopeKey keeps the variables defined in the given scope.
func WithScopeKey(s Stream[recordvalue.Variable], scopeKey int64) Stream[recordvalue.Variable] {
	return s.ValueFilter(func(v recordvalue.Variable) bool {
		return v.ScopeKey == scopeKey
	})
}

// WithMessageName keeps the subscriptions for the given message name.
func WithMessageName(
	s Stream[recordvalue.MessageSubscription],
	messageName string,
) Stream[recordvalue.MessageSubscription] {

	return s.ValueFilter(func(v recordvalue.MessageSubscription) bool {
		return v.MessageName == messageName
	})
}

// WithCorrelationKey keeps the subscriptions with the given correlation key.
func WithCorrelationKey(
	s Stream[recordvalue.MessageSubscription],
	correlationKey string,
) Stream[recordvalue.MessageSubscription] {

	return s.ValueFilter(func(v recordvalue.MessageSubscription) bool {
		return v.CorrelationKey == correlationKey
	})
}

// WithErrorType keeps the incidents of the given error type.
func WithErrorType(s Stream[recordvalue.Incident], errorType recordvalue.ErrorType) Stream[recordvalue.Incident] {
	return s.ValueFilter(func(v recordvalue.Incident) bool {
		return v.ErrorType == errorType
	})
}

// WithDeployedProcess keeps the deployments that created a process with the given id.
func WithDeployedProcess(s Stream[recordvalue.Deployment], bpmnProcessID string) Stream[recordvalue.Deployment] {
	return s.ValueFilter(func(v recordvalue.Deployment) bool {
		return v.HasProcess(bpmnProcessID)
	})
}
