package recordvalue

import (
	"github.com/AntonStoeckl/recordstream-go/recordstream"
)

// BpmnElementType is the kind of BPMN element a process instance record is about.
type BpmnElementType string

const (
	BpmnElementTypeProcess            BpmnElementType = "PROCESS"
	BpmnElementTypeSubProcess         BpmnElementType = "SUB_PROCESS"
	BpmnElementTypeStartEvent         BpmnElementType = "START_EVENT"
	BpmnElementTypeEndEvent           BpmnElementType = "END_EVENT"
	BpmnElementTypeServiceTask        BpmnElementType = "SERVICE_TASK"
	BpmnElementTypeUserTask           BpmnElementType = "USER_TASK"
	BpmnElementTypeExclusiveGateway   BpmnElementType = "EXCLUSIVE_GATEWAY"
	BpmnElementTypeParallelGateway    BpmnElementType = "PARALLEL_GATEWAY"
	BpmnElementTypeIntermediateCatch  BpmnElementType = "INTERMEDIATE_CATCH_EVENT"
	BpmnElementTypeBoundaryEvent      BpmnElementType = "BOUNDARY_EVENT"
	BpmnElementTypeCallActivity       BpmnElementType = "CALL_ACTIVITY"
	BpmnElementTypeMultiInstanceBody  BpmnElementType = "MULTI_INSTANCE_BODY"
	BpmnElementTypeSequenceFlow       BpmnElementType = "SEQUENCE_FLOW"
	BpmnElementTypeEventBasedGateway  BpmnElementType = "EVENT_BASED_GATEWAY"
	BpmnElementTypeIntermediateThrow  BpmnElementType = "INTERMEDIATE_THROW_EVENT"
	BpmnElementTypeUnspecifiedElement BpmnElementType = "UNSPECIFIED"
)

// NoParent marks a process instance without a calling parent.
const NoParent int64 = -1

// ProcessInstance is the payload of records about a process instance and its element instances.
// The record key of such a record is the element instance key; for the process element itself
// it equals ProcessInstanceKey.
type ProcessInstance struct {
	BpmnProcessID            string
	Version                  int32
	ProcessDefinitionKey     int64
	ProcessInstanceKey       int64
	ElementID                string
	FlowScopeKey             int64
	BpmnElementType          BpmnElementType
	ParentProcessInstanceKey int64
	ParentElementInstanceKey int64
	TenantID                 string
}

func (ProcessInstance) ValueType() recordstream.ValueType {
	return recordstream.ValueTypeProcessInstance
}

// DeepCopy implements recordstream.DeepCopier; ProcessInstance holds no references.
func (v ProcessInstance) DeepCopy() recordstream.RecordValue {
	return v
}

func (v ProcessInstance) GetProcessInstanceKey() int64 {
	return v.ProcessInstanceKey
}

func (v ProcessInstance) GetBpmnProcessID() string {
	return v.BpmnProcessID
}

func (v ProcessInstance) GetElementID() string {
	return v.ElementID
}

func (v ProcessInstance) GetBpmnElementType() BpmnElementType {
	return v.BpmnElementType
}

// IsRootScope reports whether the record is about an element directly in the process scope,
// including the process itself.
func (v ProcessInstance) IsRootScope() bool {
	return v.FlowScopeKey == v.ProcessInstanceKey || v.BpmnElementType == BpmnElementTypeProcess
}
