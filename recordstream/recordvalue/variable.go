package recordvalue

import (
	"github.com/AntonStoeckl/recordstream-go/recordstream"
)

// Variable is the payload of records about a process variable. Value is the JSON encoded variable value.
type Variable struct {
	Name                 string
	Value                string
	ScopeKey             int64
	ProcessInstanceKey   int64
	ProcessDefinitionKey int64
	BpmnProcessID        string
	TenantID             string
}

func (Variable) ValueType() recordstream.ValueType {
	return recordstream.ValueTypeVariable
}

func (v Variable) DeepCopy() recordstream.RecordValue {
	return v
}

func (v Variable) GetProcessInstanceKey() int64 {
	return v.ProcessInstanceKey
}

func (v Variable) GetBpmnProcessID() string {
	return v.BpmnProcessID
}
