package fixtures

import (
	"github.com/AntonStoeckl/recordstream-go/recordstream"
	"github.com/AntonStoeckl/recordstream-go/recordstream/recordvalue"
)

// Producer builds records for one partition with ascending positions and partition-encoded keys.
// It is not safe for concurrent use.
type Producer struct {
	partitionID  int32
	nextPosition int64
	nextKey      int64
}

// NewProducer creates a Producer for the given partition, starting at position 1.
func NewProducer(partitionID int32) *Producer {
	return &Producer{
		partitionID:  partitionID,
		nextPosition: 1,
		nextKey:      1,
	}
}

// NewKey returns the next unused key of the partition.
func (p *Producer) NewKey() int64 {
	key := recordstream.EncodePartitionID(p.partitionID, p.nextKey)
	p.nextKey++

	return key
}

// Command builds a command record with the given key.
func (p *Producer) Command(key int64, intent recordstream.Intent, value recordstream.RecordValue) recordstream.CapturedRecord {
	return p.build(key, recordstream.Command, intent, value)
}

// Event builds an event record with the given key.
func (p *Producer) Event(key int64, intent recordstream.Intent, value recordstream.RecordValue) recordstream.CapturedRecord {
	return p.build(key, recordstream.Event, intent, value)
}

// FollowUp builds an event caused by the given record, keeping its key.
func (p *Producer) FollowUp(
	cause recordstream.CapturedRecord,
	intent recordstream.Intent,
	value recordstream.RecordValue,
) recordstream.CapturedRecord {

	return p.Event(cause.Key, intent, value).CausedBy(cause.Metadata)
}

// Reject builds the rejection of the given command.
func (p *Producer) Reject(
	command recordstream.CapturedRecord,
	rejectionType recordstream.RejectionType,
	reason string,
) recordstream.CapturedRecord {

	position := p.nextPosition
	p.nextPosition++

	return recordstream.BuildRejection(command, position, rejectionType, reason)
}

func (p *Producer) build(
	key int64,
	recordType recordstream.RecordType,
	intent recordstream.Intent,
	value recordstream.RecordValue,
) recordstream.CapturedRecord {

	position := p.nextPosition
	p.nextPosition++

	record, err := recordstream.BuildRecord(p.partitionID, position, key, recordType, intent, value)
	if err != nil {
		panic(err)
	}

	return record
}

// ProcessInstanceElement builds the payload for an element of the given process instance.
func ProcessInstanceElement(
	processInstanceKey int64,
	bpmnProcessID string,
	elementID string,
	elementType recordvalue.BpmnElementType,
	flowScopeKey int64,
) recordvalue.ProcessInstance {

	return recordvalue.ProcessInstance{
		BpmnProcessID:            bpmnProcessID,
		Version:                  1,
		ProcessDefinitionKey:     1,
		ProcessInstanceKey:       processInstanceKey,
		ElementID:                elementID,
		FlowScopeKey:             flowScopeKey,
		BpmnElementType:          elementType,
		ParentProcessInstanceKey: recordvalue.NoParent,
		ParentElementInstanceKey: recordvalue.NoParent,
	}
}

// CompletedProcessInstance builds the records of a process instance that runs through
// start event, one service task and end event and then completes.
//
// The lifecycle of the process element is: ACTIVATE_ELEMENT command, ELEMENT_ACTIVATING,
// ELEMENT_ACTIVATED, the child elements, ELEMENT_COMPLETING and ELEMENT_COMPLETED.
func (p *Producer) CompletedProcessInstance(bpmnProcessID string) (processInstanceKey int64, records recordstream.CapturedRecords) {
	processInstanceKey = p.NewKey()
	process := ProcessInstanceElement(processInstanceKey, bpmnProcessID, bpmnProcessID,
		recordvalue.BpmnElementTypeProcess, -1)

	activate := p.Command(processInstanceKey, recordstream.IntentActivateElement, process)
	records = append(records,
		activate,
		p.FollowUp(activate, recordstream.IntentElementActivating, process),
		p.FollowUp(activate, recordstream.IntentElementActivated, process),
	)

	for _, child := range []struct {
		id          string
		elementType recordvalue.BpmnElementType
	}{
		{"start", recordvalue.BpmnElementTypeStartEvent},
		{"task", recordvalue.BpmnElementTypeServiceTask},
		{"end", recordvalue.BpmnElementTypeEndEvent},
	} {
		value := ProcessInstanceElement(processInstanceKey, bpmnProcessID, child.id, child.elementType, processInstanceKey)
		key := p.NewKey()
		records = append(records,
			p.Event(key, recordstream.IntentElementActivating, value),
			p.Event(key, recordstream.IntentElementActivated, value),
			p.Event(key, recordstream.IntentElementCompleting, value),
			p.Event(key, recordstream.IntentElementCompleted, value),
		)
	}

	records = append(records,
		p.Event(processInstanceKey, recordstream.IntentElementCompleting, process),
		p.Event(processInstanceKey, recordstream.IntentElementCompleted, process),
	)

	return processInstanceKey, records
}

// TerminatedProcessInstance builds the records of a process instance that is activated and then canceled.
func (p *Producer) TerminatedProcessInstance(bpmnProcessID string) (processInstanceKey int64, records recordstream.CapturedRecords) {
	processInstanceKey = p.NewKey()
	process := ProcessInstanceElement(processInstanceKey, bpmnProcessID, bpmnProcessID,
		recordvalue.BpmnElementTypeProcess, -1)

	activate := p.Command(processInstanceKey, recordstream.IntentActivateElement, process)
	terminate := p.Command(processInstanceKey, recordstream.IntentTerminateElement, process)
	records = append(records,
		activate,
		p.FollowUp(activate, recordstream.IntentElementActivating, process),
		p.FollowUp(activate, recordstream.IntentElementActivated, process),
		terminate,
		p.FollowUp(terminate, recordstream.IntentElementTerminating, process),
		p.FollowUp(terminate, recordstream.IntentElementTerminated, process),
	)

	return processInstanceKey, records
}

// Job builds a job payload for the given process instance.
func Job(processInstanceKey int64, jobType string) recordvalue.Job {
	return recordvalue.Job{
		Type:               jobType,
		Retries:            3,
		CustomHeaders:      map[string]string{},
		Variables:          map[string]any{},
		ProcessInstanceKey: processInstanceKey,
		ElementID:          "task",
	}
}

// Variable builds a variable payload for the given scope.
func Variable(processInstanceKey, scopeKey int64, name, jsonValue string) recordvalue.Variable {
	return recordvalue.Variable{
		Name:               name,
		Value:              jsonValue,
		ScopeKey:           scopeKey,
		ProcessInstanceKey: processInstanceKey,
	}
}
