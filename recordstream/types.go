package recordstream

import (
	"errors"
)

var ErrUnknownRecordType = errors.New("unknown record type")

// RecordType tags whether a record is an intent to act, a fact that occurred, or a refusal.
type RecordType int

const (
	// Command is a request to change state. It may be followed by events or by a rejection.
	Command RecordType = iota + 1

	// Event is a fact that occurred while processing a command.
	Event

	// CommandRejection is written instead of events when a command could not be processed.
	CommandRejection
)

const (
	recordTypeCommand          = "COMMAND"
	recordTypeEvent            = "EVENT"
	recordTypeCommandRejection = "COMMAND_REJECTION"
	recordTypeUnknown          = "UNKNOWN"
)

// String provides a string representation of RecordType for logging and export.
func (rt RecordType) String() string {
	switch rt {
	case Command:
		return recordTypeCommand
	case Event:
		return recordTypeEvent
	case CommandRejection:
		return recordTypeCommandRejection
	default:
		return recordTypeUnknown
	}
}

// MarshalText implements encoding.TextMarshaler so exported records carry readable record types.
func (rt RecordType) MarshalText() ([]byte, error) {
	return []byte(rt.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (rt *RecordType) UnmarshalText(text []byte) error {
	switch string(text) {
	case recordTypeCommand:
		*rt = Command
	case recordTypeEvent:
		*rt = Event
	case recordTypeCommandRejection:
		*rt = CommandRejection
	default:
		return errors.Join(ErrUnknownRecordType, errors.New(string(text)))
	}

	return nil
}

// ValueType identifies the schema of a record's payload.
type ValueType string

const (
	ValueTypeProcessInstance     ValueType = "PROCESS_INSTANCE"
	ValueTypeJob                 ValueType = "JOB"
	ValueTypeVariable            ValueType = "VARIABLE"
	ValueTypeIncident            ValueType = "INCIDENT"
	ValueTypeTimer               ValueType = "TIMER"
	ValueTypeMessageSubscription ValueType = "MESSAGE_SUBSCRIPTION"
	ValueTypeDeployment          ValueType = "DEPLOYMENT"
)

// Intent identifies the state transition a record represents. Intent names are only unique
// together with the ValueType of the record.
type Intent string

// Process instance intents.
const (
	IntentActivateElement    Intent = "ACTIVATE_ELEMENT"
	IntentCompleteElement    Intent = "COMPLETE_ELEMENT"
	IntentTerminateElement   Intent = "TERMINATE_ELEMENT"
	IntentElementActivating  Intent = "ELEMENT_ACTIVATING"
	IntentElementActivated   Intent = "ELEMENT_ACTIVATED"
	IntentElementCompleting  Intent = "ELEMENT_COMPLETING"
	IntentElementCompleted   Intent = "ELEMENT_COMPLETED"
	IntentElementTerminating Intent = "ELEMENT_TERMINATING"
	IntentElementTerminated  Intent = "ELEMENT_TERMINATED"
	IntentSequenceFlowTaken  Intent = "SEQUENCE_FLOW_TAKEN"
)

// Intents shared by most other value types.
const (
	IntentCreate     Intent = "CREATE"
	IntentCreated    Intent = "CREATED"
	IntentUpdate     Intent = "UPDATE"
	IntentUpdated    Intent = "UPDATED"
	IntentComplete   Intent = "COMPLETE"
	IntentCompleted  Intent = "COMPLETED"
	IntentFail       Intent = "FAIL"
	IntentFailed     Intent = "FAILED"
	IntentTimedOut   Intent = "TIMED_OUT"
	IntentResolve    Intent = "RESOLVE"
	IntentResolved   Intent = "RESOLVED"
	IntentTrigger    Intent = "TRIGGER"
	IntentTriggered  Intent = "TRIGGERED"
	IntentCancel     Intent = "CANCEL"
	IntentCanceled   Intent = "CANCELED"
	IntentCorrelate  Intent = "CORRELATE"
	IntentCorrelated Intent = "CORRELATED"
	IntentDelete     Intent = "DELETE"
	IntentDeleted    Intent = "DELETED"
)

// RejectionType classifies why a command was rejected. It is empty on non-rejection records.
type RejectionType string

const (
	RejectionTypeNone             RejectionType = ""
	RejectionTypeInvalidArgument  RejectionType = "INVALID_ARGUMENT"
	RejectionTypeNotFound         RejectionType = "NOT_FOUND"
	RejectionTypeAlreadyExists    RejectionType = "ALREADY_EXISTS"
	RejectionTypeInvalidState     RejectionType = "INVALID_STATE"
	RejectionTypeProcessingError  RejectionType = "PROCESSING_ERROR"
	RejectionTypeUnauthorized     RejectionType = "UNAUTHORIZED"
	RejectionTypeExceededBatchMax RejectionType = "EXCEEDED_BATCH_RECORD_SIZE"
)
