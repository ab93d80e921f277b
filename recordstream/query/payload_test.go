package query_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/recordstream-go/recordstream"
	"github.com/AntonStoeckl/recordstream-go/recordstream/query"
	"github.com/AntonStoeckl/recordstream-go/recordstream/recordvalue"
	"github.com/AntonStoeckl/recordstream-go/testutil/recordstream/fixtures"
)

func Test_PayloadFilters_OnProcessInstanceRecords(t *testing.T) {
	// arrange
	producer := fixtures.NewProducer(1)
	firstKey, first := producer.CompletedProcessInstance("first")
	_, second := producer.CompletedProcessInstance("second")
	store := givenStoreWith(t, append(first, second...)...)
	ctx := context.Background()

	// act
	ofFirst := query.WithProcessInstanceKey(query.ProcessInstanceRecords(ctx, store), firstKey).Count()
	ofSecond := query.WithBpmnProcessID(query.ProcessInstanceRecords(ctx, store), "second").Count()
	taskCompleted := query.WithElementID(query.ProcessInstanceRecords(ctx, store), "task").
		WithIntent(recordstream.IntentElementCompleted).
		Count()
	startEvents := query.WithElementType(query.ProcessInstanceRecords(ctx, store), recordvalue.BpmnElementTypeStartEvent).Count()
	rootScope := query.FilterRootScope(query.ProcessInstanceRecords(ctx, store)).Count()

	// assert
	assert.Equal(t, len(first), ofFirst)
	assert.Equal(t, len(second), ofSecond)
	assert.Equal(t, 2, taskCompleted)
	assert.Equal(t, 8, startEvents, "four lifecycle records per start event")
	assert.Equal(t, len(first)+len(second), rootScope, "all elements of the fixture are in the root scope")
}

func Test_PayloadFilters_OnOtherValueTypes(t *testing.T) {
	// arrange
	producer := fixtures.NewProducer(1)
	processInstanceKey, records := producer.TerminatedProcessInstance("process")
	jobKey := producer.NewKey()

	records = append(records,
		producer.Event(jobKey, recordstream.IntentCreated, fixtures.Job(processInstanceKey, "payment")),
		producer.Event(producer.NewKey(), recordstream.IntentCreated, fixtures.Job(processInstanceKey, "shipping")),
		producer.Event(producer.NewKey(), recordstream.IntentCreated, fixtures.Variable(processInstanceKey, processInstanceKey, "amount", "42")),
		producer.Event(producer.NewKey(), recordstream.IntentCreated, fixtures.Variable(processInstanceKey, 7, "amount", "1")),
		producer.Event(producer.NewKey(), recordstream.IntentCreated, recordvalue.Incident{
			ErrorType:          recordvalue.ErrorTypeJobNoRetries,
			ProcessInstanceKey: processInstanceKey,
			ElementInstanceKey: 99,
			JobKey:             jobKey,
		}),
		producer.Event(producer.NewKey(), recordstream.IntentCreated, recordvalue.MessageSubscription{
			ProcessInstanceKey: processInstanceKey,
			MessageName:        "order-paid",
			CorrelationKey:     "order-1",
		}),
		producer.Event(producer.NewKey(), recordstream.IntentCreated, recordvalue.Timer{
			ProcessInstanceKey: processInstanceKey,
			ElementInstanceKey: 99,
			TargetElementID:    "wait",
		}),
		producer.Event(producer.NewKey(), recordstream.IntentCreated, recordvalue.Deployment{
			ProcessesMetadata: []recordvalue.ProcessMetadata{{BpmnProcessID: "process", Version: 1}},
		}),
	)
	store := givenStoreWith(t, records...)
	ctx := context.Background()

	// act + assert
	payment, found := query.WithJobType(query.JobRecords(ctx, store), "payment").First()
	require.True(t, found)
	assert.Equal(t, jobKey, payment.Key)

	assert.Equal(t, 2, query.WithProcessInstanceKey(query.JobRecords(ctx, store), processInstanceKey).Count())
	assert.Equal(t, 2, query.WithVariableName(query.VariableRecords(ctx, store), "amount").Count())
	assert.Equal(t, 1, query.WithScopeKey(query.VariableRecords(ctx, store), 7).Count())
	assert.Equal(t, 1, query.WithErrorType(query.IncidentRecords(ctx, store), recordvalue.ErrorTypeJobNoRetries).Count())
	assert.Equal(t, 1, query.WithElementInstanceKey(query.IncidentRecords(ctx, store), 99).Count())
	assert.Equal(t, 1, query.WithMessageName(query.MessageSubscriptionRecords(ctx, store), "order-paid").Count())
	assert.Equal(t, 0, query.WithCorrelationKey(query.MessageSubscriptionRecords(ctx, store), "order-2").Count())
	assert.Equal(t, 1, query.WithElementID(query.TimerRecords(ctx, store), "wait").Count())
	assert.Equal(t, 1, query.WithElementInstanceKey(query.TimerRecords(ctx, store), 99).Count())
	assert.True(t, query.WithDeployedProcess(query.DeploymentRecords(ctx, store), "process").Exists())
}

func Test_EnvelopeFilters(t *testing.T) {
	// arrange
	producer := fixtures.NewProducer(3)
	processInstanceKey, records := producer.TerminatedProcessInstance("process")
	rejection := producer.Reject(records[3], recordstream.RejectionTypeInvalidState, "already terminating")
	store := givenStoreWith(t, append(records, rejection)...)
	ctx := context.Background()
	all := func() query.Stream[recordstream.RecordValue] { return query.Records(ctx, store) }

	// act + assert
	assert.Equal(t, 2, all().OnlyCommands().Count())
	assert.Equal(t, 4, all().OnlyEvents().Count())
	assert.Equal(t, 1, all().OnlyCommandRejections().Count())
	assert.Equal(t, 1, all().WithRejectionType(recordstream.RejectionTypeInvalidState).Count())
	assert.Equal(t, 1, all().WithRejectionReason("already terminating").Count())
	assert.Equal(t, 2, all().WithIntents(recordstream.IntentElementActivating, recordstream.IntentElementActivated).Count())
	assert.Equal(t, 0, all().WithIntents().Count())
	assert.Equal(t, len(records)+1, all().WithValueType(recordstream.ValueTypeProcessInstance).Count())
	assert.Equal(t, 0, all().WithValueTypes(recordstream.ValueTypeJob, recordstream.ValueTypeTimer).Count())
	assert.Equal(t, len(records)+1, all().WithPartitionID(3).Count())
	assert.Equal(t, len(records)+1, all().WithRecordKey(processInstanceKey).Count())
	assert.Equal(t, 1, all().WithPosition(records[2].Position).Count())
	assert.Equal(t, 2, all().WithSourceRecordPosition(records[0].Position).Count())
	assert.Equal(t, 1, all().WithTimestamp(records[0].Timestamp).WithPosition(records[0].Position).Count())

	filter := recordstream.BuildRecordFilter().
		OfRecordTypes(recordstream.Event).
		Matching().
		AnyIntentOf(recordstream.IntentElementTerminating, recordstream.IntentElementTerminated).
		Finalize()
	assert.Equal(t, 2, all().WithFilter(filter).Count())
}
