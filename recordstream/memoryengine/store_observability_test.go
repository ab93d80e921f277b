package memoryengine_test

import (
	"context"
	"log/slog"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/recordstream-go/recordstream"
	"github.com/AntonStoeckl/recordstream-go/recordstream/memoryengine"
	"github.com/AntonStoeckl/recordstream-go/testutil/observability/testdoubles"
	"github.com/AntonStoeckl/recordstream-go/testutil/recordstream/fixtures"
)

func Test_Observability_Store_WithLogger_LogsAppendsAndResets(t *testing.T) {
	// setup
	logHandler := testdoubles.NewLogHandlerSpy(false)
	store := givenStore(t, memoryengine.WithLogger(slog.New(logHandler)))
	_, records := fixtures.NewProducer(1).TerminatedProcessInstance("process")

	// act
	givenAppended(t, store, records...)
	store.Reset(context.Background())

	// assert
	assert.Equal(t, len(records), logHandler.CountLogsWithMessage("record appended"))
	assert.True(t,
		logHandler.HasDebugLogWithMessage("record appended").
			WithAttribute("index", "0").
			WithAttribute("position", strconv.FormatInt(records[0].Position, 10)).
			WithAttribute("value_type", string(recordstream.ValueTypeProcessInstance)).
			WithAttribute("intent", string(recordstream.IntentActivateElement)).
			Assert(), "should log the appended record",
	)
	assert.True(t,
		logHandler.HasInfoLogWithMessage("recordstream operation: store reset").
			WithAttribute("cleared_count", strconv.Itoa(len(records))).
			Assert(), "should log the reset with the number of cleared records",
	)
}

func Test_Observability_Store_WithLogger_LogsConfigurationChanges(t *testing.T) {
	logHandler := testdoubles.NewLogHandlerSpy(false)
	store := givenStore(t, memoryengine.WithLogger(slog.New(logHandler)))

	require.NoError(t, store.SetMaxWaitTime(250*time.Millisecond))
	store.SetAutoAcknowledge(false)

	assert.True(t,
		logHandler.HasInfoLogWithMessage("recordstream operation: max wait time changed").
			WithAttribute("max_wait_time_ms", "250").
			Assert(),
	)
	assert.True(t,
		logHandler.HasInfoLogWithMessage("recordstream operation: auto acknowledge changed").
			WithAttribute("auto_acknowledge", "false").
			Assert(),
	)
}

func Test_Observability_Store_WithLogger_LogsCursorExhaustion(t *testing.T) {
	logHandler := testdoubles.NewLogHandlerSpy(false)
	store := givenStore(t, memoryengine.WithLogger(slog.New(logHandler)), memoryengine.WithMaxWaitTime(10*time.Millisecond))

	assert.False(t, store.Cursor(context.Background(), 0).HasNext())

	assert.True(t,
		logHandler.HasDebugLogWithMessage("cursor exhausted").
			WithAttribute("reason", "timeout").
			WithAttributeKey("cursor_id").
			WithDurationMS().
			Assert(),
	)
}

func Test_Observability_Store_WithLogger_LogsCopyErrors(t *testing.T) {
	logHandler := testdoubles.NewLogHandlerSpy(false)
	store := givenStore(t, memoryengine.WithLogger(slog.New(logHandler)))
	record, err := recordstream.BuildRecord(1, 1, 1, recordstream.Event, recordstream.IntentCreated,
		uncopyablePayload{Updates: make(chan int)})
	require.NoError(t, err)

	assert.Error(t, store.Append(context.Background(), record))

	assert.True(t,
		logHandler.HasErrorLogWithMessage("failed to copy record value").
			WithAttributeKey("error").
			WithAttribute("value_type", string(recordstream.ValueTypeJob)).
			Assert(),
	)
}

func Test_Observability_Store_WithContextualLogger_TakesPrecedence(t *testing.T) {
	// setup
	logHandler := testdoubles.NewLogHandlerSpy(false)
	contextualLogger := testdoubles.NewContextualLoggerSpy(true)
	store := givenStore(t,
		memoryengine.WithLogger(slog.New(logHandler)),
		memoryengine.WithContextualLogger(contextualLogger),
	)
	_, records := fixtures.NewProducer(1).TerminatedProcessInstance("process")

	type ctxKey struct{}
	ctx := context.WithValue(context.Background(), ctxKey{}, "trace")

	// act
	require.NoError(t, store.Append(ctx, records[0]))
	store.Reset(ctx)

	// assert
	assert.Equal(t, 0, logHandler.GetRecordCount())
	assert.True(t, contextualLogger.HasDebugLog("record appended"))
	assert.True(t, contextualLogger.HasInfoLog("recordstream operation: store reset"))

	debugRecords := contextualLogger.GetRecords("debug")
	require.NotEmpty(t, debugRecords)
	assert.Equal(t, "trace", debugRecords[0].Context.Value(ctxKey{}), "the operation context should be passed on")
}

func Test_Observability_Store_WithMetrics_RecordsAppendMetrics(t *testing.T) {
	// setup
	metrics := testdoubles.NewMetricsCollectorSpy(true)
	store := givenStore(t, memoryengine.WithMetrics(metrics))
	_, records := fixtures.NewProducer(1).TerminatedProcessInstance("process")

	// act
	givenAppended(t, store, records...)

	// assert
	assert.Equal(t, len(records), metrics.CountCounterRecordsForMetric("recordstream_append_total"))
	assert.True(t,
		metrics.HasCounterRecordForMetric("recordstream_append_total").
			WithOperation("append").
			WithStatus("success").
			WithLabel("value_type", string(recordstream.ValueTypeProcessInstance)).
			WithLabel("record_type", "COMMAND").
			Assert(),
	)
	assert.Equal(t, len(records), metrics.CountDurationRecordsForMetric("recordstream_append_duration_seconds"))
	assert.True(t, metrics.HasValueRecordForMetric("recordstream_records_captured").WithOperation("append").Assert())

	values := metrics.GetValueRecords()
	require.NotEmpty(t, values)
	assert.Equal(t, float64(len(records)), values[len(values)-1].Value, "the last gauge value should be the store size")
	assert.True(t, values[len(values)-1].WithContext, "the context-aware method should be preferred")
}

func Test_Observability_Store_WithMetrics_RecordsResetsAndExhaustion(t *testing.T) {
	// setup
	metrics := testdoubles.NewMetricsCollectorSpy(true)
	store := givenStore(t, memoryengine.WithMetrics(metrics), memoryengine.WithMaxWaitTime(10*time.Millisecond))
	cursor := store.Cursor(context.Background(), 0)

	// act
	assert.False(t, cursor.HasNext())
	store.Reset(context.Background())
	assert.False(t, cursor.HasNext())

	// assert
	assert.True(t, metrics.HasCounterRecordForMetric("recordstream_reset_total").WithOperation("reset").Assert())
	assert.True(t,
		metrics.HasCounterRecordForMetric("recordstream_cursor_exhausted_total").
			WithOperation("await").
			WithLabel("reason", "timeout").
			Assert(),
	)
	assert.True(t,
		metrics.HasCounterRecordForMetric("recordstream_cursor_exhausted_total").
			WithLabel("reason", "reset").
			Assert(),
	)
	assert.True(t,
		metrics.HasDurationRecordForMetric("recordstream_cursor_wait_duration_seconds").
			WithStatus("timeout").
			Assert(),
	)
}

func Test_Observability_Store_WithMetrics_RecordsErrorMetrics(t *testing.T) {
	metrics := testdoubles.NewMetricsCollectorSpy(true)
	store := givenStore(t, memoryengine.WithMetrics(metrics))
	record, err := recordstream.BuildRecord(1, 1, 1, recordstream.Event, recordstream.IntentCreated,
		uncopyablePayload{Updates: make(chan int)})
	require.NoError(t, err)

	assert.Error(t, store.Append(context.Background(), record))

	assert.True(t,
		metrics.HasCounterRecordForMetric("recordstream_errors_total").
			WithOperation("append").
			WithStatus("error").
			WithErrorType("copy_value").
			Assert(),
	)
	assert.Equal(t, 0, metrics.CountCounterRecordsForMetric("recordstream_append_total"))
}

func Test_Observability_Store_WithTracing_RecordsSpans(t *testing.T) {
	// setup
	tracing := testdoubles.NewTracingCollectorSpy(true)
	store := givenStore(t, memoryengine.WithTracing(tracing))
	_, records := fixtures.NewProducer(2).TerminatedProcessInstance("process")

	// act
	givenAppended(t, store, records...)
	store.Reset(context.Background())

	// assert
	assert.Equal(t, len(records), tracing.CountSpanRecordsForName("recordstream.append"))
	assert.True(t,
		tracing.HasSpanRecordForName("recordstream.append").
			WithStartAttribute("operation", "append").
			WithStartAttribute("partition_id", "2").
			WithStartAttribute("intent", string(recordstream.IntentActivateElement)).
			WithStatus("success").
			WithEndAttribute("index", "0").
			WithSpanAttribute("index", "0").
			Assert(),
	)
	assert.True(t,
		tracing.HasSpanRecordForName("recordstream.reset").
			WithStatus("success").
			WithEndAttribute("cleared_count", strconv.Itoa(len(records))).
			Assert(),
	)
}

func Test_Observability_Store_WithTracing_RecordsErrorSpans(t *testing.T) {
	tracing := testdoubles.NewTracingCollectorSpy(true)
	store := givenStore(t, memoryengine.WithTracing(tracing))
	record, err := recordstream.BuildRecord(1, 1, 1, recordstream.Event, recordstream.IntentCreated,
		uncopyablePayload{Updates: make(chan int)})
	require.NoError(t, err)

	assert.Error(t, store.Append(context.Background(), record))

	assert.True(t,
		tracing.HasSpanRecordForName("recordstream.append").
			WithStatus("error").
			WithEndAttribute("error_type", "copy_value").
			WithSpanAttribute("error_type", "copy_value").
			Assert(),
	)
}
