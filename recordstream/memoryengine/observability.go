package memoryengine

import (
	"context"
	"math"
	"strconv"
	"time"

	"github.com/AntonStoeckl/recordstream-go/recordstream"
)

const (
	logMsgOperation              = "recordstream operation: "
	logMsgRecordAppended         = "record appended"
	logMsgStoreReset             = "store reset"
	logMsgMaxWaitTimeChanged     = "max wait time changed"
	logMsgAutoAcknowledgeChanged = "auto acknowledge changed"
	logMsgCopyValueFailed        = "failed to copy record value"
	logMsgCursorExhausted        = "cursor exhausted"
	logMsgCursorInterrupted      = "cursor wait interrupted"
	logAttrError                 = "error"
	logAttrIndex                 = "index"
	logAttrPosition              = "position"
	logAttrPartitionID           = "partition_id"
	logAttrRecordType            = "record_type"
	logAttrValueType             = "value_type"
	logAttrIntent                = "intent"
	logAttrClearedCount          = "cleared_count"
	logAttrDurationMS            = "duration_ms"
	logAttrCursorID              = "cursor_id"
	logAttrReason                = "reason"
	logAttrMaxWaitTimeMS         = "max_wait_time_ms"
	logAttrAutoAcknowledge       = "auto_acknowledge"

	metricAppendTotal        = "recordstream_append_total"
	metricAppendDuration     = "recordstream_append_duration_seconds"
	metricRecordsCaptured    = "recordstream_records_captured"
	metricCursorWaitDuration = "recordstream_cursor_wait_duration_seconds"
	metricCursorExhausted    = "recordstream_cursor_exhausted_total"
	metricResetTotal         = "recordstream_reset_total"
	metricErrors             = "recordstream_errors_total"

	spanNameAppend       = "recordstream.append"
	spanNameReset        = "recordstream.reset"
	spanAttrOperation    = "operation"
	spanAttrValueType    = "value_type"
	spanAttrIntent       = "intent"
	spanAttrRecordType   = "record_type"
	spanAttrPartitionID  = "partition_id"
	spanAttrPosition     = "position"
	spanAttrIndex        = "index"
	spanAttrClearedCount = "cleared_count"
	spanAttrDurationMS   = "duration_ms"
	spanAttrErrorType    = "error_type"
	labelStatus          = "status"
	labelReason          = "reason"

	operationAppend    = "append"
	operationReset     = "reset"
	operationAwait     = "await"
	operationRead      = "read"
	statusSuccess      = "success"
	statusError        = "error"
	errorTypeCopyValue = "copy_value"
	exhaustedByTimeout = "timeout"
	exhaustedByReset   = "reset"
)

// logOperation logs operational information at info level if a logger is configured.
func (s *Store) logOperation(action string, args ...any) {
	s.logOperationContext(context.Background(), action, args...)
}

// logOperationContext logs operational information at info level, preferring the contextual logger.
func (s *Store) logOperationContext(ctx context.Context, action string, args ...any) {
	if s.contextualLogger != nil {
		s.contextualLogger.InfoContext(ctx, logMsgOperation+action, args...)
		return
	}

	if s.logger != nil {
		s.logger.Info(logMsgOperation+action, args...)
	}
}

// logDebugContext logs development information at debug level, preferring the contextual logger.
func (s *Store) logDebugContext(ctx context.Context, message string, args ...any) {
	if s.contextualLogger != nil {
		s.contextualLogger.DebugContext(ctx, message, args...)
		return
	}

	if s.logger != nil {
		s.logger.Debug(message, args...)
	}
}

// logErrorContext logs error information at the error level, preferring the contextual logger.
func (s *Store) logErrorContext(ctx context.Context, message string, err error, args ...any) {
	allArgs := []any{logAttrError, err.Error()}
	allArgs = append(allArgs, args...)

	if s.contextualLogger != nil {
		s.contextualLogger.ErrorContext(ctx, message, allArgs...)
		return
	}

	if s.logger != nil {
		s.logger.Error(message, allArgs...)
	}
}

// toMilliseconds converts a time.Duration to float64 milliseconds with 3 decimal places.
func toMilliseconds(d time.Duration) float64 {
	return math.Round(float64(d.Nanoseconds())/1e6*1000) / 1000
}

func itoa(i int) string {
	return strconv.Itoa(i)
}

// recordAppendMetricsContext records the metrics of one successful append.
func (s *Store) recordAppendMetricsContext(
	ctx context.Context,
	record recordstream.CapturedRecord,
	captured int,
	duration time.Duration,
) {

	if s.metricsCollector == nil {
		return
	}

	s.incrementCounterContext(ctx, metricAppendTotal, map[string]string{
		spanAttrOperation:  operationAppend,
		labelStatus:        statusSuccess,
		spanAttrValueType:  string(record.ValueType),
		spanAttrRecordType: record.RecordType.String(),
	})
	s.recordDurationMetricsContext(ctx, metricAppendDuration, duration, operationAppend, statusSuccess)
	s.recordValueMetricsContext(ctx, metricRecordsCaptured, float64(captured), operationAppend, statusSuccess)
}

// recordErrorMetricsContext records error metrics with context if the collector supports it.
func (s *Store) recordErrorMetricsContext(ctx context.Context, operation, errorType string) {
	s.incrementCounterContext(ctx, metricErrors, map[string]string{
		spanAttrOperation: operation,
		labelStatus:       statusError,
		spanAttrErrorType: errorType,
	})
}

// incrementCounterContext increments a counter with context if the collector supports it.
func (s *Store) incrementCounterContext(ctx context.Context, metricName string, labels map[string]string) {
	if s.metricsCollector == nil {
		return
	}

	// Use context-aware method if available
	if contextualCollector, ok := s.metricsCollector.(recordstream.ContextualMetricsCollector); ok {
		contextualCollector.IncrementCounterContext(ctx, metricName, labels)
	} else {
		s.metricsCollector.IncrementCounter(metricName, labels)
	}
}

// recordDurationMetricsContext records duration metrics with context if the collector supports it.
func (s *Store) recordDurationMetricsContext(
	ctx context.Context,
	metricName string,
	duration time.Duration,
	operation, status string,
) {

	if s.metricsCollector == nil {
		return
	}

	labels := map[string]string{
		spanAttrOperation: operation,
		labelStatus:       status,
	}

	// Use context-aware method if available
	if contextualCollector, ok := s.metricsCollector.(recordstream.ContextualMetricsCollector); ok {
		contextualCollector.RecordDurationContext(ctx, metricName, duration, labels)
	} else {
		s.metricsCollector.RecordDuration(metricName, duration, labels)
	}
}

// recordValueMetricsContext records value metrics with context if the collector supports it.
func (s *Store) recordValueMetricsContext(
	ctx context.Context,
	metricName string,
	value float64,
	operation, status string,
) {

	if s.metricsCollector == nil {
		return
	}

	labels := map[string]string{
		spanAttrOperation: operation,
		labelStatus:       status,
	}

	// Use context-aware method if available
	if contextualCollector, ok := s.metricsCollector.(recordstream.ContextualMetricsCollector); ok {
		contextualCollector.RecordValueContext(ctx, metricName, value, labels)
	} else {
		s.metricsCollector.RecordValue(metricName, value, labels)
	}
}

// startTraceSpan starts a tracing span if the tracing collector is configured.
func (s *Store) startTraceSpan(
	ctx context.Context,
	name string,
	attrs map[string]string,
) (context.Context, recordstream.SpanContext) {

	if ctx == nil {
		ctx = context.Background()
	}

	if s.tracingCollector != nil {
		return s.tracingCollector.StartSpan(ctx, name, attrs)
	}

	return ctx, nil
}

// finishTraceSpan finishes a tracing span if the tracing collector is configured.
func (s *Store) finishTraceSpan(
	spanCtx recordstream.SpanContext,
	status string,
	attrs map[string]string,
) {

	if s.tracingCollector != nil && spanCtx != nil {
		s.tracingCollector.FinishSpan(spanCtx, status, attrs)
	}
}

// startAppendSpan starts a tracing span for append operations.
func (s *Store) startAppendSpan(
	ctx context.Context,
	record recordstream.CapturedRecord,
) (context.Context, recordstream.SpanContext) {

	spanAttrs := map[string]string{
		spanAttrOperation:   operationAppend,
		spanAttrRecordType:  record.RecordType.String(),
		spanAttrValueType:   string(record.ValueType),
		spanAttrIntent:      string(record.Intent),
		spanAttrPartitionID: strconv.FormatInt(int64(record.PartitionID), 10),
		spanAttrPosition:    strconv.FormatInt(record.Position, 10),
	}

	return s.startTraceSpan(ctx, spanNameAppend, spanAttrs)
}

// finishAppendSpanSuccess finishes a successful append span with the assigned store index.
func (s *Store) finishAppendSpanSuccess(span recordstream.SpanContext, index int, duration time.Duration) {
	if span != nil {
		span.SetStatus(statusSuccess)
		span.AddAttribute(spanAttrIndex, itoa(index))
		span.AddAttribute(spanAttrDurationMS, strconv.FormatFloat(toMilliseconds(duration), 'f', 3, 64))
	}

	s.finishTraceSpan(span, statusSuccess, map[string]string{spanAttrIndex: itoa(index)})
}

// finishSpanError finishes a span with error details.
func (s *Store) finishSpanError(span recordstream.SpanContext, errorType string) {
	if span != nil {
		span.SetStatus(statusError)
		span.AddAttribute(spanAttrErrorType, errorType)
	}

	s.finishTraceSpan(span, statusError, map[string]string{spanAttrErrorType: errorType})
}
