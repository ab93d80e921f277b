package memoryengine

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/AntonStoeckl/recordstream-go/recordstream"
)

const (
	defaultMaxWaitTime     = 5 * time.Second
	defaultAutoAcknowledge = true
)

// Store is a thread-safe, append-only, in-memory sequence of captured records.
//
// A single mutex guards the records, the configuration and the channel that signals new data.
// Append and Reset hold it only long enough to mutate and signal; cursors hold it only while
// checking for data, never while the caller processes a returned record.
//
// Use NewStore to get the default configuration. The zero value is an empty store that does not wait
// (max wait time zero) and does not acknowledge.
type Store struct {
	mu          sync.Mutex
	records     recordstream.CapturedRecords
	generation  uint64
	dataChanged chan struct{}

	maxWaitTime            time.Duration
	autoAcknowledge        bool
	defaultMaxWaitTime     time.Duration
	defaultAutoAcknowledge bool

	acknowledger     Acknowledger
	logger           recordstream.Logger
	contextualLogger recordstream.ContextualLogger
	metricsCollector recordstream.MetricsCollector
	tracingCollector recordstream.TracingCollector
}

// NewStore creates an empty Store with optional configuration.
func NewStore(options ...Option) (*Store, error) {
	s := &Store{
		dataChanged:            make(chan struct{}),
		maxWaitTime:            defaultMaxWaitTime,
		autoAcknowledge:        defaultAutoAcknowledge,
		defaultMaxWaitTime:     defaultMaxWaitTime,
		defaultAutoAcknowledge: defaultAutoAcknowledge,
	}

	for _, option := range options {
		if err := option(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Append captures a defensive copy of the record, assigns it the next store index and wakes all
// waiting cursors.
//
// With auto-acknowledge enabled and an Acknowledger configured, the record's position is reported
// after it was stored. Returns an error only if the payload could not be copied; nothing is stored then.
func (s *Store) Append(ctx context.Context, record recordstream.CapturedRecord) error {
	ctx, span := s.startAppendSpan(ctx, record)
	start := time.Now()

	captured, copyErr := recordstream.CopyRecord(record)
	if copyErr != nil {
		s.logErrorContext(ctx, logMsgCopyValueFailed, copyErr, logAttrValueType, string(record.ValueType))
		s.recordErrorMetricsContext(ctx, operationAppend, errorTypeCopyValue)
		s.finishSpanError(span, errorTypeCopyValue)

		return copyErr
	}

	s.mu.Lock()
	index := len(s.records)
	s.records = append(s.records, captured)
	acknowledge := s.autoAcknowledge && s.acknowledger != nil
	s.signalDataChangedLocked()
	s.mu.Unlock()

	if acknowledge {
		s.acknowledger.AcknowledgePosition(ctx, captured.Position)
	}

	duration := time.Since(start)

	s.logDebugContext(
		ctx,
		logMsgRecordAppended,
		logAttrIndex, index,
		logAttrPosition, captured.Position,
		logAttrPartitionID, captured.PartitionID,
		logAttrRecordType, captured.RecordType.String(),
		logAttrValueType, string(captured.ValueType),
		logAttrIntent, string(captured.Intent),
	)
	s.recordAppendMetricsContext(ctx, captured, index+1, duration)
	s.finishAppendSpanSuccess(span, index, duration)

	return nil
}

// Reset clears all records and restores the configured defaults for max wait time and auto-acknowledge.
//
// Cursors created before the reset report exhaustion from then on, including those that are
// currently waiting; they are woken up immediately.
func (s *Store) Reset(ctx context.Context) {
	ctx, span := s.startTraceSpan(ctx, spanNameReset, map[string]string{spanAttrOperation: operationReset})

	s.mu.Lock()
	cleared := len(s.records)
	s.records = nil
	s.generation++
	s.maxWaitTime = s.defaultMaxWaitTime
	s.autoAcknowledge = s.defaultAutoAcknowledge
	s.signalDataChangedLocked()
	s.mu.Unlock()

	s.logOperationContext(ctx, logMsgStoreReset, logAttrClearedCount, cleared)
	s.incrementCounterContext(ctx, metricResetTotal, map[string]string{spanAttrOperation: operationReset})
	s.recordValueMetricsContext(ctx, metricRecordsCaptured, 0, operationReset, statusSuccess)
	s.finishTraceSpan(span, statusSuccess, map[string]string{spanAttrClearedCount: itoa(cleared)})
}

// SetMaxWaitTime configures how long cursors wait for new records. Zero makes all reads non-blocking.
// The setting applies to every subsequent wait of every cursor.
func (s *Store) SetMaxWaitTime(maxWaitTime time.Duration) error {
	if maxWaitTime < 0 {
		return recordstream.ErrNegativeMaxWaitTime
	}

	s.mu.Lock()
	s.maxWaitTime = maxWaitTime
	s.mu.Unlock()

	s.logOperation(logMsgMaxWaitTimeChanged, logAttrMaxWaitTimeMS, toMilliseconds(maxWaitTime))

	return nil
}

// MaxWaitTime returns the currently configured wait budget.
func (s *Store) MaxWaitTime() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.maxWaitTime
}

// SetAutoAcknowledge toggles whether appended positions are reported to the Acknowledger.
func (s *Store) SetAutoAcknowledge(autoAcknowledge bool) {
	s.mu.Lock()
	s.autoAcknowledge = autoAcknowledge
	s.mu.Unlock()

	s.logOperation(logMsgAutoAcknowledgeChanged, logAttrAutoAcknowledge, autoAcknowledge)
}

// AutoAcknowledge returns whether appended positions are currently reported.
func (s *Store) AutoAcknowledge() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.autoAcknowledge
}

// Snapshot returns copies of the records captured so far in store order. It never blocks on new data.
// The returned records are owned by the caller; changing them does not affect the store.
func (s *Store) Snapshot() recordstream.CapturedRecords {
	s.mu.Lock()
	records := slices.Clone(s.records)
	s.mu.Unlock()

	for i := range records {
		records[i] = s.copyForReader(context.Background(), records[i])
	}

	return records
}

// Size returns the number of records captured so far.
func (s *Store) Size() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.records)
}

// Cursor returns a new cursor starting at the given store index.
// Canceling ctx interrupts waiting: the cursor re-checks once and then reports exhaustion.
func (s *Store) Cursor(ctx context.Context, from int) recordstream.Cursor {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.newCursorLocked(ctx, max(from, 0))
}

// CursorFromNow returns a new cursor that only sees records appended after this call.
func (s *Store) CursorFromNow(ctx context.Context) recordstream.Cursor {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.newCursorLocked(ctx, len(s.records))
}

// copyForReader hands out a copy of a captured record so readers cannot change the store's history.
// Captured payloads were copied once at append, so copying them again only fails for payloads whose
// DeepCopy misbehaves; the captured record is returned then.
func (s *Store) copyForReader(ctx context.Context, record recordstream.CapturedRecord) recordstream.CapturedRecord {
	copied, err := recordstream.CopyRecord(record)
	if err != nil {
		s.logErrorContext(ctx, logMsgCopyValueFailed, err, logAttrValueType, string(record.ValueType))
		s.recordErrorMetricsContext(ctx, operationRead, errorTypeCopyValue)

		return record
	}

	return copied
}

// dataChangedLocked returns the channel that is closed on the next change. Callers must hold s.mu.
func (s *Store) dataChangedLocked() <-chan struct{} {
	if s.dataChanged == nil {
		s.dataChanged = make(chan struct{})
	}

	return s.dataChanged
}

// signalDataChangedLocked wakes every cursor waiting for data. Callers must hold s.mu.
func (s *Store) signalDataChangedLocked() {
	if s.dataChanged != nil {
		close(s.dataChanged)
	}

	s.dataChanged = make(chan struct{})
}

var _ recordstream.Source = (*Store)(nil)
