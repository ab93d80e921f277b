package memoryengine

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/recordstream-go/recordstream"
)

// awaitingCursor is a per-consumer position in a Store that waits for records not yet appended.
//
// It belongs to the generation of the store it was created in; after a reset it is exhausted.
type awaitingCursor struct {
	store      *Store
	ctx        context.Context
	id         string
	generation uint64
	index      int
	pending    recordstream.CapturedRecord
	hasPending bool
}

func (s *Store) newCursorLocked(ctx context.Context, from int) *awaitingCursor {
	if ctx == nil {
		ctx = context.Background()
	}

	return &awaitingCursor{
		store:      s,
		ctx:        ctx,
		id:         uuid.NewString(),
		generation: s.generation,
		index:      from,
	}
}

// HasNext reports whether a record is available at the cursor position, waiting for it up to the
// store's max wait time. Every wake-up, whether signaled, timed out or interrupted, leads to a re-check.
func (c *awaitingCursor) HasNext() bool {
	if c.hasPending {
		return true
	}

	s := c.store
	start := time.Now()
	waited := false

	s.mu.Lock()
	deadline := start.Add(s.maxWaitTime)

	for {
		if c.generation != s.generation {
			s.mu.Unlock()
			c.exhausted(exhaustedByReset, waited, start)

			return false
		}

		if c.index < len(s.records) {
			c.pending = s.records[c.index]
			c.hasPending = true
			s.mu.Unlock()

			if waited {
				s.recordDurationMetricsContext(c.ctx, metricCursorWaitDuration, time.Since(start), operationAwait, statusSuccess)
			}

			return true
		}

		remaining := time.Until(deadline)
		if remaining <= 0 {
			s.mu.Unlock()
			c.exhausted(exhaustedByTimeout, waited, start)

			return false
		}

		dataChanged := s.dataChangedLocked()
		s.mu.Unlock()

		waited = true
		if interrupted := c.await(dataChanged, remaining); interrupted {
			s.logDebugContext(c.ctx, logMsgCursorInterrupted, logAttrCursorID, c.id, logAttrIndex, c.index)
			deadline = time.Now()
		}

		s.mu.Lock()
	}
}

// Next returns a copy of the record made available by the preceding HasNext and advances the cursor.
func (c *awaitingCursor) Next() recordstream.CapturedRecord {
	if !c.hasPending {
		// precondition violated: answer with whatever is at the position without waiting
		c.store.mu.Lock()
		if c.generation == c.store.generation && c.index < len(c.store.records) {
			c.pending = c.store.records[c.index]
		}
		c.store.mu.Unlock()
	}

	record := c.pending
	c.pending = recordstream.CapturedRecord{}
	c.hasPending = false
	c.index++

	if record.Value == nil {
		return record
	}

	return c.store.copyForReader(c.ctx, record)
}

// await blocks until new data is signaled, the budget is used up, or the cursor's context is done.
func (c *awaitingCursor) await(dataChanged <-chan struct{}, budget time.Duration) (interrupted bool) {
	timer := time.NewTimer(budget)
	defer timer.Stop()

	select {
	case <-dataChanged:
		return false
	case <-timer.C:
		return false
	case <-c.ctx.Done():
		return true
	}
}

func (c *awaitingCursor) exhausted(reason string, waited bool, start time.Time) {
	s := c.store
	duration := time.Since(start)

	s.logDebugContext(
		c.ctx,
		logMsgCursorExhausted,
		logAttrCursorID, c.id,
		logAttrIndex, c.index,
		logAttrReason, reason,
		logAttrDurationMS, toMilliseconds(duration),
	)

	if waited {
		s.recordDurationMetricsContext(c.ctx, metricCursorWaitDuration, duration, operationAwait, reason)
	}

	s.incrementCounterContext(c.ctx, metricCursorExhausted, map[string]string{
		spanAttrOperation: operationAwait,
		labelReason:       reason,
	})
}

var _ recordstream.Cursor = (*awaitingCursor)(nil)
