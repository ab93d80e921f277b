package recordstream

import (
	"context"
)

// Cursor is a per-consumer position in an append-ordered sequence of captured records.
//
// HasNext may block until more records are available or the source's wait budget is used up.
// Returning false is not an error: no more records arrived in time.
// Next returns the record at the cursor position and advances it. Calling Next without a
// preceding HasNext that returned true is a precondition violation.
type Cursor interface {
	HasNext() bool
	Next() CapturedRecord
}

// Source hands out independent cursors over the same sequence of captured records.
type Source interface {
	// Cursor returns a cursor starting at the given zero-based store index.
	Cursor(ctx context.Context, from int) Cursor

	// CursorFromNow returns a cursor starting after the records captured so far.
	CursorFromNow(ctx context.Context) Cursor
}
