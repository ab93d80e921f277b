package recordstream

import (
	"errors"
)

var ErrNilPredicate = errors.New("nil predicate supplied")
var ErrNilRecordValue = errors.New("record value must not be nil")
var ErrCopyingValueFailed = errors.New("copying record value failed")
var ErrNegativeMaxWaitTime = errors.New("max wait time must not be negative")
var ErrNilDatabaseConnection = errors.New("database connection must not be nil")
var ErrEmptyExportTableName = errors.New("empty export table name supplied")
var ErrBuildingQueryFailed = errors.New("building query failed")
var ErrExportingRecordsFailed = errors.New("exporting records failed")

// NoSourceRecordPosition marks a record that was not caused by another record.
const NoSourceRecordPosition int64 = -1
