package recordexport

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect registration
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // database/sql driver "postgres"

	"github.com/AntonStoeckl/recordstream-go/recordstream"
	"github.com/AntonStoeckl/recordstream-go/recordstream/recordexport/internal/adapters"
)

const (
	defaultExportTableName = "recordstream_exports"
	dialectPostgres        = "postgres"
	driverPostgres         = "postgres"
	castJsonb              = "?::jsonb"

	colBatchID              = "batch_id"
	colRecordIndex          = "record_index"
	colKey                  = "record_key"
	colPosition             = "position"
	colPartitionID          = "partition_id"
	colRecordType           = "record_type"
	colValueType            = "value_type"
	colIntent               = "intent"
	colTimestamp            = "record_timestamp"
	colSourceRecordPosition = "source_record_position"
	colRejectionType        = "rejection_type"
	colRejectionReason      = "rejection_reason"
	colValue                = "value"

	logMsgBuildInsertQueryFailed = "failed to build export insert query"
	logMsgDBExecFailed           = "database execution failed during export"
	logMsgSQLExecuted            = "executed sql for: "
	logMsgRecordsExported        = "recordstream operation: records exported"
	logAttrError                 = "error"
	logAttrQuery                 = "query"
	logAttrBatchID               = "batch_id"
	logAttrRecordCount           = "record_count"
	logAttrDurationMS            = "duration_ms"
	logActionExport              = "export"
	logActionCount               = "count"
	logActionCreateTable         = "create table"
)

// ExportResult describes one export to Postgres.
type ExportResult struct {
	BatchID      string
	RowsAffected int64
}

// PostgresExporter writes store snapshots into a Postgres table, one row per record.
type PostgresExporter struct {
	db        adapters.DBAdapter
	tableName string
	logger    recordstream.Logger
	newID     func() string
}

// ExporterOption defines a functional option for configuring PostgresExporter.
type ExporterOption func(*PostgresExporter) error

// WithTableName sets the table the exporter writes to.
func WithTableName(tableName string) ExporterOption {
	return func(e *PostgresExporter) error {
		if tableName == "" {
			return recordstream.ErrEmptyExportTableName
		}

		e.tableName = tableName

		return nil
	}
}

// WithLogger sets the logger for the exporter.
//
// Debug level: SQL statements with execution timing
// Info level: exported record counts
// Error level: failed exports.
func WithLogger(logger recordstream.Logger) ExporterOption {
	return func(e *PostgresExporter) error {
		e.logger = logger
		return nil
	}
}

// WithBatchIDGenerator replaces the random batch ids, e.g. for deterministic tests.
func WithBatchIDGenerator(newID func() string) ExporterOption {
	return func(e *PostgresExporter) error {
		e.newID = newID
		return nil
	}
}

// NewPostgresExporterFromPGXPool creates a PostgresExporter using a pgx Pool.
func NewPostgresExporterFromPGXPool(db *pgxpool.Pool, options ...ExporterOption) (PostgresExporter, error) {
	if db == nil {
		return PostgresExporter{}, recordstream.ErrNilDatabaseConnection
	}

	return newPostgresExporter(adapters.NewPGXAdapter(db), options...)
}

// NewPostgresExporterFromSQLDB creates a PostgresExporter using a sql.DB.
func NewPostgresExporterFromSQLDB(db *sql.DB, options ...ExporterOption) (PostgresExporter, error) {
	if db == nil {
		return PostgresExporter{}, recordstream.ErrNilDatabaseConnection
	}

	return newPostgresExporter(adapters.NewSQLAdapter(db), options...)
}

// NewPostgresExporterFromSQLX creates a PostgresExporter using a sqlx.DB.
func NewPostgresExporterFromSQLX(db *sqlx.DB, options ...ExporterOption) (PostgresExporter, error) {
	if db == nil {
		return PostgresExporter{}, recordstream.ErrNilDatabaseConnection
	}

	return newPostgresExporter(adapters.NewSQLXAdapter(db), options...)
}

// OpenPostgresExporter opens a database/sql connection with the lib/pq driver and creates a PostgresExporter.
// The connection is verified lazily on first use; the caller owns the returned *sql.DB.
func OpenPostgresExporter(dsn string, options ...ExporterOption) (PostgresExporter, *sql.DB, error) {
	db, openErr := sql.Open(driverPostgres, dsn)
	if openErr != nil {
		return PostgresExporter{}, nil, openErr
	}

	exporter, err := NewPostgresExporterFromSQLDB(db, options...)
	if err != nil {
		_ = db.Close()
		return PostgresExporter{}, nil, err
	}

	return exporter, db, nil
}

func newPostgresExporter(db adapters.DBAdapter, options ...ExporterOption) (PostgresExporter, error) {
	e := PostgresExporter{
		db:        db,
		tableName: defaultExportTableName,
		newID:     uuid.NewString,
	}

	for _, option := range options {
		if err := option(&e); err != nil {
			return PostgresExporter{}, err
		}
	}

	return e, nil
}

// EnsureTable creates the export table if it does not exist.
func (e PostgresExporter) EnsureTable(ctx context.Context) error {
	sqlQuery := e.createTableStatement()

	start := time.Now()
	if _, err := e.db.Exec(ctx, sqlQuery); err != nil {
		e.logError(logMsgDBExecFailed, err)
		return errors.Join(recordstream.ErrExportingRecordsFailed, err)
	}

	e.logSQL(logActionCreateTable, sqlQuery, time.Since(start))

	return nil
}

// Export writes the records as one batch. Exporting no records is a no-op without a batch id.
func (e PostgresExporter) Export(ctx context.Context, records recordstream.CapturedRecords) (ExportResult, error) {
	if len(records) == 0 {
		return ExportResult{}, nil
	}

	exported, buildErr := recordstream.BuildExportedRecords(records)
	if buildErr != nil {
		return ExportResult{}, buildErr
	}

	batchID := e.newID()

	sqlQuery, queryErr := e.buildInsertQuery(batchID, exported)
	if queryErr != nil {
		e.logError(logMsgBuildInsertQueryFailed, queryErr)
		return ExportResult{}, queryErr
	}

	start := time.Now()
	result, execErr := e.db.Exec(ctx, sqlQuery)
	if execErr != nil {
		e.logError(logMsgDBExecFailed, execErr, logAttrBatchID, batchID)
		return ExportResult{}, errors.Join(recordstream.ErrExportingRecordsFailed, execErr)
	}

	duration := time.Since(start)
	e.logSQL(logActionExport, sqlQuery, duration)

	rowsAffected, rowsErr := result.RowsAffected()
	if rowsErr != nil {
		return ExportResult{}, errors.Join(recordstream.ErrExportingRecordsFailed, rowsErr)
	}

	if e.logger != nil {
		e.logger.Info(
			logMsgRecordsExported,
			logAttrBatchID, batchID,
			logAttrRecordCount, rowsAffected,
			logAttrDurationMS, toMilliseconds(duration),
		)
	}

	return ExportResult{BatchID: batchID, RowsAffected: rowsAffected}, nil
}

// ExportSnapshot exports a snapshot of the store as one batch.
func (e PostgresExporter) ExportSnapshot(ctx context.Context, store Snapshotter) (ExportResult, error) {
	return e.Export(ctx, store.Snapshot())
}

// CountExported returns the number of rows exported with the given batch id.
func (e PostgresExporter) CountExported(ctx context.Context, batchID string) (count int64, err error) {
	sqlQuery, queryErr := e.buildCountQuery(batchID)
	if queryErr != nil {
		return 0, queryErr
	}

	start := time.Now()
	rows, dbErr := e.db.Query(ctx, sqlQuery)
	if dbErr != nil {
		return 0, dbErr
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	e.logSQL(logActionCount, sqlQuery, time.Since(start))

	if rows.Next() {
		if scanErr := rows.Scan(&count); scanErr != nil {
			return 0, scanErr
		}
	}

	return count, nil
}

func (e PostgresExporter) buildInsertQuery(batchID string, exported []recordstream.ExportedRecord) (string, error) {
	insertStmt := goqu.Dialect(dialectPostgres).
		Insert(e.tableName).
		Cols(
			colBatchID, colRecordIndex, colKey, colPosition, colPartitionID, colRecordType, colValueType,
			colIntent, colTimestamp, colSourceRecordPosition, colRejectionType, colRejectionReason, colValue,
		)

	for _, r := range exported {
		insertStmt = insertStmt.Vals(goqu.Vals{
			batchID,
			r.Index,
			r.Key,
			r.Position,
			r.PartitionID,
			r.RecordType.String(),
			string(r.ValueType),
			string(r.Intent),
			r.Timestamp.UTC(),
			r.SourceRecordPosition,
			string(r.RejectionType),
			r.RejectionReason,
			goqu.L(castJsonb, string(r.Value)),
		})
	}

	sqlQuery, _, toSQLErr := insertStmt.ToSQL()
	if toSQLErr != nil {
		return "", errors.Join(recordstream.ErrBuildingQueryFailed, toSQLErr)
	}

	return sqlQuery, nil
}

func (e PostgresExporter) buildCountQuery(batchID string) (string, error) {
	sqlQuery, _, toSQLErr := goqu.Dialect(dialectPostgres).
		From(e.tableName).
		Select(goqu.COUNT(goqu.Star())).
		Where(goqu.C(colBatchID).Eq(batchID)).
		ToSQL()
	if toSQLErr != nil {
		return "", errors.Join(recordstream.ErrBuildingQueryFailed, toSQLErr)
	}

	return sqlQuery, nil
}

func (e PostgresExporter) createTableStatement() string {
	return fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %q (
	%s uuid NOT NULL,
	%s integer NOT NULL,
	%s bigint NOT NULL,
	%s bigint NOT NULL,
	%s integer NOT NULL,
	%s text NOT NULL,
	%s text NOT NULL,
	%s text NOT NULL,
	%s timestamp with time zone NOT NULL,
	%s bigint NOT NULL,
	%s text NOT NULL,
	%s text NOT NULL,
	%s jsonb NOT NULL,
	PRIMARY KEY (%s, %s)
)`,
		e.tableName,
		colBatchID, colRecordIndex, colKey, colPosition, colPartitionID, colRecordType, colValueType,
		colIntent, colTimestamp, colSourceRecordPosition, colRejectionType, colRejectionReason, colValue,
		colBatchID, colRecordIndex,
	)
}

func (e PostgresExporter) logSQL(action, sqlQuery string, duration time.Duration) {
	if e.logger != nil {
		e.logger.Debug(logMsgSQLExecuted+action, logAttrQuery, sqlQuery, logAttrDurationMS, toMilliseconds(duration))
	}
}

func (e PostgresExporter) logError(message string, err error, args ...any) {
	if e.logger != nil {
		e.logger.Error(message, append([]any{logAttrError, err.Error()}, args...)...)
	}
}

func toMilliseconds(d time.Duration) float64 {
	return float64(d.Microseconds()) / 1000
}
