package recordexport

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/recordstream-go/recordstream"
	"github.com/AntonStoeckl/recordstream-go/recordstream/recordexport/internal/adapters"
	"github.com/AntonStoeckl/recordstream-go/testutil/observability/testdoubles"
	"github.com/AntonStoeckl/recordstream-go/testutil/recordstream/fixtures"
)

type dbAdapterFake struct {
	execErr  error
	rowsErr  error
	executed []string
	count    int64
}

func (f *dbAdapterFake) Query(_ context.Context, query string) (adapters.DBRows, error) {
	f.executed = append(f.executed, query)
	return &rowsFake{values: []int64{f.count}, closeErr: f.rowsErr}, nil
}

func (f *dbAdapterFake) Exec(_ context.Context, query string) (adapters.DBResult, error) {
	f.executed = append(f.executed, query)
	if f.execErr != nil {
		return nil, f.execErr
	}

	return resultFake{rowsAffected: int64(len(f.executed))}, nil
}

type rowsFake struct {
	values   []int64
	next     int
	closeErr error
}

func (r *rowsFake) Next() bool {
	return r.next < len(r.values)
}

func (r *rowsFake) Scan(dest ...any) error {
	*(dest[0].(*int64)) = r.values[r.next]
	r.next++

	return nil
}

func (r *rowsFake) Close() error {
	return r.closeErr
}

type resultFake struct {
	rowsAffected int64
}

func (r resultFake) RowsAffected() (int64, error) {
	return r.rowsAffected, nil
}

func givenExporter(t *testing.T, db adapters.DBAdapter, options ...ExporterOption) PostgresExporter {
	t.Helper()

	options = append(options, WithBatchIDGenerator(func() string { return "6f1c1e4a-0000-4000-8000-000000000001" }))
	exporter, err := newPostgresExporter(db, options...)
	require.NoError(t, err)

	return exporter
}

func Test_BuildInsertQuery_RendersOneRowPerRecordWithJsonbPayload(t *testing.T) {
	// setup
	exporter := givenExporter(t, &dbAdapterFake{}, WithTableName("exports"))
	_, records := fixtures.NewProducer(1).TerminatedProcessInstance("order-process")
	exported, err := recordstream.BuildExportedRecords(records)
	require.NoError(t, err)

	// act
	sqlQuery, err := exporter.buildInsertQuery("batch-1", exported)

	// assert
	require.NoError(t, err)
	assert.Contains(t, sqlQuery, `INSERT INTO "exports"`)
	assert.Contains(t, sqlQuery, `"batch_id", "record_index", "record_key", "position"`)
	assert.Contains(t, sqlQuery, `'batch-1'`)
	assert.Contains(t, sqlQuery, `'COMMAND'`)
	assert.Contains(t, sqlQuery, `'EVENT'`)
	assert.Contains(t, sqlQuery, `"BpmnProcessID":"order-process"`)
	assert.Contains(t, sqlQuery, `::jsonb`)
	assert.Equal(t, len(records), countOccurrences(sqlQuery, "::jsonb"))
}

func Test_BuildInsertQuery_EscapesQuotesInPayloads(t *testing.T) {
	// setup
	exporter := givenExporter(t, &dbAdapterFake{})
	producer := fixtures.NewProducer(1)
	record := producer.Event(producer.NewKey(), "CREATED", fixtures.Variable(1, 1, "name", `"it's"`))
	exported, err := recordstream.BuildExportedRecords(recordstream.CapturedRecords{record})
	require.NoError(t, err)

	// act
	sqlQuery, err := exporter.buildInsertQuery("batch-1", exported)

	// assert
	require.NoError(t, err)
	assert.Contains(t, sqlQuery, `it''s`)
}

func Test_BuildCountQuery_FiltersByBatchID(t *testing.T) {
	// setup
	exporter := givenExporter(t, &dbAdapterFake{})

	// act
	sqlQuery, err := exporter.buildCountQuery("batch-1")

	// assert
	require.NoError(t, err)
	assert.Equal(t, `SELECT COUNT(*) FROM "recordstream_exports" WHERE ("batch_id" = 'batch-1')`, sqlQuery)
}

func Test_Export_ExecutesOneInsertAndLogs(t *testing.T) {
	// setup
	db := &dbAdapterFake{}
	logHandler := testdoubles.NewLogHandlerSpy(false)
	exporter := givenExporter(t, db, WithLogger(slog.New(logHandler)))
	_, records := fixtures.NewProducer(1).TerminatedProcessInstance("order-process")

	// act
	result, err := exporter.Export(context.Background(), records)

	// assert
	require.NoError(t, err)
	assert.Equal(t, "6f1c1e4a-0000-4000-8000-000000000001", result.BatchID)
	assert.Len(t, db.executed, 1)
	assert.True(t, logHandler.HasDebugLogWithMessage(logMsgSQLExecuted+logActionExport).WithDurationMS().Assert())
	assert.True(t, logHandler.HasInfoLogWithMessage(logMsgRecordsExported).
		WithAttribute(logAttrBatchID, result.BatchID).Assert())
}

func Test_Export_WithoutRecords_ExecutesNothing(t *testing.T) {
	// setup
	db := &dbAdapterFake{}
	exporter := givenExporter(t, db)

	// act
	result, err := exporter.Export(context.Background(), nil)

	// assert
	require.NoError(t, err)
	assert.Empty(t, result.BatchID)
	assert.Empty(t, db.executed)
}

func Test_Export_WhenExecFails_ReturnsWrappedErrorAndLogs(t *testing.T) {
	// setup
	dbErr := errors.New("connection refused")
	db := &dbAdapterFake{execErr: dbErr}
	logHandler := testdoubles.NewLogHandlerSpy(false)
	exporter := givenExporter(t, db, WithLogger(slog.New(logHandler)))
	_, records := fixtures.NewProducer(1).TerminatedProcessInstance("order-process")

	// act
	_, err := exporter.Export(context.Background(), records)

	// assert
	assert.ErrorIs(t, err, recordstream.ErrExportingRecordsFailed)
	assert.ErrorIs(t, err, dbErr)
	assert.True(t, logHandler.HasErrorLogWithMessage(logMsgDBExecFailed).WithAttributeKey(logAttrError).Assert())
}

type snapshotterFake struct {
	records recordstream.CapturedRecords
}

func (f snapshotterFake) Snapshot() recordstream.CapturedRecords {
	return f.records
}

func Test_ExportSnapshot_ExportsTheSnapshot(t *testing.T) {
	// setup
	db := &dbAdapterFake{}
	exporter := givenExporter(t, db)
	_, records := fixtures.NewProducer(1).TerminatedProcessInstance("order-process")

	// act
	result, err := exporter.ExportSnapshot(context.Background(), snapshotterFake{records: records})

	// assert
	require.NoError(t, err)
	assert.NotEmpty(t, result.BatchID)
	require.Len(t, db.executed, 1)
	assert.Equal(t, len(records), countOccurrences(db.executed[0], "::jsonb"))
}

func Test_EnsureTable_CreatesTableIfMissing(t *testing.T) {
	// setup
	db := &dbAdapterFake{}
	exporter := givenExporter(t, db, WithTableName("exports"))

	// act
	err := exporter.EnsureTable(context.Background())

	// assert
	require.NoError(t, err)
	require.Len(t, db.executed, 1)
	assert.Contains(t, db.executed[0], `CREATE TABLE IF NOT EXISTS "exports"`)
	assert.Contains(t, db.executed[0], "value jsonb NOT NULL")
}

func Test_CountExported_ScansTheCount(t *testing.T) {
	// setup
	db := &dbAdapterFake{count: 6}
	exporter := givenExporter(t, db)

	// act
	count, err := exporter.CountExported(context.Background(), "batch-1")

	// assert
	require.NoError(t, err)
	assert.Equal(t, int64(6), count)
}

func Test_CountExported_WhenIterationFails_ReturnsError(t *testing.T) {
	// setup
	rowsErr := errors.New("connection reset by peer")
	exporter := givenExporter(t, &dbAdapterFake{count: 6, rowsErr: rowsErr})

	// act
	_, err := exporter.CountExported(context.Background(), "batch-1")

	// assert
	assert.ErrorIs(t, err, rowsErr)
}

func countOccurrences(s, sub string) int {
	count := 0
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			count++
		}
	}

	return count
}
