//go:build integration

package recordexport_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/recordstream-go/recordstream/recordexport"
	"github.com/AntonStoeckl/recordstream-go/testutil/recordexport/pgconfig"
	"github.com/AntonStoeckl/recordstream-go/testutil/recordstream/fixtures"
)

func Test_PostgresExporter_ExportAndCount(t *testing.T) {
	dsn := pgconfig.PostgresDSN(t)

	testCases := []struct {
		name     string
		exporter func(t *testing.T, dsn string, option recordexport.ExporterOption) (recordexport.PostgresExporter, error)
	}{
		{
			name: "pgx pool",
			exporter: func(t *testing.T, dsn string, option recordexport.ExporterOption) (recordexport.PostgresExporter, error) {
				return recordexport.NewPostgresExporterFromPGXPool(pgconfig.PGXPool(t, dsn), option)
			},
		},
		{
			name: "sql db",
			exporter: func(t *testing.T, dsn string, option recordexport.ExporterOption) (recordexport.PostgresExporter, error) {
				return recordexport.NewPostgresExporterFromSQLDB(pgconfig.SQLDB(t, dsn), option)
			},
		},
		{
			name: "sqlx",
			exporter: func(t *testing.T, dsn string, option recordexport.ExporterOption) (recordexport.PostgresExporter, error) {
				return recordexport.NewPostgresExporterFromSQLX(pgconfig.SQLX(t, dsn), option)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// setup
			ctx := context.Background()
			exporter, err := tc.exporter(t, dsn, recordexport.WithTableName("recordstream_exports_test"))
			require.NoError(t, err)
			require.NoError(t, exporter.EnsureTable(ctx))
			_, records := fixtures.NewProducer(1).CompletedProcessInstance("order-process")

			// act
			result, err := exporter.Export(ctx, records)

			// assert
			require.NoError(t, err)
			assert.Equal(t, int64(len(records)), result.RowsAffected)

			count, err := exporter.CountExported(ctx, result.BatchID)
			require.NoError(t, err)
			assert.Equal(t, int64(len(records)), count)
		})
	}
}
