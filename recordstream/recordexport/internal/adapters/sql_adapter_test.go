package adapters_test

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"io"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/recordstream-go/recordstream/recordexport/internal/adapters"
)

const brokenRowsDriverName = "recordstream-broken-rows"

var errConnectionReset = errors.New("connection reset by peer")

func init() {
	sql.Register(brokenRowsDriverName, brokenRowsDriver{})
}

// brokenRowsDriver serves one row and then fails the iteration.
type brokenRowsDriver struct{}

func (brokenRowsDriver) Open(string) (driver.Conn, error) { return brokenRowsConn{}, nil }

type brokenRowsConn struct{}

func (brokenRowsConn) Prepare(string) (driver.Stmt, error) { return brokenRowsStmt{}, nil }
func (brokenRowsConn) Close() error                        { return nil }
func (brokenRowsConn) Begin() (driver.Tx, error)           { return nil, errors.New("not supported") }

type brokenRowsStmt struct{}

func (brokenRowsStmt) Close() error  { return nil }
func (brokenRowsStmt) NumInput() int { return -1 }

func (brokenRowsStmt) Exec([]driver.Value) (driver.Result, error) {
	return driver.RowsAffected(0), nil
}

func (brokenRowsStmt) Query([]driver.Value) (driver.Rows, error) {
	return &brokenRows{}, nil
}

type brokenRows struct {
	served int
}

func (*brokenRows) Columns() []string { return []string{"count"} }
func (*brokenRows) Close() error      { return nil }

func (r *brokenRows) Next(dest []driver.Value) error {
	r.served++
	switch r.served {
	case 1:
		dest[0] = int64(6)
		return nil
	case 2:
		return errConnectionReset
	default:
		return io.EOF
	}
}

func openBrokenRowsDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open(brokenRowsDriverName, "")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return db
}

func drainRows(t *testing.T, db adapters.DBAdapter) error {
	t.Helper()

	rows, err := db.Query(context.Background(), "SELECT COUNT(*) FROM exports")
	require.NoError(t, err)

	for rows.Next() {
		var count int64
		require.NoError(t, rows.Scan(&count))
	}

	return rows.Close()
}

func Test_SQLAdapter_RowsClose_ReportsIterationError(t *testing.T) {
	err := drainRows(t, adapters.NewSQLAdapter(openBrokenRowsDB(t)))

	assert.ErrorIs(t, err, errConnectionReset)
}

func Test_SQLXAdapter_RowsClose_ReportsIterationError(t *testing.T) {
	err := drainRows(t, adapters.NewSQLXAdapter(sqlx.NewDb(openBrokenRowsDB(t), brokenRowsDriverName)))

	assert.ErrorIs(t, err, errConnectionReset)
}
