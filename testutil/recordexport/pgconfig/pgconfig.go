package pgconfig

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // postgres driver
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/AntonStoeckl/recordstream-go/recordstream/config"
)

const (
	postgresImage          = "postgres:16-alpine"
	postgresReadyLog       = "database system is ready to accept connections"
	postgresStartupTimeout = time.Minute
	databaseName           = "recordstream"
	databaseUser           = "test"
	databasePassword       = "test"
	driverPostgres         = "postgres"
	defaultMaxConnections  = 10
	defaultMinConnections  = 1
	defaultMaxConnLifetime = time.Hour
	defaultMaxConnIdleTime = time.Minute * 5
	defaultConnectTimeout  = time.Second * 5
)

type testDatabase struct {
	DSN string `env:"RECORDSTREAM_TEST_POSTGRES_DSN"`
}

// PostgresDSN returns the DSN of the test database. Without RECORDSTREAM_TEST_POSTGRES_DSN it starts a
// Postgres container that is terminated with the test, and skips the test if no container can be started.
func PostgresDSN(t testing.TB) string {
	t.Helper()

	var db testDatabase
	if err := config.ParseEnv(&db); err != nil {
		t.Fatalf("failed to read test database config: %v", err)
	}

	if db.DSN != "" {
		return db.DSN
	}

	ctx := context.Background()
	container, err := tcpostgres.Run(ctx, postgresImage,
		tcpostgres.WithDatabase(databaseName),
		tcpostgres.WithUsername(databaseUser),
		tcpostgres.WithPassword(databasePassword),
		testcontainers.WithWaitStrategy(
			wait.ForLog(postgresReadyLog).WithOccurrence(2).WithStartupTimeout(postgresStartupTimeout),
		),
	)
	if err != nil {
		t.Skipf("skip: cannot start postgres: %v", err)
	}
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get the connection string: %v", err)
	}

	return dsn
}

// PGXPool connects a pgxpool.Pool to the database, closed with the test.
func PGXPool(t testing.TB, dsn string) *pgxpool.Pool {
	t.Helper()

	dbConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		t.Fatalf("failed to create a config: %v", err)
	}

	dbConfig.MaxConns = defaultMaxConnections
	dbConfig.MinConns = defaultMinConnections
	dbConfig.MaxConnLifetime = defaultMaxConnLifetime
	dbConfig.MaxConnIdleTime = defaultMaxConnIdleTime
	dbConfig.ConnConfig.ConnectTimeout = defaultConnectTimeout

	pool, err := pgxpool.NewWithConfig(context.Background(), dbConfig)
	if err != nil {
		t.Fatalf("failed to create pgx pool: %v", err)
	}
	t.Cleanup(pool.Close)

	if pingErr := pool.Ping(context.Background()); pingErr != nil {
		t.Fatalf("failed to ping database: %v", pingErr)
	}

	return pool
}

// SQLDB opens a sql.DB to the database with the lib/pq driver, closed with the test.
func SQLDB(t testing.TB, dsn string) *sql.DB {
	t.Helper()

	db, err := sql.Open(driverPostgres, dsn)
	if err != nil {
		t.Fatalf("failed to open database connection: %v", err)
	}

	configurePool(t, db)

	return db
}

// SQLX opens a sqlx.DB to the database with the lib/pq driver, closed with the test.
func SQLX(t testing.TB, dsn string) *sqlx.DB {
	t.Helper()

	db, err := sqlx.Open(driverPostgres, dsn)
	if err != nil {
		t.Fatalf("failed to open database connection: %v", err)
	}

	configurePool(t, db.DB)

	return db
}

func configurePool(t testing.TB, db *sql.DB) {
	t.Helper()

	db.SetMaxOpenConns(defaultMaxConnections)
	db.SetMaxIdleConns(defaultMinConnections)
	db.SetConnMaxLifetime(defaultMaxConnLifetime)
	db.SetConnMaxIdleTime(defaultMaxConnIdleTime)
	t.Cleanup(func() { _ = db.Close() })

	if pingErr := db.PingContext(context.Background()); pingErr != nil {
		t.Fatalf("failed to ping database: %v", pingErr)
	}
}
