// Package recordexport hands store snapshots to diagnostics collaborators outside the process.
//
// Two forms are supported:
//   - JSON lines, one ExportedRecord per line, e.g. to attach to a failed test's output
//   - rows in a Postgres table, tagged with a batch id per export, written via pgx, database/sql or sqlx
//
// Exporting never modifies the store; records are read from a Snapshot.
package recordexport
