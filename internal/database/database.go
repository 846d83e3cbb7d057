// Package database defines the driver-neutral connection surface the
// dialect layer talks through. Callers hold a Reader or Executor; only the
// driver packages know which concrete pool sits behind it.
package database

import "context"

// Row represents a single result row.
type Row interface {
	Scan(dest ...any) error
}

// Rows represents multiple result rows.
// Callers must always call Close() when done, even on error.
type Rows interface {
	// Next advances to the next row; false when exhausted or on error.
	Next() bool

	// Scan copies the current row's columns into the provided destinations.
	Scan(dest ...any) error

	// Columns returns the column names of the result set.
	Columns() ([]string, error)

	// Close releases resources held by the result set.
	Close()

	// Err returns any error encountered during iteration.
	Err() error
}

// Reader is the read-only query surface. Reflection needs nothing more.
type Reader interface {
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) Row
}

// Result reports the outcome of an executed statement. It matches
// database/sql.Result so driver results pass through unwrapped.
type Result interface {
	LastInsertId() (int64, error)
	RowsAffected() (int64, error)
}

// Executor extends Reader with statement execution.
type Executor interface {
	Reader
	Exec(ctx context.Context, sql string, args ...any) (Result, error)
}
