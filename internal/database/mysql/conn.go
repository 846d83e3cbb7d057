package mysql

import (
	"context"
	"database/sql"
	"errors"

	"github.com/sqlweft/sqlweft/internal/database"
	"github.com/sqlweft/sqlweft/internal/errs"
)

// Conn is a MySQL connection pool implementing database.Executor.
// It is safe for concurrent use by multiple goroutines.
type Conn struct {
	db *sql.DB
}

// Connect opens a connection pool for cfg and verifies it with a ping.
func Connect(ctx context.Context, cfg *database.Config) (*Conn, error) {
	db, err := buildPool(cfg)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, mapError(err, "ping failed")
	}
	return &Conn{db: db}, nil
}

// Ping verifies the connection is alive.
func (c *Conn) Ping(ctx context.Context) error {
	return mapError(c.db.PingContext(ctx), "ping failed")
}

// Close shuts down the connection pool.
func (c *Conn) Close() error {
	return c.db.Close()
}

// Query executes a query returning multiple rows.
func (c *Conn) Query(ctx context.Context, query string, args ...any) (database.Rows, error) {
	rows, err := c.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapError(err, "query failed")
	}
	return &sqlRows{rows: rows}, nil
}

// QueryRow executes a query returning at most one row.
func (c *Conn) QueryRow(ctx context.Context, query string, args ...any) database.Row {
	return &sqlRow{row: c.db.QueryRowContext(ctx, query, args...)}
}

// Exec executes a statement and returns the driver result.
func (c *Conn) Exec(ctx context.Context, query string, args ...any) (database.Result, error) {
	res, err := c.db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, mapError(err, "exec failed")
	}
	return res, nil
}

// --- database/sql wrappers ---

type sqlRows struct {
	rows *sql.Rows
}

func (r *sqlRows) Next() bool                 { return r.rows.Next() }
func (r *sqlRows) Scan(dest ...any) error     { return mapError(r.rows.Scan(dest...), "scan failed") }
func (r *sqlRows) Columns() ([]string, error) { return r.rows.Columns() }
func (r *sqlRows) Close()                     { _ = r.rows.Close() }
func (r *sqlRows) Err() error                 { return mapError(r.rows.Err(), "row iteration failed") }

type sqlRow struct {
	row *sql.Row
}

func (r *sqlRow) Scan(dest ...any) error {
	err := r.row.Scan(dest...)
	if errors.Is(err, sql.ErrNoRows) {
		return errs.Wrap(errs.ErrKindNotFound, "record not found", err)
	}
	return mapError(err, "scan failed")
}
