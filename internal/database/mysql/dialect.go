// Package mysql is the MySQL dialect: it renders the engine-neutral schema
// model into MySQL syntax and reflects MySQL introspection output back into
// that model.
package mysql

import (
	"context"
	"database/sql"
	"strings"

	"github.com/sqlweft/sqlweft/internal/database"
	"github.com/sqlweft/sqlweft/internal/errs"
	"github.com/sqlweft/sqlweft/internal/logger"
	"github.com/sqlweft/sqlweft/internal/schema"
)

// Dialect is the coordinating surface callers use: capability flags,
// connection-argument translation, reflection, and post-exec bookkeeping.
//
// The default schema name is computed once per Dialect value and cached.
// The cache is not guarded — callers sharing a Dialect across goroutines
// must serialize the first DefaultSchemaName call or pre-warm it.
type Dialect struct {
	log *logger.Logger

	defaultSchema     string
	haveDefaultSchema bool
}

// Option configures a Dialect.
type Option func(*Dialect)

// WithLogger attaches a logger for debug-level reflection tracing.
func WithLogger(l *logger.Logger) Option {
	return func(d *Dialect) { d.log = l }
}

// NewDialect returns a MySQL dialect. Without options it logs nowhere.
func NewDialect(opts ...Option) *Dialect {
	d := &Dialect{log: logger.Nop()}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Name returns the dialect identifier.
func (d *Dialect) Name() string { return "mysql" }

// Description returns the human-readable product name.
func (d *Dialect) Description() string { return "MySQL" }

// ConnectOption describes one recognized connection option.
type ConnectOption struct {
	Name        string
	Description string
}

// ConnectOptions lists the connection options the dialect recognizes. All
// are optional; database.ParseURL fills in whichever appear in the URL.
func (d *Dialect) ConnectOptions() []ConnectOption {
	return []ConnectOption{
		{Name: "host", Description: "Hostname"},
		{Name: "port", Description: "Port"},
		{Name: "database", Description: "Database Name"},
		{Name: "user", Description: "Database Username"},
		{Name: "password", Description: "Database Password"},
	}
}

// SupportsSaneRowCount reports whether rows-affected counts after a
// statement can be trusted. For MySQL they cannot — callers must not base
// affected-row decisions on them.
func (d *Dialect) SupportsSaneRowCount() bool { return false }

// Statement flags an executed statement for post-exec processing.
type Statement struct {
	SQL      string
	IsInsert bool
}

// ExecContext carries per-execution results captured by PostExec.
type ExecContext struct {
	// LastInsertIDs holds the identity generated by the last insert,
	// as a single-element list.
	LastInsertIDs []int64
}

// PostExec records the driver-reported generated identity after an insert.
// Non-insert statements are left untouched.
func (d *Dialect) PostExec(ec *ExecContext, stmt Statement, res database.Result) error {
	if !stmt.IsInsert {
		return nil
	}
	id, err := res.LastInsertId()
	if err != nil {
		return errs.Wrap(errs.ErrKindQueryFailed, "read last insert id", err)
	}
	ec.LastInsertIDs = []int64{id}
	return nil
}

// HasTable probes for a table using the status listing; the table exists
// iff the probe yields at least one row.
func (d *Dialect) HasTable(ctx context.Context, r database.Reader, table string) (bool, error) {
	rows, err := r.Query(ctx, "SHOW TABLE STATUS LIKE ?", table)
	if err != nil {
		return false, err
	}
	defer rows.Close()

	found := rows.Next()
	if err := rows.Err(); err != nil {
		return false, err
	}
	return found, nil
}

// DefaultSchemaName returns the schema the connection is bound to,
// computing it once and caching it for the lifetime of the Dialect.
func (d *Dialect) DefaultSchemaName(ctx context.Context, r database.Reader) (string, error) {
	if d.haveDefaultSchema {
		return d.defaultSchema, nil
	}

	var name sql.NullString
	if err := r.QueryRow(ctx, "SELECT DATABASE()").Scan(&name); err != nil {
		return "", err
	}

	d.defaultSchema = name.String
	d.haveDefaultSchema = true
	return d.defaultSchema, nil
}

// ReflectTable fills table from live introspection output: column
// definitions from the DESCRIBE listing, storage engine and foreign keys
// from the SHOW CREATE TABLE dump. The merge is all-or-nothing — on error
// the table is left exactly as it was.
func (d *Dialect) ReflectTable(ctx context.Context, r database.Reader, table *schema.Table) error {
	info, err := d.createTableInfo(ctx, r, table.Name)
	if err != nil {
		return err
	}

	rows, err := r.Query(ctx, "DESCRIBE "+quoteIdent(table.Name))
	if err != nil {
		return err
	}
	defer rows.Close()

	names, err := rows.Columns()
	if err != nil {
		return err
	}

	var cols []*schema.Column
	for rows.Next() {
		vals := make([]*sql.NullString, len(names))
		dests := make([]any, len(names))
		for i := range vals {
			vals[i] = new(sql.NullString)
			dests[i] = vals[i]
		}
		if err := rows.Scan(dests...); err != nil {
			return err
		}

		row, err := describeRowFromValues(vals)
		if err != nil {
			return err
		}
		col, err := parseDescribeRow(row)
		if err != nil {
			return err
		}

		if fk, ok := info.ForeignKeys[col.Name]; ok {
			ref := fk
			col.ForeignKey = &ref
		}
		cols = append(cols, col)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	if err := table.AddColumns(cols...); err != nil {
		return err
	}
	table.Engine = info.Engine

	d.log.With().Str("table", table.Name).Int("columns", len(cols)).Logger().
		Debug("table reflected")
	return nil
}

// createTableInfo fetches and parses the SHOW CREATE TABLE dump. The result
// set has two fields; the second is the full DDL text.
func (d *Dialect) createTableInfo(ctx context.Context, r database.Reader, table string) (tableInfo, error) {
	var name, ddl sql.NullString
	if err := r.QueryRow(ctx, "SHOW CREATE TABLE "+quoteIdent(table)).Scan(&name, &ddl); err != nil {
		return tableInfo{}, err
	}
	return parseCreateTable(ddl.String)
}

// ListTables returns all base tables in the connection's current schema.
func (d *Dialect) ListTables(ctx context.Context, r database.Reader) ([]string, error) {
	const q = `
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = DATABASE()
		  AND table_type   = 'BASE TABLE'
		ORDER BY table_name`

	rows, err := r.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		tables = append(tables, name)
	}
	return tables, rows.Err()
}

// InspectSchema reflects every base table in the current schema.
func (d *Dialect) InspectSchema(ctx context.Context, r database.Reader) (*schema.SchemaInfo, error) {
	db, err := d.DefaultSchemaName(ctx, r)
	if err != nil {
		return nil, err
	}

	names, err := d.ListTables(ctx, r)
	if err != nil {
		return nil, err
	}

	info := &schema.SchemaInfo{Database: db}
	for _, name := range names {
		tbl := schema.NewTable(name)
		if err := d.ReflectTable(ctx, r, tbl); err != nil {
			return nil, err
		}
		info.Tables = append(info.Tables, tbl)
	}
	return info, nil
}

// quoteIdent wraps a SQL identifier in backquotes.
func quoteIdent(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}
