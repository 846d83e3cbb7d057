// Package schema holds the engine-neutral table model. Reflection fills it
// from live-database introspection output; DDL generation reads from it.
package schema

import (
	"github.com/sqlweft/sqlweft/internal/errs"
	"github.com/sqlweft/sqlweft/internal/sqltypes"
)

// ForeignKeyRef names the remote end of a foreign key: one column in one
// table. It is held by reference only — the referenced table does not know
// about it.
type ForeignKeyRef struct {
	Table  string
	Column string
}

func (r ForeignKeyRef) String() string {
	return r.Table + "." + r.Column
}

// Column is one column of a table. Default is nil when the column has no
// default-value literal; ForeignKey is nil when none is attached.
type Column struct {
	Name       string
	Type       sqltypes.Type
	Nullable   bool
	PrimaryKey bool
	Default    *string
	ForeignKey *ForeignKeyRef
}

// Table is an ordered collection of columns plus the vendor storage-engine
// selector captured from reflection (empty when unknown).
type Table struct {
	Name    string
	Engine  string
	Columns []*Column
}

// NewTable returns an empty table with the given name.
func NewTable(name string) *Table {
	return &Table{Name: name}
}

// AddColumn appends col to the table. Column names must be non-empty and
// unique within the table.
func (t *Table) AddColumn(col *Column) error {
	if col.Name == "" {
		return errs.Newf(errs.ErrKindInvalidInput, "table %s: column name must not be empty", t.Name)
	}
	if t.Column(col.Name) != nil {
		return errs.Newf(errs.ErrKindInvalidInput, "table %s: duplicate column %q", t.Name, col.Name)
	}
	t.Columns = append(t.Columns, col)
	return nil
}

// AddColumns appends all cols or none of them. Validation runs over the
// whole batch first so a failure never leaves the table partially merged.
func (t *Table) AddColumns(cols ...*Column) error {
	seen := make(map[string]bool, len(cols))
	for _, col := range cols {
		if col.Name == "" {
			return errs.Newf(errs.ErrKindInvalidInput, "table %s: column name must not be empty", t.Name)
		}
		if seen[col.Name] || t.Column(col.Name) != nil {
			return errs.Newf(errs.ErrKindInvalidInput, "table %s: duplicate column %q", t.Name, col.Name)
		}
		seen[col.Name] = true
	}
	t.Columns = append(t.Columns, cols...)
	return nil
}

// Column returns the column with the given name, or nil.
func (t *Table) Column(name string) *Column {
	for _, col := range t.Columns {
		if col.Name == name {
			return col
		}
	}
	return nil
}

// PrimaryKeyColumns returns the primary-key columns in declaration order.
func (t *Table) PrimaryKeyColumns() []*Column {
	var pks []*Column
	for _, col := range t.Columns {
		if col.PrimaryKey {
			pks = append(pks, col)
		}
	}
	return pks
}

// SchemaInfo is a fully reflected database: every base table with its
// columns, keys, and storage engines.
type SchemaInfo struct {
	Database string
	Tables   []*Table
}
