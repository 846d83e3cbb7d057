package mysql

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sqlweft/sqlweft/internal/schema"
	"github.com/sqlweft/sqlweft/internal/sqltypes"
)

// offsetOnlyLimit is the LIMIT value MySQL documents for "offset without
// limit": the maximum unsigned 64-bit integer. Straight from the MySQL
// manual — OFFSET cannot appear without a LIMIT, so the dialect supplies
// one that can never be reached.
const offsetOnlyLimit = "18446744073709551615"

// ColumnSpec renders the full column-definition fragment for col, clauses
// appended in fixed order: name and type, DEFAULT, NOT NULL, PRIMARY KEY,
// AUTO_INCREMENT, inline FOREIGN KEY.
//
// overridePK suppresses the inline PRIMARY KEY marker when the key is
// declared separately at table level. firstPK marks the first primary-key
// column of the owning table — the only position AUTO_INCREMENT may occupy,
// and only for integer-category columns without a foreign key.
func ColumnSpec(col *schema.Column, overridePK, firstPK bool) string {
	var b strings.Builder
	b.WriteString(col.Name)
	b.WriteString(" ")
	b.WriteString(TypeSpec(col.Type))

	if col.Default != nil {
		b.WriteString(" DEFAULT ")
		b.WriteString(*col.Default)
	}
	if !col.Nullable {
		b.WriteString(" NOT NULL")
	}
	if col.PrimaryKey {
		if !overridePK {
			b.WriteString(" PRIMARY KEY")
		}
		if col.ForeignKey == nil && firstPK && isIntegerKind(col.Type.Kind) {
			b.WriteString(" AUTO_INCREMENT")
		}
	}
	if col.ForeignKey != nil {
		fmt.Fprintf(&b, ", FOREIGN KEY (%s) REFERENCES %s(%s)",
			col.Name, col.ForeignKey.Table, col.ForeignKey.Column)
	}
	return b.String()
}

func isIntegerKind(k sqltypes.Kind) bool {
	return k == sqltypes.Integer || k == sqltypes.SmallInteger
}

// LimitClause renders the pagination fragment. All four presence
// combinations are handled; with an offset but no limit the sentinel
// LIMIT is emitted so the OFFSET stays syntactically valid.
func LimitClause(limit, offset *int) string {
	if limit == nil && offset == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString("LIMIT ")
	if limit != nil {
		b.WriteString(strconv.Itoa(*limit))
	} else {
		b.WriteString(offsetOnlyLimit)
	}
	if offset != nil {
		b.WriteString(" OFFSET ")
		b.WriteString(strconv.Itoa(*offset))
	}
	return b.String()
}

// TableSuffix renders the trailing storage-engine clause appended after the
// column-definition list closes, or "" when no engine is attached.
func TableSuffix(t *schema.Table) string {
	if t.Engine == "" {
		return ""
	}
	return " ENGINE=" + t.Engine
}

// DropIndex renders an index drop. MySQL has no ownership-implicit
// DROP INDEX form, so the owning table is always named.
func DropIndex(index, table string) string {
	return "DROP INDEX " + index + " ON " + table
}

// CreateTable renders a complete CREATE TABLE statement for t. With more
// than one primary-key column the key moves to a table-level clause and the
// inline markers are suppressed.
func CreateTable(t *schema.Table) string {
	pks := t.PrimaryKeyColumns()
	overridePK := len(pks) > 1

	var lines []string
	for _, col := range t.Columns {
		firstPK := len(pks) > 0 && col == pks[0]
		lines = append(lines, "\t"+ColumnSpec(col, overridePK, firstPK))
	}
	if overridePK {
		names := make([]string, len(pks))
		for i, col := range pks {
			names[i] = col.Name
		}
		lines = append(lines, "\tPRIMARY KEY ("+strings.Join(names, ", ")+")")
	}

	return "CREATE TABLE " + t.Name + " (\n" +
		strings.Join(lines, ",\n") + "\n)" + TableSuffix(t)
}
