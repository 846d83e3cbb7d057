package mysql

import (
	"database/sql"
	"regexp"
	"strconv"
	"strings"

	"github.com/sqlweft/sqlweft/internal/errs"
	"github.com/sqlweft/sqlweft/internal/schema"
)

// The reflection layer extracts structured metadata from two semi-structured
// text formats: the row listing produced by DESCRIBE and the DDL dump
// produced by SHOW CREATE TABLE. This is pattern extraction, not SQL
// parsing — the patterns below are the extension point if a server version
// changes its quoting or line layout.
var (
	// type keyword with an optional parenthesized argument list,
	// e.g. "int(11)", "decimal(10,2)", "text"
	colTypeRe = regexp.MustCompile(`^(\w+)(\(.*?\))?`)

	// integer arguments inside the parenthesized list
	typeArgRe = regexp.MustCompile(`\d+`)

	// the last top-level closing parenthesis: a ')' with no further ')'
	// after it — everything beyond it is table-level clauses
	lastParenRe = regexp.MustCompile(`\)[^)]*\z`)

	// storage-engine selector, both the legacy and the current keyword
	tableTypeRe = regexp.MustCompile(`(?i)\b(?:TYPE|ENGINE)=(\w+)`)

	// inline foreign-key constraint with optional backquote quoting
	foreignKeyRe = regexp.MustCompile(
		"(?i)FOREIGN KEY\\s*\\(`?(?P<name>.+?)`?\\)" +
			"\\s*REFERENCES\\s*`?(?P<reftable>.+?)`?" +
			"\\s*\\(`?(?P<refcol>.+?)`?\\)")
)

// describeRow is one row of DESCRIBE output in its fixed positional order.
type describeRow struct {
	Name     string
	Type     string
	Nullable string
	Key      string
	Default  *string
}

// describeRowFromValues converts a generically scanned result row into a
// describeRow. DESCRIBE yields at least five positional fields (name, type,
// nullable, key, default); fewer is malformed introspection data, never
// silently tolerated. Trailing fields (Extra) are ignored.
func describeRowFromValues(vals []*sql.NullString) (describeRow, error) {
	if len(vals) < 5 {
		return describeRow{}, errs.Newf(errs.ErrKindMalformedData,
			"describe row has %d fields, want at least 5", len(vals))
	}
	row := describeRow{
		Name:     vals[0].String,
		Type:     vals[1].String,
		Nullable: vals[2].String,
		Key:      vals[3].String,
	}
	if vals[4].Valid {
		def := vals[4].String
		row.Default = &def
	}
	return row, nil
}

// parseDescribeRow turns one DESCRIBE row into a column descriptor. The
// type string splits into a keyword and optional integer arguments; unknown
// keywords degrade to the default string type rather than aborting the
// parse. A construction error (bad argument combination for a known type)
// does surface.
func parseDescribeRow(row describeRow) (*schema.Column, error) {
	var keyword string
	var args []int

	if m := colTypeRe.FindStringSubmatch(row.Type); m != nil {
		keyword = m[1]
		for _, a := range typeArgRe.FindAllString(m[2], -1) {
			n, err := strconv.Atoi(a)
			if err != nil {
				return nil, errs.Wrap(errs.ErrKindMalformedData, "bad type argument in "+row.Type, err)
			}
			args = append(args, n)
		}
	}

	typ, err := TypeFromKeyword(keyword, args...)
	if err != nil {
		return nil, err
	}

	return &schema.Column{
		Name:       row.Name,
		Type:       typ,
		Nullable:   row.Nullable == "YES",
		PrimaryKey: row.Key == "PRI",
		Default:    row.Default,
	}, nil
}

// tableInfo is the transient result of parsing one SHOW CREATE TABLE blob.
// It is merged into the caller's table and discarded.
type tableInfo struct {
	Engine      string
	ForeignKeys map[string]schema.ForeignKeyRef // local column name → target
}

// parseCreateTable extracts the storage engine and the foreign-key mapping
// from a SHOW CREATE TABLE dump. Both extractions are independent and both
// degrade to empty results when their pattern is absent; only a blob with
// no content at all is an error.
//
// When the same local column appears in more than one FOREIGN KEY clause the
// last match wins. That mirrors the sequential overwrite the mapping has
// always had; do not change it without confirming the desired semantics.
func parseCreateTable(ddl string) (tableInfo, error) {
	ddl = strings.TrimSpace(ddl)
	if ddl == "" {
		return tableInfo{}, errs.New(errs.ErrKindMalformedData, "empty SHOW CREATE TABLE output")
	}

	info := tableInfo{ForeignKeys: make(map[string]schema.ForeignKeyRef)}

	if loc := lastParenRe.FindStringIndex(ddl); loc != nil {
		if m := tableTypeRe.FindStringSubmatch(ddl[loc[0]:]); m != nil {
			info.Engine = m[1]
		}
	}

	for _, m := range foreignKeyRe.FindAllStringSubmatch(ddl, -1) {
		info.ForeignKeys[m[1]] = schema.ForeignKeyRef{Table: m[2], Column: m[3]}
	}

	return info, nil
}
