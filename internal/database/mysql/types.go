package mysql

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-sql/civil"

	"github.com/sqlweft/sqlweft/internal/errs"
	"github.com/sqlweft/sqlweft/internal/sqltypes"
)

// descriptor binds one abstract type kind to its MySQL behavior: how the
// type renders inside a column definition and how a raw driver value is
// converted into the abstract value domain. A nil convert passes values
// through untouched.
type descriptor struct {
	spec    func(t sqltypes.Type) string
	convert func(raw any) (any, error)
}

// colspecs maps every abstract kind to exactly one descriptor. The table is
// built once at process start and never mutated.
var colspecs = map[sqltypes.Kind]descriptor{
	sqltypes.Integer:      {spec: literalSpec("INTEGER")},
	sqltypes.SmallInteger: {spec: literalSpec("SMALLINT")},
	sqltypes.Numeric:      {spec: numericSpec},
	sqltypes.Double:       {spec: doubleSpec},
	sqltypes.Float:        {spec: floatSpec},
	sqltypes.Date:         {spec: literalSpec("DATE")},
	sqltypes.Time:         {spec: literalSpec("TIME"), convert: convertTime},
	sqltypes.DateTime:     {spec: literalSpec("DATETIME")},
	sqltypes.Text:         {spec: literalSpec("TEXT")},
	sqltypes.Varchar:      {spec: varcharSpec},
	sqltypes.Char:         {spec: charSpec},
	sqltypes.Binary:       {spec: binarySpec, convert: convertBinary},
	sqltypes.Blob:         {spec: literalSpec("BLOB"), convert: convertBinary},
	sqltypes.Boolean:      {spec: literalSpec("BOOLEAN")},
}

// keywordKinds maps the type keywords appearing in DESCRIBE output to
// abstract kinds. Keywords not listed here fall back to Varchar — the
// lookup never fails, tolerating vendor and version drift.
var keywordKinds = map[string]sqltypes.Kind{
	"int":       sqltypes.Integer,
	"smallint":  sqltypes.SmallInteger,
	"tinyint":   sqltypes.SmallInteger,
	"varchar":   sqltypes.Varchar,
	"char":      sqltypes.Char,
	"text":      sqltypes.Text,
	"decimal":   sqltypes.Numeric,
	"float":     sqltypes.Float,
	"double":    sqltypes.Double,
	"timestamp": sqltypes.DateTime,
	"datetime":  sqltypes.DateTime,
	"date":      sqltypes.Date,
	"time":      sqltypes.Time,
	"binary":    sqltypes.Binary,
	"blob":      sqltypes.Blob,
}

// descriptorFor returns the descriptor for kind. The registry covers every
// kind; the Varchar descriptor doubles as the default for anything else.
func descriptorFor(kind sqltypes.Kind) descriptor {
	if d, ok := colspecs[kind]; ok {
		return d
	}
	return colspecs[sqltypes.Varchar]
}

// TypeSpec renders t as MySQL column-definition type syntax.
func TypeSpec(t sqltypes.Type) string {
	return descriptorFor(t.Kind).spec(t)
}

// TypeFromKeyword resolves a vendor type keyword (as it appears in DESCRIBE
// output) plus its parenthesized integer arguments into an abstract type.
// Unknown keywords resolve to a variable-length string type; a construction
// error (bad argument combination) is still reported.
func TypeFromKeyword(keyword string, args ...int) (sqltypes.Type, error) {
	kind, ok := keywordKinds[strings.ToLower(keyword)]
	if !ok {
		kind = sqltypes.Varchar
	}
	return sqltypes.New(kind, args...)
}

// ConvertValue converts a raw driver value into the abstract value domain
// for the given type. Nil raw values always convert to nil.
func ConvertValue(t sqltypes.Type, raw any) (any, error) {
	d := descriptorFor(t.Kind)
	if d.convert == nil || raw == nil {
		return raw, nil
	}
	return d.convert(raw)
}

// --- rendering rules ---

func literalSpec(s string) func(sqltypes.Type) string {
	return func(sqltypes.Type) string { return s }
}

func numericSpec(t sqltypes.Type) string {
	return fmt.Sprintf("NUMERIC(%d, %d)", t.Precision, t.Scale)
}

func doubleSpec(t sqltypes.Type) string {
	if t.HasPrecision && t.HasScale {
		return fmt.Sprintf("DOUBLE(%d, %d)", t.Precision, t.Scale)
	}
	return "DOUBLE"
}

func floatSpec(t sqltypes.Type) string {
	if t.HasPrecision {
		return fmt.Sprintf("FLOAT(%d)", t.Precision)
	}
	return "FLOAT"
}

func varcharSpec(t sqltypes.Type) string {
	if t.HasLength {
		return fmt.Sprintf("VARCHAR(%d)", t.Length)
	}
	return "VARCHAR"
}

func charSpec(t sqltypes.Type) string {
	if t.HasLength {
		return fmt.Sprintf("CHAR(%d)", t.Length)
	}
	return "CHAR"
}

// binarySpec renders short fixed binaries as BINARY(n) and everything else
// as BLOB. BINARY columns come back null-padded to their declared length.
func binarySpec(t sqltypes.Type) string {
	if t.HasLength && t.Length <= 255 {
		return fmt.Sprintf("BINARY(%d)", t.Length)
	}
	return "BLOB"
}

// --- conversion rules ---

// convertTime turns the driver's duration-style TIME value (elapsed since
// midnight) into a calendar time-of-day. String forms ("15:04:05") from
// text-protocol results are parsed directly.
func convertTime(raw any) (any, error) {
	switch v := raw.(type) {
	case time.Duration:
		return timeOfDay(v), nil
	case []byte:
		return parseTimeOfDay(string(v))
	case string:
		return parseTimeOfDay(v)
	default:
		return nil, errs.Newf(errs.ErrKindInvalidInput, "cannot convert %T to time of day", raw)
	}
}

func timeOfDay(d time.Duration) civil.Time {
	return civil.Time{
		Hour:       int(d / time.Hour),
		Minute:     int(d % time.Hour / time.Minute),
		Second:     int(d % time.Minute / time.Second),
		Nanosecond: int(d % time.Second),
	}
}

func parseTimeOfDay(s string) (any, error) {
	ct, err := civil.ParseTime(s)
	if err != nil {
		return nil, errs.Wrap(errs.ErrKindInvalidInput, "cannot parse time of day", err)
	}
	return ct, nil
}

// convertBinary returns the raw bytes untouched. BINARY(n) values arrive
// null-padded to the declared length and the padding is preserved — callers
// that want it stripped must do so themselves.
func convertBinary(raw any) (any, error) {
	return raw, nil
}
